package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/biosecret/todopages/database"
	"github.com/biosecret/todopages/models"
)

// TestPostgresQueries kiểm tra câu SQL sinh ra cho dialect PostgreSQL
func TestPostgresQueries(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := New(sqlx.NewDb(db, "pgx"), database.DialectPostgres)
	ctx := context.Background()
	now := time.Now()

	t.Run("ListPages", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, owner_id, title, description, color, active, created_at, updated_at FROM pages WHERE active = \$1 AND owner_id = \$2 ORDER BY created_at DESC, id DESC`).
			WithArgs(true, int64(7)).
			WillReturnRows(sqlmock.NewRows(pageColumns).
				AddRow(1, 7, "Groceries", "", "#ff0000", true, now, now))

		pages, err := s.ListPages(ctx, 7, 0)
		require.NoError(t, err)
		require.Len(t, pages, 1)
		assert.Equal(t, "Groceries", pages[0].Title)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("CreatePage", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO pages \(owner_id,title,description,color,active,created_at,updated_at\) VALUES \(\$1,\$2,\$3,\$4,\$5,\$6,\$7\) RETURNING id`).
			WithArgs(int64(7), "Groceries", "", "#ff0000", true, now, now).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

		p := models.Page{OwnerID: 7, Title: "Groceries", Color: "#ff0000", Active: true, CreatedAt: now, UpdatedAt: now}
		require.NoError(t, s.CreatePage(ctx, &p))
		assert.EqualValues(t, 42, p.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DeactivatePage not found", func(t *testing.T) {
		mock.ExpectExec(`UPDATE pages SET active = \$1, updated_at = \$2 WHERE active = \$3 AND id = \$4 AND owner_id = \$5`).
			WithArgs(false, now, true, int64(3), int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := s.DeactivatePage(ctx, 7, 3, now)
		assert.True(t, IsNotFound(err))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("SearchTodos", func(t *testing.T) {
		mock.ExpectQuery(`SELECT todos\.id, .* FROM todos JOIN pages ON pages\.id = todos\.page_id WHERE pages\.owner_id = \$1 AND LOWER\(todos\.title\) LIKE \$2 ESCAPE '\\' ORDER BY todos\.position ASC, todos\.created_at DESC, todos\.id DESC LIMIT 20`).
			WithArgs(int64(7), "%milk%").
			WillReturnRows(sqlmock.NewRows(todoColumns).
				AddRow(1, 2, "Buy milk", "", false, "high", nil, nil, 0, now, now))

		todos, err := s.SearchTodos(ctx, 7, "Milk", 20)
		require.NoError(t, err)
		require.Len(t, todos, 1)
		assert.Equal(t, models.PriorityHigh, todos[0].Priority)
		assert.Nil(t, todos[0].DueDate)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DeleteTodo", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM todos WHERE id = \$1 AND page_id IN \(SELECT id FROM pages WHERE owner_id = \$2\)`).
			WithArgs(int64(9), int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, s.DeleteTodo(ctx, 7, 9))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("UpdateProfile rolls back", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE users SET first_name = \$1, last_name = \$2, email = \$3 WHERE id = \$4`).
			WithArgs("A", "B", "a@b.c", int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE user_profiles SET theme = \$1, notifications_enabled = \$2, bio = \$3, updated_at = \$4 WHERE user_id = \$5`).
			WithArgs("dark", false, "", now, int64(7)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := s.UpdateProfile(ctx,
			models.User{ID: 7, FirstName: "A", LastName: "B", Email: "a@b.c"},
			models.Profile{UserID: 7, Theme: models.ThemeDark, UpdatedAt: now})
		assert.True(t, IsNotFound(err))
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
