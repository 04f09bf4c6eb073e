package store

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/biosecret/todopages/models"
)

var todoColumns = []string{
	"id", "page_id", "title", "description", "completed", "priority",
	"due_date", "completed_at", "position", "created_at", "updated_at",
}

// thứ tự mặc định của todo: position tăng dần, mới nhất trước
var todoOrder = []string{"todos.position ASC", "todos.created_at DESC", "todos.id DESC"}

// ownedTodos chọn todo qua quyền sở hữu page; trạng thái active của page không được kiểm tra
func (s *Store) ownedTodos(ownerID int64) squirrel.SelectBuilder {
	return s.sb.Select(qualify("todos", todoColumns)...).
		From("todos").
		Join("pages ON pages.id = todos.page_id").
		Where(squirrel.Eq{"pages.owner_id": ownerID})
}

func ownedBy(ownerID int64) squirrel.Sqlizer {
	return squirrel.Expr("page_id IN (SELECT id FROM pages WHERE owner_id = ?)", ownerID)
}

// ListTodos trả về todo của page theo bộ lọc; limit 0 là không giới hạn
func (s *Store) ListTodos(ctx context.Context, pageID int64, f models.TodoFilter, limit uint64) ([]models.Todo, error) {
	b := s.sb.Select(qualify("todos", todoColumns)...).
		From("todos").
		Where(squirrel.Eq{"todos.page_id": pageID})

	switch f.Status {
	case models.StatusCompleted:
		b = b.Where(squirrel.Eq{"todos.completed": true})
	case models.StatusPending:
		b = b.Where(squirrel.Eq{"todos.completed": false})
	}

	if f.Priority != "" && f.Priority != models.FilterAll {
		b = b.Where(squirrel.Eq{"todos.priority": f.Priority})
	}

	if f.Search != "" {
		b = b.Where(squirrel.Or{
			s.containsFold("todos.title", f.Search),
			s.containsFold("todos.description", f.Search),
		})
	}

	b = b.OrderBy(todoOrder...)
	if limit > 0 {
		b = b.Limit(limit)
	}

	todos := []models.Todo{}
	if err := s.selectAll(ctx, s.db, &todos, b, "ListTodos", "todos"); err != nil {
		return nil, err
	}
	return todos, nil
}

// PageStats đếm tổng, hoàn thành, chưa hoàn thành và quá hạn trên toàn bộ todo của page
func (s *Store) PageStats(ctx context.Context, pageID int64, now time.Time) (models.PageStats, error) {
	b := s.sb.Select("COUNT(*) AS total").
		Column("COALESCE(SUM(CASE WHEN completed THEN 1 ELSE 0 END), 0) AS completed").
		Column("COALESCE(SUM(CASE WHEN completed THEN 0 ELSE 1 END), 0) AS pending").
		Column(squirrel.Expr("COALESCE(SUM(CASE WHEN due_date < ? AND NOT completed THEN 1 ELSE 0 END), 0) AS overdue", now)).
		From("todos").
		Where(squirrel.Eq{"page_id": pageID})

	var stats models.PageStats
	if err := s.get(ctx, s.db, &stats, b, "PageStats", "todos"); err != nil {
		return models.PageStats{}, err
	}
	return stats, nil
}

// CreateTodo chèn todo và gán ID
func (s *Store) CreateTodo(ctx context.Context, t *models.Todo) error {
	b := s.sb.Insert("todos").
		Columns("page_id", "title", "description", "completed", "priority",
			"due_date", "completed_at", "position", "created_at", "updated_at").
		Values(t.PageID, t.Title, t.Description, t.Completed, string(t.Priority),
			t.DueDate, t.CompletedAt, t.Position, t.CreatedAt, t.UpdatedAt)

	id, err := s.insert(ctx, s.db, b, "CreateTodo", "todos")
	if err != nil {
		return err
	}
	t.ID = id
	return nil
}

// GetOwnedTodo lấy todo nếu page của nó thuộc về owner
func (s *Store) GetOwnedTodo(ctx context.Context, ownerID, todoID int64) (models.Todo, error) {
	var t models.Todo
	b := s.ownedTodos(ownerID).Where(squirrel.Eq{"todos.id": todoID})
	if err := s.get(ctx, s.db, &t, b, "GetOwnedTodo", "todos"); err != nil {
		return models.Todo{}, err
	}
	return t, nil
}

// UpdateTodo ghi toàn bộ trường có thể sửa của todo
func (s *Store) UpdateTodo(ctx context.Context, ownerID int64, t models.Todo) error {
	b := s.sb.Update("todos").
		Set("title", t.Title).
		Set("description", t.Description).
		Set("completed", t.Completed).
		Set("priority", string(t.Priority)).
		Set("due_date", t.DueDate).
		Set("completed_at", t.CompletedAt).
		Set("position", t.Position).
		Set("updated_at", t.UpdatedAt).
		Where(squirrel.Eq{"id": t.ID}).
		Where(ownedBy(ownerID))

	n, err := s.exec(ctx, s.db, b, "UpdateTodo", "todos")
	if err != nil {
		return err
	}
	return mustAffect(n, "UpdateTodo", "todos")
}

// DeleteTodo xoá hẳn todo khỏi DB
func (s *Store) DeleteTodo(ctx context.Context, ownerID, todoID int64) error {
	b := s.sb.Delete("todos").
		Where(squirrel.Eq{"id": todoID}).
		Where(ownedBy(ownerID))

	n, err := s.exec(ctx, s.db, b, "DeleteTodo", "todos")
	if err != nil {
		return err
	}
	return mustAffect(n, "DeleteTodo", "todos")
}

// CountTodos đếm todo trên mọi page của owner; completed nil là đếm tất cả
func (s *Store) CountTodos(ctx context.Context, ownerID int64, completed *bool) (int64, error) {
	b := s.sb.Select("COUNT(*)").
		From("todos").
		Join("pages ON pages.id = todos.page_id").
		Where(squirrel.Eq{"pages.owner_id": ownerID})
	if completed != nil {
		b = b.Where(squirrel.Eq{"todos.completed": *completed})
	}
	return s.count(ctx, b, "CountTodos", "todos")
}

// SearchTodos tìm todo theo tiêu đề trên mọi page của owner
func (s *Store) SearchTodos(ctx context.Context, ownerID int64, term string, limit uint64) ([]models.Todo, error) {
	b := s.ownedTodos(ownerID).
		Where(s.containsFold("todos.title", term)).
		OrderBy(todoOrder...).
		Limit(limit)

	todos := []models.Todo{}
	if err := s.selectAll(ctx, s.db, &todos, b, "SearchTodos", "todos"); err != nil {
		return nil, err
	}
	return todos, nil
}
