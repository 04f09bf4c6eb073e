package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/biosecret/todopages/database"
)

// Store chạy các truy vấn có giới hạn theo chủ sở hữu trên pages, todos, users và user_profiles.
// Mọi phương thức nhận ownerID/userID tường minh; không có trạng thái theo request.
type Store struct {
	db      *sqlx.DB
	dialect database.Dialect
	sb      squirrel.StatementBuilderType
}

// New tạo Store cho kết nối và dialect đã mở
func New(db *sqlx.DB, dialect database.Dialect) *Store {
	return &Store{
		db:      db,
		dialect: dialect,
		sb:      squirrel.StatementBuilder.PlaceholderFormat(dialect.Placeholder()),
	}
}

// Ping kiểm tra kết nối, dùng cho /health
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// withTx chạy fn trong một transaction; rollback khi fn lỗi hoặc panic
func (s *Store) withTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *Store) get(ctx context.Context, q sqlx.QueryerContext, dest interface{}, b squirrel.Sqlizer, op, table string) error {
	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("build %s: %w", op, err)
	}
	return classify(sqlx.GetContext(ctx, q, dest, query, args...), op, table)
}

func (s *Store) selectAll(ctx context.Context, q sqlx.QueryerContext, dest interface{}, b squirrel.Sqlizer, op, table string) error {
	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("build %s: %w", op, err)
	}
	return classify(sqlx.SelectContext(ctx, q, dest, query, args...), op, table)
}

// exec chạy câu lệnh và trả về số dòng bị ảnh hưởng
func (s *Store) exec(ctx context.Context, e sqlx.ExecerContext, b squirrel.Sqlizer, op, table string) (int64, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build %s: %w", op, err)
	}
	res, err := e.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, classify(err, op, table)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, classify(err, op, table)
	}
	return count, nil
}

// insert chạy INSERT ... RETURNING id
func (s *Store) insert(ctx context.Context, q sqlx.QueryerContext, b squirrel.InsertBuilder, op, table string) (int64, error) {
	query, args, err := b.Suffix("RETURNING id").ToSql()
	if err != nil {
		return 0, fmt.Errorf("build %s: %w", op, err)
	}
	var id int64
	if err := q.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, classify(err, op, table)
	}
	return id, nil
}

func mustAffect(count int64, op, table string) error {
	if count == 0 {
		return &Error{Op: op, Table: table, Err: ErrNotFound}
	}
	return nil
}

func (s *Store) count(ctx context.Context, b squirrel.SelectBuilder, op, table string) (int64, error) {
	var n sql.NullInt64
	if err := s.get(ctx, s.db, &n, b, op, table); err != nil {
		return 0, err
	}
	return n.Int64, nil
}

// containsFold so khớp chuỗi con không phân biệt hoa thường theo Unicode; ký tự % và _ được hiểu theo nghĩa đen
func (s *Store) containsFold(column, term string) squirrel.Sqlizer {
	return squirrel.Expr(s.dialect.Lower(column)+" LIKE ? ESCAPE '\\'", likePattern(term))
}

func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(term)) + "%"
}

func qualify(table string, columns []string) []string {
	out := make([]string, len(columns))
	for i, c := range columns {
		out[i] = table + "." + c
	}
	return out
}
