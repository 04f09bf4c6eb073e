package database

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver cho database/sql ("pgx")
	_ "github.com/lib/pq"              // driver PostgreSQL thay thế ("postgres")
)

//go:embed schema/*.sql
var schemaFS embed.FS

// Dialect là loại SQL của cơ sở dữ liệu đang dùng
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// Placeholder trả về kiểu tham số phù hợp cho squirrel
func (d Dialect) Placeholder() squirrel.PlaceholderFormat {
	if d == DialectSQLite {
		return squirrel.Question
	}
	return squirrel.Dollar
}

// Options mô tả cách mở kết nối
type Options struct {
	Driver         string
	URL            string
	MaxConnections int
}

// DialectFor ánh xạ tên driver sang dialect
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case "pgx", "postgres":
		return DialectPostgres, nil
	case "sqlite":
		return DialectSQLite, nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}

// Open mở kết nối, kiểm tra ping và trả về dialect tương ứng
func Open(ctx context.Context, opts Options, log zerolog.Logger) (*sqlx.DB, Dialect, error) {
	if opts.URL == "" {
		return nil, "", errors.New("you must set your 'POSTGRESQL_URI' or 'DATABASE_URL' environmental variable")
	}

	dialect, err := DialectFor(opts.Driver)
	if err != nil {
		return nil, "", err
	}

	dsn := opts.URL
	if dialect == DialectSQLite {
		dsn = sqliteDSN(dsn)
	}

	db, err := sqlx.Open(opts.Driver, dsn)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open database connection: %w", err)
	}

	switch {
	case dialect == DialectSQLite && isMemory(opts.URL):
		// mỗi kết nối :memory: là một database riêng
		db.SetMaxOpenConns(1)
	case opts.MaxConnections > 0:
		db.SetMaxOpenConns(opts.MaxConnections)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, "", fmt.Errorf("cannot connect to database: %w", err)
	}

	if dialect == DialectSQLite {
		if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
			_ = db.Close()
			return nil, "", fmt.Errorf("enable foreign keys: %w", err)
		}
	}

	log.Info().Str("driver", opts.Driver).Str("dialect", string(dialect)).Msg("connected to database")
	return db, dialect, nil
}

// Migrate tạo bảng nếu chưa tồn tại
func Migrate(ctx context.Context, db *sqlx.DB, dialect Dialect) error {
	schemaSQL, err := schemaFS.ReadFile("schema/" + string(dialect) + ".sql")
	if err != nil {
		return fmt.Errorf("read schema: %w", err)
	}

	if _, err := db.ExecContext(ctx, string(schemaSQL)); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Close đóng kết nối với cơ sở dữ liệu
func Close(db *sqlx.DB, log zerolog.Logger) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		log.Error().Err(err).Msg("close database")
		return
	}
	log.Info().Msg("database connection closed")
}

func isMemory(url string) bool {
	return url == ":memory:" || strings.Contains(url, "mode=memory")
}

// sqliteDSN bật foreign key cho mọi kết nối mới trong pool
func sqliteDSN(url string) string {
	if isMemory(url) || strings.Contains(url, "_pragma=") {
		return url
	}
	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}
	return url + sep + "_pragma=foreign_keys(1)"
}
