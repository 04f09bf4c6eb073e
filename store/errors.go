package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// Common errors
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate key violation")
)

const uniqueViolation = "23505"

// Error gives detail about a failed storage operation
type Error struct {
	Op         string // Operation that failed
	Table      string // Table involved
	Constraint string // Constraint name (if known)
	Err        error  // Underlying error
}

func (e *Error) Error() string {
	parts := []string{fmt.Sprintf("store: %s", e.Op)}

	if e.Table != "" {
		parts = append(parts, fmt.Sprintf("table=%s", e.Table))
	}
	if e.Constraint != "" {
		parts = append(parts, fmt.Sprintf("constraint=%s", e.Constraint))
	}
	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}

	return strings.Join(parts, ": ")
}

func (e *Error) Unwrap() error {
	return e.Err
}

// classify maps driver errors onto ErrNotFound / ErrDuplicate
func classify(err error, op, table string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return &Error{Op: op, Table: table, Err: ErrNotFound}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return &Error{Op: op, Table: table, Constraint: pgErr.ConstraintName, Err: ErrDuplicate}
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return &Error{Op: op, Table: table, Constraint: pqErr.Constraint, Err: ErrDuplicate}
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return &Error{Op: op, Table: table, Constraint: sqliteConstraint(msg), Err: ErrDuplicate}
	case strings.Contains(msg, "duplicate key value violates unique constraint"):
		return &Error{Op: op, Table: table, Constraint: quoted(msg), Err: ErrDuplicate}
	}

	return &Error{Op: op, Table: table, Err: err}
}

// sqliteConstraint trả về danh sách cột từ "UNIQUE constraint failed: pages.owner_id, pages.title"
func sqliteConstraint(msg string) string {
	idx := strings.Index(msg, "UNIQUE constraint failed: ")
	if idx == -1 {
		return ""
	}
	rest := msg[idx+len("UNIQUE constraint failed: "):]
	if end := strings.IndexAny(rest, "()"); end != -1 {
		rest = rest[:end]
	}
	return strings.TrimSpace(rest)
}

func quoted(msg string) string {
	start := strings.Index(msg, "\"")
	if start == -1 {
		return ""
	}
	end := strings.Index(msg[start+1:], "\"")
	if end == -1 {
		return ""
	}
	return msg[start+1 : start+1+end]
}

// IsDuplicate reports whether err is a unique constraint violation
func IsDuplicate(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// IsNotFound reports whether err means no matching row
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
