package services

import (
	"errors"
	"fmt"

	"github.com/biosecret/todopages/store"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrDuplicateTitle     = errors.New("a page with this title already exists")
	ErrDuplicateUsername  = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// ValidationError là lỗi dữ liệu đầu vào, không có thay đổi nào được ghi
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// AsValidation trả về ValidationError nằm trong err, nếu có
func AsValidation(err error) (*ValidationError, bool) {
	var v *ValidationError
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}

// translate đổi lỗi của store sang lỗi nghiệp vụ; duplicate là lỗi dùng khi vi phạm unique
func translate(err error, op string, duplicate error) error {
	switch {
	case err == nil:
		return nil
	case store.IsNotFound(err):
		return ErrNotFound
	case duplicate != nil && store.IsDuplicate(err):
		return duplicate
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
