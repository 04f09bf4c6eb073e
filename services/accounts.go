package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/biosecret/todopages/models"
	"github.com/biosecret/todopages/store"
)

const minPasswordLength = 8

// Registration là dữ liệu đăng ký người dùng
type Registration struct {
	Username  string `json:"username" form:"username"`
	Password  string `json:"password" form:"password"`
	Email     string `json:"email" form:"email"`
	FirstName string `json:"first_name" form:"first_name"`
	LastName  string `json:"last_name" form:"last_name"`
}

// Accounts đăng ký và xác thực người dùng
type Accounts struct {
	store    *store.Store
	profiles *Profiles
	now      func() time.Time
	cost     int
}

// Register tạo người dùng rồi tạo profile mặc định ngay sau đó
func (s *Accounts) Register(ctx context.Context, r Registration) (models.User, error) {
	r.Username = strings.TrimSpace(r.Username)
	if r.Username == "" {
		return models.User{}, invalid("username", "username is required")
	}
	if len(r.Password) < minPasswordLength {
		return models.User{}, invalid("password", "password must be at least 8 characters")
	}

	// Hash mật khẩu
	hash, err := bcrypt.GenerateFromPassword([]byte(r.Password), s.cost)
	if err != nil {
		return models.User{}, fmt.Errorf("could not hash password: %w", err)
	}

	user := models.User{
		Username:     r.Username,
		PasswordHash: string(hash),
		Email:        strings.TrimSpace(r.Email),
		FirstName:    strings.TrimSpace(r.FirstName),
		LastName:     strings.TrimSpace(r.LastName),
		DateJoined:   s.now(),
	}
	if err := s.store.CreateUser(ctx, &user); err != nil {
		return models.User{}, translate(err, "register", ErrDuplicateUsername)
	}

	if _, err := s.profiles.GetOrCreate(ctx, user.ID); err != nil {
		return models.User{}, fmt.Errorf("create profile for %q: %w", user.Username, err)
	}
	return user, nil
}

// Authenticate kiểm tra username và mật khẩu
func (s *Accounts) Authenticate(ctx context.Context, username, password string) (models.User, error) {
	user, err := s.store.GetUserByUsername(ctx, strings.TrimSpace(username))
	if store.IsNotFound(err) {
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, translate(err, "authenticate", nil)
	}

	// So khớp mật khẩu
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, fmt.Errorf("authenticate: %w", err)
	}
	return user, nil
}

// Get trả về người dùng theo ID
func (s *Accounts) Get(ctx context.Context, userID int64) (models.User, error) {
	user, err := s.store.GetUser(ctx, userID)
	return user, translate(err, "get user", nil)
}

// Delete xoá người dùng cùng toàn bộ page, todo và profile
func (s *Accounts) Delete(ctx context.Context, userID int64) error {
	return translate(s.store.DeleteUser(ctx, userID), "delete user", nil)
}

// DeleteByUsername dùng cho CLI
func (s *Accounts) DeleteByUsername(ctx context.Context, username string) error {
	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		return translate(err, "delete user", nil)
	}
	return s.Delete(ctx, user.ID)
}
