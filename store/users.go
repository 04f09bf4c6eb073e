package store

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/biosecret/todopages/models"
)

var userColumns = []string{"id", "username", "password_hash", "email", "first_name", "last_name", "date_joined"}

var profileColumns = []string{"id", "user_id", "theme", "notifications_enabled", "bio", "created_at", "updated_at"}

// CreateUser chèn người dùng mới; username trùng trả về ErrDuplicate
func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	b := s.sb.Insert("users").
		Columns("username", "password_hash", "email", "first_name", "last_name", "date_joined").
		Values(u.Username, u.PasswordHash, u.Email, u.FirstName, u.LastName, u.DateJoined)

	id, err := s.insert(ctx, s.db, b, "CreateUser", "users")
	if err != nil {
		return err
	}
	u.ID = id
	return nil
}

func (s *Store) GetUser(ctx context.Context, userID int64) (models.User, error) {
	var u models.User
	b := s.sb.Select(userColumns...).From("users").Where(squirrel.Eq{"id": userID})
	if err := s.get(ctx, s.db, &u, b, "GetUser", "users"); err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	var u models.User
	b := s.sb.Select(userColumns...).From("users").Where(squirrel.Eq{"username": username})
	if err := s.get(ctx, s.db, &u, b, "GetUserByUsername", "users"); err != nil {
		return models.User{}, err
	}
	return u, nil
}

// DeleteUser xoá người dùng; pages, todos và profile bị xoá theo ON DELETE CASCADE
func (s *Store) DeleteUser(ctx context.Context, userID int64) error {
	n, err := s.exec(ctx, s.db, s.sb.Delete("users").Where(squirrel.Eq{"id": userID}), "DeleteUser", "users")
	if err != nil {
		return err
	}
	return mustAffect(n, "DeleteUser", "users")
}

// EnsureProfile tạo profile mặc định nếu chưa có rồi trả về profile hiện tại.
// ON CONFLICT DO NOTHING giữ cho các lần gọi đồng thời không tạo hai dòng.
func (s *Store) EnsureProfile(ctx context.Context, userID int64, now time.Time) (models.Profile, error) {
	b := s.sb.Insert("user_profiles").
		Columns("user_id", "theme", "notifications_enabled", "bio", "created_at", "updated_at").
		Values(userID, string(models.ThemeLight), true, "", now, now).
		Suffix("ON CONFLICT (user_id) DO NOTHING")

	if _, err := s.exec(ctx, s.db, b, "EnsureProfile", "user_profiles"); err != nil {
		return models.Profile{}, err
	}
	return s.GetProfile(ctx, userID)
}

func (s *Store) GetProfile(ctx context.Context, userID int64) (models.Profile, error) {
	var p models.Profile
	b := s.sb.Select(profileColumns...).From("user_profiles").Where(squirrel.Eq{"user_id": userID})
	if err := s.get(ctx, s.db, &p, b, "GetProfile", "user_profiles"); err != nil {
		return models.Profile{}, err
	}
	return p, nil
}

// UpdateProfile ghi thông tin người dùng và tuỳ chọn profile trong cùng một transaction
func (s *Store) UpdateProfile(ctx context.Context, u models.User, p models.Profile) error {
	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		userUpdate := s.sb.Update("users").
			Set("first_name", u.FirstName).
			Set("last_name", u.LastName).
			Set("email", u.Email).
			Where(squirrel.Eq{"id": u.ID})

		n, err := s.exec(ctx, tx, userUpdate, "UpdateProfile", "users")
		if err != nil {
			return err
		}
		if err := mustAffect(n, "UpdateProfile", "users"); err != nil {
			return err
		}

		profileUpdate := s.sb.Update("user_profiles").
			Set("theme", string(p.Theme)).
			Set("notifications_enabled", p.NotificationsEnabled).
			Set("bio", p.Bio).
			Set("updated_at", p.UpdatedAt).
			Where(squirrel.Eq{"user_id": u.ID})

		n, err = s.exec(ctx, tx, profileUpdate, "UpdateProfile", "user_profiles")
		if err != nil {
			return err
		}
		return mustAffect(n, "UpdateProfile", "user_profiles")
	})
}

// NotificationsEnabled đọc cờ thông báo; người dùng chưa có profile dùng giá trị mặc định (bật)
func (s *Store) NotificationsEnabled(ctx context.Context, userID int64) (bool, error) {
	var enabled bool
	b := s.sb.Select("notifications_enabled").From("user_profiles").Where(squirrel.Eq{"user_id": userID})
	err := s.get(ctx, s.db, &enabled, b, "NotificationsEnabled", "user_profiles")
	if IsNotFound(err) {
		return true, nil
	}
	return enabled, err
}
