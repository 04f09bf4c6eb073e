package services

import (
	"context"
	"strings"
	"time"

	"github.com/biosecret/todopages/models"
	"github.com/biosecret/todopages/store"
)

// ProfileInput là dữ liệu form profile; cập nhật cả User và Profile
type ProfileInput struct {
	FirstName            string
	LastName             string
	Email                string
	Bio                  string
	Theme                models.Theme
	NotificationsEnabled bool
}

// ProfileView là dữ liệu trang profile
type ProfileView struct {
	User    models.User      `json:"user"`
	Profile models.Profile   `json:"profile"`
	Stats   models.UserStats `json:"stats"`
}

type Profiles struct {
	store *store.Store
	now   func() time.Time
}

// GetOrCreate trả về profile, tạo với giá trị mặc định nếu chưa có. Gọi lặp lại an toàn.
func (s *Profiles) GetOrCreate(ctx context.Context, userID int64) (models.Profile, error) {
	profile, err := s.store.GetProfile(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !store.IsNotFound(err) {
		return models.Profile{}, translate(err, "get profile", nil)
	}

	profile, err = s.store.EnsureProfile(ctx, userID, s.now())
	return profile, translate(err, "create profile", nil)
}

// Get trả về người dùng, profile và thống kê
func (s *Profiles) Get(ctx context.Context, userID int64) (ProfileView, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return ProfileView{}, translate(err, "get user", nil)
	}

	profile, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return ProfileView{}, err
	}

	stats, err := s.Stats(ctx, userID)
	if err != nil {
		return ProfileView{}, err
	}

	return ProfileView{User: user, Profile: profile, Stats: stats}, nil
}

// Update ghi tên, email của User và bio, theme, thông báo của Profile trong một transaction
func (s *Profiles) Update(ctx context.Context, userID int64, in ProfileInput) (ProfileView, error) {
	if in.Theme == "" {
		in.Theme = models.ThemeLight
	}
	if !in.Theme.Valid() {
		return ProfileView{}, invalid("theme", "theme must be light or dark")
	}

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return ProfileView{}, translate(err, "update profile", nil)
	}
	profile, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return ProfileView{}, err
	}

	user.FirstName = strings.TrimSpace(in.FirstName)
	user.LastName = strings.TrimSpace(in.LastName)
	user.Email = strings.TrimSpace(in.Email)

	profile.Bio = in.Bio
	profile.Theme = in.Theme
	profile.NotificationsEnabled = in.NotificationsEnabled
	profile.UpdatedAt = s.now()

	if err := s.store.UpdateProfile(ctx, user, profile); err != nil {
		return ProfileView{}, translate(err, "update profile", nil)
	}

	stats, err := s.Stats(ctx, userID)
	if err != nil {
		return ProfileView{}, err
	}
	return ProfileView{User: user, Profile: profile, Stats: stats}, nil
}

// Stats đếm page đang hoạt động và todo trên mọi page của người dùng
func (s *Profiles) Stats(ctx context.Context, userID int64) (models.UserStats, error) {
	return userStats(ctx, s.store, userID)
}

func userStats(ctx context.Context, st *store.Store, userID int64) (models.UserStats, error) {
	pages, err := st.CountActivePages(ctx, userID)
	if err != nil {
		return models.UserStats{}, translate(err, "count pages", nil)
	}
	total, err := st.CountTodos(ctx, userID, nil)
	if err != nil {
		return models.UserStats{}, translate(err, "count todos", nil)
	}
	done := true
	completed, err := st.CountTodos(ctx, userID, &done)
	if err != nil {
		return models.UserStats{}, translate(err, "count todos", nil)
	}

	return models.UserStats{
		TotalPages:     pages,
		TotalTodos:     total,
		CompletedTodos: completed,
		PendingTodos:   total - completed,
	}, nil
}
