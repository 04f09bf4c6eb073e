package services

import (
	"context"
	"time"

	"github.com/biosecret/todopages/models"
	"github.com/biosecret/todopages/store"
)

const (
	recentPageCount    = 5
	recentTodosPerPage = 3
)

// RecentPage là page gần đây kèm vài todo đầu tiên
type RecentPage struct {
	models.Page
	RecentTodos []models.TodoView `json:"recent_todos"`
}

// Overview là dữ liệu trang chủ sau khi đăng nhập
type Overview struct {
	Stats       models.UserStats `json:"stats"`
	UserPages   []models.Page    `json:"user_pages"`
	RecentPages []RecentPage     `json:"recent_pages"`
}

type Dashboard struct {
	store *store.Store
	now   func() time.Time
}

func (s *Dashboard) Overview(ctx context.Context, ownerID int64) (Overview, error) {
	stats, err := userStats(ctx, s.store, ownerID)
	if err != nil {
		return Overview{}, err
	}

	pages, err := s.store.ListPages(ctx, ownerID, 0)
	if err != nil {
		return Overview{}, translate(err, "dashboard", nil)
	}

	now := s.now()
	recent := pages
	if len(recent) > recentPageCount {
		recent = recent[:recentPageCount]
	}

	out := Overview{Stats: stats, UserPages: pages, RecentPages: make([]RecentPage, 0, len(recent))}
	for _, p := range recent {
		todos, err := s.store.ListTodos(ctx, p.ID, models.TodoFilter{}, recentTodosPerPage)
		if err != nil {
			return Overview{}, translate(err, "dashboard", nil)
		}
		out.RecentPages = append(out.RecentPages, RecentPage{Page: p, RecentTodos: models.Views(todos, now)})
	}
	return out, nil
}
