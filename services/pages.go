package services

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/biosecret/todopages/models"
	"github.com/biosecret/todopages/store"
)

const maxTitleLength = 200

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// PageInput là dữ liệu của form tạo/sửa page
type PageInput struct {
	Title       string `json:"title" form:"title"`
	Description string `json:"description" form:"description"`
	Color       string `json:"color" form:"color"`
}

func (in PageInput) normalize() (PageInput, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Color = strings.TrimSpace(in.Color)

	if in.Title == "" {
		return in, invalid("title", "title is required")
	}
	if len(in.Title) > maxTitleLength {
		return in, invalid("title", "title must be at most 200 characters")
	}
	if in.Color == "" {
		in.Color = models.DefaultPageColor
	}
	if !hexColor.MatchString(in.Color) {
		return in, invalid("color", "color must be a hex value like #ff0000")
	}
	return in, nil
}

// PageDetail là page cùng danh sách todo đã lọc và thống kê
type PageDetail struct {
	Page   models.Page       `json:"page"`
	Todos  []models.TodoView `json:"todos"`
	Stats  models.PageStats  `json:"page_stats"`
	Filter models.TodoFilter `json:"filter"`
}

// Pages quản lý page của từng người dùng
type Pages struct {
	store *store.Store
	now   func() time.Time
}

// List trả về các page đang hoạt động, mới tạo trước
func (s *Pages) List(ctx context.Context, ownerID int64) ([]models.Page, error) {
	pages, err := s.store.ListPages(ctx, ownerID, 0)
	return pages, translate(err, "list pages", nil)
}

// Create tạo page mới; tiêu đề trùng (kể cả page đã xoá mềm) trả về ErrDuplicateTitle
func (s *Pages) Create(ctx context.Context, ownerID int64, in PageInput) (models.Page, error) {
	in, err := in.normalize()
	if err != nil {
		return models.Page{}, err
	}

	now := s.now()
	page := models.Page{
		OwnerID:     ownerID,
		Title:       in.Title,
		Description: in.Description,
		Color:       in.Color,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.CreatePage(ctx, &page); err != nil {
		return models.Page{}, translate(err, "create page", ErrDuplicateTitle)
	}
	return page, nil
}

// Get trả về page đang hoạt động của owner
func (s *Pages) Get(ctx context.Context, ownerID, pageID int64) (models.Page, error) {
	page, err := s.store.GetActivePage(ctx, ownerID, pageID)
	return page, translate(err, "get page", nil)
}

// Detail trả về page, todo đã lọc và thống kê trên toàn bộ todo của page
func (s *Pages) Detail(ctx context.Context, ownerID, pageID int64, f models.TodoFilter) (PageDetail, error) {
	page, err := s.store.GetActivePage(ctx, ownerID, pageID)
	if err != nil {
		return PageDetail{}, translate(err, "page detail", nil)
	}

	f = normalizeFilter(f)
	todos, err := s.store.ListTodos(ctx, page.ID, f, 0)
	if err != nil {
		return PageDetail{}, translate(err, "page detail", nil)
	}

	now := s.now()
	stats, err := s.store.PageStats(ctx, page.ID, now)
	if err != nil {
		return PageDetail{}, translate(err, "page detail", nil)
	}

	return PageDetail{
		Page:   page,
		Todos:  models.Views(todos, now),
		Stats:  stats,
		Filter: f,
	}, nil
}

// Update sửa page; cùng quy tắc not-found và trùng tiêu đề như Create
func (s *Pages) Update(ctx context.Context, ownerID, pageID int64, in PageInput) (models.Page, error) {
	page, err := s.store.GetActivePage(ctx, ownerID, pageID)
	if err != nil {
		return models.Page{}, translate(err, "update page", nil)
	}

	in, err = in.normalize()
	if err != nil {
		return models.Page{}, err
	}

	page.Title = in.Title
	page.Description = in.Description
	page.Color = in.Color
	page.UpdatedAt = s.now()

	if err := s.store.UpdatePage(ctx, page); err != nil {
		return models.Page{}, translate(err, "update page", ErrDuplicateTitle)
	}
	return page, nil
}

// SoftDelete đặt active=false; page và todo của nó không còn truy cập được
func (s *Pages) SoftDelete(ctx context.Context, ownerID, pageID int64) error {
	return translate(s.store.DeactivatePage(ctx, ownerID, pageID, s.now()), "delete page", nil)
}

// normalizeFilter: status lạ được coi là "all"; priority rỗng là "all"
func normalizeFilter(f models.TodoFilter) models.TodoFilter {
	switch f.Status {
	case models.StatusCompleted, models.StatusPending:
	default:
		f.Status = models.StatusAll
	}
	if f.Priority == "" {
		f.Priority = models.FilterAll
	}
	return f
}
