package store

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/biosecret/todopages/models"
)

var pageColumns = []string{"id", "owner_id", "title", "description", "color", "active", "created_at", "updated_at"}

func (s *Store) activePages(ownerID int64) squirrel.SelectBuilder {
	return s.sb.Select(pageColumns...).
		From("pages").
		Where(squirrel.Eq{"owner_id": ownerID, "active": true})
}

// ListPages trả về các page đang hoạt động của owner, mới nhất trước; limit 0 là không giới hạn
func (s *Store) ListPages(ctx context.Context, ownerID int64, limit uint64) ([]models.Page, error) {
	b := s.activePages(ownerID).OrderBy("created_at DESC", "id DESC")
	if limit > 0 {
		b = b.Limit(limit)
	}

	pages := []models.Page{}
	if err := s.selectAll(ctx, s.db, &pages, b, "ListPages", "pages"); err != nil {
		return nil, err
	}
	return pages, nil
}

// CreatePage chèn page mới và gán ID
func (s *Store) CreatePage(ctx context.Context, p *models.Page) error {
	b := s.sb.Insert("pages").
		Columns("owner_id", "title", "description", "color", "active", "created_at", "updated_at").
		Values(p.OwnerID, p.Title, p.Description, p.Color, p.Active, p.CreatedAt, p.UpdatedAt)

	id, err := s.insert(ctx, s.db, b, "CreatePage", "pages")
	if err != nil {
		return err
	}
	p.ID = id
	return nil
}

// GetActivePage lấy page đang hoạt động thuộc về owner
func (s *Store) GetActivePage(ctx context.Context, ownerID, pageID int64) (models.Page, error) {
	var p models.Page
	b := s.activePages(ownerID).Where(squirrel.Eq{"id": pageID})
	if err := s.get(ctx, s.db, &p, b, "GetActivePage", "pages"); err != nil {
		return models.Page{}, err
	}
	return p, nil
}

// UpdatePage ghi title, description, color của một page đang hoạt động
func (s *Store) UpdatePage(ctx context.Context, p models.Page) error {
	b := s.sb.Update("pages").
		Set("title", p.Title).
		Set("description", p.Description).
		Set("color", p.Color).
		Set("updated_at", p.UpdatedAt).
		Where(squirrel.Eq{"id": p.ID, "owner_id": p.OwnerID, "active": true})

	n, err := s.exec(ctx, s.db, b, "UpdatePage", "pages")
	if err != nil {
		return err
	}
	return mustAffect(n, "UpdatePage", "pages")
}

// DeactivatePage xoá mềm page (active=false); todo của page vẫn còn trong DB
func (s *Store) DeactivatePage(ctx context.Context, ownerID, pageID int64, now time.Time) error {
	b := s.sb.Update("pages").
		Set("active", false).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": pageID, "owner_id": ownerID, "active": true})

	n, err := s.exec(ctx, s.db, b, "DeactivatePage", "pages")
	if err != nil {
		return err
	}
	return mustAffect(n, "DeactivatePage", "pages")
}

// CountActivePages đếm page đang hoạt động của owner
func (s *Store) CountActivePages(ctx context.Context, ownerID int64) (int64, error) {
	b := s.sb.Select("COUNT(*)").From("pages").Where(squirrel.Eq{"owner_id": ownerID, "active": true})
	return s.count(ctx, b, "CountActivePages", "pages")
}

// SearchPages tìm page đang hoạt động theo tiêu đề, không phân biệt hoa thường
func (s *Store) SearchPages(ctx context.Context, ownerID int64, term string, limit uint64) ([]models.Page, error) {
	b := s.activePages(ownerID).
		Where(s.containsFold("title", term)).
		OrderBy("created_at DESC", "id DESC").
		Limit(limit)

	pages := []models.Page{}
	if err := s.selectAll(ctx, s.db, &pages, b, "SearchPages", "pages"); err != nil {
		return nil, err
	}
	return pages, nil
}
