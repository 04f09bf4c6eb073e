package services

import (
	"context"
	"time"

	"github.com/biosecret/todopages/models"
	"github.com/biosecret/todopages/store"
)

const (
	searchPageLimit = 10
	searchTodoLimit = 20
)

// SearchResults là kết quả tìm kiếm toàn cục
type SearchResults struct {
	Query string            `json:"query"`
	Pages []models.Page     `json:"pages"`
	Todos []models.TodoView `json:"todos"`
}

type Search struct {
	store *store.Store
	now   func() time.Time
}

// Search tìm tối đa 10 page và 20 todo có tiêu đề chứa query; query rỗng trả về kết quả rỗng
func (s *Search) Search(ctx context.Context, ownerID int64, query string) (SearchResults, error) {
	results := SearchResults{Query: query, Pages: []models.Page{}, Todos: []models.TodoView{}}
	if query == "" {
		return results, nil
	}

	pages, err := s.store.SearchPages(ctx, ownerID, query, searchPageLimit)
	if err != nil {
		return SearchResults{}, translate(err, "search pages", nil)
	}
	todos, err := s.store.SearchTodos(ctx, ownerID, query, searchTodoLimit)
	if err != nil {
		return SearchResults{}, translate(err, "search todos", nil)
	}

	results.Pages = pages
	results.Todos = models.Views(todos, s.now())
	return results, nil
}
