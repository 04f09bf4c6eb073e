package services

import (
	"context"
	"strings"
	"time"

	"github.com/biosecret/todopages/models"
	"github.com/biosecret/todopages/store"
)

// TodoInput là dữ liệu của form tạo/sửa todo.
// Position và Completed chỉ được áp dụng khi khác nil.
type TodoInput struct {
	Title       string
	Description string
	Priority    models.Priority
	DueDate     *time.Time
	Position    *int
	Completed   *bool
}

func (in TodoInput) normalize() (TodoInput, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return in, invalid("title", "title is required")
	}
	if len(in.Title) > maxTitleLength {
		return in, invalid("title", "title must be at most 200 characters")
	}
	if in.Priority == "" {
		in.Priority = models.PriorityMedium
	}
	if !in.Priority.Valid() {
		return in, invalid("priority", "priority must be one of low, medium, high, urgent")
	}
	if in.Position != nil && *in.Position < 0 {
		return in, invalid("position", "position must not be negative")
	}
	return in, nil
}

// Todos quản lý todo thông qua quyền sở hữu page
type Todos struct {
	store    *store.Store
	now      func() time.Time
	notifier Notifier
}

// Create thêm todo vào page đang hoạt động của owner
func (s *Todos) Create(ctx context.Context, ownerID, pageID int64, in TodoInput) (models.Todo, error) {
	page, err := s.store.GetActivePage(ctx, ownerID, pageID)
	if err != nil {
		return models.Todo{}, translate(err, "create todo", nil)
	}

	in, err = in.normalize()
	if err != nil {
		return models.Todo{}, err
	}

	now := s.now()
	todo := models.Todo{
		PageID:      page.ID,
		Title:       in.Title,
		Description: in.Description,
		Priority:    in.Priority,
		DueDate:     in.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.Position != nil {
		todo.Position = *in.Position
	}

	if err := s.store.CreateTodo(ctx, &todo); err != nil {
		return models.Todo{}, translate(err, "create todo", nil)
	}

	s.emit(ctx, models.EventTodoCreated, ownerID, todo)
	return todo, nil
}

// QuickAdd tạo todo chỉ với tiêu đề, các trường khác lấy mặc định
func (s *Todos) QuickAdd(ctx context.Context, ownerID, pageID int64, title string) (models.Todo, error) {
	return s.Create(ctx, ownerID, pageID, TodoInput{Title: title})
}

// Get trả về todo nếu page của nó thuộc về owner
func (s *Todos) Get(ctx context.Context, ownerID, todoID int64) (models.Todo, error) {
	todo, err := s.store.GetOwnedTodo(ctx, ownerID, todoID)
	return todo, translate(err, "get todo", nil)
}

// Update sửa todo. Chỉ kiểm tra quyền sở hữu page, không kiểm tra page còn hoạt động.
func (s *Todos) Update(ctx context.Context, ownerID, todoID int64, in TodoInput) (models.Todo, error) {
	todo, err := s.store.GetOwnedTodo(ctx, ownerID, todoID)
	if err != nil {
		return models.Todo{}, translate(err, "update todo", nil)
	}

	in, err = in.normalize()
	if err != nil {
		return models.Todo{}, err
	}

	now := s.now()
	todo.Title = in.Title
	todo.Description = in.Description
	todo.Priority = in.Priority
	todo.DueDate = in.DueDate
	if in.Position != nil {
		todo.Position = *in.Position
	}
	if in.Completed != nil {
		todo.SetCompleted(*in.Completed, now)
	}
	todo.UpdatedAt = now

	if err := s.store.UpdateTodo(ctx, ownerID, todo); err != nil {
		return models.Todo{}, translate(err, "update todo", nil)
	}
	return todo, nil
}

// Delete xoá hẳn todo
func (s *Todos) Delete(ctx context.Context, ownerID, todoID int64) error {
	todo, err := s.store.GetOwnedTodo(ctx, ownerID, todoID)
	if err != nil {
		return translate(err, "delete todo", nil)
	}

	if err := s.store.DeleteTodo(ctx, ownerID, todoID); err != nil {
		return translate(err, "delete todo", nil)
	}

	s.emit(ctx, models.EventTodoDeleted, ownerID, todo)
	return nil
}

// ToggleCompletion đảo trạng thái hoàn thành và trả về trạng thái mới
func (s *Todos) ToggleCompletion(ctx context.Context, ownerID, todoID int64) (models.Todo, error) {
	todo, err := s.store.GetOwnedTodo(ctx, ownerID, todoID)
	if err != nil {
		return models.Todo{}, translate(err, "toggle todo", nil)
	}

	now := s.now()
	todo.SetCompleted(!todo.Completed, now)
	todo.UpdatedAt = now

	if err := s.store.UpdateTodo(ctx, ownerID, todo); err != nil {
		return models.Todo{}, translate(err, "toggle todo", nil)
	}

	kind := models.EventTodoReopened
	if todo.Completed {
		kind = models.EventTodoCompleted
	}
	s.emit(ctx, kind, ownerID, todo)
	return todo, nil
}

func (s *Todos) emit(ctx context.Context, kind models.EventKind, ownerID int64, todo models.Todo) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(ctx, models.Event{
		Kind:      kind,
		UserID:    ownerID,
		PageID:    todo.PageID,
		TodoID:    todo.ID,
		Title:     todo.Title,
		Completed: todo.Completed,
		At:        s.now(),
	})
}
