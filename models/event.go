package models

import "time"

// EventKind là loại sự kiện của todo
type EventKind string

const (
	EventTodoCreated   EventKind = "todo.created"
	EventTodoCompleted EventKind = "todo.completed"
	EventTodoReopened  EventKind = "todo.reopened"
	EventTodoDeleted   EventKind = "todo.deleted"
)

// Event được gửi tới các kênh thông báo khi todo thay đổi
type Event struct {
	Kind      EventKind `json:"kind"`
	UserID    int64     `json:"user_id"`
	PageID    int64     `json:"page_id"`
	TodoID    int64     `json:"todo_id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	At        time.Time `json:"at"`
}
