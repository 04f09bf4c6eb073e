package models

import "time"

// Priority là mức độ ưu tiên của một todo
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Priorities liệt kê các mức ưu tiên hợp lệ theo thứ tự tăng dần
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

// Valid kiểm tra p có phải là một mức ưu tiên hợp lệ không
func (p Priority) Valid() bool {
	for _, known := range Priorities {
		if p == known {
			return true
		}
	}
	return false
}

var priorityColors = map[Priority]string{
	PriorityLow:    "#28a745",
	PriorityMedium: "#ffc107",
	PriorityHigh:   "#fd7e14",
	PriorityUrgent: "#dc3545",
}

const defaultPriorityColor = "#6c757d"

// Todo là một tác vụ thuộc về một Page
type Todo struct {
	ID          int64      `json:"id" db:"id"`
	PageID      int64      `json:"page_id" db:"page_id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	Completed   bool       `json:"completed" db:"completed"`
	Priority    Priority   `json:"priority" db:"priority"`
	DueDate     *time.Time `json:"due_date" db:"due_date"`
	CompletedAt *time.Time `json:"completed_at" db:"completed_at"`
	Position    int        `json:"position" db:"position"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// SetCompleted đồng bộ CompletedAt với Completed: gán thời điểm khi chuyển sang
// hoàn thành, xoá khi todo chưa hoàn thành
func (t *Todo) SetCompleted(completed bool, now time.Time) {
	t.Completed = completed
	if !completed {
		t.CompletedAt = nil
		return
	}
	if t.CompletedAt == nil {
		stamp := now
		t.CompletedAt = &stamp
	}
}

// IsOverdue kiểm tra todo đã quá hạn mà chưa hoàn thành
func (t Todo) IsOverdue(now time.Time) bool {
	if t.DueDate == nil || t.Completed {
		return false
	}
	return t.DueDate.Before(now)
}

// PriorityColor trả về màu hex theo mức ưu tiên
func (t Todo) PriorityColor() string {
	if c, ok := priorityColors[t.Priority]; ok {
		return c
	}
	return defaultPriorityColor
}

// TodoView là dạng JSON của todo kèm các thuộc tính suy ra
type TodoView struct {
	Todo
	IsOverdue     bool   `json:"is_overdue"`
	PriorityColor string `json:"priority_color"`
}

func (t Todo) View(now time.Time) TodoView {
	return TodoView{Todo: t, IsOverdue: t.IsOverdue(now), PriorityColor: t.PriorityColor()}
}

func Views(todos []Todo, now time.Time) []TodoView {
	out := make([]TodoView, 0, len(todos))
	for _, t := range todos {
		out = append(out, t.View(now))
	}
	return out
}
