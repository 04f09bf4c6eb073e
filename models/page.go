package models

import "time"

// DefaultPageColor là màu mặc định khi page không có màu
const DefaultPageColor = "#007bff"

// Page là một danh sách todo thuộc về một người dùng
type Page struct {
	ID          int64     `json:"id" db:"id"`
	OwnerID     int64     `json:"owner_id" db:"owner_id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Color       string    `json:"color" db:"color"`
	Active      bool      `json:"active" db:"active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// FilterAll là giá trị bộ lọc không giới hạn
const FilterAll = "all"

// StatusFilter lọc todo theo trạng thái hoàn thành
type StatusFilter string

const (
	StatusAll       StatusFilter = FilterAll
	StatusCompleted StatusFilter = "completed"
	StatusPending   StatusFilter = "pending"
)

// TodoFilter là bộ lọc todo trong trang chi tiết của page
type TodoFilter struct {
	Status   StatusFilter `json:"status"`
	Priority string       `json:"priority"`
	Search   string       `json:"search"`
}

// PageStats được đếm trên toàn bộ todo của page, không áp dụng bộ lọc
type PageStats struct {
	Total     int64 `json:"total" db:"total"`
	Completed int64 `json:"completed" db:"completed"`
	Pending   int64 `json:"pending" db:"pending"`
	Overdue   int64 `json:"overdue" db:"overdue"`
}
