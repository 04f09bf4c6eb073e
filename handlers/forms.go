package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/biosecret/todopages/models"
	"github.com/biosecret/todopages/services"
)

// Các định dạng due_date được chấp nhận: RFC 3339, datetime-local và ngày
var dueDateLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"}

type todoForm struct {
	Title       string `json:"title" form:"title"`
	Description string `json:"description" form:"description"`
	Priority    string `json:"priority" form:"priority"`
	DueDate     string `json:"due_date" form:"due_date"`
	Position    *int   `json:"position" form:"position"`
	Completed   *bool  `json:"completed" form:"-"`
}

func (f todoForm) input() (services.TodoInput, error) {
	due, err := parseDueDate(f.DueDate)
	if err != nil {
		return services.TodoInput{}, err
	}
	return services.TodoInput{
		Title:       f.Title,
		Description: f.Description,
		Priority:    models.Priority(f.Priority),
		DueDate:     due,
		Position:    f.Position,
		Completed:   f.Completed,
	}, nil
}

// parseDueDate trả về nil khi chuỗi rỗng; giờ không có múi giờ được hiểu là UTC
func parseDueDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, &services.ValidationError{Field: "due_date", Message: "due_date must be RFC 3339, YYYY-MM-DDTHH:MM or YYYY-MM-DD"}
}

type profileForm struct {
	FirstName            string `json:"first_name" form:"first_name"`
	LastName             string `json:"last_name" form:"last_name"`
	Email                string `json:"email" form:"email"`
	Bio                  string `json:"bio" form:"bio"`
	Theme                string `json:"theme" form:"theme"`
	NotificationsEnabled bool   `json:"notifications_enabled" form:"-"`
}

// parseProfile: với form, notifications_enabled bật khi trường có mặt (checkbox)
func parseProfile(c *fiber.Ctx) (services.ProfileInput, error) {
	var f profileForm
	if err := c.BodyParser(&f); err != nil {
		return services.ProfileInput{}, err
	}
	if !c.Is("json") {
		f.NotificationsEnabled = c.FormValue("notifications_enabled") != ""
	}
	return services.ProfileInput{
		FirstName:            f.FirstName,
		LastName:             f.LastName,
		Email:                f.Email,
		Bio:                  f.Bio,
		Theme:                models.Theme(f.Theme),
		NotificationsEnabled: f.NotificationsEnabled,
	}, nil
}

func filterFromQuery(c *fiber.Ctx) models.TodoFilter {
	return models.TodoFilter{
		Status:   models.StatusFilter(c.Query("status", models.FilterAll)),
		Priority: c.Query("priority", models.FilterAll),
		Search:   c.Query("search"),
	}
}
