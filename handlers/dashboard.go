package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/biosecret/todopages/middleware"
)

// HandleDashboard godoc
// @Summary Thống kê và các page gần đây
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Router / [get]
func (h *Handler) HandleDashboard(c *fiber.Ctx) error {
	overview, err := h.svc.Dashboard.Overview(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(overview)
}
