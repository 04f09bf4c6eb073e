package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/biosecret/todopages/middleware"
)

// HandleGetProfile godoc
// @Summary Xem profile, tạo profile mặc định nếu chưa có
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Router /profile [get]
func (h *Handler) HandleGetProfile(c *fiber.Ctx) error {
	view, err := h.svc.Profiles.Get(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(view)
}

// HandleUpdateProfile godoc
// @Summary Cập nhật thông tin người dùng và tuỳ chọn profile
// @Tags profile
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Security BearerAuth
// @Router /profile [post]
func (h *Handler) HandleUpdateProfile(c *fiber.Ctx) error {
	input, err := parseProfile(c)
	if err != nil {
		return badRequest(c, err)
	}

	view, err := h.svc.Profiles.Update(c.UserContext(), middleware.UserID(c), input)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(view)
}
