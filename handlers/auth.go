package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/biosecret/todopages/middleware"
	"github.com/biosecret/todopages/services"
)

type loginInput struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// RegisterHandler godoc
// @Summary Đăng ký người dùng mới
// @Tags auth
// @Accept json
// @Produce json
// @Param body body services.Registration true "Thông tin đăng ký"
// @Success 201 {object} models.User
// @Failure 400,409 {object} map[string]string
// @Router /auth/register [post]
func (h *Handler) RegisterHandler(c *fiber.Ctx) error {
	var input services.Registration
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, err)
	}

	// Tạo người dùng và profile mặc định
	user, err := h.svc.Accounts.Register(c.UserContext(), input)
	if err != nil {
		return h.fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "user registered successfully",
		"user":    user,
	})
}

// LoginHandler godoc
// @Summary Đăng nhập, trả về access token và refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func (h *Handler) LoginHandler(c *fiber.Ctx) error {
	var input loginInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, err)
	}

	// Kiểm tra thông tin người dùng từ database
	user, err := h.svc.Accounts.Authenticate(c.UserContext(), input.Username, input.Password)
	if err != nil {
		return h.fail(c, err)
	}

	// Tạo access token và refresh token
	accessToken, refreshToken, err := h.tokens.Pair(user.ID)
	if err != nil {
		return h.fail(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}

type refreshInput struct {
	RefreshToken string `json:"refresh_token" form:"refresh_token"`
}

// RefreshHandler godoc
// @Summary Đổi refresh token lấy cặp token mới
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /auth/refresh [post]
func (h *Handler) RefreshHandler(c *fiber.Ctx) error {
	var input refreshInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, err)
	}

	userID, err := h.tokens.Parse(input.RefreshToken, middleware.RefreshToken)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	// Người dùng có thể đã bị xoá sau khi token được cấp
	user, err := h.svc.Accounts.Get(c.UserContext(), userID)
	if errors.Is(err, services.ErrNotFound) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": middleware.ErrInvalidToken.Error()})
	}
	if err != nil {
		return h.fail(c, err)
	}

	accessToken, refreshToken, err := h.tokens.Pair(user.ID)
	if err != nil {
		return h.fail(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}
