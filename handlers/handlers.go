package handlers

import (
	"context"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/biosecret/todopages/middleware"
	"github.com/biosecret/todopages/notify"
	"github.com/biosecret/todopages/services"
)

// Pinger kiểm tra kết nối database cho /health
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler gom các dependency dùng chung cho mọi route
type Handler struct {
	svc    *services.Services
	tokens middleware.Tokens
	hub    *notify.Hub
	db     Pinger
	log    zerolog.Logger
}

// New tạo Handler; hub có thể nil nếu không phục vụ /events
func New(svc *services.Services, tokens middleware.Tokens, hub *notify.Hub, db Pinger, log zerolog.Logger) *Handler {
	return &Handler{svc: svc, tokens: tokens, hub: hub, db: db, log: log}
}

// HandleHealthCheck godoc
// @Summary Kiểm tra trạng thái server và database
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *Handler) HandleHealthCheck(c *fiber.Ctx) error {
	if err := h.db.Ping(c.UserContext()); err != nil {
		h.log.Error().Err(err).Msg("health check failed")
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
}

// fail chuyển lỗi nghiệp vụ thành response HTTP
func (h *Handler) fail(c *fiber.Ctx, err error) error {
	if v, ok := services.AsValidation(err); ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": v.Message, "field": v.Field})
	}

	switch {
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	case errors.Is(err, services.ErrDuplicateTitle), errors.Is(err, services.ErrDuplicateUsername):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid credentials"})
	}

	h.log.Error().Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Str("request_id", middleware.GetRequestID(c)).
		Int64("user_id", middleware.UserID(c)).
		Msg("request failed")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
}

// idParam đọc :id; id không hợp lệ được coi như không tồn tại
func idParam(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, services.ErrNotFound
	}
	return id, nil
}

func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
}
