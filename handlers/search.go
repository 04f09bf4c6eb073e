package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/biosecret/todopages/middleware"
)

// HandleSearch godoc
// @Summary Tìm page và todo theo tiêu đề
// @Tags search
// @Produce json
// @Security BearerAuth
// @Param q query string false "Từ khoá"
// @Router /search [get]
func (h *Handler) HandleSearch(c *fiber.Ctx) error {
	query := strings.TrimSpace(c.Query("q"))

	results, err := h.svc.Search.Search(c.UserContext(), middleware.UserID(c), query)
	if err != nil {
		return h.fail(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"query": results.Query,
		"results": fiber.Map{
			"pages": results.Pages,
			"todos": results.Todos,
		},
	})
}
