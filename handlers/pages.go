package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/biosecret/todopages/middleware"
	"github.com/biosecret/todopages/services"
)

// HandleListPages godoc
// @Summary Danh sách page đang hoạt động, mới tạo trước
// @Tags pages
// @Produce json
// @Security BearerAuth
// @Router /pages [get]
func (h *Handler) HandleListPages(c *fiber.Ctx) error {
	pages, err := h.svc.Pages.List(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"pages": pages})
}

// HandleCreatePage godoc
// @Summary Tạo page
// @Tags pages
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Security BearerAuth
// @Param body body services.PageInput true "Page"
// @Router /pages/create [post]
func (h *Handler) HandleCreatePage(c *fiber.Ctx) error {
	var input services.PageInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, err)
	}

	page, err := h.svc.Pages.Create(c.UserContext(), middleware.UserID(c), input)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"page": page})
}

// HandlePageDetail godoc
// @Summary Chi tiết page với todo đã lọc và thống kê
// @Tags pages
// @Produce json
// @Security BearerAuth
// @Param id path int true "Page ID"
// @Param status query string false "all, completed, pending"
// @Param priority query string false "all, low, medium, high, urgent"
// @Param search query string false "Tìm trong tiêu đề và mô tả"
// @Router /pages/{id} [get]
func (h *Handler) HandlePageDetail(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return h.fail(c, err)
	}

	detail, err := h.svc.Pages.Detail(c.UserContext(), middleware.UserID(c), id, filterFromQuery(c))
	if err != nil {
		return h.fail(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"page":            detail.Page,
		"todos":           detail.Todos,
		"page_stats":      detail.Stats,
		"filter_status":   detail.Filter.Status,
		"filter_priority": detail.Filter.Priority,
		"search_query":    detail.Filter.Search,
	})
}

// HandleGetPage godoc
// @Summary Lấy page để điền form sửa
// @Tags pages
// @Produce json
// @Security BearerAuth
// @Param id path int true "Page ID"
// @Router /pages/{id}/edit [get]
func (h *Handler) HandleGetPage(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return h.fail(c, err)
	}

	page, err := h.svc.Pages.Get(c.UserContext(), middleware.UserID(c), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"page": page})
}

// HandleEditPage godoc
// @Summary Sửa page
// @Tags pages
// @Security BearerAuth
// @Param id path int true "Page ID"
// @Router /pages/{id}/edit [post]
func (h *Handler) HandleEditPage(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return h.fail(c, err)
	}

	var input services.PageInput
	if err := c.BodyParser(&input); err != nil {
		return badRequest(c, err)
	}

	page, err := h.svc.Pages.Update(c.UserContext(), middleware.UserID(c), id, input)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"page": page})
}

// HandleDeletePage godoc
// @Summary Xoá mềm page
// @Tags pages
// @Security BearerAuth
// @Param id path int true "Page ID"
// @Router /pages/{id}/delete [post]
func (h *Handler) HandleDeletePage(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return h.fail(c, err)
	}

	if err := h.svc.Pages.SoftDelete(c.UserContext(), middleware.UserID(c), id); err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "page deleted"})
}
