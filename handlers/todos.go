package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/biosecret/todopages/middleware"
	"github.com/biosecret/todopages/services"
)

type quickAddInput struct {
	PageID int64  `json:"page_id" form:"page_id"`
	Title  string `json:"title" form:"title"`
}

// Tạo mới một Todo trong page
// @Summary Tạo todo trong page
// @Tags todos
// @Security BearerAuth
// @Param id path int true "Page ID"
// @Router /pages/{id}/todos/create [post]
func (h *Handler) HandleCreateTodo(c *fiber.Ctx) error {
	pageID, err := idParam(c)
	if err != nil {
		return h.fail(c, err)
	}

	var form todoForm
	if err := c.BodyParser(&form); err != nil {
		return badRequest(c, err)
	}
	input, err := form.input()
	if err != nil {
		return h.fail(c, err)
	}

	todo, err := h.svc.Todos.Create(c.UserContext(), middleware.UserID(c), pageID, input)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"todo": todo})
}

// Thêm nhanh một Todo, chỉ cần tiêu đề
// @Summary Thêm nhanh todo
// @Tags todos
// @Accept json
// @Security BearerAuth
// @Router /todos/quick-add [post]
func (h *Handler) HandleQuickAdd(c *fiber.Ctx) error {
	var input quickAddInput
	if err := c.BodyParser(&input); err != nil || input.PageID <= 0 {
		return quickAddInvalid(c, "page_id")
	}

	todo, err := h.svc.Todos.QuickAdd(c.UserContext(), middleware.UserID(c), input.PageID, input.Title)
	if v, ok := services.AsValidation(err); ok {
		return quickAddInvalid(c, v.Field)
	}
	if err != nil {
		return h.fail(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"todo": fiber.Map{
			"id":        todo.ID,
			"title":     todo.Title,
			"completed": todo.Completed,
			"priority":  todo.Priority,
		},
	})
}

// quickAddInvalid giữ cùng một dạng lỗi cho mọi dữ liệu sai của quick-add
func quickAddInvalid(c *fiber.Ctx, field string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"error":   "invalid data",
		"field":   field,
	})
}

// Lấy một Todo để điền form sửa
// @Summary Lấy todo
// @Tags todos
// @Security BearerAuth
// @Param id path int true "Todo ID"
// @Router /todos/{id}/edit [get]
func (h *Handler) HandleGetTodo(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return h.fail(c, err)
	}

	todo, err := h.svc.Todos.Get(c.UserContext(), middleware.UserID(c), id)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"todo": todo})
}

// Cập nhật một Todo
// @Summary Sửa todo
// @Tags todos
// @Security BearerAuth
// @Param id path int true "Todo ID"
// @Router /todos/{id}/edit [post]
func (h *Handler) HandleUpdateTodo(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return h.fail(c, err)
	}

	// Parse request body
	var form todoForm
	if err := c.BodyParser(&form); err != nil {
		return badRequest(c, err)
	}
	input, err := form.input()
	if err != nil {
		return h.fail(c, err)
	}

	todo, err := h.svc.Todos.Update(c.UserContext(), middleware.UserID(c), id, input)
	if err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"todo": todo})
}

// Xóa một Todo
// @Summary Xoá todo
// @Tags todos
// @Security BearerAuth
// @Param id path int true "Todo ID"
// @Router /todos/{id}/delete [post]
func (h *Handler) HandleDeleteTodo(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return h.fail(c, err)
	}

	if err := h.svc.Todos.Delete(c.UserContext(), middleware.UserID(c), id); err != nil {
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "todo deleted"})
}

// Đảo trạng thái hoàn thành của một Todo
// @Summary Đảo trạng thái hoàn thành
// @Tags todos
// @Security BearerAuth
// @Param id path int true "Todo ID"
// @Router /todos/{id}/toggle [post]
func (h *Handler) HandleToggleTodo(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return h.fail(c, err)
	}

	todo, err := h.svc.Todos.ToggleCompletion(c.UserContext(), middleware.UserID(c), id)
	if err != nil {
		return h.fail(c, err)
	}

	message := "task marked as not completed"
	if todo.Completed {
		message = "task completed"
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":   true,
		"completed": todo.Completed,
		"message":   message,
	})
}
