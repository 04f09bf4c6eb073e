package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/biosecret/todopages/handlers"
)

// SetupRoutes đăng ký route; auth được gắn vào mọi route trừ /health và /auth
func SetupRoutes(app *fiber.App, h *handlers.Handler, auth fiber.Handler) {
	app.Get("/health", h.HandleHealthCheck)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", h.RegisterHandler)
	authGroup.Post("/login", h.LoginHandler)
	authGroup.Post("/refresh", h.RefreshHandler)

	app.Get("/", auth, h.HandleDashboard)

	pages := app.Group("/pages", auth)
	pages.Get("/", h.HandleListPages)
	pages.Post("/create", h.HandleCreatePage)
	pages.Get("/:id", h.HandlePageDetail)
	pages.Get("/:id/edit", h.HandleGetPage)
	pages.Post("/:id/edit", h.HandleEditPage)
	pages.Post("/:id/delete", h.HandleDeletePage)
	pages.Post("/:id/todos/create", h.HandleCreateTodo)

	todos := app.Group("/todos", auth)
	todos.Post("/quick-add", h.HandleQuickAdd)
	todos.Get("/:id/edit", h.HandleGetTodo)
	todos.Post("/:id/edit", h.HandleUpdateTodo)
	todos.Post("/:id/delete", h.HandleDeleteTodo)
	todos.Post("/:id/toggle", h.HandleToggleTodo)

	app.Get("/profile", auth, h.HandleGetProfile)
	app.Post("/profile", auth, h.HandleUpdateProfile)
	app.Get("/search", auth, h.HandleSearch)
	app.Get("/events", auth, h.HandleEvents)
}
