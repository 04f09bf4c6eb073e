package config

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"

	_ "github.com/biosecret/todopages/docs"
)

// AddSwaggerRoutes gắn trang tài liệu API tại /swagger; không cần token
func AddSwaggerRoutes(app *fiber.App) {
	app.Get("/swagger/*", swagger.New(swagger.Config{
		Title:        "Todo Pages API",
		DeepLinking:  true,
		DocExpansion: "list",
	}))
}
