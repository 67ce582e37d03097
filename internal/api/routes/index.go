package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"zeny-ai-backend/internal/agents"
)

// Deps carries the process-lifetime dependencies every route group needs.
// They are built once in main and passed down; handlers never reach for
// ambient globals.
type Deps struct {
	DB     *gorm.DB
	Agents *agents.Cache
}

func Register(app *fiber.App, deps Deps) {
	api := app.Group("/api")

	api.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "Hello World"})
	})

	registerStatus(api, deps)
	registerAgents(api, deps)
	registerAvatars(api, deps)
	registerConversations(api, deps)
}
