package routes

import (
	"github.com/gofiber/fiber/v2"

	"zeny-ai-backend/internal/handlers"
	"zeny-ai-backend/internal/repo"
)

func registerStatus(r fiber.Router, deps Deps) {
	statusRepo := repo.NewStatusRepository(deps.DB)
	statusHandler := handlers.NewStatusHandler(statusRepo)

	r.Post("/status", statusHandler.CreateStatusCheck)
	r.Get("/status", statusHandler.GetStatusChecks)
}
