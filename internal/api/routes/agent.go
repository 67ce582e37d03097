package routes

import (
	"github.com/gofiber/fiber/v2"

	"zeny-ai-backend/internal/handlers"
)

func registerAgents(r fiber.Router, deps Deps) {
	agentHandler := handlers.NewAgentHandler(deps.Agents)

	r.Post("/chat", agentHandler.Chat)
	r.Post("/search", agentHandler.Search)
	r.Get("/agents/capabilities", agentHandler.Capabilities)
}
