package routes

import (
	"github.com/gofiber/fiber/v2"

	"zeny-ai-backend/internal/handlers"
	"zeny-ai-backend/internal/repo"
)

func registerConversations(r fiber.Router, deps Deps) {
	avatarRepo := repo.NewAvatarRepository(deps.DB)
	docRepo := repo.NewDocumentRepository(deps.DB)
	convRepo := repo.NewConversationRepository(deps.DB)

	convHandler := handlers.NewConversationHandler(avatarRepo, docRepo, convRepo, deps.Agents)

	r.Post("/chat/avatar", convHandler.ChatWithAvatar)
	r.Get("/avatars/:avatarId/conversations", convHandler.GetConversations)
	r.Post("/conversations/:conversationId/summarize", convHandler.SummarizeConversation)
}
