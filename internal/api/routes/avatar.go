package routes

import (
	"github.com/gofiber/fiber/v2"

	"zeny-ai-backend/internal/handlers"
	"zeny-ai-backend/internal/repo"
)

func registerAvatars(r fiber.Router, deps Deps) {
	avatarRepo := repo.NewAvatarRepository(deps.DB)
	docRepo := repo.NewDocumentRepository(deps.DB)

	avatarHandler := handlers.NewAvatarHandler(avatarRepo)
	docHandler := handlers.NewDocumentHandler(docRepo, avatarRepo)

	r.Post("/avatars", avatarHandler.CreateAvatar)
	r.Get("/avatars", avatarHandler.GetAvatars)
	r.Get("/avatars/:avatarId", avatarHandler.GetAvatar)
	r.Put("/avatars/:avatarId", avatarHandler.UpdateAvatar)
	r.Delete("/avatars/:avatarId", avatarHandler.DeleteAvatar)

	r.Post("/avatars/:avatarId/documents", docHandler.UploadDocument)
	r.Get("/avatars/:avatarId/documents", docHandler.GetDocuments)
	r.Delete("/documents/:documentId", docHandler.DeleteDocument)
}
