package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"zeny-ai-backend/internal/models"
	"zeny-ai-backend/internal/repo"
)

type DocumentHandler struct {
	docs    repo.DocumentRepoInterface
	avatars repo.AvatarRepoInterface
}

func NewDocumentHandler(docRepo repo.DocumentRepoInterface, avatarRepo repo.AvatarRepoInterface) *DocumentHandler {
	return &DocumentHandler{docs: docRepo, avatars: avatarRepo}
}

func (h *DocumentHandler) UploadDocument(c *fiber.Ctx) error {
	avatarID, err := uuid.Parse(c.Params("avatarId"))
	if err != nil {
		return avatarNotFound(c)
	}

	// The avatar must exist before anything is persisted.
	if _, err := h.avatars.GetByID(avatarID, models.DefaultUserID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return avatarNotFound(c)
		}
		logrus.Errorf("error verifying avatar: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to upload document",
		})
	}

	var dto struct {
		Filename      string `json:"filename"`
		ContentBase64 string `json:"content_base64"`
		ContentType   string `json:"content_type"`
	}
	if err := c.BodyParser(&dto); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	doc := models.TrainingDocument{
		AvatarID:      avatarID,
		Filename:      dto.Filename,
		ContentBase64: dto.ContentBase64,
		ContentType:   dto.ContentType,
	}
	if err := h.docs.Create(&doc); err != nil {
		logrus.Errorf("error creating document: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to upload document",
		})
	}

	return c.JSON(doc)
}

func (h *DocumentHandler) GetDocuments(c *fiber.Ctx) error {
	avatarID, err := uuid.Parse(c.Params("avatarId"))
	if err != nil {
		// Nothing can reference a non-UUID id; same as an empty listing.
		return c.JSON([]models.TrainingDocument{})
	}

	docs, err := h.docs.ListByAvatar(avatarID)
	if err != nil {
		logrus.Errorf("error listing documents: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get documents",
		})
	}
	if docs == nil {
		docs = []models.TrainingDocument{}
	}
	return c.JSON(docs)
}

func (h *DocumentHandler) DeleteDocument(c *fiber.Ctx) error {
	docID, err := uuid.Parse(c.Params("documentId"))
	if err != nil {
		return documentNotFound(c)
	}

	err = h.docs.Delete(docID)
	if errors.Is(err, repo.ErrNotFound) {
		return documentNotFound(c)
	}
	if err != nil {
		logrus.Errorf("error deleting document: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete document",
		})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Document deleted"})
}

func documentNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Document not found"})
}
