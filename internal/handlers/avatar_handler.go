package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"zeny-ai-backend/internal/models"
	"zeny-ai-backend/internal/repo"
)

type AvatarHandler struct {
	repo repo.AvatarRepoInterface
}

func NewAvatarHandler(avatarRepo repo.AvatarRepoInterface) *AvatarHandler {
	return &AvatarHandler{repo: avatarRepo}
}

func (h *AvatarHandler) CreateAvatar(c *fiber.Ctx) error {
	var dto struct {
		Name                   string `json:"name"`
		PersonalityDescription string `json:"personality_description"`
	}
	if err := c.BodyParser(&dto); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	// Default user until real authentication exists.
	avatar := models.Avatar{
		UserID:                 models.DefaultUserID,
		Name:                   dto.Name,
		PersonalityDescription: dto.PersonalityDescription,
	}
	if err := h.repo.Create(&avatar); err != nil {
		logrus.Errorf("error creating avatar: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create avatar",
		})
	}

	return c.JSON(avatar)
}

func (h *AvatarHandler) GetAvatars(c *fiber.Ctx) error {
	avatars, err := h.repo.ListByUser(models.DefaultUserID)
	if err != nil {
		logrus.Errorf("error listing avatars: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get avatars",
		})
	}
	if avatars == nil {
		avatars = []models.Avatar{}
	}
	return c.JSON(avatars)
}

func (h *AvatarHandler) GetAvatar(c *fiber.Ctx) error {
	// An id that is not a UUID cannot match any record, so it is a 404,
	// not a 400.
	avatarID, err := uuid.Parse(c.Params("avatarId"))
	if err != nil {
		return avatarNotFound(c)
	}

	avatar, err := h.repo.GetByID(avatarID, models.DefaultUserID)
	if errors.Is(err, repo.ErrNotFound) {
		return avatarNotFound(c)
	}
	if err != nil {
		logrus.Errorf("error getting avatar: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get avatar",
		})
	}

	return c.JSON(avatar)
}

func (h *AvatarHandler) UpdateAvatar(c *fiber.Ctx) error {
	avatarID, err := uuid.Parse(c.Params("avatarId"))
	if err != nil {
		return avatarNotFound(c)
	}

	var dto struct {
		Name                   *string `json:"name"`
		PersonalityDescription *string `json:"personality_description"`
		IsActive               *bool   `json:"is_active"`
	}
	if err := c.BodyParser(&dto); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	// Only the fields the caller supplied are merged.
	fields := map[string]interface{}{}
	if dto.Name != nil {
		fields["name"] = *dto.Name
	}
	if dto.PersonalityDescription != nil {
		fields["personality_description"] = *dto.PersonalityDescription
	}
	if dto.IsActive != nil {
		fields["is_active"] = *dto.IsActive
	}

	avatar, err := h.repo.Update(avatarID, models.DefaultUserID, fields)
	if errors.Is(err, repo.ErrNotFound) {
		return avatarNotFound(c)
	}
	if err != nil {
		logrus.Errorf("error updating avatar: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update avatar",
		})
	}

	return c.JSON(avatar)
}

func (h *AvatarHandler) DeleteAvatar(c *fiber.Ctx) error {
	avatarID, err := uuid.Parse(c.Params("avatarId"))
	if err != nil {
		return avatarNotFound(c)
	}

	// Hard delete of the avatar row only. Documents and conversations keep
	// their avatar_id and stay readable by id.
	err = h.repo.Delete(avatarID, models.DefaultUserID)
	if errors.Is(err, repo.ErrNotFound) {
		return avatarNotFound(c)
	}
	if err != nil {
		logrus.Errorf("error deleting avatar: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete avatar",
		})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Avatar deleted"})
}

func avatarNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Avatar not found"})
}
