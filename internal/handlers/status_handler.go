package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"zeny-ai-backend/internal/models"
	"zeny-ai-backend/internal/repo"
)

type StatusHandler struct {
	repo repo.StatusRepoInterface
}

func NewStatusHandler(statusRepo repo.StatusRepoInterface) *StatusHandler {
	return &StatusHandler{repo: statusRepo}
}

func (h *StatusHandler) CreateStatusCheck(c *fiber.Ctx) error {
	var dto struct {
		ClientName string `json:"client_name"`
	}
	if err := c.BodyParser(&dto); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	check := models.StatusCheck{ClientName: dto.ClientName}
	if err := h.repo.Create(&check); err != nil {
		logrus.Errorf("error creating status check: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create status check",
		})
	}

	return c.JSON(check)
}

func (h *StatusHandler) GetStatusChecks(c *fiber.Ctx) error {
	checks, err := h.repo.List()
	if err != nil {
		logrus.Errorf("error listing status checks: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get status checks",
		})
	}
	if checks == nil {
		checks = []models.StatusCheck{}
	}
	return c.JSON(checks)
}
