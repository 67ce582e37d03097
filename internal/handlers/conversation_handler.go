package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"zeny-ai-backend/internal/agents"
	"zeny-ai-backend/internal/models"
	"zeny-ai-backend/internal/prompts"
	"zeny-ai-backend/internal/repo"
)

// ConversationHandler serves the avatar chat flow and conversation
// summarization. Unlike /chat and /search, agent failures here surface as
// HTTP 500; that asymmetry is part of the API contract.
type ConversationHandler struct {
	avatars repo.AvatarRepoInterface
	docs    repo.DocumentRepoInterface
	convs   repo.ConversationRepoInterface
	cache   *agents.Cache
}

func NewConversationHandler(
	avatarRepo repo.AvatarRepoInterface,
	docRepo repo.DocumentRepoInterface,
	convRepo repo.ConversationRepoInterface,
	cache *agents.Cache,
) *ConversationHandler {
	return &ConversationHandler{
		avatars: avatarRepo,
		docs:    docRepo,
		convs:   convRepo,
		cache:   cache,
	}
}

func (h *ConversationHandler) ChatWithAvatar(c *fiber.Ctx) error {
	var dto struct {
		AvatarID       string `json:"avatar_id"`
		VisitorID      string `json:"visitor_id"`
		Message        string `json:"message"`
		ConversationID string `json:"conversation_id"`
	}
	if err := c.BodyParser(&dto); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	avatarID, err := uuid.Parse(dto.AvatarID)
	if err != nil {
		return avatarInactiveOrMissing(c)
	}

	avatar, err := h.avatars.GetActiveByID(avatarID)
	if errors.Is(err, repo.ErrNotFound) {
		return avatarInactiveOrMissing(c)
	}
	if err != nil {
		return err
	}

	documents, err := h.docs.ListByAvatar(avatarID)
	if err != nil {
		return err
	}

	// Find or create the conversation. A new conversation is persisted
	// before the agent call, so it exists even if the call fails.
	var conversation *models.Conversation
	if dto.ConversationID == "" {
		conversation = &models.Conversation{
			AvatarID:  avatarID,
			VisitorID: dto.VisitorID,
		}
		if err := h.convs.Create(conversation); err != nil {
			return err
		}
	} else {
		convID, err := uuid.Parse(dto.ConversationID)
		if err != nil {
			return conversationNotFound(c)
		}
		conversation, err = h.convs.GetByID(convID)
		if errors.Is(err, repo.ErrNotFound) {
			return conversationNotFound(c)
		}
		if err != nil {
			return err
		}
	}

	prompt := prompts.AvatarChat(avatar, documents, conversation.Messages, dto.Message)

	agent, err := h.cache.GetOrCreate(c.Context(), agents.TypeChat)
	if err != nil {
		return err
	}
	result, err := agent.Execute(c.Context(), prompt)
	if err != nil {
		return err
	}
	if !result.Success {
		logrus.Errorf("avatar chat agent failure: %s", result.Error)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": errorOr(result.Error, "Failed to generate response"),
		})
	}

	now := time.Now().UTC()
	messages := append([]models.Message(conversation.Messages),
		models.Message{Role: models.RoleVisitor, Content: dto.Message, Timestamp: now},
		models.Message{Role: models.RoleAvatar, Content: result.Content, Timestamp: now},
	)
	if err := h.convs.ReplaceMessages(conversation.ID, messages); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success":         true,
		"conversation_id": conversation.ID,
		"response":        result.Content,
	})
}

func (h *ConversationHandler) GetConversations(c *fiber.Ctx) error {
	avatarID, err := uuid.Parse(c.Params("avatarId"))
	if err != nil {
		return c.JSON([]models.Conversation{})
	}

	convs, err := h.convs.ListByAvatar(avatarID)
	if err != nil {
		logrus.Errorf("error listing conversations: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get conversations",
		})
	}
	if convs == nil {
		convs = []models.Conversation{}
	}
	return c.JSON(convs)
}

func (h *ConversationHandler) SummarizeConversation(c *fiber.Ctx) error {
	convID, err := uuid.Parse(c.Params("conversationId"))
	if err != nil {
		return conversationNotFound(c)
	}

	conversation, err := h.convs.GetByID(convID)
	if errors.Is(err, repo.ErrNotFound) {
		return conversationNotFound(c)
	}
	if err != nil {
		return err
	}

	agent, err := h.cache.GetOrCreate(c.Context(), agents.TypeChat)
	if err != nil {
		return err
	}
	result, err := agent.Execute(c.Context(), prompts.Summary(conversation.Messages))
	if err != nil {
		return err
	}
	if !result.Success {
		logrus.Errorf("summarize agent failure: %s", result.Error)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": errorOr(result.Error, "Failed to generate summary"),
		})
	}

	// Re-summarizing overwrites the previous summary and ended_at. The
	// conversation stays open to further chat turns.
	if err := h.convs.SetSummary(convID, result.Content, time.Now().UTC()); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "summary": result.Content})
}

func avatarInactiveOrMissing(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Avatar not found or inactive"})
}

func conversationNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Conversation not found"})
}

func errorOr(msg, fallback string) string {
	if msg != "" {
		return msg
	}
	return fallback
}
