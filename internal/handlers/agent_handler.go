package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"zeny-ai-backend/internal/agents"
)

// AgentHandler serves the generic agent endpoints: /chat, /search and
// /agents/capabilities. Agent failures on these routes are reported in the
// response body with success=false, never as HTTP errors.
type AgentHandler struct {
	cache *agents.Cache
}

func NewAgentHandler(cache *agents.Cache) *AgentHandler {
	return &AgentHandler{cache: cache}
}

type chatResponse struct {
	Success      bool                   `json:"success"`
	Response     string                 `json:"response"`
	AgentType    string                 `json:"agent_type"`
	Capabilities []string               `json:"capabilities"`
	Metadata     map[string]interface{} `json:"metadata"`
	Error        string                 `json:"error,omitempty"`
}

type searchResponse struct {
	Success       bool                   `json:"success"`
	Query         string                 `json:"query"`
	Summary       string                 `json:"summary"`
	SearchResults map[string]interface{} `json:"search_results"`
	SourcesCount  int                    `json:"sources_count"`
	Error         string                 `json:"error,omitempty"`
}

func (h *AgentHandler) Chat(c *fiber.Ctx) error {
	var dto struct {
		Message   string                 `json:"message"`
		AgentType string                 `json:"agent_type"`
		Context   map[string]interface{} `json:"context"`
	}
	if err := c.BodyParser(&dto); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if dto.AgentType == "" {
		dto.AgentType = agents.TypeChat
	}

	agent, err := h.cache.GetOrCreate(c.Context(), dto.AgentType)
	if err != nil {
		if errors.Is(err, agents.ErrUnknownAgentType) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Unknown agent type '%s'", dto.AgentType),
			})
		}
		logrus.Errorf("error in chat endpoint: %v", err)
		return c.JSON(chatResponse{
			Success:      false,
			AgentType:    dto.AgentType,
			Capabilities: []string{},
			Metadata:     map[string]interface{}{},
			Error:        err.Error(),
		})
	}

	result, err := agent.Execute(c.Context(), dto.Message)
	if err != nil {
		logrus.Errorf("error in chat endpoint: %v", err)
		return c.JSON(chatResponse{
			Success:      false,
			AgentType:    dto.AgentType,
			Capabilities: []string{},
			Metadata:     map[string]interface{}{},
			Error:        err.Error(),
		})
	}

	metadata := result.Metadata
	if metadata == nil {
		metadata = map[string]interface{}{}
	}

	return c.JSON(chatResponse{
		Success:      result.Success,
		Response:     result.Content,
		AgentType:    dto.AgentType,
		Capabilities: agent.Capabilities(),
		Metadata:     metadata,
		Error:        result.Error,
	})
}

func (h *AgentHandler) Search(c *fiber.Ctx) error {
	var dto struct {
		Query      string `json:"query"`
		MaxResults int    `json:"max_results"`
	}
	if err := c.BodyParser(&dto); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if dto.MaxResults == 0 {
		dto.MaxResults = 5
	}

	agent, err := h.cache.GetOrCreate(c.Context(), agents.TypeSearch)
	if err != nil {
		logrus.Errorf("error in search endpoint: %v", err)
		return c.JSON(searchResponse{Success: false, Query: dto.Query, Error: err.Error()})
	}

	prompt := fmt.Sprintf(
		"Search for information about: %s. Provide a comprehensive summary with key findings.",
		dto.Query,
	)

	result, err := agent.Execute(c.Context(), prompt)
	if err != nil {
		logrus.Errorf("error in search endpoint: %v", err)
		return c.JSON(searchResponse{Success: false, Query: dto.Query, Error: err.Error()})
	}

	if !result.Success {
		return c.JSON(searchResponse{Success: false, Query: dto.Query, Error: result.Error})
	}

	metadata := result.Metadata
	if metadata == nil {
		metadata = map[string]interface{}{}
	}

	return c.JSON(searchResponse{
		Success:       true,
		Query:         dto.Query,
		Summary:       result.Content,
		SearchResults: metadata,
		SourcesCount:  sourcesCount(metadata),
	})
}

func (h *AgentHandler) Capabilities(c *fiber.Ctx) error {
	searchAgent, err := h.cache.GetOrCreate(c.Context(), agents.TypeSearch)
	if err != nil {
		logrus.Errorf("error getting capabilities: %v", err)
		return c.JSON(fiber.Map{"success": false, "error": err.Error()})
	}
	chatAgent, err := h.cache.GetOrCreate(c.Context(), agents.TypeChat)
	if err != nil {
		logrus.Errorf("error getting capabilities: %v", err)
		return c.JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"capabilities": fiber.Map{
			"search_agent": searchAgent.Capabilities(),
			"chat_agent":   chatAgent.Capabilities(),
		},
	})
}

// sourcesCount reads tool_run_count, falling back to tools_used, from agent
// metadata. JSON round-trips turn numbers into float64, so both are accepted.
func sourcesCount(metadata map[string]interface{}) int {
	for _, key := range []string{"tool_run_count", "tools_used"} {
		switch v := metadata[key].(type) {
		case int:
			return v
		case float64:
			return int(v)
		}
	}
	return 0
}
