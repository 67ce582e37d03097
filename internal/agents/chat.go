package agents

import (
	"context"

	"zeny-ai-backend/internal/llm"
)

// ChatAgent answers a prompt with a single chat completion, no tools.
type ChatAgent struct {
	client llm.Client
}

func NewChatAgent(client llm.Client) *ChatAgent {
	return &ChatAgent{client: client}
}

func (a *ChatAgent) Execute(ctx context.Context, prompt string) (*Result, error) {
	content, err := a.client.Chat(ctx, "", []llm.Message{
		{Role: llm.RoleUser, Content: prompt},
	})
	if err != nil {
		return &Result{Success: false, Error: err.Error(), Metadata: map[string]interface{}{}}, nil
	}

	return &Result{
		Success:  true,
		Content:  content,
		Metadata: map[string]interface{}{},
	}, nil
}

func (a *ChatAgent) Capabilities() []string {
	return []string{"conversation", "persona_chat", "summarization", "general_assistance"}
}
