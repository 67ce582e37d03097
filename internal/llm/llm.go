package llm

import "context"

type MessageRole string

const (
	RoleSystem    MessageRole = "system"
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// Message is one chat turn as seen by a provider.
type Message struct {
	Role    MessageRole
	Content string
}

// Client is the provider-agnostic chat completion interface. Implementations
// exist for OpenAI-compatible endpoints, Gemini and Vertex Anthropic.
type Client interface {
	Chat(ctx context.Context, systemMessage string, messages []Message) (string, error)
}
