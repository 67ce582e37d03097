package llm

import (
	"context"
	"fmt"
)

type Provider string

const (
	ProviderLangChain       Provider = "langchain" // openai / groq / any OpenAI-compatible API
	ProviderGemini          Provider = "gemini"
	ProviderVertexAnthropic Provider = "vertex_anthropic"
)

type Config struct {
	Provider Provider

	// LangChain (OpenAI-compatible) settings.
	Model   string
	BaseURL string
	APIKey  string
}

func New(ctx context.Context, cfg Config) (Client, error) {
	switch cfg.Provider {
	case ProviderLangChain:
		return NewLangChainClient(LangChainConfig{
			Model:   cfg.Model,
			BaseURL: cfg.BaseURL,
			APIKey:  cfg.APIKey,
		})
	case ProviderGemini:
		return NewGenaiGeminiClient(ctx)
	case ProviderVertexAnthropic:
		return NewVertexAnthropicClient(), nil
	default:
		return nil, fmt.Errorf("unknown provider %s", cfg.Provider)
	}
}
