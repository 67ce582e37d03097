package agents

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"zeny-ai-backend/internal/llm"
)

const (
	TypeChat   = "chat"
	TypeSearch = "search"
)

var ErrUnknownAgentType = errors.New("unknown agent type")

// Cache constructs at most one agent per type label for the lifetime of the
// process. It is owned by main and injected into the handlers; construction is
// lazy so provider credentials are only needed once an agent route is hit.
type Cache struct {
	mu     sync.Mutex
	cfg    llm.Config
	agents map[string]Agent
}

func NewCache(cfg llm.Config) *Cache {
	return &Cache{
		cfg:    cfg,
		agents: make(map[string]Agent),
	}
}

// Register pre-seeds an agent for a label. Used by tests to substitute fakes.
func (c *Cache) Register(label string, agent Agent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.agents[label] = agent
}

func (c *Cache) GetOrCreate(ctx context.Context, label string) (Agent, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if agent, ok := c.agents[label]; ok {
		return agent, nil
	}

	var (
		agent Agent
		err   error
	)
	switch label {
	case TypeChat:
		var client llm.Client
		client, err = llm.New(ctx, c.cfg)
		if err == nil {
			agent = NewChatAgent(client)
		}
	case TypeSearch:
		// The search agent always builds on the OpenAI-compatible model:
		// it is the only provider with an agent executor behind it.
		var lc *llm.LangChainClient
		lc, err = llm.NewLangChainClient(llm.LangChainConfig{
			Model:   c.cfg.Model,
			BaseURL: c.cfg.BaseURL,
			APIKey:  c.cfg.APIKey,
		})
		if err == nil {
			agent, err = NewSearchAgent(lc.Model())
		}
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownAgentType, label)
	}
	if err != nil {
		return nil, err
	}

	c.agents[label] = agent
	return agent, nil
}
