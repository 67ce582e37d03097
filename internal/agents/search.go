package agents

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/agents"
	"github.com/tmc/langchaingo/chains"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/tools"
	"github.com/tmc/langchaingo/tools/duckduckgo"
)

const (
	searchMaxResults    = 5
	searchMaxIterations = 3
	searchUserAgent     = "zeny-ai-backend/1.0"
)

// SearchAgent runs a one-shot tool-using agent over a web search tool. The
// number of tool invocations is reported in the result metadata as
// tool_run_count, which the search endpoint maps to sources_count.
type SearchAgent struct {
	model      llms.Model
	searchTool tools.Tool
}

func NewSearchAgent(model llms.Model) (*SearchAgent, error) {
	ddg, err := duckduckgo.New(searchMaxResults, searchUserAgent)
	if err != nil {
		return nil, fmt.Errorf("create search tool: %w", err)
	}
	return &SearchAgent{model: model, searchTool: ddg}, nil
}

// countedTool wraps a tool and counts how often the agent ran it.
type countedTool struct {
	inner tools.Tool
	calls *int
}

func (t *countedTool) Name() string        { return t.inner.Name() }
func (t *countedTool) Description() string { return t.inner.Description() }

func (t *countedTool) Call(ctx context.Context, input string) (string, error) {
	*t.calls++
	return t.inner.Call(ctx, input)
}

func (a *SearchAgent) Execute(ctx context.Context, prompt string) (*Result, error) {
	calls := 0
	counted := &countedTool{inner: a.searchTool, calls: &calls}

	agent := agents.NewOneShotAgent(a.model,
		[]tools.Tool{counted},
		agents.WithMaxIterations(searchMaxIterations),
	)
	executor := agents.NewExecutor(agent)

	answer, err := chains.Run(ctx, executor, prompt)
	if err != nil {
		return &Result{Success: false, Error: err.Error(), Metadata: map[string]interface{}{}}, nil
	}

	return &Result{
		Success: true,
		Content: answer,
		Metadata: map[string]interface{}{
			"tool_run_count": calls,
			"tools_used":     []string{counted.Name()},
		},
	}, nil
}

func (a *SearchAgent) Capabilities() []string {
	return []string{"web_search", "summarization", "tool_use"}
}
