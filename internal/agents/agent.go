package agents

import "context"

// Result is the outcome of one agent execution. Provider failures are carried
// in the result (Success=false, Error set) rather than as a Go error; callers
// never retry.
type Result struct {
	Success  bool                   `json:"success"`
	Content  string                 `json:"content"`
	Metadata map[string]interface{} `json:"metadata"`
	Error    string                 `json:"error,omitempty"`
}

// Agent is the text-generation collaborator invoked by the handlers.
type Agent interface {
	Execute(ctx context.Context, prompt string) (*Result, error)
	Capabilities() []string
}
