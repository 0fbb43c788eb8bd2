package llm

import (
	"context"
	"fmt"

	"todo-app/internal/service/agent"
)

// Message is one role/content pair of conversation history, ordered oldest
// first. Roles use the provider casing ("user", "assistant", "system").
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Result is the adapter's normal outcome for one completion turn. Tool
// execution failures are soft: they produce a Result describing the error
// rather than an error return, so the orchestrator can always persist an
// assistant reply. Only provider failures surface as errors.
type Result struct {
	Content    string
	ToolCalled string            // name of the executed tool, empty if none ran
	ToolResult *agent.TaskRecord // set when the tool ran successfully
	ToolError  string            // set when tool resolution or execution failed
}

// AgentClient is the interface for tool-calling chat completion providers.
// The history must already include the newest user message; implementations
// issue exactly one synchronous completion request.
type AgentClient interface {
	Complete(ctx context.Context, history []Message, tools *agent.Registry) (*Result, error)
}

// ServiceError wraps any failure of the completion call itself: transport,
// auth, rate limiting, malformed provider responses. The orchestrator
// converts it into the user-facing fallback; its text is never shown raw.
type ServiceError struct {
	Provider string
	Err      error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("agent service error (%s): %v", e.Provider, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}
