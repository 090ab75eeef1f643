package llm

import "context"

// Provider is a chat-completion backend used to propose field mappings.
type Provider interface {
	// Complete sends a completion request and returns the response.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
	// Name identifies the backend in logs and audit entries.
	Name() string
}
