package llm

// Role represents the role of a message sender in a conversation.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single conversation turn.
type Message struct {
	Role    Role
	Content string
}

// CompletionRequest contains the parameters for a completion. Zero values
// fall back to the provider's model and defaultMaxTokens.
type CompletionRequest struct {
	Model       string
	Messages    []Message
	MaxTokens   int
	Temperature float64
	// JSONMode asks the backend to return a single JSON object.
	JSONMode bool
}

// CompletionResponse contains the result of a completion.
type CompletionResponse struct {
	Content      string
	InputTokens  int
	OutputTokens int
	Model        string
	FinishReason string
}

const defaultMaxTokens = 4096

func (r CompletionRequest) modelOr(fallback string) string {
	if r.Model != "" {
		return r.Model
	}
	return fallback
}

func (r CompletionRequest) maxTokens() int {
	if r.MaxTokens > 0 {
		return r.MaxTokens
	}
	return defaultMaxTokens
}
