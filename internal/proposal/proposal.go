package proposal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ziadkadry99/json-mapper/internal/fields"
	"github.com/ziadkadry99/json-mapper/internal/llm"
	"github.com/ziadkadry99/json-mapper/internal/mapping"
)

// ErrMalformedResponse is returned when the model's answer cannot be read
// as a list of candidate mappings.
var ErrMalformedResponse = errors.New("malformed proposal response")

const maxTokens = 4096

// Proposer asks an LLM for candidate mappings between two schemas.
type Proposer struct {
	provider llm.Provider
	model    string
}

// New creates a Proposer. An empty model uses the provider default.
func New(provider llm.Provider, model string) *Proposer {
	return &Proposer{provider: provider, model: model}
}

// Request builds the completion request Propose sends, so callers can
// estimate its cost without calling the provider.
func (p *Proposer) Request(source, target []fields.Field) llm.CompletionRequest {
	return llm.CompletionRequest{
		Model: p.model,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: systemPrompt},
			{Role: llm.RoleUser, Content: BuildPrompt(source, target)},
		},
		MaxTokens:   maxTokens,
		Temperature: 0,
		JSONMode:    true,
	}
}

// Propose returns the candidate mappings for source and target. A nil
// slice with a nil error means the model answered null.
func (p *Proposer) Propose(ctx context.Context, source, target []fields.Field) ([]mapping.Record, *llm.CompletionResponse, error) {
	resp, err := p.provider.Complete(ctx, p.Request(source, target))
	if err != nil {
		return nil, nil, fmt.Errorf("requesting proposal from %s: %w", p.provider.Name(), err)
	}
	candidates, err := Parse(resp.Content)
	if err != nil {
		return nil, resp, err
	}
	return candidates, resp, nil
}

// Parse reads a model answer. It accepts a bare JSON list, an object with
// a "mappings" list, or null, optionally wrapped in a Markdown code fence.
func Parse(raw string) ([]mapping.Record, error) {
	body := stripFence(raw)
	if body == "" {
		return nil, fmt.Errorf("%w: empty answer", ErrMalformedResponse)
	}

	if strings.HasPrefix(body, "{") {
		var wrapped struct {
			Mappings *[]mapping.Record `json:"mappings"`
		}
		if err := json.Unmarshal([]byte(body), &wrapped); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		if wrapped.Mappings == nil {
			return nil, fmt.Errorf("%w: object has no mappings list", ErrMalformedResponse)
		}
		return *wrapped.Mappings, nil
	}

	var candidates []mapping.Record
	if err := json.Unmarshal([]byte(body), &candidates); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return candidates, nil
}

// stripFence removes a surrounding ``` or ```json fence.
func stripFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
