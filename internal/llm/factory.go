package llm

import (
	"fmt"
	"os"
)

const (
	openRouterBaseURL = "https://openrouter.ai/api/v1"
	miniMaxBaseURL    = "https://api.minimax.io/v1"
	defaultOllamaHost = "http://localhost:11434"
)

// apiKeyVars names the environment variable holding each provider's key.
var apiKeyVars = map[string]string{
	"openai":     "OPENAI_API_KEY",
	"anthropic":  "ANTHROPIC_API_KEY",
	"openrouter": "OPENROUTER_API_KEY",
	"minimax":    "MINIMAX_API_KEY",
}

// NewProvider creates a provider by name. Supported names: "openai",
// "anthropic", "openrouter", "minimax" and "ollama".
func NewProvider(providerType string, model string) (Provider, error) {
	if providerType == "ollama" {
		host := os.Getenv("OLLAMA_HOST")
		if host == "" {
			host = defaultOllamaHost
		}
		return NewOllamaProvider(host, model), nil
	}

	envVar, ok := apiKeyVars[providerType]
	if !ok {
		return nil, fmt.Errorf("unsupported provider type: %s", providerType)
	}
	apiKey := os.Getenv(envVar)
	if apiKey == "" {
		return nil, fmt.Errorf("%s environment variable is not set", envVar)
	}

	switch providerType {
	case "anthropic":
		return NewAnthropicProvider(apiKey, model), nil
	case "openrouter":
		return NewCompatibleProvider("openrouter", apiKey, openRouterBaseURL, model), nil
	case "minimax":
		return NewCompatibleProvider("minimax", apiKey, miniMaxBaseURL, model), nil
	default:
		return NewOpenAIProvider(apiKey, model), nil
	}
}

// APIKeyEnvVar returns the environment variable read for providerType, or
// "" when the provider needs no key.
func APIKeyEnvVar(providerType string) string {
	return apiKeyVars[providerType]
}
