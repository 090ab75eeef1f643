package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to jsonmapper! Let's configure your mapping project.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Provider selection.
	providerPrompt := promptui.Select{
		Label: "Select LLM provider for mapping proposals",
		Items: []string{"openai", "anthropic", "openrouter", "minimax", "ollama"},
	}
	_, providerStr, err := providerPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("provider selection: %w", err)
	}
	cfg.Provider = ProviderType(providerStr)

	// 2. Quality tier.
	qualityPrompt := promptui.Select{
		Label: "Select quality tier",
		Items: []string{
			"lite   (fast and cheap)",
			"normal (balanced)",
			"max    (highest quality)",
		},
		CursorPos: 1,
	}
	qualityIdx, _, err := qualityPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("quality selection: %w", err)
	}
	tiers := []QualityTier{QualityLite, QualityNormal, QualityMax}
	cfg.Quality = tiers[qualityIdx]
	cfg.Model = ModelFor(cfg.Provider, cfg.Quality)

	// 3. File locations.
	files := []struct {
		label string
		dest  *string
	}{
		{"Source schema sample (j1)", &cfg.SourceSchema},
		{"Target schema sample (j2)", &cfg.TargetSchema},
		{"Mapping document", &cfg.MappingFile},
		{"Revised mapping document", &cfg.RevisedMappingFile},
		{"Source transactions batch", &cfg.InputFile},
		{"Transformed output", &cfg.OutputFile},
	}
	for _, f := range files {
		prompt := promptui.Prompt{Label: f.label, Default: *f.dest}
		value, err := prompt.Run()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", strings.ToLower(f.label), err)
		}
		if value = strings.TrimSpace(value); value != "" {
			*f.dest = value
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Check for API key.
	if envVar := APIKeyEnvVar(cfg.Provider); envVar != "" && os.Getenv(envVar) == "" {
		fmt.Printf("\nNote: Set %s in your environment before running jsonmapper propose.\n", envVar)
	}

	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}
