package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/ziadkadry99/json-mapper/internal/llm"
)

// DefaultPath is the configuration file read when --config is not given.
const DefaultPath = ".jsonmapper.yml"

// envPrefix marks environment overrides: JSONMAPPER_MAPPING_FILE sets
// mapping_file and JSONMAPPER_SERVER_PORT sets server.port.
const envPrefix = "JSONMAPPER_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (JSONMAPPER_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
	if rest, ok := strings.CutPrefix(key, "server_"); ok {
		return "server." + rest
	}
	return key
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// validProviders is the set of recognized provider values.
var validProviders = map[ProviderType]bool{
	ProviderAnthropic:  true,
	ProviderOpenAI:     true,
	ProviderOllama:     true,
	ProviderMiniMax:    true,
	ProviderOpenRouter: true,
}

// validQualityTiers is the set of recognized quality tier values.
var validQualityTiers = map[QualityTier]bool{
	QualityLite:   true,
	QualityNormal: true,
	QualityMax:    true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Provider == "" {
		return fmt.Errorf("provider is required")
	}
	if !validProviders[c.Provider] {
		return fmt.Errorf("invalid provider %q: must be one of anthropic, openai, ollama, minimax, openrouter", c.Provider)
	}

	if c.Quality != "" && !validQualityTiers[c.Quality] {
		return fmt.Errorf("invalid quality %q: must be one of lite, normal, max", c.Quality)
	}

	required := []struct{ key, value string }{
		{"mapping_file", c.MappingFile},
		{"revised_mapping_file", c.RevisedMappingFile},
		{"output_file", c.OutputFile},
		{"container_key", c.ContainerKey},
		{"data_dir", c.DataDir},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("%s is required", r.key)
		}
	}

	// The loaded document is the undo baseline; saving over it would
	// make undo restore the edited version.
	if filepath.Clean(c.RevisedMappingFile) == filepath.Clean(c.MappingFile) {
		return fmt.Errorf("revised_mapping_file must differ from mapping_file")
	}

	if c.MaxConcurrency < 0 {
		return fmt.Errorf("max_concurrency must be non-negative")
	}
	if c.MaxCostUSD < 0 {
		return fmt.Errorf("max_cost_usd must be non-negative")
	}
	if c.RequestsPerMinute < 0 {
		return fmt.Errorf("requests_per_minute must be non-negative")
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d", c.Server.Port)
	}

	return nil
}

// ResolvedModel returns the configured model, or the quality preset for
// the provider when none is set.
func (c *Config) ResolvedModel() string {
	if c.Model != "" {
		return c.Model
	}
	return ModelFor(c.Provider, c.Quality)
}

// APIKeyEnvVar returns the environment variable holding the API key of
// the given provider, or "" when the provider needs none.
func APIKeyEnvVar(provider ProviderType) string {
	return llm.APIKeyEnvVar(string(provider))
}
