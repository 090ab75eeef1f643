package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Provider != ProviderOpenAI {
		t.Errorf("expected default provider %q, got %q", ProviderOpenAI, cfg.Provider)
	}
	if cfg.MappingFile != "mapping_document.json" {
		t.Errorf("expected default mapping_file, got %q", cfg.MappingFile)
	}
	if cfg.RevisedMappingFile != "mapping_document_revised.json" {
		t.Errorf("expected default revised_mapping_file, got %q", cfg.RevisedMappingFile)
	}
	if cfg.ContainerKey != "transactions" {
		t.Errorf("expected default container_key %q, got %q", "transactions", cfg.ContainerKey)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default server.port 8080, got %d", cfg.Server.Port)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.jsonmapper.yml")

	original := DefaultConfig()
	original.Provider = ProviderAnthropic
	original.Model = "claude-sonnet-4-5-20250929"
	original.Quality = QualityMax
	original.InputFile = "data/**/*.json"
	original.MaxCostUSD = 2.5
	original.RequestsPerMinute = 30
	original.Server = ServerConfig{Port: 9000, AllowAllOrigins: true}

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if diff := cmp.Diff(original, loaded); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yml")
	if err := os.WriteFile(path, []byte("output_file: out/result.json\nserver:\n  port: 7000\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.OutputFile != "out/result.json" || cfg.Server.Port != 7000 {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.MappingFile != "mapping_document.json" {
		t.Errorf("default mapping_file lost, got %q", cfg.MappingFile)
	}
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.Provider != ProviderOpenAI {
		t.Errorf("expected default provider, got %q", cfg.Provider)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.yml")
	if err := DefaultConfig().Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Setenv("JSONMAPPER_PROVIDER", "ollama")
	t.Setenv("JSONMAPPER_MAPPING_FILE", "custom.json")
	t.Setenv("JSONMAPPER_SERVER_PORT", "9090")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Provider != ProviderOllama {
		t.Errorf("provider override failed: got %q", loaded.Provider)
	}
	if loaded.MappingFile != "custom.json" {
		t.Errorf("mapping_file override failed: got %q", loaded.MappingFile)
	}
	if loaded.Server.Port != 9090 {
		t.Errorf("server.port override failed: got %d", loaded.Server.Port)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"empty model uses preset", func(c *Config) { c.Model = "" }, false},
		{"invalid provider", func(c *Config) { c.Provider = "invalid" }, true},
		{"empty provider", func(c *Config) { c.Provider = "" }, true},
		{"invalid quality", func(c *Config) { c.Quality = "ultra" }, true},
		{"empty mapping file", func(c *Config) { c.MappingFile = "" }, true},
		{"empty container key", func(c *Config) { c.ContainerKey = "" }, true},
		{"revised equals mapping", func(c *Config) { c.RevisedMappingFile = "./mapping_document.json" }, true},
		{"negative concurrency", func(c *Config) { c.MaxConcurrency = -1 }, true},
		{"negative cost", func(c *Config) { c.MaxCostUSD = -5 }, true},
		{"negative rate", func(c *Config) { c.RequestsPerMinute = -1 }, true},
		{"bad port", func(c *Config) { c.Server.Port = 70000 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestModelFor(t *testing.T) {
	if got := ModelFor(ProviderAnthropic, QualityLite); got != "claude-haiku-4-5-20251001" {
		t.Errorf("expected haiku model, got %q", got)
	}
	// Unknown combination falls back.
	if got := ModelFor("unknown", QualityLite); got != "gpt-4o" {
		t.Errorf("expected fallback to gpt-4o, got %q", got)
	}
}

func TestResolvedModel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ProviderOllama
	cfg.Quality = QualityMax
	cfg.Model = ""
	if got := cfg.ResolvedModel(); got != "llama3:70b" {
		t.Errorf("ResolvedModel() = %q, want preset", got)
	}
	cfg.Model = "mistral"
	if got := cfg.ResolvedModel(); got != "mistral" {
		t.Errorf("ResolvedModel() = %q, want explicit model", got)
	}
}

func TestAPIKeyEnvVar(t *testing.T) {
	tests := []struct {
		provider ProviderType
		want     string
	}{
		{ProviderAnthropic, "ANTHROPIC_API_KEY"},
		{ProviderOpenAI, "OPENAI_API_KEY"},
		{ProviderOpenRouter, "OPENROUTER_API_KEY"},
		{ProviderOllama, ""},
	}
	for _, tt := range tests {
		got := APIKeyEnvVar(tt.provider)
		if got != tt.want {
			t.Errorf("APIKeyEnvVar(%q) = %q, want %q", tt.provider, got, tt.want)
		}
	}
}
