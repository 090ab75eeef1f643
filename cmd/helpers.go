package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ziadkadry99/json-mapper/internal/audit"
	"github.com/ziadkadry99/json-mapper/internal/config"
	"github.com/ziadkadry99/json-mapper/internal/db"
	"github.com/ziadkadry99/json-mapper/internal/fields"
	"github.com/ziadkadry99/json-mapper/internal/llm"
	"github.com/ziadkadry99/json-mapper/internal/mapping"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `jsonmapper init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// createLLMProviderFromConfig creates the proposal provider, throttled to
// requests_per_minute when set.
func createLLMProviderFromConfig(cfg *config.Config) (llm.Provider, error) {
	provider, err := llm.NewProvider(string(cfg.Provider), cfg.ResolvedModel())
	if err != nil {
		return nil, err
	}
	return llm.NewRateLimitedProvider(provider, cfg.RequestsPerMinute), nil
}

// loadStore loads path into a new mapping store. A missing document is
// not fatal: the store starts empty and undo reports no baseline.
func loadStore(path string) (*mapping.Store, error) {
	store := mapping.NewStore()
	if err := store.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "Warning: mapping document %s not found, starting with an empty document\n", path)
			return store, nil
		}
		return nil, err
	}
	return store, nil
}

// readDocument decodes the JSON file at path preserving key order.
func readDocument(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	doc, err := fields.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return doc, nil
}

// openDatabase opens the SQLite database under data_dir.
func openDatabase(cfg *config.Config) (*db.DB, error) {
	database, err := db.OpenDir(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return database, nil
}

// recordRun writes a CLI run to the audit trail. Failures only warn.
func recordRun(cfg *config.Config, c mapping.Change) {
	database, err := openDatabase(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: audit trail unavailable: %v\n", err)
		return
	}
	defer database.Close()

	store := audit.NewStore(database).WithActor(audit.ActorSystem)
	if err := store.RecordChange(context.Background(), c); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: recording %s: %v\n", c.Op, err)
	}
}
