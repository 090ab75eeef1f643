package config

// qualityPresets maps each provider+quality combination to its model.
var qualityPresets = map[ProviderType]map[QualityTier]string{
	ProviderAnthropic: {
		QualityLite:   "claude-haiku-4-5-20251001",
		QualityNormal: "claude-sonnet-4-5-20250929",
		QualityMax:    "claude-sonnet-4-5-20250929",
	},
	ProviderOpenAI: {
		QualityLite:   "gpt-4o-mini",
		QualityNormal: "gpt-4o",
		QualityMax:    "gpt-4o",
	},
	ProviderOllama: {
		QualityLite:   "llama3",
		QualityNormal: "llama3",
		QualityMax:    "llama3:70b",
	},
	ProviderMiniMax: {
		QualityLite:   "MiniMax-M2.5-highspeed",
		QualityNormal: "MiniMax-M2.5",
		QualityMax:    "MiniMax-M2.5",
	},
	ProviderOpenRouter: {
		QualityLite:   "openai/gpt-4o-mini",
		QualityNormal: "openai/gpt-4o",
		QualityMax:    "anthropic/claude-sonnet-4.5",
	},
}

// DefaultConfig returns a Config with the file names the mapping workflow
// expects when nothing is configured.
func DefaultConfig() *Config {
	return &Config{
		Provider:           ProviderOpenAI,
		Model:              "gpt-4o",
		Quality:            QualityNormal,
		SourceSchema:       "j1.json",
		TargetSchema:       "j2.json",
		MappingFile:        "mapping_document.json",
		RevisedMappingFile: "mapping_document_revised.json",
		InputFile:          "j1_transactions.json",
		OutputFile:         "j2_output.json",
		ContainerKey:       "transactions",
		DataDir:            ".jsonmapper",
		MaxConcurrency:     4,
		MaxCostUSD:         1.0,
		Server: ServerConfig{
			Port: 8080,
		},
	}
}

// ModelFor returns the preset model for the given provider and tier.
// Returns the normal OpenAI model if the combination is not found.
func ModelFor(provider ProviderType, tier QualityTier) string {
	if tiers, ok := qualityPresets[provider]; ok {
		if model, ok := tiers[tier]; ok {
			return model
		}
	}
	return qualityPresets[ProviderOpenAI][QualityNormal]
}
