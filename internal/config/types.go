package config

// QualityTier controls the model selection and trade-off between speed/cost and quality.
type QualityTier string

const (
	QualityLite   QualityTier = "lite"
	QualityNormal QualityTier = "normal"
	QualityMax    QualityTier = "max"
)

// ProviderType identifies an LLM provider used to propose mappings.
type ProviderType string

const (
	ProviderAnthropic  ProviderType = "anthropic"
	ProviderOpenAI     ProviderType = "openai"
	ProviderOllama     ProviderType = "ollama"
	ProviderMiniMax    ProviderType = "minimax"
	ProviderOpenRouter ProviderType = "openrouter"
)

// Config is the top-level jsonmapper configuration, corresponding to .jsonmapper.yml.
type Config struct {
	Provider           ProviderType `yaml:"provider" koanf:"provider"`
	Model              string       `yaml:"model" koanf:"model"`
	Quality            QualityTier  `yaml:"quality" koanf:"quality"`
	SourceSchema       string       `yaml:"source_schema" koanf:"source_schema"`
	TargetSchema       string       `yaml:"target_schema" koanf:"target_schema"`
	MappingFile        string       `yaml:"mapping_file" koanf:"mapping_file"`
	RevisedMappingFile string       `yaml:"revised_mapping_file" koanf:"revised_mapping_file"`
	InputFile          string       `yaml:"input_file" koanf:"input_file"`
	OutputFile         string       `yaml:"output_file" koanf:"output_file"`
	ContainerKey       string       `yaml:"container_key" koanf:"container_key"`
	DataDir            string       `yaml:"data_dir" koanf:"data_dir"`
	MaxConcurrency     int          `yaml:"max_concurrency" koanf:"max_concurrency"`
	MaxCostUSD         float64      `yaml:"max_cost_usd" koanf:"max_cost_usd"`
	RequestsPerMinute  int          `yaml:"requests_per_minute" koanf:"requests_per_minute"`
	Server             ServerConfig `yaml:"server" koanf:"server"`
}

// ServerConfig holds settings for `jsonmapper server`.
type ServerConfig struct {
	Port            int  `yaml:"port" koanf:"port"`
	AllowAllOrigins bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}
