package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "patent-intel/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the tiered patent resolver.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxResults is the default maximum number of results to return (default 50).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// USPTOAPIKey authenticates against the USPTO Open Data Portal. When
	// empty the USPTO tier is skipped entirely.
	USPTOAPIKey string `json:"uspto_api_key,omitempty" yaml:"uspto_api_key,omitempty"`

	// EnableUSPTO controls whether the USPTO tier is attempted.
	EnableUSPTO bool `json:"enable_uspto" yaml:"enable_uspto"`

	// EnableGooglePatents controls whether the Google Patents fallback tier
	// is attempted.
	EnableGooglePatents bool `json:"enable_google_patents" yaml:"enable_google_patents"`
}

// BigQueryConfig holds settings for the CPC precision search path, which
// queries the public patents dataset through the bq CLI.
type BigQueryConfig struct {
	// Country restricts results to one country code (default "US").
	Country string `json:"country" yaml:"country"`

	// Timeout bounds a single bq invocation (default 60s).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// SnowflakeConfig holds settings for executing generated SQL through the
// snow CLI. Statement generation itself needs no configuration.
type SnowflakeConfig struct {
	// Timeout bounds a single snow invocation (default 60s).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// WorkflowConfig holds settings for audited analysis sessions.
type WorkflowConfig struct {
	// BaseDir is the directory under which session folders are created
	// (default "analysis").
	BaseDir string `json:"base_dir" yaml:"base_dir"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Search    SearchConfig    `json:"search" yaml:"search"`
	BigQuery  BigQueryConfig  `json:"bigquery" yaml:"bigquery"`
	Snowflake SnowflakeConfig `json:"snowflake" yaml:"snowflake"`
	Workflow  WorkflowConfig  `json:"workflow" yaml:"workflow"`
}
