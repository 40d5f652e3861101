package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Zero disables the timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "pubmed-fetcher/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// EUtilsConfig identifies the E-utilities endpoint and the caller.
// Email and Tool are the identification parameters NCBI asks clients to send;
// they are not credentials.
type EUtilsConfig struct {
	// BaseURL is the E-utilities root (e.g. "https://eutils.ncbi.nlm.nih.gov/entrez/eutils").
	BaseURL string `json:"base_url" yaml:"base_url"`

	// Email is sent as the "email" parameter when set.
	Email string `json:"email,omitempty" yaml:"email,omitempty"`

	// Tool is sent as the "tool" parameter when set.
	Tool string `json:"tool,omitempty" yaml:"tool,omitempty"`
}

// SearchConfig holds settings for the search stage.
type SearchConfig struct {
	HTTPConfig   `yaml:",inline"`
	EUtilsConfig `yaml:",inline"`

	// MaxResults caps the number of identifiers returned (default 6).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// FetchConfig holds settings for the detail-fetch stage.
type FetchConfig struct {
	HTTPConfig   `yaml:",inline"`
	EUtilsConfig `yaml:",inline"`

	// Concurrency bounds the number of identifiers fetched in parallel.
	// Zero uses the runtime default (GOMAXPROCS).
	Concurrency int `json:"concurrency" yaml:"concurrency"`
}

// ExportFormat selects the export file format.
type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatJSON ExportFormat = "json"
	FormatYAML ExportFormat = "yaml"
)

// ExportConfig holds settings for the export stage.
type ExportConfig struct {
	// Output is the destination file path (default "pubmed_results.csv").
	Output string `json:"output" yaml:"output"`

	// Format selects csv, json, or yaml.
	Format ExportFormat `json:"format" yaml:"format"`
}

// PipelineConfig groups all stage configurations for one run.
type PipelineConfig struct {
	Search SearchConfig `json:"search" yaml:"search"`
	Fetch  FetchConfig  `json:"fetch" yaml:"fetch"`
	Export ExportConfig `json:"export" yaml:"export"`
}
