// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make
// network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ScholarConfig holds settings for the academic search component.
type ScholarConfig struct {
	HTTPConfig `yaml:",inline"`

	// ProxyBaseURL is the base URL of the API proxy that fronts both
	// academic backends. Mandatory: the scholar service refuses to
	// construct without it.
	ProxyBaseURL string `json:"proxy_base_url" yaml:"proxy_base_url"`

	// MaxResults is the default number of results per query (default 3).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// SemanticScholarAPIKey raises Semantic Scholar rate limits when set.
	SemanticScholarAPIKey string `json:"semantic_scholar_api_key,omitempty" yaml:"semantic_scholar_api_key,omitempty"`
}

// ReaderConfig holds settings for the page reader.
type ReaderConfig struct {
	// Timeout bounds a single render, navigation included (default 30s).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the browser identification string presented while
	// rendering. A realistic desktop Chrome string reduces anti-bot
	// rejection.
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// StoreConfig holds settings for the document store.
type StoreConfig struct {
	// DocsDir is the fixed root directory for named artifacts. Names are
	// always resolved under it; callers never supply paths.
	DocsDir string `json:"docs_dir" yaml:"docs_dir"`
}

// ReviewConfig holds settings for the document review loop.
type ReviewConfig struct {
	// Model is the generation model identifier.
	Model string `json:"model" yaml:"model"`

	// APIKey authenticates against the generation API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// BaseURL is the generation API base URL (default Anthropic's).
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`

	// MaxSteps is the tool-call budget per review session (default 6).
	MaxSteps int `json:"max_steps" yaml:"max_steps"`

	// MaxTokens caps each generation response (default 1024).
	MaxTokens int `json:"max_tokens" yaml:"max_tokens"`

	// Timeout bounds each generation API call (default 60s).
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// AssistantConfig groups all component configurations.
type AssistantConfig struct {
	Scholar ScholarConfig `json:"scholar" yaml:"scholar"`
	Reader  ReaderConfig  `json:"reader" yaml:"reader"`
	Store   StoreConfig   `json:"store" yaml:"store"`
	Review  ReviewConfig  `json:"review" yaml:"review"`
}

// Defaults applied when the config file leaves fields unset.
const (
	DefaultScholarTimeout   = 20 * time.Second
	DefaultRenderTimeout    = 30 * time.Second
	DefaultScholarResults   = 3
	DefaultReviewSteps      = 6
	DefaultReviewMaxTokens  = 1024
	DefaultReviewTimeout    = 60 * time.Second
	DefaultScholarUserAgent = "Academic-Project-Bot/1.0"
	DefaultDocsDir          = "documents"

	// DefaultBrowserUserAgent is presented by the headless renderer.
	DefaultBrowserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// WithDefaults returns a copy of cfg with zero-valued fields replaced by
// the package defaults.
func (c AssistantConfig) WithDefaults() AssistantConfig {
	if c.Scholar.Timeout <= 0 {
		c.Scholar.Timeout = DefaultScholarTimeout
	}
	if c.Scholar.UserAgent == "" {
		c.Scholar.UserAgent = DefaultScholarUserAgent
	}
	if c.Scholar.MaxResults <= 0 {
		c.Scholar.MaxResults = DefaultScholarResults
	}
	if c.Reader.Timeout <= 0 {
		c.Reader.Timeout = DefaultRenderTimeout
	}
	if c.Reader.UserAgent == "" {
		c.Reader.UserAgent = DefaultBrowserUserAgent
	}
	if c.Store.DocsDir == "" {
		c.Store.DocsDir = DefaultDocsDir
	}
	if c.Review.MaxSteps <= 0 {
		c.Review.MaxSteps = DefaultReviewSteps
	}
	if c.Review.MaxTokens <= 0 {
		c.Review.MaxTokens = DefaultReviewMaxTokens
	}
	if c.Review.Timeout <= 0 {
		c.Review.Timeout = DefaultReviewTimeout
	}
	return c
}
