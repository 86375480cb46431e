package types

import "time"

// HTTPConfig holds shared HTTP settings used by backends that make network requests.
type HTTPConfig struct {
	// Timeout bounds a single generative call, including retries on 429/529.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "bookmatch/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// AIBackendName identifies the generative text service.
type AIBackendName string

const (
	BackendClaude AIBackendName = "claude"
	BackendOllama AIBackendName = "ollama"
	BackendOpenAI AIBackendName = "openai"
)

// AIConfig holds settings for the generative text client.
type AIConfig struct {
	HTTPConfig `yaml:",inline"`

	// Backend selects the service: claude, ollama, or openai.
	Backend AIBackendName `json:"backend" yaml:"backend"`

	// Model is the model identifier. Empty selects the backend default.
	Model string `json:"model" yaml:"model"`

	// BaseURL overrides the service endpoint (Ollama host, OpenAI-compatible gateway).
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`

	// APIKey is the authentication key. Ollama ignores it.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxTokens caps the length of the generated answer (default 1024).
	MaxTokens int `json:"max_tokens" yaml:"max_tokens"`

	// MaxRetries is the number of retries on HTTP 429/529 (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// CatalogConfig holds settings for the local book catalog.
type CatalogConfig struct {
	// Dir is the directory holding catalog.db.
	Dir string `json:"dir" yaml:"dir"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is one of trace, debug, info, warn, error.
	Level string `json:"level" yaml:"level"`

	// Format is console or json.
	Format string `json:"format" yaml:"format"`
}

// Config groups all settings read by the CLI.
type Config struct {
	AI      AIConfig      `json:"ai" yaml:"ai"`
	Catalog CatalogConfig `json:"catalog" yaml:"catalog"`
	Log     LogConfig     `json:"log" yaml:"log"`

	// User is the identity of the person asking for a recommendation.
	User string `json:"user,omitempty" yaml:"user,omitempty"`
}
