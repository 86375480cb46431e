// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"fmt"
	"net/http"

	"github.com/pdiddy/bookmatch/pkg/types"
)

// NewBackend selects a Backend from cfg. An empty backend name means Claude.
func NewBackend(cfg types.AIConfig) (Backend, error) {
	httpClient := &http.Client{Timeout: cfg.Timeout}

	switch cfg.Backend {
	case types.BackendClaude, "":
		return &ClaudeBackend{
			APIKey:     cfg.APIKey,
			Model:      cfg.Model,
			MaxTokens:  cfg.MaxTokens,
			MaxRetries: cfg.MaxRetries,
			UserAgent:  cfg.UserAgent,
			Client:     httpClient,
		}, nil
	case types.BackendOllama:
		return &OllamaBackend{
			BaseURL:    cfg.BaseURL,
			Model:      cfg.Model,
			MaxRetries: cfg.MaxRetries,
			Client:     httpClient,
		}, nil
	case types.BackendOpenAI:
		return NewOpenAIBackend(cfg.APIKey, cfg.BaseURL, cfg.Model, cfg.MaxTokens, httpClient), nil
	default:
		return nil, fmt.Errorf("unknown AI backend %q (want claude, ollama, or openai)", cfg.Backend)
	}
}

// NewClient builds a Backend from cfg and wraps it in a Client.
func NewClient(cfg types.AIConfig) (*Client, error) {
	backend, err := NewBackend(cfg)
	if err != nil {
		return nil, err
	}
	return New(backend, WithTimeout(cfg.Timeout)), nil
}
