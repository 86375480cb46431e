// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package generate sends prompts to a generative text service and returns
// the answer. The Client never fails: upstream problems of any kind are
// logged and replaced by FallbackText, which the response parser treats as
// a suggestion with no fields.
package generate

import (
	"context"
	"errors"
	"strings"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/pdiddy/bookmatch/internal/logging"
)

// FallbackText is returned in place of an answer when the generative service
// cannot be reached or replies with something unusable.
const FallbackText = "Şu anda öneri servisine ulaşılamıyor, lütfen daha sonra tekrar deneyin."

// DefaultTimeout bounds one Generate call when no timeout is configured.
const DefaultTimeout = 30 * time.Second

// ErrEmptyAnswer is returned by backends when the service replied without text.
var ErrEmptyAnswer = errors.New("empty answer from generative service")

// Backend is one generative text service.
type Backend interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// BreakerConfig tunes the circuit breaker guarding the backend.
type BreakerConfig struct {
	// FailureThreshold is the number of consecutive failures that opens the breaker.
	FailureThreshold uint32

	// OpenTimeout is how long the breaker stays open before probing again.
	OpenTimeout time.Duration
}

// DefaultBreakerConfig returns the breaker settings used when none are given.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{FailureThreshold: 5, OpenTimeout: 30 * time.Second}
}

// Client wraps a Backend with a per-call timeout and a circuit breaker.
// It is safe for concurrent use.
type Client struct {
	backend Backend
	timeout time.Duration
	breaker *gobreaker.CircuitBreaker[string]
}

// Option configures a Client.
type Option func(*clientOptions)

type clientOptions struct {
	timeout time.Duration
	breaker BreakerConfig
}

// WithTimeout bounds each Generate call. Zero or negative keeps DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(o *clientOptions) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// WithBreaker replaces the default circuit breaker settings.
func WithBreaker(cfg BreakerConfig) Option {
	return func(o *clientOptions) { o.breaker = cfg }
}

// New returns a Client for backend.
func New(backend Backend, opts ...Option) *Client {
	o := clientOptions{timeout: DefaultTimeout, breaker: DefaultBreakerConfig()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.breaker.FailureThreshold == 0 {
		o.breaker.FailureThreshold = DefaultBreakerConfig().FailureThreshold
	}

	threshold := o.breaker.FailureThreshold
	settings := gobreaker.Settings{
		Name:        "generate",
		MaxRequests: 1,
		Timeout:     o.breaker.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		// A caller giving up says nothing about the upstream. The client's
		// own timeout surfaces as DeadlineExceeded and still counts.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			l := logging.Logger()
			l.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state changed")
		},
	}

	return &Client{
		backend: backend,
		timeout: o.timeout,
		breaker: gobreaker.NewCircuitBreaker[string](settings),
	}
}

// Generate returns the service's answer to prompt, or FallbackText.
func (c *Client) Generate(ctx context.Context, prompt string) string {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	text, err := c.breaker.Execute(func() (string, error) {
		answer, err := c.backend.Generate(ctx, prompt)
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(answer) == "" {
			return "", ErrEmptyAnswer
		}
		return answer, nil
	})

	log := logging.Ctx(ctx)
	if err != nil {
		log.Warn().
			Err(err).
			Dur("elapsed", time.Since(start)).
			Bool("breaker_open", errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)).
			Msg("generative call failed, using fallback text")
		return FallbackText
	}

	log.Debug().
		Dur("elapsed", time.Since(start)).
		Int("chars", len(text)).
		Msg("generative call succeeded")
	return text
}

// State reports the circuit breaker state (closed, half-open, or open).
func (c *Client) State() string {
	return c.breaker.State().String()
}
