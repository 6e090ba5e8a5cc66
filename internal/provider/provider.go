// Package provider abstracts text-generation backends behind a single
// interface, with a factory keyed by symbolic backend name.
package provider

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Sentinel errors returned by providers and the factory.
var (
	// ErrMissingAPIKey is returned when a backend that needs a
	// credential is invoked without one.
	ErrMissingAPIKey = errors.New("provider: missing API key")
)

// UnknownProviderError is returned by the factory for names outside the
// registered set.
type UnknownProviderError struct {
	Name string
}

func (e *UnknownProviderError) Error() string {
	return fmt.Sprintf("provider: unknown provider %q", e.Name)
}

// Response is the result of a single generation call.
type Response struct {
	Content string
	Model   string
}

// Provider is a text-generation backend. Generate must honor ctx
// cancellation and return the backend's raw text output.
type Provider interface {
	Name() string
	Generate(ctx context.Context, prompt, systemPrompt string) (*Response, error)
}

// Config carries per-provider settings. Zero values are replaced with
// defaults by ApplyDefaults.
type Config struct {
	APIKey      string
	Model       string
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration
}

const (
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 2048
	DefaultTimeout     = 20 * time.Second
)

// ApplyDefaults fills unset tuning fields. The model default is
// per-backend so it is left to each constructor.
func (c Config) ApplyDefaults() Config {
	if c.Temperature == 0 {
		c.Temperature = DefaultTemperature
	}
	if c.MaxTokens == 0 {
		c.MaxTokens = DefaultMaxTokens
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}

// Result pairs a response with its error for channel delivery.
type Result struct {
	Response *Response
	Err      error
}

// GenerateAsync runs Generate in its own goroutine and delivers the
// outcome on the returned channel. The channel is buffered so an
// abandoned call never leaks the goroutine.
func GenerateAsync(ctx context.Context, p Provider, prompt, systemPrompt string) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		resp, err := p.Generate(ctx, prompt, systemPrompt)
		ch <- Result{Response: resp, Err: err}
	}()
	return ch
}
