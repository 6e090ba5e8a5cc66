package provider

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactoryCreatesKnownProviders(t *testing.T) {
	f := NewFactory(nil)

	for _, name := range Available() {
		p, err := f.Create(name, Config{APIKey: "test-key"})
		require.NoError(t, err, name)
		assert.Equal(t, name, p.Name())
	}
}

func TestFactoryUnknownProvider(t *testing.T) {
	f := NewFactory(nil)

	_, err := f.Create("claude", Config{})
	require.Error(t, err)

	var unknown *UnknownProviderError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "claude", unknown.Name)
}

func TestFactoryCachesByNameAndModel(t *testing.T) {
	f := NewFactory(nil)

	first, err := f.Create("echo", Config{Model: "m1"})
	require.NoError(t, err)
	second, err := f.Create("echo", Config{Model: "m1"})
	require.NoError(t, err)
	assert.Same(t, first, second)

	other, err := f.Create("echo", Config{Model: "m2"})
	require.NoError(t, err)
	assert.NotSame(t, first, other)
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{}.ApplyDefaults()
	assert.InDelta(t, 0.7, float64(cfg.Temperature), 0.001)
	assert.Equal(t, 2048, cfg.MaxTokens)
	assert.Equal(t, 20*time.Second, cfg.Timeout)

	custom := Config{Temperature: 0.2, MaxTokens: 64, Timeout: time.Second}.ApplyDefaults()
	assert.InDelta(t, 0.2, float64(custom.Temperature), 0.001)
	assert.Equal(t, 64, custom.MaxTokens)
	assert.Equal(t, time.Second, custom.Timeout)
}

func TestOpenAIMissingKey(t *testing.T) {
	p := NewOpenAI(Config{}.ApplyDefaults())
	_, err := p.Generate(context.Background(), "hello", "")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestGeminiMissingKey(t *testing.T) {
	p := NewGemini(Config{}.ApplyDefaults())
	_, err := p.Generate(context.Background(), "hello", "")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}
