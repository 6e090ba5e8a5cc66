package provider

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEchoReflectsPromptAndSystem(t *testing.T) {
	p := NewEcho("")

	resp, err := p.Generate(context.Background(), "hello", "be terse")
	require.NoError(t, err)
	assert.Equal(t, "[System: be terse] [Echo response to: hello]", resp.Content)
	assert.Equal(t, "echo-model", resp.Model)
}

func TestEchoWithoutSystemPrompt(t *testing.T) {
	p := NewEcho("custom")

	resp, err := p.Generate(context.Background(), "hi", "")
	require.NoError(t, err)
	assert.Equal(t, "[Echo response to: hi]", resp.Content)
	assert.Equal(t, "custom", resp.Model)
}

func TestEchoHonorsCancelledContext(t *testing.T) {
	p := NewEcho("")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Generate(ctx, "hello", "")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGenerateAsyncDeliversResult(t *testing.T) {
	p := NewEcho("")

	res := <-GenerateAsync(context.Background(), p, "ping", "")
	require.NoError(t, res.Err)
	assert.Contains(t, res.Response.Content, "ping")
}
