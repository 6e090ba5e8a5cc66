package diagnosis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONFencedBlock(t *testing.T) {
	raw := "Here is the result:\n```json\n{\"a\": 1}\n```\nDone."
	assert.Equal(t, `{"a": 1}`, extractJSON(raw))
}

func TestExtractJSONPlainFence(t *testing.T) {
	raw := "```\n{\"a\": 1}\n```"
	assert.Equal(t, `{"a": 1}`, extractJSON(raw))
}

func TestExtractJSONUnfenced(t *testing.T) {
	assert.Equal(t, `{"a": 1}`, extractJSON("  {\"a\": 1}\n"))
}

func TestExtractJSONUnterminatedFence(t *testing.T) {
	assert.Equal(t, `{"a": 1}`, extractJSON("```json\n{\"a\": 1}"))
}

func TestParseJSONResponse(t *testing.T) {
	var out struct {
		Prompt string `json:"prompt"`
	}
	err := parseJSONResponse("```json\n{\"prompt\": \"hello\"}\n```", &out)
	require.NoError(t, err)
	assert.Equal(t, "hello", out.Prompt)
}

func TestParseJSONResponseInvalid(t *testing.T) {
	var out map[string]any
	err := parseJSONResponse("not json at all", &out)
	assert.Error(t, err)
}
