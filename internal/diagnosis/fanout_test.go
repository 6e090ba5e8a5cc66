package diagnosis

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuki-mtmr/SystemPromptDiagnoser/internal/logging"
	"github.com/yuki-mtmr/SystemPromptDiagnoser/internal/provider"
	"github.com/yuki-mtmr/SystemPromptDiagnoser/internal/traits"
)

// scriptedProvider routes each prompt through a user-supplied function.
type scriptedProvider struct {
	respond func(prompt string) (string, error)
}

func (s *scriptedProvider) Name() string { return "scripted" }

func (s *scriptedProvider) Generate(ctx context.Context, prompt, systemPrompt string) (*provider.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	content, err := s.respond(prompt)
	if err != nil {
		return nil, err
	}
	return &provider.Response{Content: content, Model: "scripted"}, nil
}

func testAnswers() InitialAnswers {
	return InitialAnswers{Purpose: "code review", Autonomy: "obedient"}
}

func testProfile() traits.Profile {
	return traits.Infer(testAnswers().Signals(), "en")
}

func TestGenerateVariantsAllGenerated(t *testing.T) {
	p := &scriptedProvider{respond: func(prompt string) (string, error) {
		return `{"prompt": "generated prompt", "description": "generated description"}`, nil
	}}

	variants, source := generateVariants(context.Background(), p, logging.Nop(), time.Second, "en", testAnswers(), nil, testProfile())

	require.Len(t, variants, 3)
	assert.Equal(t, SourceGenerated, source)
	for i, style := range Styles {
		assert.Equal(t, style, variants[i].Style)
		assert.Equal(t, "generated prompt", variants[i].Prompt)
	}
}

func TestGenerateVariantsPartialFailureFallsBack(t *testing.T) {
	p := &scriptedProvider{respond: func(prompt string) (string, error) {
		if strings.Contains(prompt, `"strict"`) {
			return "", errors.New("backend exploded")
		}
		return `{"prompt": "generated prompt", "description": "d"}`, nil
	}}

	variants, source := generateVariants(context.Background(), p, logging.Nop(), time.Second, "en", testAnswers(), nil, testProfile())

	require.Len(t, variants, 3)
	assert.Equal(t, SourceFallback, source)

	assert.Equal(t, "generated prompt", variants[0].Prompt)
	assert.Equal(t, "generated prompt", variants[1].Prompt)
	// The failed style carries the local template instead.
	assert.Equal(t, StyleStrict, variants[2].Style)
	assert.NotEmpty(t, variants[2].Prompt)
	assert.NotEqual(t, "generated prompt", variants[2].Prompt)
}

func TestGenerateVariantsUnparsableResponseFallsBack(t *testing.T) {
	p := &scriptedProvider{respond: func(prompt string) (string, error) {
		return "sorry, I cannot answer in JSON", nil
	}}

	variants, source := generateVariants(context.Background(), p, logging.Nop(), time.Second, "en", testAnswers(), nil, testProfile())

	require.Len(t, variants, 3)
	assert.Equal(t, SourceFallback, source)
	for _, v := range variants {
		assert.NotEmpty(t, v.Prompt)
		assert.NotEmpty(t, v.Name)
	}
}

func TestGenerateVariantsTimeoutFallsBack(t *testing.T) {
	// A backend that never answers before the shared deadline.
	slow := providerFunc(func(ctx context.Context, prompt, systemPrompt string) (*provider.Response, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})

	start := time.Now()
	variants, source := generateVariants(context.Background(), slow, logging.Nop(), 50*time.Millisecond, "en", testAnswers(), nil, testProfile())

	require.Len(t, variants, 3)
	assert.Equal(t, SourceFallback, source)
	assert.Less(t, time.Since(start), 5*time.Second)
	for i, style := range Styles {
		assert.Equal(t, style, variants[i].Style)
		assert.NotEmpty(t, variants[i].Prompt)
	}
}

func TestGenerateVariantsNilProvider(t *testing.T) {
	variants, source := generateVariants(context.Background(), nil, logging.Nop(), time.Second, "ja", InitialAnswers{Purpose: "コードレビュー", Autonomy: "obedient"}, nil, traits.Infer(traits.Signals{Autonomy: "obedient"}, "ja"))

	require.Len(t, variants, 3)
	assert.Equal(t, SourceFallback, source)
	assert.Equal(t, "ショート (Short)", variants[0].Name)
	assert.Contains(t, variants[0].Prompt, "コードレビュー")
}

// providerFunc adapts a function to provider.Provider.
type providerFunc func(ctx context.Context, prompt, systemPrompt string) (*provider.Response, error)

func (f providerFunc) Name() string { return "func" }

func (f providerFunc) Generate(ctx context.Context, prompt, systemPrompt string) (*provider.Response, error) {
	return f(ctx, prompt, systemPrompt)
}
