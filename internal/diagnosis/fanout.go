package diagnosis

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yuki-mtmr/SystemPromptDiagnoser/internal/logging"
	"github.com/yuki-mtmr/SystemPromptDiagnoser/internal/provider"
	"github.com/yuki-mtmr/SystemPromptDiagnoser/internal/traits"
)

// variantPayload is the JSON shape a backend returns for one style.
type variantPayload struct {
	Prompt      string `json:"prompt"`
	Description string `json:"description"`
}

// generateVariants produces one prompt variant per style. Each style is
// dispatched concurrently under one shared deadline; a style whose
// backend call fails, times out, or returns garbage is rendered from
// the local templates instead. The output always has exactly one
// variant per style, in Styles order. The returned source is
// SourceGenerated only when every style came from the backend.
func generateVariants(
	ctx context.Context,
	p provider.Provider,
	logger logging.Logger,
	timeout time.Duration,
	lang string,
	answers InitialAnswers,
	followups []FollowupAnswer,
	profile traits.Profile,
) ([]PromptVariant, Source) {
	variants := make([]PromptVariant, len(Styles))

	if p == nil {
		for i, style := range Styles {
			variants[i] = buildFallbackVariant(style, lang, answers.Purpose, answers.Autonomy, profile)
		}
		return variants, SourceFallback
	}

	if timeout <= 0 {
		timeout = provider.DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	all := map[string]any{
		"initial":  answers,
		"followup": followups,
	}

	fellBack := make([]bool, len(Styles))
	var g errgroup.Group
	for i, style := range Styles {
		i, style := i, style
		g.Go(func() error {
			variant, ok := generateOne(ctx, p, logger, lang, style, all, profile)
			if !ok {
				variant = buildFallbackVariant(style, lang, answers.Purpose, answers.Autonomy, profile)
				fellBack[i] = true
			}
			variants[i] = variant
			return nil
		})
	}
	// Workers never return errors; failures degrade to fallback.
	_ = g.Wait()

	source := SourceGenerated
	for _, fb := range fellBack {
		if fb {
			source = SourceFallback
			break
		}
	}
	return variants, source
}

// generateOne runs a single style's backend call. It reports ok=false
// on any failure so the caller can substitute the local template.
func generateOne(
	ctx context.Context,
	p provider.Provider,
	logger logging.Logger,
	lang string,
	style Style,
	allAnswers map[string]any,
	profile traits.Profile,
) (PromptVariant, bool) {
	resp, err := p.Generate(ctx, buildVariantPrompt(lang, style, allAnswers, profile), jsonOnlySystemPrompt)
	if err != nil {
		logger.Warn("Variant generation failed for style=%s: %v", style, err)
		return PromptVariant{}, false
	}

	var payload variantPayload
	if err := parseJSONResponse(resp.Content, &payload); err != nil {
		logger.Warn("Variant response unparseable for style=%s: %v", style, err)
		return PromptVariant{}, false
	}
	if payload.Prompt == "" {
		logger.Warn("Variant response empty for style=%s", style)
		return PromptVariant{}, false
	}

	if payload.Description == "" {
		payload.Description = styleDescription(style, lang)
	}
	return PromptVariant{
		Style:       style,
		Name:        styleName(style, lang),
		Prompt:      payload.Prompt,
		Description: payload.Description,
	}, true
}
