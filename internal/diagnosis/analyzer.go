package diagnosis

import (
	"context"

	"github.com/yuki-mtmr/SystemPromptDiagnoser/internal/logging"
	"github.com/yuki-mtmr/SystemPromptDiagnoser/internal/provider"
	"github.com/yuki-mtmr/SystemPromptDiagnoser/internal/traits"
)

// analyzeProfile extracts a cognitive profile from all accumulated
// answers. With a backend it asks the model and validates the reply;
// any failure or invalid field falls back to local trait inference, so
// a profile is always returned. The bool reports whether the backend
// produced it.
func analyzeProfile(ctx context.Context, p provider.Provider, logger logging.Logger, answers InitialAnswers, followups []FollowupAnswer, lang string) (traits.Profile, bool) {
	local := traits.Infer(answers.Signals(), lang)
	if p == nil {
		return local, false
	}

	all := map[string]any{
		"initial":  answers,
		"followup": followups,
	}
	resp, err := p.Generate(ctx, buildAnalysisPrompt(all), jsonOnlySystemPrompt)
	if err != nil {
		logger.Warn("Profile analysis failed, using local inference: %v", err)
		return local, false
	}

	var parsed traits.Profile
	if err := parseJSONResponse(resp.Content, &parsed); err != nil {
		logger.Warn("Profile analysis returned invalid JSON, using local inference: %v", err)
		return local, false
	}
	if !validProfile(parsed) {
		logger.Warn("Profile analysis returned out-of-range fields, using local inference")
		return local, false
	}

	// Model output carries the enum fields; the derived lists stay
	// local so they are never missing or free-form garbage.
	if len(parsed.AvoidPatterns) == 0 {
		parsed.AvoidPatterns = local.AvoidPatterns
	}
	parsed.FormattingPrinciples = traits.Principles(parsed, lang)
	if parsed.PersonaSummary == "" {
		parsed.PersonaSummary = local.PersonaSummary
	}
	return parsed, true
}

func validProfile(p traits.Profile) bool {
	switch p.ThinkingPattern {
	case traits.ThinkingStructural, traits.ThinkingFluid, traits.ThinkingHybrid:
	default:
		return false
	}
	switch p.LearningType {
	case traits.LearningVisualText, traits.LearningVisualDiagram, traits.LearningAuditory, traits.LearningKinesthetic:
	default:
		return false
	}
	switch p.DetailOrientation {
	case traits.DetailHigh, traits.DetailMedium, traits.DetailLow:
	default:
		return false
	}
	switch p.PreferredStructure {
	case traits.StructureHierarchical, traits.StructureFlat, traits.StructureContextual:
	default:
		return false
	}
	return true
}
