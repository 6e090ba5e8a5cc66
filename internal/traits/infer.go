package traits

// Signals carries the categorical questionnaire answers that feed
// inference. Autonomy is required; every other field may be empty,
// in which case the autonomy-derived default stands.
type Signals struct {
	Autonomy            string
	LearningScenario    string
	ConfusionScenario   string
	InfoLoadScenario    string
	FormatScenario      string
	FrustrationTriggers []string
	IdealInteraction    string
}

// autonomySeed is the baseline profile per autonomy level. Unknown
// levels fall back to the collaborative seed.
var autonomySeed = map[string]Profile{
	"obedient": {
		ThinkingPattern:    ThinkingStructural,
		LearningType:       LearningVisualText,
		DetailOrientation:  DetailHigh,
		PreferredStructure: StructureHierarchical,
		UseTables:          true,
	},
	"collaborative": {
		ThinkingPattern:    ThinkingHybrid,
		LearningType:       LearningVisualText,
		DetailOrientation:  DetailMedium,
		PreferredStructure: StructureContextual,
		UseTables:          true,
	},
	"autonomous": {
		ThinkingPattern:    ThinkingFluid,
		LearningType:       LearningKinesthetic,
		DetailOrientation:  DetailLow,
		PreferredStructure: StructureFlat,
		UseTables:          false,
	},
}

// Per-signal override tables. Each optional answer adjusts exactly one
// trait dimension; answers outside the known vocabulary are ignored.
var (
	learningToThinking = map[string]ThinkingPattern{
		"overview": ThinkingStructural,
		"tutorial": ThinkingFluid,
		"example":  ThinkingFluid,
		"question": ThinkingHybrid,
	}

	confusionToLearning = map[string]LearningType{
		"reread":   LearningVisualText,
		"example":  LearningKinesthetic,
		"simplify": LearningVisualDiagram,
		"ask":      LearningAuditory,
	}

	infoLoadToDetail = map[string]DetailOrientation{
		"comfortable": DetailHigh,
		"skim":        DetailMedium,
		"overwhelmed": DetailLow,
		"summary":     DetailMedium,
	}

	formatToStructure = map[string]PreferredStructure{
		"structured":     StructureHierarchical,
		"conversational": StructureContextual,
		"code_first":     StructureFlat,
		"table":          StructureHierarchical,
	}
)

// Infer maps questionnaire signals to a cognitive profile. It is a pure
// lookup pipeline: autonomy seeds every dimension, then each optional
// scenario answer overrides its one dimension, then the derived text
// fields are assembled in the requested language ("ja" or "en").
func Infer(sig Signals, lang string) Profile {
	p, ok := autonomySeed[sig.Autonomy]
	if !ok {
		p = autonomySeed["collaborative"]
	}

	if tp, ok := learningToThinking[sig.LearningScenario]; ok {
		p.ThinkingPattern = tp
	}
	if lt, ok := confusionToLearning[sig.ConfusionScenario]; ok {
		p.LearningType = lt
	}
	if d, ok := infoLoadToDetail[sig.InfoLoadScenario]; ok {
		p.DetailOrientation = d
	}
	if st, ok := formatToStructure[sig.FormatScenario]; ok {
		p.PreferredStructure = st
		if sig.FormatScenario == "table" {
			p.UseTables = true
		}
	}

	p.AvoidPatterns = avoidPatterns(sig, lang)
	p.FormattingPrinciples = formattingPrinciples(p, lang)
	p.PersonaSummary = personaSummary(p, sig, lang)
	return p
}

// avoidPatterns translates frustration triggers into avoidance phrases.
// Without any trigger it falls back to the autonomy-level defaults so
// the list is never empty.
func avoidPatterns(sig Signals, lang string) []string {
	table := triggerPhrases(lang)
	out := make([]string, 0, len(sig.FrustrationTriggers))
	for _, trigger := range sig.FrustrationTriggers {
		if phrase, ok := table[trigger]; ok {
			out = append(out, phrase)
		}
	}
	if len(out) > 0 {
		return out
	}

	defaults := defaultAvoid(lang)
	fallback, ok := defaults[sig.Autonomy]
	if !ok {
		fallback = defaults["collaborative"]
	}
	out = make([]string, len(fallback))
	copy(out, fallback)
	return out
}

// Principles derives ordered guidance strings per trait dimension:
// thinking pattern first, then detail, structure, learning. It is
// exposed so profiles obtained from a model reply can be completed
// with the same rules.
func Principles(p Profile, lang string) []string {
	return formattingPrinciples(p, lang)
}

func formattingPrinciples(p Profile, lang string) []string {
	t := principleTexts(lang)
	out := make([]string, 0, 7)

	switch p.ThinkingPattern {
	case ThinkingStructural:
		out = append(out, t.thinkingStructural...)
	case ThinkingFluid:
		out = append(out, t.thinkingFluid...)
	default:
		out = append(out, t.thinkingHybrid...)
	}

	switch p.DetailOrientation {
	case DetailHigh:
		out = append(out, t.detailHigh...)
	case DetailLow:
		out = append(out, t.detailLow...)
	default:
		out = append(out, t.detailMedium...)
	}

	switch p.PreferredStructure {
	case StructureHierarchical:
		out = append(out, t.structureHierarchical)
	case StructureFlat:
		out = append(out, t.structureFlat)
	default:
		out = append(out, t.structureContextual)
	}

	switch p.LearningType {
	case LearningKinesthetic:
		out = append(out, t.learningKinesthetic)
	case LearningVisualDiagram:
		out = append(out, t.learningVisualDiagram)
	}

	return out
}

// personaSummary joins canned fragments in fixed order: thinking
// pattern, detail orientation, then the ideal-interaction archetype
// when present.
func personaSummary(p Profile, sig Signals, lang string) string {
	f := personaFragments(lang)

	parts := make([]string, 0, 3)
	parts = append(parts, f.thinking[p.ThinkingPattern])
	parts = append(parts, f.detail[p.DetailOrientation])
	if frag, ok := f.interaction[sig.IdealInteraction]; ok {
		parts = append(parts, frag)
	}

	return f.join(parts)
}
