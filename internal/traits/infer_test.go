package traits

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInferObedientDefaults(t *testing.T) {
	p := Infer(Signals{Autonomy: "obedient"}, "en")

	assert.Equal(t, ThinkingStructural, p.ThinkingPattern)
	assert.Equal(t, LearningVisualText, p.LearningType)
	assert.Equal(t, DetailHigh, p.DetailOrientation)
	assert.Equal(t, StructureHierarchical, p.PreferredStructure)
	assert.True(t, p.UseTables)
}

func TestInferAutonomousDefaults(t *testing.T) {
	p := Infer(Signals{Autonomy: "autonomous"}, "en")

	assert.Equal(t, ThinkingFluid, p.ThinkingPattern)
	assert.Equal(t, LearningKinesthetic, p.LearningType)
	assert.Equal(t, DetailLow, p.DetailOrientation)
	assert.Equal(t, StructureFlat, p.PreferredStructure)
	assert.False(t, p.UseTables)
}

func TestUnknownAutonomyFallsBackToCollaborative(t *testing.T) {
	p := Infer(Signals{Autonomy: "bogus"}, "en")
	assert.Equal(t, ThinkingHybrid, p.ThinkingPattern)
	assert.Equal(t, DetailMedium, p.DetailOrientation)
}

func TestExplicitSignalOverridesAutonomyDefault(t *testing.T) {
	p := Infer(Signals{Autonomy: "autonomous", InfoLoadScenario: "comfortable"}, "en")
	assert.Equal(t, DetailHigh, p.DetailOrientation)

	// Untouched dimensions keep the autonomy seed.
	assert.Equal(t, ThinkingFluid, p.ThinkingPattern)
	assert.Equal(t, StructureFlat, p.PreferredStructure)
}

func TestEachSignalTouchesOneDimension(t *testing.T) {
	base := Infer(Signals{Autonomy: "obedient"}, "en")

	p := Infer(Signals{Autonomy: "obedient", LearningScenario: "tutorial"}, "en")
	assert.Equal(t, ThinkingFluid, p.ThinkingPattern)
	assert.Equal(t, base.LearningType, p.LearningType)

	p = Infer(Signals{Autonomy: "obedient", ConfusionScenario: "simplify"}, "en")
	assert.Equal(t, LearningVisualDiagram, p.LearningType)
	assert.Equal(t, base.DetailOrientation, p.DetailOrientation)

	p = Infer(Signals{Autonomy: "obedient", FormatScenario: "code_first"}, "en")
	assert.Equal(t, StructureFlat, p.PreferredStructure)
}

func TestTableFormatEnablesTables(t *testing.T) {
	p := Infer(Signals{Autonomy: "autonomous", FormatScenario: "table"}, "en")
	assert.Equal(t, StructureHierarchical, p.PreferredStructure)
	assert.True(t, p.UseTables)
}

func TestUnknownSignalValuesIgnored(t *testing.T) {
	p := Infer(Signals{
		Autonomy:          "obedient",
		LearningScenario:  "nope",
		ConfusionScenario: "nope",
		InfoLoadScenario:  "nope",
		FormatScenario:    "nope",
	}, "en")
	assert.Equal(t, Infer(Signals{Autonomy: "obedient"}, "en"), p)
}

func TestFrustrationTriggersBecomeAvoidPhrases(t *testing.T) {
	p := Infer(Signals{
		Autonomy:            "collaborative",
		FrustrationTriggers: []string{"too_long", "emoji", "unknown_trigger"},
	}, "en")

	require.Len(t, p.AvoidPatterns, 2)
	assert.Equal(t, "long answers that bury the point", p.AvoidPatterns[0])
	assert.Equal(t, "excessive emojis and decoration", p.AvoidPatterns[1])
}

func TestAvoidListNeverEmpty(t *testing.T) {
	for _, autonomy := range []string{"obedient", "collaborative", "autonomous"} {
		for _, lang := range []string{"en", "ja"} {
			p := Infer(Signals{Autonomy: autonomy}, lang)
			assert.NotEmpty(t, p.AvoidPatterns, "%s/%s", autonomy, lang)
		}
	}
}

func TestPersonaSummaryNeverEmpty(t *testing.T) {
	for _, autonomy := range []string{"obedient", "collaborative", "autonomous"} {
		for _, lang := range []string{"en", "ja"} {
			p := Infer(Signals{Autonomy: autonomy}, lang)
			assert.NotEmpty(t, p.PersonaSummary, "%s/%s", autonomy, lang)
		}
	}
}

func TestPersonaSummaryIncludesInteractionFragment(t *testing.T) {
	with := Infer(Signals{Autonomy: "collaborative", IdealInteraction: "mentor"}, "en")
	without := Infer(Signals{Autonomy: "collaborative"}, "en")
	assert.NotEqual(t, without.PersonaSummary, with.PersonaSummary)
	assert.Contains(t, with.PersonaSummary, "experienced senior")
}

func TestFormattingPrinciplesOrder(t *testing.T) {
	p := Infer(Signals{Autonomy: "obedient"}, "en")

	// structural(2) + high detail(2) + hierarchical(1); visual_text adds none.
	require.Len(t, p.FormattingPrinciples, 5)
	assert.Contains(t, p.FormattingPrinciples[0], "macro")
	assert.Contains(t, p.FormattingPrinciples[2], "comprehensive")
	assert.Contains(t, p.FormattingPrinciples[4], "hierarchy")
}

func TestKinestheticLearningAppendsPrinciple(t *testing.T) {
	p := Infer(Signals{Autonomy: "autonomous"}, "en")
	require.NotEmpty(t, p.FormattingPrinciples)
	assert.Contains(t, p.FormattingPrinciples[len(p.FormattingPrinciples)-1], "hands-on")
}

func TestInferDeterministic(t *testing.T) {
	sig := Signals{
		Autonomy:            "collaborative",
		LearningScenario:    "overview",
		ConfusionScenario:   "ask",
		InfoLoadScenario:    "summary",
		FormatScenario:      "structured",
		FrustrationTriggers: []string{"too_casual", "uncertain"},
		IdealInteraction:    "teacher",
	}

	first, err := json.Marshal(Infer(sig, "ja"))
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := json.Marshal(Infer(sig, "ja"))
		require.NoError(t, err)
		assert.Equal(t, string(first), string(again))
	}
}
