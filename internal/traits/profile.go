// Package traits derives a cognitive profile from questionnaire answers.
// Inference is a pure table lookup so the same answers always produce the
// same profile, with or without a language model in the loop.
package traits

// ThinkingPattern describes how explanations should be sequenced.
type ThinkingPattern string

const (
	ThinkingStructural ThinkingPattern = "structural"
	ThinkingFluid      ThinkingPattern = "fluid"
	ThinkingHybrid     ThinkingPattern = "hybrid"
)

// LearningType describes the modality the user absorbs best.
type LearningType string

const (
	LearningVisualText    LearningType = "visual_text"
	LearningVisualDiagram LearningType = "visual_diagram"
	LearningAuditory      LearningType = "auditory"
	LearningKinesthetic   LearningType = "kinesthetic"
)

// DetailOrientation describes how much depth answers should carry.
type DetailOrientation string

const (
	DetailHigh   DetailOrientation = "high"
	DetailMedium DetailOrientation = "medium"
	DetailLow    DetailOrientation = "low"
)

// PreferredStructure describes how responses should be laid out.
type PreferredStructure string

const (
	StructureHierarchical PreferredStructure = "hierarchical"
	StructureFlat         PreferredStructure = "flat"
	StructureContextual   PreferredStructure = "contextual"
)

// Profile is the inferred cognitive profile. PersonaSummary is never empty
// and the slice fields are never nil.
type Profile struct {
	ThinkingPattern      ThinkingPattern    `json:"thinking_pattern"`
	LearningType         LearningType       `json:"learning_type"`
	DetailOrientation    DetailOrientation  `json:"detail_orientation"`
	PreferredStructure   PreferredStructure `json:"preferred_structure"`
	UseTables            bool               `json:"use_tables"`
	AvoidPatterns        []string           `json:"avoid_patterns"`
	FormattingPrinciples []string           `json:"formatting_principles"`
	PersonaSummary       string             `json:"persona_summary"`
}
