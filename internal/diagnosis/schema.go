// Package diagnosis implements the adaptive diagnosis flow: a short
// multi-phase questionnaire that produces three tailored system-prompt
// variants. The phase controller drives sessions, the fan-out generates
// variants concurrently with deterministic fallback, and the trait
// tables supply the cognitive profile when no backend is configured.
package diagnosis

import (
	"fmt"

	"github.com/yuki-mtmr/SystemPromptDiagnoser/internal/traits"
)

// Style identifies one of the three produced prompt variants.
type Style string

const (
	StyleShort    Style = "short"
	StyleStandard Style = "standard"
	StyleStrict   Style = "strict"
)

// Styles is the fixed variant set, in output order.
var Styles = []Style{StyleShort, StyleStandard, StyleStrict}

// Source records whether a generative backend actually produced the
// result.
type Source string

const (
	SourceGenerated Source = "generated"
	SourceFallback  Source = "fallback"
)

// Phase is the session state returned to the client.
type Phase string

const (
	PhaseFollowup Phase = "followup"
	PhaseComplete Phase = "complete"
)

// InitialAnswers is the first questionnaire page. Purpose and autonomy
// are required; the scenario fields are optional trait signals.
type InitialAnswers struct {
	Purpose  string `json:"purpose" binding:"required"`
	Autonomy string `json:"autonomy" binding:"required,oneof=obedient collaborative autonomous"`

	LearningScenario    string   `json:"learning_scenario,omitempty" binding:"omitempty,oneof=overview tutorial example question"`
	ConfusionScenario   string   `json:"confusion_scenario,omitempty" binding:"omitempty,oneof=reread example simplify ask"`
	InfoLoadScenario    string   `json:"info_load_scenario,omitempty" binding:"omitempty,oneof=comfortable skim overwhelmed summary"`
	FormatScenario      string   `json:"format_scenario,omitempty" binding:"omitempty,oneof=structured conversational code_first table"`
	FrustrationScenario []string `json:"frustration_scenario,omitempty" binding:"omitempty,dive,oneof=too_casual too_long too_abstract too_detailed uncertain emoji"`
	IdealInteraction    string   `json:"ideal_interaction,omitempty" binding:"omitempty,oneof=mentor colleague assistant teacher"`
}

// ValidationError reports an initial answer outside its allowed
// vocabulary.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("initial answers: %s %s", e.Field, e.Reason)
}

// Validate enforces the same constraints as the binding tags for
// callers that construct answers outside an HTTP request.
func (a InitialAnswers) Validate() error {
	if a.Purpose == "" {
		return &ValidationError{Field: "purpose", Reason: "is required"}
	}
	switch a.Autonomy {
	case "obedient", "collaborative", "autonomous":
	default:
		return &ValidationError{Field: "autonomy", Reason: fmt.Sprintf("has invalid value %q", a.Autonomy)}
	}
	if err := oneOf("learning_scenario", a.LearningScenario, "overview", "tutorial", "example", "question"); err != nil {
		return err
	}
	if err := oneOf("confusion_scenario", a.ConfusionScenario, "reread", "example", "simplify", "ask"); err != nil {
		return err
	}
	if err := oneOf("info_load_scenario", a.InfoLoadScenario, "comfortable", "skim", "overwhelmed", "summary"); err != nil {
		return err
	}
	if err := oneOf("format_scenario", a.FormatScenario, "structured", "conversational", "code_first", "table"); err != nil {
		return err
	}
	for _, trigger := range a.FrustrationScenario {
		if err := oneOf("frustration_scenario", trigger, "too_casual", "too_long", "too_abstract", "too_detailed", "uncertain", "emoji"); err != nil {
			return err
		}
	}
	return oneOf("ideal_interaction", a.IdealInteraction, "mentor", "colleague", "assistant", "teacher")
}

func oneOf(field, value string, allowed ...string) error {
	if value == "" {
		return nil
	}
	for _, v := range allowed {
		if value == v {
			return nil
		}
	}
	return &ValidationError{Field: field, Reason: fmt.Sprintf("has invalid value %q", value)}
}

// Signals converts the answers to trait-inference input.
func (a InitialAnswers) Signals() traits.Signals {
	return traits.Signals{
		Autonomy:            a.Autonomy,
		LearningScenario:    a.LearningScenario,
		ConfusionScenario:   a.ConfusionScenario,
		InfoLoadScenario:    a.InfoLoadScenario,
		FormatScenario:      a.FormatScenario,
		FrustrationTriggers: a.FrustrationScenario,
		IdealInteraction:    a.IdealInteraction,
	}
}

// FollowupAnswer is one answer to a previously issued follow-up
// question.
type FollowupAnswer struct {
	QuestionID string `json:"question_id" binding:"required"`
	Answer     string `json:"answer" binding:"required"`
}

// QuestionChoice is one selectable option of a choice question.
type QuestionChoice struct {
	Value       string `json:"value"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
}

// Question is a questionnaire item, fixed or dynamically generated.
type Question struct {
	ID          string           `json:"id"`
	Question    string           `json:"question"`
	Type        string           `json:"type"`
	Placeholder string           `json:"placeholder,omitempty"`
	Suggestions []string         `json:"suggestions,omitempty"`
	Choices     []QuestionChoice `json:"choices,omitempty"`
}

// UserProfile summarizes the user for the final result.
type UserProfile struct {
	PrimaryUseCase     string          `json:"primary_use_case"`
	AutonomyPreference string          `json:"autonomy_preference"`
	CommunicationStyle string          `json:"communication_style"`
	KeyTraits          []string        `json:"key_traits"`
	DetectedNeeds      []string        `json:"detected_needs"`
	CognitiveProfile   *traits.Profile `json:"cognitive_profile,omitempty"`
}

// PromptVariant is one generated system prompt.
type PromptVariant struct {
	Style       Style  `json:"style"`
	Name        string `json:"name"`
	Prompt      string `json:"prompt"`
	Description string `json:"description"`
}

// Result is the final diagnosis output.
type Result struct {
	UserProfile          UserProfile     `json:"user_profile"`
	RecommendedStyle     Style           `json:"recommended_style"`
	RecommendationReason string          `json:"recommendation_reason"`
	Variants             []PromptVariant `json:"variants"`
	Source               Source          `json:"source"`
}

// StartRequest begins a diagnosis session.
type StartRequest struct {
	InitialAnswers InitialAnswers `json:"initial_answers" binding:"required"`
	Language       string         `json:"language,omitempty"`
}

// ContinueRequest advances a session with follow-up answers. Answers
// may be empty when the previous round issued no questions.
type ContinueRequest struct {
	SessionID string           `json:"session_id" binding:"required"`
	Answers   []FollowupAnswer `json:"answers"`
}

// StepResponse is returned by both start and continue.
type StepResponse struct {
	SessionID         string     `json:"session_id"`
	Phase             Phase      `json:"phase"`
	FollowupQuestions []Question `json:"followup_questions,omitempty"`
	Result            *Result    `json:"result,omitempty"`
}
