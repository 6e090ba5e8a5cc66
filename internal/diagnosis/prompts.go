package diagnosis

import (
	"encoding/json"
	"fmt"
)

const jsonOnlySystemPrompt = "You are a helpful assistant that outputs valid JSON only."

const followupPromptTemplate = `You generate questions that deepen understanding of a user's AI usage needs.

## Instructions
Analyze the user's answers and do two things:

1. **Language detection**: detect the language the user primarily writes in.
2. **Follow-up generation**: identify what is still unclear and generate 1-2 follow-up questions.

## User answers
%s

## Output format (JSON)
{
  "detected_language": "ja" or "en",
  "followup_questions": [
    {
      "id": "fq1",
      "question": "question text in the user's language",
      "type": "freeform" or "choice",
      "choices": [{"value": "v", "label": "text"}]
    }
  ],
  "analysis_notes": "traits read from the answers, for internal use"
}

## Notes
- Always write questions in the user's own language.
- Keep questions concrete and easy to answer.
- Never repeat a question listed under answered_followups.
- Return an empty array when no follow-up is needed.
`

const variantPromptTemplate = `You are an expert who analyzes a user's cognitive traits and writes a highly personalized AI system prompt.

## Output language rule
Detected language: %[1]s
Write every output field in %[1]s only.

## Instructions
Analyze all answers and the cognitive profile below, then write ONE system prompt in the "%[2]s" style:
- short: concise, persona declaration plus minimal rules
- standard: balanced, cognitive traits plus formatting rules
- strict: complete, full cognitive profile with detailed structuring rules

## All answers
%[3]s

## Cognitive profile
%[4]s

## Output format (JSON)
{
  "prompt": "the generated system prompt, in the user's language",
  "description": "one sentence describing this style, in the user's language"
}
`

const analysisPromptTemplate = `You analyze questionnaire answers and extract the user's cognitive profile.

## All answers
%s

## Output format (JSON)
{
  "thinking_pattern": "structural" or "fluid" or "hybrid",
  "learning_type": "visual_text" or "visual_diagram" or "auditory" or "kinesthetic",
  "detail_orientation": "high" or "medium" or "low",
  "preferred_structure": "hierarchical" or "flat" or "contextual",
  "use_tables": true or false,
  "avoid_patterns": ["pattern 1", "pattern 2"],
  "persona_summary": "one sentence describing the learner, in the user's language"
}
`

func buildFollowupPrompt(answers InitialAnswers, done []FollowupAnswer) string {
	user := map[string]any{
		"purpose":  answers.Purpose,
		"autonomy": answers.Autonomy,
	}
	if len(done) > 0 {
		user["answered_followups"] = done
	}
	payload, _ := json.Marshal(user)
	return fmt.Sprintf(followupPromptTemplate, payload)
}

func buildVariantPrompt(lang string, style Style, allAnswers, profile any) string {
	answersJSON, _ := json.Marshal(allAnswers)
	profileJSON, _ := json.Marshal(profile)
	return fmt.Sprintf(variantPromptTemplate, lang, style, answersJSON, profileJSON)
}

func buildAnalysisPrompt(allAnswers any) string {
	answersJSON, _ := json.Marshal(allAnswers)
	return fmt.Sprintf(analysisPromptTemplate, answersJSON)
}
