package diagnosis

import (
	"fmt"
	"strings"

	"github.com/yuki-mtmr/SystemPromptDiagnoser/internal/traits"
)

// formattingRules are the numeric layout constraints embedded in the
// template prompts, keyed by autonomy level.
type formattingRules struct {
	paragraph string
	heading   string
	list      string
}

var rulesByAutonomy = map[string]map[string]formattingRules{
	"en": {
		"obedient":      {paragraph: "80-120 words", heading: "10-20 tokens", list: "3-7 items"},
		"collaborative": {paragraph: "60-100 words", heading: "10-15 tokens", list: "3-5 items"},
		"autonomous":    {paragraph: "40-80 words", heading: "5-10 tokens", list: "2-4 items"},
	},
	"ja": {
		"obedient":      {paragraph: "80-120語/段落", heading: "10-20トークン", list: "3-7項目"},
		"collaborative": {paragraph: "60-100語/段落", heading: "10-15トークン", list: "3-5項目"},
		"autonomous":    {paragraph: "40-80語/段落", heading: "5-10トークン", list: "2-4項目"},
	},
}

func rulesFor(autonomy, lang string) formattingRules {
	if lang != "ja" {
		lang = "en"
	}
	table := rulesByAutonomy[lang]
	if r, ok := table[autonomy]; ok {
		return r
	}
	return table["collaborative"]
}

var styleNames = map[string]map[Style]string{
	"en": {
		StyleShort:    "Short",
		StyleStandard: "Standard",
		StyleStrict:   "Strict",
	},
	"ja": {
		StyleShort:    "ショート (Short)",
		StyleStandard: "スタンダード (Standard)",
		StyleStrict:   "ストリクト (Strict)",
	},
}

func styleName(style Style, lang string) string {
	if lang != "ja" {
		lang = "en"
	}
	return styleNames[lang][style]
}

var styleDescriptions = map[string]map[Style]string{
	"en": {
		StyleShort:    "Concise prompt with persona declaration and minimal rules",
		StyleStandard: "Balanced prompt with cognitive traits and formatting rules",
		StyleStrict:   "Complete prompt with full cognitive profile and detailed structuring rules",
	},
	"ja": {
		StyleShort:    "ペルソナ宣言と最小限のルールを含む簡潔なプロンプト",
		StyleStandard: "認知特性とフォーマットルールを含むバランスの取れたプロンプト",
		StyleStrict:   "完全な認知プロファイルと詳細な構造化ルールを含むプロンプト",
	},
}

func styleDescription(style Style, lang string) string {
	if lang != "ja" {
		lang = "en"
	}
	return styleDescriptions[lang][style]
}

// recommendedStyle maps autonomy to the variant style suggested first.
func recommendedStyle(autonomy string) Style {
	switch autonomy {
	case "obedient":
		return StyleShort
	case "autonomous":
		return StyleStrict
	default:
		return StyleStandard
	}
}

// buildFallbackVariant renders one style's prompt from local templates.
// It involves no network and cannot fail.
func buildFallbackVariant(style Style, lang, purpose, autonomy string, profile traits.Profile) PromptVariant {
	var prompt string
	if lang == "ja" {
		prompt = fallbackPromptJA(style, purpose, autonomy, profile)
	} else {
		prompt = fallbackPromptEN(style, purpose, autonomy, profile)
	}
	return PromptVariant{
		Style:       style,
		Name:        styleName(style, lang),
		Prompt:      prompt,
		Description: styleDescription(style, lang),
	}
}

func fallbackPromptEN(style Style, purpose, autonomy string, profile traits.Profile) string {
	persona := strings.ToLower(profile.PersonaSummary)
	avoid := strings.Join(profile.AvoidPatterns, ", ")
	rules := rulesFor(autonomy, "en")

	switch style {
	case StyleShort:
		return fmt.Sprintf(`I am %s.

## Core Principles
- Respond concisely to questions about %s
- Summarize key points in 3 or fewer items
- Avoid: %s`, persona, purpose, avoid)

	case StyleStandard:
		return fmt.Sprintf(`I am %s.
Please support me with %s following these principles.

## Information Structuring
| Element | Rule |
|---------|------|
| Paragraph | %s |
| Heading | %s |
| Lists | %s |

## Cognitive Traits
- Thinking pattern: %s
- Detail orientation: %s

## Avoid
Please avoid: %s`, persona, purpose, rules.paragraph, rules.heading, rules.list, profile.ThinkingPattern, profile.DetailOrientation, avoid)

	default: // strict
		return fmt.Sprintf(`I am %s.
As a learner who achieves understanding when the overall structure is coherent, please structure information about %s using the following format.

## Information Structuring Principles
| Element | Rule |
|---------|------|
| Hierarchy | 3 layers: macro → meso → micro |
| Headings | %s, avoid "About..." |
| Paragraphs | %s |
| Lists | %s, logical order |

## Cognitive Traits
- Thinking pattern: %s type
- Learning type: %s
- Detail orientation: %s
- Preferred structure: %s

## Response Format Requirements
1. State conclusions/key points at the beginning
2. Expand supporting details hierarchically
3. Choose practical, applicable examples
4. Include comments when providing code

## Patterns to Avoid
The following don't match my cognitive style, please avoid:
- %s
- Excessive emojis or decorations
- Vague expressions like "might be" or "perhaps"

## Quality Standards
- Accuracy: Explicitly note uncertain information
- Structure: Visually scannable formatting
- Practicality: Immediately applicable examples`,
			persona, purpose, rules.heading, rules.paragraph, rules.list,
			profile.ThinkingPattern, profile.LearningType, profile.DetailOrientation, profile.PreferredStructure, avoid)
	}
}

func fallbackPromptJA(style Style, purpose, autonomy string, profile traits.Profile) string {
	persona := profile.PersonaSummary
	avoid := strings.Join(profile.AvoidPatterns, "、")
	rules := rulesFor(autonomy, "ja")

	switch style {
	case StyleShort:
		return fmt.Sprintf(`私は%s。

## 基本方針
- %sに関する質問に簡潔に回答
- 要点を3つ以内にまとめる
- %sは避ける`, persona, purpose, avoid)

	case StyleStandard:
		return fmt.Sprintf(`私は%s。
以下の原則で%sをサポートしてください。

## 情報構造化
| 要素 | ルール |
|------|--------|
| 段落 | %s |
| 見出し | %s |
| 箇条書き | %s |

## 認知特性
- 思考パターン: %s
- 詳細志向: %s

## 回避事項
%sは避けてください。`, persona, purpose, rules.paragraph, rules.heading, rules.list, profile.ThinkingPattern, profile.DetailOrientation, avoid)

	default: // strict
		return fmt.Sprintf(`私は%s。
全体構造の整合性が取れたときに理解が成立する学習者として、以下のフォーマットで%sに関する情報を構造化してください。

## 情報構造化の原則
| 要素 | ルール |
|------|--------|
| 階層構造 | マクロ→メソ→ミクロの3層 |
| 見出し | %s、「〜について」禁止 |
| 段落 | %s |
| 箇条書き | %s、論理順 |

## 認知特性
- 思考パターン: %s型
- 学習タイプ: %s
- 詳細志向度: %s
- 情報構造: %s構造を好む

## 回答形式の要件
1. 冒頭で結論・要点を述べる
2. 根拠・詳細を階層的に展開
3. 具体例は実践的なものを選ぶ
4. コードを含む場合はコメントを付与

## 回避すべきパターン
以下は私の認知特性に合わないため、避けてください：
- %s
- 過度な絵文字・装飾
- 曖昧な「〜かもしれません」表現

## 品質基準
- 正確性: 不確実な情報には明示的に注記
- 構造化: 視覚的に読み取りやすいフォーマット
- 実践性: 即座に適用可能な具体例`,
			persona, purpose, rules.heading, rules.paragraph, rules.list,
			profile.ThinkingPattern, profile.LearningType, profile.DetailOrientation, profile.PreferredStructure, avoid)
	}
}

// buildUserProfile assembles the profile summary for the final result.
func buildUserProfile(answers InitialAnswers, profile traits.Profile, lang string) UserProfile {
	var style string
	var keyTraits, needs []string
	if lang == "ja" {
		style = "技術的・構造的"
		keyTraits = []string{"構造思考", "効率重視", "詳細志向"}
		needs = []string{answers.Purpose, "構造化された情報"}
	} else {
		style = "technical and structured"
		keyTraits = []string{"structured thinking", "efficiency-focused", "detail-oriented"}
		needs = []string{answers.Purpose, "structured information"}
	}

	p := profile
	return UserProfile{
		PrimaryUseCase:     truncate(answers.Purpose, 50),
		AutonomyPreference: answers.Autonomy,
		CommunicationStyle: style,
		KeyTraits:          keyTraits,
		DetectedNeeds:      needs,
		CognitiveProfile:   &p,
	}
}

func recommendationReason(profile traits.Profile, lang string) string {
	if lang == "ja" {
		return fmt.Sprintf("あなたの認知特性（%s型思考）に基づいて推奨しています", profile.ThinkingPattern)
	}
	return fmt.Sprintf("Recommended based on your cognitive traits (%s thinking pattern)", profile.ThinkingPattern)
}

// buildFallbackResult produces a complete result with no backend
// involvement at all.
func buildFallbackResult(answers InitialAnswers, lang string) *Result {
	profile := traits.Infer(answers.Signals(), lang)

	variants := make([]PromptVariant, 0, len(Styles))
	for _, style := range Styles {
		variants = append(variants, buildFallbackVariant(style, lang, answers.Purpose, answers.Autonomy, profile))
	}

	return &Result{
		UserProfile:          buildUserProfile(answers, profile, lang),
		RecommendedStyle:     recommendedStyle(answers.Autonomy),
		RecommendationReason: recommendationReason(profile, lang),
		Variants:             variants,
		Source:               SourceFallback,
	}
}
