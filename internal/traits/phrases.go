package traits

import "strings"

// Localized phrase tables. Japanese text mirrors the questionnaire the
// answers came from; English is the default for every other language.

func triggerPhrases(lang string) map[string]string {
	if lang == "ja" {
		return map[string]string{
			"too_casual":   "カジュアルすぎる口調",
			"too_long":     "要点の見えない長い回答",
			"too_abstract": "具体例のない抽象的な説明",
			"too_detailed": "本質が見えないほど細かい説明",
			"uncertain":    "「〜かもしれません」などの曖昧な表現",
			"emoji":        "過度な絵文字や装飾",
		}
	}
	return map[string]string{
		"too_casual":   "overly casual tone",
		"too_long":     "long answers that bury the point",
		"too_abstract": "abstract explanations without concrete examples",
		"too_detailed": "detail so fine the big picture is lost",
		"uncertain":    "hedging such as 'might be' or 'perhaps'",
		"emoji":        "excessive emojis and decoration",
	}
}

func defaultAvoid(lang string) map[string][]string {
	if lang == "ja" {
		return map[string][]string{
			"obedient":      {"曖昧な表現", "過度な装飾", "推測的な回答"},
			"collaborative": {"過度な専門用語", "長すぎる説明"},
			"autonomous":    {"過度な説明", "細かすぎる指示", "冗長な表現"},
		}
	}
	return map[string][]string{
		"obedient":      {"ambiguous wording", "excessive decoration", "speculative answers"},
		"collaborative": {"heavy jargon", "overly long explanations"},
		"autonomous":    {"over-explanation", "micromanaged instructions", "redundant wording"},
	}
}

type principleSet struct {
	thinkingStructural    []string
	thinkingFluid         []string
	thinkingHybrid        []string
	detailHigh            []string
	detailLow             []string
	detailMedium          []string
	structureHierarchical string
	structureFlat         string
	structureContextual   string
	learningKinesthetic   string
	learningVisualDiagram string
}

func principleTexts(lang string) principleSet {
	if lang == "ja" {
		return principleSet{
			thinkingStructural:    []string{"全体構造（マクロ）から詳細（ミクロ）へ順に説明", "階層構造・関係性・位置づけを明確にする"},
			thinkingFluid:         []string{"文脈と流れを重視し、自然な説明順序で展開", "具体例から一般化へ帰納的に説明"},
			thinkingHybrid:        []string{"状況に応じて全体像と具体例を使い分ける"},
			detailHigh:            []string{"網羅的な情報を段階的に提示", "長文では適宜小結論を挟む"},
			detailLow:             []string{"核心的情報に絞り、簡潔に", "詳細は追加質問を待って展開"},
			detailMedium:          []string{"バランスの取れた情報量で要点を明確に"},
			structureHierarchical: "箇条書き・表・階層構造を活用して整理",
			structureFlat:         "フラットな箇条書きでシンプルに",
			structureContextual:   "文脈に応じた柔軟な構造で",
			learningKinesthetic:   "実践的な例やハンズオンを優先",
			learningVisualDiagram: "図表やフローで視覚的に表現",
		}
	}
	return principleSet{
		thinkingStructural:    []string{"Explain from overall structure (macro) down to details (micro)", "Make hierarchy, relationships, and positioning explicit"},
		thinkingFluid:         []string{"Follow context and flow with a natural explanation order", "Explain inductively from concrete examples to generalization"},
		thinkingHybrid:        []string{"Switch between big picture and concrete examples as the situation demands"},
		detailHigh:            []string{"Present comprehensive information in stages", "Insert interim conclusions in long passages"},
		detailLow:             []string{"Focus on core information and keep it brief", "Defer detail until asked"},
		detailMedium:          []string{"Keep information balanced and the key points clear"},
		structureHierarchical: "Organize with bullet lists, tables, and hierarchy",
		structureFlat:         "Keep it simple with flat bullet lists",
		structureContextual:   "Use a flexible structure suited to the context",
		learningKinesthetic:   "Prioritize practical examples and hands-on steps",
		learningVisualDiagram: "Express visually with diagrams and flows",
	}
}

type personaSet struct {
	thinking    map[ThinkingPattern]string
	detail      map[DetailOrientation]string
	interaction map[string]string
	join        func([]string) string
}

func personaFragments(lang string) personaSet {
	if lang == "ja" {
		return personaSet{
			thinking: map[ThinkingPattern]string{
				ThinkingStructural: "明確な指示と構造化された情報を好む",
				ThinkingFluid:      "自律的に探索し、流れの中で理解を深める",
				ThinkingHybrid:     "対話を通じて理解を深める",
			},
			detail: map[DetailOrientation]string{
				DetailHigh:   "網羅的な情報を求める",
				DetailMedium: "バランスの取れた情報量を好む",
				DetailLow:    "要点を素早く把握したい",
			},
			interaction: map[string]string{
				"mentor":    "経験豊富な先輩に相談するようなやり取りを理想とする",
				"colleague": "同僚と対等に議論するようなやり取りを理想とする",
				"assistant": "優秀なアシスタントに指示するようなやり取りを理想とする",
				"teacher":   "丁寧な先生に教わるようなやり取りを理想とする",
			},
			join: func(parts []string) string {
				return strings.Join(parts, "、") + "学習者です"
			},
		}
	}
	return personaSet{
		thinking: map[ThinkingPattern]string{
			ThinkingStructural: "a structured thinker who prefers clear instructions and well-organized information",
			ThinkingFluid:      "an exploratory learner who navigates autonomously and learns through flow",
			ThinkingHybrid:     "a collaborative learner who deepens understanding through dialogue",
		},
		detail: map[DetailOrientation]string{
			DetailHigh:   "who wants comprehensive information",
			DetailMedium: "who prefers a balanced amount of information",
			DetailLow:    "who wants to grasp key points quickly",
		},
		interaction: map[string]string{
			"mentor":    "and values interaction like consulting an experienced senior",
			"colleague": "and values interaction like thinking together with a colleague",
			"assistant": "and values interaction like directing a capable assistant",
			"teacher":   "and values interaction like learning from a patient teacher",
		},
		join: func(parts []string) string {
			return strings.Join(parts, " ")
		},
	}
}
