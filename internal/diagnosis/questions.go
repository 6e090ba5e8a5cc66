package diagnosis

import (
	"context"
	"fmt"

	"github.com/yuki-mtmr/SystemPromptDiagnoser/internal/provider"
)

// QuestionCatalog groups the fixed questionnaire pages for one
// language.
type QuestionCatalog struct {
	Initial   []Question `json:"initial"`
	Scenarios []Question `json:"scenarios"`
	Patterns  []Question `json:"patterns"`
}

// Catalog returns the fixed questionnaire for lang ("ja" or "en";
// anything else gets English).
func Catalog(lang string) QuestionCatalog {
	if lang != "ja" {
		lang = "en"
	}
	return QuestionCatalog{
		Initial:   initialQuestions[lang],
		Scenarios: scenarioQuestions[lang],
		Patterns:  patternQuestions[lang],
	}
}

var initialQuestions = map[string][]Question{
	"en": {
		{
			ID:          "purpose",
			Question:    "What would you like AI to help you with?",
			Type:        "freeform",
			Placeholder: "e.g., code review, proofreading, brainstorming...",
			Suggestions: []string{
				"Coding support",
				"Writing & editing",
				"Research",
				"Brainstorming ideas",
				"Learning & education",
			},
		},
		{
			ID:       "autonomy",
			Question: "How much autonomy would you like the AI to have?",
			Type:     "choice",
			Choices: []QuestionChoice{
				{Value: "obedient", Label: "Follow instructions", Description: "I want it to follow my instructions exactly"},
				{Value: "collaborative", Label: "Collaborate", Description: "I want it to make suggestions and work together"},
				{Value: "autonomous", Label: "Autonomous", Description: "I want it to make decisions and act proactively"},
			},
		},
	},
	"ja": {
		{
			ID:          "purpose",
			Question:    "AIに何をしてもらいたいですか？",
			Type:        "freeform",
			Placeholder: "例: コードレビュー、文章の校正、アイデア出し...",
			Suggestions: []string{
				"コーディングのサポート",
				"文章作成・編集",
				"情報のリサーチ",
				"アイデアのブレインストーミング",
				"学習・教育サポート",
			},
		},
		{
			ID:       "autonomy",
			Question: "AIにどの程度主導権を持ってほしいですか？",
			Type:     "choice",
			Choices: []QuestionChoice{
				{Value: "obedient", Label: "指示に忠実", Description: "私の指示通りに動いてほしい"},
				{Value: "collaborative", Label: "一緒に考える", Description: "提案しながら一緒に進めてほしい"},
				{Value: "autonomous", Label: "自律的", Description: "自分で判断して積極的に動いてほしい"},
			},
		},
	},
}

var scenarioQuestions = map[string][]Question{
	"en": {
		{
			ID:       "learning_scenario",
			Question: "When learning a new programming language or tool, what do you do first?",
			Type:     "choice",
			Choices: []QuestionChoice{
				{Value: "overview", Label: "Read the official documentation overview", Description: "Start with the big picture and design philosophy"},
				{Value: "tutorial", Label: "Follow a tutorial hands-on", Description: "Learn from concrete examples"},
				{Value: "example", Label: "Read existing code and imitate it", Description: "Abstract from real examples"},
				{Value: "question", Label: "Research based on a specific problem to solve", Description: "Learn only what's needed"},
			},
		},
		{
			ID:       "confusion_scenario",
			Question: "When you read an explanation but don't understand, what do you usually do?",
			Type:     "choice",
			Choices: []QuestionChoice{
				{Value: "reread", Label: "Re-read from the beginning to organize the whole", Description: "Re-grasp the structure"},
				{Value: "example", Label: "Search for concrete examples or code to try", Description: "Understand by doing"},
				{Value: "simplify", Label: "Look for a simpler explanation", Description: "Lower the abstraction level"},
				{Value: "ask", Label: "Ask someone and understand through dialogue", Description: "Clarify through interaction"},
			},
		},
		{
			ID:       "info_load_scenario",
			Question: "How do you feel when reading long technical documents or manuals?",
			Type:     "choice",
			Choices: []QuestionChoice{
				{Value: "comfortable", Label: "Detailed is better - feels more secure", Description: "Comprehensive info helps understanding"},
				{Value: "skim", Label: "Check TOC and read only needed parts", Description: "Want to get info efficiently"},
				{Value: "overwhelmed", Label: "Too much info is tiring", Description: "Prefer step-by-step presentation"},
				{Value: "summary", Label: "A summary at the start would help", Description: "Want to know the big picture first"},
			},
		},
		{
			ID:       "format_scenario",
			Question: "What format of AI response did you find most understandable?",
			Type:     "choice",
			Choices: []QuestionChoice{
				{Value: "structured", Label: "Response organized with headings and bullet points", Description: "Hierarchically structured format"},
				{Value: "conversational", Label: "Response explained in natural prose", Description: "Easier to read as narrative"},
				{Value: "code_first", Label: "Code first, then explanation", Description: "Example-first approach"},
				{Value: "table", Label: "Response summarized in tables or comparisons", Description: "Visually organized format"},
			},
		},
	},
	"ja": {
		{
			ID:       "learning_scenario",
			Question: "新しいプログラミング言語やツールを学ぶとき、最初に何をしますか？",
			Type:     "choice",
			Choices: []QuestionChoice{
				{Value: "overview", Label: "公式ドキュメントの概要を読む", Description: "全体像や設計思想から入る"},
				{Value: "tutorial", Label: "チュートリアルを手を動かしながら進める", Description: "具体例から学ぶ"},
				{Value: "example", Label: "既存のコードを読んで真似する", Description: "実例から抽象化する"},
				{Value: "question", Label: "解決したい課題から逆引きで調べる", Description: "必要な部分だけ学ぶ"},
			},
		},
		{
			ID:       "confusion_scenario",
			Question: "説明を読んでも理解できないとき、どうすることが多いですか？",
			Type:     "choice",
			Choices: []QuestionChoice{
				{Value: "reread", Label: "最初から読み直して全体を整理する", Description: "構造を再把握する"},
				{Value: "example", Label: "具体例やコードを探して試す", Description: "手を動かして理解する"},
				{Value: "simplify", Label: "もっとシンプルな説明を探す", Description: "抽象度を下げる"},
				{Value: "ask", Label: "誰かに質問して対話で理解する", Description: "やり取りで明確にする"},
			},
		},
		{
			ID:       "info_load_scenario",
			Question: "長い技術文書やマニュアルを読むとき、どう感じますか？",
			Type:     "choice",
			Choices: []QuestionChoice{
				{Value: "comfortable", Label: "詳しい方が安心する", Description: "網羅的な情報があると理解しやすい"},
				{Value: "skim", Label: "目次や見出しを見て必要な部分だけ読む", Description: "効率的に情報を取得したい"},
				{Value: "overwhelmed", Label: "情報量が多いと疲れる", Description: "段階的に提示してほしい"},
				{Value: "summary", Label: "最初に要約があると助かる", Description: "全体像を先に知りたい"},
			},
		},
		{
			ID:       "format_scenario",
			Question: "AIからの回答で「これは分かりやすい」と感じたのはどんな形式でしたか？",
			Type:     "choice",
			Choices: []QuestionChoice{
				{Value: "structured", Label: "見出しと箇条書きで整理された回答", Description: "階層的に構造化された形式"},
				{Value: "conversational", Label: "自然な文章で説明された回答", Description: "読み物として理解しやすい"},
				{Value: "code_first", Label: "コードが最初にあり、後から解説", Description: "実例先行型"},
				{Value: "table", Label: "表や比較でまとめられた回答", Description: "視覚的に整理された形式"},
			},
		},
	},
}

var patternQuestions = map[string][]Question{
	"en": {
		{
			ID:       "frustration_scenario",
			Question: "When did you feel an AI response didn't work for you? (Select multiple)",
			Type:     "multi_choice",
			Choices: []QuestionChoice{
				{Value: "too_casual", Label: "Tone was too casual", Description: "Too friendly, didn't feel professional"},
				{Value: "too_long", Label: "Response was too long to find the point", Description: "Verbose, couldn't see the essence"},
				{Value: "too_abstract", Label: "Too abstract without concrete examples", Description: "Couldn't connect to practice"},
				{Value: "too_detailed", Label: "Too detailed to see the big picture", Description: "Lost in details, couldn't grasp overall view"},
				{Value: "uncertain", Label: "Too many 'might be' or 'perhaps'", Description: "Uncertain answers felt unreliable"},
				{Value: "emoji", Label: "Too many emojis or decorations", Description: "Visual noise was distracting"},
			},
		},
		{
			ID:       "ideal_interaction",
			Question: "What's your ideal image of interacting with AI?",
			Type:     "choice",
			Choices: []QuestionChoice{
				{Value: "mentor", Label: "Like consulting an experienced senior", Description: "Gives accurate advice"},
				{Value: "colleague", Label: "Like thinking together with a colleague", Description: "Can discuss as equals"},
				{Value: "assistant", Label: "Like directing a capable assistant", Description: "Moves quickly as instructed"},
				{Value: "teacher", Label: "Like learning from a patient teacher", Description: "Explains until you understand"},
			},
		},
	},
	"ja": {
		{
			ID:       "frustration_scenario",
			Question: "AIの回答で「これは合わない」と感じたのはどんな時でしたか？（複数選択可）",
			Type:     "multi_choice",
			Choices: []QuestionChoice{
				{Value: "too_casual", Label: "カジュアルすぎる口調だった", Description: "フレンドリーすぎて専門性を感じなかった"},
				{Value: "too_long", Label: "回答が長すぎて要点が分からなかった", Description: "冗長で本質が見えなかった"},
				{Value: "too_abstract", Label: "抽象的すぎて具体例がなかった", Description: "実践に結びつかなかった"},
				{Value: "too_detailed", Label: "細かすぎて本質が見えなかった", Description: "詳細に埋もれて全体像が掴めなかった"},
				{Value: "uncertain", Label: "「〜かもしれません」が多くて不安になった", Description: "自信のない回答が信頼できなかった"},
				{Value: "emoji", Label: "絵文字や装飾が多すぎた", Description: "視覚的なノイズが気になった"},
			},
		},
		{
			ID:       "ideal_interaction",
			Question: "AIとの理想的なやり取りはどんなイメージですか？",
			Type:     "choice",
			Choices: []QuestionChoice{
				{Value: "mentor", Label: "経験豊富な先輩に相談する感覚", Description: "的確なアドバイスをくれる"},
				{Value: "colleague", Label: "同僚と一緒に考える感覚", Description: "対等に議論できる"},
				{Value: "assistant", Label: "優秀なアシスタントに指示する感覚", Description: "指示通りに素早く動く"},
				{Value: "teacher", Label: "丁寧な先生に教わる感覚", Description: "分かるまで説明してくれる"},
			},
		},
	},
}

// followupPlan holds the first-round analysis of the initial answers.
type followupPlan struct {
	DetectedLanguage  string     `json:"detected_language"`
	FollowupQuestions []Question `json:"followup_questions"`
	AnalysisNotes     string     `json:"analysis_notes"`
}

// planFollowups asks the backend for language detection plus follow-up
// questions. Answered followups are included so later rounds probe new
// ground. Only "ja" and "en" are accepted back; anything else is
// replaced with local detection.
func planFollowups(ctx context.Context, p provider.Provider, answers InitialAnswers, done []FollowupAnswer) (*followupPlan, error) {
	resp, err := p.Generate(ctx, buildFollowupPrompt(answers, done), jsonOnlySystemPrompt)
	if err != nil {
		return nil, fmt.Errorf("plan followups: %w", err)
	}

	var plan followupPlan
	if err := parseJSONResponse(resp.Content, &plan); err != nil {
		return nil, fmt.Errorf("plan followups: %w", err)
	}

	if plan.DetectedLanguage != "ja" && plan.DetectedLanguage != "en" {
		plan.DetectedLanguage = DetectLanguage(answers.Purpose)
	}
	if plan.FollowupQuestions == nil {
		plan.FollowupQuestions = []Question{}
	}
	return &plan, nil
}

// planFollowupsLocal is the deterministic path used when no backend is
// configured or the backend call failed. Collaborative users get one
// feedback-format question; everyone else goes straight to completion.
func planFollowupsLocal(answers InitialAnswers) *followupPlan {
	lang := DetectLanguage(answers.Purpose)

	questions := []Question{}
	if answers.Autonomy == "collaborative" {
		if lang == "ja" {
			questions = append(questions, Question{
				ID:       "fq1",
				Question: "どのような形式でフィードバックを受け取りたいですか？",
				Type:     "choice",
				Choices: []QuestionChoice{
					{Value: "detailed", Label: "詳細な説明付き"},
					{Value: "brief", Label: "簡潔なポイントのみ"},
					{Value: "mixed", Label: "状況に応じて"},
				},
			})
		} else {
			questions = append(questions, Question{
				ID:       "fq1",
				Question: "How would you like to receive feedback?",
				Type:     "choice",
				Choices: []QuestionChoice{
					{Value: "detailed", Label: "Detailed explanations"},
					{Value: "brief", Label: "Brief points only"},
					{Value: "mixed", Label: "Depends on situation"},
				},
			})
		}
	}

	return &followupPlan{
		DetectedLanguage:  lang,
		FollowupQuestions: questions,
		AnalysisNotes:     fmt.Sprintf("local analysis: purpose=%s", truncate(answers.Purpose, 50)),
	}
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
