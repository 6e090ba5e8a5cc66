package diagnosis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/yuki-mtmr/SystemPromptDiagnoser/internal/logging"
	"github.com/yuki-mtmr/SystemPromptDiagnoser/internal/provider"
	"github.com/yuki-mtmr/SystemPromptDiagnoser/internal/session"
)

// MaxFollowupRounds caps follow-up questioning; after this many rounds
// the session is forced to complete no matter what.
const MaxFollowupRounds = 2

// Session payload keys.
const (
	keyPhase           = "phase"
	keyInitialAnswers  = "initial_answers"
	keyFollowupAnswers = "followup_answers"
	keyFollowupCount   = "followup_count"
	keyLanguage        = "detected_language"
	keyAnalysisNotes   = "analysis_notes"
	keyResult          = "result"
)

// Controller drives diagnosis sessions through the followup and
// complete phases. A nil provider disables the generative path and
// every output is produced locally.
type Controller struct {
	store    session.Store
	provider provider.Provider
	logger   logging.Logger
	timeout  time.Duration
}

// Option configures a Controller.
type Option func(*Controller)

// WithTimeout sets the shared deadline for the variant fan-out.
func WithTimeout(d time.Duration) Option {
	return func(c *Controller) { c.timeout = d }
}

// WithLogger sets the controller's logger.
func WithLogger(l logging.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// NewController returns a controller backed by store. p may be nil.
func NewController(store session.Store, p provider.Provider, opts ...Option) *Controller {
	c := &Controller{
		store:    store,
		provider: p,
		logger:   logging.Nop(),
		timeout:  provider.DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start validates the initial answers, creates a session, and either
// issues follow-up questions or completes immediately. Backend failures
// are absorbed into the local question planner.
func (c *Controller) Start(ctx context.Context, req StartRequest) (*StepResponse, error) {
	if err := req.InitialAnswers.Validate(); err != nil {
		return nil, err
	}

	sess, err := c.store.Create(ctx)
	if err != nil {
		return nil, fmt.Errorf("start diagnosis: %w", err)
	}

	plan := c.plan(ctx, req)
	c.logger.Info("Diagnosis started: session=%s lang=%s followups=%d",
		sess.ID, plan.DetectedLanguage, len(plan.FollowupQuestions))

	update := map[string]any{
		keyInitialAnswers:  req.InitialAnswers,
		keyFollowupAnswers: []FollowupAnswer{},
		keyFollowupCount:   0,
		keyLanguage:        plan.DetectedLanguage,
		keyAnalysisNotes:   plan.AnalysisNotes,
	}

	if len(plan.FollowupQuestions) == 0 {
		result := c.complete(ctx, req.InitialAnswers, nil, plan.DetectedLanguage)
		update[keyPhase] = string(PhaseComplete)
		update[keyResult] = result
		if err := c.store.Update(ctx, sess.ID, update); err != nil {
			return nil, fmt.Errorf("start diagnosis: %w", err)
		}
		return &StepResponse{SessionID: sess.ID, Phase: PhaseComplete, Result: result}, nil
	}

	update[keyPhase] = string(PhaseFollowup)
	if err := c.store.Update(ctx, sess.ID, update); err != nil {
		return nil, fmt.Errorf("start diagnosis: %w", err)
	}
	return &StepResponse{
		SessionID:         sess.ID,
		Phase:             PhaseFollowup,
		FollowupQuestions: plan.FollowupQuestions,
	}, nil
}

// Continue merges follow-up answers into the session and advances the
// state machine. Legal on a completed session: the stored result is
// returned again.
func (c *Controller) Continue(ctx context.Context, req ContinueRequest) (*StepResponse, error) {
	sess, err := c.store.Get(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}

	// Idempotent completion: a finished session replays its result.
	if phase, _ := sess.Data[keyPhase].(string); phase == string(PhaseComplete) {
		result, err := storedResult(sess.Data)
		if err != nil {
			return nil, fmt.Errorf("continue diagnosis: %w", err)
		}
		return &StepResponse{SessionID: sess.ID, Phase: PhaseComplete, Result: result}, nil
	}

	initial, err := storedInitialAnswers(sess.Data)
	if err != nil {
		return nil, fmt.Errorf("continue diagnosis: %w", err)
	}
	followups, err := storedFollowupAnswers(sess.Data)
	if err != nil {
		return nil, fmt.Errorf("continue diagnosis: %w", err)
	}
	followups = append(followups, req.Answers...)

	rounds := storedInt(sess.Data, keyFollowupCount) + 1
	lang, _ := sess.Data[keyLanguage].(string)
	if lang == "" {
		lang = DetectLanguage(initial.Purpose)
	}

	// Another round of questions is allowed only under the cap and
	// with a backend to generate them; the local planner issues its
	// single question at start only.
	if rounds < MaxFollowupRounds && c.provider != nil {
		planCtx, cancel := context.WithTimeout(ctx, c.timeout)
		plan, err := planFollowups(planCtx, c.provider, initial, followups)
		cancel()
		if err == nil && len(plan.FollowupQuestions) > 0 {
			err = c.store.Update(ctx, sess.ID, map[string]any{
				keyFollowupAnswers: followups,
				keyFollowupCount:   rounds,
			})
			if err != nil {
				return nil, fmt.Errorf("continue diagnosis: %w", err)
			}
			return &StepResponse{
				SessionID:         sess.ID,
				Phase:             PhaseFollowup,
				FollowupQuestions: plan.FollowupQuestions,
			}, nil
		}
		if err != nil {
			c.logger.Warn("Followup planning failed, completing session: %v", err)
		}
	}

	// At or past the round cap every continue call completes, even
	// with empty answers.
	result := c.complete(ctx, initial, followups, lang)
	c.logger.Info("Diagnosis complete: session=%s rounds=%d source=%s", sess.ID, rounds, result.Source)

	err = c.store.Update(ctx, sess.ID, map[string]any{
		keyPhase:           string(PhaseComplete),
		keyFollowupAnswers: followups,
		keyFollowupCount:   rounds,
		keyResult:          result,
	})
	if err != nil {
		return nil, fmt.Errorf("continue diagnosis: %w", err)
	}

	return &StepResponse{SessionID: sess.ID, Phase: PhaseComplete, Result: result}, nil
}

// plan runs first-round analysis, falling back to the local planner on
// any backend failure.
func (c *Controller) plan(ctx context.Context, req StartRequest) *followupPlan {
	if c.provider == nil {
		plan := planFollowupsLocal(req.InitialAnswers)
		if req.Language != "" {
			plan.DetectedLanguage = req.Language
		}
		return plan
	}

	planCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	plan, err := planFollowups(planCtx, c.provider, req.InitialAnswers, nil)
	if err != nil {
		c.logger.Warn("Followup planning failed, using local planner: %v", err)
		plan = planFollowupsLocal(req.InitialAnswers)
	}
	if req.Language != "" {
		plan.DetectedLanguage = req.Language
	}
	return plan
}

// complete assembles the final result. Never fails: every generative
// step has a deterministic substitute.
func (c *Controller) complete(ctx context.Context, initial InitialAnswers, followups []FollowupAnswer, lang string) *Result {
	if c.provider == nil {
		return buildFallbackResult(initial, lang)
	}

	profile, analyzed := analyzeProfile(ctx, c.provider, c.logger, initial, followups, lang)
	variants, variantSource := generateVariants(ctx, c.provider, c.logger, c.timeout, lang, initial, followups, profile)

	source := SourceGenerated
	if !analyzed || variantSource == SourceFallback {
		source = SourceFallback
	}

	return &Result{
		UserProfile:          buildUserProfile(initial, profile, lang),
		RecommendedStyle:     recommendedStyle(initial.Autonomy),
		RecommendationReason: recommendationReason(profile, lang),
		Variants:             variants,
		Source:               source,
	}
}

// Stored session payloads round-trip through map[string]any, so typed
// values are recovered via JSON re-encoding.
func remarshal(v any, out any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func storedInitialAnswers(data map[string]any) (InitialAnswers, error) {
	var answers InitialAnswers
	v, ok := data[keyInitialAnswers]
	if !ok {
		return answers, fmt.Errorf("session missing initial answers")
	}
	if err := remarshal(v, &answers); err != nil {
		return answers, err
	}
	return answers, nil
}

func storedFollowupAnswers(data map[string]any) ([]FollowupAnswer, error) {
	v, ok := data[keyFollowupAnswers]
	if !ok {
		return []FollowupAnswer{}, nil
	}
	var answers []FollowupAnswer
	if err := remarshal(v, &answers); err != nil {
		return nil, err
	}
	return answers, nil
}

func storedResult(data map[string]any) (*Result, error) {
	v, ok := data[keyResult]
	if !ok {
		return nil, fmt.Errorf("session missing stored result")
	}
	var result Result
	if err := remarshal(v, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func storedInt(data map[string]any, key string) int {
	switch v := data[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return 0
	}
}
