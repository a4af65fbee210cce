// Package orchestrator implements the pipeline orchestrator (§4.8): the
// per-request procedure that sequences context validation, memory loading,
// context building, classification and routing, the reason-act loop,
// persistence, cache invalidation, and metrics finalization.
package orchestrator

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/wayfarer-ai/agent-core/internal/config"
	errx "github.com/wayfarer-ai/agent-core/internal/core/error"
	"github.com/wayfarer-ai/agent-core/internal/ctxbuild"
	"github.com/wayfarer-ai/agent-core/internal/classify"
	"github.com/wayfarer-ai/agent-core/internal/domain"
	"github.com/wayfarer-ai/agent-core/internal/llm"
	"github.com/wayfarer-ai/agent-core/internal/memory"
	"github.com/wayfarer-ai/agent-core/internal/metrics"
	"github.com/wayfarer-ai/agent-core/internal/persist"
	"github.com/wayfarer-ai/agent-core/internal/reasonact"
	"github.com/wayfarer-ai/agent-core/internal/router"
	"github.com/wayfarer-ai/agent-core/internal/tools"
	logx "github.com/wayfarer-ai/agent-core/pkg/logger"

	"github.com/cloudwego/eino/schema"
)

// Validator is the subset of validate.Validator the pipeline depends on.
type Validator interface {
	Validate(ctx context.Context, req domain.Request) (domain.ValidatedContext, error)
}

const basePrompt = `You are a place-discovery and itinerary-planning assistant. Answer concisely, use the available tools to find real places rather than inventing them, and always reply in the user's language.`

type Pipeline struct {
	cfg           config.AppConfig
	validator     Validator
	memory        *memory.Buffer
	builder       *ctxbuild.Builder
	classifier    *classify.Classifier
	router        *router.Router
	models        *llm.Factory
	registry      *tools.Registry
	toolInfos     []*schema.ToolInfo
	executor      *reasonact.Executor
	conversations persist.ConversationStore
	recorder      *metrics.Recorder
	admission     chan struct{}
}

type Deps struct {
	Config        config.AppConfig
	Validator     Validator
	Memory        *memory.Buffer
	Builder       *ctxbuild.Builder
	Classifier    *classify.Classifier
	Router        *router.Router
	Models        *llm.Factory
	Registry      *tools.Registry
	Executor      *reasonact.Executor
	Conversations persist.ConversationStore
	Recorder      *metrics.Recorder
}

func New(ctx context.Context, deps Deps) (*Pipeline, error) {
	infos, err := deps.Registry.Infos(ctx)
	if err != nil {
		return nil, err
	}
	return &Pipeline{
		cfg:           deps.Config,
		validator:     deps.Validator,
		memory:        deps.Memory,
		builder:       deps.Builder,
		classifier:    deps.Classifier,
		router:        deps.Router,
		models:        deps.Models,
		registry:      deps.Registry,
		toolInfos:     infos,
		executor:      deps.Executor,
		conversations: deps.Conversations,
		recorder:      deps.Recorder,
		admission:     make(chan struct{}, deps.Config.Limits.QueueLimit),
	}, nil
}

// Handle runs the full per-request procedure described in §4.8.
func (p *Pipeline) Handle(ctx context.Context, req domain.Request) (domain.Response, error) {
	select {
	case p.admission <- struct{}{}:
		defer func() { <-p.admission }()
	default:
		return domain.Response{}, errx.New(errx.Overloaded, "too many in-flight requests", nil)
	}

	qm := domain.QueryMetrics{
		RequestID: uuid.NewString(),
		UserID:    req.UserID,
		SessionID: req.SessionID,
		StartTime: time.Now(),
	}
	p.recorder.Begin()

	deadline := qm.StartTime.Add(time.Duration(p.cfg.ReasonAct.PerRequestDeadlineMs) * time.Millisecond)
	ctx, cancel := context.WithDeadline(ctx, deadline)
	defer cancel()

	resp, err := p.run(ctx, req, deadline, &qm)

	qm.MarkEnd(time.Now())
	qm.Success = err == nil
	if err != nil {
		qm.ErrorKind = string(errx.KindOf(err))
	}
	p.recorder.Finish(ctx, qm)

	return resp, err
}

func (p *Pipeline) run(ctx context.Context, req domain.Request, deadline time.Time, qm *domain.QueryMetrics) (domain.Response, error) {
	vctx, err := p.validator.Validate(ctx, req)
	if err != nil {
		return domain.Response{}, err
	}

	win, err := p.memory.LoadWindow(ctx, vctx.SessionID, req.Query)
	if err != nil {
		return domain.Response{}, err
	}

	priorPlanParams := p.priorPlanParams(ctx, vctx.SessionID)
	messages, actx := p.builder.Build(vctx, win, basePrompt, req.Query, priorPlanParams)

	decision := p.classifier.Classify(ctx, req.Query, vctx.Language, win.SessionSummary)
	qm.Intent = decision.Intent
	qm.Confidence = decision.Confidence
	qm.Complexity = decision.Complexity

	modelDecision := p.router.Route(decision.Intent, decision.Complexity, vctx.Preferences.BudgetMode, vctx.Preferences.PreferredModel)
	qm.ModelUsed = modelDecision.Model
	qm.ModelProvider = modelDecision.Provider

	chatModel, err := p.models.Get(ctx, modelDecision.Model, modelDecision.MaxTokens, modelDecision.Temperature)
	if err != nil {
		return domain.Response{}, errx.Wrap(err, errx.ModelError, "failed to obtain chat model")
	}
	boundModel, err := chatModel.WithTools(p.toolInfos)
	if err != nil {
		return domain.Response{}, errx.Wrap(err, errx.ModelError, "failed to bind tools to chat model")
	}

	result, err := p.executor.Run(ctx, boundModel, p.registry, messages, deadline)
	if err != nil {
		return domain.Response{}, err
	}
	p.recorder.RecordToolCalls(result.ToolCalls)

	qm.ToolCalls = len(result.ToolCalls)
	qm.ReasoningSteps = result.ReasoningSteps
	qm.InputTokens = result.InputTokens
	qm.OutputTokens = result.OutputTokens
	qm.EstimatedCostUS = estimateCost(result.InputTokens, result.OutputTokens, modelDecision)

	emotion := detectEmotion(req.Query)

	places := extractPlaces(result.ToolCalls)
	itinerary := extractItinerary(result.ToolCalls)

	turn := domain.ConversationTurn{
		ID:           uuid.NewString(),
		SessionID:    vctx.SessionID,
		UserID:       vctx.UserID,
		Query:        req.Query,
		Response:     result.FinalText,
		Intent:       string(decision.Intent),
		Model:        modelDecision.Model,
		InputTokens:  result.InputTokens,
		OutputTokens: result.OutputTokens,
		CostUSD:      qm.EstimatedCostUS,
		DurationMs:   int(time.Since(qm.StartTime).Milliseconds()),
		CreatedAt:    time.Now(),
		ExtraMetadata: map[string]any{
			domain.PlanParamsKey:     actx.PlanParams,
			memory.PlacesMetadataKey: placesMetadata(places, itinerary),
		},
	}
	// Persistence failure after a successful response is logged and surfaced
	// in metrics but the response is still returned to the user (§7):
	// durability is best-effort, never a reason to discard an answer the
	// model already produced. Cache invalidation is unconditional for the
	// same reason - a stale cached window is worse than a persist error.
	if _, err := p.conversations.AppendTurn(ctx, turn); err != nil {
		wrapped := errx.Wrap(err, errx.PersistenceFailed, "failed to persist conversation turn")
		qm.ErrorKind = string(wrapped.Kind())
		logx.Error().Err(wrapped).Str("session_id", vctx.SessionID).Msg("failed to persist conversation turn")
	}

	p.memory.Invalidate(ctx, vctx.SessionID)

	return domain.Response{
		ResponseText:      result.FinalText,
		Places:            places,
		Itinerary:         itinerary,
		Intention:         decision.Intent,
		Confidence:        decision.Confidence,
		Complexity:        decision.Complexity,
		ModelUsed:         modelDecision.Model,
		ProcessingTimeMs:  int(time.Since(qm.StartTime).Milliseconds()),
		DetectedEmotion:   emotion.Label,
		EmotionConfidence: emotion.Confidence,
		ToolCalls:         len(result.ToolCalls),
		ReasoningSteps:    result.ReasoningSteps,
		EstimatedCostUSD:  qm.EstimatedCostUS,
	}, nil
}

// priorPlanParams recovers the most recent turn's merged plan-parameter map,
// if any, so the context builder can continue an in-progress plan (§4.3).
// Plan state is never held in process memory across requests (§5); this is
// the only place it is read, and it always comes from the durable store.
func (p *Pipeline) priorPlanParams(ctx context.Context, sessionID string) map[string]any {
	turns, err := p.conversations.RecentTurns(ctx, sessionID, 1)
	if err != nil || len(turns) == 0 {
		return nil
	}
	return ctxbuild.ExtractPlanState(turns[len(turns)-1].ExtraMetadata)
}

func estimateCost(inputTokens, outputTokens int, decision domain.ModelDecision) float64 {
	return decision.InputCostPerM*float64(inputTokens)/1_000_000.0 +
		decision.OutputCostPerM*float64(outputTokens)/1_000_000.0
}
