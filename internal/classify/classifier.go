// Package classify implements the intent classifier (§4.4): a single cached
// model call that produces a typed IntentDecision, degrading to CHITCHAT on
// any model failure rather than failing the request.
package classify

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/wayfarer-ai/agent-core/internal/domain"
	"github.com/wayfarer-ai/agent-core/internal/persist"
	logx "github.com/wayfarer-ai/agent-core/pkg/logger"
)

const confidenceFloor = 0.5

// ModelSource returns the chat model to invoke for classification.
type ModelSource interface {
	Get(ctx context.Context, modelName string, maxTokens int, temperature float32) (einomodel.ToolCallingChatModel, error)
}

type Classifier struct {
	models     ModelSource
	cache      persist.Cache
	modelName  string
	maxTokens  int
	cacheTTL   time.Duration
}

func New(models ModelSource, cache persist.Cache, modelName string, maxTokens int, cacheTTLSeconds int) *Classifier {
	return &Classifier{
		models:    models,
		cache:     cache,
		modelName: modelName,
		maxTokens: maxTokens,
		cacheTTL:  time.Duration(cacheTTLSeconds) * time.Second,
	}
}

type rawDecision struct {
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
	Complexity string  `json:"complexity"`
	Reasoning  string  `json:"reasoning"`
}

// Classify implements classify(query, language, summary?) -> IntentDecision (§4.4).
func (c *Classifier) Classify(ctx context.Context, query, language, summary string) domain.IntentDecision {
	key := persist.IntentKey(cacheKey(query, language, SummaryHash(summary)))

	if c.cache != nil {
		if raw, ok, err := c.cache.Get(ctx, key); err != nil {
			logx.Warn().Err(err).Msg("intent cache read failed, classifying fresh")
		} else if ok {
			var d domain.IntentDecision
			if err := json.Unmarshal(raw, &d); err == nil {
				return d
			}
		}
	}

	decision := c.classifyFresh(ctx, query, summary)

	if c.cache != nil {
		if raw, err := json.Marshal(decision); err == nil {
			if err := c.cache.Set(ctx, key, raw, c.cacheTTL); err != nil {
				logx.Warn().Err(err).Msg("failed to cache intent decision")
			}
		}
	}

	return decision
}

func (c *Classifier) classifyFresh(ctx context.Context, query, summary string) domain.IntentDecision {
	fallback := domain.IntentDecision{Intent: domain.IntentChitchat, Complexity: domain.ComplexityLow, Confidence: 0}

	cm, err := c.models.Get(ctx, c.modelName, c.maxTokens, 0.1)
	if err != nil {
		logx.Warn().Err(err).Msg("classifier model unavailable, degrading to chitchat")
		return fallback
	}

	messages, err := renderPrompt(ctx, summary, query)
	if err != nil {
		logx.Warn().Err(err).Msg("failed to render classifier prompt, degrading to chitchat")
		return fallback
	}

	resp, err := cm.Generate(ctx, messages)
	if err != nil {
		logx.Warn().Err(err).Msg("classifier model call failed, degrading to chitchat")
		return fallback
	}

	var raw rawDecision
	content := extractJSON(resp.Content)
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		logx.Warn().Err(err).Msg("failed to parse classifier output, degrading to chitchat")
		return fallback
	}

	decision := domain.IntentDecision{
		Intent:     normalizeIntent(raw.Intent),
		Confidence: raw.Confidence,
		Complexity: normalizeComplexity(raw.Complexity),
		Reasoning:  raw.Reasoning,
	}

	if decision.Confidence < confidenceFloor {
		decision.Intent = domain.IntentChitchat
		decision.Complexity = domain.ComplexityLow
	}

	return decision
}

func normalizeIntent(s string) domain.Intent {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case string(domain.IntentSearch):
		return domain.IntentSearch
	case string(domain.IntentRecommend):
		return domain.IntentRecommend
	case string(domain.IntentPlan):
		return domain.IntentPlan
	default:
		return domain.IntentChitchat
	}
}

func normalizeComplexity(s string) domain.Complexity {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(domain.ComplexityMedium):
		return domain.ComplexityMedium
	case string(domain.ComplexityHigh):
		return domain.ComplexityHigh
	default:
		return domain.ComplexityLow
	}
}

// extractJSON trims leading/trailing prose a model sometimes wraps the JSON
// object in, keeping the span from the first '{' to the last '}'.
func extractJSON(content string) string {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || end < start {
		return content
	}
	return content[start : end+1]
}
