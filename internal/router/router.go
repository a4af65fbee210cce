// Package router implements the model router (§4.5): a pure function over
// (intent, complexity, budget_mode) that never hard-codes provider names —
// it looks model descriptors up by label from configuration.
package router

import (
	"github.com/wayfarer-ai/agent-core/internal/config"
	"github.com/wayfarer-ai/agent-core/internal/domain"
	logx "github.com/wayfarer-ai/agent-core/pkg/logger"
)

// Label is a router table entry's provider-agnostic model tier.
type Label string

const (
	LabelSmallFast Label = "small_fast"
	LabelMidTier   Label = "mid_tier"
	LabelTopTier   Label = "top_tier"
	LabelChitchat  Label = "chitchat"
)

// Router holds the configured label -> descriptor table.
type Router struct {
	cfg        config.RouterConfig
	descriptors map[Label]domain.ModelDecision
}

func New(cfg config.RouterConfig) *Router {
	r := &Router{cfg: cfg, descriptors: map[Label]domain.ModelDecision{}}
	r.descriptors[LabelSmallFast] = modelDecisionFor(cfg.SmallFastModel, cfg)
	r.descriptors[LabelMidTier] = modelDecisionFor(cfg.MidTierModel, cfg)
	r.descriptors[LabelTopTier] = modelDecisionFor(cfg.TopTierModel, cfg)
	r.descriptors[LabelChitchat] = modelDecisionFor(cfg.ChitchatModel, cfg)
	return r
}

func modelDecisionFor(modelName string, cfg config.RouterConfig) domain.ModelDecision {
	input, output := pricingFor(modelName)
	return domain.ModelDecision{
		Provider:       "gemini",
		Model:          modelName,
		MaxTokens:      cfg.DefaultMaxTokens,
		Temperature:    0.4,
		InputCostPerM:  input,
		OutputCostPerM: output,
	}
}

// pricingFor returns hardcoded USD-per-1M-token pricing for known Gemini
// models; unknown models fall back to zero so cost accounting degrades
// gracefully instead of failing.
func pricingFor(modelName string) (inputPerM, outputPerM float64) {
	switch modelName {
	case "gemini-2.5-flash":
		return 0.30, 2.50
	case "gemini-2.5-flash-lite":
		return 0.10, 0.40
	case "gemini-2.5-pro":
		return 1.25, 10.00
	default:
		return 0, 0
	}
}

// labelTable is the intent x complexity -> label decision table (§4.5).
func labelTable(intent domain.Intent, complexity domain.Complexity) Label {
	switch intent {
	case domain.IntentSearch:
		if complexity == domain.ComplexityHigh {
			return LabelMidTier
		}
		return LabelSmallFast
	case domain.IntentRecommend:
		if complexity == domain.ComplexityLow {
			return LabelSmallFast
		}
		return LabelMidTier
	case domain.IntentPlan:
		if complexity == domain.ComplexityHigh {
			return LabelTopTier
		}
		return LabelMidTier
	case domain.IntentChitchat:
		return LabelChitchat
	default:
		return LabelSmallFast
	}
}

// Route implements route(intent, complexity, budget_mode) -> ModelDecision (§4.5).
// preferredModel (or, when it is empty, the configured PreferredModel), when
// non-empty and present in the descriptor table, wins over the table lookup,
// unless budgetMode is set — budget mode is a hard floor and always wins
// (§4.5 expansion).
func (r *Router) Route(intent domain.Intent, complexity domain.Complexity, budgetMode bool, preferredModel string) domain.ModelDecision {
	if budgetMode || r.cfg.BudgetMode {
		return r.descriptors[LabelSmallFast]
	}

	if preferredModel == "" {
		preferredModel = r.cfg.PreferredModel
	}
	if preferredModel != "" {
		if d, ok := r.byModelName(preferredModel); ok {
			return d
		}
	}

	label := labelTable(intent, complexity)
	d, ok := r.descriptors[label]
	if !ok {
		logx.Warn().Str("label", string(label)).Msg("model label missing from configuration, falling back to small fast model")
		return r.descriptors[LabelSmallFast]
	}
	return d
}

func (r *Router) byModelName(name string) (domain.ModelDecision, bool) {
	for _, d := range r.descriptors {
		if d.Model == name {
			return d, true
		}
	}
	return domain.ModelDecision{}, false
}
