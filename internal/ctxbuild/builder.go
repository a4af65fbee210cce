// Package ctxbuild implements the context builder (§4.3): a pure
// transformer from a MemoryWindow into a model-facing message sequence, plus
// the PlanContextExtractor used to track itinerary slots across turns.
package ctxbuild

import (
	"fmt"
	"strings"

	"github.com/cloudwego/eino/schema"
	"github.com/wayfarer-ai/agent-core/internal/domain"
)

// AgentContext mirrors a MemoryWindow plus the token-budget bookkeeping and
// the extracted plan-parameter map the rest of the pipeline consumes.
type AgentContext struct {
	Window          domain.MemoryWindow
	EstimatedTokens int
	TokensRemaining int
	PlanParams      map[string]any
}

// Builder is a pure transformer: same inputs always produce the same
// message sequence and AgentContext.
type Builder struct {
	extractor *PlanContextExtractor
	maxTokens int
}

func New(extractor *PlanContextExtractor, maxTokens int) *Builder {
	return &Builder{extractor: extractor, maxTokens: maxTokens}
}

// Build produces the model-facing message sequence and the AgentContext
// record (§4.3). priorPlanParams carries the merged slot state recovered
// from the most recent turn's extra_metadata, if any.
func (b *Builder) Build(vctx domain.ValidatedContext, win domain.MemoryWindow, basePrompt, currentQuery string, priorPlanParams map[string]any) ([]*schema.Message, AgentContext) {
	system := b.renderSystem(basePrompt, vctx, win)

	messages := make([]*schema.Message, 0, len(win.Recent)+2)
	messages = append(messages, schema.SystemMessage(system))
	for _, m := range win.Recent {
		switch m.Role {
		case domain.RoleUser:
			messages = append(messages, schema.UserMessage(m.Text))
		case domain.RoleAssistant:
			messages = append(messages, schema.AssistantMessage(m.Text, nil))
		}
	}
	messages = append(messages, schema.UserMessage(currentQuery))

	extracted := b.extractor.Extract(currentQuery)
	planParams := Merge(priorPlanParams, extracted)

	estimated := win.EstimatedTokens
	remaining := b.maxTokens - estimated
	if remaining < 0 {
		remaining = 0
	}

	return messages, AgentContext{
		Window:          win,
		EstimatedTokens: estimated,
		TokensRemaining: remaining,
		PlanParams:      planParams,
	}
}

func (b *Builder) renderSystem(basePrompt string, vctx domain.ValidatedContext, win domain.MemoryWindow) string {
	var sb strings.Builder
	sb.WriteString(basePrompt)
	fmt.Fprintf(&sb, "\nUser language: %s.", vctx.Language)
	if win.SessionSummary != "" {
		fmt.Fprintf(&sb, "\nEarlier in this conversation: %s.", win.SessionSummary)
	}
	if len(win.PreviousPlaces) > 0 {
		sb.WriteString("\nPreviously mentioned places:")
		for _, p := range win.PreviousPlaces {
			fmt.Fprintf(&sb, "\n#%d: %s", p.Index, p.Name)
		}
	}
	return sb.String()
}
