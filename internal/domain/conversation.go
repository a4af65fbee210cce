package domain

import "time"

// ConversationTurn is one persisted (query, response) pair. Append-only:
// nothing in this codebase updates a row after it is written.
type ConversationTurn struct {
	ID              string
	SessionID       string
	UserID          string
	Query           string
	Response        string
	Intent          string
	Model           string
	InputTokens     int
	OutputTokens    int
	CostUSD         float64
	DurationMs      int
	CreatedAt       time.Time
	ExtraMetadata   map[string]any
}

// PlanParamsKey is the extra_metadata key under which PlanContextExtractor's
// merged slot map is stored on a turn.
const PlanParamsKey = "plan_params"

// PlanParams returns the plan-parameter map embedded in a turn's metadata,
// or nil if the turn carries none.
func (t ConversationTurn) PlanParams() map[string]any {
	if t.ExtraMetadata == nil {
		return nil
	}
	v, ok := t.ExtraMetadata[PlanParamsKey]
	if !ok {
		return nil
	}
	m, _ := v.(map[string]any)
	return m
}
