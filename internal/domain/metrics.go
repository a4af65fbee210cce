package domain

import "time"

// QueryMetrics is created at request start and finalized at request end; it
// feeds the Prometheus instruments and the hourly aggregate bucket.
type QueryMetrics struct {
	RequestID       string
	UserID          string
	SessionID       string
	StartTime       time.Time
	EndTime         time.Time
	ProcessingMs    int
	Intent          Intent
	Confidence      float64
	Complexity      Complexity
	ModelUsed       string
	ModelProvider   string
	ToolCalls       int
	ReasoningSteps  int
	InputTokens     int
	OutputTokens    int
	EstimatedCostUS float64
	Success         bool
	ErrorKind       string
}

// MarkEnd finalizes the timing fields of a QueryMetrics value.
func (m *QueryMetrics) MarkEnd(end time.Time) {
	m.EndTime = end
	m.ProcessingMs = int(end.Sub(m.StartTime).Milliseconds())
}
