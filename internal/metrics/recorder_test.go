package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfarer-ai/agent-core/internal/domain"
)

// promauto registers against the process-global default registerer, so
// every test in this file shares one Metrics instance rather than building
// a fresh one per test.
var testRecorderMetrics = NewMetrics("test_agent_core_recorder")

type fakeMetricsStore struct {
	calls int
	err   error

	lastModel string
	lastQM    domain.QueryMetrics
}

func (f *fakeMetricsStore) RecordHourlyAggregate(ctx context.Context, bucketHour time.Time, model string, qm domain.QueryMetrics) error {
	f.calls++
	f.lastModel = model
	f.lastQM = qm
	return f.err
}

func TestRecorderFinishUpdatesCountersAndSubmitsAggregate(t *testing.T) {
	store := &fakeMetricsStore{}
	r := NewRecorder(testRecorderMetrics, store)

	r.Begin()
	qm := domain.QueryMetrics{
		Intent:          domain.IntentChitchat,
		Success:         true,
		ModelUsed:       "gemini-2.0-flash",
		InputTokens:     100,
		OutputTokens:    50,
		EstimatedCostUS: 0.002,
		StartTime:       time.Date(2026, 1, 1, 10, 30, 0, 0, time.UTC),
		ProcessingMs:    1500,
	}
	r.Finish(context.Background(), qm)

	require.Equal(t, 1, store.calls)
	assert.Equal(t, "gemini-2.0-flash", store.lastModel)
	assert.Equal(t, 1.0, testutil.ToFloat64(testRecorderMetrics.QueriesTotal.WithLabelValues(string(domain.IntentChitchat), "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(testRecorderMetrics.ModelCallsTotal.WithLabelValues("gemini-2.0-flash")))
}

func TestRecorderFinishSkipsModelInstrumentsWhenNoModelUsed(t *testing.T) {
	store := &fakeMetricsStore{}
	r := NewRecorder(testRecorderMetrics, store)

	r.Begin()
	qm := domain.QueryMetrics{Intent: domain.IntentChitchat, Success: false, StartTime: time.Now()}
	before := testutil.ToFloat64(testRecorderMetrics.ModelCallsTotal.WithLabelValues(""))
	r.Finish(context.Background(), qm)
	after := testutil.ToFloat64(testRecorderMetrics.ModelCallsTotal.WithLabelValues(""))

	assert.Equal(t, before, after)
}

func TestRecorderFinishToleratesNilStore(t *testing.T) {
	r := NewRecorder(testRecorderMetrics, nil)
	r.Begin()
	assert.NotPanics(t, func() {
		r.Finish(context.Background(), domain.QueryMetrics{Intent: domain.IntentChitchat, StartTime: time.Now()})
	})
}

func TestRecorderFinishLogsButDoesNotFailOnStoreError(t *testing.T) {
	store := &fakeMetricsStore{err: assertErr{}}
	r := NewRecorder(testRecorderMetrics, store)
	r.Begin()
	assert.NotPanics(t, func() {
		r.Finish(context.Background(), domain.QueryMetrics{Intent: domain.IntentChitchat, StartTime: time.Now()})
	})
}

func TestRecordToolCallsLabelsSuccessAndFailure(t *testing.T) {
	r := NewRecorder(testRecorderMetrics, nil)
	r.RecordToolCalls([]domain.ToolCall{
		{ToolName: "search_places", Err: nil},
		{ToolName: "search_places", Err: assertErr{}},
	})

	assert.Equal(t, 1.0, testutil.ToFloat64(testRecorderMetrics.ToolCallsTotal.WithLabelValues("search_places", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(testRecorderMetrics.ToolCallsTotal.WithLabelValues("search_places", "false")))
}

type assertErr struct{}

func (assertErr) Error() string { return "boom" }
