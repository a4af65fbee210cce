// Package metrics implements the metrics recorder: per-query QueryMetrics
// finalization plus hourly-aggregate submission, alongside the Prometheus
// instrumentation surface the HTTP admin endpoint exposes.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wayfarer-ai/agent-core/internal/domain"
	"github.com/wayfarer-ai/agent-core/internal/persist"
	logx "github.com/wayfarer-ai/agent-core/pkg/logger"
)

// Metrics holds the process's Prometheus instruments.
type Metrics struct {
	QueriesTotal       *prometheus.CounterVec
	QueryDuration      *prometheus.HistogramVec
	ModelCallsTotal    *prometheus.CounterVec
	ToolCallsTotal     *prometheus.CounterVec
	TokensTotal        *prometheus.CounterVec
	EstimatedCostTotal *prometheus.CounterVec
	QueriesInFlight    prometheus.Gauge
}

func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		QueriesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "queries_total", Help: "Total queries processed, by intent and outcome."},
			[]string{"intent", "success"},
		),
		QueryDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "query_duration_seconds",
				Help:      "End-to-end query processing duration.",
				Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 20, 30},
			},
			[]string{"intent"},
		),
		ModelCallsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "model_calls_total", Help: "Finished queries, by the model they were routed to."},
			[]string{"model"},
		),
		ToolCallsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "tool_calls_total", Help: "Tool invocations, by tool name and outcome."},
			[]string{"tool", "success"},
		),
		TokensTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "tokens_total", Help: "Tokens consumed, by direction."},
			[]string{"direction"},
		),
		EstimatedCostTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{Namespace: namespace, Name: "estimated_cost_usd_total", Help: "Estimated model cost in USD, by model."},
			[]string{"model"},
		),
		QueriesInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{Namespace: namespace, Name: "queries_in_flight", Help: "Queries currently being processed."},
		),
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.Handler()
}

// Recorder finalizes a QueryMetrics value: updates the Prometheus
// instruments and submits the hourly aggregate to durable storage. A
// durable-store failure here is logged, never escalated — metrics recording
// is best-effort and must not fail a request that already has its response.
type Recorder struct {
	metrics *Metrics
	store   persist.MetricsStore
}

func NewRecorder(m *Metrics, store persist.MetricsStore) *Recorder {
	return &Recorder{metrics: m, store: store}
}

func (r *Recorder) Begin() {
	r.metrics.QueriesInFlight.Inc()
}

// RecordToolCalls updates the per-tool instrument from a reason-act
// execution trace. Called separately from Finish because QueryMetrics only
// retains the trace's length, not its entries.
func (r *Recorder) RecordToolCalls(calls []domain.ToolCall) {
	for _, call := range calls {
		success := "true"
		if call.Err != nil {
			success = "false"
		}
		r.metrics.ToolCallsTotal.WithLabelValues(call.ToolName, success).Inc()
	}
}

func (r *Recorder) Finish(ctx context.Context, qm domain.QueryMetrics) {
	r.metrics.QueriesInFlight.Dec()

	successLabel := "true"
	if !qm.Success {
		successLabel = "false"
	}
	r.metrics.QueriesTotal.WithLabelValues(string(qm.Intent), successLabel).Inc()
	r.metrics.QueryDuration.WithLabelValues(string(qm.Intent)).Observe(float64(qm.ProcessingMs) / 1000.0)

	if qm.ModelUsed != "" {
		r.metrics.ModelCallsTotal.WithLabelValues(qm.ModelUsed).Inc()
		r.metrics.EstimatedCostTotal.WithLabelValues(qm.ModelUsed).Add(qm.EstimatedCostUS)
	}
	r.metrics.TokensTotal.WithLabelValues("input").Add(float64(qm.InputTokens))
	r.metrics.TokensTotal.WithLabelValues("output").Add(float64(qm.OutputTokens))

	if r.store == nil {
		return
	}
	bucket := qm.StartTime.Truncate(time.Hour)
	if err := r.store.RecordHourlyAggregate(ctx, bucket, qm.ModelUsed, qm); err != nil {
		logx.Warn().Err(err).Msg("failed to record hourly metrics aggregate")
	}
}
