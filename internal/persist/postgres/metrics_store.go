package postgres

import (
	"context"
	"time"

	errx "github.com/wayfarer-ai/agent-core/internal/core/error"
	"github.com/wayfarer-ai/agent-core/internal/domain"
)

// MetricsRepo adapts Store onto persist.MetricsStore.
type MetricsRepo struct {
	store *Store
}

func NewMetricsRepo(store *Store) *MetricsRepo {
	return &MetricsRepo{store: store}
}

// RecordHourlyAggregate applies an upsert-with-increment to the
// (bucket_hour, model) row so concurrent workers never lose an update: the
// new running average is computed server-side from the pre-update queries
// count, inside the same statement that bumps it, avoiding the read-modify-write
// race a SELECT-then-UPDATE pair would have.
func (r *MetricsRepo) RecordHourlyAggregate(ctx context.Context, bucketHour time.Time, model string, m domain.QueryMetrics) error {
	successInc, failureInc := 0, 0
	if m.Success {
		successInc = 1
	} else {
		failureInc = 1
	}
	totalTokens := int64(m.InputTokens + m.OutputTokens)

	const stmt = `
INSERT INTO agent_metrics (bucket_hour, model, queries, success, failure, total_tokens, total_cost_usd, avg_duration_ms)
VALUES (?, ?, 1, ?, ?, ?, ?, ?)
ON CONFLICT (bucket_hour, model) DO UPDATE SET
	queries = agent_metrics.queries + 1,
	success = agent_metrics.success + EXCLUDED.success,
	failure = agent_metrics.failure + EXCLUDED.failure,
	total_tokens = agent_metrics.total_tokens + EXCLUDED.total_tokens,
	total_cost_usd = agent_metrics.total_cost_usd + EXCLUDED.total_cost_usd,
	avg_duration_ms = ((agent_metrics.avg_duration_ms * agent_metrics.queries) + EXCLUDED.avg_duration_ms) / (agent_metrics.queries + 1)
`
	if err := r.store.DB().WithContext(ctx).Exec(stmt,
		bucketHour, model, successInc, failureInc, totalTokens, m.EstimatedCostUS, m.ProcessingMs,
	).Error; err != nil {
		return errx.WrapStore(err)
	}
	return nil
}
