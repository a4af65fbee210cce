// Package persist declares the abstract ports to the durable store and the
// volatile cache. Every other component reaches storage exclusively through
// these interfaces (§5: "access is exclusively through the persistence
// ports"); concrete adapters live in the postgres and rediscache
// subpackages.
package persist

import (
	"context"
	"time"

	"github.com/wayfarer-ai/agent-core/internal/domain"
)

// ConversationStore is the durable source of truth for conversation turns.
type ConversationStore interface {
	// AppendTurn persists a new turn. Implementations must assign CreatedAt
	// if the caller left it zero, and must serialize concurrent appends on
	// the same session so readers observe a total write order (§5).
	AppendTurn(ctx context.Context, turn domain.ConversationTurn) (domain.ConversationTurn, error)

	// RecentTurns returns up to limit most recent turns for a session in
	// chronological (oldest-first) order.
	RecentTurns(ctx context.Context, sessionID string, limit int) ([]domain.ConversationTurn, error)
}

// PreferencesStore is the durable store for per-user preferences. The query
// pipeline only ever reads through this port (§4.1: "no side effects beyond
// the preferences read") — UpsertPreferences exists for a preferences-writing
// surface outside this core's scope (an account/settings API), so the full
// read/write contract is declared here even though no in-module caller
// invokes the write side yet.
type PreferencesStore interface {
	GetPreferences(ctx context.Context, userID string) (domain.Preferences, bool, error)
	UpsertPreferences(ctx context.Context, prefs domain.Preferences) error
}

// MetricsStore is the durable store for hourly-bucketed aggregate metrics.
type MetricsStore interface {
	// RecordHourlyAggregate applies an upsert-with-increment to the bucket
	// for (hour, model): counters add, avg_duration_ms is recomputed from
	// the new totals (§5: "upsert-with-increment or equivalent").
	RecordHourlyAggregate(ctx context.Context, bucketHour time.Time, model string, m domain.QueryMetrics) error
}

// Cache is the volatile, TTL'd key/value shadow over the durable store.
// A miss is reported as (nil, false, nil) — it is not an error.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// DeletePattern removes every key matching a glob pattern, used for
	// session-scoped cache invalidation (§4.2 cache coherence).
	DeletePattern(ctx context.Context, pattern string) error
}
