// Package memory implements the conversation memory buffer (§4.2): a capped,
// token-bounded conversation window per session, with cache coherence over
// a durable store of truth.
package memory

import (
	"context"
	"encoding/json"

	"github.com/wayfarer-ai/agent-core/internal/config"
	errx "github.com/wayfarer-ai/agent-core/internal/core/error"
	"github.com/wayfarer-ai/agent-core/internal/domain"
	"github.com/wayfarer-ai/agent-core/internal/persist"
	logx "github.com/wayfarer-ai/agent-core/pkg/logger"
	"time"
)

// Buffer produces MemoryWindow values for a session.
type Buffer struct {
	turns persist.ConversationStore
	cache persist.Cache
	cfg   config.MemoryConfig
}

func New(turns persist.ConversationStore, cache persist.Cache, cfg config.MemoryConfig) *Buffer {
	return &Buffer{turns: turns, cache: cache, cfg: cfg}
}

// LoadWindow implements load_window(ids, current_query, language) -> MemoryWindow (§4.2).
func (b *Buffer) LoadWindow(ctx context.Context, sessionID, currentQuery string) (domain.MemoryWindow, error) {
	if b.cache != nil {
		if raw, ok, err := b.cache.Get(ctx, persist.MemoryKey(sessionID)); err != nil {
			logx.Warn().Err(err).Str("session_id", sessionID).Msg("memory cache read failed, falling back to durable store")
		} else if ok {
			var win domain.MemoryWindow
			if err := json.Unmarshal(raw, &win); err == nil {
				return win, nil
			}
			logx.Warn().Str("session_id", sessionID).Msg("memory cache entry unreadable, falling back to durable store")
		}
	}

	turns, err := b.turns.RecentTurns(ctx, sessionID, b.cfg.MaxLongTermTurns)
	if err != nil {
		return domain.MemoryWindow{}, errx.New(errx.MemoryUnavailable, "failed to load conversation turns", err)
	}

	win := b.buildWindow(sessionID, turns, currentQuery)

	if b.cache != nil {
		if raw, err := json.Marshal(win); err == nil {
			if err := b.cache.Set(ctx, persist.MemoryKey(sessionID), raw, time.Duration(b.cfg.CacheTTLMemorySec)*time.Second); err != nil {
				logx.Warn().Err(err).Str("session_id", sessionID).Msg("failed to cache memory window")
			}
		}
	}

	return win, nil
}

// Invalidate implements the cache-coherence obligation on the orchestrator:
// after any successful turn append, the session's cached window is dropped
// so the next load observes the write (§4.2 cache coherence).
func (b *Buffer) Invalidate(ctx context.Context, sessionID string) {
	if b.cache == nil {
		return
	}
	if err := b.cache.DeletePattern(ctx, persist.MemoryKeyPattern(sessionID)); err != nil {
		logx.Warn().Err(err).Str("session_id", sessionID).Msg("failed to invalidate memory cache entry")
	}
}

func (b *Buffer) buildWindow(sessionID string, turns []domain.ConversationTurn, currentQuery string) domain.MemoryWindow {
	total := len(turns)

	shortTermFloor := b.cfg.MaxShortTermTurns / 2
	if shortTermFloor < 3 {
		shortTermFloor = 3
	}

	recentCount := total
	if recentCount > b.cfg.MaxShortTermTurns {
		recentCount = b.cfg.MaxShortTermTurns
	}

	var older, recentTurns []domain.ConversationTurn
	if total > recentCount {
		older = turns[:total-recentCount]
		recentTurns = turns[total-recentCount:]
	} else {
		recentTurns = turns
	}

	summary := buildSummary(older)
	recent := messagesFromTurns(recentTurns, len(older))

	win := domain.MemoryWindow{
		SessionID:      sessionID,
		Recent:         recent,
		SessionSummary: summary,
		TotalTurns:     total,
		PreviousPlaces: extractPreviousPlaces(turns, func(t domain.ConversationTurn) int {
			for i, c := range turns {
				if c.ID == t.ID {
					return i + 1
				}
			}
			return 0
		}),
	}

	win.EstimatedTokens = estimateWindowTokens(win, currentQuery)

	threshold := b.cfg.CompressionThreshold
	if threshold <= 0 {
		threshold = 0.8
	}
	if float64(win.EstimatedTokens) >= threshold*float64(b.cfg.MaxTokens) {
		win = b.compress(win, recentTurns, older, len(older), currentQuery, shortTermFloor)
	}

	return win
}

// compress drops the oldest recent messages (folding them into the summary)
// until the estimate is <= max_tokens * 0.9, but never below
// max(3, max_short_term_turns/2) recent turns kept (§4.2 step 5 expansion).
func (b *Buffer) compress(win domain.MemoryWindow, recentTurns, older []domain.ConversationTurn, olderOffset int, currentQuery string, floor int) domain.MemoryWindow {
	target := 0.9 * float64(b.cfg.MaxTokens)
	kept := recentTurns

	for len(kept) > floor {
		estimate := estimateWindowTokensForTurns(kept, win.SessionSummary, currentQuery)
		if float64(estimate) <= target {
			break
		}
		win.SessionSummary = appendFolded(win.SessionSummary, kept[:1])
		kept = kept[1:]
	}

	win.Recent = messagesFromTurns(kept, olderOffset+len(recentTurns)-len(kept))
	win.EstimatedTokens = estimateWindowTokensForTurns(kept, win.SessionSummary, currentQuery)
	return win
}

func messagesFromTurns(turns []domain.ConversationTurn, baseIndex int) []domain.Message {
	msgs := make([]domain.Message, 0, len(turns)*2)
	for i, t := range turns {
		idx := baseIndex + i + 1
		msgs = append(msgs, domain.Message{Role: domain.RoleUser, Text: t.Query, TurnIndex: idx})
		if t.Response != "" {
			msgs = append(msgs, domain.Message{Role: domain.RoleAssistant, Text: t.Response, TurnIndex: idx})
		}
	}
	return msgs
}

func estimateWindowTokens(win domain.MemoryWindow, currentQuery string) int {
	texts := []string{win.SessionSummary, currentQuery}
	for _, m := range win.Recent {
		texts = append(texts, m.Text)
	}
	return estimateTokens(texts...)
}

func estimateWindowTokensForTurns(turns []domain.ConversationTurn, summary, currentQuery string) int {
	texts := []string{summary, currentQuery}
	for _, t := range turns {
		texts = append(texts, t.Query, t.Response)
	}
	return estimateTokens(texts...)
}
