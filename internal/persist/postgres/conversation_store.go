package postgres

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	errx "github.com/wayfarer-ai/agent-core/internal/core/error"
	"github.com/wayfarer-ai/agent-core/internal/domain"
	"gorm.io/gorm"
)

// ConversationRepo adapts Store onto persist.ConversationStore.
type ConversationRepo struct {
	store *Store
}

func NewConversationRepo(store *Store) *ConversationRepo {
	return &ConversationRepo{store: store}
}

func (r *ConversationRepo) AppendTurn(ctx context.Context, turn domain.ConversationTurn) (domain.ConversationTurn, error) {
	if turn.ID == "" {
		turn.ID = uuid.NewString()
	}
	if turn.CreatedAt.IsZero() {
		turn.CreatedAt = time.Now().UTC()
	}

	meta, err := json.Marshal(turn.ExtraMetadata)
	if err != nil {
		return domain.ConversationTurn{}, errx.New(errx.PersistenceFailed, "encode turn metadata", err)
	}

	row := conversationTurnModel{
		ID:            turn.ID,
		SessionID:     turn.SessionID,
		UserID:        turn.UserID,
		Query:         turn.Query,
		Response:      turn.Response,
		Intent:        turn.Intent,
		Model:         turn.Model,
		InputTokens:   turn.InputTokens,
		OutputTokens:  turn.OutputTokens,
		CostUSD:       turn.CostUSD,
		DurationMs:    turn.DurationMs,
		CreatedAt:     turn.CreatedAt,
		ExtraMetadata: meta,
	}

	// A transaction around the single insert gives us Postgres's normal
	// MVCC serialization for concurrent appends on the same session; the
	// next reader's SELECT ... ORDER BY created_at observes every commit
	// that preceded its own snapshot.
	if err := r.store.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&row).Error
	}); err != nil {
		return domain.ConversationTurn{}, errx.WrapStore(err)
	}

	return turn, nil
}

func (r *ConversationRepo) RecentTurns(ctx context.Context, sessionID string, limit int) ([]domain.ConversationTurn, error) {
	var rows []conversationTurnModel
	q := r.store.DB().WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, errx.WrapStore(err)
	}

	turns := make([]domain.ConversationTurn, len(rows))
	// rows arrived newest-first; the contract wants chronological order.
	for i, row := range rows {
		turn := domain.ConversationTurn{
			ID:           row.ID,
			SessionID:    row.SessionID,
			UserID:       row.UserID,
			Query:        row.Query,
			Response:     row.Response,
			Intent:       row.Intent,
			Model:        row.Model,
			InputTokens:  row.InputTokens,
			OutputTokens: row.OutputTokens,
			CostUSD:      row.CostUSD,
			DurationMs:   row.DurationMs,
			CreatedAt:    row.CreatedAt,
		}
		if len(row.ExtraMetadata) > 0 {
			var meta map[string]any
			if err := json.Unmarshal(row.ExtraMetadata, &meta); err == nil {
				turn.ExtraMetadata = meta
			}
		}
		turns[len(rows)-1-i] = turn
	}
	return turns, nil
}
