package places

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/wayfarer-ai/agent-core/internal/domain"
	"github.com/wayfarer-ai/agent-core/internal/persist"
	logx "github.com/wayfarer-ai/agent-core/pkg/logger"
)

// Searcher is the interface CachingClient wraps; *Client satisfies it.
type Searcher interface {
	Search(ctx context.Context, query, city string, radiusM int) ([]domain.Place, error)
}

// CachingClient shadows a Searcher over the volatile cache, namespaced under
// agent:places:{hash} (§6). A cache miss or unreadable entry falls back to
// the wrapped searcher, matching the memory buffer's cache-then-store shape.
type CachingClient struct {
	next  Searcher
	cache persist.Cache
	ttl   time.Duration
}

func NewCachingClient(next Searcher, cache persist.Cache, ttlSeconds int) *CachingClient {
	return &CachingClient{next: next, cache: cache, ttl: time.Duration(ttlSeconds) * time.Second}
}

func (c *CachingClient) Search(ctx context.Context, query, city string, radiusM int) ([]domain.Place, error) {
	if c.cache == nil {
		return c.next.Search(ctx, query, city, radiusM)
	}

	key := persist.PlacesKey(searchHash(query, city, radiusM))
	if raw, ok, err := c.cache.Get(ctx, key); err != nil {
		logx.Warn().Err(err).Msg("places cache read failed, falling back to places service")
	} else if ok {
		var places []domain.Place
		if err := json.Unmarshal(raw, &places); err == nil {
			return places, nil
		}
		logx.Warn().Msg("places cache entry unreadable, falling back to places service")
	}

	places, err := c.next.Search(ctx, query, city, radiusM)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(places); err == nil {
		if err := c.cache.Set(ctx, key, raw, c.ttl); err != nil {
			logx.Warn().Err(err).Msg("failed to cache places search result")
		}
	}
	return places, nil
}

func searchHash(query, city string, radiusM int) string {
	normalized := strings.ToLower(strings.TrimSpace(query)) + "|" + strings.ToLower(strings.TrimSpace(city)) + "|" + fmt.Sprint(radiusM)
	h := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(h[:])[:16]
}
