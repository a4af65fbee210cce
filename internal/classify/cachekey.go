package classify

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// cacheKey hashes the normalized query, language, and a coarse summary hash
// into a short deterministic digest (§4.4 caching), the same
// normalize-then-SHA256-then-truncate scheme used for cache keys elsewhere
// in this lineage.
func cacheKey(query, language, summaryHash string) string {
	normalized := strings.ToLower(strings.TrimSpace(query))
	h := sha256.Sum256([]byte(normalized + "|" + language + "|" + summaryHash))
	return hex.EncodeToString(h[:])[:16]
}

// SummaryHash reduces a session summary to a coarse, cache-key-stable hash
// so two requests with byte-identical history summaries share a cache entry.
func SummaryHash(summary string) string {
	if summary == "" {
		return ""
	}
	h := sha256.Sum256([]byte(summary))
	return hex.EncodeToString(h[:])[:8]
}
