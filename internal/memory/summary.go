package memory

import (
	"fmt"
	"sort"
	"strings"

	"github.com/wayfarer-ai/agent-core/internal/domain"
)

// buildSummary folds a slice of turns into a single deterministic string:
// total turn count, the most frequent intents, and up to three
// representative place names (§4.2 step 3). It is rule-based rather than
// model-generated so summarization never adds latency, cost, or
// nondeterminism to the hot path.
func buildSummary(turns []domain.ConversationTurn) string {
	if len(turns) == 0 {
		return ""
	}

	counts := map[string]int{}
	for _, t := range turns {
		if t.Intent != "" {
			counts[t.Intent]++
		}
	}
	topIntents := topN(counts, 3)

	places := representativePlaces(turns, 3)

	var b strings.Builder
	fmt.Fprintf(&b, "%d earlier turn(s)", len(turns))
	if len(topIntents) > 0 {
		fmt.Fprintf(&b, "; mostly %s", strings.Join(topIntents, ", "))
	}
	if len(places) > 0 {
		fmt.Fprintf(&b, "; discussed %s", strings.Join(places, ", "))
	}
	return b.String()
}

// appendFolded extends an existing summary with content folded in during
// compression (§4.2 step 5), without discarding what was already there.
func appendFolded(existing string, folded []domain.ConversationTurn) string {
	addition := buildSummary(folded)
	if addition == "" {
		return existing
	}
	if existing == "" {
		return addition
	}
	return existing + "; " + addition
}

func topN(counts map[string]int, n int) []string {
	type kv struct {
		k string
		v int
	}
	items := make([]kv, 0, len(counts))
	for k, v := range counts {
		items = append(items, kv{k, v})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].v != items[j].v {
			return items[i].v > items[j].v
		}
		return items[i].k < items[j].k
	})
	if len(items) > n {
		items = items[:n]
	}
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.k
	}
	return out
}

func representativePlaces(turns []domain.ConversationTurn, n int) []string {
	seen := map[string]bool{}
	var out []string
	for i := len(turns) - 1; i >= 0 && len(out) < n; i-- {
		for _, name := range placeNamesFromTurn(turns[i]) {
			if !seen[name] {
				seen[name] = true
				out = append(out, name)
				if len(out) >= n {
					break
				}
			}
		}
	}
	return out
}
