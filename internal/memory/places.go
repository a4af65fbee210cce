package memory

import "github.com/wayfarer-ai/agent-core/internal/domain"

// PlacesMetadataKey is the extra_metadata key under which the orchestrator
// persists the places a turn's response surfaced (from search_places or
// create_itinerary), each as {"id": ..., "name": ...}. The memory buffer
// scans this field — not the free response text — to extract place
// references, since it is the structured record of what the tool actually
// returned.
const PlacesMetadataKey = "places"

func placeNamesFromTurn(t domain.ConversationTurn) []string {
	raw, ok := t.ExtraMetadata[PlacesMetadataKey]
	if !ok {
		return nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil
	}
	var names []string
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if name, ok := m["name"].(string); ok && name != "" {
			names = append(names, name)
		}
	}
	return names
}

// extractPreviousPlaces scans turns most-recent-first and accumulates a
// deduplicated, most-recent-first list of place references tagged with
// their originating turn index (§4.2 step 4).
func extractPreviousPlaces(turns []domain.ConversationTurn, turnIndexOf func(domain.ConversationTurn) int) []domain.PlaceRef {
	seen := map[string]bool{}
	var out []domain.PlaceRef
	for i := len(turns) - 1; i >= 0; i-- {
		t := turns[i]
		raw, ok := t.ExtraMetadata[PlacesMetadataKey]
		if !ok {
			continue
		}
		items, ok := raw.([]any)
		if !ok {
			continue
		}
		for _, item := range items {
			m, ok := item.(map[string]any)
			if !ok {
				continue
			}
			name, _ := m["name"].(string)
			id, _ := m["id"].(string)
			key := id
			if key == "" {
				key = name
			}
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, domain.PlaceRef{
				TurnIndex: turnIndexOf(t),
				Name:      name,
				PlaceID:   id,
			})
		}
	}
	for i := range out {
		out[i].Index = i + 1
	}
	return out
}
