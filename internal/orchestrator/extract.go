package orchestrator

import (
	"encoding/json"

	"github.com/wayfarer-ai/agent-core/internal/domain"
	"github.com/wayfarer-ai/agent-core/internal/tools"
)

type searchPlacesObservation struct {
	Places []domain.Place `json:"places"`
	Total  int            `json:"total"`
}

// extractPlaces returns the places surfaced by the last successful
// search_places call in the trace, if any.
func extractPlaces(trace []domain.ToolCall) []domain.Place {
	for i := len(trace) - 1; i >= 0; i-- {
		call := trace[i]
		if call.ToolName != tools.NameSearchPlaces || call.Err != nil {
			continue
		}
		raw, ok := call.Observation.(string)
		if !ok {
			continue
		}
		var parsed searchPlacesObservation
		if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
			continue
		}
		return parsed.Places
	}
	return nil
}

// extractItinerary returns the itinerary built by the last successful
// create_itinerary call in the trace, if any.
func extractItinerary(trace []domain.ToolCall) *domain.Itinerary {
	for i := len(trace) - 1; i >= 0; i-- {
		call := trace[i]
		if call.ToolName != tools.NameCreateItinerary || call.Err != nil {
			continue
		}
		raw, ok := call.Observation.(string)
		if !ok {
			continue
		}
		var it domain.Itinerary
		if err := json.Unmarshal([]byte(raw), &it); err != nil {
			continue
		}
		return &it
	}
	return nil
}

// placesMetadata builds the extra_metadata "places" field the memory
// buffer's previous-places extraction scans (see memory.PlacesMetadataKey).
func placesMetadata(places []domain.Place, itinerary *domain.Itinerary) []map[string]any {
	var out []map[string]any
	seen := map[string]bool{}
	add := func(id, name string) {
		key := id
		if key == "" {
			key = name
		}
		if key == "" || seen[key] {
			return
		}
		seen[key] = true
		out = append(out, map[string]any{"id": id, "name": name})
	}

	for _, p := range places {
		add(p.ID, p.Name)
	}
	if itinerary != nil {
		for _, step := range itinerary.Steps {
			add(step.Place.ID, step.Place.Name)
		}
	}
	return out
}
