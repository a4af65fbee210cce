package orchestrator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wayfarer-ai/agent-core/internal/domain"
	"github.com/wayfarer-ai/agent-core/internal/tools"
)

func TestExtractPlacesReturnsLastSuccessfulSearch(t *testing.T) {
	trace := []domain.ToolCall{
		{StepIndex: 1, ToolName: tools.NameSearchPlaces, Observation: `{"places":[{"id":"1","name":"Old Bar"}],"total":1}`},
		{StepIndex: 2, ToolName: tools.NameCreateItinerary, Observation: `{"title":"x"}`},
		{StepIndex: 3, ToolName: tools.NameSearchPlaces, Observation: `{"places":[{"id":"2","name":"New Bar"}],"total":1}`},
	}

	places := extractPlaces(trace)
	assert.Len(t, places, 1)
	assert.Equal(t, "New Bar", places[0].Name)
}

func TestExtractPlacesSkipsFailedCalls(t *testing.T) {
	trace := []domain.ToolCall{
		{ToolName: tools.NameSearchPlaces, Observation: `{"places":[{"id":"1","name":"Good"}]}`},
		{ToolName: tools.NameSearchPlaces, Observation: `{"error":"overloaded"}`, Err: assertErr{}},
	}

	places := extractPlaces(trace)
	assert.Len(t, places, 1)
	assert.Equal(t, "Good", places[0].Name)
}

func TestExtractPlacesReturnsNilWithoutSearchCall(t *testing.T) {
	trace := []domain.ToolCall{{ToolName: tools.NameCreateItinerary, Observation: `{"title":"x"}`}}
	assert.Nil(t, extractPlaces(trace))
}

func TestExtractItineraryReturnsLastSuccessfulBuild(t *testing.T) {
	trace := []domain.ToolCall{
		{ToolName: tools.NameCreateItinerary, Observation: `{"title":"Evening in Zaragoza","total_duration_minutes":120}`},
	}

	it := extractItinerary(trace)
	if assert.NotNil(t, it) {
		assert.Equal(t, "Evening in Zaragoza", it.Title)
		assert.Equal(t, 120, it.TotalDurationMin)
	}
}

func TestExtractItineraryIgnoresUnparseableObservation(t *testing.T) {
	trace := []domain.ToolCall{{ToolName: tools.NameCreateItinerary, Observation: "not json"}}
	assert.Nil(t, extractItinerary(trace))
}

type assertErr struct{}

func (assertErr) Error() string { return "boom" }

func TestPlacesMetadataDedupesAcrossPlacesAndItinerary(t *testing.T) {
	places := []domain.Place{{ID: "1", Name: "Bar A"}, {ID: "2", Name: "Bar B"}}
	itinerary := &domain.Itinerary{Steps: []domain.ItineraryStep{
		{Place: domain.Place{ID: "1", Name: "Bar A"}},
		{Place: domain.Place{ID: "3", Name: "Bar C"}},
	}}

	meta := placesMetadata(places, itinerary)
	assert.Len(t, meta, 3)

	var names []string
	for _, m := range meta {
		names = append(names, m["name"].(string))
	}
	assert.Contains(t, names, "Bar A")
	assert.Contains(t, names, "Bar B")
	assert.Contains(t, names, "Bar C")
}

func TestPlacesMetadataHandlesNilItinerary(t *testing.T) {
	meta := placesMetadata([]domain.Place{{ID: "1", Name: "Bar A"}}, nil)
	assert.Len(t, meta, 1)
}

func TestPlacesMetadataFallsBackToNameWhenIDEmpty(t *testing.T) {
	places := []domain.Place{{Name: "Bar A"}, {Name: "Bar A"}}
	meta := placesMetadata(places, nil)
	assert.Len(t, meta, 1)
}

func TestEstimateCostCombinesInputAndOutputRates(t *testing.T) {
	decision := domain.ModelDecision{InputCostPerM: 2.0, OutputCostPerM: 8.0}
	cost := estimateCost(1_000_000, 500_000, decision)
	assert.InDelta(t, 2.0+4.0, cost, 0.0001)
}

func TestEstimateCostZeroTokensIsZeroCost(t *testing.T) {
	decision := domain.ModelDecision{InputCostPerM: 2.0, OutputCostPerM: 8.0}
	assert.Equal(t, 0.0, estimateCost(0, 0, decision))
}
