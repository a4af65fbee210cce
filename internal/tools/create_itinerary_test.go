package tools

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfarer-ai/agent-core/internal/domain"
)

func TestCreateItineraryToolHappyPath(t *testing.T) {
	svc := &fakePlacesSearcher{places: []domain.Place{
		{ID: "1", Name: "Bar A", Lat: 41.65, Lon: -0.88, Rating: 4.5},
		{ID: "2", Name: "Bar B", Lat: 41.66, Lon: -0.87, Rating: 4.0},
	}}
	tl := NewCreateItineraryTool(svc)

	out, err := tl.InvokableRun(context.Background(), `{"query":"bars","city":"Zaragoza","num_locations":2,"duration":"evening"}`)
	require.NoError(t, err)
	assert.Contains(t, out, "Bar A")
	assert.Equal(t, "bars", svc.lastQuery)
	assert.Equal(t, "Zaragoza", svc.lastCity)
}

func TestCreateItineraryToolRequiresQueryAndCity(t *testing.T) {
	svc := &fakePlacesSearcher{}
	tl := NewCreateItineraryTool(svc)

	_, err := tl.InvokableRun(context.Background(), `{"city":"Zaragoza","num_locations":2,"duration":"evening"}`)
	require.Error(t, err)
}

func TestCreateItineraryToolDefaultsNumLocations(t *testing.T) {
	svc := &fakePlacesSearcher{places: []domain.Place{
		{ID: "1", Name: "A", Rating: 4}, {ID: "2", Name: "B", Rating: 3}, {ID: "3", Name: "C", Rating: 2}, {ID: "4", Name: "D", Rating: 1},
	}}
	tl := NewCreateItineraryTool(svc)

	out, err := tl.InvokableRun(context.Background(), `{"query":"bars","city":"Zaragoza","duration":"evening"}`)
	require.NoError(t, err)
	assert.Contains(t, out, `"total_duration_minutes"`)

	var it domain.Itinerary
	require.NoError(t, json.Unmarshal([]byte(out), &it))
	assert.Len(t, it.Steps, 3)
}

func TestCreateItineraryToolDefaultsDurationWhenUnparseable(t *testing.T) {
	svc := &fakePlacesSearcher{places: []domain.Place{{ID: "1", Name: "A", Rating: 4}}}
	tl := NewCreateItineraryTool(svc)

	// an unparseable duration string must not fail the call; it falls back
	// to a 120-minute default.
	out, err := tl.InvokableRun(context.Background(), `{"query":"bars","city":"Zaragoza","num_locations":1,"duration":"whenever"}`)
	require.NoError(t, err)
	assert.Contains(t, out, "A")

	var it domain.Itinerary
	require.NoError(t, json.Unmarshal([]byte(out), &it))
	assert.Equal(t, 120, it.TotalDurationMin)
}
