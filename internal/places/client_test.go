package places

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfarer-ai/agent-core/internal/config"
)

func TestSearchParsesResponseAndAppliesDefaultRadius(t *testing.T) {
	var gotRadius string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRadius = r.URL.Query().Get("radius")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"places":[{"id":"1","name":"Bar Fantasma","lat":41.65,"lon":-0.88,"rating":4.5,"categories":["bar"],"opening_hours":["Mon-Sun 18:00-02:00"]}]}`))
	}))
	defer srv.Close()

	c := New(config.PlacesConfig{APIBaseURL: srv.URL, DefaultRadius: 3000, APITimeoutMs: 5000})

	places, err := c.Search(context.Background(), "tapas", "Zaragoza", 0)
	require.NoError(t, err)
	require.Len(t, places, 1)
	assert.Equal(t, "Bar Fantasma", places[0].Name)
	assert.Equal(t, []string{"Mon-Sun 18:00-02:00"}, places[0].OpeningHours)
	assert.Equal(t, "3000", gotRadius)
}

func TestSearchUsesExplicitRadiusWhenGiven(t *testing.T) {
	var gotRadius string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRadius = r.URL.Query().Get("radius")
		w.Write([]byte(`{"places":[]}`))
	}))
	defer srv.Close()

	c := New(config.PlacesConfig{APIBaseURL: srv.URL, DefaultRadius: 3000, APITimeoutMs: 5000})
	_, err := c.Search(context.Background(), "tapas", "Zaragoza", 500)
	require.NoError(t, err)
	assert.Equal(t, "500", gotRadius)
}

func TestSearchReturnsErrorOnNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(config.PlacesConfig{APIBaseURL: srv.URL, DefaultRadius: 3000, APITimeoutMs: 5000})
	_, err := c.Search(context.Background(), "tapas", "Zaragoza", 0)
	require.Error(t, err)
}
