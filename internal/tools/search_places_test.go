package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfarer-ai/agent-core/internal/domain"
)

type fakePlacesSearcher struct {
	places []domain.Place
	err    error

	lastQuery  string
	lastCity   string
	lastRadius int
}

func (f *fakePlacesSearcher) Search(ctx context.Context, query, city string, radiusM int) ([]domain.Place, error) {
	f.lastQuery, f.lastCity, f.lastRadius = query, city, radiusM
	return f.places, f.err
}

func TestSearchPlacesToolHappyPath(t *testing.T) {
	svc := &fakePlacesSearcher{places: []domain.Place{{ID: "1", Name: "Bar Fantasma"}}}
	tl := NewSearchPlacesTool(svc)

	out, err := tl.InvokableRun(context.Background(), `{"query":"tapas","city":"Zaragoza","radius":500}`)
	require.NoError(t, err)
	assert.Contains(t, out, "Bar Fantasma")
	assert.Equal(t, "tapas", svc.lastQuery)
	assert.Equal(t, "Zaragoza", svc.lastCity)
	assert.Equal(t, 500, svc.lastRadius)
}

func TestSearchPlacesToolRequiresQueryAndCity(t *testing.T) {
	svc := &fakePlacesSearcher{}
	tl := NewSearchPlacesTool(svc)

	_, err := tl.InvokableRun(context.Background(), `{"city":"Zaragoza"}`)
	require.Error(t, err)

	_, err = tl.InvokableRun(context.Background(), `{"query":"tapas"}`)
	require.Error(t, err)
}

func TestSearchPlacesToolPropagatesSearchError(t *testing.T) {
	svc := &fakePlacesSearcher{err: assertErr{}}
	tl := NewSearchPlacesTool(svc)

	_, err := tl.InvokableRun(context.Background(), `{"query":"tapas","city":"Zaragoza"}`)
	require.Error(t, err)
}
