package tools

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"
	"github.com/wayfarer-ai/agent-core/internal/domain"
)

// PlacesSearcher is the collaborator search_places delegates to (§6).
type PlacesSearcher interface {
	Search(ctx context.Context, query, city string, radiusM int) ([]domain.Place, error)
}

type SearchPlacesInput struct {
	Query  string `json:"query"`
	City   string `json:"city"`
	Radius int    `json:"radius,omitempty"`
}

type SearchPlacesOutput struct {
	Places []domain.Place `json:"places"`
	Total  int            `json:"total"`
}

func NewSearchPlacesTool(svc PlacesSearcher) tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: NameSearchPlaces,
			Desc: "Search for places (restaurants, bars, attractions, venues) near a city. Always returns structured place records with id, name, address, coordinates, rating, categories, and opening hours. Use this whenever the user asks to find or discover a place.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"query": {
					Type:     "string",
					Desc:     "Free-text search terms, e.g. 'tapas bar', 'romantic restaurant', 'museum'.",
					Required: true,
				},
				"city": {
					Type:     "string",
					Desc:     "City to search within, e.g. 'Zaragoza'.",
					Required: true,
				},
				"radius": {
					Type: "number",
					Desc: "Search radius in meters. Optional; a sensible default is used when omitted.",
				},
			}),
		},
		func(ctx context.Context, in *SearchPlacesInput) (*SearchPlacesOutput, error) {
			if in.Query == "" {
				return nil, fmt.Errorf("query is required")
			}
			if in.City == "" {
				return nil, fmt.Errorf("city is required")
			}

			places, err := svc.Search(ctx, in.Query, in.City, in.Radius)
			if err != nil {
				return nil, fmt.Errorf("search places: %w", err)
			}

			return &SearchPlacesOutput{Places: places, Total: len(places)}, nil
		},
	)
}
