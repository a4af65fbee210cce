package tools

import (
	"context"
	"fmt"
	"unicode"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"
	"github.com/wayfarer-ai/agent-core/internal/domain"
	"github.com/wayfarer-ai/agent-core/internal/tools/itinerary"
)

type CreateItineraryInput struct {
	Query        string  `json:"query"`
	City         string  `json:"city"`
	NumLocations int     `json:"num_locations"`
	Duration     string  `json:"duration"`
	NumPeople    int     `json:"num_people,omitempty"`
	Vibe         string  `json:"vibe,omitempty"`
	Budget       string  `json:"budget,omitempty"`
	Transport    string  `json:"transport,omitempty"`
	OriginLat    float64 `json:"origin_lat,omitempty"`
	OriginLon    float64 `json:"origin_lon,omitempty"`
}

func NewCreateItineraryTool(svc PlacesSearcher) tool.InvokableTool {
	return utils.NewTool(
		&schema.ToolInfo{
			Name: NameCreateItinerary,
			Desc: "Build a multi-stop itinerary: searches for places matching the query in a city, orders them into a route, and assigns arrival times. Use this once enough plan details (duration, number of people, cities, place types, vibe) have been gathered across the conversation.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"query":         {Type: "string", Desc: "What kind of places to include, e.g. 'romantic restaurants and bars'.", Required: true},
				"city":          {Type: "string", Desc: "City to plan within.", Required: true},
				"num_locations": {Type: "number", Desc: "Number of stops to include.", Required: true},
				"duration":      {Type: "string", Desc: "Total time available, e.g. '3 hours', 'evening', 'full day'.", Required: true},
				"num_people":    {Type: "number", Desc: "Party size, when known."},
				"vibe":          {Type: "string", Desc: "Desired mood, e.g. 'romantic', 'party', 'chill'."},
				"budget":        {Type: "string", Desc: "One of low, medium, high."},
				"transport":     {Type: "string", Desc: "One of walking, driving, transit."},
				"origin_lat":    {Type: "number", Desc: "Starting latitude, when known."},
				"origin_lon":    {Type: "number", Desc: "Starting longitude, when known."},
			}),
		},
		func(ctx context.Context, in *CreateItineraryInput) (*domain.Itinerary, error) {
			if in.Query == "" || in.City == "" {
				return nil, fmt.Errorf("query and city are required")
			}
			if in.NumLocations <= 0 {
				in.NumLocations = 3
			}

			durationMin, ok := itinerary.ParseDurationMinutes(in.Duration)
			if !ok {
				durationMin = 120
			}

			places, err := svc.Search(ctx, in.Query, in.City, 0)
			if err != nil {
				return nil, fmt.Errorf("search places for itinerary: %w", err)
			}

			var origin *domain.Location
			if in.OriginLat != 0 || in.OriginLon != 0 {
				origin = &domain.Location{Lat: in.OriginLat, Lon: in.OriginLon}
			}

			result := itinerary.Build(itinerary.BuildInput{
				Title:           fmt.Sprintf("%s in %s", titleCaseVibe(in.Vibe), in.City),
				Places:          places,
				Origin:          origin,
				NumLocations:    in.NumLocations,
				DurationMinutes: durationMin,
				Transport:       in.Transport,
				Budget:          in.Budget,
			})
			return &result, nil
		},
	)
}

func titleCaseVibe(vibe string) string {
	if vibe == "" {
		return "Itinerary"
	}
	r := []rune(vibe)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
