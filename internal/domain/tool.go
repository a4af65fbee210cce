package domain

import "time"

// ToolCall is one ordered entry in a reason-act execution trace.
type ToolCall struct {
	StepIndex   int
	ToolName    string
	Arguments   map[string]any
	Observation any
	Err         error
	Duration    time.Duration
}

// Place is a canonical place record as returned by the Places service.
type Place struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Address      string   `json:"address"`
	Lat          float64  `json:"lat"`
	Lon          float64  `json:"lon"`
	Rating       float64  `json:"rating"`
	Categories   []string `json:"categories"`
	OpeningHours []string `json:"opening_hours,omitempty"`
}

// ItineraryStep is one stop in a generated itinerary.
type ItineraryStep struct {
	Place             Place   `json:"place"`
	ArrivalOffsetMin  int     `json:"arrival_offset_minutes"`
	StayMinutes       int     `json:"stay_minutes"`
	TravelFromPrevKm  float64 `json:"travel_from_prev_km"`
}

// Itinerary is the structured output of the create_itinerary tool.
type Itinerary struct {
	Title            string          `json:"title"`
	Steps            []ItineraryStep `json:"steps"`
	TotalDurationMin int             `json:"total_duration_minutes"`
	TotalDistanceKm  float64         `json:"total_distance_km"`
	EstimatedCost    float64         `json:"estimated_cost"`
	Partial          bool            `json:"partial"`
	Metadata         map[string]any  `json:"metadata,omitempty"`
}
