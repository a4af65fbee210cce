// Package itinerary implements create_itinerary's composition logic (§4.6):
// selecting top-rated places, ordering them via a nearest-neighbor tour, and
// slicing the requested duration into per-stop time slots.
package itinerary

import (
	"math"
	"sort"

	"github.com/wayfarer-ai/agent-core/internal/domain"
)

const minStayMinutes = 15

// BuildInput is everything create_itinerary needs once candidate places have
// been found.
type BuildInput struct {
	Title           string
	Places          []domain.Place
	Origin          *domain.Location
	NumLocations    int
	DurationMinutes int
	Transport       string
	Budget          string
}

// Build selects, orders, and time-slices places into an itinerary. When
// fewer places are available than requested it returns what it has and sets
// Partial (§4.6).
func Build(in BuildInput) domain.Itinerary {
	selected := topRated(in.Places, in.NumLocations)
	ordered := nearestNeighborOrder(selected, in.Origin)

	speed := MeanSpeedKmh(in.Transport)
	travelKm := make([]float64, len(ordered))
	totalTravelMin := 0.0
	prevLat, prevLon, havePrev := 0.0, 0.0, false
	if in.Origin != nil {
		prevLat, prevLon, havePrev = in.Origin.Lat, in.Origin.Lon, true
	}
	for i, p := range ordered {
		if havePrev {
			km := haversineKm(prevLat, prevLon, p.Lat, p.Lon)
			travelKm[i] = km
			totalTravelMin += (km / speed) * 60
		}
		prevLat, prevLon, havePrev = p.Lat, p.Lon, true
	}

	stayMinutes := minStayMinutes
	if len(ordered) > 0 {
		remaining := float64(in.DurationMinutes) - totalTravelMin
		perStop := remaining / float64(len(ordered))
		if int(perStop) > minStayMinutes {
			stayMinutes = int(perStop)
		}
	}

	steps := make([]domain.ItineraryStep, 0, len(ordered))
	offset := 0
	totalDistance := 0.0
	for i, p := range ordered {
		if i > 0 {
			offset += int((travelKm[i] / speed) * 60)
		}
		steps = append(steps, domain.ItineraryStep{
			Place:            p,
			ArrivalOffsetMin: offset,
			StayMinutes:      stayMinutes,
			TravelFromPrevKm: travelKm[i],
		})
		offset += stayMinutes
		totalDistance += travelKm[i]
	}

	partial := len(ordered) < in.NumLocations

	return domain.Itinerary{
		Title:            titleOrDefault(in.Title),
		Steps:            steps,
		TotalDurationMin: offset,
		TotalDistanceKm:  math.Round(totalDistance*100) / 100,
		EstimatedCost:    estimatedCost(in.Budget, len(ordered)),
		Partial:          partial,
		Metadata: map[string]any{
			"transport":           in.Transport,
			"requested_locations": in.NumLocations,
			"cost_unit":           "abstract, not currency",
		},
	}
}

func titleOrDefault(t string) string {
	if t == "" {
		return "Your itinerary"
	}
	return t
}

func topRated(places []domain.Place, n int) []domain.Place {
	sorted := append([]domain.Place(nil), places...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Rating > sorted[j].Rating })
	if n > 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// nearestNeighborOrder greedily walks from origin (or the first place, when
// no origin coordinate is available) to the nearest unvisited place each
// step (§4.6).
func nearestNeighborOrder(places []domain.Place, origin *domain.Location) []domain.Place {
	if len(places) == 0 {
		return nil
	}

	remaining := append([]domain.Place(nil), places...)
	ordered := make([]domain.Place, 0, len(remaining))

	curLat, curLon := remaining[0].Lat, remaining[0].Lon
	if origin != nil {
		curLat, curLon = origin.Lat, origin.Lon
	}

	for len(remaining) > 0 {
		bestIdx := 0
		bestDist := haversineKm(curLat, curLon, remaining[0].Lat, remaining[0].Lon)
		for i := 1; i < len(remaining); i++ {
			d := haversineKm(curLat, curLon, remaining[i].Lat, remaining[i].Lon)
			if d < bestDist {
				bestDist = d
				bestIdx = i
			}
		}
		next := remaining[bestIdx]
		ordered = append(ordered, next)
		curLat, curLon = next.Lat, next.Lon
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}
	return ordered
}

func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadiusKm = 6371.0
	rad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := rad(lat2 - lat1)
	dLon := rad(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rad(lat1))*math.Cos(rad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// estimatedCost is a coarse per-budget-label multiplier times stop count,
// expressed in an abstract unit — the Places service reports no prices
// (§4.6 expansion).
func estimatedCost(budget string, numStops int) float64 {
	mult := 1.0
	switch budget {
	case "medium":
		mult = 2
	case "high":
		mult = 3
	}
	return mult * float64(numStops)
}
