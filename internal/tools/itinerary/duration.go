package itinerary

import (
	"regexp"
	"strconv"
	"strings"
)

var numericDurationRe = regexp.MustCompile(`(?i)(\d+)\s*(hour|hours|hora|horas|hr|hrs|min|mins|minute|minutes|minuto|minutos)`)

// ParseDurationMinutes turns a duration phrase into whole minutes, following
// the same numeric-and-phrase convention the plan extractor recognizes
// ("evening" = 3h, "quick" = 30min, "full day" = 8h) so a plan_params
// "duration" slot and a direct tool argument parse identically.
func ParseDurationMinutes(s string) (int, bool) {
	lower := strings.ToLower(strings.TrimSpace(s))
	switch {
	case lower == "":
		return 0, false
	case strings.Contains(lower, "full day"), strings.Contains(lower, "todo el día"), strings.Contains(lower, "todo el dia"):
		return 8 * 60, true
	case strings.Contains(lower, "evening"), strings.Contains(lower, "noche"):
		return 3 * 60, true
	case strings.Contains(lower, "quick"), strings.Contains(lower, "rápido"), strings.Contains(lower, "rapido"), strings.Contains(lower, "express"):
		return 30, true
	}

	if m := numericDurationRe.FindStringSubmatch(lower); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, false
		}
		if strings.HasPrefix(m[2], "min") || strings.HasPrefix(m[2], "minut") {
			return n, true
		}
		return n * 60, true
	}

	return 0, false
}

// MeanSpeedKmh returns the configured mean travel speed for a transport mode
// (walking 4.5, driving 30, transit 20 km/h); unrecognized modes default to
// driving.
func MeanSpeedKmh(transport string) float64 {
	switch strings.ToLower(strings.TrimSpace(transport)) {
	case "walking", "walk":
		return 4.5
	case "transit", "bus", "metro":
		return 20
	default:
		return 30
	}
}
