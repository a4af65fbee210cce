package ctxbuild

import (
	"regexp"
	"strconv"
	"strings"
)

// Recognized plan-parameter slot keys (§4.3 table).
const (
	SlotDuration   = "duration"
	SlotNumPeople  = "num_people"
	SlotCities     = "cities"
	SlotPlaceTypes = "place_types"
	SlotVibe       = "vibe"
	SlotBudget     = "budget"
	SlotTransport  = "transport"
)

var requiredForReady = []string{SlotDuration, SlotNumPeople, SlotCities, SlotPlaceTypes, SlotVibe}

var (
	durationRe = regexp.MustCompile(`(?i)(\d+)\s*(hour|hours|hora|horas|hr|hrs|min|mins|minute|minutes|minuto|minutos)`)
	peopleRe   = regexp.MustCompile(`(?i)(\d+)\s*(people|person|personas|persona|pax|guests?)`)
	partyOfRe  = regexp.MustCompile(`(?i)party of\s*(\d+)`)

	placeTypeWords = map[string]string{
		"bar": "bars", "bars": "bars", "bares": "bars",
		"restaurant": "restaurants", "restaurants": "restaurants", "restaurante": "restaurants", "restaurantes": "restaurants",
		"cafe": "cafés", "cafes": "cafés", "café": "cafés", "cafés": "cafés",
		"museum": "museums", "museums": "museums", "museo": "museums", "museos": "museums",
		"park": "parks", "parks": "parks", "parque": "parks", "parques": "parks",
		"club": "clubs", "clubs": "clubs", "clubes": "clubs", "discoteca": "clubs",
	}

	vibeWords = map[string]string{
		"romantic": "romantic", "romántico": "romantic", "romantico": "romantic",
		"party": "party", "fiesta": "party",
		"chill": "chill", "relajado": "chill", "tranquilo": "chill",
		"adventurous": "adventurous", "aventurero": "adventurous",
		"celebratory": "celebratory", "celebración": "celebratory",
		"tired": "tired", "cansado": "tired",
	}

	budgetWords = map[string]string{
		"low": "low", "barato": "low", "económico": "low", "economico": "low",
		"medium": "medium", "medio": "medium",
		"high": "high", "caro": "high", "lujo": "high",
	}

	transportWords = map[string]string{
		"walking": "walking", "walk": "walking", "caminando": "walking", "andando": "walking", "a pie": "walking",
		"driving": "driving", "car": "driving", "coche": "driving", "conduciendo": "driving",
		"transit": "transit", "bus": "transit", "metro": "transit", "public transport": "transit", "transporte público": "transit",
	}

	evening = regexp.MustCompile(`(?i)\b(evening|noche|tarde-noche)\b`)
	quick   = regexp.MustCompile(`(?i)\b(quick|rápido|rapido|express)\b`)
	fullDay = regexp.MustCompile(`(?i)\b(full day|todo el día|todo el dia|día completo|dia completo)\b`)
)

// PlanContextExtractor extracts buildable-itinerary slots from free text,
// against a configured city list (§4.3).
type PlanContextExtractor struct {
	cities []string
}

func NewPlanContextExtractor(cities []string) *PlanContextExtractor {
	return &PlanContextExtractor{cities: cities}
}

// Extract recognizes slots present in a single query and returns only the
// ones found — callers combine this with Merge against prior state.
func (p *PlanContextExtractor) Extract(query string) map[string]any {
	out := map[string]any{}
	lower := strings.ToLower(query)

	if d := extractDuration(lower); d != "" {
		out[SlotDuration] = d
	}
	if n, ok := extractNumPeople(lower); ok {
		out[SlotNumPeople] = n
	}
	if cities := p.extractCities(lower); len(cities) > 0 {
		out[SlotCities] = cities
	}
	if types := extractFromWordMap(lower, placeTypeWords); len(types) > 0 {
		out[SlotPlaceTypes] = types
	}
	if vibe := firstFromWordMap(lower, vibeWords); vibe != "" {
		out[SlotVibe] = vibe
	}
	if budget := firstFromWordMap(lower, budgetWords); budget != "" {
		out[SlotBudget] = budget
	}
	if transport := firstFromWordMap(lower, transportWords); transport != "" {
		out[SlotTransport] = transport
	}
	return out
}

func extractDuration(lower string) string {
	switch {
	case fullDay.MatchString(lower):
		return "full day"
	case evening.MatchString(lower):
		return "evening"
	case quick.MatchString(lower):
		return "quick"
	}
	if m := durationRe.FindStringSubmatch(lower); m != nil {
		unit := "hours"
		if strings.HasPrefix(m[2], "min") || strings.HasPrefix(m[2], "minut") {
			unit = "min"
		}
		return m[1] + " " + unit
	}
	return ""
}

func extractNumPeople(lower string) (int, bool) {
	if m := partyOfRe.FindStringSubmatch(lower); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n, true
		}
	}
	if m := peopleRe.FindStringSubmatch(lower); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return n, true
		}
	}
	return 0, false
}

func (p *PlanContextExtractor) extractCities(lower string) []string {
	var out []string
	for _, c := range p.cities {
		if strings.Contains(lower, strings.ToLower(c)) {
			out = append(out, c)
		}
	}
	return out
}

func extractFromWordMap(lower string, words map[string]string) []string {
	seen := map[string]bool{}
	var out []string
	for raw, canonical := range words {
		if strings.Contains(lower, raw) && !seen[canonical] {
			seen[canonical] = true
			out = append(out, canonical)
		}
	}
	return out
}

func firstFromWordMap(lower string, words map[string]string) string {
	for raw, canonical := range words {
		if strings.Contains(lower, raw) {
			return canonical
		}
	}
	return ""
}

// Merge takes the new value when present, else the existing one; list slots
// union without duplicates (§4.3). Merge is idempotent on its right operand:
// Merge(a, b) == Merge(a, Merge(b, b)).
func Merge(existing, incoming map[string]any) map[string]any {
	out := map[string]any{}
	for k, v := range existing {
		out[k] = v
	}
	for k, v := range incoming {
		if isListSlot(k) {
			out[k] = unionStrings(toStringSlice(out[k]), toStringSlice(v))
		} else {
			out[k] = v
		}
	}
	return out
}

func isListSlot(slot string) bool {
	return slot == SlotCities || slot == SlotPlaceTypes
}

func toStringSlice(v any) []string {
	switch vv := v.(type) {
	case []string:
		return vv
	case []any:
		out := make([]string, 0, len(vv))
		for _, e := range vv {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func unionStrings(a, b []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, s := range append(append([]string{}, a...), b...) {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// IsReady reports whether {duration, num_people, cities, place_types, vibe}
// are all set (§4.3).
func IsReady(params map[string]any) bool {
	for _, slot := range requiredForReady {
		v, ok := params[slot]
		if !ok || v == nil {
			return false
		}
		if s, ok := v.(string); ok && s == "" {
			return false
		}
		if lst, ok := v.([]string); ok && len(lst) == 0 {
			return false
		}
	}
	return true
}

// ExtractPlanState is the inverse accessor used by the round-trip law in §8:
// it reads back a previously persisted plan_params map verbatim for all
// recognized keys.
func ExtractPlanState(extraMetadata map[string]any) map[string]any {
	raw, ok := extraMetadata["plan_params"]
	if !ok {
		return nil
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	out := map[string]any{}
	for _, slot := range []string{SlotDuration, SlotNumPeople, SlotCities, SlotPlaceTypes, SlotVibe, SlotBudget, SlotTransport} {
		if v, ok := m[slot]; ok {
			out[slot] = v
		}
	}
	return out
}
