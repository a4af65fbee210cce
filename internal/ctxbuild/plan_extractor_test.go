package ctxbuild

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractRecognizesAllSlots(t *testing.T) {
	p := NewPlanContextExtractor([]string{"Zaragoza", "Madrid"})
	out := p.Extract("plan a romantic evening in Zaragoza for 2 people, bars and restaurants, low budget, walking")

	assert.Equal(t, "evening", out[SlotDuration])
	assert.Equal(t, 2, out[SlotNumPeople])
	assert.ElementsMatch(t, []string{"Zaragoza"}, out[SlotCities])
	assert.ElementsMatch(t, []string{"bars", "restaurants"}, out[SlotPlaceTypes])
	assert.Equal(t, "romantic", out[SlotVibe])
	assert.Equal(t, "low", out[SlotBudget])
	assert.Equal(t, "walking", out[SlotTransport])
}

func TestExtractDurationPhrasesAndNumeric(t *testing.T) {
	p := NewPlanContextExtractor(nil)
	assert.Equal(t, "full day", p.Extract("I want a full day trip")[SlotDuration])
	assert.Equal(t, "quick", p.Extract("something quick please")[SlotDuration])
	assert.Equal(t, "3 hours", p.Extract("about 3 hours")[SlotDuration])
	assert.Equal(t, "45 min", p.Extract("45 minutes free")[SlotDuration])
}

func TestExtractNumPeoplePartyOfPhrase(t *testing.T) {
	p := NewPlanContextExtractor(nil)
	out := p.Extract("party of 5 looking for tapas")
	assert.Equal(t, 5, out[SlotNumPeople])
}

func TestExtractReturnsOnlyRecognizedSlots(t *testing.T) {
	p := NewPlanContextExtractor([]string{"Zaragoza"})
	out := p.Extract("hello there")
	assert.Empty(t, out)
}

func TestMergeUnionsListSlotsAndOverwritesScalars(t *testing.T) {
	existing := map[string]any{
		SlotCities:   []string{"Zaragoza"},
		SlotDuration: "evening",
	}
	incoming := map[string]any{
		SlotCities:   []string{"Madrid"},
		SlotDuration: "full day",
	}

	merged := Merge(existing, incoming)
	assert.ElementsMatch(t, []string{"Zaragoza", "Madrid"}, merged[SlotCities])
	assert.Equal(t, "full day", merged[SlotDuration])
}

func TestMergeIsIdempotentOnRightOperand(t *testing.T) {
	a := map[string]any{SlotCities: []string{"Zaragoza"}, SlotVibe: "chill"}
	b := map[string]any{SlotCities: []string{"Madrid"}, SlotVibe: "party"}

	once := Merge(a, b)
	twice := Merge(a, Merge(b, b))
	assert.Equal(t, once, twice)
}

func TestIsReadyRequiresAllFiveSlots(t *testing.T) {
	params := map[string]any{
		SlotDuration:   "evening",
		SlotNumPeople:  2,
		SlotCities:     []string{"Zaragoza"},
		SlotPlaceTypes: []string{"bars"},
	}
	assert.False(t, IsReady(params))

	params[SlotVibe] = "romantic"
	assert.True(t, IsReady(params))
}

func TestIsReadyTreatsEmptyValuesAsMissing(t *testing.T) {
	params := map[string]any{
		SlotDuration:   "",
		SlotNumPeople:  2,
		SlotCities:     []string{},
		SlotPlaceTypes: []string{"bars"},
		SlotVibe:       "romantic",
	}
	assert.False(t, IsReady(params))
}

func TestExtractPlanStateRoundTrip(t *testing.T) {
	original := map[string]any{
		SlotDuration:  "evening",
		SlotNumPeople: 2,
		SlotCities:    []string{"Zaragoza"},
		SlotBudget:    "low",
	}
	extraMetadata := map[string]any{"plan_params": original}

	got := ExtractPlanState(extraMetadata)
	assert.Equal(t, original, got)
}

func TestExtractPlanStateMissingKeyReturnsNil(t *testing.T) {
	assert.Nil(t, ExtractPlanState(map[string]any{}))
	assert.Nil(t, ExtractPlanState(nil))
}
