package itinerary

import "testing"

func TestParseDurationMinutes(t *testing.T) {
	cases := []struct {
		in        string
		wantMin   int
		wantFound bool
	}{
		{"", 0, false},
		{"full day", 480, true},
		{"todo el día", 480, true},
		{"evening", 180, true},
		{"noche", 180, true},
		{"quick", 30, true},
		{"rápido", 30, true},
		{"2 hours", 120, true},
		{"2 horas", 120, true},
		{"90 minutes", 90, true},
		{"90 min", 90, true},
		{"not a duration at all", 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, found := ParseDurationMinutes(tc.in)
			if found != tc.wantFound {
				t.Fatalf("ParseDurationMinutes(%q) found = %v, want %v", tc.in, found, tc.wantFound)
			}
			if found && got != tc.wantMin {
				t.Fatalf("ParseDurationMinutes(%q) = %d, want %d", tc.in, got, tc.wantMin)
			}
		})
	}
}

func TestMeanSpeedKmh(t *testing.T) {
	cases := map[string]float64{
		"walking": 4.5,
		"walk":    4.5,
		"transit": 20,
		"bus":     20,
		"driving": 30,
		"":        30,
		"unknown": 30,
	}
	for mode, want := range cases {
		if got := MeanSpeedKmh(mode); got != want {
			t.Fatalf("MeanSpeedKmh(%q) = %v, want %v", mode, got, want)
		}
	}
}
