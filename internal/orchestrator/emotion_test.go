package orchestrator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectEmotion(t *testing.T) {
	cases := map[string]string{
		"I need this ASAP please":         "urgent",
		"necesito esto ahora mismo":       "urgent",
		"this is so frustrating":          "frustrated",
		"estoy harto de esperar":          "frustrated",
		"this place looks amazing!":       "excited",
		"gracias por la ayuda":            "grateful",
		"thanks a lot":                    "grateful",
		"find me a restaurant in Madrid":  "neutral",
	}

	for query, want := range cases {
		signal := detectEmotion(query)
		assert.Equal(t, want, signal.Label, "query: %q", query)
		assert.Greater(t, signal.Confidence, 0.0)
	}
}
