package orchestrator

import (
	"strings"

	"github.com/wayfarer-ai/agent-core/internal/domain"
)

// detectEmotion is the coarse, metadata-only emotion pass (§9 Open Question
// 2): a small keyword rubric over the raw query, run after the reason-act
// loop. Its output is attached to the response only (QueryMetrics does not
// carry it) and is read by nothing upstream of persistence — dropping it changes no routing or
// context-building behavior, which is the resolution the Open Question
// calls for.
func detectEmotion(query string) domain.EmotionSignal {
	lower := strings.ToLower(query)

	switch {
	case containsAny(lower, "urgent", "asap", "ahora mismo", "rápido", "rapido"):
		return domain.EmotionSignal{Label: "urgent", Confidence: 0.6}
	case containsAny(lower, "frustrat", "annoying", "molest", "harto", "cansado de"):
		return domain.EmotionSignal{Label: "frustrated", Confidence: 0.6}
	case containsAny(lower, "excited", "genial", "estupendo", "great", "amazing", "emocionad"):
		return domain.EmotionSignal{Label: "excited", Confidence: 0.5}
	case containsAny(lower, "gracias", "thank you", "thanks"):
		return domain.EmotionSignal{Label: "grateful", Confidence: 0.5}
	default:
		return domain.EmotionSignal{Label: "neutral", Confidence: 0.4}
	}
}

func containsAny(s string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
