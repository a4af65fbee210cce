package memory

import "math"

// estimateTokens approximates tokens as ceil(total_chars / 4) (§4.2 step 5).
func estimateTokens(texts ...string) int {
	total := 0
	for _, t := range texts {
		total += len(t)
	}
	return int(math.Ceil(float64(total) / 4.0))
}
