package domain

// ModelDecision is the router's typed output: a concrete model descriptor
// plus the USD-per-1M-token input/output cost used to estimate spend.
type ModelDecision struct {
	Provider       string
	Model          string
	MaxTokens      int
	Temperature    float32
	InputCostPerM  float64
	OutputCostPerM float64
}
