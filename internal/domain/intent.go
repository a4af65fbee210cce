package domain

// Intent is the coarse category an IntentDecision assigns to a query.
type Intent string

const (
	IntentSearch    Intent = "SEARCH"
	IntentRecommend Intent = "RECOMMEND"
	IntentPlan      Intent = "PLAN"
	IntentChitchat  Intent = "CHITCHAT"
)

// Complexity is the reasoning-effort rubric attached to an IntentDecision.
type Complexity string

const (
	ComplexityLow    Complexity = "low"
	ComplexityMedium Complexity = "medium"
	ComplexityHigh   Complexity = "high"
)

// IntentDecision is the classifier's typed output.
type IntentDecision struct {
	Intent     Intent
	Confidence float64
	Complexity Complexity
	Reasoning  string
}
