package domain

// EmotionSignal is attached to a response as metadata only; nothing upstream
// of persistence reads it (§9 Open Question: emotion detection).
type EmotionSignal struct {
	Label      string
	Confidence float64
}

// Request is the pipeline entry point (§6).
type Request struct {
	UserID    string
	SessionID string
	Query     string
	Language  string
	Location  *Location
}

// Response is the pipeline's terminal output (§6).
type Response struct {
	ResponseText      string
	Places            []Place
	Itinerary         *Itinerary
	Intention         Intent
	Confidence        float64
	Complexity        Complexity
	ModelUsed         string
	ProcessingTimeMs  int
	DetectedEmotion   string
	EmotionConfidence float64
	ToolCalls         int
	ReasoningSteps    int
	EstimatedCostUSD  float64
}
