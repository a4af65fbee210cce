package classify

import (
	"context"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"
)

const systemTemplate = `You are an intent classifier for a place-discovery and itinerary-planning assistant.
Classify the user's query into exactly one intent: SEARCH, RECOMMEND, PLAN, or CHITCHAT.
- SEARCH: a single, concrete lookup ("find a pizza place near me").
- RECOMMEND: asks for filtered suggestions ("best romantic restaurants in Zaragoza").
- PLAN: multi-stop itinerary building, temporal constraints, or group coordination.
- CHITCHAT: greetings, thanks, small talk, anything not about places.

Conversation summary so far: {summary}
Respond with ONLY a JSON object of the shape:
{{"intent": "SEARCH|RECOMMEND|PLAN|CHITCHAT", "confidence": 0.0-1.0, "complexity": "low|medium|high", "reasoning": "short reason"}}`

func renderPrompt(ctx context.Context, summary, query string) ([]*schema.Message, error) {
	tpl := prompt.FromMessages(schema.FString,
		schema.SystemMessage(systemTemplate),
		schema.UserMessage("{query}"),
	)
	return tpl.Format(ctx, map[string]any{
		"summary": summary,
		"query":   query,
	})
}
