// Package llm wires the Gemini chat-model provider adapter used by the
// classifier and the reason-act executor. It is deliberately thin: the
// router decides which model to use (§4.5); this package only knows how to
// turn that decision into a callable eino chat model.
package llm

import (
	"context"
	"fmt"
	"sync"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	einomodel "github.com/cloudwego/eino/components/model"
	"google.golang.org/genai"
)

// Factory builds and caches gemini chat models for a given (model, max
// tokens, temperature) tuple, all sharing one underlying genai client.
type Factory struct {
	client *genai.Client

	mu     sync.Mutex
	cached map[string]einomodel.ToolCallingChatModel
}

// NewFactory creates the shared Gemini client used by every model the
// router can select.
func NewFactory(ctx context.Context, apiKey, baseURL string) (*Factory, error) {
	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cfg.HTTPOptions.BaseURL = baseURL
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Factory{client: client, cached: map[string]einomodel.ToolCallingChatModel{}}, nil
}

// Get returns a chat model configured for the given model name, creating
// and caching it on first use.
func (f *Factory) Get(ctx context.Context, modelName string, maxTokens int, temperature float32) (einomodel.ToolCallingChatModel, error) {
	key := fmt.Sprintf("%s|%d|%.2f", modelName, maxTokens, temperature)

	f.mu.Lock()
	if cm, ok := f.cached[key]; ok {
		f.mu.Unlock()
		return cm, nil
	}
	f.mu.Unlock()

	temp := temperature
	tokens := maxTokens
	cm, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      f.client,
		Model:       modelName,
		Temperature: &temp,
		MaxTokens:   &tokens,
	})
	if err != nil {
		return nil, fmt.Errorf("create chat model %q: %w", modelName, err)
	}

	f.mu.Lock()
	f.cached[key] = cm
	f.mu.Unlock()
	return cm, nil
}
