// Package tools implements the tool registry (§4.6): the name -> callable
// capability map the reason-act executor binds to the chat model and invokes
// against. Every tool here wraps eino's tool.InvokableTool, the same shape
// this lineage's business tools used.
package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"
	logx "github.com/wayfarer-ai/agent-core/pkg/logger"
)

const (
	NameSearchPlaces    = "search_places"
	NameCreateItinerary = "create_itinerary"
)

// Registry holds the bound set of tools available to a reason-act run.
type Registry struct {
	tools map[string]tool.InvokableTool
	order []string
}

func NewRegistry(tools ...tool.InvokableTool) (*Registry, error) {
	r := &Registry{tools: map[string]tool.InvokableTool{}}
	ctx := context.Background()
	for _, t := range tools {
		info, err := t.Info(ctx)
		if err != nil {
			return nil, fmt.Errorf("get tool info: %w", err)
		}
		r.tools[info.Name] = t
		r.order = append(r.order, info.Name)
	}
	return r, nil
}

// Infos returns the ToolInfo set to bind onto the chat model.
func (r *Registry) Infos(ctx context.Context) ([]*schema.ToolInfo, error) {
	infos := make([]*schema.ToolInfo, 0, len(r.order))
	for _, name := range r.order {
		info, err := r.tools[name].Info(ctx)
		if err != nil {
			return nil, fmt.Errorf("get tool info for %q: %w", name, err)
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// Invoke runs the named tool with the given JSON-encoded arguments. Unknown
// tool names and malformed arguments degrade to a structured error string
// rather than failing the reason-act loop — the model can read the error
// and retry or give up, mirroring how this lineage's tool node never lets a
// hallucinated call abort the run.
func (r *Registry) Invoke(ctx context.Context, name, argumentsJSON string) (string, error) {
	t, ok := r.tools[name]
	if !ok {
		logx.Warn().Str("tool_name", name).Msg("unknown tool call, returning fallback observation")
		return fmt.Sprintf(`{"error":"unknown_tool","name":%q}`, name), nil
	}

	if !json.Valid([]byte(argumentsJSON)) {
		return fmt.Sprintf(`{"error":"invalid_arguments","name":%q}`, name), nil
	}

	out, err := t.InvokableRun(ctx, argumentsJSON)
	if err != nil {
		logx.Warn().Err(err).Str("tool_name", name).Msg("tool invocation failed")
		return fmt.Sprintf(`{"error":"tool_failed","name":%q,"detail":%q}`, name, err.Error()), nil
	}
	return out, nil
}

func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}
