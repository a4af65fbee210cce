// Package reasonact implements the reason-act executor (§4.7): a bounded
// [reason -> maybe act -> observe]* loop over a routed chat model and a tool
// registry, with explicit deadline, cancellation, and iteration-count limits.
//
// This is hand-rolled control flow rather than an eino compose.Graph: the
// graph DSL's branch/edge model has no natural place to hang the wall-clock
// deadline and cancellation checks this loop makes on every iteration. eino's schema and chat-model interfaces are still used
// throughout; only the graph orchestration layer itself is not.
package reasonact

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	errx "github.com/wayfarer-ai/agent-core/internal/core/error"
	"github.com/wayfarer-ai/agent-core/internal/domain"
	logx "github.com/wayfarer-ai/agent-core/pkg/logger"
)

// ToolInvoker is the subset of the tool registry the executor needs.
type ToolInvoker interface {
	Invoke(ctx context.Context, name, argumentsJSON string) (string, error)
}

// Semaphores bounds concurrent model and tool calls process-wide (§5).
type Semaphores struct {
	Model chan struct{}
	Tool  chan struct{}
}

func (s Semaphores) acquireModel(ctx context.Context) error {
	if s.Model == nil {
		return nil
	}
	select {
	case s.Model <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s Semaphores) releaseModel() {
	if s.Model != nil {
		<-s.Model
	}
}

func (s Semaphores) acquireTool(ctx context.Context) error {
	if s.Tool == nil {
		return nil
	}
	select {
	case s.Tool <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s Semaphores) releaseTool() {
	if s.Tool != nil {
		<-s.Tool
	}
}

type Config struct {
	MaxIterations      int
	ModelCallTimeout   time.Duration
	ToolCallTimeout    time.Duration
}

type Executor struct {
	cfg Config
	sem Semaphores
}

func New(cfg Config, sem Semaphores) *Executor {
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = 6
	}
	return &Executor{cfg: cfg, sem: sem}
}

// Result is the reason-act loop's final outcome and execution trace.
type Result struct {
	FinalText        string
	Truncated        bool
	ToolCalls        []domain.ToolCall
	ReasoningSteps   int
	InputTokens      int
	OutputTokens     int
}

// Run drives the bounded loop described in §4.7. deadline is the overall
// per-request wall-clock cutoff; ctx carries client cancellation.
func (e *Executor) Run(ctx context.Context, model einomodel.ToolCallingChatModel, tools ToolInvoker, messages []*schema.Message, deadline time.Time) (Result, error) {
	result := Result{}
	conversation := append([]*schema.Message(nil), messages...)
	lastText := ""

	for iter := 1; iter <= e.cfg.MaxIterations; iter++ {
		if ctx.Err() != nil {
			return result, errx.Wrap(ctx.Err(), errx.Cancelled, "reason-act loop cancelled")
		}
		if !deadline.IsZero() && time.Now().After(deadline) {
			return result, errx.New(errx.Timeout, "reason-act loop exceeded request deadline", nil)
		}

		resp, err := e.invokeModel(ctx, model, conversation, deadline)
		if err != nil {
			return result, errx.Wrap(err, errx.ModelError, "reason-act model call failed")
		}

		if resp.ResponseMeta != nil && resp.ResponseMeta.Usage != nil {
			result.InputTokens += resp.ResponseMeta.Usage.PromptTokens
			result.OutputTokens += resp.ResponseMeta.Usage.CompletionTokens
		}

		conversation = append(conversation, resp)
		result.ReasoningSteps = iter

		if resp.Content != "" {
			lastText = resp.Content
		}

		if len(resp.ToolCalls) == 0 {
			result.FinalText = lastText
			return result, nil
		}

		for _, call := range resp.ToolCalls {
			if ctx.Err() != nil {
				return result, errx.Wrap(ctx.Err(), errx.Cancelled, "reason-act loop cancelled mid tool call")
			}

			observation, trace := e.invokeTool(ctx, tools, call)
			result.ToolCalls = append(result.ToolCalls, trace)
			conversation = append(conversation, schema.ToolMessage(observation, call.ID))
		}
	}

	result.FinalText = lastText
	result.Truncated = true
	return result, nil
}

func (e *Executor) invokeModel(ctx context.Context, model einomodel.ToolCallingChatModel, conversation []*schema.Message, deadline time.Time) (*schema.Message, error) {
	if err := e.sem.acquireModel(ctx); err != nil {
		return nil, err
	}
	defer e.sem.releaseModel()

	callCtx := ctx
	var cancel context.CancelFunc
	if e.cfg.ModelCallTimeout > 0 {
		callCtx, cancel = context.WithTimeout(ctx, e.cfg.ModelCallTimeout)
		defer cancel()
	}
	if !deadline.IsZero() {
		var dcancel context.CancelFunc
		callCtx, dcancel = context.WithDeadline(callCtx, deadline)
		defer dcancel()
	}

	return model.Generate(callCtx, conversation)
}

func (e *Executor) invokeTool(ctx context.Context, tools ToolInvoker, call schema.ToolCall) (string, domain.ToolCall) {
	start := time.Now()
	trace := domain.ToolCall{ToolName: call.Function.Name}

	if err := e.sem.acquireTool(ctx); err != nil {
		trace.Err = err
		trace.Duration = time.Since(start)
		return fmt.Sprintf(`{"error":"overloaded","name":%q}`, call.Function.Name), trace
	}
	defer e.sem.releaseTool()

	callCtx := ctx
	var cancel context.CancelFunc
	if e.cfg.ToolCallTimeout > 0 {
		callCtx, cancel = context.WithTimeout(ctx, e.cfg.ToolCallTimeout)
		defer cancel()
	}

	var args map[string]any
	_ = json.Unmarshal([]byte(call.Function.Arguments), &args)
	trace.Arguments = args

	observation, err := tools.Invoke(callCtx, call.Function.Name, call.Function.Arguments)
	trace.Duration = time.Since(start)
	if err != nil {
		logx.Warn().Err(err).Str("tool_name", call.Function.Name).Msg("tool call returned an error observation")
		trace.Err = err
	}
	trace.Observation = observation
	return observation, trace
}
