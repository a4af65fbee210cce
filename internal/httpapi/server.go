// Package httpapi exposes the pipeline over HTTP: the single query entry
// point plus the ambient admin surface (health, metrics).
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	errx "github.com/wayfarer-ai/agent-core/internal/core/error"
	"github.com/wayfarer-ai/agent-core/internal/domain"
	"github.com/wayfarer-ai/agent-core/internal/metrics"
	logx "github.com/wayfarer-ai/agent-core/pkg/logger"
)

// Handler is the subset of orchestrator.Pipeline the HTTP layer depends on.
type Handler interface {
	Handle(ctx context.Context, req domain.Request) (domain.Response, error)
}

type Server struct {
	pipeline Handler
	metrics  *metrics.Metrics
	mux      *http.ServeMux
}

func New(pipeline Handler, m *metrics.Metrics) *Server {
	s := &Server{pipeline: pipeline, metrics: m, mux: http.NewServeMux()}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /healthz", s.health)
	s.mux.Handle("GET /metrics", s.metrics.Handler())
	s.mux.HandleFunc("POST /v1/query", s.query)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

type queryRequest struct {
	UserID    string           `json:"user_id"`
	SessionID string           `json:"session_id"`
	Query     string           `json:"query"`
	Language  string           `json:"language"`
	Location  *domain.Location `json:"location"`
}

// queryResponse is the wire shape of the §6 response contract; domain.Response
// stays a plain internal struct and this is the one place that maps it onto
// the documented external interface.
type queryResponse struct {
	ResponseText      string             `json:"response_text"`
	Places            []domain.Place     `json:"places,omitempty"`
	Itinerary         *domain.Itinerary  `json:"itinerary,omitempty"`
	Intention         domain.Intent      `json:"intention"`
	Confidence        float64            `json:"confidence"`
	Complexity        domain.Complexity  `json:"complexity"`
	ModelUsed         string             `json:"model_used"`
	ProcessingTimeMs  int                `json:"processing_time_ms"`
	DetectedEmotion   string             `json:"detected_emotion,omitempty"`
	EmotionConfidence float64            `json:"emotion_confidence,omitempty"`
	Metadata          queryResponseMeta  `json:"metadata"`
}

type queryResponseMeta struct {
	ToolCalls        int     `json:"tool_calls"`
	ReasoningSteps   int     `json:"reasoning_steps"`
	EstimatedCostUSD float64 `json:"estimated_cost_usd"`
}

func toQueryResponse(resp domain.Response) queryResponse {
	return queryResponse{
		ResponseText:      resp.ResponseText,
		Places:            resp.Places,
		Itinerary:         resp.Itinerary,
		Intention:         resp.Intention,
		Confidence:        resp.Confidence,
		Complexity:        resp.Complexity,
		ModelUsed:         resp.ModelUsed,
		ProcessingTimeMs:  resp.ProcessingTimeMs,
		DetectedEmotion:   resp.DetectedEmotion,
		EmotionConfidence: resp.EmotionConfidence,
		Metadata: queryResponseMeta{
			ToolCalls:        resp.ToolCalls,
			ReasoningSteps:   resp.ReasoningSteps,
			EstimatedCostUSD: resp.EstimatedCostUSD,
		},
	}
}

func (s *Server) query(w http.ResponseWriter, r *http.Request) {
	var in queryRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, errx.New(errx.InvalidSession, "malformed request body", err))
		return
	}

	resp, err := s.pipeline.Handle(r.Context(), domain.Request{
		UserID:    in.UserID,
		SessionID: in.SessionID,
		Query:     in.Query,
		Language:  in.Language,
		Location:  in.Location,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if encErr := json.NewEncoder(w).Encode(toQueryResponse(resp)); encErr != nil {
		logx.Error().Err(encErr).Msg("failed to encode query response")
	}
}

func writeError(w http.ResponseWriter, err error) {
	kind := errx.KindOf(err)
	status := http.StatusInternalServerError
	switch kind {
	case errx.InvalidSession, errx.UnsupportedLanguage, errx.InvalidLocation:
		status = http.StatusBadRequest
	case errx.Timeout:
		status = http.StatusGatewayTimeout
	case errx.Overloaded:
		status = http.StatusTooManyRequests
	case errx.Cancelled:
		status = 499
	}

	message := "internal error"
	var typed *errx.Error
	if errors.As(err, &typed) {
		message = typed.Message
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": string(kind),
		"message": message,
	})
}
