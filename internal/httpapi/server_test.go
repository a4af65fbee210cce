package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errx "github.com/wayfarer-ai/agent-core/internal/core/error"
	"github.com/wayfarer-ai/agent-core/internal/domain"
	"github.com/wayfarer-ai/agent-core/internal/metrics"
)

type fakeHandler struct {
	resp domain.Response
	err  error
}

func (f fakeHandler) Handle(ctx context.Context, req domain.Request) (domain.Response, error) {
	return f.resp, f.err
}

// Prometheus registration is process-global: promauto panics on a second
// registration of the same metric name, so every test in this file shares
// one Metrics instance instead of building a fresh one per server.
var testMetrics = metrics.NewMetrics("test_agent_core_http")

func newTestServer(h Handler) *Server {
	return New(h, testMetrics)
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(fakeHandler{})
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()

	s.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestQueryEndpointHappyPath(t *testing.T) {
	s := newTestServer(fakeHandler{resp: domain.Response{ResponseText: "here you go"}})
	body := bytes.NewBufferString(`{"user_id":"u1","session_id":"s1","query":"find tapas"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/query", body)
	w := httptest.NewRecorder()

	s.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "here you go")
}

func TestQueryEndpointMapsResponseToWireContract(t *testing.T) {
	s := newTestServer(fakeHandler{resp: domain.Response{
		ResponseText:      "here are some bars",
		Intention:         domain.IntentSearch,
		Confidence:        0.9,
		Complexity:        domain.ComplexityLow,
		ModelUsed:         "gemini-2.5-flash-lite",
		ProcessingTimeMs:  120,
		DetectedEmotion:   "neutral",
		EmotionConfidence: 0.4,
		ToolCalls:         1,
		ReasoningSteps:    2,
		EstimatedCostUSD:  0.0012,
	}})
	body := bytes.NewBufferString(`{"user_id":"u1","session_id":"s1","query":"find tapas"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/query", body)
	w := httptest.NewRecorder()

	s.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))

	assert.Equal(t, "here are some bars", decoded["response_text"])
	assert.Equal(t, "SEARCH", decoded["intention"])
	assert.Equal(t, "gemini-2.5-flash-lite", decoded["model_used"])
	assert.Equal(t, float64(120), decoded["processing_time_ms"])
	assert.Equal(t, "neutral", decoded["detected_emotion"])

	meta, ok := decoded["metadata"].(map[string]any)
	require.True(t, ok, "expected a nested metadata object")
	assert.Equal(t, float64(1), meta["tool_calls"])
	assert.Equal(t, float64(2), meta["reasoning_steps"])
	assert.Equal(t, 0.0012, meta["estimated_cost_usd"])

	assert.NotContains(t, decoded, "ToolCalls")
	assert.NotContains(t, decoded, "ResponseText")
}

func TestQueryEndpointMapsErrorKindsToStatusCodes(t *testing.T) {
	cases := []struct {
		kind errx.Kind
		want int
	}{
		{errx.InvalidSession, http.StatusBadRequest},
		{errx.UnsupportedLanguage, http.StatusBadRequest},
		{errx.InvalidLocation, http.StatusBadRequest},
		{errx.Timeout, http.StatusGatewayTimeout},
		{errx.Overloaded, http.StatusTooManyRequests},
		{errx.Cancelled, 499},
		{errx.ModelError, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(string(tc.kind), func(t *testing.T) {
			s := newTestServer(fakeHandler{err: errx.New(tc.kind, "boom", nil)})
			body := bytes.NewBufferString(`{"user_id":"u1","session_id":"s1","query":"find tapas"}`)
			req := httptest.NewRequest(http.MethodPost, "/v1/query", body)
			w := httptest.NewRecorder()

			s.ServeHTTP(w, req)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestQueryEndpointRejectsMalformedBody(t *testing.T) {
	s := newTestServer(fakeHandler{})
	req := httptest.NewRequest(http.MethodPost, "/v1/query", bytes.NewBufferString(`{not json`))
	w := httptest.NewRecorder()

	s.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMetricsEndpointServesPrometheusFormat(t *testing.T) {
	s := newTestServer(fakeHandler{})
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()

	s.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
