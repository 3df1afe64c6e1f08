package assistant

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listing-assistant/internal/common/config"
	"listing-assistant/internal/common/genai/genaitest"
	"listing-assistant/internal/common/logger"
)

func newTestRouter(t *testing.T, checks ...ReadinessCheck) http.Handler {
	t.Helper()
	cfg := config.ServerConfig{AllowedOrigins: []string{"*"}, MaxBodyBytes: 1 << 10}
	return NewRouter(newTestEngine(t, genaitest.Demo()), cfg, checks, logger.NewTestLogger(t))
}

func serve(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestAssist_Success(t *testing.T) {
	rec := serve(newTestRouter(t), http.MethodPost, "/assistant",
		`{"action":"score_completeness","data":{"title":"Lamp","price":19.99,"stock":"3"}}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	body := decodeBody(t, rec)
	assert.Equal(t, float64(21), body["score"])
	assert.Equal(t, float64(100), body["maxScore"])
}

func TestAssist_Errors(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"unknown action", `{"action":"summarize","data":{}}`, "Invalid action"},
		{"invalid json", `{"action"`, "Invalid JSON body"},
		{"body too large", `{"action":"score_completeness","data":{"description":"` + strings.Repeat("x", 2048) + `"}}`, "Failed to read request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(router, http.MethodPost, "/assistant", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.wantErr, decodeBody(t, rec)["error"])
		})
	}
}

func TestAssist_SoftErrorIsOK(t *testing.T) {
	rec := serve(newTestRouter(t), http.MethodPost, "/assistant", `{"action":"optimize_title","data":{}}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, map[string]interface{}{"error": "Title is required"}, decodeBody(t, rec))
}

func TestAssist_Preflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/assistant", nil)
	req.Header.Set("Origin", "https://seller.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	newTestRouter(t).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
}

func TestAssist_MethodNotAllowed(t *testing.T) {
	rec := serve(newTestRouter(t), http.MethodGet, "/assistant", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHealth(t *testing.T) {
	rec := serve(newTestRouter(t), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeBody(t, rec)["status"])
}

func TestReady(t *testing.T) {
	ok := ReadinessCheck{Name: "redis", Ping: func(context.Context) error { return nil }}
	down := ReadinessCheck{Name: "postgres", Ping: func(context.Context) error { return stderrors.New("connection refused") }}

	t.Run("all healthy", func(t *testing.T) {
		rec := serve(newTestRouter(t, ok), http.MethodGet, "/ready", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "ready", decodeBody(t, rec)["status"])
	})

	t.Run("one failing", func(t *testing.T) {
		rec := serve(newTestRouter(t, ok, down), http.MethodGet, "/ready", "")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

		body := decodeBody(t, rec)
		assert.Equal(t, "unavailable", body["status"])
		checks := body["checks"].(map[string]interface{})
		assert.Equal(t, "ok", checks["redis"])
		assert.Equal(t, "connection refused", checks["postgres"])
	})
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t)
	serve(router, http.MethodPost, "/assistant", `{"action":"score_completeness","data":{}}`)

	rec := serve(router, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "assistant_actions_total")
}
