package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"listing-assistant/internal/common/logger"
)

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFrom(r.Context())
	}))

	t.Run("propagates", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(HeaderRequestID, "abc-123")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, "abc-123", seen)
		assert.Equal(t, "abc-123", rec.Header().Get(HeaderRequestID))
	})

	t.Run("generates", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Len(t, seen, 36)
		assert.Equal(t, seen, rec.Header().Get(HeaderRequestID))
	})
}

func TestCORS(t *testing.T) {
	t.Run("wildcard preflight", func(t *testing.T) {
		rec := httptest.NewRecorder()
		CORS([]string{"*"})(http.HandlerFunc(okHandler)).ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/assistant", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, AllowedMethods, rec.Header().Get("Access-Control-Allow-Methods"))
		assert.Equal(t, AllowedHeaders, rec.Header().Get("Access-Control-Allow-Headers"))
	})

	t.Run("listed origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/assistant", nil)
		req.Header.Set("Origin", "https://shop.example")
		rec := httptest.NewRecorder()
		CORS([]string{"https://shop.example"})(http.HandlerFunc(okHandler)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "https://shop.example", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("unlisted origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/assistant", nil)
		req.Header.Set("Origin", "https://evil.example")
		rec := httptest.NewRecorder()
		CORS([]string{"https://shop.example"})(http.HandlerFunc(okHandler)).ServeHTTP(rec, req)

		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestLogging(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := mux.NewRouter()
	r.Use(RequestID, Logging(logger.NewZapAdapter(zap.New(core))))
	r.HandleFunc("/health", okHandler)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	entries := logs.FilterMessage("http request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/health", fields["path"])
	assert.EqualValues(t, http.StatusNoContent, fields["status"])
	assert.NotEmpty(t, fields["requestId"])
}

func TestRecovery(t *testing.T) {
	h := Recovery(logger.NewTestLogger(t))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/assistant", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"boom"}`, rec.Body.String())
}
