// internal/assistant/http.go
package assistant

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"listing-assistant/internal/common/config"
	apperrors "listing-assistant/internal/common/errors"
	"listing-assistant/internal/common/logger"
	"listing-assistant/internal/common/middleware"
)

const readinessTimeout = 2 * time.Second

// ReadinessCheck is one dependency probed by GET /ready.
type ReadinessCheck struct {
	Name string
	Ping func(ctx context.Context) error
}

type httpHandler struct {
	engine       *Engine
	logger       logger.Logger
	checks       []ReadinessCheck
	maxBodyBytes int64
}

// NewRouter builds the HTTP transport around engine.
func NewRouter(engine *Engine, cfg config.ServerConfig, checks []ReadinessCheck, log logger.Logger) http.Handler {
	h := &httpHandler{
		engine:       engine,
		logger:       log,
		checks:       checks,
		maxBodyBytes: cfg.MaxBodyBytes,
	}

	r := mux.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.Logging(log),
		middleware.Recovery(log),
		middleware.CORS(cfg.AllowedOrigins),
	)

	r.HandleFunc("/assistant", h.assist).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/health", h.health).Methods(http.MethodGet)
	r.HandleFunc("/ready", h.ready).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	return r
}

func (h *httpHandler) assist(w http.ResponseWriter, r *http.Request) {
	body := r.Body
	if h.maxBodyBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	}
	payload, err := io.ReadAll(body)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	result, err := h.engine.Process(r.Context(), payload)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, clientMessage(err))
		return
	}
	middleware.WriteJSON(w, http.StatusOK, result)
}

// clientMessage is the text placed in an error response body.
func clientMessage(err error) string {
	if stdErr, ok := apperrors.AsStandardError(err); ok {
		return stdErr.Message
	}
	if errors.Is(err, ErrInvalidAction) {
		return "Invalid action"
	}
	return err.Error()
}

func (h *httpHandler) health(w http.ResponseWriter, _ *http.Request) {
	middleware.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *httpHandler) ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	status, code := "ready", http.StatusOK
	results := make(map[string]string, len(h.checks))
	for _, c := range h.checks {
		if err := c.Ping(ctx); err != nil {
			h.logger.Warn("readiness check failed", map[string]interface{}{"check": c.Name, "error": err})
			results[c.Name] = err.Error()
			status, code = "unavailable", http.StatusServiceUnavailable
			continue
		}
		results[c.Name] = "ok"
	}
	middleware.WriteJSON(w, code, map[string]interface{}{"status": status, "checks": results})
}
