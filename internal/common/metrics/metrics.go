// internal/common/metrics/metrics.go
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Action sources.
const (
	SourceGenerative = "generative"
	SourceHeuristic  = "heuristic"
)

// GenAI request outcomes.
const (
	OutcomeSuccess   = "success"
	OutcomeDemo      = "demo"
	OutcomeError     = "error"
	OutcomeMalformed = "malformed"
)

var (
	ActionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_actions_total",
			Help: "Total number of assistant actions served, by result source",
		},
		[]string{"action", "source"},
	)

	ActionErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_action_errors_total",
			Help: "Total number of assistant actions that returned an error",
		},
		[]string{"action", "error_code"},
	)

	ActionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "assistant_action_duration_seconds",
			Help:    "Duration of assistant action processing in seconds",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 2.5, 5, 10},
		},
		[]string{"action"},
	)

	ActionsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "assistant_actions_active",
			Help: "Number of assistant actions currently being processed",
		},
		[]string{"action"},
	)

	GenAIRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_genai_requests_total",
			Help: "Generative backend calls by outcome",
		},
		[]string{"outcome"},
	)
)

// ObserveAction records one served action.
func ObserveAction(action, source string, elapsed time.Duration) {
	ActionsTotal.WithLabelValues(action, source).Inc()
	ActionDuration.WithLabelValues(action).Observe(elapsed.Seconds())
}

// ObserveActionError records one failed action.
func ObserveActionError(action, errorCode string, elapsed time.Duration) {
	ActionErrors.WithLabelValues(action, errorCode).Inc()
	ActionDuration.WithLabelValues(action).Observe(elapsed.Seconds())
}

// TrackActive increments the in-flight gauge and returns the matching decrement.
func TrackActive(action string) func() {
	g := ActionsActive.WithLabelValues(action)
	g.Inc()
	return g.Dec
}
