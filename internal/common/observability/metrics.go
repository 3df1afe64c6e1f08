package observability

import (
	"context"
	"fmt"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

// Observability owns the OpenTelemetry meter provider. Its instruments are
// exported through the Prometheus registry, so /metrics serves both the
// promauto collectors and these.
type Observability struct {
	meterProvider  *metric.MeterProvider
	actionCounter  otelmetric.Int64Counter
	actionDuration otelmetric.Float64Histogram
}

// New registers the exporter with the default Prometheus registerer.
func New(serviceName string) (*Observability, error) {
	return NewWithRegisterer(serviceName, promclient.DefaultRegisterer)
}

// NewWithRegisterer registers the exporter with reg.
func NewWithRegisterer(serviceName string, reg promclient.Registerer) (*Observability, error) {
	exporter, err := otelprom.New(otelprom.WithRegisterer(reg))
	if err != nil {
		return nil, fmt.Errorf("create prometheus exporter: %w", err)
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	actionCounter, err := meter.Int64Counter(
		"actions.processed",
		otelmetric.WithDescription("Number of assistant actions processed"),
	)
	if err != nil {
		return nil, err
	}

	actionDuration, err := meter.Float64Histogram(
		"actions.duration",
		otelmetric.WithDescription("Assistant action processing duration"),
		otelmetric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &Observability{
		meterProvider:  provider,
		actionCounter:  actionCounter,
		actionDuration: actionDuration,
	}, nil
}

// RecordAction counts one action and its duration. Safe on a nil receiver.
func (o *Observability) RecordAction(ctx context.Context, action, status string, duration time.Duration) {
	if o == nil {
		return
	}
	attrs := otelmetric.WithAttributes(
		attribute.String("action", action),
		attribute.String("status", status),
	)
	o.actionCounter.Add(ctx, 1, attrs)
	o.actionDuration.Record(ctx, float64(duration.Microseconds())/1000, attrs)
}

func (o *Observability) Shutdown(ctx context.Context) error {
	if o == nil || o.meterProvider == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return o.meterProvider.Shutdown(ctx)
}
