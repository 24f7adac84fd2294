package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/trace"
)

// Observability owns the otel meter provider for population runs and hands
// out the tracer used around them.
type Observability struct {
	serviceName   string
	meterProvider *metric.MeterProvider
	runCounter    otelmetric.Int64Counter
	runDuration   otelmetric.Float64Histogram
	recordCounter otelmetric.Int64Counter
}

// New registers a prometheus-backed meter provider. When the exporter
// cannot be created the returned value still works and records nothing.
func New(serviceName string) *Observability {
	o := &Observability{serviceName: serviceName}

	exporter, err := prometheus.New()
	if err != nil {
		return o
	}

	provider := metric.NewMeterProvider(metric.WithReader(exporter))
	otel.SetMeterProvider(provider)
	meter := provider.Meter(serviceName)

	o.meterProvider = provider
	o.runCounter, _ = meter.Int64Counter(
		"population.runs",
		otelmetric.WithDescription("Number of population runs"),
	)
	o.runDuration, _ = meter.Float64Histogram(
		"population.duration",
		otelmetric.WithDescription("Population run duration"),
		otelmetric.WithUnit("ms"),
	)
	o.recordCounter, _ = meter.Int64Counter(
		"population.records",
		otelmetric.WithDescription("Records produced by population runs"),
	)
	return o
}

// Tracer returns the global tracer scoped to the service.
func (o *Observability) Tracer() trace.Tracer {
	if o == nil {
		return otel.Tracer("marketplace-datagen")
	}
	return otel.Tracer(o.serviceName)
}

// RecordPopulation records one finished population run.
func (o *Observability) RecordPopulation(ctx context.Context, mode string, records int, duration time.Duration, status string) {
	if o == nil {
		return
	}
	attrs := otelmetric.WithAttributes(
		attribute.String("mode", mode),
		attribute.String("status", status),
	)
	if o.runCounter != nil {
		o.runCounter.Add(ctx, 1, attrs)
	}
	if o.runDuration != nil {
		o.runDuration.Record(ctx, float64(duration.Milliseconds()), attrs)
	}
	if o.recordCounter != nil {
		o.recordCounter.Add(ctx, int64(records), attrs)
	}
}

func (o *Observability) Shutdown() {
	if o == nil || o.meterProvider == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = o.meterProvider.Shutdown(ctx)
}
