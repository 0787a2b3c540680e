// Package telemetry wires OpenTelemetry providers for the CLI. Spans and
// metrics from broadcast calls are written as JSON to a writer.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/roach88/vecwrap"

// Provider owns a tracer provider and a meter provider exporting to the
// same writer.
type Provider struct {
	traces  *sdktrace.TracerProvider
	metrics *sdkmetric.MeterProvider
}

type config struct {
	service string
	pretty  bool
}

// Option configures New.
type Option func(*config)

// WithServiceName sets the service.name resource attribute.
func WithServiceName(name string) Option {
	return func(c *config) { c.service = name }
}

// WithPrettyPrint indents exported JSON.
func WithPrettyPrint() Option {
	return func(c *config) { c.pretty = true }
}

// New creates providers exporting to w. Spans are written when they end;
// metrics are written on Shutdown.
func New(w io.Writer, opts ...Option) (*Provider, error) {
	cfg := config{service: "vecwrap"}
	for _, opt := range opts {
		opt(&cfg)
	}

	traceOpts := []stdouttrace.Option{stdouttrace.WithWriter(w)}
	metricOpts := []stdoutmetric.Option{stdoutmetric.WithWriter(w)}
	if cfg.pretty {
		traceOpts = append(traceOpts, stdouttrace.WithPrettyPrint())
		metricOpts = append(metricOpts, stdoutmetric.WithPrettyPrint())
	}

	spanExp, err := stdouttrace.New(traceOpts...)
	if err != nil {
		return nil, fmt.Errorf("trace exporter: %w", err)
	}
	metricExp, err := stdoutmetric.New(metricOpts...)
	if err != nil {
		return nil, fmt.Errorf("metric exporter: %w", err)
	}

	res := resource.NewSchemaless(attribute.String("service.name", cfg.service))
	return &Provider{
		traces: sdktrace.NewTracerProvider(
			sdktrace.WithSyncer(spanExp),
			sdktrace.WithResource(res),
		),
		metrics: sdkmetric.NewMeterProvider(
			sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExp)),
			sdkmetric.WithResource(res),
		),
	}, nil
}

// Tracer returns the vecwrap tracer.
func (p *Provider) Tracer() trace.Tracer {
	return p.traces.Tracer(instrumentationName)
}

// Meter returns the vecwrap meter.
func (p *Provider) Meter() metric.Meter {
	return p.metrics.Meter(instrumentationName)
}

// Install makes p the global tracer and meter provider.
func (p *Provider) Install() {
	otel.SetTracerProvider(p.traces)
	otel.SetMeterProvider(p.metrics)
}

// Shutdown flushes pending metrics and spans and stops both providers.
func (p *Provider) Shutdown(ctx context.Context) error {
	return errors.Join(
		p.metrics.Shutdown(ctx),
		p.traces.Shutdown(ctx),
	)
}
