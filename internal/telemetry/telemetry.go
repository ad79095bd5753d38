// Package telemetry wires OpenTelemetry tracing. Tracing is opt-in: without
// OTEL_EXPORTER_OTLP_ENDPOINT every span goes to the global no-op provider.
package telemetry

import (
	"context"
	"fmt"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	oteltrace "go.opentelemetry.io/otel/trace"
)

const (
	endpointEnv        = "OTEL_EXPORTER_OTLP_ENDPOINT"
	serviceNameEnv     = "OTEL_SERVICE_NAME"
	defaultServiceName = "copycat"
	instrumentation    = "github.com/five82/copycat"
)

// Provider owns the SDK tracer provider when tracing is enabled.
type Provider struct {
	sdk *sdktrace.TracerProvider
}

// Setup installs a global tracer provider exporting over OTLP/HTTP when
// OTEL_EXPORTER_OTLP_ENDPOINT is set. Otherwise it returns a disabled
// Provider and leaves the global no-op provider in place.
func Setup(ctx context.Context) (*Provider, error) {
	if os.Getenv(endpointEnv) == "" {
		return &Provider{}, nil
	}

	// The exporter reads the endpoint and headers from the standard
	// OTEL_EXPORTER_OTLP_* variables.
	exporter, err := otlptracehttp.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("create otlp exporter: %w", err)
	}

	serviceName := os.Getenv(serviceNameEnv)
	if serviceName == "" {
		serviceName = defaultServiceName
	}

	sdk := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", serviceName),
		)),
	)
	otel.SetTracerProvider(sdk)
	return &Provider{sdk: sdk}, nil
}

// Enabled reports whether spans are exported.
func (p *Provider) Enabled() bool {
	return p != nil && p.sdk != nil
}

// Shutdown flushes pending spans. It is a no-op for a disabled Provider.
func (p *Provider) Shutdown(ctx context.Context) error {
	if !p.Enabled() {
		return nil
	}
	return p.sdk.Shutdown(ctx)
}

// Tracer returns copycat's tracer from the global provider.
func Tracer() oteltrace.Tracer {
	return otel.Tracer(instrumentation)
}

// Start begins a span named name on copycat's tracer.
func Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, oteltrace.Span) {
	return Tracer().Start(ctx, name, oteltrace.WithAttributes(attrs...))
}
