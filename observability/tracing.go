// File: tracing.go
// Role: OpenTelemetry tracer provider over the stdout exporter.

package observability

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the instrumentation name used by decaygen spans.
const TracerName = "github.com/katalvlaran/decaygen"

var log = logrus.WithField("prefix", "observability")

// TracingConfig governs how tracing is initialised.
type TracingConfig struct {
	Enabled     bool
	ServiceName string
	Writer      io.Writer // stdout exporter destination; os.Stdout when nil
	SampleRatio float64
	Synchronous bool // export each span as it ends instead of batching
}

// NewTracerProvider builds a tracer provider exporting spans as JSON to
// cfg.Writer. When tracing is disabled a no-op provider is returned. The
// returned shutdown function flushes pending spans.
func NewTracerProvider(ctx context.Context, cfg TracingConfig) (trace.TracerProvider, func(context.Context) error, error) {
	if !cfg.Enabled {
		return trace.NewNoopTracerProvider(), func(context.Context) error { return nil }, nil
	}

	w := cfg.Writer
	if w == nil {
		w = os.Stdout
	}
	exp, err := stdouttrace.New(
		stdouttrace.WithWriter(w),
		stdouttrace.WithoutTimestamps(),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("create stdout exporter: %w", err)
	}

	service := cfg.ServiceName
	if service == "" {
		service = "decaygen"
	}
	res, err := resource.New(ctx, resource.WithAttributes(
		attribute.String("service.name", service),
	))
	if err != nil {
		return nil, nil, fmt.Errorf("create resource: %w", err)
	}

	ratio := cfg.SampleRatio
	if ratio <= 0 || ratio > 1 {
		ratio = 1
	}
	spanOpt := sdktrace.WithBatcher(exp)
	if cfg.Synchronous {
		spanOpt = sdktrace.WithSyncer(exp)
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))),
		spanOpt,
		sdktrace.WithResource(res),
	)

	return tp, tp.Shutdown, nil
}

// InitTracing builds a provider with NewTracerProvider and installs it as
// the global otel provider.
func InitTracing(ctx context.Context, cfg TracingConfig) (func(context.Context) error, error) {
	tp, shutdown, err := NewTracerProvider(ctx, cfg)
	if err != nil {
		return nil, err
	}
	otel.SetTracerProvider(tp)
	if cfg.Enabled {
		log.WithField("service", cfg.ServiceName).Info("Tracing enabled")
	}
	return shutdown, nil
}

// ShutdownWithTimeout invokes shutdown with a bounded timeout, logging
// instead of returning errors.
func ShutdownWithTimeout(ctx context.Context, shutdown func(context.Context) error) {
	if shutdown == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		log.WithError(err).Warn("Tracing shutdown failed")
	}
}
