// File: options.go
// Role: functional options for New.

package generator

import (
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/decaygen/observability"
	"github.com/katalvlaran/decaygen/phasespace"
)

var log = logrus.WithField("prefix", "generator")

// Option customizes a Generator.
type Option func(*config)

// config holds the resolved options.
//
// Defaults:
//   - logger  = package logger (prefix=generator)
//   - seed    = 0 (mapped to defaultRNGSeed)
//   - workers = 1
//   - sampler = phasespace.NewFactory()
//   - tracer  = global otel provider
type config struct {
	logger  logrus.FieldLogger
	seed    int64
	workers int
	sampler phasespace.Factory
	metrics *observability.Collector
	tracer  trace.Tracer
}

// WithLogger routes warnings to l. Panics on nil.
func WithLogger(l logrus.FieldLogger) Option {
	if l == nil {
		panic("generator: WithLogger(nil)")
	}
	return func(c *config) { c.logger = l }
}

// WithSeed sets the base seed of the per-path random streams.
func WithSeed(seed int64) Option {
	return func(c *config) { c.seed = seed }
}

// WithWorkers sets how many paths are generated concurrently. Panics if n < 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic("generator: WithWorkers requires n >= 1")
	}
	return func(c *config) { c.workers = n }
}

// WithSampler replaces the phase-space sampler factory. Panics on nil.
func WithSampler(f phasespace.Factory) Option {
	if f == nil {
		panic("generator: WithSampler(nil)")
	}
	return func(c *config) { c.sampler = f }
}

// WithMetrics records event counts and weights into m.
func WithMetrics(m *observability.Collector) Option {
	return func(c *config) { c.metrics = m }
}

// WithTracerProvider takes spans from tp instead of the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *config) {
		if tp != nil {
			c.tracer = tp.Tracer(observability.TracerName)
		}
	}
}

func newConfig(opts ...Option) config {
	c := config{
		logger:  log,
		workers: 1,
		sampler: phasespace.NewFactory(),
		tracer:  otel.Tracer(observability.TracerName),
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
