// Package observability wires Prometheus metrics and OpenTelemetry tracing
// for event generation runs.
package observability

import (
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector bundles the Prometheus metrics of a generation run. A nil
// *Collector is valid and records nothing.
type Collector struct {
	gatherer prometheus.Gatherer

	EventsGenerated *prometheus.CounterVec
	EventsSkipped   *prometheus.CounterVec
	EventWeights    prometheus.Histogram
	PathDurations   *prometheus.HistogramVec
	LeafPaths       prometheus.Gauge
}

// NewCollector registers generation metrics against the provided registerer,
// defaulting to the global Prometheus registry when nil. Registering twice
// against the same registry returns the existing collectors.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	generated, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "decaygen_events_generated_total",
		Help: "Number of events written, labeled by leaf decay path index.",
	}, []string{"path"}), "decaygen_events_generated_total")
	if err != nil {
		return nil, err
	}

	skipped, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "decaygen_events_skipped_total",
		Help: "Number of events dropped after a phase-space sampling failure, labeled by path index.",
	}, []string{"path"}), "decaygen_events_skipped_total")
	if err != nil {
		return nil, err
	}

	weights, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "decaygen_event_weight",
		Help:    "Distribution of averaged event weights.",
		Buckets: prometheus.LinearBuckets(0.1, 0.1, 10),
	}), "decaygen_event_weight")
	if err != nil {
		return nil, err
	}

	durations, err := registerHistogramVec(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "decaygen_path_duration_seconds",
		Help:    "Wall time spent generating the events of one leaf path.",
		Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
	}, []string{"path"}), "decaygen_path_duration_seconds")
	if err != nil {
		return nil, err
	}

	paths, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "decaygen_leaf_paths",
		Help: "Number of leaf decay paths of the current tree.",
	}), "decaygen_leaf_paths")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:        gatherer,
		EventsGenerated: generated,
		EventsSkipped:   skipped,
		EventWeights:    weights,
		PathDurations:   durations,
		LeafPaths:       paths,
	}, nil
}

// ObserveEvent records one written event of path.
func (c *Collector) ObserveEvent(path int, weight float64) {
	if c == nil {
		return
	}
	c.EventsGenerated.WithLabelValues(strconv.Itoa(path)).Inc()
	c.EventWeights.Observe(weight)
}

// ObserveSkipped records one dropped event of path.
func (c *Collector) ObserveSkipped(path int) {
	if c == nil {
		return
	}
	c.EventsSkipped.WithLabelValues(strconv.Itoa(path)).Inc()
}

// ObservePath records the time spent on path.
func (c *Collector) ObservePath(path int, d time.Duration) {
	if c == nil {
		return
	}
	c.PathDurations.WithLabelValues(strconv.Itoa(path)).Observe(d.Seconds())
}

// SetLeafPaths sets the leaf path gauge.
func (c *Collector) SetLeafPaths(n int) {
	if c == nil {
		return
	}
	c.LeafPaths.Set(float64(n))
}

// WriteTextfile dumps every metric of the collector's gatherer in the
// Prometheus text format, for node-exporter style textfile collection.
func (c *Collector) WriteTextfile(filename string) error {
	if c == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(filename, c.gatherer); err != nil {
		return fmt.Errorf("write metrics textfile %s: %w", filename, err)
	}
	return nil
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogram(reg prometheus.Registerer, h prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(h); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return h, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
