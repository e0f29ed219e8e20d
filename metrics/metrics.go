// Copyright (C) 2020-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package metrics registers the small set of prometheus collectors
// the engine emits: tick duration, entities processed, events
// dropped, and arithmetic saturation counts.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Collectors is the engine's registered metric set (spec.md §6
// "Metrics"), grounded on the teacher's metrics.Metrics Register
// wrapper (metrics/metrics.go).
type Collectors struct {
	TickDuration      prometheus.Histogram
	EntitiesProcessed prometheus.Counter
	EventsDropped     prometheus.Counter
	Saturations       prometheus.Counter
}

// NewCollectors builds and registers Collectors under namespace
// against reg. A nil reg is valid and simply skips registration,
// matching callers that don't want prometheus wired in at all.
func NewCollectors(namespace string, reg prometheus.Registerer) (*Collectors, error) {
	c := &Collectors{
		TickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tick_duration_seconds",
			Help:      "Wall-clock duration of a single tick pass.",
			Buckets:   prometheus.DefBuckets,
		}),
		EntitiesProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entities_processed_total",
			Help:      "Number of nodes processed across all ticks.",
		}),
		EventsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_dropped_total",
			Help:      "Number of events dropped due to ring buffer overwrite.",
		}),
		Saturations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "arithmetic_saturations_total",
			Help:      "Number of fixed-point operations that saturated instead of overflowing.",
		}),
	}
	if reg == nil {
		return c, nil
	}
	for _, collector := range []prometheus.Collector{c.TickDuration, c.EntitiesProcessed, c.EventsDropped, c.Saturations} {
		if err := reg.Register(collector); err != nil {
			return nil, err
		}
	}
	return c, nil
}
