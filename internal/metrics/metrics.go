/*
Copyright 2025 The llm-d Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package metrics exposes Prometheus collectors for solver runs.
package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "allocator"

// Solve outcomes used as the "result" label.
const (
	ResultSuccess  = "success"
	ResultRejected = "rejected"
	ResultTooLarge = "too_large"
	ResultError    = "error"
)

// DefaultMaxProblemSeries bounds the distinct "problem" labels of
// OptimalValue.
const DefaultMaxProblemSeries = 64

// OtherProblem is the "problem" label shared by every name seen after the
// bound was reached.
const OtherProblem = "other"

// Option configures Metrics.
type Option func(*Metrics)

// WithMaxProblemSeries sets how many problem names get their own
// OptimalValue series. Values below 1 are ignored.
func WithMaxProblemSeries(n int) Option {
	return func(m *Metrics) {
		if n > 0 {
			m.maxProblems = n
		}
	}
}

// Metrics holds the collectors of one registry.
type Metrics struct {
	registry *prometheus.Registry

	mu          sync.Mutex
	problems    map[string]struct{}
	maxProblems int

	SolveTotal    *prometheus.CounterVec
	SolveDuration prometheus.Histogram
	ExtraUnits    prometheus.Histogram
	OptimalValue  *prometheus.GaugeVec
	CacheHits     prometheus.Counter
}

// New registers the allocator collectors on a fresh registry, together with
// the Go runtime and process collectors.
func New(opts ...Option) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return NewWithRegistry(reg, opts...)
}

// NewWithRegistry registers the allocator collectors on reg.
func NewWithRegistry(reg *prometheus.Registry, opts ...Option) *Metrics {
	factory := promauto.With(reg)
	m := &Metrics{
		registry:    reg,
		problems:    make(map[string]struct{}),
		maxProblems: DefaultMaxProblemSeries,

		SolveTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "solve_total",
			Help:      "Total solve requests by result",
		}, []string{"result"}),

		SolveDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "solve_duration_seconds",
			Help:      "Time spent validating, building tables and reconstructing",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}),

		ExtraUnits: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "extra_units",
			Help:      "Extra units distributed per solved problem",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),

		OptimalValue: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "optimal_value",
			Help:      "Optimal total utility of the last solve, by problem name",
		}, []string{"problem"}),

		CacheHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Solves answered from the result cache",
		}),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ObserveSolve records a finished solve.
func (m *Metrics) ObserveSolve(problem string, result string, elapsed time.Duration, extraUnits int, optimal float64) {
	if m == nil {
		return
	}
	m.SolveTotal.WithLabelValues(result).Inc()
	m.SolveDuration.Observe(elapsed.Seconds())
	if result != ResultSuccess {
		return
	}
	m.ExtraUnits.Observe(float64(extraUnits))
	if problem != "" {
		m.OptimalValue.WithLabelValues(m.problemLabel(problem)).Set(optimal)
	}
}

// problemLabel returns problem while fewer than maxProblems names have been
// seen, and OtherProblem afterwards.
func (m *Metrics) problemLabel(problem string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.problems[problem]; ok {
		return problem
	}
	if len(m.problems) >= m.maxProblems {
		return OtherProblem
	}
	m.problems[problem] = struct{}{}
	return problem
}

// ObserveCacheHit records a solve answered from the result cache.
func (m *Metrics) ObserveCacheHit() {
	if m == nil {
		return
	}
	m.CacheHits.Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
