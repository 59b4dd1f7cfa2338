// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package aadd

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder receives statistics about the computations of a Manager. All the
// methods must be safe for concurrent use.
type Recorder interface {
	// LPSolved is called after each call to the LP solver, with outcome one
	// of "feasible", "infeasible", "unbounded" or "failed".
	LPSolved(outcome string, elapsed time.Duration)
	// ConditionRegistered is called when a condition is added to the table,
	// with kind one of "top", "bottom" or "variable".
	ConditionRegistered(kind string)
	// LeavesJoined is called when two similar sibling leaves are merged.
	LeavesJoined()
}

// Outcomes of an LP call.
const (
	lpFeasible   = "feasible"
	lpInfeasible = "infeasible"
	lpUnbounded  = "unbounded"
	lpFailed     = "failed"
)

type noopRecorder struct{}

func (noopRecorder) LPSolved(string, time.Duration) {}
func (noopRecorder) ConditionRegistered(string)     {}
func (noopRecorder) LeavesJoined()                  {}

const (
	metricsNamespace = "aadd"
	metricsSubsystem = "manager"
)

// PrometheusRecorder is a Recorder that exports its statistics as Prometheus
// metrics:
//
//   - aadd_manager_lp_solves_total: counter by outcome
//   - aadd_manager_lp_duration_seconds: histogram of solver latency
//   - aadd_manager_conditions_total: counter by kind
//   - aadd_manager_leaf_joins_total: counter of merged leaves
type PrometheusRecorder struct {
	lpSolves   *prometheus.CounterVec
	lpDuration prometheus.Histogram
	conditions *prometheus.CounterVec
	joins      prometheus.Counter
}

// NewPrometheusRecorder creates a recorder and registers its collectors with
// reg. We use the default registerer if reg is nil.
func NewPrometheusRecorder(reg prometheus.Registerer) (*PrometheusRecorder, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	p := &PrometheusRecorder{
		lpSolves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: metricsSubsystem,
				Name:      "lp_solves_total",
				Help:      "Number of calls to the LP solver by outcome",
			},
			[]string{"outcome"},
		),
		lpDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Subsystem: metricsSubsystem,
				Name:      "lp_duration_seconds",
				Help:      "Time spent in the LP solver for one leaf (both directions)",
				Buckets:   prometheus.ExponentialBuckets(1e-5, 4, 10),
			},
		),
		conditions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: metricsSubsystem,
				Name:      "conditions_total",
				Help:      "Number of conditions registered by kind",
			},
			[]string{"kind"},
		),
		joins: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Subsystem: metricsSubsystem,
				Name:      "leaf_joins_total",
				Help:      "Number of sibling leaves merged because they were similar",
			},
		),
	}
	for _, c := range []prometheus.Collector{p.lpSolves, p.lpDuration, p.conditions, p.joins} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (p *PrometheusRecorder) LPSolved(outcome string, elapsed time.Duration) {
	p.lpSolves.WithLabelValues(outcome).Inc()
	p.lpDuration.Observe(elapsed.Seconds())
}

func (p *PrometheusRecorder) ConditionRegistered(kind string) {
	p.conditions.WithLabelValues(kind).Inc()
}

func (p *PrometheusRecorder) LeavesJoined() {
	p.joins.Inc()
}
