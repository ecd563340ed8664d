package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/powerplan/core/metrics"
)

// PromSink records solve outcomes in Prometheus metrics.
type PromSink struct {
	plans    *prometheus.CounterVec
	duration prometheus.Histogram
	cost     prometheus.Gauge
}

// NewPromSink registers plan metrics on the default Prometheus registerer.
// The Prometheus server should be started separately using cfg.PrometheusPort.
func NewPromSink(cfg coremetrics.Config) (coremetrics.MetricsSink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(_ coremetrics.Config, reg prometheus.Registerer) (coremetrics.MetricsSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	plans := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "production_plans_total",
		Help: "Total number of solved production plans",
	}, []string{"feasible"})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "production_plan_solve_seconds",
		Help:    "Time spent solving a production plan",
		Buckets: prometheus.DefBuckets,
	})
	cost := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "production_plan_last_cost",
		Help: "Total cost of the most recent feasible production plan",
	})

	if err := reg.Register(plans); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			plans = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(duration); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			duration = are.ExistingCollector.(prometheus.Histogram)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(cost); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			cost = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}

	return &PromSink{plans: plans, duration: duration, cost: cost}, nil
}

// RecordPlan increments the plan counter and observes the solve duration.
func (s *PromSink) RecordPlan(ev coremetrics.PlanEvent) error {
	s.plans.WithLabelValues(strconv.FormatBool(ev.Feasible)).Inc()
	s.duration.Observe(ev.Duration.Seconds())
	if ev.Feasible {
		s.cost.Set(ev.TotalCost)
	}
	return nil
}
