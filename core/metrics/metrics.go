package metrics

import "time"

// PlanEvent represents one solve to be recorded for observability purposes.
type PlanEvent struct {
	PlanID    string
	LoadMW    float64
	TotalMW   float64
	TotalCost float64
	Plants    int
	Feasible  bool
	Duration  time.Duration
	Time      time.Time
}

// MetricsSink records solve outcomes.
type MetricsSink interface {
	RecordPlan(ev PlanEvent) error
}

// NopSink implements MetricsSink with no-op methods.
type NopSink struct{}

func (NopSink) RecordPlan(PlanEvent) error { return nil }
