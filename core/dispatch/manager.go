package dispatch

import (
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/powerplan/core/history"
	"github.com/kilianp07/powerplan/core/logger"
	coremetrics "github.com/kilianp07/powerplan/core/metrics"
	"github.com/kilianp07/powerplan/core/model"
	"github.com/kilianp07/powerplan/internal/eventbus"
)

// Solved is published on the event bus after every solve so that history
// persistence stays off the solve path.
type Solved struct {
	Record history.Record
	Event  coremetrics.PlanEvent
}

// Manager wraps the Planner with plan identifiers, metrics recording and
// event publication. The solve itself stays pure and synchronous.
type Manager struct {
	planner Planner
	sink    coremetrics.MetricsSink
	bus     *eventbus.Bus[Solved]
	log     logger.Logger
}

// NewManager builds a Manager. sink, bus and log may be nil when
// observability or history recording is not wanted.
func NewManager(sink coremetrics.MetricsSink, bus *eventbus.Bus[Solved], log logger.Logger) *Manager {
	if sink == nil {
		sink = coremetrics.NopSink{}
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Manager{sink: sink, bus: bus, log: log}
}

// Solve runs the planner on the payload and records the outcome.
func (m *Manager) Solve(payload model.Payload) (Plan, error) {
	start := time.Now()
	plan, err := m.planner.Solve(payload)
	duration := time.Since(start)

	id := uuid.NewString()
	rec := history.Record{
		ID:       id,
		Time:     start,
		LoadMW:   payload.Load,
		Feasible: err == nil,
	}
	ev := coremetrics.PlanEvent{
		PlanID:   id,
		LoadMW:   payload.Load,
		Plants:   len(payload.Plants),
		Feasible: err == nil,
		Duration: duration,
		Time:     start,
	}
	if err != nil {
		rec.Error = err.Error()
		m.log.Warnf("solve %s failed: %v", id, err)
	} else {
		rec.TotalCost = plan.TotalCost
		rec.TotalMW = plan.TotalMW
		rec.Assignments = plan.Assignments
		ev.TotalCost = plan.TotalCost
		ev.TotalMW = plan.TotalMW
		m.log.Infof("solve %s: load %.1f MW over %d plants, cost %.2f", id, payload.Load, len(payload.Plants), plan.TotalCost)
	}

	if serr := m.sink.RecordPlan(ev); serr != nil {
		m.log.Errorf("metrics sink: %v", serr)
	}
	if m.bus != nil {
		m.bus.Publish(Solved{Record: rec, Event: ev})
	}
	return plan, err
}
