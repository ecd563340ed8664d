package dispatch

import (
	"errors"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/kilianp07/powerplan/core/model"
)

// ErrInfeasible indicates no combination of plant outputs sums exactly to
// the requested load at the 0.1 MW discretization.
var ErrInfeasible = errors.New("no feasible production plan")

// Plan is the solver output: one assignment per payload plant, in payload
// order, plus the plan's aggregate cost and delivered power.
type Plan struct {
	Assignments []model.Assignment
	TotalCost   float64
	TotalMW     float64
}

// Planner solves the economic dispatch problem with a dynamic program over
// discretized output levels. The zero value is ready to use; a Planner is
// stateless and safe for concurrent solves.
type Planner struct{}

// tableEntry is the best known way to reach a cumulative output level:
// its total cost and the per-plant allocations, in merit order, that got there.
type tableEntry struct {
	cost   float64
	allocs []int
}

// Solve computes the least-cost exact-sum allocation for the payload.
// It returns ErrInfeasible when the target is unreachable, and validation
// or fuel-price errors before any search is attempted.
func (Planner) Solve(payload model.Payload) (Plan, error) {
	if err := payload.Validate(); err != nil {
		return Plan{}, err
	}
	ranked, err := meritOrder(payload.Fuels, payload.Plants)
	if err != nil {
		return Plan{}, err
	}
	var wind float64
	if payload.Fuels.WindPercent != nil {
		wind = *payload.Fuels.WindPercent
	}
	target := toSteps(payload.Load)

	// One table per processed plant, keyed by cumulative output steps.
	// Each plant gets a fresh table so entries are never aliased across
	// iterations.
	table := map[int]tableEntry{0: {}}
	for _, plant := range ranked {
		cands := candidateSteps(plant.Plant, wind)
		next := make(map[int]tableEntry, len(table))
		for _, reached := range sortedSteps(table) {
			cur := table[reached]
			for _, alloc := range cands {
				total := reached + alloc
				if total > target {
					// Overshoot is pruned outright: exceeding the
					// target can never be walked back.
					continue
				}
				cost := cur.cost + toMW(alloc)*plant.cost
				if prev, ok := next[total]; ok && prev.cost <= cost {
					continue
				}
				allocs := make([]int, len(cur.allocs), len(cur.allocs)+1)
				copy(allocs, cur.allocs)
				next[total] = tableEntry{cost: cost, allocs: append(allocs, alloc)}
			}
		}
		table = next
	}

	won, ok := table[target]
	if !ok {
		return Plan{}, fmt.Errorf("%w: load %.1f MW", ErrInfeasible, payload.Load)
	}
	return assemble(payload.Plants, ranked, won), nil
}

// sortedSteps returns the table keys in ascending order. Map iteration order
// is randomized in Go; a fixed order keeps equal-cost tie resolution, and
// therefore the returned plan, identical across solves of the same payload.
func sortedSteps(table map[int]tableEntry) []int {
	keys := make([]int, 0, len(table))
	for k := range table {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// assemble maps the winning merit-order allocations back to the original
// payload order.
func assemble(plants []model.Plant, ranked []rankedPlant, won tableEntry) Plan {
	byName := make(map[string]int, len(ranked))
	for i, p := range ranked {
		byName[p.Name] = won.allocs[i]
	}
	assignments := make([]model.Assignment, len(plants))
	powers := make([]float64, len(plants))
	for i, p := range plants {
		powers[i] = toMW(byName[p.Name])
		assignments[i] = model.Assignment{Name: p.Name, Power: powers[i]}
	}
	return Plan{Assignments: assignments, TotalCost: won.cost, TotalMW: floats.Sum(powers)}
}
