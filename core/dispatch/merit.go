package dispatch

import (
	"sort"

	"github.com/kilianp07/powerplan/core/model"
)

// rankedPlant pairs a plant with its marginal cost for the current payload.
type rankedPlant struct {
	model.Plant
	cost float64
}

// meritOrder returns the plants ranked by dispatch priority: zero-cost wind
// first, then thermal plants by ascending marginal cost. The sort is stable
// so plants with equal priority keep their payload order.
func meritOrder(fuels model.Fuels, plants []model.Plant) ([]rankedPlant, error) {
	ranked := make([]rankedPlant, len(plants))
	for i, p := range plants {
		cost, err := MarginalCost(fuels, p)
		if err != nil {
			return nil, err
		}
		ranked[i] = rankedPlant{Plant: p, cost: cost}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		ci, cj := categoryRank(ranked[i].Plant), categoryRank(ranked[j].Plant)
		if ci != cj {
			return ci < cj
		}
		return ranked[i].cost < ranked[j].cost
	})
	return ranked, nil
}

func categoryRank(p model.Plant) int {
	if p.IsWind() {
		return 0
	}
	return 1
}
