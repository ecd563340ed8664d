package dispatch

import (
	"math"

	"github.com/kilianp07/powerplan/core/model"
)

// stepScale converts MW to the solver's discretization unit of 0.1 MW.
const stepScale = 10

func toSteps(mw float64) int { return int(math.Round(mw * stepScale)) }

func toMW(steps int) float64 { return float64(steps) / stepScale }

// candidateSteps enumerates the output levels, in tenths of a MW, the plant
// may be assigned. Wind is all-or-nothing at the available fraction of its
// capacity; thermal plants run at zero or anywhere in [pmin, pmax] on the
// 0.1 MW grid. A degenerate pmax < pmin range degrades to zero only.
func candidateSteps(plant model.Plant, windPercent float64) []int {
	if plant.IsWind() {
		prod := toSteps(plant.PMax * windPercent / 100)
		if prod == 0 {
			return []int{0}
		}
		return []int{0, prod}
	}
	lo, hi := toSteps(plant.PMin), toSteps(plant.PMax)
	steps := []int{0}
	for s := lo; s <= hi; s++ {
		if s == 0 {
			continue
		}
		steps = append(steps, s)
	}
	return steps
}
