package model

import (
	"errors"
	"fmt"
)

// PlantType identifies the generation technology of a plant.
type PlantType string

const (
	PlantGasFired    PlantType = "gasfired"
	PlantTurbojet    PlantType = "turbojet"
	PlantWindTurbine PlantType = "windturbine"
)

// ErrMissingFuelPrice indicates a fuel price required by a plant type is
// absent from the payload.
var ErrMissingFuelPrice = errors.New("missing fuel price")

// ErrUnknownPlantType indicates a plant declares a type outside the known set.
var ErrUnknownPlantType = errors.New("unknown plant type")

// Known returns true if t is one of the supported plant types.
func (t PlantType) Known() bool {
	switch t {
	case PlantGasFired, PlantTurbojet, PlantWindTurbine:
		return true
	}
	return false
}

// Fuels holds the market prices used to derive marginal costs. Prices are
// pointers so that an absent field can be told apart from a zero price.
type Fuels struct {
	Gas         *float64 `json:"gas_price"`
	Kerosene    *float64 `json:"kerosene_price"`
	CO2         *float64 `json:"co2_price"` // carried through, not priced in
	WindPercent *float64 `json:"wind_percent"`
}

// GasPrice returns the gas price or ErrMissingFuelPrice.
func (f Fuels) GasPrice() (float64, error) {
	if f.Gas == nil {
		return 0, fmt.Errorf("%w: gas_price", ErrMissingFuelPrice)
	}
	return *f.Gas, nil
}

// KerosenePrice returns the kerosene price or ErrMissingFuelPrice.
func (f Fuels) KerosenePrice() (float64, error) {
	if f.Kerosene == nil {
		return 0, fmt.Errorf("%w: kerosene_price", ErrMissingFuelPrice)
	}
	return *f.Kerosene, nil
}

// Wind returns the wind availability percentage or ErrMissingFuelPrice.
func (f Fuels) Wind() (float64, error) {
	if f.WindPercent == nil {
		return 0, fmt.Errorf("%w: wind_percent", ErrMissingFuelPrice)
	}
	return *f.WindPercent, nil
}

// Plant describes one generating unit of the fleet.
type Plant struct {
	Name       string    `json:"name"`
	Type       PlantType `json:"type"`
	Efficiency float64   `json:"efficiency"`
	PMin       float64   `json:"pmin"`
	PMax       float64   `json:"pmax"`
}

// IsWind reports whether the plant produces at zero marginal cost.
func (p Plant) IsWind() bool { return p.Type == PlantWindTurbine }

// Validate checks that the plant configuration is sound.
func (p Plant) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("plant name is required")
	}
	if !p.Type.Known() {
		return fmt.Errorf("%w: plant %q declares type %q", ErrUnknownPlantType, p.Name, p.Type)
	}
	if p.Efficiency <= 0 || p.Efficiency > 1 {
		return fmt.Errorf("plant %q: efficiency %v outside (0,1]", p.Name, p.Efficiency)
	}
	if p.PMin < 0 {
		return fmt.Errorf("plant %q: pmin %v is negative", p.Name, p.PMin)
	}
	if p.PMax < p.PMin {
		return fmt.Errorf("plant %q: pmax %v below pmin %v", p.Name, p.PMax, p.PMin)
	}
	return nil
}

// Payload is one dispatch problem: a target load, the fuel prices and the
// fleet of plants. Plant order matters only for the output ordering.
type Payload struct {
	Load   float64 `json:"load"`
	Fuels  Fuels   `json:"fuels"`
	Plants []Plant `json:"powerplants"`
}

// Validate checks the payload shape before solving. It rejects unknown plant
// types and degenerate pmin/pmax ranges up front rather than letting them
// reach the solver.
func (p Payload) Validate() error {
	if p.Load < 0 {
		return fmt.Errorf("load %v is negative", p.Load)
	}
	if len(p.Plants) == 0 {
		return fmt.Errorf("no powerplants in payload")
	}
	seen := make(map[string]struct{}, len(p.Plants))
	for _, plant := range p.Plants {
		if err := plant.Validate(); err != nil {
			return err
		}
		if _, dup := seen[plant.Name]; dup {
			return fmt.Errorf("duplicate plant name %q", plant.Name)
		}
		seen[plant.Name] = struct{}{}
		if plant.IsWind() {
			if _, err := p.Fuels.Wind(); err != nil {
				return err
			}
		}
	}
	if p.Fuels.WindPercent != nil {
		if w := *p.Fuels.WindPercent; w < 0 || w > 100 {
			return fmt.Errorf("wind_percent %v outside [0,100]", w)
		}
	}
	return nil
}

// Assignment is the power granted to one plant in the final plan.
type Assignment struct {
	Name  string  `json:"name"`
	Power float64 `json:"p"`
}
