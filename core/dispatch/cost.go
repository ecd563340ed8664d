package dispatch

import (
	"fmt"

	"github.com/kilianp07/powerplan/core/model"
)

// MarginalCost returns the cost of producing one MWh with the given plant.
// Gas and kerosene prices are divided by the plant's thermal efficiency;
// wind produces at zero cost. A fuel price required by the plant type but
// absent from the payload yields model.ErrMissingFuelPrice.
func MarginalCost(fuels model.Fuels, plant model.Plant) (float64, error) {
	switch plant.Type {
	case model.PlantGasFired:
		price, err := fuels.GasPrice()
		if err != nil {
			return 0, err
		}
		return price / plant.Efficiency, nil
	case model.PlantTurbojet:
		price, err := fuels.KerosenePrice()
		if err != nil {
			return 0, err
		}
		return price / plant.Efficiency, nil
	case model.PlantWindTurbine:
		return 0, nil
	default:
		return 0, fmt.Errorf("%w: %q", model.ErrUnknownPlantType, plant.Type)
	}
}
