package dispatch

import (
	"errors"
	"math"
	"testing"

	"github.com/kilianp07/powerplan/core/model"
)

func f(v float64) *float64 { return &v }

func testFuels() model.Fuels {
	return model.Fuels{Gas: f(13.4), Kerosene: f(50.8), CO2: f(20), WindPercent: f(60)}
}

func TestMarginalCost_GasFired(t *testing.T) {
	plant := model.Plant{Name: "g", Type: model.PlantGasFired, Efficiency: 0.5}
	cost, err := MarginalCost(testFuels(), plant)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(cost-26.8) > 1e-9 {
		t.Errorf("cost = %v, want 26.8", cost)
	}
}

func TestMarginalCost_Turbojet(t *testing.T) {
	plant := model.Plant{Name: "tj", Type: model.PlantTurbojet, Efficiency: 0.3}
	cost, err := MarginalCost(testFuels(), plant)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(cost-50.8/0.3) > 1e-9 {
		t.Errorf("cost = %v, want %v", cost, 50.8/0.3)
	}
}

func TestMarginalCost_WindIsFree(t *testing.T) {
	plant := model.Plant{Name: "w", Type: model.PlantWindTurbine, Efficiency: 1}
	cost, err := MarginalCost(model.Fuels{}, plant)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cost != 0 {
		t.Errorf("wind cost = %v, want 0", cost)
	}
}

func TestMarginalCost_MissingPrice(t *testing.T) {
	fuels := model.Fuels{Kerosene: f(50.8)}
	if _, err := MarginalCost(fuels, model.Plant{Type: model.PlantGasFired, Efficiency: 0.5}); !errors.Is(err, model.ErrMissingFuelPrice) {
		t.Errorf("gasfired without gas price: got %v", err)
	}
	fuels = model.Fuels{Gas: f(13.4)}
	if _, err := MarginalCost(fuels, model.Plant{Type: model.PlantTurbojet, Efficiency: 0.3}); !errors.Is(err, model.ErrMissingFuelPrice) {
		t.Errorf("turbojet without kerosene price: got %v", err)
	}
}

func TestMarginalCost_UnknownType(t *testing.T) {
	if _, err := MarginalCost(testFuels(), model.Plant{Type: "coalfired", Efficiency: 0.5}); !errors.Is(err, model.ErrUnknownPlantType) {
		t.Errorf("expected ErrUnknownPlantType, got %v", err)
	}
}
