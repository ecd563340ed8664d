package dispatch

import (
	"testing"

	"github.com/kilianp07/powerplan/core/model"
)

func TestMeritOrder_WindFirst(t *testing.T) {
	plants := []model.Plant{
		{Name: "tj", Type: model.PlantTurbojet, Efficiency: 0.3, PMax: 16},
		{Name: "gas", Type: model.PlantGasFired, Efficiency: 0.53, PMin: 100, PMax: 460},
		{Name: "wind", Type: model.PlantWindTurbine, Efficiency: 1, PMax: 150},
	}
	ranked, err := meritOrder(testFuels(), plants)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := []string{ranked[0].Name, ranked[1].Name, ranked[2].Name}
	want := []string{"wind", "gas", "tj"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("merit order = %v, want %v", got, want)
		}
	}
}

func TestMeritOrder_CostAscending(t *testing.T) {
	plants := []model.Plant{
		{Name: "inefficient", Type: model.PlantGasFired, Efficiency: 0.37, PMax: 210},
		{Name: "efficient", Type: model.PlantGasFired, Efficiency: 0.53, PMax: 460},
	}
	ranked, err := meritOrder(testFuels(), plants)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ranked[0].Name != "efficient" {
		t.Errorf("expected the cheaper plant first, got %q", ranked[0].Name)
	}
}

func TestMeritOrder_StableOnTies(t *testing.T) {
	plants := []model.Plant{
		{Name: "a", Type: model.PlantGasFired, Efficiency: 0.5, PMax: 100},
		{Name: "b", Type: model.PlantGasFired, Efficiency: 0.5, PMax: 100},
		{Name: "w1", Type: model.PlantWindTurbine, Efficiency: 1, PMax: 50},
		{Name: "w2", Type: model.PlantWindTurbine, Efficiency: 1, PMax: 30},
	}
	ranked, err := meritOrder(testFuels(), plants)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := []string{ranked[0].Name, ranked[1].Name, ranked[2].Name, ranked[3].Name}
	want := []string{"w1", "w2", "a", "b"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("merit order = %v, want %v", got, want)
		}
	}
}

func TestMeritOrder_PropagatesCostError(t *testing.T) {
	plants := []model.Plant{{Name: "g", Type: model.PlantGasFired, Efficiency: 0.5}}
	if _, err := meritOrder(model.Fuels{}, plants); err == nil {
		t.Fatal("expected missing fuel price error")
	}
}
