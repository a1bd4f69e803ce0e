package sim

import (
	"testing"
	"time"

	"frontier.sim/internal/geometry"
	"frontier.sim/internal/settlement"
)

func TestTownUpdateFoldsTraffic(t *testing.T) {
	game := testGame(8, 8)
	state := NewState(8, 8, DefaultParams())
	town := &settlement.Settlement{
		Position:    geometry.Pos(5, 5),
		Class:       settlement.ClassTown,
		Nation:      "Spain",
		GapHalfLife: time.Hour,
	}
	game.Settlements.Add(town)

	TownUpdate{}.Process(game, state, Instruction{
		Kind:       InstructionUpdateTown,
		Settlement: town,
		Traffic: []settlement.TrafficSummary{
			{Nation: "France", TrafficShare: 6, TotalDuration: 12 * time.Second},
			{Nation: "Spain", TrafficShare: 2, TotalDuration: 4 * time.Second},
		},
	})

	if town.TargetPopulation != 4.0 {
		t.Errorf("target %v, want share times conversion", town.TargetPopulation)
	}
	if town.Nation != "France" {
		t.Errorf("nation %q, want flip to the dominant France", town.Nation)
	}
	if town.GapHalfLife != 2*time.Second {
		t.Errorf("gap half life %v, want total duration over share", town.GapHalfLife)
	}
	if len(state.Instructions) != 1 || state.Instructions[0].Kind != InstructionUpdateCurrentPopulation {
		t.Fatalf("stack %v, want a population update", state.Instructions)
	}
}

func TestTownUpdateKeepsTargetWithoutTraffic(t *testing.T) {
	game := testGame(8, 8)
	state := NewState(8, 8, DefaultParams())
	town := &settlement.Settlement{
		Position:         geometry.Pos(5, 5),
		Class:            settlement.ClassTown,
		Nation:           "Spain",
		TargetPopulation: 7.5,
	}
	game.Settlements.Add(town)

	TownUpdate{}.Process(game, state, Instruction{
		Kind:       InstructionUpdateTown,
		Settlement: town,
	})

	if town.TargetPopulation != 7.5 {
		t.Errorf("target %v, want unchanged", town.TargetPopulation)
	}
	if town.Nation != "Spain" {
		t.Errorf("nation %q, want unchanged", town.Nation)
	}
}

func TestTownUpdateKeepsNationBelowFlipThreshold(t *testing.T) {
	game := testGame(8, 8)
	state := NewState(8, 8, DefaultParams())
	town := &settlement.Settlement{
		Position: geometry.Pos(5, 5),
		Class:    settlement.ClassTown,
		Nation:   "Spain",
	}
	game.Settlements.Add(town)

	TownUpdate{}.Process(game, state, Instruction{
		Kind:       InstructionUpdateTown,
		Settlement: town,
		Traffic: []settlement.TrafficSummary{
			{Nation: "France", TrafficShare: 6},
			{Nation: "Spain", TrafficShare: 4},
		},
	})

	if town.Nation != "Spain" {
		t.Errorf("nation %q, want Spain kept at 60%% foreign share", town.Nation)
	}
}

func TestPopulationUpdateChainsIntoDemand(t *testing.T) {
	game := testGame(8, 8)
	state := NewState(8, 8, DefaultParams())
	town := &settlement.Settlement{
		Position:                   geometry.Pos(5, 5),
		Class:                      settlement.ClassTown,
		CurrentPopulation:          0,
		TargetPopulation:           100,
		GapHalfLife:                time.Hour,
		LastPopulationUpdateMicros: 0,
	}
	game.Settlements.Add(town)
	game.Micros = time.Hour.Microseconds()

	PopulationUpdate{}.Process(game, state, Instruction{
		Kind:     InstructionUpdateCurrentPopulation,
		Position: town.Position,
	})

	if town.CurrentPopulation < 49.99 || town.CurrentPopulation > 50.01 {
		t.Errorf("population %v, want about 50 after one half life", town.CurrentPopulation)
	}
	if len(state.Instructions) != 1 || state.Instructions[0].Kind != InstructionGetDemand {
		t.Fatalf("stack %v, want a demand instruction", state.Instructions)
	}
}

func TestHomelandPopulationUpdateSplitsVisibleLand(t *testing.T) {
	game := testGame(8, 8)
	state := NewState(8, 8, DefaultParams())
	for i, nation := range []string{"Spain", "France"} {
		game.Settlements.Add(&settlement.Settlement{
			Position: geometry.Pos(i, 0),
			Class:    settlement.ClassHomeland,
			Nation:   nation,
		})
	}
	game.VisibleLandPositions = 202

	HomelandPopulationUpdate{}.Process(game, state, Instruction{
		Kind: InstructionUpdateHomelandPopulation,
	})

	for _, homeland := range game.Settlements.Homelands() {
		if homeland.TargetPopulation != 101.0 {
			t.Errorf("homeland %v target %v, want 101", homeland.Position, homeland.TargetPopulation)
		}
	}
}
