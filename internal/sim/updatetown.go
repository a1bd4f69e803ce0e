package sim

import "frontier.sim/internal/settlement"

// TownUpdate reacts to UpdateTown: folds the traffic summaries into the
// town's target population, nation and responsiveness, then chains into
// the population update. Zero-traffic towns keep their target.
type TownUpdate struct{}

func (TownUpdate) Process(game *Game, state *State, instruction Instruction) {
	if instruction.Kind != InstructionUpdateTown {
		return
	}
	town := game.Settlements.Get(instruction.Settlement.Position)
	if town == nil {
		return
	}
	traffic := instruction.Traffic

	if target, ok := settlement.TargetFromTraffic(traffic, state.Params.TrafficToPopulation); ok {
		town.TargetPopulation = target
	}
	town.Nation = settlement.NationFromTraffic(town.Nation, traffic, state.Params.NationFlipTrafficPc)
	town.GapHalfLife = settlement.GapHalfLifeFromTraffic(town.GapHalfLife, traffic)

	state.Push(Instruction{
		Kind:     InstructionUpdateCurrentPopulation,
		Position: town.Position,
	})
}

// TownRemoval reacts to UpdateTown: a town below the removal population
// with no traffic at all is erased, its territory released, and every
// position it controlled queued for refresh.
type TownRemoval struct{}

func (TownRemoval) Process(game *Game, state *State, instruction Instruction) {
	if instruction.Kind != InstructionUpdateTown {
		return
	}
	town := instruction.Settlement
	if town.CurrentPopulation >= state.Params.TownRemovalPopulation || len(instruction.Traffic) > 0 {
		return
	}
	controlled := game.Controlled(town.Position)
	game.Territory.RemoveController(town.Position)
	game.Settlements.Remove(town.Position)
	state.Push(Instruction{Kind: InstructionRefreshPositions, Positions: controlled})
}
