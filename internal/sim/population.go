package sim

import "frontier.sim/internal/settlement"

// PopulationUpdate reacts to UpdateCurrentPopulation: moves the
// settlement's population toward its target and chains into demand.
type PopulationUpdate struct{}

func (PopulationUpdate) Process(game *Game, state *State, instruction Instruction) {
	if instruction.Kind != InstructionUpdateCurrentPopulation {
		return
	}
	s := game.Settlements.Get(instruction.Position)
	if s == nil {
		return
	}
	s.StepPopulation(game.Micros, settlement.MaxAbsPopulationChange(s.Class))
	state.Push(Instruction{Kind: InstructionGetDemand, Settlement: s})
}

// HomelandPopulationUpdate reacts to UpdateHomelandPopulation: splits the
// visible land between homelands equally.
type HomelandPopulationUpdate struct{}

func (HomelandPopulationUpdate) Process(game *Game, state *State, instruction Instruction) {
	if instruction.Kind != InstructionUpdateHomelandPopulation {
		return
	}
	game.Settlements.SetHomelandTargets(game.VisibleLandPositions)
}
