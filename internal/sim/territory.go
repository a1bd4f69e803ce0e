package sim

import "frontier.sim/internal/settlement"

// TerritoryUpdate reacts to GetTerritory: recomputes the town's claims
// and chains into the traffic summary for the refreshed territory.
type TerritoryUpdate struct{}

func (TerritoryUpdate) Process(game *Game, state *State, instruction Instruction) {
	if instruction.Kind != InstructionGetTerritory {
		return
	}
	town := game.Settlements.Get(instruction.Position)
	if town == nil || town.Class != settlement.ClassTown {
		return
	}
	game.UpdateTerritory(town.Position, state.Params)
	state.Push(Instruction{
		Kind:       InstructionGetTownTraffic,
		Settlement: town,
		Territory:  game.Controlled(town.Position),
	})
}
