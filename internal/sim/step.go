package sim

// StepHomeland reacts to Step: one Build and one population update per
// homeland, then the shared homeland target refresh.
type StepHomeland struct{}

func (StepHomeland) Process(game *Game, state *State, instruction Instruction) {
	if instruction.Kind != InstructionStep {
		return
	}
	for _, homeland := range game.Settlements.Homelands() {
		state.Push(Instruction{Kind: InstructionBuild})
		state.Push(Instruction{
			Kind:     InstructionUpdateCurrentPopulation,
			Position: homeland.Position,
		})
	}
	state.Push(Instruction{Kind: InstructionUpdateHomelandPopulation})
}

// StepTown reacts to Step: one territory refresh per town.
type StepTown struct{}

func (StepTown) Process(game *Game, state *State, instruction Instruction) {
	if instruction.Kind != InstructionStep {
		return
	}
	for _, town := range game.Settlements.Towns() {
		state.Push(Instruction{Kind: InstructionGetTerritory, Position: town.Position})
	}
}
