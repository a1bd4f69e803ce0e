package sim

// Processor is one stage of the driver. Each reacts to the instruction
// kinds it knows and leaves the state untouched otherwise.
type Processor interface {
	Process(game *Game, state *State, instruction Instruction)
}

// Simulation folds one popped instruction through every processor in
// order. An empty stack refills itself with a Step, so the driver is
// self-sustaining once started.
type Simulation struct {
	processors []Processor
	game       *Game
	state      *State
	paused     bool
}

func NewSimulation(game *Game, state *State, processors []Processor) *Simulation {
	return &Simulation{processors: processors, game: game, state: state}
}

func (s *Simulation) Game() *Game   { return s.game }
func (s *Simulation) State() *State { return s.state }

// Step pops the top instruction, hands it to every processor in order,
// and reloads the stack with a Step when it has drained.
func (s *Simulation) Step(micros int64) {
	if s.paused {
		return
	}
	s.game.Micros = micros
	if instruction, ok := s.state.Pop(); ok {
		for _, processor := range s.processors {
			processor.Process(s.game, s.state, instruction)
		}
	}
	if len(s.state.Instructions) == 0 {
		s.state.Push(Instruction{Kind: InstructionStep})
	}
}

// Pause stops Step from doing work; the channels feeding the simulation
// stay open. Required before serializing the state.
func (s *Simulation) Pause()       { s.paused = true }
func (s *Simulation) Resume()      { s.paused = false }
func (s *Simulation) Paused() bool { return s.paused }
