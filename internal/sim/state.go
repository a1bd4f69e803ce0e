package sim

import (
	"frontier.sim/internal/geometry"
	"frontier.sim/internal/routes"
)

// State is everything the driver owns between steps: the LIFO instruction
// stack, the build queue, the live routes and their traffic ledger, and
// the port positions along each route.
type State struct {
	Instructions []Instruction
	BuildQueue   *BuildQueue
	Routes       routes.Routes
	Traffic      *routes.Traffic
	RouteToPorts map[routes.RouteKey]map[geometry.Position]bool
	Params       Params
}

func NewState(width, height int, params Params) *State {
	return &State{
		BuildQueue:   NewBuildQueue(),
		Routes:       routes.Routes{},
		Traffic:      routes.NewTraffic(width, height),
		RouteToPorts: map[routes.RouteKey]map[geometry.Position]bool{},
		Params:       params,
	}
}

// Push adds an instruction to the top of the stack.
func (s *State) Push(instruction Instruction) {
	s.Instructions = append(s.Instructions, instruction)
}

// Pop removes and returns the top instruction.
func (s *State) Pop() (Instruction, bool) {
	if len(s.Instructions) == 0 {
		return Instruction{}, false
	}
	top := s.Instructions[len(s.Instructions)-1]
	s.Instructions = s.Instructions[:len(s.Instructions)-1]
	return top, true
}
