package sim

import (
	"frontier.sim/internal/geometry"
	"frontier.sim/internal/routes"
	"frontier.sim/internal/travel"
)

// RouteChangeComputation reacts to GetRouteChanges: replaces the stored
// route set for the key and emits one change event per route seen in
// either the old or new set.
type RouteChangeComputation struct{}

func (RouteChangeComputation) Process(game *Game, state *State, instruction Instruction) {
	if instruction.Kind != InstructionGetRouteChanges {
		return
	}
	key := *instruction.RouteSetKey
	newSet := expandRouteSet(instruction.RouteSet)
	oldSet := state.Routes[key]

	changes := routes.DiffRouteSets(oldSet, newSet)
	state.Routes[key] = newSet

	meaningful := false
	for _, change := range changes {
		if change.Kind != routes.ChangeNone {
			meaningful = true
			break
		}
	}
	if !meaningful {
		return
	}
	state.Push(Instruction{Kind: InstructionProcessRouteChanges, RouteChanges: changes})
}

// PortDiscovery reacts to ProcessRouteChanges: records, per route, the
// land positions where the route boards or leaves the water. Territory
// traffic shares count these ports.
type PortDiscovery struct{}

func (PortDiscovery) Process(game *Game, state *State, instruction Instruction) {
	if instruction.Kind != InstructionProcessRouteChanges {
		return
	}
	for _, change := range instruction.RouteChanges {
		switch change.Kind {
		case routes.ChangeNew:
			state.RouteToPorts[change.Key] = portsAlong(game, change.New.Path)
		case routes.ChangeUpdated:
			if !samePath(change.Old.Path, change.New.Path) {
				state.RouteToPorts[change.Key] = portsAlong(game, change.New.Path)
			}
		case routes.ChangeRemoved:
			delete(state.RouteToPorts, change.Key)
		}
	}
}

func portsAlong(game *Game, path []geometry.Position) map[geometry.Position]bool {
	out := map[geometry.Position]bool{}
	for i := 0; i+1 < len(path); i++ {
		if port, ok := travel.CheckForPort(game.ModeFn, game.World, path[i], path[i+1]); ok {
			out[port] = true
		}
	}
	return out
}

func samePath(a, b []geometry.Position) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// TrafficUpdate reacts to ProcessRouteChanges: folds each change into
// the traffic ledger and queues a refresh for every touched position and
// edge.
type TrafficUpdate struct{}

func (TrafficUpdate) Process(game *Game, state *State, instruction Instruction) {
	if instruction.Kind != InstructionProcessRouteChanges {
		return
	}
	positionSet := map[geometry.Position]bool{}
	edgeSet := map[geometry.Edge]bool{}
	for _, change := range instruction.RouteChanges {
		positions, edges := state.Traffic.Apply(change)
		for _, position := range positions {
			positionSet[position] = true
		}
		for _, edge := range edges {
			edgeSet[edge] = true
		}
	}
	if len(positionSet) > 0 {
		positions := make([]geometry.Position, 0, len(positionSet))
		for position := range positionSet {
			positions = append(positions, position)
		}
		state.Push(Instruction{Kind: InstructionRefreshPositions, Positions: positions})
	}
	if len(edgeSet) > 0 {
		edges := make([]geometry.Edge, 0, len(edgeSet))
		for edge := range edgeSet {
			edges = append(edges, edge)
		}
		state.Push(Instruction{Kind: InstructionRefreshEdges, Edges: edges})
	}
}
