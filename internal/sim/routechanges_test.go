package sim

import (
	"testing"

	"frontier.sim/internal/geometry"
	"frontier.sim/internal/routes"
)

func TestRouteChangeComputationStoresAndPushes(t *testing.T) {
	game := testGame(8, 8)
	state := NewState(8, 8, DefaultParams())
	key := routes.RouteKey{
		Settlement:  geometry.Pos(1, 1),
		Resource:    routes.ResourceWood,
		Destination: geometry.Pos(3, 1),
	}
	route := routes.Route{
		Path:    pathBetween(geometry.Pos(1, 1), geometry.Pos(3, 1)),
		Traffic: 2,
	}

	RouteChangeComputation{}.Process(game, state, Instruction{
		Kind:        InstructionGetRouteChanges,
		RouteSetKey: &routes.RouteSetKey{Settlement: key.Settlement, Resource: key.Resource},
		RouteSet:    []KeyedRoute{{Key: key, Route: route}},
	})

	if _, ok := state.Routes.Get(key); !ok {
		t.Fatalf("route not stored")
	}
	if len(state.Instructions) != 1 || state.Instructions[0].Kind != InstructionProcessRouteChanges {
		t.Fatalf("stack %v, want process-route-changes", state.Instructions)
	}
	changes := state.Instructions[0].RouteChanges
	if len(changes) != 1 || changes[0].Kind != routes.ChangeNew {
		t.Fatalf("changes %v, want one new route", changes)
	}
}

func TestRouteChangeComputationIgnoresNoOpSets(t *testing.T) {
	game := testGame(8, 8)
	state := NewState(8, 8, DefaultParams())
	key := routes.RouteKey{
		Settlement:  geometry.Pos(1, 1),
		Resource:    routes.ResourceWood,
		Destination: geometry.Pos(3, 1),
	}
	route := routes.Route{Path: pathBetween(geometry.Pos(1, 1), geometry.Pos(3, 1)), Traffic: 2}
	state.Routes.Insert(key, route)

	RouteChangeComputation{}.Process(game, state, Instruction{
		Kind:        InstructionGetRouteChanges,
		RouteSetKey: &routes.RouteSetKey{Settlement: key.Settlement, Resource: key.Resource},
		RouteSet:    []KeyedRoute{{Key: key, Route: route}},
	})

	if len(state.Instructions) != 0 {
		t.Fatalf("stack %v, want nothing for an identical set", state.Instructions)
	}
}

func TestTrafficUpdateQueuesRefreshes(t *testing.T) {
	game := testGame(8, 8)
	state := NewState(8, 8, DefaultParams())
	key := routes.RouteKey{
		Settlement:  geometry.Pos(1, 1),
		Resource:    routes.ResourceWood,
		Destination: geometry.Pos(3, 1),
	}
	route := routes.Route{Path: pathBetween(geometry.Pos(1, 1), geometry.Pos(3, 1)), Traffic: 2}

	TrafficUpdate{}.Process(game, state, Instruction{
		Kind:         InstructionProcessRouteChanges,
		RouteChanges: []routes.Change{routes.NewRoute(key, route)},
	})

	kinds := map[InstructionKind]Instruction{}
	for _, instruction := range state.Instructions {
		kinds[instruction.Kind] = instruction
	}
	refresh, ok := kinds[InstructionRefreshPositions]
	if !ok || len(refresh.Positions) != 3 {
		t.Fatalf("positions refresh %v, want the three path positions", refresh.Positions)
	}
	edges, ok := kinds[InstructionRefreshEdges]
	if !ok || len(edges.Edges) != 2 {
		t.Fatalf("edges refresh %v, want the two path edges", edges.Edges)
	}
	if len(state.Traffic.At(geometry.Pos(2, 1))) != 1 {
		t.Errorf("ledger missing the route at (2,1)")
	}
}

func TestPortDiscoveryForgetsRemovedRoutes(t *testing.T) {
	game := testGame(8, 8)
	state := NewState(8, 8, DefaultParams())
	key := routes.RouteKey{
		Settlement:  geometry.Pos(1, 1),
		Resource:    routes.ResourceWood,
		Destination: geometry.Pos(3, 1),
	}
	state.RouteToPorts[key] = map[geometry.Position]bool{geometry.Pos(2, 1): true}
	route := routes.Route{Path: pathBetween(geometry.Pos(1, 1), geometry.Pos(3, 1))}

	PortDiscovery{}.Process(game, state, Instruction{
		Kind:         InstructionProcessRouteChanges,
		RouteChanges: []routes.Change{routes.RemovedRoute(key, route)},
	})

	if _, ok := state.RouteToPorts[key]; ok {
		t.Fatalf("ports kept for a removed route")
	}
}

func TestPopulationDemandScalesWithPopulation(t *testing.T) {
	params := DefaultParams()
	town := testTownWithPopulation(9.5)

	demands := PopulationDemand(town, params)

	if len(demands) != len(routes.Resources) {
		t.Fatalf("demands for %d resources, want %d", len(demands), len(routes.Resources))
	}
	for _, demand := range demands {
		if demand.Quantity != 3 {
			t.Errorf("quantity %d for %s, want 3", demand.Quantity, demand.Resource)
		}
		if demand.Sources != params.DemandSources {
			t.Errorf("sources %d, want %d", demand.Sources, params.DemandSources)
		}
	}
}

func TestPopulationDemandSilentBelowOneUnit(t *testing.T) {
	if demands := PopulationDemand(testTownWithPopulation(1.0), DefaultParams()); len(demands) != 0 {
		t.Fatalf("demands %v, want none below one unit", demands)
	}
}

func TestRouteSearchFindsClosestSource(t *testing.T) {
	game := testGame(8, 8)
	state := NewState(8, 8, DefaultParams())
	game.Resources.Set(geometry.Pos(5, 1), routes.ResourceCoal)
	game.Resources.Set(geometry.Pos(7, 7), routes.ResourceCoal)
	game.InitResourceTargets()
	game.Micros = 42

	RouteSearch{}.Process(game, state, Instruction{
		Kind: InstructionGetRoutes,
		Demand: &routes.Demand{
			Position: geometry.Pos(1, 1),
			Resource: routes.ResourceCoal,
			Sources:  1,
			Quantity: 3,
		},
	})

	if len(state.Instructions) != 1 || state.Instructions[0].Kind != InstructionGetRouteChanges {
		t.Fatalf("stack %v, want get-route-changes", state.Instructions)
	}
	routeSet := state.Instructions[0].RouteSet
	if len(routeSet) != 1 {
		t.Fatalf("route set %v, want the single closest source", routeSet)
	}
	entry := routeSet[0]
	if entry.Key.Destination != geometry.Pos(5, 1) {
		t.Errorf("destination %v, want the closer coal", entry.Key.Destination)
	}
	if entry.Route.Traffic != 3 {
		t.Errorf("traffic %d, want the demand quantity", entry.Route.Traffic)
	}
	if entry.Route.StartMicros != 42 {
		t.Errorf("start %d, want the current clock", entry.Route.StartMicros)
	}
	if entry.Route.Duration <= 0 {
		t.Errorf("duration %v, want positive", entry.Route.Duration)
	}
}
