package sim

import (
	"frontier.sim/internal/geometry"
	"frontier.sim/internal/pathfinding"
	"frontier.sim/internal/routes"
	"frontier.sim/internal/world"
)

// RouteSearch reacts to GetRoutes: finds the closest loaded sources of
// the demanded resource from the settlement's corners, planning over
// pending roads but pricing each route without them.
type RouteSearch struct{}

func (RouteSearch) Process(game *Game, state *State, instruction Instruction) {
	if instruction.Kind != InstructionGetRoutes {
		return
	}
	demand := *instruction.Demand
	routeSet := routes.RouteSet{}
	for _, target := range closestTargets(game, demand) {
		key := routes.RouteKey{
			Settlement:  demand.Position,
			Resource:    demand.Resource,
			Destination: target.Position,
		}
		duration := target.Duration
		if priced, ok := game.Pathfinders.WithoutPlannedRoads.LowestDuration(target.Path); ok {
			duration = priced
		}
		routeSet[key] = routes.Route{
			Path:        target.Path,
			StartMicros: game.Micros,
			Duration:    duration,
			Traffic:     demand.Quantity,
		}
		if len(routeSet) == demand.Sources {
			break
		}
	}
	state.Push(Instruction{
		Kind:        InstructionGetRouteChanges,
		RouteSetKey: &routes.RouteSetKey{Settlement: demand.Position, Resource: demand.Resource},
		RouteSet:    flattenRouteSet(routeSet),
	})
}

func closestTargets(game *Game, demand routes.Demand) []pathfinding.ClosestTarget {
	if demand.Sources == 0 || demand.Quantity == 0 {
		return nil
	}
	var corners []geometry.Position
	for _, corner := range world.GetCorners(demand.Position) {
		if game.Pathfinders.WithPlannedRoads.InBounds(corner) {
			corners = append(corners, corner)
		}
	}
	if len(corners) == 0 {
		return nil
	}
	return game.Pathfinders.WithPlannedRoads.ClosestTargets(
		corners, demand.Resource.TargetSet(), demand.Sources)
}
