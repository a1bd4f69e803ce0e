package sim

import (
	"time"

	"frontier.sim/internal/geometry"
	"frontier.sim/internal/routes"
	"frontier.sim/internal/settlement"
	"frontier.sim/internal/travel"
	"frontier.sim/internal/world"
)

// RoadTrigger reacts to RefreshEdges: an edge whose traffic reaches the
// threshold gets a road planned for the first visit and queued for
// building. The planning pathfinder sees the pending road immediately.
type RoadTrigger struct {
	TravelDuration travel.Duration
}

func (t RoadTrigger) Process(game *Game, state *State, instruction Instruction) {
	if instruction.Kind != InstructionRefreshEdges {
		return
	}
	for _, edge := range instruction.Edges {
		t.processEdge(game, state, edge)
	}
}

func (t RoadTrigger) processEdge(game *Game, state *State, edge geometry.Edge) {
	edgeRoutes := liveRoutes(state, state.Traffic.AtEdge(edge))
	if len(edgeRoutes) == 0 {
		return
	}
	traffic := 0
	for _, route := range edgeRoutes {
		traffic += route.Traffic
	}
	if traffic < state.Params.RoadThreshold {
		return
	}
	firstVisit := firstVisitMicros(edgeRoutes)

	if game.World.IsRoad(edge) {
		return
	}
	if planned := game.World.RoadPlanned(edge); planned != nil && *planned <= firstVisit {
		return
	}
	if _, ok := t.TravelDuration.GetDuration(game.World, edge.From(), edge.To()); !ok {
		return
	}

	game.World.PlanRoad(edge, &firstVisit)
	game.Pathfinders.WithPlannedRoads.UpdatePositions(
		game.World, []geometry.Position{edge.From(), edge.To()})

	state.BuildQueue.Insert(BuildInstruction{
		What: Build{Kind: BuildRoad, Edge: edge},
		When: firstVisit,
	})
}

// CropsTrigger reacts to RefreshPositions: positions carrying crop routes
// and free of objects get crops queued for the first visit.
type CropsTrigger struct{}

func (CropsTrigger) Process(game *Game, state *State, instruction Instruction) {
	if instruction.Kind != InstructionRefreshPositions {
		return
	}
	for _, position := range instruction.Positions {
		cropRoutes := liveRoutes(state, cropKeys(state.Traffic.At(position)))
		if len(cropRoutes) == 0 {
			continue
		}
		cell := game.World.GetCell(position)
		if cell == nil || cell.Object.Kind != world.ObjectNone || game.World.IsSea(position) {
			continue
		}
		state.BuildQueue.Insert(BuildInstruction{
			What: Build{Kind: BuildCrops, Position: position, Rotated: true},
			When: firstVisitMicros(cropRoutes),
		})
	}
}

func cropKeys(keys map[routes.RouteKey]bool) map[routes.RouteKey]bool {
	out := map[routes.RouteKey]bool{}
	for key := range keys {
		if key.Resource == routes.ResourceCrops {
			out[key] = true
		}
	}
	return out
}

// TownTrigger reacts to RefreshPositions: an uncontrolled position where
// a route terminates, or boards a boat, seeds a new town of the
// first-visiting nation.
type TownTrigger struct{}

func (TownTrigger) Process(game *Game, state *State, instruction Instruction) {
	if instruction.Kind != InstructionRefreshPositions {
		return
	}
	for _, position := range instruction.Positions {
		t := townCandidate(game, state, position)
		if t == nil {
			continue
		}
		state.BuildQueue.Insert(BuildInstruction{
			What: Build{Kind: BuildTown, Position: t.Position, Settlement: t},
			When: t.LastPopulationUpdateMicros,
		})
	}
}

func townCandidate(game *Game, state *State, position geometry.Position) *settlement.Settlement {
	if game.Territory.WhoControlsTile(position) != nil {
		return nil
	}
	cell := game.World.GetCell(position)
	if cell == nil || !cell.Visible || game.World.IsSea(position) {
		return nil
	}

	var candidates []keyedRouteRef
	for key := range state.Traffic.At(position) {
		route, ok := state.Routes.Get(key)
		if !ok {
			continue
		}
		if key.Destination != position && !state.RouteToPorts[key][position] {
			continue
		}
		candidates = append(candidates, keyedRouteRef{key: key, route: route})
	}
	if len(candidates) == 0 {
		return nil
	}

	first := candidates[0]
	for _, candidate := range candidates[1:] {
		if firstVisit(candidate.route) < firstVisit(first.route) {
			first = candidate
		}
	}
	origin := game.Settlements.AtCorner(first.key.Settlement)
	if origin == nil {
		return nil
	}
	nation := game.Nations[origin.Nation]
	if nation == nil {
		return nil
	}

	return &settlement.Settlement{
		Position:                   position,
		Class:                      settlement.ClassTown,
		Name:                       nation.GetTownName(),
		Nation:                     origin.Nation,
		CurrentPopulation:          state.Params.InitialTownPopulation,
		TargetPopulation:           0,
		GapHalfLife:                gapHalfLife(candidates),
		LastPopulationUpdateMicros: firstVisit(first.route),
	}
}

type keyedRouteRef struct {
	key   routes.RouteKey
	route routes.Route
}

func gapHalfLife(candidates []keyedRouteRef) time.Duration {
	var total time.Duration
	for _, candidate := range candidates {
		total += candidate.route.Duration
	}
	return total / time.Duration(len(candidates)) * 2
}

func liveRoutes(state *State, keys map[routes.RouteKey]bool) []routes.Route {
	var out []routes.Route
	for key := range keys {
		if route, ok := state.Routes.Get(key); ok {
			out = append(out, route)
		}
	}
	return out
}

func firstVisit(route routes.Route) int64 {
	return route.StartMicros + route.Duration.Microseconds()
}

func firstVisitMicros(edgeRoutes []routes.Route) int64 {
	first := firstVisit(edgeRoutes[0])
	for _, route := range edgeRoutes[1:] {
		if visit := firstVisit(route); visit < first {
			first = visit
		}
	}
	return first
}
