package sim

import (
	"frontier.sim/internal/geometry"
	"frontier.sim/internal/pathfinding"
	"frontier.sim/internal/routes"
	"frontier.sim/internal/settlement"
	"frontier.sim/internal/territory"
	"frontier.sim/internal/travel"
	"frontier.sim/internal/visibility"
	"frontier.sim/internal/world"

	"frontier.sim/internal/bridges"
)

// Game is the shared simulation state the processors act against. It is
// owned by the simulation actor; all access runs on that goroutine.
type Game struct {
	Micros      int64
	World       *world.World
	Resources   *geometry.Grid[routes.Resource]
	Settlements settlement.Settlements
	Nations     settlement.Nations
	Territory   *territory.Territory
	Bridges     *bridges.Bridges
	Pathfinders pathfinding.Pathfinders
	Visibility  *visibility.Handler
	ModeFn      travel.ModeFn

	VisibleLandPositions int
}

// Controlled returns the positions currently claimed by a controller.
func (g *Game) Controlled(controller geometry.Position) []geometry.Position {
	return g.Territory.Controlled(controller)
}

// UpdateTerritory recomputes a town's claims: every position reachable
// from its corners within the town travel duration, measured without
// planned roads.
func (g *Game) UpdateTerritory(town geometry.Position, params Params) []territory.Change {
	corners := g.World.GetCornersInBounds(town)
	durations := g.Pathfinders.WithoutPlannedRoads.PositionsWithin(corners, params.TownTravelDuration())
	return g.Territory.SetDurations(town, durations, g.Micros)
}

// RevealPositions flips the visible flag on newly revealed cells and
// keeps the visible-land count current. Already visible cells are left
// alone.
func (g *Game) RevealPositions(positions []geometry.Position) []geometry.Position {
	var revealed []geometry.Position
	for _, position := range positions {
		cell := g.World.GetCell(position)
		if cell == nil || cell.Visible {
			continue
		}
		g.World.MutCellUnsafe(position).Visible = true
		revealed = append(revealed, position)
		if !g.World.IsSea(position) {
			g.VisibleLandPositions++
		}
	}
	return revealed
}

// RevealAll marks every cell visible in one pass, for the reveal-all
// mode.
func (g *Game) RevealAll() {
	g.World.ForEachCell(func(position geometry.Position, cell *world.Cell) {
		if cell.Visible {
			return
		}
		cell.Visible = true
		if !g.World.IsSea(position) {
			g.VisibleLandPositions++
		}
	})
}

// InitResourceTargets loads one pathfinder target set per resource into
// both pathfinders.
func (g *Game) InitResourceTargets() {
	for _, service := range []*pathfinding.Service{
		g.Pathfinders.WithPlannedRoads,
		g.Pathfinders.WithoutPlannedRoads,
	} {
		for _, resource := range routes.Resources {
			service.InitTargets(resource.TargetSet())
		}
		g.Resources.ForEach(func(position geometry.Position, resource *routes.Resource) {
			if *resource != routes.ResourceNone && *resource != "" {
				service.LoadTarget((*resource).TargetSet(), position, true)
			}
		})
	}
}
