package snapshot

import (
	"sort"

	"frontier.sim/internal/avatar"
	"frontier.sim/internal/bridges"
	"frontier.sim/internal/geometry"
	"frontier.sim/internal/routes"
	"frontier.sim/internal/settlement"
	"frontier.sim/internal/sim"
	"frontier.sim/internal/travel"
	"frontier.sim/internal/world"
)

// SaveV1 is the .sim blob: everything not derivable from the parameters.
// The world itself regenerates from the seed; only its mutations are
// carried. The traffic ledger and route ports are rebuilt at load by
// replaying a new-route change per stored route.
type SaveV1 struct {
	Version int   `json:"version"`
	Micros  int64 `json:"micros"`

	Roads        []geometry.Edge `json:"roads,omitempty"`
	PlannedRoads []PlannedRoadV1 `json:"planned_roads,omitempty"`
	Crops        []CropV1        `json:"crops,omitempty"`
	Bridges      []bridges.Bridge `json:"bridges,omitempty"`

	Visibility  string `json:"visibility"`
	VisibleLand int    `json:"visible_land"`

	Settlements  []settlement.Settlement `json:"settlements,omitempty"`
	Avatars      []avatar.Avatar         `json:"avatars,omitempty"`
	SelectedName string                  `json:"selected_name,omitempty"`

	Instructions []sim.Instruction      `json:"instructions,omitempty"`
	BuildQueue   []sim.BuildInstruction `json:"build_queue,omitempty"`
	Routes       []RouteSetV1           `json:"routes,omitempty"`
	SimParams    sim.Params             `json:"sim_params"`
}

type PlannedRoadV1 struct {
	Edge geometry.Edge `json:"edge"`
	When int64         `json:"when"`
}

type CropV1 struct {
	Position geometry.Position `json:"position"`
	Rotated  bool              `json:"rotated,omitempty"`
}

type RouteSetV1 struct {
	Key    routes.RouteSetKey `json:"key"`
	Routes []RouteEntryV1     `json:"routes"`
}

type RouteEntryV1 struct {
	Key   routes.RouteKey `json:"key"`
	Route routes.Route    `json:"route"`
}

// Capture collects the save blob from a paused game.
func Capture(game *sim.Game, state *sim.State, avatars *avatar.Avatars) SaveV1 {
	save := SaveV1{
		Version:     1,
		Micros:      game.Micros,
		Visibility:  game.World.EncodeVisibility(),
		VisibleLand: game.VisibleLandPositions,
	}
	save.Instructions = append([]sim.Instruction(nil), state.Instructions...)
	save.BuildQueue = state.BuildQueue.Instructions()
	save.SimParams = state.Params

	game.World.ForEachCell(func(position geometry.Position, cell *world.Cell) {
		for _, to := range []geometry.Position{position.Add(geometry.Pos(1, 0)), position.Add(geometry.Pos(0, 1))} {
			if !game.World.InBounds(to) {
				continue
			}
			edge := geometry.NewEdge(position, to)
			if game.World.IsRoad(edge) {
				save.Roads = append(save.Roads, edge)
			} else if when := game.World.RoadPlanned(edge); when != nil {
				save.PlannedRoads = append(save.PlannedRoads, PlannedRoadV1{Edge: edge, When: *when})
			}
		}
		if cell.Object.Kind == world.ObjectCrop {
			save.Crops = append(save.Crops, CropV1{Position: position, Rotated: cell.Object.Rotated})
		}
	})

	// Theoretical crossings are rediscovered from the regenerated world;
	// only built bridges are mutations worth carrying.
	game.Bridges.ForEach(func(_ geometry.Edge, spans []*bridges.Bridge) {
		for _, bridge := range spans {
			if bridge.Kind == bridges.Built {
				save.Bridges = append(save.Bridges, *bridge)
			}
		}
	})

	for _, town := range sortedSettlements(game.Settlements) {
		save.Settlements = append(save.Settlements, *town)
	}

	if avatars != nil {
		if selected := avatars.Selected(); selected != nil {
			save.SelectedName = selected.Name
		}
		avatars.ForEach(func(av *avatar.Avatar) {
			save.Avatars = append(save.Avatars, *av)
		})
	}

	for setKey, routeSet := range state.Routes {
		set := RouteSetV1{Key: setKey}
		for key, route := range routeSet {
			set.Routes = append(set.Routes, RouteEntryV1{Key: key, Route: route})
		}
		sort.Slice(set.Routes, func(i, j int) bool {
			a, b := set.Routes[i].Key, set.Routes[j].Key
			if a.Destination.Y != b.Destination.Y {
				return a.Destination.Y < b.Destination.Y
			}
			return a.Destination.X < b.Destination.X
		})
		save.Routes = append(save.Routes, set)
	}
	sort.Slice(save.Routes, func(i, j int) bool {
		a, b := save.Routes[i].Key, save.Routes[j].Key
		if a.Settlement.Y != b.Settlement.Y {
			return a.Settlement.Y < b.Settlement.Y
		}
		if a.Settlement.X != b.Settlement.X {
			return a.Settlement.X < b.Settlement.X
		}
		return a.Resource < b.Resource
	})

	return save
}

// Apply replays the save blob onto a freshly generated game. Claims are
// not stored; every town queues a territory recomputation instead. The
// caller refreshes the pathfinders afterwards.
func Apply(save SaveV1, game *sim.Game, state *sim.State, avatars *avatar.Avatars) error {
	game.Micros = save.Micros

	game.World.AddRoads(save.Roads)
	for _, planned := range save.PlannedRoads {
		when := planned.When
		game.World.PlanRoad(planned.Edge, &when)
	}
	for _, crop := range save.Crops {
		game.World.MutCellUnsafe(crop.Position).Object = world.Crop(crop.Rotated)
	}
	for i := range save.Bridges {
		game.Bridges.Add(&save.Bridges[i])
	}

	if err := game.World.DecodeVisibility(save.Visibility); err != nil {
		return err
	}
	game.VisibleLandPositions = save.VisibleLand

	for i := range save.Settlements {
		town := save.Settlements[i]
		game.Settlements.Add(&town)
		if town.Class == settlement.ClassTown {
			game.Territory.AddController(town.Position)
		}
	}

	state.Instructions = append([]sim.Instruction(nil), save.Instructions...)
	for _, instruction := range save.BuildQueue {
		state.BuildQueue.Insert(instruction)
	}
	state.Params = save.SimParams

	for _, set := range save.Routes {
		routeSet := routes.RouteSet{}
		for _, entry := range set.Routes {
			routeSet[entry.Key] = entry.Route
			state.Traffic.Apply(routes.NewRoute(entry.Key, entry.Route))
			state.RouteToPorts[entry.Key] = portsAlong(game, entry.Route.Path)
		}
		state.Routes[set.Key] = routeSet
	}

	for i := range save.Settlements {
		if save.Settlements[i].Class == settlement.ClassTown {
			state.Push(sim.Instruction{
				Kind:     sim.InstructionGetTerritory,
				Position: save.Settlements[i].Position,
			})
		}
	}

	if avatars != nil {
		for i := range save.Avatars {
			av := save.Avatars[i]
			avatars.Add(&av)
		}
		if save.SelectedName != "" {
			avatars.Select(save.SelectedName)
		}
	}
	return nil
}

func portsAlong(game *sim.Game, path []geometry.Position) map[geometry.Position]bool {
	out := map[geometry.Position]bool{}
	for i := 0; i+1 < len(path); i++ {
		if port, ok := travel.CheckForPort(game.ModeFn, game.World, path[i], path[i+1]); ok {
			out[port] = true
		}
	}
	return out
}

func sortedSettlements(settlements settlement.Settlements) []*settlement.Settlement {
	out := make([]*settlement.Settlement, 0, len(settlements))
	for _, town := range settlements {
		out = append(out, town)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Position, out[j].Position
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})
	return out
}
