// Package bootstrap assembles a runnable game: generated world, seeded
// homelands, theoretical crossings, pathfinders and the simulation driver.
package bootstrap

import (
	"fmt"
	"math/rand"
	"os"

	"frontier.sim/internal/artist"
	"frontier.sim/internal/avatar"
	"frontier.sim/internal/bridges"
	"frontier.sim/internal/geometry"
	"frontier.sim/internal/params"
	"frontier.sim/internal/pathfinding"
	"frontier.sim/internal/persistence/snapshot"
	"frontier.sim/internal/settlement"
	"frontier.sim/internal/sim"
	"frontier.sim/internal/territory"
	"frontier.sim/internal/travel"
	"frontier.sim/internal/visibility"
	"frontier.sim/internal/world"
	"frontier.sim/internal/worldgen"
)

// maxCrossingSpan bounds how many water cells a theoretical bridge may
// jump at init.
const maxCrossingSpan = 4

// Artifacts is everything a fresh or loaded game needs to run.
type Artifacts struct {
	Game       *sim.Game
	State      *sim.State
	Simulation *sim.Simulation
	Avatars    *avatar.Avatars
	Controls   avatar.Controls
}

// New generates the world from the parameters and assembles the game
// around it. The same parameters always produce the same world.
func New(p params.Params) (*Artifacts, error) {
	w, resources := worldgen.Generate(p.WorldGen)
	width, height := w.Width(), w.Height()

	elevations := geometry.NewGrid[float64](width, height)
	w.ForEachCell(func(position geometry.Position, cell *world.Cell) {
		elevations.Set(position, cell.Elevation)
	})

	withPlanned := pathfinding.NewService(pathfinding.New(width, height, travel.NewAvatarWithPlannedRoads(p.Avatar)))
	withoutPlanned := pathfinding.NewService(pathfinding.New(width, height, travel.NewAvatarIgnoringPlannedRoads(p.Avatar)))
	withPlanned.Reset(w)
	withoutPlanned.Reset(w)

	game := &sim.Game{
		World:       w,
		Resources:   resources,
		Settlements: settlement.Settlements{},
		Nations:     settlement.NewNations(settlement.NationDescriptions()),
		Territory:   territory.New(width, height),
		Bridges:     bridges.NewBridges(),
		Pathfinders: pathfinding.Pathfinders{
			WithPlannedRoads:    withPlanned,
			WithoutPlannedRoads: withoutPlanned,
		},
		Visibility: visibility.NewHandler(visibility.DefaultComputer(), elevations),
		ModeFn:     travel.NewAvatarModeFn(p.Avatar.MinRiverWidth, true),
	}

	discoverCrossings(game)
	game.InitResourceTargets()

	rng := rand.New(rand.NewSource(p.Seed))
	homelands, err := seedHomelands(game, p, rng)
	if err != nil {
		return nil, err
	}

	if p.RevealAll {
		game.Visibility.Disable()
		if game.Visibility.RevealAll() {
			game.RevealAll()
		}
	} else {
		game.RevealPositions(game.Visibility.CheckAndReveal(homelands))
	}

	builders := []sim.Builder{
		sim.RoadBuilder{},
		sim.BridgeBuilder{DurationFn: p.BridgeDuration},
		sim.CropsBuilder{},
		sim.TownBuilder{},
	}
	state := sim.NewState(width, height, p.Sim)
	simulation := sim.NewSimulation(game, state, sim.Processors(builders, p.AutoRoadDuration()))

	inputs := avatar.JourneyInputs{
		World:          w,
		TravelDuration: travel.NewAvatarIgnoringPlannedRoads(p.Avatar),
		ModeFn:         game.ModeFn,
		Bridges:        game.Bridges,
		BridgeDuration: p.BridgeDuration,
	}
	avatars := avatar.NewAvatars()
	avatars.Add(&avatar.Avatar{
		Name:    "explorer",
		Journey: avatar.Stationary(w, homelands[0], avatar.RotationUp, avatar.VehicleNone, 0),
	})
	avatars.Select("explorer")

	return &Artifacts{
		Game:       game,
		State:      state,
		Simulation: simulation,
		Avatars:    avatars,
		Controls:   avatar.Controls{Inputs: inputs},
	}, nil
}

// Load rebuilds a saved game: the world regenerates from the stored
// parameters, then the save blob replays its mutations on top.
func Load(paths snapshot.Paths) (*Artifacts, params.Params, *artist.Labels, error) {
	p, err := params.Load(paths.Parameters())
	if err != nil {
		return nil, params.Params{}, nil, err
	}
	artifacts, err := New(p)
	if err != nil {
		return nil, params.Params{}, nil, err
	}

	var save snapshot.SaveV1
	if err := snapshot.Read(paths.Sim(), &save); err != nil {
		return nil, params.Params{}, nil, err
	}
	if err := snapshot.Apply(save, artifacts.Game, artifacts.State, artifacts.Avatars); err != nil {
		return nil, params.Params{}, nil, err
	}

	// Roads and built bridges changed the travel graph; reprice both
	// pathfinders and reload the resource target sets.
	game := artifacts.Game
	game.Pathfinders.WithPlannedRoads.Reset(game.World)
	game.Pathfinders.WithoutPlannedRoads.Reset(game.World)
	game.InitResourceTargets()
	game.Bridges.ForEach(func(_ geometry.Edge, spans []*bridges.Bridge) {
		for _, bridge := range spans {
			if bridge.Kind != bridges.Built {
				continue
			}
			for _, d := range p.BridgeDuration.TotalEdgeDurations(bridge) {
				game.Pathfinders.WithPlannedRoads.SetEdgeDuration(d.From, d.To, d.Duration)
				game.Pathfinders.WithoutPlannedRoads.SetEdgeDuration(d.From, d.To, d.Duration)
			}
		}
	})

	labels := artist.NewLabels()
	if err := snapshot.Read(paths.Labels(), labels); err != nil {
		if !os.IsNotExist(err) {
			return nil, params.Params{}, nil, err
		}
	}
	return artifacts, p, labels, nil
}

// seedHomelands founds one homeland per nation slot on spread-out coastal
// tiles.
func seedHomelands(game *sim.Game, p params.Params, rng *rand.Rand) ([]geometry.Position, error) {
	candidates := coastalPositions(game.World)
	if len(candidates) == 0 {
		return nil, fmt.Errorf("world has no coastline")
	}
	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	count := p.Homelands
	descriptions := settlement.NationDescriptions()
	if count > len(descriptions) {
		count = len(descriptions)
	}
	separation := game.World.Width() / 8

	chosen := spreadOut(candidates, count, separation)
	if len(chosen) < count {
		// Crowded coastline: fill the remaining slots without the
		// separation requirement.
		chosen = spreadOut(candidates, count, 0)
	}

	var positions []geometry.Position
	for i, position := range chosen {
		nation := descriptions[i%len(descriptions)].Name
		game.Settlements.Add(&settlement.Settlement{
			Position:    position,
			Class:       settlement.ClassHomeland,
			Name:        game.Nations[nation].GetTownName(),
			Nation:      nation,
			GapHalfLife: p.HomelandDistance(),
		})
		positions = append(positions, position)
	}
	if len(positions) == 0 {
		return nil, fmt.Errorf("no homeland positions found")
	}
	return positions, nil
}

func coastalPositions(w *world.World) []geometry.Position {
	var out []geometry.Position
	w.ForEachCell(func(position geometry.Position, _ *world.Cell) {
		if w.IsSea(position) {
			return
		}
		for _, neighbour := range w.Neighbours(position) {
			if w.IsSea(neighbour) {
				out = append(out, position)
				return
			}
		}
	})
	return out
}

func spreadOut(candidates []geometry.Position, count, separation int) []geometry.Position {
	var chosen []geometry.Position
	for _, candidate := range candidates {
		if len(chosen) == count {
			break
		}
		tooClose := false
		for _, other := range chosen {
			if chebyshev(candidate, other) < separation {
				tooClose = true
				break
			}
		}
		if !tooClose {
			chosen = append(chosen, candidate)
		}
	}
	return chosen
}

func chebyshev(a, b geometry.Position) int {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	if dy > dx {
		return dy
	}
	return dx
}

// discoverCrossings finds straight land-water-land runs and registers a
// theoretical bridge over each, so builders can later price them. Sea
// crossings get platform end piers, which the port check relies on.
func discoverCrossings(game *sim.Game) {
	w := game.World
	directions := []geometry.Position{geometry.Pos(1, 0), geometry.Pos(0, 1)}
	w.ForEachCell(func(from geometry.Position, _ *world.Cell) {
		if isWater(w, from) {
			return
		}
		for _, direction := range directions {
			registerCrossing(game, from, direction)
		}
	})
}

func registerCrossing(game *sim.Game, from, direction geometry.Position) {
	w := game.World
	to := from.Add(direction)
	span := 0
	overSea := false
	for w.InBounds(to) && isWater(w, to) && span < maxCrossingSpan {
		if w.IsSea(to) {
			overSea = true
		}
		to = to.Add(direction)
		span++
	}
	if span == 0 || !w.InBounds(to) || isWater(w, to) {
		return
	}
	var piers []bridges.Pier
	for position := from; ; position = position.Add(direction) {
		cell := w.GetCell(position)
		piers = append(piers, bridges.Pier{
			Position:  position,
			Elevation: cell.Elevation,
			Platform:  overSea && (position == from || position == to),
		})
		if position == to {
			break
		}
	}
	bridge, err := bridges.Bridge{Piers: piers, Kind: bridges.Theoretical}.Validate()
	if err != nil {
		return
	}
	game.Bridges.Add(&bridge)
}

func isWater(w *world.World, position geometry.Position) bool {
	if w.IsSea(position) {
		return true
	}
	cell := w.GetCell(position)
	return cell != nil && cell.River.Here()
}
