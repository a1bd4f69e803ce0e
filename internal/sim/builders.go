package sim

import (
	"frontier.sim/internal/bridges"
	"frontier.sim/internal/geometry"
	"frontier.sim/internal/travel"
	"frontier.sim/internal/world"
)

// Builder turns queued builds into world changes. CanBuild filters the
// kinds a builder accepts; Build receives a batch of accepted builds.
type Builder interface {
	CanBuild(build Build) bool
	Build(game *Game, builds []Build)
}

// BuildSim reacts to Build: drains the queue up to the current clock and
// hands the sorted batch to the builders. Consecutive builds accepted by
// the same builder arrive in one call.
type BuildSim struct {
	Builders []Builder
}

func (b BuildSim) Process(game *Game, state *State, instruction Instruction) {
	if instruction.Kind != InstructionBuild {
		return
	}
	instructions := state.BuildQueue.TakeInstructionsBefore(game.Micros)
	if len(instructions) == 0 {
		return
	}

	var batch []Build
	current := -1
	flush := func() {
		if current >= 0 && len(batch) > 0 {
			b.Builders[current].Build(game, batch)
		}
		batch = nil
	}
	for _, instruction := range instructions {
		index := b.builderIndex(instruction.What)
		if index != current {
			flush()
			current = index
		}
		if index >= 0 {
			batch = append(batch, instruction.What)
		}
	}
	flush()
}

func (b BuildSim) builderIndex(build Build) int {
	for i, builder := range b.Builders {
		if builder.CanBuild(build) {
			return i
		}
	}
	return -1
}

// RoadBuilder lays the queued road edges and reprices both pathfinders
// around them.
type RoadBuilder struct{}

func (RoadBuilder) CanBuild(build Build) bool { return build.Kind == BuildRoad }

func (RoadBuilder) Build(game *Game, builds []Build) {
	edges := make([]geometry.Edge, 0, len(builds))
	positionSet := map[geometry.Position]bool{}
	for _, build := range builds {
		edges = append(edges, build.Edge)
		positionSet[build.Edge.From()] = true
		positionSet[build.Edge.To()] = true
	}
	game.World.AddRoads(edges)

	positions := make([]geometry.Position, 0, len(positionSet))
	for position := range positionSet {
		positions = append(positions, position)
	}
	game.Pathfinders.WithPlannedRoads.UpdatePositions(game.World, positions)
	game.Pathfinders.WithoutPlannedRoads.UpdatePositions(game.World, positions)
}

// CropsBuilder plants crops on free tiles. Tiles that grew a settlement
// since the build was queued are left alone.
type CropsBuilder struct{}

func (CropsBuilder) CanBuild(build Build) bool { return build.Kind == BuildCrops }

func (CropsBuilder) Build(game *Game, builds []Build) {
	for _, build := range builds {
		if game.Settlements.Get(build.Position) != nil {
			continue
		}
		cell := game.World.GetCell(build.Position)
		if cell == nil || cell.Object.Kind != world.ObjectNone {
			continue
		}
		game.World.MutCellUnsafe(build.Position).Object = world.Crop(build.Rotated)
	}
}

// BridgeBuilder registers bridges and feeds their crossing durations to
// both pathfinders.
type BridgeBuilder struct {
	DurationFn bridges.DurationFn
}

func (BridgeBuilder) CanBuild(build Build) bool { return build.Kind == BuildBridge }

func (b BridgeBuilder) Build(game *Game, builds []Build) {
	for _, build := range builds {
		if build.Bridge == nil {
			continue
		}
		game.Bridges.Add(build.Bridge)
		for _, d := range b.edgeDurations(build.Bridge) {
			game.Pathfinders.WithPlannedRoads.SetEdgeDuration(d.From, d.To, d.Duration)
			game.Pathfinders.WithoutPlannedRoads.SetEdgeDuration(d.From, d.To, d.Duration)
		}
	}
}

func (b BridgeBuilder) edgeDurations(bridge *bridges.Bridge) []travel.EdgeDuration {
	fn := b.DurationFn
	if fn == (bridges.DurationFn{}) {
		fn = bridges.DefaultDurationFn()
	}
	return fn.TotalEdgeDurations(bridge)
}

// TownBuilder founds the queued towns: the settlement is registered, its
// position becomes a territory controller, and the town's first claims
// are computed straight away.
type TownBuilder struct{}

func (TownBuilder) CanBuild(build Build) bool { return build.Kind == BuildTown }

func (TownBuilder) Build(game *Game, builds []Build) {
	for _, build := range builds {
		if build.Settlement == nil {
			continue
		}
		if game.Settlements.Get(build.Position) != nil {
			continue
		}
		if game.Territory.WhoControlsTile(build.Position) != nil {
			continue
		}
		game.Settlements.Add(build.Settlement)
		game.Territory.AddController(build.Position)
	}
}
