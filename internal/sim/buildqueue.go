package sim

import (
	"sort"

	"frontier.sim/internal/bridges"
	"frontier.sim/internal/geometry"
	"frontier.sim/internal/settlement"
)

type BuildKind string

const (
	BuildRoad   BuildKind = "road"
	BuildCrops  BuildKind = "crops"
	BuildBridge BuildKind = "bridge"
	BuildTown   BuildKind = "town"
)

// Build is one thing to construct. Kind selects the variant.
type Build struct {
	Kind       BuildKind              `json:"kind"`
	Edge       geometry.Edge          `json:"edge,omitempty"`
	Position   geometry.Position      `json:"position,omitempty"`
	Rotated    bool                   `json:"rotated,omitempty"`
	Bridge     *bridges.Bridge        `json:"bridge,omitempty"`
	Settlement *settlement.Settlement `json:"settlement,omitempty"`
}

func RoadBuild(edge geometry.Edge) Build {
	return Build{Kind: BuildRoad, Edge: edge}
}

func CropsBuild(position geometry.Position, rotated bool) Build {
	return Build{Kind: BuildCrops, Position: position, Rotated: rotated}
}

func BridgeBuild(bridge *bridges.Bridge) Build {
	return Build{Kind: BuildBridge, Bridge: bridge}
}

func TownBuild(s *settlement.Settlement) Build {
	return Build{Kind: BuildTown, Position: s.Position, Settlement: s}
}

// BuildKey is the superseding key: re-queuing a build for the same key
// replaces the prior instruction. Roads and bridges key on their edge,
// crops and towns on their position.
type BuildKey struct {
	Kind     BuildKind
	Edge     geometry.Edge
	Position geometry.Position
}

func (b Build) Key() BuildKey {
	switch b.Kind {
	case BuildRoad:
		return BuildKey{Kind: BuildRoad, Edge: b.Edge}
	case BuildBridge:
		return BuildKey{Kind: BuildBridge, Edge: b.Bridge.TotalEdge()}
	default:
		return BuildKey{Kind: b.Kind, Position: b.Position}
	}
}

// BuildInstruction schedules a build for a wallclock micros.
type BuildInstruction struct {
	What Build `json:"what"`
	When int64 `json:"when"`
}

// BuildQueue holds at most one pending instruction per build key; the
// earliest When wins.
type BuildQueue struct {
	queue map[BuildKey]BuildInstruction
}

func NewBuildQueue() *BuildQueue {
	return &BuildQueue{queue: map[BuildKey]BuildInstruction{}}
}

func (q *BuildQueue) Insert(instruction BuildInstruction) {
	key := instruction.What.Key()
	if existing, ok := q.queue[key]; ok && existing.When <= instruction.When {
		return
	}
	q.queue[key] = instruction
}

func (q *BuildQueue) Remove(key BuildKey) {
	delete(q.queue, key)
}

func (q *BuildQueue) Get(key BuildKey) (BuildInstruction, bool) {
	instruction, ok := q.queue[key]
	return instruction, ok
}

func (q *BuildQueue) Len() int {
	return len(q.queue)
}

// TakeInstructionsBefore removes and returns every instruction due at or
// before micros, sorted by When.
func (q *BuildQueue) TakeInstructionsBefore(micros int64) []BuildInstruction {
	var out []BuildInstruction
	for key, instruction := range q.queue {
		if instruction.When <= micros {
			out = append(out, instruction)
			delete(q.queue, key)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].When < out[j].When })
	return out
}

// Instructions returns the pending instructions in When order, for
// serialization.
func (q *BuildQueue) Instructions() []BuildInstruction {
	out := make([]BuildInstruction, 0, len(q.queue))
	for _, instruction := range q.queue {
		out = append(out, instruction)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].When < out[j].When })
	return out
}
