// Package pathfinding answers shortest-path, closest-target and
// reachability queries over the world grid, with edge weights supplied by a
// travel duration provider.
package pathfinding

import (
	"time"

	"frontier.sim/internal/geometry"
	"frontier.sim/internal/travel"
	"frontier.sim/internal/world"
)

// Pathfinder holds a weighted graph over cell corners. It does not watch the
// world: callers refresh edges via UpdatePositions after world changes.
type Pathfinder struct {
	index    geometry.Index2D
	duration travel.Duration
	network  *network
}

func New(width, height int, duration travel.Duration) *Pathfinder {
	return &Pathfinder{
		index:    geometry.NewIndex2D(width, height),
		duration: duration,
		network:  newNetwork(width * height),
	}
}

// TravelDuration exposes the provider so callers can recompute edge weights
// consistently with the graph.
func (p *Pathfinder) TravelDuration() travel.Duration {
	return p.duration
}

func (p *Pathfinder) InBounds(position geometry.Position) bool {
	_, err := p.index.GetIndex(position)
	return err == nil
}

func (p *Pathfinder) nodeAt(position geometry.Position) int {
	node, err := p.index.GetIndex(position)
	if err != nil {
		panic(err)
	}
	return node
}

func (p *Pathfinder) nodesAt(positions []geometry.Position) []int {
	out := make([]int, len(positions))
	for i, position := range positions {
		out[i] = p.nodeAt(position)
	}
	return out
}

func (p *Pathfinder) positionsAt(nodes []int) []geometry.Position {
	var out []geometry.Position
	for _, node := range nodes {
		if position, err := p.index.GetPosition(node); err == nil {
			out = append(out, position)
		}
	}
	return out
}

func (p *Pathfinder) SetEdgeDuration(from, to geometry.Position, duration time.Duration) {
	fromNode, toNode := p.nodeAt(from), p.nodeAt(to)
	p.network.removeEdges(fromNode, toNode)
	p.network.addEdge(networkEdge{
		from: fromNode,
		to:   toNode,
		cost: uint64(duration.Milliseconds()),
	})
}

func (p *Pathfinder) RemoveEdge(from, to geometry.Position) {
	p.network.removeEdges(p.nodeAt(from), p.nodeAt(to))
}

// manhattanHeuristic under-estimates remaining cost as the smallest
// manhattan distance to any sink times the provider's minimum edge duration.
func (p *Pathfinder) manhattanHeuristic(to []geometry.Position) func(int) uint64 {
	minCost := uint64(p.duration.MinDuration().Milliseconds())
	return func(node int) uint64 {
		position, err := p.index.GetPosition(node)
		if err != nil {
			panic(err)
		}
		best := uint64(0)
		for i, sink := range to {
			distance := uint64(geometry.Manhattan(position, sink)) * minCost
			if i == 0 || distance < best {
				best = distance
			}
		}
		return best
	}
}

// FindPath returns a lowest-duration path from any source to any sink, or
// nil when unreachable. Ties are broken by insertion order.
func (p *Pathfinder) FindPath(from, to []geometry.Position) []geometry.Position {
	if len(from) == 0 || len(to) == 0 {
		return nil
	}
	path := p.network.findPath(p.nodesAt(from), p.nodesAt(to), p.manhattanHeuristic(to))
	if path == nil {
		return nil
	}
	return p.positionsAt(path)
}

// PositionsWithin maps every position reachable from the sources within the
// duration to its lowest travel duration.
func (p *Pathfinder) PositionsWithin(
	positions []geometry.Position,
	duration time.Duration,
) map[geometry.Position]time.Duration {
	out := map[geometry.Position]time.Duration{}
	for _, result := range p.network.nodesWithin(p.nodesAt(positions), uint64(duration.Milliseconds())) {
		position, err := p.index.GetPosition(result.node)
		if err != nil {
			continue
		}
		out[position] = time.Duration(result.cost) * time.Millisecond
	}
	return out
}

func (p *Pathfinder) InitTargets(name string) {
	p.network.initTargets(name)
}

func (p *Pathfinder) LoadTarget(name string, position geometry.Position, target bool) {
	p.network.loadTarget(name, p.nodeAt(position), target)
}

// ClosestTarget is one result of a ClosestTargets query.
type ClosestTarget struct {
	Position geometry.Position
	Path     []geometry.Position
	Duration time.Duration
}

// ClosestTargets returns the up-to-n nearest loaded targets of the named set
// in non-decreasing duration order.
func (p *Pathfinder) ClosestTargets(
	positions []geometry.Position,
	targets string,
	nClosest int,
) []ClosestTarget {
	var out []ClosestTarget
	for _, result := range p.network.closestLoadedTargets(p.nodesAt(positions), targets, nClosest) {
		position, err := p.index.GetPosition(result.node)
		if err != nil {
			continue
		}
		out = append(out, ClosestTarget{
			Position: position,
			Path:     p.positionsAt(result.path),
			Duration: time.Duration(result.cost) * time.Millisecond,
		})
	}
	return out
}

// LowestDuration sums current edge weights along the path; false when any
// edge is missing from the graph.
func (p *Pathfinder) LowestDuration(path []geometry.Position) (time.Duration, bool) {
	cost, ok := p.network.lowestCost(p.nodesAt(path))
	if !ok {
		return 0, false
	}
	return time.Duration(cost) * time.Millisecond, true
}

// UpdatePositions recomputes the weights of every directed edge incident on
// the given positions, keeping the graph coherent with the world.
func (p *Pathfinder) UpdatePositions(w *world.World, positions []geometry.Position) {
	for _, position := range positions {
		for _, edge := range travel.EdgeDurations(p.duration, w, position) {
			if edge.Passable {
				p.SetEdgeDuration(edge.From, edge.To, edge.Duration)
			} else {
				p.RemoveEdge(edge.From, edge.To)
			}
		}
	}
}

// Reset rebuilds every edge weight from the world, used after loading a
// save.
func (p *Pathfinder) Reset(w *world.World) {
	p.network = newNetwork(p.index.Indices())
	w.ForEachCell(func(position geometry.Position, _ *world.Cell) {
		for _, edge := range travel.EdgeDurations(p.duration, w, position) {
			if edge.Passable && edge.From == position {
				p.SetEdgeDuration(edge.From, edge.To, edge.Duration)
			}
		}
	})
}
