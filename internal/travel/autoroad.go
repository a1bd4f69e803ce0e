package travel

import (
	"time"

	"frontier.sim/internal/geometry"
	"frontier.sim/internal/world"
)

// AutoRoad is the road builder's cost model. Traversing an existing road
// uses the road provider; everywhere else the off-road provider plus a
// construction penalty applies. Edges into the sea, touching river corners,
// or running along a river cannot take a road.
type AutoRoad struct {
	offRoad Duration
	road    Duration
	penalty time.Duration
}

func NewAutoRoad(offRoad, road Duration, penalty time.Duration) *AutoRoad {
	return &AutoRoad{offRoad: offRoad, road: road, penalty: penalty}
}

func riverHere(w *world.World, position geometry.Position) bool {
	cell := w.GetCell(position)
	return cell != nil && cell.River.Here()
}

func (a *AutoRoad) GetDuration(w *world.World, from, to geometry.Position) (time.Duration, bool) {
	if w.GetCell(from) == nil || w.GetCell(to) == nil {
		return 0, false
	}
	if w.IsSea(from) || w.IsSea(to) {
		return 0, false
	}
	if riverCorner(w, from) || riverCorner(w, to) {
		return 0, false
	}
	if riverHere(w, from) && riverHere(w, to) {
		return 0, false
	}
	if w.IsRoad(geometry.NewEdge(from, to)) {
		return a.road.GetDuration(w, from, to)
	}
	duration, ok := a.offRoad.GetDuration(w, from, to)
	if !ok {
		return 0, false
	}
	return duration + a.penalty, true
}

func (a *AutoRoad) MinDuration() time.Duration {
	return a.road.MinDuration()
}

func (a *AutoRoad) MaxDuration() time.Duration {
	max := a.offRoad.MaxDuration() + a.penalty
	if roadMax := a.road.MaxDuration(); roadMax > max {
		max = roadMax
	}
	return max
}
