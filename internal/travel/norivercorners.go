package travel

import (
	"time"

	"frontier.sim/internal/geometry"
	"frontier.sim/internal/world"
)

// NoRiverCorners wraps another provider and rejects edges touching a river
// corner, where two river axes meet and a crossing would be ambiguous.
type NoRiverCorners struct {
	base Duration
}

func NewNoRiverCorners(base Duration) *NoRiverCorners {
	return &NoRiverCorners{base: base}
}

func riverCorner(w *world.World, position geometry.Position) bool {
	cell := w.GetCell(position)
	if cell == nil {
		return true
	}
	return cell.River.Corner()
}

func (n *NoRiverCorners) GetDuration(w *world.World, from, to geometry.Position) (time.Duration, bool) {
	if riverCorner(w, from) || riverCorner(w, to) {
		return 0, false
	}
	return n.base.GetDuration(w, from, to)
}

func (n *NoRiverCorners) MinDuration() time.Duration { return n.base.MinDuration() }
func (n *NoRiverCorners) MaxDuration() time.Duration { return n.base.MaxDuration() }
