package travel

import (
	"time"

	"frontier.sim/internal/geometry"
	"frontier.sim/internal/world"
)

// EdgeDuration is one directed edge weight. Passable is false where the
// provider rejects the edge; callers remove such edges from their graphs.
type EdgeDuration struct {
	From     geometry.Position
	To       geometry.Position
	Duration time.Duration
	Passable bool
}

// EdgeDurations evaluates all directed edges incident on position, up to
// eight: four out, four in. Used to refresh pathfinder graphs after a world
// change at the position.
func EdgeDurations(d Duration, w *world.World, position geometry.Position) []EdgeDuration {
	var out []EdgeDuration
	for _, neighbour := range w.Neighbours(position) {
		duration, ok := d.GetDuration(w, position, neighbour)
		out = append(out, EdgeDuration{From: position, To: neighbour, Duration: duration, Passable: ok})
		duration, ok = d.GetDuration(w, neighbour, position)
		out = append(out, EdgeDuration{From: neighbour, To: position, Duration: duration, Passable: ok})
	}
	return out
}
