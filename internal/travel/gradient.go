package travel

import (
	"math"
	"time"

	"frontier.sim/internal/geometry"
	"frontier.sim/internal/world"
)

// Gradient maps the rise along an edge linearly onto milliseconds. Rises
// outside the scale's input range are impassable.
type Gradient struct {
	riseToMillis    geometry.Scale
	useAbsoluteRise bool
}

func NewGradient(riseToMillis geometry.Scale, useAbsoluteRise bool) *Gradient {
	return &Gradient{riseToMillis: riseToMillis, useAbsoluteRise: useAbsoluteRise}
}

func (g *Gradient) GetDuration(w *world.World, from, to geometry.Position) (time.Duration, bool) {
	rise, ok := w.GetRise(from, to)
	if !ok {
		return 0, false
	}
	if g.useAbsoluteRise {
		rise = math.Abs(rise)
	}
	if !g.riseToMillis.Inside(rise) {
		return 0, false
	}
	millis := g.riseToMillis.Scale(rise)
	return time.Duration(millis) * time.Millisecond, true
}

func (g *Gradient) MinDuration() time.Duration {
	min, _ := g.riseToMillis.OutRange()
	return time.Duration(min) * time.Millisecond
}

func (g *Gradient) MaxDuration() time.Duration {
	_, max := g.riseToMillis.OutRange()
	return time.Duration(max) * time.Millisecond
}
