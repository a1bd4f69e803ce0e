// Package travel defines edge-weight providers for movement between
// neighbouring cell corners. A provider answers how long an edge takes to
// traverse, or reports the edge impassable.
package travel

import (
	"fmt"
	"math"
	"time"

	"frontier.sim/internal/geometry"
	"frontier.sim/internal/world"
)

// Duration is a pluggable edge-weight model. GetDuration returns false when
// the edge is impassable. Implementations must be deterministic given the
// world state and keep every returned duration within
// [MinDuration, MaxDuration].
type Duration interface {
	GetDuration(w *world.World, from, to geometry.Position) (time.Duration, bool)
	MinDuration() time.Duration
	MaxDuration() time.Duration
}

// GetCost scales an edge duration onto 0..255 for compact storage in the
// pathfinder graph. Panics if the provider breaks its MaxDuration contract.
func GetCost(d Duration, w *world.World, from, to geometry.Position) (uint8, bool) {
	duration, ok := d.GetDuration(w, from, to)
	if !ok {
		return 0, false
	}
	millis := float64(duration.Milliseconds())
	maxMillis := float64(d.MaxDuration().Milliseconds())
	if millis < 0 || millis > maxMillis {
		panic(fmt.Sprintf("duration %vms outside expected range [0, %vms]", millis, maxMillis))
	}
	scale := geometry.NewScale(0, maxMillis, 0, 255)
	return uint8(math.Round(scale.Scale(millis))), true
}
