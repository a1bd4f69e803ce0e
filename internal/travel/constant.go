package travel

import (
	"time"

	"frontier.sim/internal/geometry"
	"frontier.sim/internal/world"
)

// Constant charges the same duration for every edge.
type Constant struct {
	duration time.Duration
}

func NewConstant(duration time.Duration) *Constant {
	return &Constant{duration: duration}
}

func (c *Constant) GetDuration(_ *world.World, _, _ geometry.Position) (time.Duration, bool) {
	return c.duration, true
}

func (c *Constant) MinDuration() time.Duration { return c.duration }
func (c *Constant) MaxDuration() time.Duration { return c.duration }
