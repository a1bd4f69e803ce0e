package travel

import (
	"testing"
	"time"

	"frontier.sim/internal/geometry"
	"frontier.sim/internal/world"
)

func flatWorld(width, height int, elevation, seaLevel float64) *world.World {
	elevations := geometry.NewGrid[float64](width, height)
	elevations.ForEach(func(_ geometry.Position, e *float64) { *e = elevation })
	return world.New(elevations, seaLevel)
}

type fixedDuration struct {
	millis    int64
	maxMillis int64
}

func (f *fixedDuration) GetDuration(_ *world.World, _, _ geometry.Position) (time.Duration, bool) {
	return time.Duration(f.millis) * time.Millisecond, true
}

func (f *fixedDuration) MinDuration() time.Duration { return 0 }
func (f *fixedDuration) MaxDuration() time.Duration {
	return time.Duration(f.maxMillis) * time.Millisecond
}

func TestGetCost_ScalesOntoByte(t *testing.T) {
	w := flatWorld(3, 3, 1.0, 0.5)
	cost, ok := GetCost(&fixedDuration{millis: 1, maxMillis: 4}, w, geometry.Pos(0, 0), geometry.Pos(1, 0))
	if !ok || cost != 64 {
		t.Errorf("cost = %d, %t; want 64, true", cost, ok)
	}
}

func TestGetCost_MaxDurationIsFullByte(t *testing.T) {
	w := flatWorld(3, 3, 1.0, 0.5)
	cost, ok := GetCost(&fixedDuration{millis: 4, maxMillis: 4}, w, geometry.Pos(0, 0), geometry.Pos(1, 0))
	if !ok || cost != 255 {
		t.Errorf("cost = %d, %t; want 255, true", cost, ok)
	}
}

func TestGetCost_PanicsOutsideRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	w := flatWorld(3, 3, 1.0, 0.5)
	GetCost(&fixedDuration{millis: 5, maxMillis: 4}, w, geometry.Pos(0, 0), geometry.Pos(1, 0))
}
