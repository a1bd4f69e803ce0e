package travel

import (
	"testing"

	"frontier.sim/internal/geometry"
	"frontier.sim/internal/world"
)

// 4x4 world: sea along x = 3 except the south-east corner, a river of
// growing width along y = 1, a road and a planned road in the south.
func modeWorld() *world.World {
	elevations := geometry.NewGrid[float64](4, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			e := 1.0
			if x == 3 && y < 3 {
				e = 0.0
			}
			elevations.Set(geometry.Pos(x, y), e)
		}
	}
	w := world.New(elevations, 0.5)

	widths := []float64{0.1, 0.2, 0.3}
	for x, width := range widths {
		w.AddRiver(geometry.Pos(x, 1), world.Junction{
			Horizontal: world.Junction1D{Width: width, From: x < 2, To: x > 0},
		})
	}

	w.SetRoad(geometry.NewEdge(geometry.Pos(0, 3), geometry.Pos(1, 3)), true)
	when := int64(123)
	w.PlanRoad(geometry.NewEdge(geometry.Pos(1, 3), geometry.Pos(2, 3)), &when)
	return w
}

func TestModeBetween(t *testing.T) {
	w := modeWorld()
	fn := NewAvatarModeFn(0.15, true)

	cases := []struct {
		name     string
		from, to geometry.Position
		want     Mode
	}{
		{"sea", geometry.Pos(3, 0), geometry.Pos(3, 1), ModeSea},
		{"road", geometry.Pos(0, 3), geometry.Pos(1, 3), ModeRoad},
		{"planned road", geometry.Pos(1, 3), geometry.Pos(2, 3), ModePlannedRoad},
		{"navigable river", geometry.Pos(1, 1), geometry.Pos(2, 1), ModeRiver},
		{"narrow river", geometry.Pos(0, 1), geometry.Pos(1, 1), ModeStream},
		{"plain ground", geometry.Pos(0, 0), geometry.Pos(1, 0), ModeWalk},
	}
	for _, c := range cases {
		got, ok := fn.ModeBetween(w, c.from, c.to)
		if !ok || got != c.want {
			t.Errorf("%s: mode = %v, %t; want %v, true", c.name, got, ok, c.want)
		}
	}

	if _, ok := fn.ModeBetween(w, geometry.Pos(3, 3), geometry.Pos(4, 3)); ok {
		t.Error("expected no mode off the world")
	}
}

func TestModeBetween_PlannedRoadsIgnored(t *testing.T) {
	w := modeWorld()
	fn := NewAvatarModeFn(0.15, false)
	got, ok := fn.ModeBetween(w, geometry.Pos(1, 3), geometry.Pos(2, 3))
	if !ok || got != ModeWalk {
		t.Errorf("mode = %v, %t; want WALK, true", got, ok)
	}
}

func TestModesHere(t *testing.T) {
	w := modeWorld()
	fn := NewAvatarModeFn(0.15, true)

	cases := []struct {
		name     string
		position geometry.Position
		want     []Mode
	}{
		{"sea", geometry.Pos(3, 0), []Mode{ModeSea}},
		{"road", geometry.Pos(0, 3), []Mode{ModeRoad}},
		{"navigable river", geometry.Pos(2, 1), []Mode{ModeRiver}},
		{"narrow river", geometry.Pos(0, 1), []Mode{ModeStream}},
		{"plain ground", geometry.Pos(0, 0), []Mode{ModeWalk}},
	}
	for _, c := range cases {
		got := fn.ModesHere(w, c.position)
		if len(got) != len(c.want) {
			t.Errorf("%s: modes = %v, want %v", c.name, got, c.want)
			continue
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Errorf("%s: modes = %v, want %v", c.name, got, c.want)
			}
		}
	}

	if got := fn.ModesHere(w, geometry.Pos(9, 9)); got != nil {
		t.Errorf("expected no modes off the world, got %v", got)
	}
}

type stubModeFn struct {
	modes map[geometry.Position][]Mode
}

func (s *stubModeFn) ModeBetween(_ *world.World, _, _ geometry.Position) (Mode, bool) {
	return "", false
}

func (s *stubModeFn) ModesHere(_ *world.World, position geometry.Position) []Mode {
	return s.modes[position]
}

func modeChangeCase(t *testing.T, from, to []Mode, want bool) {
	t.Helper()
	w := flatWorld(3, 3, 1.0, 0.5)
	fn := &stubModeFn{modes: map[geometry.Position][]Mode{
		geometry.Pos(0, 0): from,
		geometry.Pos(1, 1): to,
	}}
	if got := ModeChange(fn, w, geometry.Pos(0, 0), geometry.Pos(1, 1)); got != want {
		t.Errorf("ModeChange(%v, %v) = %t, want %t", from, to, got, want)
	}
	if got := ModeChange(fn, w, geometry.Pos(1, 1), geometry.Pos(0, 0)); got != want {
		t.Errorf("ModeChange(%v, %v) reversed = %t, want %t", to, from, got, want)
	}
}

func TestModeChange(t *testing.T) {
	modeChangeCase(t, []Mode{ModeWalk}, []Mode{ModeWalk}, false)
	modeChangeCase(t, []Mode{ModeWalk}, []Mode{ModeSea}, true)
	modeChangeCase(t, []Mode{ModeWalk}, []Mode{ModeWalk, ModeSea}, false)
	modeChangeCase(t, []Mode{ModeWalk}, nil, true)
	modeChangeCase(t, []Mode{ModeSea}, []Mode{ModeSea}, false)
	modeChangeCase(t, []Mode{ModeSea}, []Mode{ModeWalk, ModeSea}, false)
	modeChangeCase(t, []Mode{ModeWalk, ModeSea}, []Mode{ModeWalk, ModeSea}, false)
	modeChangeCase(t, nil, nil, false)
}

func checkForPortCase(t *testing.T, from, to []Mode, wantPort geometry.Position, wantOK bool) {
	t.Helper()
	w := flatWorld(3, 3, 1.0, 0.5)
	fn := &stubModeFn{modes: map[geometry.Position][]Mode{
		geometry.Pos(0, 0): from,
		geometry.Pos(1, 1): to,
	}}
	for _, dir := range [2][2]geometry.Position{
		{geometry.Pos(0, 0), geometry.Pos(1, 1)},
		{geometry.Pos(1, 1), geometry.Pos(0, 0)},
	} {
		port, ok := CheckForPort(fn, w, dir[0], dir[1])
		if ok != wantOK || (ok && port != wantPort) {
			t.Errorf("CheckForPort(%v, %v) = %v, %t; want %v, %t", from, to, port, ok, wantPort, wantOK)
		}
	}
}

func TestCheckForPort(t *testing.T) {
	checkForPortCase(t, []Mode{ModeWalk}, []Mode{ModeWalk}, geometry.Position{}, false)
	checkForPortCase(t, []Mode{ModeWalk}, []Mode{ModeSea}, geometry.Pos(0, 0), true)
	checkForPortCase(t, []Mode{ModeWalk}, []Mode{ModeWalk, ModeSea}, geometry.Pos(0, 0), true)
	checkForPortCase(t, []Mode{ModeWalk}, nil, geometry.Position{}, false)
	checkForPortCase(t, []Mode{ModeSea}, []Mode{ModeSea}, geometry.Position{}, false)
	checkForPortCase(t, []Mode{ModeSea}, []Mode{ModeWalk, ModeSea}, geometry.Position{}, false)
	checkForPortCase(t, nil, nil, geometry.Position{}, false)
}
