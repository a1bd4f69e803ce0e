package visibility

import (
	"testing"

	"frontier.sim/internal/geometry"
)

func flatElevations(width, height int) *geometry.Grid[float64] {
	return geometry.NewGrid[float64](width, height)
}

func TestCheckAndRevealIdempotent(t *testing.T) {
	handler := NewHandler(&Computer{HeadHeight: 0.01, MaxDistance: 3}, flatElevations(4, 4))
	origin := geometry.Position{X: 1, Y: 1}

	first := handler.CheckAndReveal([]geometry.Position{origin})
	if len(first) == 0 {
		t.Fatalf("first reveal returned nothing")
	}
	if !handler.Visited(origin) {
		t.Errorf("origin not marked visited")
	}

	second := handler.CheckAndReveal([]geometry.Position{origin})
	if len(second) != 0 {
		t.Errorf("repeat reveal returned %d positions", len(second))
	}
}

func TestCheckAndRevealSkipsOutOfBounds(t *testing.T) {
	handler := NewHandler(&Computer{MaxDistance: 3}, flatElevations(4, 4))

	got := handler.CheckAndReveal([]geometry.Position{{X: 9, Y: 9}})
	if len(got) != 0 {
		t.Errorf("out-of-bounds visit revealed %d positions", len(got))
	}
}

func TestDisabledHandlerRevealsNothing(t *testing.T) {
	handler := NewHandler(&Computer{HeadHeight: 0.01, MaxDistance: 3}, flatElevations(4, 4))
	handler.Disable()

	if got := handler.CheckAndReveal([]geometry.Position{{X: 1, Y: 1}}); got != nil {
		t.Errorf("disabled handler revealed %d positions", len(got))
	}
	if handler.Active() {
		t.Errorf("handler still active")
	}
}

func TestRevealAllFiresOnce(t *testing.T) {
	handler := NewHandler(&Computer{MaxDistance: 3}, flatElevations(4, 4))

	if handler.RevealAll() {
		t.Fatalf("active handler should not reveal all")
	}
	handler.Disable()
	if !handler.RevealAll() {
		t.Fatalf("first reveal-all should fire")
	}
	if handler.RevealAll() {
		t.Errorf("second reveal-all should be a no-op")
	}
}
