package pathfinding

import (
	"reflect"
	"testing"
	"time"

	"frontier.sim/internal/geometry"
	"frontier.sim/internal/world"
)

// elevationDuration charges each edge the destination cell's elevation in
// milliseconds, 1ms on roads, and rejects flat (zero elevation) cells.
type elevationDuration struct{}

func (elevationDuration) GetDuration(w *world.World, from, to geometry.Position) (time.Duration, bool) {
	cell := w.GetCell(to)
	if cell == nil {
		return 0, false
	}
	if w.IsRoad(geometry.NewEdge(from, to)) {
		return time.Millisecond, true
	}
	if cell.Elevation != 0 {
		return time.Duration(cell.Elevation) * time.Millisecond, true
	}
	return 0, false
}

func (elevationDuration) MinDuration() time.Duration { return time.Millisecond }
func (elevationDuration) MaxDuration() time.Duration { return 4 * time.Millisecond }

func testWorld() *world.World {
	elevations := geometry.NewGrid[float64](3, 3)
	rows := [3][3]float64{
		{4, 2, 0},
		{3, 3, 2},
		{2, 3, 4},
	}
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			elevations.Set(geometry.Pos(x, y), rows[y][x])
		}
	}
	return world.New(elevations, 0.5)
}

func testPathfinder() (*Pathfinder, *world.World) {
	w := testWorld()
	p := New(w.Width(), w.Height(), elevationDuration{})
	p.Reset(w)
	return p, w
}

func path(positions ...geometry.Position) []geometry.Position { return positions }

func TestFindPath(t *testing.T) {
	p, _ := testPathfinder()
	got := p.FindPath(path(geometry.Pos(2, 2)), path(geometry.Pos(1, 0)))
	want := path(geometry.Pos(2, 2), geometry.Pos(2, 1), geometry.Pos(1, 1), geometry.Pos(1, 0))
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FindPath = %v, want %v", got, want)
	}
}

func TestFindPath_Impossible(t *testing.T) {
	p, _ := testPathfinder()
	if got := p.FindPath(path(geometry.Pos(2, 2)), path(geometry.Pos(2, 0))); got != nil {
		t.Errorf("FindPath to unreachable cell = %v, want nil", got)
	}
}

func TestFindPath_ZeroLength(t *testing.T) {
	p, _ := testPathfinder()
	if got := p.FindPath(path(geometry.Pos(2, 2)), path(geometry.Pos(2, 2))); got != nil {
		t.Errorf("FindPath to self = %v, want nil", got)
	}
}

func TestFindPath_MultipleSources(t *testing.T) {
	p, _ := testPathfinder()
	got := p.FindPath(path(geometry.Pos(0, 0), geometry.Pos(1, 0)), path(geometry.Pos(1, 2)))
	want := path(geometry.Pos(1, 0), geometry.Pos(1, 1), geometry.Pos(1, 2))
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FindPath = %v, want %v", got, want)
	}
}

func TestFindPath_MultipleSinks(t *testing.T) {
	p, _ := testPathfinder()
	got := p.FindPath(path(geometry.Pos(0, 0)), path(geometry.Pos(2, 1), geometry.Pos(0, 2)))
	want := path(geometry.Pos(0, 0), geometry.Pos(0, 1), geometry.Pos(0, 2))
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FindPath = %v, want %v", got, want)
	}
}

func TestFindPath_EmptySets(t *testing.T) {
	p, _ := testPathfinder()
	if got := p.FindPath(nil, path(geometry.Pos(1, 0))); got != nil {
		t.Errorf("FindPath with no sources = %v, want nil", got)
	}
	if got := p.FindPath(path(geometry.Pos(1, 0)), nil); got != nil {
		t.Errorf("FindPath with no sinks = %v, want nil", got)
	}
}

func TestPositionsWithin(t *testing.T) {
	p, _ := testPathfinder()
	got := p.PositionsWithin(path(geometry.Pos(0, 0)), 5*time.Millisecond)
	want := map[geometry.Position]time.Duration{
		geometry.Pos(0, 0): 0,
		geometry.Pos(1, 0): 2 * time.Millisecond,
		geometry.Pos(1, 1): 5 * time.Millisecond,
		geometry.Pos(0, 1): 3 * time.Millisecond,
		geometry.Pos(0, 2): 5 * time.Millisecond,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("PositionsWithin = %v, want %v", got, want)
	}
}

func TestClosestTargets(t *testing.T) {
	p, _ := testPathfinder()
	p.InitTargets("targets")
	p.LoadTarget("targets", geometry.Pos(0, 2), true)
	p.LoadTarget("targets", geometry.Pos(1, 2), true)
	p.LoadTarget("targets", geometry.Pos(2, 2), true)

	got := p.ClosestTargets(path(geometry.Pos(1, 0)), "targets", 1)
	want := []ClosestTarget{{
		Position: geometry.Pos(1, 2),
		Path:     path(geometry.Pos(1, 0), geometry.Pos(1, 1), geometry.Pos(1, 2)),
		Duration: 6 * time.Millisecond,
	}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ClosestTargets = %v, want %v", got, want)
	}
}

func TestClosestTargets_OrderedByDuration(t *testing.T) {
	p, _ := testPathfinder()
	p.InitTargets("targets")
	p.LoadTarget("targets", geometry.Pos(0, 2), true)
	p.LoadTarget("targets", geometry.Pos(1, 2), true)

	got := p.ClosestTargets(path(geometry.Pos(0, 0)), "targets", 2)
	if len(got) != 2 {
		t.Fatalf("got %d targets, want 2", len(got))
	}
	if got[0].Duration > got[1].Duration {
		t.Errorf("targets out of order: %v then %v", got[0].Duration, got[1].Duration)
	}
	if got[0].Position != geometry.Pos(0, 2) {
		t.Errorf("closest target = %v, want (0, 2)", got[0].Position)
	}
}

func TestLowestDuration(t *testing.T) {
	p, _ := testPathfinder()
	d, ok := p.LowestDuration(path(geometry.Pos(1, 0), geometry.Pos(1, 1), geometry.Pos(1, 2)))
	if !ok || d != 6*time.Millisecond {
		t.Errorf("LowestDuration = %v, %t; want 6ms, true", d, ok)
	}
	if _, ok := p.LowestDuration(path(geometry.Pos(1, 0), geometry.Pos(2, 0))); ok {
		t.Error("expected no duration over a missing edge")
	}
}

func TestSetEdgeDurationAndRemoveEdge(t *testing.T) {
	p, _ := testPathfinder()
	from, to := geometry.Pos(0, 0), geometry.Pos(1, 0)

	p.SetEdgeDuration(from, to, 0)
	if d, ok := p.LowestDuration(path(from, to)); !ok || d != 0 {
		t.Errorf("LowestDuration = %v, %t; want 0, true", d, ok)
	}

	p.RemoveEdge(from, to)
	if _, ok := p.LowestDuration(path(from, to)); ok {
		t.Error("expected no duration after RemoveEdge")
	}
}

func TestUpdatePositions_RefreshesIncidentEdges(t *testing.T) {
	p, w := testPathfinder()
	edge := geometry.NewEdge(geometry.Pos(1, 0), geometry.Pos(1, 1))

	before, ok := p.LowestDuration(path(geometry.Pos(1, 0), geometry.Pos(1, 1)))
	if !ok || before != 3*time.Millisecond {
		t.Fatalf("LowestDuration = %v, %t; want 3ms, true", before, ok)
	}

	w.SetRoad(edge, true)
	p.UpdatePositions(w, []geometry.Position{geometry.Pos(1, 0)})

	after, ok := p.LowestDuration(path(geometry.Pos(1, 0), geometry.Pos(1, 1)))
	if !ok || after != time.Millisecond {
		t.Errorf("LowestDuration = %v, %t; want 1ms, true", after, ok)
	}
	reverse, ok := p.LowestDuration(path(geometry.Pos(1, 1), geometry.Pos(1, 0)))
	if !ok || reverse != time.Millisecond {
		t.Errorf("reverse LowestDuration = %v, %t; want 1ms, true", reverse, ok)
	}
}

func TestInBounds(t *testing.T) {
	p, _ := testPathfinder()
	if !p.InBounds(geometry.Pos(2, 2)) {
		t.Error("expected (2, 2) in bounds")
	}
	if p.InBounds(geometry.Pos(3, 0)) || p.InBounds(geometry.Pos(0, 3)) {
		t.Error("expected positions outside the grid out of bounds")
	}
}
