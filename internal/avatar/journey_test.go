package avatar

import (
	"testing"
	"time"

	"frontier.sim/internal/bridges"
	"frontier.sim/internal/geometry"
	"frontier.sim/internal/travel"
	"frontier.sim/internal/world"
)

func testWorld(seaLevel float64) *world.World {
	elevations := geometry.NewGridFilled(8, 8, 2.0)
	return world.New(elevations, seaLevel)
}

func testInputs(w *world.World) JourneyInputs {
	return JourneyInputs{
		World:          w,
		TravelDuration: travel.NewConstant(time.Second),
		ModeFn:         travel.NewAvatarModeFn(0.05, true),
		Bridges:        bridges.NewBridges(),
		BridgeDuration: bridges.DefaultDurationFn(),
	}
}

func eastPath(from geometry.Position, steps int) []geometry.Position {
	out := []geometry.Position{from}
	for i := 1; i <= steps; i++ {
		out = append(out, geometry.Pos(from.X+i, from.Y))
	}
	return out
}

func TestNewJourneyAccumulatesArrivals(t *testing.T) {
	in := testInputs(testWorld(1.0))
	journey, err := NewJourney(in, eastPath(geometry.Pos(1, 1), 3), 500)
	if err != nil {
		t.Fatalf("NewJourney: %v", err)
	}
	frames := journey.Frames()
	if len(frames) != 4 {
		t.Fatalf("got %d frames, want 4", len(frames))
	}
	want := []int64{500, 1_000_500, 2_000_500, 3_000_500}
	for i, frame := range frames {
		if frame.ArrivalMicros != want[i] {
			t.Errorf("frame %d arrives at %d, want %d", i, frame.ArrivalMicros, want[i])
		}
		if frame.Rotation != RotationRight {
			t.Errorf("frame %d rotation %s, want %s", i, frame.Rotation, RotationRight)
		}
	}
}

func TestNewJourneyEmptyPath(t *testing.T) {
	in := testInputs(testWorld(1.0))
	if _, err := NewJourney(in, nil, 0); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestElevationClampedToSeaLevel(t *testing.T) {
	w := testWorld(3.0)
	in := testInputs(w)
	journey, err := NewJourney(in, eastPath(geometry.Pos(1, 1), 1), 0)
	if err != nil {
		t.Fatalf("NewJourney: %v", err)
	}
	for i, frame := range journey.Frames() {
		if frame.Elevation != 3.0 {
			t.Errorf("frame %d elevation %v, want sea level 3.0", i, frame.Elevation)
		}
	}
}

func TestVehicleBoatOverSea(t *testing.T) {
	w := testWorld(3.0)
	in := testInputs(w)
	journey, err := NewJourney(in, eastPath(geometry.Pos(1, 1), 1), 0)
	if err != nil {
		t.Fatalf("NewJourney: %v", err)
	}
	if journey.FinalFrame().Vehicle != VehicleBoat {
		t.Fatalf("vehicle %s over sea, want %s", journey.FinalFrame().Vehicle, VehicleBoat)
	}
}

func TestWorldCoordAtInterpolates(t *testing.T) {
	in := testInputs(testWorld(1.0))
	journey, err := NewJourney(in, eastPath(geometry.Pos(1, 1), 2), 0)
	if err != nil {
		t.Fatalf("NewJourney: %v", err)
	}
	coord := journey.WorldCoordAt(1_500_000)
	if coord.X != 2.5 || coord.Y != 1.0 {
		t.Fatalf("coord at mid-step %v, want (2.5, 1)", coord)
	}
	if coord.Z != 2.0 {
		t.Fatalf("elevation %v, want 2.0", coord.Z)
	}
}

func TestWorldCoordClampsOutsideJourney(t *testing.T) {
	in := testInputs(testWorld(1.0))
	journey, err := NewJourney(in, eastPath(geometry.Pos(1, 1), 1), 1_000_000)
	if err != nil {
		t.Fatalf("NewJourney: %v", err)
	}
	before := journey.WorldCoordAt(0)
	if before.X != 1.0 || before.Y != 1.0 {
		t.Errorf("coord before start %v, want (1, 1)", before)
	}
	after := journey.WorldCoordAt(10_000_000)
	if after.X != 2.0 || after.Y != 1.0 {
		t.Errorf("coord after end %v, want (2, 1)", after)
	}
}

func TestDone(t *testing.T) {
	in := testInputs(testWorld(1.0))
	journey, err := NewJourney(in, eastPath(geometry.Pos(0, 0), 1), 0)
	if err != nil {
		t.Fatalf("NewJourney: %v", err)
	}
	if journey.Done(999_999) {
		t.Errorf("done before final arrival")
	}
	if !journey.Done(1_000_000) {
		t.Errorf("not done at final arrival")
	}
}

func TestStopMidStepFinishesStep(t *testing.T) {
	in := testInputs(testWorld(1.0))
	journey, err := NewJourney(in, eastPath(geometry.Pos(1, 1), 3), 0)
	if err != nil {
		t.Fatalf("NewJourney: %v", err)
	}
	stopped := journey.Stop(1_500_000)
	frames := stopped.Frames()
	if len(frames) != 3 {
		t.Fatalf("got %d frames after stop, want 3", len(frames))
	}
	if frames[2].Position != geometry.Pos(3, 1) {
		t.Fatalf("stops at %v, want (3, 1)", frames[2].Position)
	}
}

func TestStopOnFrameKeepsFrame(t *testing.T) {
	in := testInputs(testWorld(1.0))
	journey, err := NewJourney(in, eastPath(geometry.Pos(1, 1), 3), 0)
	if err != nil {
		t.Fatalf("NewJourney: %v", err)
	}
	stopped := journey.Stop(5_000_000)
	if len(stopped.Frames()) != 4 {
		t.Fatalf("stop after completion dropped frames: %d", len(stopped.Frames()))
	}
}

func TestAppendRequiresContinuity(t *testing.T) {
	w := testWorld(1.0)
	first := Stationary(w, geometry.Pos(1, 1), RotationUp, VehicleNone, 0)
	disjoint := Stationary(w, geometry.Pos(4, 4), RotationUp, VehicleNone, 10)
	if _, err := first.Append(disjoint); err == nil {
		t.Fatalf("expected continuity error")
	}
	early := Stationary(w, geometry.Pos(1, 1), RotationUp, VehicleNone, -10)
	if _, err := first.Append(early); err == nil {
		t.Fatalf("expected arrival-order error")
	}
	later := Stationary(w, geometry.Pos(1, 1), RotationUp, VehicleNone, 10)
	joined, err := first.Append(later)
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if len(joined.Frames()) != 2 {
		t.Fatalf("joined journey has %d frames, want 2", len(joined.Frames()))
	}
}

func TestFramesBetween(t *testing.T) {
	in := testInputs(testWorld(1.0))
	journey, err := NewJourney(in, eastPath(geometry.Pos(0, 0), 3), 0)
	if err != nil {
		t.Fatalf("NewJourney: %v", err)
	}
	frames := journey.FramesBetween(0, 2_000_000)
	if len(frames) != 2 {
		t.Fatalf("got %d frames, want 2: lower bound exclusive, upper inclusive", len(frames))
	}
	if frames[0].ArrivalMicros != 1_000_000 || frames[1].ArrivalMicros != 2_000_000 {
		t.Fatalf("arrivals %d, %d", frames[0].ArrivalMicros, frames[1].ArrivalMicros)
	}
}

func TestWithPauseAtStart(t *testing.T) {
	in := testInputs(testWorld(1.0))
	journey, err := NewJourney(in, eastPath(geometry.Pos(0, 0), 1), 100)
	if err != nil {
		t.Fatalf("NewJourney: %v", err)
	}
	paused := journey.WithPauseAtStart(500)
	frames := paused.Frames()
	if len(frames) != 3 {
		t.Fatalf("got %d frames, want 3", len(frames))
	}
	if frames[0].ArrivalMicros != 100 || frames[1].ArrivalMicros != 600 {
		t.Fatalf("pause arrivals %d, %d, want 100, 600", frames[0].ArrivalMicros, frames[1].ArrivalMicros)
	}
	coord := paused.WorldCoordAt(400)
	if coord.X != 0 || coord.Y != 0 {
		t.Fatalf("avatar moved during pause: %v", coord)
	}
}

func TestWithPauseAtEnd(t *testing.T) {
	in := testInputs(testWorld(1.0))
	journey, err := NewJourney(in, eastPath(geometry.Pos(0, 0), 1), 0)
	if err != nil {
		t.Fatalf("NewJourney: %v", err)
	}
	paused := journey.WithPauseAtEnd(500)
	if paused.FinalFrame().ArrivalMicros != 1_000_500 {
		t.Fatalf("final arrival %d, want 1000500", paused.FinalFrame().ArrivalMicros)
	}
	if paused.Done(1_000_000) {
		t.Fatalf("done during end pause")
	}
}

func TestForwardPath(t *testing.T) {
	w := testWorld(1.0)
	journey := Stationary(w, geometry.Pos(3, 3), RotationLeft, VehicleNone, 0)
	path := journey.ForwardPath()
	if len(path) != 2 || path[0] != geometry.Pos(3, 3) || path[1] != geometry.Pos(2, 3) {
		t.Fatalf("forward path %v, want [(3,3) (2,3)]", path)
	}
}

// closedEdge rejects one edge and prices everything else at a constant.
type closedEdge struct {
	edge     geometry.Edge
	duration time.Duration
}

func (c closedEdge) GetDuration(_ *world.World, from, to geometry.Position) (time.Duration, bool) {
	if geometry.NewEdge(from, to) == c.edge {
		return 0, false
	}
	return c.duration, true
}

func (c closedEdge) MinDuration() time.Duration { return c.duration }
func (c closedEdge) MaxDuration() time.Duration { return c.duration }

func TestBridgeFallbackPricesClosedEdge(t *testing.T) {
	w := testWorld(1.0)
	in := testInputs(w)
	crossing := geometry.NewEdge(geometry.Pos(1, 0), geometry.Pos(2, 0))
	in.TravelDuration = closedEdge{edge: crossing, duration: time.Second}

	if _, err := NewJourney(in, eastPath(geometry.Pos(0, 0), 3), 0); err == nil {
		t.Fatalf("expected impassable error without a bridge")
	}

	bridge, err := bridges.Bridge{Kind: bridges.Built, Piers: []bridges.Pier{
		{Position: geometry.Pos(1, 0), Elevation: 2.0},
		{Position: geometry.Pos(2, 0), Elevation: 2.0},
	}}.Validate()
	if err != nil {
		t.Fatalf("invalid bridge: %v", err)
	}
	in.Bridges.Add(&bridge)

	journey, err := NewJourney(in, eastPath(geometry.Pos(0, 0), 3), 0)
	if err != nil {
		t.Fatalf("NewJourney with bridge: %v", err)
	}
	arrivals := []int64{0, 1_000_000, 2_000_000, 3_000_000}
	for i, frame := range journey.Frames() {
		if frame.ArrivalMicros != arrivals[i] {
			t.Errorf("frame %d arrives at %d, want %d", i, frame.ArrivalMicros, arrivals[i])
		}
	}
}

func TestControlsWalkForward(t *testing.T) {
	w := testWorld(1.0)
	controls := Controls{Inputs: testInputs(w)}
	journey := Stationary(w, geometry.Pos(2, 2), RotationRight, VehicleNone, 0)

	walked, err := controls.WalkForward(journey, 0)
	if err != nil {
		t.Fatalf("WalkForward: %v", err)
	}
	if walked.FinalFrame().Position != geometry.Pos(3, 2) {
		t.Fatalf("walked to %v, want (3, 2)", walked.FinalFrame().Position)
	}
	if walked.FinalFrame().ArrivalMicros != 1_000_000 {
		t.Fatalf("arrival %d, want 1000000", walked.FinalFrame().ArrivalMicros)
	}
}

func TestControlsRotate(t *testing.T) {
	w := testWorld(1.0)
	controls := Controls{Inputs: testInputs(w)}
	journey := Stationary(w, geometry.Pos(2, 2), RotationUp, VehicleNone, 0)

	rotated := controls.RotateClockwise(journey, 0)
	if rotated.FinalFrame().Rotation != RotationRight {
		t.Fatalf("rotation %s, want %s", rotated.FinalFrame().Rotation, RotationRight)
	}
	back := controls.RotateAnticlockwise(rotated, 0)
	if back.FinalFrame().Rotation != RotationUp {
		t.Fatalf("rotation %s, want %s", back.FinalFrame().Rotation, RotationUp)
	}
}

func TestAvatarsSelection(t *testing.T) {
	avatars := NewAvatars()
	avatars.Add(&Avatar{Name: "scout"})
	avatars.Add(&Avatar{Name: "trader"})

	avatars.Select("scout")
	if got := avatars.Selected(); got == nil || got.Name != "scout" {
		t.Fatalf("selected %v, want scout", got)
	}
	avatars.Select("nobody")
	if avatars.Selected() != nil {
		t.Fatalf("selection survived unknown name")
	}
	avatars.Select("trader")
	avatars.Remove("trader")
	if avatars.Selected() != nil {
		t.Fatalf("selection survived removal")
	}
}
