package avatar

import (
	"encoding/json"
	"fmt"
	"sort"

	"frontier.sim/internal/bridges"
	"frontier.sim/internal/geometry"
	"frontier.sim/internal/travel"
	"frontier.sim/internal/world"
)

type Vehicle string

const (
	VehicleNone Vehicle = "NONE"
	VehicleBoat Vehicle = "BOAT"
)

// Frame is a timestamped waypoint. An avatar is at the frame's coordinate
// exactly at ArrivalMicros and moves linearly between consecutive frames.
type Frame struct {
	Position      geometry.Position `json:"position"`
	Elevation     float64           `json:"elevation"`
	ArrivalMicros int64             `json:"arrival_micros"`
	Vehicle       Vehicle           `json:"vehicle"`
	Rotation      Rotation          `json:"rotation"`
}

// Journey is a non-empty sequence of frames with non-decreasing arrivals.
type Journey struct {
	frames []Frame
}

// JourneyInputs bundles the world state a journey is priced against.
// Edges the travel duration rejects fall back to a built bridge crossing.
type JourneyInputs struct {
	World          *world.World
	TravelDuration travel.Duration
	ModeFn         travel.ModeFn
	Bridges        *bridges.Bridges
	BridgeDuration bridges.DurationFn
}

// NewJourney prices the path and lays out one frame per position, arrivals
// accumulating from startMicros. Fails on an empty path or an impassable
// step with no built bridge.
func NewJourney(in JourneyInputs, path []geometry.Position, startMicros int64) (*Journey, error) {
	if len(path) == 0 {
		return nil, fmt.Errorf("journey needs at least one position")
	}
	frames := make([]Frame, 0, len(path))
	frames = append(frames, Frame{
		Position:      path[0],
		Elevation:     elevationAt(in.World, path[0]),
		ArrivalMicros: startMicros,
		Vehicle:       VehicleNone,
		Rotation:      RotationUp,
	})
	arrival := startMicros
	for i := 1; i < len(path); i++ {
		from, to := path[i-1], path[i]
		micros, err := stepMicros(in, from, to)
		if err != nil {
			return nil, err
		}
		arrival += micros
		frames = append(frames, Frame{
			Position:      to,
			Elevation:     elevationAt(in.World, to),
			ArrivalMicros: arrival,
			Vehicle:       stepVehicle(in, from, to),
			Rotation:      stepRotation(from, to),
		})
	}
	if len(frames) > 1 {
		frames[0].Vehicle = frames[1].Vehicle
		frames[0].Rotation = frames[1].Rotation
	}
	return &Journey{frames: frames}, nil
}

// Stationary is a single-frame journey: the avatar stands at the position
// from startMicros onwards.
func Stationary(w *world.World, position geometry.Position, rotation Rotation, vehicle Vehicle, startMicros int64) *Journey {
	return &Journey{frames: []Frame{{
		Position:      position,
		Elevation:     elevationAt(w, position),
		ArrivalMicros: startMicros,
		Vehicle:       vehicle,
		Rotation:      rotation,
	}}}
}

func elevationAt(w *world.World, position geometry.Position) float64 {
	elevation := 0.0
	if cell := w.GetCell(position); cell != nil {
		elevation = cell.Elevation
	}
	if elevation < w.SeaLevel() {
		elevation = w.SeaLevel()
	}
	return elevation
}

func stepMicros(in JourneyInputs, from, to geometry.Position) (int64, error) {
	if duration, ok := in.TravelDuration.GetDuration(in.World, from, to); ok {
		return duration.Microseconds(), nil
	}
	if in.Bridges != nil {
		if bridge := in.Bridges.Built(geometry.NewEdge(from, to)); bridge != nil {
			return in.BridgeDuration.TotalDuration(bridge).Microseconds(), nil
		}
	}
	return 0, fmt.Errorf("no way from %v to %v", from, to)
}

func stepVehicle(in JourneyInputs, from, to geometry.Position) Vehicle {
	if in.ModeFn == nil {
		return VehicleNone
	}
	mode, ok := in.ModeFn.ModeBetween(in.World, from, to)
	if ok && mode.Class() == travel.ClassWater {
		return VehicleBoat
	}
	return VehicleNone
}

func stepRotation(from, to geometry.Position) Rotation {
	switch {
	case to.X > from.X:
		return RotationRight
	case to.X < from.X:
		return RotationLeft
	case to.Y > from.Y:
		return RotationUp
	default:
		return RotationDown
	}
}

func (j *Journey) Frames() []Frame { return j.frames }

// Journeys serialize as their frame sequence.
func (j *Journey) MarshalJSON() ([]byte, error) {
	return json.Marshal(j.frames)
}

func (j *Journey) UnmarshalJSON(data []byte) error {
	var frames []Frame
	if err := json.Unmarshal(data, &frames); err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("journey needs at least one frame")
	}
	j.frames = frames
	return nil
}

func (j *Journey) FirstFrame() Frame { return j.frames[0] }

func (j *Journey) FinalFrame() Frame { return j.frames[len(j.frames)-1] }

// Done reports whether the journey has finished by the given instant.
func (j *Journey) Done(micros int64) bool {
	return micros >= j.FinalFrame().ArrivalMicros
}

// progressAt locates the instant within the frame sequence: the indices of
// the frames bracketing it and the fraction travelled between them. Before
// the first arrival the avatar waits at the first frame; after the last it
// stands at the final frame.
func (j *Journey) progressAt(micros int64) (from, to int, fraction float64) {
	if micros <= j.frames[0].ArrivalMicros {
		return 0, 0, 0
	}
	last := len(j.frames) - 1
	if micros >= j.frames[last].ArrivalMicros {
		return last, last, 0
	}
	to = sort.Search(len(j.frames), func(i int) bool {
		return j.frames[i].ArrivalMicros > micros
	})
	from = to - 1
	span := j.frames[to].ArrivalMicros - j.frames[from].ArrivalMicros
	if span > 0 {
		fraction = float64(micros-j.frames[from].ArrivalMicros) / float64(span)
	}
	return from, to, fraction
}

// WorldCoordAt interpolates the avatar's continuous coordinate at the
// instant, elevation included.
func (j *Journey) WorldCoordAt(micros int64) geometry.V3 {
	from, to, fraction := j.progressAt(micros)
	a, b := j.frames[from], j.frames[to]
	return geometry.V3XYZ(
		lerp(float64(a.Position.X), float64(b.Position.X), fraction),
		lerp(float64(a.Position.Y), float64(b.Position.Y), fraction),
		lerp(a.Elevation, b.Elevation, fraction),
	)
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

// FrameAt is the frame governing the instant: the destination frame while
// moving, the frame itself while standing on one.
func (j *Journey) FrameAt(micros int64) Frame {
	_, to, _ := j.progressAt(micros)
	return j.frames[to]
}

// Stop truncates the journey at the instant. Mid-step the avatar finishes
// the step it is on before halting.
func (j *Journey) Stop(micros int64) *Journey {
	_, to, _ := j.progressAt(micros)
	return &Journey{frames: append([]Frame(nil), j.frames[:to+1]...)}
}

// Append joins another journey onto this one. The other journey must start
// where this one ends, no earlier than this one's final arrival.
func (j *Journey) Append(other *Journey) (*Journey, error) {
	final := j.FinalFrame()
	first := other.FirstFrame()
	if final.Position != first.Position {
		return nil, fmt.Errorf("cannot append journey starting at %v to journey ending at %v",
			first.Position, final.Position)
	}
	if first.ArrivalMicros < final.ArrivalMicros {
		return nil, fmt.Errorf("cannot append journey starting at %dus to journey ending at %dus",
			first.ArrivalMicros, final.ArrivalMicros)
	}
	frames := append([]Frame(nil), j.frames...)
	frames = append(frames, other.frames...)
	return &Journey{frames: frames}, nil
}

// FramesBetween returns the frames with arrival in (from, to].
func (j *Journey) FramesBetween(fromMicros, toMicros int64) []Frame {
	var out []Frame
	for _, frame := range j.frames {
		if frame.ArrivalMicros > fromMicros && frame.ArrivalMicros <= toMicros {
			out = append(out, frame)
		}
	}
	return out
}

// WithPauseAtStart delays the whole journey, holding the avatar on its
// first frame for the pause.
func (j *Journey) WithPauseAtStart(pauseMicros int64) *Journey {
	frames := make([]Frame, 0, len(j.frames)+1)
	frames = append(frames, j.frames[0])
	for _, frame := range j.frames {
		frame.ArrivalMicros += pauseMicros
		frames = append(frames, frame)
	}
	return &Journey{frames: frames}
}

// WithPauseAtEnd holds the avatar on its final frame for the pause.
func (j *Journey) WithPauseAtEnd(pauseMicros int64) *Journey {
	frames := append([]Frame(nil), j.frames...)
	final := frames[len(frames)-1]
	final.ArrivalMicros += pauseMicros
	return &Journey{frames: append(frames, final)}
}

// ThenRotate turns the avatar on the spot after the journey completes.
func (j *Journey) ThenRotate(rotation Rotation) *Journey {
	frames := append([]Frame(nil), j.frames...)
	final := frames[len(frames)-1]
	final.Rotation = rotation
	return &Journey{frames: append(frames, final)}
}

// ForwardPath is the unit step ahead of the avatar's final facing.
func (j *Journey) ForwardPath() []geometry.Position {
	final := j.FinalFrame()
	var offset geometry.Position
	switch final.Rotation {
	case RotationRight:
		offset = geometry.Pos(1, 0)
	case RotationLeft:
		offset = geometry.Pos(-1, 0)
	case RotationUp:
		offset = geometry.Pos(0, 1)
	default:
		offset = geometry.Pos(0, -1)
	}
	return []geometry.Position{final.Position, final.Position.Add(offset)}
}
