package travel

import (
	"time"

	"frontier.sim/internal/geometry"
	"frontier.sim/internal/world"
)

// AvatarParams tunes avatar movement. All millisecond values are per cell.
type AvatarParams struct {
	MaxGradient           float64 `yaml:"max_gradient"`
	WalkMinMillis         uint64  `yaml:"walk_min_millis"`
	WalkMaxMillis         uint64  `yaml:"walk_max_millis"`
	RoadMillis            uint64  `yaml:"road_millis"`
	StreamMillis          uint64  `yaml:"stream_millis"`
	RiverMillis           uint64  `yaml:"river_millis"`
	SeaMillis             uint64  `yaml:"sea_millis"`
	MinRiverWidth         float64 `yaml:"min_river_width"`
	PortPenaltyMillis     uint64  `yaml:"port_penalty_millis"`
	RoadPortPenaltyMillis uint64  `yaml:"road_port_penalty_millis"`
}

func DefaultAvatarParams() AvatarParams {
	return AvatarParams{
		MaxGradient:   0.5,
		WalkMinMillis: 2_700_000,
		WalkMaxMillis: 5_400_000,
		RoadMillis:    1_200_000,
		StreamMillis:  4_800_000,
		RiverMillis:   900_000,
		SeaMillis:     900_000,
		MinRiverWidth: 0.1,
	}
}

// Avatar charges each edge by the travel mode between its endpoints.
type Avatar struct {
	modeFn      *AvatarModeFn
	walk        Duration
	road        Duration
	plannedRoad Duration
	stream      Duration
	river       Duration
	sea         Duration
}

// NewAvatarWithPlannedRoads treats planned roads as built, for long-range
// route planning.
func NewAvatarWithPlannedRoads(p AvatarParams) *Avatar {
	return newAvatar(p, true)
}

// NewAvatarIgnoringPlannedRoads charges planned road edges as ordinary
// terrain, for enforcement.
func NewAvatarIgnoringPlannedRoads(p AvatarParams) *Avatar {
	return newAvatar(p, false)
}

func newAvatar(p AvatarParams, includePlannedRoads bool) *Avatar {
	road := NewConstant(time.Duration(p.RoadMillis) * time.Millisecond)
	return &Avatar{
		modeFn: NewAvatarModeFn(p.MinRiverWidth, includePlannedRoads),
		walk: NewGradient(
			geometry.NewScale(0, p.MaxGradient, float64(p.WalkMinMillis), float64(p.WalkMaxMillis)),
			true,
		),
		road:        road,
		plannedRoad: road,
		stream:      NewConstant(time.Duration(p.StreamMillis) * time.Millisecond),
		river:       NewConstant(time.Duration(p.RiverMillis) * time.Millisecond),
		sea:         NewConstant(time.Duration(p.SeaMillis) * time.Millisecond),
	}
}

func (a *Avatar) ModeFn() ModeFn { return a.modeFn }

func (a *Avatar) providerFor(mode Mode) Duration {
	switch mode {
	case ModeWalk:
		return a.walk
	case ModeRoad:
		return a.road
	case ModePlannedRoad:
		return a.plannedRoad
	case ModeStream:
		return a.stream
	case ModeRiver:
		return a.river
	case ModeSea:
		return a.sea
	}
	return nil
}

func (a *Avatar) GetDuration(w *world.World, from, to geometry.Position) (time.Duration, bool) {
	mode, ok := a.modeFn.ModeBetween(w, from, to)
	if !ok {
		return 0, false
	}
	return a.providerFor(mode).GetDuration(w, from, to)
}

func (a *Avatar) providers() []Duration {
	return []Duration{a.walk, a.road, a.plannedRoad, a.stream, a.river, a.sea}
}

func (a *Avatar) MinDuration() time.Duration {
	min := a.walk.MinDuration()
	for _, p := range a.providers() {
		if d := p.MinDuration(); d < min {
			min = d
		}
	}
	return min
}

func (a *Avatar) MaxDuration() time.Duration {
	max := a.walk.MaxDuration()
	for _, p := range a.providers() {
		if d := p.MaxDuration(); d > max {
			max = d
		}
	}
	return max
}
