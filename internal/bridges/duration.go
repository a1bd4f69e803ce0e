package bridges

import (
	"time"

	"frontier.sim/internal/travel"
)

// KindDurationFn prices one bridge kind: a per-cell crossing duration plus a
// penalty wherever a segment boards or leaves a platform.
type KindDurationFn struct {
	OneCell time.Duration `yaml:"one_cell"`
	Penalty time.Duration `yaml:"penalty"`
}

func (f KindDurationFn) segmentDuration(segment Segment) time.Duration {
	duration := f.OneCell * time.Duration(segment.Edge().Length())
	if segment.From.Platform != segment.To.Platform {
		duration += f.Penalty
	}
	return duration
}

// DurationFn prices theoretical and built bridges separately: a crossing
// that merely could exist is slower than one that does.
type DurationFn struct {
	Theoretical KindDurationFn `yaml:"theoretical"`
	Built       KindDurationFn `yaml:"built"`
}

func DefaultDurationFn() DurationFn {
	return DurationFn{
		Theoretical: KindDurationFn{OneCell: time.Second, Penalty: time.Second},
		Built:       KindDurationFn{OneCell: time.Second, Penalty: time.Second},
	}
}

func (f DurationFn) kindFn(bridge *Bridge) KindDurationFn {
	if bridge.Kind == Built {
		return f.Built
	}
	return f.Theoretical
}

func (f DurationFn) TotalDuration(bridge *Bridge) time.Duration {
	kindFn := f.kindFn(bridge)
	total := time.Duration(0)
	for _, segment := range bridge.Segments() {
		total += kindFn.segmentDuration(segment)
	}
	return total
}

// TotalEdgeDurations yields both directed weights for the bridge's total
// edge, ready to load into a pathfinder.
func (f DurationFn) TotalEdgeDurations(bridge *Bridge) []travel.EdgeDuration {
	edge := bridge.TotalEdge()
	duration := f.TotalDuration(bridge)
	return []travel.EdgeDuration{
		{From: edge.To(), To: edge.From(), Duration: duration, Passable: true},
		{From: edge.From(), To: edge.To(), Duration: duration, Passable: true},
	}
}

// LowestDurationBridge picks the fastest crossing among candidates, nil when
// there are none.
func (f DurationFn) LowestDurationBridge(candidates []*Bridge) *Bridge {
	var best *Bridge
	var bestDuration time.Duration
	for _, bridge := range candidates {
		duration := f.TotalDuration(bridge)
		if best == nil || duration < bestDuration {
			best = bridge
			bestDuration = duration
		}
	}
	return best
}
