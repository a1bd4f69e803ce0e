// Package bridges models pier-to-pier crossings over water. Bridges are
// discovered as theoretical crossings during world generation and promoted
// to built bridges by the bridge builder.
package bridges

import (
	"errors"

	"frontier.sim/internal/geometry"
)

type Kind string

const (
	Theoretical Kind = "THEORETICAL"
	Built       Kind = "BUILT"
)

// Pier is one support point of a bridge. Platform piers carry a walkable
// deck; non-platform piers only anchor the crossing.
type Pier struct {
	Position  geometry.Position `json:"position"`
	Elevation float64           `json:"elevation"`
	Platform  bool              `json:"platform"`
}

// Bridge is an ordered chain of piers. The first and last pier must share an
// axis so the bridge spans a canonical edge.
type Bridge struct {
	Piers []Pier `json:"piers"`
	Kind  Kind   `json:"kind"`
}

var (
	ErrEmptyBridge     = errors.New("bridge must have at least one segment")
	ErrDiagonalBridge  = errors.New("bridge start and end must share an axis")
	ErrDiagonalSegment = errors.New("bridge segments must not be diagonal")
)

// Validate checks the pier chain and returns the bridge unchanged on
// success.
func (b Bridge) Validate() (Bridge, error) {
	if len(b.Piers) < 2 {
		return Bridge{}, ErrEmptyBridge
	}
	first := b.Piers[0].Position
	last := b.Piers[len(b.Piers)-1].Position
	if _, err := geometry.NewEdgeSafe(first, last); err != nil {
		return Bridge{}, ErrDiagonalBridge
	}
	for _, segment := range b.Segments() {
		if _, err := geometry.NewEdgeSafe(segment.From.Position, segment.To.Position); err != nil {
			return Bridge{}, ErrDiagonalSegment
		}
	}
	return b, nil
}

func (b *Bridge) Start() Pier { return b.Piers[0] }
func (b *Bridge) End() Pier   { return b.Piers[len(b.Piers)-1] }

// TotalEdge is the canonical edge the bridge spans; bridges are keyed by it.
func (b *Bridge) TotalEdge() geometry.Edge {
	return geometry.NewEdge(b.Start().Position, b.End().Position)
}

// Segment is one pier-to-pier hop.
type Segment struct {
	From Pier
	To   Pier
}

func (s Segment) Edge() geometry.Edge {
	return geometry.NewEdge(s.From.Position, s.To.Position)
}

func (b *Bridge) Segments() []Segment {
	out := make([]Segment, 0, len(b.Piers)-1)
	for i := 0; i+1 < len(b.Piers); i++ {
		out = append(out, Segment{From: b.Piers[i], To: b.Piers[i+1]})
	}
	return out
}

// SegmentsFrom returns the segments in travel order starting at the given
// end. Panics if from is at neither end.
func (b *Bridge) SegmentsFrom(from geometry.Position) []Segment {
	if b.Start().Position == from {
		return b.Segments()
	}
	if b.End().Position != from {
		panic("position is at neither end of the bridge")
	}
	segments := b.Segments()
	out := make([]Segment, 0, len(segments))
	for i := len(segments) - 1; i >= 0; i-- {
		out = append(out, Segment{From: segments[i].To, To: segments[i].From})
	}
	return out
}
