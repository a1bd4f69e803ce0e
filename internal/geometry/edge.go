package geometry

import (
	"encoding/json"
	"fmt"
)

// Edge is a canonical pair of axis-adjacent grid positions. From is always
// the componentwise-smaller end, so Edge{a, b} and Edge{b, a} compare equal.
type Edge struct {
	from Position
	to   Position
}

// NewEdge canonicalizes the pair. Diagonal pairs are a programming error.
func NewEdge(from, to Position) Edge {
	if to.X != from.X && to.Y != from.Y {
		panic(fmt.Sprintf("diagonal edge %v to %v", from, to))
	}
	if to.X > from.X || to.Y > from.Y {
		return Edge{from: from, to: to}
	}
	return Edge{from: to, to: from}
}

// NewEdgeSafe is NewEdge for unvalidated input, reporting diagonals as an
// error instead of panicking.
func NewEdgeSafe(from, to Position) (Edge, error) {
	if to.X != from.X && to.Y != from.Y {
		return Edge{}, fmt.Errorf("diagonal edge %v to %v", from, to)
	}
	return NewEdge(from, to), nil
}

func (e Edge) From() Position { return e.from }
func (e Edge) To() Position   { return e.to }

func (e Edge) Horizontal() bool { return e.from.Y == e.to.Y }

// Length is the Manhattan distance between the two ends.
func (e Edge) Length() int { return Manhattan(e.from, e.to) }

type edgeJSON struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

func (e Edge) MarshalJSON() ([]byte, error) {
	return json.Marshal(edgeJSON{From: e.from, To: e.to})
}

func (e *Edge) UnmarshalJSON(data []byte) error {
	var decoded edgeJSON
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	edge, err := NewEdgeSafe(decoded.From, decoded.To)
	if err != nil {
		return err
	}
	*e = edge
	return nil
}
