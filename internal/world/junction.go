package world

import "frontier.sim/internal/geometry"

// Junction1D records connectivity along one axis at a cell. From points
// towards the positive neighbour, To towards the negative one; a road or
// river exists along an edge only when both ends agree.
type Junction1D struct {
	Width float64 `json:"width,omitempty"`
	From  bool    `json:"from,omitempty"`
	To    bool    `json:"to,omitempty"`
}

type Junction struct {
	Horizontal Junction1D `json:"horizontal,omitempty"`
	Vertical   Junction1D `json:"vertical,omitempty"`
}

func (j *Junction) Width() float64  { return j.Vertical.Width }
func (j *Junction) Height() float64 { return j.Horizontal.Width }

func (j *Junction) LongestSide() float64 {
	if j.Width() > j.Height() {
		return j.Width()
	}
	return j.Height()
}

// Here reports whether anything flows through this cell at all.
func (j *Junction) Here() bool { return j.Width() > 0 || j.Height() > 0 }

// Corner reports whether both axes carry flow at this cell.
func (j *Junction) Corner() bool { return j.Width() > 0 && j.Height() > 0 }

func (j *Junction) Axis(horizontal bool) *Junction1D {
	if horizontal {
		return &j.Horizontal
	}
	return &j.Vertical
}

// EdgesFrom lists the edges whose From flag is set at this position.
func (j *Junction) EdgesFrom(position geometry.Position) []geometry.Edge {
	var out []geometry.Edge
	if j.Horizontal.From {
		out = append(out, geometry.NewEdge(position, position.Add(geometry.Pos(1, 0))))
	}
	if j.Vertical.From {
		out = append(out, geometry.NewEdge(position, position.Add(geometry.Pos(0, 1))))
	}
	return out
}

func mergeJunction1D(a, b, c Junction1D) Junction1D {
	width := a.Width
	if b.Width > width {
		width = b.Width
	}
	if c.Width > width {
		width = c.Width
	}
	return Junction1D{
		Width: width,
		From:  a.From || b.From || c.From,
		To:    a.To || b.To || c.To,
	}
}
