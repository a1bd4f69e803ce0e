package geometry

import "math"

// Position addresses a cell or cell corner on the world grid.
type Position struct {
	X int
	Y int
}

func Pos(x, y int) Position { return Position{X: x, Y: y} }

func (p Position) Add(o Position) Position { return Position{X: p.X + o.X, Y: p.Y + o.Y} }

// Manhattan returns |ax-bx| + |ay-by|.
func Manhattan(a, b Position) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// V2 is a continuous world coordinate.
type V2 struct {
	X float64
	Y float64
}

func V2XY(x, y float64) V2 { return V2{X: x, Y: y} }

func (v V2) Add(o V2) V2        { return V2{X: v.X + o.X, Y: v.Y + o.Y} }
func (v V2) Sub(o V2) V2        { return V2{X: v.X - o.X, Y: v.Y - o.Y} }
func (v V2) Dot(o V2) float64   { return v.X*o.X + v.Y*o.Y }
func (v V2) Length() float64    { return math.Sqrt(v.Dot(v)) }
func (v V2) Position() Position { return Position{X: int(math.Round(v.X)), Y: int(math.Round(v.Y))} }

// V3 is a continuous world coordinate with elevation.
type V3 struct {
	X float64
	Y float64
	Z float64
}

func V3XYZ(x, y, z float64) V3 { return V3{X: x, Y: y, Z: z} }

func (v V3) XY() V2 { return V2{X: v.X, Y: v.Y} }
