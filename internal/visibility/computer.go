// Package visibility computes line-of-sight reveals from visited cells.
package visibility

import (
	"math"

	"frontier.sim/internal/geometry"
)

// Computer answers which cells are visible from a position, given the
// elevation grid. Sight lines run to a Bresenham circle at MaxDistance
// and a cell is visible when its sight slope exceeds every slope before
// it. PlanetRadius of zero disables the curvature drop.
type Computer struct {
	HeadHeight   float64
	PlanetRadius float64
	MaxDistance  int
}

func DefaultComputer() *Computer {
	return &Computer{
		HeadHeight:   0.002,
		PlanetRadius: 6371.0,
		MaxDistance:  310,
	}
}

type point struct {
	x, y int
}

// VisibleFrom returns every position visible from the origin.
func (c *Computer) VisibleFrom(elevations *geometry.Grid[float64], origin geometry.Position) map[geometry.Position]bool {
	out := map[geometry.Position]bool{origin: true}
	for _, rim := range bresenhamCircle(point{origin.X, origin.Y}, c.MaxDistance) {
		line := bresenhamLine(point{origin.X, origin.Y}, rim)
		for _, position := range c.visibleAlongLine(elevations, line) {
			out[position] = true
		}
	}
	return out
}

func (c *Computer) visibleAlongLine(elevations *geometry.Grid[float64], line []point) []geometry.Position {
	if len(line) == 0 {
		return nil
	}
	from, fromElevation, ok := lookup(elevations, line[0])
	if !ok {
		return nil
	}
	eye := fromElevation + c.HeadHeight
	out := []geometry.Position{from}
	maxSlope := math.Inf(-1)
	for _, p := range line[1:] {
		to, toElevation, ok := lookup(elevations, p)
		if !ok {
			return out
		}
		run := math.Hypot(float64(to.X-from.X), float64(to.Y-from.Y))
		z := toElevation - c.planetCurveAdjustment(run)
		slope := (z - eye) / run
		if slope > maxSlope {
			maxSlope = slope
			out = append(out, to)
		}
	}
	return out
}

func (c *Computer) planetCurveAdjustment(distance float64) float64 {
	if c.PlanetRadius == 0 {
		return 0
	}
	return c.PlanetRadius - math.Sqrt(c.PlanetRadius*c.PlanetRadius-distance*distance)
}

func lookup(elevations *geometry.Grid[float64], p point) (geometry.Position, float64, bool) {
	if p.x < 0 || p.y < 0 {
		return geometry.Position{}, 0, false
	}
	position := geometry.Position{X: p.x, Y: p.y}
	elevation := elevations.Get(position)
	if elevation == nil {
		return geometry.Position{}, 0, false
	}
	return position, *elevation, true
}

func bresenhamCircle(center point, radius int) []point {
	var out []point
	x, y := radius, 0
	err := 1 - radius
	for x >= y {
		out = append(out,
			point{center.x + x, center.y + y}, point{center.x + y, center.y + x},
			point{center.x - y, center.y + x}, point{center.x - x, center.y + y},
			point{center.x - x, center.y - y}, point{center.x - y, center.y - x},
			point{center.x + y, center.y - x}, point{center.x + x, center.y - y},
		)
		y++
		if err < 0 {
			err += 2*y + 1
		} else {
			x--
			err += 2*(y-x) + 1
		}
	}
	return out
}

func bresenhamLine(from, to point) []point {
	dx, dy := abs(to.x-from.x), -abs(to.y-from.y)
	sx, sy := sign(to.x-from.x), sign(to.y-from.y)
	err := dx + dy
	x, y := from.x, from.y
	var out []point
	for {
		out = append(out, point{x, y})
		if x == to.x && y == to.y {
			return out
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}
