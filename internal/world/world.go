package world

import (
	"math"

	"frontier.sim/internal/geometry"
)

const RoadWidth = 0.05

// World is the grid of cells. Width and height are fixed at construction;
// all mutation happens through closures run on the world actor.
type World struct {
	width     int
	height    int
	cells     *geometry.Grid[Cell]
	seaLevel  float64
	maxHeight float64
}

// New builds a world from an elevation grid. Cells start invisible with no
// junctions or objects.
func New(elevations *geometry.Grid[float64], seaLevel float64) *World {
	width, height := elevations.Width(), elevations.Height()
	cells := geometry.NewGrid[Cell](width, height)
	maxHeight := 0.0
	elevations.ForEach(func(p geometry.Position, e *float64) {
		cells.Set(p, NewCell(p, *e))
		if *e > maxHeight {
			maxHeight = *e
		}
	})
	return &World{
		width:     width,
		height:    height,
		cells:     cells,
		seaLevel:  seaLevel,
		maxHeight: maxHeight,
	}
}

func (w *World) Width() int         { return w.width }
func (w *World) Height() int        { return w.height }
func (w *World) SeaLevel() float64  { return w.seaLevel }
func (w *World) MaxHeight() float64 { return w.maxHeight }

func (w *World) InBounds(position geometry.Position) bool {
	return w.cells.InBounds(position)
}

// GetCell returns nil for out-of-bounds positions.
func (w *World) GetCell(position geometry.Position) *Cell {
	return w.cells.Get(position)
}

// MutCellUnsafe panics for out-of-bounds positions.
func (w *World) MutCellUnsafe(position geometry.Position) *Cell {
	return w.cells.GetUnsafe(position)
}

func (w *World) ForEachCell(f func(geometry.Position, *Cell)) {
	w.cells.ForEach(f)
}

func (w *World) IsSea(position geometry.Position) bool {
	cell := w.GetCell(position)
	return cell != nil && cell.Elevation <= w.seaLevel
}

// AddRiver sets the river junction at the cell.
func (w *World) AddRiver(position geometry.Position, junction Junction) {
	w.MutCellUnsafe(position).River = junction
}

// SetRoad flips road connectivity along an edge. Both endpoints' flags are
// set symmetrically so IsRoad reads the same from either side.
func (w *World) SetRoad(road geometry.Edge, state bool) {
	setWidth := func(j *Junction1D) {
		if j.From || j.To {
			j.Width = RoadWidth
		} else {
			j.Width = 0
		}
	}
	from := w.MutCellUnsafe(road.From()).Road.Axis(road.Horizontal())
	from.From = state
	setWidth(from)
	to := w.MutCellUnsafe(road.To()).Road.Axis(road.Horizontal())
	to.To = state
	setWidth(to)
}

func (w *World) AddRoads(edges []geometry.Edge) {
	for _, edge := range edges {
		w.SetRoad(edge, true)
	}
}

// PlanRoad marks or clears (when == nil) pending construction on an edge.
func (w *World) PlanRoad(road geometry.Edge, when *int64) {
	w.MutCellUnsafe(road.From()).PlannedRoad.Axis(road.Horizontal()).From = when
	w.MutCellUnsafe(road.To()).PlannedRoad.Axis(road.Horizontal()).To = when
}

func (w *World) RoadPlanned(edge geometry.Edge) *int64 {
	cell := w.GetCell(edge.From())
	if cell == nil {
		return nil
	}
	return cell.PlannedRoad.Axis(edge.Horizontal()).From
}

func (w *World) is(edge geometry.Edge, junction func(*Cell) Junction) bool {
	from := w.GetCell(edge.From())
	if from == nil {
		return false
	}
	to := w.GetCell(edge.To())
	if to == nil {
		return false
	}
	j := junction(from)
	k := junction(to)
	if edge.Horizontal() {
		return j.Horizontal.From && k.Horizontal.To
	}
	return j.Vertical.From && k.Vertical.To
}

func (w *World) IsRoad(edge geometry.Edge) bool {
	return w.is(edge, func(c *Cell) Junction { return c.Road })
}

func (w *World) IsRiver(edge geometry.Edge) bool {
	return w.is(edge, func(c *Cell) Junction { return c.River })
}

func (w *World) IsRiverOrRoad(edge geometry.Edge) bool {
	return w.is(edge, func(c *Cell) Junction { return c.Junction() })
}

func (w *World) RevealAll() {
	w.cells.ForEach(func(_ geometry.Position, c *Cell) { c.Visible = true })
}

// Snap moves a continuous coordinate to the nearest cell corner, taking its
// elevation.
func (w *World) Snap(coord geometry.V3) geometry.V3 {
	position := coord.XY().Position()
	z := coord.Z
	if cell := w.GetCell(position); cell != nil {
		z = cell.Elevation
	}
	return geometry.V3{X: float64(position.X), Y: float64(position.Y), Z: z}
}

// SnapToMiddle maps a continuous coordinate to the midpoint elevation of the
// tile containing it.
func (w *World) SnapToMiddle(coord geometry.V2) (float64, bool) {
	x := int(math.Floor(coord.X))
	y := int(math.Floor(coord.Y))
	a := w.GetCell(geometry.Pos(x, y))
	b := w.GetCell(geometry.Pos(x+1, y+1))
	if a == nil || b == nil {
		return 0, false
	}
	return (a.Elevation + b.Elevation) / 2, true
}

// GetCorners returns the four corners of the tile at position, clockwise
// from the position itself. Corners may be out of bounds.
func GetCorners(position geometry.Position) [4]geometry.Position {
	return [4]geometry.Position{
		position,
		position.Add(geometry.Pos(1, 0)),
		position.Add(geometry.Pos(1, 1)),
		position.Add(geometry.Pos(0, 1)),
	}
}

func (w *World) GetCornersInBounds(position geometry.Position) []geometry.Position {
	var out []geometry.Position
	for _, corner := range GetCorners(position) {
		if w.InBounds(corner) {
			out = append(out, corner)
		}
	}
	return out
}

// GetBorder returns the four edges around the tile at position.
func (w *World) GetBorder(position geometry.Position) [4]geometry.Edge {
	corners := GetCorners(position)
	var out [4]geometry.Edge
	for i := 0; i < 4; i++ {
		out[i] = geometry.NewEdge(corners[i], corners[(i+1)%4])
	}
	return out
}

// ExpandPosition returns the tiles containing position as a corner, used to
// decide which tiles to redraw when a vertex changes.
func (w *World) ExpandPosition(position geometry.Position) []geometry.Position {
	var out []geometry.Position
	for _, d := range [4]geometry.Position{{X: -1, Y: -1}, {X: 0, Y: -1}, {X: -1, Y: 0}, {X: 0, Y: 0}} {
		tile := position.Add(d)
		if w.InBounds(tile) {
			out = append(out, tile)
		}
	}
	return out
}

// Neighbours returns the in-bounds orthogonal neighbours of position.
func (w *World) Neighbours(position geometry.Position) []geometry.Position {
	var out []geometry.Position
	for _, d := range [4]geometry.Position{{X: 1}, {X: -1}, {Y: 1}, {Y: -1}} {
		if n := position.Add(d); w.InBounds(n) {
			out = append(out, n)
		}
	}
	return out
}

func (w *World) GetRise(from, to geometry.Position) (float64, bool) {
	a := w.GetCell(from)
	b := w.GetCell(to)
	if a == nil || b == nil {
		return 0, false
	}
	return b.Elevation - a.Elevation, true
}

func (w *World) GetLowestCorner(tile geometry.Position) float64 {
	lowest := math.Inf(1)
	for _, corner := range GetCorners(tile) {
		if cell := w.GetCell(corner); cell != nil && cell.Elevation < lowest {
			lowest = cell.Elevation
		}
	}
	return lowest
}

func (w *World) GetHighestCorner(tile geometry.Position) float64 {
	highest := math.Inf(-1)
	for _, corner := range GetCorners(tile) {
		if cell := w.GetCell(corner); cell != nil && cell.Elevation > highest {
			highest = cell.Elevation
		}
	}
	return highest
}

// GetMaxAbsRise returns the steepest absolute rise along the tile border.
func (w *World) GetMaxAbsRise(tile geometry.Position) float64 {
	max := 0.0
	for _, edge := range w.GetBorder(tile) {
		if rise, ok := w.GetRise(edge.From(), edge.To()); ok {
			if abs := math.Abs(rise); abs > max {
				max = abs
			}
		}
	}
	return max
}

// TileAverage averages f over the tile's in-bounds corners, skipping corners
// where f returns false. Returns false when every corner is skipped.
func (w *World) TileAverage(tile geometry.Position, f func(*Cell) (float64, bool)) (float64, bool) {
	sum := 0.0
	count := 0
	for _, corner := range w.GetCornersInBounds(tile) {
		if v, ok := f(w.MutCellUnsafe(corner)); ok {
			sum += v
			count++
		}
	}
	if count == 0 {
		return 0, false
	}
	return sum / float64(count), true
}

func (w *World) TileAvgGroundwater(tile geometry.Position) (float64, bool) {
	return w.TileAverage(tile, func(c *Cell) (float64, bool) {
		if w.IsSea(c.Position) {
			return 0, false
		}
		return c.Climate.Groundwater, true
	})
}

func (w *World) TileAvgTemperature(tile geometry.Position) (float64, bool) {
	return w.TileAverage(tile, func(c *Cell) (float64, bool) {
		if w.IsSea(c.Position) {
			return 0, false
		}
		return c.Climate.Temperature, true
	})
}
