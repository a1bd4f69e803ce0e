package worldgen

import (
	"math"
	"sort"

	"frontier.sim/internal/geometry"
	"frontier.sim/internal/world"
)

// traceRivers accumulates rainfall downhill. Every land cell drains into
// its lowest strictly-lower neighbour; where the accumulated flow passes
// the threshold the drain edge becomes a river, widening with flow.
func traceRivers(w *world.World, rain *geometry.Grid[float64], params Params) {
	var land []geometry.Position
	flow := geometry.NewGrid[float64](w.Width(), w.Height())
	w.ForEachCell(func(position geometry.Position, _ *world.Cell) {
		if w.IsSea(position) {
			return
		}
		land = append(land, position)
		flow.Set(position, *rain.GetUnsafe(position))
	})
	sort.Slice(land, func(i, j int) bool {
		return w.GetCell(land[i]).Elevation > w.GetCell(land[j]).Elevation
	})

	width := riverWidth(params)
	for _, position := range land {
		drain, ok := lowestNeighbour(w, position)
		if !ok {
			continue
		}
		here := *flow.GetUnsafe(position)
		flow.Set(drain, *flow.GetUnsafe(drain)+here)
		if here >= params.RiverThreshold {
			setRiverEdge(w, geometry.NewEdge(position, drain), width(here))
		}
	}
}

func lowestNeighbour(w *world.World, position geometry.Position) (geometry.Position, bool) {
	elevation := w.GetCell(position).Elevation
	var best geometry.Position
	found := false
	for _, neighbour := range w.Neighbours(position) {
		candidate := w.GetCell(neighbour).Elevation
		if candidate < elevation {
			elevation = candidate
			best = neighbour
			found = true
		}
	}
	return best, found
}

// riverWidth maps flow onto the width range; width grows with the square
// root of flow and saturates at a hundred times the threshold.
func riverWidth(params Params) func(flow float64) float64 {
	scale := geometry.NewScale(1, 10, params.RiverWidthRange[0], params.RiverWidthRange[1])
	return func(flow float64) float64 {
		t := math.Sqrt(flow / params.RiverThreshold)
		if t < 1 {
			t = 1
		}
		if t > 10 {
			t = 10
		}
		return scale.Scale(t)
	}
}

// setRiverEdge marks flow along an edge on both end cells, keeping the
// widest flow seen at each end.
func setRiverEdge(w *world.World, edge geometry.Edge, width float64) {
	from := w.MutCellUnsafe(edge.From()).River.Axis(edge.Horizontal())
	from.From = true
	if width > from.Width {
		from.Width = width
	}
	to := w.MutCellUnsafe(edge.To()).River.Axis(edge.Horizontal())
	to.To = true
	if width > to.Width {
		to.Width = width
	}
}
