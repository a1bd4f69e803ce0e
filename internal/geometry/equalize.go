package geometry

import "sort"

type positionValue struct {
	position Position
	value    float64
}

// Equalize replaces each value with its rank scaled onto [0, 1], flattening
// the value histogram. Ties keep scan order (column-major, y fastest).
func Equalize(grid *Grid[float64]) {
	EqualizeWithFilter(grid, func(Position, float64) bool { return true })
}

// EqualizeWithFilter equalizes only cells accepted by the filter; the rest
// are left untouched.
func EqualizeWithFilter(grid *Grid[float64], filter func(Position, float64) bool) {
	sorted := make([]positionValue, 0, grid.Width()*grid.Height())
	for x := 0; x < grid.Width(); x++ {
		for y := 0; y < grid.Height(); y++ {
			position := Pos(x, y)
			value := *grid.GetUnsafe(position)
			if filter(position, value) {
				sorted = append(sorted, positionValue{position: position, value: value})
			}
		}
	}
	if len(sorted) == 0 {
		return
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].value < sorted[j].value })

	scale := NewScale(0, float64(len(sorted)-1), 0, 1)
	for i, pv := range sorted {
		grid.Set(pv.position, scale.Scale(float64(i)))
	}
}
