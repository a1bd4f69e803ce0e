package world

import "frontier.sim/internal/geometry"

// Climate is computed once at world generation.
type Climate struct {
	Temperature float64 `json:"temperature"`
	Groundwater float64 `json:"groundwater"`
	Vegetation  float64 `json:"vegetation"`
}

// PlannedRoad1D marks pending road construction along one axis with the
// micros at which it is due.
type PlannedRoad1D struct {
	From *int64 `json:"from,omitempty"`
	To   *int64 `json:"to,omitempty"`
}

func (p *PlannedRoad1D) Either() bool { return p.From != nil || p.To != nil }

type PlannedRoad struct {
	Horizontal PlannedRoad1D `json:"horizontal,omitempty"`
	Vertical   PlannedRoad1D `json:"vertical,omitempty"`
}

func (p *PlannedRoad) Axis(horizontal bool) *PlannedRoad1D {
	if horizontal {
		return &p.Horizontal
	}
	return &p.Vertical
}

func (p *PlannedRoad) Here() bool { return p.Horizontal.Either() || p.Vertical.Either() }

type Cell struct {
	Position    geometry.Position `json:"position"`
	Elevation   float64           `json:"elevation"`
	Visible     bool              `json:"visible"`
	River       Junction          `json:"river,omitempty"`
	Road        Junction          `json:"road,omitempty"`
	Platform    Junction          `json:"platform,omitempty"`
	PlannedRoad PlannedRoad       `json:"planned_road,omitempty"`
	Climate     Climate           `json:"climate"`
	Object      Object            `json:"object"`
}

func NewCell(position geometry.Position, elevation float64) Cell {
	return Cell{Position: position, Elevation: elevation, Object: NoObject()}
}

// Junction merges river, road and platform connectivity at this cell.
func (c *Cell) Junction() Junction {
	return Junction{
		Horizontal: mergeJunction1D(c.River.Horizontal, c.Road.Horizontal, c.Platform.Horizontal),
		Vertical:   mergeJunction1D(c.River.Vertical, c.Road.Vertical, c.Platform.Vertical),
	}
}
