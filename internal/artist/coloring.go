package artist

import (
	"time"

	"frontier.sim/internal/geometry"
	"frontier.sim/internal/settlement"
	"frontier.sim/internal/territory"
	"frontier.sim/internal/world"
)

// BaseColoringParams are the terrain palette colors.
type BaseColoringParams struct {
	Sea        settlement.Color `yaml:"sea" json:"sea"`
	Cliff      settlement.Color `yaml:"cliff" json:"cliff"`
	Beach      settlement.Color `yaml:"beach" json:"beach"`
	Desert     settlement.Color `yaml:"desert" json:"desert"`
	Vegetation settlement.Color `yaml:"vegetation" json:"vegetation"`
	Snow       settlement.Color `yaml:"snow" json:"snow"`
}

func DefaultBaseColoringParams() BaseColoringParams {
	return BaseColoringParams{
		Sea:        settlement.Color{R: 0.0, G: 0.0, B: 1.0, A: 1.0},
		Cliff:      settlement.Color{R: 0.5, G: 0.4, B: 0.3, A: 1.0},
		Beach:      settlement.Color{R: 1.0, G: 1.0, B: 0.0, A: 1.0},
		Desert:     settlement.Color{R: 1.0, G: 0.8, B: 0.6, A: 1.0},
		Vegetation: settlement.Color{R: 0.0, G: 1.0, B: 0.0, A: 1.0},
		Snow:       settlement.Color{R: 1.0, G: 1.0, B: 1.0, A: 1.0},
	}
}

// TerritoryColoringParams tint controlled tiles with the controller's
// nation color. Exclusive control is shown stronger than contested reach.
type TerritoryColoringParams struct {
	ExclusiveAlpha    float64 `yaml:"exclusive_alpha" json:"exclusive_alpha"`
	NonExclusiveAlpha float64 `yaml:"non_exclusive_alpha" json:"non_exclusive_alpha"`
}

func DefaultTerritoryColoringParams() TerritoryColoringParams {
	return TerritoryColoringParams{ExclusiveAlpha: 0.3, NonExclusiveAlpha: 0.15}
}

type ColoringParams struct {
	Base            BaseColoringParams      `yaml:"base" json:"base"`
	Territory       TerritoryColoringParams `yaml:"territory" json:"territory"`
	CliffGradient   float64                 `yaml:"cliff_gradient" json:"cliff_gradient"`
	BeachLevel      float64                 `yaml:"beach_level" json:"beach_level"`
	SnowTemperature float64                 `yaml:"snow_temperature" json:"snow_temperature"`
}

func DefaultColoringParams() ColoringParams {
	return ColoringParams{
		Base:            DefaultBaseColoringParams(),
		Territory:       DefaultTerritoryColoringParams(),
		CliffGradient:   0.5,
		BeachLevel:      1.05,
		SnowTemperature: 0.0,
	}
}

// View is the slice of game state a redraw reads.
type View struct {
	World              *world.World
	Territory          *territory.Territory
	Settlements        settlement.Settlements
	Nations            settlement.Nations
	TownTravelDuration time.Duration
	TerritoryLayer     bool
}

// tileColor picks the terrain color: sea, then cliff, then snow, then
// beach, otherwise vegetation blended toward desert by groundwater. The
// territory layer tints the result with the controlling nation's color.
func tileColor(view View, params ColoringParams, tile geometry.Position) settlement.Color {
	color := baseColor(view.World, params, tile)
	if !view.TerritoryLayer {
		return color
	}
	overlay, ok := territoryColor(view, params.Territory, tile)
	if !ok {
		return color
	}
	return blend(overlay, overlay.A, color)
}

func baseColor(w *world.World, params ColoringParams, tile geometry.Position) settlement.Color {
	if w.GetHighestCorner(tile) <= w.SeaLevel() {
		return params.Base.Sea
	}
	if w.GetMaxAbsRise(tile) > params.CliffGradient {
		return params.Base.Cliff
	}
	if temperature, ok := w.TileAvgTemperature(tile); ok && temperature < params.SnowTemperature {
		return params.Base.Snow
	}
	if w.GetLowestCorner(tile) <= params.BeachLevel {
		return params.Base.Beach
	}
	groundwater, _ := w.TileAvgGroundwater(tile)
	return blend(params.Base.Vegetation, groundwater, params.Base.Desert)
}

func territoryColor(view View, params TerritoryColoringParams, tile geometry.Position) (settlement.Color, bool) {
	claim := view.Territory.WhoControlsTile(tile)
	if claim == nil {
		return settlement.Color{}, false
	}
	controller := view.Settlements.Get(claim.Controller)
	if controller == nil {
		return settlement.Color{}, false
	}
	nation := view.Nations[controller.Nation]
	if nation == nil {
		return settlement.Color{}, false
	}
	color := nation.Description.Color
	if claim.Duration <= view.TownTravelDuration {
		color.A = params.ExclusiveAlpha
	} else {
		color.A = params.NonExclusiveAlpha
	}
	return color, true
}

// blend mixes a toward b: t = 1 gives a, t = 0 gives b.
func blend(a settlement.Color, t float64, b settlement.Color) settlement.Color {
	return settlement.Color{
		R: a.R*t + b.R*(1-t),
		G: a.G*t + b.G*(1-t),
		B: a.B*t + b.B*(1-t),
		A: a.A*t + b.A*(1-t),
	}
}
