package worldgen

import (
	"math/rand"

	"frontier.sim/internal/geometry"
	"frontier.sim/internal/world"
)

// Temperatures follow latitude and drop with elevation, roughly 6.5
// degrees per simulated kilometre up to four kilometres at max height.
const (
	maxElevationMetres = 4000.0
	lapsePerMetre      = 0.0065
)

func loadTemperatures(w *world.World, params Params) {
	latitude := geometry.NewScale(0, float64(w.Height()), params.LatitudeRange[0], params.LatitudeRange[1])
	metres := geometry.NewScale(w.SeaLevel(), w.MaxHeight(), 0, maxElevationMetres)

	w.ForEachCell(func(position geometry.Position, cell *world.Cell) {
		temperature := 30.0 - latitude.Scale(float64(position.Y))*0.8
		if cell.Elevation > w.SeaLevel() {
			temperature -= metres.Scale(cell.Elevation) * lapsePerMetre
		}
		cell.Climate.Temperature = temperature
	})
}

// generateGroundwater is rainfall noise equalized over land only; sea
// cells stay at zero.
func generateGroundwater(w *world.World, params Params) *geometry.Grid[float64] {
	noise := newNormalizedNoise(params.Seed + 1)
	out := geometry.NewGrid[float64](w.Width(), w.Height())
	out.ForEach(func(position geometry.Position, value *float64) {
		*value = octaveNoise(noise, float64(position.X), float64(position.Y), 3, 6.0/float64(w.Width()), 0.5)
	})
	geometry.EqualizeWithFilter(out, func(position geometry.Position, _ float64) bool {
		return !w.IsSea(position)
	})
	out.ForEach(func(position geometry.Position, value *float64) {
		if w.IsSea(position) {
			*value = 0
		}
	})
	return out
}

// boostRiverGroundwater saturates cells a river flows through.
func boostRiverGroundwater(w *world.World, groundwater *geometry.Grid[float64]) {
	w.ForEachCell(func(position geometry.Position, cell *world.Cell) {
		if cell.River.Here() {
			groundwater.Set(position, 1.0)
		}
	})
}

func loadGroundwater(w *world.World, groundwater *geometry.Grid[float64]) {
	w.ForEachCell(func(position geometry.Position, cell *world.Cell) {
		cell.Climate.Groundwater = *groundwater.GetUnsafe(position)
	})
}

// loadVegetation places one plant per covered land tile, picking the
// first type whose climate ranges match.
func loadVegetation(w *world.World, params Params, rng *rand.Rand) {
	noise := newNormalizedNoise(params.Seed + 2)
	w.ForEachCell(func(position geometry.Position, cell *world.Cell) {
		density := octaveNoise(noise, float64(position.X), float64(position.Y), 3, 8.0/float64(w.Width()), 0.5)
		cell.Climate.Vegetation = density
		if w.IsSea(position) || cell.River.Here() {
			return
		}
		if density <= 1.0-params.VegetationCover {
			return
		}
		for _, candidate := range world.VegetationTypes {
			if candidate.InRangeTemperature(cell.Climate.Temperature) &&
				candidate.InRangeGroundwater(cell.Climate.Groundwater) {
				offset := geometry.V2{X: 0.15 + rng.Float64()*0.7, Y: 0.15 + rng.Float64()*0.7}
				cell.Object = world.Vegetation(candidate, offset)
				return
			}
		}
	})
}
