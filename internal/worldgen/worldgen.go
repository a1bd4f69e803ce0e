// Package worldgen builds playable worlds from layered simplex noise:
// equalized elevations with a sea border, downhill rivers, climate,
// vegetation and resource placement.
package worldgen

import (
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"

	"frontier.sim/internal/geometry"
	"frontier.sim/internal/routes"
	"frontier.sim/internal/world"
)

type Params struct {
	Power           int        `yaml:"power" json:"power"`
	Seed            int64      `yaml:"seed" json:"seed"`
	MaxHeight       float64    `yaml:"max_height" json:"max_height"`
	SeaLevel        float64    `yaml:"sea_level" json:"sea_level"`
	BeachLevel      float64    `yaml:"beach_level" json:"beach_level"`
	LatitudeRange   [2]float64 `yaml:"latitude_range" json:"latitude_range"`
	CliffGradient   float64    `yaml:"cliff_gradient" json:"cliff_gradient"`
	RiverThreshold  float64    `yaml:"river_threshold" json:"river_threshold"`
	RiverWidthRange [2]float64 `yaml:"river_width_range" json:"river_width_range"`
	ShallowDepthPc  float64    `yaml:"shallow_depth_pc" json:"shallow_depth_pc"`
	VegetationCover float64    `yaml:"vegetation_cover" json:"vegetation_cover"`
}

func DefaultParams() Params {
	return Params{
		Power:           8,
		Seed:            1,
		MaxHeight:       16.0,
		SeaLevel:        1.0,
		BeachLevel:      1.05,
		LatitudeRange:   [2]float64{0.0, 50.0},
		CliffGradient:   0.5,
		RiverThreshold:  16.0,
		RiverWidthRange: [2]float64{0.01, 0.5},
		ShallowDepthPc:  0.25,
		VegetationCover: 0.4,
	}
}

// Size is the side length of the generated grid: 2^power + 1.
func (p Params) Size() int {
	return 1<<uint(p.Power) + 1
}

// Generate builds the world and its resource layout. The same params
// always produce the same world.
func Generate(params Params) (*world.World, *geometry.Grid[routes.Resource]) {
	rng := rand.New(rand.NewSource(params.Seed))

	elevations := generateElevations(params)
	out := world.New(elevations, params.SeaLevel)

	loadTemperatures(out, params)
	groundwater := generateGroundwater(out, params)
	traceRivers(out, groundwater, params)
	boostRiverGroundwater(out, groundwater)
	loadGroundwater(out, groundwater)

	loadVegetation(out, params, rng)
	resources := generateResources(out, params, rng)
	return out, resources
}

// generateElevations layers octaves of simplex noise, equalizes the
// result onto [0,1] and rescales to the height range. The border ring is
// forced under the sea so every world is an island.
func generateElevations(params Params) *geometry.Grid[float64] {
	size := params.Size()
	noise := opensimplex.NewNormalized(params.Seed)
	octaves := params.Power
	if octaves < 1 {
		octaves = 1
	}

	elevations := geometry.NewGrid[float64](size, size)
	elevations.ForEach(func(position geometry.Position, value *float64) {
		*value = octaveNoise(noise, float64(position.X), float64(position.Y), octaves, 4.0/float64(size), 0.5)
	})

	geometry.Equalize(elevations)
	scale := geometry.NewScale(0, 1, 0, params.MaxHeight)
	elevations.ForEach(func(_ geometry.Position, value *float64) {
		*value = scale.Scale(*value)
	})
	withSeaBorder(elevations)
	return elevations
}

func withSeaBorder(elevations *geometry.Grid[float64]) {
	width, height := elevations.Width(), elevations.Height()
	for x := 0; x < width; x++ {
		elevations.Set(geometry.Pos(x, 0), 0)
		elevations.Set(geometry.Pos(x, height-1), 0)
	}
	for y := 0; y < height; y++ {
		elevations.Set(geometry.Pos(0, y), 0)
		elevations.Set(geometry.Pos(width-1, y), 0)
	}
}

func newNormalizedNoise(seed int64) opensimplex.Noise {
	return opensimplex.NewNormalized(seed)
}

func octaveNoise(noise opensimplex.Noise, x, y float64, octaves int, frequency, persistence float64) float64 {
	total := 0.0
	amplitude := 1.0
	max := 0.0
	for i := 0; i < octaves; i++ {
		total += noise.Eval2(x*frequency, y*frequency) * amplitude
		max += amplitude
		amplitude *= persistence
		frequency *= 2
	}
	return total / max
}
