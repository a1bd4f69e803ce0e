package world

import "frontier.sim/internal/geometry"

type ObjectKind string

const (
	ObjectNone       ObjectKind = "NONE"
	ObjectCrop       ObjectKind = "CROP"
	ObjectHouse      ObjectKind = "HOUSE"
	ObjectFarm       ObjectKind = "FARM"
	ObjectVegetation ObjectKind = "VEGETATION"
)

// Object is the world-object variant stored per cell. Fields beyond Kind are
// meaningful only for the kinds that carry them.
type Object struct {
	Kind       ObjectKind     `json:"kind"`
	Rotated    bool           `json:"rotated,omitempty"`
	Vegetation VegetationType `json:"vegetation,omitempty"`
	Offset     geometry.V2    `json:"offset,omitempty"`
}

func NoObject() Object { return Object{Kind: ObjectNone} }

func Crop(rotated bool) Object { return Object{Kind: ObjectCrop, Rotated: rotated} }

func House() Object { return Object{Kind: ObjectHouse} }

func Vegetation(t VegetationType, offset geometry.V2) Object {
	return Object{Kind: ObjectVegetation, Vegetation: t, Offset: offset}
}

type VegetationType string

const (
	SnowTree      VegetationType = "SNOW_TREE"
	EvergreenTree VegetationType = "EVERGREEN"
	DeciduousTree VegetationType = "DECIDUOUS"
	PalmTree      VegetationType = "PALM"
	Cactus        VegetationType = "CACTUS"
)

var VegetationTypes = []VegetationType{SnowTree, EvergreenTree, DeciduousTree, PalmTree, Cactus}

func (t VegetationType) Name() string {
	switch t {
	case SnowTree:
		return "snow_tree"
	case EvergreenTree:
		return "evergreen"
	case DeciduousTree:
		return "deciduous"
	case PalmTree:
		return "palm"
	case Cactus:
		return "cactus"
	}
	return "unknown"
}

func (t VegetationType) InRangeTemperature(temperature float64) bool {
	switch t {
	case SnowTree:
		return temperature >= -5 && temperature < 0
	case EvergreenTree:
		return temperature >= 0 && temperature < 10
	case DeciduousTree:
		return temperature >= 10 && temperature < 20
	case PalmTree:
		return temperature >= 20
	case Cactus:
		return temperature >= 10
	}
	return false
}

func (t VegetationType) InRangeGroundwater(groundwater float64) bool {
	if t == Cactus {
		return groundwater < 0.1
	}
	return groundwater >= 0.1
}
