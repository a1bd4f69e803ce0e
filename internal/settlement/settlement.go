// Package settlement models homelands and towns: their population
// dynamics, nation allegiance and naming.
package settlement

import (
	"time"

	"frontier.sim/internal/geometry"
	"frontier.sim/internal/world"
)

type Class string

const (
	ClassHomeland Class = "homeland"
	ClassTown     Class = "town"
)

// Settlement is one homeland or town. CurrentPopulation converges toward
// TargetPopulation with a half-life of GapHalfLife.
type Settlement struct {
	Position                   geometry.Position `json:"position"`
	Class                      Class             `json:"class"`
	Name                       string            `json:"name"`
	Nation                     string            `json:"nation"`
	CurrentPopulation          float64           `json:"current_population"`
	TargetPopulation           float64           `json:"target_population"`
	GapHalfLife                time.Duration     `json:"gap_half_life"`
	LastPopulationUpdateMicros int64             `json:"last_population_update_micros"`
}

// Settlements indexes every live settlement by position.
type Settlements map[geometry.Position]*Settlement

func (s Settlements) Get(position geometry.Position) *Settlement {
	return s[position]
}

func (s Settlements) Add(settlement *Settlement) {
	s[settlement.Position] = settlement
}

func (s Settlements) Remove(position geometry.Position) {
	delete(s, position)
}

// AtCorner finds the settlement whose tile has the given position as one
// of its four corners.
func (s Settlements) AtCorner(position geometry.Position) *Settlement {
	for _, settlement := range s {
		for _, corner := range world.GetCorners(settlement.Position) {
			if corner == position {
				return settlement
			}
		}
	}
	return nil
}

func (s Settlements) Homelands() []*Settlement {
	var out []*Settlement
	for _, settlement := range s {
		if settlement.Class == ClassHomeland {
			out = append(out, settlement)
		}
	}
	return out
}

func (s Settlements) Towns() []*Settlement {
	var out []*Settlement
	for _, settlement := range s {
		if settlement.Class == ClassTown {
			out = append(out, settlement)
		}
	}
	return out
}
