package bridges

import (
	"frontier.sim/internal/geometry"
)

// Bridges indexes bridges by their total edge. Any number of theoretical
// crossings may coexist per edge; at most one built bridge does.
type Bridges struct {
	byEdge map[geometry.Edge][]*Bridge
}

func NewBridges() *Bridges {
	return &Bridges{byEdge: map[geometry.Edge][]*Bridge{}}
}

// Add inserts the bridge under its total edge. A built bridge replaces any
// existing built bridge on the same edge.
func (b *Bridges) Add(bridge *Bridge) {
	edge := bridge.TotalEdge()
	existing := b.byEdge[edge]
	if bridge.Kind == Built {
		kept := existing[:0]
		for _, candidate := range existing {
			if candidate.Kind != Built {
				kept = append(kept, candidate)
			}
		}
		existing = kept
	}
	b.byEdge[edge] = append(existing, bridge)
}

func (b *Bridges) At(edge geometry.Edge) []*Bridge {
	return b.byEdge[edge]
}

func (b *Bridges) Built(edge geometry.Edge) *Bridge {
	for _, bridge := range b.byEdge[edge] {
		if bridge.Kind == Built {
			return bridge
		}
	}
	return nil
}

func (b *Bridges) ForEach(f func(geometry.Edge, []*Bridge)) {
	for edge, bridges := range b.byEdge {
		f(edge, bridges)
	}
}

// CountPlatformsAt counts platform piers of the given kind standing at the
// position, used to decide whether a platform survives bridge removal.
func (b *Bridges) CountPlatformsAt(position geometry.Position, kind Kind) int {
	count := 0
	for _, bridges := range b.byEdge {
		for _, bridge := range bridges {
			if bridge.Kind != kind {
				continue
			}
			for _, pier := range bridge.Piers {
				if pier.Platform && pier.Position == position {
					count++
				}
			}
		}
	}
	return count
}
