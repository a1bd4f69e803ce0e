package artist

import (
	"frontier.sim/internal/geometry"
)

// WorldArtist draws the terrain slab by slab, remembering when each slab
// was last drawn so stale redraw requests collapse into nothing.
type WorldArtist struct {
	params     ColoringParams
	slabSize   int
	lastRedraw map[geometry.Position]int64
}

func NewWorldArtist(params ColoringParams, slabSize int) *WorldArtist {
	return &WorldArtist{
		params:     params,
		slabSize:   slabSize,
		lastRedraw: map[geometry.Position]int64{},
	}
}

// RedrawAll draws every slab covering the world.
func (a *WorldArtist) RedrawAll(view View, micros int64) []Command {
	var out []Command
	for _, slab := range AllSlabs(view.World.Width(), view.World.Height(), a.slabSize) {
		out = append(out, a.redrawSlab(view, slab, micros)...)
	}
	return out
}

// RedrawTile draws the slab containing the tile. A request timestamped
// before the slab's last redraw is already reflected and is dropped.
func (a *WorldArtist) RedrawTile(view View, tile geometry.Position, micros int64) []Command {
	return a.redrawSlab(view, SlabAt(tile, a.slabSize), micros)
}

func (a *WorldArtist) redrawSlab(view View, slab Slab, micros int64) []Command {
	if last, ok := a.lastRedraw[slab.From]; ok && micros < last {
		return nil
	}
	kind := CommandCreate
	if _, ok := a.lastRedraw[slab.From]; ok {
		kind = CommandUpdate
	}
	tiles := slab.Tiles(view.World.Width()-1, view.World.Height()-1)
	colored := make([]TileColor, 0, len(tiles))
	for _, tile := range tiles {
		colored = append(colored, TileColor{
			Position: tile,
			Color:    tileColor(view, a.params, tile),
		})
	}
	a.lastRedraw[slab.From] = micros
	return []Command{{Kind: kind, Name: slab.Name(), Tiles: colored}}
}
