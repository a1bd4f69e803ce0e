package artist

import (
	"fmt"

	"frontier.sim/internal/geometry"
)

// Slab is a square block of tiles drawn as one unit, so a single tile
// change only redraws its block.
type Slab struct {
	From geometry.Position
	Size int
}

// SlabAt is the slab containing the tile.
func SlabAt(tile geometry.Position, size int) Slab {
	return Slab{
		From: geometry.Pos((tile.X/size)*size, (tile.Y/size)*size),
		Size: size,
	}
}

func (s Slab) Name() string {
	return fmt.Sprintf("world-slab-%d-%d", s.From.X, s.From.Y)
}

// Tiles lists the slab's tiles clipped to the world bounds.
func (s Slab) Tiles(width, height int) []geometry.Position {
	var out []geometry.Position
	for y := s.From.Y; y < s.From.Y+s.Size && y < height; y++ {
		for x := s.From.X; x < s.From.X+s.Size && x < width; x++ {
			out = append(out, geometry.Pos(x, y))
		}
	}
	return out
}

// AllSlabs tiles the whole world with slabs.
func AllSlabs(width, height, size int) []Slab {
	var out []Slab
	for y := 0; y < height; y += size {
		for x := 0; x < width; x += size {
			out = append(out, Slab{From: geometry.Pos(x, y), Size: size})
		}
	}
	return out
}
