package worldgen

import (
	"math"
	"math/rand"
	"sort"

	"frontier.sim/internal/geometry"
	"frontier.sim/internal/routes"
	"frontier.sim/internal/world"
)

// Limited resources appear a fixed number of times per world; everything
// else fills every candidate tile.
var resourceCounts = map[routes.Resource]int{
	routes.ResourceBananas:  8,
	routes.ResourceBison:    8,
	routes.ResourceCoal:     8,
	routes.ResourceCrabs:    8,
	routes.ResourceDeer:     8,
	routes.ResourceFur:      8,
	routes.ResourceGems:     4,
	routes.ResourceGold:     2,
	routes.ResourceIron:     8,
	routes.ResourceIvory:    6,
	routes.ResourceSpice:    8,
	routes.ResourceTruffles: 6,
	routes.ResourceWhales:   8,
}

// Spread widens the candidate pool the final picks are drawn from, so
// scarce resources cluster where the placement noise is low.
var resourceSpreads = map[routes.Resource]int{
	routes.ResourceBananas:  32,
	routes.ResourceBison:    32,
	routes.ResourceCoal:     8,
	routes.ResourceCrabs:    32,
	routes.ResourceDeer:     32,
	routes.ResourceFur:      32,
	routes.ResourceGems:     8,
	routes.ResourceGold:     8,
	routes.ResourceIron:     8,
	routes.ResourceIvory:    32,
	routes.ResourceSpice:    8,
	routes.ResourceTruffles: 32,
	routes.ResourceWhales:   128,
}

func generateResources(w *world.World, params Params, rng *rand.Rand) *geometry.Grid[routes.Resource] {
	out := geometry.NewGridFilled(w.Width(), w.Height(), routes.ResourceNone)
	taken := map[geometry.Position]bool{}

	for offset, resource := range routes.Resources {
		count := resourceCounts[resource]
		if count == 0 {
			continue
		}
		candidates := resourceCandidates(w, params, resource)
		kept := candidates[:0]
		for _, candidate := range candidates {
			if !taken[candidate] {
				kept = append(kept, candidate)
			}
		}
		kept = nearestByNoise(kept, params.Seed+100+int64(offset), count*resourceSpreads[resource])
		rng.Shuffle(len(kept), func(i, j int) { kept[i], kept[j] = kept[j], kept[i] })
		if len(kept) > count {
			kept = kept[:count]
		}
		for _, position := range kept {
			out.Set(position, resource)
			taken[position] = true
		}
	}

	for _, resource := range routes.Resources {
		if _, limited := resourceCounts[resource]; limited {
			continue
		}
		for _, position := range resourceCandidates(w, params, resource) {
			if *out.GetUnsafe(position) == routes.ResourceNone {
				out.Set(position, resource)
			}
		}
	}
	return out
}

// nearestByNoise sorts candidates by a per-resource noise layer and
// keeps the lowest limit of them.
func nearestByNoise(candidates []geometry.Position, seed int64, limit int) []geometry.Position {
	noise := newNormalizedNoise(seed)
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		return noise.Eval2(float64(a.X), float64(a.Y)) < noise.Eval2(float64(b.X), float64(b.Y))
	})
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates
}

func resourceCandidates(w *world.World, params Params, resource routes.Resource) []geometry.Position {
	var out []geometry.Position
	w.ForEachCell(func(position geometry.Position, _ *world.Cell) {
		if isResourceCandidate(w, params, resource, position) {
			out = append(out, position)
		}
	})
	return out
}

func isResourceCandidate(w *world.World, params Params, resource routes.Resource, position geometry.Position) bool {
	if isBeach(w, params, position) {
		return false
	}
	land := !w.IsSea(position)
	switch resource {
	case routes.ResourceBananas:
		return land && hasVegetationAdjacent(w, position, world.PalmTree)
	case routes.ResourceBison:
		return land && isFlat(w, params, position) && amongVegetationClimate(w, position, world.EvergreenTree)
	case routes.ResourceCoal, routes.ResourceIron, routes.ResourceStone:
		return land && isCliff(w, params, position)
	case routes.ResourceCrabs:
		return inSeaBetweenDepths(w, position, 0, params.ShallowDepthPc)
	case routes.ResourceCrops:
		return land && isFarmland(w, position)
	case routes.ResourceDeer:
		return land && isFlat(w, params, position) && amongVegetationClimate(w, position, world.DeciduousTree)
	case routes.ResourceFur:
		return land && hasVegetationAdjacent(w, position, world.EvergreenTree)
	case routes.ResourceGems:
		return land
	case routes.ResourceGold:
		return land && w.GetCell(position).River.Here()
	case routes.ResourceIvory:
		return land && isFlat(w, params, position) && amongVegetationClimate(w, position, world.PalmTree)
	case routes.ResourcePasture:
		return land && isFlat(w, params, position) && isFarmland(w, position)
	case routes.ResourceSpice:
		return land && hasVegetationAdjacent(w, position, world.PalmTree)
	case routes.ResourceTruffles:
		return land && hasVegetationAdjacent(w, position, world.DeciduousTree)
	case routes.ResourceWhales:
		return inSeaBetweenDepths(w, position, params.ShallowDepthPc, 1)
	case routes.ResourceWood:
		return land && (hasVegetationAdjacent(w, position, world.PalmTree) ||
			hasVegetationAdjacent(w, position, world.DeciduousTree) ||
			hasVegetationAdjacent(w, position, world.EvergreenTree))
	}
	return false
}

func isBeach(w *world.World, params Params, position geometry.Position) bool {
	cell := w.GetCell(position)
	if cell == nil {
		return false
	}
	return cell.Elevation > w.SeaLevel() && cell.Elevation <= params.BeachLevel
}

const (
	farmlandMinGroundwater = 0.1
	farmlandMaxSlope       = 0.2
	farmlandMinTemperature = 0.0
)

func isFarmland(w *world.World, position geometry.Position) bool {
	cell := w.GetCell(position)
	return cell.Climate.Groundwater >= farmlandMinGroundwater &&
		cell.Climate.Temperature >= farmlandMinTemperature &&
		w.GetMaxAbsRise(position) <= farmlandMaxSlope
}

func hasVegetationAdjacent(w *world.World, position geometry.Position, t world.VegetationType) bool {
	for _, tile := range w.ExpandPosition(position) {
		cell := w.GetCell(tile)
		if cell != nil && cell.Object.Kind == world.ObjectVegetation && cell.Object.Vegetation == t {
			return true
		}
	}
	return false
}

// amongVegetationClimate is a clearing: no objects nearby, but the tile's
// climate suits the vegetation type.
func amongVegetationClimate(w *world.World, position geometry.Position, t world.VegetationType) bool {
	for _, tile := range w.ExpandPosition(position) {
		cell := w.GetCell(tile)
		if cell != nil && cell.Object.Kind != world.ObjectNone {
			return false
		}
	}
	cell := w.GetCell(position)
	return t.InRangeTemperature(cell.Climate.Temperature) &&
		t.InRangeGroundwater(cell.Climate.Groundwater)
}

func isCliff(w *world.World, params Params, position geometry.Position) bool {
	edges := countAdjacentCliffEdges(w, params, position)
	return edges >= 1 && edges <= 2
}

func isFlat(w *world.World, params Params, position geometry.Position) bool {
	return countAdjacentCliffEdges(w, params, position) == 0
}

func countAdjacentCliffEdges(w *world.World, params Params, position geometry.Position) int {
	count := 0
	for _, neighbour := range w.Neighbours(position) {
		if rise, ok := w.GetRise(position, neighbour); ok && math.Abs(rise) > params.CliffGradient {
			count++
		}
	}
	return count
}

func inSeaBetweenDepths(w *world.World, position geometry.Position, fromPc, toPc float64) bool {
	cell := w.GetCell(position)
	if cell == nil {
		return false
	}
	from := w.SeaLevel() * (1 - fromPc)
	to := w.SeaLevel() * (1 - toPc)
	return cell.Elevation >= to && cell.Elevation <= from
}
