package travel

import (
	"frontier.sim/internal/geometry"
	"frontier.sim/internal/world"
)

type Mode string

const (
	ModeWalk        Mode = "WALK"
	ModeRoad        Mode = "ROAD"
	ModePlannedRoad Mode = "PLANNED_ROAD"
	ModeStream      Mode = "STREAM"
	ModeRiver       Mode = "RIVER"
	ModeSea         Mode = "SEA"
)

type ModeClass int

const (
	ClassLand ModeClass = iota
	ClassWater
)

func (m Mode) Class() ModeClass {
	switch m {
	case ModeRiver, ModeSea:
		return ClassWater
	}
	return ClassLand
}

// ModeFn classifies how an avatar moves over a position or an edge.
type ModeFn interface {
	ModeBetween(w *world.World, from, to geometry.Position) (Mode, bool)
	ModesHere(w *world.World, position geometry.Position) []Mode
}

/// AvatarModeFn picks modes from junctions: roads beat planned roads beat
// navigable rivers beat streams; sea beats everything on water.
type AvatarModeFn struct {
	minRiverWidth       float64
	includePlannedRoads bool
}

func NewAvatarModeFn(minRiverWidth float64, includePlannedRoads bool) *AvatarModeFn {
	return &AvatarModeFn{minRiverWidth: minRiverWidth, includePlannedRoads: includePlannedRoads}
}

func (f *AvatarModeFn) navigableRiverHere(w *world.World, position geometry.Position) bool {
	cell := w.GetCell(position)
	if cell == nil {
		return false
	}
	return cell.River.LongestSide() >= f.minRiverWidth
}

func (f *AvatarModeFn) navigableRiver(w *world.World, from, to geometry.Position) bool {
	return w.IsRiver(geometry.NewEdge(from, to)) &&
		f.navigableRiverHere(w, from) &&
		f.navigableRiverHere(w, to)
}

func (f *AvatarModeFn) ModeBetween(w *world.World, from, to geometry.Position) (Mode, bool) {
	if !w.InBounds(from) || !w.InBounds(to) {
		return "", false
	}
	edge := geometry.NewEdge(from, to)
	switch {
	case w.IsSea(from) && w.IsSea(to):
		return ModeSea, true
	case w.IsRoad(edge):
		return ModeRoad, true
	case f.includePlannedRoads && w.RoadPlanned(edge) != nil:
		return ModePlannedRoad, true
	case f.navigableRiver(w, from, to):
		return ModeRiver, true
	case w.IsRiver(edge):
		return ModeStream, true
	}
	return ModeWalk, true
}

func (f *AvatarModeFn) ModesHere(w *world.World, position geometry.Position) []Mode {
	cell := w.GetCell(position)
	if cell == nil {
		return nil
	}
	var out []Mode
	if cell.Road.Here() {
		out = append(out, ModeRoad)
	} else if f.includePlannedRoads && cell.PlannedRoad.Here() {
		out = append(out, ModePlannedRoad)
	}
	if w.IsSea(position) {
		out = append(out, ModeSea)
	} else if f.navigableRiverHere(w, position) {
		out = append(out, ModeRiver)
	} else if cell.River.Here() {
		out = append(out, ModeStream)
	}
	if len(out) == 0 {
		out = append(out, ModeWalk)
	}
	return out
}

func classesHere(fn ModeFn, w *world.World, position geometry.Position) map[ModeClass]bool {
	classes := map[ModeClass]bool{}
	for _, mode := range fn.ModesHere(w, position) {
		classes[mode.Class()] = true
	}
	return classes
}

// ModeChange reports whether moving between the positions requires switching
// between land and water travel.
func ModeChange(fn ModeFn, w *world.World, from, to geometry.Position) bool {
	fromClasses := classesHere(fn, w, from)
	toClasses := classesHere(fn, w, to)
	if len(fromClasses) == 0 && len(toClasses) == 0 {
		return false
	}
	for class := range fromClasses {
		if toClasses[class] {
			return false
		}
	}
	return true
}

// CheckForPort returns the land-side position of a land/water boundary
// crossing, where a port would be needed.
func CheckForPort(fn ModeFn, w *world.World, from, to geometry.Position) (geometry.Position, bool) {
	fromClasses := classesHere(fn, w, from)
	toClasses := classesHere(fn, w, to)
	if len(fromClasses) == 0 || len(toClasses) == 0 {
		return geometry.Position{}, false
	}
	fromWater := fromClasses[ClassWater]
	toWater := toClasses[ClassWater]
	switch {
	case fromWater && !toWater:
		return to, true
	case !fromWater && toWater:
		return from, true
	}
	return geometry.Position{}, false
}
