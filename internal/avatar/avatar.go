package avatar

import (
	"fmt"
	"sort"

	"frontier.sim/internal/geometry"
)

// Avatar is a named entity following a journey.
type Avatar struct {
	Name    string   `json:"name"`
	Journey *Journey `json:"journey"`
}

// Avatars is the avatar registry with at most one selected avatar.
type Avatars struct {
	byName   map[string]*Avatar
	selected string
}

func NewAvatars() *Avatars {
	return &Avatars{byName: map[string]*Avatar{}}
}

func (a *Avatars) Add(avatar *Avatar) {
	a.byName[avatar.Name] = avatar
}

func (a *Avatars) Get(name string) *Avatar {
	return a.byName[name]
}

func (a *Avatars) Remove(name string) {
	delete(a.byName, name)
	if a.selected == name {
		a.selected = ""
	}
}

// Select marks the named avatar as controlled. Selecting an unknown name
// clears the selection.
func (a *Avatars) Select(name string) {
	if _, ok := a.byName[name]; !ok {
		a.selected = ""
		return
	}
	a.selected = name
}

func (a *Avatars) Selected() *Avatar {
	if a.selected == "" {
		return nil
	}
	return a.byName[a.selected]
}

// ForEach visits avatars in name order.
func (a *Avatars) ForEach(f func(*Avatar)) {
	names := make([]string, 0, len(a.byName))
	for name := range a.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		f(a.byName[name])
	}
}

// Controls translates movement commands into journey edits. Every command
// stops the current journey first so edits take effect from the avatar's
// present location.
type Controls struct {
	Inputs JourneyInputs
}

// WalkForward extends the journey one step ahead of the avatar's facing.
func (c Controls) WalkForward(journey *Journey, micros int64) (*Journey, error) {
	stopped := journey.Stop(micros)
	step, err := NewJourney(c.Inputs, stopped.ForwardPath(), stopped.FinalFrame().ArrivalMicros)
	if err != nil {
		return nil, err
	}
	return stopped.Append(step)
}

// WalkPath routes the avatar along a path starting at its stop position.
func (c Controls) WalkPath(journey *Journey, path []geometry.Position, micros int64) (*Journey, error) {
	stopped := journey.Stop(micros)
	if len(path) == 0 {
		return nil, fmt.Errorf("empty path")
	}
	if path[0] != stopped.FinalFrame().Position {
		return nil, fmt.Errorf("path starts at %v, avatar stops at %v",
			path[0], stopped.FinalFrame().Position)
	}
	next, err := NewJourney(c.Inputs, path, stopped.FinalFrame().ArrivalMicros)
	if err != nil {
		return nil, err
	}
	return stopped.Append(next)
}

// Stop halts the avatar where it is, finishing any step in progress.
func (c Controls) Stop(journey *Journey, micros int64) *Journey {
	return journey.Stop(micros)
}

func (c Controls) RotateClockwise(journey *Journey, micros int64) *Journey {
	stopped := journey.Stop(micros)
	return stopped.ThenRotate(stopped.FinalFrame().Rotation.Clockwise())
}

func (c Controls) RotateAnticlockwise(journey *Journey, micros int64) *Journey {
	stopped := journey.Stop(micros)
	return stopped.ThenRotate(stopped.FinalFrame().Rotation.Anticlockwise())
}
