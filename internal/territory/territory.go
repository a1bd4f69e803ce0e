// Package territory tracks which settlement controls which corner of the
// world. Every controller claims the positions it can reach; contested
// positions go to the fastest claim, ties to the oldest.
package territory

import (
	"time"

	"frontier.sim/internal/geometry"
	"frontier.sim/internal/world"
)

// Claim is one controller's hold on one position.
type Claim struct {
	Controller  geometry.Position `json:"controller"`
	Position    geometry.Position `json:"position"`
	Duration    time.Duration     `json:"duration"`
	SinceMicros int64             `json:"since_micros"`
}

// less orders claims by strength: shorter travel first, then earlier claim,
// then coordinates for determinism.
func (c Claim) less(other Claim) bool {
	if c.Duration != other.Duration {
		return c.Duration < other.Duration
	}
	if c.SinceMicros != other.SinceMicros {
		return c.SinceMicros < other.SinceMicros
	}
	if c.Controller != other.Controller {
		if c.Controller.X != other.Controller.X {
			return c.Controller.X < other.Controller.X
		}
		return c.Controller.Y < other.Controller.Y
	}
	if c.Position.X != other.Position.X {
		return c.Position.X < other.Position.X
	}
	return c.Position.Y < other.Position.Y
}

// Change reports a position gained or lost by a controller.
type Change struct {
	Controller geometry.Position
	Position   geometry.Position
	Controlled bool
}

func Gain(controller, position geometry.Position) Change {
	return Change{Controller: controller, Position: position, Controlled: true}
}

func Loss(controller, position geometry.Position) Change {
	return Change{Controller: controller, Position: position, Controlled: false}
}

type Territory struct {
	territory map[geometry.Position]map[geometry.Position]bool
	claims    *geometry.Grid[map[geometry.Position]Claim]
}

func New(width, height int) *Territory {
	claims := geometry.NewGrid[map[geometry.Position]Claim](width, height)
	claims.ForEach(func(_ geometry.Position, cell *map[geometry.Position]Claim) {
		*cell = map[geometry.Position]Claim{}
	})
	return &Territory{
		territory: map[geometry.Position]map[geometry.Position]bool{},
		claims:    claims,
	}
}

func (t *Territory) AddController(controller geometry.Position) {
	t.territory[controller] = map[geometry.Position]bool{}
}

func (t *Territory) HasController(controller geometry.Position) bool {
	_, ok := t.territory[controller]
	return ok
}

// RemoveController drops every claim the controller holds and forgets it,
// reporting the resulting changes.
func (t *Territory) RemoveController(controller geometry.Position) []Change {
	changes := t.SetDurations(controller, nil, 0)
	delete(t.territory, controller)
	return changes
}

// SetDurations replaces the controller's reachable set. Positions no longer
// reachable are released; new positions are claimed keeping the original
// claim time on re-claims. Unknown controllers are ignored.
func (t *Territory) SetDurations(
	controller geometry.Position,
	durations map[geometry.Position]time.Duration,
	micros int64,
) []Change {
	held, ok := t.territory[controller]
	if !ok {
		return nil
	}

	var changes []Change
	for position := range held {
		if _, keep := durations[position]; keep {
			continue
		}
		previous := t.WhoControls(position)
		delete(*t.claims.GetUnsafe(position), controller)
		changes = append(changes, controllerChanges(position, previous, t.WhoControls(position))...)
	}

	newHeld := make(map[geometry.Position]bool, len(durations))
	for position, duration := range durations {
		newHeld[position] = true
		previous := t.WhoControls(position)
		claims := *t.claims.GetUnsafe(position)
		since := micros
		if existing, ok := claims[controller]; ok {
			since = existing.SinceMicros
		}
		claims[controller] = Claim{
			Controller:  controller,
			Position:    position,
			Duration:    duration,
			SinceMicros: since,
		}
		changes = append(changes, controllerChanges(position, previous, t.WhoControls(position))...)
	}
	t.territory[controller] = newHeld

	return changes
}

func controllerChanges(position geometry.Position, previous, current *Claim) []Change {
	if previous == nil && current == nil {
		return nil
	}
	if previous != nil && current != nil && previous.Controller == current.Controller {
		return nil
	}
	var out []Change
	if previous != nil {
		out = append(out, Loss(previous.Controller, position))
	}
	if current != nil {
		out = append(out, Gain(current.Controller, position))
	}
	return out
}

// WhoControls returns the strongest claim on the position, nil when
// unclaimed or out of bounds.
func (t *Territory) WhoControls(position geometry.Position) *Claim {
	claims := t.claims.Get(position)
	if claims == nil {
		return nil
	}
	return strongest(*claims)
}

// WhoControlsTile consults the four corners of the tile and returns the
// strongest claim among them.
func (t *Territory) WhoControlsTile(tile geometry.Position) *Claim {
	var best *Claim
	for _, corner := range world.GetCorners(tile) {
		claims := t.claims.Get(corner)
		if claims == nil {
			continue
		}
		if claim := strongest(*claims); claim != nil && (best == nil || claim.less(*best)) {
			best = claim
		}
	}
	return best
}

func strongest(claims map[geometry.Position]Claim) *Claim {
	var best *Claim
	for _, claim := range claims {
		claim := claim
		if best == nil || claim.less(*best) {
			best = &claim
		}
	}
	return best
}

func (t *Territory) AnyoneControls(position geometry.Position) bool {
	claims := t.claims.Get(position)
	return claims != nil && len(*claims) > 0
}

func (t *Territory) IsControlledBy(position, controller geometry.Position) bool {
	claim := t.WhoControls(position)
	return claim != nil && claim.Controller == controller
}

// Controlled returns the positions the controller actually controls, i.e.
// holds the strongest claim on.
func (t *Territory) Controlled(controller geometry.Position) []geometry.Position {
	var out []geometry.Position
	for position := range t.territory[controller] {
		if t.IsControlledBy(position, controller) {
			out = append(out, position)
		}
	}
	return out
}

// Controllers lists every registered controller.
func (t *Territory) Controllers() []geometry.Position {
	out := make([]geometry.Position, 0, len(t.territory))
	for controller := range t.territory {
		out = append(out, controller)
	}
	return out
}
