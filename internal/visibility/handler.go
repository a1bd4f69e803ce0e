package visibility

import "frontier.sim/internal/geometry"

// Handler feeds not-yet-visited cells to the computer, so repeat visits
// never recompute a sight check. Disabling it (the reveal-all cheat)
// bypasses all line-of-sight work; RevealAll reports true exactly once so
// callers mark every cell visible a single time.
type Handler struct {
	computer    *Computer
	elevations  *geometry.Grid[float64]
	visited     *geometry.Grid[bool]
	active      bool
	revealedAll bool
}

func NewHandler(computer *Computer, elevations *geometry.Grid[float64]) *Handler {
	return &Handler{
		computer:   computer,
		elevations: elevations,
		visited:    geometry.NewGrid[bool](elevations.Width(), elevations.Height()),
		active:     true,
	}
}

// Disable turns off line-of-sight computation permanently.
func (h *Handler) Disable() {
	h.active = false
}

func (h *Handler) Active() bool {
	return h.active
}

// RevealAll is the once-only trigger for the reveal-all mode. It returns
// true the first time it is called on a disabled handler.
func (h *Handler) RevealAll() bool {
	if h.active || h.revealedAll {
		return false
	}
	h.revealedAll = true
	return true
}

// CheckAndReveal returns every position visible from the given visited
// positions, skipping positions already checked. Returns nil when the
// handler is disabled.
func (h *Handler) CheckAndReveal(positions []geometry.Position) []geometry.Position {
	if !h.active {
		return nil
	}
	visible := map[geometry.Position]bool{}
	for _, position := range positions {
		seen := h.visited.Get(position)
		if seen == nil || *seen {
			continue
		}
		*h.visited.GetUnsafe(position) = true
		for revealed := range h.computer.VisibleFrom(h.elevations, position) {
			visible[revealed] = true
		}
	}
	out := make([]geometry.Position, 0, len(visible))
	for position := range visible {
		out = append(out, position)
	}
	return out
}

// Visited reports whether a sight check has already run from a position.
func (h *Handler) Visited(position geometry.Position) bool {
	seen := h.visited.Get(position)
	return seen != nil && *seen
}
