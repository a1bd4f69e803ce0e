package routes

import "frontier.sim/internal/geometry"

// Demand is a settlement's appetite for a resource: how many independent
// sources it wants and how much traffic each route carries.
type Demand struct {
	Position geometry.Position `json:"position"`
	Resource Resource          `json:"resource"`
	Sources  int               `json:"sources"`
	Quantity int               `json:"quantity"`
}
