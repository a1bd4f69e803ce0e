// Package artist turns game state into keyed draw commands for the
// renderer. Each drawing has a stable name; redrawing under the same name
// replaces it, Erase removes it.
package artist

import (
	"frontier.sim/internal/geometry"
	"frontier.sim/internal/settlement"
)

type CommandKind string

const (
	CommandCreate CommandKind = "CREATE"
	CommandUpdate CommandKind = "UPDATE"
	CommandErase  CommandKind = "ERASE"
)

// TileColor colors one tile of a slab drawing.
type TileColor struct {
	Position geometry.Position `json:"position"`
	Color    settlement.Color  `json:"color"`
}

// Command is one renderer instruction. Only the fields a drawing kind
// needs are set; the rest stay empty on the wire.
type Command struct {
	Kind     CommandKind       `json:"kind"`
	Name     string            `json:"name"`
	Tiles    []TileColor       `json:"tiles,omitempty"`
	At       *geometry.V3      `json:"at,omitempty"`
	Color    *settlement.Color `json:"color,omitempty"`
	Text     string            `json:"text,omitempty"`
	Rotation string            `json:"rotation,omitempty"`
	Vehicle  string            `json:"vehicle,omitempty"`
	Height   float64           `json:"height,omitempty"`
}

func Erase(name string) Command {
	return Command{Kind: CommandErase, Name: name}
}
