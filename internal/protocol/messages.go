package protocol

import (
	"frontier.sim/internal/artist"
	"frontier.sim/internal/geometry"
)

// HELLO (renderer -> server)
type HelloMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	RendererName    string `json:"renderer_name"`
}

// WELCOME (server -> renderer)
type WelcomeMsg struct {
	Type            string      `json:"type"`
	ProtocolVersion string      `json:"protocol_version"`
	SessionID       string      `json:"session_id"`
	WorldParams     WorldParams `json:"world_params"`
}

// WorldParams is what the renderer needs to size and light the scene.
type WorldParams struct {
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	SeaLevel  float64 `json:"sea_level"`
	MaxHeight float64 `json:"max_height"`
	Seed      int64   `json:"seed"`
	Power     int     `json:"power"`
}

// DRAW (server -> renderer): a batch of keyed draw commands generated at
// the given game instant.
type DrawMsg struct {
	Type            string           `json:"type"`
	ProtocolVersion string           `json:"protocol_version"`
	Micros          int64            `json:"micros"`
	Commands        []artist.Command `json:"commands"`
}

// EVENT (renderer -> server)
type EventMsg struct {
	Type            string     `json:"type"`
	ProtocolVersion string     `json:"protocol_version"`
	Event           InputEvent `json:"event"`
}

// Input event kinds.
const (
	EventWorldPositionChanged = "WORLD_POSITION_CHANGED"
	EventButton               = "BUTTON"
	EventTick                 = "TICK"
	EventShutdown             = "SHUTDOWN"
)

// InputEvent is one renderer-side occurrence. Only the fields the kind
// uses are set.
type InputEvent struct {
	Kind          string             `json:"kind"`
	Position      *geometry.Position `json:"position,omitempty"`
	Button        *ButtonEvent       `json:"button,omitempty"`
	ElapsedMicros int64              `json:"elapsed_micros,omitempty"`
}

// Button states.
const (
	StatePressed  = "PRESSED"
	StateReleased = "RELEASED"
)

type ButtonEvent struct {
	Key       string    `json:"key"`
	State     string    `json:"state"`
	Modifiers Modifiers `json:"modifiers"`
}

type Modifiers struct {
	Ctrl  bool `json:"ctrl,omitempty"`
	Alt   bool `json:"alt,omitempty"`
	Shift bool `json:"shift,omitempty"`
}

// ERROR (server -> renderer)
type ErrorMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	Code            string `json:"code"`
	Message         string `json:"message,omitempty"`
}
