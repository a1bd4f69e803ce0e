// Package avatar models movable entities: timestamped journeys over the
// grid, vehicles, and the avatars that follow them.
package avatar

import "math"

type Rotation string

const (
	RotationLeft  Rotation = "LEFT"
	RotationUp    Rotation = "UP"
	RotationRight Rotation = "RIGHT"
	RotationDown  Rotation = "DOWN"
)

func (r Rotation) Clockwise() Rotation {
	switch r {
	case RotationLeft:
		return RotationUp
	case RotationUp:
		return RotationRight
	case RotationRight:
		return RotationDown
	default:
		return RotationLeft
	}
}

func (r Rotation) Anticlockwise() Rotation {
	switch r {
	case RotationLeft:
		return RotationDown
	case RotationUp:
		return RotationLeft
	case RotationRight:
		return RotationUp
	default:
		return RotationRight
	}
}

// Angle is the facing in radians, a quarter turn per step from Left.
func (r Rotation) Angle() float64 {
	switch r {
	case RotationLeft:
		return 0
	case RotationUp:
		return math.Pi / 2
	case RotationRight:
		return math.Pi
	default:
		return 3 * math.Pi / 2
	}
}
