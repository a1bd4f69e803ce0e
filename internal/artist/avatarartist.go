package artist

import (
	"fmt"

	"frontier.sim/internal/avatar"
)

// AvatarArtist places one drawing per avatar at its interpolated world
// coordinate.
type AvatarArtist struct {
	drawn map[string]bool
}

func NewAvatarArtist() *AvatarArtist {
	return &AvatarArtist{drawn: map[string]bool{}}
}

func avatarDrawingName(name string) string {
	return fmt.Sprintf("avatar-%s", name)
}

// Draw redraws every avatar at the instant and erases drawings for
// avatars that no longer exist.
func (a *AvatarArtist) Draw(avatars *avatar.Avatars, micros int64) []Command {
	var out []Command
	seen := map[string]bool{}
	avatars.ForEach(func(av *avatar.Avatar) {
		seen[av.Name] = true
		kind := CommandCreate
		if a.drawn[av.Name] {
			kind = CommandUpdate
		}
		a.drawn[av.Name] = true
		coord := av.Journey.WorldCoordAt(micros)
		frame := av.Journey.FrameAt(micros)
		out = append(out, Command{
			Kind:     kind,
			Name:     avatarDrawingName(av.Name),
			At:       &coord,
			Rotation: string(frame.Rotation),
			Vehicle:  string(frame.Vehicle),
		})
	})
	for name := range a.drawn {
		if !seen[name] {
			delete(a.drawn, name)
			out = append(out, Erase(avatarDrawingName(name)))
		}
	}
	return out
}
