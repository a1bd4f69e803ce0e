package artist

import (
	"encoding/json"
	"fmt"
	"sort"

	"frontier.sim/internal/geometry"
	"frontier.sim/internal/world"
)

// Labels are user-placed text markers keyed by position. They persist in
// their own save file, independent of the simulation state.
type Labels struct {
	byPosition map[geometry.Position]string
}

func NewLabels() *Labels {
	return &Labels{byPosition: map[geometry.Position]string{}}
}

// Set places or replaces a label; an empty text removes it.
func (l *Labels) Set(position geometry.Position, text string) {
	if text == "" {
		delete(l.byPosition, position)
		return
	}
	l.byPosition[position] = text
}

func (l *Labels) Get(position geometry.Position) string {
	return l.byPosition[position]
}

func (l *Labels) Len() int {
	return len(l.byPosition)
}

func (l *Labels) ForEach(f func(geometry.Position, string)) {
	for _, position := range l.sortedPositions() {
		f(position, l.byPosition[position])
	}
}

func (l *Labels) sortedPositions() []geometry.Position {
	out := make([]geometry.Position, 0, len(l.byPosition))
	for position := range l.byPosition {
		out = append(out, position)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}

type labelJSON struct {
	Position geometry.Position `json:"position"`
	Text     string            `json:"text"`
}

func (l *Labels) MarshalJSON() ([]byte, error) {
	out := make([]labelJSON, 0, len(l.byPosition))
	for _, position := range l.sortedPositions() {
		out = append(out, labelJSON{Position: position, Text: l.byPosition[position]})
	}
	return json.Marshal(out)
}

func (l *Labels) UnmarshalJSON(data []byte) error {
	var in []labelJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	l.byPosition = make(map[geometry.Position]string, len(in))
	for _, label := range in {
		l.byPosition[label.Position] = label.Text
	}
	return nil
}

func userLabelName(position geometry.Position) string {
	return fmt.Sprintf("label-%d-%d", position.X, position.Y)
}

// LabelArtist draws user labels floating over their positions.
type LabelArtist struct {
	drawn map[geometry.Position]bool
}

func NewLabelArtist() *LabelArtist {
	return &LabelArtist{drawn: map[geometry.Position]bool{}}
}

func (a *LabelArtist) Draw(w *world.World, labels *Labels) []Command {
	var out []Command
	seen := map[geometry.Position]bool{}
	labels.ForEach(func(position geometry.Position, text string) {
		seen[position] = true
		kind := CommandCreate
		if a.drawn[position] {
			kind = CommandUpdate
		}
		a.drawn[position] = true
		elevation := w.SeaLevel()
		if cell := w.GetCell(position); cell != nil && cell.Elevation > elevation {
			elevation = cell.Elevation
		}
		at := geometry.V3XYZ(float64(position.X), float64(position.Y), elevation)
		out = append(out, Command{
			Kind: kind,
			Name: userLabelName(position),
			At:   &at,
			Text: text,
		})
	})
	for position := range a.drawn {
		if !seen[position] {
			delete(a.drawn, position)
			out = append(out, Erase(userLabelName(position)))
		}
	}
	return out
}
