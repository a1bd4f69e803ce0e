package artist

import (
	"fmt"
	"math"
	"sort"

	"frontier.sim/internal/geometry"
	"frontier.sim/internal/settlement"
)

// TownArtistParams size the house drawn for each settlement.
type TownArtistParams struct {
	HouseBaseHeight     float64 `yaml:"house_base_height" json:"house_base_height"`
	HouseHeightPerPop   float64 `yaml:"house_height_per_pop" json:"house_height_per_pop"`
	HouseMaxHeight      float64 `yaml:"house_max_height" json:"house_max_height"`
	LabelMinPopulation  float64 `yaml:"label_min_population" json:"label_min_population"`
}

func DefaultTownArtistParams() TownArtistParams {
	return TownArtistParams{
		HouseBaseHeight:    0.25,
		HouseHeightPerPop:  0.05,
		HouseMaxHeight:     2.0,
		LabelMinPopulation: 1.0,
	}
}

// TownArtist draws a house and a label per settlement, tinted with the
// settlement's nation color.
type TownArtist struct {
	params TownArtistParams
	drawn  map[geometry.Position]bool
}

func NewTownArtist(params TownArtistParams) *TownArtist {
	return &TownArtist{params: params, drawn: map[geometry.Position]bool{}}
}

func houseDrawingName(position geometry.Position) string {
	return fmt.Sprintf("town-house-%d-%d", position.X, position.Y)
}

func labelDrawingName(position geometry.Position) string {
	return fmt.Sprintf("town-label-%d-%d", position.X, position.Y)
}

// Draw redraws every settlement and erases drawings of removed ones.
func (a *TownArtist) Draw(view View, micros int64) []Command {
	var out []Command
	seen := map[geometry.Position]bool{}
	for _, town := range sortedSettlements(view.Settlements) {
		seen[town.Position] = true
		out = append(out, a.drawHouse(view, town)...)
		out = append(out, a.drawLabel(view, town)...)
	}
	for position := range a.drawn {
		if !seen[position] {
			delete(a.drawn, position)
			out = append(out, Erase(houseDrawingName(position)), Erase(labelDrawingName(position)))
		}
	}
	for _, town := range sortedSettlements(view.Settlements) {
		a.drawn[town.Position] = true
	}
	return out
}

func (a *TownArtist) drawHouse(view View, town *settlement.Settlement) []Command {
	kind := CommandCreate
	if a.drawn[town.Position] {
		kind = CommandUpdate
	}
	color := settlement.Color{R: 0.5, G: 0.5, B: 0.5, A: 1.0}
	if nation := view.Nations[town.Nation]; nation != nil {
		color = nation.Description.Color
	}
	height := a.params.HouseBaseHeight + a.params.HouseHeightPerPop*town.CurrentPopulation
	if height > a.params.HouseMaxHeight {
		height = a.params.HouseMaxHeight
	}
	elevation := view.World.GetHighestCorner(town.Position)
	if elevation < view.World.SeaLevel() {
		elevation = view.World.SeaLevel()
	}
	at := geometry.V3XYZ(float64(town.Position.X)+0.5, float64(town.Position.Y)+0.5, elevation)
	return []Command{{
		Kind:   kind,
		Name:   houseDrawingName(town.Position),
		At:     &at,
		Color:  &color,
		Height: height,
	}}
}

func (a *TownArtist) drawLabel(view View, town *settlement.Settlement) []Command {
	if town.CurrentPopulation < a.params.LabelMinPopulation {
		if a.drawn[town.Position] {
			return []Command{Erase(labelDrawingName(town.Position))}
		}
		return nil
	}
	kind := CommandCreate
	if a.drawn[town.Position] {
		kind = CommandUpdate
	}
	at := geometry.V3XYZ(
		float64(town.Position.X)+0.5,
		float64(town.Position.Y)+0.5,
		view.World.GetHighestCorner(town.Position),
	)
	return []Command{{
		Kind: kind,
		Name: labelDrawingName(town.Position),
		At:   &at,
		Text: fmt.Sprintf("%s (%d)", town.Name, int(math.Floor(town.CurrentPopulation))),
	}}
}

func sortedSettlements(settlements settlement.Settlements) []*settlement.Settlement {
	out := make([]*settlement.Settlement, 0, len(settlements))
	for _, town := range settlements {
		out = append(out, town)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Position, out[j].Position
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})
	return out
}
