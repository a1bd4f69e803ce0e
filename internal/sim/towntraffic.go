package sim

import (
	"frontier.sim/internal/geometry"
	"frontier.sim/internal/routes"
	"frontier.sim/internal/settlement"
)

// TownTraffic reacts to GetTownTraffic: summarises, per nation, the
// traffic share the town's territory captures from routes crossing it,
// then chains into the town update.
type TownTraffic struct{}

func (TownTraffic) Process(game *Game, state *State, instruction Instruction) {
	if instruction.Kind != InstructionGetTownTraffic {
		return
	}
	territory := positionSet(instruction.Territory)

	var summaries []settlement.TrafficSummary
	for key := range routeKeysThrough(state, instruction.Territory) {
		if summary, ok := trafficSummary(game, state, key, territory); ok {
			summaries = append(summaries, summary)
		}
	}

	state.Push(Instruction{
		Kind:       InstructionUpdateTown,
		Settlement: instruction.Settlement,
		Traffic:    aggregateByNation(summaries),
	})
}

func routeKeysThrough(state *State, territory []geometry.Position) map[routes.RouteKey]bool {
	out := map[routes.RouteKey]bool{}
	for _, position := range territory {
		for key := range state.Traffic.At(position) {
			out[key] = true
		}
	}
	return out
}

// trafficSummary is the share of one route's traffic this territory
// captures. Routes originating inside the territory carry no share; the
// share grows with the destination and ports lying inside it.
func trafficSummary(
	game *Game,
	state *State,
	key routes.RouteKey,
	territory map[geometry.Position]bool,
) (settlement.TrafficSummary, bool) {
	if territory[key.Settlement] {
		return settlement.TrafficSummary{}, false
	}
	origin := game.Settlements.AtCorner(key.Settlement)
	if origin == nil {
		return settlement.TrafficSummary{}, false
	}

	ports := state.RouteToPorts[key]
	portsInTerritory := 0
	for port := range ports {
		if territory[port] {
			portsInTerritory++
		}
	}
	multiplier := portsInTerritory
	if territory[key.Destination] {
		multiplier++
	}
	if multiplier == 0 {
		return settlement.TrafficSummary{}, false
	}

	route, ok := state.Routes.Get(key)
	if !ok {
		return settlement.TrafficSummary{}, false
	}
	denominator := float64(len(ports) + 1)
	return settlement.TrafficSummary{
		Nation:        origin.Nation,
		TrafficShare:  float64(route.Traffic*multiplier) / denominator,
		TotalDuration: route.Duration,
	}, true
}

func aggregateByNation(summaries []settlement.TrafficSummary) []settlement.TrafficSummary {
	byNation := map[string]int{}
	var out []settlement.TrafficSummary
	for _, summary := range summaries {
		if i, ok := byNation[summary.Nation]; ok {
			out[i].TrafficShare += summary.TrafficShare
			out[i].TotalDuration += summary.TotalDuration
			continue
		}
		byNation[summary.Nation] = len(out)
		out = append(out, summary)
	}
	return out
}

func positionSet(positions []geometry.Position) map[geometry.Position]bool {
	out := make(map[geometry.Position]bool, len(positions))
	for _, position := range positions {
		out[position] = true
	}
	return out
}
