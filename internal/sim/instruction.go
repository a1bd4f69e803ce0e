// Package sim is the simulation driver: a LIFO instruction stack worked
// by an ordered list of processors, a keyed build queue drained by
// builders, and the traffic ledger tying settlements to routes.
package sim

import (
	"frontier.sim/internal/geometry"
	"frontier.sim/internal/routes"
	"frontier.sim/internal/settlement"
)

type InstructionKind string

const (
	InstructionStep                     InstructionKind = "step"
	InstructionRefreshPositions         InstructionKind = "refresh_positions"
	InstructionRefreshEdges             InstructionKind = "refresh_edges"
	InstructionGetTerritory             InstructionKind = "get_territory"
	InstructionGetTownTraffic           InstructionKind = "get_town_traffic"
	InstructionUpdateTown               InstructionKind = "update_town"
	InstructionUpdateCurrentPopulation  InstructionKind = "update_current_population"
	InstructionUpdateHomelandPopulation InstructionKind = "update_homeland_population"
	InstructionGetDemand                InstructionKind = "get_demand"
	InstructionGetRoutes                InstructionKind = "get_routes"
	InstructionGetRouteChanges          InstructionKind = "get_route_changes"
	InstructionProcessRouteChanges      InstructionKind = "process_route_changes"
	InstructionBuild                    InstructionKind = "build"
)

// Instruction is one unit of simulation work. Kind selects the variant;
// only the fields that variant carries are set.
type Instruction struct {
	Kind         InstructionKind             `json:"kind"`
	Position     geometry.Position           `json:"position,omitempty"`
	Positions    []geometry.Position         `json:"positions,omitempty"`
	Edges        []geometry.Edge             `json:"edges,omitempty"`
	Settlement   *settlement.Settlement      `json:"settlement,omitempty"`
	Territory    []geometry.Position         `json:"territory,omitempty"`
	Traffic      []settlement.TrafficSummary `json:"traffic,omitempty"`
	Demand       *routes.Demand              `json:"demand,omitempty"`
	RouteSetKey  *routes.RouteSetKey         `json:"route_set_key,omitempty"`
	RouteSet     []KeyedRoute                `json:"route_set,omitempty"`
	RouteChanges []routes.Change             `json:"route_changes,omitempty"`
}

// KeyedRoute flattens a RouteSet entry for serialization.
type KeyedRoute struct {
	Key   routes.RouteKey `json:"key"`
	Route routes.Route    `json:"route"`
}

func flattenRouteSet(routeSet routes.RouteSet) []KeyedRoute {
	out := make([]KeyedRoute, 0, len(routeSet))
	for key, route := range routeSet {
		out = append(out, KeyedRoute{Key: key, Route: route})
	}
	return out
}

func expandRouteSet(flattened []KeyedRoute) routes.RouteSet {
	out := make(routes.RouteSet, len(flattened))
	for _, entry := range flattened {
		out[entry.Key] = entry.Route
	}
	return out
}
