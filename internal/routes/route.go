package routes

import (
	"fmt"
	"time"

	"frontier.sim/internal/geometry"
)

// Route is one settlement's path to one resource destination.
type Route struct {
	Path        []geometry.Position `json:"path"`
	StartMicros int64               `json:"start_micros"`
	Duration    time.Duration       `json:"duration"`
	Traffic     int                 `json:"traffic"`
}

// RouteKey identifies a route: who travels, for what, to where.
type RouteKey struct {
	Settlement  geometry.Position `json:"settlement"`
	Resource    Resource          `json:"resource"`
	Destination geometry.Position `json:"destination"`
}

func (k RouteKey) String() string {
	return fmt.Sprintf("%d,%d-%s-%d,%d",
		k.Settlement.X, k.Settlement.Y, k.Resource, k.Destination.X, k.Destination.Y)
}

// RouteSetKey groups routes by origin and resource.
type RouteSetKey struct {
	Settlement geometry.Position `json:"settlement"`
	Resource   Resource          `json:"resource"`
}

func (k RouteKey) SetKey() RouteSetKey {
	return RouteSetKey{Settlement: k.Settlement, Resource: k.Resource}
}

type RouteSet map[RouteKey]Route

// Routes holds every live route grouped by set key.
type Routes map[RouteSetKey]RouteSet

func (r Routes) Get(key RouteKey) (Route, bool) {
	route, ok := r[key.SetKey()][key]
	return route, ok
}

func (r Routes) Insert(key RouteKey, route Route) {
	set, ok := r[key.SetKey()]
	if !ok {
		set = RouteSet{}
		r[key.SetKey()] = set
	}
	set[key] = route
}

// Edges returns the path's consecutive edges.
func (r *Route) Edges() []geometry.Edge {
	out := make([]geometry.Edge, 0, len(r.Path))
	for i := 0; i+1 < len(r.Path); i++ {
		out = append(out, geometry.NewEdge(r.Path[i], r.Path[i+1]))
	}
	return out
}
