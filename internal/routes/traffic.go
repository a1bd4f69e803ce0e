package routes

import (
	"frontier.sim/internal/geometry"
)

// Traffic is the ledger of which routes pass through which positions and
// edges. A key appears in a position entry exactly when the route's path
// contains that position, likewise for edges; the only mutations are route
// changes applied through Apply.
type Traffic struct {
	positions *geometry.Grid[map[RouteKey]bool]
	edges     map[geometry.Edge]map[RouteKey]bool
}

func NewTraffic(width, height int) *Traffic {
	positions := geometry.NewGrid[map[RouteKey]bool](width, height)
	positions.ForEach(func(_ geometry.Position, cell *map[RouteKey]bool) {
		*cell = map[RouteKey]bool{}
	})
	return &Traffic{
		positions: positions,
		edges:     map[geometry.Edge]map[RouteKey]bool{},
	}
}

// At returns the route keys passing through the position.
func (t *Traffic) At(position geometry.Position) map[RouteKey]bool {
	cell := t.positions.Get(position)
	if cell == nil {
		return nil
	}
	return *cell
}

// AtEdge returns the route keys passing along the edge.
func (t *Traffic) AtEdge(edge geometry.Edge) map[RouteKey]bool {
	return t.edges[edge]
}

func (t *Traffic) insertPosition(position geometry.Position, key RouteKey) {
	(*t.positions.GetUnsafe(position))[key] = true
}

func (t *Traffic) removePosition(position geometry.Position, key RouteKey) {
	delete(*t.positions.GetUnsafe(position), key)
}

func (t *Traffic) insertEdge(edge geometry.Edge, key RouteKey) {
	keys, ok := t.edges[edge]
	if !ok {
		keys = map[RouteKey]bool{}
		t.edges[edge] = keys
	}
	keys[key] = true
}

func (t *Traffic) removeEdge(edge geometry.Edge, key RouteKey) {
	keys := t.edges[edge]
	delete(keys, key)
	if len(keys) == 0 {
		delete(t.edges, edge)
	}
}

// Apply folds one route change into the ledger and returns the positions
// and edges whose traffic may have changed, for downstream refresh.
func (t *Traffic) Apply(change Change) ([]geometry.Position, []geometry.Edge) {
	switch change.Kind {
	case ChangeNew:
		for _, position := range change.New.Path {
			t.insertPosition(position, change.Key)
		}
		for _, edge := range change.New.Edges() {
			t.insertEdge(edge, change.Key)
		}
		return change.New.Path, change.New.Edges()

	case ChangeRemoved:
		for _, position := range change.Old.Path {
			t.removePosition(position, change.Key)
		}
		for _, edge := range change.Old.Edges() {
			t.removeEdge(edge, change.Key)
		}
		return change.Old.Path, change.Old.Edges()

	case ChangeUpdated:
		return t.applyUpdated(change)

	case ChangeNone:
		return change.New.Path, change.New.Edges()
	}
	return nil, nil
}

func (t *Traffic) applyUpdated(change Change) ([]geometry.Position, []geometry.Edge) {
	oldPositions := positionSet(change.Old.Path)
	newPositions := positionSet(change.New.Path)
	var positions []geometry.Position
	for position := range newPositions {
		if !oldPositions[position] {
			t.insertPosition(position, change.Key)
		}
		positions = append(positions, position)
	}
	for position := range oldPositions {
		if !newPositions[position] {
			t.removePosition(position, change.Key)
			positions = append(positions, position)
		}
	}

	oldEdges := edgeSet(change.Old.Edges())
	newEdges := edgeSet(change.New.Edges())
	var edges []geometry.Edge
	for edge := range newEdges {
		if !oldEdges[edge] {
			t.insertEdge(edge, change.Key)
		}
		edges = append(edges, edge)
	}
	for edge := range oldEdges {
		if !newEdges[edge] {
			t.removeEdge(edge, change.Key)
			edges = append(edges, edge)
		}
	}
	return positions, edges
}

func positionSet(positions []geometry.Position) map[geometry.Position]bool {
	out := make(map[geometry.Position]bool, len(positions))
	for _, position := range positions {
		out[position] = true
	}
	return out
}

func edgeSet(edges []geometry.Edge) map[geometry.Edge]bool {
	out := make(map[geometry.Edge]bool, len(edges))
	for _, edge := range edges {
		out[edge] = true
	}
	return out
}
