package routes

// ChangeKind says what happened to a route between two route computations.
type ChangeKind int

const (
	ChangeNew ChangeKind = iota
	ChangeUpdated
	ChangeRemoved
	ChangeNone
)

// Change is one route-change event; the traffic ledger is mutated only
// through these.
type Change struct {
	Kind ChangeKind
	Key  RouteKey
	Old  *Route
	New  *Route
}

func NewRoute(key RouteKey, route Route) Change {
	return Change{Kind: ChangeNew, Key: key, New: &route}
}

func UpdatedRoute(key RouteKey, old, new Route) Change {
	return Change{Kind: ChangeUpdated, Key: key, Old: &old, New: &new}
}

func RemovedRoute(key RouteKey, route Route) Change {
	return Change{Kind: ChangeRemoved, Key: key, Old: &route}
}

func UnchangedRoute(key RouteKey, route Route) Change {
	return Change{Kind: ChangeNone, Key: key, New: &route}
}

// DiffRouteSets compares an old and a new route set for the same set key
// and emits one change per key seen in either.
func DiffRouteSets(old, new RouteSet) []Change {
	var out []Change
	for key, newRoute := range new {
		if oldRoute, ok := old[key]; ok {
			if routesEqual(oldRoute, newRoute) {
				out = append(out, UnchangedRoute(key, newRoute))
			} else {
				out = append(out, UpdatedRoute(key, oldRoute, newRoute))
			}
		} else {
			out = append(out, NewRoute(key, newRoute))
		}
	}
	for key, oldRoute := range old {
		if _, ok := new[key]; !ok {
			out = append(out, RemovedRoute(key, oldRoute))
		}
	}
	return out
}

func routesEqual(a, b Route) bool {
	if a.StartMicros != b.StartMicros || a.Duration != b.Duration || a.Traffic != b.Traffic {
		return false
	}
	if len(a.Path) != len(b.Path) {
		return false
	}
	for i := range a.Path {
		if a.Path[i] != b.Path[i] {
			return false
		}
	}
	return true
}
