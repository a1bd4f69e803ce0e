package pathfinding

import "container/heap"

// networkEdge is a directed edge between node indices, cost in milliseconds.
type networkEdge struct {
	from int
	to   int
	cost uint64
}

// network is the weighted grid graph under the pathfinder. Node indices come
// from the pathfinder's Index2D; the network itself knows nothing about
// positions.
type network struct {
	out     [][]networkEdge
	in      [][]networkEdge
	targets map[string][]bool
}

func newNetwork(nodes int) *network {
	return &network{
		out:     make([][]networkEdge, nodes),
		in:      make([][]networkEdge, nodes),
		targets: map[string][]bool{},
	}
}

func (n *network) nodes() int { return len(n.out) }

func (n *network) addEdge(edge networkEdge) {
	n.out[edge.from] = append(n.out[edge.from], edge)
	n.in[edge.to] = append(n.in[edge.to], edge)
}

func (n *network) removeEdges(from, to int) {
	n.out[from] = dropEdges(n.out[from], from, to)
	n.in[to] = dropEdges(n.in[to], from, to)
}

func dropEdges(edges []networkEdge, from, to int) []networkEdge {
	out := edges[:0]
	for _, edge := range edges {
		if edge.from != from || edge.to != to {
			out = append(out, edge)
		}
	}
	return out
}

func (n *network) getOut(node int) []networkEdge { return n.out[node] }
func (n *network) getIn(node int) []networkEdge  { return n.in[node] }

func (n *network) edgeCost(from, to int) (uint64, bool) {
	for _, edge := range n.out[from] {
		if edge.to == to {
			return edge.cost, true
		}
	}
	return 0, false
}

func (n *network) initTargets(name string) {
	n.targets[name] = make([]bool, n.nodes())
}

func (n *network) loadTarget(name string, node int, target bool) {
	n.targets[name][node] = target
}

// queueItem orders the frontier by priority, ties broken by insertion order
// so results are deterministic.
type queueItem struct {
	node     int
	cost     uint64
	priority uint64
	sequence uint64
}

type priorityQueue []queueItem

func (q priorityQueue) Len() int { return len(q) }
func (q priorityQueue) Less(i, j int) bool {
	if q[i].priority != q[j].priority {
		return q[i].priority < q[j].priority
	}
	return q[i].sequence < q[j].sequence
}
func (q priorityQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }
func (q *priorityQueue) Push(x interface{}) { *q = append(*q, x.(queueItem)) }
func (q *priorityQueue) Pop() interface{} {
	old := *q
	item := old[len(old)-1]
	*q = old[:len(old)-1]
	return item
}

// search runs Dijkstra from the sources, optionally guided by an admissible
// heuristic. visit is called once per settled node with its cost; returning
// false stops the search. Returns the predecessor edge per settled node.
func (n *network) search(
	sources []int,
	heuristic func(int) uint64,
	visit func(node int, cost uint64) bool,
) map[int]networkEdge {
	settled := make([]bool, n.nodes())
	best := make(map[int]uint64, len(sources))
	predecessor := map[int]networkEdge{}

	queue := priorityQueue{}
	heap.Init(&queue)
	sequence := uint64(0)
	push := func(node int, cost uint64) {
		priority := cost
		if heuristic != nil {
			priority += heuristic(node)
		}
		heap.Push(&queue, queueItem{node: node, cost: cost, priority: priority, sequence: sequence})
		sequence++
	}

	for _, source := range sources {
		if existing, ok := best[source]; !ok || existing > 0 {
			best[source] = 0
			push(source, 0)
		}
	}

	for queue.Len() > 0 {
		item := heap.Pop(&queue).(queueItem)
		if settled[item.node] {
			continue
		}
		settled[item.node] = true
		if !visit(item.node, item.cost) {
			break
		}
		for _, edge := range n.out[item.node] {
			if settled[edge.to] {
				continue
			}
			cost := item.cost + edge.cost
			if existing, ok := best[edge.to]; ok && existing <= cost {
				continue
			}
			best[edge.to] = cost
			predecessor[edge.to] = edge
			push(edge.to, cost)
		}
	}

	return predecessor
}

// tracePath walks predecessors back from node to a source, returning node
// indices in travel order.
func tracePath(predecessor map[int]networkEdge, node int) []int {
	path := []int{node}
	for {
		edge, ok := predecessor[node]
		if !ok {
			break
		}
		node = edge.from
		path = append(path, node)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// findPath returns the node sequence of a lowest-cost path from any source
// to any sink, or nil. A zero-length path (source equals sink) is nil.
func (n *network) findPath(sources, sinks []int, heuristic func(int) uint64) []int {
	isSink := make(map[int]bool, len(sinks))
	for _, sink := range sinks {
		isSink[sink] = true
	}
	found := -1
	predecessor := n.search(sources, heuristic, func(node int, _ uint64) bool {
		if isSink[node] {
			found = node
			return false
		}
		return true
	})
	if found < 0 {
		return nil
	}
	path := tracePath(predecessor, found)
	if len(path) < 2 {
		return nil
	}
	return path
}

type nodeResult struct {
	node int
	cost uint64
}

// nodesWithin returns every node reachable from the sources within maxCost,
// with its lowest cost.
func (n *network) nodesWithin(sources []int, maxCost uint64) []nodeResult {
	var out []nodeResult
	n.search(sources, nil, func(node int, cost uint64) bool {
		if cost > maxCost {
			return false
		}
		out = append(out, nodeResult{node: node, cost: cost})
		return true
	})
	return out
}

type closestResult struct {
	node int
	path []int
	cost uint64
}

// closestLoadedTargets expands from the sources and returns the up-to-n
// nearest loaded targets of the named set in non-decreasing cost order.
func (n *network) closestLoadedTargets(sources []int, name string, nClosest int) []closestResult {
	targets := n.targets[name]
	if targets == nil || nClosest == 0 {
		return nil
	}
	var out []closestResult
	var pending []nodeResult
	predecessor := n.search(sources, nil, func(node int, cost uint64) bool {
		if targets[node] {
			pending = append(pending, nodeResult{node: node, cost: cost})
			if len(pending) >= nClosest {
				return false
			}
		}
		return true
	})
	for _, result := range pending {
		out = append(out, closestResult{
			node: result.node,
			path: tracePath(predecessor, result.node),
			cost: result.cost,
		})
	}
	return out
}

// lowestCost sums edge costs along a node sequence; false when any edge is
// missing.
func (n *network) lowestCost(path []int) (uint64, bool) {
	total := uint64(0)
	for i := 0; i+1 < len(path); i++ {
		cost, ok := n.edgeCost(path[i], path[i+1])
		if !ok {
			return 0, false
		}
		total += cost
	}
	return total, true
}
