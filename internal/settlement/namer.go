package settlement

import (
	"fmt"

	"github.com/agnivade/levenshtein"
)

// Namer hands out town names from a fixed pool. Among the unused names it
// prefers the one least similar to names already given out, so nearby
// towns don't read alike. An exhausted pool restarts with a generation
// suffix.
type Namer struct {
	names      []string
	used       map[string]bool
	generation int
}

func NewNamer(names []string) *Namer {
	return &Namer{
		names:      names,
		used:       map[string]bool{},
		generation: 1,
	}
}

func (n *Namer) NextName() string {
	if len(n.names) == 0 {
		return ""
	}
	name, ok := n.mostDistinctUnused()
	if !ok {
		n.used = map[string]bool{}
		n.generation++
		name, _ = n.mostDistinctUnused()
	}
	n.used[name] = true
	if n.generation > 1 {
		return fmt.Sprintf("%s %s", name, numeral(n.generation))
	}
	return name
}

func (n *Namer) mostDistinctUnused() (string, bool) {
	best, bestScore := "", -1
	for _, name := range n.names {
		if n.used[name] {
			continue
		}
		score := n.distanceToUsed(name)
		if score > bestScore {
			best, bestScore = name, score
		}
	}
	return best, bestScore >= 0
}

func (n *Namer) distanceToUsed(name string) int {
	if len(n.used) == 0 {
		return 0
	}
	min := -1
	for used := range n.used {
		d := levenshtein.ComputeDistance(name, used)
		if min < 0 || d < min {
			min = d
		}
	}
	return min
}

func numeral(n int) string {
	numerals := []struct {
		value  int
		symbol string
	}{
		{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
	}
	out := ""
	for _, numeral := range numerals {
		for n >= numeral.value {
			out += numeral.symbol
			n -= numeral.value
		}
	}
	return out
}
