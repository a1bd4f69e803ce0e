package settlement

import (
	"math"
	"time"
)

// TrafficSummary is one nation's share of the traffic passing through a
// town's territory.
type TrafficSummary struct {
	Nation        string
	TrafficShare  float64
	TotalDuration time.Duration
}

// MaxAbsPopulationChange caps how far a population moves per update.
func MaxAbsPopulationChange(class Class) float64 {
	if class == ClassHomeland {
		return 16.0
	}
	return 2.0
}

// StepPopulation moves the current population toward the target. The gap
// decays with a half-life of GapHalfLife; zero half-life snaps to the
// target. Updates with a stale clock are ignored.
func (s *Settlement) StepPopulation(nowMicros int64, maxAbsChange float64) {
	if s.LastPopulationUpdateMicros >= nowMicros {
		return
	}
	change := clamp(s.populationChange(nowMicros), maxAbsChange)
	s.CurrentPopulation += change
	s.LastPopulationUpdateMicros = nowMicros
}

func (s *Settlement) populationChange(nowMicros int64) float64 {
	gap := s.TargetPopulation - s.CurrentPopulation
	halfLife := float64(s.GapHalfLife.Microseconds())
	if halfLife == 0 {
		return gap
	}
	elapsed := float64(nowMicros - s.LastPopulationUpdateMicros)
	decay := 1.0 - math.Pow(0.5, elapsed/halfLife)
	return gap * decay
}

func clamp(change, maxAbs float64) float64 {
	return math.Max(-maxAbs, math.Min(maxAbs, change))
}

// TargetFromTraffic derives a town's target population from the traffic
// shares of every nation trading through it. Returns false when no
// traffic reaches the town; the town keeps its previous target.
func TargetFromTraffic(summaries []TrafficSummary, trafficToPopulation float64) (float64, bool) {
	if len(summaries) == 0 {
		return 0, false
	}
	return totalShare(summaries) * trafficToPopulation, true
}

// NationFromTraffic flips a town to the nation carrying at least
// flipTrafficPc of its total traffic share.
func NationFromTraffic(original string, summaries []TrafficSummary, flipTrafficPc float64) string {
	total := totalShare(summaries)
	if total == 0.0 {
		return original
	}
	top := summaries[0]
	for _, summary := range summaries[1:] {
		if summary.TrafficShare > top.TrafficShare {
			top = summary
		}
	}
	if top.TrafficShare/total >= flipTrafficPc {
		return top.Nation
	}
	return original
}

// GapHalfLifeFromTraffic sets a town's responsiveness from how long its
// trade routes take: total route duration over total traffic share.
func GapHalfLifeFromTraffic(original time.Duration, summaries []TrafficSummary) time.Duration {
	if len(summaries) == 0 {
		return original
	}
	var total time.Duration
	for _, summary := range summaries {
		total += summary.TotalDuration
	}
	return time.Duration(float64(total) / totalShare(summaries))
}

func totalShare(summaries []TrafficSummary) float64 {
	var total float64
	for _, summary := range summaries {
		total += summary.TrafficShare
	}
	return total
}

// SetHomelandTargets splits the visible land between homelands equally.
func (s Settlements) SetHomelandTargets(visibleLandPositions int) {
	homelands := s.Homelands()
	if len(homelands) == 0 {
		return
	}
	target := float64(visibleLandPositions) / float64(len(homelands))
	for _, homeland := range homelands {
		homeland.TargetPopulation = target
	}
}
