package pathfinding

import (
	"sync"
	"time"

	"frontier.sim/internal/geometry"
	"frontier.sim/internal/travel"
	"frontier.sim/internal/world"
)

// Service wraps a Pathfinder for concurrent use. Queries take a read lock;
// graph mutations take the write lock.
type Service struct {
	mu         sync.RWMutex
	pathfinder *Pathfinder
}

func NewService(pathfinder *Pathfinder) *Service {
	return &Service{pathfinder: pathfinder}
}

func (s *Service) TravelDuration() travel.Duration {
	return s.pathfinder.TravelDuration()
}

func (s *Service) InBounds(position geometry.Position) bool {
	return s.pathfinder.InBounds(position)
}

func (s *Service) FindPath(from, to []geometry.Position) []geometry.Position {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pathfinder.FindPath(from, to)
}

func (s *Service) PositionsWithin(
	positions []geometry.Position,
	duration time.Duration,
) map[geometry.Position]time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pathfinder.PositionsWithin(positions, duration)
}

func (s *Service) ClosestTargets(
	positions []geometry.Position,
	targets string,
	nClosest int,
) []ClosestTarget {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pathfinder.ClosestTargets(positions, targets, nClosest)
}

func (s *Service) LowestDuration(path []geometry.Position) (time.Duration, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.pathfinder.LowestDuration(path)
}

func (s *Service) InitTargets(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pathfinder.InitTargets(name)
}

func (s *Service) LoadTarget(name string, position geometry.Position, target bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pathfinder.LoadTarget(name, position, target)
}

func (s *Service) SetEdgeDuration(from, to geometry.Position, duration time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pathfinder.SetEdgeDuration(from, to, duration)
}

func (s *Service) RemoveEdge(from, to geometry.Position) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pathfinder.RemoveEdge(from, to)
}

func (s *Service) UpdatePositions(w *world.World, positions []geometry.Position) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pathfinder.UpdatePositions(w, positions)
}

func (s *Service) Reset(w *world.World) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pathfinder.Reset(w)
}

// Pathfinders bundles the two live instances: one that treats planned roads
// as built for long-range planning, one that ignores them for enforcement.
type Pathfinders struct {
	WithPlannedRoads    *Service
	WithoutPlannedRoads *Service
}
