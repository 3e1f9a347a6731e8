package repository

import (
	"sort"
	"sync"

	"studium-server/internal/domain"
)

// InMemoryStudyPlanStore keeps generated study plans in process memory.
type InMemoryStudyPlanStore struct {
	mu    sync.RWMutex
	plans map[string]*domain.StudyPlan
}

func NewInMemoryStudyPlanStore() *InMemoryStudyPlanStore {
	return &InMemoryStudyPlanStore{plans: make(map[string]*domain.StudyPlan)}
}

func (s *InMemoryStudyPlanStore) Save(plan *domain.StudyPlan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *plan
	s.plans[plan.PlanID] = &cp
	return nil
}

func (s *InMemoryStudyPlanStore) Get(planID string) (*domain.StudyPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	plan, ok := s.plans[planID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *plan
	return &cp, nil
}

func (s *InMemoryStudyPlanStore) List() []*domain.StudyPlan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*domain.StudyPlan, 0, len(s.plans))
	for _, plan := range s.plans {
		cp := *plan
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt > out[j].CreatedAt
	})
	return out
}

func (s *InMemoryStudyPlanStore) Delete(planID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.plans[planID]; !ok {
		return domain.ErrNotFound
	}
	delete(s.plans, planID)
	return nil
}
