package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"Cashline/internal/domain/budget"
	"Cashline/internal/pkg/calendar"
)

type BudgetStore struct {
	mu      sync.RWMutex
	nextID  int64
	budgets map[time.Time]*budget.Budget
}

func NewBudgetStore() *BudgetStore {
	return &BudgetStore{budgets: make(map[time.Time]*budget.Budget)}
}

var _ budget.Repository = (*BudgetStore)(nil)

func (s *BudgetStore) FetchAll(_ context.Context) ([]*budget.Budget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*budget.Budget, 0, len(s.budgets))
	for _, b := range s.budgets {
		c := *b
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MonthAnchor.Before(out[j].MonthAnchor) })
	return out, nil
}

func (s *BudgetStore) GetByMonth(_ context.Context, anchor time.Time) (*budget.Budget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.budgets[calendar.MonthAnchor(anchor)]
	if !ok {
		return nil, budget.ErrNotFound
	}
	c := *b
	return &c, nil
}

// Upsert substitui o limite do mês quando já existe um orçamento para a âncora.
func (s *BudgetStore) Upsert(_ context.Context, b *budget.Budget) (*budget.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := calendar.MonthAnchor(b.MonthAnchor)
	if existing, ok := s.budgets[key]; ok {
		existing.LimitCents = b.LimitCents
		existing.UpdatedAt = b.UpdatedAt
		c := *existing
		return &c, nil
	}

	s.nextID++
	stored := *b
	stored.Id = s.nextID
	stored.MonthAnchor = key
	s.budgets[key] = &stored

	c := stored
	return &c, nil
}

func (s *BudgetStore) Delete(_ context.Context, anchor time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := calendar.MonthAnchor(anchor)
	if _, ok := s.budgets[key]; !ok {
		return budget.ErrNotFound
	}
	delete(s.budgets, key)
	return nil
}
