package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"Cashline/internal/domain/transaction"
	"Cashline/internal/pkg"
	"Cashline/internal/pkg/calendar"
)

// TransactionStore guarda transações em memória. É seguro para uso
// concorrente e devolve cópias em todas as leituras.
type TransactionStore struct {
	mu           sync.RWMutex
	nextID       int64
	transactions map[int64]*transaction.Transaction
}

func NewTransactionStore() *TransactionStore {
	return &TransactionStore{
		transactions: make(map[int64]*transaction.Transaction),
	}
}

var _ transaction.Repository = (*TransactionStore)(nil)

func (s *TransactionStore) Insert(_ context.Context, t *transaction.Transaction) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	stored := t.Clone()
	stored.Id = s.nextID
	s.transactions[stored.Id] = stored

	return stored.Id, nil
}

func (s *TransactionStore) UpdateParentLink(_ context.Context, id, parentID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.transactions[id]
	if !ok {
		return transaction.ErrNotFound
	}
	p := parentID
	t.ParentTransactionId = &p
	return nil
}

func (s *TransactionStore) UpdateSeriesEnd(_ context.Context, id int64, end time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.transactions[id]
	if !ok {
		return transaction.ErrNotFound
	}
	e := calendar.Date(end)
	t.SeriesEndDate = &e
	return nil
}

func (s *TransactionStore) FetchAll(_ context.Context) ([]*transaction.Transaction, error) {
	return s.collect(func(*transaction.Transaction) bool { return true }), nil
}

func (s *TransactionStore) FetchVisible(_ context.Context) ([]*transaction.Transaction, error) {
	return s.collect(func(t *transaction.Transaction) bool { return t.IsVisible() }), nil
}

func (s *TransactionStore) FetchByParent(_ context.Context, parentID int64) ([]*transaction.Transaction, error) {
	return s.collect(func(t *transaction.Transaction) bool {
		return t.ParentTransactionId != nil && *t.ParentTransactionId == parentID
	}), nil
}

func (s *TransactionStore) GetByID(_ context.Context, id int64) (*transaction.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.transactions[id]
	if !ok {
		return nil, transaction.ErrNotFound
	}
	return t.Clone(), nil
}

func (s *TransactionStore) List(_ context.Context, filters *transaction.TransactionFilters, pagination *pkg.PaginationParams) ([]*transaction.Transaction, int64, error) {
	items := s.collect(func(t *transaction.Transaction) bool { return matches(t, filters) })

	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].OccurrenceDate.Equal(items[j].OccurrenceDate) {
			return items[i].OccurrenceDate.After(items[j].OccurrenceDate)
		}
		return items[i].Id > items[j].Id
	})

	total := int64(len(items))
	pagination = pkg.NormalizePagination(pagination)

	start := pagination.Offset()
	if start >= len(items) {
		return []*transaction.Transaction{}, total, nil
	}
	end := start + pagination.Limit
	if end > len(items) {
		end = len(items)
	}

	return items[start:end], total, nil
}

func (s *TransactionStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.transactions[id]; !ok {
		return transaction.ErrNotFound
	}
	delete(s.transactions, id)
	return nil
}

// DeleteMany ignora ids ausentes.
func (s *TransactionStore) DeleteMany(_ context.Context, ids []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range ids {
		delete(s.transactions, id)
	}
	return nil
}

func (s *TransactionStore) collect(keep func(*transaction.Transaction) bool) []*transaction.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*transaction.Transaction, 0, len(s.transactions))
	for _, t := range s.transactions {
		if keep(t) {
			out = append(out, t.Clone())
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].OccurrenceDate.Equal(out[j].OccurrenceDate) {
			return out[i].OccurrenceDate.Before(out[j].OccurrenceDate)
		}
		return out[i].Id < out[j].Id
	})
	return out
}

func matches(t *transaction.Transaction, f *transaction.TransactionFilters) bool {
	if f == nil {
		return t.IsVisible()
	}
	if f.Kind != nil {
		if t.Kind != *f.Kind {
			return false
		}
	} else if !t.IsVisible() {
		return false
	}
	if f.Month != nil && !calendar.SameMonth(t.MonthAnchor, *f.Month) {
		return false
	}
	if f.Type != nil && t.Type != *f.Type {
		return false
	}
	if f.Category != nil && t.Category != *f.Category {
		return false
	}
	if f.Search != nil && *f.Search != "" &&
		!strings.Contains(strings.ToLower(t.Title), strings.ToLower(*f.Search)) {
		return false
	}
	return true
}
