package transaction

import (
	"context"
	"errors"
	"time"

	appErrors "Cashline/internal/errors"
	"Cashline/internal/logger"
	"Cashline/internal/pkg"
	"Cashline/internal/pkg/calendar"
)

type Service struct {
	Repository Repository
	Reminders  ReminderScheduler
	Now        func() time.Time
}

func NewService(repo Repository, reminders ReminderScheduler) *Service {
	return &Service{
		Repository: repo,
		Reminders:  reminders,
		Now:        time.Now,
	}
}

func (s *Service) CreateSimpleTransaction(ctx context.Context, draft Draft) (*Transaction, error) {
	valid, err := draft.Validate()
	if err != nil {
		return nil, err
	}

	t := valid.NewRecord(KindSimple, valid.Date, valid.AmountCents, s.now())
	id, err := s.Repository.Insert(ctx, t)
	if err != nil {
		return nil, StoreError(err)
	}
	t.Id = id

	logger.Info().
		Int64("transaction_id", id).
		Str("type", string(t.Type)).
		Str("date", calendar.FormatDate(t.OccurrenceDate)).
		Msg("Transação criada")

	if !t.OccurrenceDate.Before(s.Today()) {
		s.reminders().Schedule(ctx, t)
	}

	return t, nil
}

func (s *Service) GetTransactionByID(ctx context.Context, id int64) (*Transaction, error) {
	return Load(ctx, s.Repository, id)
}

func (s *Service) ListTransactions(ctx context.Context, filters *TransactionFilters, pagination *pkg.PaginationParams) ([]*Transaction, int64, error) {
	items, total, err := s.Repository.List(ctx, filters, pagination)
	if err != nil {
		return nil, 0, StoreError(err)
	}
	return items, total, nil
}

// DeleteSimple remove uma transação avulsa. Registros que pertencem a uma
// série devem ser removidos pela exclusão de série.
func (s *Service) DeleteSimple(ctx context.Context, id int64) error {
	t, err := Load(ctx, s.Repository, id)
	if err != nil {
		return err
	}

	if t.Kind != KindSimple {
		return appErrors.ErrNotARecurringTransaction.WithDetails(map[string]interface{}{
			"id":   id,
			"kind": string(t.Kind),
		})
	}

	if err := s.Repository.Delete(ctx, id); err != nil {
		return StoreError(err)
	}

	s.reminders().Cancel(ctx, id)

	logger.Info().Int64("transaction_id", id).Msg("Transação removida")
	return nil
}

func (s *Service) Today() time.Time {
	return calendar.Date(s.now())
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *Service) reminders() ReminderScheduler {
	if s.Reminders == nil {
		return NoopScheduler{}
	}
	return s.Reminders
}

// Load busca um registro e traduz a ausência para TRANSACTION_NOT_FOUND.
func Load(ctx context.Context, repo Getter, id int64) (*Transaction, error) {
	t, err := repo.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, appErrors.ErrTransactionNotFound.WithDetails(map[string]interface{}{"id": id})
	}
	if err != nil {
		return nil, StoreError(err)
	}
	return t, nil
}

// StoreError preserva erros de aplicação e envolve falhas do armazenamento.
func StoreError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := appErrors.AsAppError(err); ok {
		return err
	}
	return appErrors.NewStoreError(err)
}
