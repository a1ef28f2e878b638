package series

import (
	"context"
	"time"

	"Cashline/internal/domain/transaction"
	appErrors "Cashline/internal/errors"
	"Cashline/internal/logger"
	"Cashline/internal/pkg/calendar"
)

// Store é o subconjunto de transaction.Repository usado pela exclusão em cascata.
type Store interface {
	FetchAll(ctx context.Context) ([]*transaction.Transaction, error)
	DeleteMany(ctx context.Context, ids []int64) error
	UpdateSeriesEnd(ctx context.Context, id int64, end time.Time) error
}

type Service struct {
	Repository Store
	Reminders  transaction.ReminderScheduler
}

func NewService(repo Store, reminders transaction.ReminderScheduler) *Service {
	return &Service{
		Repository: repo,
		Reminders:  reminders,
	}
}

// DeleteSeries remove o alvo e, conforme a opção, o restante da série a que
// ele pertence. selectedDate substitui a data do alvo como corte quando
// informada. Para transações avulsas a opção é ignorada.
func (s *Service) DeleteSeries(ctx context.Context, id int64, selectedDate *time.Time, option CleanupOption) (*Deletion, error) {
	snapshot, err := s.Repository.FetchAll(ctx)
	if err != nil {
		return nil, transaction.StoreError(err)
	}

	var target *transaction.Transaction
	for _, t := range snapshot {
		if t.Id == id {
			target = t
			break
		}
	}
	if target == nil {
		return nil, appErrors.ErrTransactionNotFound.WithDetails(map[string]interface{}{"id": id})
	}

	if target.Kind != transaction.KindSimple && !option.IsValid() {
		return nil, appErrors.ErrInvalidCleanupOption.WithDetails(map[string]interface{}{
			"cleanup": string(option),
		})
	}

	cutoff := target.OccurrenceDate
	if selectedDate != nil {
		cutoff = calendar.Date(*selectedDate)
	}

	d := Plan(snapshot, target, cutoff, option)

	// o encerramento é gravado antes da remoção para que a extensão da
	// janela nunca recrie os meses cortados
	if d.SeriesEnd != nil {
		if err := s.Repository.UpdateSeriesEnd(ctx, d.SeriesID, *d.SeriesEnd); err != nil {
			return nil, transaction.StoreError(err)
		}
	}

	if len(d.IDs) == 0 {
		return &d, nil
	}

	if err := s.Repository.DeleteMany(ctx, d.IDs); err != nil {
		logger.Error().
			Err(err).
			Int64("transaction_id", id).
			Int("planned", len(d.IDs)).
			Msg("Falha na exclusão em cascata")
		return nil, transaction.StoreError(err)
	}

	s.cancelReminders(ctx, d)

	logger.Info().
		Int64("transaction_id", id).
		Int64("series_id", d.SeriesID).
		Str("cleanup", string(option)).
		Int("deleted", len(d.IDs)).
		Bool("whole_series", d.WholeSeries).
		Msg("Série removida")

	return &d, nil
}

func (s *Service) cancelReminders(ctx context.Context, d Deletion) {
	if s.Reminders == nil {
		return
	}
	s.Reminders.Cancel(ctx, d.IDs...)
	if d.WholeSeries && d.SeriesID != 0 {
		s.Reminders.CancelSeries(ctx, d.SeriesID)
	}
}
