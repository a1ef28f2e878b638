package recurring

import (
	"context"
	"time"

	"Cashline/internal/domain/transaction"
	appErrors "Cashline/internal/errors"
	"Cashline/internal/logger"
	"Cashline/internal/pkg/calendar"
)

type Service struct {
	Repository Store
	Reminders  transaction.ReminderScheduler
	Window     Window
	Now        func() time.Time
}

func NewService(repo Store, reminders transaction.ReminderScheduler, window Window) *Service {
	return &Service{
		Repository: repo,
		Reminders:  reminders,
		Window:     window,
		Now:        time.Now,
	}
}

// CreateRecurringTransaction grava o template, liga-o a si mesmo e gera uma
// ocorrência por mês da janela, exceto no mês do próprio template.
func (s *Service) CreateRecurringTransaction(ctx context.Context, draft transaction.Draft) (*Series, error) {
	valid, err := draft.Validate()
	if err != nil {
		return nil, err
	}

	now := s.now()
	template := valid.NewRecord(transaction.KindRecurringTemplate, valid.Date, valid.AmountCents, now)

	id, err := s.Repository.Insert(ctx, template)
	if err != nil {
		return nil, transaction.StoreError(err)
	}
	template.Id = id

	if err := s.Repository.UpdateParentLink(ctx, id, id); err != nil {
		return nil, transaction.StoreError(err)
	}
	template.ParentTransactionId = &id

	wanted := WantedMonths(s.Window, s.today(), template.OccurrenceDate)
	missing := MissingMonths(wanted, []time.Time{template.MonthAnchor})

	occurrences, err := s.insertOccurrences(ctx, template, missing)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int64("series_id", id).
		Str("date", calendar.FormatDate(template.OccurrenceDate)).
		Int("occurrences", len(occurrences)).
		Msg("Série recorrente criada")

	s.scheduleUpcoming(ctx, append([]*transaction.Transaction{template}, occurrences...))

	return &Series{Template: template, Occurrences: occurrences}, nil
}

// ExtendWindow garante que a série cubra a janela informada. Meses que já
// possuem um registro nunca são gerados de novo.
func (s *Service) ExtendWindow(ctx context.Context, seriesID int64, window Window) ([]*transaction.Transaction, error) {
	head, err := s.resolveHead(ctx, seriesID)
	if err != nil {
		return nil, err
	}

	members, err := s.Repository.FetchByParent(ctx, head.Id)
	if err != nil {
		return nil, transaction.StoreError(err)
	}

	existing := make([]time.Time, 0, len(members)+1)
	existing = append(existing, head.MonthAnchor)
	for _, m := range members {
		existing = append(existing, m.MonthAnchor)
	}

	missing := withinEnd(head, MissingMonths(WantedMonths(window, s.today(), head.OccurrenceDate), existing))
	if len(missing) == 0 {
		return []*transaction.Transaction{}, nil
	}

	created, err := s.insertOccurrences(ctx, head, missing)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int64("series_id", head.Id).
		Int("created", len(created)).
		Msg("Janela da série recorrente estendida")

	s.scheduleUpcoming(ctx, created)
	return created, nil
}

func (s *Service) resolveHead(ctx context.Context, id int64) (*transaction.Transaction, error) {
	t, err := transaction.Load(ctx, s.Repository, id)
	if err != nil {
		return nil, err
	}

	if t.Kind == transaction.KindRecurringOccurrence && t.ParentTransactionId != nil {
		t, err = transaction.Load(ctx, s.Repository, *t.ParentTransactionId)
		if err != nil {
			return nil, err
		}
	}

	if !t.IsRecurringTemplate() {
		return nil, appErrors.ErrNotARecurringTransaction.WithDetails(map[string]interface{}{
			"id":   id,
			"kind": string(t.Kind),
		})
	}
	return t, nil
}

// withinEnd descarta os meses cuja ocorrência cairia a partir do
// encerramento da série.
func withinEnd(head *transaction.Transaction, months []time.Time) []time.Time {
	if head.SeriesEndDate == nil {
		return months
	}
	originalDay := head.OccurrenceDate.Day()
	kept := make([]time.Time, 0, len(months))
	for _, m := range months {
		if head.IsPastEnd(calendar.ClampedDate(originalDay, m.Month(), m.Year())) {
			continue
		}
		kept = append(kept, m)
	}
	return kept
}

// insertOccurrences não desfaz inserções anteriores quando uma falha no meio.
func (s *Service) insertOccurrences(ctx context.Context, head *transaction.Transaction, months []time.Time) ([]*transaction.Transaction, error) {
	originalDay := head.OccurrenceDate.Day()
	now := s.now()
	parent := head.Id

	created := make([]*transaction.Transaction, 0, len(months))
	for _, m := range months {
		occ := &transaction.Transaction{
			Title:               head.Title,
			Category:            head.Category,
			Type:                head.Type,
			AmountCents:         head.AmountCents,
			Kind:                transaction.KindRecurringOccurrence,
			ParentTransactionId: &parent,
			CreatedAt:           now,
			UpdatedAt:           now,
		}
		occ.SetDate(calendar.ClampedDate(originalDay, m.Month(), m.Year()))

		id, err := s.Repository.Insert(ctx, occ)
		if err != nil {
			logger.Error().
				Err(err).
				Int64("series_id", parent).
				Int("inserted", len(created)).
				Msg("Falha ao gerar ocorrência recorrente")
			return nil, transaction.StoreError(err)
		}
		occ.Id = id
		created = append(created, occ)
	}
	return created, nil
}

func (s *Service) scheduleUpcoming(ctx context.Context, items []*transaction.Transaction) {
	if s.Reminders == nil {
		return
	}
	today := s.today()
	upcoming := make([]*transaction.Transaction, 0, len(items))
	for _, t := range items {
		if !t.OccurrenceDate.Before(today) {
			upcoming = append(upcoming, t)
		}
	}
	if len(upcoming) > 0 {
		s.Reminders.Schedule(ctx, upcoming...)
	}
}

func (s *Service) today() time.Time {
	return calendar.Date(s.now())
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}
