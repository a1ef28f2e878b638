package installment

import (
	"context"
	"time"

	"Cashline/internal/domain/transaction"
	"Cashline/internal/logger"
	"Cashline/internal/pkg/calendar"
	"Cashline/internal/pkg/money"
)

// Store é o subconjunto de transaction.Repository usado pelo parcelamento.
type Store interface {
	Insert(ctx context.Context, t *transaction.Transaction) (int64, error)
}

type Service struct {
	Repository Store
	Reminders  transaction.ReminderScheduler
	Now        func() time.Time
}

func NewService(repo Store, reminders transaction.ReminderScheduler) *Service {
	return &Service{
		Repository: repo,
		Reminders:  reminders,
		Now:        time.Now,
	}
}

// CreateInstallmentTransaction grava o template oculto e uma parcela por mês a
// partir do mês inicial. A primeira parcela recebe o resto da divisão.
func (s *Service) CreateInstallmentTransaction(ctx context.Context, draft Draft) (*Plan, error) {
	valid, err := draft.Validate()
	if err != nil {
		return nil, err
	}
	if err := validateCount(draft.Installments, valid.AmountCents); err != nil {
		return nil, err
	}

	amounts, err := money.Distribute(valid.AmountCents, draft.Installments)
	if err != nil {
		return nil, err
	}

	now := s.now()
	n := draft.Installments
	total := valid.AmountCents

	template := valid.NewRecord(transaction.KindInstallmentTemplate, valid.Date, 0, now)
	template.OriginalAmountCents = &total
	template.TotalInstallments = &n

	templateID, err := s.Repository.Insert(ctx, template)
	if err != nil {
		return nil, transaction.StoreError(err)
	}
	template.Id = templateID

	originalDay := valid.Date.Day()
	start := calendar.MonthAnchor(valid.Date)

	installments := make([]*transaction.Transaction, 0, n)
	for i, amount := range amounts {
		month := calendar.AddMonths(start, i)
		number := i + 1
		parent := templateID
		original := total
		count := n

		occ := valid.NewRecord(
			transaction.KindInstallmentOccurrence,
			calendar.ClampedDate(originalDay, month.Month(), month.Year()),
			amount,
			now,
		)
		occ.ParentTransactionId = &parent
		occ.InstallmentNumber = &number
		occ.TotalInstallments = &count
		occ.OriginalAmountCents = &original

		id, err := s.Repository.Insert(ctx, occ)
		if err != nil {
			logger.Error().
				Err(err).
				Int64("series_id", templateID).
				Int("installment", number).
				Msg("Falha ao gerar parcela")
			return nil, transaction.StoreError(err)
		}
		occ.Id = id
		installments = append(installments, occ)
	}

	logger.Info().
		Int64("series_id", templateID).
		Int("installments", n).
		Str("total", total.String()).
		Msg("Compra parcelada criada")

	s.scheduleUpcoming(ctx, installments)

	return &Plan{Template: template, Installments: installments}, nil
}

// o template tem valor zero e não gera lembrete
func (s *Service) scheduleUpcoming(ctx context.Context, items []*transaction.Transaction) {
	if s.Reminders == nil {
		return
	}
	today := calendar.Date(s.now())
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

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}
