package budget

import (
	"context"
	"errors"
	"time"

	"Cashline/internal/domain/transaction"
	appErrors "Cashline/internal/errors"
	"Cashline/internal/logger"
	"Cashline/internal/pkg/calendar"
	"Cashline/internal/pkg/money"
)

type Service struct {
	Repository   Repository
	Transactions transaction.Repository
	Now          func() time.Time
}

func NewService(repo Repository, transactions transaction.Repository) *Service {
	return &Service{Repository: repo, Transactions: transactions, Now: time.Now}
}

func (s *Service) SetBudget(ctx context.Context, month string, limit money.Cents) (*Budget, error) {
	anchor, err := parseMonth(month)
	if err != nil {
		return nil, err
	}

	if limit <= 0 {
		return nil, appErrors.ErrInvalidAmount
	}

	now := s.now()
	saved, err := s.Repository.Upsert(ctx, &Budget{
		MonthAnchor: anchor,
		LimitCents:  limit,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, appErrors.NewStoreError(err)
	}

	logger.Info().
		Str("month", calendar.FormatMonth(anchor)).
		Str("limit", limit.String()).
		Msg("Orçamento definido")

	return saved, nil
}

func (s *Service) DeleteBudget(ctx context.Context, month string) error {
	anchor, err := parseMonth(month)
	if err != nil {
		return err
	}

	if err := s.Repository.Delete(ctx, anchor); err != nil {
		if errors.Is(err, ErrNotFound) {
			return appErrors.ErrBudgetNotFound
		}
		return appErrors.NewStoreError(err)
	}
	return nil
}

func (s *Service) ListBudgets(ctx context.Context) ([]*Budget, error) {
	budgets, err := s.Repository.FetchAll(ctx)
	if err != nil {
		return nil, appErrors.NewStoreError(err)
	}
	return budgets, nil
}

func (s *Service) GetBudget(ctx context.Context, anchor time.Time) (*Budget, error) {
	b, err := s.Repository.GetByMonth(ctx, calendar.MonthAnchor(anchor))
	if errors.Is(err, ErrNotFound) {
		return nil, appErrors.ErrBudgetNotFound
	}
	if err != nil {
		return nil, appErrors.NewStoreError(err)
	}
	return b, nil
}

// GetBudgetStatus compara o limite com as despesas visíveis do mês.
func (s *Service) GetBudgetStatus(ctx context.Context, month string) (*BudgetStatus, error) {
	anchor, err := parseMonth(month)
	if err != nil {
		return nil, err
	}

	b, err := s.GetBudget(ctx, anchor)
	if err != nil {
		return nil, err
	}

	visible, err := s.Transactions.FetchVisible(ctx)
	if err != nil {
		return nil, appErrors.NewStoreError(err)
	}

	return b.StatusFor(SpentIn(visible, anchor)), nil
}

// SpentIn soma as despesas com a âncora informada.
func SpentIn(items []*transaction.Transaction, anchor time.Time) money.Cents {
	var spent money.Cents
	for _, t := range items {
		if t.Type == transaction.Expense && t.IsVisible() && calendar.SameMonth(t.MonthAnchor, anchor) {
			spent += t.AmountCents
		}
	}
	return spent
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func parseMonth(month string) (time.Time, error) {
	anchor, err := calendar.ParseMonth(month)
	if err != nil {
		return time.Time{}, appErrors.ErrInvalidDateFormat.WithDetails(map[string]interface{}{
			"month": month,
		})
	}
	return anchor, nil
}
