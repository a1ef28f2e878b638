package dashboard

import (
	"context"
	"sort"
	"time"

	"Cashline/internal/domain/budget"
	"Cashline/internal/domain/transaction"
	"Cashline/internal/logger"
	"Cashline/internal/pkg/calendar"
	"Cashline/internal/pkg/money"

	"github.com/shopspring/decimal"
)

const trendMonths = 6

type Service struct {
	Transactions TransactionReader
	Budgets      BudgetReader
	Now          func() time.Time
}

func NewService(transactions TransactionReader, budgets BudgetReader) *Service {
	return &Service{Transactions: transactions, Budgets: budgets, Now: time.Now}
}

func (s *Service) ProjectMonths(ctx context.Context, anchors []time.Time, today time.Time) ([]MonthProjection, error) {
	items, err := s.Transactions.FetchVisible(ctx)
	if err != nil {
		return nil, transaction.StoreError(err)
	}

	limits, err := s.budgetLimits(ctx)
	if err != nil {
		return nil, err
	}

	return ProjectMonths(items, anchors, today, limits), nil
}

func (s *Service) ProjectDailyBalance(ctx context.Context, month, today time.Time) (*DailyProjection, error) {
	items, err := s.Transactions.FetchVisible(ctx)
	if err != nil {
		return nil, transaction.StoreError(err)
	}

	p := ProjectDaily(items, month, today)
	return &p, nil
}

type Alert struct {
	Date     time.Time   `json:"date"`
	Balance  money.Cents `json:"balance"`
	DaysAway int         `json:"daysAway"`
}

// NegativeBalanceAlert procura o primeiro dia negativo no mês corrente e no
// seguinte. Devolve nil quando não há alerta dentro do horizonte.
func (s *Service) NegativeBalanceAlert(ctx context.Context, today time.Time) (*Alert, error) {
	items, err := s.Transactions.FetchVisible(ctx)
	if err != nil {
		return nil, transaction.StoreError(err)
	}

	today = calendar.Date(today)
	current := calendar.MonthAnchor(today)
	for _, month := range []time.Time{current, calendar.AddMonths(current, 1)} {
		p := ProjectDaily(items, month, today)
		if p.FirstNegativeDay == nil {
			continue
		}
		balance, _ := p.Balance(*p.FirstNegativeDay)

		logger.Warn().
			Str("date", calendar.FormatDate(*p.FirstNegativeDay)).
			Str("balance", balance.String()).
			Msg("Saldo projetado negativo")

		return &Alert{
			Date:     *p.FirstNegativeDay,
			Balance:  balance,
			DaysAway: calendar.DaysBetween(today, *p.FirstNegativeDay),
		}, nil
	}
	return nil, nil
}

// GetDashboard reúne o resumo do mês, a tendência dos últimos meses, as
// despesas por categoria e o orçamento do mês.
func (s *Service) GetDashboard(ctx context.Context, month time.Time) (*DashboardResponse, error) {
	if month.IsZero() {
		month = s.now()
	}
	anchor := calendar.MonthAnchor(month)
	today := calendar.Date(s.now())

	items, err := s.Transactions.FetchVisible(ctx)
	if err != nil {
		return nil, transaction.StoreError(err)
	}

	limits, err := s.budgetLimits(ctx)
	if err != nil {
		return nil, err
	}

	trend := ProjectMonths(items, calendar.MonthRange(calendar.AddMonths(anchor, -(trendMonths-1)), anchor), today, limits)
	summary := trend[len(trend)-1]

	resp := &DashboardResponse{
		Summary:          summary,
		MonthlyTrend:     trend,
		CategoryExpenses: CategoryExpenses(items, anchor),
	}

	if limit, ok := limits[anchor]; ok {
		b := &budget.Budget{MonthAnchor: anchor, LimitCents: limit}
		resp.BudgetStatus = b.StatusFor(budget.SpentIn(items, anchor))
	}

	return resp, nil
}

type DashboardResponse struct {
	Summary          MonthProjection      `json:"summary"`
	MonthlyTrend     []MonthProjection    `json:"monthlyTrend"`
	CategoryExpenses []*CategoryExpense   `json:"categoryExpenses"`
	BudgetStatus     *budget.BudgetStatus `json:"budgetStatus,omitempty"`
}

type CategoryExpense struct {
	Category   transaction.Category `json:"category"`
	Name       string               `json:"name"`
	Amount     money.Cents          `json:"amount"`
	Percentage decimal.Decimal      `json:"percentage"`
}

// CategoryExpenses agrupa as despesas do mês por categoria, da maior para a menor.
func CategoryExpenses(items []*transaction.Transaction, month time.Time) []*CategoryExpense {
	totals := make(map[transaction.Category]money.Cents)
	var total money.Cents
	for _, t := range items {
		if t.Type != transaction.Expense || !t.IsVisible() || !calendar.SameMonth(t.OccurrenceDate, month) {
			continue
		}
		totals[t.Category] += t.AmountCents
		total += t.AmountCents
	}

	out := make([]*CategoryExpense, 0, len(totals))
	for category, amount := range totals {
		e := &CategoryExpense{Category: category, Name: string(category), Amount: amount, Percentage: decimal.Zero}
		if info, ok := transaction.LookupCategory(category); ok {
			e.Name = info.Name
		}
		if total > 0 {
			e.Percentage = amount.Decimal().Mul(decimal.NewFromInt(100)).Div(total.Decimal()).Round(2)
		}
		out = append(out, e)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount != out[j].Amount {
			return out[i].Amount > out[j].Amount
		}
		return out[i].Category < out[j].Category
	})
	return out
}

func (s *Service) budgetLimits(ctx context.Context) (map[time.Time]money.Cents, error) {
	limits := make(map[time.Time]money.Cents)
	if s.Budgets == nil {
		return limits, nil
	}
	budgets, err := s.Budgets.FetchAll(ctx)
	if err != nil {
		return nil, transaction.StoreError(err)
	}
	for _, b := range budgets {
		limits[calendar.MonthAnchor(b.MonthAnchor)] = b.LimitCents
	}
	return limits, nil
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}
