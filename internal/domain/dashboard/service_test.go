package dashboard_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"Cashline/internal/domain/budget"
	"Cashline/internal/domain/dashboard"
	"Cashline/internal/domain/transaction"
	appErrors "Cashline/internal/errors"
	"Cashline/internal/infrastructure/memory"
	"Cashline/internal/pkg/calendar"
	"Cashline/internal/pkg/money"

	"github.com/stretchr/testify/require"
)

var today = calendar.NewDate(2026, time.October, 18)

type fakeReader struct {
	fetchVisibleFn func(ctx context.Context) ([]*transaction.Transaction, error)
}

func (f *fakeReader) FetchVisible(ctx context.Context) ([]*transaction.Transaction, error) {
	return f.fetchVisibleFn(ctx)
}

func seed(t *testing.T, store *memory.TransactionStore, typ transaction.Types, amount money.Cents, date time.Time) {
	t.Helper()
	tx := &transaction.Transaction{Title: "x", Category: transaction.CategoryOther, Type: typ, AmountCents: amount, Kind: transaction.KindSimple}
	tx.SetDate(date)
	_, err := store.Insert(context.Background(), tx)
	require.NoError(t, err)
}

func newService(store *memory.TransactionStore, budgets *memory.BudgetStore) *dashboard.Service {
	svc := dashboard.NewService(store, budgets)
	svc.Now = func() time.Time { return today }
	return svc
}

func TestNegativeBalanceAlertLooksIntoNextMonth(t *testing.T) {
	t.Parallel()

	store := memory.NewTransactionStore()
	seed(t, store, transaction.Income, 1000, calendar.NewDate(2026, time.October, 1))
	seed(t, store, transaction.Expense, 5000, calendar.NewDate(2026, time.November, 3))

	alert, err := newService(store, memory.NewBudgetStore()).NegativeBalanceAlert(context.Background(), today)
	require.NoError(t, err)
	require.NotNil(t, alert)
	require.Equal(t, calendar.NewDate(2026, time.November, 3), alert.Date)
	require.Equal(t, money.Cents(-4000), alert.Balance)
	require.Equal(t, 16, alert.DaysAway)
}

func TestNegativeBalanceAlertNone(t *testing.T) {
	t.Parallel()

	store := memory.NewTransactionStore()
	seed(t, store, transaction.Income, 9000, calendar.NewDate(2026, time.October, 1))
	seed(t, store, transaction.Expense, 5000, calendar.NewDate(2026, time.October, 25))

	alert, err := newService(store, memory.NewBudgetStore()).NegativeBalanceAlert(context.Background(), today)
	require.NoError(t, err)
	require.Nil(t, alert)
}

func TestProjectMonthsAttachesBudgets(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := memory.NewTransactionStore()
	seed(t, store, transaction.Income, 20000, calendar.NewDate(2026, time.September, 5))
	seed(t, store, transaction.Expense, 3000, calendar.NewDate(2026, time.October, 20))

	budgets := memory.NewBudgetStore()
	_, err := budgets.Upsert(ctx, &budget.Budget{MonthAnchor: calendar.NewDate(2026, time.October, 1), LimitCents: 50000})
	require.NoError(t, err)

	got, err := newService(store, budgets).ProjectMonths(ctx, calendar.MonthRange(calendar.NewDate(2026, time.September, 1), calendar.NewDate(2026, time.October, 1)), today)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Nil(t, got[0].BudgetLimit)
	require.Equal(t, money.Cents(50000), *got[1].BudgetLimit)
	require.Equal(t, money.Cents(17000), got[1].Available)
	require.Equal(t, money.Cents(20000), got[1].Current)
}

func TestGetDashboard(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := memory.NewTransactionStore()
	seed(t, store, transaction.Income, 20000, calendar.NewDate(2026, time.October, 5))
	seed(t, store, transaction.Expense, 9000, calendar.NewDate(2026, time.October, 6))

	budgets := memory.NewBudgetStore()
	_, err := budgets.Upsert(ctx, &budget.Budget{MonthAnchor: calendar.NewDate(2026, time.October, 1), LimitCents: 10000})
	require.NoError(t, err)

	resp, err := newService(store, budgets).GetDashboard(ctx, time.Time{})
	require.NoError(t, err)
	require.Len(t, resp.MonthlyTrend, 6)
	require.Equal(t, calendar.NewDate(2026, time.October, 1), resp.Summary.Month)
	require.Equal(t, money.Cents(11000), resp.Summary.Net)
	require.Len(t, resp.CategoryExpenses, 1)
	require.NotNil(t, resp.BudgetStatus)
	require.Equal(t, budget.StatusWarning, resp.BudgetStatus.Status)
}

func TestProjectionsWrapStoreErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("timeout")
	svc := dashboard.NewService(&fakeReader{fetchVisibleFn: func(context.Context) ([]*transaction.Transaction, error) {
		return nil, boom
	}}, nil)

	_, err := svc.ProjectDailyBalance(context.Background(), today, today)
	require.ErrorIs(t, err, appErrors.ErrStore)
	require.ErrorIs(t, err, boom)
}
