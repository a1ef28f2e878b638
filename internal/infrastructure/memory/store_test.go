package memory

import (
	"context"
	"testing"
	"time"

	"Cashline/internal/domain/budget"
	"Cashline/internal/domain/transaction"
	"Cashline/internal/pkg"
	"Cashline/internal/pkg/calendar"
	"Cashline/internal/pkg/money"

	"github.com/stretchr/testify/require"
)

func record(kind transaction.Kind, date time.Time, amount money.Cents) *transaction.Transaction {
	t := &transaction.Transaction{
		Title:       "x",
		Category:    transaction.CategoryBills,
		Type:        transaction.Expense,
		AmountCents: amount,
		Kind:        kind,
	}
	t.SetDate(date)
	return t
}

func TestTransactionStoreCopiesOnReadAndWrite(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewTransactionStore()

	in := record(transaction.KindSimple, calendar.NewDate(2026, time.May, 3), 100)
	id, err := store.Insert(ctx, in)
	require.NoError(t, err)
	require.Equal(t, int64(1), id)
	require.Zero(t, in.Id)

	in.Title = "alterado"
	got, err := store.GetByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "x", got.Title)

	got.Title = "outro"
	again, err := store.GetByID(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "x", again.Title)
}

func TestTransactionStoreParentLinkAndVisibility(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewTransactionStore()

	head, err := store.Insert(ctx, record(transaction.KindInstallmentTemplate, calendar.NewDate(2026, time.May, 3), 0))
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		occ := record(transaction.KindInstallmentOccurrence, calendar.NewDate(2026, time.May+time.Month(i), 3), 10)
		occ.ParentTransactionId = &head
		_, err := store.Insert(ctx, occ)
		require.NoError(t, err)
	}

	all, err := store.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 4)

	visible, err := store.FetchVisible(ctx)
	require.NoError(t, err)
	require.Len(t, visible, 3)

	children, err := store.FetchByParent(ctx, head)
	require.NoError(t, err)
	require.Len(t, children, 3)

	require.ErrorIs(t, store.UpdateParentLink(ctx, 99, 1), transaction.ErrNotFound)
	require.ErrorIs(t, store.UpdateSeriesEnd(ctx, 99, calendar.NewDate(2026, time.June, 1)), transaction.ErrNotFound)
	require.NoError(t, store.DeleteMany(ctx, []int64{2, 3, 42}))
	require.ErrorIs(t, store.Delete(ctx, 2), transaction.ErrNotFound)

	all, err = store.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestTransactionStoreListFiltersAndPaginates(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewTransactionStore()
	for d := 1; d <= 15; d++ {
		_, err := store.Insert(ctx, record(transaction.KindSimple, calendar.NewDate(2026, time.June, d), 100))
		require.NoError(t, err)
	}
	_, err := store.Insert(ctx, record(transaction.KindSimple, calendar.NewDate(2026, time.July, 1), 100))
	require.NoError(t, err)

	june := calendar.NewDate(2026, time.June, 1)
	items, total, err := store.List(ctx, &transaction.TransactionFilters{Month: &june}, &pkg.PaginationParams{Page: 2, Limit: 10})
	require.NoError(t, err)
	require.Equal(t, int64(15), total)
	require.Len(t, items, 5)
	require.Equal(t, 5, items[0].OccurrenceDate.Day())
}

func TestBudgetStoreUpsertKeepsOnePerMonth(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewBudgetStore()

	first, err := store.Upsert(ctx, &budget.Budget{MonthAnchor: calendar.NewDate(2026, time.March, 17), LimitCents: 1000})
	require.NoError(t, err)
	second, err := store.Upsert(ctx, &budget.Budget{MonthAnchor: calendar.NewDate(2026, time.March, 2), LimitCents: 2000})
	require.NoError(t, err)
	require.Equal(t, first.Id, second.Id)

	all, err := store.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, money.Cents(2000), all[0].LimitCents)

	require.NoError(t, store.Delete(ctx, calendar.NewDate(2026, time.March, 1)))
	_, err = store.GetByMonth(ctx, calendar.NewDate(2026, time.March, 1))
	require.ErrorIs(t, err, budget.ErrNotFound)
}
