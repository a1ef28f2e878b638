package series_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"Cashline/internal/domain/installment"
	"Cashline/internal/domain/recurring"
	"Cashline/internal/domain/series"
	"Cashline/internal/domain/transaction"
	appErrors "Cashline/internal/errors"
	"Cashline/internal/infrastructure/memory"
	"Cashline/internal/pkg/calendar"

	"github.com/stretchr/testify/require"
)

var today = calendar.NewDate(2026, time.October, 18)

type recordingScheduler struct {
	mu        sync.Mutex
	cancelled []int64
	series    []int64
}

func (r *recordingScheduler) Schedule(context.Context, ...*transaction.Transaction) {}

func (r *recordingScheduler) Cancel(_ context.Context, ids ...int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cancelled = append(r.cancelled, ids...)
}

func (r *recordingScheduler) CancelSeries(_ context.Context, id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.series = append(r.series, id)
}

type fakeStore struct {
	*memory.TransactionStore
	deleteManyFn func(ctx context.Context, ids []int64) error
}

func (f *fakeStore) DeleteMany(ctx context.Context, ids []int64) error {
	if f.deleteManyFn != nil {
		return f.deleteManyFn(ctx, ids)
	}
	return f.TransactionStore.DeleteMany(ctx, ids)
}

func draft(date string) transaction.Draft {
	return transaction.Draft{Title: "Academia", Date: date, Category: "HEALTH", Type: "EXPENSE", AmountCents: 12000}
}

func newRecurring(t *testing.T, store *memory.TransactionStore) *recurring.Series {
	t.Helper()
	svc := recurring.NewService(store, nil, recurring.DefaultWindow)
	svc.Now = func() time.Time { return today }
	s, err := svc.CreateRecurringTransaction(context.Background(), draft("2026-10-05"))
	require.NoError(t, err)
	return s
}

func TestDeleteSeriesAllRemovesEverything(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := memory.NewTransactionStore()
	s := newRecurring(t, store)
	scheduler := &recordingScheduler{}

	d, err := series.NewService(store, scheduler).DeleteSeries(ctx, s.Occurrences[10].Id, nil, series.CleanupAll)
	require.NoError(t, err)
	require.True(t, d.WholeSeries)
	require.Len(t, d.IDs, 37)

	all, err := store.FetchAll(ctx)
	require.NoError(t, err)
	require.Empty(t, all)

	require.Len(t, scheduler.cancelled, 37)
	require.Equal(t, []int64{s.Template.Id}, scheduler.series)
}

func TestDeleteSeriesFutureOnlyUsesSelectedDate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := memory.NewTransactionStore()
	s := newRecurring(t, store)
	scheduler := &recordingScheduler{}

	selected := calendar.NewDate(2027, time.January, 1)
	d, err := series.NewService(store, scheduler).DeleteSeries(ctx, s.Template.Id, &selected, series.CleanupFutureOnly)
	require.NoError(t, err)
	require.False(t, d.WholeSeries)
	require.Empty(t, scheduler.series)

	left, err := store.FetchByParent(ctx, s.Template.Id)
	require.NoError(t, err)
	require.Len(t, left, 12+1+2)
	for _, m := range left {
		require.True(t, m.OccurrenceDate.Before(selected))
	}
}

func TestDeleteSeriesInstallmentFutureOnly(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := memory.NewTransactionStore()
	svc := installment.NewService(store, nil)
	plan, err := svc.CreateInstallmentTransaction(ctx, installment.Draft{Draft: draft("2026-01-05"), Installments: 6})
	require.NoError(t, err)

	d, err := series.NewService(store, nil).DeleteSeries(ctx, plan.Installments[3].Id, nil, series.CleanupFutureOnly)
	require.NoError(t, err)
	require.Len(t, d.IDs, 3)

	left, err := store.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, left, 4)

	template, err := store.GetByID(ctx, plan.Template.Id)
	require.NoError(t, err)
	require.True(t, template.HasInstallments())
}

func TestDeleteSeriesErrors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := memory.NewTransactionStore()
	s := newRecurring(t, store)
	svc := series.NewService(store, nil)

	_, err := svc.DeleteSeries(ctx, 9999, nil, series.CleanupAll)
	require.ErrorIs(t, err, appErrors.ErrTransactionNotFound)

	_, err = svc.DeleteSeries(ctx, s.Template.Id, nil, series.CleanupOption("some"))
	require.ErrorIs(t, err, appErrors.ErrInvalidCleanupOption)

	all, err := store.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 37)
}

func TestDeleteSeriesSimpleIgnoresOption(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := memory.NewTransactionStore()
	simple, err := transaction.NewService(store, nil).CreateSimpleTransaction(ctx, draft("2026-10-20"))
	require.NoError(t, err)

	d, err := series.NewService(store, nil).DeleteSeries(ctx, simple.Id, nil, "")
	require.NoError(t, err)
	require.Equal(t, []int64{simple.Id}, d.IDs)

	_, err = store.GetByID(ctx, simple.Id)
	require.ErrorIs(t, err, transaction.ErrNotFound)
}

func TestDeleteSeriesStoreFailureSkipsReminders(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	inner := memory.NewTransactionStore()
	s := newRecurring(t, inner)
	scheduler := &recordingScheduler{}

	boom := errors.New("locked")
	store := &fakeStore{TransactionStore: inner, deleteManyFn: func(context.Context, []int64) error { return boom }}

	_, err := series.NewService(store, scheduler).DeleteSeries(ctx, s.Template.Id, nil, series.CleanupAll)
	require.ErrorIs(t, err, appErrors.ErrStore)
	require.Empty(t, scheduler.cancelled)
}

func TestExtendWindowKeepsFutureOnlyCut(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := memory.NewTransactionStore()
	generator := recurring.NewService(store, nil, recurring.DefaultWindow)
	generator.Now = func() time.Time { return today }

	s, err := generator.CreateRecurringTransaction(ctx, draft("2026-01-10"))
	require.NoError(t, err)

	cutoff := calendar.NewDate(2026, time.December, 10)
	d, err := series.NewService(store, nil).DeleteSeries(ctx, s.Template.Id, &cutoff, series.CleanupFutureOnly)
	require.NoError(t, err)
	require.Len(t, d.IDs, 23)
	require.False(t, d.WholeSeries)

	head, err := store.GetByID(ctx, s.Template.Id)
	require.NoError(t, err)
	require.NotNil(t, head.SeriesEndDate)
	require.True(t, cutoff.Equal(*head.SeriesEndDate))

	created, err := generator.ExtendWindow(ctx, s.Template.Id, recurring.DefaultWindow)
	require.NoError(t, err)
	require.Empty(t, created)

	created, err = generator.ExtendWindow(ctx, s.Template.Id, recurring.Window{MonthsBack: 14, MonthsForward: 36})
	require.NoError(t, err)
	require.Len(t, created, 2)
	for _, c := range created {
		require.True(t, c.OccurrenceDate.Before(cutoff))
	}

	left, err := store.FetchByParent(ctx, s.Template.Id)
	require.NoError(t, err)
	for _, m := range left {
		require.True(t, m.OccurrenceDate.Before(cutoff))
	}
}
