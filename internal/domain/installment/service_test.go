package installment_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"Cashline/internal/domain/installment"
	"Cashline/internal/domain/transaction"
	appErrors "Cashline/internal/errors"
	"Cashline/internal/infrastructure/memory"
	"Cashline/internal/pkg/calendar"
	"Cashline/internal/pkg/money"

	"github.com/stretchr/testify/require"
)

var today = calendar.NewDate(2026, time.October, 18)

type recordingScheduler struct {
	mu        sync.Mutex
	scheduled []*transaction.Transaction
}

func (r *recordingScheduler) Schedule(_ context.Context, items ...*transaction.Transaction) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scheduled = append(r.scheduled, items...)
}
func (r *recordingScheduler) Cancel(context.Context, ...int64)    {}
func (r *recordingScheduler) CancelSeries(context.Context, int64) {}

type fakeStore struct {
	insertFn func(ctx context.Context, t *transaction.Transaction) (int64, error)
}

func (f *fakeStore) Insert(ctx context.Context, t *transaction.Transaction) (int64, error) {
	return f.insertFn(ctx, t)
}

func newService(store installment.Store, scheduler transaction.ReminderScheduler) *installment.Service {
	svc := installment.NewService(store, scheduler)
	svc.Now = func() time.Time { return today.Add(10 * time.Hour) }
	return svc
}

func purchase(date string, total money.Cents, n int) installment.Draft {
	return installment.Draft{
		Draft: transaction.Draft{
			Title:       "Notebook",
			Date:        date,
			Category:    "shopping",
			Type:        "EXPENSE",
			AmountCents: total,
		},
		Installments: n,
	}
}

func TestCreateInstallmentTransactionDistributesRemainderToFirst(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := memory.NewTransactionStore()

	plan, err := newService(store, nil).CreateInstallmentTransaction(ctx, purchase("2026-01-31", 100001, 3))
	require.NoError(t, err)

	require.Equal(t, transaction.KindInstallmentTemplate, plan.Template.Kind)
	require.Equal(t, money.Cents(0), plan.Template.AmountCents)
	require.Nil(t, plan.Template.ParentTransactionId)
	require.Equal(t, money.Cents(100001), *plan.Template.OriginalAmountCents)
	require.Equal(t, 3, *plan.Template.TotalInstallments)
	require.False(t, plan.Template.IsVisible())

	amounts := []money.Cents{}
	days := []time.Time{}
	for i, occ := range plan.Installments {
		require.Equal(t, transaction.KindInstallmentOccurrence, occ.Kind)
		require.Equal(t, plan.Template.Id, *occ.ParentTransactionId)
		require.Equal(t, i+1, *occ.InstallmentNumber)
		require.Equal(t, 3, *occ.TotalInstallments)
		require.Equal(t, money.Cents(100001), *occ.OriginalAmountCents)
		require.Equal(t, transaction.Category("SHOPPING"), occ.Category)
		amounts = append(amounts, occ.AmountCents)
		days = append(days, occ.OccurrenceDate)
	}
	require.Equal(t, []money.Cents{33335, 33333, 33333}, amounts)
	require.Equal(t, money.Cents(100001), plan.Total())
	require.Equal(t, []time.Time{
		calendar.NewDate(2026, time.January, 31),
		calendar.NewDate(2026, time.February, 28),
		calendar.NewDate(2026, time.March, 31),
	}, days)

	visible, err := store.FetchVisible(ctx)
	require.NoError(t, err)
	require.Len(t, visible, 3)

	all, err := store.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 4)
}

func TestCreateInstallmentTransactionSumsExactly(t *testing.T) {
	t.Parallel()

	tests := []struct {
		total money.Cents
		n     int
	}{
		{total: 100, n: 3},
		{total: 99999, n: 7},
		{total: 5, n: 2},
		{total: 120000, n: 12},
	}

	for _, tt := range tests {
		plan, err := newService(memory.NewTransactionStore(), nil).
			CreateInstallmentTransaction(context.Background(), purchase("2026-05-10", tt.total, tt.n))
		require.NoError(t, err)
		require.Len(t, plan.Installments, tt.n)
		require.Equal(t, tt.total, plan.Total())

		base := tt.total / money.Cents(tt.n)
		require.Equal(t, base+tt.total%money.Cents(tt.n), plan.Installments[0].AmountCents)
		for _, occ := range plan.Installments[1:] {
			require.Equal(t, base, occ.AmountCents)
		}
	}
}

func TestCreateInstallmentTransactionValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		draft installment.Draft
		want  error
	}{
		{
			name:  "uma parcela",
			draft: purchase("2026-05-10", 1000, 1),
			want:  appErrors.ErrInvalidInstallmentCount,
		},
		{
			name:  "zero parcelas",
			draft: purchase("2026-05-10", 1000, 0),
			want:  appErrors.ErrInvalidInstallmentCount,
		},
		{
			name:  "data inválida antes da contagem",
			draft: purchase("10/05/2026", 1000, 1),
			want:  appErrors.ErrInvalidDateFormat,
		},
		{
			name:  "valor antes da contagem",
			draft: purchase("2026-05-10", 0, 1),
			want:  appErrors.ErrInvalidAmount,
		},
		{
			name:  "menos centavos que parcelas",
			draft: purchase("2026-11-01", 2, 3),
			want:  appErrors.ErrInvalidInstallmentCount,
		},
		{
			name:  "um centavo por parcela",
			draft: purchase("2026-11-01", 2, 2),
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store := memory.NewTransactionStore()
			plan, err := newService(store, nil).CreateInstallmentTransaction(context.Background(), tt.draft)
			if tt.want == nil {
				require.NoError(t, err)
				for _, occ := range plan.Installments {
					require.Positive(t, int64(occ.AmountCents))
				}
				return
			}
			require.ErrorIs(t, err, tt.want)

			all, err := store.FetchAll(context.Background())
			require.NoError(t, err)
			require.Empty(t, all)
		})
	}
}

func TestCreateInstallmentTransactionSchedulesInstallmentsOnly(t *testing.T) {
	t.Parallel()

	scheduler := &recordingScheduler{}
	plan, err := newService(memory.NewTransactionStore(), scheduler).
		CreateInstallmentTransaction(context.Background(), purchase("2026-09-30", 40000, 4))
	require.NoError(t, err)

	require.Len(t, scheduler.scheduled, 3)
	for _, s := range scheduler.scheduled {
		require.Equal(t, transaction.KindInstallmentOccurrence, s.Kind)
		require.NotEqual(t, plan.Installments[0].Id, s.Id)
	}
}

func TestCreateInstallmentTransactionStopsOnStoreError(t *testing.T) {
	t.Parallel()

	boom := errors.New("connection reset")
	calls := 0
	store := &fakeStore{insertFn: func(context.Context, *transaction.Transaction) (int64, error) {
		calls++
		if calls == 3 {
			return 0, boom
		}
		return int64(calls), nil
	}}

	_, err := newService(store, nil).CreateInstallmentTransaction(context.Background(), purchase("2026-05-10", 9000, 5))
	require.ErrorIs(t, err, appErrors.ErrStore)
	require.ErrorIs(t, err, boom)
	require.Equal(t, 3, calls)
}
