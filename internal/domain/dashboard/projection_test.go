package dashboard

import (
	"testing"
	"time"

	"Cashline/internal/domain/transaction"
	"Cashline/internal/pkg/calendar"
	"Cashline/internal/pkg/money"

	"github.com/stretchr/testify/require"
)

func tx(typ transaction.Types, amount money.Cents, date time.Time) *transaction.Transaction {
	t := &transaction.Transaction{Type: typ, AmountCents: amount, Kind: transaction.KindSimple}
	t.SetDate(date)
	return t
}

func day(m time.Month, d int) time.Time {
	return calendar.NewDate(2026, m, d)
}

func monthlyFixture() []*transaction.Transaction {
	hidden := tx(transaction.Expense, 999999, day(time.January, 1))
	hidden.Kind = transaction.KindInstallmentTemplate

	return []*transaction.Transaction{
		tx(transaction.Income, 1000, calendar.NewDate(2025, time.December, 20)),
		tx(transaction.Income, 5000, day(time.January, 5)),
		tx(transaction.Expense, 2000, day(time.January, 20)),
		tx(transaction.Expense, 1000, day(time.February, 10)),
		tx(transaction.Income, 300, day(time.March, 1)),
		hidden,
	}
}

func TestProjectMonthsCarriesAvailableForward(t *testing.T) {
	t.Parallel()

	limits := map[time.Time]money.Cents{day(time.February, 1): 150000}
	anchors := []time.Time{day(time.March, 31), day(time.January, 2), day(time.February, 1), day(time.January, 15)}

	got := ProjectMonths(monthlyFixture(), anchors, day(time.January, 15), limits)
	require.Len(t, got, 3)

	jan, feb, mar := got[0], got[1], got[2]
	require.Equal(t, day(time.January, 1), jan.Month)
	require.Equal(t, money.Cents(1000), jan.Opening)
	require.Equal(t, money.Cents(5000), jan.Income)
	require.Equal(t, money.Cents(2000), jan.Expense)
	require.Equal(t, money.Cents(3000), jan.Net)
	require.Equal(t, money.Cents(4000), jan.Available)
	require.Equal(t, money.Cents(6000), jan.Current)
	require.Nil(t, jan.BudgetLimit)

	require.Equal(t, money.Cents(4000), feb.Opening)
	require.Equal(t, money.Cents(3000), feb.Available)
	require.Equal(t, money.Cents(4000), feb.Current)
	require.Equal(t, money.Cents(150000), *feb.BudgetLimit)

	require.Equal(t, money.Cents(3300), mar.Available)
	require.Equal(t, money.Cents(3000), mar.Current)

	for i := 1; i < len(got); i++ {
		require.Equal(t, got[i-1].Available+got[i].Net, got[i].Available)
	}
}

func TestProjectMonthsIncludesSkippedMonths(t *testing.T) {
	t.Parallel()

	got := ProjectMonths(monthlyFixture(), []time.Time{day(time.January, 1), day(time.March, 1)}, day(time.April, 1), nil)
	require.Len(t, got, 2)
	require.Equal(t, money.Cents(3000), got[1].Opening)
	require.Equal(t, money.Cents(3300), got[1].Available)
	require.Equal(t, got[1].Available, got[1].Current)
}

func TestProjectMonthsLaterChangeKeepsEarlierMonths(t *testing.T) {
	t.Parallel()

	anchors := calendar.MonthRange(day(time.January, 1), day(time.April, 1))
	before := ProjectMonths(monthlyFixture(), anchors, day(time.January, 1), nil)

	changed := append(monthlyFixture(), tx(transaction.Expense, 7777, day(time.March, 9)))
	after := ProjectMonths(changed, anchors, day(time.January, 1), nil)

	require.Equal(t, before[0], after[0])
	require.Equal(t, before[1], after[1])
	require.Equal(t, before[2].Available-7777, after[2].Available)
	require.Equal(t, before[3].Available-7777, after[3].Available)
}

func TestProjectMonthsEmpty(t *testing.T) {
	t.Parallel()

	require.Empty(t, ProjectMonths(monthlyFixture(), nil, day(time.January, 1), nil))
}

func dailyFixture(previousNet money.Cents) []*transaction.Transaction {
	items := []*transaction.Transaction{
		tx(transaction.Expense, 4000, day(time.November, 5)),
		tx(transaction.Expense, 7000, day(time.November, 15)),
		tx(transaction.Income, 500, day(time.December, 1)),
	}
	if previousNet > 0 {
		items = append(items, tx(transaction.Income, previousNet, day(time.October, 3)))
	} else if previousNet < 0 {
		items = append(items, tx(transaction.Expense, -previousNet, day(time.October, 3)))
	}
	return items
}

func TestProjectDaily(t *testing.T) {
	t.Parallel()

	nov := day(time.November, 1)

	tests := []struct {
		name     string
		items    []*transaction.Transaction
		today    time.Time
		initial  money.Cents
		negative *time.Time
	}{
		{
			name:     "cruza zero no dia 15",
			items:    dailyFixture(10000),
			today:    day(time.November, 1),
			initial:  10000,
			negative: ptr(day(time.November, 15)),
		},
		{
			name:     "exatamente trinta dias",
			items:    dailyFixture(10000),
			today:    day(time.October, 16),
			initial:  10000,
			negative: ptr(day(time.November, 15)),
		},
		{
			name:    "mais de trinta dias",
			items:   dailyFixture(10000),
			today:   day(time.October, 10),
			initial: 10000,
		},
		{
			name:    "primeiro dia negativo é hoje",
			items:   dailyFixture(10000),
			today:   day(time.November, 15),
			initial: 10000,
		},
		{
			name:     "saldo anterior negativo vira zero",
			items:    dailyFixture(-5000),
			today:    day(time.November, 1),
			initial:  0,
			negative: ptr(day(time.November, 5)),
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := ProjectDaily(tt.items, nov, tt.today)
			require.Equal(t, nov, p.Month)
			require.Equal(t, tt.initial, p.InitialBalance)
			require.Len(t, p.Days, 30)
			require.Equal(t, tt.negative, p.FirstNegativeDay)
		})
	}
}

func TestProjectDailyBalances(t *testing.T) {
	t.Parallel()

	p := ProjectDaily(dailyFixture(10000), day(time.November, 20), day(time.November, 1))

	b, ok := p.Balance(day(time.November, 4))
	require.True(t, ok)
	require.Equal(t, money.Cents(10000), b)

	b, _ = p.Balance(day(time.November, 5))
	require.Equal(t, money.Cents(6000), b)

	b, _ = p.Balance(day(time.November, 30))
	require.Equal(t, money.Cents(-1000), b)

	_, ok = p.Balance(day(time.December, 1))
	require.False(t, ok)
}

func TestCategoryExpenses(t *testing.T) {
	t.Parallel()

	food := tx(transaction.Expense, 3000, day(time.May, 2))
	food.Category = transaction.CategoryFood
	housing := tx(transaction.Expense, 9000, day(time.May, 10))
	housing.Category = transaction.CategoryHousing
	salary := tx(transaction.Income, 50000, day(time.May, 5))
	salary.Category = transaction.CategorySalary

	got := CategoryExpenses([]*transaction.Transaction{food, housing, salary}, day(time.May, 1))
	require.Len(t, got, 2)
	require.Equal(t, transaction.CategoryHousing, got[0].Category)
	require.Equal(t, "75", got[0].Percentage.String())
	require.Equal(t, "25", got[1].Percentage.String())
}

func ptr(t time.Time) *time.Time { return &t }
