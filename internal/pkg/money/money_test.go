package money_test

import (
	"testing"

	"Cashline/internal/pkg/money"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestDistributeConcentratesRemainderOnFirstInstallment(t *testing.T) {
	t.Parallel()

	parts, err := money.Distribute(100001, 3)
	require.NoError(t, err)
	require.Equal(t, []money.Cents{33335, 33333, 33333}, parts)
	require.Equal(t, money.Cents(100001), money.Sum(parts))
}

func TestDistributeSumsToTotal(t *testing.T) {
	t.Parallel()

	totals := []money.Cents{2, 99, 100, 101, 999, 123456, 100000007}
	for _, total := range totals {
		for n := 2; n <= 48; n++ {
			parts, err := money.Distribute(total, n)
			require.NoError(t, err)
			require.Len(t, parts, n)
			require.Equal(t, total, money.Sum(parts), "total=%d n=%d", total, n)
			require.Equal(t, total/money.Cents(n)+total%money.Cents(n), parts[0])
			for i := 1; i < n; i++ {
				require.Equal(t, total/money.Cents(n), parts[i])
			}
		}
	}
}

func TestDistributeRejectsNonPositiveCount(t *testing.T) {
	t.Parallel()

	_, err := money.Distribute(100, 0)
	require.ErrorIs(t, err, money.ErrInvalidSplit)
}

func TestParseAmount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    money.Cents
		wantErr error
	}{
		{name: "inteiro", input: "12", want: 1200},
		{name: "com centavos", input: "1234.56", want: 123456},
		{name: "uma casa", input: "0.5", want: 50},
		{name: "espacos", input: "  7.01 ", want: 701},
		{name: "fração de centavo", input: "1.005", wantErr: money.ErrFractionCents},
		{name: "vazio", input: "", wantErr: money.ErrInvalidAmount},
		{name: "texto", input: "abc", wantErr: money.ErrInvalidAmount},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := money.ParseAmount(tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestCentsString(t *testing.T) {
	t.Parallel()

	require.Equal(t, "1234.56", money.Cents(123456).String())
	require.Equal(t, "-0.05", money.Cents(-5).String())
	require.Equal(t, "0.00", money.Cents(0).String())
	require.Equal(t, money.Cents(1999), money.FromDecimal(decimal.RequireFromString("19.99")))
}
