package money

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// Cents representa um valor monetário em centavos inteiros.
type Cents int64

var (
	ErrInvalidAmount = errors.New("valor monetário inválido")
	ErrFractionCents = errors.New("valor possui fração de centavo")
	ErrInvalidSplit  = errors.New("número de parcelas deve ser maior que zero")
)

func (c Cents) Decimal() decimal.Decimal {
	return decimal.New(int64(c), -2)
}

func (c Cents) String() string {
	return c.Decimal().StringFixed(2)
}

// ParseAmount converte "1234.56" em centavos. Rejeita frações menores que um centavo.
func ParseAmount(s string) (Cents, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, ErrInvalidAmount
	}

	shifted := d.Shift(2)
	if !shifted.Equal(shifted.Truncate(0)) {
		return 0, ErrFractionCents
	}

	return Cents(shifted.IntPart()), nil
}

func FromDecimal(d decimal.Decimal) Cents {
	return Cents(d.Shift(2).Round(0).IntPart())
}

// Distribute divide total em n partes. A primeira parte recebe o resto da
// divisão inteira, as demais recebem total/n.
func Distribute(total Cents, n int) ([]Cents, error) {
	if n <= 0 {
		return nil, ErrInvalidSplit
	}

	base := total / Cents(n)
	remainder := total % Cents(n)

	parts := make([]Cents, n)
	for i := range parts {
		parts[i] = base
	}
	parts[0] += remainder

	return parts, nil
}

func Sum(values []Cents) Cents {
	var total Cents
	for _, v := range values {
		total += v
	}
	return total
}
