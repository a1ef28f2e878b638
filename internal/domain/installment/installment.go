package installment

import (
	"Cashline/internal/domain/transaction"
	appErrors "Cashline/internal/errors"
	"Cashline/internal/pkg/money"
)

const MinInstallments = 2

// Draft é o rascunho de uma compra parcelada. AmountCents é o valor total.
type Draft struct {
	transaction.Draft
	Installments int
}

// Plan é o template oculto e as parcelas geradas a partir dele.
type Plan struct {
	Template     *transaction.Transaction   `json:"template"`
	Installments []*transaction.Transaction `json:"installments"`
}

func (p *Plan) Total() money.Cents {
	amounts := make([]money.Cents, 0, len(p.Installments))
	for _, i := range p.Installments {
		amounts = append(amounts, i.AmountCents)
	}
	return money.Sum(amounts)
}

// validateCount exige ao menos um centavo por parcela.
func validateCount(n int, total money.Cents) error {
	if n < MinInstallments {
		return appErrors.ErrInvalidInstallmentCount.WithDetails(map[string]interface{}{
			"installments": n,
			"min":          MinInstallments,
		})
	}
	if total < money.Cents(n) {
		return appErrors.ErrInvalidInstallmentCount.WithDetails(map[string]interface{}{
			"installments": n,
			"max":          int64(total),
		})
	}
	return nil
}
