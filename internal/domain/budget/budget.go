package budget

import (
	"time"

	"Cashline/internal/pkg/money"

	"github.com/shopspring/decimal"
)

const (
	StatusOK       = "ok"
	StatusWarning  = "warning"
	StatusExceeded = "exceeded"
)

// AlertAt é o percentual gasto a partir do qual o orçamento entra em alerta.
var AlertAt = decimal.NewFromInt(80)

// Budget é o limite de gastos de um mês. Existe no máximo um por âncora.
type Budget struct {
	Id          int64       `json:"id"`
	MonthAnchor time.Time   `json:"monthAnchor"`
	LimitCents  money.Cents `json:"limitCents"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

type BudgetStatus struct {
	MonthAnchor    time.Time       `json:"monthAnchor"`
	LimitCents     money.Cents     `json:"limitCents"`
	SpentCents     money.Cents     `json:"spentCents"`
	RemainingCents money.Cents     `json:"remainingCents"`
	Percentage     decimal.Decimal `json:"percentage"`
	Status         string          `json:"status"`
}

// GetPercentage retorna a porcentagem gasta do orçamento
func (b *Budget) GetPercentage(spent money.Cents) decimal.Decimal {
	if b.LimitCents == 0 {
		return decimal.Zero
	}
	return spent.Decimal().Mul(decimal.NewFromInt(100)).Div(b.LimitCents.Decimal()).Round(2)
}

// GetRemaining retorna quanto ainda pode gastar
func (b *Budget) GetRemaining(spent money.Cents) money.Cents {
	remaining := b.LimitCents - spent
	if remaining < 0 {
		return 0
	}
	return remaining
}

// GetStatus retorna o status do orçamento
func (b *Budget) GetStatus(spent money.Cents) string {
	percentage := b.GetPercentage(spent)
	if percentage.GreaterThanOrEqual(decimal.NewFromInt(100)) {
		return StatusExceeded
	} else if percentage.GreaterThanOrEqual(AlertAt) {
		return StatusWarning
	}
	return StatusOK
}

func (b *Budget) StatusFor(spent money.Cents) *BudgetStatus {
	return &BudgetStatus{
		MonthAnchor:    b.MonthAnchor,
		LimitCents:     b.LimitCents,
		SpentCents:     spent,
		RemainingCents: b.GetRemaining(spent),
		Percentage:     b.GetPercentage(spent),
		Status:         b.GetStatus(spent),
	}
}
