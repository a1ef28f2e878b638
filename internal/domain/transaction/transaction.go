package transaction

import (
	"time"

	"Cashline/internal/pkg/calendar"
	"Cashline/internal/pkg/money"
)

type Types string

const (
	Income  Types = "INCOME"
	Expense Types = "EXPENSE"
)

func (t Types) IsValid() bool {
	switch t {
	case Income, Expense:
		return true
	}
	return false
}

// Kind identifica o papel do registro dentro de uma série.
type Kind string

const (
	KindSimple                Kind = "SIMPLE"
	KindRecurringTemplate     Kind = "RECURRING_TEMPLATE"
	KindRecurringOccurrence   Kind = "RECURRING_OCCURRENCE"
	KindInstallmentTemplate   Kind = "INSTALLMENT_TEMPLATE"
	KindInstallmentOccurrence Kind = "INSTALLMENT_OCCURRENCE"
)

func (k Kind) IsValid() bool {
	switch k {
	case KindSimple, KindRecurringTemplate, KindRecurringOccurrence,
		KindInstallmentTemplate, KindInstallmentOccurrence:
		return true
	}
	return false
}

func (k Kind) IsRecurring() bool {
	return k == KindRecurringTemplate || k == KindRecurringOccurrence
}

func (k Kind) IsInstallment() bool {
	return k == KindInstallmentTemplate || k == KindInstallmentOccurrence
}

type Transaction struct {
	Id                  int64        `json:"id"`
	Title               string       `json:"title"`
	Category            Category     `json:"category"`
	Type                Types        `json:"type"`
	AmountCents         money.Cents  `json:"amountCents"`
	OccurrenceDate      time.Time    `json:"occurrenceDate"`
	MonthAnchor         time.Time    `json:"monthAnchor"`
	Kind                Kind         `json:"kind"`
	ParentTransactionId *int64       `json:"parentTransactionId,omitempty"`
	InstallmentNumber   *int         `json:"installmentNumber,omitempty"`
	TotalInstallments   *int         `json:"totalInstallments,omitempty"`
	OriginalAmountCents *money.Cents `json:"originalAmountCents,omitempty"`
	SeriesEndDate       *time.Time   `json:"seriesEndDate,omitempty"`
	CreatedAt           time.Time    `json:"createdAt"`
	UpdatedAt           time.Time    `json:"updatedAt"`
}

func (t *Transaction) IsRecurringTemplate() bool {
	return t.Kind == KindRecurringTemplate
}

// HasInstallments indica o template oculto de uma compra parcelada.
func (t *Transaction) HasInstallments() bool {
	return t.Kind == KindInstallmentTemplate
}

// SeriesID retorna o id do cabeça da série à qual o registro pertence.
func (t *Transaction) SeriesID() (int64, bool) {
	switch t.Kind {
	case KindRecurringTemplate, KindInstallmentTemplate:
		return t.Id, true
	case KindRecurringOccurrence, KindInstallmentOccurrence:
		if t.ParentTransactionId != nil {
			return *t.ParentTransactionId, true
		}
	}
	return 0, false
}

// IsVisible exclui apenas o template de parcelamento, cujo valor é zero.
func (t *Transaction) IsVisible() bool {
	return t.Kind != KindInstallmentTemplate
}

func (t *Transaction) SignedAmount() money.Cents {
	if t.Type == Expense {
		return -t.AmountCents
	}
	return t.AmountCents
}

// IsPastEnd indica se date cai a partir do encerramento da série. Vale apenas
// para o template recorrente.
func (t *Transaction) IsPastEnd(date time.Time) bool {
	return t.SeriesEndDate != nil && !date.Before(*t.SeriesEndDate)
}

// SetDate normaliza a data e recalcula a âncora do mês.
func (t *Transaction) SetDate(d time.Time) {
	t.OccurrenceDate = calendar.Date(d)
	t.MonthAnchor = calendar.MonthAnchor(d)
}

func (t *Transaction) Clone() *Transaction {
	c := *t
	if t.ParentTransactionId != nil {
		v := *t.ParentTransactionId
		c.ParentTransactionId = &v
	}
	if t.InstallmentNumber != nil {
		v := *t.InstallmentNumber
		c.InstallmentNumber = &v
	}
	if t.TotalInstallments != nil {
		v := *t.TotalInstallments
		c.TotalInstallments = &v
	}
	if t.OriginalAmountCents != nil {
		v := *t.OriginalAmountCents
		c.OriginalAmountCents = &v
	}
	if t.SeriesEndDate != nil {
		v := *t.SeriesEndDate
		c.SeriesEndDate = &v
	}
	return &c
}

type TransactionFilters struct {
	Month    *time.Time
	Type     *Types
	Category *Category
	Kind     *Kind
	Search   *string
}
