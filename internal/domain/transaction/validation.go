package transaction

import (
	"strings"
	"time"

	appErrors "Cashline/internal/errors"
	"Cashline/internal/pkg/calendar"
	"Cashline/internal/pkg/money"
)

// Draft reúne os campos comuns às três formas de criação.
type Draft struct {
	Title       string
	Date        string
	Category    string
	Type        string
	AmountCents money.Cents
}

type ValidDraft struct {
	Title       string
	Date        time.Time
	Category    Category
	Type        Types
	AmountCents money.Cents
}

// Validate verifica na ordem data, categoria, tipo e valor. Nenhuma escrita
// deve acontecer antes desta chamada.
func (d Draft) Validate() (ValidDraft, error) {
	date, err := calendar.ParseDate(d.Date)
	if err != nil {
		return ValidDraft{}, appErrors.ErrInvalidDateFormat.WithDetails(map[string]interface{}{
			"date": d.Date,
		})
	}

	category := Category(strings.ToUpper(strings.TrimSpace(d.Category)))
	if !category.IsValid() {
		return ValidDraft{}, appErrors.ErrInvalidCategory.WithDetails(map[string]interface{}{
			"category": d.Category,
		})
	}

	typ := Types(strings.ToUpper(strings.TrimSpace(d.Type)))
	if !typ.IsValid() {
		return ValidDraft{}, appErrors.ErrInvalidType.WithDetails(map[string]interface{}{
			"type": d.Type,
		})
	}

	if d.AmountCents <= 0 {
		return ValidDraft{}, appErrors.ErrInvalidAmount
	}

	return ValidDraft{
		Title:       strings.TrimSpace(d.Title),
		Date:        date,
		Category:    category,
		Type:        typ,
		AmountCents: d.AmountCents,
	}, nil
}

// NewRecord monta um registro ainda não persistido a partir do rascunho validado.
func (v ValidDraft) NewRecord(kind Kind, date time.Time, amount money.Cents, now time.Time) *Transaction {
	t := &Transaction{
		Title:       v.Title,
		Category:    v.Category,
		Type:        v.Type,
		AmountCents: amount,
		Kind:        kind,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	t.SetDate(date)
	return t
}
