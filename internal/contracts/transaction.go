package contracts

import (
	"time"

	"Cashline/internal/domain/transaction"
	"Cashline/internal/pkg/calendar"
	"Cashline/internal/pkg/money"
)

// TransactionCreateRequest serve às três formas de criação. Amount é um
// decimal com no máximo duas casas, por exemplo "1234.56". Data, categoria,
// tipo e valor ficam a cargo do domínio, que os verifica nessa ordem.
type TransactionCreateRequest struct {
	Title    string `json:"title" binding:"required,max=255"`
	Amount   string `json:"amount"`
	Date     string `json:"date"`
	Category string `json:"category"`
	Type     string `json:"type"`
}

type InstallmentCreateRequest struct {
	TransactionCreateRequest
	Installments int `json:"installments" binding:"omitempty,max=480"`
}

type ExtendWindowRequest struct {
	MonthsBack    int `json:"monthsBack" binding:"min=0,max=120"`
	MonthsForward int `json:"monthsForward" binding:"min=0,max=120"`
}

// ToDraft converte o valor decimal em centavos. Um valor ilegível vira zero
// e é rejeitado pelo domínio depois de data, categoria e tipo.
func (r TransactionCreateRequest) ToDraft() transaction.Draft {
	amount, err := money.ParseAmount(r.Amount)
	if err != nil {
		amount = 0
	}
	return transaction.Draft{
		Title:       r.Title,
		Date:        r.Date,
		Category:    r.Category,
		Type:        r.Type,
		AmountCents: amount,
	}
}

type TransactionResponse struct {
	Id                  int64     `json:"id"`
	Title               string    `json:"title"`
	Category            string    `json:"category"`
	Type                string    `json:"type"`
	Amount              string    `json:"amount"`
	AmountCents         int64     `json:"amountCents"`
	Date                string    `json:"date"`
	Month               string    `json:"month"`
	Kind                string    `json:"kind"`
	ParentTransactionId *int64    `json:"parentTransactionId,omitempty"`
	InstallmentNumber   *int      `json:"installmentNumber,omitempty"`
	TotalInstallments   *int      `json:"totalInstallments,omitempty"`
	OriginalAmount      *string   `json:"originalAmount,omitempty"`
	SeriesEnd           *string   `json:"seriesEnd,omitempty"`
	CreatedAt           time.Time `json:"createdAt"`
}

func NewTransactionResponse(t *transaction.Transaction) TransactionResponse {
	resp := TransactionResponse{
		Id:                  t.Id,
		Title:               t.Title,
		Category:            string(t.Category),
		Type:                string(t.Type),
		Amount:              t.AmountCents.String(),
		AmountCents:         int64(t.AmountCents),
		Date:                calendar.FormatDate(t.OccurrenceDate),
		Month:               calendar.FormatMonth(t.MonthAnchor),
		Kind:                string(t.Kind),
		ParentTransactionId: t.ParentTransactionId,
		InstallmentNumber:   t.InstallmentNumber,
		TotalInstallments:   t.TotalInstallments,
		CreatedAt:           t.CreatedAt,
	}
	if t.OriginalAmountCents != nil {
		original := t.OriginalAmountCents.String()
		resp.OriginalAmount = &original
	}
	if t.SeriesEndDate != nil {
		end := calendar.FormatDate(*t.SeriesEndDate)
		resp.SeriesEnd = &end
	}
	return resp
}

func NewTransactionResponses(items []*transaction.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(items))
	for _, t := range items {
		out = append(out, NewTransactionResponse(t))
	}
	return out
}

type TransactionCreateResponse struct {
	Message     string              `json:"message"`
	Transaction TransactionResponse `json:"transaction"`
}

type TransactionSingleResponse struct {
	Transaction TransactionResponse `json:"transaction"`
}

type SeriesCreateResponse struct {
	Message     string                `json:"message"`
	Template    TransactionResponse   `json:"template"`
	Occurrences []TransactionResponse `json:"occurrences"`
	Total       int                   `json:"total"`
}

type ExtendWindowResponse struct {
	Message string                `json:"message"`
	Created []TransactionResponse `json:"created"`
	Total   int                   `json:"total"`
}

type SeriesDeleteResponse struct {
	Message     string  `json:"message"`
	DeletedIds  []int64 `json:"deletedIds"`
	WholeSeries bool    `json:"wholeSeries"`
	SeriesEnd   *string `json:"seriesEnd,omitempty"`
}

type CategoryListResponse struct {
	Categories []transaction.DefaultCategoryDefinition `json:"categories"`
}
