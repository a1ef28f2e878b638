package contracts

import (
	"Cashline/internal/domain/budget"
	"Cashline/internal/pkg/calendar"
)

type BudgetUpsertRequest struct {
	Limit string `json:"limit" binding:"required"`
}

type BudgetResponse struct {
	Month      string `json:"month"`
	Limit      string `json:"limit"`
	LimitCents int64  `json:"limitCents"`
}

func NewBudgetResponse(b *budget.Budget) BudgetResponse {
	return BudgetResponse{
		Month:      calendar.FormatMonth(b.MonthAnchor),
		Limit:      b.LimitCents.String(),
		LimitCents: int64(b.LimitCents),
	}
}

type BudgetSingleResponse struct {
	Message string         `json:"message,omitempty"`
	Budget  BudgetResponse `json:"budget"`
}

type BudgetListResponse struct {
	Budgets []BudgetResponse `json:"budgets"`
	Total   int              `json:"total"`
}

type BudgetStatusResponse struct {
	Month      string `json:"month"`
	Limit      string `json:"limit"`
	Spent      string `json:"spent"`
	Remaining  string `json:"remaining"`
	Percentage string `json:"percentage"`
	Status     string `json:"status"`
}

func NewBudgetStatusResponse(s *budget.BudgetStatus) BudgetStatusResponse {
	return BudgetStatusResponse{
		Month:      calendar.FormatMonth(s.MonthAnchor),
		Limit:      s.LimitCents.String(),
		Spent:      s.SpentCents.String(),
		Remaining:  s.RemainingCents.String(),
		Percentage: s.Percentage.StringFixed(2),
		Status:     s.Status,
	}
}
