package contracts

import (
	"Cashline/internal/domain/dashboard"
	"Cashline/internal/pkg/calendar"
)

type MonthProjectionResponse struct {
	Month       string  `json:"month"`
	Income      string  `json:"income"`
	Expense     string  `json:"expense"`
	Net         string  `json:"net"`
	Opening     string  `json:"opening"`
	Available   string  `json:"available"`
	Current     string  `json:"current"`
	BudgetLimit *string `json:"budgetLimit,omitempty"`
}

func NewMonthProjectionResponse(p dashboard.MonthProjection) MonthProjectionResponse {
	resp := MonthProjectionResponse{
		Month:     calendar.FormatMonth(p.Month),
		Income:    p.Income.String(),
		Expense:   p.Expense.String(),
		Net:       p.Net.String(),
		Opening:   p.Opening.String(),
		Available: p.Available.String(),
		Current:   p.Current.String(),
	}
	if p.BudgetLimit != nil {
		limit := p.BudgetLimit.String()
		resp.BudgetLimit = &limit
	}
	return resp
}

func NewMonthProjectionResponses(items []dashboard.MonthProjection) []MonthProjectionResponse {
	out := make([]MonthProjectionResponse, 0, len(items))
	for _, p := range items {
		out = append(out, NewMonthProjectionResponse(p))
	}
	return out
}

type MonthProjectionListResponse struct {
	Months []MonthProjectionResponse `json:"months"`
}

type DayBalanceResponse struct {
	Date    string `json:"date"`
	Balance string `json:"balance"`
}

type DailyProjectionResponse struct {
	Month            string               `json:"month"`
	InitialBalance   string               `json:"initialBalance"`
	Days             []DayBalanceResponse `json:"days"`
	FirstNegativeDay *string              `json:"firstNegativeDay"`
}

func NewDailyProjectionResponse(p *dashboard.DailyProjection) DailyProjectionResponse {
	resp := DailyProjectionResponse{
		Month:          calendar.FormatMonth(p.Month),
		InitialBalance: p.InitialBalance.String(),
		Days:           make([]DayBalanceResponse, 0, len(p.Days)),
	}
	for _, d := range p.Days {
		resp.Days = append(resp.Days, DayBalanceResponse{
			Date:    calendar.FormatDate(d.Date),
			Balance: d.Balance.String(),
		})
	}
	if p.FirstNegativeDay != nil {
		day := calendar.FormatDate(*p.FirstNegativeDay)
		resp.FirstNegativeDay = &day
	}
	return resp
}

type AlertResponse struct {
	Alert    bool    `json:"alert"`
	Date     *string `json:"date,omitempty"`
	Balance  *string `json:"balance,omitempty"`
	DaysAway *int    `json:"daysAway,omitempty"`
}

func NewAlertResponse(a *dashboard.Alert) AlertResponse {
	if a == nil {
		return AlertResponse{Alert: false}
	}
	date := calendar.FormatDate(a.Date)
	balance := a.Balance.String()
	days := a.DaysAway
	return AlertResponse{Alert: true, Date: &date, Balance: &balance, DaysAway: &days}
}

type DashboardResponse struct {
	Summary          MonthProjectionResponse      `json:"summary"`
	MonthlyTrend     []MonthProjectionResponse    `json:"monthlyTrend"`
	CategoryExpenses []*dashboard.CategoryExpense `json:"categoryExpenses"`
	BudgetStatus     *BudgetStatusResponse        `json:"budgetStatus,omitempty"`
}
