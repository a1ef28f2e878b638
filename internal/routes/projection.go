package routes

import (
	"net/http"

	"Cashline/internal/contracts"
	appErrors "Cashline/internal/errors"
	"Cashline/internal/pkg/calendar"

	"github.com/gin-gonic/gin"
)

const maxProjectedMonths = 120

func (h *Handler) GetDashboard(c *gin.Context) {
	month, ok := h.parseMonthQuery(c, "month", h.now())
	if !ok {
		return
	}

	ctx := c.Request.Context()
	d, err := h.DashboardService.GetDashboard(ctx, month)
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := contracts.DashboardResponse{
		Summary:          contracts.NewMonthProjectionResponse(d.Summary),
		MonthlyTrend:     contracts.NewMonthProjectionResponses(d.MonthlyTrend),
		CategoryExpenses: d.CategoryExpenses,
	}
	if d.BudgetStatus != nil {
		status := contracts.NewBudgetStatusResponse(d.BudgetStatus)
		resp.BudgetStatus = &status
	}

	c.JSON(http.StatusOK, resp)
}

// GetMonthProjections projeta de ?from= até ?to= (AAAA-MM). Sem parâmetros,
// cobre do mês atual aos cinco seguintes.
func (h *Handler) GetMonthProjections(c *gin.Context) {
	today, ok := h.parseToday(c)
	if !ok {
		return
	}

	from, ok := h.parseMonthQuery(c, "from", today)
	if !ok {
		return
	}
	to, ok := h.parseMonthQuery(c, "to", calendar.AddMonths(from, 5))
	if !ok {
		return
	}

	span := calendar.MonthsBetween(from, to)
	if span < 0 || span >= maxProjectedMonths {
		h.respondError(c, appErrors.NewValidationError("to", "intervalo de meses inválido").WithDetails(map[string]interface{}{
			"field": "to",
			"from":  calendar.FormatMonth(from),
			"to":    calendar.FormatMonth(to),
			"max":   maxProjectedMonths,
		}))
		return
	}

	ctx := c.Request.Context()
	months, err := h.DashboardService.ProjectMonths(ctx, calendar.MonthRange(from, to), today)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MonthProjectionListResponse{
		Months: contracts.NewMonthProjectionResponses(months),
	})
}

func (h *Handler) GetDailyProjection(c *gin.Context) {
	today, ok := h.parseToday(c)
	if !ok {
		return
	}

	month, ok := h.parseMonthQuery(c, "month", today)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	p, err := h.DashboardService.ProjectDailyBalance(ctx, month, today)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.NewDailyProjectionResponse(p))
}

func (h *Handler) GetNegativeBalanceAlert(c *gin.Context) {
	today, ok := h.parseToday(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	alert, err := h.DashboardService.NegativeBalanceAlert(ctx, today)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.NewAlertResponse(alert))
}
