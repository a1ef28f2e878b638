package routes

import (
	"net/http"
	"time"

	"Cashline/internal/contracts"
	"Cashline/internal/domain/installment"
	"Cashline/internal/domain/recurring"
	"Cashline/internal/domain/series"
	appErrors "Cashline/internal/errors"
	"Cashline/internal/pkg/calendar"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateRecurringTransaction(c *gin.Context) {
	var body contracts.TransactionCreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondBindError(c, err)
		return
	}

	ctx := c.Request.Context()
	s, err := h.RecurringService.CreateRecurringTransaction(ctx, body.ToDraft())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.SeriesCreateResponse{
		Message:     "Transação recorrente criada com sucesso",
		Template:    contracts.NewTransactionResponse(s.Template),
		Occurrences: contracts.NewTransactionResponses(s.Occurrences),
		Total:       len(s.Occurrences) + 1,
	})
}

func (h *Handler) CreateInstallmentTransaction(c *gin.Context) {
	var body contracts.InstallmentCreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondBindError(c, err)
		return
	}

	ctx := c.Request.Context()
	plan, err := h.InstallmentService.CreateInstallmentTransaction(ctx, installment.Draft{
		Draft:        body.ToDraft(),
		Installments: body.Installments,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.SeriesCreateResponse{
		Message:     "Compra parcelada criada com sucesso",
		Template:    contracts.NewTransactionResponse(plan.Template),
		Occurrences: contracts.NewTransactionResponses(plan.Installments),
		Total:       len(plan.Installments),
	})
}

// DeleteSeries aceita ?cleanup=all|futureOnly e, opcionalmente, ?date= como
// data de corte.
func (h *Handler) DeleteSeries(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	option := series.CleanupOption(c.Query("cleanup"))

	var selected *time.Time
	if raw := c.Query("date"); raw != "" {
		d, err := calendar.ParseDate(raw)
		if err != nil {
			h.respondError(c, appErrors.ErrInvalidDateFormat.WithDetails(map[string]interface{}{"date": raw}))
			return
		}
		selected = &d
	}

	ctx := c.Request.Context()
	d, err := h.SeriesService.DeleteSeries(ctx, id, selected, option)
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := contracts.SeriesDeleteResponse{
		Message:     "Série removida com sucesso",
		DeletedIds:  d.IDs,
		WholeSeries: d.WholeSeries,
	}
	if d.SeriesEnd != nil {
		end := calendar.FormatDate(*d.SeriesEnd)
		resp.SeriesEnd = &end
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) ExtendRecurringWindow(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	body := contracts.ExtendWindowRequest{
		MonthsBack:    recurring.DefaultWindow.MonthsBack,
		MonthsForward: recurring.DefaultWindow.MonthsForward,
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			h.respondBindError(c, err)
			return
		}
	}

	ctx := c.Request.Context()
	created, err := h.RecurringService.ExtendWindow(ctx, id, recurring.Window{
		MonthsBack:    body.MonthsBack,
		MonthsForward: body.MonthsForward,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.ExtendWindowResponse{
		Message: "Janela da série atualizada",
		Created: contracts.NewTransactionResponses(created),
		Total:   len(created),
	})
}
