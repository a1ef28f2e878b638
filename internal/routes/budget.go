package routes

import (
	"net/http"

	"Cashline/internal/contracts"
	appErrors "Cashline/internal/errors"
	"Cashline/internal/pkg/money"

	"github.com/gin-gonic/gin"
)

func (h *Handler) ListBudgets(c *gin.Context) {
	ctx := c.Request.Context()
	budgets, err := h.BudgetService.ListBudgets(ctx)
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := contracts.BudgetListResponse{Budgets: make([]contracts.BudgetResponse, 0, len(budgets))}
	for _, b := range budgets {
		resp.Budgets = append(resp.Budgets, contracts.NewBudgetResponse(b))
	}
	resp.Total = len(resp.Budgets)

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) SetBudget(c *gin.Context) {
	var body contracts.BudgetUpsertRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondBindError(c, err)
		return
	}

	limit, err := money.ParseAmount(body.Limit)
	if err != nil {
		h.respondError(c, appErrors.ErrInvalidAmount.WithError(err))
		return
	}

	ctx := c.Request.Context()
	b, err := h.BudgetService.SetBudget(ctx, c.Param("month"), limit)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.BudgetSingleResponse{
		Message: "Orçamento salvo com sucesso",
		Budget:  contracts.NewBudgetResponse(b),
	})
}

func (h *Handler) DeleteBudget(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.BudgetService.DeleteBudget(ctx, c.Param("month")); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Orçamento removido com sucesso"})
}

func (h *Handler) GetBudgetStatus(c *gin.Context) {
	ctx := c.Request.Context()
	status, err := h.BudgetService.GetBudgetStatus(ctx, c.Param("month"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.NewBudgetStatusResponse(status))
}
