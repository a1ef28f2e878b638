package routes

import (
	"net/http"
	"strings"

	"Cashline/internal/contracts"
	"Cashline/internal/domain/transaction"
	appErrors "Cashline/internal/errors"
	"Cashline/internal/pkg"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateTransaction(c *gin.Context) {
	var body contracts.TransactionCreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondBindError(c, err)
		return
	}

	ctx := c.Request.Context()
	t, err := h.TransactionService.CreateSimpleTransaction(ctx, body.ToDraft())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, contracts.TransactionCreateResponse{
		Message:     "Transação criada com sucesso",
		Transaction: contracts.NewTransactionResponse(t),
	})
}

func (h *Handler) GetTransactions(c *gin.Context) {
	filters := &transaction.TransactionFilters{}

	if c.Query("month") != "" {
		month, ok := h.parseMonthQuery(c, "month", h.now())
		if !ok {
			return
		}
		filters.Month = &month
	}

	if raw := c.Query("type"); raw != "" {
		typ := transaction.Types(strings.ToUpper(raw))
		if !typ.IsValid() {
			h.respondError(c, appErrors.ErrInvalidType.WithDetails(map[string]interface{}{"type": raw}))
			return
		}
		filters.Type = &typ
	}

	if raw := c.Query("category"); raw != "" {
		category := transaction.Category(strings.ToUpper(raw))
		if !category.IsValid() {
			h.respondError(c, appErrors.ErrInvalidCategory.WithDetails(map[string]interface{}{"category": raw}))
			return
		}
		filters.Category = &category
	}

	if raw := c.Query("kind"); raw != "" {
		kind := transaction.Kind(strings.ToUpper(raw))
		if !kind.IsValid() {
			h.respondError(c, appErrors.NewValidationError("kind", "tipo de registro inválido"))
			return
		}
		filters.Kind = &kind
	}

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		filters.Search = &search
	}

	pagination := h.parsePagination(c)

	ctx := c.Request.Context()
	items, total, err := h.TransactionService.ListTransactions(ctx, filters, pagination)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, pkg.NewPaginatedResponse(contracts.NewTransactionResponses(items), pagination, total))
}

func (h *Handler) GetTransaction(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	t, err := h.TransactionService.GetTransactionByID(ctx, id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.TransactionSingleResponse{Transaction: contracts.NewTransactionResponse(t)})
}

func (h *Handler) DeleteTransaction(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	if err := h.TransactionService.DeleteSimple(ctx, id); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, contracts.MessageResponse{Message: "Transação removida com sucesso"})
}

func (h *Handler) ListCategories(c *gin.Context) {
	c.JSON(http.StatusOK, contracts.CategoryListResponse{Categories: transaction.DefaultCategories})
}
