package routes

import (
	"time"

	"Cashline/internal/domain/budget"
	"Cashline/internal/domain/dashboard"
	"Cashline/internal/domain/installment"
	"Cashline/internal/domain/recurring"
	"Cashline/internal/domain/series"
	"Cashline/internal/domain/transaction"
	appErrors "Cashline/internal/errors"
	"Cashline/internal/logger"
	"Cashline/internal/pkg"
	"Cashline/internal/pkg/calendar"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	TransactionService *transaction.Service
	RecurringService   *recurring.Service
	InstallmentService *installment.Service
	SeriesService      *series.Service
	DashboardService   *dashboard.Service
	BudgetService      *budget.Service
	Now                func() time.Time
}

func (h *Handler) parsePagination(c *gin.Context) *pkg.PaginationParams {
	page := c.DefaultQuery("page", "1")
	limit := c.DefaultQuery("limit", "20")

	var pageNum, limitNum int
	if p, err := pkg.ParseInt(page); err == nil && p > 0 {
		pageNum = p
	} else {
		pageNum = 1
	}

	if l, err := pkg.ParseInt(limit); err == nil && l > 0 {
		limitNum = l
	} else {
		limitNum = pkg.DefaultPageSize
	}

	return pkg.NormalizePagination(&pkg.PaginationParams{
		Page:  pageNum,
		Limit: limitNum,
	})
}

func (h *Handler) parseID(c *gin.Context) (int64, bool) {
	id, err := pkg.ParseID(c.Param("id"))
	if err != nil {
		h.respondError(c, appErrors.NewValidationError("id", "formato inválido"))
		return 0, false
	}
	return id, true
}

// parseToday lê ?today=AAAA-MM-DD; sem o parâmetro vale a data atual.
func (h *Handler) parseToday(c *gin.Context) (time.Time, bool) {
	raw := c.Query("today")
	if raw == "" {
		return calendar.Date(h.now()), true
	}
	today, err := calendar.ParseDate(raw)
	if err != nil {
		h.respondError(c, appErrors.ErrInvalidDateFormat.WithDetails(map[string]interface{}{"today": raw}))
		return time.Time{}, false
	}
	return today, true
}

func (h *Handler) parseMonthQuery(c *gin.Context, key string, fallback time.Time) (time.Time, bool) {
	raw := c.Query(key)
	if raw == "" {
		return calendar.MonthAnchor(fallback), true
	}
	month, err := calendar.ParseMonth(raw)
	if err != nil {
		h.respondError(c, appErrors.ErrInvalidDateFormat.WithDetails(map[string]interface{}{key: raw}))
		return time.Time{}, false
	}
	return month, true
}

func (h *Handler) now() time.Time {
	if h.Now == nil {
		return time.Now()
	}
	return h.Now()
}

func (h *Handler) respondBindError(c *gin.Context, err error) {
	h.respondError(c, appErrors.ParseValidationErrors(err))
}

func (h *Handler) respondError(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	event := logger.Error().Str("code", appErr.Code).Str("path", c.FullPath())
	if appErr.Err != nil {
		event = event.Err(appErr.Err)
	}
	event.Msg("request_error")
	payload := gin.H{
		"error":   appErr.Code,
		"message": appErr.Message,
	}
	if len(appErr.Details) > 0 {
		payload["details"] = appErr.Details
	}
	c.JSON(appErr.StatusCode, payload)
}
