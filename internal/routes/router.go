package routes

import (
	"net/http"

	"Cashline/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Register monta as rotas da API no router informado.
func Register(router *gin.Engine, handler *Handler, limiter *middleware.RateLimiter) {
	router.Use(middleware.RequestID(), middleware.RequestLogger(), middleware.CORSMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	if limiter != nil {
		api.Use(middleware.RateLimit(limiter))
	}
	{
		api.GET("/dashboard", handler.GetDashboard)
		api.GET("/categories", handler.ListCategories)

		transactions := api.Group("/transactions")
		{
			transactions.POST("", handler.CreateTransaction)
			transactions.POST("/recurring", handler.CreateRecurringTransaction)
			transactions.POST("/installments", handler.CreateInstallmentTransaction)
			transactions.GET("", handler.GetTransactions)
			transactions.GET("/:id", handler.GetTransaction)
			transactions.DELETE("/:id", handler.DeleteTransaction)
			transactions.DELETE("/:id/series", handler.DeleteSeries)
			transactions.POST("/:id/extend", handler.ExtendRecurringWindow)
		}

		projections := api.Group("/projections")
		{
			projections.GET("/months", handler.GetMonthProjections)
			projections.GET("/daily", handler.GetDailyProjection)
			projections.GET("/alert", handler.GetNegativeBalanceAlert)
		}

		budgets := api.Group("/budgets")
		{
			budgets.GET("", handler.ListBudgets)
			budgets.PUT("/:month", handler.SetBudget)
			budgets.DELETE("/:month", handler.DeleteBudget)
			budgets.GET("/:month/status", handler.GetBudgetStatus)
		}
	}
}
