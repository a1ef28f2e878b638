package fx

import (
	"context"

	"Cashline/config"
	"Cashline/internal/domain/budget"
	"Cashline/internal/domain/dashboard"
	"Cashline/internal/domain/installment"
	"Cashline/internal/domain/recurring"
	"Cashline/internal/domain/series"
	"Cashline/internal/domain/transaction"
	"Cashline/internal/middleware"
	"Cashline/internal/routes"

	"go.uber.org/fx"
)

// RoutesModule fornece handlers e rate limiters
var RoutesModule = fx.Module("routes",
	fx.Provide(
		newHandler,
		newRateLimiter,
	),
)

func newHandler(
	transactionSvc *transaction.Service,
	recurringSvc *recurring.Service,
	installmentSvc *installment.Service,
	seriesSvc *series.Service,
	dashboardSvc *dashboard.Service,
	budgetSvc *budget.Service,
) *routes.Handler {
	return &routes.Handler{
		TransactionService: transactionSvc,
		RecurringService:   recurringSvc,
		InstallmentService: installmentSvc,
		SeriesService:      seriesSvc,
		DashboardService:   dashboardSvc,
		BudgetService:      budgetSvc,
	}
}

func newRateLimiter(lc fx.Lifecycle, cfg *config.Config) *middleware.RateLimiter {
	rl := middleware.NewRateLimiterFromConfig(cfg.RateLimit)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			rl.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			rl.Stop()
			return nil
		},
	})
	return rl
}
