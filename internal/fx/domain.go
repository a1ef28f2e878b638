package fx

import (
	"context"

	"Cashline/config"
	"Cashline/internal/domain/budget"
	"Cashline/internal/domain/dashboard"
	"Cashline/internal/domain/installment"
	"Cashline/internal/domain/recurring"
	"Cashline/internal/domain/reminder"
	"Cashline/internal/domain/series"
	"Cashline/internal/domain/transaction"
	"Cashline/internal/logger"

	"go.uber.org/fx"
)

// DomainModule fornece todos os services do domínio
var DomainModule = fx.Module("domain",
	fx.Provide(
		// Lembretes
		newNotifier,
		newReminderScheduler,

		newTransactionService,
		newRecurringService,
		newInstallmentService,
		newSeriesService,
		newBudgetService,
		newDashboardService,
	),
)

func newNotifier() reminder.Notifier {
	return &reminder.LogNotifier{}
}

// newReminderScheduler liga o despachante ao ciclo de vida da aplicação. Com
// lembretes desabilitados os pedidos são descartados.
func newReminderScheduler(lc fx.Lifecycle, cfg *config.Config, notifier reminder.Notifier) transaction.ReminderScheduler {
	if !cfg.Reminder.Enabled {
		logger.Info().Msg("Lembretes desabilitados (REMINDER_ENABLED=false)")
		return transaction.NoopScheduler{}
	}

	d := reminder.NewDispatcher(notifier, cfg.Reminder)
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			d.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return d.Stop(ctx)
		},
	})
	return d
}

func newTransactionService(repo transaction.Repository, reminders transaction.ReminderScheduler) *transaction.Service {
	return transaction.NewService(repo, reminders)
}

func newRecurringService(cfg *config.Config, repo transaction.Repository, reminders transaction.ReminderScheduler) *recurring.Service {
	return recurring.NewService(repo, reminders, recurring.Window{
		MonthsBack:    cfg.Engine.MonthsBack,
		MonthsForward: cfg.Engine.MonthsForward,
	})
}

func newInstallmentService(repo transaction.Repository, reminders transaction.ReminderScheduler) *installment.Service {
	return installment.NewService(repo, reminders)
}

func newSeriesService(repo transaction.Repository, reminders transaction.ReminderScheduler) *series.Service {
	return series.NewService(repo, reminders)
}

func newBudgetService(repo budget.Repository, transactions transaction.Repository) *budget.Service {
	return budget.NewService(repo, transactions)
}

func newDashboardService(transactions transaction.Repository, budgets budget.Repository) *dashboard.Service {
	return dashboard.NewService(transactions, budgets)
}
