package fx

import (
	"context"

	"Cashline/config"
	"Cashline/internal/domain/budget"
	"Cashline/internal/domain/transaction"
	"Cashline/internal/infrastructure"
	"Cashline/internal/infrastructure/memory"
	"Cashline/internal/logger"

	"go.uber.org/fx"
	"gorm.io/gorm"
)

// InfrastructureModule escolhe o armazenamento pelo driver configurado.
var InfrastructureModule = fx.Module("infrastructure",
	fx.Provide(
		newStores,
	),
)

type Stores struct {
	fx.Out

	Transactions transaction.Repository
	Budgets      budget.Repository
}

func newStores(lc fx.Lifecycle, cfg *config.Config) (Stores, error) {
	if cfg.Database.Driver == config.DriverMemory {
		logger.Warn().Msg("Usando armazenamento em memória, os dados não serão persistidos")
		return Stores{
			Transactions: memory.NewTransactionStore(),
			Budgets:      memory.NewBudgetStore(),
		}, nil
	}

	db, err := infrastructure.NewDb(cfg)
	if err != nil {
		return Stores{}, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return closeDatabase(db)
		},
	})

	return Stores{
		Transactions: &infrastructure.TransactionRepository{DB: db},
		Budgets:      &infrastructure.BudgetRepository{DB: db},
	}, nil
}

func closeDatabase(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	logger.Info().Msg("Fechando conexão com banco de dados")
	return sqlDB.Close()
}
