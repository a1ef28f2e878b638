package dashboard

import (
	"context"

	"Cashline/internal/domain/budget"
	"Cashline/internal/domain/transaction"
)

// TransactionReader é a leitura usada pelas projeções.
type TransactionReader interface {
	FetchVisible(ctx context.Context) ([]*transaction.Transaction, error)
}

type BudgetReader interface {
	FetchAll(ctx context.Context) ([]*budget.Budget, error)
}
