package recurring

import (
	"context"

	"Cashline/internal/domain/transaction"
)

// Store é o subconjunto de transaction.Repository usado pelo gerador.
type Store interface {
	Insert(ctx context.Context, t *transaction.Transaction) (int64, error)
	UpdateParentLink(ctx context.Context, id, parentID int64) error
	FetchByParent(ctx context.Context, parentID int64) ([]*transaction.Transaction, error)
	GetByID(ctx context.Context, id int64) (*transaction.Transaction, error)
}
