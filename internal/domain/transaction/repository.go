package transaction

import (
	"context"
	"errors"
	"time"

	"Cashline/internal/pkg"
)

// Repository é a porta de armazenamento das transações. Implementações devem
// atribuir o id em Insert e devolver cópias nas leituras.
type Repository interface {
	Insert(ctx context.Context, t *Transaction) (int64, error)
	UpdateParentLink(ctx context.Context, id, parentID int64) error
	UpdateSeriesEnd(ctx context.Context, id int64, end time.Time) error
	FetchAll(ctx context.Context) ([]*Transaction, error)
	FetchVisible(ctx context.Context) ([]*Transaction, error)
	FetchByParent(ctx context.Context, parentID int64) ([]*Transaction, error)
	GetByID(ctx context.Context, id int64) (*Transaction, error)
	List(ctx context.Context, filters *TransactionFilters, pagination *pkg.PaginationParams) ([]*Transaction, int64, error)
	Delete(ctx context.Context, id int64) error
	DeleteMany(ctx context.Context, ids []int64) error
}

// Getter é a leitura mínima usada por Load.
type Getter interface {
	GetByID(ctx context.Context, id int64) (*Transaction, error)
}

// ErrNotFound é devolvido pelas implementações quando o id não existe.
var ErrNotFound = errors.New("transação não encontrada no armazenamento")
