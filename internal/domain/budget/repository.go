package budget

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("orçamento não encontrado no armazenamento")

type Repository interface {
	FetchAll(ctx context.Context) ([]*Budget, error)
	GetByMonth(ctx context.Context, anchor time.Time) (*Budget, error)
	Upsert(ctx context.Context, b *Budget) (*Budget, error)
	Delete(ctx context.Context, anchor time.Time) error
}
