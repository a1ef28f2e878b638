package infrastructure

import (
	"context"
	"errors"
	"time"

	"Cashline/internal/domain/budget"
	"Cashline/internal/pkg/calendar"
	"Cashline/internal/pkg/money"
	"Cashline/internal/pkg/query"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const budgetsTable = "budgets"

type BudgetRepository struct {
	DB *gorm.DB
}

var _ budget.Repository = (*BudgetRepository)(nil)

type budgetDB struct {
	Id          int64     `gorm:"primaryKey;autoIncrement"`
	MonthAnchor time.Time `gorm:"not null;uniqueIndex:idx_budgets_month"`
	LimitCents  int64     `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

func (budgetDB) TableName() string {
	return budgetsTable
}

func toDomainBudget(bdb *budgetDB) (*budget.Budget, error) {
	return &budget.Budget{
		Id:          bdb.Id,
		MonthAnchor: calendar.MonthAnchor(bdb.MonthAnchor.UTC()),
		LimitCents:  money.Cents(bdb.LimitCents),
		CreatedAt:   bdb.CreatedAt,
		UpdatedAt:   bdb.UpdatedAt,
	}, nil
}

func toDBBudget(b *budget.Budget) *budgetDB {
	return &budgetDB{
		Id:          b.Id,
		MonthAnchor: calendar.MonthAnchor(b.MonthAnchor),
		LimitCents:  int64(b.LimitCents),
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func (r *BudgetRepository) FetchAll(ctx context.Context) ([]*budget.Budget, error) {
	q := query.New[budgetDB](r.DB, budgetsTable).Context(ctx).Order("month_anchor ASC")
	return query.ExecuteAll(q, toDomainBudget)
}

func (r *BudgetRepository) GetByMonth(ctx context.Context, anchor time.Time) (*budget.Budget, error) {
	row, err := query.New[budgetDB](r.DB, budgetsTable).
		Context(ctx).
		Where("month_anchor = ?", calendar.MonthAnchor(anchor)).
		First()
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, budget.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return toDomainBudget(row)
}

// Upsert grava o limite do mês, substituindo o existente na mesma âncora.
func (r *BudgetRepository) Upsert(ctx context.Context, b *budget.Budget) (*budget.Budget, error) {
	bdb := toDBBudget(b)
	bdb.Id = 0

	err := r.DB.WithContext(ctx).Table(budgetsTable).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "month_anchor"}},
		DoUpdates: clause.AssignmentColumns([]string{"limit_cents", "updated_at"}),
	}).Create(bdb).Error
	if err != nil {
		return nil, err
	}

	return r.GetByMonth(ctx, bdb.MonthAnchor)
}

func (r *BudgetRepository) Delete(ctx context.Context, anchor time.Time) error {
	res := r.DB.WithContext(ctx).Table(budgetsTable).
		Where("month_anchor = ?", calendar.MonthAnchor(anchor)).
		Delete(&budgetDB{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return budget.ErrNotFound
	}
	return nil
}
