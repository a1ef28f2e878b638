package infrastructure

import (
	"context"
	"errors"
	"strings"
	"time"

	"Cashline/internal/domain/transaction"
	"Cashline/internal/pkg"
	"Cashline/internal/pkg/calendar"
	"Cashline/internal/pkg/money"
	"Cashline/internal/pkg/query"

	"gorm.io/gorm"
)

const transactionsTable = "transactions"

type TransactionRepository struct {
	DB *gorm.DB
}

var _ transaction.Repository = (*TransactionRepository)(nil)

type transactionDB struct {
	Id                  int64      `gorm:"primaryKey;autoIncrement;column:id"`
	Title               string     `gorm:"size:255;column:title"`
	Category            string     `gorm:"type:varchar(20);not null;index;column:category"`
	Type                string     `gorm:"type:varchar(10);not null;column:type"`
	AmountCents         int64      `gorm:"not null;column:amount_cents"`
	OccurrenceDate      time.Time  `gorm:"not null;index;column:occurrence_date"`
	MonthAnchor         time.Time  `gorm:"not null;index;column:month_anchor"`
	Kind                string     `gorm:"type:varchar(30);not null;index;column:kind"`
	ParentTransactionId *int64     `gorm:"index;column:parent_transaction_id"`
	InstallmentNumber   *int       `gorm:"column:installment_number"`
	TotalInstallments   *int       `gorm:"column:total_installments"`
	OriginalAmountCents *int64     `gorm:"column:original_amount_cents"`
	SeriesEndDate       *time.Time `gorm:"column:series_end_date"`
	CreatedAt           time.Time  `gorm:"not null;column:created_at"`
	UpdatedAt           time.Time  `gorm:"not null;column:updated_at"`
}

func (transactionDB) TableName() string {
	return transactionsTable
}

func toDomainTransaction(tdb *transactionDB) (*transaction.Transaction, error) {
	t := &transaction.Transaction{
		Id:                  tdb.Id,
		Title:               tdb.Title,
		Category:            transaction.Category(tdb.Category),
		Type:                transaction.Types(tdb.Type),
		AmountCents:         money.Cents(tdb.AmountCents),
		Kind:                transaction.Kind(tdb.Kind),
		ParentTransactionId: tdb.ParentTransactionId,
		InstallmentNumber:   tdb.InstallmentNumber,
		TotalInstallments:   tdb.TotalInstallments,
		CreatedAt:           tdb.CreatedAt,
		UpdatedAt:           tdb.UpdatedAt,
	}
	if tdb.OriginalAmountCents != nil {
		v := money.Cents(*tdb.OriginalAmountCents)
		t.OriginalAmountCents = &v
	}
	if tdb.SeriesEndDate != nil {
		end := calendar.Date(tdb.SeriesEndDate.UTC())
		t.SeriesEndDate = &end
	}
	t.SetDate(tdb.OccurrenceDate.UTC())
	return t, nil
}

func toDBTransaction(t *transaction.Transaction) *transactionDB {
	var original *int64
	if t.OriginalAmountCents != nil {
		v := int64(*t.OriginalAmountCents)
		original = &v
	}
	var end *time.Time
	if t.SeriesEndDate != nil {
		v := calendar.Date(*t.SeriesEndDate)
		end = &v
	}
	return &transactionDB{
		Id:                  t.Id,
		Title:               t.Title,
		Category:            string(t.Category),
		Type:                string(t.Type),
		AmountCents:         int64(t.AmountCents),
		OccurrenceDate:      calendar.Date(t.OccurrenceDate),
		MonthAnchor:         calendar.MonthAnchor(t.OccurrenceDate),
		Kind:                string(t.Kind),
		ParentTransactionId: t.ParentTransactionId,
		InstallmentNumber:   t.InstallmentNumber,
		TotalInstallments:   t.TotalInstallments,
		OriginalAmountCents: original,
		SeriesEndDate:       end,
		CreatedAt:           t.CreatedAt,
		UpdatedAt:           t.UpdatedAt,
	}
}

func (r *TransactionRepository) Insert(ctx context.Context, t *transaction.Transaction) (int64, error) {
	tdb := toDBTransaction(t)
	tdb.Id = 0
	if err := r.DB.WithContext(ctx).Table(transactionsTable).Create(tdb).Error; err != nil {
		return 0, err
	}
	return tdb.Id, nil
}

func (r *TransactionRepository) UpdateParentLink(ctx context.Context, id, parentID int64) error {
	res := r.DB.WithContext(ctx).Table(transactionsTable).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"parent_transaction_id": parentID,
			"updated_at":            time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return transaction.ErrNotFound
	}
	return nil
}

func (r *TransactionRepository) UpdateSeriesEnd(ctx context.Context, id int64, end time.Time) error {
	res := r.DB.WithContext(ctx).Table(transactionsTable).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"series_end_date": calendar.Date(end),
			"updated_at":      time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return transaction.ErrNotFound
	}
	return nil
}

func (r *TransactionRepository) FetchAll(ctx context.Context) ([]*transaction.Transaction, error) {
	q := query.New[transactionDB](r.DB, transactionsTable).
		Context(ctx).
		Order("occurrence_date ASC, id ASC")
	return query.ExecuteAll(q, toDomainTransaction)
}

func (r *TransactionRepository) FetchVisible(ctx context.Context) ([]*transaction.Transaction, error) {
	q := query.New[transactionDB](r.DB, transactionsTable).
		Context(ctx).
		Where("kind <> ?", string(transaction.KindInstallmentTemplate)).
		Order("occurrence_date ASC, id ASC")
	return query.ExecuteAll(q, toDomainTransaction)
}

func (r *TransactionRepository) FetchByParent(ctx context.Context, parentID int64) ([]*transaction.Transaction, error) {
	q := query.New[transactionDB](r.DB, transactionsTable).
		Context(ctx).
		Where("parent_transaction_id = ?", parentID).
		Order("occurrence_date ASC, id ASC")
	return query.ExecuteAll(q, toDomainTransaction)
}

func (r *TransactionRepository) GetByID(ctx context.Context, id int64) (*transaction.Transaction, error) {
	row, err := query.New[transactionDB](r.DB, transactionsTable).
		Context(ctx).
		Where("id = ?", id).
		First()
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, transaction.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return toDomainTransaction(row)
}

func (r *TransactionRepository) List(ctx context.Context, filters *transaction.TransactionFilters, pagination *pkg.PaginationParams) ([]*transaction.Transaction, int64, error) {
	if filters == nil {
		filters = &transaction.TransactionFilters{}
	}

	q := query.New[transactionDB](r.DB, transactionsTable).
		Context(ctx).
		WhereIf(filters.Kind != nil, "kind = ?", kindValue(filters.Kind)).
		WhereIf(filters.Kind == nil, "kind <> ?", string(transaction.KindInstallmentTemplate)).
		Order("occurrence_date DESC, id DESC")

	if filters.Month != nil {
		q = q.Where("month_anchor = ?", calendar.MonthAnchor(*filters.Month))
	}
	if filters.Type != nil {
		q = q.Where("type = ?", string(*filters.Type))
	}
	if filters.Category != nil {
		q = q.Where("category = ?", string(*filters.Category))
	}
	if filters.Search != nil && *filters.Search != "" {
		q = q.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(*filters.Search)+"%")
	}

	result, err := query.Execute(q, query.FromPagination(pagination), toDomainTransaction)
	if err != nil {
		return nil, 0, err
	}
	return result.Data, result.Total, nil
}

func (r *TransactionRepository) Delete(ctx context.Context, id int64) error {
	res := r.DB.WithContext(ctx).Table(transactionsTable).Where("id = ?", id).Delete(&transactionDB{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return transaction.ErrNotFound
	}
	return nil
}

func (r *TransactionRepository) DeleteMany(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Table(transactionsTable).Where("id IN ?", ids).Delete(&transactionDB{}).Error
	})
}

func kindValue(k *transaction.Kind) string {
	if k == nil {
		return ""
	}
	return string(*k)
}
