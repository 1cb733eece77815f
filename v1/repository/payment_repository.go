package repository

import (
	"context"

	"github.com/shopspring/decimal"
	apperrors "github.com/tradelink-ops/logistics-backend/pkg/errors"
	"github.com/tradelink-ops/logistics-backend/v1/models"
	"gorm.io/gorm"
)

// PaymentRepository reads and writes payments
type PaymentRepository struct {
	*Table[models.Payment, string]
}

func filterPayments(q *gorm.DB, opts ListOptions, column string) *gorm.DB {
	if opts.Status != "" {
		q = q.Where(column+" = ?", opts.Status)
	}
	return q
}

// NewPaymentRepository creates a payment repository
func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{Table: newTable(db, tableSpec[models.Payment, string]{
		entity: models.EntityPayment,
		keyWhere: func(k string) map[string]interface{} {
			return map[string]interface{}{"transaction_reference": k}
		},
		isZero: isBlank,
		order:  "payment_date DESC, transaction_reference",
		search: []string{"transaction_reference", "currency"},
		sorts: map[string]string{
			"payment_date": "payment_date",
			"amount":       "amount",
		},
		filter: func(q *gorm.DB, opts ListOptions) *gorm.DB {
			return filterPayments(q, opts, "payment_status")
		},
	})}
}

type paymentMethodScan struct {
	Payment models.Payment       `gorm:"embedded;embeddedPrefix:p__"`
	Method  models.PaymentMethod `gorm:"embedded;embeddedPrefix:m__"`
}

// ListWithMethod lists payments joined with their payment method in one query
func (r *PaymentRepository) ListWithMethod(ctx context.Context, opts ListOptions) ([]models.PaymentWithMethod, error) {
	query, err := expansionQuery(r.db.WithContext(ctx),
		joinSide{model: &models.Payment{}, alias: "p"},
		joinSide{model: &models.PaymentMethod{}, alias: "m", on: "m.id = p.payment_method_id"},
	)
	if err != nil {
		return nil, apperrors.ReadError(r.name(), "list", err)
	}
	query = applySearch(query, []string{"p.transaction_reference", "p.currency", "m.method_name"}, opts.Search)
	query = filterPayments(query, opts, "p.payment_status")

	var rows []paymentMethodScan
	if err := query.Order("p.payment_date DESC, p.transaction_reference").Scan(&rows).Error; err != nil {
		return nil, apperrors.ReadError(r.name(), "list", err)
	}

	out := make([]models.PaymentWithMethod, 0, len(rows))
	for _, row := range rows {
		out = append(out, models.PaymentWithMethod{
			Payment: row.Payment,
			Method:  optional(row.Method, row.Method.ID != 0),
		})
	}
	return out, nil
}

// Revenue sums the amount of every payment
func (r *PaymentRepository) Revenue(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Select("SUM(amount)").
		Row().
		Scan(&total)
	if err != nil {
		return decimal.Zero, apperrors.ReadError(r.name(), "sum", err)
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

type paymentSummaryScan struct {
	PaymentStatus string          `gorm:"column:payment_status"`
	Currency      string          `gorm:"column:currency"`
	Count         int64           `gorm:"column:payment_count"`
	Total         decimal.Decimal `gorm:"column:total_amount"`
}

// Summarize totals payments by status and currency
func (r *PaymentRepository) Summarize(ctx context.Context) ([]models.PaymentSummary, error) {
	var rows []paymentSummaryScan
	err := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Select("payment_status, currency, COUNT(*) AS payment_count, SUM(amount) AS total_amount").
		Group("payment_status, currency").
		Order("payment_status, currency").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.ReadError(r.name(), "summarize", err)
	}

	out := make([]models.PaymentSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, models.PaymentSummary(row))
	}
	return out, nil
}

// PaymentMethodRepository reads and writes payment methods
type PaymentMethodRepository struct {
	*Table[models.PaymentMethod, int64]
}

// NewPaymentMethodRepository creates a payment method repository
func NewPaymentMethodRepository(db *gorm.DB) *PaymentMethodRepository {
	return &PaymentMethodRepository{Table: newTable(db, tableSpec[models.PaymentMethod, int64]{
		entity: models.EntityPaymentMethod,
		keyWhere: func(k int64) map[string]interface{} {
			return map[string]interface{}{"id": k}
		},
		order: "method_name ASC",
	})}
}
