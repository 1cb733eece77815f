package repository

import (
	"context"

	apperrors "github.com/tradelink-ops/logistics-backend/pkg/errors"
	"github.com/tradelink-ops/logistics-backend/v1/models"
	"gorm.io/gorm"
)

// ProductRepository reads and writes products
type ProductRepository struct {
	*Table[models.Product, int64]
}

func filterProducts(q *gorm.DB, opts ListOptions, column string) *gorm.DB {
	if opts.Category != nil {
		q = q.Where(column+" = ?", *opts.Category)
	}
	return q
}

// NewProductRepository creates a product repository
func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{Table: newTable(db, tableSpec[models.Product, int64]{
		entity: models.EntityProduct,
		keyWhere: func(k int64) map[string]interface{} {
			return map[string]interface{}{"id": k}
		},
		order:  "name ASC",
		search: []string{"name"},
		sorts: map[string]string{
			"name":  "name",
			"price": "price",
		},
		filter: func(q *gorm.DB, opts ListOptions) *gorm.DB {
			return filterProducts(q, opts, "category_id")
		},
	})}
}

type productCategoryScan struct {
	Product  models.Product  `gorm:"embedded;embeddedPrefix:p__"`
	Category models.Category `gorm:"embedded;embeddedPrefix:c__"`
}

// ListWithCategory lists products joined with their category in one query
func (r *ProductRepository) ListWithCategory(ctx context.Context, opts ListOptions) ([]models.ProductWithCategory, error) {
	query, err := expansionQuery(r.db.WithContext(ctx),
		joinSide{model: &models.Product{}, alias: "p"},
		joinSide{model: &models.Category{}, alias: "c", on: "c.id = p.category_id"},
	)
	if err != nil {
		return nil, apperrors.ReadError(r.name(), "list", err)
	}
	query = applySearch(query, []string{"p.name"}, opts.Search)
	query = filterProducts(query, opts, "p.category_id")

	var rows []productCategoryScan
	if err := query.Order("p.name").Scan(&rows).Error; err != nil {
		return nil, apperrors.ReadError(r.name(), "list", err)
	}

	out := make([]models.ProductWithCategory, 0, len(rows))
	for _, row := range rows {
		out = append(out, models.ProductWithCategory{
			Product:  row.Product,
			Category: optional(row.Category, row.Category.ID != 0),
		})
	}
	return out, nil
}

// CategoryRepository reads and writes product categories
type CategoryRepository struct {
	*Table[models.Category, int64]
}

// NewCategoryRepository creates a category repository
func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{Table: newTable(db, tableSpec[models.Category, int64]{
		entity: models.EntityCategory,
		keyWhere: func(k int64) map[string]interface{} {
			return map[string]interface{}{"id": k}
		},
		order:  "name ASC",
		search: []string{"name"},
	})}
}
