package repository

import (
	"context"

	apperrors "github.com/tradelink-ops/logistics-backend/pkg/errors"
	"github.com/tradelink-ops/logistics-backend/v1/models"
	"gorm.io/gorm"
)

// InventoryRepository reads and writes stock levels
type InventoryRepository struct {
	*Table[models.Inventory, models.InventoryKey]
}

// NewInventoryRepository creates an inventory repository
func NewInventoryRepository(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{Table: newTable(db, tableSpec[models.Inventory, models.InventoryKey]{
		entity: models.EntityInventory,
		keyWhere: func(k models.InventoryKey) map[string]interface{} {
			return map[string]interface{}{"product_id": k.ProductID, "warehouse_code": k.WarehouseCode}
		},
		isZero: models.InventoryKey.IsZero,
		order:  "last_updated DESC, product_id",
		search: []string{"warehouse_code", "location_in_warehouse"},
		sorts: map[string]string{
			"quantity":     "quantity",
			"last_updated": "last_updated",
		},
		filter: func(q *gorm.DB, opts ListOptions) *gorm.DB {
			if opts.Warehouse != "" {
				q = q.Where("warehouse_code = ?", opts.Warehouse)
			}
			return q
		},
	})}
}

type inventoryItemScan struct {
	Inventory models.Inventory `gorm:"embedded;embeddedPrefix:inv__"`
	Product   models.Product   `gorm:"embedded;embeddedPrefix:p__"`
	Warehouse models.Warehouse `gorm:"embedded;embeddedPrefix:w__"`
}

// ListItems lists stock rows joined with product and warehouse in one query
func (r *InventoryRepository) ListItems(ctx context.Context, opts ListOptions) ([]models.InventoryItem, error) {
	query, err := expansionQuery(r.db.WithContext(ctx),
		joinSide{model: &models.Inventory{}, alias: "inv"},
		joinSide{model: &models.Product{}, alias: "p", on: "p.id = inv.product_id"},
		joinSide{model: &models.Warehouse{}, alias: "w", on: "w.code = inv.warehouse_code"},
	)
	if err != nil {
		return nil, apperrors.ReadError(r.name(), "list", err)
	}
	query = applySearch(query, []string{"p.name", "w.name", "inv.location_in_warehouse"}, opts.Search)
	if opts.Warehouse != "" {
		query = query.Where("inv.warehouse_code = ?", opts.Warehouse)
	}
	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}

	var rows []inventoryItemScan
	if err := query.Order("inv.last_updated DESC, inv.product_id").Scan(&rows).Error; err != nil {
		return nil, apperrors.ReadError(r.name(), "list", err)
	}

	out := make([]models.InventoryItem, 0, len(rows))
	for _, row := range rows {
		out = append(out, models.InventoryItem{
			Inventory: row.Inventory,
			Product:   optional(row.Product, row.Product.ID != 0),
			Warehouse: optional(row.Warehouse, row.Warehouse.Code != ""),
		})
	}
	return out, nil
}
