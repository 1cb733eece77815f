package repository

import (
	"context"

	apperrors "github.com/tradelink-ops/logistics-backend/pkg/errors"
	"github.com/tradelink-ops/logistics-backend/v1/models"
	"gorm.io/gorm"
)

// WarehouseRepository reads and writes warehouses
type WarehouseRepository struct {
	*Table[models.Warehouse, string]
}

// NewWarehouseRepository creates a warehouse repository
func NewWarehouseRepository(db *gorm.DB) *WarehouseRepository {
	return &WarehouseRepository{Table: newTable(db, tableSpec[models.Warehouse, string]{
		entity: models.EntityWarehouse,
		keyWhere: func(k string) map[string]interface{} {
			return map[string]interface{}{"code": k}
		},
		isZero: isBlank,
		order:  "name ASC",
		search: []string{"name", "city", "code"},
		sorts: map[string]string{
			"name":     "name",
			"capacity": "capacity",
			"city":     "city",
		},
	})}
}

type warehouseDetailScan struct {
	Warehouse models.Warehouse `gorm:"embedded;embeddedPrefix:w__"`
	Manager   models.Employee  `gorm:"embedded;embeddedPrefix:m__"`
	Staff     models.Employee  `gorm:"embedded;embeddedPrefix:e__"`
}

// GetDetail fetches a warehouse with its manager and staff in one query
func (r *WarehouseRepository) GetDetail(ctx context.Context, code string) (models.WarehouseDetail, error) {
	if isBlank(code) {
		return models.WarehouseDetail{}, apperrors.NotFound(r.name(), "")
	}

	query, err := expansionQuery(r.db.WithContext(ctx),
		joinSide{model: &models.Warehouse{}, alias: "w"},
		joinSide{model: &models.Employee{}, alias: "m", on: "m.ssn = w.manager_ssn"},
		joinSide{model: &models.Employee{}, alias: "e", on: "e.warehouses_code = w.code"},
	)
	if err != nil {
		return models.WarehouseDetail{}, apperrors.ReadError(r.name(), "get detail", err)
	}

	var rows []warehouseDetailScan
	if err := query.Where("w.code = ?", code).Order("e.last_name").Scan(&rows).Error; err != nil {
		return models.WarehouseDetail{}, apperrors.ReadError(r.name(), "get detail", err)
	}
	if len(rows) == 0 {
		return models.WarehouseDetail{}, apperrors.NotFound(r.name(), code)
	}

	first := rows[0]
	detail := models.WarehouseDetail{
		Warehouse: first.Warehouse,
		Manager:   optional(first.Manager, first.Manager.SSN != 0),
		Employees: []models.Employee{},
	}
	for _, row := range rows {
		if row.Staff.SSN != 0 {
			detail.Employees = append(detail.Employees, row.Staff)
		}
	}
	return detail, nil
}

// WarehouseStock is a warehouse's capacity alongside the quantity stored in it
type WarehouseStock struct {
	Code           string `gorm:"column:code"`
	Name           string `gorm:"column:name"`
	City           string `gorm:"column:city"`
	Capacity       int64  `gorm:"column:capacity"`
	StoredQuantity int64  `gorm:"column:stored_quantity"`
}

// StockLevels sums inventory quantity per warehouse; warehouses without stock report zero
func (r *WarehouseRepository) StockLevels(ctx context.Context) ([]WarehouseStock, error) {
	var levels []WarehouseStock
	err := r.db.WithContext(ctx).
		Table("warehouses AS w").
		Select("w.code, w.name, w.city, w.capacity, COALESCE(SUM(i.quantity), 0) AS stored_quantity").
		Joins("LEFT JOIN inventory AS i ON i.warehouse_code = w.code").
		Group("w.code, w.name, w.city, w.capacity").
		Order("w.name").
		Scan(&levels).Error
	if err != nil {
		return nil, apperrors.ReadError(r.name(), "stock levels", err)
	}
	if levels == nil {
		levels = []WarehouseStock{}
	}
	return levels, nil
}
