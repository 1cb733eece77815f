package repository

import (
	"context"

	apperrors "github.com/tradelink-ops/logistics-backend/pkg/errors"
	"github.com/tradelink-ops/logistics-backend/v1/models"
	"gorm.io/gorm"
)

// ShipmentRepository reads and writes shipments
type ShipmentRepository struct {
	*Table[models.Shipment, int64]
}

// NewShipmentRepository creates a shipment repository
func NewShipmentRepository(db *gorm.DB) *ShipmentRepository {
	return &ShipmentRepository{Table: newTable(db, tableSpec[models.Shipment, int64]{
		entity: models.EntityShipment,
		keyWhere: func(k int64) map[string]interface{} {
			return map[string]interface{}{"shipment_number": k}
		},
		order:  "shipment_date DESC, shipment_number DESC",
		search: []string{"tracking_number", "origin_port", "destination_port"},
		sorts: map[string]string{
			"shipment_date":   "shipment_date",
			"arrival_date":    "arrival_date",
			"tracking_number": "tracking_number",
			"total_weight":    "total_weight",
			"status":          "status",
		},
		filter: func(q *gorm.DB, opts ListOptions) *gorm.DB {
			if opts.Status != "" {
				q = q.Where("status = ?", opts.Status)
			}
			if opts.Warehouse != "" {
				q = q.Where("warehouse_code = ?", opts.Warehouse)
			}
			return q
		},
	})}
}

type shipmentDetailScan struct {
	Shipment  models.Shipment  `gorm:"embedded;embeddedPrefix:s__"`
	Importer  models.Importer  `gorm:"embedded;embeddedPrefix:i__"`
	Warehouse models.Warehouse `gorm:"embedded;embeddedPrefix:w__"`
	Container models.Container `gorm:"embedded;embeddedPrefix:c__"`
}

// GetDetail fetches a shipment with its importer, warehouse and containers in one query
func (r *ShipmentRepository) GetDetail(ctx context.Context, number int64) (models.ShipmentDetail, error) {
	if number == 0 {
		return models.ShipmentDetail{}, apperrors.NotFound(r.name(), "")
	}

	query, err := expansionQuery(r.db.WithContext(ctx),
		joinSide{model: &models.Shipment{}, alias: "s"},
		joinSide{model: &models.Importer{}, alias: "i", on: "i.iso_code = s.importer_code"},
		joinSide{model: &models.Warehouse{}, alias: "w", on: "w.code = s.warehouse_code"},
		joinSide{model: &models.Container{}, alias: "c", on: "c.shipment_no = s.shipment_number"},
	)
	if err != nil {
		return models.ShipmentDetail{}, apperrors.ReadError(r.name(), "get detail", err)
	}

	var rows []shipmentDetailScan
	if err := query.Where("s.shipment_number = ?", number).Order("c.container_number").Scan(&rows).Error; err != nil {
		return models.ShipmentDetail{}, apperrors.ReadError(r.name(), "get detail", err)
	}
	if len(rows) == 0 {
		return models.ShipmentDetail{}, apperrors.NotFound(r.name(), number)
	}

	first := rows[0]
	detail := models.ShipmentDetail{
		Shipment:   first.Shipment,
		Importer:   optional(first.Importer, first.Importer.ISOCode != ""),
		Warehouse:  optional(first.Warehouse, first.Warehouse.Code != ""),
		Containers: []models.Container{},
	}
	for _, row := range rows {
		if row.Container.ContainerNumber != "" {
			detail.Containers = append(detail.Containers, row.Container)
		}
	}
	return detail, nil
}

// StatusCount is the number of shipments in one status
type StatusCount struct {
	Status models.ShipmentStatus `gorm:"column:status" json:"status"`
	Count  int64                 `gorm:"column:total" json:"count"`
}

// CountByStatus groups shipments by status
func (r *ShipmentRepository) CountByStatus(ctx context.Context) ([]StatusCount, error) {
	var counts []StatusCount
	err := r.db.WithContext(ctx).
		Model(&models.Shipment{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Order("status").
		Scan(&counts).Error
	if err != nil {
		return nil, apperrors.ReadError(r.name(), "count by status", err)
	}
	if counts == nil {
		counts = []StatusCount{}
	}
	return counts, nil
}

// StatusHistoryRepository records shipment status changes
type StatusHistoryRepository struct {
	*Table[models.ShipmentStatusHistory, models.ShipmentStatusHistoryKey]
}

// NewStatusHistoryRepository creates a status history repository
func NewStatusHistoryRepository(db *gorm.DB) *StatusHistoryRepository {
	return &StatusHistoryRepository{Table: newTable(db, tableSpec[models.ShipmentStatusHistory, models.ShipmentStatusHistoryKey]{
		entity: models.EntityShipmentStatusHistory,
		keyWhere: func(k models.ShipmentStatusHistoryKey) map[string]interface{} {
			return map[string]interface{}{"shipment_no": k.ShipmentNo, "changed_at": k.ChangedAt}
		},
		isZero: models.ShipmentStatusHistoryKey.IsZero,
		order:  "changed_at DESC",
	})}
}

// ListByShipment returns the status changes of one shipment, newest first
func (r *StatusHistoryRepository) ListByShipment(ctx context.Context, shipmentNo int64) ([]models.ShipmentStatusHistory, error) {
	return r.listWhere(ctx, "shipment_no", shipmentNo, "changed_at DESC")
}
