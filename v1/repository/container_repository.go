package repository

import (
	"context"

	apperrors "github.com/tradelink-ops/logistics-backend/pkg/errors"
	"github.com/tradelink-ops/logistics-backend/v1/models"
	"gorm.io/gorm"
)

// ContainerRepository reads and writes containers
type ContainerRepository struct {
	*Table[models.Container, string]
}

// NewContainerRepository creates a container repository
func NewContainerRepository(db *gorm.DB) *ContainerRepository {
	return &ContainerRepository{Table: newTable(db, tableSpec[models.Container, string]{
		entity: models.EntityContainer,
		keyWhere: func(k string) map[string]interface{} {
			return map[string]interface{}{"container_number": k}
		},
		isZero: isBlank,
		order:  "container_number ASC",
		search: []string{"container_number", "seal_number"},
		sorts: map[string]string{
			"container_number": "container_number",
			"weight":           "weight",
		},
	})}
}

// ListByShipment returns the containers assigned to one shipment
func (r *ContainerRepository) ListByShipment(ctx context.Context, shipmentNo int64) ([]models.Container, error) {
	return r.listWhere(ctx, "shipment_no", shipmentNo, "container_number")
}

// ContainerProductRepository reads and writes container contents
type ContainerProductRepository struct {
	*Table[models.ContainerProduct, models.ContainerProductKey]
}

// NewContainerProductRepository creates a container product repository
func NewContainerProductRepository(db *gorm.DB) *ContainerProductRepository {
	return &ContainerProductRepository{Table: newTable(db, tableSpec[models.ContainerProduct, models.ContainerProductKey]{
		entity: models.EntityContainerProduct,
		keyWhere: func(k models.ContainerProductKey) map[string]interface{} {
			return map[string]interface{}{"container_number": k.ContainerNumber, "product_id": k.ProductID}
		},
		isZero: models.ContainerProductKey.IsZero,
		order:  "container_number, product_id",
	})}
}

type containerProductScan struct {
	Line    models.ContainerProduct `gorm:"embedded;embeddedPrefix:cp__"`
	Product models.Product          `gorm:"embedded;embeddedPrefix:p__"`
}

// ListByContainer returns one container's lines joined with their product.
// An empty container number issues no query.
func (r *ContainerProductRepository) ListByContainer(ctx context.Context, containerNumber string) ([]models.ContainerProductLine, error) {
	if isBlank(containerNumber) {
		return []models.ContainerProductLine{}, nil
	}

	query, err := expansionQuery(r.db.WithContext(ctx),
		joinSide{model: &models.ContainerProduct{}, alias: "cp"},
		joinSide{model: &models.Product{}, alias: "p", on: "p.id = cp.product_id"},
	)
	if err != nil {
		return nil, apperrors.ReadError(r.name(), "list", err)
	}

	var rows []containerProductScan
	if err := query.Where("cp.container_number = ?", containerNumber).Order("p.name").Scan(&rows).Error; err != nil {
		return nil, apperrors.ReadError(r.name(), "list", err)
	}

	out := make([]models.ContainerProductLine, 0, len(rows))
	for _, row := range rows {
		out = append(out, models.ContainerProductLine{
			ContainerProduct: row.Line,
			Product:          optional(row.Product, row.Product.ID != 0),
		})
	}
	return out, nil
}
