package repository

import (
	"context"

	apperrors "github.com/tradelink-ops/logistics-backend/pkg/errors"
	"github.com/tradelink-ops/logistics-backend/v1/models"
	"gorm.io/gorm"
)

// TransportationRepository reads and writes vehicles
type TransportationRepository struct {
	*Table[models.Transportation, string]
}

// NewTransportationRepository creates a transportation repository
func NewTransportationRepository(db *gorm.DB) *TransportationRepository {
	return &TransportationRepository{Table: newTable(db, tableSpec[models.Transportation, string]{
		entity: models.EntityTransportation,
		keyWhere: func(k string) map[string]interface{} {
			return map[string]interface{}{"registration_number": k}
		},
		isZero: isBlank,
		order:  "registration_number ASC",
		search: []string{"registration_number", "type"},
		sorts: map[string]string{
			"registration_number": "registration_number",
			"capacity_weight":     "capacity_weight",
			"state":               "state",
		},
		filter: func(q *gorm.DB, opts ListOptions) *gorm.DB {
			if opts.Status != "" {
				q = q.Where("state = ?", opts.Status)
			}
			return q
		},
	})}
}

// DriverRepository reads and writes drivers
type DriverRepository struct {
	*Table[models.Driver, string]
}

// NewDriverRepository creates a driver repository
func NewDriverRepository(db *gorm.DB) *DriverRepository {
	return &DriverRepository{Table: newTable(db, tableSpec[models.Driver, string]{
		entity: models.EntityDriver,
		keyWhere: func(k string) map[string]interface{} {
			return map[string]interface{}{"license_number": k}
		},
		isZero: isBlank,
		order:  "license_number ASC",
		search: []string{"license_number", "license_type"},
	})}
}

type driverEmployeeScan struct {
	Driver   models.Driver   `gorm:"embedded;embeddedPrefix:d__"`
	Employee models.Employee `gorm:"embedded;embeddedPrefix:e__"`
}

// ListWithEmployee lists drivers joined with their employee record in one query
func (r *DriverRepository) ListWithEmployee(ctx context.Context, opts ListOptions) ([]models.DriverWithEmployee, error) {
	query, err := expansionQuery(r.db.WithContext(ctx),
		joinSide{model: &models.Driver{}, alias: "d"},
		joinSide{model: &models.Employee{}, alias: "e", on: "e.ssn = d.employee_ssn"},
	)
	if err != nil {
		return nil, apperrors.ReadError(r.name(), "list", err)
	}
	query = applySearch(query, []string{"d.license_number", "e.first_name", "e.last_name"}, opts.Search)

	var rows []driverEmployeeScan
	if err := query.Order("d.license_number").Scan(&rows).Error; err != nil {
		return nil, apperrors.ReadError(r.name(), "list", err)
	}

	out := make([]models.DriverWithEmployee, 0, len(rows))
	for _, row := range rows {
		out = append(out, models.DriverWithEmployee{
			Driver:   row.Driver,
			Employee: optional(row.Employee, row.Employee.SSN != 0),
		})
	}
	return out, nil
}

// ShipmentLegRepository reads and writes shipment_transportation rows
type ShipmentLegRepository struct {
	*Table[models.ShipmentTransportation, models.ShipmentTransportationKey]
}

// NewShipmentLegRepository creates a shipment transportation repository
func NewShipmentLegRepository(db *gorm.DB) *ShipmentLegRepository {
	return &ShipmentLegRepository{Table: newTable(db, tableSpec[models.ShipmentTransportation, models.ShipmentTransportationKey]{
		entity: models.EntityShipmentTransportation,
		keyWhere: func(k models.ShipmentTransportationKey) map[string]interface{} {
			return map[string]interface{}{"shipment_no": k.ShipmentNo, "transportation_no": k.TransportationNo}
		},
		isZero: models.ShipmentTransportationKey.IsZero,
		order:  "shipment_no, transportation_no",
	})}
}

type shipmentLegScan struct {
	Leg     models.ShipmentTransportation `gorm:"embedded;embeddedPrefix:st__"`
	Vehicle models.Transportation         `gorm:"embedded;embeddedPrefix:t__"`
}

// ListByShipment returns the legs of one shipment joined with their vehicle.
// A zero shipment number issues no query.
func (r *ShipmentLegRepository) ListByShipment(ctx context.Context, shipmentNo int64) ([]models.ShipmentLeg, error) {
	if shipmentNo == 0 {
		return []models.ShipmentLeg{}, nil
	}

	query, err := expansionQuery(r.db.WithContext(ctx),
		joinSide{model: &models.ShipmentTransportation{}, alias: "st"},
		joinSide{model: &models.Transportation{}, alias: "t", on: "t.registration_number = st.transportation_no"},
	)
	if err != nil {
		return nil, apperrors.ReadError(r.name(), "list", err)
	}

	var rows []shipmentLegScan
	if err := query.Where("st.shipment_no = ?", shipmentNo).Order("st.transportation_no").Scan(&rows).Error; err != nil {
		return nil, apperrors.ReadError(r.name(), "list", err)
	}

	out := make([]models.ShipmentLeg, 0, len(rows))
	for _, row := range rows {
		out = append(out, models.ShipmentLeg{
			ShipmentTransportation: row.Leg,
			Vehicle:                optional(row.Vehicle, row.Vehicle.RegistrationNumber != ""),
		})
	}
	return out, nil
}
