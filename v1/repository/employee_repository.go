package repository

import (
	"context"

	apperrors "github.com/tradelink-ops/logistics-backend/pkg/errors"
	"github.com/tradelink-ops/logistics-backend/v1/models"
	"gorm.io/gorm"
)

// EmployeeRepository reads and writes employees
type EmployeeRepository struct {
	*Table[models.Employee, int64]
}

// NewEmployeeRepository creates an employee repository
func NewEmployeeRepository(db *gorm.DB) *EmployeeRepository {
	return &EmployeeRepository{Table: newTable(db, tableSpec[models.Employee, int64]{
		entity: models.EntityEmployee,
		keyWhere: func(k int64) map[string]interface{} {
			return map[string]interface{}{"ssn": k}
		},
		order:  "last_name ASC, first_name ASC",
		search: []string{"first_name", "last_name", "email", "phone"},
		sorts: map[string]string{
			"name":      "last_name",
			"hire_date": "hire_date",
			"salary":    "salary",
		},
		filter: func(q *gorm.DB, opts ListOptions) *gorm.DB {
			if opts.Warehouse != "" {
				q = q.Where("warehouses_code = ?", opts.Warehouse)
			}
			return q
		},
	})}
}

type employeeDetailScan struct {
	Employee  models.Employee  `gorm:"embedded;embeddedPrefix:e__"`
	Warehouse models.Warehouse `gorm:"embedded;embeddedPrefix:w__"`
	Dependent models.Dependent `gorm:"embedded;embeddedPrefix:d__"`
}

// GetDetail fetches an employee with their warehouse and dependents in one query
func (r *EmployeeRepository) GetDetail(ctx context.Context, ssn int64) (models.EmployeeDetail, error) {
	if ssn == 0 {
		return models.EmployeeDetail{}, apperrors.NotFound(r.name(), "")
	}

	query, err := expansionQuery(r.db.WithContext(ctx),
		joinSide{model: &models.Employee{}, alias: "e"},
		joinSide{model: &models.Warehouse{}, alias: "w", on: "w.code = e.warehouses_code"},
		joinSide{model: &models.Dependent{}, alias: "d", on: "d.employee_ssn = e.ssn"},
	)
	if err != nil {
		return models.EmployeeDetail{}, apperrors.ReadError(r.name(), "get detail", err)
	}

	var rows []employeeDetailScan
	if err := query.Where("e.ssn = ?", ssn).Order("d.name").Scan(&rows).Error; err != nil {
		return models.EmployeeDetail{}, apperrors.ReadError(r.name(), "get detail", err)
	}
	if len(rows) == 0 {
		return models.EmployeeDetail{}, apperrors.NotFound(r.name(), ssn)
	}

	first := rows[0]
	detail := models.EmployeeDetail{
		Employee:   first.Employee,
		Warehouse:  optional(first.Warehouse, first.Warehouse.Code != ""),
		Dependents: []models.Dependent{},
	}
	for _, row := range rows {
		if row.Dependent.EmployeeSSN != 0 {
			detail.Dependents = append(detail.Dependents, row.Dependent)
		}
	}
	return detail, nil
}

// DependentRepository reads and writes employee dependents
type DependentRepository struct {
	*Table[models.Dependent, models.DependentKey]
}

// NewDependentRepository creates a dependent repository
func NewDependentRepository(db *gorm.DB) *DependentRepository {
	return &DependentRepository{Table: newTable(db, tableSpec[models.Dependent, models.DependentKey]{
		entity: models.EntityDependent,
		keyWhere: func(k models.DependentKey) map[string]interface{} {
			return map[string]interface{}{"employee_ssn": k.EmployeeSSN, "name": k.Name}
		},
		isZero: models.DependentKey.IsZero,
		order:  "employee_ssn, name",
		search: []string{"name", "relationship"},
	})}
}

// ListByEmployee returns the dependents of one employee
func (r *DependentRepository) ListByEmployee(ctx context.Context, ssn int64) ([]models.Dependent, error) {
	return r.listWhere(ctx, "employee_ssn", ssn, "name")
}
