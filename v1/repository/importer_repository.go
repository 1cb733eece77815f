package repository

import (
	"context"

	apperrors "github.com/tradelink-ops/logistics-backend/pkg/errors"
	"github.com/tradelink-ops/logistics-backend/v1/models"
	"gorm.io/gorm"
)

// ImporterRepository reads and writes importers
type ImporterRepository struct {
	*Table[models.Importer, string]
}

// NewImporterRepository creates an importer repository
func NewImporterRepository(db *gorm.DB) *ImporterRepository {
	return &ImporterRepository{Table: newTable(db, tableSpec[models.Importer, string]{
		entity: models.EntityImporter,
		keyWhere: func(k string) map[string]interface{} {
			return map[string]interface{}{"iso_code": k}
		},
		isZero: isBlank,
		order:  "company_name ASC",
		search: []string{"company_name", "contact_person", "country"},
		sorts: map[string]string{
			"company_name": "company_name",
			"country":      "country",
		},
	})}
}

type importerDetailScan struct {
	Importer models.Importer      `gorm:"embedded;embeddedPrefix:i__"`
	Phone    models.ImporterPhone `gorm:"embedded;embeddedPrefix:p__"`
}

// GetDetail fetches an importer with its phone numbers in one query
func (r *ImporterRepository) GetDetail(ctx context.Context, isoCode string) (models.ImporterDetail, error) {
	if isBlank(isoCode) {
		return models.ImporterDetail{}, apperrors.NotFound(r.name(), "")
	}

	query, err := expansionQuery(r.db.WithContext(ctx),
		joinSide{model: &models.Importer{}, alias: "i"},
		joinSide{model: &models.ImporterPhone{}, alias: "p", on: "p.importers_code = i.iso_code"},
	)
	if err != nil {
		return models.ImporterDetail{}, apperrors.ReadError(r.name(), "get detail", err)
	}

	var rows []importerDetailScan
	if err := query.Where("i.iso_code = ?", isoCode).Order("p.code").Scan(&rows).Error; err != nil {
		return models.ImporterDetail{}, apperrors.ReadError(r.name(), "get detail", err)
	}
	if len(rows) == 0 {
		return models.ImporterDetail{}, apperrors.NotFound(r.name(), isoCode)
	}

	detail := models.ImporterDetail{Importer: rows[0].Importer, Phones: []models.ImporterPhone{}}
	for _, row := range rows {
		if row.Phone.Code != "" {
			detail.Phones = append(detail.Phones, row.Phone)
		}
	}
	return detail, nil
}

// ImporterPhoneRepository reads and writes importer phone numbers
type ImporterPhoneRepository struct {
	*Table[models.ImporterPhone, string]
}

// NewImporterPhoneRepository creates an importer phone repository
func NewImporterPhoneRepository(db *gorm.DB) *ImporterPhoneRepository {
	return &ImporterPhoneRepository{Table: newTable(db, tableSpec[models.ImporterPhone, string]{
		entity: models.EntityImporterPhone,
		keyWhere: func(k string) map[string]interface{} {
			return map[string]interface{}{"code": k}
		},
		isZero: isBlank,
		order:  "importers_code, code",
	})}
}

// ListByImporter returns the phone numbers of one importer
func (r *ImporterPhoneRepository) ListByImporter(ctx context.Context, isoCode string) ([]models.ImporterPhone, error) {
	return r.listWhere(ctx, "importers_code", isoCode, "code")
}
