package repository

import (
	"context"
	"fmt"
	"strings"

	apperrors "github.com/tradelink-ops/logistics-backend/pkg/errors"
	"github.com/tradelink-ops/logistics-backend/v1/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SortDirection orders a list ascending or descending
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// ListOptions carries the presentation-level parameters of a list read.
// Zero value means "all rows in natural order".
type ListOptions struct {
	Search    string
	Status    string
	Category  *int64
	Warehouse string
	SortField string
	SortDir   SortDirection
	Limit     int
}

// CacheParams returns the options as deterministic key parameters
func (o ListOptions) CacheParams() []interface{} {
	var params []interface{}
	if s := strings.TrimSpace(o.Search); s != "" {
		params = append(params, "q="+strings.ToLower(s))
	}
	if o.Status != "" {
		params = append(params, "status="+o.Status)
	}
	if o.Warehouse != "" {
		params = append(params, "warehouse="+o.Warehouse)
	}
	if o.Category != nil {
		params = append(params, fmt.Sprintf("category=%d", *o.Category))
	}
	if o.SortField != "" {
		params = append(params, "sort="+o.SortField+":"+string(o.direction()))
	}
	if o.Limit > 0 {
		params = append(params, fmt.Sprintf("limit=%d", o.Limit))
	}
	return params
}

func (o ListOptions) direction() SortDirection {
	if strings.EqualFold(string(o.SortDir), string(SortDesc)) {
		return SortDesc
	}
	return SortAsc
}

// InsertShape converts a validated insert payload to its row
type InsertShape[R any] interface {
	ToRow() R
}

// UpdateShape yields the columns a partial update supplies
type UpdateShape interface {
	Changes() map[string]interface{}
}

// tableSpec describes how a generic table reads and writes one entity
type tableSpec[R any, K comparable] struct {
	entity   models.EntityName
	keyWhere func(K) map[string]interface{}
	isZero   func(K) bool
	// natural order of list reads
	order string
	// columns matched by ListOptions.Search
	search []string
	// allow-listed sort fields mapped to ORDER BY expressions
	sorts map[string]string
	// entity-specific filters (status, category)
	filter func(*gorm.DB, ListOptions) *gorm.DB
}

// Table implements list, get-by-key, create, update and count for one entity
type Table[R any, K comparable] struct {
	db   *gorm.DB
	spec tableSpec[R, K]
}

func newTable[R any, K comparable](db *gorm.DB, spec tableSpec[R, K]) *Table[R, K] {
	if spec.isZero == nil {
		spec.isZero = func(k K) bool {
			var zero K
			return k == zero
		}
	}
	return &Table[R, K]{db: db, spec: spec}
}

// Entity returns the entity the table serves
func (t *Table[R, K]) Entity() models.EntityName {
	return t.spec.entity
}

// IsZeroKey reports whether key cannot identify a row
func (t *Table[R, K]) IsZeroKey(key K) bool {
	return t.spec.isZero(key)
}

func (t *Table[R, K]) name() string {
	return t.spec.entity.String()
}

// List fetches all rows matching opts in natural or requested order
func (t *Table[R, K]) List(ctx context.Context, opts ListOptions) ([]R, error) {
	query := t.db.WithContext(ctx).Model(new(R))
	query = applySearch(query, t.spec.search, opts.Search)
	if t.spec.filter != nil {
		query = t.spec.filter(query, opts)
	}
	query = query.Order(t.orderClause(opts))
	if opts.Limit > 0 {
		query = query.Limit(opts.Limit)
	}

	var rows []R
	if err := query.Find(&rows).Error; err != nil {
		return nil, apperrors.ReadError(t.name(), "list", err)
	}
	if rows == nil {
		rows = []R{}
	}
	return rows, nil
}

func (t *Table[R, K]) orderClause(opts ListOptions) string {
	if opts.SortField != "" {
		if expr, ok := t.spec.sorts[opts.SortField]; ok {
			return fmt.Sprintf("%s %s", expr, strings.ToUpper(string(opts.direction())))
		}
	}
	return t.spec.order
}

// Get fetches one row by primary key. An empty key resolves to NotFound
// without issuing a query.
func (t *Table[R, K]) Get(ctx context.Context, key K) (R, error) {
	var row R
	if t.spec.isZero(key) {
		return row, apperrors.NotFound(t.name(), "")
	}

	err := t.db.WithContext(ctx).Where(t.spec.keyWhere(key)).Take(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return row, apperrors.NotFound(t.name(), key)
		}
		return row, apperrors.ReadError(t.name(), "get", err)
	}
	return row, nil
}

// Create validates and inserts one row, returning it as persisted
// (store-assigned defaults included)
func (t *Table[R, K]) Create(ctx context.Context, in InsertShape[R]) (R, error) {
	var zero R
	if err := models.ValidateShape(in); err != nil {
		return zero, apperrors.ValidationError(t.name(), "create", err)
	}

	row := in.ToRow()
	if err := t.db.WithContext(ctx).Clauses(clause.Returning{}).Create(&row).Error; err != nil {
		return zero, apperrors.WriteError(t.name(), "create", err)
	}
	return row, nil
}

// Update writes only the supplied columns of the row matched by key
func (t *Table[R, K]) Update(ctx context.Context, key K, in UpdateShape) (R, error) {
	var zero R
	if t.spec.isZero(key) {
		return zero, apperrors.NotFound(t.name(), "")
	}
	if err := models.ValidateShape(in); err != nil {
		return zero, apperrors.ValidationError(t.name(), "update", err)
	}

	changes := in.Changes()
	if len(changes) == 0 {
		return t.Get(ctx, key)
	}

	var row R
	result := t.db.WithContext(ctx).
		Model(&row).
		Clauses(clause.Returning{}).
		Where(t.spec.keyWhere(key)).
		Updates(changes)
	if result.Error != nil {
		return zero, apperrors.WriteError(t.name(), "update", result.Error)
	}
	if result.RowsAffected == 0 {
		return zero, apperrors.NotFound(t.name(), key)
	}
	return row, nil
}

// Count returns the number of rows in the table
func (t *Table[R, K]) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := t.db.WithContext(ctx).Model(new(R)).Count(&n).Error; err != nil {
		return 0, apperrors.ReadError(t.name(), "count", err)
	}
	return n, nil
}

// listWhere fetches rows whose column equals value; an empty value issues no query
func (t *Table[R, K]) listWhere(ctx context.Context, column string, value interface{}, order string) ([]R, error) {
	if isEmptyScope(value) {
		return []R{}, nil
	}

	var rows []R
	err := t.db.WithContext(ctx).Where(map[string]interface{}{column: value}).Order(order).Find(&rows).Error
	if err != nil {
		return nil, apperrors.ReadError(t.name(), "list", err)
	}
	if rows == nil {
		rows = []R{}
	}
	return rows, nil
}

func isEmptyScope(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case int64:
		return v == 0
	case int:
		return v == 0
	}
	return false
}

// applySearch adds a case-insensitive substring match over columns
func applySearch(query *gorm.DB, columns []string, search string) *gorm.DB {
	search = strings.TrimSpace(search)
	if search == "" || len(columns) == 0 {
		return query
	}

	pattern := "%" + escapeLike(strings.ToLower(search)) + "%"
	clauses := make([]string, 0, len(columns))
	args := make([]interface{}, 0, len(columns))
	for _, col := range columns {
		clauses = append(clauses, fmt.Sprintf("LOWER(%s) LIKE ? ESCAPE '\\'", col))
		args = append(args, pattern)
	}
	return query.Where("("+strings.Join(clauses, " OR ")+")", args...)
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
