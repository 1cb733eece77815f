package repository

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// joinSide is one table taking part in an expansion query.
// on is the LEFT JOIN condition; it is empty for the base table.
type joinSide struct {
	model interface{}
	alias string
	on    string
}

// expansionQuery builds a single-statement read of base LEFT JOINed with
// joins. Every column is selected as "alias.col AS alias__col" so results
// scan into structs whose embedded rows use embeddedPrefix "alias__".
func expansionQuery(db *gorm.DB, base joinSide, joins ...joinSide) (*gorm.DB, error) {
	sides := append([]joinSide{base}, joins...)

	var cols []string
	tables := make([]string, len(sides))
	for i, side := range sides {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(side.model); err != nil {
			return nil, fmt.Errorf("failed to parse %T: %w", side.model, err)
		}
		tables[i] = fmt.Sprintf("%s AS %s", stmt.Schema.Table, side.alias)
		for _, name := range stmt.Schema.DBNames {
			cols = append(cols, fmt.Sprintf("%s.%s AS %s__%s", side.alias, name, side.alias, name))
		}
	}

	query := db.Table(tables[0]).Select(strings.Join(cols, ", "))
	for i, side := range joins {
		query = query.Joins(fmt.Sprintf("LEFT JOIN %s ON %s", tables[i+1], side.on))
	}
	return query, nil
}

// optional returns a pointer to v, or nil when the joined side matched no row
func optional[T any](v T, present bool) *T {
	if !present {
		return nil
	}
	return &v
}
