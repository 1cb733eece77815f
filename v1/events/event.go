// Package events carries entity-changed notifications from mutations to the
// query cache, in process and optionally across processes through Redis.
package events

import (
	"fmt"
	"time"

	"github.com/tradelink-ops/logistics-backend/v1/models"
)

// Op is the kind of mutation that produced an event
type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
)

// EntityChanged announces a successful create or update of one or more rows
type EntityChanged struct {
	ID         string            `json:"id"`
	Entity     models.EntityName `json:"entity"`
	Keys       []string          `json:"keys"`
	Op         Op                `json:"op"`
	Origin     string            `json:"origin"`
	OccurredAt time.Time         `json:"occurred_at"`
}

// NewEntityChanged builds an event for the given primary keys. Keys are
// rendered with fmt.Sprint so they match the parameters of cache keys.
func NewEntityChanged(entity models.EntityName, op Op, keys ...interface{}) EntityChanged {
	rendered := make([]string, 0, len(keys))
	for _, k := range keys {
		rendered = append(rendered, fmt.Sprint(k))
	}
	return EntityChanged{Entity: entity, Op: op, Keys: rendered}
}
