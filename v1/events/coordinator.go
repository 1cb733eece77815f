package events

import (
	"context"
	"log/slog"

	"github.com/tradelink-ops/logistics-backend/v1/cache"
)

// Invalidator is the part of the query cache the coordinator drives
type Invalidator interface {
	Invalidate(key cache.Key)
	InvalidateScope(scope string) int
}

// Coordinator turns entity-changed events into cache invalidations
type Coordinator struct {
	cache Invalidator
}

// NewCoordinator creates a coordinator over c
func NewCoordinator(c Invalidator) *Coordinator {
	return &Coordinator{cache: c}
}

// Register subscribes the coordinator to bus
func (c *Coordinator) Register(bus *Bus) {
	bus.Subscribe(c.Handle)
}

// Handle invalidates every query whose result could include the changed rows:
// the entity's lists, the record and detail keys of each changed row, and the
// derived scopes that embed the entity.
func (c *Coordinator) Handle(_ context.Context, ev EntityChanged) {
	invalidated := c.cache.InvalidateScope(ListScope(ev.Entity))

	for _, key := range ev.Keys {
		c.cache.Invalidate(cache.NewKey(RecordScope(ev.Entity), key))
		c.cache.Invalidate(cache.NewKey(DetailScope(ev.Entity), key))
	}

	for _, scope := range dependents[ev.Entity] {
		invalidated += c.cache.InvalidateScope(scope)
	}

	slog.Debug("Invalidated dependent queries",
		"entity", ev.Entity, "op", ev.Op, "keys", ev.Keys, "origin", ev.Origin, "scopedEntries", invalidated)
}
