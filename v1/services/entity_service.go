package services

import (
	"context"
	"strings"

	apperrors "github.com/tradelink-ops/logistics-backend/pkg/errors"
	"github.com/tradelink-ops/logistics-backend/v1/cache"
	"github.com/tradelink-ops/logistics-backend/v1/events"
	"github.com/tradelink-ops/logistics-backend/v1/models"
	"github.com/tradelink-ops/logistics-backend/v1/repository"
)

// Publisher emits entity-changed events after successful mutations
type Publisher interface {
	Publish(ctx context.Context, ev events.EntityChanged)
}

// EntityStore is the repository contract every entity shares
type EntityStore[R any, K comparable] interface {
	Entity() models.EntityName
	IsZeroKey(key K) bool
	List(ctx context.Context, opts repository.ListOptions) ([]R, error)
	Get(ctx context.Context, key K) (R, error)
	Create(ctx context.Context, in repository.InsertShape[R]) (R, error)
	Update(ctx context.Context, key K, in repository.UpdateShape) (R, error)
	Count(ctx context.Context) (int64, error)
}

// EntityService serves one entity's reads from the query cache and announces
// its successful writes on the event bus
type EntityService[R any, K comparable] struct {
	store  EntityStore[R, K]
	cache  *cache.Cache
	events Publisher
	keyOf  func(R) K
}

// NewEntityService creates a service; keyOf extracts a row's primary key
func NewEntityService[R any, K comparable](store EntityStore[R, K], c *cache.Cache, pub Publisher, keyOf func(R) K) *EntityService[R, K] {
	return &EntityService[R, K]{store: store, cache: c, events: pub, keyOf: keyOf}
}

// Entity returns the served entity
func (s *EntityService[R, K]) Entity() models.EntityName {
	return s.store.Entity()
}

// ListKey returns the cache key of a list read
func (s *EntityService[R, K]) ListKey(opts repository.ListOptions) cache.Key {
	return cache.NewKey(events.ListScope(s.Entity()), opts.CacheParams()...)
}

// RecordKey returns the cache key of a by-key read
func (s *EntityService[R, K]) RecordKey(key K) cache.Key {
	return cache.NewKey(events.RecordScope(s.Entity()), key)
}

// List returns the rows matching opts
func (s *EntityService[R, K]) List(ctx context.Context, opts repository.ListOptions) ([]R, error) {
	return cache.Get(ctx, s.cache, s.ListKey(opts), s.listFetcher(opts))
}

// WatchList subscribes to a list read
func (s *EntityService[R, K]) WatchList(opts repository.ListOptions) *cache.Subscription {
	return s.cache.Subscribe(s.ListKey(opts), cache.Adapt(s.listFetcher(opts)))
}

func (s *EntityService[R, K]) listFetcher(opts repository.ListOptions) func(context.Context) ([]R, error) {
	return func(ctx context.Context) ([]R, error) {
		return s.store.List(ctx, opts)
	}
}

// Get returns one row. An empty key resolves to NotFound without touching the
// cache or the store.
func (s *EntityService[R, K]) Get(ctx context.Context, key K) (R, error) {
	if s.store.IsZeroKey(key) {
		var row R
		return row, apperrors.NotFound(s.Entity().String(), "")
	}
	return cache.Get(ctx, s.cache, s.RecordKey(key), func(ctx context.Context) (R, error) {
		return s.store.Get(ctx, key)
	})
}

// Create inserts a row and, on success only, announces it
func (s *EntityService[R, K]) Create(ctx context.Context, in repository.InsertShape[R]) (R, error) {
	row, err := s.store.Create(ctx, in)
	if err != nil {
		return row, err
	}
	s.announce(ctx, events.OpCreate, s.keyOf(row))
	return row, nil
}

// Update writes the supplied fields and, on success only, announces the change
func (s *EntityService[R, K]) Update(ctx context.Context, key K, in repository.UpdateShape) (R, error) {
	row, err := s.store.Update(ctx, key, in)
	if err != nil {
		return row, err
	}
	s.announce(ctx, events.OpUpdate, key)
	return row, nil
}

// Count returns the number of rows, bypassing the cache
func (s *EntityService[R, K]) Count(ctx context.Context) (int64, error) {
	return s.store.Count(ctx)
}

func (s *EntityService[R, K]) announce(ctx context.Context, op events.Op, key K) {
	if s.events == nil {
		return
	}
	s.events.Publish(ctx, events.NewEntityChanged(s.Entity(), op, key))
}

// cachedScoped reads a scoped list (children of one parent) through the cache.
// A zero or blank parent yields an empty result without a fetch.
func cachedScoped[T any, P comparable](ctx context.Context, c *cache.Cache, scope string, parent P, fetch func(context.Context, P) ([]T, error)) ([]T, error) {
	var zero P
	if parent == zero {
		return []T{}, nil
	}
	if s, ok := any(parent).(string); ok && strings.TrimSpace(s) == "" {
		return []T{}, nil
	}
	return cache.Get(ctx, c, cache.NewKey(scope, parent), func(ctx context.Context) ([]T, error) {
		return fetch(ctx, parent)
	})
}

// cachedDetail reads the detail view of one row through the cache. An empty
// key resolves to NotFound without a cache entry.
func cachedDetail[D, R any, K comparable](ctx context.Context, s *EntityService[R, K], key K, fetch func(context.Context, K) (D, error)) (D, error) {
	if s.store.IsZeroKey(key) {
		var detail D
		return detail, apperrors.NotFound(s.Entity().String(), "")
	}
	return cache.Get(ctx, s.cache, cache.NewKey(events.DetailScope(s.Entity()), key), func(ctx context.Context) (D, error) {
		return fetch(ctx, key)
	})
}
