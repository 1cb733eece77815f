// Package cache holds previously fetched query results keyed by query key.
// Entries become stale only through explicit invalidation; there is no
// time-based expiry.
package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/tradelink-ops/logistics-backend/pkg/monitoring"
)

// ErrClosed is returned by reads issued after Close
var ErrClosed = errors.New("query cache closed")

// Fetcher loads the value for one key from the store
type Fetcher func(ctx context.Context) (interface{}, error)

// Options configures a Cache
type Options struct {
	Logger *slog.Logger
	// UpdateBuffer is the per-subscription channel capacity. When a consumer
	// falls behind, the oldest undelivered snapshot is dropped.
	UpdateBuffer int
}

// Cache is a process-wide keyed store of query results with subscriptions.
// Each entry is linearized by its own mutex; at most one fetch per key is in
// flight at any time.
type Cache struct {
	opts   Options
	logger *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu      sync.Mutex
	closed  bool
	drained bool
	entries map[string]*entry
}

type result struct {
	value interface{}
	err   error
}

// waiter is a blocking Fetch caller. gen is the invalidation generation it
// requires; results of fetches started before that generation do not satisfy it.
type waiter struct {
	ch  chan result
	gen uint64
}

type entry struct {
	key Key

	mu        sync.Mutex
	status    Status
	value     interface{}
	hasValue  bool
	err       error
	updatedAt time.Time
	fetcher   Fetcher

	// gen counts invalidations; fetchGen is gen when the in-flight fetch started
	gen      uint64
	fetchGen uint64

	subs    map[*Subscription]struct{}
	waiters []*waiter
}

// New creates a cache. Fetches run on the cache's own context, cancelled by Close.
func New(opts Options) *Cache {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.UpdateBuffer <= 0 {
		opts.UpdateBuffer = 8
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Cache{
		opts:    opts,
		logger:  opts.Logger.With("component", "query-cache"),
		ctx:     ctx,
		cancel:  cancel,
		entries: make(map[string]*entry),
	}
}

// Close cancels in-flight fetches, waits for them and closes every subscription
func (c *Cache) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	entries := make([]*entry, 0, len(c.entries))
	for _, e := range c.entries {
		entries = append(entries, e)
	}
	c.mu.Unlock()

	c.cancel()
	c.wg.Wait()

	for _, e := range entries {
		e.mu.Lock()
		for sub := range e.subs {
			sub.closeLocked()
		}
		e.subs = map[*Subscription]struct{}{}
		for _, w := range e.waiters {
			w.ch <- result{err: ErrClosed}
		}
		e.waiters = nil
		e.mu.Unlock()
	}
	c.logger.Info("Query cache closed", "entries", len(entries))
}

// CloseSubscriptions ends every open subscription; subscriptions opened
// afterwards start closed. Reads keep working until Close.
func (c *Cache) CloseSubscriptions() {
	c.mu.Lock()
	c.drained = true
	entries := make([]*entry, 0, len(c.entries))
	for _, e := range c.entries {
		entries = append(entries, e)
	}
	c.mu.Unlock()

	closed := 0
	for _, e := range entries {
		e.mu.Lock()
		for sub := range e.subs {
			sub.closeLocked()
			closed++
		}
		e.subs = map[*Subscription]struct{}{}
		e.mu.Unlock()
	}
	c.logger.Info("Query cache subscriptions closed", "subscriptions", closed)
}

func (c *Cache) acceptsSubscriptions() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.closed && !c.drained
}

func (c *Cache) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *Cache) entry(key Key) *entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := key.String()
	e, ok := c.entries[id]
	if !ok {
		e = &entry{key: key, subs: map[*Subscription]struct{}{}}
		c.entries[id] = e
	}
	return e
}

func (c *Cache) lookup(key Key) *entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries[key.String()]
}

// Fetch returns the value for key, fetching it when the entry is not fresh.
// A caller arriving while a fetch is in flight joins it instead of starting
// another. Leaving early through ctx does not cancel the shared fetch.
func (c *Cache) Fetch(ctx context.Context, key Key, fetcher Fetcher) (interface{}, error) {
	if c.isClosed() {
		return nil, ErrClosed
	}

	e := c.entry(key)
	e.mu.Lock()
	if e.status == StatusFresh {
		value := e.value
		e.mu.Unlock()
		monitoring.RecordCacheEvent(ctx, key.Scope(), monitoring.CacheHit)
		return value, nil
	}

	monitoring.RecordCacheEvent(ctx, key.Scope(), monitoring.CacheMiss)
	e.fetcher = fetcher
	w := &waiter{ch: make(chan result, 1), gen: e.gen}
	e.waiters = append(e.waiters, w)
	if e.status != StatusFetching {
		c.startLocked(e)
	}
	e.mu.Unlock()

	select {
	case r := <-w.ch:
		return r.value, r.err
	case <-ctx.Done():
		e.mu.Lock()
		e.removeWaiterLocked(w)
		e.mu.Unlock()
		return nil, ctx.Err()
	}
}

// Get is the typed form of Fetch
func Get[T any](ctx context.Context, c *Cache, key Key, fetch func(context.Context) (T, error)) (T, error) {
	var zero T
	v, err := c.Fetch(ctx, key, Adapt(fetch))
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("cache entry %s holds %T, not %T", key, v, zero)
	}
	return typed, nil
}

// Adapt turns a typed loader into a Fetcher
func Adapt[T any](fetch func(context.Context) (T, error)) Fetcher {
	return func(ctx context.Context) (interface{}, error) {
		return fetch(ctx)
	}
}

// Subscribe registers interest in key. The returned subscription carries the
// current snapshot, possibly without a value, and receives a snapshot after
// every completed fetch. An uninitialized or stale entry that is not already
// being fetched starts exactly one fetch.
func (c *Cache) Subscribe(key Key, fetcher Fetcher) *Subscription {
	e := c.entry(key)
	sub := &Subscription{entry: e, updates: make(chan Snapshot, c.opts.UpdateBuffer)}

	e.mu.Lock()
	defer e.mu.Unlock()

	if !c.acceptsSubscriptions() {
		sub.current = e.snapshotLocked()
		sub.closeLocked()
		return sub
	}

	e.fetcher = fetcher
	e.subs[sub] = struct{}{}
	switch e.status {
	case StatusFresh:
		monitoring.RecordCacheEvent(c.ctx, key.Scope(), monitoring.CacheHit)
	case StatusUninitialized, StatusStale:
		monitoring.RecordCacheEvent(c.ctx, key.Scope(), monitoring.CacheMiss)
		c.startLocked(e)
	}
	sub.current = e.snapshotLocked()
	return sub
}

// Peek returns the entry's snapshot without fetching
func (c *Cache) Peek(key Key) (Snapshot, bool) {
	e := c.lookup(key)
	if e == nil {
		return Snapshot{Key: key.String()}, false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked(), true
}

// Invalidate marks key stale. Entries with subscribers refetch in the
// background; entries without subscribers refresh on their next read.
func (c *Cache) Invalidate(key Key) {
	if e := c.lookup(key); e != nil {
		c.invalidateEntry(e)
	}
}

// InvalidateScope invalidates every key of scope and returns how many there were
func (c *Cache) InvalidateScope(scope string) int {
	c.mu.Lock()
	var matched []*entry
	for _, e := range c.entries {
		if e.key.Scope() == scope {
			matched = append(matched, e)
		}
	}
	c.mu.Unlock()

	for _, e := range matched {
		c.invalidateEntry(e)
	}
	return len(matched)
}

func (c *Cache) invalidateEntry(e *entry) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.gen++
	monitoring.RecordCacheEvent(c.ctx, e.key.Scope(), monitoring.CacheInvalidate)

	switch e.status {
	case StatusUninitialized:
		return
	case StatusFetching:
		// the in-flight result is stored as stale and refetched on completion
		return
	}
	e.status = StatusStale
	if len(e.subs) > 0 && e.fetcher != nil {
		c.startLocked(e)
	}
}

// startLocked moves e to Fetching and runs its fetcher in the background
func (c *Cache) startLocked(e *entry) {
	e.status = StatusFetching
	e.fetchGen = e.gen
	fetcher := e.fetcher

	c.mu.Lock()
	closed := c.closed
	if !closed {
		c.wg.Add(1)
	}
	c.mu.Unlock()

	if closed {
		go c.complete(e, nil, ErrClosed)
		return
	}

	go func() {
		defer c.wg.Done()
		start := time.Now()
		value, err := invoke(c.ctx, fetcher)
		monitoring.RecordCacheFetch(c.ctx, e.key.Scope(), time.Since(start), err)
		c.complete(e, value, err)
	}()
}

func invoke(ctx context.Context, fetcher Fetcher) (value interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("fetch panicked: %v", r)
		}
	}()
	if fetcher == nil {
		return nil, errors.New("no fetcher registered")
	}
	return fetcher(ctx)
}

// complete applies a finished fetch to e
func (c *Cache) complete(e *entry, value interface{}, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	invalidated := e.gen != e.fetchGen

	var served, pending []*waiter
	for _, w := range e.waiters {
		if w.gen <= e.fetchGen {
			served = append(served, w)
		} else {
			pending = append(pending, w)
		}
	}
	e.waiters = pending

	// nobody is left to consume the result
	if len(e.subs) == 0 && len(e.waiters) == 0 && len(served) == 0 {
		monitoring.RecordCacheEvent(c.ctx, e.key.Scope(), monitoring.CacheDiscard)
		c.logger.Debug("Discarding fetch result without consumers", "key", e.key.String())
		if e.hasValue {
			e.status = StatusStale
		} else {
			e.status = StatusUninitialized
		}
		return
	}

	if err != nil {
		c.logger.Warn("Query fetch failed", "key", e.key.String(), "error", err)
		e.err = err
		e.status = StatusStale
		value = nil
	} else {
		e.value = value
		e.hasValue = true
		e.err = nil
		e.updatedAt = time.Now()
		e.status = StatusFresh
		if invalidated {
			e.status = StatusStale
		}
	}

	for _, w := range served {
		w.ch <- result{value: value, err: err}
	}

	if invalidated && (len(e.subs) > 0 || len(e.waiters) > 0) {
		if c.ctx.Err() == nil {
			c.startLocked(e)
		} else {
			for _, w := range e.waiters {
				w.ch <- result{err: ErrClosed}
			}
			e.waiters = nil
		}
	}

	e.notifyLocked(e.snapshotLocked())
}

func (e *entry) snapshotLocked() Snapshot {
	return Snapshot{
		Key:       e.key.String(),
		Value:     e.value,
		HasValue:  e.hasValue,
		Err:       e.err,
		Status:    e.status,
		UpdatedAt: e.updatedAt,
	}
}

func (e *entry) notifyLocked(snap Snapshot) {
	for sub := range e.subs {
		sub.deliverLocked(snap)
	}
}

func (e *entry) removeWaiterLocked(target *waiter) {
	for i, w := range e.waiters {
		if w == target {
			e.waiters = append(e.waiters[:i], e.waiters[i+1:]...)
			return
		}
	}
}
