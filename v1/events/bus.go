package events

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tradelink-ops/logistics-backend/pkg/monitoring"
)

// Handler consumes one event
type Handler func(ctx context.Context, ev EntityChanged)

// Bus fans events out to handlers on a single worker goroutine.
// Publish never blocks the caller.
type Bus struct {
	origin string
	queue  chan EntityChanged
	done   chan struct{}

	mu       sync.RWMutex
	handlers []Handler
	stopOnce sync.Once
}

// NewBus creates a bus with the given queue capacity and a fresh origin id
func NewBus(buffer int) *Bus {
	if buffer <= 0 {
		buffer = 1
	}
	return &Bus{
		origin: uuid.NewString(),
		queue:  make(chan EntityChanged, buffer),
		done:   make(chan struct{}),
	}
}

// Origin identifies this process in events it publishes
func (b *Bus) Origin() string {
	return b.origin
}

// Subscribe adds a handler; handlers run in registration order
func (b *Bus) Subscribe(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, h)
}

// Publish stamps ev with an id, origin and time when missing and queues it
func (b *Bus) Publish(ctx context.Context, ev EntityChanged) {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.Origin == "" {
		ev.Origin = b.origin
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}
	monitoring.RecordEntityChange(ctx, string(ev.Entity), string(ev.Op), b.originLabel(ev))

	select {
	case b.queue <- ev:
		return
	case <-b.done:
		return
	default:
	}

	// queue full: hand off so the mutation's caller is not held up
	slog.Warn("Event bus queue full, deferring event", "entity", ev.Entity, "id", ev.ID)
	go func() {
		select {
		case b.queue <- ev:
		case <-b.done:
		}
	}()
}

func (b *Bus) originLabel(ev EntityChanged) string {
	if ev.Origin == b.origin {
		return "local"
	}
	return "remote"
}

// Start delivers queued events until ctx is done. Run it in its own goroutine.
func (b *Bus) Start(ctx context.Context) {
	slog.Info("Event bus started", "origin", b.origin, "buffer", cap(b.queue))
	defer b.stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("Event bus stopped")
			return
		case ev := <-b.queue:
			b.dispatch(ctx, ev)
		}
	}
}

// Done is closed once Start has returned
func (b *Bus) Done() <-chan struct{} {
	return b.done
}

func (b *Bus) stop() {
	b.stopOnce.Do(func() { close(b.done) })
}

func (b *Bus) dispatch(ctx context.Context, ev EntityChanged) {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers...)
	b.mu.RUnlock()

	for _, h := range handlers {
		b.safeCall(ctx, h, ev)
	}
}

func (b *Bus) safeCall(ctx context.Context, h Handler, ev EntityChanged) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Event handler panicked", "entity", ev.Entity, "id", ev.ID, "panic", r)
		}
	}()
	h(ctx, ev)
}
