package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/tradelink-ops/logistics-backend/shared/redis"
	"github.com/tradelink-ops/logistics-backend/v1/config"
)

const payloadField = "payload"

// StreamClient is the stream transport the relay needs.
// *redis.RedisClient implements it.
type StreamClient interface {
	Publish(ctx context.Context, streamName string, values map[string]interface{}) (string, error)
	Consume(ctx context.Context, streamName, groupName, consumerName string) (<-chan redis.StreamMessage, error)
	Ack(ctx context.Context, streamName, groupName, messageID string) error
	DestroyConsumerGroup(ctx context.Context, streamName, groupName string) error
}

// RedisRelay shares entity-changed events with other processes using the
// same store, so their caches are invalidated too. Each process reads the
// stream through its own consumer group and ignores its own events.
type RedisRelay struct {
	client StreamClient
	bus    *Bus
	stream string
	group  string
}

// NewRedisRelay creates a relay for bus over client
func NewRedisRelay(client StreamClient, bus *Bus, settings config.EventSettings) *RedisRelay {
	return &RedisRelay{
		client: client,
		bus:    bus,
		stream: settings.StreamName,
		group:  settings.ConsumerGroup + ":" + bus.Origin(),
	}
}

// Start forwards local events to the stream and feeds remote events into the
// bus until ctx is done.
func (r *RedisRelay) Start(ctx context.Context) error {
	messages, err := r.client.Consume(ctx, r.stream, r.group, r.bus.Origin())
	if err != nil {
		return fmt.Errorf("failed to start change relay: %w", err)
	}
	r.bus.Subscribe(r.forward)

	slog.Info("Change relay started", "stream", r.stream, "group", r.group)
	go r.consume(ctx, messages)
	return nil
}

// Close removes this process's consumer group
func (r *RedisRelay) Close(ctx context.Context) error {
	return r.client.DestroyConsumerGroup(ctx, r.stream, r.group)
}

func (r *RedisRelay) forward(ctx context.Context, ev EntityChanged) {
	if ev.Origin != r.bus.Origin() {
		return
	}
	values, err := encodeEvent(ev)
	if err != nil {
		slog.Error("Failed to encode change event", "id", ev.ID, "error", err)
		return
	}
	if _, err := r.client.Publish(ctx, r.stream, values); err != nil {
		slog.Warn("Failed to relay change event", "id", ev.ID, "entity", ev.Entity, "error", err)
	}
}

func (r *RedisRelay) consume(ctx context.Context, messages <-chan redis.StreamMessage) {
	for msg := range messages {
		r.receive(ctx, msg)
	}
	slog.Info("Change relay stopped", "stream", r.stream)
}

func (r *RedisRelay) receive(ctx context.Context, msg redis.StreamMessage) {
	defer func() {
		if err := r.client.Ack(ctx, r.stream, r.group, msg.ID); err != nil {
			slog.Warn("Failed to acknowledge change event", "messageId", msg.ID, "error", err)
		}
	}()

	ev, err := decodeEvent(msg.Values)
	if err != nil {
		slog.Warn("Dropping malformed change event", "messageId", msg.ID, "error", err)
		return
	}
	if ev.Origin == r.bus.Origin() {
		return
	}
	r.bus.Publish(ctx, ev)
}

func encodeEvent(ev EntityChanged) (map[string]interface{}, error) {
	payload, err := json.Marshal(ev)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		payloadField: string(payload),
		"entity":     string(ev.Entity),
	}, nil
}

func decodeEvent(values map[string]interface{}) (EntityChanged, error) {
	var ev EntityChanged
	raw, ok := values[payloadField].(string)
	if !ok {
		return ev, fmt.Errorf("missing %s field", payloadField)
	}
	if err := json.Unmarshal([]byte(raw), &ev); err != nil {
		return ev, fmt.Errorf("invalid payload: %w", err)
	}
	if ev.Entity == "" || ev.Origin == "" {
		return ev, fmt.Errorf("event without entity or origin")
	}
	return ev, nil
}
