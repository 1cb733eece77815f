package redis

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config holds all configuration for the Redis client
type Config struct {
	Addr     string
	Password string
	DB       int
	// MaxLen caps the stream length; older entries are trimmed approximately
	MaxLen int64
}

// StreamMessage is one entry read from a stream
type StreamMessage struct {
	ID     string
	Values map[string]interface{}
}

// RedisClient is a wrapper around the go-redis client.
// It provides the stream operations used to relay entity-change events.
type RedisClient struct {
	client *redis.Client
	config *Config
}

// NewClient creates and connects a new RedisClient.
func NewClient(cfg *Config) (*RedisClient, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test the connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &RedisClient{
		client: rdb,
		config: cfg,
	}, nil
}

// Close gracefully closes the Redis connection.
func (c *RedisClient) Close() error {
	return c.client.Close()
}

// Publish adds an entry to the stream using XADD with an auto-generated ID
func (c *RedisClient) Publish(ctx context.Context, streamName string, values map[string]interface{}) (string, error) {
	args := &redis.XAddArgs{
		Stream: streamName,
		Values: values,
	}
	if c.config.MaxLen > 0 {
		args.MaxLen = c.config.MaxLen
		args.Approx = true
	}

	msgID, err := c.client.XAdd(ctx, args).Result()
	if err != nil {
		return "", fmt.Errorf("failed to XADD to stream %s: %w", streamName, err)
	}
	return msgID, nil
}

// CreateConsumerGroup creates a consumer group reading only entries added from now on
func (c *RedisClient) CreateConsumerGroup(ctx context.Context, streamName, groupName string) error {
	err := c.client.XGroupCreateMkStream(ctx, streamName, groupName, "$").Err()
	if err != nil && !strings.Contains(err.Error(), "BUSYGROUP") {
		return fmt.Errorf("failed to create consumer group %s: %w", groupName, err)
	}
	return nil
}

// DestroyConsumerGroup removes a consumer group and its pending entries
func (c *RedisClient) DestroyConsumerGroup(ctx context.Context, streamName, groupName string) error {
	if err := c.client.XGroupDestroy(ctx, streamName, groupName).Err(); err != nil {
		return fmt.Errorf("failed to destroy consumer group %s: %w", groupName, err)
	}
	return nil
}

// Consume reads the stream with XREADGROUP until ctx is done.
// The returned channel is closed when consumption stops.
func (c *RedisClient) Consume(ctx context.Context, streamName, groupName, consumerName string) (<-chan StreamMessage, error) {
	if err := c.CreateConsumerGroup(ctx, streamName, groupName); err != nil {
		return nil, err
	}

	ch := make(chan StreamMessage, 16)

	go func() {
		defer close(ch)

		for {
			if ctx.Err() != nil {
				return
			}

			streams, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
				Group:    groupName,
				Consumer: consumerName,
				Streams:  []string{streamName, ">"},
				Count:    64,
				Block:    5 * time.Second,
			}).Result()
			if err != nil {
				if err == redis.Nil || ctx.Err() != nil {
					continue
				}
				slog.Warn("Failed to read from stream, retrying", "stream", streamName, "error", err)
				select {
				case <-time.After(time.Second):
				case <-ctx.Done():
				}
				continue
			}

			for _, stream := range streams {
				for _, msg := range stream.Messages {
					select {
					case ch <- StreamMessage{ID: msg.ID, Values: msg.Values}:
					case <-ctx.Done():
						return
					}
				}
			}
		}
	}()

	return ch, nil
}

// Ack acknowledges a processed message
func (c *RedisClient) Ack(ctx context.Context, streamName, groupName, messageID string) error {
	if err := c.client.XAck(ctx, streamName, groupName, messageID).Err(); err != nil {
		return fmt.Errorf("failed to acknowledge message %s: %w", messageID, err)
	}
	return nil
}

// HealthCheck verifies Redis connectivity
func (c *RedisClient) HealthCheck(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
