package events

import (
	"context"
	"fmt"

	"ecosync/backend/internal/logger"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// RedisBroker publishes events on a Redis channel and replays what any
// instance published into the local hub.
type RedisBroker struct {
	Redis   *redis.Client
	Channel string
}

var _ Publisher = (*RedisBroker)(nil)

// NewRedisBroker connects to the Redis at url and checks it answers.
func NewRedisBroker(ctx context.Context, url, channel string) (*RedisBroker, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return &RedisBroker{Redis: rdb, Channel: channel}, nil
}

// Publish sends e to every subscribed instance, this one included.
func (b *RedisBroker) Publish(ctx context.Context, e Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	return b.Redis.Publish(ctx, b.Channel, payload).Err()
}

// Listen forwards channel messages to hub until ctx is cancelled.
func (b *RedisBroker) Listen(ctx context.Context, hub Publisher) error {
	pubsub := b.Redis.Subscribe(ctx, b.Channel)
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe %s: %w", b.Channel, err)
	}

	log := logger.Default().WithField("channel", b.Channel)
	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			e, err := decodeEvent(msg.Payload)
			if err != nil {
				log.WithError(err).Warn("skipping malformed event")
				continue
			}
			if err := hub.Publish(ctx, e); err != nil {
				return nil
			}
		}
	}
}

// Close releases the Redis connection.
func (b *RedisBroker) Close() error {
	return b.Redis.Close()
}

func decodeEvent(payload string) (Event, error) {
	var e Event
	if err := json.Unmarshal([]byte(payload), &e); err != nil {
		return Event{}, err
	}
	if e.Type == "" {
		return Event{}, fmt.Errorf("event without type")
	}
	return e, nil
}
