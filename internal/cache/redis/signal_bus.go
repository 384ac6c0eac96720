package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// channelPrefix namespaces the derived-view channels on a shared Redis.
const channelPrefix = "marketdesk:"

// SignalBus republishes derived-view events over Redis Pub/Sub so consumers
// outside this process (dashboards, recorders) can follow the same views the
// local UI sees. It implements domain.Publisher. Consumption is left to
// those external processes; this side only publishes.
type SignalBus struct {
	rdb *redis.Client
}

// NewSignalBus creates a SignalBus backed by the given Client.
func NewSignalBus(c *Client) *SignalBus {
	return &SignalBus{rdb: c.rdb}
}

// Publish sends a raw payload to a namespaced Pub/Sub channel.
func (sb *SignalBus) Publish(ctx context.Context, channel string, payload []byte) error {
	if err := sb.rdb.Publish(ctx, channelPrefix+channel, payload).Err(); err != nil {
		return fmt.Errorf("redis: publish %s: %w", channel, err)
	}
	return nil
}
