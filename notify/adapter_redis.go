package notify

import (
	"context"

	"github.com/go-redis/redis/v8"

	"github.com/finwire-go/fwf/logger"
	"github.com/finwire-go/fwf/retry"
)

// RedisNotifier publishes notification events over Redis pub/sub. The web
// tier's socket servers subscribe to the channel and forward events to
// connected clients.
type RedisNotifier struct {
	emitter
	client  *redis.Client
	channel string
}

// NewRedis creates a RedisNotifier publishing to the given pub/sub channel.
// Publish failures are retried per strat, then logged and dropped.
func NewRedis(addr, password string, db int, channel string, log logger.Logger, strat retry.Strategy) *RedisNotifier {
	if log == nil {
		log = logger.Default()
	}
	n := &RedisNotifier{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
		channel: channel,
	}
	n.emitter = emitter{
		publish: n.send,
		strat:   strat,
		log:     log,
		backend: RedisBackend,
	}
	return n
}

func (n *RedisNotifier) send(ctx context.Context, _ string, body []byte) error {
	return n.client.Publish(ctx, n.channel, body).Err()
}

// Close closes the underlying Redis client.
func (n *RedisNotifier) Close() error {
	return n.client.Close()
}
