package queue

import (
	"context"

	goRedis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Gateway publishes domain event facts to downstream consumers.
type Gateway interface {
	Publish(ctx context.Context, factID, eventName string, content []byte) error
}

// RedisGateway appends facts to a Redis stream. The fact id travels with the
// entry so consumers can deduplicate; the relay may deliver the same fact
// twice around a crash.
type RedisGateway struct {
	client *goRedis.Client
	stream string
	logger *zap.Logger
}

func NewRedisGateway(client *goRedis.Client, stream string, logger *zap.Logger) *RedisGateway {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisGateway{
		client: client,
		stream: stream,
		logger: logger,
	}
}

func (g *RedisGateway) Publish(ctx context.Context, factID, eventName string, content []byte) error {
	err := g.client.XAdd(ctx, &goRedis.XAddArgs{
		Stream: g.stream,
		Values: map[string]interface{}{
			"id":      factID,
			"type":    eventName,
			"payload": string(content),
		},
	}).Err()
	if err != nil {
		return err
	}
	g.logger.Debug("fact published",
		zap.String("fact_id", factID),
		zap.String("type", eventName),
		zap.String("stream", g.stream))
	return nil
}
