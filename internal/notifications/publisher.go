package notifications

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/hedgemark/platform/internal/config"
)

// RedisClient is the slice of go-redis the publisher needs. Satisfied by
// *redis.Client and redis.UniversalClient.
type RedisClient interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

// Publisher routes structured notifications to the platform Redis channels.
type Publisher struct {
	rdb    RedisClient
	logger *zap.Logger
}

// NewPublisher creates a notification publisher over the given Redis client.
func NewPublisher(rdb RedisClient, logger *zap.Logger) *Publisher {
	return &Publisher{
		rdb:    rdb,
		logger: logger.Named("notifications"),
	}
}

// PublishTrade publishes a trade notification on the abnormal-trading
// notices channel.
func (p *Publisher) PublishTrade(ctx context.Context, n TradeNotification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to marshal trade notification: %w", err)
	}

	if err := p.rdb.Publish(ctx, config.ChannelAbnormalTradingNotices, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish trade notification: %w", err)
	}

	p.logger.Debug("Published trade notification",
		zap.String("instrument", n.InstrumentName),
		zap.String("direction", n.Direction))
	return nil
}

// PublishAlert appends a system alert to the errors stream. Disabled routing
// drops the alert after a log trace.
func (p *Publisher) PublishAlert(ctx context.Context, alert SystemAlert) error {
	if !config.ErrorRedisEnabled {
		p.logger.Warn("Redis error routing disabled, dropping alert",
			zap.String("component", alert.Component),
			zap.String("event", alert.Event))
		return nil
	}

	payload, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("failed to marshal system alert: %w", err)
	}

	err = p.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: config.RedisStreamErrors,
		Values: map[string]interface{}{"alert": payload},
	}).Err()
	if err != nil {
		return fmt.Errorf("failed to append system alert: %w", err)
	}

	p.logger.Info("Published system alert",
		zap.String("component", alert.Component),
		zap.String("event", alert.Event),
		zap.String("severity", alert.Severity))
	return nil
}
