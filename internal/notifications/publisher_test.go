package notifications_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hedgemark/platform/internal/config"
	"github.com/hedgemark/platform/internal/notifications"
)

type fakeRedis struct {
	publishedChannel string
	publishedPayload []byte
	streamName       string
	streamValues     map[string]interface{}
}

func (f *fakeRedis) Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd {
	f.publishedChannel = channel
	f.publishedPayload = message.([]byte)
	return redis.NewIntResult(1, nil)
}

func (f *fakeRedis) XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd {
	f.streamName = a.Stream
	f.streamValues = a.Values.(map[string]interface{})
	return redis.NewStringResult("1-0", nil)
}

func TestPublishTrade(t *testing.T) {
	fake := &fakeRedis{}
	publisher := notifications.NewPublisher(fake, zap.NewNop())

	trade := notifications.TradeNotification{
		Direction:      "sell",
		Amount:         decimal.RequireFromString("1.5"),
		InstrumentName: "BTC-PERPETUAL",
		Price:          decimal.RequireFromString("63000"),
	}
	require.NoError(t, publisher.PublishTrade(context.Background(), trade))

	assert.Equal(t, config.ChannelAbnormalTradingNotices, fake.publishedChannel)

	var decoded notifications.TradeNotification
	require.NoError(t, json.Unmarshal(fake.publishedPayload, &decoded))
	assert.Equal(t, "sell", decoded.Direction)
	assert.True(t, trade.Price.Equal(decoded.Price))
}

func TestPublishAlertAppendsToErrorStream(t *testing.T) {
	fake := &fakeRedis{}
	publisher := notifications.NewPublisher(fake, zap.NewNop())

	alert := notifications.NewSystemAlert("analyzer", "anomaly_detected", "volume spike on BTC-PERPETUAL")
	require.NoError(t, publisher.PublishAlert(context.Background(), alert))

	assert.Equal(t, config.RedisStreamErrors, fake.streamName)
	require.Contains(t, fake.streamValues, "alert")

	var decoded notifications.SystemAlert
	require.NoError(t, json.Unmarshal(fake.streamValues["alert"].([]byte), &decoded))
	assert.Equal(t, notifications.SeverityCritical, decoded.Severity)
	assert.Equal(t, "analyzer", decoded.Component)
}
