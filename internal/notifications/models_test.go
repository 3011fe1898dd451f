package notifications_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hedgemark/platform/internal/notifications"
)

func TestNewSystemAlertDefaultsToCritical(t *testing.T) {
	alert := notifications.NewSystemAlert("receiver", "ws_disconnect", "upstream closed connection")

	assert.Equal(t, notifications.SeverityCritical, alert.Severity)
	assert.Equal(t, "receiver", alert.Component)
	assert.Equal(t, "ws_disconnect", alert.Event)
}

func TestTradeNotificationRoundTrip(t *testing.T) {
	original := notifications.TradeNotification{
		Direction:      "buy",
		Amount:         decimal.RequireFromString("0.25"),
		InstrumentName: "BTC-PERPETUAL",
		Price:          decimal.RequireFromString("64250.5"),
	}

	payload, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded notifications.TradeNotification
	require.NoError(t, json.Unmarshal(payload, &decoded))

	assert.Equal(t, original.Direction, decoded.Direction)
	assert.Equal(t, original.InstrumentName, decoded.InstrumentName)
	assert.True(t, original.Amount.Equal(decoded.Amount))
	assert.True(t, original.Price.Equal(decoded.Price))
}
