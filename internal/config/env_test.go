package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/hedgemark/platform/internal/config"
)

// clearPlatformEnv blanks every declared variable so tests see defaults
// regardless of the host environment.
func clearPlatformEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SERVICE_NAME", "ENVIRONMENT", "STRATEGY_CONFIG_PATH",
		"REDIS_URL", "REDIS_DB", "REDIS_PASSWORD",
		"POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_PASSWORD_FILE",
		"POSTGRES_HOST", "POSTGRES_PORT", "POSTGRES_DB",
		"DERIBIT_CLIENT_ID_FILE", "DERIBIT_CLIENT_SECRET_FILE",
		"OCI_DSN_FILE", "OCI_WALLET_DIR",
	} {
		t.Setenv(key, "")
	}
}

func TestResolveEnvDefaults(t *testing.T) {
	clearPlatformEnv(t)

	raw := config.ResolveEnv(zap.NewNop())

	assert.Equal(t, "unknown", raw.ServiceName)
	assert.Equal(t, "development", raw.Environment)
	assert.Equal(t, "redis://localhost:6379", raw.RedisURL)
	assert.Equal(t, 0, raw.RedisDB)
	assert.Equal(t, "trading_app", raw.PostgresUser)
	assert.Equal(t, "postgres", raw.PostgresHost)
	assert.Equal(t, 5432, raw.PostgresPort)
	assert.Equal(t, "trading", raw.PostgresDB)
}

func TestResolveEnvNonIntegerFallsBackToDefault(t *testing.T) {
	clearPlatformEnv(t)
	t.Setenv("REDIS_DB", "not-a-number")
	t.Setenv("POSTGRES_PORT", "6543")

	raw := config.ResolveEnv(zap.NewNop())

	assert.Equal(t, 0, raw.RedisDB)
	assert.Equal(t, 6543, raw.PostgresPort)
}

func TestResolveEnvScansExchangeNamespace(t *testing.T) {
	clearPlatformEnv(t)
	t.Setenv("EXCHANGES__DERIBIT__ACCOUNT_ID", "deribit-148510")
	t.Setenv("EXCHANGES__BYBIT__WS_URL", "wss://stream.bybit.com")
	t.Setenv("EXCHANGES__BYBIT__CUSTOM_FIELD", "kept")
	// Wrong segment count: skipped.
	t.Setenv("EXCHANGES__MALFORMED", "x")
	t.Setenv("EXCHANGES__A__B__C", "x")

	raw := config.ResolveEnv(zap.NewNop())

	assert.Equal(t, "deribit-148510", raw.Exchanges["deribit"]["account_id"])
	assert.Equal(t, "wss://stream.bybit.com", raw.Exchanges["bybit"]["ws_url"])
	assert.Equal(t, "kept", raw.Exchanges["bybit"]["custom_field"])
	assert.NotContains(t, raw.Exchanges, "malformed")
	assert.NotContains(t, raw.Exchanges, "a")
	assert.Len(t, raw.Exchanges, 2)
}

func TestResolveEnvDeribitSecretFilesWin(t *testing.T) {
	clearPlatformEnv(t)
	t.Setenv("EXCHANGES__DERIBIT__CLIENT_ID", "inline-id")
	t.Setenv("EXCHANGES__DERIBIT__CLIENT_SECRET", "inline-secret")
	t.Setenv("DERIBIT_CLIENT_ID_FILE", writeSecretFile(t, "file-id\n"))

	raw := config.ResolveEnv(zap.NewNop())

	assert.Equal(t, "file-id", raw.Exchanges["deribit"]["client_id"])
	assert.Equal(t, "inline-secret", raw.Exchanges["deribit"]["client_secret"])
}
