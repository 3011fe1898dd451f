// Environment resolution: the first stage of the configuration pipeline.
package config

import (
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

const exchangeEnvPrefix = "exchanges__"

// RawEnv holds every declared environment variable with its default applied,
// plus the dynamically scanned per-exchange credential set. Resolution is
// total: every field has a default or is legitimately optional.
type RawEnv struct {
	ServiceName        string
	Environment        string
	StrategyConfigPath string

	RedisURL      string
	RedisDB       int
	RedisPassword string

	PostgresUser         string
	PostgresPassword     string
	PostgresPasswordFile string
	PostgresHost         string
	PostgresPort         int
	PostgresDB           string

	DeribitClientIDFile     string
	DeribitClientSecretFile string
	OCIDSNFile              string
	OCIWalletDir            string

	// Exchanges maps exchange name to the raw field bag collected from
	// EXCHANGES__<name>__<field> variables. Unknown field names are kept.
	Exchanges map[string]map[string]string
}

// ResolveEnv reads the process environment into a RawEnv. It never fails.
func ResolveEnv(logger *zap.Logger) RawEnv {
	raw := RawEnv{
		ServiceName:        envOrDefault("SERVICE_NAME", "unknown"),
		Environment:        envOrDefault("ENVIRONMENT", "development"),
		StrategyConfigPath: envOrDefault("STRATEGY_CONFIG_PATH", "/app/configs/strategies.toml"),

		RedisURL:      envOrDefault("REDIS_URL", "redis://localhost:6379"),
		RedisDB:       envIntOrDefault(logger, "REDIS_DB", 0),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		PostgresUser:         envOrDefault("POSTGRES_USER", "trading_app"),
		PostgresPassword:     os.Getenv("POSTGRES_PASSWORD"),
		PostgresPasswordFile: os.Getenv("POSTGRES_PASSWORD_FILE"),
		PostgresHost:         envOrDefault("POSTGRES_HOST", "postgres"),
		PostgresPort:         envIntOrDefault(logger, "POSTGRES_PORT", 5432),
		PostgresDB:           envOrDefault("POSTGRES_DB", "trading"),

		DeribitClientIDFile:     os.Getenv("DERIBIT_CLIENT_ID_FILE"),
		DeribitClientSecretFile: os.Getenv("DERIBIT_CLIENT_SECRET_FILE"),
		OCIDSNFile:              os.Getenv("OCI_DSN_FILE"),
		OCIWalletDir:            os.Getenv("OCI_WALLET_DIR"),
	}

	raw.Exchanges = scanExchangeEnv(os.Environ())
	applyDeribitSecretFiles(logger, &raw)

	return raw
}

// scanExchangeEnv collects EXCHANGES__<name>__<field> variables, grouped by
// exchange name. The prefix match is case-insensitive; keys with the wrong
// segment count are skipped.
func scanExchangeEnv(environ []string) map[string]map[string]string {
	exchanges := make(map[string]map[string]string)
	for _, entry := range environ {
		key, value, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		key = strings.ToLower(key)
		if !strings.HasPrefix(key, exchangeEnvPrefix) {
			continue
		}
		parts := strings.Split(key, "__")
		if len(parts) != 3 {
			continue
		}
		name, field := parts[1], parts[2]
		if name == "" || field == "" {
			continue
		}
		if exchanges[name] == nil {
			exchanges[name] = make(map[string]string)
		}
		exchanges[name][field] = value
	}
	return exchanges
}

// applyDeribitSecretFiles overrides the scanned Deribit credentials with their
// file-backed counterparts when those resolve to a value.
func applyDeribitSecretFiles(logger *zap.Logger, raw *RawEnv) {
	deribit, ok := raw.Exchanges[ExchangeDeribit]
	if !ok {
		return
	}
	if id := ReadSecret(logger, deribit["client_id"], raw.DeribitClientIDFile); id != "" {
		deribit["client_id"] = id
	}
	if secret := ReadSecret(logger, deribit["client_secret"], raw.DeribitClientSecretFile); secret != "" {
		deribit["client_secret"] = secret
	}
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envIntOrDefault(logger *zap.Logger, key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		logger.Warn("Ignoring non-integer environment value",
			zap.String("key", key), zap.String("value", value))
		return fallback
	}
	return n
}
