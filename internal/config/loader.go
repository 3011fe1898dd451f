// Settings assembly: merges the resolved environment with the static strategy
// file, enforces service-specific requirements, validates, and derives.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/hedgemark/platform/pkg/models"
)

// Load runs the full configuration pipeline once and returns the validated
// settings aggregate. It either fully succeeds or fails; no partially
// populated settings object is ever exposed.
func Load(logger *zap.Logger) (*Settings, error) {
	logger = logger.Named("config")
	logger.Info("Loading application configuration")

	raw := ResolveEnv(logger)

	staticDoc, err := loadStaticConfig(logger, raw.StrategyConfigPath)
	if err != nil {
		return nil, err
	}

	candidate := buildCandidate(raw, staticDoc)

	if err := applyPostgresRequirement(logger, raw, candidate); err != nil {
		return nil, err
	}
	if err := applyOCIRequirement(logger, raw, candidate); err != nil {
		return nil, err
	}

	settings, err := decodeAndValidate(candidate)
	if err != nil {
		return nil, err
	}

	settings.applyDefaults()
	derive(logger, settings)

	logger.Info("Configuration loaded",
		zap.String("service", settings.ServiceName),
		zap.String("environment", settings.Environment))

	return settings, nil
}

// loadStaticConfig reads the strategy TOML file. A missing file is a warning,
// not an error: the system must remain startable without it.
func loadStaticConfig(logger *zap.Logger, path string) (map[string]any, error) {
	v := viper.New()
	v.SetConfigType("toml")
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.Is(err, fs.ErrNotExist) || errors.As(err, &notFound) {
			logger.Warn("Strategy config file not found, skipping", zap.String("path", path))
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("failed to parse strategy config %s: %w", path, err)
	}

	logger.Info("Loaded strategy config", zap.String("path", path))
	return v.AllSettings(), nil
}

// buildCandidate assembles the merged settings document: environment-derived
// base first, then every top-level key from the static document on top.
func buildCandidate(raw RawEnv, staticDoc map[string]any) map[string]any {
	exchanges := make(map[string]any, len(raw.Exchanges))
	for name, fields := range raw.Exchanges {
		bag := make(map[string]any, len(fields))
		for field, value := range fields {
			bag[field] = value
		}
		exchanges[name] = bag
	}

	candidate := map[string]any{
		"service_name":         raw.ServiceName,
		"environment":          raw.Environment,
		"strategy_config_path": raw.StrategyConfigPath,
		"exchanges":            exchanges,
		"redis": map[string]any{
			"url":      raw.RedisURL,
			"db":       raw.RedisDB,
			"password": raw.RedisPassword,
		},
	}

	for key, value := range staticDoc {
		candidate[key] = value
	}

	return candidate
}

// applyPostgresRequirement injects the postgres block for services that
// cannot start without persistence. The resolved password must be non-empty.
func applyPostgresRequirement(logger *zap.Logger, raw RawEnv, candidate map[string]any) error {
	if !serviceRequiresDatabase(raw.ServiceName) {
		return nil
	}

	password := ReadSecret(logger, raw.PostgresPassword, raw.PostgresPasswordFile)
	if password == "" {
		return &ConfigError{
			Kind:    KindRequiredCredential,
			Service: raw.ServiceName,
			Field:   "postgres.password",
			Err:     errors.New("postgres password could not be resolved"),
		}
	}

	candidate["postgres"] = map[string]any{
		"user":     raw.PostgresUser,
		"password": password,
		"host":     raw.PostgresHost,
		"port":     raw.PostgresPort,
		"db":       raw.PostgresDB,
	}
	return nil
}

// applyOCIRequirement injects the OCI block for the sentinel service. Both
// the DSN and the wallet directory are mandatory there.
func applyOCIRequirement(logger *zap.Logger, raw RawEnv, candidate map[string]any) error {
	if raw.ServiceName != sentinelService {
		return nil
	}

	dsn := ReadSecret(logger, "", raw.OCIDSNFile)
	if dsn == "" || raw.OCIWalletDir == "" {
		return &ConfigError{
			Kind:    KindRequiredCredential,
			Service: raw.ServiceName,
			Field:   "oci",
			Err:     errors.New("OCI_DSN_FILE and OCI_WALLET_DIR must both resolve"),
		}
	}

	logger.Info("Loading OCI database configuration", zap.String("service", raw.ServiceName))
	candidate["oci"] = map[string]any{
		"dsn":        normalizeTNSAlias(dsn),
		"wallet_dir": raw.OCIWalletDir,
	}
	return nil
}

// decodeAndValidate unmarshals the merged candidate document and checks it
// against the settings schema.
func decodeAndValidate(candidate map[string]any) (*Settings, error) {
	v := viper.New()
	if err := v.MergeConfigMap(candidate); err != nil {
		return nil, fmt.Errorf("failed to merge settings document: %w", err)
	}

	var settings Settings
	weaklyTyped := func(dc *mapstructure.DecoderConfig) { dc.WeaklyTypedInput = true }
	if err := v.Unmarshal(&settings, viper.DecoderConfigOption(weaklyTyped)); err != nil {
		return nil, &ConfigError{Kind: KindSchemaValidation, Err: err}
	}

	if err := validator.New().Struct(&settings); err != nil {
		var invalid validator.ValidationErrors
		if errors.As(err, &invalid) && len(invalid) > 0 {
			return nil, &ConfigError{
				Kind:  KindSchemaValidation,
				Field: invalid[0].Namespace(),
				Err:   err,
			}
		}
		return nil, &ConfigError{Kind: KindSchemaValidation, Err: err}
	}

	return &settings, nil
}

// derive computes the derived fields in a fixed order: hedged currencies,
// strategy map, then market map hydration.
func derive(logger *zap.Logger, s *Settings) {
	union := make([]string, 0)
	seen := make(map[string]struct{})
	for _, item := range s.Tradable {
		for _, entry := range anySlice(item["spot"]) {
			currency, ok := entry.(string)
			if !ok {
				continue
			}
			if _, dup := seen[currency]; dup {
				continue
			}
			seen[currency] = struct{}{}
			union = append(union, currency)
		}
	}
	sort.Strings(union)
	s.HedgedCurrencies = union

	s.StrategyMap = make(map[string]map[string]any, len(s.Strategies))
	for _, strategy := range s.Strategies {
		label, _ := strategy["strategy_label"].(string)
		if label == "" {
			continue
		}
		s.StrategyMap[label] = strategy
	}
	if len(s.StrategyMap) > 0 {
		logger.Info("Built strategy map", zap.Int("labels", len(s.StrategyMap)))
	}

	s.MarketMap = make(map[string]models.MarketDefinition, len(s.MarketDefinitions))
	for _, md := range s.MarketDefinitions {
		exchange, ok := s.Exchanges[md.Exchange]
		if !ok {
			logger.Warn("Market references exchange with no connection details, skipping",
				zap.String("market_id", md.MarketID), zap.String("exchange", md.Exchange))
			continue
		}
		md.WSBaseURL = exchange.WSURL
		md.RESTBaseURL = exchange.RESTURL
		s.MarketMap[md.MarketID] = md
	}
	if len(s.MarketMap) > 0 {
		logger.Info("Built and hydrated market map", zap.Int("markets", len(s.MarketMap)))
	}
}

func anySlice(value any) []any {
	switch v := value.(type) {
	case []any:
		return v
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out
	default:
		return nil
	}
}
