package configs

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"usage-metrics/internal/shared/validators"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. USAGE_QUERY_MAX_DATE_RANGE_DAYS.
const EnvPrefix = "USAGE"

var defaults = map[string]any{
	"server.port":                   8080,
	"server.read_header_timeout":    5,
	"server.read_timeout":           10,
	"server.write_timeout":          10,
	"server.idle_timeout":           60,
	"server.max_body_bytes":         2 * 1024 * 1024,
	"log.level":                     "info",
	"file_storage.root_dir":         "./data",
	"store.driver":                  "memory",
	"store.page_size":               1000,
	"store.postgres.dsn":            "",
	"store.postgres.max_open_conns": 50,
	"store.postgres.max_idle_conns": 50,
	"store.postgres.auto_migrate":   true,
	"store.redis.addr":              "",
	"store.redis.password":          "",
	"store.redis.db":                0,
	"store.redis.key_prefix":        "usage:",
	"store.redis.pool_size":         50,
	"store.redis.max_retries":       3,
	"store.redis.dial_timeout":      "5s",
	"store.redis.read_timeout":      "3s",
	"store.redis.write_timeout":     "3s",
	"ingestion.write_concurrency":   300,
	"ingestion.retry_policy":        "all_keys_failed",
	"query.max_date_range_days":     1825,
	"stream.partitions":             8,
	"stream.buffer":                 1024,
	"stream.batch_size":             100,
	"stream.flush_interval":         200 * time.Millisecond,
	"stream.max_attempts":           5,
}

// LoadConfig reads configuration from file, applies defaults and environment
// overrides, and validates it.
var LoadConfig = func(configPath string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read from file
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", configPath, err)
	}

	// Unmarshal into Config
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate config
	validate := validators.New()
	if err := validate.Struct(&cfg); err != nil {
		var validationErrors []string
		var ve validators.ValidationErrors
		if errors.As(err, &ve) {
			for _, e := range ve {
				validationErrors = append(validationErrors, formatValidationError(e))
			}
		}
		return nil, fmt.Errorf("config validation failed: %s", strings.Join(validationErrors, ", "))
	}
	if err := validateStoreDriver(&cfg.Store); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// validateStoreDriver checks the settings the selected driver cannot start without.
func validateStoreDriver(store *StoreConfig) error {
	switch store.Driver {
	case "postgres":
		if strings.TrimSpace(store.Postgres.DSN) == "" {
			return errors.New("store.postgres.dsn (required for driver postgres)")
		}
	case "redis":
		if strings.TrimSpace(store.Redis.Addr) == "" {
			return errors.New("store.redis.addr (required for driver redis)")
		}
	}
	return nil
}

// formatValidationError formats a single validation error into a readable string.
func formatValidationError(e validators.FieldError) string {
	field := e.Field()
	tag := e.Tag()

	// "Config.Server.Port" -> "server.port"
	if e.StructNamespace() != "" {
		parts := strings.Split(e.StructNamespace(), ".")
		if len(parts) >= 2 {
			field = strings.ToLower(strings.Join(parts[1:], "."))
		}
	}

	var msg string
	switch tag {
	case "required":
		msg = fmt.Sprintf("%s (required)", field)
	case "min":
		msg = fmt.Sprintf("%s (min=%s)", field, e.Param())
	case "max":
		msg = fmt.Sprintf("%s (max=%s)", field, e.Param())
	case "oneof":
		msg = fmt.Sprintf("%s (oneof=%s)", field, e.Param())
	default:
		msg = fmt.Sprintf("%s (%s)", field, tag)
	}

	return msg
}
