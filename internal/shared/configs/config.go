package configs

import "time"

// Config holds all configuration for the application.
type Config struct {
	Server      ServerConfig      `mapstructure:"server" validate:"required"`
	Log         LogConfig         `mapstructure:"log" validate:"required"`
	FileStorage FileStorageConfig `mapstructure:"file_storage" validate:"required"`
	Store       StoreConfig       `mapstructure:"store" validate:"required"`
	Ingestion   IngestionConfig   `mapstructure:"ingestion" validate:"required"`
	Query       QueryConfig       `mapstructure:"query" validate:"required"`
	Stream      StreamConfig      `mapstructure:"stream" validate:"required"`
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port              int `mapstructure:"port" validate:"required,min=1,max=65535"`
	ReadHeaderTimeout int `mapstructure:"read_header_timeout" validate:"required,min=1"` // seconds
	ReadTimeout       int `mapstructure:"read_timeout" validate:"required,min=1"`        // seconds (headers+body)
	WriteTimeout      int `mapstructure:"write_timeout" validate:"required,min=1"`       // seconds (response)
	IdleTimeout       int `mapstructure:"idle_timeout" validate:"required,min=1"`        // seconds (keep-alive)
	MaxBodyBytes      int `mapstructure:"max_body_bytes" validate:"required,min=1"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required"`
}

// FileStorageConfig holds file storage configuration (dead letters).
type FileStorageConfig struct {
	RootDir string `mapstructure:"root_dir" validate:"required"`
}

// StoreConfig selects and tunes the counter store backend.
type StoreConfig struct {
	Driver   string         `mapstructure:"driver" validate:"required,oneof=memory postgres redis"`
	PageSize int            `mapstructure:"page_size" validate:"required,min=1,max=10000"`
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

// PostgresConfig holds the postgres counter store settings.
type PostgresConfig struct {
	DSN          string `mapstructure:"dsn"`
	MaxOpenConns int    `mapstructure:"max_open_conns" validate:"min=0"`
	MaxIdleConns int    `mapstructure:"max_idle_conns" validate:"min=0"`
	AutoMigrate  bool   `mapstructure:"auto_migrate"`
}

// RedisConfig holds the redis counter store settings.
type RedisConfig struct {
	Addr         string        `mapstructure:"addr"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db" validate:"min=0"`
	KeyPrefix    string        `mapstructure:"key_prefix"`
	PoolSize     int           `mapstructure:"pool_size" validate:"min=0"`
	MaxRetries   int           `mapstructure:"max_retries" validate:"min=-1"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// IngestionConfig holds batch-apply settings.
type IngestionConfig struct {
	WriteConcurrency int    `mapstructure:"write_concurrency" validate:"required,min=1"`
	RetryPolicy      string `mapstructure:"retry_policy" validate:"required,oneof=all_keys_failed any_key_failed"`
}

// QueryConfig holds query settings.
type QueryConfig struct {
	MaxDateRangeDays int `mapstructure:"max_date_range_days" validate:"required,min=1"`
}

// StreamConfig holds the in-process delivery queue settings.
type StreamConfig struct {
	Partitions    int           `mapstructure:"partitions" validate:"required,min=1"`
	Buffer        int           `mapstructure:"buffer" validate:"required,min=1"`
	BatchSize     int           `mapstructure:"batch_size" validate:"required,min=1"`
	FlushInterval time.Duration `mapstructure:"flush_interval" validate:"required"`
	MaxAttempts   int           `mapstructure:"max_attempts" validate:"required,min=1"`
}
