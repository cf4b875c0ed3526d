package config

import (
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is prepended to every variable name, e.g. LINEGATHER_WORKERS.
const EnvPrefix = "LINEGATHER"

// EnvConfig holds all environment-based configuration.
type EnvConfig struct {
	// Workers is the number of concurrent workers; 0 picks one per core.
	// Env: LINEGATHER_WORKERS (default: 0)
	Workers int `envconfig:"WORKERS" default:"0"`

	// PoolSize is the maximum number of batches waiting for the consumer.
	// Env: LINEGATHER_POOL_SIZE (default: 1024)
	PoolSize int `envconfig:"POOL_SIZE" default:"1024"`

	// BatchSize is the maximum number of samples per batch.
	// Env: LINEGATHER_BATCH_SIZE (default: 128)
	BatchSize int `envconfig:"BATCH_SIZE" default:"128"`

	// ReadBufferSize is each worker's read buffer in bytes.
	// Env: LINEGATHER_READ_BUFFER_SIZE (default: 65536)
	ReadBufferSize int `envconfig:"READ_BUFFER_SIZE" default:"65536"`

	// DynamicClaims makes workers claim ranges from a shared cursor.
	// Env: LINEGATHER_DYNAMIC_CLAIMS (default: false)
	DynamicClaims bool `envconfig:"DYNAMIC_CLAIMS" default:"false"`

	// LogLevel is the log verbosity level.
	// Env: LINEGATHER_LOG_LEVEL (default: INFO)
	LogLevel string `envconfig:"LOG_LEVEL" default:"INFO"`

	// LogFormat is the log output format (pretty or json).
	// Env: LINEGATHER_LOG_FORMAT (default: pretty)
	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`

	// ReportFormat is the summary format (text, json or yaml).
	// Env: LINEGATHER_REPORT_FORMAT (default: text)
	ReportFormat string `envconfig:"REPORT_FORMAT" default:"text"`
}

// LoadFromEnv loads configuration from LINEGATHER_ prefixed environment variables.
func LoadFromEnv() (EnvConfig, error) {
	var cfg EnvConfig
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return EnvConfig{}, err
	}
	return cfg, nil
}

// ToAppConfig converts EnvConfig to AppConfig.
func (e EnvConfig) ToAppConfig() (AppConfig, error) {
	cfg := NewAppConfigWithOptions(
		WithWorkers(e.Workers),
		WithDynamicClaims(e.DynamicClaims),
		WithLogFormat(ParseLogFormat(e.LogFormat)),
	)
	if e.PoolSize != 0 {
		cfg = cfg.Apply(WithPoolSize(e.PoolSize))
	}
	if e.BatchSize != 0 {
		cfg = cfg.Apply(WithBatchSize(e.BatchSize))
	}
	if e.ReadBufferSize != 0 {
		cfg = cfg.Apply(WithReadBufferSize(e.ReadBufferSize))
	}
	if e.LogLevel != "" {
		cfg = cfg.Apply(WithLogLevel(e.LogLevel))
	}
	if e.ReportFormat != "" {
		format, err := ParseReportFormat(e.ReportFormat)
		if err != nil {
			return AppConfig{}, err
		}
		cfg = cfg.Apply(WithReportFormat(format))
	}
	return cfg, nil
}
