// Package config provides linegather's runtime configuration.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jaredmtdev/linegather"
)

// LogFormat represents the log output format.
type LogFormat string

// LogFormat values.
const (
	LogFormatPretty LogFormat = "pretty"
	LogFormatJSON   LogFormat = "json"
)

// ReportFormat represents how a run summary is rendered.
type ReportFormat string

// ReportFormat values.
const (
	ReportFormatText ReportFormat = "text"
	ReportFormatJSON ReportFormat = "json"
	ReportFormatYAML ReportFormat = "yaml"
)

// Default values. The struct tag defaults in env.go must match these.
const (
	DefaultWorkers        = 0
	DefaultPoolSize       = linegather.DefaultPoolSize
	DefaultBatchSize      = linegather.DefaultBatchSize
	DefaultReadBufferSize = linegather.DefaultReadBufferSize
	DefaultLogLevel       = "INFO"
	DefaultLogFormat      = LogFormatPretty
	DefaultReportFormat   = ReportFormatText
)

// ErrUnknownReportFormat is returned for a report format other than text, json or yaml.
var ErrUnknownReportFormat = errors.New("unknown report format")

// ParseReportFormat converts a string to a ReportFormat.
func ParseReportFormat(s string) (ReportFormat, error) {
	switch f := ReportFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case ReportFormatText, ReportFormatJSON, ReportFormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownReportFormat, s)
	}
}

// ParseLogFormat converts a string to a LogFormat, falling back to pretty.
func ParseLogFormat(s string) LogFormat {
	if strings.EqualFold(strings.TrimSpace(s), string(LogFormatJSON)) {
		return LogFormatJSON
	}
	return LogFormatPretty
}

// AppConfig holds the settings of one linegather invocation.
// It is immutable; use Apply to derive a modified copy.
type AppConfig struct {
	workers        int
	poolSize       int
	batchSize      int
	readBufferSize int
	dynamicClaims  bool
	logLevel       string
	logFormat      LogFormat
	reportFormat   ReportFormat
}

// NewAppConfig creates an AppConfig with default values.
func NewAppConfig() AppConfig {
	return AppConfig{
		workers:        DefaultWorkers,
		poolSize:       DefaultPoolSize,
		batchSize:      DefaultBatchSize,
		readBufferSize: DefaultReadBufferSize,
		logLevel:       DefaultLogLevel,
		logFormat:      DefaultLogFormat,
		reportFormat:   DefaultReportFormat,
	}
}

// NewAppConfigWithOptions creates an AppConfig with the given options applied to the defaults.
func NewAppConfigWithOptions(opts ...AppConfigOption) AppConfig {
	return NewAppConfig().Apply(opts...)
}

// Apply returns a copy of c with opts applied.
func (c AppConfig) Apply(opts ...AppConfigOption) AppConfig {
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Workers returns the worker count, resolving 0 to linegather.DefaultWorkers.
func (c AppConfig) Workers() int {
	if c.workers == 0 {
		return linegather.DefaultWorkers()
	}
	return c.workers
}

// PoolSize returns the queue capacity in batches.
func (c AppConfig) PoolSize() int { return c.poolSize }

// BatchSize returns the maximum samples per batch.
func (c AppConfig) BatchSize() int { return c.batchSize }

// ReadBufferSize returns the per-worker read buffer size in bytes.
func (c AppConfig) ReadBufferSize() int { return c.readBufferSize }

// DynamicClaims reports whether workers claim ranges from a shared cursor.
func (c AppConfig) DynamicClaims() bool { return c.dynamicClaims }

// LogLevel returns the log level.
func (c AppConfig) LogLevel() string { return c.logLevel }

// LogFormat returns the log format.
func (c AppConfig) LogFormat() LogFormat { return c.logFormat }

// ReportFormat returns the report format.
func (c AppConfig) ReportFormat() ReportFormat { return c.reportFormat }

// Validate checks the settings that linegather.Read does not check itself.
func (c AppConfig) Validate() error {
	if c.workers < 0 {
		return fmt.Errorf("%w. workers: %v", linegather.ErrInvalidWorkers, c.workers)
	}
	if _, err := ParseReportFormat(string(c.reportFormat)); err != nil {
		return err
	}
	return nil
}

// ReadOptions translates the configuration into options for linegather.Read.
func (c AppConfig) ReadOptions(logger *slog.Logger) []linegather.Opt {
	opts := []linegather.Opt{
		linegather.WithWorkers(c.Workers()),
		linegather.WithPoolSize(c.poolSize),
		linegather.WithBatchSize(c.batchSize),
		linegather.WithReadBufferSize(c.readBufferSize),
		linegather.WithLogger(logger),
	}
	if c.dynamicClaims {
		opts = append(opts, linegather.WithDynamicClaims())
	}
	return opts
}

// AppConfigOption is a functional option for AppConfig.
type AppConfigOption func(*AppConfig)

// WithWorkers sets the worker count. 0 selects linegather.DefaultWorkers.
func WithWorkers(n int) AppConfigOption {
	return func(c *AppConfig) { c.workers = n }
}

// WithPoolSize sets the queue capacity.
func WithPoolSize(n int) AppConfigOption {
	return func(c *AppConfig) { c.poolSize = n }
}

// WithBatchSize sets the batch size.
func WithBatchSize(n int) AppConfigOption {
	return func(c *AppConfig) { c.batchSize = n }
}

// WithReadBufferSize sets the per-worker read buffer size.
func WithReadBufferSize(n int) AppConfigOption {
	return func(c *AppConfig) { c.readBufferSize = n }
}

// WithDynamicClaims enables cursor based range claims.
func WithDynamicClaims(enabled bool) AppConfigOption {
	return func(c *AppConfig) { c.dynamicClaims = enabled }
}

// WithLogLevel sets the log level.
func WithLogLevel(level string) AppConfigOption {
	return func(c *AppConfig) { c.logLevel = level }
}

// WithLogFormat sets the log format.
func WithLogFormat(format LogFormat) AppConfigOption {
	return func(c *AppConfig) { c.logFormat = format }
}

// WithReportFormat sets the report format.
func WithReportFormat(format ReportFormat) AppConfigOption {
	return func(c *AppConfig) { c.reportFormat = format }
}
