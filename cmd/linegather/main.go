// Package main is the entry point for the linegather CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jaredmtdev/linegather/internal/config"
	"github.com/jaredmtdev/linegather/internal/log"
)

// Version information set via ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// rootFlags - flags shared by every reading command.
type rootFlags struct {
	envFile   string
	workers   int
	poolSize  int
	batchSize int
	dynamic   bool
	format    string
	logLevel  string
	logFormat string
}

func rootCmd() *cobra.Command {
	f := &rootFlags{}
	cmd := &cobra.Command{
		Use:   "linegather",
		Short: "Process the lines of a large file in parallel",
		Long: `linegather splits a newline-delimited file into byte ranges, scans every
range on its own worker, and streams batches of processed lines back through
a bounded queue.

Configuration is loaded in the following order (later sources override earlier):
  1. Default values
  2. .env file (if --env-file specified or .env exists in current directory)
  3. Environment variables
  4. Command line flags

Environment variables:
  LINEGATHER_WORKERS           Number of workers, 0 for one per core (default: 0)
  LINEGATHER_POOL_SIZE         Batches buffered for the consumer (default: 1024)
  LINEGATHER_BATCH_SIZE        Lines per batch (default: 128)
  LINEGATHER_READ_BUFFER_SIZE  Read buffer per worker in bytes (default: 65536)
  LINEGATHER_DYNAMIC_CLAIMS    Claim ranges from a shared cursor (default: false)
  LINEGATHER_LOG_LEVEL         Log level: DEBUG, INFO, WARN, ERROR (default: INFO)
  LINEGATHER_LOG_FORMAT        Log format: pretty, json (default: pretty)
  LINEGATHER_REPORT_FORMAT     Report format: text, json, yaml (default: text)`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&f.envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	pf.IntVarP(&f.workers, "workers", "w", 0, "Number of workers, 0 for one per core")
	pf.IntVar(&f.poolSize, "pool-size", 0, "Batches buffered for the consumer (default: 1024)")
	pf.IntVar(&f.batchSize, "batch-size", 0, "Lines per batch (default: 128)")
	pf.BoolVar(&f.dynamic, "dynamic", false, "Claim ranges from a shared cursor")
	pf.StringVarP(&f.format, "format", "f", "", "Report format: text, json, yaml (default: text)")
	pf.StringVar(&f.logLevel, "log-level", "", "Log level: DEBUG, INFO, WARN, ERROR (default: INFO)")
	pf.StringVar(&f.logFormat, "log-format", "", "Log format: pretty, json (default: pretty)")

	cmd.AddCommand(countCmd(f))
	cmd.AddCommand(uniqCmd(f))
	cmd.AddCommand(rangesCmd(f))
	cmd.AddCommand(versionCmd())

	return cmd
}

// loadConfig loads configuration from .env file and environment variables,
// then applies the flags that were set explicitly.
func loadConfig(cmd *cobra.Command, f *rootFlags) (config.AppConfig, error) {
	cfg, err := config.LoadConfig(f.envFile)
	if err != nil {
		return config.AppConfig{}, fmt.Errorf("load config: %w", err)
	}

	flags := cmd.Flags()
	var opts []config.AppConfigOption
	if flags.Changed("workers") {
		opts = append(opts, config.WithWorkers(f.workers))
	}
	if flags.Changed("pool-size") {
		opts = append(opts, config.WithPoolSize(f.poolSize))
	}
	if flags.Changed("batch-size") {
		opts = append(opts, config.WithBatchSize(f.batchSize))
	}
	if flags.Changed("dynamic") {
		opts = append(opts, config.WithDynamicClaims(f.dynamic))
	}
	if flags.Changed("format") {
		format, err := config.ParseReportFormat(f.format)
		if err != nil {
			return config.AppConfig{}, err
		}
		opts = append(opts, config.WithReportFormat(format))
	}
	if flags.Changed("log-level") {
		opts = append(opts, config.WithLogLevel(f.logLevel))
	}
	if flags.Changed("log-format") {
		opts = append(opts, config.WithLogFormat(config.ParseLogFormat(f.logFormat)))
	}

	cfg = cfg.Apply(opts...)
	if err := cfg.Validate(); err != nil {
		return config.AppConfig{}, err
	}
	return cfg, nil
}

// session - configuration, logger and run-scoped context of one command.
type session struct {
	cfg    config.AppConfig
	logger *log.Logger
	ctx    context.Context
	runID  string
}

func newSession(cmd *cobra.Command, f *rootFlags) (*session, error) {
	cfg, err := loadConfig(cmd, f)
	if err != nil {
		return nil, err
	}
	runID := log.NewRunID()
	ctx := log.WithRunID(cmd.Context(), runID)
	logger := log.NewLogger(cmd.ErrOrStderr(), cfg).WithContext(ctx)
	return &session{
		cfg:    cfg,
		logger: logger,
		ctx:    ctx,
		runID:  runID,
	}, nil
}
