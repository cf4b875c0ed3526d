package config

import (
	"log/slog"
	"testing"

	"github.com/jaredmtdev/linegather"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAppConfig_Defaults(t *testing.T) {
	cfg := NewAppConfig()

	assert.Equal(t, linegather.DefaultWorkers(), cfg.Workers())
	assert.Equal(t, linegather.DefaultPoolSize, cfg.PoolSize())
	assert.Equal(t, linegather.DefaultBatchSize, cfg.BatchSize())
	assert.Equal(t, linegather.DefaultReadBufferSize, cfg.ReadBufferSize())
	assert.False(t, cfg.DynamicClaims())
	assert.Equal(t, "INFO", cfg.LogLevel())
	assert.Equal(t, LogFormatPretty, cfg.LogFormat())
	assert.Equal(t, ReportFormatText, cfg.ReportFormat())
	assert.NoError(t, cfg.Validate())
}

func TestAppConfig_ApplyLeavesOriginal(t *testing.T) {
	base := NewAppConfig()
	derived := base.Apply(WithBatchSize(3), WithWorkers(2))

	assert.Equal(t, 3, derived.BatchSize())
	assert.Equal(t, 2, derived.Workers())
	assert.Equal(t, linegather.DefaultBatchSize, base.BatchSize())
}

func TestAppConfig_Validate(t *testing.T) {
	tests := []struct {
		name string
		opts []AppConfigOption
		err  error
	}{
		{name: "defaults"},
		{name: "negative workers", opts: []AppConfigOption{WithWorkers(-1)}, err: linegather.ErrInvalidWorkers},
		{name: "bad report format", opts: []AppConfigOption{WithReportFormat("xml")}, err: ErrUnknownReportFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewAppConfigWithOptions(tt.opts...).Validate()
			if tt.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestParseReportFormat(t *testing.T) {
	for in, want := range map[string]ReportFormat{
		"text":  ReportFormatText,
		"JSON":  ReportFormatJSON,
		" yaml": ReportFormatYAML,
	} {
		got, err := ParseReportFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseReportFormat("csv")
	assert.ErrorIs(t, err, ErrUnknownReportFormat)
}

func TestAppConfig_ReadOptionsAcceptedByRead(t *testing.T) {
	cfg := NewAppConfigWithOptions(WithWorkers(3), WithPoolSize(2), WithBatchSize(5), WithDynamicClaims(true))
	opts := cfg.ReadOptions(slog.New(slog.DiscardHandler))
	assert.Len(t, opts, 6)

	path := t.TempDir() + "/in.txt"
	require.NoError(t, writeLines(path, 20))
	s, err := linegather.Read(t.Context(), path, linegather.Raw, opts...)
	require.NoError(t, err)

	var lines int
	for b := range s.Batches() {
		assert.LessOrEqual(t, b.Len(), 5)
		lines += b.Len()
	}
	require.NoError(t, s.Err())
	assert.Equal(t, 20, lines)
	assert.Equal(t, 3, s.Stats().Workers)
}
