package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jaredmtdev/linegather"
	"github.com/jaredmtdev/linegather/internal/config"
)

// rangeRow - one worker's nominal byte range.
type rangeRow struct {
	Worker int   `json:"worker" yaml:"worker"`
	Start  int64 `json:"start" yaml:"start"`
	End    int64 `json:"end" yaml:"end"`
}

func rangesCmd(f *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "ranges FILE",
		Short: "Print the byte ranges a file is split into",
		Long: `Print the byte ranges a file is split into, one per worker.

Ranges are nominal: a worker skips the line its range starts in the middle of
and finishes the last line it starts, even past the end of its range.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			info, err := os.Stat(args[0])
			if err != nil {
				return err
			}
			ranges, err := linegather.Partition(info.Size(), cfg.Workers())
			if err != nil {
				return err
			}
			rows := make([]rangeRow, len(ranges))
			for i, r := range ranges {
				rows[i] = rangeRow{Worker: i, Start: r.Start, End: r.End}
			}
			return writeRanges(cmd.OutOrStdout(), cfg.ReportFormat(), rows)
		},
	}
}

func writeRanges(w io.Writer, format config.ReportFormat, rows []rangeRow) error {
	switch format {
	case config.ReportFormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	case config.ReportFormatYAML:
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(rows); err != nil {
			return err
		}
		return enc.Close()
	default:
		for _, r := range rows {
			rng := linegather.FileRange{Start: r.Start, End: r.End}
			if _, err := fmt.Fprintf(w, "%4d %s %s\n", r.Worker, rng, humanize.Bytes(uint64(rng.Len()))); err != nil {
				return err
			}
		}
		return nil
	}
}
