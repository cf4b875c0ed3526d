package main

import (
	"io"

	"github.com/cespare/xxhash/v2"
	"github.com/spf13/cobra"

	"github.com/jaredmtdev/linegather"
	"github.com/jaredmtdev/linegather/internal/report"
)

func uniqCmd(f *rootFlags) *cobra.Command {
	var (
		progress bool
		trim     bool
	)

	cmd := &cobra.Command{
		Use:   "uniq FILE",
		Short: "Count the distinct lines of a file",
		Long: `Count the distinct lines of a file.

Lines are compared by their 64-bit xxhash, so two different lines with the
same hash are counted once.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, f)
			if err != nil {
				return err
			}
			var bar io.Writer
			if progress {
				bar = cmd.ErrOrStderr()
			}

			process := linegather.ProcessFunc[uint64](xxhash.Sum64String)
			if trim {
				process = linegather.TrimSpace[uint64]()(process)
			}

			seen := make(map[uint64]struct{})
			summary, err := drain(s, "uniq", args[0], process, bar, func(b linegather.Batch[uint64]) {
				for _, h := range b.Samples {
					seen[h] = struct{}{}
				}
			})
			if err != nil {
				return err
			}
			summary.Distinct = int64(len(seen))
			return report.Write(cmd.OutOrStdout(), s.cfg.ReportFormat(), summary)
		},
	}

	cmd.Flags().BoolVar(&progress, "progress", false, "Show a progress bar on stderr")
	cmd.Flags().BoolVar(&trim, "trim", false, "Ignore leading and trailing white space")

	return cmd
}
