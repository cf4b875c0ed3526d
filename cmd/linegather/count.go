package main

import (
	"io"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/jaredmtdev/linegather"
	"github.com/jaredmtdev/linegather/internal/report"
)

func countCmd(f *rootFlags) *cobra.Command {
	var progress bool

	cmd := &cobra.Command{
		Use:   "count FILE",
		Short: "Count the lines and characters of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, f)
			if err != nil {
				return err
			}
			var bar io.Writer
			if progress {
				bar = cmd.ErrOrStderr()
			}

			var chars int64
			summary, err := drain(s, "count", args[0], utf8.RuneCountInString, bar, func(b linegather.Batch[int]) {
				for _, n := range b.Samples {
					chars += int64(n)
				}
			})
			if err != nil {
				return err
			}
			summary.Chars = chars
			return report.Write(cmd.OutOrStdout(), s.cfg.ReportFormat(), summary)
		},
	}

	cmd.Flags().BoolVar(&progress, "progress", false, "Show a progress bar on stderr")

	return cmd
}
