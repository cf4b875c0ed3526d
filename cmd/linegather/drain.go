package main

import (
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v2"

	"github.com/jaredmtdev/linegather"
	"github.com/jaredmtdev/linegather/internal/report"
)

// drain - reads path with process, hands every batch to each, and
// summarises the run.
func drain[T any](s *session, command, path string, process linegather.ProcessFunc[T], progress io.Writer, each func(linegather.Batch[T])) (report.Summary, error) {
	start := time.Now()
	stream, err := linegather.Read(s.ctx, path, process, s.cfg.ReadOptions(s.logger.Slog())...)
	if err != nil {
		return report.Summary{}, fmt.Errorf("read %s: %w", path, err)
	}
	defer stream.Close()
	if stream.Size() == 0 {
		s.logger.Warn("file is empty", "path", path)
	}

	var bar *progressbar.ProgressBar
	if progress != nil && stream.Size() > 0 {
		bar = progressbar.NewOptions(int(stream.Size()),
			progressbar.OptionSetWriter(progress),
			progressbar.OptionSetBytes(int(stream.Size())),
			progressbar.OptionSetDescription(command),
		)
	}

	for b := range stream.Batches() {
		each(b)
		if bar != nil {
			_ = bar.Add(int(b.Bytes))
		}
	}
	if err := stream.Err(); err != nil {
		return report.Summary{}, fmt.Errorf("read %s: %w", path, err)
	}
	if bar != nil {
		_ = bar.Finish()
		fmt.Fprintln(progress)
	}

	summary := report.NewSummary(command, path, stream.Stats(), time.Since(start))
	summary.RunID = s.runID
	s.logger.Info("read finished", "command", command, "lines", summary.Lines, "batches", summary.Batches)
	return summary, nil
}
