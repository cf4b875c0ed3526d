// Package report renders the summary of one linegather run.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"github.com/jaredmtdev/linegather"
	"github.com/jaredmtdev/linegather/internal/config"
)

// Summary - what one run read and how fast.
type Summary struct {
	Command   string  `json:"command" yaml:"command"`
	Path      string  `json:"path" yaml:"path"`
	RunID     string  `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	Workers   int     `json:"workers" yaml:"workers"`
	Size      int64   `json:"size" yaml:"size"`
	Lines     int64   `json:"lines" yaml:"lines"`
	Bytes     int64   `json:"bytes" yaml:"bytes"`
	Batches   int64   `json:"batches" yaml:"batches"`
	PeakQueue int     `json:"peak_queue" yaml:"peak_queue"`
	Distinct  int64   `json:"distinct,omitempty" yaml:"distinct,omitempty"`
	Chars     int64   `json:"chars,omitempty" yaml:"chars,omitempty"`
	Seconds   float64 `json:"seconds" yaml:"seconds"`

	// BytesPerSecond - 0 when the run took no measurable time.
	BytesPerSecond float64 `json:"bytes_per_second" yaml:"bytes_per_second"`
}

// NewSummary - builds a Summary from a finished stream's stats.
func NewSummary(command, path string, stats linegather.Stats, elapsed time.Duration) Summary {
	s := Summary{
		Command:   command,
		Path:      path,
		Workers:   stats.Workers,
		Size:      stats.Size,
		Lines:     stats.Lines,
		Bytes:     stats.Bytes,
		Batches:   stats.Batches,
		PeakQueue: stats.PeakQueue,
		Seconds:   elapsed.Seconds(),
	}
	if s.Seconds > 0 {
		s.BytesPerSecond = float64(s.Bytes) / s.Seconds
	}
	return s
}

// Write - renders s to w in the given format.
func Write(w io.Writer, format config.ReportFormat, s Summary) error {
	switch format {
	case config.ReportFormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	case config.ReportFormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return err
		}
		return enc.Close()
	case config.ReportFormatText:
		return writeText(w, s)
	default:
		return fmt.Errorf("%w: %q", config.ErrUnknownReportFormat, format)
	}
}

func writeText(w io.Writer, s Summary) error {
	rows := [][2]string{
		{"command", s.Command},
		{"path", s.Path},
	}
	if s.RunID != "" {
		rows = append(rows, [2]string{"run id", s.RunID})
	}
	rows = append(rows,
		[2]string{"size", humanize.Bytes(uint64(max(s.Size, 0)))},
		[2]string{"lines", humanize.Comma(s.Lines)},
	)
	if s.Distinct > 0 {
		rows = append(rows, [2]string{"distinct", humanize.Comma(s.Distinct)})
	}
	if s.Chars > 0 {
		rows = append(rows, [2]string{"chars", humanize.Comma(s.Chars)})
	}
	rows = append(rows,
		[2]string{"batches", humanize.Comma(s.Batches)},
		[2]string{"workers", humanize.Comma(int64(s.Workers))},
		[2]string{"peak queue", humanize.Comma(int64(s.PeakQueue))},
		[2]string{"elapsed", time.Duration(s.Seconds * float64(time.Second)).Round(time.Millisecond).String()},
	)
	if s.BytesPerSecond > 0 {
		rows = append(rows, [2]string{"throughput", humanize.Bytes(uint64(s.BytesPerSecond)) + "/s"})
	}
	for _, row := range rows {
		if _, err := fmt.Fprintf(w, "%-11s %s\n", row[0]+":", row[1]); err != nil {
			return err
		}
	}
	return nil
}
