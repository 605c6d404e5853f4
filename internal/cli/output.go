package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
	"github.com/okian/pitchlog/internal/domain/analytics"
	"github.com/okian/pitchlog/internal/replay"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatHidden  OutputFormat = "hidden"
	FormatJSON    OutputFormat = "json"
	FormatHTML    OutputFormat = "html"
	FormatSummary OutputFormat = "summary"
)

// Valid reports whether f is a known format.
func (f OutputFormat) Valid() bool {
	switch f {
	case FormatHidden, FormatJSON, FormatHTML, FormatSummary:
		return true
	}
	return false
}

// WriteOutput writes the report in the specified format
func WriteOutput(w io.Writer, report *replay.Report, format OutputFormat) error {
	switch format {
	case FormatHidden:
		_, err := fmt.Fprintln(w, report.Hidden)
		return err
	case FormatJSON:
		return writeJSON(w, report)
	case FormatHTML:
		_, err := fmt.Fprintln(w, report.HTML)
		return err
	case FormatSummary:
		return writeSummary(w, report)
	default:
		return errors.Wrapf(ErrInvalidFormat, "%q", format)
	}
}

func writeJSON(w io.Writer, report *replay.Report) error {
	data, err := sonic.ConfigDefault.MarshalIndent(report, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding report")
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// writeSummary prints the event rows, the rejections and the per-direction
// breakdowns as plain text.
func writeSummary(w io.Writer, report *replay.Report) error {
	fmt.Fprintf(w, "Session %s (%s): %d events\n", report.SessionID, report.Variant, report.Summary.Total)
	for i, row := range report.Rows {
		fmt.Fprintf(w, "  %d. %s\n", i+1, row)
	}
	if len(report.Rejections) > 0 {
		fmt.Fprintf(w, "Rejected steps: %d\n", len(report.Rejections))
		for _, r := range report.Rejections {
			fmt.Fprintf(w, "  step %d %s: %s\n", r.Step, r.Action, r.Message)
		}
	}
	writeBreakdown(w, "for", report.Summary.For)
	writeBreakdown(w, "against", report.Summary.Against)
	return nil
}

func writeBreakdown(w io.Writer, direction string, b analytics.Breakdown) {
	if b.Count == 0 {
		return
	}
	fmt.Fprintf(w, "%s: %d\n", direction, b.Count)
	writeCounts(w, "play types", b.PlayTypes, b.PlayTypePct)
	writeCounts(w, "minutes", b.MinuteBands, b.MinuteBandPct)
	writeCounts(w, "zones", b.Zones, b.ZonePct)
}

func writeCounts(w io.Writer, title string, counts map[string]int, pct map[string]float64) {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fmt.Fprintf(w, "  %s:\n", title)
	for _, k := range keys {
		fmt.Fprintf(w, "    %-22s %3d  %5.1f%%\n", k, counts[k], pct[k])
	}
}
