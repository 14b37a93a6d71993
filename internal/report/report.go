// Package report renders a finished domain.RunReport to an io.Writer,
// either as human-readable text or as JSON for CI consumption.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/wgalyen/kimchi/internal/domain"
)

// Format selects how WriteReport renders a RunReport.
type Format int

const (
	FormatText Format = iota
	FormatJSON
)

// WriteReport renders report to w in the given format.
func WriteReport(w io.Writer, report *domain.RunReport, format Format) error {
	if format == FormatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	return writeText(w, report)
}

func writeText(w io.Writer, report *domain.RunReport) error {
	for _, resp := range report.PerLink {
		line := fmt.Sprintf("[%s] %s", resp.Status, resp.Uri.Raw)
		if resp.FinalURL != "" {
			line += fmt.Sprintf(" -> %s", resp.FinalURL)
		}
		if resp.Reason != "" {
			line += fmt.Sprintf(" (%s)", resp.Reason)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	for _, skipped := range report.SkippedInputs {
		if _, err := fmt.Fprintf(w, "[skipped] %s\n", skipped); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "\n%d total, %d ok, %d failed, %d excluded, %d timed out (%s)\n",
		report.Total, report.Ok, report.Failed, report.Excluded, report.Timeouts, report.Duration.Round(1e6))
	return err
}
