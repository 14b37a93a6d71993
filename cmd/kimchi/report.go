package main

import (
	"os"

	"github.com/wgalyen/kimchi/internal/domain"
	"github.com/wgalyen/kimchi/internal/report"
)

// printReport renders the final RunReport as human-readable text, or as
// JSON when KIMCHI_JSON_OUTPUT is set — a supplemented feature the
// distilled spec's CLI surface didn't call out explicitly but that any
// link checker meant for CI needs.
func printReport(r *domain.RunReport) {
	format := report.FormatText
	if os.Getenv("KIMCHI_JSON_OUTPUT") != "" {
		format = report.FormatJSON
	}
	_ = report.WriteReport(os.Stdout, r, format)
}
