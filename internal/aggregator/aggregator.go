// Package aggregator accumulates per-Uri Responses (and skipped-input
// warnings) into the final domain.RunReport, per spec §4.7.
package aggregator

import (
	"time"

	"github.com/wgalyen/kimchi/internal/domain"
)

// Aggregator accumulates Responses in the order they are added,
// matching spec §5's "report order follows document order" rule: the
// Resolver/Extractor/Canonicalizer pipeline already hands the Checker
// Uris in document order, and CheckAll preserves that order, so a
// straight append here is enough.
type Aggregator struct {
	start         time.Time
	responses     []domain.Response
	skippedInputs []string
}

// New builds an Aggregator, starting its duration clock immediately.
func New() *Aggregator {
	return &Aggregator{start: time.Now()}
}

// AddSkippedInput records a warning for an input the Resolver skipped
// under skip_missing_inputs.
func (a *Aggregator) AddSkippedInput(warning string) {
	a.skippedInputs = append(a.skippedInputs, warning)
}

// AddResponses appends a batch of Responses, preserving their order.
func (a *Aggregator) AddResponses(responses []domain.Response) {
	a.responses = append(a.responses, responses...)
}

// Build produces the final RunReport. now is the wall-clock time the
// run ended; passed in rather than captured internally so callers
// control the clock.
func (a *Aggregator) Build(now time.Time) *domain.RunReport {
	report := &domain.RunReport{
		PerLink:       a.responses,
		SkippedInputs: a.skippedInputs,
		Duration:      now.Sub(a.start),
	}
	report.Total = len(a.responses)
	for _, r := range a.responses {
		switch r.Status {
		case domain.StatusOk:
			report.Ok++
		case domain.StatusFailed:
			report.Failed++
		case domain.StatusExcluded:
			report.Excluded++
		case domain.StatusRedirected:
			report.Redirected++
		case domain.StatusTimeout:
			report.Timeouts++
		}
	}
	return report
}
