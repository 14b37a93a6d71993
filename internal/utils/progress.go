package utils

import "github.com/schollz/progressbar/v3"

// Standard progress bar descriptions
const (
	DescChecking  = "Checking"
	DescExtracting = "Extracting"
	DescResolving = "Resolving"
)

// NewProgressBar creates a consistently styled progress bar.
//
// Parameters:
//   - total: Total number of items. Use -1 for unknown totals (indeterminate/spinner mode).
//   - description: Text description to show before the progress bar (e.g., DescChecking, DescExtracting).
//
// Behavior:
//   - For unknown totals (total < 0): Uses spinner type 14 with blank state rendering.
//   - For known totals (total >= 0): Shows count and iterations/second (its).
//   - All progress bars show count.
//
// Example:
//
//	bar := utils.NewProgressBar(len(items), utils.DescChecking)
//	defer bar.Finish()
//
//	for _, item := range items {
//	    // Process item
//	    bar.Add(1)
//	}
func NewProgressBar(total int, description string) *progressbar.ProgressBar {
	// Build common options
	opts := []progressbar.Option{
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowCount(),
	}

	// Add options based on whether total is known
	if total < 0 {
		// Unknown total: use spinner mode
		opts = append(opts,
			progressbar.OptionSpinnerType(14),
			progressbar.OptionSetRenderBlankState(true),
		)
	} else {
		// Known total: show iterations/second
		opts = append(opts,
			progressbar.OptionShowIts(),
		)
	}

	return progressbar.NewOptions(total, opts...)
}

// BarReporter adapts NewProgressBar to the Checker's ProgressReporter
// capability (Increment/Total/Finish), deferring bar creation until
// Total is known.
type BarReporter struct {
	description string
	bar         *progressbar.ProgressBar
}

// NewBarReporter builds a BarReporter that renders under description
// once Total is called.
func NewBarReporter(description string) *BarReporter {
	return &BarReporter{description: description}
}

func (b *BarReporter) Total(n int) { b.bar = NewProgressBar(n, b.description) }

func (b *BarReporter) Increment() {
	if b.bar != nil {
		b.bar.Add(1)
	}
}

func (b *BarReporter) Finish() {
	if b.bar != nil {
		b.bar.Finish()
	}
}
