package app

import (
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"
)

const (
	progressDescription = "Downloading"
	progressThrottle    = 65 * time.Millisecond
	progressWidth       = 10
	progressSpinner     = 14
)

// progressTracker renders received bytes as a progress bar.
// The bar is created on the first update, when the body length is known.
type progressTracker struct {
	// output receives the rendered bar.
	output io.Writer
	// bar is nil until the first update.
	bar *progressbar.ProgressBar
}

func newProgressTracker(output io.Writer) *progressTracker {
	return &progressTracker{output: output}
}

// Update implements engine.ProgressFunc. It never aborts the transfer.
func (p *progressTracker) Update(downloadTotal, downloaded int64) bool {
	if p.bar == nil {
		p.bar = progressbar.NewOptions64(
			downloadTotal,
			progressbar.OptionSetDescription(progressDescription),
			progressbar.OptionSetWriter(p.output),
			progressbar.OptionShowBytes(true),
			progressbar.OptionSetWidth(progressWidth),
			progressbar.OptionThrottle(progressThrottle),
			progressbar.OptionShowCount(),
			progressbar.OptionOnCompletion(func() {
				fmt.Fprint(p.output, "\n") //nolint:errcheck // Terminal output.
			}),
			progressbar.OptionSpinnerType(progressSpinner),
			progressbar.OptionFullWidth(),
		)
	}

	_ = p.bar.Set64(downloaded)

	return true
}

// Finish completes the bar. It is safe to call on a nil tracker or before any update.
func (p *progressTracker) Finish() {
	if p == nil || p.bar == nil {
		return
	}

	_ = p.bar.Finish()
}
