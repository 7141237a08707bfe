package cmd

import (
	"os"
	"sync/atomic"
	"time"

	"github.com/schollz/progressbar/v3"
)

// A progress reporter backed by a terminal progress bar. Pixel increments
// are batched through an atomic counter so tracers rarely contend on the
// bar's lock.
type progressReporter struct {
	bar       *progressbar.ProgressBar
	pending   atomic.Int64
	batchSize int64
}

func newProgressReporter(totalPixels int64, batchSize int64) *progressReporter {
	if batchSize <= 0 {
		batchSize = 1
	}
	return &progressReporter{
		bar: progressbar.NewOptions64(
			totalPixels,
			progressbar.OptionSetDescription("rendering"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
			progressbar.OptionSetItsString("px"),
			progressbar.OptionShowIts(),
			progressbar.OptionThrottle(100*time.Millisecond),
			progressbar.OptionClearOnFinish(),
		),
		batchSize: batchSize,
	}
}

// Record a shaded pixel.
func (p *progressReporter) Increment() {
	if p.pending.Add(1)%p.batchSize == 0 {
		p.bar.Add64(p.batchSize)
	}
}

// Flush any remaining increments and complete the bar.
func (p *progressReporter) Finish() {
	if rem := p.pending.Load() % p.batchSize; rem != 0 {
		p.bar.Add64(rem)
	}
	p.bar.Finish()
}
