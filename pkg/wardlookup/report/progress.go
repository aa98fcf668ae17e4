package report

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/schollz/progressbar/v3"

	"github.com/ukaji3/wardlookup/pkg/wardlookup/logging"
)

// Progress reports lookup batches, either as a progress bar on a terminal or
// as one log line per batch.
type Progress struct {
	out    io.Writer
	logger *slog.Logger
	useBar bool
	bar    *progressbar.ProgressBar
}

// NewProgress returns a Progress writing to out. A bar is drawn only when
// bar is true and out is a terminal.
func NewProgress(out io.Writer, logger *slog.Logger, bar bool) *Progress {
	return &Progress{
		out:    out,
		logger: logging.NewComponentLogger(logger, "progress"),
		useBar: bar && IsTerminal(out),
	}
}

// Update records the start of a batch. Its signature matches
// postcodes.ProgressFunc.
func (p *Progress) Update(batch, total, size int) {
	if !p.useBar {
		p.logger.Info("processing batch",
			logging.String("batch", fmt.Sprintf("%d/%d", batch, total)),
			logging.Int("postcodes", size),
		)
		return
	}
	if p.bar == nil {
		p.bar = progressbar.NewOptions(total,
			progressbar.OptionSetWriter(p.out),
			progressbar.OptionSetDescription("looking up batches"),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(30),
			progressbar.OptionClearOnFinish(),
		)
	}
	// The bar counts completed batches, so batch n marks n-1 as done.
	_ = p.bar.Set(batch - 1)
}

// Finish completes the bar, if one was drawn.
func (p *Progress) Finish() {
	if p.bar != nil {
		_ = p.bar.Finish()
	}
}
