// Package daemon implements the capture loop: it polls the OS clipboard
// for new text or image content, feeds the history store, and runs the
// periodic age-based cleanup over both stores. The stores do not detect
// clipboard changes themselves; that is this collaborator's job.
package daemon

import (
	"context"
	"crypto/sha256"
	"log/slog"
	"time"

	"golang.design/x/clipboard"

	"github.com/clippyd/clippy/internal/config"
	"github.com/clippyd/clippy/internal/history"
	"github.com/clippyd/clippy/internal/pins"
)

// Daemon polls the clipboard and sweeps expired records.
type Daemon struct {
	history *history.Store
	pins    *pins.Store
	cfg     config.Config
	log     *slog.Logger

	lastText      string
	lastImageHash [sha256.Size]byte
	haveImage     bool
}

// New creates a daemon over the given stores.
func New(h *history.Store, p *pins.Store, cfg config.Config, log *slog.Logger) *Daemon {
	return &Daemon{
		history: h,
		pins:    p,
		cfg:     cfg,
		log:     log,
	}
}

// Run polls the clipboard every poll_interval_ms and sweeps both stores
// every cleanup_interval_sec, until ctx is cancelled. Capture failures
// are logged and never fatal; the next poll simply tries again.
func (d *Daemon) Run(ctx context.Context) error {
	if err := clipboard.Init(); err != nil {
		return err
	}

	// Prime the change detector so content already on the clipboard at
	// startup is not re-captured on the first tick.
	d.lastText = string(clipboard.Read(clipboard.FmtText))
	if img := clipboard.Read(clipboard.FmtImage); len(img) > 0 {
		d.lastImageHash = sha256.Sum256(img)
		d.haveImage = true
	}

	poll := time.NewTicker(time.Duration(d.cfg.PollIntervalMs) * time.Millisecond)
	defer poll.Stop()
	cleanup := time.NewTicker(time.Duration(d.cfg.CleanupIntervalSec) * time.Second)
	defer cleanup.Stop()

	d.log.Info("capture daemon started",
		"poll_interval_ms", d.cfg.PollIntervalMs,
		"cleanup_interval_sec", d.cfg.CleanupIntervalSec)

	for {
		select {
		case <-ctx.Done():
			d.log.Info("capture daemon stopping")
			return ctx.Err()
		case <-poll.C:
			d.pollOnce()
		case <-cleanup.C:
			d.sweepOnce()
		}
	}
}

// pollOnce reads the clipboard and captures content that changed since
// the previous tick.
func (d *Daemon) pollOnce() {
	d.captureText(string(clipboard.Read(clipboard.FmtText)))
	d.captureImage(clipboard.Read(clipboard.FmtImage))
}

// captureText records text that differs from the last successful
// capture. The change detector only advances on success, so content
// that failed to capture is retried on the next poll.
func (d *Daemon) captureText(text string) {
	if text == "" || text == d.lastText {
		return
	}
	if err := d.history.CaptureText(text); err != nil {
		d.log.Error("text capture failed", "error", err)
		return
	}
	d.lastText = text
	d.log.Debug("captured text", "bytes", len(text))
}

// captureImage records image bytes whose hash differs from the last
// successful capture.
func (d *Daemon) captureImage(img []byte) {
	if len(img) == 0 {
		return
	}
	hash := sha256.Sum256(img)
	if d.haveImage && hash == d.lastImageHash {
		return
	}
	if err := d.history.CaptureImage(img); err != nil {
		d.log.Error("image capture failed", "error", err)
		return
	}
	d.lastImageHash = hash
	d.haveImage = true
	d.log.Debug("captured image", "bytes", len(img))
}

// sweepOnce expires old records from both collections.
func (d *Daemon) sweepOnce() {
	removedHistory, err := d.history.Sweep()
	if err != nil {
		d.log.Error("history sweep failed", "error", err)
	}
	removedPins, err := d.pins.Sweep()
	if err != nil {
		d.log.Error("pin sweep failed", "error", err)
	}
	if removedHistory > 0 || removedPins > 0 {
		d.log.Info("swept expired records",
			"history", removedHistory,
			"pins", removedPins,
			"max_age_days", d.cfg.MaxAgeDays)
	}
}
