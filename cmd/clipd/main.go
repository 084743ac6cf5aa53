// Command clipd is the clipboard capture daemon. It polls the OS
// clipboard for new text and image content, records changes into the
// history store, and periodically expires old records from both the
// history and pin collections.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/clippyd/clippy/internal/config"
	"github.com/clippyd/clippy/internal/daemon"
	"github.com/clippyd/clippy/internal/history"
	"github.com/clippyd/clippy/internal/pins"
	"github.com/clippyd/clippy/internal/recfile"
)

func main() {
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if err := run(log); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger) error {
	configMgr, err := config.NewManager()
	if err != nil {
		return err
	}
	cfg, err := configMgr.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	paths, err := recfile.DefaultPaths()
	if err != nil {
		return fmt.Errorf("failed to resolve store paths: %w", err)
	}

	images := recfile.NewImageDir(paths.Images)
	h := history.New(paths.History, images, cfg)
	p := pins.New(paths.Pins, images, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	d := daemon.New(h, p, cfg, log)
	if err := d.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
