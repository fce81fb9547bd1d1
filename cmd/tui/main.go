package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"osirishq/internal/config"
	"osirishq/internal/game"
	"osirishq/internal/tui"

	"golang.org/x/sync/errgroup"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "osiris-tui: %v\n", err)
		os.Exit(1)
	}
}

// newLogger writes to OSIRIS_LOG_FILE when set; the terminal itself belongs
// to the dashboard.
func newLogger() (*slog.Logger, func(), error) {
	path := os.Getenv("OSIRIS_LOG_FILE")
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return slog.New(slog.NewJSONHandler(f, nil)), func() { f.Close() }, nil
}

func run(ctx context.Context) error {
	logger, closeLog, err := newLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	path := os.Getenv("OSIRIS_CONFIG")
	if path == "" {
		path = "osiris_config.yml"
	}
	cfg, err := config.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg, err = config.FromEnv(), nil
	} else if err == nil {
		cfg.ApplyEnv()
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	engine, err := game.New(cfg.Seed(), game.Options{
		Logger:      logger.With("component", "engine"),
		LogCapacity: cfg.Balance.ActivityLogSize,
	})
	if err != nil {
		return fmt.Errorf("build engine: %w", err)
	}
	driver := game.NewDriver(engine, cfg.Clock.TaskTick(), cfg.Clock.RegenTick(), logger.With("component", "driver"))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return driver.Run(ctx)
	})
	g.Go(func() error {
		defer cancel()
		return tui.Run(ctx, engine)
	})
	return g.Wait()
}
