package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"osirishq/internal/config"
	"osirishq/internal/events"
	"osirishq/internal/game"
	"osirishq/internal/server"

	"golang.org/x/sync/errgroup"
)

const defaultConfigPath = "osiris_config.yml"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	path := os.Getenv("OSIRIS_CONFIG")
	if path == "" {
		path = defaultConfigPath
	}
	if err := run(ctx, path); err != nil {
		fmt.Fprintf(os.Stderr, "osiris-hq: %v\n", err)
		os.Exit(1)
	}
}

type app struct {
	cfg     *config.Config
	level   *slog.LevelVar
	logger  *slog.Logger
	bus     *events.Bus
	engine  *game.Engine
	driver  *game.Driver
	handler http.Handler
}

func loadConfig(path string, logger *slog.Logger) (*config.Config, error) {
	cfg, err := config.Load(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logger.Warn("config file not found, using built-in defaults", "file", path)
		cfg = config.Default()
	case err != nil:
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config after env overrides: %w", err)
	}
	return cfg, nil
}

func parseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return l
}

func newApp(cfg *config.Config, level *slog.LevelVar, logger *slog.Logger) (*app, error) {
	bus := events.NewBus(256)

	engine, err := game.New(cfg.Seed(), game.Options{
		Publisher:   bus,
		Logger:      logger.With("component", "engine"),
		LogCapacity: cfg.Balance.ActivityLogSize,
	})
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("build engine: %w", err)
	}

	router, err := cfg.TerminalRouter()
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("build terminal: %w", err)
	}

	handler, err := server.NewHandler(server.Options{
		Engine:        engine,
		Terminal:      router,
		Bus:           bus,
		StaticDir:     "static",
		UseDiskStatic: server.UseDiskStaticByEnv(),
		Logger:        logger.With("component", "http"),
	})
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("build server: %w", err)
	}

	return &app{
		cfg:     cfg,
		level:   level,
		logger:  logger,
		bus:     bus,
		engine:  engine,
		driver:  game.NewDriver(engine, cfg.Clock.TaskTick(), cfg.Clock.RegenTick(), logger.With("component", "driver")),
		handler: handler,
	}, nil
}

// reload applies the parts of a new config that can change without a
// restart: tick cadence and log level. Catalog and balance edits wait for
// the next start because they would invalidate live progress.
func (a *app) reload(next *config.Config) {
	next.ApplyEnv()
	a.driver.Reconfigure(next.Clock.TaskTick(), next.Clock.RegenTick())
	a.level.Set(parseLevel(next.Server.LogLevel))
	a.bus.Publish(events.EventConfigReloaded, map[string]any{
		"task_tick_ms":  next.Clock.TaskTickMS,
		"regen_tick_ms": next.Clock.RegenTickMS,
		"log_level":     next.Server.LogLevel,
	})
}

func run(ctx context.Context, path string) error {
	level := new(slog.LevelVar)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	cfg, err := loadConfig(path, logger)
	if err != nil {
		return err
	}
	level.Set(parseLevel(cfg.Server.LogLevel))

	a, err := newApp(cfg, level, logger)
	if err != nil {
		return err
	}
	defer a.bus.Close()

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: a.handler,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return a.driver.Run(ctx)
	})

	g.Go(func() error {
		logger.Info("listening", "addr", cfg.Server.Addr, "difficulty", cfg.Difficulty)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout())
		defer cancel()
		logger.Info("shutting down", "timeout", cfg.Server.ShutdownTimeout().String())
		return srv.Shutdown(shutdownCtx)
	})

	if _, err := os.Stat(path); err == nil {
		watcher, err := config.NewWatcher(path, logger.With("component", "config"))
		if err != nil {
			logger.Warn("config hot reload disabled", "err", err)
		} else {
			g.Go(func() error {
				return watcher.Run(ctx, a.reload)
			})
		}
	}

	return g.Wait()
}
