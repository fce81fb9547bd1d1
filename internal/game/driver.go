package game

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"time"
)

const (
	DefaultTaskTick  = time.Second
	DefaultRegenTick = 100 * time.Millisecond
)

type cadence struct {
	task, regen time.Duration
}

// Driver feeds an Engine its two periodic ticks. Each tick passes the
// nominal period as the delta, so simulated time never runs ahead of the
// schedule when the process stalls.
type Driver struct {
	engine  *Engine
	logger  *slog.Logger
	current atomic.Pointer[cadence]
	changes chan cadence
	started atomic.Bool
}

func NewDriver(engine *Engine, taskEvery, regenEvery time.Duration, logger *slog.Logger) *Driver {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	d := &Driver{
		engine:  engine,
		logger:  logger,
		changes: make(chan cadence, 1),
	}
	c := normalize(cadence{task: taskEvery, regen: regenEvery})
	d.current.Store(&c)
	return d
}

func normalize(c cadence) cadence {
	if c.task <= 0 {
		c.task = DefaultTaskTick
	}
	if c.regen <= 0 {
		c.regen = DefaultRegenTick
	}
	return c
}

// Cadence returns the periods currently in use.
func (d *Driver) Cadence() (taskEvery, regenEvery time.Duration) {
	c := d.current.Load()
	return c.task, c.regen
}

// Reconfigure swaps the tick periods of a running driver. Only the latest
// pending change is kept.
func (d *Driver) Reconfigure(taskEvery, regenEvery time.Duration) {
	c := normalize(cadence{task: taskEvery, regen: regenEvery})
	d.current.Store(&c)
	for {
		select {
		case d.changes <- c:
			return
		default:
		}
		select {
		case <-d.changes:
		default:
		}
	}
}

// Run ticks the engine until ctx is done. It may be called once.
func (d *Driver) Run(ctx context.Context) error {
	if !d.started.CompareAndSwap(false, true) {
		return errors.New("driver: run called twice")
	}

	c := *d.current.Load()
	taskTicker := time.NewTicker(c.task)
	defer taskTicker.Stop()
	regenTicker := time.NewTicker(c.regen)
	defer regenTicker.Stop()

	d.logger.InfoContext(ctx, "driver started", "task_tick", c.task.String(), "regen_tick", c.regen.String())
	for {
		select {
		case <-ctx.Done():
			d.logger.InfoContext(ctx, "driver stopped")
			return nil
		case next := <-d.changes:
			c = next
			taskTicker.Reset(c.task)
			regenTicker.Reset(c.regen)
			d.logger.InfoContext(ctx, "driver reconfigured", "task_tick", c.task.String(), "regen_tick", c.regen.String())
		case <-taskTicker.C:
			res, err := d.engine.AdvanceTasks(ctx, c.task)
			if err != nil {
				d.logger.ErrorContext(ctx, "advance tasks", "err", err)
				continue
			}
			if n := len(res.Completed); n > 0 {
				d.logger.DebugContext(ctx, "tasks settled", "completed", n, "levels", res.LevelsGained)
			}
		case <-regenTicker.C:
			if _, err := d.engine.RegenerateEnergy(ctx, c.regen); err != nil {
				d.logger.ErrorContext(ctx, "regenerate energy", "err", err)
			}
		}
	}
}
