// Package coord runs hnbar's background jobs: the periodic refresh of the
// ranking and scores, and pruning of old read markers.
package coord

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/abelbrown/hnbar/internal/controller"
	"github.com/abelbrown/hnbar/internal/otel"
	"github.com/abelbrown/hnbar/internal/state"
)

// pruneInterval is the time between read marker prunes.
const pruneInterval = 24 * time.Hour

// Sender delivers messages to the running program. *tea.Program is one.
type Sender interface {
	Send(msg tea.Msg)
}

// Pruner forgets read markers older than before.
type Pruner interface {
	PruneRead(before time.Time) (int, error)
}

// Options configures a Coordinator.
type Options struct {
	// RefreshInterval is the time between refreshes. Zero disables them.
	RefreshInterval time.Duration

	// Retention is how long read markers are kept. Zero disables pruning.
	Retention time.Duration
}

// Coordinator manages the background jobs.
// Uses context cancellation as the ONLY stop mechanism.
type Coordinator struct {
	pruner  Pruner
	log     *log.Logger
	journal *otel.Logger
	opts    Options
	wg      sync.WaitGroup
}

// New creates a Coordinator. pruner may be nil.
func New(pruner Pruner, logger *log.Logger, journal *otel.Logger, opts Options) *Coordinator {
	return &Coordinator{pruner: pruner, log: logger, journal: journal, opts: opts}
}

// Start launches the jobs. The first refresh waits a full interval: the UI
// loads stories itself on start. A prune runs immediately.
func (c *Coordinator) Start(ctx context.Context, program Sender) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		g, ctx := errgroup.WithContext(ctx)
		if c.opts.RefreshInterval > 0 {
			g.Go(func() error {
				return every(ctx, c.opts.RefreshInterval, false, func() { c.refresh(program) })
			})
		}
		if c.pruner != nil && c.opts.Retention > 0 {
			g.Go(func() error {
				return every(ctx, pruneInterval, true, c.prune)
			})
		}
		_ = g.Wait()
	}()
}

// Wait blocks until the jobs exit.
// Call after canceling the context passed to Start.
func (c *Coordinator) Wait() {
	c.wg.Wait()
}

func every(ctx context.Context, interval time.Duration, now bool, job func()) error {
	if now {
		job()
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			job()
		}
	}
}

func (c *Coordinator) refresh(program Sender) {
	c.journal.Emit(otel.Event{Level: otel.LevelDebug, Kind: otel.KindRefreshTick, Comp: "coord"})
	// Handle nil program gracefully for testing.
	if program != nil {
		program.Send(controller.Msg(state.RefreshStories{}))
	}
}

func (c *Coordinator) prune() {
	n, err := c.pruner.PruneRead(time.Now().Add(-c.opts.Retention))
	if err != nil {
		c.journal.Error(otel.KindStoreError, "coord", err)
		if c.log != nil {
			c.log.Error("prune read stories", "err", err)
		}
		return
	}
	if n > 0 && c.log != nil {
		c.log.Info("pruned read stories", "count", n)
	}
}
