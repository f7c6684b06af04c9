// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package task

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/planteuf/planteuf/logger"
	"github.com/planteuf/planteuf/syncx"
)

// Handler executes a single task.
type Handler interface {
	Handle(ctx context.Context, t *Task) error
}

// HandlerFunc is an adapter to allow the use of ordinary functions as a
// [Handler].
type HandlerFunc func(ctx context.Context, t *Task) error

// Handle calls the underlying function.
func (f HandlerFunc) Handle(ctx context.Context, t *Task) error {
	return f(ctx, t)
}

// DefaultPollInterval is how long an idle [Runner] waits before checking the
// queue again.
const DefaultPollInterval = time.Second

// Runner drains the dispatch queue, executing each task with the handler
// registered for its event.
type Runner struct {
	orc      *Orchestrator
	handlers map[Event]Handler
	workers  int
	interval time.Duration
}

// NewRunner returns a runner over orc with the given worker limit.
// A non-positive limit means one worker.
func NewRunner(orc *Orchestrator, workers int) *Runner {
	if workers < 1 {
		workers = 1
	}
	return &Runner{
		orc:      orc,
		handlers: make(map[Event]Handler),
		workers:  workers,
		interval: DefaultPollInterval,
	}
}

// Register sets the handler for an event, replacing any previous one.
func (r *Runner) Register(event Event, h Handler) {
	r.handlers[event] = h
}

// Run processes queued tasks until ctx is canceled. Registering handlers
// after Run has started is not allowed.
func (r *Runner) Run(ctx context.Context) error {
	logger.Info(ctx, "task runner started", slog.Int("workers", r.workers))
	lwg := syncx.NewLimitedWaitGroup(r.workers)
	defer lwg.Wait()

	idle := time.NewTicker(r.interval)
	defer idle.Stop()

	for {
		if err := ctx.Err(); err != nil {
			logger.Info(ctx, "task runner stopping")
			return err
		}
		id, ok := r.orc.Queue().Pop()
		if !ok {
			select {
			case <-ctx.Done():
				logger.Info(ctx, "task runner stopping")
				return ctx.Err()
			case <-idle.C:
			}
			continue
		}
		lwg.Go(func() { r.process(ctx, id) })
	}
}

func (r *Runner) process(ctx context.Context, id string) {
	t, err := r.orc.store.Get(ctx, id)
	if err != nil {
		logger.Error(ctx, "failed to load queued task",
			slog.String("task_id", id),
			slog.Any("error", err))
		return
	}
	if t.Status.Terminal() {
		// Finished elsewhere; nothing to do.
		return
	}

	if err := r.orc.Update(ctx, id, StatusInProgress, ""); err != nil {
		logger.Error(ctx, "failed to start task",
			slog.String("task_id", id),
			slog.Any("error", err))
		return
	}

	h, ok := r.handlers[t.Event]
	if !ok {
		r.finish(ctx, id, StatusFailed, fmt.Sprintf("no handler for event %q", t.Event))
		return
	}

	if err := h.Handle(ctx, t); err != nil {
		r.finish(ctx, id, StatusFailed, err.Error())
		return
	}
	r.finish(ctx, id, StatusCompleted, "done")
}

func (r *Runner) finish(ctx context.Context, id string, status Status, line string) {
	if err := r.orc.Update(ctx, id, status, line); err != nil {
		logger.Error(ctx, "failed to finish task",
			slog.String("task_id", id),
			slog.Any("error", err))
	}
}
