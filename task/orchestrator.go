// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package task

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/planteuf/planteuf/logger"
	"github.com/planteuf/planteuf/sanitize"
)

// Orchestrator keeps the durable task store and the dispatch queue in sync.
type Orchestrator struct {
	store     Store
	queue     *Queue
	sanitizer *sanitize.Sanitizer
}

// NewOrchestrator returns an orchestrator over store and queue.
//
// If sanitizer is non-nil, task payloads pass through it before they are
// logged.
func NewOrchestrator(store Store, queue *Queue, sanitizer *sanitize.Sanitizer) *Orchestrator {
	return &Orchestrator{
		store:     store,
		queue:     queue,
		sanitizer: sanitizer,
	}
}

// Queue returns the dispatch queue of the orchestrator.
func (o *Orchestrator) Queue() *Queue { return o.queue }

// RefreshQueue enqueues every non-terminal task from the store, oldest first.
// It is called on startup to restore the queue after a restart; already
// queued IDs are left in place.
func (o *Orchestrator) RefreshQueue(ctx context.Context) error {
	logger.Info(ctx, "refreshing task queue")
	ids, err := o.store.Active(ctx)
	if err != nil {
		return fmt.Errorf("refresh queue: %w", err)
	}
	for _, id := range ids {
		o.queue.Enqueue(id)
	}
	return nil
}

// Create persists a new pending task and enqueues its ID.
func (o *Orchestrator) Create(ctx context.Context, event Event, data map[string]any, author string) (*Task, error) {
	t := New(event, data, author)
	logger.Info(ctx, "creating task",
		slog.String("task_id", t.ID),
		slog.String("event", string(event)),
		slog.String("author", author),
		slog.Any("data", o.logData(data)))
	if err := o.store.Insert(ctx, t); err != nil {
		return nil, fmt.Errorf("create task %s: %w", t.ID, err)
	}
	o.queue.Enqueue(t.ID)
	return t, nil
}

// Update transitions the task with the given ID to status, appending the
// transition to its history and line to its log.
func (o *Orchestrator) Update(ctx context.Context, id string, status Status, line string) error {
	logger.Info(ctx, "updating task",
		slog.String("task_id", id),
		slog.String("status", string(status)))
	t, err := o.store.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("update task %s: %w", id, err)
	}
	t.Transition(status, line)
	if err := o.store.Update(ctx, t); err != nil {
		return fmt.Errorf("update task %s: %w", id, err)
	}
	return nil
}

func (o *Orchestrator) logData(data map[string]any) map[string]any {
	if o.sanitizer == nil {
		return data
	}
	return o.sanitizer.Map(data)
}
