// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package task_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planteuf/planteuf/sanitize"
	"github.com/planteuf/planteuf/task"
	"github.com/planteuf/planteuf/unwrap"
)

func newOrchestrator() (*task.Orchestrator, *task.MemoryStore) {
	store := task.NewMemoryStore()
	sanitizer := unwrap.Value(sanitize.New(sanitize.Config{
		SanitizeKeys: []string{"password"},
	}))
	return task.NewOrchestrator(store, task.NewQueue(), sanitizer), store
}

func TestOrchestratorCreate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	orc, store := newOrchestrator()

	tk, err := orc.Create(ctx, task.EventTest, map[string]any{"password": "hunter2"}, "alice")
	require.NoError(t, err)

	// The task is persisted as pending with an empty log.
	stored, err := store.Get(ctx, tk.ID)
	require.NoError(t, err)
	assert.Equal(t, task.StatusPending, stored.Status)
	assert.Equal(t, []task.Status{task.StatusPending}, stored.History)
	assert.Empty(t, stored.Log)
	assert.False(t, stored.CreatedAt.IsZero())

	// The payload reaches the store unredacted; only logging is sanitized.
	assert.Equal(t, "hunter2", stored.Data["password"])

	// And its ID is queued for dispatch.
	assert.Equal(t, []string{tk.ID}, orc.Queue().List())
}

func TestOrchestratorUpdate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	orc, store := newOrchestrator()
	tk, err := orc.Create(ctx, task.EventTest, nil, "alice")
	require.NoError(t, err)

	require.NoError(t, orc.Update(ctx, tk.ID, task.StatusInProgress, ""))
	require.NoError(t, orc.Update(ctx, tk.ID, task.StatusCompleted, "done"))

	stored, err := store.Get(ctx, tk.ID)
	require.NoError(t, err)
	assert.Equal(t, task.StatusCompleted, stored.Status)
	assert.Equal(t, []task.Status{
		task.StatusPending,
		task.StatusInProgress,
		task.StatusCompleted,
	}, stored.History)
	assert.Equal(t, []string{"done"}, stored.Log)
}

func TestOrchestratorUpdateUnknownTask(t *testing.T) {
	t.Parallel()

	orc, _ := newOrchestrator()
	err := orc.Update(context.Background(), "no-such-task", task.StatusCompleted, "")
	assert.ErrorIs(t, err, task.ErrNotFound)
}

func TestOrchestratorRefreshQueue(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := task.NewMemoryStore()

	pending := task.New(task.EventTest, nil, "alice")
	running := task.New(task.EventTest, nil, "alice")
	running.Transition(task.StatusInProgress, "")
	done := task.New(task.EventTest, nil, "alice")
	done.Transition(task.StatusCompleted, "done")

	for _, tk := range []*task.Task{pending, running, done} {
		require.NoError(t, store.Insert(ctx, tk))
	}

	orc := task.NewOrchestrator(store, task.NewQueue(), nil)
	require.NoError(t, orc.RefreshQueue(ctx))

	// Terminal tasks stay out; the rest comes back oldest first.
	assert.Equal(t, []string{pending.ID, running.ID}, orc.Queue().List())

	// Refreshing again does not duplicate queued IDs.
	require.NoError(t, orc.RefreshQueue(ctx))
	assert.Equal(t, 2, orc.Queue().Len())
}
