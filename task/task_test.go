// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package task_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/planteuf/planteuf/task"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tk := task.New(task.EventTest, map[string]any{"n": 1}, "alice")

	assert.NotEmpty(t, tk.ID)
	assert.Equal(t, task.EventTest, tk.Event)
	assert.Equal(t, task.StatusPending, tk.Status)
	assert.Equal(t, []task.Status{task.StatusPending}, tk.History)
	assert.Empty(t, tk.Log)
	assert.Equal(t, "alice", tk.Author)

	other := task.New(task.EventTest, nil, "alice")
	assert.NotEqual(t, tk.ID, other.ID)
}

func TestTransition(t *testing.T) {
	t.Parallel()

	tk := task.New(task.EventTest, nil, "alice")

	tk.Transition(task.StatusInProgress, "")
	tk.Transition(task.StatusCompleted, "done")

	assert.Equal(t, task.StatusCompleted, tk.Status)
	assert.Equal(t, []task.Status{
		task.StatusPending,
		task.StatusInProgress,
		task.StatusCompleted,
	}, tk.History)
	// Empty log lines are not recorded.
	assert.Equal(t, []string{"done"}, tk.Log)
}

func TestStatusTerminal(t *testing.T) {
	t.Parallel()

	assert.False(t, task.StatusPending.Terminal())
	assert.False(t, task.StatusInProgress.Terminal())
	assert.True(t, task.StatusCompleted.Terminal())
	assert.True(t, task.StatusFailed.Terminal())
}
