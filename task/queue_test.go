// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package task_test

import (
	"fmt"
	"testing"
	"testing/synctest"

	"github.com/stretchr/testify/assert"

	"github.com/planteuf/planteuf/task"
)

func TestQueueFIFO(t *testing.T) {
	t.Parallel()

	q := task.NewQueue()
	assert.True(t, q.Enqueue("a"))
	assert.True(t, q.Enqueue("b"))
	assert.True(t, q.Enqueue("c"))

	assert.Equal(t, []string{"a", "b", "c"}, q.List())

	id, ok := q.Pop()
	assert.True(t, ok)
	assert.Equal(t, "a", id)
	assert.Equal(t, 2, q.Len())
}

func TestQueueDedup(t *testing.T) {
	t.Parallel()

	q := task.NewQueue()
	assert.True(t, q.Enqueue("a"))
	assert.False(t, q.Enqueue("a"))
	assert.Equal(t, 1, q.Len())

	// After removal the ID may be queued again.
	id, ok := q.Pop()
	assert.True(t, ok)
	assert.Equal(t, "a", id)
	assert.True(t, q.Enqueue("a"))
}

func TestQueueDequeue(t *testing.T) {
	t.Parallel()

	q := task.NewQueue()
	q.Enqueue("a")
	q.Enqueue("b")
	q.Enqueue("c")

	assert.True(t, q.Dequeue("b"))
	assert.False(t, q.Dequeue("b"))
	assert.Equal(t, []string{"a", "c"}, q.List())
}

func TestQueuePopEmpty(t *testing.T) {
	t.Parallel()

	q := task.NewQueue()
	_, ok := q.Pop()
	assert.False(t, ok)
}

func TestQueueConcurrent(t *testing.T) {
	t.Parallel()

	synctest.Test(t, func(t *testing.T) {
		q := task.NewQueue()
		for i := range 100 {
			go q.Enqueue(fmt.Sprintf("task-%d", i))
		}
		synctest.Wait()
		assert.Equal(t, 100, q.Len())

		for range 100 {
			go q.Pop()
		}
		synctest.Wait()
		assert.Equal(t, 0, q.Len())
	})
}
