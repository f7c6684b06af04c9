// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package task

import (
	"slices"

	"github.com/planteuf/planteuf/syncx"
)

// Queue is a FIFO queue of task IDs with duplicate suppression.
// It is safe for concurrent use.
type Queue struct {
	state syncx.Protected[*queueState]
}

type queueState struct {
	ids    []string
	member map[string]struct{}
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	return &Queue{
		state: syncx.Protect(&queueState{member: make(map[string]struct{})}),
	}
}

// Enqueue appends id to the queue.
// It returns false if id is already queued.
func (q *Queue) Enqueue(id string) bool {
	var added bool
	q.state.WriteAccess(func(s *queueState) {
		if _, ok := s.member[id]; ok {
			return
		}
		s.member[id] = struct{}{}
		s.ids = append(s.ids, id)
		added = true
	})
	return added
}

// Dequeue removes id from the queue, wherever it sits.
// It returns false if id is not queued.
func (q *Queue) Dequeue(id string) bool {
	var removed bool
	q.state.WriteAccess(func(s *queueState) {
		if _, ok := s.member[id]; !ok {
			return
		}
		delete(s.member, id)
		s.ids = slices.DeleteFunc(s.ids, func(v string) bool { return v == id })
		removed = true
	})
	return removed
}

// Pop removes and returns the head of the queue.
// It returns false if the queue is empty.
func (q *Queue) Pop() (string, bool) {
	var (
		id string
		ok bool
	)
	q.state.WriteAccess(func(s *queueState) {
		if len(s.ids) == 0 {
			return
		}
		id, ok = s.ids[0], true
		s.ids = s.ids[1:]
		delete(s.member, id)
	})
	return id, ok
}

// Len returns the number of queued IDs.
func (q *Queue) Len() int {
	var n int
	q.state.ReadAccess(func(s *queueState) { n = len(s.ids) })
	return n
}

// List returns a snapshot of the queued IDs in FIFO order.
func (q *Queue) List() []string {
	var ids []string
	q.state.ReadAccess(func(s *queueState) { ids = slices.Clone(s.ids) })
	return ids
}
