// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package task

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/planteuf/planteuf/syncx"
)

// ErrNotFound is returned by a [Store] when no task has the requested ID.
var ErrNotFound = errors.New("task not found")

// Store is the durable backing of the orchestrator.
type Store interface {
	// Insert persists a new task, stamping its creation and update times.
	Insert(ctx context.Context, t *Task) error
	// Update persists an existing task, stamping its update time.
	// It returns [ErrNotFound] if the task does not exist.
	Update(ctx context.Context, t *Task) error
	// Get loads a task by ID. It returns [ErrNotFound] if it does not exist.
	Get(ctx context.Context, id string) (*Task, error)
	// Active returns the IDs of tasks in a non-terminal status,
	// oldest first.
	Active(ctx context.Context) ([]string, error)
}

// MemoryStore is an in-memory [Store] for tests and local runs.
type MemoryStore struct {
	state syncx.Protected[*memoryState]
}

type memoryState struct {
	tasks map[string]*Task
	order []string
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		state: syncx.Protect(&memoryState{tasks: make(map[string]*Task)}),
	}
}

// Insert implements the [Store] interface.
func (m *MemoryStore) Insert(ctx context.Context, t *Task) error {
	now := time.Now()
	t.CreatedAt, t.UpdatedAt = now, now
	m.state.WriteAccess(func(s *memoryState) {
		if _, ok := s.tasks[t.ID]; !ok {
			s.order = append(s.order, t.ID)
		}
		cp := *t
		s.tasks[t.ID] = &cp
	})
	return nil
}

// Update implements the [Store] interface.
func (m *MemoryStore) Update(ctx context.Context, t *Task) error {
	var err error
	m.state.WriteAccess(func(s *memoryState) {
		if _, ok := s.tasks[t.ID]; !ok {
			err = ErrNotFound
			return
		}
		t.UpdatedAt = time.Now()
		cp := *t
		s.tasks[t.ID] = &cp
	})
	return err
}

// Get implements the [Store] interface.
func (m *MemoryStore) Get(ctx context.Context, id string) (*Task, error) {
	var (
		found *Task
		err   error
	)
	m.state.ReadAccess(func(s *memoryState) {
		t, ok := s.tasks[id]
		if !ok {
			err = ErrNotFound
			return
		}
		cp := *t
		cp.History = slices.Clone(t.History)
		cp.Log = slices.Clone(t.Log)
		found = &cp
	})
	return found, err
}

// Active implements the [Store] interface.
func (m *MemoryStore) Active(ctx context.Context) ([]string, error) {
	var ids []string
	m.state.ReadAccess(func(s *memoryState) {
		for _, id := range s.order {
			if !s.tasks[id].Status.Terminal() {
				ids = append(ids, id)
			}
		}
	})
	return ids, nil
}
