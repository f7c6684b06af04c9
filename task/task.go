// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package task implements the planteuf task pipeline: durable tasks, the
// in-memory dispatch queue, the orchestrator that keeps both in sync, and the
// runner that executes queued tasks.
package task

import (
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a [Task].
type Status string

// Task lifecycle states. Every transition is appended to [Task.History].
const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Terminal reports whether a task in this status will never run again.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Event is the kind of work a [Task] carries. Handlers are registered per
// event on a [Runner].
type Event string

// EventTest is a no-op event used to exercise the pipeline end to end.
const EventTest Event = "test"

// Task is a unit of work tracked by the orchestrator.
type Task struct {
	ID      string         `bson:"_id" json:"id"`
	Event   Event          `bson:"event" json:"event"`
	Status  Status         `bson:"status" json:"status"`
	Data    map[string]any `bson:"data" json:"data"`
	Author  string         `bson:"author" json:"author"`
	History []Status       `bson:"history" json:"history"`
	Log     []string       `bson:"log" json:"log"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// New creates a pending task with a fresh ID and an empty log.
func New(event Event, data map[string]any, author string) *Task {
	return &Task{
		ID:      uuid.NewString(),
		Event:   event,
		Status:  StatusPending,
		Data:    data,
		Author:  author,
		History: []Status{StatusPending},
		Log:     []string{},
	}
}

// Transition moves the task to status, recording it in the history and
// appending line to the log. An empty line is not recorded.
func (t *Task) Transition(status Status, line string) {
	t.Status = status
	t.History = append(t.History, status)
	if line != "" {
		t.Log = append(t.Log, line)
	}
}
