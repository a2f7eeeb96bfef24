// Licensed to LinDB under one or more contributor
// license agreements. See the NOTICE file distributed with
// this work for additional information regarding copyright
// ownership. LinDB licenses this file to you under
// the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package taskpool

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/atomic"

	"github.com/lindb/common/pkg/logger"

	"github.com/lindb/taskpool/internal/wait"
)

// TaskFunc is the unit of work a Task wraps: an opaque argument in,
// an opaque return value out. any stands in for C's void *.
type TaskFunc func(arg any) any

// State is one of the seven task lifecycle states.
type State uint32

const (
	// StateCreated is the initial state after NewTask.
	StateCreated State = iota
	// StatePushed means the task is queued, not yet claimed.
	StatePushed
	// StatePushedGhost means the task was detached before a worker
	// claimed it; ownership has transferred to the pool.
	StatePushedGhost
	// StateRunning means a worker claimed and is executing the task.
	StateRunning
	// StateRunningGhost means the task was detached after being
	// claimed; the worker that finishes it will destroy it.
	StateRunningGhost
	// StateCompleted means the task function returned and its value
	// is available to a joiner.
	StateCompleted
	// StateJoined means a joiner consumed the return value (or a
	// ghost task finished and was destroyed).
	StateJoined
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "CREATED"
	case StatePushed:
		return "PUSHED"
	case StatePushedGhost:
		return "PUSHED_GHOST"
	case StateRunning:
		return "RUNNING"
	case StateRunningGhost:
		return "RUNNING_GHOST"
	case StateCompleted:
		return "COMPLETED"
	case StateJoined:
		return "JOINED"
	default:
		return "UNKNOWN"
	}
}

// Task is a user-supplied callable plus its argument and eventual
// return value, wrapped in a handle carrying the lifecycle state
// word. The zero value is not usable; use NewTask.
type Task struct {
	id    string
	fn    TaskFunc
	arg   any
	ret   atomic.Value
	state *wait.Word
}

// NewTask allocates a Task in the Created state. The state is stored
// with release ordering by wait.NewWord.
func NewTask(fn TaskFunc, arg any) *Task {
	return &Task{
		id:    uuid.New().String(),
		fn:    fn,
		arg:   arg,
		state: wait.NewWord(uint32(StateCreated)),
	}
}

// ID returns a stable identifier for log/metric correlation. It is
// not part of the task's synchronization state.
func (t *Task) ID() string { return t.id }

// State returns the task's current lifecycle state (acquire load).
func (t *Task) State() State { return State(t.state.Load()) }

// IsFinished reports whether the task has completed and not yet been
// joined (acquire load). When true, a following Join returns
// immediately.
func (t *Task) IsFinished() bool { return t.State() == StateCompleted }

// IsRunning reports whether a (non-ghost) worker is currently
// executing the task (acquire load). A ghost task that is running
// reports false here, since the caller gave up the right to inspect
// a detached task.
func (t *Task) IsRunning() bool { return t.State() == StateRunning }

// Delete releases a task. It only succeeds from Created or Joined;
// any other state means the pool still owns (or is about to own) the
// task, and Delete fails with KindTaskInPool.
func (t *Task) Delete() error {
	switch t.State() {
	case StateCreated, StateJoined:
		return nil
	default:
		return ErrTaskInPool
	}
}

// Join blocks until the task completes, then transitions it to
// Joined and returns its return value. It fails with
// KindTaskNotPushed if the task was never pushed.
func (t *Task) Join() (any, error) {
	return t.join(time.Time{})
}

// TimedJoin behaves like Join but returns KindTimeout if deadline
// elapses first. A zero deadline means wait indefinitely (same as
// Join).
func (t *Task) TimedJoin(deadline time.Time) (any, error) {
	return t.join(deadline)
}

func (t *Task) join(deadline time.Time) (any, error) {
	if t.State() == StateCreated {
		return nil, ErrTaskNotPushed
	}

	if err := t.state.WaitForValue(uint32(StateCompleted), deadline); err != nil {
		return nil, ErrTimeout
	}

	// Whether or not this CAS wins (a concurrent joiner may have won
	// it first), the return value is safe to read: storeRet always
	// happens before the transition into Completed, and our
	// WaitForValue above observed that transition.
	t.state.CompareAndSwap(uint32(StateCompleted), uint32(StateJoined))
	return t.ret.Load(), nil
}

// Detach transfers ownership of the task to the pool: the pool will
// destroy it (rather than the caller) once it finishes. Attempts are
// tried closest to Created first, since a task can only move forward
// through its state graph, never backward, under concurrent worker
// activity.
func (t *Task) Detach() error {
	if t.state.CompareAndSwap(uint32(StatePushed), uint32(StatePushedGhost)) {
		return nil
	}
	if t.state.CompareAndSwap(uint32(StateRunning), uint32(StateRunningGhost)) {
		return nil
	}
	if t.state.CompareAndSwap(uint32(StateCompleted), uint32(StateJoined)) {
		return nil
	}
	if t.State() == StateCreated {
		return ErrTaskNotPushed
	}
	// Already ghosted, or already joined by a racing detach/join:
	// idempotent no-op, there is nothing left to transfer.
	return nil
}

// --- pool-facing helpers, unexported: only pool.go (same
// package) touches these. ---

// tryPush attempts Created->Pushed, then Joined->Pushed (the
// re-submission edge). It returns false if neither CAS succeeds.
func (t *Task) tryPush() bool {
	if t.state.CompareAndSwap(uint32(StateCreated), uint32(StatePushed)) {
		return true
	}
	return t.state.CompareAndSwap(uint32(StateJoined), uint32(StatePushed))
}

// tryClaim attempts Pushed->Running, then PushedGhost->RunningGhost.
// ok is false only if neither transition applies (should not happen
// for a task popped from the queue under queue_lock).
func (t *Task) tryClaim() (ghost bool, ok bool) {
	if t.state.CompareAndSwap(uint32(StatePushed), uint32(StateRunning)) {
		return false, true
	}
	if t.state.CompareAndSwap(uint32(StatePushedGhost), uint32(StateRunningGhost)) {
		return true, true
	}
	return false, false
}

// run executes fn(arg), recovering a panic into a KindTaskPanic
// *Error rather than letting it crash the worker goroutine. log
// receives a Warn-level record of the panic (a recoverable fault, not
// an invariant violation), so a caller never loses the fact that a
// task aborted abnormally just because it ran detached.
func (t *Task) run(log logger.Logger) (result any) {
	defer func() {
		if r := recover(); r != nil {
			err := asError(r)
			log.Warn("task panicked", logger.String("task", t.id), logger.Error(err))
			result = err
		}
	}()
	return t.fn(t.arg)
}

// storeRet publishes the task's return value. Must be called before
// any attempt to transition into Completed or (for a ghost task)
// Joined, so a joiner that observes either state also observes the
// value.
func (t *Task) storeRet(v any) { t.ret.Store(v) }

// finish attempts Running->Completed; on failure (the task was
// detached after being claimed) it attempts RunningGhost->Joined,
// reporting that the caller (the worker) now owns destroying it.
func (t *Task) finish() (destroy bool) {
	if t.state.CompareAndSwap(uint32(StateRunning), uint32(StateCompleted)) {
		return false
	}
	if t.state.CompareAndSwap(uint32(StateRunningGhost), uint32(StateJoined)) {
		return true
	}
	return false
}
