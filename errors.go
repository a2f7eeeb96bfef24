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

import "fmt"

// Kind discriminates the recoverable error taxonomy this package
// returns. It is never an exception: every fallible operation returns
// a tagged *Error (or nil).
type Kind string

const (
	// KindInvalidArgument is returned when max_workers or max_tasks is
	// out of range.
	KindInvalidArgument Kind = "INVALID_ARGUMENT"
	// KindHasTasks is returned when Shutdown is attempted with a
	// non-empty queue or in-flight tasks.
	KindHasTasks Kind = "HAS_TASKS"
	// KindTooManyTasks is returned when a push would exceed MaxTasks.
	KindTooManyTasks Kind = "TOO_MANY_TASKS"
	// KindInvalidRepush is returned when pushing a task not in
	// Created or Joined state.
	KindInvalidRepush Kind = "INVALID_REPUSH"
	// KindTaskNotPushed is returned when joining or detaching a
	// Created task.
	KindTaskNotPushed Kind = "TASK_NOT_PUSHED"
	// KindTaskInPool is returned when deleting a task in a
	// non-terminal state.
	KindTaskInPool Kind = "TASK_IN_POOL"
	// KindTimeout is returned by TimedJoin when the deadline elapses.
	KindTimeout Kind = "TIMEOUT"
	// KindTaskPanic tags the return value delivered to a joiner when
	// the task function panicked instead of returning normally.
	KindTaskPanic Kind = "TASK_PANIC"
)

// Error is the tagged error type returned by every fallible operation
// in this package.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is supports errors.Is(err, taskpool.ErrHasTasks) and friends by
// comparing Kind rather than identity, since every call site
// allocates its own *Error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Sentinels for errors.Is comparisons against a specific Kind.
var (
	ErrInvalidArgument = &Error{Kind: KindInvalidArgument}
	ErrHasTasks        = &Error{Kind: KindHasTasks}
	ErrTooManyTasks    = &Error{Kind: KindTooManyTasks}
	ErrInvalidRepush   = &Error{Kind: KindInvalidRepush}
	ErrTaskNotPushed   = &Error{Kind: KindTaskNotPushed}
	ErrTaskInPool      = &Error{Kind: KindTaskInPool}
	ErrTimeout         = &Error{Kind: KindTimeout}
)

// asError converts a recovered panic value into an *Error tagged
// KindTaskPanic.
func asError(r any) *Error {
	switch v := r.(type) {
	case error:
		return newError(KindTaskPanic, "%v", v)
	default:
		return newError(KindTaskPanic, "%v", r)
	}
}
