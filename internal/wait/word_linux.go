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

//go:build linux

package wait

import (
	"time"

	"golang.org/x/sys/unix"
)

// futexBackend blocks directly on the kernel's futex address-wait
// facility.
type futexBackend struct{}

func newBackend(_ *Word) backend { return futexBackend{} }

func (futexBackend) wake(addr *uint32, n int) {
	// FUTEX_WAKE's count is clamped by the kernel to however many
	// waiters actually exist; n is intentionally an overestimate.
	_ = unix.Futex(addr, unix.FUTEX_WAKE|unix.FUTEX_PRIVATE_FLAG, n, nil, nil, 0)
}

func (futexBackend) block(addr *uint32, expected uint32, remaining *time.Duration) error {
	var ts *unix.Timespec
	if remaining != nil {
		t := unix.NsecToTimespec(remaining.Nanoseconds())
		ts = &t
	}

	err := unix.Futex(addr, unix.FUTEX_WAIT|unix.FUTEX_PRIVATE_FLAG, int(expected), ts, nil, 0)
	switch err {
	case nil:
		// Woken by a FUTEX_WAKE, or a spurious return: either way the
		// caller's loop rechecks the value itself.
		return nil
	case unix.EAGAIN:
		// *addr != expected at syscall entry: the value already
		// moved, let the caller's loop observe it.
		return nil
	case unix.EINTR:
		// Interrupted by a signal: let the caller's loop retry.
		return nil
	case unix.ETIMEDOUT:
		return ErrTimeout
	default:
		// Any other failure (e.g. EINVAL from a malformed call) is
		// not expected in normal operation; treat it the same as a
		// spurious wakeup rather than propagating an opaque errno to
		// a caller that only understands "reached" or "timed out".
		return nil
	}
}
