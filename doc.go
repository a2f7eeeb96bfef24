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

// Package taskpool is a fixed-size worker pool.
//
// A Pool holds at most Config.MaxWorkers goroutines, spawned lazily
// as tasks arrive, and a bounded FIFO of pushed Tasks. A Task moves
// through a small state machine (Created -> Pushed -> Running ->
// Completed -> Joined, with parallel "ghost" states reachable via
// Detach) guarded by a futex-backed word rather than a channel, so
// that Join/TimedJoin can block without pinning a goroutine to a
// channel receive.
//
// Typical use:
//
//	p, err := taskpool.New(4)
//	t := taskpool.NewTask(func(arg any) any { return arg.(int) * 2 }, 21)
//	_ = p.PushTask(t)
//	v, _ := t.Join() // v == 42
//	_ = p.Shutdown()
package taskpool
