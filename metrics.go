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

import "go.uber.org/atomic"

// Stats is a point-in-time snapshot of a Pool's counters, returned by
// Pool.Stats.
type Stats struct {
	Submitted    int64
	Completed    int64
	Rejected     int64
	GhostClaimed int64
	QueueLen     int64
	WorkersAlive int64
}

// stats holds a Pool's live, lock-free counters: one atomic field per
// counter, updated in place with no shared lock.
type stats struct {
	submitted    atomic.Int64
	completed    atomic.Int64
	rejected     atomic.Int64
	ghostClaimed atomic.Int64
	queueLen     atomic.Int64
	workersAlive atomic.Int64
}

func newStats() *stats {
	return &stats{}
}

func (s *stats) snapshot() Stats {
	return Stats{
		Submitted:    s.submitted.Load(),
		Completed:    s.completed.Load(),
		Rejected:     s.rejected.Load(),
		GhostClaimed: s.ghostClaimed.Load(),
		QueueLen:     s.queueLen.Load(),
		WorkersAlive: s.workersAlive.Load(),
	}
}
