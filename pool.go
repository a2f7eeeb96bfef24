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

// Package taskpool implements a fixed-size worker pool with
// futex-backed task join semantics and detached ("ghost") task
// lifetimes.
package taskpool

import (
	"sync"

	"github.com/lindb/common/pkg/logger"

	"github.com/lindb/taskpool/internal/ringqueue"
)

const (
	// MaxWorkers is the hard system-wide cap on a single Pool's
	// worker count.
	MaxWorkers = 20
	// MaxTasks is the hard system-wide cap on tasks enqueued at once
	// in a single Pool.
	MaxTasks = 100_000
)

// initialQueueCapacity is the ring queue's starting capacity; it
// grows geometrically from here on demand (internal/ringqueue).
const initialQueueCapacity = 16

// Pool owns a bounded set of worker goroutines, a shared FIFO of
// pushed tasks, and the mutex/condvar pair workers park on while
// idle. The zero value is not usable; use New or NewWithConfig.
type Pool struct {
	maxWorkers int
	maxTasks   int

	mu   sync.Mutex
	cond *sync.Cond

	queue        *ringqueue.Queue[*Task]
	spawnedCount int
	freeCount    int
	closed       bool

	workersDone sync.WaitGroup
	stats       *stats
	logger      logger.Logger
}

// New creates a Pool with the given worker cap and the default
// MaxTasks limit. It returns KindInvalidArgument if maxWorkers is out
// of [1, MaxWorkers].
func New(maxWorkers int) (*Pool, error) {
	return NewWithConfig(Config{MaxWorkers: maxWorkers, MaxTasks: MaxTasks})
}

// NewWithConfig creates a Pool sized and capped per cfg (see
// config.go). The queue is allocated here with initialQueueCapacity;
// workers are spawned lazily: construction itself never spawns one.
func NewWithConfig(cfg Config) (*Pool, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	maxTasks := cfg.MaxTasks
	if maxTasks == 0 {
		maxTasks = MaxTasks
	}

	p := &Pool{
		maxWorkers: cfg.MaxWorkers,
		maxTasks:   maxTasks,
		queue:      ringqueue.New[*Task](initialQueueCapacity),
		stats:      newStats(),
		logger:     logger.GetLogger("TaskPool", "Pool"),
	}
	p.cond = sync.NewCond(&p.mu)
	return p, nil
}

// PushTask enqueues t for execution, lazily spawning a new worker if
// none is free and the pool has not yet reached its worker cap.
func (p *Pool) PushTask(t *Task) error {
	p.mu.Lock()

	if p.queue.Size() >= p.maxTasks {
		p.mu.Unlock()
		p.stats.rejected.Inc()
		return ErrTooManyTasks
	}

	if !t.tryPush() {
		p.mu.Unlock()
		return ErrInvalidRepush
	}

	p.queue.Push(t)

	if p.freeCount == 0 && p.spawnedCount < p.maxWorkers {
		p.spawnedCount++
		p.workersDone.Add(1)
		go p.workerLoop()
	}

	p.stats.submitted.Inc()
	p.stats.queueLen.Store(int64(p.queue.Size()))
	// A single waiter is sufficient: each push corresponds to at most
	// one task for a worker to consume.
	p.cond.Signal()

	p.mu.Unlock()
	return nil
}

// workerLoop is the body of a single worker goroutine.
func (p *Pool) workerLoop() {
	defer p.workersDone.Done()
	defer p.stats.workersAlive.Dec()
	p.stats.workersAlive.Inc()

	var prev *Task
	for {
		p.mu.Lock()

		// Finish the previous task's bookkeeping only after retaking
		// the lock, so a concurrent Shutdown never observes a
		// half-finished transition.
		if prev != nil {
			prev.finish()
			p.stats.completed.Inc()
			prev = nil
		}

		p.freeCount++
		for p.queue.Size() == 0 {
			if p.closed {
				// The only cancellation point: a worker may only be
				// torn down while parked here, with the queue empty
				// and itself already accounted for as free.
				p.freeCount--
				p.mu.Unlock()
				return
			}
			p.cond.Wait()
		}
		p.freeCount--

		task := p.queue.Pop()
		p.stats.queueLen.Store(int64(p.queue.Size()))
		p.mu.Unlock()

		ghost, ok := task.tryClaim()
		if !ok {
			p.logger.Error("popped task was not claimable",
				logger.String("task", task.ID()),
				logger.String("state", task.State().String()))
			continue
		}
		if ghost {
			p.stats.ghostClaimed.Inc()
		}

		ret := task.run(p.logger)
		task.storeRet(ret)
		prev = task
	}
}

// Shutdown tears the pool down: it fails with KindHasTasks if any
// task is queued or in flight, otherwise it cancels every parked
// worker and waits for them to exit before returning. After Shutdown
// returns nil, no worker goroutine from this pool is alive.
func (p *Pool) Shutdown() error {
	p.mu.Lock()
	queued := p.queue.Size()
	inFlight := p.spawnedCount - p.freeCount
	if queued != 0 || inFlight != 0 {
		p.mu.Unlock()
		return ErrHasTasks
	}

	p.closed = true
	p.cond.Broadcast()
	p.mu.Unlock()

	p.workersDone.Wait()
	return nil
}

// WorkerCount returns the number of workers spawned so far. This is
// a best-effort instantaneous value unless externally serialized
// with PushTask.
func (p *Pool) WorkerCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.spawnedCount
}

// Stats returns a point-in-time snapshot of the pool's counters.
func (p *Pool) Stats() Stats {
	return p.stats.snapshot()
}
