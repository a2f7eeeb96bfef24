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
	"fmt"

	"github.com/shirou/gopsutil/v3/cpu"
)

// Config controls a Pool's sizing. Both fields carry the same
// toml/env tag pair the rest of the ambient config layer uses, so a
// Config embeds cleanly into a larger application's TOML document.
type Config struct {
	// MaxWorkers bounds the number of worker goroutines the pool will
	// ever spawn. Must be within [1, MaxWorkers].
	MaxWorkers int `env:"MAX_WORKERS" toml:"max-workers"`
	// MaxTasks bounds the number of tasks that may sit in the queue at
	// once. Must be within [0, MaxTasks]; zero falls back to MaxTasks.
	MaxTasks int `env:"MAX_TASKS" toml:"max-tasks"`
}

// TOML returns Config's toml representation, in the same documented,
// env-annotated style the rest of the config package uses.
func (c *Config) TOML() string {
	return fmt.Sprintf(`
## Config for the task pool
[task_pool]
## upper bound on the number of worker goroutines ever spawned
## Default: %d
## Env: TASKPOOL_MAX_WORKERS
max-workers = %d
## upper bound on tasks resident in the queue at once
## Default: %d
## Env: TASKPOOL_MAX_TASKS
max-tasks = %d`,
		c.MaxWorkers, c.MaxWorkers,
		c.MaxTasks, c.MaxTasks,
	)
}

// Validate reports whether c can be used to construct a Pool.
func (c *Config) Validate() error {
	if c.MaxWorkers < 1 || c.MaxWorkers > MaxWorkers {
		return newError(KindInvalidArgument,
			"max-workers must be within [1, %d], got %d", MaxWorkers, c.MaxWorkers)
	}
	if c.MaxTasks < 0 || c.MaxTasks > MaxTasks {
		return newError(KindInvalidArgument,
			"max-tasks must be within [0, %d], got %d", MaxTasks, c.MaxTasks)
	}
	return nil
}

// NewDefaultConfig sizes MaxWorkers off the host's logical CPU count
// (capped at MaxWorkers), falling back to a conservative default if
// the count cannot be determined.
func NewDefaultConfig() *Config {
	const fallbackWorkers = 4

	workers, err := cpu.Counts(true)
	if err != nil || workers <= 0 {
		workers = fallbackWorkers
	}
	if workers > MaxWorkers {
		workers = MaxWorkers
	}

	return &Config{
		MaxWorkers: workers,
		MaxTasks:   MaxTasks,
	}
}
