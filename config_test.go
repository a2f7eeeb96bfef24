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
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_TOML_RoundTrip(t *testing.T) {
	cfg := &Config{MaxWorkers: 7, MaxTasks: 1234}

	doc := cfg.TOML()
	assert.Contains(t, doc, "[task_pool]")
	assert.Contains(t, doc, "max-workers = 7")
	assert.Contains(t, doc, "max-tasks = 1234")

	var decoded struct {
		TaskPool Config `toml:"task_pool"`
	}
	_, err := toml.Decode(doc, &decoded)
	require.NoError(t, err)
	assert.Equal(t, *cfg, decoded.TaskPool)
}

func TestConfig_Validate(t *testing.T) {
	// case 1: in-range config is valid
	assert.NoError(t, (&Config{MaxWorkers: 1, MaxTasks: 0}).Validate())

	// case 2: zero or negative MaxWorkers is rejected
	assert.ErrorIs(t, (&Config{MaxWorkers: 0, MaxTasks: 0}).Validate(), ErrInvalidArgument)

	// case 3: MaxWorkers above the hard cap is rejected
	assert.ErrorIs(t, (&Config{MaxWorkers: MaxWorkers + 1}).Validate(), ErrInvalidArgument)

	// case 4: negative MaxTasks is rejected
	assert.ErrorIs(t, (&Config{MaxWorkers: 1, MaxTasks: -1}).Validate(), ErrInvalidArgument)

	// case 5: MaxTasks above the hard cap is rejected
	assert.ErrorIs(t, (&Config{MaxWorkers: 1, MaxTasks: MaxTasks + 1}).Validate(), ErrInvalidArgument)
}

func TestNewDefaultConfig_CapsAtMaxWorkers(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.GreaterOrEqual(t, cfg.MaxWorkers, 1)
	assert.LessOrEqual(t, cfg.MaxWorkers, MaxWorkers)
	assert.Equal(t, MaxTasks, cfg.MaxTasks)
	assert.NoError(t, cfg.Validate())
}
