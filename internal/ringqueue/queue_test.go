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

package ringqueue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueue_PushPopFIFO(t *testing.T) {
	q := New[int](2)
	for i := 0; i < 5; i++ {
		q.Push(i)
	}
	assert.Equal(t, 5, q.Size())
	for i := 0; i < 5; i++ {
		assert.Equal(t, i, q.Pop())
	}
	assert.Equal(t, 0, q.Size())
}

func TestQueue_GrowsOnFull(t *testing.T) {
	q := New[int](1)
	assert.Equal(t, 1, q.Cap())
	q.Push(1)
	q.Push(2)
	assert.GreaterOrEqual(t, q.Cap(), 2)
	assert.Equal(t, 1, q.Pop())
	assert.Equal(t, 2, q.Pop())
}

func TestQueue_WraparoundGrowth(t *testing.T) {
	// case 1: fill, drain half, fill again so the logical range wraps
	// past the end of the backing array, then force a grow — this
	// exercises the two-region copy.
	q := New[int](4)
	q.Push(1)
	q.Push(2)
	q.Push(3)
	q.Push(4)
	assert.Equal(t, 1, q.Pop())
	assert.Equal(t, 2, q.Pop())
	q.Push(5)
	q.Push(6) // buffer full again, head now in the middle
	q.Push(7) // forces grow() with a wrapped logical range

	var got []int
	for q.Size() > 0 {
		got = append(got, q.Pop())
	}
	assert.Equal(t, []int{3, 4, 5, 6, 7}, got)
}

func TestQueue_DefaultCapacityOnNonPositive(t *testing.T) {
	q := New[int](0)
	assert.Equal(t, defaultCapacity, q.Cap())

	q2 := New[int](-3)
	assert.Equal(t, defaultCapacity, q2.Cap())
}
