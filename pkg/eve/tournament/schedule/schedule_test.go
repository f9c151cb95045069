// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encounters(scheduler Scheduler, n int) [][2]int {
	scheduler.Initialize(n)

	var pairs [][2]int
	for i := 0; i < scheduler.TotalEncounters(); i++ {
		p1, p2 := scheduler.NextEncounter()
		pairs = append(pairs, [2]int{p1, p2})
	}

	return pairs
}

func TestRoundRobin(t *testing.T) {
	scheduler, err := New("round-robin")
	require.NoError(t, err)

	assert.Equal(t, [][2]int{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}}, encounters(scheduler, 4))

	// a new round starts over
	assert.Equal(t, [][2]int{{0, 1}}, encounters(scheduler, 2))
}

func TestGauntlet(t *testing.T) {
	scheduler, err := New("gauntlet")
	require.NoError(t, err)

	assert.Equal(t, [][2]int{{0, 1}, {0, 2}, {0, 3}}, encounters(scheduler, 4))
	assert.Empty(t, encounters(scheduler, 1))
}

func TestUnknownScheduler(t *testing.T) {
	_, err := New("swiss")
	assert.Error(t, err)
}
