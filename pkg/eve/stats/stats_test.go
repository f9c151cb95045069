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

package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoppingBounds(t *testing.T) {
	lower, upper := StoppingBounds(0.05, 0.05)
	assert.InDelta(t, math.Log(0.05/0.95), lower, 1e-12)
	assert.InDelta(t, -lower, upper, 1e-12)
}

func TestPhiInv(t *testing.T) {
	assert.InDelta(t, 1.959964, phiInv(0.975), 1e-6)
	assert.InDelta(t, -1.959964, phiInv(0.025), 1e-6)
	assert.InDelta(t, 0, phiInv(0.5), 1e-12)
}

func TestElo(t *testing.T) {
	lower, elo, upper := Elo(0, 0, 0)
	assert.Zero(t, lower)
	assert.Zero(t, elo)
	assert.Zero(t, upper)

	lower, elo, upper = Elo(60, 20, 20)
	assert.InDelta(t, -400*math.Log10(1/0.7-1), elo, 1e-9)
	assert.Less(t, lower, elo)
	assert.Greater(t, upper, elo)

	_, mirrored, _ := Elo(20, 20, 60)
	assert.InDelta(t, -elo, mirrored, 1e-9)

	// more games, tighter interval
	lower2, _, upper2 := Elo(600, 200, 200)
	assert.Less(t, upper2-lower2, upper-lower)
}

func TestSPRT(t *testing.T) {
	assert.Positive(t, SPRT(600, 200, 200, 0, 10))
	assert.Negative(t, SPRT(200, 200, 600, 0, 10))

	// stronger evidence moves the ratio further
	assert.Greater(t, SPRT(1200, 400, 400, 0, 10), SPRT(600, 200, 200, 0, 10))
}

func TestPenta(t *testing.T) {
	assert.Positive(t, PentaSPRT(10, 20, 100, 60, 40, 0, 5))
	assert.Negative(t, PentaSPRT(40, 60, 100, 20, 10, 0, 5))

	lower, elo, upper := PentaElo(10, 20, 100, 60, 40)
	assert.Positive(t, elo)
	assert.Less(t, lower, elo)
	assert.Greater(t, upper, elo)

	_, even, _ := PentaElo(20, 20, 20, 20, 20)
	assert.InDelta(t, 0, even, 1e-9)
}
