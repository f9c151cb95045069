// Copyright © 2023 Rak Laptudirm <rak@laptudirm.com>
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

// RoundRobin pits every engine against every other engine once per round.
type RoundRobin struct {
	playerCount int
	p1, p2      int
}

func (r *RoundRobin) Initialize(n int) {
	r.playerCount = n
	r.p1, r.p2 = 0, 0
}

func (r *RoundRobin) NextEncounter() (int, int) {
	r.p2++
	if r.p2 >= r.playerCount {
		r.p1++
		r.p2 = r.p1 + 1
	}

	return r.p1, r.p2
}

func (r *RoundRobin) TotalEncounters() int {
	return r.playerCount * (r.playerCount - 1) / 2
}
