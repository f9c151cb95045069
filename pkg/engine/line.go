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

package engine

// Score is the signed value of a position. Positive values favor the
// maximizing player and negative values favor its opponent.
type Score int64

// Pattern scores. A whole board holds at most 4*Size*Size line cells and a
// run of length k occupies k+1 of them together with its separator, so the
// total one player can collect from a tier is bounded. Every tier is larger
// than that bound for the tiers below it, and Five is larger than the bound
// for everything else, so no pile of weaker patterns outweighs a stronger
// one.
const (
	Five Score = 10_000_000_000

	FourOpen   Score = 40_000_000
	FourClosed Score = 15_000_000

	ThreeOpen   Score = 50_000
	ThreeClosed Score = 20_000

	TwoOpen   Score = 50
	TwoClosed Score = 10

	// Inf is larger than any score Evaluate can return.
	Inf Score = 1 << 62
)

// Tally holds the pattern score of each player, indexed by Player.
type Tally [PlayerN]Score

// Net returns the score of max minus the score of its opponent.
func (tally Tally) Net(max Player) Score {
	return tally[max] - tally[max.Other()]
}

func (tally *Tally) Add(other Tally) {
	tally[X] += other[X]
	tally[O] += other[O]
}

// runScore classifies a maximal run of the given length by the number of
// empty cells directly adjacent to its ends.
func runScore(length, open int) Score {
	if length >= WinLength {
		return Five
	}

	switch {
	case length == 4 && open == 2:
		return FourOpen
	case length == 4 && open == 1:
		return FourClosed
	case length == 3 && open == 2:
		return ThreeOpen
	case length == 3 && open == 1:
		return ThreeClosed
	case length == 2 && open == 2:
		return TwoOpen
	case length == 2 && open == 1:
		return TwoClosed
	}

	return 0
}

// EvaluateLine scores every maximal run of one player's cells in a single
// line. An end is open only if the neighbouring cell is inside the line
// and empty.
func EvaluateLine(line []Cell) Tally {
	var tally Tally

	for i := 0; i < len(line); {
		if line[i].IsEmpty() {
			i++
			continue
		}

		player := line[i].Player
		start := i
		for i < len(line) && line[i].Owned(player) {
			i++
		}

		open := 0
		if start > 0 && line[start-1].IsEmpty() {
			open++
		}
		if i < len(line) && line[i].IsEmpty() {
			open++
		}

		tally[player] += runScore(i-start, open)
	}

	return tally
}
