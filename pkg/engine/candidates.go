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

// DefaultRadius is the distance from existing marks inside which empty
// cells are considered for search.
const DefaultRadius = 2

// Candidates returns the empty cells within Chebyshev distance radius of
// any occupied cell, each once, in row-major order. On an empty board the
// only candidate is the Center.
func Candidates(b *Board, radius int) []Move {
	var near [Size * Size]bool
	occupied := false

	for i, cell := range b.cells {
		if cell.IsEmpty() {
			continue
		}

		occupied = true
		row, col := i/Size, i%Size
		for r := row - radius; r <= row+radius; r++ {
			for c := col - radius; c <= col+radius; c++ {
				if InBounds(r, c) {
					near[index(r, c)] = true
				}
			}
		}
	}

	if !occupied {
		return []Move{Center}
	}

	var moves []Move
	for i, cell := range b.cells {
		if near[i] && cell.IsEmpty() {
			moves = append(moves, Move{Row: i / Size, Col: i % Size})
		}
	}

	return moves
}
