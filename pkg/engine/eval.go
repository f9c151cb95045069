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

// lines holds the cell indices of every row, column, and diagonal which is
// long enough to contain a winning run.
var lines = buildLines()

func buildLines() [][]int {
	var lines [][]int

	// rows and columns
	for i := 0; i < Size; i++ {
		lines = append(lines, collectLine(i, 0, 0, 1))
		lines = append(lines, collectLine(0, i, 1, 0))
	}

	// diagonals (\) and anti-diagonals (/) starting on the top edge
	for col := 0; col < Size; col++ {
		lines = append(lines, collectLine(0, col, 1, 1))
		lines = append(lines, collectLine(0, col, 1, -1))
	}

	// and the ones starting on the side edges below the top row
	for row := 1; row < Size; row++ {
		lines = append(lines, collectLine(row, 0, 1, 1))
		lines = append(lines, collectLine(row, Size-1, 1, -1))
	}

	long := lines[:0]
	for _, line := range lines {
		if len(line) >= WinLength {
			long = append(long, line)
		}
	}

	return long
}

func collectLine(row, col, dRow, dCol int) []int {
	var line []int
	for InBounds(row, col) {
		line = append(line, index(row, col))
		row += dRow
		col += dCol
	}

	return line
}

// Tally sums the line scores of every line on the board.
func (b *Board) Tally() Tally {
	var tally Tally
	var buffer [Size]Cell

	for _, line := range lines {
		cells := buffer[:len(line)]
		for i, idx := range line {
			cells[i] = b.cells[idx]
		}

		tally.Add(EvaluateLine(cells))
	}

	return tally
}

// Evaluate returns the heuristic value of the board from the perspective
// of max. A board on which exactly one player has a winning run scores
// exactly Five for that player, so the result always reaches the winning
// magnitude, with the right sign, once the game is decided.
func Evaluate(b *Board, max Player) Score {
	tally := b.Tally()

	maxWon := tally[max] >= Five
	minWon := tally[max.Other()] >= Five

	switch {
	case maxWon && !minWon:
		return Five
	case minWon && !maxWon:
		return -Five
	}

	return tally.Net(max)
}

// Won reports whether the score denotes a completed winning run.
func Won(score Score) bool {
	return score >= Five || score <= -Five
}
