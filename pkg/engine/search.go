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

// Search is a depth limited minimax search with alpha-beta pruning over a
// scratch board. Every placement made during the search is undone before
// Minimax returns, so the board is left exactly as it was found.
type Search struct {
	Board  *Board
	Player Player // the maximizing player
	Radius int

	// Nodes counts the positions visited so far.
	Nodes int
}

// Minimax returns the value of the position on the board, with Player to
// move if maximizing is set, and its opponent to move otherwise.
func (search *Search) Minimax(depth int, alpha, beta Score, maximizing bool) Score {
	search.Nodes++

	score := Evaluate(search.Board, search.Player)
	if Won(score) || depth == 0 {
		return score
	}

	moves := Candidates(search.Board, search.Radius)
	if len(moves) == 0 {
		// no space left: drawn continuation
		return 0
	}

	if maximizing {
		best := -Inf
		for _, move := range moves {
			search.Board.Place(move, search.Player)
			value := search.Minimax(depth-1, alpha, beta, false)
			search.Board.Clear(move)

			best = max(best, value)
			alpha = max(alpha, value)
			if beta <= alpha {
				break
			}
		}

		return best
	}

	best := Inf
	for _, move := range moves {
		search.Board.Place(move, search.Player.Other())
		value := search.Minimax(depth-1, alpha, beta, true)
		search.Board.Clear(move)

		best = min(best, value)
		beta = min(beta, value)
		if beta <= alpha {
			break
		}
	}

	return best
}
