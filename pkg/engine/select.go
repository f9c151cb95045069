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

import "github.com/sirupsen/logrus"

// SelectMove chooses a move for the engine's player on the given board at
// the given difficulty. The board is taken by value and never modified.
// NoMove is returned only when the board has no empty cell.
func (engine *Engine) SelectMove(board Board, difficulty Difficulty) Move {
	empty := board.EmptyCells()
	if len(empty) == 0 {
		return NoMove
	}

	depth, searched := engine.config.Depth(difficulty)
	if !searched {
		return empty[engine.rand.Intn(len(empty))]
	}

	moves := Candidates(&board, engine.config.Radius)
	if len(moves) == 0 {
		moves = empty
	}

	// win at once if possible
	if move, found := engine.winning(&board, moves, engine.player); found {
		engine.log.WithFields(logrus.Fields{
			"difficulty": difficulty,
			"move":       move,
		}).Debug("engine: completing five")
		return move
	}

	// otherwise deny the opponent an immediate win
	if move, found := engine.winning(&board, moves, engine.player.Other()); found {
		engine.log.WithFields(logrus.Fields{
			"difficulty": difficulty,
			"move":       move,
		}).Debug("engine: blocking five")
		return move
	}

	if len(moves) == 1 {
		return moves[0]
	}

	search := Search{
		Board:  &board,
		Player: engine.player,
		Radius: engine.config.Radius,
	}

	best, bestValue, ties := moves[0], -Inf, 0
	for _, move := range moves {
		board.Place(move, engine.player)
		value := search.Minimax(depth, -Inf, Inf, false)
		board.Clear(move)

		switch {
		case value > bestValue:
			best, bestValue, ties = move, value, 1
		case value == bestValue:
			ties++
			if engine.replaceTie(ties) {
				best = move
			}
		}
	}

	engine.log.WithFields(logrus.Fields{
		"difficulty": difficulty,
		"depth":      depth,
		"candidates": len(moves),
		"nodes":      search.Nodes,
		"move":       best,
		"value":      bestValue,
	}).Debug("engine: search finished")

	return best
}

// winning returns the first candidate which completes a winning run for
// the given player.
func (engine *Engine) winning(b *Board, moves []Move, player Player) (Move, bool) {
	for _, move := range moves {
		b.Place(move, player)
		score := Evaluate(b, engine.player)
		b.Clear(move)

		if player == engine.player && score >= Five ||
			player != engine.player && score <= -Five {
			return move, true
		}
	}

	return NoMove, false
}

// replaceTie reports whether the n-th move found with the best value so
// far should replace the current choice.
func (engine *Engine) replaceTie(n int) bool {
	if engine.config.TieBreak == Legacy {
		return engine.rand.Float64() > 0.5
	}

	// reservoir sampling: every tied move ends up chosen with equal odds
	return engine.rand.Intn(n) == 0
}
