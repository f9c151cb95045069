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

package match

import (
	"fmt"

	"laptudirm.com/x/caro/pkg/engine"
	"laptudirm.com/x/caro/pkg/game"
)

type Config struct {
	// Opening is the board notation of the starting position. An empty
	// opening starts from the empty board.
	Opening string

	Rules game.Rules

	// MaxPlies adjudicates the game as a draw after that many plies
	// unless it is zero.
	MaxPlies int

	// Engines[0] plays X, which moves first on an empty board.
	Engines [2]EngineConfig

	// Options are passed on to the game, mostly for tests.
	Options []game.Option
}

// Run plays out a single game between the two configured engines and
// returns its Result from the perspective of Engines[0], along with the
// reason for the result.
func Run(config *Config) (Result, string) {
	board := engine.Board{}
	if config.Opening != "" {
		var err error
		if board, err = engine.ParseBoard(config.Opening); err != nil {
			return Draw, fmt.Sprintf("invalid opening: %v", err)
		}
	}

	g := game.New(config.Rules, config.Options...)
	g.SetBoard(board)
	g.Turn = sideToMove(&board)

	if game.Five(&board, engine.X) || game.Five(&board, engine.O) {
		return Draw, "invalid opening: game already decided"
	}

	engines := [engine.PlayerN]*engine.Engine{
		engine.X: config.Engines[0].Start(engine.X),
		engine.O: config.Engines[1].Start(engine.O),
	}

	difficulties := [engine.PlayerN]engine.Difficulty{
		engine.X: config.Engines[0].Difficulty,
		engine.O: config.Engines[1].Difficulty,
	}

	for plies := 0; ; plies++ {
		if config.MaxPlies > 0 && plies >= config.MaxPlies {
			return Draw, "ply limit"
		}

		player := g.Turn
		move := engines[player].SelectMove(g.Board, difficulties[player])
		if move == engine.NoMove {
			return Draw, "no move"
		}

		outcome, err := g.Play(move)
		if err != nil {
			return WonBy(player.Other()), fmt.Sprintf("illegal move %v: %v", move, err)
		}

		switch outcome.Status {
		case game.Won:
			return WonBy(outcome.Winner), "five in a row"
		case game.Drawn:
			return Draw, "board full"
		}
	}
}

// sideToMove returns the player to move in an opening, which is X unless
// X has more pieces on the board.
func sideToMove(b *engine.Board) engine.Player {
	var count [engine.PlayerN]int
	for row := 0; row < engine.Size; row++ {
		for col := 0; col < engine.Size; col++ {
			if cell := b.At(row, col); !cell.IsEmpty() {
				count[cell.Player]++
			}
		}
	}

	if count[engine.X] > count[engine.O] {
		return engine.O
	}

	return engine.X
}
