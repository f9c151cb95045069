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

package game

import "laptudirm.com/x/caro/pkg/engine"

// State is a serializable snapshot of a Game.
type State struct {
	Board    string         `json:"board"`
	Turn     engine.Player  `json:"turn"`
	Bombs    []Bomb         `json:"bombs"`
	Status   Status         `json:"status"`
	Winner   *engine.Player `json:"winner,omitempty"`
	LastMove *engine.Move   `json:"last_move,omitempty"`
	Plies    int            `json:"plies"`
}

func (game *Game) State() State {
	state := State{
		Board:  game.Board.String(),
		Turn:   game.Turn,
		Bombs:  append([]Bomb{}, game.Bombs...),
		Status: game.Status,
		Plies:  game.Plies,
	}

	if game.Status == Won {
		winner := game.Winner
		state.Winner = &winner
	}

	if game.LastMove.Valid() {
		last := game.LastMove
		state.LastMove = &last
	}

	return state
}
