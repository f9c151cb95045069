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

// Package game implements the rules of bomb gomoku: two players alternate
// placing marks on the board, any placement may turn out to be a time bomb,
// and the first player with five plain marks in a row wins.
package game

import (
	"errors"
	"fmt"

	"laptudirm.com/x/caro/pkg/engine"
	"lukechampine.com/frand"
)

var (
	ErrGameOver    = errors.New("game: game is over")
	ErrOutOfBounds = errors.New("game: move out of bounds")
	ErrOccupied    = errors.New("game: cell is occupied")
)

// Rules are the tunable parameters of the bomb mechanic.
type Rules struct {
	// BombChance is the probability of a placement becoming a bomb.
	BombChance float64 `yaml:"bomb-chance" json:"bomb_chance"`

	// BombTimer is the number of plies a bomb survives after the ply
	// it was placed on.
	BombTimer int `yaml:"bomb-timer" json:"bomb_timer"`
}

func DefaultRules() Rules {
	return Rules{
		BombChance: 0.15,
		BombTimer:  3,
	}
}

// Bomb is a ticking bomb on the board.
type Bomb struct {
	Move  engine.Move   `json:"move"`
	Timer int           `json:"timer"`
	Owner engine.Player `json:"owner"`
}

type Status uint8

const (
	Playing Status = iota
	Won
	Drawn
)

func (status Status) String() string {
	switch status {
	case Playing:
		return "playing"
	case Won:
		return "won"
	case Drawn:
		return "drawn"
	default:
		return fmt.Sprintf("status(%d)", uint8(status))
	}
}

func (status Status) MarshalText() ([]byte, error) {
	return []byte(status.String()), nil
}

func (status *Status) UnmarshalText(text []byte) error {
	for s := Playing; s <= Drawn; s++ {
		if s.String() == string(text) {
			*status = s
			return nil
		}
	}

	return fmt.Errorf("status: unknown status %q", text)
}

// Outcome describes what happened during a single ply.
type Outcome struct {
	Player engine.Player `json:"player"`
	Move   engine.Move   `json:"move"`
	Bomb   bool          `json:"bomb"`

	// Detonated lists the bombs which went off and Cleared every cell
	// their blasts emptied.
	Detonated []engine.Move `json:"detonated,omitempty"`
	Cleared   []engine.Move `json:"cleared,omitempty"`

	Status Status        `json:"status"`
	Winner engine.Player `json:"winner"`
}

// Rand is the randomness source deciding which placements are bombs.
type Rand interface {
	Float64() float64
}

type sharedRand struct{}

func (sharedRand) Float64() float64 { return frand.Float64() }

// Events receives notifications about the game as it is played.
type Events interface {
	Placed(player engine.Player, move engine.Move, bomb bool)
	Exploded(detonated, cleared []engine.Move)
	Ended(status Status, winner engine.Player)
}

// NopEvents ignores every event.
type NopEvents struct{}

func (NopEvents) Placed(engine.Player, engine.Move, bool) {}
func (NopEvents) Exploded(_, _ []engine.Move)             {}
func (NopEvents) Ended(Status, engine.Player)             {}

type Option func(*Game)

func WithRand(rand Rand) Option {
	return func(game *Game) {
		game.rand = rand
	}
}

func WithEvents(events Events) Option {
	return func(game *Game) {
		game.events = events
	}
}

// Game is a single game of bomb gomoku. X always moves first. A Game is
// not safe for concurrent use.
type Game struct {
	Board    engine.Board
	Turn     engine.Player
	Bombs    []Bomb
	Status   Status
	Winner   engine.Player
	LastMove engine.Move
	Plies    int

	rules  Rules
	rand   Rand
	events Events
}

func New(rules Rules, options ...Option) *Game {
	game := &Game{
		Turn:     engine.X,
		LastMove: engine.NoMove,

		rules:  rules,
		rand:   sharedRand{},
		events: NopEvents{},
	}

	for _, option := range options {
		option(game)
	}

	return game
}

func (game *Game) Rules() Rules {
	return game.rules
}

// SetBoard replaces the position, arming every bomb cell on the new board
// with a full timer.
func (game *Game) SetBoard(board engine.Board) {
	game.Board = board
	game.Bombs = game.Bombs[:0]

	for row := 0; row < engine.Size; row++ {
		for col := 0; col < engine.Size; col++ {
			if cell := board.At(row, col); cell.Kind == engine.Bomb {
				game.Bombs = append(game.Bombs, Bomb{
					Move:  engine.Move{Row: row, Col: col},
					Timer: game.rules.BombTimer + 1,
					Owner: cell.Player,
				})
			}
		}
	}
}

// Play makes the player to move place a mark on the given cell, ticks
// every bomb on the board, and settles the result of the ply.
func (game *Game) Play(move engine.Move) (Outcome, error) {
	switch {
	case game.Status != Playing:
		return Outcome{}, ErrGameOver
	case !move.Valid():
		return Outcome{}, fmt.Errorf("%w: %v", ErrOutOfBounds, move)
	case !game.Board.IsEmpty(move):
		return Outcome{}, fmt.Errorf("%w: %v", ErrOccupied, move)
	}

	player := game.Turn
	outcome := Outcome{Player: player, Move: move}

	kind := engine.Mark
	if game.rand.Float64() < game.rules.BombChance {
		kind = engine.Bomb
		outcome.Bomb = true
		game.Bombs = append(game.Bombs, Bomb{
			Move:  move,
			Timer: game.rules.BombTimer + 1,
			Owner: player,
		})
	}

	game.Board.Set(move, engine.Cell{Kind: kind, Player: player})
	game.LastMove = move
	game.Plies++
	game.events.Placed(player, move, outcome.Bomb)

	if Five(&game.Board, player) {
		game.end(Won, player)
		return game.settle(outcome), nil
	}

	outcome.Detonated, outcome.Cleared = game.tick()
	if len(outcome.Detonated) > 0 {
		game.events.Exploded(outcome.Detonated, outcome.Cleared)

		switch {
		case Five(&game.Board, player):
			game.end(Won, player)
		case Five(&game.Board, player.Other()):
			game.end(Won, player.Other())
		case game.Board.Full() && len(game.Bombs) == 0:
			game.end(Drawn, player)
		default:
			game.Turn = player.Other()
		}

		return game.settle(outcome), nil
	}

	if game.Board.Full() {
		game.end(Drawn, player)
	} else {
		game.Turn = player.Other()
	}

	return game.settle(outcome), nil
}

// tick counts every bomb down by one ply and detonates the ones which run
// out. A blast clears the bomb's cell and its four orthogonal neighbours,
// and any bomb whose cell is cleared is defused.
func (game *Game) tick() (detonated, cleared []engine.Move) {
	var blast [engine.Size * engine.Size]bool

	remaining := game.Bombs[:0]
	for _, bomb := range game.Bombs {
		bomb.Timer--
		if bomb.Timer > 0 {
			remaining = append(remaining, bomb)
			continue
		}

		detonated = append(detonated, bomb.Move)
		for _, d := range [...]engine.Move{{}, {Row: 1}, {Row: -1}, {Col: 1}, {Col: -1}} {
			cell := engine.Move{Row: bomb.Move.Row + d.Row, Col: bomb.Move.Col + d.Col}
			if cell.Valid() {
				blast[cell.Row*engine.Size+cell.Col] = true
			}
		}
	}

	if len(detonated) == 0 {
		game.Bombs = remaining
		return nil, nil
	}

	for i, hit := range blast {
		if !hit {
			continue
		}

		cell := engine.Move{Row: i / engine.Size, Col: i % engine.Size}
		if !game.Board.IsEmpty(cell) {
			game.Board.Clear(cell)
			cleared = append(cleared, cell)
		}
	}

	armed := remaining[:0]
	for _, bomb := range remaining {
		if !blast[bomb.Move.Row*engine.Size+bomb.Move.Col] {
			armed = append(armed, bomb)
		}
	}

	game.Bombs = armed
	return detonated, cleared
}

func (game *Game) end(status Status, winner engine.Player) {
	game.Status = status
	game.Winner = winner
	game.events.Ended(status, winner)
}

func (game *Game) settle(outcome Outcome) Outcome {
	outcome.Status = game.Status
	outcome.Winner = game.Winner
	return outcome
}

// Five reports whether the player has WinLength plain marks in a row.
// Bombs never count towards a win.
func Five(b *engine.Board, player engine.Player) bool {
	mark := engine.Cell{Kind: engine.Mark, Player: player}
	directions := [...]engine.Move{{Col: 1}, {Row: 1}, {Row: 1, Col: 1}, {Row: 1, Col: -1}}

	for row := 0; row < engine.Size; row++ {
		for col := 0; col < engine.Size; col++ {
			if b.At(row, col) != mark {
				continue
			}

			for _, d := range directions {
				count := 1
				for r, c := row+d.Row, col+d.Col; count < engine.WinLength; r, c = r+d.Row, c+d.Col {
					if !engine.InBounds(r, c) || b.At(r, c) != mark {
						break
					}
					count++
				}

				if count >= engine.WinLength {
					return true
				}
			}
		}
	}

	return false
}
