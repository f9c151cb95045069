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

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// Size is the width and height of the board.
	Size = 15

	// WinLength is the length of a run which wins the game.
	WinLength = 5
)

// Center is the middle cell of the board, the only sensible first move.
var Center = Move{Row: Size / 2, Col: Size / 2}

// Player represents one of the two sides of a game.
type Player uint8

const (
	X Player = iota
	O

	PlayerN = 2
)

// Other returns the opponent of the given Player.
func (player Player) Other() Player {
	return player ^ 1
}

func (player Player) String() string {
	if player == X {
		return "x"
	}

	return "o"
}

func (player Player) MarshalText() ([]byte, error) {
	return []byte(player.String()), nil
}

func (player *Player) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "x":
		*player = X
	case "o":
		*player = O
	default:
		return fmt.Errorf("player: invalid player %q", text)
	}

	return nil
}

// Kind is the type of content of a board Cell.
type Kind uint8

const (
	Empty Kind = iota
	Mark
	Bomb
)

// Cell is a single square of the board. A Bomb cell belongs to its Player
// exactly like a Mark does as far as evaluation is concerned.
type Cell struct {
	Kind   Kind
	Player Player
}

func (cell Cell) IsEmpty() bool {
	return cell.Kind == Empty
}

// Owned reports whether the cell is occupied by the given player.
func (cell Cell) Owned(player Player) bool {
	return cell.Kind != Empty && cell.Player == player
}

func (cell Cell) String() string {
	switch cell.Kind {
	case Mark:
		return cell.Player.String()
	case Bomb:
		return strings.ToUpper(cell.Player.String())
	default:
		return "."
	}
}

// Move is a coordinate on the board.
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// NoMove is returned when there is no empty cell left to play.
var NoMove = Move{Row: -1, Col: -1}

// Valid reports whether the move is inside the board.
func (move Move) Valid() bool {
	return move.Row >= 0 && move.Col >= 0 && move.Row < Size && move.Col < Size
}

func (move Move) String() string {
	if !move.Valid() {
		return "none"
	}

	return fmt.Sprintf("(%d, %d)", move.Row, move.Col)
}

// Board is a Size x Size grid stored row-major. It is a plain value, so
// assignment copies it and == compares two boards cell by cell.
type Board struct {
	cells [Size * Size]Cell
}

func index(row, col int) int {
	return row*Size + col
}

// InBounds reports whether the given coordinates are on the board.
func InBounds(row, col int) bool {
	return row >= 0 && col >= 0 && row < Size && col < Size
}

func (b *Board) At(row, col int) Cell {
	return b.cells[index(row, col)]
}

func (b *Board) Set(move Move, cell Cell) {
	b.cells[index(move.Row, move.Col)] = cell
}

// Place puts a plain mark of the given player on the board.
func (b *Board) Place(move Move, player Player) {
	b.Set(move, Cell{Kind: Mark, Player: player})
}

func (b *Board) Clear(move Move) {
	b.cells[index(move.Row, move.Col)] = Cell{}
}

// IsEmpty reports whether the move is on the board and its cell is empty.
func (b *Board) IsEmpty(move Move) bool {
	return move.Valid() && b.cells[index(move.Row, move.Col)].IsEmpty()
}

func (b *Board) Full() bool {
	for _, cell := range b.cells {
		if cell.IsEmpty() {
			return false
		}
	}

	return true
}

// EmptyCells lists every empty cell in row-major order.
func (b *Board) EmptyCells() []Move {
	moves := make([]Move, 0, len(b.cells))
	for i, cell := range b.cells {
		if cell.IsEmpty() {
			moves = append(moves, Move{Row: i / Size, Col: i % Size})
		}
	}

	return moves
}

// Swap returns a copy of the board with the owner of every cell exchanged.
func (b Board) Swap() Board {
	for i := range b.cells {
		if !b.cells[i].IsEmpty() {
			b.cells[i].Player = b.cells[i].Player.Other()
		}
	}

	return b
}

// String returns the board notation of the board: rows separated by '/',
// '.' for empty cells, 'x'/'o' for marks and 'X'/'O' for bombs.
func (b Board) String() string {
	var str strings.Builder
	for row := 0; row < Size; row++ {
		if row > 0 {
			str.WriteByte('/')
		}

		for col := 0; col < Size; col++ {
			str.WriteString(b.At(row, col).String())
		}
	}

	return str.String()
}

// Pretty returns a multi-line rendering of the board with coordinates,
// used by the terminal interface.
func (b Board) Pretty() string {
	var str strings.Builder
	str.WriteString("   ")
	for col := 0; col < Size; col++ {
		fmt.Fprintf(&str, "%3d", col)
	}
	str.WriteByte('\n')

	for row := 0; row < Size; row++ {
		fmt.Fprintf(&str, "%3d", row)
		for col := 0; col < Size; col++ {
			fmt.Fprintf(&str, "%3s", b.At(row, col))
		}
		str.WriteByte('\n')
	}

	return str.String()
}

var ErrNotation = errors.New("board: invalid notation")

// ParseBoard parses a board from its notation. Rows may be separated by
// '/' or newlines and whitespace inside a row is ignored.
func ParseBoard(notation string) (Board, error) {
	var b Board

	rows := strings.FieldsFunc(notation, func(r rune) bool {
		return r == '/' || r == '\n'
	})

	// drop rows which are only whitespace, like the trailing newline
	// of a here-document
	filtered := rows[:0]
	for _, row := range rows {
		if strings.TrimSpace(row) != "" {
			filtered = append(filtered, row)
		}
	}
	rows = filtered

	if len(rows) != Size {
		return b, fmt.Errorf("%w: expected %d rows, found %d", ErrNotation, Size, len(rows))
	}

	for row, str := range rows {
		col := 0
		for _, char := range str {
			var cell Cell
			switch char {
			case ' ', '\t', '\r':
				continue
			case '.':
			case 'x':
				cell = Cell{Kind: Mark, Player: X}
			case 'o':
				cell = Cell{Kind: Mark, Player: O}
			case 'X':
				cell = Cell{Kind: Bomb, Player: X}
			case 'O':
				cell = Cell{Kind: Bomb, Player: O}
			default:
				return Board{}, fmt.Errorf("%w: unknown cell %q in row %d", ErrNotation, char, row)
			}

			if col >= Size {
				return Board{}, fmt.Errorf("%w: row %d is longer than %d", ErrNotation, row, Size)
			}

			b.Set(Move{Row: row, Col: col}, cell)
			col++
		}

		if col != Size {
			return Board{}, fmt.Errorf("%w: row %d has %d cells", ErrNotation, row, col)
		}
	}

	return b, nil
}
