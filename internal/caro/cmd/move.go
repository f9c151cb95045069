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

package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"laptudirm.com/x/caro/internal/util"
	"laptudirm.com/x/caro/pkg/engine"
)

func Move() *cobra.Command {
	difficulty := engine.Medium

	cmd := &cobra.Command{
		Use:   "move [board-file]",
		Short: "Print the engine's move for a position",
		Args:  cobra.MaximumNArgs(1),
		Long: heredoc.Doc(`move reads a position in board notation from the given file,
			or from standard input if no file is given, and prints the
			row and column of the move the engine chooses for it.

			The notation has 15 rows of 15 cells, separated by '/' or
			newlines: '.' is an empty cell, 'x' and 'o' are marks, and
			'X' and 'O' are bombs.

			If the board is full, the move printed is "-1 -1".`),

		RunE: func(cmd *cobra.Command, args []string) error {
			var notation []byte
			var err error
			if len(args) == 1 {
				notation, err = os.ReadFile(args[0])
			} else {
				notation, err = io.ReadAll(cmd.InOrStdin())
			}

			if err != nil {
				return err
			}

			board, err := engine.ParseBoard(string(notation))
			if err != nil {
				return err
			}

			player := engine.O
			side, _ := cmd.Flags().GetString("player")
			if err := player.UnmarshalText([]byte(side)); err != nil {
				return err
			}

			var move engine.Move
			util.Spin(cmd.ErrOrStderr(), "thinking...", func() {
				move = engine.New(player, config.Engine).SelectMove(board, difficulty)
			})

			fmt.Fprintf(cmd.OutOrStdout(), "%d %d\n", move.Row, move.Col)
			return nil
		},
	}

	cmd.Flags().Var(&difficulty, "difficulty", "Engine difficulty: easy, medium, or hard")
	cmd.Flags().String("player", "o", "Side the engine plays")
	return cmd
}
