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
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"laptudirm.com/x/caro/internal/util"
	"laptudirm.com/x/caro/pkg/engine"
	"laptudirm.com/x/caro/pkg/game"
)

func Play() *cobra.Command {
	difficulty := engine.Medium

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a game in the terminal",
		Args:  cobra.NoArgs,
		Long: heredoc.Doc(`play starts a game against the engine, or between two players
			sharing the terminal with --mode pvp. Moves are entered as a
			zero-based row and column separated by a space, like "7 7"
			for the center of the board.

			Bombs are shown with capital letters. A bomb goes off after
			a few plies and clears its cell and its four neighbours.`),

		RunE: func(cmd *cobra.Command, args []string) error {
			human := engine.X
			side, _ := cmd.Flags().GetString("human")
			if err := human.UnmarshalText([]byte(side)); err != nil {
				return err
			}

			mode, _ := cmd.Flags().GetString("mode")
			var pvp bool
			switch mode {
			case "ai":
			case "pvp":
				pvp = true
			default:
				return fmt.Errorf("play: unknown mode %q", mode)
			}

			out := cmd.OutOrStdout()
			terminal := &terminalEvents{out: out, human: human, pvp: pvp}

			g := game.New(config.Rules, game.WithEvents(terminal))
			computer := engine.New(human.Other(), config.Engine)

			input := bufio.NewScanner(cmd.InOrStdin())
			for g.Status == game.Playing {
				if !pvp && g.Turn == computer.Player() {
					var move engine.Move
					util.Spin(cmd.ErrOrStderr(), "thinking...", func() {
						move = computer.SelectMove(g.Board, difficulty)
					})

					if _, err := g.Play(move); err != nil {
						return fmt.Errorf("play: engine: %w", err)
					}

					continue
				}

				fmt.Fprintln(out, g.Board.Pretty())
				if pvp {
					fmt.Fprintf(out, "%s to move\n", g.Turn)
				}

				move, err := prompt(out, input)
				if errors.Is(err, io.EOF) {
					return nil
				} else if err != nil {
					return err
				}

				if _, err := g.Play(move); err != nil {
					fmt.Fprintf(out, "\x1b[31m%v\x1b[0m\n", err)
				}
			}

			fmt.Fprintln(out, g.Board.Pretty())
			return nil
		},
	}

	cmd.Flags().Var(&difficulty, "difficulty", "Engine difficulty: easy, medium, or hard")
	cmd.Flags().String("human", "x", "Side played by the human: x moves first")
	cmd.Flags().String("mode", "ai", "Opponent: ai for the engine, pvp for a second player")
	return cmd
}

// prompt reads moves until a well formed one is entered.
func prompt(out io.Writer, input *bufio.Scanner) (engine.Move, error) {
	for {
		fmt.Fprint(out, "move> ")
		if !input.Scan() {
			if err := input.Err(); err != nil {
				return engine.NoMove, err
			}

			return engine.NoMove, io.EOF
		}

		move, err := parseMove(input.Text())
		if err == nil {
			return move, nil
		}

		fmt.Fprintf(out, "\x1b[31m%v\x1b[0m\n", err)
	}
}

func parseMove(text string) (engine.Move, error) {
	var move engine.Move
	if _, err := fmt.Sscan(strings.TrimSpace(text), &move.Row, &move.Col); err != nil {
		return engine.NoMove, fmt.Errorf("invalid move %q: expected <row> <col>", text)
	}

	return move, nil
}

// terminalEvents reports game events in the terminal, ringing the bell
// when bombs go off.
type terminalEvents struct {
	out   io.Writer
	human engine.Player
	pvp   bool
}

func (events *terminalEvents) Placed(player engine.Player, move engine.Move, bomb bool) {
	var who string
	switch {
	case events.pvp:
		who = "player"
	case player == events.human:
		who = "you"
	default:
		who = "engine"
	}

	if bomb {
		fmt.Fprintf(events.out, "%s (%s) planted a \x1b[33mbomb\x1b[0m at %v\n", who, player, move)
		return
	}

	fmt.Fprintf(events.out, "%s (%s) played %v\n", who, player, move)
}

func (events *terminalEvents) Exploded(detonated, cleared []engine.Move) {
	fmt.Fprintf(events.out, "\a\x1b[31mboom!\x1b[0m %d bomb(s) went off, clearing %v\n", len(detonated), cleared)
}

func (events *terminalEvents) Ended(status game.Status, winner engine.Player) {
	switch {
	case status == game.Drawn:
		fmt.Fprintln(events.out, "\x1b[33mThe game is drawn.\x1b[0m")
	case events.pvp:
		fmt.Fprintf(events.out, "\x1b[32mPlayer %s wins!\x1b[0m\n", winner)
	case winner == events.human:
		fmt.Fprintln(events.out, "\x1b[32mYou win!\x1b[0m")
	default:
		fmt.Fprintln(events.out, "\x1b[31mThe engine wins.\x1b[0m")
	}
}
