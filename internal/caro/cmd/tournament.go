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
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	"laptudirm.com/x/caro/internal/caro/cmd/restart"
	"laptudirm.com/x/caro/pkg/common"
	"laptudirm.com/x/caro/pkg/eve/sprt"
	"laptudirm.com/x/caro/pkg/eve/tournament"
	"laptudirm.com/x/caro/pkg/game"
)

func Tournament() *cobra.Command {
	return &cobra.Command{
		Use:   "tournament details-file",
		Short: "Run a tournament between engine configurations",
		Args:  cobra.ExactArgs(1),
		Long: heredoc.Doc(`tournament plays a tournament between the engine configurations
			described in the given yaml file, for example:

			    engines:
			      - name: hard
			        difficulty: hard
			      - name: deep
			        difficulty: hard
			        depth: 6
			    scheduler: round-robin
			    rounds: 2
			    game-pairs: 10
			    concurrency: 4
			    max-plies: 225

			Every encounter is played as pairs of games with the sides
			swapped, starting from the positions in the optional
			openings file.`),

		RunE: func(cmd *cobra.Command, args []string) error {
			var details tournament.Config
			if err := readYAML(args[0], &details); err != nil {
				return err
			}

			if details.Rules == (game.Rules{}) {
				details.Rules = config.Rules
			}

			tour, err := tournament.NewTournament(details)
			if err != nil {
				return err
			}

			tour.Output = cmd.OutOrStdout()
			logrus.Infof("tournament: playing %d games", tour.TotalGames())
			return tour.Start(cmd.Context())
		},
	}
}

func SPRT() *cobra.Command {
	return &cobra.Command{
		Use:   "sprt details-file",
		Short: "Run a Sequential Probability Ratio Test",
		Args:  cobra.ExactArgs(1),
		Long: heredoc.Doc(`sprt plays pairs of games between the two engine configurations
			described in the given yaml file until the test decides if the
			first one is stronger by elo0 (H0) or elo1 (H1):

			    name: deeper-hard
			    engines:
			      - name: new
			        difficulty: hard
			        depth: 5
			      - name: old
			        difficulty: hard
			    elo0: 0
			    elo1: 10
			    concurrency: 4

			An interrupted test is saved by name and can be continued
			with "caro restart sprt <name>".`),

		RunE: func(cmd *cobra.Command, args []string) error {
			var details sprt.Config
			if err := readYAML(args[0], &details); err != nil {
				return err
			}

			return runSPRT(cmd, details)
		},
	}
}

func runSPRT(cmd *cobra.Command, details sprt.Config) error {
	if err := common.EnsureDirectories(); err != nil {
		return err
	}

	if details.Rules == (game.Rules{}) {
		details.Rules = config.Rules
	}

	test, err := sprt.New(details, common.PausedSPRTDirectory())
	if err != nil {
		return err
	}

	return restart.Run(cmd, test)
}

func readYAML(file string, v any) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}

	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}

	return nil
}
