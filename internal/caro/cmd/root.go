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
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"laptudirm.com/x/caro/internal/caro/cmd/restart"
	"laptudirm.com/x/caro/pkg/common"
)

// config is the configuration loaded before any command is run.
var config = common.DefaultConfig()

func Root() *cobra.Command {
	root := &cobra.Command{
		Use:  "caro",
		Args: cobra.NoArgs,

		Short: "Bomb gomoku engine and tooling",
		Long: heredoc.Doc(`caro plays gomoku on a 15x15 board where any placement may
			turn out to be a time bomb which clears its surroundings when
			it goes off. The first player with five plain marks in a row
			wins.

			Besides playing in the terminal, caro can answer single move
			queries, serve games over http, and pit engine configurations
			against each other in tournaments and SPRTs.`),

		SilenceErrors: true,
		SilenceUsage:  true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")

			var err error
			config, err = common.LoadConfig(path)
			if err != nil {
				return err
			}

			level, err := config.Level()
			if err != nil {
				return err
			}

			logrus.SetLevel(level)

			// --debug and --trace win over the configured level.
			if cmd.Flag("debug").Changed {
				logrus.SetLevel(logrus.DebugLevel)
			}

			if cmd.Flag("trace").Changed {
				logrus.SetLevel(logrus.TraceLevel)
			}

			return nil
		},
	}

	// global flags
	root.PersistentFlags().BoolP("help", "h", false, "Show Help Information")
	root.PersistentFlags().BoolP("version", "v", false, "Show Caro's Version")
	root.PersistentFlags().BoolP("trace", "t", false, "Show Trace Information")
	root.PersistentFlags().BoolP("debug", "d", false, "Show Debug Information")
	root.PersistentFlags().StringP("config", "c", "", "Path to the configuration file")

	versionStr := "v0.1.0\n"
	root.SetVersionTemplate(versionStr)
	root.Version = versionStr

	// Register the various commands.
	root.AddCommand(Play())
	root.AddCommand(Move())
	root.AddCommand(Serve())
	root.AddCommand(Tournament())
	root.AddCommand(SPRT())
	root.AddCommand(Restart())
	root.AddCommand(Config())

	return root
}

func Restart() *cobra.Command {
	cmd := cobra.Command{
		Use:   "restart",
		Short: "Restart or list stopped tests",
	}

	cmd.AddCommand(restart.SPRT())
	cmd.AddCommand(restart.List())
	return &cmd
}
