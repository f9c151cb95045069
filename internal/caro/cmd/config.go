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

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
	"laptudirm.com/x/caro/pkg/common"
)

func Config() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the configuration in use",
		Args:  cobra.NoArgs,
		Long: heredoc.Docf(`config prints the configuration caro is using, which is read
			from %s unless --config is given. The
			environment variables %s and %s override
			the server address and the log level.

			With --init, the default configuration file is written to
			that path if it does not exist yet.`, common.ConfigFile, common.EnvAddr, common.EnvLogLevel),

		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")
			if path == "" {
				path = common.ConfigFile
			}

			out := cmd.OutOrStdout()

			if cmd.Flag("init").Changed {
				created, err := common.TryCreate(path, common.DefaultConfigFile)
				if err != nil {
					return err
				}

				if created {
					fmt.Fprintf(out, "\x1b[32mCreated\x1b[0m %s\n", path)
				} else {
					fmt.Fprintf(out, "\x1b[33mExists\x1b[0m %s\n", path)
				}

				return nil
			}

			data, err := yaml.Marshal(config)
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "# %s\n%s", path, data)
			return nil
		},
	}

	cmd.Flags().Bool("init", false, "Write the default configuration file")
	return cmd
}
