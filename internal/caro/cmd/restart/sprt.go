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

package restart

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"laptudirm.com/x/caro/pkg/common"
	"laptudirm.com/x/caro/pkg/eve/sprt"
)

func SPRT() *cobra.Command {
	return &cobra.Command{
		Use:   "sprt test-name",
		Short: "Restart a Sequential Probability Ratio Test",
		Args:  cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := sprt.Load(common.PausedSPRTDirectory(), args[0])
			if err != nil {
				return err
			}

			test, err := sprt.New(config, common.PausedSPRTDirectory())
			if err != nil {
				return err
			}

			logrus.Infof("sprt: continuing %s after %d pairs", config.Name, config.State.Pairs())
			return Run(cmd, test)
		},
	}
}

func List() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the stopped tests",
		Args:  cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := sprt.List(common.PausedSPRTDirectory())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(names) == 0 {
				fmt.Fprintln(out, "\x1b[31mNo Stopped Tests.\x1b[0m")
				return nil
			}

			fmt.Fprintln(out, "\x1b[32mStopped SPRTs\x1b[0m:")
			for _, name := range names {
				fmt.Fprintf(out, "- \x1b[34m%s\x1b[0m\n", name)
			}

			return nil
		},
	}
}

// Run plays the test until it is decided. An interrupted named test is
// saved and is not reported as an error.
func Run(cmd *cobra.Command, test *sprt.SPRT) error {
	test.Output = cmd.OutOrStdout()

	err := test.Start(cmd.Context())
	if errors.Is(err, context.Canceled) && test.Name != "" {
		logrus.Infof("sprt: paused, continue with \"caro restart sprt %s\"", test.Name)
		return nil
	}

	return err
}
