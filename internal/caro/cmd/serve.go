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
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"laptudirm.com/x/caro/pkg/server"
)

func Serve() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve games against the engine over http",
		Args:  cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			addr := config.Server.Addr
			if cmd.Flag("addr").Changed {
				addr, _ = cmd.Flags().GetString("addr")
			}

			if !logrus.IsLevelEnabled(logrus.DebugLevel) {
				gin.SetMode(gin.ReleaseMode)
			}

			srv := server.New(server.Config{
				Engine:     config.Engine,
				Rules:      config.Rules,
				ThinkDelay: config.Server.ThinkDelay,
			})

			return srv.Run(cmd.Context(), addr)
		},
	}

	cmd.Flags().String("addr", "", "Address to listen on, overriding the configuration")
	return cmd
}
