// Copyright © 2023 Rak Laptudirm <rak@laptudirm.com>
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

package match

import (
	"github.com/sirupsen/logrus"
	"laptudirm.com/x/caro/pkg/engine"
)

// EngineConfig describes one participant of a match. Every participant is
// an in-process engine, so two participants differ only in settings.
type EngineConfig struct {
	Name string `yaml:"name"`

	Difficulty engine.Difficulty `yaml:"difficulty"`

	// Depth, Radius and TieBreak override the engine defaults when set.
	Depth    int             `yaml:"depth"`
	Radius   int             `yaml:"radius"`
	TieBreak engine.TieBreak `yaml:"tie-break"`
}

// Config returns the engine configuration described by the EngineConfig.
func (config EngineConfig) Config() engine.Config {
	cfg := engine.DefaultConfig()
	if config.Depth > 0 {
		cfg.MediumDepth = config.Depth
		cfg.HardDepth = config.Depth
	}

	if config.Radius > 0 {
		cfg.Radius = config.Radius
	}

	if config.TieBreak != "" {
		cfg.TieBreak = config.TieBreak
	}

	return cfg
}

// Start creates the engine described by the EngineConfig to play as the
// given player.
func (config EngineConfig) Start(player engine.Player) *engine.Engine {
	return engine.New(player, config.Config(), engine.WithLogger(
		logrus.WithField("engine", config.Name),
	))
}
