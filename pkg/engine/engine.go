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
	"github.com/sirupsen/logrus"
	"lukechampine.com/frand"
)

// TieBreak decides between root moves with equal search values.
type TieBreak string

const (
	// Uniform picks uniformly among all tied moves.
	Uniform TieBreak = "uniform"

	// Legacy lets every new tie replace the current choice with
	// probability one half, which favors moves found later.
	Legacy TieBreak = "legacy"
)

// Config holds the tunable parameters of the engine.
type Config struct {
	MediumDepth int      `yaml:"medium-depth" json:"medium_depth"`
	HardDepth   int      `yaml:"hard-depth" json:"hard_depth"`
	Radius      int      `yaml:"radius" json:"radius"`
	TieBreak    TieBreak `yaml:"tie-break" json:"tie_break"`
}

func DefaultConfig() Config {
	return Config{
		MediumDepth: 2,
		HardDepth:   4,
		Radius:      DefaultRadius,
		TieBreak:    Uniform,
	}
}

// normalize replaces unset or nonsensical values with their defaults.
func (config Config) normalize() Config {
	def := DefaultConfig()
	if config.MediumDepth <= 0 {
		config.MediumDepth = def.MediumDepth
	}
	if config.HardDepth <= 0 {
		config.HardDepth = def.HardDepth
	}
	if config.Radius <= 0 {
		config.Radius = def.Radius
	}
	if config.TieBreak != Legacy {
		config.TieBreak = Uniform
	}

	return config
}

// Depth returns the search depth of the given difficulty, and false if the
// difficulty does not search at all.
func (config Config) Depth(difficulty Difficulty) (int, bool) {
	switch difficulty {
	case Medium:
		return config.MediumDepth, true
	case Hard:
		return config.HardDepth, true
	default:
		return 0, false
	}
}

// Rand is the source of randomness used by the engine. Both *frand.RNG
// and *math/rand.Rand satisfy it.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// sharedRand uses frand's package level generator, which is safe for
// concurrent use.
type sharedRand struct{}

func (sharedRand) Intn(n int) int   { return frand.Intn(n) }
func (sharedRand) Float64() float64 { return frand.Float64() }

type Option func(*Engine)

// WithRand makes the engine draw its random numbers from the given source.
func WithRand(rand Rand) Option {
	return func(engine *Engine) {
		engine.rand = rand
	}
}

func WithLogger(logger logrus.FieldLogger) Option {
	return func(engine *Engine) {
		engine.log = logger
	}
}

// Engine chooses moves for one player. An Engine is not safe for
// concurrent use unless its Rand is.
type Engine struct {
	player Player
	config Config

	rand Rand
	log  logrus.FieldLogger
}

func New(player Player, config Config, options ...Option) *Engine {
	engine := &Engine{
		player: player,
		config: config.normalize(),
		rand:   frand.New(),
		log:    logrus.StandardLogger(),
	}

	for _, option := range options {
		option(engine)
	}

	return engine
}

func (engine *Engine) Player() Player {
	return engine.player
}

func (engine *Engine) Config() Config {
	return engine.config
}

var defaultEngine = New(O, DefaultConfig(), WithRand(sharedRand{}))

// CalculateMove chooses a move for the computer player O on the given
// board with the default configuration. It returns NoMove if the board has
// no empty cell.
func CalculateMove(board Board, difficulty Difficulty) Move {
	return defaultEngine.SelectMove(board, difficulty)
}
