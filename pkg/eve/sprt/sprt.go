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

// Package sprt runs sequential probability ratio tests between two engine
// configurations, playing colour-swapped game pairs until one of the two
// elo hypotheses is accepted.
package sprt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"laptudirm.com/x/caro/pkg/eve/match"
	"laptudirm.com/x/caro/pkg/eve/stats"
	"laptudirm.com/x/caro/pkg/game"
)

// Verdict is the conclusion of a test.
type Verdict string

const (
	Undecided    Verdict = ""
	H0           Verdict = "H0"
	H1           Verdict = "H1"
	Inconclusive Verdict = "inconclusive"
)

func New(config Config, pauseDir string) (*SPRT, error) {
	if config.Elo1 <= config.Elo0 {
		return nil, fmt.Errorf("new sprt: elo1 (%g) must be larger than elo0 (%g)", config.Elo1, config.Elo0)
	}

	if config.Alpha <= 0 || config.Alpha >= 1 {
		config.Alpha = 0.05
	}

	if config.Beta <= 0 || config.Beta >= 1 {
		config.Beta = 0.05
	}

	if config.Concurrency < 1 {
		config.Concurrency = 1
	}

	if config.Rules == (game.Rules{}) {
		config.Rules = game.DefaultRules()
	}

	sprt := SPRT{
		Config:   config,
		PauseDir: pauseDir,
		Output:   os.Stdout,
	}

	var err error
	sprt.openings, err = match.NewBook(config.Openings)
	if err != nil {
		return nil, err
	}

	sprt.a, sprt.b = stats.StoppingBounds(sprt.Config.Alpha, sprt.Config.Beta)
	return &sprt, nil
}

type SPRT struct {
	Config

	// PauseDir stores the state of the test while it is running, so that
	// an interrupted test can be restarted. Empty disables saving.
	PauseDir string

	// Output receives the test reports.
	Output io.Writer

	Verdict Verdict

	mu       sync.Mutex // guards openings and number
	openings *match.OpeningBook
	number   int

	a, b float64
}

// Start plays game pairs until a hypothesis is accepted, MaxPairs pairs
// have been played, or ctx is cancelled. An interrupted test is saved and
// returns the context's error.
func (sprt *SPRT) Start(ctx context.Context) error {
	group, ctx := errgroup.WithContext(ctx)
	ctx, stop := context.WithCancel(ctx)
	defer stop()

	results := make(chan PairResult)

	for i := 0; i < sprt.Config.Concurrency; i++ {
		group.Go(func() error {
			sprt.Thread(ctx, results)
			return nil
		})
	}

	group.Go(func() error {
		for {
			select {
			case pair := <-results:
				if sprt.Record(pair) != Undecided {
					stop()
					return nil
				}

			case <-ctx.Done():
				return ctx.Err()
			}
		}
	})

	err := group.Wait()
	if sprt.Verdict == Undecided {
		if saveErr := sprt.Save(); saveErr != nil {
			logrus.Error(saveErr)
		}

		return err
	}

	sprt.conclude()
	return nil
}

func (sprt *SPRT) Thread(ctx context.Context, results chan<- PairResult) {
	for ctx.Err() == nil {
		pair := sprt.RunPair()

		select {
		case results <- pair:
		case <-ctx.Done():
			return
		}
	}
}

// RunPair plays the next opening twice, once with each engine as X. Both
// results are from the perspective of Engines[0].
func (sprt *SPRT) RunPair() PairResult {
	sprt.mu.Lock()
	sprt.openings.Next()
	opening := sprt.openings.Current()
	first := sprt.number + 1
	sprt.number += 2
	sprt.mu.Unlock()

	var pair PairResult

	p1, p2 := 0, 1
	for g := 0; g < 2; g++ {
		game := Match{
			Config: match.Config{
				Opening:  opening,
				Rules:    sprt.Config.Rules,
				MaxPlies: sprt.Config.MaxPlies,
				Engines: [2]match.EngineConfig{
					sprt.Config.Engines[p1],
					sprt.Config.Engines[p2],
				},
			},

			Number: first + g,

			Player1: p1,
			Player2: p2,
		}

		pair.Matches[g] = sprt.RunGame(&game)
		p1, p2 = p2, p1
	}

	pair.Result = match.GetPairResult(
		pair.Matches[0].Result,
		pair.Matches[1].Result,
	)

	return pair
}

type Match struct {
	match.Config
	Number int

	Player1, Player2 int
}

func (sprt *SPRT) RunGame(game *Match) Result {
	logrus.Infof(
		"\x1b[33mStarting\x1b[0m Game #%d: %s vs %s",
		game.Number,
		game.Engines[0].Name,
		game.Engines[1].Name,
	)

	score, reason := match.Run(&game.Config)
	if game.Player2 == 0 {
		score = score.Flip()
	}

	result := Result{
		Match:  game,
		Result: score,
		Reason: reason,
	}

	logrus.Infof(
		"\x1b[32mFinished\x1b[0m Game #%d: %s vs %s: %s",
		game.Number,
		game.Engines[0].Name,
		game.Engines[1].Name,
		result,
	)

	return result
}

// Record adds the game pair to the test's state and returns the verdict
// it leads to.
func (sprt *SPRT) Record(pair PairResult) Verdict {
	state := &sprt.Config.State
	switch pair.Result {
	case match.WinWin:
		state.WinWin++
	case match.WinDraw:
		state.WinDraw++
	case match.DrawDraw:
		state.DrawDraw++
	case match.DrawLoss:
		state.DrawLoss++
	case match.LossLoss:
		state.LossLoss++
	}

	for _, result := range pair.Matches {
		switch result.Result {
		case match.Win:
			state.Wins++
		case match.Loss:
			state.Losses++
		case match.Draw:
			state.Draws++
		}
	}

	pairs := state.Pairs()
	if pairs%5 == 0 {
		sprt.Report()
	}

	switch llr := sprt.LLR(); {
	case llr <= sprt.a:
		sprt.Verdict = H0
	case llr >= sprt.b:
		sprt.Verdict = H1
	case sprt.Config.MaxPairs > 0 && pairs >= sprt.Config.MaxPairs:
		sprt.Verdict = Inconclusive
	}

	return sprt.Verdict
}

func (sprt *SPRT) conclude() {
	switch sprt.Verdict {
	case H0:
		fmt.Fprintln(sprt.Output, "\n\x1b[31mH0 Accepted")
	case H1:
		fmt.Fprintln(sprt.Output, "\n\x1b[32mH1 Accepted")
	default:
		fmt.Fprintln(sprt.Output, "\n\x1b[33mInconclusive")
	}

	sprt.Report()
	fmt.Fprint(sprt.Output, "\x1b[0m")

	if err := Remove(sprt.PauseDir, sprt.Name); err != nil {
		logrus.Error(err)
	}
}

func (sprt *SPRT) Report() {
	if err := sprt.Save(); err != nil {
		logrus.Error(err)
	}

	state := sprt.Config.State

	lower, elo, upper := stats.Elo(state.Wins, state.Draws, state.Losses)
	err := math.Max(upper-elo, elo-lower)

	n := state.Wins + state.Losses + state.Draws

	llr := sprt.LLR()

	eloStr := fmt.Sprintf("║ ELO   | %.2f +- %.2f (95%%)", elo, err)
	llrStr := fmt.Sprintf("║ LLR   | %.2f (%.2f, %.2f) [%.2f, %.2f]", llr, sprt.a, sprt.b, sprt.Config.Elo0, sprt.Config.Elo1)
	gamStr := fmt.Sprintf("║ GAMES | N: %d W: %d L: %d D: %d", n, state.Wins, state.Losses, state.Draws)

	out := sprt.Output
	fmt.Fprintln(out, "╔═════════════════════════════════════════════════╗")
	fmt.Fprintf(out, "%-50s║\n", eloStr)
	fmt.Fprintf(out, "%-50s║\n", llrStr)
	fmt.Fprintf(out, "%-50s║\n", gamStr)
	if !sprt.Config.Legacy {
		pentaStr := fmt.Sprintf(
			"║ PENTA | [%d, %d, %d, %d, %d]",
			state.LossLoss, state.DrawLoss,
			state.DrawDraw,
			state.WinDraw, state.WinWin,
		)
		fmt.Fprintf(out, "%-50s║\n", pentaStr)
	}
	fmt.Fprintln(out, "╚═════════════════════════════════════════════════╝")
}

func (sprt *SPRT) LLR() float64 {
	state := sprt.Config.State
	if sprt.Config.Legacy {
		return stats.SPRT(
			state.Wins,
			state.Draws,
			state.Losses,
			sprt.Config.Elo0,
			sprt.Config.Elo1,
		)
	}

	return stats.PentaSPRT(
		state.LossLoss,
		state.DrawLoss,
		state.DrawDraw,
		state.WinDraw,
		state.WinWin,
		sprt.Config.Elo0,
		sprt.Config.Elo1,
	)
}

// Wrap returns the configuration which restarts the test from its
// current state.
func (sprt *SPRT) Wrap() Config {
	sprt.mu.Lock()
	defer sprt.mu.Unlock()

	config := sprt.Config
	config.Openings = sprt.openings.Wrap()
	return config
}

// Save writes the test's state to its pause directory.
func (sprt *SPRT) Save() error {
	if sprt.PauseDir == "" || sprt.Name == "" {
		return nil
	}

	return Store(sprt.PauseDir, sprt.Wrap())
}

type PairResult struct {
	Result  match.PairResult
	Matches [2]Result
}

type Result struct {
	Match *Match

	Result match.Result
	Reason string
}

func (result Result) String() string {
	switch result.Result {
	case match.Win:
		return fmt.Sprintf("%s wins by %s", result.Match.Engines[result.Match.Player1].Name, result.Reason)
	case match.Loss:
		return fmt.Sprintf("%s wins by %s", result.Match.Engines[result.Match.Player2].Name, result.Reason)
	case match.Draw:
		return fmt.Sprintf("Draw by %s", result.Reason)
	}

	return "illegal result"
}

var ErrNoName = errors.New("sprt: test has no name")

type Config struct {
	// Name identifies a paused test.
	Name string `yaml:"name"`

	// The engines being compared: Engines[0] is the one being tested.
	Engines [2]match.EngineConfig `yaml:"engines"`

	// Number of game pairs that will be played concurrently.
	Concurrency int `yaml:"concurrency"`

	// Legacy uses the trinomial model instead of the pentanomial one.
	Legacy bool `yaml:"legacy"`

	MaxPlies int `yaml:"max-plies"`

	// MaxPairs ends the test without a verdict after that many game
	// pairs unless it is zero.
	MaxPairs int `yaml:"max-pairs"`

	Rules game.Rules `yaml:"rules"`

	Elo0 float64 `yaml:"elo0"` // The null elo hypothesis.
	Elo1 float64 `yaml:"elo1"` // The alternate elo hypothesis.

	Alpha float64 `yaml:"alpha"` // Probability of a type I error.
	Beta  float64 `yaml:"beta"`  // Probability of a type II error.

	Openings match.OpeningConfig `yaml:"openings"`

	State State `yaml:"state"`
}

type State struct {
	Wins     int `yaml:"wins"`
	Losses   int `yaml:"losses"`
	Draws    int `yaml:"draws"`
	WinWin   int `yaml:"win-win"`
	WinDraw  int `yaml:"win-draw"`
	DrawDraw int `yaml:"draw-draw"`
	DrawLoss int `yaml:"draw-loss"`
	LossLoss int `yaml:"loss-loss"`
}

// Pairs returns the number of game pairs played.
func (state State) Pairs() int {
	return state.WinWin + state.WinDraw + state.DrawDraw + state.DrawLoss + state.LossLoss
}
