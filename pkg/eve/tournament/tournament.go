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

package tournament

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"laptudirm.com/x/caro/pkg/eve/match"
	"laptudirm.com/x/caro/pkg/eve/stats"
	"laptudirm.com/x/caro/pkg/eve/tournament/schedule"
	"laptudirm.com/x/caro/pkg/game"
)

func NewTournament(config Config) (*Tournament, error) {
	if len(config.Engines) < 2 {
		return nil, fmt.Errorf("new tour: need at least 2 engines, found %d", len(config.Engines))
	}

	var tour Tournament
	tour.Config = config
	tour.Output = os.Stdout
	tour.Scores = make([]Score, len(config.Engines))

	if tour.Config.Concurrency < 1 {
		tour.Config.Concurrency = 1
	}

	if tour.Config.Rounds < 1 {
		tour.Config.Rounds = 1
	}

	if tour.Config.GamePairs < 1 {
		tour.Config.GamePairs = 1
	}

	if tour.Config.Rules == (game.Rules{}) {
		tour.Config.Rules = game.DefaultRules()
	}

	var err error
	tour.openings, err = match.NewBook(config.Openings)
	if err != nil {
		return nil, err
	}

	tour.Scheduler, err = schedule.New(config.Scheduler)
	if err != nil {
		return nil, err
	}

	return &tour, nil
}

type Tournament struct {
	Config Config

	Scheduler schedule.Scheduler
	openings  *match.OpeningBook

	// Output receives the tournament reports.
	Output io.Writer

	Games  int
	Scores []Score
}

type Score struct {
	Wins, Losses, Draws int
}

// Start plays the whole tournament, stopping early if ctx is cancelled.
func (tour *Tournament) Start(ctx context.Context) error {
	// 1 Tournament = {ROUNDS} Rounds
	// 1 Round      = {SOME_N} Encounters
	// 1 Encounter  = {GAME_P} Game Pairs
	// 1 Game Pair  = 2 Games

	group, ctx := errgroup.WithContext(ctx)

	games := make(chan *Match)
	results := make(chan Result)

	group.Go(func() error {
		defer close(games)
		return tour.Schedule(ctx, games)
	})

	var threads sync.WaitGroup
	for i := 0; i < tour.Config.Concurrency; i++ {
		threads.Add(1)
		group.Go(func() error {
			defer threads.Done()
			tour.Thread(games, results)
			return nil
		})
	}

	group.Go(func() error {
		threads.Wait()
		close(results)
		return nil
	})

	group.Go(func() error {
		tour.ResultHandler(results)
		return nil
	})

	err := group.Wait()
	tour.Report()
	return err
}

// Schedule sends every game of the tournament to the games channel.
func (tour *Tournament) Schedule(ctx context.Context, games chan<- *Match) error {
	number := 0
	for round := 0; round < tour.Config.Rounds; round++ {
		tour.Scheduler.Initialize(len(tour.Config.Engines))

		for encounter := 0; encounter < tour.Scheduler.TotalEncounters(); encounter++ {
			p1, p2 := tour.Scheduler.NextEncounter()

			for pair := 0; pair < tour.Config.GamePairs; pair++ {
				opening := tour.openings.Current()

				for g := 0; g < 2; g++ {
					number++
					game := &Match{
						Config: match.Config{
							Opening:  opening,
							Rules:    tour.Config.Rules,
							MaxPlies: tour.Config.MaxPlies,
							Engines: [2]match.EngineConfig{
								tour.Config.Engines[p1],
								tour.Config.Engines[p2],
							},
						},

						Round:  round + 1,
						Number: number,

						Player1: p1,
						Player2: p2,
					}

					select {
					case games <- game:
					case <-ctx.Done():
						return ctx.Err()
					}

					// Switch colours.
					p1, p2 = p2, p1
				}

				tour.openings.Next()
			}
		}
	}

	return nil
}

func (tour *Tournament) Thread(games <-chan *Match, results chan<- Result) {
	for game := range games {
		results <- tour.RunGame(game)
	}
}

type Match struct {
	match.Config

	Round, Number    int
	Player1, Player2 int
}

func (tour *Tournament) RunGame(game *Match) Result {
	logrus.Infof(
		"\x1b[33mStarting\x1b[0m Round #%d Game #%d: %s vs %s",
		game.Round,
		game.Number,
		game.Engines[0].Name,
		game.Engines[1].Name,
	)

	score, reason := match.Run(&game.Config)
	return Result{
		Match:  game,
		Result: score,
		Reason: reason,
	}
}

func (tour *Tournament) ResultHandler(results <-chan Result) {
	for result := range results {
		tour.Games++

		switch result.Result {
		case match.Win:
			tour.Scores[result.Match.Player1].Wins++
			tour.Scores[result.Match.Player2].Losses++

		case match.Loss:
			tour.Scores[result.Match.Player2].Wins++
			tour.Scores[result.Match.Player1].Losses++

		case match.Draw:
			tour.Scores[result.Match.Player1].Draws++
			tour.Scores[result.Match.Player2].Draws++
		}

		logrus.Infof(
			"\x1b[32mFinished\x1b[0m Round #%d Game #%d: %s vs %s: %s",
			result.Match.Round,
			result.Match.Number,
			result.Match.Engines[0].Name,
			result.Match.Engines[1].Name,
			result,
		)

		if tour.Games%5 == 0 {
			tour.Report()
		}
	}
}

// TotalGames returns the number of games the finished tournament will
// have played.
func (tour *Tournament) TotalGames() int {
	tour.Scheduler.Initialize(len(tour.Config.Engines))
	return tour.Config.Rounds * tour.Scheduler.TotalEncounters() * tour.Config.GamePairs * 2
}

func (tour *Tournament) Report() {
	out := tour.Output

	fmt.Fprintln(out, "╔══════════════════════════════════════════════════════════╗")
	fmt.Fprintln(out, "║    Name               Elo Error   Wins Loss Draw   Total ║")
	fmt.Fprintln(out, "╠══════════════════════════════════════════════════════════╣")
	for i, engine := range tour.Config.Engines {
		score := tour.Scores[i]
		lower, elo, upper := stats.Elo(score.Wins, score.Draws, score.Losses)

		format := "║ %2d. %-15s   %+4.0f %4.0f   %4d %4d %4d   %5d ║\n"
		if tour.Config.Scheduler == "gauntlet" && i == 0 {
			if elo >= 0 {
				format = "║ \x1b[32m%2d. %-15s   %+4.0f %4.0f   %4d %4d %4d   %5d\x1b[0m ║\n"
			} else {
				format = "║ \x1b[31m%2d. %-15s   %+4.0f %4.0f   %4d %4d %4d   %5d\x1b[0m ║\n"
			}
		}

		fmt.Fprintf(
			out, format,
			i+1, engine.Name,
			elo, math.Max(upper-elo, elo-lower),
			score.Wins, score.Losses, score.Draws,
			score.Wins+score.Losses+score.Draws)
	}
	fmt.Fprintln(out, "╚══════════════════════════════════════════════════════════╝")
}

type Result struct {
	Match *Match

	Result match.Result
	Reason string
}

func (result Result) String() string {
	switch result.Result {
	case match.Win:
		return fmt.Sprintf("%s wins by %s", result.Match.Engines[0].Name, result.Reason)
	case match.Loss:
		return fmt.Sprintf("%s wins by %s", result.Match.Engines[1].Name, result.Reason)
	case match.Draw:
		return fmt.Sprintf("Draw by %s", result.Reason)
	}

	return "illegal result"
}

type Config struct {
	// The engines participating in the tournament.
	Engines []match.EngineConfig `yaml:"engines"`

	// Number of games that will be played concurrently.
	Concurrency int `yaml:"concurrency"`

	// Either round-robin (the default) or gauntlet.
	Scheduler string `yaml:"scheduler"`

	// 1 Tournament = {ROUNDS} Rounds
	// 1 Round      = {SOME_N} Encounters
	// 1 Encounter  = {GAME_P} Game Pairs
	// 1 Game Pair  = 2 Games
	Rounds    int `yaml:"rounds"`     // Number of rounds to run the tournament for.
	GamePairs int `yaml:"game-pairs"` // Number of games per encounter in every round.

	// Games longer than this many plies are adjudicated as draws.
	MaxPlies int `yaml:"max-plies"`

	Rules game.Rules `yaml:"rules"`

	Openings match.OpeningConfig `yaml:"openings"`
}
