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

package sprt

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"laptudirm.com/x/caro/pkg/engine"
	"laptudirm.com/x/caro/pkg/eve/match"
)

func quickConfig(name string) Config {
	return Config{
		Name: name,
		Engines: [2]match.EngineConfig{
			{Name: "new", Difficulty: engine.Easy},
			{Name: "old", Difficulty: engine.Easy},
		},
		MaxPlies: 4,
		Elo0:     0,
		Elo1:     200,
	}
}

func pair(result1, result2 match.Result) PairResult {
	return PairResult{
		Result: match.GetPairResult(result1, result2),
		Matches: [2]Result{
			{Match: &Match{}, Result: result1},
			{Match: &Match{}, Result: result2},
		},
	}
}

func decide(t *testing.T, config Config, result PairResult) Verdict {
	t.Helper()

	test, err := New(config, "")
	require.NoError(t, err)
	test.Output = io.Discard

	for i := 0; i < 500; i++ {
		if verdict := test.Record(result); verdict != Undecided {
			return verdict
		}
	}

	return Undecided
}

func TestRecord(t *testing.T) {
	config := quickConfig("")

	assert.Equal(t, H1, decide(t, config, pair(match.Win, match.Win)))
	assert.Equal(t, H0, decide(t, config, pair(match.Loss, match.Loss)))

	config.Legacy = true
	assert.Equal(t, H1, decide(t, config, pair(match.Win, match.Win)))
	assert.Equal(t, H0, decide(t, config, pair(match.Loss, match.Loss)))
}

func TestRecordCounts(t *testing.T) {
	test, err := New(quickConfig(""), "")
	require.NoError(t, err)
	test.Output = io.Discard

	test.Record(pair(match.Win, match.Draw))
	test.Record(pair(match.Win, match.Loss))

	assert.Equal(t, State{Wins: 2, Draws: 1, Losses: 1, WinDraw: 1, DrawDraw: 1}, test.State)
	assert.Equal(t, 2, test.State.Pairs())
}

func TestStart(t *testing.T) {
	dir := t.TempDir()

	config := quickConfig("smoke")
	config.MaxPairs = 2

	test, err := New(config, dir)
	require.NoError(t, err)
	test.Output = io.Discard

	require.NoError(t, test.Start(context.Background()))
	assert.Equal(t, Inconclusive, test.Verdict)
	assert.Equal(t, 2, test.State.DrawDraw)
	assert.Equal(t, 4, test.State.Draws)

	// finished tests are not kept around
	_, err = os.Stat(filepath.Join(dir, "smoke"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestPauseAndRestart(t *testing.T) {
	dir := t.TempDir()

	test, err := New(quickConfig("paused"), dir)
	require.NoError(t, err)
	test.Output = io.Discard
	test.State.DrawDraw = 3

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, test.Start(ctx), context.Canceled)

	names, err := List(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"paused"}, names)

	config, err := Load(dir, "paused")
	require.NoError(t, err)
	assert.Equal(t, "paused", config.Name)
	assert.Equal(t, 3, config.State.DrawDraw)
	assert.Equal(t, engine.Easy, config.Engines[0].Difficulty)
	assert.Equal(t, 200.0, config.Elo1)

	require.NoError(t, Remove(dir, "paused"))
	names, err = List(dir)
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestNewErrors(t *testing.T) {
	config := quickConfig("bad")
	config.Elo1 = config.Elo0

	_, err := New(config, "")
	assert.Error(t, err)

	assert.ErrorIs(t, Store(t.TempDir(), Config{}), ErrNoName)
}
