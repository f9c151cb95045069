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

package match

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
	"laptudirm.com/x/caro/pkg/engine"
	"laptudirm.com/x/caro/pkg/game"
)

var noBombs = game.Rules{BombChance: 0, BombTimer: 3}

// opening returns a board notation with the given rows placed from row 7
// downwards on an otherwise empty board.
func opening(rows ...string) string {
	lines := make([]string, engine.Size)
	for i := range lines {
		lines[i] = strings.Repeat(".", engine.Size)
	}

	copy(lines[7:], rows)
	return strings.Join(lines, "/")
}

func TestRunWin(t *testing.T) {
	config := Config{
		// X to move with an open four
		Opening: opening(".....xxxx......", "....oooo......."),
		Rules:   noBombs,
		Engines: [2]EngineConfig{
			{Name: "first", Difficulty: engine.Medium},
			{Name: "second", Difficulty: engine.Medium},
		},
	}

	result, reason := Run(&config)
	assert.Equal(t, Win, result)
	assert.Equal(t, "five in a row", reason)
}

func TestRunLoss(t *testing.T) {
	config := Config{
		// X to move, but O has an open four which cannot be stopped
		Opening: opening(".....oooo......", "..x.x.x.x......"),
		Rules:   noBombs,
		Engines: [2]EngineConfig{
			{Name: "first", Difficulty: engine.Easy},
			{Name: "second", Difficulty: engine.Medium},
		},
	}

	result, reason := Run(&config)
	assert.Equal(t, Loss, result)
	assert.Equal(t, "five in a row", reason)
}

func TestRunPlyLimit(t *testing.T) {
	config := Config{
		Rules:    noBombs,
		MaxPlies: 3,
		Engines: [2]EngineConfig{
			{Name: "first", Difficulty: engine.Easy},
			{Name: "second", Difficulty: engine.Easy},
		},
	}

	result, reason := Run(&config)
	assert.Equal(t, Draw, result)
	assert.Equal(t, "ply limit", reason)
}

func TestRunInvalidOpening(t *testing.T) {
	result, reason := Run(&Config{Opening: "xo"})
	assert.Equal(t, Draw, result)
	assert.Contains(t, reason, "invalid opening")
}

type explosions struct {
	game.NopEvents
	detonated []engine.Move
}

func (e *explosions) Exploded(detonated, _ []engine.Move) {
	e.detonated = append(e.detonated, detonated...)
}

func TestRunOpeningBombsTick(t *testing.T) {
	events := &explosions{}
	config := Config{
		// an O bomb and an X mark, so X is to move
		Opening:  opening(".......O.......", "..x............"),
		Rules:    game.Rules{BombChance: 0, BombTimer: 1},
		MaxPlies: 3,
		Engines: [2]EngineConfig{
			{Name: "first", Difficulty: engine.Easy},
			{Name: "second", Difficulty: engine.Easy},
		},
		Options: []game.Option{game.WithEvents(events)},
	}

	result, reason := Run(&config)
	assert.Equal(t, Draw, result)
	assert.Equal(t, "ply limit", reason)
	assert.Equal(t, []engine.Move{{Row: 7, Col: 7}}, events.detonated)
}

func TestPairResult(t *testing.T) {
	assert.Equal(t, WinWin, GetPairResult(Win, Win))
	assert.Equal(t, DrawDraw, GetPairResult(Win, Loss))
	assert.Equal(t, DrawLoss, GetPairResult(Loss, Draw))
	assert.Equal(t, "1/2-1/2", Draw.String())

	assert.Equal(t, Win, WonBy(engine.X))
	assert.Equal(t, Loss, WonBy(engine.O))
	assert.Equal(t, Win, Loss.Flip())
	assert.Equal(t, Draw, Draw.Flip())
}

func TestEngineConfig(t *testing.T) {
	var config EngineConfig
	require.NoError(t, yaml.Unmarshal([]byte("name: deep\ndifficulty: hard\ndepth: 3\ntie-break: legacy\n"), &config))

	assert.Equal(t, "deep", config.Name)
	assert.Equal(t, engine.Hard, config.Difficulty)

	cfg := config.Config()
	assert.Equal(t, 3, cfg.HardDepth)
	assert.Equal(t, engine.Legacy, cfg.TieBreak)
	assert.Equal(t, engine.DefaultRadius, cfg.Radius)
}

func TestOpeningBook(t *testing.T) {
	book, err := NewBook(OpeningConfig{})
	require.NoError(t, err)
	assert.Equal(t, "", book.Current())

	first := opening("xo.............")
	second := opening("...............", "ox.............")
	file := filepath.Join(t.TempDir(), "openings.txt")
	require.NoError(t, os.WriteFile(file, []byte(first+"\n\n"+second+"\n"), 0644))

	book, err = NewBook(OpeningConfig{File: file})
	require.NoError(t, err)
	assert.Equal(t, first, book.Current())
	book.Next()
	assert.Equal(t, second, book.Current())
	book.Next()
	assert.Equal(t, first, book.Current())

	book.Next()
	resumed, err := NewBook(book.Wrap())
	require.NoError(t, err)
	assert.Equal(t, second, resumed.Current())

	require.NoError(t, os.WriteFile(file, []byte("xo\n"), 0644))
	_, err = NewBook(OpeningConfig{File: file})
	assert.ErrorIs(t, err, engine.ErrNotation)
}
