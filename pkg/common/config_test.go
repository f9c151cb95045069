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

package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"laptudirm.com/x/caro/pkg/engine"
	"laptudirm.com/x/caro/pkg/game"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, engine.DefaultConfig(), config.Engine)
	assert.Equal(t, game.DefaultRules(), config.Rules)
	assert.Equal(t, ":8080", config.Server.Addr)

	level, err := config.Level()
	require.NoError(t, err)
	assert.Equal(t, logrus.InfoLevel, level)
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	config, err := LoadConfig(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), config)

	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
engine:
  hard-depth: 6
rules:
  bomb-chance: 0
server:
  think-delay: 250ms
`), 0644))

	config, err = LoadConfig(file)
	require.NoError(t, err)
	assert.Equal(t, 6, config.Engine.HardDepth)
	assert.Equal(t, 2, config.Engine.MediumDepth)
	assert.Zero(t, config.Rules.BombChance)
	assert.Equal(t, 3, config.Rules.BombTimer)
	assert.Equal(t, 250*time.Millisecond, config.Server.ThinkDelay)

	require.NoError(t, os.WriteFile(file, []byte("engine: [1, 2"), 0644))
	_, err = LoadConfig(file)
	assert.Error(t, err)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv(EnvAddr, "127.0.0.1:9999")
	t.Setenv(EnvLogLevel, "debug")

	config, err := LoadConfig(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9999", config.Server.Addr)

	level, err := config.Level()
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, level)

	config.LogLevel = "loud"
	_, err = config.Level()
	assert.Error(t, err)
}

func TestTryCreate(t *testing.T) {
	file := filepath.Join(t.TempDir(), "nested", "config.yaml")

	created, err := TryCreate(file, DefaultConfigFile)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = TryCreate(file, []byte("overwritten"))
	require.NoError(t, err)
	assert.False(t, created)

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfigFile, data)
}
