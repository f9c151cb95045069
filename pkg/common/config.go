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
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
	"laptudirm.com/x/caro/pkg/engine"
	"laptudirm.com/x/caro/pkg/game"
)

//go:embed config.yaml
var DefaultConfigFile []byte

// Environment variables which override the configuration file.
const (
	EnvAddr     = "CARO_ADDR"
	EnvLogLevel = "CARO_LOG_LEVEL"
)

type Config struct {
	LogLevel string `yaml:"log-level"`

	Engine engine.Config `yaml:"engine"`
	Rules  game.Rules    `yaml:"rules"`
	Server ServerConfig  `yaml:"server"`
}

type ServerConfig struct {
	Addr       string        `yaml:"addr"`
	ThinkDelay time.Duration `yaml:"think-delay"`
}

// DefaultConfig returns the configuration described by the embedded
// default configuration file.
func DefaultConfig() Config {
	var config Config
	if err := yaml.Unmarshal(DefaultConfigFile, &config); err != nil {
		panic(fmt.Sprintf("default config: %v", err))
	}

	return config
}

// LoadConfig reads the configuration file at path, ConfigFile if path is
// empty, on top of the default configuration and applies the environment
// overrides. A missing file is not an error.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		path = ConfigFile
	}

	config := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		logrus.Debugf("config: %s not found, using defaults", path)
	case err != nil:
		return config, fmt.Errorf("config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return config, fmt.Errorf("config: %s: %w", path, err)
		}
	}

	if addr, found := os.LookupEnv(EnvAddr); found {
		config.Server.Addr = addr
	}

	if level, found := os.LookupEnv(EnvLogLevel); found {
		config.LogLevel = level
	}

	return config, nil
}

// Level returns the configured logging level, Info if none is set.
func (config Config) Level() (logrus.Level, error) {
	if config.LogLevel == "" {
		return logrus.InfoLevel, nil
	}

	return logrus.ParseLevel(config.LogLevel)
}
