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
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
	"laptudirm.com/x/caro/internal/util"
)

// Store writes the configuration of a paused test to dir.
func Store(dir string, config Config) error {
	if config.Name == "" {
		return ErrNoName
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("store sprt %s: %w", config.Name, err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("store sprt %s: %w", config.Name, err)
	}

	return os.WriteFile(filepath.Join(dir, config.Name), data, 0644)
}

// Load reads the configuration of the paused test with the given name.
func Load(dir, name string) (Config, error) {
	var config Config

	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return config, fmt.Errorf("load sprt %s: %w", name, err)
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("load sprt %s: %w", name, err)
	}

	config.Name = name
	return config, nil
}

// Remove deletes the saved state of a test. Removing a test which was
// never saved is not an error.
func Remove(dir, name string) error {
	if dir == "" || name == "" {
		return nil
	}

	err := os.Remove(filepath.Join(dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return err
}

// List returns the names of the paused tests in dir in natural order.
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			names = append(names, entry.Name())
		}
	}

	util.SortAlphanum(names)
	return names, nil
}
