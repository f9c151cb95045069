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

// Package common holds the file system layout and the configuration
// shared by the caro commands.
package common

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const FilePermissions = 0755

var (
	// Directory holds the data written by caro, like paused tests.
	Directory = filepath.Join(xdg.DataHome, "caro")

	// ConfigDirectory holds the configuration file.
	ConfigDirectory = filepath.Join(xdg.ConfigHome, "caro")

	ConfigFile = filepath.Join(ConfigDirectory, "config.yaml")
)

// PausedSPRTDirectory returns the directory which stores the state of
// unfinished SPRTs.
func PausedSPRTDirectory() string {
	return filepath.Join(Directory, "paused", "sprt")
}

// TryMkdir creates the directory, and any missing parents, unless it
// already exists.
func TryMkdir(dir string) error {
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		return os.MkdirAll(dir, FilePermissions)
	}

	return nil
}

// TryCreate writes data to the file unless it already exists. It reports
// whether the file was created.
func TryCreate(file string, data []byte) (bool, error) {
	if _, err := os.Stat(file); !errors.Is(err, fs.ErrNotExist) {
		return false, err
	}

	if err := TryMkdir(filepath.Dir(file)); err != nil {
		return false, err
	}

	return true, os.WriteFile(file, data, FilePermissions)
}

// EnsureDirectories creates the data directory layout.
func EnsureDirectories() error {
	for _, dir := range []string{Directory, PausedSPRTDirectory()} {
		if err := TryMkdir(dir); err != nil {
			return err
		}
	}

	return nil
}
