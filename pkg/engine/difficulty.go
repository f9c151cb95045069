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
	"fmt"
	"strings"
)

// Difficulty is the strength tier of the engine.
type Difficulty uint8

const (
	Easy Difficulty = iota
	Medium
	Hard
)

// ParseDifficulty parses the name of a difficulty tier.
func ParseDifficulty(name string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "easy", "low":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard", "high":
		return Hard, nil
	default:
		return Easy, fmt.Errorf("difficulty: unknown tier %q", name)
	}
}

func (difficulty Difficulty) String() string {
	switch difficulty {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	default:
		return fmt.Sprintf("difficulty(%d)", uint8(difficulty))
	}
}

func (difficulty Difficulty) MarshalText() ([]byte, error) {
	return []byte(difficulty.String()), nil
}

func (difficulty *Difficulty) UnmarshalText(text []byte) error {
	parsed, err := ParseDifficulty(string(text))
	if err != nil {
		return err
	}

	*difficulty = parsed
	return nil
}

// Set and Type let a Difficulty be used directly as a command line flag.
func (difficulty *Difficulty) Set(name string) error {
	return difficulty.UnmarshalText([]byte(name))
}

func (difficulty *Difficulty) Type() string {
	return "difficulty"
}
