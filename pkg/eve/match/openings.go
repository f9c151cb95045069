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

package match

import (
	"fmt"
	"os"
	"strings"

	"laptudirm.com/x/caro/pkg/engine"
	"lukechampine.com/frand"
)

// OpeningConfig selects the openings of a tournament. Every non-blank line
// of File holds the board notation of one opening. Without a File, every
// game starts from the empty board.
type OpeningConfig struct {
	File  string `yaml:"file"`
	Order string `yaml:"order"` // "sequential" (default) or "random"
	Start int    `yaml:"start"` // index of the first opening
}

func NewBook(config OpeningConfig) (*OpeningBook, error) {
	book := OpeningBook{
		entries:  []string{""},
		strategy: config.Order,
		file:     config.File,
	}

	if config.File != "" {
		file, err := os.ReadFile(config.File)
		if err != nil {
			return nil, err
		}

		book.entries = book.entries[:0]
		for i, entry := range strings.Split(string(file), "\n") {
			entry = strings.Trim(entry, "\n\r\t ")
			if entry == "" {
				continue
			}

			if _, err := engine.ParseBoard(entry); err != nil {
				return nil, fmt.Errorf("opening book %s: line %d: %w", config.File, i+1, err)
			}

			book.entries = append(book.entries, entry)
		}

		if len(book.entries) == 0 {
			return nil, fmt.Errorf("opening book %s: no openings", config.File)
		}
	}

	if config.Start > 0 {
		book.current = config.Start % len(book.entries)
	}

	return &book, nil
}

type OpeningBook struct {
	entries  []string
	strategy string
	current  int

	file string
}

func (book *OpeningBook) Next() {
	switch book.strategy {
	case "random":
		book.current = frand.Intn(len(book.entries))
	default:
		book.current = (book.current + 1) % len(book.entries)
	}
}

func (book *OpeningBook) Current() string {
	return book.entries[book.current]
}

// Wrap returns an OpeningConfig which reopens the book at its current
// position.
func (book *OpeningBook) Wrap() OpeningConfig {
	return OpeningConfig{
		File:  book.file,
		Order: book.strategy,
		Start: book.current,
	}
}
