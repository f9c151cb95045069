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

// Package util holds small helpers shared by the caro commands.
package util

import (
	"regexp"
	"slices"
	"strconv"
)

var chunkifyRegexp = regexp.MustCompile(`(\d+|\D+)`)

func chunkify(s string) []string {
	return chunkifyRegexp.FindAllString(s, -1)
}

// AlphanumCompare reports whether a sorts before b, comparing runs of
// digits by their numeric value, so that "test-9" sorts before "test-10".
func AlphanumCompare(a, b string) bool {
	chunksA := chunkify(a)
	chunksB := chunkify(b)

	for i := 0; i < len(chunksA) && i < len(chunksB); i++ {
		chunkA, chunkB := chunksA[i], chunksB[i]

		aInt, aErr := strconv.Atoi(chunkA)
		bInt, bErr := strconv.Atoi(chunkB)

		// If both chunks are numeric, compare them as integers
		if aErr == nil && bErr == nil {
			if aInt != bInt {
				return aInt < bInt
			}

			continue
		}

		if chunkA != chunkB {
			return chunkA < chunkB
		}
	}

	// every shared chunk is equal, so the shorter string comes first
	return len(chunksA) < len(chunksB)
}

// SortAlphanum sorts the strings in place using AlphanumCompare.
func SortAlphanum(list []string) {
	slices.SortFunc(list, func(a, b string) int {
		switch {
		case AlphanumCompare(a, b):
			return -1
		case AlphanumCompare(b, a):
			return 1
		default:
			return 0
		}
	})
}
