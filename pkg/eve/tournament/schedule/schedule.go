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

// Package schedule decides which engines meet in each encounter of a
// tournament round.
package schedule

import (
	"fmt"
)

func New(name string) (Scheduler, error) {
	switch name {
	case "round-robin", "":
		return &RoundRobin{}, nil
	case "gauntlet":
		return &Gauntlet{}, nil
	default:
		return nil, fmt.Errorf("new tour: invalid scheduler %s", name)
	}
}

// Scheduler produces the encounters of a single round. Initialize starts
// a new round among n engines, after which NextEncounter may be called
// TotalEncounters times.
type Scheduler interface {
	Initialize(n int)
	NextEncounter() (int, int)
	TotalEncounters() int
}
