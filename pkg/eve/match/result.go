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

import "laptudirm.com/x/caro/pkg/engine"

// Result is the result of a game from the point of view of the engine
// playing X, which is Engines[0].
type Result int

const (
	Win  Result = +1
	Draw Result = 0
	Loss Result = -1
)

// WonBy returns the Result of a game won by the engine playing winner.
func WonBy(winner engine.Player) Result {
	if winner == engine.X {
		return Win
	}

	return Loss
}

// Flip returns the result from the other engine's point of view.
func (result Result) Flip() Result {
	return -result
}

func (result Result) String() string {
	switch result {
	case Win:
		return "1-0"
	case Draw:
		return "1/2-1/2"
	case Loss:
		return "0-1"
	default:
		return "?-?"
	}
}

// PairResult is the sum of the results of a game pair, both from the point
// of view of the same engine, which plays X in the first game and O in the
// second.
type PairResult int

const (
	WinWin   = PairResult(Win + Win)
	WinDraw  = PairResult(Win + Draw)
	DrawDraw = PairResult(Draw + Draw) // also a win and a loss
	DrawLoss = PairResult(Draw + Loss)
	LossLoss = PairResult(Loss + Loss)
)

func GetPairResult(first, second Result) PairResult {
	return PairResult(first + second)
}
