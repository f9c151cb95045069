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

package util

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
)

// SpinnerCharSet is the spinner.CharSets entry used by Spin.
const SpinnerCharSet = 31

// Spin shows a spinner with the given message on out while work runs.
func Spin(out io.Writer, message string, work func()) {
	s := spinner.New(spinner.CharSets[SpinnerCharSet], 100*time.Millisecond, spinner.WithWriter(out))
	s.Suffix = " " + message

	fmt.Fprint(out, "\x1b[33m") // Make the spinner yellow.
	s.Start()                   // Start the ~working~ spinner.

	work()

	s.Stop()                   // Stop the ~working~ spinner.
	fmt.Fprint(out, "\x1b[0m") // Reset the terminal's color.
}
