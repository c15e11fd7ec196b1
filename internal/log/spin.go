// Copyright © 2025 Kaleido, Inc.
//
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"fmt"
	"time"

	"github.com/briandowns/spinner"
)

// SpinnerLogger shows the latest message as the suffix of a terminal spinner.
// Warnings and errors are also printed above the spinner so they stay visible.
type SpinnerLogger struct {
	Spinner  *spinner.Spinner
	logLevel LogLevel
}

func NewSpinnerLogger(spin *spinner.Spinner) *SpinnerLogger {
	spin.FinalMSG = "done\n"
	return &SpinnerLogger{
		Spinner:  spin,
		logLevel: Info,
	}
}

func NewDefaultSpinnerLogger() *SpinnerLogger {
	return NewSpinnerLogger(spinner.New(spinner.CharSets[11], 100*time.Millisecond))
}

func (l *SpinnerLogger) Start() {
	if l.Spinner != nil {
		l.Spinner.Start()
	}
}

func (l *SpinnerLogger) Stop() {
	if l.Spinner != nil {
		l.Spinner.Stop()
	}
}

func (l *SpinnerLogger) SetLogLevel(level LogLevel) {
	l.logLevel = level
}

func (l *SpinnerLogger) setSuffix(s string) {
	if l.Spinner != nil {
		l.Spinner.Lock()
		l.Spinner.Suffix = fmt.Sprintf(" %s...", s)
		l.Spinner.Unlock()
	}
}

func (l *SpinnerLogger) printAbove(s string) {
	if l.Spinner == nil {
		return
	}
	l.Spinner.Lock()
	fmt.Fprintf(l.Spinner.Writer, "\r\033[K%s\n", s)
	l.Spinner.Unlock()
}

func (l *SpinnerLogger) Trace(s string) {
	if l.logLevel <= Trace {
		l.setSuffix(s)
	}
}

func (l *SpinnerLogger) Debug(s string) {
	if l.logLevel <= Debug {
		l.setSuffix(s)
	}
}

func (l *SpinnerLogger) Info(s string) {
	if l.logLevel <= Info {
		l.setSuffix(s)
	}
}

func (l *SpinnerLogger) Warn(s string) {
	if l.logLevel <= Warn {
		l.printAbove(s)
	}
}

func (l *SpinnerLogger) Error(e error) {
	if l.logLevel <= Error {
		l.printAbove(fmt.Sprintf("Error: %s", e.Error()))
	}
}
