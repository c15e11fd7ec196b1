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

package types

import "strings"

const (
	// TimeoutExitCode is reported when a command was killed after exceeding its timeout.
	// It matches the exit code of coreutils timeout(1).
	TimeoutExitCode = 124
	// LaunchFailureExitCode is reported when a command could not be started at all.
	LaunchFailureExitCode = 1
)

type CommandResult struct {
	ExitCode int    `json:"exitCode"`
	Stdout   string `json:"stdout"`
	Stderr   string `json:"stderr"`
	TimedOut bool   `json:"timedOut"`
}

func (r *CommandResult) Succeeded() bool {
	return r != nil && !r.TimedOut && r.ExitCode == 0
}

// Combined is the raw stdout and stderr of the command, in that order.
func (r *CommandResult) Combined() string {
	return r.Stdout + "\n" + r.Stderr
}

func (r *CommandResult) TrimmedStdout() string {
	return strings.TrimSpace(r.Stdout)
}
