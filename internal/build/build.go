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


package build

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/vaultchain-africa/vc-automation/internal/constants"
	"github.com/vaultchain-africa/vc-automation/internal/log"
	"github.com/vaultchain-africa/vc-automation/internal/process"
	"github.com/vaultchain-africa/vc-automation/pkg/types"
)

type Builder struct {
	runner          process.IRunner
	ForgeExecutable string
	AnvilExecutable string
	Timeout         time.Duration
	// SkipTests leaves out the test run.
	SkipTests bool
}

func NewBuilder(runner process.IRunner) *Builder {
	return &Builder{
		runner:          runner,
		ForgeExecutable: constants.ForgeExecutable,
		AnvilExecutable: constants.AnvilExecutable,
		Timeout:         constants.DefaultCommandTimeout,
	}
}

// Commands lists the build stage invocations in the order they run.
func (b *Builder) Commands() [][]string {
	commands := [][]string{
		{b.ForgeExecutable, "--version"},
		{b.AnvilExecutable, "--version"},
		{b.ForgeExecutable, "clean"},
		{b.ForgeExecutable, "build"},
	}
	if !b.SkipTests {
		commands = append(commands, []string{b.ForgeExecutable, "test", "-vv"})
	}
	return commands
}

// Build compiles and tests the contracts in the project directory. Every
// command runs even when an earlier one fails; the outcome is reached only
// when all of them exit zero.
func (b *Builder) Build(ctx context.Context, rc *types.RunContext) *types.StageOutcome {
	l := log.LoggerFromContext(ctx)
	failed := []string{}
	for _, command := range b.Commands() {
		result := b.runner.Run(ctx, rc.ProjectDir, true, b.Timeout, command...)
		if !result.Succeeded() {
			failed = append(failed, strings.Join(command, " "))
			if result.TimedOut {
				l.Warn(fmt.Sprintf("'%s' timed out after %s", strings.Join(command, " "), b.Timeout))
			} else {
				l.Warn(fmt.Sprintf("'%s' exited with code %d", strings.Join(command, " "), result.ExitCode))
			}
		}
	}

	outcome := &types.StageOutcome{Stage: types.StageBuilt, Reached: len(failed) == 0}
	if outcome.Reached {
		outcome.Message = "build and tests completed successfully"
		l.Info("Build stage completed successfully")
	} else {
		outcome.Message = fmt.Sprintf("failed commands: %s", strings.Join(failed, "; "))
		l.Warn(fmt.Sprintf("Build stage completed with failures: %s", strings.Join(failed, "; ")))
	}
	return outcome
}
