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

package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/vaultchain-africa/vc-automation/internal/log"
	"github.com/vaultchain-africa/vc-automation/pkg/types"
)

// How long to wait for output pipes to close after a timed out command is killed.
var waitDelay = 2 * time.Second

// RunCommand executes command and always returns a result. A non-zero exit, a
// timeout and a failure to launch are all reported through the result rather
// than as an error. The invocation and its output are written to the logger
// carried by ctx; the output is only echoed at info level when ctx is verbose.
func RunCommand(ctx context.Context, workingDir string, capture bool, timeout time.Duration, command ...string) *types.CommandResult {
	l := log.LoggerFromContext(ctx)
	echo := l.Debug
	if log.VerbosityFromContext(ctx) {
		echo = l.Info
	}
	commandLine := strings.Join(command, " ")
	l.Info(fmt.Sprintf("$ %s", commandLine))

	result := runCommand(ctx, workingDir, capture, timeout, command...)

	if out := strings.TrimSpace(result.Stdout); out != "" {
		echo(out)
	}
	switch {
	case result.TimedOut:
		l.Warn(fmt.Sprintf("command timed out after %s: %s", timeout, commandLine))
	case result.ExitCode != 0:
		if errOut := strings.TrimSpace(result.Stderr); errOut != "" {
			l.Info(errOut)
		}
		l.Debug(fmt.Sprintf("command exited with code %d: %s", result.ExitCode, commandLine))
	default:
		if errOut := strings.TrimSpace(result.Stderr); errOut != "" {
			echo(errOut)
		}
	}
	return result
}

func runCommand(ctx context.Context, workingDir string, capture bool, timeout time.Duration, command ...string) *types.CommandResult {
	if len(command) == 0 {
		return &types.CommandResult{ExitCode: types.LaunchFailureExitCode, Stderr: "no command specified"}
	}

	runCtx, cancel := ctx, context.CancelFunc(func() {})
	if timeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, timeout)
	}
	defer cancel()

	cmd := exec.CommandContext(runCtx, command[0], command[1:]...)
	cmd.Dir = workingDir
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	if capture {
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
	} else {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	}

	err := cmd.Run()
	result := &types.CommandResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		result.ExitCode = 0
	case errors.Is(runCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil:
		result.TimedOut = true
		result.ExitCode = types.TimeoutExitCode
		result.Stderr = appendLine(result.Stderr, fmt.Sprintf("timeout expired after %s", timeout))
	case errors.As(err, &exitErr) && exitErr.ExitCode() >= 0:
		result.ExitCode = exitErr.ExitCode()
	default:
		result.ExitCode = types.LaunchFailureExitCode
		result.Stderr = appendLine(result.Stderr, err.Error())
	}
	return result
}

func appendLine(s, line string) string {
	if s == "" {
		return line
	}
	return strings.TrimRight(s, "\n") + "\n" + line
}

func LookPath(executable string) (string, error) {
	return exec.LookPath(executable)
}
