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
	"context"
	"time"

	"github.com/vaultchain-africa/vc-automation/pkg/types"
)

// IRunner combines all external command operations used by the pipeline stages.
type IRunner interface {
	Run(ctx context.Context, workingDir string, capture bool, timeout time.Duration, command ...string) *types.CommandResult
	Start(ctx context.Context, workingDir, logFile string, command ...string) (IProcess, error)
	LookPath(executable string) (string, error)
}

// Runner implements IRunner against the host operating system
type Runner struct{}

func NewRunner() *Runner {
	return &Runner{}
}

func (r *Runner) Run(ctx context.Context, workingDir string, capture bool, timeout time.Duration, command ...string) *types.CommandResult {
	return RunCommand(ctx, workingDir, capture, timeout, command...)
}

func (r *Runner) Start(ctx context.Context, workingDir, logFile string, command ...string) (IProcess, error) {
	p, err := StartCommand(ctx, workingDir, logFile, command...)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *Runner) LookPath(executable string) (string, error) {
	return LookPath(executable)
}
