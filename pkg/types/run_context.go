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

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const TimestampFormat = "2006-01-02_15-04-05"

type RunPaths struct {
	Root         string `json:"root"`
	Logs         string `json:"logs"`
	Deployments  string `json:"deployments"`
	Transactions string `json:"transactions"`
}

func NewRunPaths(root string) RunPaths {
	return RunPaths{
		Root:         root,
		Logs:         filepath.Join(root, "logs"),
		Deployments:  filepath.Join(root, "deployments"),
		Transactions: filepath.Join(root, "transactions"),
	}
}

func (p RunPaths) All() []string {
	return []string{p.Logs, p.Deployments, p.Transactions}
}

func (p RunPaths) Ensure() error {
	for _, dir := range p.All() {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}

// RunContext is the state of one pipeline execution. It is threaded through
// every stage instead of living in package globals, so each test can build its
// own with isolated roots.
type RunContext struct {
	Timestamp  string            `json:"timestamp"`
	ProjectDir string            `json:"projectDir"`
	Paths      RunPaths          `json:"paths"`
	Chain      *ChainHandle      `json:"chain,omitempty"`
	Deployment *DeploymentRecord `json:"deployment,omitempty"`
}

func NewRunContext(projectDir, root string, now time.Time) *RunContext {
	return &RunContext{
		Timestamp:  now.Format(TimestampFormat),
		ProjectDir: projectDir,
		Paths:      NewRunPaths(root),
	}
}

func (rc *RunContext) LogFile() string {
	return filepath.Join(rc.Paths.Logs, fmt.Sprintf("automation_%s.log", rc.Timestamp))
}

func (rc *RunContext) ChainLogFile() string {
	return filepath.Join(rc.Paths.Logs, fmt.Sprintf("anvil_%s.log", rc.Timestamp))
}

func (rc *RunContext) DeployRawLogFile() string {
	return filepath.Join(rc.Paths.Logs, fmt.Sprintf("deploy_raw_%s.log", rc.Timestamp))
}

func (rc *RunContext) ConfigSnapshotFile() string {
	return filepath.Join(rc.Paths.Logs, fmt.Sprintf("config_%s.yml", rc.Timestamp))
}
