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

package deploy

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/vaultchain-africa/vc-automation/internal/artifacts"
	"github.com/vaultchain-africa/vc-automation/internal/constants"
	"github.com/vaultchain-africa/vc-automation/internal/log"
	"github.com/vaultchain-africa/vc-automation/internal/process"
	"github.com/vaultchain-africa/vc-automation/pkg/types"
)

type Executor struct {
	runner          process.IRunner
	ForgeExecutable string
}

func NewExecutor(runner process.IRunner) *Executor {
	return &Executor{
		runner:          runner,
		ForgeExecutable: constants.ForgeExecutable,
	}
}

// Deploy broadcasts the deploy script against rpcURL and captures the result.
// When scriptPath is empty the script is looked up among the standard
// locations in the project. It returns nil whenever no contract was recorded:
// no script, a dry run, a missing build tool, a timeout, a launch failure or
// output without any DeployedContract lines.
func (e *Executor) Deploy(ctx context.Context, rc *types.RunContext, scriptPath, rpcURL string, chainID int64, dryRun bool, timeout time.Duration) *types.DeploymentRecord {
	l := log.LoggerFromContext(ctx)

	if scriptPath == "" {
		found, ok := FindDeployScript(rc.ProjectDir)
		if !ok {
			l.Info("No Deploy.s.sol found. Skipping deployment")
			return nil
		}
		scriptPath = found
	}

	store := artifacts.NewStore(rc.Paths)
	if _, err := store.EnsureChainDir(chainID); err != nil {
		l.Error(fmt.Errorf("unable to create deployment folder: %w", err))
		return nil
	}

	if dryRun {
		l.Info(fmt.Sprintf("Dry-run enabled: skipping broadcast deployment of %s", scriptPath))
		return nil
	}

	if _, err := e.runner.LookPath(e.ForgeExecutable); err != nil {
		l.Error(fmt.Errorf("'%s' executable not found in PATH. Please install Foundry and try again", e.ForgeExecutable))
		return nil
	}

	result := e.runner.Run(ctx, rc.ProjectDir, true, timeout,
		e.ForgeExecutable, "script", scriptPath,
		"--rpc-url", rpcURL,
		"--broadcast",
		"--chain-id", strconv.FormatInt(chainID, 10),
	)

	rawLog := rc.DeployRawLogFile()
	if err := writeRawOutput(rawLog, result); err != nil {
		l.Error(fmt.Errorf("unable to save raw deployment output: %w", err))
	}

	switch {
	case result.TimedOut:
		l.Error(fmt.Errorf("deployment timed out after %s", timeout))
		return nil
	case result.ExitCode != 0 && strings.TrimSpace(result.Stdout) == "":
		l.Error(fmt.Errorf("deployment failed with exit code %d: %s", result.ExitCode, strings.TrimSpace(result.Stderr)))
		return nil
	case result.ExitCode != 0:
		l.Warn(fmt.Sprintf("deployment command exited with code %d, parsing its output anyway", result.ExitCode))
	}

	record := ParseDeploymentOutput(ctx, result.Stdout)

	if len(record.TransactionHashes) > 0 {
		if txLog, err := store.SaveTransactions(rc.Timestamp, record.TransactionHashes); err != nil {
			l.Error(fmt.Errorf("unable to save transaction hashes: %w", err))
		} else {
			l.Info(fmt.Sprintf("Saved transaction hashes to %s", txLog))
		}
	}

	if len(record.Contracts) == 0 {
		l.Warn(fmt.Sprintf("No deployed contracts detected. Ensure the deploy script prints '%sContractName:0x...' for each contract", constants.DeployedContractPrefix))
		return nil
	}

	summary, err := store.Save(chainID, rc.Timestamp, record)
	if err != nil {
		l.Error(fmt.Errorf("unable to save deployment summary: %w", err))
		return nil
	}
	l.Info(fmt.Sprintf("Saved deployment summary to %s", summary))
	for _, line := range SummaryTable(record) {
		l.Info(line)
	}
	l.Info("Deployment stage completed successfully")
	return record
}

// SummaryTable renders the name to address mapping, one contract per line.
func SummaryTable(record *types.DeploymentRecord) []string {
	lines := []string{"=== Contracts Deployed ==="}
	for _, name := range record.ContractNames() {
		lines = append(lines, fmt.Sprintf("%-25s -> %s", name, record.Contracts[name]))
	}
	return append(lines, "==========================")
}

func writeRawOutput(path string, result *types.CommandResult) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(result.Combined()), 0644)
}
