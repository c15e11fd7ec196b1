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


package configure

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/vaultchain-africa/vc-automation/internal/artifacts"
	"github.com/vaultchain-africa/vc-automation/internal/constants"
	"github.com/vaultchain-africa/vc-automation/internal/log"
	"github.com/vaultchain-africa/vc-automation/internal/process"
	"github.com/vaultchain-africa/vc-automation/pkg/types"
)

type Configurator struct {
	runner          process.IRunner
	store           *artifacts.Store
	CastExecutable  string
	ManagerContract string
	RoleName        string
	Timeout         time.Duration
}

func NewConfigurator(runner process.IRunner, store *artifacts.Store) *Configurator {
	return &Configurator{
		runner:          runner,
		store:           store,
		CastExecutable:  constants.CastExecutable,
		ManagerContract: constants.ManagerContractName,
		RoleName:        constants.OperatorRoleName,
		Timeout:         constants.DefaultCommandTimeout,
	}
}

// Configure grants the operator role on the manager contract of the run
// identified by chainID and token, then registers the member and marks its
// KYC as verified. Every step is attempted whatever the result of the
// previous one. An empty result means a precondition was not met and nothing
// was sent to the chain.
func (c *Configurator) Configure(ctx context.Context, chainID int64, token, rpcURL string, ids Identities) []*types.RoleGrantOutcome {
	l := log.LoggerFromContext(ctx)
	outcomes := []*types.RoleGrantOutcome{}

	record, err := c.store.Load(chainID, token)
	if err != nil {
		l.Error(fmt.Errorf("unable to load deployment summary: %w", err))
		return outcomes
	}
	if record == nil {
		l.Info(fmt.Sprintf("No deployment summary found at %s. Skipping post-deploy setup", c.store.SummaryPath(chainID, token)))
		return outcomes
	}
	manager, ok := record.Address(c.ManagerContract)
	if !ok || manager == "" {
		l.Info(fmt.Sprintf("%s address not found in deployment summary. Skipping post-deploy setup", c.ManagerContract))
		return outcomes
	}
	resolved, err := ids.Resolve()
	if err != nil {
		l.Error(fmt.Errorf("post-deploy identities are not usable, skipping post-deploy setup: %w", err))
		return outcomes
	}

	roleID := RoleID(c.RoleName)
	l.Info(fmt.Sprintf("Computed %s hash: %s", c.RoleName, roleID))

	steps := []struct {
		name        string
		description string
		run         func() *types.CommandResult
		readOnly    bool
	}{
		{
			name:        "grantRole",
			description: fmt.Sprintf("Granting %s to %s", c.RoleName, resolved.OperatorAddress),
			run: func() *types.CommandResult {
				return c.send(ctx, manager, rpcURL, resolved.AdminKey, "grantRole(bytes32,address)", roleID, resolved.OperatorAddress)
			},
		},
		{
			name:        "hasRole",
			description: fmt.Sprintf("Verifying if %s has %s", resolved.OperatorAddress, c.RoleName),
			run: func() *types.CommandResult {
				return c.call(ctx, manager, rpcURL, "hasRole(bytes32,address) returns (bool)", roleID, resolved.OperatorAddress)
			},
			readOnly: true,
		},
		{
			name:        "registerMember",
			description: fmt.Sprintf("Registering test member %s", resolved.MemberAddress),
			run: func() *types.CommandResult {
				return c.send(ctx, manager, rpcURL, resolved.OperatorKey, "registerMember(address)", resolved.MemberAddress)
			},
		},
		{
			name:        "updateKyc",
			description: fmt.Sprintf("Updating KYC for %s to 1 (verified)", resolved.MemberAddress),
			run: func() *types.CommandResult {
				return c.send(ctx, manager, rpcURL, resolved.OperatorKey, "updateKyc(address,uint8)", resolved.MemberAddress, "1")
			},
		},
		{
			name:        "isRegistered",
			description: fmt.Sprintf("Verifying if %s is registered", resolved.MemberAddress),
			run: func() *types.CommandResult {
				return c.call(ctx, manager, rpcURL, "isRegistered(address) returns (bool)", resolved.MemberAddress)
			},
			readOnly: true,
		},
	}

	for _, step := range steps {
		l.Info(step.description)
		result := step.run()
		outcome := &types.RoleGrantOutcome{
			Step:        step.name,
			Description: step.description,
			Result:      result,
			Succeeded:   result.Succeeded(),
		}
		if step.readOnly {
			outcome.Value = result.TrimmedStdout()
		}
		switch {
		case result.TimedOut:
			l.Warn(fmt.Sprintf("%s timed out after %s", step.name, c.Timeout))
		case !outcome.Succeeded:
			l.Warn(fmt.Sprintf("%s failed with exit code %d: %s", step.name, result.ExitCode, strings.TrimSpace(result.Stderr)))
		case step.readOnly:
			l.Info(fmt.Sprintf("%s: %s", step.name, outcome.Value))
		}
		outcomes = append(outcomes, outcome)
	}
	return outcomes
}

func (c *Configurator) send(ctx context.Context, contract, rpcURL, privateKey, signature string, args ...string) *types.CommandResult {
	command := append([]string{c.CastExecutable, "send", contract, signature}, args...)
	command = append(command, "--rpc-url", rpcURL, "--private-key", privateKey)
	return c.runner.Run(ctx, "", true, c.Timeout, command...)
}

func (c *Configurator) call(ctx context.Context, contract, rpcURL, signature string, args ...string) *types.CommandResult {
	command := append([]string{c.CastExecutable, "call", contract, signature}, args...)
	command = append(command, "--rpc-url", rpcURL)
	return c.runner.Run(ctx, "", true, c.Timeout, command...)
}

// Verified reports whether both read-only checks answered true.
func Verified(outcomes []*types.RoleGrantOutcome) bool {
	checks := 0
	for _, o := range outcomes {
		if o.Step != "hasRole" && o.Step != "isRegistered" {
			continue
		}
		if !o.Succeeded || o.Value != "true" {
			return false
		}
		checks++
	}
	return checks == 2
}
