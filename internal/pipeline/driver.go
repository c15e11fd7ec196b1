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


package pipeline

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/vaultchain-africa/vc-automation/internal/artifacts"
	"github.com/vaultchain-africa/vc-automation/internal/build"
	"github.com/vaultchain-africa/vc-automation/internal/chain"
	"github.com/vaultchain-africa/vc-automation/internal/config"
	"github.com/vaultchain-africa/vc-automation/internal/configure"
	"github.com/vaultchain-africa/vc-automation/internal/constants"
	"github.com/vaultchain-africa/vc-automation/internal/deploy"
	"github.com/vaultchain-africa/vc-automation/internal/log"
	"github.com/vaultchain-africa/vc-automation/internal/process"
	"github.com/vaultchain-africa/vc-automation/pkg/types"
)

var bannerRule = strings.Repeat("=", 70)

// Report is the result of a full pipeline run.
type Report struct {
	RunContext *types.RunContext         `json:"runContext"`
	Outcomes   []*types.StageOutcome     `json:"outcomes"`
	Grants     []*types.RoleGrantOutcome `json:"grants,omitempty"`
	// Final is the last stage, in pipeline order, that reached its target state.
	Final types.StageState `json:"final"`
}

func (r *Report) Outcome(stage types.StageState) *types.StageOutcome {
	for _, o := range r.Outcomes {
		if o.Stage == stage {
			return o
		}
	}
	return nil
}

type Driver struct {
	Config     *config.PipelineConfig
	runner     process.IRunner
	Supervisor *chain.Supervisor
	Builder    *build.Builder
	Executor   *deploy.Executor
	Now        func() time.Time
	grants     []*types.RoleGrantOutcome
}

func NewDriver(cfg *config.PipelineConfig, runner process.IRunner, probe process.IProbe) *Driver {
	builder := build.NewBuilder(runner)
	builder.Timeout = cfg.Build.Timeout
	builder.SkipTests = cfg.Build.SkipTests
	supervisor := chain.NewSupervisor(runner, probe)
	if !cfg.Chain.CheckRPC {
		supervisor.NewChainReader = nil
	}
	return &Driver{
		Config:     cfg,
		runner:     runner,
		Supervisor: supervisor,
		Builder:    builder,
		Executor:   deploy.NewExecutor(runner),
		Now:        time.Now,
	}
}

// NewRunContext stamps a new run with the current time.
func (d *Driver) NewRunContext() *types.RunContext {
	return types.NewRunContext(d.Config.ProjectDir, d.Config.RootDir(), d.Now())
}

// Run executes every stage in order. It never fails: each stage outcome is
// recorded in the report and the reasons are in the log.
func (d *Driver) Run(ctx context.Context, rc *types.RunContext) *Report {
	l := log.LoggerFromContext(ctx)
	report := &Report{RunContext: rc, Final: types.StageClean}
	d.grants = nil

	record := func(o *types.StageOutcome) *types.StageOutcome {
		report.Outcomes = append(report.Outcomes, o)
		if o.Reached {
			report.Final = o.Stage
		}
		return o
	}

	record(d.guard(ctx, types.StageClean, func() *types.StageOutcome { return d.Clean(ctx, rc) }))
	l.Info("=== VaultChain Africa Automation Bootstrap ===")
	record(d.guard(ctx, types.StageBootstrapped, func() *types.StageOutcome { return d.Bootstrap(ctx, rc) }))
	record(d.guard(ctx, types.StageBuilt, func() *types.StageOutcome { return d.Build(ctx, rc) }))
	record(d.guard(ctx, types.StageChainReady, func() *types.StageOutcome { return d.EnsureChain(ctx, rc) }))
	record(d.guard(ctx, types.StageDeployed, func() *types.StageOutcome { return d.Deploy(ctx, rc) }))

	var configured *types.StageOutcome
	if rc.Deployment == nil {
		l.Info("No deployment record available. Skipping post-deploy setup")
		configured = record(&types.StageOutcome{Stage: types.StageConfigured, Skipped: true, Message: "no deployment record"})
	} else {
		configured = record(d.guard(ctx, types.StageConfigured, func() *types.StageOutcome { return d.Configure(ctx, rc, rc.Timestamp) }))
	}
	report.Grants = d.grants

	record(&types.StageOutcome{Stage: types.StageDone, Reached: configured.Reached})
	l.Info(fmt.Sprintf("All automation stages completed. Logs stored at: %s", rc.LogFile()))
	return report
}

// guard converts a panic inside a stage into a failed outcome.
func (d *Driver) guard(ctx context.Context, stage types.StageState, fn func() *types.StageOutcome) (outcome *types.StageOutcome) {
	defer func() {
		if r := recover(); r != nil {
			log.LoggerFromContext(ctx).Error(fmt.Errorf("unexpected error during %s stage: %v", stage, r))
			outcome = &types.StageOutcome{Stage: stage, Message: fmt.Sprintf("unexpected error: %v", r)}
		}
	}()
	return fn()
}

func (d *Driver) banner(ctx context.Context, n int, title string) {
	l := log.LoggerFromContext(ctx)
	l.Info(bannerRule)
	l.Info(fmt.Sprintf("STAGE %d: %s", n, title))
	l.Info(fmt.Sprintf("Started at %s", d.Now().Format(time.RFC3339)))
	l.Info(bannerRule)
}

// Clean removes the artifacts of previous runs and recreates the directories.
func (d *Driver) Clean(ctx context.Context, rc *types.RunContext) *types.StageOutcome {
	l := log.LoggerFromContext(ctx)
	outcome := &types.StageOutcome{Stage: types.StageClean}
	if err := artifacts.NewStore(rc.Paths).Clean(); err != nil {
		l.Error(fmt.Errorf("unable to remove previous deployments: %w", err))
		outcome.Message = err.Error()
		return outcome
	}
	if err := os.RemoveAll(rc.Paths.Logs); err != nil {
		l.Error(fmt.Errorf("unable to remove previous logs: %w", err))
		outcome.Message = err.Error()
		return outcome
	}
	if err := rc.Paths.Ensure(); err != nil {
		l.Error(fmt.Errorf("unable to create artifact directories: %w", err))
		outcome.Message = err.Error()
		return outcome
	}
	l.Info("Cleared old logs, deployments, and transaction artifacts.")
	outcome.Reached = true
	return outcome
}

// Bootstrap prepares the run: artifact directories, a snapshot of the
// effective configuration and a check that the toolchain is installed.
// Missing tools are reported but do not stop the run.
func (d *Driver) Bootstrap(ctx context.Context, rc *types.RunContext) *types.StageOutcome {
	l := log.LoggerFromContext(ctx)
	outcome := &types.StageOutcome{Stage: types.StageBootstrapped}
	if err := rc.Paths.Ensure(); err != nil {
		l.Error(fmt.Errorf("unable to create artifact directories: %w", err))
		outcome.Message = err.Error()
		return outcome
	}
	if err := config.WriteConfig(d.Config.Redacted(), rc.ConfigSnapshotFile()); err != nil {
		l.Warn(fmt.Sprintf("unable to write config snapshot: %s", err))
	} else {
		l.Debug(fmt.Sprintf("Saved effective configuration to %s", rc.ConfigSnapshotFile()))
	}
	if err := build.CheckToolchain(d.runner, constants.ForgeExecutable, constants.AnvilExecutable, constants.CastExecutable); err != nil {
		l.Error(err)
		outcome.Message = err.Error()
	}
	outcome.Reached = true
	return outcome
}

func (d *Driver) Build(ctx context.Context, rc *types.RunContext) *types.StageOutcome {
	d.banner(ctx, 1, "Build and test smart contracts")
	if d.Config.Build.Skip {
		log.LoggerFromContext(ctx).Info("Build stage disabled. Skipping")
		return &types.StageOutcome{Stage: types.StageBuilt, Skipped: true, Message: "disabled"}
	}
	return d.Builder.Build(ctx, rc)
}

// EnsureChain records the chain handle on rc.
func (d *Driver) EnsureChain(ctx context.Context, rc *types.RunContext) *types.StageOutcome {
	d.banner(ctx, 2, "Ensure local Anvil chain")
	c := d.Config.Chain
	rc.Chain = d.Supervisor.EnsureChain(ctx, rc, c.Port, c.ChainID, c.StartIfMissing, c.StartupTimeout)
	outcome := &types.StageOutcome{Stage: types.StageChainReady, Reached: rc.Chain != nil}
	if rc.Chain != nil {
		outcome.Message = fmt.Sprintf("%s chain at %s", rc.Chain.Origin, rc.Chain.RPCURL())
	} else {
		outcome.Message = "no chain available"
	}
	return outcome
}

// Deploy records the deployment on rc. It runs whether or not a chain was
// found; without one the deploy command fails on its own.
func (d *Driver) Deploy(ctx context.Context, rc *types.RunContext) *types.StageOutcome {
	d.banner(ctx, 3, "Deploy contracts and capture artifacts")
	c := d.Config
	rc.Deployment = d.Executor.Deploy(ctx, rc, c.Deploy.Script, c.RPCURL(), c.Chain.ChainID, c.Deploy.DryRun, c.Deploy.Timeout)
	outcome := &types.StageOutcome{Stage: types.StageDeployed, Reached: rc.Deployment != nil}
	if rc.Deployment != nil {
		outcome.Message = fmt.Sprintf("%d contracts deployed", len(rc.Deployment.Contracts))
	} else {
		outcome.Message = "no deployment recorded"
	}
	return outcome
}

// Configure runs the post-deploy setup against the deployment of run token.
func (d *Driver) Configure(ctx context.Context, rc *types.RunContext, token string) *types.StageOutcome {
	d.banner(ctx, 4, "Post-deploy setup")
	if d.Config.Configure.Skip {
		log.LoggerFromContext(ctx).Info("Post-deploy setup disabled. Skipping")
		return &types.StageOutcome{Stage: types.StageConfigured, Skipped: true, Message: "disabled"}
	}
	c := d.Config.Configure
	configurator := configure.NewConfigurator(d.runner, artifacts.NewStore(rc.Paths))
	configurator.ManagerContract = c.ManagerContract
	configurator.RoleName = c.RoleName
	configurator.Timeout = c.Timeout

	d.grants = configurator.Configure(ctx, d.Config.Chain.ChainID, token, d.Config.RPCURL(), c.Identities)
	outcome := &types.StageOutcome{Stage: types.StageConfigured}
	if len(d.grants) == 0 {
		outcome.Message = "preconditions not met"
		return outcome
	}
	failed := 0
	for _, g := range d.grants {
		if !g.Succeeded {
			failed++
		}
	}
	outcome.Reached = failed == 0
	outcome.Message = fmt.Sprintf("%d of %d steps succeeded, verified=%t", len(d.grants)-failed, len(d.grants), configure.Verified(d.grants))
	return outcome
}

// Grants returns the post-deploy step outcomes of the last Configure call.
func (d *Driver) Grants() []*types.RoleGrantOutcome {
	return d.grants
}
