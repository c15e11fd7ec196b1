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


package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vaultchain-africa/vc-automation/internal/artifacts"
	"github.com/vaultchain-africa/vc-automation/internal/config"
	"github.com/vaultchain-africa/vc-automation/internal/deploy"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build and test the contracts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newRunEnv(cmd, func(cfg *config.PipelineConfig) {
			if cmd.Flags().Changed("skip-tests") {
				cfg.Build.SkipTests = runOptions.skipTests
			}
		})
		if err != nil {
			return err
		}
		if err := env.rc.Paths.Ensure(); err != nil {
			env.stop()
			return err
		}
		outcome := env.driver.Build(env.ctx, env.rc)
		env.stop()
		printOutcome(cmd, outcome)
		return nil
	},
}

var chainCmd = &cobra.Command{
	Use:   "chain",
	Short: "Make sure a local chain is running",
	Long: `Make sure a local chain is running

A running anvil instance is reused as is. Otherwise a new one is launched in
the background with the configured port and chain id, and keeps running after
this command exits.
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newRunEnv(cmd, func(cfg *config.PipelineConfig) {
			if cmd.Flags().Changed("no-start") {
				cfg.Chain.StartIfMissing = !runOptions.noStart
			}
		})
		if err != nil {
			return err
		}
		if err := env.rc.Paths.Ensure(); err != nil {
			env.stop()
			return err
		}
		outcome := env.driver.EnsureChain(env.ctx, env.rc)
		env.stop()
		printOutcome(cmd, outcome)
		if h := env.rc.Chain; h != nil && h.Launched() {
			fmt.Fprintf(cmd.OutOrStdout(), "pid %d, log %s\n", h.PID, h.LogFile)
		}
		return nil
	},
}

var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Broadcast the deploy script and capture the deployed contracts",
	Long: `Broadcast the deploy script and capture the deployed contracts

The deploy script must print one line per deployed contract in the form

DeployedContract:<ContractName>:<0xAddress>
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newRunEnv(cmd, func(cfg *config.PipelineConfig) {
			applyRunOptions(cmd, cfg)
		})
		if err != nil {
			return err
		}
		if err := env.rc.Paths.Ensure(); err != nil {
			env.stop()
			return err
		}
		outcome := env.driver.Deploy(env.ctx, env.rc)
		env.stop()
		printOutcome(cmd, outcome)
		if env.rc.Deployment != nil {
			for _, line := range deploy.SummaryTable(env.rc.Deployment) {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "run token: %s\n", env.rc.Timestamp)
		}
		return nil
	},
}

var configureCmd = &cobra.Command{
	Use:   "configure [run_token]",
	Short: "Run the post-deploy setup against a previous deployment",
	Long: `Run the post-deploy setup against a previous deployment

Grants the operator role on the manager contract, registers the test member
and marks its KYC as verified. Without a run token the latest deployment for
the chain id is used.
`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newRunEnv(cmd, nil)
		if err != nil {
			return err
		}
		var token string
		if len(args) > 0 {
			token = args[0]
		} else if token, err = artifacts.NewStore(env.rc.Paths).Latest(env.driver.Config.Chain.ChainID); err != nil {
			env.stop()
			return err
		}
		outcome := env.driver.Configure(env.ctx, env.rc, token)
		env.stop()
		printOutcome(cmd, outcome)
		for _, g := range env.driver.Grants() {
			fmt.Fprintf(cmd.OutOrStdout(), "  %-15s succeeded=%-5t %s\n", g.Step, g.Succeeded, g.Value)
		}
		return nil
	},
}

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove logs, deployments and transactions of previous runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newRunEnv(cmd, nil)
		if err != nil {
			return err
		}
		outcome := env.driver.Clean(env.ctx, env.rc)
		env.stop()
		printOutcome(cmd, outcome)
		return nil
	},
}

func init() {
	buildCmd.Flags().BoolVar(&runOptions.skipTests, "skip-tests", false, "build without running the contract tests")
	chainCmd.Flags().BoolVar(&runOptions.noStart, "no-start", false, "only report whether a chain is running")
	deployCmd.Flags().BoolVar(&runOptions.dryRun, "dry-run", false, "prepare the deployment without broadcasting it")
	deployCmd.Flags().StringVar(&runOptions.script, "script", "", "deploy script (default is the first Deploy.s.sol found in the project)")

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(chainCmd)
	rootCmd.AddCommand(deployCmd)
	rootCmd.AddCommand(configureCmd)
	rootCmd.AddCommand(cleanCmd)
}
