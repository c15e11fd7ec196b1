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

	"github.com/vaultchain-africa/vc-automation/internal/config"
)

var runOptions struct {
	dryRun        bool
	skipBuild     bool
	skipTests     bool
	skipConfigure bool
	noStart       bool
	script        string
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run every stage of the pipeline",
	Long: `Run every stage of the pipeline

Stages run in order: clean, bootstrap, build, chain, deploy, configure.
A stage that fails is logged and the pipeline carries on with the stages
that do not depend on it. Logs and artifacts are written under the
artifact directory, one set per run.
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newRunEnv(cmd, func(cfg *config.PipelineConfig) {
			applyRunOptions(cmd, cfg)
		})
		if err != nil {
			return err
		}
		report := env.driver.Run(env.ctx, env.rc)
		env.stop()

		fmt.Fprintf(cmd.OutOrStdout(), "\nRun %s finished at stage '%s'\n\n", env.rc.Timestamp, report.Final)
		for _, o := range report.Outcomes {
			printOutcome(cmd, o)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\nLog: %s\n", env.rc.LogFile())
		return nil
	},
}

func applyRunOptions(cmd *cobra.Command, cfg *config.PipelineConfig) {
	flags := cmd.Flags()
	if flags.Changed("dry-run") {
		cfg.Deploy.DryRun = runOptions.dryRun
	}
	if flags.Changed("skip-build") {
		cfg.Build.Skip = runOptions.skipBuild
	}
	if flags.Changed("skip-tests") {
		cfg.Build.SkipTests = runOptions.skipTests
	}
	if flags.Changed("skip-configure") {
		cfg.Configure.Skip = runOptions.skipConfigure
	}
	if flags.Changed("no-start") {
		cfg.Chain.StartIfMissing = !runOptions.noStart
	}
	if flags.Changed("script") {
		cfg.Deploy.Script = runOptions.script
	}
}

func init() {
	runCmd.Flags().BoolVar(&runOptions.dryRun, "dry-run", false, "prepare the deployment without broadcasting it")
	runCmd.Flags().BoolVar(&runOptions.skipBuild, "skip-build", false, "skip the build and test stage")
	runCmd.Flags().BoolVar(&runOptions.skipTests, "skip-tests", false, "build without running the contract tests")
	runCmd.Flags().BoolVar(&runOptions.skipConfigure, "skip-configure", false, "skip the post-deploy setup")
	runCmd.Flags().BoolVar(&runOptions.noStart, "no-start", false, "do not launch a chain when none is running")
	runCmd.Flags().StringVar(&runOptions.script, "script", "", "deploy script (default is the first Deploy.s.sol found in the project)")
	rootCmd.AddCommand(runCmd)
}
