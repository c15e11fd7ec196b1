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
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vaultchain-africa/vc-automation/internal/config"
	"github.com/vaultchain-africa/vc-automation/internal/log"
	"github.com/vaultchain-africa/vc-automation/internal/pipeline"
	"github.com/vaultchain-africa/vc-automation/internal/process"
	"github.com/vaultchain-africa/vc-automation/pkg/types"
)

var pipelineFlags struct {
	projectDir  string
	root        string
	extraConfig string
	port        int
	chainID     int64
	rpcURL      string
}

// loadPipelineConfig layers, from lowest to highest precedence: built-in
// defaults, the "pipeline" section of the config file, the --extra-config
// overlay, then flags set on the command line.
func loadPipelineConfig(cmd *cobra.Command) (*config.PipelineConfig, error) {
	projectDir, err := filepath.Abs(viper.GetString("projectDir"))
	if err != nil {
		return nil, err
	}
	cfg := config.Default(projectDir)
	if viper.IsSet("pipeline") {
		if err := viper.UnmarshalKey("pipeline", cfg); err != nil {
			return nil, fmt.Errorf("invalid pipeline section in %s: %w", viper.ConfigFileUsed(), err)
		}
		cfg.ProjectDir = projectDir
	}
	if cfg, err = config.Resolve(cfg, viper.GetString("extraConfig")); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if root := viper.GetString("root"); root != "" {
		if cfg.Root, err = filepath.Abs(root); err != nil {
			return nil, err
		}
	}
	if flags.Changed("port") {
		cfg.Chain.Port = pipelineFlags.port
	}
	if flags.Changed("chain-id") {
		cfg.Chain.ChainID = pipelineFlags.chainID
	}
	if flags.Changed("rpc-url") {
		cfg.Deploy.RPCURL = pipelineFlags.rpcURL
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// runEnv is what a stage command needs: a driver, a fresh run context and a
// context carrying a logger that mirrors to the run log file.
type runEnv struct {
	ctx    context.Context
	driver *pipeline.Driver
	rc     *types.RunContext
	stop   func()
}

func newRunEnv(cmd *cobra.Command, customize func(cfg *config.PipelineConfig)) (*runEnv, error) {
	cfg, err := loadPipelineConfig(cmd)
	if err != nil {
		return nil, err
	}
	if customize != nil {
		customize(cfg)
	}
	driver := pipeline.NewDriver(cfg, process.NewRunner(), process.NewProbe())
	rc := driver.NewRunContext()

	console := logger
	stop := func() {}
	if fancyFeatures && !verbose {
		spin := log.NewDefaultSpinnerLogger()
		console = spin
		spin.Start()
		stop = spin.Stop
	}
	fileLogger := log.NewFileLogger(rc.LogFile(), console)

	ctx := log.WithVerbosity(context.Background(), verbose)
	ctx = log.WithLogger(ctx, fileLogger)
	return &runEnv{ctx: ctx, driver: driver, rc: rc, stop: stop}, nil
}

func printOutcome(cmd *cobra.Command, o *types.StageOutcome) {
	status := "not reached"
	switch {
	case o.Skipped:
		status = "skipped"
	case o.Reached:
		status = "reached"
	}
	if o.Message != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "%-13s %-12s %s\n", o.Stage, status, o.Message)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "%-13s %s\n", o.Stage, status)
	}
}
