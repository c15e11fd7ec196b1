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


package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/miracl/conflate"
	"github.com/vaultchain-africa/vc-automation/internal/configure"
	"github.com/vaultchain-africa/vc-automation/internal/constants"
	"github.com/vaultchain-africa/vc-automation/pkg/types"
	"gopkg.in/yaml.v3"
)

const redactedValue = "********"

type PipelineConfig struct {
	ProjectDir string          `yaml:"projectDir" mapstructure:"projectDir"`
	Root       string          `yaml:"root,omitempty" mapstructure:"root"`
	Build      BuildConfig     `yaml:"build" mapstructure:"build"`
	Chain      ChainConfig     `yaml:"chain" mapstructure:"chain"`
	Deploy     DeployConfig    `yaml:"deploy" mapstructure:"deploy"`
	Configure  ConfigureConfig `yaml:"configure" mapstructure:"configure"`
}

type BuildConfig struct {
	Skip      bool          `yaml:"skip" mapstructure:"skip"`
	SkipTests bool          `yaml:"skipTests" mapstructure:"skipTests"`
	Timeout   time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

type ChainConfig struct {
	Port           int           `yaml:"port" mapstructure:"port"`
	ChainID        int64         `yaml:"chainId" mapstructure:"chainId"`
	StartIfMissing bool          `yaml:"startIfMissing" mapstructure:"startIfMissing"`
	StartupTimeout time.Duration `yaml:"startupTimeout" mapstructure:"startupTimeout"`
	CheckRPC       bool          `yaml:"checkRPC" mapstructure:"checkRPC"`
}

type DeployConfig struct {
	Script  string        `yaml:"script,omitempty" mapstructure:"script"`
	RPCURL  string        `yaml:"rpcURL,omitempty" mapstructure:"rpcURL"`
	DryRun  bool          `yaml:"dryRun" mapstructure:"dryRun"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

type ConfigureConfig struct {
	Skip            bool                 `yaml:"skip" mapstructure:"skip"`
	ManagerContract string               `yaml:"managerContract" mapstructure:"managerContract"`
	RoleName        string               `yaml:"roleName" mapstructure:"roleName"`
	Timeout         time.Duration        `yaml:"timeout" mapstructure:"timeout"`
	Identities      configure.Identities `yaml:"identities" mapstructure:"identities"`
}

func Default(projectDir string) *PipelineConfig {
	return &PipelineConfig{
		ProjectDir: projectDir,
		Build: BuildConfig{
			Timeout: constants.DefaultCommandTimeout,
		},
		Chain: ChainConfig{
			Port:           constants.DefaultAnvilPort,
			ChainID:        constants.DefaultChainID,
			StartIfMissing: true,
			StartupTimeout: constants.DefaultChainStartupTimeout,
			CheckRPC:       true,
		},
		Deploy: DeployConfig{
			Timeout: constants.DefaultDeployTimeout,
		},
		Configure: ConfigureConfig{
			ManagerContract: constants.ManagerContractName,
			RoleName:        constants.OperatorRoleName,
			Timeout:         constants.DefaultCommandTimeout,
			Identities: configure.Identities{
				AdminKey:        constants.DefaultAdminPrivateKey,
				OperatorAddress: constants.DefaultOperatorAddress,
				MemberAddress:   constants.DefaultTestMemberAddress,
			},
		},
	}
}

// RootDir is the artifact root, <projectDir>/vc_automation unless overridden.
func (c *PipelineConfig) RootDir() string {
	if c.Root != "" {
		return c.Root
	}
	return filepath.Join(c.ProjectDir, constants.AutomationDirName)
}

func (c *PipelineConfig) RPCURL() string {
	if c.Deploy.RPCURL != "" {
		return c.Deploy.RPCURL
	}
	return types.RPCURLForPort(c.Chain.Port)
}

func (c *PipelineConfig) Validate() error {
	if c.ProjectDir == "" {
		return fmt.Errorf("project directory must be set")
	}
	if c.Chain.Port <= 0 || c.Chain.Port > 65535 {
		return fmt.Errorf("invalid chain port %d", c.Chain.Port)
	}
	if c.Chain.ChainID <= 0 {
		return fmt.Errorf("invalid chain id %d", c.Chain.ChainID)
	}
	for name, d := range map[string]time.Duration{
		"build.timeout":        c.Build.Timeout,
		"chain.startupTimeout": c.Chain.StartupTimeout,
		"deploy.timeout":       c.Deploy.Timeout,
		"configure.timeout":    c.Configure.Timeout,
	} {
		if d <= 0 {
			return fmt.Errorf("%s must be a positive duration", name)
		}
	}
	return nil
}

// Redacted returns a copy of c with private keys masked, for snapshots.
func (c *PipelineConfig) Redacted() *PipelineConfig {
	redacted := *c
	ids := &redacted.Configure.Identities
	if ids.AdminKey != "" {
		ids.AdminKey = redactedValue
	}
	if ids.OperatorKey != "" {
		ids.OperatorKey = redactedValue
	}
	return &redacted
}

// Resolve overlays the YAML file at overlayPath on top of base. Keys missing
// from the overlay keep their base values. base is never modified.
func Resolve(base *PipelineConfig, overlayPath string) (*PipelineConfig, error) {
	baseBytes, err := yaml.Marshal(base)
	if err != nil {
		return nil, err
	}
	merged := &PipelineConfig{}
	if overlayPath == "" {
		return merged, yaml.Unmarshal(baseBytes, merged)
	}
	merger := conflate.New()
	if err := merger.AddData(baseBytes); err != nil {
		return nil, fmt.Errorf("failed merging base config: %w", err)
	}
	if err := merger.AddFiles(overlayPath); err != nil {
		return nil, fmt.Errorf("failed merging config %s: %w", overlayPath, err)
	}
	mergedBytes, err := merger.MarshalYAML()
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(mergedBytes, merged); err != nil {
		return nil, fmt.Errorf("invalid config after merging %s: %w", overlayPath, err)
	}
	return merged, nil
}

// WriteConfig writes a YAML snapshot of c to path.
func WriteConfig(c *PipelineConfig, path string) error {
	bytes, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, bytes, 0644)
}

func ReadConfig(path string) (*PipelineConfig, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c := &PipelineConfig{}
	return c, yaml.Unmarshal(bytes, c)
}
