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
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/vaultchain-africa/vc-automation/internal/log"
)

var cfgFile string
var verbose bool
var fancyFeatures bool
var logLevel string
var logger log.Logger = &log.StdoutLogger{LogLevel: log.Info}

func GetBannerArt() string {
	s := ""
	s += "\u001b[33m __   ______    _         _                        _   _             \u001b[0m\n" // yellow
	s += "\u001b[33m \\ \\ / / ___|  / \\  _   _| |_ ___  _ __ ___   __ _| |_(_) ___  _ __  \u001b[0m\n"
	s += "\u001b[32m  \\ V / |     / _ \\| | | | __/ _ \\| '_ ` _ \\ / _` | __| |/ _ \\| '_ \\ \u001b[0m\n" // green
	s += "\u001b[32m   \\_/ \\____|/_/ \\_\\\\__,_|\\__\\___/|_| |_| |_|\\__,_|\\__|_|\\___/|_| |_|\u001b[0m\n"
	return s
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "vc",
	Short: "VaultChain automation builds, deploys and configures contracts on a local chain",
	Long: GetBannerArt() + `
VaultChain automation is a developer tool for the contract deployment cycle

It builds and tests the contracts with forge, makes sure a local anvil chain
is running, broadcasts the deploy script, captures the deployed addresses and
transactions, then grants roles and registers a test member on the deployed
manager contract.

To run every stage in order run: vc run
	`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		fancyFeatures = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
		level, err := log.LogLevelFromString(logLevel)
		if err != nil {
			return err
		}
		if verbose {
			level = log.Debug
		}
		logger.SetLogLevel(level)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.vc-automation.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose log output")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "console log level (\"trace\"|\"debug\"|\"info\"|\"warn\"|\"error\")")
	rootCmd.PersistentFlags().StringVarP(&pipelineFlags.projectDir, "project-dir", "p", ".", "directory containing the foundry project")
	rootCmd.PersistentFlags().StringVar(&pipelineFlags.root, "root", "", "artifact directory (default is <project-dir>/vc_automation)")
	rootCmd.PersistentFlags().StringVar(&pipelineFlags.extraConfig, "extra-config", "", "path to a YAML file merged on top of the pipeline configuration")
	rootCmd.PersistentFlags().IntVar(&pipelineFlags.port, "port", 8545, "port of the local chain")
	rootCmd.PersistentFlags().Int64Var(&pipelineFlags.chainID, "chain-id", 31337, "chain id of the local chain")
	rootCmd.PersistentFlags().StringVar(&pipelineFlags.rpcURL, "rpc-url", "", "RPC endpoint for deployment and configuration (default is http://127.0.0.1:<port>)")

	_ = viper.BindPFlag("projectDir", rootCmd.PersistentFlags().Lookup("project-dir"))
	_ = viper.BindPFlag("root", rootCmd.PersistentFlags().Lookup("root"))
	_ = viper.BindPFlag("extraConfig", rootCmd.PersistentFlags().Lookup("extra-config"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".vc-automation" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".vc-automation")
	}

	viper.SetEnvPrefix("VC")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
