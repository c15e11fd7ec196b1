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
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vaultchain-africa/vc-automation/internal/artifacts"
	"github.com/vaultchain-africa/vc-automation/pkg/types"
)

var deploymentsCmd = &cobra.Command{
	Use:   "deployments",
	Short: "View and export captured deployments",
}

var deploymentsListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List captured deployments",
	Long: `List captured deployments

Without --chain-id every chain with captured deployments is listed.
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadPipelineConfig(cmd)
		if err != nil {
			return err
		}
		store := artifacts.NewStore(types.NewRunPaths(cfg.RootDir()))
		chainIDs := []int64{cfg.Chain.ChainID}
		if !cmd.Flags().Changed("chain-id") {
			if chainIDs, err = store.ListChains(); err != nil {
				return err
			}
		}
		out := cmd.OutOrStdout()
		for _, chainID := range chainIDs {
			tokens, err := store.List(chainID)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "chain %d:\n", chainID)
			for _, token := range tokens {
				record, err := store.Load(chainID, token)
				if err != nil {
					fmt.Fprintf(out, "  %s  (unreadable: %s)\n", token, err)
					continue
				}
				fmt.Fprintf(out, "  %s  %d contracts, %d transactions\n", token, len(record.Contracts), len(record.TransactionHashes))
			}
		}
		return nil
	},
}

var deploymentsExportCmd = &cobra.Command{
	Use:   "export <run_token> <dest_dir>",
	Short: "Copy the artifacts of a deployment to another directory",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadPipelineConfig(cmd)
		if err != nil {
			return err
		}
		dest, err := filepath.Abs(args[1])
		if err != nil {
			return err
		}
		store := artifacts.NewStore(types.NewRunPaths(cfg.RootDir()))
		if err := store.Export(cfg.Chain.ChainID, args[0], dest); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "exported run %s to %s\n", args[0], dest)
		return nil
	},
}

func init() {
	deploymentsCmd.AddCommand(deploymentsListCmd)
	deploymentsCmd.AddCommand(deploymentsExportCmd)
	rootCmd.AddCommand(deploymentsCmd)
}
