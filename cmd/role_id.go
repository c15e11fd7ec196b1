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

	"github.com/vaultchain-africa/vc-automation/internal/configure"
	"github.com/vaultchain-africa/vc-automation/internal/constants"
)

var roleIDCmd = &cobra.Command{
	Use:   "role-id [role_name]",
	Short: "Print the on-chain identifier of an access-control role",
	Long: `Print the on-chain identifier of an access-control role

The identifier is the keccak256 hash of the role name, as computed by the
contracts. The default role is OPERATOR_ROLE.
`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		roleName := constants.OperatorRoleName
		if len(args) > 0 {
			roleName = args[0]
		}
		fmt.Fprintln(cmd.OutOrStdout(), configure.RoleID(roleName))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(roleIDCmd)
}
