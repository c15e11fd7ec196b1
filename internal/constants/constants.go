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

package constants

import (
	"path/filepath"
	"time"
)

var ForgeExecutable = "forge"
var AnvilExecutable = "anvil"
var CastExecutable = "cast"

// AnvilProcessName is matched case-insensitively against running process names.
var AnvilProcessName = "anvil"

var AutomationDirName = "vc_automation"

var DefaultAnvilPort = 8545
var DefaultChainID int64 = 31337

var DefaultChainStartupTimeout = 30 * time.Second
var DefaultCommandTimeout = 300 * time.Second
var DefaultDeployTimeout = 600 * time.Second
var ChainPollInterval = 1 * time.Second

// DeployScriptCandidates are tried in order relative to the project directory.
var DeployScriptCandidates = []string{
	filepath.Join("backend", "script", "Deploy.s.sol"),
	filepath.Join("backend", "scripts", "Deploy.s.sol"),
	filepath.Join("script", "Deploy.s.sol"),
	filepath.Join("scripts", "Deploy.s.sol"),
}

var DeployedContractPrefix = "DeployedContract:"
var TransactionHashMarker = "Transaction hash:"

var ManagerContractName = "LoanManager"
var OperatorRoleName = "OPERATOR_ROLE"

// Well-known anvil development accounts 0 and 1.
var DefaultAdminPrivateKey = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
var DefaultOperatorAddress = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
var DefaultTestMemberAddress = "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"
