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

package types

import (
	"github.com/hyperledger/firefly-common/pkg/fftypes"
)

type StageState = fftypes.FFEnum

var (
	StageClean        = fftypes.FFEnumValue("stageState", "clean")
	StageBootstrapped = fftypes.FFEnumValue("stageState", "bootstrapped")
	StageBuilt        = fftypes.FFEnumValue("stageState", "built")
	StageChainReady   = fftypes.FFEnumValue("stageState", "chainready")
	StageDeployed     = fftypes.FFEnumValue("stageState", "deployed")
	StageConfigured   = fftypes.FFEnumValue("stageState", "configured")
	StageDone         = fftypes.FFEnumValue("stageState", "done")
)

// StageOutcome is the structured result of a single pipeline stage. A stage
// that ran but could not reach its target state has Reached=false; a stage the
// driver never ran because an upstream input was missing has Skipped=true.
type StageOutcome struct {
	Stage   StageState `json:"stage"`
	Reached bool       `json:"reached"`
	Skipped bool       `json:"skipped,omitempty"`
	Message string     `json:"message,omitempty"`
}

// RoleGrantOutcome reports one post-deploy configuration call. It is never persisted.
type RoleGrantOutcome struct {
	Step        string         `json:"step"`
	Description string         `json:"description"`
	Result      *CommandResult `json:"result"`
	Value       string         `json:"value,omitempty"`
	Succeeded   bool           `json:"succeeded"`
}
