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
	"fmt"

	"github.com/hyperledger/firefly-common/pkg/fftypes"
)

type ChainOrigin = fftypes.FFEnum

var (
	ChainOriginDetected = fftypes.FFEnumValue("chainOrigin", "detected")
	ChainOriginLaunched = fftypes.FFEnumValue("chainOrigin", "launched")
)

// ChainHandle identifies the development chain used for the duration of a run.
// A nil handle means no chain is known to be available.
type ChainHandle struct {
	Origin     ChainOrigin `json:"origin"`
	Port       int         `json:"port"`
	ChainID    int64       `json:"chainId"`
	LogFile    string      `json:"logFile,omitempty"`
	PID        int         `json:"pid,omitempty"`
	RPCHealthy bool        `json:"rpcHealthy"`
}

func RPCURLForPort(port int) string {
	return fmt.Sprintf("http://127.0.0.1:%d", port)
}

func (h *ChainHandle) RPCURL() string {
	return RPCURLForPort(h.Port)
}

func (h *ChainHandle) Launched() bool {
	return h != nil && h.Origin == ChainOriginLaunched
}
