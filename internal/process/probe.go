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

package process

import (
	"context"
	"fmt"
	"strings"

	psprocess "github.com/shirou/gopsutil/v3/process"
	"github.com/vaultchain-africa/vc-automation/internal/log"
)

// IProbe answers whether any process whose name contains a fragment is running.
//
// Matching is by name only, so it cannot tell two instances apart and may race
// with processes starting or exiting. Treat it as best-effort liveness.
type IProbe interface {
	IsRunning(ctx context.Context, nameFragment string) bool
}

type Probe struct{}

func NewProbe() *Probe {
	return &Probe{}
}

func (p *Probe) IsRunning(ctx context.Context, nameFragment string) bool {
	procs, err := psprocess.ProcessesWithContext(ctx)
	if err != nil {
		log.LoggerFromContext(ctx).Debug(fmt.Sprintf("unable to list processes: %s", err))
		return false
	}
	fragment := strings.ToLower(nameFragment)
	for _, proc := range procs {
		// processes can exit or deny access while we walk the list
		name, err := proc.NameWithContext(ctx)
		if err != nil {
			continue
		}
		if strings.Contains(strings.ToLower(name), fragment) {
			return true
		}
	}
	return false
}
