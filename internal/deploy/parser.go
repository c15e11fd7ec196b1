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

package deploy

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/vaultchain-africa/vc-automation/internal/constants"
	"github.com/vaultchain-africa/vc-automation/internal/log"
	"github.com/vaultchain-africa/vc-automation/pkg/types"
)

var ansiEscape = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// ParseDeploymentOutput extracts deployed contracts and transaction hashes from
// the stdout of a broadcast deployment. The deploy script is expected to print
// one "DeployedContract:<Name>:<Address>" line per contract; lines containing
// "Transaction hash:" contribute the text that follows, in order. Malformed
// contract lines are logged and skipped.
func ParseDeploymentOutput(ctx context.Context, stdout string) *types.DeploymentRecord {
	l := log.LoggerFromContext(ctx)
	record := types.NewDeploymentRecord()

	for _, raw := range strings.Split(stdout, "\n") {
		line := strings.TrimSpace(ansiEscape.ReplaceAllString(raw, ""))
		switch {
		case strings.HasPrefix(line, constants.DeployedContractPrefix):
			fields := strings.Split(line, ":")
			if len(fields) != 3 {
				l.Warn(fmt.Sprintf("Warning: Could not parse deployment line: %s", line))
				continue
			}
			name, address := fields[1], fields[2]
			if previous, ok := record.Contracts[name]; ok {
				l.Warn(fmt.Sprintf("Warning: contract %s reported more than once (%s replaced by %s)", name, previous, address))
			}
			record.Contracts[name] = address
		case strings.Contains(line, constants.TransactionHashMarker):
			parts := strings.SplitN(line, constants.TransactionHashMarker, 2)
			record.TransactionHashes = append(record.TransactionHashes, strings.TrimSpace(parts[1]))
		}
	}
	return record
}
