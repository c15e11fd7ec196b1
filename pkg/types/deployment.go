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

import "sort"

// DeploymentRecord is the structured result of one broadcast deployment.
type DeploymentRecord struct {
	Contracts         map[string]string `json:"contracts"`
	TransactionHashes []string          `json:"transactionHashes,omitempty"`
}

func NewDeploymentRecord() *DeploymentRecord {
	return &DeploymentRecord{
		Contracts:         make(map[string]string),
		TransactionHashes: make([]string, 0),
	}
}

// ContractNames returns the deployed contract names in lexical order.
func (r *DeploymentRecord) ContractNames() []string {
	names := make([]string, 0, len(r.Contracts))
	for name := range r.Contracts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *DeploymentRecord) Address(contractName string) (string, bool) {
	if r == nil {
		return "", false
	}
	address, ok := r.Contracts[contractName]
	return address, ok && address != ""
}
