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

package artifacts

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/otiai10/copy"
	"github.com/vaultchain-africa/vc-automation/pkg/types"
)

const (
	summaryPrefix     = "deployment_summary_"
	summarySuffix     = ".json"
	transactionPrefix = "tx_"
	transactionSuffix = ".log"
)

// Store persists deployment records: one directory per chain id and one file
// per run token. Nothing is merged across runs.
type Store struct {
	deploymentsDir  string
	transactionsDir string
}

func NewStore(paths types.RunPaths) *Store {
	return &Store{
		deploymentsDir:  paths.Deployments,
		transactionsDir: paths.Transactions,
	}
}

func (s *Store) ChainDir(chainID int64) string {
	return filepath.Join(s.deploymentsDir, strconv.FormatInt(chainID, 10))
}

func (s *Store) SummaryPath(chainID int64, token string) string {
	return filepath.Join(s.ChainDir(chainID), summaryPrefix+token+summarySuffix)
}

func (s *Store) TransactionsPath(token string) string {
	return filepath.Join(s.transactionsDir, transactionPrefix+token+transactionSuffix)
}

func (s *Store) EnsureChainDir(chainID int64) (string, error) {
	dir := s.ChainDir(chainID)
	return dir, os.MkdirAll(dir, 0755)
}

// Save writes the contract name to address mapping of record.
func (s *Store) Save(chainID int64, token string, record *types.DeploymentRecord) (string, error) {
	if _, err := s.EnsureChainDir(chainID); err != nil {
		return "", err
	}
	b, err := json.MarshalIndent(record.Contracts, "", "    ")
	if err != nil {
		return "", err
	}
	path := s.SummaryPath(chainID, token)
	if err := os.WriteFile(path, b, 0644); err != nil {
		return "", err
	}
	return path, nil
}

// SaveTransactions writes one transaction hash per line.
func (s *Store) SaveTransactions(token string, hashes []string) (string, error) {
	if err := os.MkdirAll(s.transactionsDir, 0755); err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, h := range hashes {
		sb.WriteString(h)
		sb.WriteString("\n")
	}
	path := s.TransactionsPath(token)
	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		return "", err
	}
	return path, nil
}

// Load reads back the record for a chain id and run token. It returns nil and
// no error when no record was saved for that run.
func (s *Store) Load(chainID int64, token string) (*types.DeploymentRecord, error) {
	b, err := os.ReadFile(s.SummaryPath(chainID, token))
	if os.IsNotExist(err) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	record := types.NewDeploymentRecord()
	if err := json.Unmarshal(b, &record.Contracts); err != nil {
		return nil, fmt.Errorf("invalid deployment summary %s: %w", s.SummaryPath(chainID, token), err)
	}
	if record.Contracts == nil {
		record.Contracts = make(map[string]string)
	}

	txBytes, err := os.ReadFile(s.TransactionsPath(token))
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	for _, line := range strings.Split(string(txBytes), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			record.TransactionHashes = append(record.TransactionHashes, line)
		}
	}
	return record, nil
}

// List returns the run tokens with a saved record for chainID, oldest first.
func (s *Store) List(chainID int64) ([]string, error) {
	entries, err := os.ReadDir(s.ChainDir(chainID))
	if os.IsNotExist(err) {
		return []string{}, nil
	} else if err != nil {
		return nil, err
	}
	tokens := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, summaryPrefix) || !strings.HasSuffix(name, summarySuffix) {
			continue
		}
		tokens = append(tokens, strings.TrimSuffix(strings.TrimPrefix(name, summaryPrefix), summarySuffix))
	}
	// timestamp tokens sort chronologically
	sort.Strings(tokens)
	return tokens, nil
}

// ListChains returns the chain ids that have a deployments directory.
func (s *Store) ListChains() ([]int64, error) {
	entries, err := os.ReadDir(s.deploymentsDir)
	if os.IsNotExist(err) {
		return []int64{}, nil
	} else if err != nil {
		return nil, err
	}
	chainIDs := make([]int64, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if chainID, err := strconv.ParseInt(e.Name(), 10, 64); err == nil {
			chainIDs = append(chainIDs, chainID)
		}
	}
	sort.Slice(chainIDs, func(i, j int) bool { return chainIDs[i] < chainIDs[j] })
	return chainIDs, nil
}

func (s *Store) Latest(chainID int64) (string, error) {
	tokens, err := s.List(chainID)
	if err != nil {
		return "", err
	}
	if len(tokens) == 0 {
		return "", fmt.Errorf("no deployments found for chain %d", chainID)
	}
	return tokens[len(tokens)-1], nil
}

// Export copies the artifacts of one run into destDir, keeping the
// deployments/<chainId> and transactions layout.
func (s *Store) Export(chainID int64, token, destDir string) error {
	summary := s.SummaryPath(chainID, token)
	if _, err := os.Stat(summary); err != nil {
		return fmt.Errorf("no deployment for chain %d run %s: %w", chainID, token, err)
	}
	dest := filepath.Join(destDir, "deployments", strconv.FormatInt(chainID, 10), filepath.Base(summary))
	if err := copy.Copy(summary, dest); err != nil {
		return err
	}
	txFile := s.TransactionsPath(token)
	if _, err := os.Stat(txFile); err == nil {
		return copy.Copy(txFile, filepath.Join(destDir, "transactions", filepath.Base(txFile)))
	}
	return nil
}

// Clean removes the deployments and transactions directories entirely.
func (s *Store) Clean() error {
	for _, dir := range []string{s.deploymentsDir, s.transactionsDir} {
		if err := os.RemoveAll(dir); err != nil {
			return err
		}
	}
	return nil
}
