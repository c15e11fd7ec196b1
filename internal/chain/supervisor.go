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

package chain

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/vaultchain-africa/vc-automation/internal/constants"
	"github.com/vaultchain-africa/vc-automation/internal/log"
	"github.com/vaultchain-africa/vc-automation/internal/process"
	"github.com/vaultchain-africa/vc-automation/internal/rpc"
	"github.com/vaultchain-africa/vc-automation/pkg/types"
)

// ChainReader is queried once a chain is available, to confirm the node
// answers RPC, serves the expected chain and is producing blocks.
type ChainReader interface {
	ChainID(ctx context.Context) (int64, error)
	BlockNumber(ctx context.Context) (int64, error)
}

type Supervisor struct {
	runner         process.IRunner
	probe          process.IProbe
	NodeExecutable string
	ProcessName    string
	PollInterval   time.Duration
	// NewChainReader builds the liveness client for an RPC URL. When nil the
	// RPC check is skipped.
	NewChainReader func(rpcURL string) ChainReader
}

func NewSupervisor(runner process.IRunner, probe process.IProbe) *Supervisor {
	return &Supervisor{
		runner:         runner,
		probe:          probe,
		NodeExecutable: constants.AnvilExecutable,
		ProcessName:    constants.AnvilProcessName,
		PollInterval:   constants.ChainPollInterval,
		NewChainReader: func(rpcURL string) ChainReader {
			return rpc.NewClient(rpcURL)
		},
	}
}

// EnsureChain makes a development chain available. An instance that is
// already running is reused untouched. Otherwise, if allowed, a new node is
// launched and awaited. A nil handle means no chain is available; the reason
// has been logged.
func (s *Supervisor) EnsureChain(ctx context.Context, rc *types.RunContext, port int, chainID int64, startIfMissing bool, startupTimeout time.Duration) *types.ChainHandle {
	l := log.LoggerFromContext(ctx)

	if s.probe.IsRunning(ctx, s.ProcessName) {
		l.Info(fmt.Sprintf("detected running %s instance, reusing it", s.ProcessName))
		handle := &types.ChainHandle{
			Origin:  types.ChainOriginDetected,
			Port:    port,
			ChainID: chainID,
		}
		s.checkRPC(ctx, handle)
		return handle
	}

	if !startIfMissing {
		l.Info(fmt.Sprintf("%s is not running and starting it is disabled", s.ProcessName))
		return nil
	}

	if _, err := s.runner.LookPath(s.NodeExecutable); err != nil {
		l.Error(fmt.Errorf("'%s' executable not found in PATH. Install Foundry or add it to PATH", s.NodeExecutable))
		return nil
	}

	logFile := rc.ChainLogFile()
	l.Info(fmt.Sprintf("launching %s (port=%d, chain-id=%d)", s.NodeExecutable, port, chainID))
	proc, err := s.runner.Start(ctx, rc.ProjectDir, logFile,
		s.NodeExecutable,
		"--port", strconv.Itoa(port),
		"--chain-id", strconv.FormatInt(chainID, 10),
	)
	if err != nil {
		l.Error(fmt.Errorf("failed to start %s: %w", s.NodeExecutable, err))
		return nil
	}

	if !s.waitForNode(ctx, proc, startupTimeout) {
		if err := proc.Kill(); err != nil {
			l.Error(fmt.Errorf("failed to stop %s (pid %d): %w", s.NodeExecutable, proc.Pid(), err))
		}
		return nil
	}

	l.Info(fmt.Sprintf("%s started successfully. Log: %s", s.NodeExecutable, logFile))
	handle := &types.ChainHandle{
		Origin:  types.ChainOriginLaunched,
		Port:    port,
		ChainID: chainID,
		LogFile: logFile,
		PID:     proc.Pid(),
	}
	s.checkRPC(ctx, handle)
	return handle
}

func (s *Supervisor) waitForNode(ctx context.Context, proc process.IProcess, startupTimeout time.Duration) bool {
	l := log.LoggerFromContext(ctx)
	start := time.Now()
	for !s.probe.IsRunning(ctx, s.ProcessName) {
		if proc.Exited() {
			l.Warn(fmt.Sprintf("%s exited during startup. See %s log for details", s.NodeExecutable, s.NodeExecutable))
			return false
		}
		if time.Since(start) >= startupTimeout {
			l.Warn(fmt.Sprintf("%s failed to start within %s", s.NodeExecutable, startupTimeout))
			return false
		}
		select {
		case <-ctx.Done():
			l.Warn(fmt.Sprintf("gave up waiting for %s: %s", s.NodeExecutable, ctx.Err()))
			return false
		case <-time.After(s.PollInterval):
		}
	}
	return true
}

func (s *Supervisor) checkRPC(ctx context.Context, handle *types.ChainHandle) {
	if s.NewChainReader == nil {
		return
	}
	l := log.LoggerFromContext(ctx)
	reader := s.NewChainReader(handle.RPCURL())
	actual, err := reader.ChainID(ctx)
	if err != nil {
		l.Warn(fmt.Sprintf("chain RPC at %s is not answering yet: %s", handle.RPCURL(), err))
		return
	}
	if actual != handle.ChainID {
		l.Warn(fmt.Sprintf("chain at %s reports chain id %d, expected %d", handle.RPCURL(), actual, handle.ChainID))
	}
	block, err := reader.BlockNumber(ctx)
	if err != nil {
		l.Warn(fmt.Sprintf("chain at %s did not report a block number: %s", handle.RPCURL(), err))
		return
	}
	handle.RPCHealthy = true
	l.Info(fmt.Sprintf("chain at %s is at block %d", handle.RPCURL(), block))
}
