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
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/vaultchain-africa/vc-automation/internal/log"
)

// IProcess is a handle to a long-running child started by StartCommand.
type IProcess interface {
	Pid() int
	Exited() bool
	Kill() error
}

type Process struct {
	cmd  *exec.Cmd
	done chan struct{}
	err  error
}

// StartCommand launches command in the background with stdout and stderr
// redirected to logFile. The child is not bound to ctx and keeps running after
// the caller returns; it is reaped in the background when it exits.
func StartCommand(ctx context.Context, workingDir, logFile string, command ...string) (*Process, error) {
	if len(command) == 0 {
		return nil, fmt.Errorf("no command specified")
	}
	l := log.LoggerFromContext(ctx)

	if err := os.MkdirAll(filepath.Dir(logFile), 0755); err != nil {
		return nil, err
	}
	out, err := os.Create(logFile)
	if err != nil {
		return nil, err
	}

	cmd := exec.Command(command[0], command[1:]...)
	cmd.Dir = workingDir
	cmd.Stdout = out
	cmd.Stderr = out
	detach(cmd)
	l.Info(fmt.Sprintf("$ %s > %s", strings.Join(command, " "), logFile))
	if err := cmd.Start(); err != nil {
		out.Close()
		return nil, err
	}

	p := &Process{
		cmd:  cmd,
		done: make(chan struct{}),
	}
	go func() {
		p.err = cmd.Wait()
		out.Close()
		close(p.done)
	}()
	return p, nil
}

func (p *Process) Pid() int {
	return p.cmd.Process.Pid
}

func (p *Process) Exited() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

// Err is the result of waiting on the child, valid once Exited reports true.
func (p *Process) Err() error {
	if !p.Exited() {
		return nil
	}
	return p.err
}

func (p *Process) Kill() error {
	if p.Exited() {
		return nil
	}
	if err := p.cmd.Process.Kill(); err != nil {
		return err
	}
	<-p.done
	return nil
}
