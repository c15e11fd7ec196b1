// Runner, Process and Probe are recording test doubles for the process package interfaces
package mocks

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/vaultchain-africa/vc-automation/internal/process"
	"github.com/vaultchain-africa/vc-automation/pkg/types"
)

type response struct {
	prefix string
	result *types.CommandResult
}

type Runner struct {
	mu        sync.Mutex
	responses []response
	Calls     [][]string
	Started   [][]string
	Processes []*Process
	// Missing executables fail LookPath.
	Missing  map[string]bool
	StartErr error
	// ProcessExits makes every started process report that it has already exited.
	ProcessExits bool
}

func NewRunner() *Runner {
	return &Runner{
		Missing: make(map[string]bool),
	}
}

// On registers the result returned for any command whose space-joined
// argument vector starts with prefix. Earlier registrations win.
func (r *Runner) On(prefix string, result *types.CommandResult) *Runner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.responses = append(r.responses, response{prefix: prefix, result: result})
	return r
}

func (r *Runner) Run(ctx context.Context, workingDir string, capture bool, timeout time.Duration, command ...string) *types.CommandResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls = append(r.Calls, command)
	commandLine := strings.Join(command, " ")
	for _, resp := range r.responses {
		if strings.HasPrefix(commandLine, resp.prefix) {
			copied := *resp.result
			return &copied
		}
	}
	return &types.CommandResult{}
}

func (r *Runner) Start(ctx context.Context, workingDir, logFile string, command ...string) (process.IProcess, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Started = append(r.Started, command)
	if r.StartErr != nil {
		return nil, r.StartErr
	}
	p := &Process{pid: 4242 + len(r.Processes), exited: r.ProcessExits}
	r.Processes = append(r.Processes, p)
	return p, nil
}

func (r *Runner) LookPath(executable string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Missing[executable] {
		return "", fmt.Errorf("exec: %q: executable file not found in $PATH", executable)
	}
	return "/usr/local/bin/" + executable, nil
}

// CallsTo returns the recorded Run invocations of a single executable.
func (r *Runner) CallsTo(executable string) [][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	calls := make([][]string, 0)
	for _, c := range r.Calls {
		if len(c) > 0 && c[0] == executable {
			calls = append(calls, c)
		}
	}
	return calls
}

type Process struct {
	mu     sync.Mutex
	pid    int
	exited bool
	Killed bool
}

func (p *Process) Pid() int {
	return p.pid
}

func (p *Process) Exited() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.exited
}

func (p *Process) Kill() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Killed = true
	p.exited = true
	return nil
}

// Probe replays Responses in order, then keeps answering Default.
type Probe struct {
	mu        sync.Mutex
	Responses []bool
	Default   bool
	Calls     int
}

func (p *Probe) IsRunning(ctx context.Context, nameFragment string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	i := p.Calls
	p.Calls++
	if i < len(p.Responses) {
		return p.Responses[i]
	}
	return p.Default
}
