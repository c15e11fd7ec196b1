package process

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vaultchain-africa/vc-automation/internal/log"
	"github.com/vaultchain-africa/vc-automation/internal/utils"
	"github.com/vaultchain-africa/vc-automation/pkg/types"
)

func testContext() context.Context {
	return log.WithLogger(context.Background(), &log.NoopLogger{})
}

func TestRunCommandCapturesOutput(t *testing.T) {
	result := RunCommand(testContext(), t.TempDir(), true, 10*time.Second, "sh", "-c", "echo out; echo err >&2")
	assert.Equal(t, 0, result.ExitCode)
	assert.False(t, result.TimedOut)
	assert.Equal(t, "out\n", result.Stdout)
	assert.Equal(t, "err\n", result.Stderr)
	assert.True(t, result.Succeeded())
}

func TestRunCommandNonZeroExitIsNotAFailure(t *testing.T) {
	result := RunCommand(testContext(), "", true, 10*time.Second, "sh", "-c", "echo partial; exit 3")
	assert.Equal(t, 3, result.ExitCode)
	assert.False(t, result.TimedOut)
	assert.Equal(t, "partial\n", result.Stdout)
}

func TestRunCommandTimeout(t *testing.T) {
	start := time.Now()
	result := RunCommand(testContext(), "", true, 200*time.Millisecond, "sleep", "5")
	assert.True(t, result.TimedOut)
	assert.Equal(t, types.TimeoutExitCode, result.ExitCode)
	assert.Contains(t, result.Stderr, "timeout expired")
	assert.Less(t, time.Since(start), 4*time.Second)
}

func TestRunCommandLaunchFailure(t *testing.T) {
	result := RunCommand(testContext(), "", true, time.Second, "vc-definitely-not-an-executable")
	assert.Equal(t, types.LaunchFailureExitCode, result.ExitCode)
	assert.False(t, result.TimedOut)
	assert.Contains(t, result.Stderr, "vc-definitely-not-an-executable")
}

func TestRunCommandEmpty(t *testing.T) {
	result := RunCommand(testContext(), "", true, time.Second)
	assert.Equal(t, types.LaunchFailureExitCode, result.ExitCode)
}

func TestRunCommandLogsInvocation(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "run.log")
	ctx := log.WithLogger(context.Background(), log.NewFileLogger(logFile, nil))
	RunCommand(ctx, dir, true, 10*time.Second, "echo", "hello")

	b, err := os.ReadFile(logFile)
	assert.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], "$ echo hello")
	assert.Contains(t, lines[1], "hello")
}

func TestRunCommandEchoFollowsVerbosity(t *testing.T) {
	for _, verbose := range []bool{false, true} {
		logger := &utils.CaptureLogger{}
		ctx := log.WithVerbosity(log.WithLogger(context.Background(), logger), verbose)
		RunCommand(ctx, "", true, 10*time.Second, "sh", "-c", "echo out; echo err >&2")

		level := "debug"
		if verbose {
			level = "info"
		}
		assert.Equal(t, []string{"info: $ sh -c echo out; echo err >&2", level + ": out", level + ": err"}, logger.Lines)
	}
}

func TestStartCommand(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "logs", "node.log")
	p, err := StartCommand(testContext(), dir, logFile, "sh", "-c", "echo started; sleep 30")
	assert.NoError(t, err)
	assert.Greater(t, p.Pid(), 0)

	assert.Eventually(t, func() bool {
		b, _ := os.ReadFile(logFile)
		return strings.Contains(string(b), "started")
	}, 5*time.Second, 20*time.Millisecond)
	assert.False(t, p.Exited())

	assert.NoError(t, p.Kill())
	assert.True(t, p.Exited())
	assert.Error(t, p.Err())
}

func TestStartCommandLaunchFailure(t *testing.T) {
	dir := t.TempDir()
	_, err := StartCommand(testContext(), dir, filepath.Join(dir, "node.log"), "vc-definitely-not-an-executable")
	assert.Error(t, err)
}

func TestProbe(t *testing.T) {
	probe := NewProbe()
	assert.False(t, probe.IsRunning(testContext(), "vc-definitely-not-a-process"))

	self := strings.ToUpper(filepath.Base(os.Args[0]))
	if len(self) > 12 {
		self = self[:12]
	}
	assert.True(t, probe.IsRunning(testContext(), self))
}
