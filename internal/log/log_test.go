package log

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerFromContext(t *testing.T) {
	ctx := context.Background()
	assert.IsType(t, &NoopLogger{}, LoggerFromContext(ctx))
	assert.False(t, VerbosityFromContext(ctx))

	logger := &StdoutLogger{}
	ctx = WithVerbosity(WithLogger(ctx, logger), true)
	assert.Equal(t, logger, LoggerFromContext(ctx))
	assert.True(t, VerbosityFromContext(ctx))
}

func TestLogLevelFromString(t *testing.T) {
	level, err := LogLevelFromString("WARN")
	assert.NoError(t, err)
	assert.Equal(t, Warn, level)
	assert.Equal(t, "warn", level.String())

	_, err = LogLevelFromString("loud")
	assert.Error(t, err)
}

func TestStdoutLoggerLevels(t *testing.T) {
	buf := &bytes.Buffer{}
	l := &StdoutLogger{LogLevel: Warn, Out: buf}
	l.Info("hidden")
	l.Warn("shown")
	l.Error(errors.New("failed"))
	assert.Equal(t, "shown\nfailed\n", buf.String())
}

func TestFileLoggerMirrorsEveryMessage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logs", "automation.log")
	console := &bytes.Buffer{}
	l := NewFileLogger(path, &StdoutLogger{LogLevel: Error, Out: console})

	l.Info("first line")
	l.Debug("second\nspans lines")

	// the run log survives its directory being removed mid-run
	assert.NoError(t, os.RemoveAll(filepath.Join(dir, "logs")))
	l.Warn("after clean")
	l.Error(errors.New("boom"))

	b, err := os.ReadFile(path)
	assert.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	assert.Len(t, lines, 2)
	assert.Contains(t, lines[0], "after clean")
	assert.Contains(t, lines[0], "level=warning")
	assert.Contains(t, lines[1], "boom")
	assert.Equal(t, "boom\n", console.String())
}
