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

package utils

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/vaultchain-africa/vc-automation/internal/log"
	"github.com/vaultchain-africa/vc-automation/pkg/types"
)

var AnvilEndpoint = "http://127.0.0.1:8545"

func StartMockServer(t *testing.T) {
	httpmock.Activate()
}

func StopMockServer(_ *testing.T) {
	httpmock.DeactivateAndReset()
}

// ReadFileToString reads the contents of a file and returns it as a string.
func ReadFileToString(filePath string) (string, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return "", err
	}
	return string(content), nil
}

// CaptureLogger records every message so tests can assert on the log trail.
type CaptureLogger struct {
	mu    sync.Mutex
	Lines []string
}

func (l *CaptureLogger) record(level, s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Lines = append(l.Lines, level+": "+s)
}

func (l *CaptureLogger) SetLogLevel(level log.LogLevel) {}
func (l *CaptureLogger) Trace(s string)                 { l.record("trace", s) }
func (l *CaptureLogger) Debug(s string)                 { l.record("debug", s) }
func (l *CaptureLogger) Info(s string)                  { l.record("info", s) }
func (l *CaptureLogger) Warn(s string)                  { l.record("warn", s) }
func (l *CaptureLogger) Error(e error)                  { l.record("error", e.Error()) }

// Contains reports whether any recorded line contains substr.
func (l *CaptureLogger) Contains(substr string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, line := range l.Lines {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}

// Count reports how many recorded lines start with the given level.
func (l *CaptureLogger) Count(level string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, line := range l.Lines {
		if strings.HasPrefix(line, level+": ") {
			n++
		}
	}
	return n
}

// NewTestContext returns a context carrying a capture logger, and a run
// context rooted in a fresh temporary directory.
func NewTestContext(t *testing.T) (context.Context, *CaptureLogger, *types.RunContext) {
	logger := &CaptureLogger{}
	ctx := log.WithVerbosity(log.WithLogger(context.Background(), logger), false)
	projectDir := t.TempDir()
	rc := types.NewRunContext(projectDir, filepath.Join(projectDir, "vc_automation"), time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC))
	return ctx, logger, rc
}
