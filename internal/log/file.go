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

package log

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// appendWriter opens the target for every write, so the file (and its
// directory) is recreated if something removes it between two log lines.
type appendWriter struct {
	mu   sync.Mutex
	path string
}

func (w *appendWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(w.path), 0755); err != nil {
		return 0, err
	}
	f, err := os.OpenFile(w.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return f.Write(p)
}

// FileLogger mirrors every message to an append-only run log file, one line
// per message, and forwards it to a console logger.
type FileLogger struct {
	Path    string
	console Logger
	file    *logrus.Logger
}

func NewFileLogger(path string, console Logger) *FileLogger {
	l := logrus.New()
	l.SetOutput(&appendWriter{path: path})
	l.SetLevel(logrus.TraceLevel)
	l.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	if console == nil {
		console = &NoopLogger{}
	}
	return &FileLogger{
		Path:    path,
		console: console,
		file:    l,
	}
}

// SetLogLevel only affects the console; the file always receives every message.
func (l *FileLogger) SetLogLevel(level LogLevel) {
	l.console.SetLogLevel(level)
}

func (l *FileLogger) Trace(s string) {
	l.file.Trace(s)
	l.console.Trace(s)
}

func (l *FileLogger) Debug(s string) {
	l.file.Debug(s)
	l.console.Debug(s)
}

func (l *FileLogger) Info(s string) {
	l.file.Info(s)
	l.console.Info(s)
}

func (l *FileLogger) Warn(s string) {
	l.file.Warn(s)
	l.console.Warn(s)
}

func (l *FileLogger) Error(e error) {
	l.file.Error(e.Error())
	l.console.Error(e)
}
