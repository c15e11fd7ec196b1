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
	"context"
	"fmt"
	"strings"
)

type LogLevel int

const (
	Trace LogLevel = iota
	Debug
	Info
	Warn
	Error
)

var logLevelStrings = []string{"trace", "debug", "info", "warn", "error"}

func (l LogLevel) String() string {
	if int(l) < 0 || int(l) >= len(logLevelStrings) {
		return fmt.Sprintf("LogLevel(%d)", int(l))
	}
	return logLevelStrings[l]
}

func LogLevelFromString(s string) (LogLevel, error) {
	for i, level := range logLevelStrings {
		if strings.ToLower(s) == level {
			return LogLevel(i), nil
		}
	}
	return Info, fmt.Errorf("\"%s\" is not a valid log level. valid options are: %v", s, logLevelStrings)
}

type Logger interface {
	SetLogLevel(l LogLevel)
	Trace(s string)
	Debug(s string)
	Info(s string)
	Warn(s string)
	Error(e error)
}

type (
	ctxLogKey       struct{}
	ctxVerbosityKey struct{}
)

func WithLogger(ctx context.Context, log Logger) context.Context {
	return context.WithValue(ctx, ctxLogKey{}, log)
}

// LoggerFromContext returns the logger carried by ctx, or a discarding logger
// when none was attached.
func LoggerFromContext(ctx context.Context) Logger {
	if l, ok := ctx.Value(ctxLogKey{}).(Logger); ok {
		return l
	}
	return &NoopLogger{}
}

func WithVerbosity(ctx context.Context, verbose bool) context.Context {
	return context.WithValue(ctx, ctxVerbosityKey{}, verbose)
}

func VerbosityFromContext(ctx context.Context) bool {
	verbose, _ := ctx.Value(ctxVerbosityKey{}).(bool)
	return verbose
}

type NoopLogger struct{}

func (l *NoopLogger) SetLogLevel(level LogLevel) {}
func (l *NoopLogger) Trace(s string)             {}
func (l *NoopLogger) Debug(s string)             {}
func (l *NoopLogger) Info(s string)              {}
func (l *NoopLogger) Warn(s string)              {}
func (l *NoopLogger) Error(e error)              {}
