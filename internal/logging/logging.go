/*
Copyright 2025 The llm-d Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package logging builds the structured logger shared by the allocator.
// Loggers are logr.Logger values backed by zap and travel in context.Context.
package logging

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	crlog "sigs.k8s.io/controller-runtime/pkg/log"
)

// Verbosity levels for logger.V(...).
const (
	INFO  = 0
	DEBUG = 1
	TRACE = 2
)

// Options configures NewLogger.
type Options struct {
	// Level is one of "error", "info", "debug" or "trace".
	Level string
	// Development switches to the human-readable console encoder.
	Development bool
}

// NewLogger creates a logr.Logger backed by zap.
func NewLogger(opts Options) (logr.Logger, error) {
	level, err := parseLevel(opts.Level)
	if err != nil {
		return logr.Discard(), err
	}

	var cfg zap.Config
	if opts.Development {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Sampling = nil
	}
	cfg.Level = zap.NewAtomicLevelAt(level)

	zl, err := cfg.Build()
	if err != nil {
		return logr.Discard(), fmt.Errorf("building zap logger: %w", err)
	}
	return zapr.NewLogger(zl), nil
}

// parseLevel maps a level name onto zap levels. logr verbosity V(n) is zap
// level -n, so "debug" enables V(DEBUG) and "trace" enables V(TRACE).
func parseLevel(name string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "info":
		return zapcore.Level(-INFO), nil
	case "debug":
		return zapcore.Level(-DEBUG), nil
	case "trace":
		return zapcore.Level(-TRACE), nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", name)
	}
}

// SetLogger installs the process-wide logger returned by Log. Only the
// first call takes effect.
func SetLogger(l logr.Logger) {
	crlog.SetLogger(l)
}

// Log returns the process-wide logger.
func Log() logr.Logger {
	return crlog.Log
}

// IntoContext stores a logger in ctx.
func IntoContext(ctx context.Context, l logr.Logger) context.Context {
	return crlog.IntoContext(ctx, l)
}

// FromContext returns the logger stored in ctx, or the process-wide logger.
func FromContext(ctx context.Context, keysAndValues ...any) logr.Logger {
	return crlog.FromContext(ctx, keysAndValues...)
}

// NewTestLogger installs a development logger at trace verbosity, for test
// suites.
func NewTestLogger() logr.Logger {
	l, err := NewLogger(Options{Level: "trace", Development: true})
	if err != nil {
		l = logr.Discard()
	}
	SetLogger(l)
	return l
}
