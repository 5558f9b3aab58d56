// Copyright 2015 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

// Package log implements leveled, context-aware logging. Messages are
// formatted with redact so that unsafe values can be marked in the output;
// context tags attached with logtags are prepended to every entry.
package log

import (
	"context"
	"io"
	"os"
	"sync/atomic"
	"time"

	"github.com/geophile/sql-layer-sub008/pkg/util/syncutil"
)

// Severity identifies the sort of log: info, warning etc.
type Severity int32

const (
	// Severity_INFO is used for informational messages.
	Severity_INFO Severity = iota + 1
	// Severity_WARNING is used for situations which may require special handling.
	Severity_WARNING
	// Severity_ERROR is used for situations that require special handling.
	Severity_ERROR
)

func (s Severity) prefix() string {
	switch s {
	case Severity_WARNING:
		return "W"
	case Severity_ERROR:
		return "E"
	default:
		return "I"
	}
}

// timeNow is overridden in tests.
var timeNow = time.Now

type loggingT struct {
	verbosity  atomic.Int32
	redactable atomic.Bool

	mu struct {
		syncutil.Mutex
		w io.Writer
	}
}

var logging loggingT

func init() {
	logging.mu.w = os.Stderr
}

func (l *loggingT) output(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = io.WriteString(l.mu.w, s)
}

// SetOutput redirects all log output to w and returns a function restoring the
// previous destination.
func SetOutput(w io.Writer) (restore func()) {
	logging.mu.Lock()
	defer logging.mu.Unlock()
	prev := logging.mu.w
	logging.mu.w = w
	return func() {
		logging.mu.Lock()
		defer logging.mu.Unlock()
		logging.mu.w = prev
	}
}

// V returns true if the logging verbosity is set to the specified level or
// higher.
func V(level int32) bool {
	return level <= logging.verbosity.Load()
}

// Infof logs to the INFO log.
func Infof(ctx context.Context, format string, args ...interface{}) {
	addStructured(ctx, Severity_INFO, 1, format, args)
}

// Warningf logs to the WARNING and INFO logs.
func Warningf(ctx context.Context, format string, args ...interface{}) {
	addStructured(ctx, Severity_WARNING, 1, format, args)
}

// Errorf logs to the ERROR, WARNING, and INFO logs.
func Errorf(ctx context.Context, format string, args ...interface{}) {
	addStructured(ctx, Severity_ERROR, 1, format, args)
}

// VEventf logs to the INFO log if the verbosity is at least level.
func VEventf(ctx context.Context, level int32, format string, args ...interface{}) {
	if V(level) {
		addStructured(ctx, Severity_INFO, 1, format, args)
	}
}
