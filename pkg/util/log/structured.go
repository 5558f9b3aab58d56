// Copyright 2015 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package log

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/cockroachdb/logtags"
	"github.com/cockroachdb/redact"
)

// FormatWithContextTags formats the string and prepends the context
// tags.
//
// Redaction markers are *not* inserted. The resulting
// string is generally unsafe for reporting.
func FormatWithContextTags(ctx context.Context, format string, args ...interface{}) string {
	var buf strings.Builder
	formatTags(ctx, &buf)
	buf.WriteString(redact.Sprintf(format, args...).StripMarkers())
	return buf.String()
}

// formatTags writes the context tags as "[k1=v1,k2] " to buf. Nothing is
// written if the context carries no tags.
func formatTags(ctx context.Context, buf *strings.Builder) {
	tags := logtags.FromContext(ctx)
	if tags == nil {
		return
	}
	buf.WriteByte('[')
	for i, t := range tags.Get() {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(t.Key())
		if t.Value() != nil {
			buf.WriteByte('=')
			buf.WriteString(t.ValueStr())
		}
	}
	buf.WriteString("] ")
}

// addStructured creates a structured log entry and writes it to the
// configured output.
func addStructured(
	ctx context.Context, sev Severity, depth int, format string, args []interface{},
) {
	msg := redact.Sprintf(format, args...)

	var buf strings.Builder
	buf.WriteString(sev.prefix())
	buf.WriteString(timeNow().Format("060102 15:04:05.000000"))
	if _, file, line, ok := runtime.Caller(depth + 1); ok {
		fmt.Fprintf(&buf, " %s:%d", filepath.Base(file), line)
	}
	buf.WriteByte(' ')
	formatTags(ctx, &buf)
	if logging.redactable.Load() {
		buf.WriteString(string(msg))
	} else {
		buf.WriteString(msg.StripMarkers())
	}
	buf.WriteByte('\n')
	logging.output(buf.String())
}
