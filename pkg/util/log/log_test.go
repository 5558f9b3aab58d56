// Copyright 2015 The Cockroach Authors.
//
// Use of this software is governed by the CockroachDB Software License
// included in the /LICENSE file.

package log

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/logtags"
	"github.com/cockroachdb/redact"
	"github.com/stretchr/testify/require"
)

func captureLogs(t *testing.T) *bytes.Buffer {
	var buf bytes.Buffer
	restore := SetOutput(&buf)
	prevNow := timeNow
	timeNow = func() time.Time { return time.Date(2024, 3, 4, 5, 6, 7, 0, time.UTC) }
	t.Cleanup(func() {
		restore()
		timeNow = prevNow
		require.NoError(t, ApplyConfig(DefaultConfig()))
	})
	return &buf
}

func TestInfofWithTags(t *testing.T) {
	buf := captureLogs(t)
	ctx := logtags.AddTag(context.Background(), "schema", 7)
	ctx = logtags.AddTag(ctx, "build", nil)
	Infof(ctx, "allocated %d row types", 3)

	out := buf.String()
	require.True(t, strings.HasPrefix(out, "I240304 05:06:07.000000 log_test.go:"), out)
	require.True(t, strings.HasSuffix(out, "[schema=7,build] allocated 3 row types\n"), out)
}

func TestSeverityPrefix(t *testing.T) {
	buf := captureLogs(t)
	Warningf(context.Background(), "w")
	Errorf(context.Background(), "e")
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	require.Equal(t, "W", lines[0][:1])
	require.Equal(t, "E", lines[1][:1])
}

func TestVerbosity(t *testing.T) {
	buf := captureLogs(t)
	ctx := context.Background()
	VEventf(ctx, 2, "hidden")
	require.Empty(t, buf.String())

	require.NoError(t, ApplyConfig(Config{Verbosity: 2}))
	require.True(t, V(2))
	require.False(t, V(3))
	VEventf(ctx, 2, "shown")
	require.Contains(t, buf.String(), "shown")

	require.Error(t, ApplyConfig(Config{Verbosity: -1}))
}

func TestRedactable(t *testing.T) {
	buf := captureLogs(t)
	ctx := context.Background()
	Infof(ctx, "table %s", "customer")
	require.Contains(t, buf.String(), "table customer\n")

	buf.Reset()
	require.NoError(t, ApplyConfig(Config{Redactable: true}))
	Infof(ctx, "table %s safe %s", "customer", redact.Safe("x"))
	require.Contains(t, buf.String(), "table ‹customer› safe x\n")
}

func TestFormatWithContextTags(t *testing.T) {
	ctx := logtags.AddTag(context.Background(), "n", 1)
	require.Equal(t, "[n=1] hello world", FormatWithContextTags(ctx, "hello %s", "world"))
	require.Equal(t, "plain", FormatWithContextTags(context.Background(), "plain"))
}
