// Package testutil holds small helpers shared by the package test suites.
package testutil

import (
	"log/slog"
	"testing"
)

// NewTestLogger builds an slog logger whose records land in t.Log, so
// pipeline diagnostics interleave with the test's own output and surface
// only when the test fails or runs with -v. The level is pinned to debug;
// tests always capture the full trace.
func NewTestLogger(t testing.TB) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(logWriter{t}, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

// logWriter adapts testing.TB to io.Writer for the slog handler.
type logWriter struct {
	t testing.TB
}

func (w logWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}
