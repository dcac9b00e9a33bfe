package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func captureStdout(t *testing.T, f func()) string {
	t.Helper()
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	f()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	io.Copy(&buf, r)
	return buf.String()
}

func writeWorkspace(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "main.rhai"),
		[]byte("let apple = 1; print(aple);"), 0o644))
	return root
}

func TestAddCommandReportsCounts(t *testing.T) {
	root := writeWorkspace(t)
	cmd := newRootCmd()
	cmd.SetArgs([]string{"add", "--root", root})

	out := captureStdout(t, func() {
		require.NoError(t, cmd.Execute())
	})
	require.Contains(t, out, "loaded 1 source")
	require.Contains(t, out, "symbols=")
}

func TestResolveCommandReportsUnresolvedReference(t *testing.T) {
	root := writeWorkspace(t)
	cmd := newRootCmd()
	cmd.SetArgs([]string{"resolve", "--root", root})

	out := captureStdout(t, func() {
		err := cmd.Execute()
		require.Error(t, err, "resolve reports a non-nil error when diagnostics were found")
	})
	require.Contains(t, out, "UNRESOLVED_REFERENCE")
}

func TestQueryCommandReportsSymbolAtOffset(t *testing.T) {
	root := writeWorkspace(t)
	cmd := newRootCmd()
	cmd.SetArgs([]string{"query", "--root", root, filepath.Join(root, "main.rhai"), "5"})

	out := captureStdout(t, func() {
		require.NoError(t, cmd.Execute())
	})
	require.Contains(t, out, "symbol at 5")
}

func TestVerifyIdempotentReportsStableOutput(t *testing.T) {
	root := writeWorkspace(t)
	cmd := newRootCmd()
	cmd.SetArgs([]string{"verify-idempotent", "--root", root})

	out := captureStdout(t, func() {
		require.NoError(t, cmd.Execute())
	})
	require.Contains(t, out, "idempotent")
}
