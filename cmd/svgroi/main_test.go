package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestConvert(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "cells.svg", `<svg><path id="a" d="M0 0L1,1Z" stroke="#ff0000"/><path id="b" d="M0 0"/></svg>`)

	out, err := run(t, "convert", "--workers", "1", dir)
	require.NoError(t, err)
	require.Contains(t, out, "ok   cells.svg: 1 of 2 regions")
	require.Contains(t, out, `skipped path #1 (b)`)
	require.Contains(t, out, "1 documents (0 failed), 1 regions (1 skipped)")
	require.FileExists(t, filepath.Join(dir, "ROI Sets", "cells.zip"))
}

func TestConvertReportsFailedDocuments(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.svg", `<svg><path d="M0 0L1,1" stroke="#ff0000"/></svg>`)
	writeFile(t, dir, "bad.svg", `<svg><path`)

	out, err := run(t, "convert", "--output-dir", "out", dir)
	require.Error(t, err)
	require.Contains(t, out, "FAIL bad.svg")
	require.Contains(t, out, "ok   good.svg")
	require.FileExists(t, filepath.Join(dir, "out", "good.zip"))
}

func TestConvertDryRun(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "cells.svg", `<svg><path d="M0 0L1,1" stroke="#ff0000"/></svg>`)

	out, err := run(t, "convert", "--dry-run", dir)
	require.NoError(t, err)
	require.Contains(t, out, "ok   cells.svg: 1 of 1 regions\n")
	require.NoDirExists(t, filepath.Join(dir, "ROI Sets"))
}

func TestInspect(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "cells.svg", `<svg><path id="a" d="M0 0 L1,1 C2,2 3,3 4,4 Z" stroke="#ff0000"/><path id="b" d="M0 0"/></svg>`)

	out, err := run(t, "inspect", path)
	require.NoError(t, err)
	require.Contains(t, out, `path #0 "a"`)
	require.Contains(t, out, "4 instructions, closed=true, color=#ff0000")
	require.Contains(t, out, "cubicto((2,2),(3,3),(4,4))")
	require.Contains(t, out, "missing attribute")

	_, err = run(t, "convert", dir)
	require.NoError(t, err)
	out, err = run(t, "inspect", "--archive", filepath.Join(dir, "ROI Sets", "cells.zip"))
	require.NoError(t, err)
	require.Contains(t, out, `region #0 "a"`)
	require.Contains(t, out, "lineto(1,1)")
}

func TestBadLogLevel(t *testing.T) {
	_, err := run(t, "convert", "--log-level", "loud", t.TempDir())
	require.Error(t, err)
}
