// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logger

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFlags(t *testing.T) {
	var f Flags
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	f.SetFlags(fs)
	assert.Equal(t, zap.WarnLevel, f.Config.Level)

	require.NoError(t, fs.Parse([]string{"-log.level", "debug", "-log.filemode", "truncate", "-log.path", "/dev/null"}))
	assert.Equal(t, zap.DebugLevel, f.Config.Level)
	assert.Equal(t, FileModeTruncate, f.Config.Mode)
	assert.Equal(t, "/dev/null", f.Config.Path)

	fs = flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(nopWriter{})
	f.SetFlags(fs)
	assert.Error(t, fs.Parse([]string{"-log.filemode", "sideways"}))
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

func TestFileModes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gramgraph.log")

	write := func(mode FileMode, msg string) {
		l, err := New(Config{Path: path, Mode: mode, Level: zap.InfoLevel})
		require.NoError(t, err)
		l.Info(msg)
		l.Debug("hidden")
		require.NoError(t, l.Sync())
	}
	write(FileModeTruncate, "first")
	write(FileModeAppend, "second")
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "first")
	assert.Contains(t, string(b), "second")
	assert.NotContains(t, string(b), "hidden")

	write(FileModeTruncate, "third")
	b, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "first")
	assert.Contains(t, string(b), "third")
}

func TestRotateMissingDir(t *testing.T) {
	_, err := OpenFile(filepath.Join(t.TempDir(), "no", "such", "x.log"), FileModeRotate)
	assert.Error(t, err)
}
