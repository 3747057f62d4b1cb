// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aclements/go-gg/table"
	"github.com/aclements/gramgraph/data"
	"github.com/alecthomas/units"
)

// readData reads the table at path, or stdin if path is "-". Input
// larger than limit bytes is an error.
func (c *command) readData(path string, limit int64) (*table.Table, error) {
	r := c.stdin
	name := "stdin"
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r, name = f, path
	}
	b, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > limit {
		return nil, fmt.Errorf("%s: input exceeds -maxdata %s", name, units.Base2Bytes(limit))
	}

	var tab *table.Table
	if isJSON(path, b) {
		tab, err = data.ReadJSON(bytes.NewReader(b))
	} else {
		tab, err = data.ReadCSV(bytes.NewReader(b))
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return tab, nil
}

// isJSON reports whether the input is JSON, by its extension or else
// its first non-space byte.
func isJSON(path string, b []byte) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return true
	case ".csv":
		return false
	}
	b = bytes.TrimLeft(b, " \t\r\n")
	return len(b) > 0 && (b[0] == '[' || b[0] == '{')
}
