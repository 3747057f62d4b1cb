// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package render draws a scene as a PNG or SVG image.
package render

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/aclements/gramgraph/scene"
)

// Format is an output image format.
type Format int

const (
	FormatPNG Format = iota
	FormatSVG
)

func (f Format) String() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatSVG:
		return "svg"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// Set implements flag.Value.
func (f *Format) Set(s string) error {
	v, err := ParseFormat(s)
	if err != nil {
		return err
	}
	*f = v
	return nil
}

// ParseFormat returns the format called name.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "png":
		return FormatPNG, nil
	case "svg":
		return FormatSVG, nil
	}
	return 0, fmt.Errorf("unknown output format %q (want png or svg)", name)
}

// FormatOf returns the format implied by path's extension.
func FormatOf(path string) (Format, bool) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return 0, false
	}
	f, err := ParseFormat(ext)
	return f, err == nil
}

// Write renders s to w in format f. scale is the PNG supersampling
// factor and is ignored for SVG.
func Write(w io.Writer, s *scene.Scene, f Format, scale int) error {
	switch f {
	case FormatPNG:
		return PNG(w, s, scale)
	case FormatSVG:
		return SVG(w, s)
	}
	return fmt.Errorf("unknown output format %v", f)
}
