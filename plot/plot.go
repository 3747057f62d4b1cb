// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package plot runs the gramgraph pipeline: variable expansion,
// parsing, resolution, statistical transforms, scale training, theme
// resolution, and compilation to a scene.
package plot

import (
	"context"

	"github.com/aclements/go-gg/table"
	"github.com/aclements/gramgraph/compile"
	"github.com/aclements/gramgraph/palette"
	"github.com/aclements/gramgraph/parse"
	"github.com/aclements/gramgraph/plotspec"
	"github.com/aclements/gramgraph/resolve"
	"github.com/aclements/gramgraph/scales"
	"github.com/aclements/gramgraph/scene"
	"github.com/aclements/gramgraph/stat"
	"github.com/aclements/gramgraph/theme"
	"github.com/aclements/gramgraph/vars"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
)

// Default canvas size, in pixels.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

// Options control one build.
type Options struct {
	// Vars are substituted for $name references.
	Vars map[string]string

	// Width and Height are the canvas size. Zero means the
	// default.
	Width, Height int

	// Palette names the group color palette. Empty means the
	// default palette.
	Palette string

	// ThemeFiles are applied after the pipeline's theme presets
	// and before its explicit theme() segments.
	ThemeFiles []theme.Sheet

	// Logger receives phase progress and warnings. nil disables
	// logging.
	Logger *zap.Logger
}

// A Compiler builds scenes. It caches parsed pipelines, so one
// Compiler should be reused across builds. A Compiler is safe for
// concurrent use.
type Compiler struct {
	specs *lru.Cache[string, *plotspec.PlotSpec]
}

// NewCompiler returns a Compiler that caches up to size parsed
// pipelines.
func NewCompiler(size int) *Compiler {
	if size < 1 {
		size = 1
	}
	specs, err := lru.New[string, *plotspec.PlotSpec](size)
	if err != nil {
		panic(err)
	}
	return &Compiler{specs: specs}
}

// Parse expands variables in dsl and parses the result. The returned
// PlotSpec is shared and must not be modified.
func (c *Compiler) Parse(dsl string, defs map[string]string) (*plotspec.PlotSpec, error) {
	src, err := vars.Expand(dsl, defs)
	if err != nil {
		return nil, err
	}
	if spec, ok := c.specs.Get(src); ok {
		return spec, nil
	}
	spec, err := parse.Parse(src)
	if err != nil {
		return nil, err
	}
	c.specs.Add(src, spec)
	return spec, nil
}

// Build compiles dsl over t to a scene.
func (c *Compiler) Build(ctx context.Context, dsl string, t *table.Table, opts Options) (*scene.Scene, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	width, height := opts.Width, opts.Height
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	pal := palette.Default()
	if opts.Palette != "" {
		var err error
		if pal, err = palette.ByName(opts.Palette); err != nil {
			return nil, err
		}
	}

	spec, err := c.Parse(dsl, opts.Vars)
	if err != nil {
		return nil, err
	}
	log.Debug("parsed", zap.String("spec", spec.String()), zap.Int("layers", len(spec.Layers)))

	p, err := resolve.Resolve(spec, t.Columns())
	if err != nil {
		return nil, err
	}

	res, err := stat.Transform(ctx, p, t)
	if err != nil {
		return nil, err
	}
	series := 0
	for _, panel := range res.Panels {
		series += len(panel.Series)
	}
	log.Debug("transformed", zap.Int("panels", len(res.Panels)), zap.Int("series", series), zap.Stringer("x", res.XKind))
	for _, w := range res.Warnings {
		log.Warn("empty group", zap.Int("layer", w.Layer+1), zap.String("group", w.Group), zap.String("reason", w.Reason))
	}

	sc, err := scales.Train(res, p, spec.Scales)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	th, err := resolveTheme(spec.Themes, opts.ThemeFiles)
	if err != nil {
		return nil, err
	}

	s, err := compile.Compile(compile.Input{
		Plot:    p,
		Result:  res,
		Scales:  sc,
		Theme:   th,
		Labels:  spec.Labels,
		Width:   float64(width),
		Height:  float64(height),
		Palette: pal,
	})
	if err != nil {
		return nil, err
	}
	log.Debug("compiled", zap.Int("commands", len(s.Commands)), zap.Int("legend", len(s.Legend)))
	return s, nil
}

// resolveTheme folds the pipeline's theme segments with theme files.
// Files go after the last preset, since a preset replaces everything
// before it.
func resolveTheme(specs []plotspec.ThemeSpec, files []theme.Sheet) (*theme.Resolved, error) {
	at := 0
	for i, ts := range specs {
		if ts.Preset != "" {
			at = i + 1
		}
	}
	var sheets []theme.Sheet
	for i, ts := range specs {
		if i == at {
			sheets = append(sheets, files...)
		}
		s, err := theme.FromSpec(ts)
		if err != nil {
			return nil, err
		}
		sheets = append(sheets, s)
	}
	if at == len(specs) {
		sheets = append(sheets, files...)
	}
	return theme.Resolve(sheets...)
}
