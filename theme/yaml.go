// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package theme

import (
	"fmt"
	"io"

	"github.com/aclements/gramgraph/plotspec"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

// yamlElement is the YAML form of an element. The element kind comes
// from the slot.
type yamlElement struct {
	Size     *float64 `yaml:"size"`
	Color    *string  `yaml:"color"`
	Family   *string  `yaml:"family"`
	Face     *string  `yaml:"face"`
	Angle    *float64 `yaml:"angle"`
	HJust    *float64 `yaml:"hjust"`
	VJust    *float64 `yaml:"vjust"`
	Width    *float64 `yaml:"width"`
	Linetype *string  `yaml:"linetype"`
	Fill     *string  `yaml:"fill"`
}

// LoadYAML reads a theme file. The file maps slot names to either
// "blank" or a mapping of element fields, plus an optional
// legend_position:
//
//	legend_position: bottom
//	plot_title: {size: 16, color: navy}
//	panel_grid_minor: blank
func LoadYAML(r io.Reader) (Sheet, error) {
	var doc map[string]yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return Sheet{}, nil
		}
		return Sheet{}, fmt.Errorf("reading theme: %w", err)
	}
	s := Sheet{Slots: map[string]Element{}}
	for slot, node := range doc {
		if slot == "legend_position" {
			if err := node.Decode(&s.LegendPosition); err != nil {
				return Sheet{}, fmt.Errorf("theme legend_position: %w", err)
			}
			if !slices.Contains(plotspec.LegendPositions, s.LegendPosition) {
				return Sheet{}, fmt.Errorf("theme legend_position: unknown position %q", s.LegendPosition)
			}
			continue
		}
		kind, ok := plotspec.Slots[slot]
		if !ok {
			return Sheet{}, fmt.Errorf("line %d: unknown theme slot %q", node.Line, slot)
		}
		if node.Kind == yaml.ScalarNode && node.Value == "blank" {
			s.Slots[slot] = Blank
			continue
		}
		var ye yamlElement
		if err := node.Decode(&ye); err != nil {
			return Sheet{}, fmt.Errorf("theme %s: %w", slot, err)
		}
		e, err := ye.element(kind)
		if err != nil {
			return Sheet{}, fmt.Errorf("line %d: theme %s: %w", node.Line, slot, err)
		}
		s.Slots[slot] = e
	}
	return s, nil
}

func (ye *yamlElement) element(kind plotspec.ElementKind) (Element, error) {
	// misplaced lists fields set that kind does not have.
	var misplaced []string
	check := func(set bool, name string) {
		if set {
			misplaced = append(misplaced, name)
		}
	}
	e := Element{Kind: kind}
	switch kind {
	case plotspec.TextKind:
		e.Text = plotspec.TextElement{
			Size: ye.Size, Color: ye.Color, Family: ye.Family, Face: ye.Face,
			Angle: ye.Angle, HJust: ye.HJust, VJust: ye.VJust,
		}
		check(ye.Width != nil, "width")
		check(ye.Linetype != nil, "linetype")
		check(ye.Fill != nil, "fill")
	case plotspec.LineKind:
		e.Line = plotspec.LineElement{Color: ye.Color, Width: ye.Width, Linetype: ye.Linetype}
		check(ye.Size != nil, "size")
		check(ye.Fill != nil, "fill")
		check(ye.Family != nil || ye.Face != nil || ye.Angle != nil || ye.HJust != nil || ye.VJust != nil, "text fields")
	case plotspec.RectKind:
		e.Rect = plotspec.RectElement{Fill: ye.Fill, Color: ye.Color, Width: ye.Width}
		check(ye.Size != nil, "size")
		check(ye.Linetype != nil, "linetype")
		check(ye.Family != nil || ye.Face != nil || ye.Angle != nil || ye.HJust != nil || ye.VJust != nil, "text fields")
	}
	if len(misplaced) > 0 {
		return Element{}, fmt.Errorf("%s has no %s", kind, misplaced[0])
	}
	return e, nil
}
