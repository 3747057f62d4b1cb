// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parse

import (
	"math"
	"strings"

	"github.com/aclements/gramgraph/plotspec"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

var geoms = map[string]func(p *parser, a *args) plotspec.Layer{
	"line":      (*parser).line,
	"point":     (*parser).point,
	"bar":       (*parser).bar,
	"ribbon":    (*parser).ribbon,
	"histogram": (*parser).histogram,
	"smooth":    (*parser).smooth,
	"boxplot":   (*parser).boxplot,
	"violin":    (*parser).violin,
}

// positive is the lower bound of sizes and widths, which must be
// strictly positive.
const positive = math.SmallestNonzeroFloat64

var otherSegments = []string{
	"aes", "facet_wrap", "labs", "coord_flip", "theme",
	"scale_x_log10", "scale_y_log10", "scale_x_reverse", "scale_y_reverse",
	"scale_x_continuous", "scale_y_continuous", "xlim", "ylim",
}

func segmentNames() []string {
	names := append(maps.Keys(geoms), otherSegments...)
	for _, p := range plotspec.Presets {
		names = append(names, "theme_"+p)
	}
	slices.Sort(names)
	return names
}

func (p *parser) interpret(segs []*segment) *plotspec.PlotSpec {
	spec := new(plotspec.PlotSpec)
	for _, s := range segs {
		name := s.name.text
		a := &args{p: p, seg: s}
		if g, ok := geoms[name]; ok {
			spec.Layers = append(spec.Layers, g(p, a))
			a.finish()
			continue
		}
		switch {
		case name == "aes":
			if spec.Aes != nil {
				p.errorf(s.name.pos, "duplicate aes segment")
			}
			if len(spec.Layers) > 0 {
				p.errorf(s.name.pos, "aes must precede geometry layers")
			}
			spec.Aes = p.aes(a)

		case name == "facet_wrap":
			if spec.Facet != nil {
				p.errorf(s.name.pos, "duplicate facet_wrap segment")
			}
			spec.Facet = p.facet(a)

		case name == "labs":
			if spec.Labels != nil {
				p.errorf(s.name.pos, "duplicate labs segment")
			}
			spec.Labels = &plotspec.Labels{
				Title:    a.str("title"),
				Subtitle: a.str("subtitle"),
				X:        a.str("x"),
				Y:        a.str("y"),
				Caption:  a.str("caption"),
			}

		case name == "coord_flip":
			if spec.Flip {
				p.errorf(s.name.pos, "duplicate coord_flip segment")
			}
			spec.Flip = true

		case name == "theme":
			spec.Themes = append(spec.Themes, p.theme(a))

		case strings.HasPrefix(name, "theme_") && slices.Contains(plotspec.Presets, name[len("theme_"):]):
			spec.Themes = append(spec.Themes, plotspec.ThemeSpec{Preset: name[len("theme_"):]})

		case strings.HasPrefix(name, "scale_") || name == "xlim" || name == "ylim":
			spec.Scales = append(spec.Scales, p.scale(a))

		default:
			e := errorAt(p.src, s.name.pos, "unknown segment %s()", name)
			e.Hint = suggest(name, segmentNames())
			p.fail(e)
		}
		a.finish()
	}
	if len(spec.Layers) == 0 {
		p.errorf(len(p.src), "pipeline has no geometry layer")
	}
	return spec
}

func (p *parser) aes(a *args) *plotspec.Aesthetics {
	aes := new(plotspec.Aesthetics)
	for _, r := range []plotspec.Role{
		plotspec.RoleX, plotspec.RoleY, plotspec.RoleYMin, plotspec.RoleYMax,
		plotspec.RoleColor, plotspec.RoleSize, plotspec.RoleShape, plotspec.RoleAlpha,
	} {
		aes.Set(r, a.column(string(r)))
	}
	return aes
}

func (p *parser) mapping(a *args) plotspec.Mapping {
	return plotspec.Mapping{X: a.column("x"), Y: a.column("y")}
}

func (p *parser) line(a *args) plotspec.Layer {
	l := &plotspec.Line{
		Mapping:  p.mapping(a),
		Color:    a.colorAes("color"),
		Width:    a.numAes("width", positive, math.Inf(1)),
		Alpha:    a.numAes("alpha", 0, 1),
		Linetype: a.oneOf("linetype", "solid", "dashed", "dotted"),
	}
	return l
}

func (p *parser) point(a *args) plotspec.Layer {
	return &plotspec.Point{
		Mapping: p.mapping(a),
		Color:   a.colorAes("color"),
		Shape:   a.colorAes("shape"),
		Size:    a.numAes("size", positive, math.Inf(1)),
		Alpha:   a.numAes("alpha", 0, 1),
	}
}

func (p *parser) bar(a *args) plotspec.Layer {
	b := &plotspec.Bar{
		Mapping:  p.mapping(a),
		Color:    a.colorAes("color"),
		Alpha:    a.numAes("alpha", 0, 1),
		Width:    a.fraction("width"),
		Position: a.position(plotspec.Identity),
	}
	b.Count = a.oneOf("stat", "identity", "count") == "count"
	return b
}

func (p *parser) ribbon(a *args) plotspec.Layer {
	return &plotspec.Ribbon{
		Mapping: plotspec.Mapping{X: a.column("x")},
		YMin:    a.column("ymin"),
		YMax:    a.column("ymax"),
		Color:   a.colorAes("color"),
		Alpha:   a.numAes("alpha", 0, 1),
	}
}

func (p *parser) histogram(a *args) plotspec.Layer {
	h := &plotspec.Histogram{
		Mapping:  plotspec.Mapping{X: a.column("x")},
		Bins:     plotspec.DefaultBins,
		Color:    a.colorAes("color"),
		Alpha:    a.numAes("alpha", 0, 1),
		Position: a.position(plotspec.Identity),
	}
	if v := a.get("bins", valNumber); v != nil {
		n := v.tok.num
		if n < 1 || n != math.Trunc(n) || n > 1e6 {
			p.errorf(v.tok.pos, "bins must be a positive integer")
		}
		h.Bins = int(n)
	}
	return h
}

func (p *parser) smooth(a *args) plotspec.Layer {
	s := &plotspec.Smooth{
		Mapping: p.mapping(a),
		Color:   a.colorAes("color"),
		Width:   a.numAes("width", positive, math.Inf(1)),
		Alpha:   a.numAes("alpha", 0, 1),
		Method:  a.oneOf("method", "lm", "loess"),
		SE:      a.boolean("se"),
		Level:   plotspec.DefaultLevel,
	}
	if s.Method == "" {
		s.Method = "lm"
	}
	if v := a.get("level", valNumber); v != nil {
		if v.tok.num <= 0 || v.tok.num >= 1 {
			p.errorf(v.tok.pos, "level must be between 0 and 1")
		}
		s.Level = v.tok.num
	}
	return s
}

func (p *parser) boxplot(a *args) plotspec.Layer {
	b := &plotspec.Boxplot{
		Mapping:      p.mapping(a),
		Color:        a.colorAes("color"),
		Alpha:        a.numAes("alpha", 0, 1),
		Width:        a.fraction("width"),
		Position:     a.position(plotspec.Dodge),
		OutlierColor: a.str("outlier_color"),
		OutlierShape: a.str("outlier_shape"),
	}
	if v := a.get("outlier_size", valNumber); v != nil {
		if v.tok.num <= 0 {
			p.errorf(v.tok.pos, "outlier_size must be positive")
		}
		b.OutlierSize = v.tok.num
	}
	return b
}

func (p *parser) violin(a *args) plotspec.Layer {
	v := &plotspec.Violin{
		Mapping:  p.mapping(a),
		Color:    a.colorAes("color"),
		Alpha:    a.numAes("alpha", 0, 1),
		Width:    a.fraction("width"),
		Position: a.position(plotspec.Dodge),
	}
	if l := a.get("draw_quantiles", valList); l != nil {
		v.DrawQuantiles = []float64{}
		for _, q := range l.list {
			if q.kind != valNumber {
				a.typeError(q, valNumber)
			}
			if q.tok.num < 0 || q.tok.num > 1 {
				p.errorf(q.tok.pos, "quantile %s is outside [0, 1]", q.tok.text)
			}
			v.DrawQuantiles = append(v.DrawQuantiles, q.tok.num)
		}
	}
	return v
}

func (p *parser) facet(a *args) *plotspec.Facet {
	f := &plotspec.Facet{By: a.column("by")}
	if f.By == "" {
		p.errorf(a.seg.end, "facet_wrap requires a by: column")
	}
	if v := a.get("ncol", valNumber); v != nil {
		n := v.tok.num
		if n < 1 || n != math.Trunc(n) || n > 1e4 {
			p.errorf(v.tok.pos, "ncol must be a positive integer")
		}
		f.NCol = int(n)
	}
	if v := a.get("scales", valString); v != nil {
		m, ok := plotspec.ParseFacetScales(v.tok.str)
		if !ok {
			p.errorf(v.tok.pos, "scales must be one of \"fixed\", \"free_x\", \"free_y\", or \"free\"")
		}
		f.Scales = m
	}
	return f
}

func (p *parser) scale(a *args) plotspec.ScaleDirective {
	name := a.seg.name.text
	var d plotspec.ScaleDirective
	switch name {
	case "xlim", "ylim":
		if name == "ylim" {
			d.Axis = plotspec.YAxis
		}
		lo, hi := a.get("min", valNumber), a.get("max", valNumber)
		if lo == nil || hi == nil {
			p.errorf(a.seg.end, "%s requires min: and max:", name)
		}
		if lo.tok.num >= hi.tok.num {
			p.errorf(hi.tok.pos, "%s max must be greater than min", name)
		}
		d.Limits = &[2]float64{lo.tok.num, hi.tok.num}
		return d
	case "scale_x_log10", "scale_y_log10":
		d.Transform = plotspec.Log10
	case "scale_x_reverse", "scale_y_reverse":
		d.Transform = plotspec.Reverse
	case "scale_x_continuous", "scale_y_continuous":
		switch a.oneOf("trans", "identity", "log10", "reverse") {
		case "identity":
			d.Transform = plotspec.Linear
		case "log10":
			d.Transform = plotspec.Log10
		case "reverse":
			d.Transform = plotspec.Reverse
		}
		if l := a.get("limits", valList); l != nil {
			if len(l.list) != 2 {
				p.errorf(l.tok.pos, "limits must be a list of two numbers")
			}
			for _, v := range l.list {
				if v.kind != valNumber {
					a.typeError(v, valNumber)
				}
			}
			lo, hi := l.list[0].tok.num, l.list[1].tok.num
			if lo >= hi {
				p.errorf(l.tok.pos, "limits max must be greater than min")
			}
			d.Limits = &[2]float64{lo, hi}
		}
	default:
		e := errorAt(p.src, a.seg.name.pos, "unknown segment %s()", name)
		e.Hint = suggest(name, segmentNames())
		p.fail(e)
	}
	if strings.HasPrefix(name, "scale_y") {
		d.Axis = plotspec.YAxis
	}
	return d
}

func (p *parser) theme(a *args) plotspec.ThemeSpec {
	t := plotspec.ThemeSpec{LegendPosition: a.oneOf("legend_position", plotspec.LegendPositions...)}
	for _, ar := range a.seg.args {
		if ar.used {
			continue
		}
		kind, ok := plotspec.Slots[ar.key.text]
		if !ok {
			continue // reported by finish
		}
		ar.used = true
		if ar.val.kind != valCall {
			a.typeError(ar.val, valCall)
		}
		el := p.element(ar.val.call)
		if el.Kind() != kind && el.Kind() != plotspec.BlankKind {
			p.errorf(ar.val.tok.pos, "%s takes %s or element_blank, not %s", ar.key.text, kind, el.Kind())
		}
		if t.Elements == nil {
			t.Elements = map[string]plotspec.Element{}
		}
		t.Elements[ar.key.text] = el
	}
	a.tried = append(a.tried, maps.Keys(plotspec.Slots)...)
	return t
}

func (p *parser) element(s *segment) plotspec.Element {
	a := &args{p: p, seg: s}
	var el plotspec.Element
	switch s.name.text {
	case "element_text":
		el = &plotspec.TextElement{
			Size:   a.numPtr("size", positive, math.Inf(1)),
			Color:  a.strPtr("color"),
			Family: a.strPtr("family"),
			Face:   a.strPtr("face"),
			Angle:  a.numPtr("angle", -360, 360),
			HJust:  a.numPtr("hjust", 0, 1),
			VJust:  a.numPtr("vjust", 0, 1),
		}
	case "element_line":
		el = &plotspec.LineElement{
			Color:    a.strPtr("color"),
			Width:    a.numPtr("width", 0, math.Inf(1)),
			Linetype: a.strPtr("linetype"),
		}
	case "element_rect":
		el = &plotspec.RectElement{
			Fill:  a.strPtr("fill"),
			Color: a.strPtr("color"),
			Width: a.numPtr("width", 0, math.Inf(1)),
		}
	case "element_blank":
		el = &plotspec.BlankElement{}
	default:
		e := errorAt(p.src, s.name.pos, "unknown theme element %s()", s.name.text)
		e.Hint = suggest(s.name.text, []string{"element_text", "element_line", "element_rect", "element_blank"})
		p.fail(e)
	}
	a.finish()
	return el
}
