// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"fmt"
	"image/color"
	"io"
	"strings"

	"github.com/aclements/gramgraph/palette"
	"github.com/aclements/gramgraph/scene"
	svg "github.com/ajstarks/svgo/float"
)

// SVG writes s to w as an SVG document.
func SVG(w io.Writer, s *scene.Scene) error {
	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	canvas.Start(s.Width, s.Height)
	for _, c := range s.Commands {
		switch c := c.(type) {
		case *scene.Line:
			if len(c.Points) < 2 {
				continue
			}
			xs, ys := split(c.Points)
			canvas.Polyline(xs, ys, strokeStyle(c.Style))
		case *scene.Rect:
			canvas.Rect(c.Min.X, c.Min.Y, c.Width(), c.Height(), fillStyle(c.Style))
		case *scene.Polygon:
			if len(c.Points) < 3 {
				continue
			}
			xs, ys := split(c.Points)
			canvas.Polygon(xs, ys, fillStyle(c.Style))
		case *scene.Point:
			svgMarker(canvas, c)
		case *scene.Text:
			svgText(canvas, c)
		default:
			scene.BadCommand(c)
		}
	}
	canvas.End()
	return ew.err
}

// errWriter remembers the first write error, since svgo discards
// them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return len(p), nil
	}
	_, e.err = e.w.Write(p)
	return len(p), nil
}

func split(pts []scene.Vec) (xs, ys []float64) {
	xs, ys = make([]float64, len(pts)), make([]float64, len(pts))
	for i, p := range pts {
		xs[i], ys[i] = p.X, p.Y
	}
	return
}

// paint formats c as a CSS property and its opacity.
func paint(prop string, c color.RGBA) string {
	if c.A == 0 {
		return prop + ":none"
	}
	s := prop + ":" + palette.Hex(c)
	if c.A != 0xff {
		s += fmt.Sprintf(";%s-opacity:%.3g", prop, palette.Opacity(c))
	}
	return s
}

func strokeStyle(st scene.LineStyle) string {
	parts := []string{"fill:none", paint("stroke", st.Color), fmt.Sprintf("stroke-width:%.3g", st.Width)}
	if len(st.Dash) > 0 {
		ds := make([]string, len(st.Dash))
		for i, d := range st.Dash {
			ds[i] = fmt.Sprintf("%.3g", d)
		}
		parts = append(parts, "stroke-dasharray:"+strings.Join(ds, ","))
	}
	return strings.Join(parts, ";")
}

func fillStyle(st scene.RectStyle) string {
	s := paint("fill", st.Fill)
	if st.Width > 0 && st.Stroke.A != 0 {
		s += ";" + paint("stroke", st.Stroke) + fmt.Sprintf(";stroke-width:%.3g", st.Width)
	}
	return s
}

func svgMarker(canvas *svg.SVG, p *scene.Point) {
	st := p.Style
	switch st.Shape {
	case palette.Circle:
		canvas.Circle(p.At.X, p.At.Y, st.Size/2, paint("fill", st.Color))
	case palette.Cross:
		l := scene.LineStyle{Color: st.Color, Width: crossWidth(st.Size)}
		for _, seg := range cross(p.At, st.Size) {
			canvas.Line(seg[0].X, seg[0].Y, seg[1].X, seg[1].Y, strokeStyle(l))
		}
	default:
		xs, ys := split(marker(st.Shape, p.At, st.Size))
		canvas.Polygon(xs, ys, paint("fill", st.Color))
	}
}

func svgText(canvas *svg.SVG, t *scene.Text) {
	st := t.Style
	css := []string{paint("fill", st.Color), fmt.Sprintf("font-size:%.3gpx", st.Size)}
	if st.Family != "" {
		css = append(css, "font-family:"+st.Family)
	}
	switch st.Face {
	case "bold":
		css = append(css, "font-weight:bold")
	case "italic":
		css = append(css, "font-style:italic")
	case "bold.italic":
		css = append(css, "font-weight:bold", "font-style:italic")
	}
	switch {
	case st.HJust < 0.25:
		css = append(css, "text-anchor:start")
	case st.HJust > 0.75:
		css = append(css, "text-anchor:end")
	default:
		css = append(css, "text-anchor:middle")
	}
	switch {
	case st.VJust < 0.25:
		css = append(css, "dominant-baseline:hanging")
	case st.VJust > 0.75:
		css = append(css, "dominant-baseline:text-after-edge")
	default:
		css = append(css, "dominant-baseline:central")
	}
	attrs := []string{strings.Join(css, ";")}
	if st.Angle != 0 {
		// SVG rotates clockwise.
		attrs = append(attrs, fmt.Sprintf(`transform="rotate(%.3g %.2f %.2f)"`, -st.Angle, t.At.X, t.At.Y))
	}
	canvas.Text(t.At.X, t.At.Y, t.Text, attrs...)
}
