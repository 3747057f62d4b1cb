// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/aclements/gramgraph/palette"
	"github.com/aclements/gramgraph/scene"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// MaxScale is the largest supported supersampling factor.
const MaxScale = 8

// PNG writes s to w as a PNG image. Shapes are rasterized at scale
// times the canvas size and scaled down, which antialiases edges. Text
// is drawn with a fixed 7x13 bitmap face after all shapes, ignoring
// the text size and font family.
func PNG(w io.Writer, s *scene.Scene, scale int) error {
	img := Raster(s, scale)
	return png.Encode(w, img)
}

// Raster draws s into a new image.
func Raster(s *scene.Scene, scale int) *image.RGBA {
	if scale < 1 {
		scale = 1
	} else if scale > MaxScale {
		scale = MaxScale
	}
	width := int(math.Max(1, math.Ceil(s.Width)))
	height := int(math.Max(1, math.Ceil(s.Height)))

	r := &raster{
		img: image.NewRGBA(image.Rect(0, 0, width*scale, height*scale)),
		z:   vector.NewRasterizer(width*scale, height*scale),
		k:   float64(scale),
	}
	var texts []*scene.Text
	for _, c := range s.Commands {
		switch c := c.(type) {
		case *scene.Line:
			for _, run := range dashes(c.Points, c.Style.Dash) {
				r.stroke(c.Style.Color, c.Style.Width, run, false)
			}
		case *scene.Rect:
			corners := []scene.Vec{c.Min, {X: c.Max.X, Y: c.Min.Y}, c.Max, {X: c.Min.X, Y: c.Max.Y}}
			r.fillStroke(c.Style, corners)
		case *scene.Polygon:
			r.fillStroke(c.Style, c.Points)
		case *scene.Point:
			st := c.Style
			if st.Shape == palette.Cross {
				for _, seg := range cross(c.At, st.Size) {
					r.stroke(st.Color, crossWidth(st.Size), seg[:], false)
				}
				continue
			}
			r.fill(st.Color, marker(st.Shape, c.At, st.Size))
		case *scene.Text:
			texts = append(texts, c)
		default:
			scene.BadCommand(c)
		}
	}

	// Scale down by the supersampling factor.
	dst := r.img
	if scale > 1 {
		sb := r.img.Bounds()
		dst = image.NewRGBA(image.Rect(0, 0, width, height))
		draw.BiLinear.Scale(dst, dst.Bounds(), r.img, sb, draw.Over, nil)
	}
	for _, t := range texts {
		drawText(dst, t)
	}
	return dst
}

// raster fills paths into an image at a fixed scale.
type raster struct {
	img *image.RGBA
	z   *vector.Rasterizer
	k   float64
}

// fill fills the union of polys with c.
func (r *raster) fill(c color.RGBA, polys ...[]scene.Vec) {
	if c.A == 0 {
		return
	}
	b := r.img.Bounds()
	r.z.Reset(b.Dx(), b.Dy())
	n := 0
	for _, p := range polys {
		if len(p) < 3 {
			continue
		}
		// The rasterizer sums signed coverage, so overlapping
		// subpaths must share a winding direction.
		rev := signedArea(p) < 0
		at := func(i int) (float32, float32) {
			if rev {
				i = len(p) - 1 - i
			}
			return float32(p[i].X * r.k), float32(p[i].Y * r.k)
		}
		r.z.MoveTo(at(0))
		for i := 1; i < len(p); i++ {
			r.z.LineTo(at(i))
		}
		r.z.ClosePath()
		n++
	}
	if n > 0 {
		r.z.Draw(r.img, b, image.NewUniform(c), image.Point{})
	}
}

// stroke strokes the polyline pts with width w. If closed, the last
// point connects back to the first.
func (r *raster) stroke(c color.RGBA, w float64, pts []scene.Vec, closed bool) {
	if c.A == 0 || w <= 0 || len(pts) < 2 {
		return
	}
	if closed {
		pts = append(pts[:len(pts):len(pts)], pts[0])
	}
	half := w / 2
	var polys [][]scene.Vec
	for i := 1; i < len(pts); i++ {
		p, q := pts[i-1], pts[i]
		dx, dy := q.X-p.X, q.Y-p.Y
		l := math.Hypot(dx, dy)
		if l == 0 {
			continue
		}
		nx, ny := -dy/l*half, dx/l*half
		polys = append(polys, []scene.Vec{
			{X: p.X + nx, Y: p.Y + ny}, {X: q.X + nx, Y: q.Y + ny},
			{X: q.X - nx, Y: q.Y - ny}, {X: p.X - nx, Y: p.Y - ny},
		})
		// Round the joins of thick lines.
		if i > 1 && w*r.k >= 3 {
			polys = append(polys, marker(palette.Circle, p, w))
		}
	}
	r.fill(c, polys...)
}

func (r *raster) fillStroke(st scene.RectStyle, pts []scene.Vec) {
	r.fill(st.Fill, pts)
	r.stroke(st.Stroke, st.Width, pts, true)
}

func signedArea(p []scene.Vec) float64 {
	a := 0.0
	for i := range p {
		j := (i + 1) % len(p)
		a += p[i].X*p[j].Y - p[j].X*p[i].Y
	}
	return a / 2
}

// drawText draws t with the 7x13 bitmap face. Text at a right angle is
// rotated; other angles are drawn horizontally.
func drawText(dst *image.RGBA, t *scene.Text) {
	if t.Text == "" || t.Style.Color.A == 0 {
		return
	}
	face := basicfont.Face7x13
	d := &font.Drawer{Src: image.NewUniform(t.Style.Color), Face: face}
	w := d.MeasureString(t.Text).Ceil()
	h := face.Height
	st := t.Style

	tmp := image.NewRGBA(image.Rect(0, 0, w, h))
	d.Dst = tmp
	d.Dot = fixed.P(0, face.Ascent)
	d.DrawString(t.Text)

	// (ax, ay) is the anchor within the unrotated text box.
	ax, ay := st.HJust*float64(w), st.VJust*float64(h)
	var src image.Image = tmp
	var ox, oy float64
	switch angle := math.Mod(math.Mod(st.Angle, 360)+360, 360); {
	case math.Abs(angle-90) < 1:
		src = rotate(tmp, true)
		ox, oy = t.At.X-ay, t.At.Y-(float64(w)-ax)
	case math.Abs(angle-270) < 1:
		src = rotate(tmp, false)
		ox, oy = t.At.X-(float64(h)-ay), t.At.Y-ax
	default:
		ox, oy = t.At.X-ax, t.At.Y-ay
	}
	at := image.Pt(int(math.Round(ox)), int(math.Round(oy)))
	sb := src.Bounds()
	draw.Draw(dst, sb.Add(at), src, sb.Min, draw.Over)
}

// rotate returns img turned a quarter turn counterclockwise (ccw) or
// clockwise.
func rotate(img *image.RGBA, ccw bool) *image.RGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewRGBA(image.Rect(0, 0, h, w))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := img.RGBAAt(b.Min.X+x, b.Min.Y+y)
			if ccw {
				out.SetRGBA(y, w-1-x, c)
			} else {
				out.SetRGBA(h-1-y, x, c)
			}
		}
	}
	return out
}
