// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package palette

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// ParseColor parses a color: "#RGB", "#RRGGBB", "#RRGGBBAA", an SVG
// color name, "grayN" or "greyN" for N in 0-100, or "transparent" or
// "none".
func ParseColor(s string) (color.RGBA, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	switch {
	case name == "transparent" || name == "none":
		return color.RGBA{}, nil
	case strings.HasPrefix(name, "#"):
		if c, ok := parseHex(name[1:]); ok {
			return c, nil
		}
	case strings.HasPrefix(name, "gray") || strings.HasPrefix(name, "grey"):
		if name[4:] == "" {
			break
		}
		if n, err := strconv.Atoi(name[4:]); err == nil && n >= 0 && n <= 100 {
			v := uint8(math.Round(float64(n) * 255 / 100))
			return color.RGBA{v, v, v, 0xff}, nil
		}
	}
	if c, ok := colornames.Map[name]; ok {
		return c, nil
	}
	return color.RGBA{}, fmt.Errorf("invalid color %q", s)
}

func parseHex(h string) (color.RGBA, bool) {
	switch len(h) {
	case 3:
		// #RGB is shorthand for #RRGGBB.
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
		fallthrough
	case 6:
		h += "ff"
	case 8:
	default:
		return color.RGBA{}, false
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, false
	}
	c := color.NRGBA{uint8(v >> 24), uint8(v >> 16), uint8(v >> 8), uint8(v)}
	return color.RGBAModel.Convert(c).(color.RGBA), true
}

// Hex formats the opaque part of c as "#rrggbb".
func Hex(c color.RGBA) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
}

// Opacity returns the alpha of c in [0, 1].
func Opacity(c color.RGBA) float64 {
	return float64(c.A) / 0xff
}
