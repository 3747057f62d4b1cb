// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stat

import (
	"math"

	"github.com/aclements/go-moremath/fit"
	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"
	"github.com/aclements/gramgraph/plotspec"
)

// smoothPoints is the number of points at which a smooth is
// evaluated.
const smoothPoints = 80

// smooth fits s's rows and stores the fitted curve in s. It returns a
// reason if the group cannot be fitted.
func smooth(l *plotspec.Smooth, c *columns, rows []int, s *Series) string {
	var xs, ys []float64
	for _, r := range rows {
		if math.IsNaN(c.x[r]) || math.IsNaN(c.y[r]) {
			continue
		}
		xs = append(xs, c.x[r])
		ys = append(ys, c.y[r])
	}
	if len(distinct64(xs)) < 2 {
		return "fewer than 2 distinct x values"
	}

	min, max := stats.Bounds(xs)
	eval := vec.Linspace(min, max, smoothPoints)

	method := l.Method
	if method == "loess" && len(distinct64(xs)) < 4 {
		// Too few points for a local quadratic.
		method = "lm"
	}
	var f func(float64) float64
	switch method {
	case "loess":
		f = fit.LOESS(xs, ys, 2, 0.75)
		s.Fit = &Fit{Method: method, N: len(xs)}
	default:
		r := fit.PolynomialRegression(xs, ys, nil, 1)
		f = r.F
		b := r.F(0)
		s.Fit = &Fit{Method: "lm", Intercept: b, Slope: r.F(1) - b, N: len(xs)}
	}

	fitted := vec.Map(f, eval)
	s.Points = make([]Point, len(eval))
	for i, x := range eval {
		y := fitted[i]
		s.Points[i] = Point{X: x, Y: y, YMin: y, YMax: y}
	}
	if l.SE && method == "lm" && len(xs) > 2 {
		level := l.Level
		if level == 0 {
			level = plotspec.DefaultLevel
		}
		band(xs, ys, f, level, s.Points)
		s.Fit.Band = true
	}
	return ""
}

// band sets the confidence interval of the mean response of a linear
// fit f at each point:
//
//	ŷ ± z·s·sqrt(1/n + (x-x̄)²/Sxx)
//
// where s is the residual standard error.
func band(xs, ys []float64, f func(float64) float64, level float64, pts []Point) {
	n := float64(len(xs))
	mean := stats.Mean(xs)
	var sxx, sse float64
	for i, x := range xs {
		sxx += (x - mean) * (x - mean)
		r := ys[i] - f(x)
		sse += r * r
	}
	se := math.Sqrt(sse / (n - 2))
	z := stats.NormalDist{Mu: 0, Sigma: 1}.InvCDF((1 + level) / 2)
	for i := range pts {
		d := pts[i].X - mean
		h := z * se * math.Sqrt(1/n+d*d/sxx)
		pts[i].YMin, pts[i].YMax = pts[i].Y-h, pts[i].Y+h
	}
}

func distinct64(xs []float64) map[float64]struct{} {
	m := make(map[float64]struct{}, len(xs))
	for _, x := range xs {
		m[x] = struct{}{}
	}
	return m
}
