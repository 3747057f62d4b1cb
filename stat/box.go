// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stat

import (
	"math"

	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"
	"github.com/aclements/gramgraph/plotspec"
)

// Box is the five-number summary of one category of a group.
type Box struct {
	Cat string

	Min, Q1, Median, Q3, Max float64

	// LoWhisker and HiWhisker are the most extreme values inside
	// the fences [Q1-1.5·IQR, Q3+1.5·IQR].
	LoWhisker, HiWhisker float64

	// Outliers are the values strictly outside the fences, in
	// ascending order.
	Outliers []float64

	N int

	Slot
}

// Violin is the density silhouette of one category of a group.
type Violin struct {
	Cat string

	// Ys are the evaluation points and Density the estimated
	// density at each, scaled so the maximum is 1.
	Ys, Density []float64

	Bandwidth float64

	Quantiles []QuantileMark

	Slot
}

// QuantileMark is one quantile marker of a violin.
type QuantileMark struct {
	P, Y float64
}

// violinPoints is the resolution of a violin's density curve.
const violinPoints = 128

// byCategory splits the non-missing y values of rows by category, in
// first-encounter order.
func byCategory(c *columns, rows []int) ([]string, map[string][]float64) {
	var cats []string
	ys := map[string][]float64{}
	for _, r := range rows {
		y := c.y[r]
		if math.IsNaN(y) {
			continue
		}
		cat := c.cat[r]
		if _, ok := ys[cat]; !ok {
			cats = append(cats, cat)
		}
		ys[cat] = append(ys[cat], y)
	}
	return cats, ys
}

func boxes(c *columns, rows []int) []Box {
	cats, ys := byCategory(c, rows)
	out := make([]Box, 0, len(cats))
	for _, cat := range cats {
		out = append(out, summarize(cat, ys[cat]))
	}
	return out
}

// summarize computes the box of the values xs.
func summarize(cat string, xs []float64) Box {
	xs = sorted(xs)
	b := Box{
		Cat:    cat,
		Min:    xs[0],
		Q1:     Quantile(xs, 0.25),
		Median: Quantile(xs, 0.5),
		Q3:     Quantile(xs, 0.75),
		Max:    xs[len(xs)-1],
		N:      len(xs),
	}
	iqr := b.Q3 - b.Q1
	lo, hi := b.Q1-1.5*iqr, b.Q3+1.5*iqr
	b.LoWhisker, b.HiWhisker = math.Inf(1), math.Inf(-1)
	for _, x := range xs {
		if x < lo || x > hi {
			b.Outliers = append(b.Outliers, x)
			continue
		}
		b.LoWhisker = math.Min(b.LoWhisker, x)
		b.HiWhisker = math.Max(b.HiWhisker, x)
	}
	return b
}

func violins(l *plotspec.Violin, c *columns, rows []int) []Violin {
	cats, ys := byCategory(c, rows)
	out := make([]Violin, 0, len(cats))
	for _, cat := range cats {
		xs := sorted(ys[cat])
		sample := stats.Sample{Xs: xs}
		bw := bandwidth(sample)
		kde := stats.KDE{
			Sample:    sample,
			Kernel:    stats.GaussianKernel,
			Bandwidth: bw,
		}
		min, max := sample.Bounds()
		grid := vec.Linspace(min-3*bw, max+3*bw, violinPoints)
		density := vec.Map(kde.PDF, grid)
		if peak := maxOf(density); peak > 0 {
			for i := range density {
				density[i] /= peak
			}
		}
		v := Violin{Cat: cat, Ys: grid, Density: density, Bandwidth: bw}
		for _, p := range l.DrawQuantiles {
			v.Quantiles = append(v.Quantiles, QuantileMark{P: p, Y: Quantile(xs, p)})
		}
		out = append(out, v)
	}
	return out
}

// bandwidth returns Silverman's rule-of-thumb bandwidth
//
//	0.9 · min(σ, IQR/1.34) · n^(-1/5)
//
// falling back to Scott's rule when the IQR is 0 and to 1 when the
// sample has no spread at all.
func bandwidth(s stats.Sample) float64 {
	n := float64(len(s.Xs))
	sd := s.StdDev()
	iqr := Quantile(s.Xs, 0.75) - Quantile(s.Xs, 0.25)
	spread := sd
	if iqr > 0 && iqr/1.34 < spread {
		spread = iqr / 1.34
	}
	bw := 0.9 * spread * math.Pow(n, -0.2)
	if !(bw > 0) {
		bw = stats.BandwidthScott(s)
	}
	if !(bw > 0) || math.IsInf(bw, 0) {
		bw = 1
	}
	return bw
}

func maxOf(xs []float64) float64 {
	m := math.Inf(-1)
	for _, x := range xs {
		m = math.Max(m, x)
	}
	return m
}
