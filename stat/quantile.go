// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package stat

import (
	"math"
	"sort"
)

// Quantile returns the p-quantile of xs, which must be sorted, using
// linear interpolation between closest ranks (Hyndman and Fan type
// 7, the R and NumPy default).
func Quantile(xs []float64, p float64) float64 {
	switch len(xs) {
	case 0:
		return math.NaN()
	case 1:
		return xs[0]
	}
	h := float64(len(xs)-1) * p
	lo := math.Floor(h)
	i := int(lo)
	if i >= len(xs)-1 {
		return xs[len(xs)-1]
	}
	if i < 0 {
		return xs[0]
	}
	return xs[i] + (h-lo)*(xs[i+1]-xs[i])
}

// sorted returns a sorted copy of xs without NaNs.
func sorted(xs []float64) []float64 {
	out := make([]float64, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) {
			out = append(out, x)
		}
	}
	sort.Float64s(out)
	return out
}
