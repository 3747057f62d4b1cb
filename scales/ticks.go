// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scales

import (
	"math"
	"strconv"
	"time"

	"github.com/aclements/go-moremath/scale"
	"github.com/aclements/gramgraph/plotspec"
)

// Tick is a labeled major tick. Value is in data space, or the
// category position on a categorical axis.
type Tick struct {
	Value float64
	Label string
}

// Ticks returns at most max major ticks and the minor ticks between
// them. All ticks lie within the domain.
func (a *Axis) Ticks(max int) (major []Tick, minor []float64) {
	if max < 1 {
		max = 1
	}
	switch {
	case a.Kind == Categorical:
		step := (len(a.Categories) + max - 1) / max
		if step < 1 {
			step = 1
		}
		for i := 0; i < len(a.Categories); i += step {
			major = append(major, Tick{Value: float64(i), Label: a.Categories[i]})
		}
		return major, nil
	case a.Transform == plotspec.Log10:
		if major, minor = a.logTicks(max); len(major) >= 2 {
			return major, minor
		}
	}

	lo, hi := a.Min, a.Max
	if lo > hi {
		lo, hi = hi, lo
	}
	ls := scale.Linear{Min: lo, Max: hi}
	mj, mn := ls.Ticks(scale.TickOptions{Max: max})
	mj, mn = within(mj, lo, hi), within(mn, lo, hi)
	step := math.Inf(1)
	if len(mj) > 1 {
		step = mj[1] - mj[0]
	}
	major = major[:0]
	for _, v := range mj {
		if math.Abs(v) < step*1e-9 {
			v = 0
		}
		major = append(major, Tick{Value: v, Label: a.format(v, step)})
	}
	return major, mn
}

// logTicks returns a tick at every power of 10 in the domain, and
// minor ticks at the multiples of each power.
func (a *Axis) logTicks(max int) (major []Tick, minor []float64) {
	lo, hi := math.Log10(a.Min), math.Log10(a.Max)
	first, last := int(math.Ceil(lo)), int(math.Floor(hi))
	every := 1
	if n := last - first + 1; n > max {
		every = (n + max - 1) / max
	}
	for e := first; e <= last; e += every {
		v := math.Pow(10, float64(e))
		major = append(major, Tick{Value: v, Label: strconv.FormatFloat(v, 'g', -1, 64)})
	}
	if every == 1 {
		for e := first - 1; e <= last; e++ {
			p := math.Pow(10, float64(e))
			for m := 2.0; m < 10; m++ {
				if v := m * p; v >= a.Min && v <= a.Max {
					minor = append(minor, v)
				}
			}
		}
	}
	return major, minor
}

func within(xs []float64, lo, hi float64) []float64 {
	out := xs[:0:0]
	for _, x := range xs {
		if x >= lo && x <= hi {
			out = append(out, x)
		}
	}
	return out
}

// format labels a tick value. Time axes use the coarsest date or
// clock layout that distinguishes ticks step seconds apart.
func (a *Axis) format(v, step float64) string {
	if a.Kind != Time {
		return strconv.FormatFloat(v, 'g', 6, 64)
	}
	t := time.Unix(0, int64(v*1e9))
	switch {
	case step >= 86400:
		return t.Format("2006-01-02")
	case step >= 60:
		return t.Format("01-02 15:04")
	}
	return t.Format("15:04:05")
}
