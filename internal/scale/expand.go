// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scale

import (
	"math"

	"github.com/aclements/plotscale/internal/trans"
)

// An Expansion pads a range on each side by a multiple of its width
// plus a constant.
type Expansion struct {
	MultLo, AddLo float64
	MultHi, AddHi float64
}

// Expand returns the symmetric Expansion (mult, add).
func Expand(mult, add float64) Expansion {
	return Expansion{mult, add, mult, add}
}

var (
	continuousExpansion = Expand(0.05, 0)
	discreteExpansion   = Expand(0, 0.6)
)

// zeroWidth is the width given to a degenerate range by expansion.
const zeroWidth = 1

// zeroRange reports whether lo and hi are equal to within floating
// point precision.
func zeroRange(lo, hi float64) bool {
	if lo == hi {
		return true
	}
	m := math.Max(math.Abs(lo), math.Abs(hi))
	if m == 0 || math.IsInf(m, 0) {
		return false
	}
	return math.Abs(hi-lo)/m < 1000*epsilon
}

const epsilon = 2.220446049250313e-16

// expandRange expands [lo, hi] by e. A zero-width range becomes
// zeroWidth wide, centered on lo. A descending range is expanded as
// its ascending counterpart, with the low parameters applied to the
// numerically lower end, and then flipped back.
func expandRange(lo, hi float64, e Expansion) (float64, float64) {
	if lo > hi {
		a, b := expandRange(hi, lo, e)
		return b, a
	}
	if zeroRange(lo, hi) {
		return lo - zeroWidth/2.0, hi + zeroWidth/2.0
	}
	w := hi - lo
	return lo - (w*e.MultLo + e.AddLo), hi + (w*e.MultHi + e.AddHi)
}

// defaultExpansion resolves the expansion a scale should use. If expand
// is false, it returns no expansion. Otherwise a scale's configured
// Expand of length 2 (mult, add) or 4 (mult_lo, add_lo, mult_hi,
// add_hi) wins. Failing that, mult and add each give either one
// symmetric value or a (lo, hi) pair.
func defaultExpansion(name string, configured, mult, add []float64, expand bool) (Expansion, error) {
	if !expand {
		return Expansion{}, nil
	}
	switch len(configured) {
	case 0:
	case 2:
		return Expand(configured[0], configured[1]), nil
	case 4:
		return Expansion{configured[0], configured[1], configured[2], configured[3]}, nil
	default:
		return Expansion{}, configErrorf(name, "expand must have 2 or 4 values, got %d", len(configured))
	}
	ml, mh, err := pair(name, "mult", mult)
	if err != nil {
		return Expansion{}, err
	}
	al, ah, err := pair(name, "add", add)
	if err != nil {
		return Expansion{}, err
	}
	return Expansion{ml, al, mh, ah}, nil
}

func pair(name, what string, xs []float64) (lo, hi float64, err error) {
	switch len(xs) {
	case 1:
		return xs[0], xs[0], nil
	case 2:
		return xs[0], xs[1], nil
	}
	return 0, 0, configErrorf(name, "%s must have 1 or 2 values, got %d", what, len(xs))
}

// expandContinuous expands limits given in a scale's transform space,
// with coord applied on top. It returns the expanded range in scale
// space and in coord space. If coord's inverse gives a non-finite
// value, that end falls back to the unexpanded limit.
func expandContinuous(lo, hi float64, e Expansion, coord trans.Trans) (rng, coordRng [2]float64) {
	if coord == nil {
		coord = trans.Identity()
	}
	clo, chi := coord.Transform(lo), coord.Transform(hi)
	clo, chi = expandRange(clo, chi, e)
	rlo, rhi := coord.Inverse(clo), coord.Inverse(chi)
	if math.IsNaN(rlo) || math.IsInf(rlo, 0) {
		rlo = lo
	}
	if math.IsNaN(rhi) || math.IsInf(rhi, 0) {
		rhi = hi
	}
	return [2]float64{rlo, rhi}, [2]float64{clo, chi}
}
