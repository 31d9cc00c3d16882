// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scale

import (
	"math"

	"github.com/aclements/go-moremath/vec"
)

// A Rescaler maps values from [lo, hi] onto [0, 1].
type Rescaler func(xs []float64, lo, hi float64) []float64

// Rescale linearly maps [lo, hi] onto [0, 1]. If lo and hi are equal,
// every finite value maps to 0.5. NaN stays NaN.
func Rescale(xs []float64, lo, hi float64) []float64 {
	if zeroRange(lo, hi) {
		return vec.Map(func(x float64) float64 {
			if math.IsNaN(x) {
				return x
			}
			return 0.5
		}, xs)
	}
	return vec.Map(func(x float64) float64 {
		return (x - lo) / (hi - lo)
	}, xs)
}

// An OOB handles values outside of [lo, hi].
type OOB func(xs []float64, lo, hi float64) []float64

// Censor replaces finite values outside [lo, hi] with NaN.
// Infinite values are left alone.
func Censor(xs []float64, lo, hi float64) []float64 {
	if lo > hi {
		lo, hi = hi, lo
	}
	return vec.Map(func(x float64) float64 {
		if math.IsInf(x, 0) {
			return x
		}
		if x < lo || x > hi {
			return math.NaN()
		}
		return x
	}, xs)
}

// Squish clamps finite values to [lo, hi].
func Squish(xs []float64, lo, hi float64) []float64 {
	if lo > hi {
		lo, hi = hi, lo
	}
	return vec.Map(func(x float64) float64 {
		if math.IsInf(x, 0) || math.IsNaN(x) {
			return x
		}
		return math.Max(lo, math.Min(hi, x))
	}, xs)
}

// SquishInfinite replaces -Inf with lo and +Inf with hi.
func SquishInfinite(xs []float64, lo, hi float64) []float64 {
	if lo > hi {
		lo, hi = hi, lo
	}
	return vec.Map(func(x float64) float64 {
		switch {
		case math.IsInf(x, -1):
			return lo
		case math.IsInf(x, 1):
			return hi
		}
		return x
	}, xs)
}

// Keep leaves all values unchanged.
func Keep(xs []float64, lo, hi float64) []float64 {
	return xs
}

var oobByName = map[string]OOB{
	"censor":          Censor,
	"squish":          Squish,
	"squish_infinite": SquishInfinite,
	"keep":            Keep,
}
