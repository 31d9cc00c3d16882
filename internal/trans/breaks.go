// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trans

import (
	"math"
	"slices"

	"github.com/aclements/go-moremath/scale"
	"github.com/aclements/go-moremath/vec"
)

// ExtendedBreaks returns at most n evenly spaced "nice" breaks in
// [lo, hi]. If lo == hi, it returns just that value.
func ExtendedBreaks(lo, hi float64, n int) []float64 {
	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return nil
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo == hi {
		return []float64{lo}
	}
	if n < 2 {
		n = 2
	}
	ls := scale.Linear{Min: lo, Max: hi}
	major, minor := ls.Ticks(scale.TickOptions{Max: n})
	if len(major) >= 3 || len(major) >= n {
		return major
	}
	// The major level is too coarse. Pick every 2nd or 5th tick of the
	// next level down instead.
	fine := append(slices.Clone(major), minor...)
	slices.Sort(fine)
	fine = slices.Compact(fine)
	if len(fine) < 2 {
		if len(major) == 0 {
			return []float64{lo, hi}
		}
		return major
	}
	unit := math.Inf(1)
	for i := 1; i < len(fine); i++ {
		unit = math.Min(unit, fine[i]-fine[i-1])
	}
	for _, stride := range []float64{2, 5} {
		var out []float64
		for _, x := range fine {
			if x >= lo && x <= hi && math.Mod(math.Round(x/unit), stride) == 0 {
				out = append(out, x)
			}
		}
		if len(out) >= 2 && len(out) <= n {
			return out
		}
	}
	if len(major) == 0 {
		return []float64{lo, hi}
	}
	return major
}

// logEps absorbs the rounding error of log(base^k)/log(base).
const logEps = 1e-9

// LogBreaks returns a break generator that places breaks on integer
// powers of base. If the range spans too many powers, it uses every
// k'th power for the smallest k that yields at most n breaks. Ranges
// that do not span two powers, or that reach zero, fall back to
// ExtendedBreaks.
func LogBreaks(base float64) func(lo, hi float64, n int) []float64 {
	logBase := math.Log(base)
	return func(lo, hi float64, n int) []float64 {
		if !(lo > 0) || math.IsInf(hi, 0) || math.IsNaN(hi) {
			return ExtendedBreaks(lo, hi, n)
		}
		loE := math.Floor(math.Log(lo)/logBase + logEps)
		hiE := math.Ceil(math.Log(hi)/logBase - logEps)
		if hiE-loE < 1 {
			return ExtendedBreaks(lo, hi, n)
		}
		// Grow the effective base until there are few enough breaks.
		step := 1.0
		for (hiE-loE)/step+1 > float64(n) {
			step++
		}
		loE = math.Floor(loE/step) * step
		var breaks []float64
		for e := loE; e <= hiE+logEps; e += step {
			breaks = append(breaks, math.Pow(base, e))
		}
		return breaks
	}
}

// logMinor returns a minor break generator for a log transform.
//
// With n <= 0, minor breaks fall on k*base^e for k = 2 .. base-1 (or
// halfway between powers for bases below 3). With n > 0, n breaks are
// spaced evenly in data space between each pair of major breaks.
func logMinor(base float64) func(t Trans, major []float64, lo, hi float64, n int) []float64 {
	return func(t Trans, major []float64, lo, hi float64, n int) []float64 {
		if len(major) == 0 {
			return nil
		}
		if lo > hi {
			lo, hi = hi, lo
		}
		var minor []float64
		if n > 0 {
			ext := extendMajor(major, lo, hi)
			for i := 1; i < len(ext); i++ {
				a, b := t.Inverse(ext[i-1]), t.Inverse(ext[i])
				pts := vec.Linspace(a, b, n+2)
				for _, x := range pts[1 : len(pts)-1] {
					minor = append(minor, t.Transform(x))
				}
			}
			return clipMinor(minor, major, lo, hi)
		}

		var ks []float64
		if base >= 3 {
			for k := 2.0; k < base; k++ {
				ks = append(ks, k)
			}
		} else {
			ks = []float64{(1 + base) / 2}
		}
		first, last := math.Floor(lo), math.Ceil(hi)
		for e := first; e <= last; e++ {
			p := math.Pow(base, e)
			for _, k := range ks {
				minor = append(minor, t.Transform(k*p))
			}
		}
		return clipMinor(minor, major, lo, hi)
	}
}

// RegularMinorBreaks returns n minor breaks evenly spaced between each
// pair of adjacent major breaks. The majors are first extended by one
// step on either side so that [lo, hi] is fully covered. n <= 0 means 1.
// The result lies within [lo, hi] and never repeats a major break.
func RegularMinorBreaks(major []float64, lo, hi float64, n int) []float64 {
	if len(major) < 2 {
		return nil
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	if n <= 0 {
		n = 1
	}
	ext := extendMajor(major, lo, hi)
	var minor []float64
	for i := 1; i < len(ext); i++ {
		pts := vec.Linspace(ext[i-1], ext[i], n+2)
		minor = append(minor, pts[1:len(pts)-1]...)
	}
	return clipMinor(minor, major, lo, hi)
}

// extendMajor returns a sorted copy of major with one extra step added
// below and above if the majors don't already reach lo and hi.
func extendMajor(major []float64, lo, hi float64) []float64 {
	ext := slices.Clone(major)
	slices.Sort(ext)
	if len(ext) < 2 {
		return ext
	}
	if first := ext[0]; lo < first {
		ext = slices.Insert(ext, 0, first-(ext[1]-first))
	}
	if last := ext[len(ext)-1]; hi > last {
		ext = append(ext, last+(last-ext[len(ext)-2]))
	}
	return ext
}

// clipMinor sorts minor, removes duplicates and values equal to a major
// break, and keeps only values within [lo, hi].
func clipMinor(minor, major []float64, lo, hi float64) []float64 {
	slices.Sort(minor)
	minor = slices.Compact(minor)
	out := minor[:0]
	for _, x := range minor {
		if x < lo || x > hi || math.IsNaN(x) {
			continue
		}
		if slices.ContainsFunc(major, func(m float64) bool { return nearlyEqual(m, x) }) {
			continue
		}
		out = append(out, x)
	}
	return out
}

func nearlyEqual(a, b float64) bool {
	if a == b {
		return true
	}
	return math.Abs(a-b) <= logEps*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}
