// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"cmp"
	"strconv"

	"golang.org/x/perf/benchmath"
	"golang.org/x/perf/benchproc"
)

// A point holds one value for each aesthetic of a plot.
type point struct {
	aesMap[value]
}

// A value is what a point holds for one aesthetic. Projected values are
// categories, and also numbers when their key parses as one. The
// dependent variable is a number that may summarize several samples or
// be a ratio against a baseline.
type value struct {
	kinds valueKinds
	key   benchproc.Key // if kindDiscrete
	val   float64       // if kindContinuous

	summary *benchmath.Summary // if kindSummary
	denom   benchproc.Key      // if kindRatio and kindDiscrete
}

type valueKinds uint8

const (
	kindDiscrete valueKinds = 1 << iota
	kindContinuous
	kindSummary // Implies kindContinuous
	kindRatio   // Implies kindContinuous or kindDiscrete

	kindAll = kindDiscrete | kindContinuous | kindSummary | kindRatio
)

func category(key benchproc.Key) value {
	return value{kinds: kindDiscrete, key: key}
}

func number(x float64) value {
	return value{kinds: kindContinuous, val: x}
}

// summarized returns a number value for s.
func summarized(s benchmath.Summary, kinds valueKinds) value {
	return value{kinds: kindContinuous | kindSummary | kinds, val: s.Center, summary: &s}
}

// against returns category v as a ratio against category base.
func (v value) against(base value) value {
	v.kinds |= kindRatio
	v.denom = base.key
	return v
}

// label returns the text v shows on a discrete scale.
func (v value) label() string {
	switch {
	case v.kinds&kindDiscrete == 0:
		return strconv.FormatFloat(v.val, 'g', -1, 64)
	case v.kinds&kindRatio != 0:
		return v.key.StringValues() + " vs " + v.denom.StringValues()
	}
	return v.key.StringValues()
}

// compare orders values by category when both have one, then by number.
// Otherwise categories sort before numbers.
func (v value) compare(w value) int {
	both := v.kinds & w.kinds
	switch {
	case both&kindDiscrete != 0:
		if c := compareKeys(v.key, w.key); c != 0 || both&kindRatio == 0 {
			return c
		}
		return compareKeys(v.denom, w.denom)
	case both&kindContinuous != 0:
		return cmp.Compare(v.val, w.val)
	}
	return cmp.Compare(v.rank(), w.rank())
}

func (v value) rank() int {
	switch {
	case v.kinds&kindDiscrete != 0:
		return 0
	case v.kinds&kindContinuous != 0:
		return 1
	}
	return 2
}

// compareKeys orders keys by first observation.
func compareKeys(a, b benchproc.Key) int {
	switch {
	case a == b:
		return 0
	case a.Less(b):
		return -1
	}
	return 1
}
