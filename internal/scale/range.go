// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scale

import (
	"math"
	"slices"

	"github.com/aclements/go-moremath/stats"
)

// A ContinuousRange accumulates the bounds of the finite values it is
// trained on. It never shrinks except by Reset.
type ContinuousRange struct {
	lo, hi  float64
	trained bool
}

// Train widens r to cover the finite values in xs. NaN and infinite
// values are ignored.
func (r *ContinuousRange) Train(xs []float64) {
	finite := make([]float64, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) && !math.IsInf(x, 0) {
			finite = append(finite, x)
		}
	}
	if len(finite) == 0 {
		return
	}
	lo, hi := stats.Bounds(finite)
	if !r.trained {
		r.lo, r.hi, r.trained = lo, hi, true
		return
	}
	r.lo, r.hi = min(r.lo, lo), max(r.hi, hi)
}

// Range returns the trained bounds. ok is false if r is untrained.
func (r *ContinuousRange) Range() (lo, hi float64, ok bool) {
	return r.lo, r.hi, r.trained
}

func (r *ContinuousRange) IsEmpty() bool {
	return !r.trained
}

func (r *ContinuousRange) Reset() {
	*r = ContinuousRange{}
}

// Merge widens r to cover o.
func (r *ContinuousRange) Merge(o *ContinuousRange) {
	if o.trained {
		r.Train([]float64{o.lo, o.hi})
	}
}

// A Category is a categorical value that may be missing. The zero
// Category is the missing value.
type Category struct {
	Name  string
	Valid bool
}

// Cat returns the valid Category name.
func Cat(name string) Category {
	return Category{name, true}
}

// NA is the missing Category.
var NA = Category{}

func (c Category) String() string {
	if !c.Valid {
		return "NA"
	}
	return c.Name
}

// Cats converts names to valid Categories.
func Cats(names ...string) []Category {
	out := make([]Category, len(names))
	for i, n := range names {
		out[i] = Cat(n)
	}
	return out
}

// A Factor is a column of categorical values, optionally with a
// declared order of levels. A nil Levels means the levels are unordered
// and are sorted by name.
type Factor struct {
	Levels []string
	Values []Category
}

// A DiscreteRange accumulates the distinct levels of the categorical
// values it is trained on, plus the bounds of any continuous values
// trained on the same scale.
type DiscreteRange struct {
	levels  []string
	na      bool
	ordered bool

	// Cont is the range of continuous values mixed into a discrete
	// position scale.
	Cont ContinuousRange
}

// Train adds the levels of f to r.
//
// If f declares a level order, r keeps that order and appends any
// levels it has not seen. Otherwise the observed levels are sorted and
// merged with r's levels: sorted if r is unordered, appended if r
// already has a declared order. drop restricts declared levels to
// those that occur in f. If naRm is false, a missing value in f adds
// the NA level, which is always last.
func (r *DiscreteRange) Train(f Factor, drop, naRm bool) {
	if len(f.Values) == 0 && f.Levels == nil {
		return
	}
	present := make(map[string]bool)
	hasNA := false
	for _, v := range f.Values {
		if v.Valid {
			present[v.Name] = true
		} else {
			hasNA = true
		}
	}
	if hasNA && !naRm {
		r.na = true
	}

	if f.Levels == nil {
		observed := make([]string, 0, len(present))
		for name := range present {
			observed = append(observed, name)
		}
		slices.Sort(observed)
		r.addLevels(observed, !r.ordered)
		return
	}

	levels := make([]string, 0, len(f.Levels))
	declared := make(map[string]bool, len(f.Levels))
	for _, l := range f.Levels {
		declared[l] = true
		if !drop || present[l] {
			levels = append(levels, l)
		}
	}
	// Values outside the declared levels still count.
	var extra []string
	for name := range present {
		if !declared[name] {
			extra = append(extra, name)
		}
	}
	slices.Sort(extra)
	levels = append(levels, extra...)
	r.addLevels(levels, false)
	r.ordered = true
}

// addLevels appends the levels not already in r, then sorts r's levels
// if sorted is set.
func (r *DiscreteRange) addLevels(levels []string, sorted bool) {
	have := make(map[string]bool, len(r.levels))
	for _, l := range r.levels {
		have[l] = true
	}
	for _, l := range levels {
		if !have[l] {
			have[l] = true
			r.levels = append(r.levels, l)
		}
	}
	if sorted {
		slices.Sort(r.levels)
	}
}

// TrainContinuous trains r's continuous sub-range.
func (r *DiscreteRange) TrainContinuous(xs []float64) {
	r.Cont.Train(xs)
}

// Levels returns the levels of r in order. The NA level, if present,
// is last.
func (r *DiscreteRange) Levels() []Category {
	out := Cats(r.levels...)
	if r.na {
		out = append(out, NA)
	}
	return out
}

// Names returns the names of r's non-missing levels.
func (r *DiscreteRange) Names() []string {
	return slices.Clone(r.levels)
}

// IsEmpty reports whether r has seen neither levels nor continuous
// values.
func (r *DiscreteRange) IsEmpty() bool {
	return len(r.levels) == 0 && !r.na && r.Cont.IsEmpty()
}

func (r *DiscreteRange) Reset() {
	*r = DiscreteRange{}
}

// Merge adds o's levels and continuous range to r using the same union
// rules as Train.
func (r *DiscreteRange) Merge(o *DiscreteRange) {
	r.addLevels(o.levels, !r.ordered && !o.ordered)
	r.ordered = r.ordered || o.ordered
	r.na = r.na || o.na
	r.Cont.Merge(&o.Cont)
}

func (r *DiscreteRange) clone() DiscreteRange {
	c := *r
	c.levels = slices.Clone(r.levels)
	return c
}
