// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package trans implements invertible numeric transformations for scales,
// together with the break, minor break, and label generators that go with
// each transformation.
package trans

import (
	"fmt"
	"math"
	"slices"
	"sync"
)

// A Trans is an invertible mapping from data space to transform space.
//
// Trans values carry no per-scale state and may be shared freely between
// scales.
type Trans interface {
	// Name returns the registered name of this transform, such as
	// "log10".
	Name() string

	// Transform maps x from data space to transform space. Values
	// outside the domain map to NaN.
	Transform(x float64) float64
	// Inverse maps y from transform space back to data space.
	Inverse(y float64) float64

	// Domain returns the closed interval of data space values that
	// Transform accepts.
	Domain() (lo, hi float64)

	// Breaks returns at most about n "nice" major breaks covering the
	// data space interval [lo, hi]. The result is in data space.
	Breaks(lo, hi float64, n int) []float64
	// MinorBreaks returns minor breaks between the given major breaks.
	// major, lo, and hi are all in transform space, as is the result.
	// n is the number of minor breaks to place between each pair of
	// major breaks; n <= 0 selects the transform's default.
	MinorBreaks(major []float64, lo, hi float64, n int) []float64
	// Format returns a label for each data space break.
	Format(breaks []float64) []string
}

// A SliceTransformer is a Trans that can also transform whole slices at
// once. Unlike the element-wise methods, the slice methods are strict:
// they fail if any finite input lies outside the domain.
type SliceTransformer interface {
	TransformSlice(xs []float64) ([]float64, error)
	InverseSlice(ys []float64) ([]float64, error)
}

// A DomainError reports a value outside a transform's domain.
type DomainError struct {
	Trans string
	Value float64
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s transform: %g is outside the domain", e.Trans, e.Value)
}

// DefaultBreaks is the default target number of major breaks.
const DefaultBreaks = 5

// funcTrans is a Trans built from its component functions.
type funcTrans struct {
	name     string
	fwd, inv func(float64) float64
	lo, hi   float64

	breaks func(lo, hi float64, n int) []float64
	minor  func(t Trans, major []float64, lo, hi float64, n int) []float64
	format func(breaks []float64) []string
}

func (t *funcTrans) Name() string {
	return t.name
}

func (t *funcTrans) String() string {
	return t.name
}

func (t *funcTrans) Domain() (lo, hi float64) {
	return t.lo, t.hi
}

func (t *funcTrans) Format(breaks []float64) []string {
	return t.format(breaks)
}

func (t *funcTrans) Transform(x float64) float64 {
	if x < t.lo || x > t.hi {
		return math.NaN()
	}
	return t.fwd(x)
}

func (t *funcTrans) Inverse(y float64) float64 {
	return t.inv(y)
}

func (t *funcTrans) TransformSlice(xs []float64) ([]float64, error) {
	out := make([]float64, len(xs))
	for i, x := range xs {
		if x < t.lo || x > t.hi {
			return nil, &DomainError{t.name, x}
		}
		out[i] = t.fwd(x)
	}
	return out, nil
}

func (t *funcTrans) InverseSlice(ys []float64) ([]float64, error) {
	out := make([]float64, len(ys))
	for i, y := range ys {
		out[i] = t.inv(y)
	}
	return out, nil
}

func (t *funcTrans) Breaks(lo, hi float64, n int) []float64 {
	if lo > hi {
		lo, hi = hi, lo
	}
	if n <= 0 {
		n = DefaultBreaks
	}
	return t.breaks(lo, hi, n)
}

func (t *funcTrans) MinorBreaks(major []float64, lo, hi float64, n int) []float64 {
	return t.minor(t, major, lo, hi, n)
}

// regularMinor adapts RegularMinorBreaks to the funcTrans minor hook.
func regularMinor(_ Trans, major []float64, lo, hi float64, n int) []float64 {
	return RegularMinorBreaks(major, lo, hi, n)
}

// Identity returns the identity transform.
func Identity() Trans {
	return identity
}

var identity Trans = &funcTrans{
	name:   "identity",
	fwd:    func(x float64) float64 { return x },
	inv:    func(y float64) float64 { return y },
	lo:     math.Inf(-1),
	hi:     math.Inf(1),
	breaks: ExtendedBreaks,
	minor:  regularMinor,
	format: FormatNumbers,
}

// Log returns a logarithmic transform in the given base. Bases 10 and 2
// are named "log10" and "log2", base e is named "log".
func Log(base float64) Trans {
	name := fmt.Sprintf("log-%g", base)
	fwd := func(x float64) float64 { return math.Log(x) / math.Log(base) }
	switch base {
	case 10:
		name, fwd = "log10", math.Log10
	case 2:
		name, fwd = "log2", math.Log2
	case math.E:
		name, fwd = "log", math.Log
	}
	return &funcTrans{
		name:   name,
		fwd:    fwd,
		inv:    func(y float64) float64 { return math.Pow(base, y) },
		lo:     0,
		hi:     math.Inf(1),
		breaks: LogBreaks(base),
		minor:  logMinor(base),
		format: FormatNumbers,
	}
}

// Log1p returns the transform log(1+x).
func Log1p() Trans {
	return &funcTrans{
		name:   "log1p",
		fwd:    math.Log1p,
		inv:    math.Expm1,
		lo:     -1,
		hi:     math.Inf(1),
		breaks: ExtendedBreaks,
		minor:  regularMinor,
		format: FormatNumbers,
	}
}

// Exp returns the exponential transform, the inverse of the natural log.
func Exp() Trans {
	return &funcTrans{
		name:   "exp",
		fwd:    math.Exp,
		inv:    math.Log,
		lo:     math.Inf(-1),
		hi:     math.Inf(1),
		breaks: ExtendedBreaks,
		minor:  regularMinor,
		format: FormatNumbers,
	}
}

// Sqrt returns the square root transform.
func Sqrt() Trans {
	return &funcTrans{
		name:   "sqrt",
		fwd:    math.Sqrt,
		inv:    func(y float64) float64 { return y * y },
		lo:     0,
		hi:     math.Inf(1),
		breaks: ExtendedBreaks,
		minor:  regularMinor,
		format: FormatNumbers,
	}
}

// Reverse returns the transform x -> -x, which flips an axis.
func Reverse() Trans {
	return &funcTrans{
		name:   "reverse",
		fwd:    func(x float64) float64 { return -x },
		inv:    func(y float64) float64 { return -y },
		lo:     math.Inf(-1),
		hi:     math.Inf(1),
		breaks: ExtendedBreaks,
		minor:  regularMinor,
		format: FormatNumbers,
	}
}

// Symlog returns the symmetric log transform sign(x)*log(1+|x|), which is
// linear near zero and logarithmic away from it.
func Symlog() Trans {
	return &funcTrans{
		name: "symlog",
		fwd: func(x float64) float64 {
			return math.Copysign(math.Log1p(math.Abs(x)), x)
		},
		inv: func(y float64) float64 {
			return math.Copysign(math.Expm1(math.Abs(y)), y)
		},
		lo:     math.Inf(-1),
		hi:     math.Inf(1),
		breaks: ExtendedBreaks,
		minor:  regularMinor,
		format: FormatNumbers,
	}
}

var registry = sync.OnceValue(func() map[string]Trans {
	m := make(map[string]Trans)
	for _, t := range []Trans{
		Identity(), Log(10), Log(2), Log(math.E), Log1p(), Exp(),
		Sqrt(), Reverse(), Symlog(), Datetime(nil),
	} {
		m[t.Name()] = t
	}
	return m
})

// Get returns the registered transform with the given name.
func Get(name string) (Trans, error) {
	if name == "" {
		return Identity(), nil
	}
	t, ok := registry()[name]
	if !ok {
		return nil, fmt.Errorf("unknown transform %q", name)
	}
	return t, nil
}

// Names returns the names of all registered transforms in sorted order.
func Names() []string {
	var names []string
	for name := range registry() {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
