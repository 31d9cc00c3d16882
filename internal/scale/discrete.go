// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scale

import (
	"math"
	"slices"

	"github.com/aclements/go-gg/table"
	"github.com/aclements/plotscale/internal/trans"
	"github.com/charmbracelet/log"
)

// DiscreteOptions configures a discrete scale. The zero value of every
// field selects the default.
type DiscreteOptions[T any] struct {
	// Name is the scale title. It defaults to the first aesthetic.
	Name string

	Limits Limits[string]
	Breaks Breaks[string]
	Labels Labels[string]

	// Expand is (mult, add) or (mult_lo, add_lo, mult_hi, add_hi).
	Expand []float64

	// Drop drops declared levels that don't occur in the data. It
	// defaults to true.
	Drop *bool
	// NARm ignores missing values when training.
	NARm bool
	// NATranslate maps missing values to NAValue. If false, rows with
	// missing or unmapped values are removed by MapFrame. It defaults
	// to true.
	NATranslate *bool

	// Palette returns the aesthetic values for n levels. It is
	// required for non-position scales.
	Palette func(n int) Palette[T]
	NAValue T

	Logger *log.Logger
}

// Discrete is a scale for categorical data. T is the type of the mapped
// aesthetic values.
//
// A discrete position scale maps levels to the positions 1..n and also
// accepts numeric data, which trains a separate continuous range and is
// passed through unmapped.
type Discrete[T any] struct {
	base

	limits      Limits[string]
	breaks      Breaks[string]
	labels      Labels[string]
	expand      []float64
	drop        bool
	naRm        bool
	naTranslate bool
	palette     func(n int) Palette[T]
	naValue     T

	position bool

	rng DiscreteRange
}

// NewDiscrete returns a discrete scale for the given aesthetics.
func NewDiscrete[T any](aes []Aes, opts DiscreteOptions[T]) (*Discrete[T], error) {
	return newDiscrete(aes, opts, false)
}

// NewPositionDiscrete returns a discrete scale for position aesthetics.
func NewPositionDiscrete(aes []Aes, opts DiscreteOptions[float64]) (*Discrete[float64], error) {
	return newDiscrete(aes, opts, true)
}

func newDiscrete[T any](aes []Aes, opts DiscreteOptions[T], position bool) (*Discrete[T], error) {
	s := &Discrete[T]{
		base:        newBase(opts.Name, aes, opts.Logger),
		limits:      opts.Limits,
		breaks:      opts.Breaks,
		labels:      opts.Labels,
		expand:      slices.Clone(opts.Expand),
		drop:        boolOr(opts.Drop, true),
		naRm:        opts.NARm,
		naTranslate: boolOr(opts.NATranslate, true),
		palette:     opts.Palette,
		naValue:     opts.NAValue,
		position:    position,
	}
	if position {
		if na, ok := any(&s.naValue).(*float64); ok {
			*na = math.NaN()
		}
	} else if s.palette == nil {
		return nil, configErrorf(s.name, "discrete scale for %v needs a palette", aes)
	}
	if err := checkLengths(s.name, s.breaks, s.labels); err != nil {
		return nil, err
	}
	if _, err := defaultExpansion(s.name, s.expand, []float64{0}, []float64{0}, true); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Discrete[T]) IsEmpty() bool {
	return s.rng.IsEmpty() && !s.limits.IsSet()
}

func (s *Discrete[T]) Reset() {
	s.rng.Reset()
}

func (s *Discrete[T]) HasGuide() bool {
	return s.position || !s.breaks.IsNone()
}

// Range returns the trained range of s.
func (s *Discrete[T]) Range() *DiscreteRange {
	return &s.rng
}

// Train adds the levels of f to the range of s.
func (s *Discrete[T]) Train(f Factor) {
	s.rng.Train(f, s.drop, s.naRm)
}

// TrainContinuous trains the continuous range of a position scale.
func (s *Discrete[T]) TrainContinuous(xs []float64) {
	s.rng.TrainContinuous(xs)
}

// Limits returns the levels of s in order.
//
// With no user limits, these are the trained levels, with the NA level
// last if it was trained. Fixed limits are used as given. Deferred
// limits are computed from the trained level names on every call.
func (s *Discrete[T]) Limits() []Category {
	switch {
	case s.IsEmpty():
		return nil
	case s.limits.fn != nil:
		return Cats(s.limits.fn(s.rng.Names())...)
	case s.limits.fixed != nil:
		return Cats(s.limits.fixed...)
	}
	return s.rng.Levels()
}

// names returns the names of the non-missing limits.
func (s *Discrete[T]) names() []string {
	var names []string
	for _, c := range s.Limits() {
		if c.Valid {
			names = append(names, c.Name)
		}
	}
	return names
}

// Map maps categorical values to aesthetic values. The palette is called
// once with the number of non-missing limits. A keyed palette is looked
// up by value whatever the limits. Missing values, values outside the
// limits, and values the palette doesn't cover map to the NA
// value if NATranslate is set. Otherwise they are reported as invalid in
// the returned mask.
//
// A position scale maps each level to its 1-based position in the
// limits, and anything else to NaN.
func (s *Discrete[T]) Map(xs []Category) (vals []T, valid []bool) {
	names := s.names()
	index := make(map[string]int, len(names))
	for i, n := range names {
		index[n] = i
	}
	var pal Palette[T]
	if !s.position {
		pal = s.palette(len(names))
	}

	vals = make([]T, len(xs))
	valid = make([]bool, len(xs))
	for i, x := range xs {
		if x.Valid {
			if pal.keyed != nil {
				// Keyed palettes match on the value itself, even
				// outside the limits.
				if v, ok := pal.keyed[x.Name]; ok {
					vals[i], valid[i] = v, true
					continue
				}
			} else if idx, ok := index[x.Name]; ok {
				if s.position {
					vals[i], valid[i] = any(float64(idx+1)).(T), true
					continue
				}
				if v, ok := pal.lookup(idx, x.Name); ok {
					vals[i], valid[i] = v, true
					continue
				}
			}
		}
		if s.naTranslate || s.position {
			vals[i], valid[i] = s.naValue, true
		}
	}
	return vals, valid
}

// Dimension returns the expanded extent of s in position units.
func (s *Discrete[T]) Dimension(e Expansion) (lo, hi float64) {
	rng, _ := s.ExpandLimits(s.Limits(), e, nil)
	return rng[0], rng[1]
}

// ExpandLimits expands the discrete positions (1, n) of limits by e. If
// s has also been trained on continuous values, that range is expanded
// by e as well and the result is the union of the two. coord is applied
// on top, and a nil coord is the identity.
func (s *Discrete[T]) ExpandLimits(limits []Category, e Expansion, coord trans.Trans) (rng, coordRng [2]float64) {
	n := 0
	for _, c := range limits {
		if c.Valid {
			n++
		}
	}
	clo, chi, haveCont := s.rng.Cont.Range()
	switch {
	case n == 0 && !haveCont:
		return expandContinuous(0, 1, e, coord)
	case n == 0:
		return expandContinuous(clo, chi, e, coord)
	case !haveCont:
		return expandContinuous(1, float64(n), e, coord)
	}
	drng, dcrng := expandContinuous(1, float64(n), e, coord)
	crng, ccrng := expandContinuous(clo, chi, e, coord)
	return union(drng, crng), union(dcrng, ccrng)
}

func union(a, b [2]float64) [2]float64 {
	return [2]float64{min(a[0], a[1], b[0], b[1]), max(a[0], a[1], b[0], b[1])}
}

// DefaultExpansion returns the expansion to use for s given default
// mult and add values. A scale's configured Expand takes precedence.
func (s *Discrete[T]) DefaultExpansion(mult, add []float64, expand bool) (Expansion, error) {
	return defaultExpansion(s.name, s.expand, mult, add, expand)
}

// Breaks returns the break keys of s that are within the limits.
func (s *Discrete[T]) Breaks() []string {
	names := s.names()
	var out []string
	for _, b := range s.breaksFor(names) {
		if slices.Contains(names, b) {
			out = append(out, b)
		}
	}
	return out
}

// breaksFor returns the break keys for the given limits, whether or not
// they are within the limits.
func (s *Discrete[T]) breaksFor(names []string) []string {
	switch s.breaks.kind {
	case specNone:
		return nil
	case specFunc:
		return s.breaks.fn(names)
	case specAt:
		return s.breaks.at
	}
	return names
}

// Labels returns a label for each break key. It returns a configuration
// error if the labels don't match the breaks one to one.
func (s *Discrete[T]) Labels(breaks []string) ([]string, error) {
	var labels []string
	switch s.labels.kind {
	case specNone:
		return nil, nil
	case specWaive:
		labels = slices.Clone(breaks)
	case specRename:
		labels = make([]string, len(breaks))
		for i, b := range breaks {
			if r, ok := s.labels.rename[b]; ok {
				labels[i] = r
			} else {
				labels[i] = b
			}
		}
	case specFunc:
		labels = s.labels.fn(breaks)
	case specAt:
		labels = s.labels.at
	}
	if len(labels) != len(breaks) {
		return nil, configErrorf(s.name, "%d breaks but %d labels", len(breaks), len(labels))
	}
	return labels, nil
}

// View returns a snapshot of s using the default expansion.
func (s *Discrete[T]) View() (*View, error) {
	e, err := s.DefaultExpansion([]float64{discreteExpansion.MultLo}, []float64{discreteExpansion.AddLo}, true)
	if err != nil {
		return nil, err
	}
	limits := s.Limits()
	rng, coordRng := s.ExpandLimits(limits, e, nil)
	return s.viewWith(limits, rng, coordRng)
}

// ViewWith returns a snapshot of s for the given limits and range.
func (s *Discrete[T]) ViewWith(limits []Category, rng [2]float64) (*View, error) {
	return s.viewWith(limits, rng, rng)
}

func (s *Discrete[T]) viewWith(limits []Category, rng, coordRng [2]float64) (*View, error) {
	var names []string
	pos := make(map[string]int)
	for _, c := range limits {
		if c.Valid {
			names = append(names, c.Name)
			pos[c.Name] = len(names)
		}
	}
	keys := s.breaksFor(names)
	labels, err := s.Labels(keys)
	if err != nil {
		return nil, err
	}

	v := &View{
		Name:       s.name,
		Aesthetics: s.Aesthetics(),
		Levels:     slices.Clone(limits),
		Range:      rng,
		CoordRange: coordRng,
	}
	for i, k := range keys {
		p, ok := pos[k]
		if !ok {
			continue
		}
		v.Breaks = append(v.Breaks, float64(p))
		v.BreakKeys = append(v.BreakKeys, k)
		if labels != nil {
			v.Labels = append(v.Labels, labels[i])
		}
	}
	return v, nil
}

func (s *Discrete[T]) CloneScale() Scale {
	c := *s
	c.aes = slices.Clone(s.aes)
	c.expand = slices.Clone(s.expand)
	c.rng = s.rng.clone()
	return &c
}

func (s *Discrete[T]) MergeRange(o Scale) error {
	src, err := mergeSource(s, o)
	if err != nil {
		return err
	}
	s.rng.Merge(&src.rng)
	return nil
}

// TransformFrame returns t unchanged. Discrete scales have no
// transform.
func (s *Discrete[T]) TransformFrame(t *table.Table) (*table.Table, error) {
	return t, nil
}

func (s *Discrete[T]) TrainFrame(t *table.Table) error {
	for _, name := range s.columns(t) {
		col := t.Column(name)
		if f, ok := discreteColumn(col); ok {
			s.Train(f)
			continue
		}
		if xs, ok := numericColumn(col); ok && s.position {
			s.TrainContinuous(xs)
			continue
		}
		return s.errorf("discrete scale cannot train on %s column of type %T", name, col)
	}
	return nil
}

func (s *Discrete[T]) MapFrame(t *table.Table) (*table.Table, error) {
	if t.Len() == 0 {
		return t, nil
	}
	repl := make(map[string]table.Slice)
	var drop []bool
	for _, name := range s.columns(t) {
		col := t.Column(name)
		f, ok := discreteColumn(col)
		if !ok {
			if _, ok := numericColumn(col); ok && s.position {
				// Continuous values on a discrete position
				// scale are already positions.
				continue
			}
			return nil, s.errorf("discrete scale cannot map %s column of type %T", name, col)
		}
		vals, valid := s.Map(f.Values)
		repl[name] = vals
		for i, ok := range valid {
			if !ok {
				if drop == nil {
					drop = make([]bool, t.Len())
				}
				drop[i] = true
			}
		}
	}
	if len(repl) == 0 {
		return t, nil
	}
	var keep []int
	if drop != nil {
		keep = make([]int, 0, t.Len())
		for i, d := range drop {
			if !d {
				keep = append(keep, i)
			}
		}
		s.logger.Debug("removed rows containing missing values", "scale", s.name, "rows", t.Len()-len(keep))
	}
	return rebuild(t, repl, keep), nil
}
