// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scale

import (
	"math"
	"slices"

	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-moremath/vec"
	"github.com/aclements/plotscale/internal/trans"
	"github.com/charmbracelet/log"
)

// ContinuousOptions configures a continuous scale. The zero value of
// every field selects the default.
type ContinuousOptions[T any] struct {
	// Name is the scale title. It defaults to the first aesthetic.
	Name string

	// Trans is the transform between data space and the scale's
	// space. nil means identity.
	Trans trans.Trans

	Limits      Limits[float64]
	Breaks      Breaks[float64]
	MinorBreaks MinorBreaks
	Labels      Labels[float64]
	// NBreaks is the target number of default major breaks.
	NBreaks int

	// Expand is (mult, add) or (mult_lo, add_lo, mult_hi, add_hi).
	Expand []float64

	// OOB handles rescaled values outside [0, 1]. It defaults to
	// Censor.
	OOB OOB
	// Rescaler maps the limits onto [0, 1]. It defaults to Rescale.
	Rescaler Rescaler

	// Palette maps sorted, distinct rescaled values to aesthetic
	// values. It is required for non-position scales.
	Palette func(xs []float64) []T
	// NAValue is the result of mapping a missing or out of bounds
	// value. Position scales always use NaN.
	NAValue T

	Logger *log.Logger
}

// Continuous is a scale for numeric data. T is the type of the mapped
// aesthetic values, such as color.Color for a color gradient.
type Continuous[T any] struct {
	base

	trans   trans.Trans
	limits  Limits[float64]
	fixed   [2]float64 // limits.fixed in transform space
	breaks  Breaks[float64]
	minor   MinorBreaks
	labels  Labels[float64]
	nBreaks int
	expand  []float64
	oob     OOB
	rescale Rescaler
	palette func(xs []float64) []T
	naValue T

	position bool
	// specialised is the name of the transform this scale was built
	// around, if any.
	specialised string

	rng ContinuousRange
}

// NewContinuous returns a continuous scale for the given aesthetics.
func NewContinuous[T any](aes []Aes, opts ContinuousOptions[T]) (*Continuous[T], error) {
	return newContinuous(aes, opts, false)
}

// NewPositionContinuous returns a continuous scale for position
// aesthetics. Mapping censors values outside the limits rather than
// calling a palette.
func NewPositionContinuous(aes []Aes, opts ContinuousOptions[float64]) (*Continuous[float64], error) {
	return newContinuous(aes, opts, true)
}

func newContinuous[T any](aes []Aes, opts ContinuousOptions[T], position bool) (*Continuous[T], error) {
	s := &Continuous[T]{
		base:     newBase(opts.Name, aes, opts.Logger),
		trans:    opts.Trans,
		limits:   opts.Limits,
		breaks:   opts.Breaks,
		minor:    opts.MinorBreaks,
		labels:   opts.Labels,
		nBreaks:  opts.NBreaks,
		expand:   slices.Clone(opts.Expand),
		oob:      opts.OOB,
		rescale:  opts.Rescaler,
		palette:  opts.Palette,
		naValue:  opts.NAValue,
		position: position,
	}
	if s.trans == nil {
		s.trans = trans.Identity()
	}
	if s.nBreaks <= 0 {
		s.nBreaks = trans.DefaultBreaks
	}
	if s.oob == nil {
		s.oob = Censor
	}
	if s.rescale == nil {
		s.rescale = Rescale
	}
	if position {
		if na, ok := any(&s.naValue).(*float64); ok {
			*na = math.NaN()
		}
	} else if s.palette == nil {
		return nil, configErrorf(s.name, "continuous scale for %v needs a palette", aes)
	}

	if err := checkLengths(s.name, s.breaks, s.labels); err != nil {
		return nil, err
	}
	if s.limits.fixed != nil && len(s.limits.fixed) != 2 {
		return nil, configErrorf(s.name, "continuous limits must have 2 values, got %d", len(s.limits.fixed))
	}
	if _, err := defaultExpansion(s.name, s.expand, []float64{0}, []float64{0}, true); err != nil {
		return nil, err
	}
	s.transformFixed()
	return s, nil
}

// transformFixed recomputes the fixed limits in transform space.
func (s *Continuous[T]) transformFixed() {
	if s.limits.fixed == nil {
		return
	}
	lo, hi := s.trans.Transform(s.limits.fixed[0]), s.trans.Transform(s.limits.fixed[1])
	if lo > hi {
		lo, hi = hi, lo
	}
	s.fixed = [2]float64{lo, hi}
}

// Trans returns the scale's transform.
func (s *Continuous[T]) Trans() trans.Trans {
	return s.trans
}

// SetTrans changes the scale's transform. Changing the transform of a
// scale built around a specific transform, such as a datetime scale,
// is allowed but logs a warning.
func (s *Continuous[T]) SetTrans(t trans.Trans) {
	if t == nil {
		t = trans.Identity()
	}
	if s.specialised != "" && t.Name() != s.specialised {
		s.logger.Warn("changing the transform of a specialised scale", "scale", s.name, "from", s.specialised, "to", t.Name())
	}
	s.trans = t
	s.transformFixed()
}

func (s *Continuous[T]) IsEmpty() bool {
	return s.rng.IsEmpty() && !s.limits.IsSet()
}

func (s *Continuous[T]) Reset() {
	s.rng.Reset()
}

func (s *Continuous[T]) HasGuide() bool {
	return s.position || !s.breaks.IsNone()
}

// Range returns the trained range of s in transform space.
func (s *Continuous[T]) Range() (lo, hi float64, ok bool) {
	return s.rng.Range()
}

// Transform maps data space values to transform space. It uses the
// transform's batch path if it has one, falling back to transforming
// each value on its own if that fails. Values outside the transform's
// domain become NaN.
func (s *Continuous[T]) Transform(xs []float64) []float64 {
	if st, ok := s.trans.(trans.SliceTransformer); ok {
		out, err := st.TransformSlice(xs)
		if err == nil {
			return out
		}
		s.logger.Debug("batch transform failed; transforming element-wise", "scale", s.name, "err", err)
	}
	return vec.Map(s.trans.Transform, xs)
}

// Inverse maps transform space values back to data space.
func (s *Continuous[T]) Inverse(ys []float64) []float64 {
	if st, ok := s.trans.(trans.SliceTransformer); ok {
		out, err := st.InverseSlice(ys)
		if err == nil {
			return out
		}
		s.logger.Debug("batch inverse failed; inverting element-wise", "scale", s.name, "err", err)
	}
	return vec.Map(s.trans.Inverse, ys)
}

// Train widens the range of s to cover xs, which must already be in
// transform space.
func (s *Continuous[T]) Train(xs []float64) {
	s.rng.Train(xs)
}

// Limits returns the limits of s in transform space.
//
// With no user limits, these are the trained range, or (0, 1) if s is
// untrained. Fixed limits are used as given, except that a NaN end
// falls back to the trained range. Deferred limits are computed from
// the trained range in data space on every call.
func (s *Continuous[T]) Limits() (lo, hi float64) {
	if s.IsEmpty() {
		return 0, 1
	}
	rlo, rhi, ok := s.rng.Range()
	if !ok {
		rlo, rhi = 0, 1
	}
	switch {
	case s.limits.fn != nil:
		if !ok {
			return 0, 1
		}
		out := s.limits.fn([]float64{s.trans.Inverse(rlo), s.trans.Inverse(rhi)})
		if len(out) != 2 {
			s.logger.Warn("limits function returned wrong number of values; using the data range", "scale", s.name, "n", len(out))
			return rlo, rhi
		}
		return s.trans.Transform(out[0]), s.trans.Transform(out[1])
	case s.limits.fixed != nil:
		lo, hi = s.fixed[0], s.fixed[1]
		if math.IsNaN(lo) {
			lo = rlo
		}
		if math.IsNaN(hi) {
			hi = rhi
		}
		return lo, hi
	}
	return rlo, rhi
}

// Map maps transform space values to aesthetic values.
//
// For non-position scales, values are rescaled from the limits onto
// [0, 1], passed through the OOB function, and the sorted distinct
// finite results are given to the palette in a single call. Values the
// palette doesn't cover map to the NA value. For position scales,
// values are passed through the OOB function against the limits.
func (s *Continuous[T]) Map(xs []float64) []T {
	lo, hi := s.Limits()
	if s.position {
		out := make([]T, len(xs))
		for i, x := range s.oob(xs, lo, hi) {
			if math.IsNaN(x) {
				out[i] = s.naValue
			} else {
				out[i] = any(x).(T)
			}
		}
		return out
	}

	scaled := s.oob(s.rescale(xs, lo, hi), 0, 1)
	uniq := make([]float64, 0, len(scaled))
	for _, x := range scaled {
		if !math.IsNaN(x) && !math.IsInf(x, 0) {
			uniq = append(uniq, x)
		}
	}
	slices.Sort(uniq)
	uniq = slices.Compact(uniq)

	mapped := make(map[float64]T, len(uniq))
	if len(uniq) > 0 {
		pal := s.palette(uniq)
		for i, x := range uniq {
			if i < len(pal) {
				mapped[x] = pal[i]
			}
		}
	}
	out := make([]T, len(xs))
	for i, x := range scaled {
		v, ok := mapped[x]
		if !ok {
			v = s.naValue
		}
		out[i] = v
	}
	return out
}

// Dimension returns the limits expanded by e.
func (s *Continuous[T]) Dimension(e Expansion) (lo, hi float64) {
	lo, hi = s.Limits()
	return expandRange(lo, hi, e)
}

// ExpandLimits expands limits (in transform space) by e, with coord
// applied on top of the scale's transform. It returns the expanded
// range in transform space and in coord space. A nil coord is the
// identity.
func (s *Continuous[T]) ExpandLimits(limits [2]float64, e Expansion, coord trans.Trans) (rng, coordRng [2]float64) {
	return expandContinuous(limits[0], limits[1], e, coord)
}

// DefaultExpansion returns the expansion to use for s given default
// mult and add values. A scale's configured Expand takes precedence.
func (s *Continuous[T]) DefaultExpansion(mult, add []float64, expand bool) (Expansion, error) {
	return defaultExpansion(s.name, s.expand, mult, add, expand)
}

// Breaks returns the major breaks within the limits, in transform
// space.
func (s *Continuous[T]) Breaks() []float64 {
	lo, hi := s.Limits()
	return s.breaksIn(lo, hi, true)
}

// breaksIn computes the major breaks for limits [lo, hi] in transform
// space. Breaks are computed in data space and transformed back. If
// strict is set, breaks outside [lo, hi] are dropped.
func (s *Continuous[T]) breaksIn(lo, hi float64, strict bool) []float64 {
	if s.breaks.kind == specNone {
		return nil
	}
	if zeroRange(lo, hi) {
		return []float64{lo}
	}
	dlo, dhi := s.trans.Inverse(lo), s.trans.Inverse(hi)
	if dlo > dhi {
		dlo, dhi = dhi, dlo
	}
	var data []float64
	switch s.breaks.kind {
	case specWaive:
		data = s.trans.Breaks(dlo, dhi, s.nBreaks)
	case specFunc:
		data = s.breaks.fn([]float64{dlo, dhi})
	case specAt:
		data = s.breaks.at
	}
	out := vec.Map(s.trans.Transform, data)
	if strict {
		out = within(out, lo, hi)
	}
	return out
}

// MinorBreaks returns the minor breaks within the limits, in transform
// space.
func (s *Continuous[T]) MinorBreaks() []float64 {
	lo, hi := s.Limits()
	return s.minorIn(s.Breaks(), lo, hi)
}

func (s *Continuous[T]) minorIn(major []float64, lo, hi float64) []float64 {
	switch s.minor.kind {
	case specNone:
		return nil
	case specWaive:
		return s.trans.MinorBreaks(major, lo, hi, 0)
	case specCount:
		return s.trans.MinorBreaks(major, lo, hi, s.minor.n)
	case specAt:
		return vec.Map(s.trans.Transform, s.minor.at)
	case specFunc:
		dlo, dhi := s.trans.Inverse(lo), s.trans.Inverse(hi)
		if dlo > dhi {
			dlo, dhi = dhi, dlo
		}
		var out []float64
		for _, x := range vec.Map(s.trans.Transform, s.minor.fn([]float64{dlo, dhi})) {
			if !slices.ContainsFunc(major, func(m float64) bool { return nearlyEqual(m, x) }) {
				out = append(out, x)
			}
		}
		return out
	}
	return nil
}

// Labels returns a label for each break, given in transform space. It
// returns a configuration error if the labels don't match the breaks
// one to one.
func (s *Continuous[T]) Labels(breaks []float64) ([]string, error) {
	if s.labels.kind == specNone {
		return nil, nil
	}
	data := vec.Map(s.trans.Inverse, breaks)
	var labels []string
	switch s.labels.kind {
	case specWaive:
		labels = s.trans.Format(data)
	case specRename:
		labels = s.trans.Format(data)
		for i, l := range labels {
			if r, ok := s.labels.rename[l]; ok {
				labels[i] = r
			}
		}
	case specFunc:
		labels = s.labels.fn(data)
	case specAt:
		labels = s.labels.at
	}
	if len(labels) != len(breaks) {
		return nil, configErrorf(s.name, "%d breaks but %d labels", len(breaks), len(labels))
	}
	return labels, nil
}

// View returns a snapshot of s using the default expansion.
func (s *Continuous[T]) View() (*View, error) {
	e, err := s.DefaultExpansion([]float64{continuousExpansion.MultLo}, []float64{continuousExpansion.AddLo}, true)
	if err != nil {
		return nil, err
	}
	lo, hi := s.Limits()
	rng, coordRng := s.ExpandLimits([2]float64{lo, hi}, e, nil)
	return s.viewWith([2]float64{lo, hi}, rng, coordRng)
}

// ViewWith returns a snapshot of s for the given limits and range, both
// in transform space.
func (s *Continuous[T]) ViewWith(limits, rng [2]float64) (*View, error) {
	return s.viewWith(limits, rng, rng)
}

func (s *Continuous[T]) viewWith(limits, rng, coordRng [2]float64) (*View, error) {
	var breaks []float64
	for _, x := range s.breaksIn(rng[0], rng[1], false) {
		if !math.IsNaN(x) && !math.IsInf(x, 0) {
			breaks = append(breaks, x)
		}
	}
	minor := within(s.minorIn(breaks, rng[0], rng[1]), rng[0], rng[1])
	labels, err := s.Labels(breaks)
	if err != nil {
		return nil, err
	}

	// Keep only the breaks and labels within the range.
	var major []float64
	var majorLabels []string
	for i, x := range breaks {
		if inRange(x, rng[0], rng[1]) {
			major = append(major, x)
			if labels != nil {
				majorLabels = append(majorLabels, labels[i])
			}
		}
	}

	return &View{
		Name:        s.name,
		Aesthetics:  s.Aesthetics(),
		Trans:       s.trans.Name(),
		Limits:      limits,
		Range:       rng,
		CoordRange:  coordRng,
		Breaks:      major,
		MinorBreaks: minor,
		Labels:      majorLabels,
	}, nil
}

func (s *Continuous[T]) CloneScale() Scale {
	c := *s
	c.aes = slices.Clone(s.aes)
	c.expand = slices.Clone(s.expand)
	return &c
}

func (s *Continuous[T]) MergeRange(o Scale) error {
	src, err := mergeSource(s, o)
	if err != nil {
		return err
	}
	s.rng.Merge(&src.rng)
	return nil
}

func (s *Continuous[T]) TransformFrame(t *table.Table) (*table.Table, error) {
	if t.Len() == 0 {
		return t, nil
	}
	repl := make(map[string]table.Slice)
	for _, name := range s.columns(t) {
		xs, ok := numericColumn(t.Column(name))
		if !ok {
			return nil, s.errorf("cannot transform %s column of type %T", name, t.Column(name))
		}
		repl[name] = s.Transform(xs)
	}
	if len(repl) == 0 {
		return t, nil
	}
	return rebuild(t, repl, nil), nil
}

func (s *Continuous[T]) TrainFrame(t *table.Table) error {
	for _, name := range s.columns(t) {
		xs, ok := numericColumn(t.Column(name))
		if !ok {
			return s.errorf("continuous scale cannot train on %s column of type %T", name, t.Column(name))
		}
		s.Train(xs)
	}
	return nil
}

func (s *Continuous[T]) MapFrame(t *table.Table) (*table.Table, error) {
	if t.Len() == 0 {
		return t, nil
	}
	repl := make(map[string]table.Slice)
	for _, name := range s.columns(t) {
		xs, ok := numericColumn(t.Column(name))
		if !ok {
			return nil, s.errorf("continuous scale cannot map %s column of type %T", name, t.Column(name))
		}
		repl[name] = s.Map(xs)
	}
	if len(repl) == 0 {
		return t, nil
	}
	return rebuild(t, repl, nil), nil
}

// rangeTol is the relative slack allowed when testing whether a break
// lies within a range, to absorb rounding in transforms.
const rangeTol = 1e-10

func inRange(x, lo, hi float64) bool {
	if lo > hi {
		lo, hi = hi, lo
	}
	tol := rangeTol * math.Max(hi-lo, math.Max(math.Abs(lo), math.Abs(hi)))
	return x >= lo-tol && x <= hi+tol
}

// within returns the values of xs in [lo, hi].
func within(xs []float64, lo, hi float64) []float64 {
	var out []float64
	for _, x := range xs {
		if inRange(x, lo, hi) {
			out = append(out, x)
		}
	}
	return out
}

func nearlyEqual(a, b float64) bool {
	if a == b {
		return true
	}
	return math.Abs(a-b) <= rangeTol*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}
