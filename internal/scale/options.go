// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scale

type specKind uint8

const (
	specWaive specKind = iota // Use the scale's default
	specNone
	specAt
	specFunc
	specRename
	specCount
)

// Breaks configures the major breaks of a scale. The zero value uses
// the scale's default breaks. D is the type of the scale's data: float64
// data space values for continuous scales, level names for discrete
// scales.
type Breaks[D any] struct {
	kind specKind
	at   []D
	fn   func(limits []D) []D
}

// NoBreaks disables breaks.
func NoBreaks[D any]() Breaks[D] {
	return Breaks[D]{kind: specNone}
}

// BreaksAt places breaks at exactly the given values.
func BreaksAt[D any](breaks ...D) Breaks[D] {
	return Breaks[D]{kind: specAt, at: breaks}
}

// BreaksFunc computes breaks from the scale's limits.
func BreaksFunc[D any](f func(limits []D) []D) Breaks[D] {
	return Breaks[D]{kind: specFunc, fn: f}
}

// IsNone reports whether b disables breaks.
func (b Breaks[D]) IsNone() bool {
	return b.kind == specNone
}

// Labels configures the labels of a scale's major breaks. The zero value
// uses the scale's default labels.
type Labels[D any] struct {
	kind   specKind
	at     []string
	fn     func(breaks []D) []string
	rename map[string]string
}

// NoLabels disables labels.
func NoLabels[D any]() Labels[D] {
	return Labels[D]{kind: specNone}
}

// LabelsAt uses the given labels, one per break.
func LabelsAt[D any](labels ...string) Labels[D] {
	return Labels[D]{kind: specAt, at: labels}
}

// LabelsFunc computes labels from the breaks.
func LabelsFunc[D any](f func(breaks []D) []string) Labels[D] {
	return Labels[D]{kind: specFunc, fn: f}
}

// LabelsRename replaces default labels found in m with their mapped
// value. Other labels are left alone.
func LabelsRename[D any](m map[string]string) Labels[D] {
	return Labels[D]{kind: specRename, rename: m}
}

// checkLengths returns an error if both b and l are literal and have
// different lengths.
func checkLengths[D any](name string, b Breaks[D], l Labels[D]) error {
	if b.kind == specAt && l.kind == specAt && len(b.at) != len(l.at) {
		return configErrorf(name, "%d breaks but %d labels", len(b.at), len(l.at))
	}
	return nil
}

// Limits configures the limits of a scale. The zero value uses the
// scale's trained range.
type Limits[D any] struct {
	fixed []D
	fn    func(rng []D) []D
}

// Fixed uses the given limits regardless of the data. For continuous
// scales this is (lo, hi) in data space, and a NaN end falls back to
// the trained range.
func Fixed[D any](limits ...D) Limits[D] {
	if limits == nil {
		limits = []D{}
	}
	return Limits[D]{fixed: limits}
}

// Deferred computes the limits from the trained range each time they
// are needed.
func Deferred[D any](f func(rng []D) []D) Limits[D] {
	return Limits[D]{fn: f}
}

// IsSet reports whether l overrides the trained range.
func (l Limits[D]) IsSet() bool {
	return l.fixed != nil || l.fn != nil
}

// MinorBreaks configures the minor breaks of a continuous scale. The
// zero value uses the transform's default minor breaks. Minor breaks are
// given in data space.
type MinorBreaks struct {
	kind specKind
	n    int
	at   []float64
	fn   func(limits []float64) []float64
}

// NoMinorBreaks disables minor breaks.
func NoMinorBreaks() MinorBreaks {
	return MinorBreaks{kind: specNone}
}

// MinorCount places n minor breaks between each pair of major breaks.
func MinorCount(n int) MinorBreaks {
	return MinorBreaks{kind: specCount, n: n}
}

// MinorAt places minor breaks at exactly the given values.
func MinorAt(breaks ...float64) MinorBreaks {
	return MinorBreaks{kind: specAt, at: breaks}
}

// MinorFunc computes minor breaks from the data space limits.
func MinorFunc(f func(limits []float64) []float64) MinorBreaks {
	return MinorBreaks{kind: specFunc, fn: f}
}

// A Palette is the output of a discrete palette function for n levels:
// either a sequence indexed by level position or a map keyed by level
// name.
type Palette[T any] struct {
	ordered []T
	keyed   map[string]T
}

// Ordered returns a Palette that assigns values to levels in order.
func Ordered[T any](values ...T) Palette[T] {
	return Palette[T]{ordered: values}
}

// Keyed returns a Palette that assigns values to levels by name.
func Keyed[T any](m map[string]T) Palette[T] {
	return Palette[T]{keyed: m}
}

// lookup returns the palette value for the level at index i named name.
func (p Palette[T]) lookup(i int, name string) (T, bool) {
	if p.keyed != nil {
		v, ok := p.keyed[name]
		return v, ok
	}
	if i >= 0 && i < len(p.ordered) {
		return p.ordered[i], true
	}
	var zero T
	return zero, false
}

// Bool returns a pointer to b, for optional boolean options.
func Bool(b bool) *bool {
	return &b
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}
