// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package scale implements the scales of a statistical graphics system.
// A scale learns the extent of the data for its aesthetics (training),
// maps data values to aesthetic values such as positions or colors
// (mapping), and describes how to draw its guide or axis (a [View]).
//
// Continuous scales work in the space of their transform: data is
// transformed before training, so ranges, limits, and breaks are all
// held in transform space. Discrete scales work on named levels.
package scale

import (
	"fmt"
	"slices"

	"github.com/aclements/go-gg/table"
	"github.com/charmbracelet/log"
)

// A Scale is the untyped interface to every kind of scale.
//
// Scales are not safe for concurrent mutation. To train in parallel,
// train a CloneScale per goroutine and merge the clones back with
// MergeRange.
type Scale interface {
	// Name returns the scale's title.
	Name() string
	// Aesthetics returns the aesthetics this scale governs.
	Aesthetics() []Aes

	// IsEmpty reports whether the scale has neither trained data nor
	// user limits.
	IsEmpty() bool
	// Reset forgets all trained data.
	Reset()
	// HasGuide reports whether the scale should get a guide. Position
	// scales always have one (their axis). Other scales have none when
	// their breaks are disabled.
	HasGuide() bool

	// TransformFrame applies the scale's transform to every governed
	// column of t and returns the new table.
	TransformFrame(t *table.Table) (*table.Table, error)
	// TrainFrame trains on every governed column of t.
	TrainFrame(t *table.Table) error
	// MapFrame maps every governed column of t to aesthetic values
	// and returns the new table.
	MapFrame(t *table.Table) (*table.Table, error)

	// View returns a snapshot of the scale for drawing its guide.
	View() (*View, error)

	// CloneScale returns a deep copy of the scale.
	CloneScale() Scale
	// MergeRange merges the trained range of o, which must be a clone
	// of this scale, into this scale.
	MergeRange(o Scale) error
}

// base holds the fields common to all scales.
type base struct {
	name   string
	aes    []Aes
	logger *log.Logger
}

func newBase(name string, aes []Aes, logger *log.Logger) base {
	if logger == nil {
		logger = log.Default()
	}
	if name == "" && len(aes) > 0 {
		name = aes[0].Name()
	}
	return base{name: name, aes: slices.Clone(aes), logger: logger}
}

func (b *base) Name() string {
	return b.name
}

func (b *base) Aesthetics() []Aes {
	return slices.Clone(b.aes)
}

// isPosition reports whether b governs position aesthetics.
func (b *base) isPosition() bool {
	return len(b.aes) > 0 && b.aes[0].IsPosition()
}

// columns returns the names of the columns of t that b governs, in
// sorted order.
func (b *base) columns(t *table.Table) []string {
	var cols []string
	for _, a := range b.aes {
		if t.Column(a.Name()) != nil {
			cols = append(cols, a.Name())
		}
	}
	slices.Sort(cols)
	return cols
}

func (b *base) errorf(format string, args ...any) error {
	return fmt.Errorf("scale %s: "+format, append([]any{b.name}, args...)...)
}

// mergeSource checks that o is the same kind of scale as s.
func mergeSource[S Scale](s S, o Scale) (S, error) {
	src, ok := o.(S)
	if !ok {
		return src, fmt.Errorf("scale %s: cannot merge %T into %T", s.Name(), o, s)
	}
	return src, nil
}
