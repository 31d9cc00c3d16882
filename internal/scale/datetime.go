// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scale

import (
	"time"

	"github.com/aclements/plotscale/internal/trans"
)

// DatetimeOptions configures a datetime scale. Data values are
// time.Time, held by the scale as seconds since the Unix epoch. The
// Date fields take precedence over the corresponding generic fields of
// ContinuousOptions.
type DatetimeOptions[T any] struct {
	ContinuousOptions[T]

	// Location is the time zone for breaks and labels. nil means UTC.
	Location *time.Location

	// DateBreaks and DateMinorBreaks are intervals such as "1 month"
	// or "2 weeks".
	DateBreaks      string
	DateMinorBreaks string
	// DateLabels is a time layout, as used by time.Time.Format.
	DateLabels string
}

// NewDatetime returns a datetime scale for the given aesthetics.
func NewDatetime[T any](aes []Aes, opts DatetimeOptions[T]) (*Continuous[T], error) {
	return newDatetime(aes, opts, false)
}

// NewPositionDatetime returns a datetime scale for position aesthetics.
func NewPositionDatetime(aes []Aes, opts DatetimeOptions[float64]) (*Continuous[float64], error) {
	return newDatetime(aes, opts, true)
}

func newDatetime[T any](aes []Aes, opts DatetimeOptions[T], position bool) (*Continuous[T], error) {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	co := opts.ContinuousOptions
	name := co.Name
	if name == "" && len(aes) > 0 {
		name = aes[0].Name()
	}
	userTrans := co.Trans
	co.Trans = trans.Datetime(loc)

	if opts.DateBreaks != "" {
		iv, err := trans.ParseInterval(opts.DateBreaks)
		if err != nil {
			return nil, &ConfigError{Scale: name, Msg: "bad date_breaks", Err: err}
		}
		co.Breaks = BreaksFunc(func(limits []float64) []float64 {
			return iv.Breaks(limits[0], limits[1], loc)
		})
	}
	if opts.DateMinorBreaks != "" {
		iv, err := trans.ParseInterval(opts.DateMinorBreaks)
		if err != nil {
			return nil, &ConfigError{Scale: name, Msg: "bad date_minor_breaks", Err: err}
		}
		co.MinorBreaks = MinorFunc(func(limits []float64) []float64 {
			return iv.Breaks(limits[0], limits[1], loc)
		})
	}
	if opts.DateLabels != "" {
		layout := opts.DateLabels
		co.Labels = LabelsFunc(func(breaks []float64) []string {
			return trans.FormatTimes(breaks, layout, loc)
		})
	}

	s, err := newContinuous(aes, co, position)
	if err != nil {
		return nil, err
	}
	s.specialised = co.Trans.Name()
	if userTrans != nil {
		s.SetTrans(userTrans)
	}
	return s, nil
}

// TimeLimits returns fixed limits for a datetime scale. A zero time
// falls back to the trained range on that side.
func TimeLimits(lo, hi time.Time) Limits[float64] {
	return Fixed(trans.ToSeconds(lo), trans.ToSeconds(hi))
}

// TimeBreaks returns literal breaks for a datetime scale.
func TimeBreaks(ts ...time.Time) Breaks[float64] {
	xs := make([]float64, len(ts))
	for i, t := range ts {
		xs[i] = trans.ToSeconds(t)
	}
	return BreaksAt(xs...)
}
