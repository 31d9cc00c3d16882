// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trans

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// A Unit is a calendar unit for date intervals.
type Unit int

const (
	Second Unit = iota
	Minute
	Hour
	Day
	Week
	Month
	Year
)

var unitNames = [...]string{"second", "minute", "hour", "day", "week", "month", "year"}

func (u Unit) String() string {
	if u < 0 || int(u) >= len(unitNames) {
		return fmt.Sprintf("Unit(%d)", int(u))
	}
	return unitNames[u]
}

// An Interval is a calendar step such as "2 weeks".
type Interval struct {
	N    int
	Unit Unit
}

func (iv Interval) String() string {
	if iv.N == 1 {
		return "1 " + iv.Unit.String()
	}
	return fmt.Sprintf("%d %ss", iv.N, iv.Unit)
}

// ParseInterval parses an interval such as "1 month", "2 weeks", or
// "hour". The count defaults to 1 and must be positive. Units may be
// singular or plural.
func ParseInterval(s string) (Interval, error) {
	f := strings.Fields(strings.ToLower(s))
	var iv Interval
	switch len(f) {
	case 1:
		iv.N = 1
	case 2:
		n, err := strconv.Atoi(f[0])
		if err != nil || n <= 0 {
			return Interval{}, fmt.Errorf("bad interval %q: count must be a positive integer", s)
		}
		iv.N = n
		f = f[1:]
	default:
		return Interval{}, fmt.Errorf("bad interval %q", s)
	}
	name := strings.TrimSuffix(f[0], "s")
	for u, un := range unitNames {
		if name == un {
			iv.Unit = Unit(u)
			return iv, nil
		}
	}
	return Interval{}, fmt.Errorf("bad interval %q: unknown unit %q", s, f[0])
}

// Floor returns the latest time at or before t that lies on a boundary
// of iv in t's location.
func (iv Interval) Floor(t time.Time) time.Time {
	y, mo, d := t.Date()
	h, mi, s := t.Clock()
	loc := t.Location()
	n := iv.N
	switch iv.Unit {
	case Second:
		return time.Date(y, mo, d, h, mi, s-s%n, 0, loc)
	case Minute:
		return time.Date(y, mo, d, h, mi-mi%n, 0, 0, loc)
	case Hour:
		return time.Date(y, mo, d, h-h%n, 0, 0, 0, loc)
	case Day:
		return time.Date(y, mo, d, 0, 0, 0, 0, loc)
	case Week:
		// Weeks start on Monday.
		off := (int(t.Weekday()) + 6) % 7
		return time.Date(y, mo, d-off, 0, 0, 0, 0, loc)
	case Month:
		m0 := int(mo) - 1
		return time.Date(y, time.Month(m0-m0%n+1), 1, 0, 0, 0, 0, loc)
	case Year:
		return time.Date(floorDiv(y, n)*n, time.January, 1, 0, 0, 0, 0, loc)
	}
	panic("bad interval unit " + iv.Unit.String())
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// Add returns t advanced by one interval.
func (iv Interval) Add(t time.Time) time.Time {
	n := iv.N
	switch iv.Unit {
	case Second:
		return t.Add(time.Duration(n) * time.Second)
	case Minute:
		return t.Add(time.Duration(n) * time.Minute)
	case Hour:
		return t.Add(time.Duration(n) * time.Hour)
	case Day:
		return t.AddDate(0, 0, n)
	case Week:
		return t.AddDate(0, 0, 7*n)
	case Month:
		return t.AddDate(0, n, 0)
	case Year:
		return t.AddDate(n, 0, 0)
	}
	panic("bad interval unit " + iv.Unit.String())
}

// maxDateBreaks bounds the number of breaks Breaks will generate.
const maxDateBreaks = 10000

// Breaks returns the interval boundaries covering [lo, hi], where lo
// and hi are seconds since the Unix epoch. The first break is at or
// below lo and the last at or above hi.
func (iv Interval) Breaks(lo, hi float64, loc *time.Location) []float64 {
	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return nil
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	t := iv.Floor(FromSeconds(lo, loc))
	var breaks []float64
	for len(breaks) < maxDateBreaks {
		x := ToSeconds(t)
		breaks = append(breaks, x)
		if x >= hi {
			break
		}
		t = iv.Add(t)
	}
	return breaks
}

// count returns the number of boundaries of iv within [lo, hi],
// estimated from the nominal length of the interval.
func (iv Interval) count(lo, hi float64) float64 {
	return (hi - lo) / iv.nominal().Seconds()
}

func (iv Interval) nominal() time.Duration {
	var d time.Duration
	switch iv.Unit {
	case Second:
		d = time.Second
	case Minute:
		d = time.Minute
	case Hour:
		d = time.Hour
	case Day:
		d = 24 * time.Hour
	case Week:
		d = 7 * 24 * time.Hour
	case Month:
		d = 30 * 24 * time.Hour
	case Year:
		d = 365 * 24 * time.Hour
	}
	return time.Duration(iv.N) * d
}

// autoIntervals is the ladder of intervals tried, finest first, when
// choosing date breaks automatically.
var autoIntervals = []Interval{
	{1, Second}, {2, Second}, {5, Second}, {10, Second}, {15, Second}, {30, Second},
	{1, Minute}, {2, Minute}, {5, Minute}, {10, Minute}, {15, Minute}, {30, Minute},
	{1, Hour}, {3, Hour}, {6, Hour}, {12, Hour},
	{1, Day}, {2, Day}, {1, Week},
	{1, Month}, {3, Month}, {6, Month},
	{1, Year}, {2, Year}, {5, Year}, {10, Year}, {20, Year}, {50, Year},
	{100, Year}, {200, Year}, {500, Year}, {1000, Year},
}

// AutoInterval returns the finest interval that yields at most n
// breaks over [lo, hi] seconds.
func AutoInterval(lo, hi float64, n int) Interval {
	if n <= 0 {
		n = DefaultBreaks
	}
	span := math.Abs(hi - lo)
	for _, iv := range autoIntervals {
		if iv.count(0, span)+1 <= float64(n) {
			return iv
		}
	}
	return autoIntervals[len(autoIntervals)-1]
}

// ToSeconds converts t to seconds since the Unix epoch. The zero time
// converts to NaN.
func ToSeconds(t time.Time) float64 {
	if t.IsZero() {
		return math.NaN()
	}
	return float64(t.Unix()) + float64(t.Nanosecond())/1e9
}

// FromSeconds converts seconds since the Unix epoch to a time in loc
// (UTC if loc is nil). NaN converts to the zero time.
func FromSeconds(x float64, loc *time.Location) time.Time {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return time.Time{}
	}
	if loc == nil {
		loc = time.UTC
	}
	sec := math.Floor(x)
	nsec := math.Round((x - sec) * 1e9)
	return time.Unix(int64(sec), int64(nsec)).In(loc)
}

// Datetime returns the transform for time values held as seconds since
// the Unix epoch. It is the identity on seconds, but breaks fall on
// calendar boundaries in loc and labels are formatted as dates. A nil
// loc means UTC.
func Datetime(loc *time.Location) Trans {
	if loc == nil {
		loc = time.UTC
	}
	return &funcTrans{
		name: "datetime",
		fwd:  func(x float64) float64 { return x },
		inv:  func(y float64) float64 { return y },
		lo:   math.Inf(-1),
		hi:   math.Inf(1),
		breaks: func(lo, hi float64, n int) []float64 {
			if lo == hi {
				return []float64{lo}
			}
			return AutoInterval(lo, hi, n).Breaks(lo, hi, loc)
		},
		minor: regularMinor,
		format: func(breaks []float64) []string {
			return FormatTimes(breaks, DateLayout(breaks, loc), loc)
		},
	}
}

// DateLayout picks a time layout for breaks by the coarsest calendar
// boundary they all fall on.
func DateLayout(breaks []float64, loc *time.Location) string {
	yearly, monthly, daily, minutely := true, true, true, true
	for _, x := range breaks {
		t := FromSeconds(x, loc)
		if t.IsZero() {
			continue
		}
		_, mo, d := t.Date()
		h, mi, s := t.Clock()
		if s != 0 || t.Nanosecond() != 0 {
			minutely = false
		}
		if h != 0 || mi != 0 || !minutely {
			daily = false
		}
		if d != 1 || !daily {
			monthly = false
		}
		if mo != time.January || !monthly {
			yearly = false
		}
	}
	switch {
	case yearly:
		return "2006"
	case monthly:
		return "2006-01"
	case daily:
		return "2006-01-02"
	case minutely:
		return "2006-01-02 15:04"
	}
	return "2006-01-02 15:04:05"
}

// FormatTimes formats each break, in seconds, with the given layout.
// Non-finite breaks format as "NA".
func FormatTimes(breaks []float64, layout string, loc *time.Location) []string {
	labels := make([]string, len(breaks))
	for i, x := range breaks {
		t := FromSeconds(x, loc)
		if t.IsZero() {
			labels[i] = "NA"
			continue
		}
		labels[i] = t.Format(layout)
	}
	return labels
}
