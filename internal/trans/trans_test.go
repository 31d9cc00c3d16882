// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trans

import (
	"errors"
	"math"
	"slices"
	"testing"
	"time"
)

func approx(a, b float64) bool {
	if a == b {
		return true
	}
	return math.Abs(a-b) <= 1e-9*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

func closeAll(a, b []float64) bool {
	return slices.EqualFunc(a, b, approx)
}

func TestRoundTrip(t *testing.T) {
	for _, name := range Names() {
		tr, err := Get(name)
		if err != nil {
			t.Fatal(err)
		}
		for _, x := range []float64{0.5, 1, 2, 10, 100} {
			y := tr.Transform(x)
			if got := tr.Inverse(y); !approx(got, x) {
				t.Errorf("%s: Inverse(Transform(%v)) = %v", name, x, got)
			}
		}
	}
}

func TestOutOfDomain(t *testing.T) {
	for _, test := range []struct {
		tr Trans
		x  float64
	}{
		{Log(10), -1},
		{Log(2), -0.5},
		{Sqrt(), -4},
		{Log1p(), -2},
	} {
		if y := test.tr.Transform(test.x); !math.IsNaN(y) {
			t.Errorf("%s.Transform(%v) = %v, want NaN", test.tr.Name(), test.x, y)
		}
		st := test.tr.(SliceTransformer)
		_, err := st.TransformSlice([]float64{1, test.x})
		var de *DomainError
		if !errors.As(err, &de) {
			t.Errorf("%s.TransformSlice: want DomainError, got %v", test.tr.Name(), err)
		} else if de.Value != test.x {
			t.Errorf("%s.TransformSlice: error reports %v, want %v", test.tr.Name(), de.Value, test.x)
		}
	}
}

func TestGet(t *testing.T) {
	tr, err := Get("")
	if err != nil || tr.Name() != "identity" {
		t.Errorf(`Get("") = %v, %v; want identity`, tr, err)
	}
	if _, err := Get("cubic"); err == nil {
		t.Errorf(`Get("cubic") succeeded`)
	}
	names := Names()
	for _, want := range []string{"identity", "log10", "log2", "log", "sqrt", "reverse", "datetime"} {
		if !slices.Contains(names, want) {
			t.Errorf("Names() = %v, missing %q", names, want)
		}
	}
	if !slices.IsSorted(names) {
		t.Errorf("Names() not sorted: %v", names)
	}
}

func TestLogBreaks(t *testing.T) {
	check := func(lo, hi float64, n int, want []float64) {
		t.Helper()
		got := Log(10).Breaks(lo, hi, n)
		if !closeAll(got, want) {
			t.Errorf("Breaks(%v, %v, %d) = %v, want %v", lo, hi, n, got, want)
		}
	}
	check(1, 100, 5, []float64{1, 10, 100})
	check(100, 1, 5, []float64{1, 10, 100})
	check(0.5, 20, 5, []float64{0.1, 1, 10, 100})

	// A wide range uses every k'th power.
	got := Log(10).Breaks(1, 1e10, 5)
	if len(got) > 5 || len(got) < 2 {
		t.Fatalf("Breaks(1, 1e10, 5) = %v, want 2..5 breaks", got)
	}
	for _, x := range got {
		if e := math.Log10(x); !approx(e, math.Round(e)) {
			t.Errorf("break %v is not a power of 10", x)
		}
	}
}

func TestExtendedBreaks(t *testing.T) {
	got := ExtendedBreaks(0, 9, 5)
	if len(got) < 1 || len(got) > 5 {
		t.Fatalf("ExtendedBreaks(0, 9, 5) = %v, want 1..5 breaks", got)
	}
	if !slices.IsSorted(got) {
		t.Errorf("ExtendedBreaks(0, 9, 5) = %v, not sorted", got)
	}
	if got := ExtendedBreaks(3, 3, 5); !closeAll(got, []float64{3}) {
		t.Errorf("ExtendedBreaks(3, 3, 5) = %v, want [3]", got)
	}
	if got := ExtendedBreaks(math.NaN(), 1, 5); got != nil {
		t.Errorf("ExtendedBreaks(NaN, 1, 5) = %v, want nil", got)
	}
}

func TestRegularMinorBreaks(t *testing.T) {
	got := RegularMinorBreaks([]float64{0, 1, 2}, -0.5, 2.5, 1)
	if want := []float64{-0.5, 0.5, 1.5, 2.5}; !closeAll(got, want) {
		t.Errorf("want %v; got %v", want, got)
	}
	got = RegularMinorBreaks([]float64{0, 1}, 0, 1, 3)
	if want := []float64{0.25, 0.5, 0.75}; !closeAll(got, want) {
		t.Errorf("want %v; got %v", want, got)
	}
	if got := RegularMinorBreaks([]float64{1}, 0, 2, 1); got != nil {
		t.Errorf("single major: want nil; got %v", got)
	}
}

func TestLogMinorBreaks(t *testing.T) {
	tr := Log(10)
	major := []float64{0, 1, 2}
	got := tr.MinorBreaks(major, 0, 2, 0)
	// 2..9, 20..90.
	if len(got) != 16 {
		t.Fatalf("want 16 minor breaks; got %v", got)
	}
	if !approx(got[0], math.Log10(2)) || !approx(got[len(got)-1], math.Log10(90)) {
		t.Errorf("minor breaks span [%v, %v]", got[0], got[len(got)-1])
	}
	for _, x := range got {
		if slices.ContainsFunc(major, func(m float64) bool { return approx(m, x) }) {
			t.Errorf("minor break %v duplicates a major break", x)
		}
	}

	// With a count, minor breaks are evenly spaced in data space.
	got = tr.MinorBreaks([]float64{0, 1}, 0, 1, 1)
	if want := []float64{math.Log10(5.5)}; !closeAll(got, want) {
		t.Errorf("want %v; got %v", want, got)
	}
}

func TestFormatNumbers(t *testing.T) {
	got := FormatNumbers([]float64{1, 2.5, 1e6, math.NaN(), math.Copysign(0, -1)})
	want := []string{"1", "2.5", "1e+06", "NA", "0"}
	if !slices.Equal(got, want) {
		t.Errorf("want %q; got %q", want, got)
	}
}

func TestParseInterval(t *testing.T) {
	for _, test := range []struct {
		in   string
		want Interval
		err  bool
	}{
		{in: "2 weeks", want: Interval{2, Week}},
		{in: "1 month", want: Interval{1, Month}},
		{in: "month", want: Interval{1, Month}},
		{in: "6 Hours", want: Interval{6, Hour}},
		{in: "10 years", want: Interval{10, Year}},
		{in: "30 seconds", want: Interval{30, Second}},
		{in: "", err: true},
		{in: "0 days", err: true},
		{in: "two days", err: true},
		{in: "3 fortnights", err: true},
		{in: "1 day ago", err: true},
	} {
		got, err := ParseInterval(test.in)
		if test.err {
			if err == nil {
				t.Errorf("ParseInterval(%q) = %v, want error", test.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseInterval(%q): %v", test.in, err)
		} else if got != test.want {
			t.Errorf("ParseInterval(%q) = %v, want %v", test.in, got, test.want)
		}
	}
}

func TestIntervalBreaks(t *testing.T) {
	date := func(y int, m time.Month, d, h int) float64 {
		return ToSeconds(time.Date(y, m, d, h, 0, 0, 0, time.UTC))
	}
	check := func(iv Interval, lo, hi float64, want []float64) {
		t.Helper()
		got := iv.Breaks(lo, hi, time.UTC)
		if !slices.Equal(got, want) {
			t.Errorf("%v breaks: want %v; got %v", iv, want, got)
		}
	}
	check(Interval{1, Day}, date(2024, 1, 1, 0), date(2024, 1, 3, 12), []float64{
		date(2024, 1, 1, 0), date(2024, 1, 2, 0), date(2024, 1, 3, 0), date(2024, 1, 4, 0),
	})
	check(Interval{1, Month}, date(2024, 1, 15, 0), date(2024, 4, 10, 0), []float64{
		date(2024, 1, 1, 0), date(2024, 2, 1, 0), date(2024, 3, 1, 0), date(2024, 4, 1, 0), date(2024, 5, 1, 0),
	})
	// 2024-01-03 is a Wednesday; weeks start on Monday 2024-01-01.
	check(Interval{1, Week}, date(2024, 1, 3, 0), date(2024, 1, 9, 0), []float64{
		date(2024, 1, 1, 0), date(2024, 1, 8, 0), date(2024, 1, 15, 0),
	})
	check(Interval{6, Hour}, date(2024, 1, 1, 7), date(2024, 1, 1, 13), []float64{
		date(2024, 1, 1, 6), date(2024, 1, 1, 12), date(2024, 1, 1, 18),
	})
	check(Interval{10, Year}, date(1995, 6, 1, 0), date(2013, 1, 1, 0), []float64{
		date(1990, 1, 1, 0), date(2000, 1, 1, 0), date(2010, 1, 1, 0), date(2020, 1, 1, 0),
	})
}

func TestDatetime(t *testing.T) {
	tr := Datetime(nil)
	lo := ToSeconds(time.Date(2020, 3, 1, 0, 0, 0, 0, time.UTC))
	hi := ToSeconds(time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC))
	breaks := tr.Breaks(lo, hi, 5)
	if len(breaks) == 0 {
		t.Fatal("no breaks")
	}
	labels := tr.Format(breaks)
	for _, l := range labels {
		if len(l) != len("2006") {
			t.Errorf("want year labels; got %q", labels)
			break
		}
	}

	if got := DateLayout([]float64{lo, lo + 86400}, time.UTC); got != "2006-01-02" {
		t.Errorf("daily layout = %q", got)
	}
	if got := DateLayout([]float64{lo + 120}, time.UTC); got != "2006-01-02 15:04" {
		t.Errorf("minute layout = %q", got)
	}

	if got := FromSeconds(math.NaN(), nil); !got.IsZero() {
		t.Errorf("FromSeconds(NaN) = %v, want zero time", got)
	}
	if got := ToSeconds(time.Time{}); !math.IsNaN(got) {
		t.Errorf("ToSeconds(zero) = %v, want NaN", got)
	}
	now := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	if got := FromSeconds(ToSeconds(now), time.UTC); !got.Equal(now) {
		t.Errorf("round trip %v -> %v", now, got)
	}
}
