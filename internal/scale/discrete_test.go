// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scale

import (
	"errors"
	"slices"
	"testing"

	"github.com/aclements/go-gg/table"
)

var colors = []string{"red", "green", "blue", "cyan"}

// colorScale returns a discrete string-valued scale that records the
// sizes its palette is called with.
func colorScale(t *testing.T, opts DiscreteOptions[string]) (*Discrete[string], *[]int) {
	t.Helper()
	var calls []int
	opts.Palette = func(n int) Palette[string] {
		calls = append(calls, n)
		return Ordered(colors[:min(n, len(colors))]...)
	}
	opts.NAValue = "grey"
	s, err := NewDiscrete([]Aes{AesColor}, opts)
	if err != nil {
		t.Fatal(err)
	}
	return s, &calls
}

func TestDiscretePosition(t *testing.T) {
	s, err := NewPositionDiscrete(XAes, DiscreteOptions[float64]{})
	if err != nil {
		t.Fatal(err)
	}
	var b table.Builder
	b.Add("x", []string{"b", "a", "c", "a"})
	b.Add("y", []float64{1, 2, 3, 4})
	tab := b.Done()
	if err := s.TrainFrame(tab); err != nil {
		t.Fatal(err)
	}
	tab, err = s.MapFrame(tab)
	if err != nil {
		t.Fatal(err)
	}
	if got := tab.Column("x").([]float64); !slices.Equal(got, []float64{2, 1, 3, 1}) {
		t.Errorf("positions = %v, want [2 1 3 1]", got)
	}

	v := mustView(t, s)
	if !closeAll(v.Range[:], []float64{0.4, 3.6}) {
		t.Errorf("range = %v, want [0.4 3.6]", v.Range)
	}
	if !slices.Equal(v.Breaks, []float64{1, 2, 3}) {
		t.Errorf("breaks = %v, want [1 2 3]", v.Breaks)
	}
	want := []string{"a", "b", "c"}
	if !slices.Equal(v.BreakKeys, want) || !slices.Equal(v.Labels, want) {
		t.Errorf("break keys %q labels %q, want %q", v.BreakKeys, v.Labels, want)
	}
	if !s.HasGuide() {
		t.Error("position scale should have a guide")
	}
}

func TestDiscreteDeterministic(t *testing.T) {
	a, _ := colorScale(t, DiscreteOptions[string]{})
	a.Train(Factor{Values: Cats("b", "a")})
	a.Train(Factor{Values: Cats("c")})

	b, _ := colorScale(t, DiscreteOptions[string]{})
	b.Train(Factor{Values: Cats("c", "a", "b", "a")})

	if !slices.Equal(a.Limits(), b.Limits()) {
		t.Errorf("training order changed limits: %v vs %v", a.Limits(), b.Limits())
	}
	if want := Cats("a", "b", "c"); !slices.Equal(a.Limits(), want) {
		t.Errorf("Limits() = %v, want %v", a.Limits(), want)
	}
}

func TestDiscreteFactorOrder(t *testing.T) {
	f := Factor{Levels: []string{"lo", "mid", "hi"}, Values: Cats("hi", "lo")}

	s, _ := colorScale(t, DiscreteOptions[string]{})
	s.Train(f)
	if want := Cats("lo", "hi"); !slices.Equal(s.Limits(), want) {
		t.Errorf("with drop, Limits() = %v, want %v", s.Limits(), want)
	}

	s, _ = colorScale(t, DiscreteOptions[string]{Drop: Bool(false)})
	s.Train(f)
	s.Train(Factor{Values: Cats("extra")})
	if want := Cats("lo", "mid", "hi", "extra"); !slices.Equal(s.Limits(), want) {
		t.Errorf("without drop, Limits() = %v, want %v", s.Limits(), want)
	}
}

func TestDiscreteNA(t *testing.T) {
	s, calls := colorScale(t, DiscreteOptions[string]{})
	s.Train(Factor{Values: []Category{Cat("b"), NA, Cat("a")}})
	if want := []Category{Cat("a"), Cat("b"), NA}; !slices.Equal(s.Limits(), want) {
		t.Errorf("Limits() = %v, want %v", s.Limits(), want)
	}

	vals, valid := s.Map([]Category{Cat("a"), NA, Cat("b"), Cat("zzz")})
	if want := []string{"red", "grey", "green", "grey"}; !slices.Equal(vals, want) {
		t.Errorf("Map = %q, want %q", vals, want)
	}
	if !slices.Equal(valid, []bool{true, true, true, true}) {
		t.Errorf("valid = %v, want all true", valid)
	}
	if !slices.Equal(*calls, []int{2}) {
		t.Errorf("palette calls = %v, want one call for 2 levels", *calls)
	}
	if got := s.Breaks(); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("Breaks() = %q, want [a b]", got)
	}

	s, _ = colorScale(t, DiscreteOptions[string]{NARm: true})
	s.Train(Factor{Values: []Category{NA, Cat("a")}})
	if want := Cats("a"); !slices.Equal(s.Limits(), want) {
		t.Errorf("with NARm, Limits() = %v, want %v", s.Limits(), want)
	}
}

func TestDiscretePaletteShort(t *testing.T) {
	s, _ := colorScale(t, DiscreteOptions[string]{})
	s.Train(Factor{Values: Cats("a", "b", "c", "d", "e")})
	vals, _ := s.Map(Cats("d", "e"))
	if want := []string{"cyan", "grey"}; !slices.Equal(vals, want) {
		t.Errorf("Map = %q, want %q", vals, want)
	}
}

func TestDiscreteKeyedPalette(t *testing.T) {
	s, err := NewDiscrete([]Aes{AesFill}, DiscreteOptions[string]{
		Palette: func(n int) Palette[string] {
			return Keyed(map[string]string{"b": "blue"})
		},
		NAValue: "none",
	})
	if err != nil {
		t.Fatal(err)
	}
	s.Train(Factor{Values: Cats("a", "b")})
	vals, _ := s.Map(Cats("a", "b"))
	if want := []string{"none", "blue"}; !slices.Equal(vals, want) {
		t.Errorf("Map = %q, want %q", vals, want)
	}
}

func TestDiscreteKeyedPaletteOutsideLimits(t *testing.T) {
	s, err := NewDiscrete([]Aes{AesColor}, DiscreteOptions[string]{
		Palette: func(n int) Palette[string] {
			return Keyed(map[string]string{"a": "red", "z": "green"})
		},
		Limits:  Fixed("a", "b"),
		NAValue: "none",
	})
	if err != nil {
		t.Fatal(err)
	}
	vals, valid := s.Map([]Category{Cat("a"), Cat("z"), Cat("b"), NA})
	if want := []string{"red", "green", "none", "none"}; !slices.Equal(vals, want) {
		t.Errorf("Map = %q, want %q", vals, want)
	}
	if !slices.Equal(valid, []bool{true, true, true, true}) {
		t.Errorf("valid = %v, want all true", valid)
	}
}

func TestDiscreteNoTranslate(t *testing.T) {
	s, err := NewDiscrete([]Aes{AesShape}, DiscreteOptions[string]{
		Palette:     Shapes,
		Limits:      Fixed("a", "b"),
		NATranslate: Bool(false),
	})
	if err != nil {
		t.Fatal(err)
	}
	var b table.Builder
	b.Add("shape", []string{"a", "c", "b"})
	b.Add("x", []float64{1, 2, 3})
	tab, err := s.MapFrame(b.Done())
	if err != nil {
		t.Fatal(err)
	}
	if tab.Len() != 2 {
		t.Fatalf("got %d rows, want 2", tab.Len())
	}
	if got := tab.Column("shape").([]string); !slices.Equal(got, []string{"circle", "triangle"}) {
		t.Errorf("shapes = %q", got)
	}
	if got := tab.Column("x").([]float64); !slices.Equal(got, []float64{1, 3}) {
		t.Errorf("x = %v, want [1 3]", got)
	}
}

func TestDiscreteBreaksAndLabels(t *testing.T) {
	s, _ := colorScale(t, DiscreteOptions[string]{
		Breaks: BreaksAt("b", "z"),
		Labels: LabelsAt[string]("Bee", "Zed"),
	})
	s.Train(Factor{Values: Cats("a", "b", "c")})
	if got := s.Breaks(); !slices.Equal(got, []string{"b"}) {
		t.Errorf("Breaks() = %q, want [b]", got)
	}
	v := mustView(t, s)
	if !slices.Equal(v.BreakKeys, []string{"b"}) || !slices.Equal(v.Breaks, []float64{2}) {
		t.Errorf("view keys %q breaks %v, want [b] [2]", v.BreakKeys, v.Breaks)
	}
	if !slices.Equal(v.Labels, []string{"Bee"}) {
		t.Errorf("view labels = %q, want [Bee]", v.Labels)
	}

	s, _ = colorScale(t, DiscreteOptions[string]{
		Labels: LabelsRename[string](map[string]string{"a": "Ay"}),
	})
	s.Train(Factor{Values: Cats("a", "b")})
	if v := mustView(t, s); !slices.Equal(v.Labels, []string{"Ay", "b"}) {
		t.Errorf("renamed labels = %q, want [Ay b]", v.Labels)
	}

	_, err := NewDiscrete([]Aes{AesColor}, DiscreteOptions[string]{
		Palette: func(int) Palette[string] { return Palette[string]{} },
		Breaks:  BreaksAt("a"),
		Labels:  LabelsAt[string]("A", "B"),
	})
	if !errors.Is(err, ErrConfig) {
		t.Errorf("mismatched labels: got %v, want a configuration error", err)
	}
}

func TestDiscreteDeferredLimits(t *testing.T) {
	s, _ := colorScale(t, DiscreteOptions[string]{
		Limits: Deferred(func(levels []string) []string {
			out := slices.Clone(levels)
			slices.Reverse(out)
			return out
		}),
	})
	s.Train(Factor{Values: Cats("a", "b")})
	if want := Cats("b", "a"); !slices.Equal(s.Limits(), want) {
		t.Errorf("Limits() = %v, want %v", s.Limits(), want)
	}
	s.Train(Factor{Values: Cats("c")})
	if want := Cats("c", "b", "a"); !slices.Equal(s.Limits(), want) {
		t.Errorf("after retraining, Limits() = %v, want %v", s.Limits(), want)
	}
}

func TestDiscreteMixedPosition(t *testing.T) {
	s, err := NewPositionDiscrete(XAes, DiscreteOptions[float64]{})
	if err != nil {
		t.Fatal(err)
	}
	var b table.Builder
	b.Add("x", []string{"a", "b"})
	b.Add("xend", []float64{0.5, 4})
	tab := b.Done()
	if err := s.TrainFrame(tab); err != nil {
		t.Fatal(err)
	}
	v := mustView(t, s)
	// Levels expand to (0.4, 2.6) and the continuous range to
	// (-0.1, 4.6).
	if !closeAll(v.Range[:], []float64{-0.1, 4.6}) {
		t.Errorf("range = %v, want [-0.1 4.6]", v.Range)
	}
	tab, err = s.MapFrame(tab)
	if err != nil {
		t.Fatal(err)
	}
	if got := tab.Column("xend").([]float64); !slices.Equal(got, []float64{0.5, 4}) {
		t.Errorf("continuous column changed: %v", got)
	}
	if got := tab.Column("x").([]float64); !slices.Equal(got, []float64{1, 2}) {
		t.Errorf("x = %v, want [1 2]", got)
	}
}

func TestDiscreteNonPositionRejectsNumbers(t *testing.T) {
	s, _ := colorScale(t, DiscreteOptions[string]{})
	var b table.Builder
	b.Add("color", []float64{1, 2})
	if err := s.TrainFrame(b.Done()); err == nil {
		t.Error("training a discrete color scale on numbers should fail")
	}
}

func TestDiscreteEmpty(t *testing.T) {
	s, err := NewPositionDiscrete(YAes, DiscreteOptions[float64]{})
	if err != nil {
		t.Fatal(err)
	}
	if !s.IsEmpty() || s.Limits() != nil {
		t.Errorf("new scale: IsEmpty %v, Limits %v", s.IsEmpty(), s.Limits())
	}
	v := mustView(t, s)
	if !closeAll(v.Range[:], []float64{-0.6, 1.6}) {
		t.Errorf("empty range = %v, want [-0.6 1.6]", v.Range)
	}
}

func TestDiscreteCloneMerge(t *testing.T) {
	s, _ := colorScale(t, DiscreteOptions[string]{})
	s.Train(Factor{Values: Cats("b")})
	c := s.CloneScale().(*Discrete[string])
	c.Train(Factor{Values: Cats("a")})
	if want := Cats("b"); !slices.Equal(s.Limits(), want) {
		t.Errorf("training a clone changed the original: %v", s.Limits())
	}
	if err := s.MergeRange(c); err != nil {
		t.Fatal(err)
	}
	if want := Cats("a", "b"); !slices.Equal(s.Limits(), want) {
		t.Errorf("after merge, Limits() = %v, want %v", s.Limits(), want)
	}
}

func TestDiscreteDimension(t *testing.T) {
	s, err := NewPositionDiscrete(XAes, DiscreteOptions[float64]{})
	if err != nil {
		t.Fatal(err)
	}
	if lo, hi := s.Dimension(Expand(0, 0.6)); !approx(lo, -0.6) || !approx(hi, 1.6) {
		t.Errorf("empty Dimension = (%v, %v), want (-0.6, 1.6)", lo, hi)
	}
	s.Train(Factor{Values: Cats("a", "b", "c")})
	if lo, hi := s.Dimension(Expand(0, 0.6)); !approx(lo, 0.4) || !approx(hi, 3.6) {
		t.Errorf("Dimension = (%v, %v), want (0.4, 3.6)", lo, hi)
	}

	// Descending fixed limits still give an ascending extent.
	s, err = NewPositionDiscrete(XAes, DiscreteOptions[float64]{Limits: Fixed("c", "b", "a")})
	if err != nil {
		t.Fatal(err)
	}
	s.Train(Factor{Values: Cats("a")})
	if lo, hi := s.Dimension(Expand(0.5, 0)); !approx(lo, 0) || !approx(hi, 4) {
		t.Errorf("fixed Dimension = (%v, %v), want (0, 4)", lo, hi)
	}
}

func TestDiscreteViewWith(t *testing.T) {
	s, err := NewPositionDiscrete(XAes, DiscreteOptions[float64]{
		Breaks: BreaksAt("a", "b"),
	})
	if err != nil {
		t.Fatal(err)
	}
	s.Train(Factor{Values: Cats("a", "b", "c")})
	v, err := s.ViewWith(Cats("c", "a"), [2]float64{0, 3})
	if err != nil {
		t.Fatal(err)
	}
	if v.Range != [2]float64{0, 3} || !slices.Equal(v.Levels, Cats("c", "a")) {
		t.Errorf("range %v levels %v", v.Range, v.Levels)
	}
	// Breaks are positions within the given limits. b isn't one of them.
	if !slices.Equal(v.Breaks, []float64{2}) || !slices.Equal(v.BreakKeys, []string{"a"}) {
		t.Errorf("breaks %v keys %q, want [2] [a]", v.Breaks, v.BreakKeys)
	}
}
