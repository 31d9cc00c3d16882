// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scale

import (
	"bytes"
	"errors"
	"image/color"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/aclements/plotscale/internal/trans"
	"github.com/charmbracelet/log"
)

func parseScales(t *testing.T, src string) (map[Aes]Scale, error) {
	t.Helper()
	f, err := ParseFile([]byte(src), log.New(&bytes.Buffer{}))
	if err != nil {
		t.Fatal(err)
	}
	return f.Scales(nil)
}

func TestConfigScales(t *testing.T) {
	scales, err := parseScales(t, `
[scale.y]
trans = "log10"
limits = [1, 100]
n_minor = 2

[scale.colour]
kind = "discrete"
palette = "viridis"
limits = ["a", "b"]

[scale.size]
expand = [0.1, 0]
`)
	if err != nil {
		t.Fatal(err)
	}
	if len(scales) != 3 {
		t.Fatalf("got %d scales, want 3", len(scales))
	}

	y, ok := scales[AesY].(*Continuous[float64])
	if !ok {
		t.Fatalf("y scale is %T", scales[AesY])
	}
	if !slices.Equal(y.Aesthetics(), YAes) {
		t.Errorf("y aesthetics = %v, want %v", y.Aesthetics(), YAes)
	}
	if lo, hi := y.Limits(); !approx(lo, 0) || !approx(hi, 2) {
		t.Errorf("y limits = (%v, %v), want (0, 2)", lo, hi)
	}
	if y.Trans().Name() != "log10" {
		t.Errorf("y trans = %s", y.Trans().Name())
	}

	c, ok := scales[AesColor].(*Discrete[color.Color])
	if !ok {
		t.Fatalf("color scale is %T", scales[AesColor])
	}
	if want := Cats("a", "b"); !slices.Equal(c.Limits(), want) {
		t.Errorf("color limits = %v, want %v", c.Limits(), want)
	}
	if !c.HasGuide() {
		t.Error("color scale should have a guide")
	}

	size, ok := scales[AesSize].(*Continuous[float64])
	if !ok {
		t.Fatalf("size scale is %T", scales[AesSize])
	}
	e, err := size.DefaultExpansion([]float64{0.05}, []float64{0}, true)
	if err != nil {
		t.Fatal(err)
	}
	if e != Expand(0.1, 0) {
		t.Errorf("size expansion = %+v, want %+v", e, Expand(0.1, 0))
	}
}

func TestConfigDatetime(t *testing.T) {
	scales, err := parseScales(t, `
[scale.x]
kind = "datetime"
limits = [2024-01-01T00:00:00Z, "2024-03-01T00:00:00Z"]
date_breaks = "1 month"
date_labels = "Jan"
`)
	if err != nil {
		t.Fatal(err)
	}
	x := scales[AesX].(*Continuous[float64])
	jan := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	if lo, hi := x.Limits(); lo != trans.ToSeconds(jan) || hi != trans.ToSeconds(mar) {
		t.Errorf("limits = (%v, %v)", lo, hi)
	}
	labels, err := x.Labels(x.Breaks())
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"Jan", "Feb", "Mar"}; !slices.Equal(labels, want) {
		t.Errorf("labels = %q, want %q", labels, want)
	}
}

func TestConfigDatetimeOpenLimit(t *testing.T) {
	scales, err := parseScales(t, `
[scale.x]
kind = "datetime"
limits = ["", 2024-03-01T00:00:00Z]
breaks = [2023-12-01T00:00:00Z, "2024-02-01T00:00:00Z"]
`)
	if err != nil {
		t.Fatal(err)
	}
	x := scales[AesX].(*Continuous[float64])
	jan15 := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	x.Train([]float64{trans.ToSeconds(jan15)})
	if lo, hi := x.Limits(); lo != trans.ToSeconds(jan15) || hi != trans.ToSeconds(mar) {
		t.Errorf("limits = (%v, %v), want trained low end and fixed high end", lo, hi)
	}
	if got := x.Breaks(); !slices.Equal(got, []float64{trans.ToSeconds(feb)}) {
		t.Errorf("breaks = %v, want only the February break", got)
	}
}

func TestConfigUnknownKeys(t *testing.T) {
	var buf bytes.Buffer
	f, err := ParseFile([]byte(`
[scale.y]
trans = "sqrt"
bogus = 1
`), log.New(&buf))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "scale.y.bogus") {
		t.Errorf("expected a warning about scale.y.bogus, got %q", buf.String())
	}
	if f.Scale["y"].Trans != "sqrt" {
		t.Errorf("known keys were not decoded: %+v", f.Scale["y"])
	}
}

func TestConfigSyntaxError(t *testing.T) {
	if _, err := ParseFile([]byte("[scale.y\n"), log.New(&bytes.Buffer{})); err == nil {
		t.Error("expected a parse error")
	}
}

func TestConfigErrors(t *testing.T) {
	for name, src := range map[string]string{
		"unknown trans":      "[scale.x]\ntrans = \"cube\"",
		"unknown kind":       "[scale.x]\nkind = \"ordinal\"",
		"unknown aesthetic":  "[scale.weight]\nkind = \"continuous\"",
		"unknown oob":        "[scale.x]\noob = \"wrap\"",
		"continuous shape":   "[scale.shape]\nkind = \"continuous\"",
		"bad limit":          "[scale.x]\nlimits = [true, 1]",
		"bad date_breaks":    "[scale.x]\nkind = \"datetime\"\ndate_breaks = \"1 fortnight\"",
		"unknown palette":    "[scale.fill]\npalette = \"rainbow\"",
		"mismatched labels":  "[scale.x]\nbreaks = [1, 2]\nlabels = [\"one\"]",
		"bad expand":         "[scale.x]\nexpand = [1, 2, 3]",
		"bad timezone":       "[scale.x]\nkind = \"datetime\"\ntimezone = \"Nowhere/Special\"",
		"datetime linetype":  "[scale.linetype]\nkind = \"datetime\"",
		"datetime limits":    "[scale.x]\nkind = \"datetime\"\nlimits = [2024-01-01T00:00:00Z]",
		"bad datetime break": "[scale.x]\nkind = \"datetime\"\nbreaks = [\"soon\"]",
		"bad brewer palette": "[scale.color]\nkind = \"discrete\"\npalette = \"NoSuchPalette\"",
	} {
		_, err := parseScales(t, src)
		if !errors.Is(err, ErrConfig) {
			t.Errorf("%s: got %v, want a configuration error", name, err)
		}
	}
}
