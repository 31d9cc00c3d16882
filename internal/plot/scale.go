// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/aclements/go-gg/table"
	"github.com/aclements/plotscale/internal/scale"
	"github.com/aclements/plotscale/internal/trans"
	"github.com/charmbracelet/log"
	"golang.org/x/perf/benchunit"
)

var naColor color.Color = color.Gray{0x7f}

// scalesFor returns the scales for the aesthetic columns of layers, in
// order of each scale's first aesthetic. Aesthetics without a configured
// scale get a default scale chosen by the type of their column.
func (p *Plot) scalesFor(layers []Layer, logger *log.Logger) ([]scale.Scale, error) {
	byAes := make(map[scale.Aes]scale.Scale, len(p.scales))
	for aes, s := range p.scales {
		byAes[aes] = s
	}
	var out []scale.Scale
	seen := make(map[scale.Scale]bool)
	for aes := scale.Aes(0); aes < scale.NumAes; aes++ {
		var col table.Slice
		for _, l := range layers {
			if col = l.Data.Column(aes.Name()); col != nil {
				break
			}
		}
		if col == nil {
			continue
		}
		s, ok := byAes[aes]
		if !ok {
			var err error
			s, err = p.defaultScale(aes, col, logger)
			if err != nil {
				return nil, err
			}
			for _, a := range s.Aesthetics() {
				byAes[a] = s
			}
		}
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out, nil
}

// defaultScale returns a scale for aes suited to the values in col.
func (p *Plot) defaultScale(aes scale.Aes, col table.Slice, logger *log.Logger) (scale.Scale, error) {
	_, numeric := col.([]float64)
	name := p.label(aes)

	if aes.IsPosition() {
		family, base := scale.XAes, p.logScale.Get(scale.AesX)
		if aes.IsY() {
			family, base = scale.YAes, p.logScale.Get(scale.AesY)
		}
		if !numeric {
			return scale.NewPositionDiscrete(family, scale.DiscreteOptions[float64]{Name: name, Logger: logger})
		}
		opts := scale.ContinuousOptions[float64]{Name: name, Logger: logger}
		if base != 0 {
			opts.Trans = trans.Log(float64(base))
		}
		if p.dvAes != aesNone && p.dvAes.IsY() == aes.IsY() && p.compareAes == aesNone {
			opts.Labels = unitLabels(p.unitNames())
		}
		return scale.NewPositionContinuous(family, opts)
	}

	aess := []scale.Aes{aes}
	switch aes {
	case scale.AesColor, scale.AesFill:
		if numeric {
			return scale.NewContinuous(aess, scale.ContinuousOptions[color.Color]{
				Name: name, Palette: scale.Viridis, NAValue: naColor, Logger: logger,
			})
		}
		return scale.NewDiscrete(aess, scale.DiscreteOptions[color.Color]{
			Name: name, Palette: scale.DefaultColors, NAValue: naColor, Logger: logger,
		})
	case scale.AesSize, scale.AesAlpha:
		lo, hi := 1.0, 6.0
		if aes == scale.AesAlpha {
			lo, hi = 0.1, 1
		}
		if numeric {
			return scale.NewContinuous(aess, scale.ContinuousOptions[float64]{
				Name: name, Palette: scale.RangePalette(lo, hi), NAValue: math.NaN(), Logger: logger,
			})
		}
		return scale.NewDiscrete(aess, scale.DiscreteOptions[float64]{
			Name: name, Palette: scale.OrdinalRange(lo, hi), NAValue: math.NaN(), Logger: logger,
		})
	case scale.AesShape, scale.AesLinetype:
		if numeric {
			return nil, fmt.Errorf("%s data must not be numeric", aes.Name())
		}
		pal, na := scale.Shapes, "circle"
		if aes == scale.AesLinetype {
			pal, na = scale.Linetypes, "solid"
		}
		return scale.NewDiscrete(aess, scale.DiscreteOptions[string]{
			Name: name, Palette: pal, NAValue: na, Logger: logger,
		})
	}
	return nil, fmt.Errorf("no default scale for %s", aes.Name())
}

// label returns the title of the scale for aes. The dependent variable
// is titled by its units.
func (p *Plot) label(aes scale.Aes) string {
	if p.dvAes != aesNone && p.dvAes.IsY() == aes.IsY() && aes.IsPosition() {
		label := strings.Join(p.unitNames(), ", ")
		if p.compareAes != aesNone {
			label += " ratio"
		}
		return label
	}
	return p.aes.Get(aes).String()
}

// unitLabels returns labels that format breaks with an SI prefix suited
// to units. Mixed units are treated as decimal.
func unitLabels(units []string) scale.Labels[float64] {
	cls := benchunit.Decimal
	if len(units) == 1 {
		cls = benchunit.ClassOf(units[0])
	}
	return scale.LabelsFunc(func(breaks []float64) []string {
		// Scale by the largest break. Otherwise this will try to pick a
		// scale that keeps precision for the smallest value, which isn't
		// what you want on an axis.
		hi := 0.0
		for _, b := range breaks {
			if !math.IsInf(b, 0) && !math.IsNaN(b) {
				hi = math.Max(hi, math.Abs(b))
			}
		}
		scaler := benchunit.CommonScale([]float64{hi}, cls)
		labels := make([]string, len(breaks))
		for i, b := range breaks {
			labels[i] = scaler.Format(b)
		}
		return labels
	})
}
