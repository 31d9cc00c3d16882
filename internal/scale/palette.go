// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scale

import (
	"fmt"
	"image/color"
	"slices"

	"github.com/aclements/go-gg/palette"
	"github.com/aclements/go-gg/palette/brewer"
	"github.com/aclements/go-moremath/vec"
)

// Continuous palettes map values in [0, 1] to aesthetic values.

// Viridis maps each value through the viridis color map.
func Viridis(xs []float64) []color.Color {
	return mapColors(palette.Viridis, xs)
}

// Gradient returns a palette that interpolates between lo and hi.
func Gradient(lo, hi color.RGBA) func(xs []float64) []color.Color {
	g := palette.RGBGradient{Colors: []color.RGBA{lo, hi}}
	return func(xs []float64) []color.Color {
		return mapColors(g, xs)
	}
}

func mapColors(p palette.Continuous, xs []float64) []color.Color {
	out := make([]color.Color, len(xs))
	for i, x := range xs {
		out[i] = p.Map(x)
	}
	return out
}

// RangePalette returns a palette that maps [0, 1] linearly onto
// [lo, hi], for sizes and alpha.
func RangePalette(lo, hi float64) func(xs []float64) []float64 {
	return func(xs []float64) []float64 {
		return vec.Map(func(x float64) float64 { return lo + x*(hi-lo) }, xs)
	}
}

// Discrete palettes return n aesthetic values.

// defaultColors is the qualitative palette used for few levels.
var defaultColors = []color.Color{
	color.RGBA{0x4c, 0x72, 0xb0, 0xff},
	color.RGBA{0x55, 0xa8, 0x68, 0xff},
	color.RGBA{0xc4, 0x4e, 0x52, 0xff},
	color.RGBA{0x81, 0x72, 0xb2, 0xff},
	color.RGBA{0xcc, 0xb9, 0x74, 0xff},
	color.RGBA{0x64, 0xb5, 0xcd, 0xff},
}

// DefaultColors returns a qualitative palette for n levels. Beyond the
// size of the built-in list, it falls back to evenly spaced viridis
// colors.
func DefaultColors(n int) Palette[color.Color] {
	if n <= len(defaultColors) {
		return Ordered(defaultColors[:n]...)
	}
	return ViridisLevels(n)
}

// ViridisLevels returns n evenly spaced viridis colors.
func ViridisLevels(n int) Palette[color.Color] {
	switch {
	case n <= 0:
		return Ordered[color.Color]()
	case n == 1:
		return Ordered(palette.Viridis.Map(0.5))
	}
	return Ordered(mapColors(palette.Viridis, vec.Linspace(0, 1, n))...)
}

// Brewer returns the ColorBrewer palette with the given name, such as
// "Set1" or "Blues". For n levels it uses the smallest variant with at
// least n colors, or the largest variant if there is none.
func Brewer(name string) (func(n int) Palette[color.Color], error) {
	variants, ok := brewer.ByName[name]
	if !ok {
		return nil, fmt.Errorf("unknown brewer palette %q", name)
	}
	var sizes []int
	for k := range variants {
		sizes = append(sizes, k)
	}
	slices.Sort(sizes)
	return func(n int) Palette[color.Color] {
		size := sizes[len(sizes)-1]
		for _, k := range sizes {
			if k >= n {
				size = k
				break
			}
		}
		var cols []color.Color
		for _, c := range variants[size] {
			cols = append(cols, c)
		}
		return Ordered(cols...)
	}, nil
}

var shapes = []string{"circle", "triangle", "square", "plus", "cross", "diamond"}

// Shapes returns up to six point shapes. Levels beyond six are not
// covered and map to the NA value.
func Shapes(n int) Palette[string] {
	return Ordered(shapes[:min(n, len(shapes))]...)
}

var linetypes = []string{"solid", "22", "42", "44", "13", "1343", "73", "2262"}

// Linetypes returns up to eight dash patterns.
func Linetypes(n int) Palette[string] {
	return Ordered(linetypes[:min(n, len(linetypes))]...)
}

// OrdinalRange returns a discrete palette of n values evenly spaced
// from lo to hi.
func OrdinalRange(lo, hi float64) func(n int) Palette[float64] {
	return func(n int) Palette[float64] {
		switch {
		case n <= 0:
			return Ordered[float64]()
		case n == 1:
			return Ordered(hi)
		}
		return Ordered(vec.Linspace(lo, hi, n)...)
	}
}

var continuousColorPalettes = map[string]func([]float64) []color.Color{
	"viridis": Viridis,
	"gradient": Gradient(
		color.RGBA{0x13, 0x2b, 0x43, 0xff},
		color.RGBA{0x56, 0xb1, 0xf7, 0xff},
	),
}

// discreteColorPalette returns the discrete color palette with the given
// name. Names not built in are looked up as brewer palettes.
func discreteColorPalette(name string) (func(n int) Palette[color.Color], error) {
	switch name {
	case "", "default":
		return DefaultColors, nil
	case "viridis":
		return ViridisLevels, nil
	}
	return Brewer(name)
}
