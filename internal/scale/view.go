// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scale

import (
	"fmt"
	"strings"
)

// A View is a snapshot of a trained scale, holding everything a guide or
// axis needs to draw it. Views are never modified after they are built.
type View struct {
	Name       string
	Aesthetics []Aes
	Trans      string // Transform name; empty for discrete scales

	// Limits are the continuous limits in transform space. Unused for
	// discrete scales.
	Limits [2]float64
	// Levels are the discrete limits. Unused for continuous scales.
	Levels []Category

	// Range is the expanded limits, and CoordRange is Range in coordinate
	// space.
	Range, CoordRange [2]float64

	// Breaks are the major break positions within Range: transform space
	// values for continuous scales and 1-based level positions for
	// discrete scales. Labels has one entry per break unless labels are
	// disabled.
	Breaks      []float64
	MinorBreaks []float64
	Labels      []string
	// BreakKeys are the level names of a discrete scale's breaks.
	BreakKeys []string
}

func (v *View) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %v", v.Name, v.Aesthetics)
	if v.Trans != "" {
		fmt.Fprintf(&b, " trans=%s limits=[%g, %g]", v.Trans, v.Limits[0], v.Limits[1])
	} else {
		fmt.Fprintf(&b, " levels=%v", v.Levels)
	}
	fmt.Fprintf(&b, " range=[%g, %g]", v.Range[0], v.Range[1])
	for i, x := range v.Breaks {
		if i == 0 {
			b.WriteString(" breaks:")
		}
		if i < len(v.Labels) {
			fmt.Fprintf(&b, " %g=%q", x, v.Labels[i])
		} else {
			fmt.Fprintf(&b, " %g", x)
		}
	}
	return b.String()
}
