// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"bytes"
	"cmp"
	"context"
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"os/exec"
	"slices"
	"strconv"
	"strings"

	"github.com/aclements/go-gg/table"
	"github.com/aclements/plotscale/internal/scale"
)

type gnuplotter struct {
	*Rendering
	code bytes.Buffer
}

// Gnuplot writes r as a gnuplot script to out, or if term is "png", runs
// gnuplot on the script and writes the resulting image to out.
func (r *Rendering) Gnuplot(ctx context.Context, term string, out io.Writer) error {
	pl := gnuplotter{Rendering: r}
	if err := pl.plot(term); err != nil {
		return err
	}
	code := pl.code.Bytes()

	switch term {
	case "":
		_, err := out.Write(code)
		return err
	case "png":
		cmd := exec.CommandContext(ctx, "gnuplot")
		stdin, err := cmd.StdinPipe()
		if err != nil {
			return fmt.Errorf("creating pipe to gnuplot: %w", err)
		}
		cmd.Stdout = out
		cmd.Stderr = os.Stderr
		if err := cmd.Start(); err != nil {
			return fmt.Errorf("starting gnuplot: %w", err)
		}
		defer cmd.Process.Kill()
		if _, err := stdin.Write(code); err != nil {
			return fmt.Errorf("writing to gnuplot: %w", err)
		}
		stdin.Close()
		if err := cmd.Wait(); err != nil {
			return fmt.Errorf("gnuplot failed: %w", err)
		}
	}
	return nil
}

func (p *gnuplotter) plot(term string) error {
	x, y := p.View(scale.AesX), p.View(scale.AesY)
	if x == nil || y == nil {
		return fmt.Errorf("gnuplot output needs both x and y")
	}

	switch term {
	case "":
		// Just code
	case "png":
		fmt.Fprintf(&p.code, "set terminal pngcairo size 640,480\n")
	default:
		return fmt.Errorf("unknown output type %s", term)
	}

	p.axis("x", x)
	p.axis("y", y)

	l := p.Layer("summary")
	if l == nil {
		l = p.Layer("points")
	}
	if l == nil {
		return fmt.Errorf("nothing to plot")
	}
	return p.onePlot(l.Data)
}

// axis sets up a gnuplot axis from a scale view. Positions are already
// in the scale's transform space, so the axis itself is linear and the
// tics carry the labels.
func (p *gnuplotter) axis(name string, v *scale.View) {
	fmt.Fprintf(&p.code, "set %slabel %s\n", name, gpString(v.Name))
	fmt.Fprintf(&p.code, "set %srange [%g:%g]\n", name, min(v.Range[0], v.Range[1]), max(v.Range[0], v.Range[1]))
	if v.Range[0] > v.Range[1] {
		fmt.Fprintf(&p.code, "set %srange reverse\n", name)
	}
	if len(v.Breaks) == 0 {
		fmt.Fprintf(&p.code, "unset %stics\n", name)
		return
	}
	tics := make([]string, len(v.Breaks))
	for i, b := range v.Breaks {
		label := ""
		if i < len(v.Labels) {
			label = v.Labels[i]
		}
		tics[i] = fmt.Sprintf("%s %g", gpString(label), b)
	}
	fmt.Fprintf(&p.code, "set %stics (%s)\n", name, strings.Join(tics, ", "))
	for _, m := range v.MinorBreaks {
		fmt.Fprintf(&p.code, "set %stics add (\"\" %g 1)\n", name, m)
	}
}

// series is the rows of one group, sorted by x.
type series struct {
	name string
	rows []int
}

func (p *gnuplotter) onePlot(t *table.Table) error {
	xs, _ := t.Column(scale.AesX.Name()).([]float64)
	ys, _ := t.Column(scale.AesY.Name()).([]float64)
	ymin, _ := t.Column(scale.AesYMin.Name()).([]float64)
	ymax, _ := t.Column(scale.AesYMax.Name()).([]float64)
	colors, _ := t.Column(scale.AesColor.Name()).([]color.Color)
	linetypes, _ := t.Column(scale.AesLinetype.Name()).([]string)
	groups, _ := t.Column(groupCol).([]string)
	if xs == nil || ys == nil {
		return fmt.Errorf("gnuplot output needs numeric x and y positions")
	}

	// Sort rows by group and then by x, since a line plot must have X
	// sorted numerically.
	rows := make([]int, t.Len())
	for i := range rows {
		rows[i] = i
	}
	group := func(i int) string {
		if groups == nil {
			return ""
		}
		return groups[i]
	}
	slices.SortStableFunc(rows, func(a, b int) int {
		if c := cmp.Compare(group(a), group(b)); c != 0 {
			return c
		}
		return cmp.Compare(xs[a], xs[b])
	})
	var all []series
	sliceBy(rows, group, func(name string, rows []int) {
		all = append(all, series{name, rows})
	})

	finite := func(vs ...float64) bool {
		for _, v := range vs {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
		return true
	}

	var plotArgs []string
	var data strings.Builder
	anyRange := false
	for i, s := range all {
		style := fmt.Sprintf("linetype %d", i+1)
		if colors != nil {
			style = "linecolor rgb " + gpString(gpColor(colors[s.rows[0]]))
		}
		dash := ""
		if linetypes != nil {
			dash = fmt.Sprintf(" dashtype %d", gpDashType(linetypes[s.rows[0]]))
		}

		// Emit range
		if ymin != nil && ymax != nil {
			var rng strings.Builder
			for _, r := range s.rows {
				if finite(xs[r], ymin[r], ymax[r]) {
					fmt.Fprintf(&rng, "%g %g %g\n", xs[r], ymin[r], ymax[r])
				}
			}
			if rng.Len() > 0 {
				anyRange = true
				plotArgs = append(plotArgs, fmt.Sprintf("'-' using 1:2:3 with filledcurves title '' %s fs transparent solid 0.25", style))
				data.WriteString(rng.String())
				data.WriteString("e\n")
			}
		}

		// Emit center curve.
		plotArgs = append(plotArgs, fmt.Sprintf("'-' using 1:2 with lp title %s %s%s", gpString(s.name), style, dash))
		for _, r := range s.rows {
			if finite(xs[r], ys[r]) {
				fmt.Fprintf(&data, "%g %g\n", xs[r], ys[r])
			}
		}
		data.WriteString("e\n")
	}

	if anyRange {
		// Add a legend entry for the range.
		plotArgs = append(plotArgs, fmt.Sprintf("1/0 with filledcurves title '%v%% confidence' fc linetype 0 fs transparent solid 0.25", p.Confidence*100))
	}

	fmt.Fprintf(&p.code, "plot %s\n", strings.Join(plotArgs, ", "))
	p.code.WriteString(data.String())
	return nil
}

// gpColor formats c as a gnuplot "#rrggbb" color.
func gpColor(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}

// gpDashType returns the gnuplot dash type for a linetype value.
func gpDashType(lt string) int {
	for i, name := range []string{"solid", "22", "42", "44", "13", "1343", "73", "2262"} {
		if lt == name {
			return i + 1
		}
	}
	return 1
}

// gpString returns s escaped for Gnuplot
func gpString(s string) string {
	// I can't find any documentation on Gnuplot's escape syntax, but as far as
	// I can tell, it's compatible with Go's escaping rules.
	return strconv.Quote(s)
}
