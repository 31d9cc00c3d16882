// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"fmt"
	"slices"

	"github.com/aclements/plotscale/internal/scale"
	"golang.org/x/perf/benchmath"
)

// summary summarizes the dependent variable of pts, which must share a
// unit, at the plot's confidence.
func (p *Plot) summary(pts []point) benchmath.Summary {
	xs := make([]float64, len(pts))
	for i, pt := range pts {
		xs[i] = pt.Get(p.dvAes).val
	}
	sample := benchmath.NewSample(xs, &benchmath.DefaultThresholds)
	return p.assumption(pts[0]).Summary(sample, p.confidence)
}

// summarize collapses points that differ only in the dependent variable
// into one point whose value summarizes them. Points that are already
// summaries are returned as they are.
func (p *Plot) summarize(pts []point) ([]point, error) {
	kinds := pointsKinds(pts, p.dvAes)
	switch {
	case kinds&kindSummary != 0:
		return pts, nil
	case kinds&kindContinuous == 0:
		return nil, fmt.Errorf("summarize: %s data must be numeric", p.dvAes.Name())
	}

	groups, keys := groupBy(pts, func(pt point) point {
		pt.Set(p.dvAes, value{})
		return pt
	})
	out := make([]point, len(keys))
	for i, k := range keys {
		out[i] = groups[k][0]
		out[i].Set(p.dvAes, summarized(p.summary(groups[k]), kinds&kindRatio))
	}
	return out, nil
}

// TransformCompare replaces the dependent variable of each point with its
// ratio to the first color value at the same position. Each color other
// than the first becomes "color vs first". The ratio is a summary: the
// compared samples' summary divided by the baseline's center.
func (p *Plot) TransformCompare() error {
	if p.dvAes == aesNone {
		return fmt.Errorf("compare: no dimension shows .value")
	}
	if !slices.Contains(p.used, scale.AesColor) {
		return fmt.Errorf("compare: no projection is mapped to color")
	}
	pts, err := p.compare(scale.AesColor)
	if err != nil {
		return err
	}
	p.points = pts
	p.compareAes = scale.AesColor
	return nil
}

// compare normalizes the points of each distinct value of aes against
// the first value of aes at the same position. Positions without the
// baseline are dropped.
func (p *Plot) compare(aes scale.Aes) ([]point, error) {
	if len(p.points) == 0 {
		return nil, nil
	}
	if pointsKinds(p.points, p.dvAes)&kindContinuous == 0 {
		return nil, fmt.Errorf("compare: %s data must be numeric", p.dvAes.Name())
	}

	pts := slices.Clone(p.points)
	slices.SortStableFunc(pts, func(a, b point) int {
		return a.Get(aes).compare(b.Get(aes))
	})
	base := pts[0].Get(aes)

	groups, keys := groupBy(pts, func(pt point) point {
		pt.Set(aes, value{})
		pt.Set(p.dvAes, value{})
		return pt
	})
	var out []point
	for _, k := range keys {
		byVal, vals := groupBy(groups[k], func(pt point) value {
			return pt.Get(aes)
		})
		if vals[0] != base {
			continue
		}
		denom := p.summary(byVal[base]).Center
		for _, v := range vals[1:] {
			s := p.summary(byVal[v])
			ratio := benchmath.Summary{
				Center:     s.Center / denom,
				Lo:         s.Lo / denom,
				Hi:         s.Hi / denom,
				Confidence: s.Confidence,
			}
			pt := byVal[v][0]
			pt.Set(aes, v.against(base))
			pt.Set(p.dvAes, summarized(ratio, kindRatio))
			out = append(out, pt)
		}
	}
	return out, nil
}
