// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"strings"

	"github.com/aclements/go-gg/table"
	"github.com/aclements/plotscale/internal/scale"
	"golang.org/x/perf/benchmath"
)

// A Layer is one set of data on a plot, as a table with a column for
// each aesthetic.
type Layer struct {
	Name string
	Data *table.Table
}

// groupCol is the column holding the series each row belongs to. It is
// not named after an aesthetic, so no scale touches it.
const groupCol = "group"

func pointsKinds(pts []point, aes scale.Aes) valueKinds {
	kinds := kindAll
	for _, pt := range pts {
		kinds &= pt.Get(aes).kinds
	}
	return kinds
}

// layers returns the layers of p: the raw points, and if p has a
// dependent variable, a summary of the points at each distinct value of
// the other aesthetics.
func (p *Plot) layers() ([]Layer, error) {
	layers := []Layer{{Name: "points", Data: p.table(p.points, false)}}
	if p.dvAes == aesNone {
		return layers, nil
	}
	sum, err := p.summarize(p.points)
	if err != nil {
		return nil, err
	}
	layers = append(layers, Layer{Name: "summary", Data: p.table(sum, true)})
	return layers, nil
}

// table returns pts as a table. Each aesthetic column is []float64 if
// every point has a continuous value for it, and []string otherwise. If
// summary is set, the points must have summaries for the dependent
// variable, and the table also gets min and max columns for its range.
func (p *Plot) table(pts []point, summary bool) *table.Table {
	var b table.Builder
	for _, aes := range p.used {
		b.Add(aes.Name(), column(pts, aes))
	}
	if summary {
		lo, hi := make([]float64, len(pts)), make([]float64, len(pts))
		for i, pt := range pts {
			s := pt.Get(p.dvAes).summary
			lo[i], hi[i] = s.Lo, s.Hi
		}
		minAes, maxAes := scale.AesYMin, scale.AesYMax
		if p.dvAes.IsX() {
			minAes, maxAes = scale.AesXMin, scale.AesXMax
		}
		b.Add(minAes.Name(), lo)
		b.Add(maxAes.Name(), hi)
	}
	groups := make([]string, len(pts))
	for i, pt := range pts {
		groups[i] = p.group(pt)
	}
	b.Add(groupCol, groups)
	return b.Done()
}

func column(pts []point, aes scale.Aes) table.Slice {
	if pointsKinds(pts, aes)&kindContinuous != 0 {
		xs := make([]float64, len(pts))
		for i, pt := range pts {
			xs[i] = pt.Get(aes).val
		}
		return xs
	}
	ss := make([]string, len(pts))
	for i, pt := range pts {
		ss[i] = pt.Get(aes).label()
	}
	return ss
}

// group returns the name of the series pt belongs to: the values of its
// non-position aesthetics.
func (p *Plot) group(pt point) string {
	var parts []string
	for _, aes := range p.used {
		if !aes.IsPosition() {
			parts = append(parts, pt.Get(aes).label())
		}
	}
	return strings.Join(parts, " ")
}

// unitNames returns the distinct units of the points in p, in the order
// they first appear.
func (p *Plot) unitNames() []string {
	if p.unitAes == aesNone {
		return nil
	}
	var names []string
	seen := make(map[string]bool)
	for _, pt := range p.points {
		n := pt.Get(p.unitAes).key.Get(p.unitField)
		if !seen[n] {
			seen[n] = true
			names = append(names, n)
		}
	}
	return names
}

// assumption returns the distribution assumption for the unit of pt.
func (p *Plot) assumption(pt point) benchmath.Assumption {
	if p.unitAes == aesNone || p.units == nil {
		return benchmath.AssumeNothing
	}
	unit := pt.Get(p.unitAes).key.Get(p.unitField)
	return p.units.GetAssumption(unit)
}
