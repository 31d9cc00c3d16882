// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"fmt"
	"maps"
	"slices"

	"github.com/aclements/plotscale/internal/scale"
	"golang.org/x/perf/benchfmt"
	"golang.org/x/perf/benchproc"
)

// TODO: Do something with the residue. Probably complain if two points we're
// averaging have different residues, much like benchstat does.

// A Plot collects benchmark results as points, one value per bound
// aesthetic, and turns them into scaled layers with Build.
type Plot struct {
	aes  aesMap[projection]
	used []scale.Aes

	// unitAes and unitField locate the .unit field, and dvAes is the
	// aesthetic showing .value. Each is aesNone if unbound.
	unitAes   scale.Aes
	unitField *benchproc.Field
	dvAes     scale.Aes
	// compareAes is the aesthetic TransformCompare normalized against,
	// or aesNone.
	compareAes scale.Aes

	logScale   aesMap[int]
	scales     map[scale.Aes]scale.Scale
	confidence float64
	units      benchfmt.UnitMetadataMap

	points []point
}

func NewPlot(c *Config) (*Plot, error) {
	p := &Plot{
		aes:        c.aes.Copy(),
		used:       slices.Clone(c.used),
		unitAes:    aesNone,
		dvAes:      aesNone,
		compareAes: aesNone,
		logScale:   c.logScale,
		scales:     maps.Clone(c.scales),
		confidence: c.confidence,
	}
	if err := p.bindValue(); err != nil {
		return nil, err
	}
	return p, nil
}

// bindValue finds the aesthetics showing .unit and .value. They come as
// a pair, and .value needs a position aesthetic.
func (p *Plot) bindValue() error {
	for _, aes := range p.used {
		proj := p.aes.Get(aes)
		if proj.unitField != nil {
			if p.unitAes != aesNone {
				return fmt.Errorf("at most one dimension may show .unit")
			}
			p.unitAes, p.unitField = aes, proj.unitField
		}
		if proj.dv {
			if p.dvAes != aesNone {
				return fmt.Errorf("at most one dimension may show .value")
			}
			p.dvAes = aes
		}
	}
	switch {
	case p.unitAes != aesNone && p.dvAes == aesNone:
		return fmt.Errorf(".unit is mapped to the %s dimension, but no dimension shows .value", p.unitAes.Name())
	case p.unitAes == aesNone && p.dvAes != aesNone:
		return fmt.Errorf(".value is mapped to the %s dimension, but no dimension shows .unit", p.dvAes.Name())
	case p.dvAes != aesNone && !p.dvAes.IsPosition():
		return fmt.Errorf(".value must be mapped to a position dimension, not %s", p.dvAes.Name())
	}
	return nil
}

// Add adds the points of benchmark result rec: one for each combination
// of the values projected for each aesthetic. A unit the result doesn't
// report yields no point.
func (p *Plot) Add(rec *benchfmt.Result) {
	pts := []point{{}}
	for _, aes := range p.used {
		proj := p.aes.Get(aes)
		if proj.dv {
			// Set along with the .unit value.
			continue
		}
		vals := proj.project(rec)
		next := make([]point, 0, len(pts)*len(vals))
		for _, pt := range pts {
			for _, v := range vals {
				if proj.unitField != nil {
					x, ok := rec.Value(v.key.Get(proj.unitField))
					if !ok {
						continue
					}
					pt.Set(p.dvAes, number(x))
				}
				pt.Set(aes, v)
				next = append(next, pt)
			}
		}
		pts = next
	}
	p.points = append(p.points, pts...)
}

// Len returns the number of points in p.
func (p *Plot) Len() int {
	return len(p.points)
}

// SetUnits sets the unit metadata used to pick each unit's distribution
// assumption when summarizing.
func (p *Plot) SetUnits(units benchfmt.UnitMetadataMap) {
	p.units = units
}

// sliceBy divides slice s into subslices by equal values of grouper.
func sliceBy[T any, U comparable](s []T, grouper func(T) U, doGroup func(U, []T)) {
	if len(s) == 0 {
		return
	}

	start := 0
	startVal := grouper(s[0])
	for i := 1; i < len(s); i++ {
		val := grouper(s[i])
		if val != startVal {
			doGroup(startVal, s[start:i])
			start, startVal = i, val
		}
	}
	doGroup(startVal, s[start:])
}

// groupBy groups the elements of s according to the value of grouper. It
// maintains the order of elements. If possible, it uses subslices of s, but it
// will copy out of s if grouper returns the same value for discontinuous ranges
// of s.
func groupBy[T any, U comparable](s []T, grouper func(T) U) (map[U][]T, []U) {
	out := make(map[U][]T)
	var keys []U
	sliceBy(s, grouper, func(k U, run []T) {
		if old, ok := out[k]; ok {
			out[k] = append(old[:len(old):len(old)], run...)
			return
		}
		out[k] = run
		keys = append(keys, k)
	})
	return out, keys
}
