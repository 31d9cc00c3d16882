// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import (
	"slices"
	"strconv"
	"strings"

	"github.com/aclements/plotscale/internal/scale"
	"golang.org/x/perf/benchfmt"
	"golang.org/x/perf/benchproc"
)

type Config struct {
	aes aesMap[projection]
	// used lists the aesthetics that have a projection, in Aes order.
	used []scale.Aes

	logScale aesMap[int]

	// scales are explicitly configured scales, keyed by each aesthetic
	// they govern.
	scales map[scale.Aes]scale.Scale

	confidence float64
}

func NewConfig() *Config {
	return &Config{confidence: 0.95}
}

func (c *Config) use(aes scale.Aes) {
	if i, ok := slices.BinarySearch(c.used, aes); !ok {
		c.used = slices.Insert(c.used, i, aes)
	}
}

// SetIV maps independent variable iv to aesthetic aes.
func (c *Config) SetIV(aes scale.Aes, iv *benchproc.Projection) {
	fields := iv.Fields()
	var ivField *benchproc.Field
	if len(fields) == 1 && !fields[0].IsTuple {
		ivField = fields[0]
	}
	var unitField *benchproc.Field
	for _, field := range fields {
		if field.Name == ".unit" {
			unitField = field
		}
	}
	c.aes.Set(aes, projection{iv: iv, ivField: ivField, unitField: unitField})
	c.use(aes)
}

// SetDV maps the dependent variable to aesthetic aes.
func (c *Config) SetDV(aes scale.Aes) {
	c.aes.Set(aes, projection{dv: true})
	c.use(aes)
}

// SetLogScale sets the default scale of aesthetic aes to use a log
// transform in the given base. Base 0 represents a linear scale. It has
// no effect on a scale set with SetScale.
func (c *Config) SetLogScale(aes scale.Aes, base int) {
	c.logScale.Set(aes, base)
}

// SetScale uses s for every aesthetic it governs instead of a default
// scale.
func (c *Config) SetScale(s scale.Scale) {
	if c.scales == nil {
		c.scales = make(map[scale.Aes]scale.Scale)
	}
	for _, aes := range s.Aesthetics() {
		c.scales[aes] = s
	}
}

// SetConfidence sets the confidence level of summary ranges.
func (c *Config) SetConfidence(confidence float64) {
	c.confidence = confidence
}

// A projection maps a [benchfmt.Result] to the values of one aesthetic.
// The zero projection maps every result to the zero value.
type projection struct {
	iv        *benchproc.Projection
	ivField   *benchproc.Field // set if iv has exactly one field
	unitField *benchproc.Field // set if iv has a .unit field

	dv bool
}

// project returns the values r has for p. A projection with a .unit
// field gives one value per unit r reports. If p has a single field
// whose value parses as a number, the values are numbers as well.
func (p projection) project(r *benchfmt.Result) []value {
	var keys []benchproc.Key
	switch {
	case p.dv:
		panic("cannot project .value")
	case p.iv == nil:
		return []value{{kinds: kindDiscrete}}
	case p.unitField != nil:
		keys = p.iv.ProjectValues(r)
	default:
		keys = []benchproc.Key{p.iv.Project(r)}
	}
	vals := make([]value, len(keys))
	for i, k := range keys {
		vals[i] = category(k)
		if p.ivField == nil {
			continue
		}
		if x, err := strconv.ParseFloat(k.Get(p.ivField), 64); err == nil {
			vals[i].kinds |= kindContinuous
			vals[i].val = x
		}
	}
	return vals
}

// String returns the fields of p, for use as a scale name.
func (p projection) String() string {
	switch {
	case p.dv:
		return ".value"
	case p.iv == nil:
		return "<nil>"
	}
	var names []string
	for _, field := range p.iv.FlattenedFields() {
		names = append(names, field.String())
	}
	return strings.Join(names, ",")
}
