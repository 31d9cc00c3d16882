// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scale

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/aclements/plotscale/internal/trans"
	"github.com/charmbracelet/log"
)

// A File is a set of scale configurations read from TOML, keyed by
// aesthetic name:
//
//	[scale.y]
//	trans = "log10"
//	limits = [1, 1000]
//
//	[scale.color]
//	kind = "discrete"
//	palette = "Set1"
type File struct {
	Scale map[string]*Config `toml:"scale"`
}

// Config configures one scale. Fields left unset select the scale's
// defaults.
type Config struct {
	// Kind is "continuous", "discrete", or "datetime".
	Kind string `toml:"kind"`
	Name string `toml:"name"`

	Trans string `toml:"trans"`
	// Limits, Breaks, and MinorBreaks hold numbers for continuous
	// scales, level names for discrete scales, and TOML datetimes or
	// RFC 3339 strings for datetime scales.
	Limits      []any    `toml:"limits"`
	Breaks      []any    `toml:"breaks"`
	Labels      []string `toml:"labels"`
	MinorBreaks []any    `toml:"minor_breaks"`
	NBreaks     int      `toml:"n_breaks"`
	NMinor      int      `toml:"n_minor"`
	Expand      []any    `toml:"expand"`
	OOB         string   `toml:"oob"`

	Drop        *bool `toml:"drop"`
	NARm        bool  `toml:"na_rm"`
	NATranslate *bool `toml:"na_translate"`

	DateBreaks      string `toml:"date_breaks"`
	DateLabels      string `toml:"date_labels"`
	DateMinorBreaks string `toml:"date_minor_breaks"`
	Timezone        string `toml:"timezone"`

	Palette string `toml:"palette"`
}

// ParseFile parses a TOML scale configuration. Unknown keys are logged
// as warnings and otherwise ignored.
func ParseFile(data []byte, logger *log.Logger) (*File, error) {
	if logger == nil {
		logger = log.Default()
	}
	var f File
	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return nil, fmt.Errorf("parsing scale config: %w", err)
	}
	for _, key := range md.Undecoded() {
		logger.Warn("ignoring unknown scale option", "key", key.String())
	}
	return &f, nil
}

// ReadFile reads and parses a TOML scale configuration file.
func ReadFile(path string, logger *log.Logger) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := ParseFile(data, logger)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Scales builds the configured scales. Aesthetic names that aren't
// known are configuration errors.
func (f *File) Scales(logger *log.Logger) (map[Aes]Scale, error) {
	out := make(map[Aes]Scale)
	for name, c := range f.Scale {
		a, ok := AesFromName(name)
		if !ok {
			return nil, configErrorf(name, "unknown aesthetic %q", name)
		}
		s, err := NewFromConfig(a, c, logger)
		if err != nil {
			return nil, err
		}
		out[a] = s
	}
	return out, nil
}

// NewFromConfig builds the scale for aesthetic a described by c. A
// position aesthetic gets a scale for its whole family, for example y,
// ymin, ymax, yend, and yintercept.
func NewFromConfig(a Aes, c *Config, logger *log.Logger) (Scale, error) {
	if c == nil {
		c = new(Config)
	}
	aes := []Aes{a}
	switch {
	case a.IsX():
		aes = XAes
	case a.IsY():
		aes = YAes
	}
	name := c.Name
	if name == "" {
		name = a.Name()
	}

	switch c.Kind {
	case "", "continuous":
		if a.IsPosition() {
			opts, err := continuousOptions[float64](name, c, logger)
			if err != nil {
				return nil, err
			}
			return NewPositionContinuous(aes, opts)
		}
		return newContinuousFromConfig(a, aes, name, c, logger)

	case "datetime":
		loc := time.UTC
		if c.Timezone != "" {
			l, err := time.LoadLocation(c.Timezone)
			if err != nil {
				return nil, &ConfigError{Scale: name, Msg: "bad timezone", Err: err}
			}
			loc = l
		}
		// Limits and breaks are read as times by datetimeOptions.
		base := *c
		base.Limits, base.Breaks = nil, nil
		if a.IsPosition() {
			opts, err := continuousOptions[float64](name, &base, logger)
			if err != nil {
				return nil, err
			}
			dopts, err := datetimeOptions(opts, c, loc)
			if err != nil {
				return nil, err
			}
			return NewPositionDatetime(aes, dopts)
		}
		if a != AesColor && a != AesFill {
			return nil, configErrorf(name, "datetime scales are not supported for %s", a)
		}
		pal, ok := continuousColorPalettes[paletteName(c.Palette, "viridis")]
		if !ok {
			return nil, configErrorf(name, "unknown continuous palette %q", c.Palette)
		}
		opts, err := continuousOptions[color.Color](name, &base, logger)
		if err != nil {
			return nil, err
		}
		opts.Palette, opts.NAValue = pal, naColor
		dopts, err := datetimeOptions(opts, c, loc)
		if err != nil {
			return nil, err
		}
		return NewDatetime(aes, dopts)

	case "discrete":
		if a.IsPosition() {
			opts, err := discreteOptions[float64](name, c, logger)
			if err != nil {
				return nil, err
			}
			return NewPositionDiscrete(aes, opts)
		}
		return newDiscreteFromConfig(a, aes, name, c, logger)
	}
	return nil, configErrorf(name, "unknown scale kind %q", c.Kind)
}

// naColor is the default color for missing values.
var naColor color.Color = color.RGBA{0x7f, 0x7f, 0x7f, 0xff}

func paletteName(name, def string) string {
	if name == "" {
		return def
	}
	return name
}

func newContinuousFromConfig(a Aes, aes []Aes, name string, c *Config, logger *log.Logger) (Scale, error) {
	switch a {
	case AesColor, AesFill:
		pal, ok := continuousColorPalettes[paletteName(c.Palette, "viridis")]
		if !ok {
			return nil, configErrorf(name, "unknown continuous palette %q", c.Palette)
		}
		opts, err := continuousOptions[color.Color](name, c, logger)
		if err != nil {
			return nil, err
		}
		opts.Palette, opts.NAValue = pal, naColor
		return NewContinuous(aes, opts)
	case AesSize, AesAlpha:
		opts, err := continuousOptions[float64](name, c, logger)
		if err != nil {
			return nil, err
		}
		if a == AesSize {
			opts.Palette = RangePalette(1, 6)
		} else {
			opts.Palette = RangePalette(0.1, 1)
		}
		opts.NAValue = math.NaN()
		return NewContinuous(aes, opts)
	}
	return nil, configErrorf(name, "continuous scales are not supported for %s", a)
}

func newDiscreteFromConfig(a Aes, aes []Aes, name string, c *Config, logger *log.Logger) (Scale, error) {
	switch a {
	case AesColor, AesFill:
		pal, err := discreteColorPalette(c.Palette)
		if err != nil {
			return nil, &ConfigError{Scale: name, Msg: "bad palette", Err: err}
		}
		opts, err := discreteOptions[color.Color](name, c, logger)
		if err != nil {
			return nil, err
		}
		opts.Palette, opts.NAValue = pal, naColor
		return NewDiscrete(aes, opts)
	case AesShape, AesLinetype:
		opts, err := discreteOptions[string](name, c, logger)
		if err != nil {
			return nil, err
		}
		if a == AesShape {
			opts.Palette = Shapes
		} else {
			opts.Palette = Linetypes
		}
		return NewDiscrete(aes, opts)
	case AesSize, AesAlpha:
		opts, err := discreteOptions[float64](name, c, logger)
		if err != nil {
			return nil, err
		}
		if a == AesSize {
			opts.Palette = OrdinalRange(2, 6)
		} else {
			opts.Palette = OrdinalRange(0.1, 1)
		}
		opts.NAValue = math.NaN()
		return NewDiscrete(aes, opts)
	}
	return nil, configErrorf(name, "discrete scales are not supported for %s", a)
}

func continuousOptions[T any](name string, c *Config, logger *log.Logger) (ContinuousOptions[T], error) {
	opts := ContinuousOptions[T]{Name: name, NBreaks: c.NBreaks, Logger: logger}
	var err error
	if c.Trans != "" {
		if opts.Trans, err = trans.Get(c.Trans); err != nil {
			return opts, &ConfigError{Scale: name, Msg: "bad trans", Err: err}
		}
	}
	if c.Limits != nil {
		lim, err := floats(name, "limits", c.Limits)
		if err != nil {
			return opts, err
		}
		opts.Limits = Fixed(lim...)
	}
	if c.Breaks != nil {
		b, err := floats(name, "breaks", c.Breaks)
		if err != nil {
			return opts, err
		}
		opts.Breaks = BreaksAt(b...)
	}
	if c.Labels != nil {
		opts.Labels = LabelsAt[float64](c.Labels...)
	}
	switch {
	case c.MinorBreaks != nil:
		mb, err := floats(name, "minor_breaks", c.MinorBreaks)
		if err != nil {
			return opts, err
		}
		opts.MinorBreaks = MinorAt(mb...)
	case c.NMinor > 0:
		opts.MinorBreaks = MinorCount(c.NMinor)
	}
	if c.Expand != nil {
		if opts.Expand, err = floats(name, "expand", c.Expand); err != nil {
			return opts, err
		}
	}
	if c.OOB != "" {
		oob, ok := oobByName[c.OOB]
		if !ok {
			return opts, configErrorf(name, "unknown oob %q", c.OOB)
		}
		opts.OOB = oob
	}
	return opts, nil
}

// datetimeOptions extends co for a datetime scale. Limits and breaks
// are read as times, and an empty limit string leaves that side to the
// trained range.
func datetimeOptions[T any](co ContinuousOptions[T], c *Config, loc *time.Location) (DatetimeOptions[T], error) {
	opts := DatetimeOptions[T]{
		ContinuousOptions: co,
		Location:          loc,
		DateBreaks:        c.DateBreaks,
		DateMinorBreaks:   c.DateMinorBreaks,
		DateLabels:        c.DateLabels,
	}
	if c.Limits != nil {
		lim, err := times(co.Name, "limits", c.Limits)
		if err != nil {
			return opts, err
		}
		if len(lim) != 2 {
			return opts, configErrorf(co.Name, "datetime limits need 2 values, got %d", len(lim))
		}
		opts.Limits = TimeLimits(lim[0], lim[1])
	}
	if c.Breaks != nil {
		b, err := times(co.Name, "breaks", c.Breaks)
		if err != nil {
			return opts, err
		}
		opts.Breaks = TimeBreaks(b...)
	}
	return opts, nil
}

func discreteOptions[T any](name string, c *Config, logger *log.Logger) (DiscreteOptions[T], error) {
	opts := DiscreteOptions[T]{
		Name:        name,
		Drop:        c.Drop,
		NARm:        c.NARm,
		NATranslate: c.NATranslate,
		Logger:      logger,
	}
	if c.Limits != nil {
		opts.Limits = Fixed(strs(c.Limits)...)
	}
	if c.Breaks != nil {
		opts.Breaks = BreaksAt(strs(c.Breaks)...)
	}
	if c.Labels != nil {
		opts.Labels = LabelsAt[string](c.Labels...)
	}
	if c.Expand != nil {
		var err error
		if opts.Expand, err = floats(name, "expand", c.Expand); err != nil {
			return opts, err
		}
	}
	return opts, nil
}

// floats converts TOML values to float64s. Datetimes and RFC 3339
// strings convert to seconds since the Unix epoch.
func floats(name, key string, vals []any) ([]float64, error) {
	out := make([]float64, len(vals))
	for i, v := range vals {
		switch v := v.(type) {
		case int64:
			out[i] = float64(v)
		case float64:
			out[i] = v
		case time.Time:
			out[i] = trans.ToSeconds(v)
		case string:
			t, err := time.Parse(time.RFC3339, v)
			if err != nil {
				return nil, &ConfigError{Scale: name, Msg: fmt.Sprintf("bad %s value %q", key, v), Err: err}
			}
			out[i] = trans.ToSeconds(t)
		default:
			return nil, configErrorf(name, "bad %s value %v of type %T", key, v, v)
		}
	}
	return out, nil
}

// times converts TOML values to times. Numbers are seconds since the
// Unix epoch, and an empty string is the zero time.
func times(name, key string, vals []any) ([]time.Time, error) {
	out := make([]time.Time, len(vals))
	for i, v := range vals {
		switch v := v.(type) {
		case time.Time:
			out[i] = v
		case int64:
			out[i] = time.Unix(v, 0).UTC()
		case float64:
			out[i] = trans.FromSeconds(v, time.UTC)
		case string:
			if v == "" {
				continue
			}
			t, err := time.Parse(time.RFC3339, v)
			if err != nil {
				return nil, &ConfigError{Scale: name, Msg: fmt.Sprintf("bad %s value %q", key, v), Err: err}
			}
			out[i] = t
		default:
			return nil, configErrorf(name, "bad %s value %v of type %T", key, v, v)
		}
	}
	return out, nil
}

func strs(vals []any) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		if s, ok := v.(string); ok {
			out[i] = s
		} else {
			out[i] = fmt.Sprint(v)
		}
	}
	return out
}
