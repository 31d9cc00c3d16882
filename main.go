// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command plotscale plots Go benchmark results, training a scale for
// each aesthetic and mapping the results through them.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"strconv"
	"strings"
	"syscall"

	"github.com/aclements/plotscale/internal/plot"
	"github.com/aclements/plotscale/internal/scale"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/perf/benchfmt"
	"golang.org/x/perf/benchproc"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

type aesFlag struct {
	aes scale.Aes
	def string
	doc string
}

var aesFlags = []aesFlag{
	{scale.AesX, ".fullname", "map values of `projection` to the X axis"},
	{scale.AesY, ".value", "map values of `projection` to the Y axis"},
	{scale.AesColor, ".residue", "map values of `projection` to color"},
	{scale.AesLinetype, ".unit", "map values of `projection` to line type"},
	{scale.AesShape, "", "map values of `projection` to point shape"},
	{scale.AesSize, "", "map values of `projection` to point size"},
}

type transformOpt struct {
	doc string
	do  func(p *plot.Plot) error
}

var transformOpts = map[string]transformOpt{
	"compare": {"normalize each value against the first color at the same X",
		(*plot.Plot).TransformCompare},
}

// options are the command line flags.
type options struct {
	aes        map[scale.Aes]*string
	ignore     string
	filter     string
	units      string
	logScale   string
	transform  string
	scales     string
	format     string
	output     string
	parallel   bool
	confidence float64
	strict     bool
	verbose    bool
}

func newRootCmd(w, wErr io.Writer) *cobra.Command {
	opts := options{aes: make(map[scale.Aes]*string)}

	var long strings.Builder
	long.WriteString(`Plot Go benchmark results.

For the syntax of projections, see

  https://pkg.go.dev/golang.org/x/perf/benchproc/syntax

In addition, any projection may be one of the following:

  .unit    The unit of each benchmark-reported metric
  .value   The value of the metric corresponding to .unit
  .residue All fields that were not in some other projection

Transformations:
`)
	var names []string
	for name := range transformOpts {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		fmt.Fprintf(&long, "  %-10s %s\n", name, transformOpts[name].doc)
	}

	cmd := &cobra.Command{
		Use:          "plotscale [flags] inputs...",
		Short:        "Plot Go benchmark results",
		Long:         long.String(),
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			level := log.InfoLevel
			if opts.verbose {
				level = log.DebugLevel
			}
			logger := log.NewWithOptions(wErr, log.Options{
				ReportTimestamp: true,
				TimeFormat:      "15:04:05.00",
				Level:           level,
			})
			return benchplot(cmd.Context(), w, logger, &opts, args)
		},
	}
	cmd.SetOut(w)
	cmd.SetErr(wErr)

	flags := cmd.Flags()
	for _, f := range aesFlags {
		opts.aes[f.aes] = flags.String(f.aes.Name(), f.def, f.doc)
	}
	flags.StringVar(&opts.ignore, "ignore", "", "ignore variations in keys")
	flags.StringVar(&opts.filter, "filter", "*", "use only benchmarks matching benchfilter query")
	// This is a convenience filter, since if you want to filter on anything,
	// it's usually this.
	flags.StringVar(&opts.units, "unit", "", "comma-separated list of units to show")
	flags.StringVar(&opts.logScale, "log-scale", "", "comma-separated list of aesthetics to plot on a log scale\nUse name:base to set a log base other than 10")
	flags.StringVar(&opts.transform, "transform", "", "comma-separated list of data transformations")
	flags.StringVar(&opts.scales, "scales", "", "read scale configuration from TOML `file`")
	flags.StringVar(&opts.format, "format", "png", "output `format`: text, gnuplot, or png")
	flags.StringVarP(&opts.output, "output", "o", "", "write output to `file` (default benchplot.png for png, else stdout)")
	flags.BoolVar(&opts.parallel, "parallel", false, "train scales on each layer concurrently")
	flags.Float64Var(&opts.confidence, "confidence", 0.95, "confidence `level` of summary ranges")
	flags.BoolVar(&opts.strict, "strict", false, "treat malformed input lines as errors")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")
	return cmd
}

func benchplot(ctx context.Context, w io.Writer, logger *log.Logger, opts *options, args []string) error {
	switch opts.format {
	case "text", "gnuplot", "png":
	default:
		return fmt.Errorf("unknown --format %s", opts.format)
	}
	config := plot.NewConfig()

	// Parse filter options.
	filter, err := benchproc.NewFilter(opts.filter)
	if err != nil {
		return fmt.Errorf("parsing --filter: %s", err)
	}
	var keepUnits map[string]bool
	if opts.units != "" {
		keepUnits = make(map[string]bool)
		for _, unit := range strings.Split(opts.units, ",") {
			keepUnits[unit] = true
		}
	}

	// Parse projection options.
	type aesFlagReg struct {
		aesFlag
		dv   bool
		proj *benchproc.Projection
	}
	var regs []*aesFlagReg
	var parser benchproc.ProjectionParser
	var parseResidue []*aesFlagReg
	for _, af := range aesFlags {
		f := &aesFlagReg{aesFlag: af}
		switch s := *opts.aes[af.aes]; s {
		case "":
			continue
		case ".unit":
			// TODO: Ideally you should be able to combine .unit with other
			// projection bits. I remember specifically not wanting this for
			// benchstat, so maybe this has to be an option to the parser.
			proj, _, _ := parser.ParseWithUnit("", filter)
			f.proj = proj
		case ".value":
			f.dv = true
		case ".residue":
			parseResidue = append(parseResidue, f)
		default:
			proj, err := parser.Parse(s, filter)
			if err != nil {
				return fmt.Errorf("parsing --%s: %s", af.aes.Name(), err)
			}
			f.proj = proj
		}
		regs = append(regs, f)
	}

	// Process projection residue.
	if _, err = parser.Parse(opts.ignore, filter); err != nil {
		return fmt.Errorf("parsing --ignore: %s", err)
	}
	residue := parser.Residue()
	for _, f := range parseResidue {
		f.proj = residue
	}

	// Bind projections to aesthetics.
	for _, f := range regs {
		if f.dv {
			config.SetDV(f.aes)
		} else {
			config.SetIV(f.aes, f.proj)
		}
	}

	// Parse log-scale option.
	if opts.logScale != "" {
		for _, opt := range strings.Split(opts.logScale, ",") {
			opt, baseStr, hasBase := strings.Cut(opt, ":")
			aes, ok := scale.AesFromName(opt)
			if !ok || !aes.IsPosition() {
				return fmt.Errorf("unknown option %s in --log-scale=%s", opt, opts.logScale)
			}
			base := 10
			if hasBase {
				base2, err := strconv.ParseInt(baseStr, 10, 0)
				if err != nil {
					return fmt.Errorf("bad base %s in --log-scale=%s: %w", baseStr, opts.logScale, err)
				}
				base = int(base2)
			}
			config.SetLogScale(aes, base)
		}
	}

	// Read explicit scales.
	if opts.scales != "" {
		file, err := scale.ReadFile(opts.scales, logger)
		if err != nil {
			return err
		}
		scales, err := file.Scales(logger)
		if err != nil {
			return err
		}
		for _, s := range scales {
			config.SetScale(s)
		}
	}

	if opts.confidence <= 0 || opts.confidence >= 1 {
		return fmt.Errorf("--confidence must be between 0 and 1, got %v", opts.confidence)
	}
	config.SetConfidence(opts.confidence)

	// Parse transforms.
	var transforms []func(p *plot.Plot) error
	if opts.transform != "" {
		for _, opt := range strings.Split(opts.transform, ",") {
			t, ok := transformOpts[opt]
			if !ok {
				return fmt.Errorf("unknown transform %s", opt)
			}
			transforms = append(transforms, t.do)
		}
	}

	// Read inputs.
	var errs []errorAt
	var nParsed, nFiltered, nUnitFiltered int
	pl, err := plot.NewPlot(config)
	if err != nil {
		return err
	}
	files := benchfmt.Files{Paths: args, AllowStdin: true, AllowLabels: true}
	for files.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		switch rec := files.Result(); rec := rec.(type) {
		case *benchfmt.SyntaxError:
			if opts.strict {
				errs = append(errs, errorAt{rec.FileName, rec.Line, errors.New(rec.Msg)})
				continue
			}
			// Non-fatal result parse error. Warn
			// but keep going.
			logger.Warn(rec.Msg, "file", rec.FileName, "line", rec.Line)
		case *benchfmt.Result:
			nParsed++
			if ok, err := filter.Apply(rec); !ok {
				nFiltered++
				if err != nil {
					// Print the reason we rejected this result.
					logger.Warn("rejected result", "err", err)
				}
				continue
			}
			if keepUnits != nil {
				j := 0
				for _, val := range rec.Values {
					if keepUnits[val.Unit] || (val.OrigUnit != "" && keepUnits[val.OrigUnit]) {
						rec.Values[j] = val
						j++
					}
				}
				rec.Values = rec.Values[:j]
				if j == 0 {
					nUnitFiltered++
					continue
				}
			}

			pl.Add(rec)
		}
	}
	if err := files.Err(); err != nil {
		return err
	}
	if len(errs) > 0 {
		// No need to sort right now because they're already in order.
		return errorsAt(errs)
	}
	if nParsed == 0 {
		return fmt.Errorf("no data")
	} else if nUnitFiltered == nParsed {
		return fmt.Errorf("no data has units %s", opts.units)
	} else if nUnitFiltered+nFiltered == nParsed {
		return fmt.Errorf("all data filtered")
	}
	if nFiltered > 0 || nUnitFiltered > 0 {
		logger.Infof("%d records did not match --filter, %d records did not match --unit", nFiltered, nUnitFiltered)
	}
	pl.SetUnits(files.Units())

	// Apply transforms.
	for _, transform := range transforms {
		if err := transform(pl); err != nil {
			return err
		}
	}

	r, err := pl.Build(ctx, plot.BuildOptions{Parallel: opts.parallel, Logger: logger})
	if err != nil {
		return err
	}
	logger.Debug("read results", "parsed", nParsed, "points", pl.Len())

	output := opts.output
	if output == "" && opts.format == "png" {
		output = "benchplot.png"
	}
	return writeRendering(ctx, r, opts.format, output, w)
}

// writeRendering writes r in format to the file output, or to w if
// output is empty or "-".
func writeRendering(ctx context.Context, r *plot.Rendering, format, output string, w io.Writer) (err error) {
	out := w
	if output != "" && output != "-" {
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		out = f
	}

	switch format {
	case "text":
		return r.WriteViews(out)
	case "gnuplot":
		return r.Gnuplot(ctx, "", out)
	case "png":
		return r.Gnuplot(ctx, "png", out)
	}
	return fmt.Errorf("unknown --format %s", format)
}

type errorAt struct {
	file string
	line int
	err  error
}

func (e errorAt) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.file, e.line, e.err.Error())
}

type errorsAt []errorAt

func (e errorsAt) Error() string {
	var b strings.Builder
	for i, err := range e {
		if i == 10 {
			b.WriteString("more errors...")
			break
		}
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(err.Error())
	}
	return b.String()
}
