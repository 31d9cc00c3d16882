// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aclements/plotscale/internal/plot"
)

const testInput = `goos: linux
BenchmarkFoo/n=1 1 100 ns/op 16 B/op
BenchmarkFoo/n=2 1 200 ns/op 32 B/op
goos: darwin
BenchmarkFoo/n=1 1 150 ns/op 16 B/op
BenchmarkFoo/n=2 1 300 ns/op 32 B/op
`

func writeInput(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bench.txt")
	if err := os.WriteFile(path, []byte(data), 0o666); err != nil {
		t.Fatal(err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestText(t *testing.T) {
	path := writeInput(t, testInput)
	out, _, err := run(t, "--format", "text", "--x", "/n", "--color", "goos", "--unit", "ns/op", path)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"sec/op [y ymin ymax yend yintercept]", "levels=[darwin linux]"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestScalesFile(t *testing.T) {
	path := writeInput(t, testInput)
	scales := filepath.Join(t.TempDir(), "scales.toml")
	err := os.WriteFile(scales, []byte(`
[scale.x]
name = "iterations"
limits = [0, 4]
`), 0o666)
	if err != nil {
		t.Fatal(err)
	}
	out, _, err := run(t, "--format", "text", "--x", "/n", "--color", "goos", "--unit", "ns/op", "--scales", scales, path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "iterations [x xmin xmax xend xintercept] trans=identity limits=[0, 4]") {
		t.Errorf("explicit x scale not used:\n%s", out)
	}
}

func TestGnuplotFormat(t *testing.T) {
	path := writeInput(t, testInput)
	out, _, err := run(t, "--format", "gnuplot", "--x", "/n", "--color", "goos", "--unit", "ns/op", "--parallel", path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "plot '-'") {
		t.Errorf("output is not a gnuplot script:\n%s", out)
	}
}

func TestOutputFile(t *testing.T) {
	path := writeInput(t, testInput)
	dst := filepath.Join(t.TempDir(), "views.txt")
	out, _, err := run(t, "--format", "text", "--x", "/n", "--color", "goos", "-o", dst, path)
	if err != nil {
		t.Fatal(err)
	}
	if out != "" {
		t.Errorf("want nothing on stdout, got %q", out)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "levels=[darwin linux]") {
		t.Errorf("output file missing views:\n%s", data)
	}
}

func TestWriteRenderingError(t *testing.T) {
	// A failed render reports its own error, and the output file is
	// still closed exactly once.
	dst := filepath.Join(t.TempDir(), "plot.gp")
	err := writeRendering(context.Background(), &plot.Rendering{}, "gnuplot", dst, &bytes.Buffer{})
	if err == nil || !strings.Contains(err.Error(), "needs both x and y") {
		t.Errorf("want render error, got %v", err)
	}
	if _, err := os.Stat(dst); err != nil {
		t.Errorf("output file: %v", err)
	}

	var buf bytes.Buffer
	if err := writeRendering(context.Background(), &plot.Rendering{}, "text", "-", &buf); err != nil {
		t.Errorf("text to stdout: %v", err)
	}
}

func TestErrors(t *testing.T) {
	path := writeInput(t, testInput)
	for _, test := range []struct {
		name string
		args []string
		want string
	}{
		{"format", []string{"--format", "svg", path}, "unknown --format"},
		{"transform", []string{"--format", "text", "--transform", "bogus", path}, "unknown transform"},
		{"log-scale", []string{"--format", "text", "--log-scale", "color", path}, "unknown option color"},
		{"unit", []string{"--format", "text", "--unit", "allocs/op", path}, "no data has units"},
		{"confidence", []string{"--format", "text", "--confidence", "2", path}, "--confidence"},
	} {
		t.Run(test.name, func(t *testing.T) {
			_, _, err := run(t, test.args...)
			if err == nil || !strings.Contains(err.Error(), test.want) {
				t.Errorf("want error containing %q, got %v", test.want, err)
			}
		})
	}
}

func TestStrict(t *testing.T) {
	path := writeInput(t, testInput+"BenchmarkBad 1 x ns/op\n")
	_, _, err := run(t, "--format", "text", "--x", "/n", "--color", "goos", "--strict", path)
	var errs errorsAt
	if !errors.As(err, &errs) || len(errs) != 1 || errs[0].line != 7 {
		t.Fatalf("want one error at line 7, got %v", err)
	}
}

func TestErrorsAt(t *testing.T) {
	var errs errorsAt
	for i := 0; i < 12; i++ {
		errs = append(errs, errorAt{"f", i + 1, errors.New("bad")})
	}
	msg := errs.Error()
	if !strings.HasPrefix(msg, "f:1: bad\nf:2: bad\n") {
		t.Errorf("bad prefix: %q", msg)
	}
	if !strings.HasSuffix(msg, "more errors...") || strings.Contains(msg, "f:11:") {
		t.Errorf("want truncated errors, got %q", msg)
	}
}
