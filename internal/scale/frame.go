// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scale

import (
	"reflect"
	"time"

	"github.com/aclements/go-gg/generic/slice"
	"github.com/aclements/go-gg/table"
	"github.com/aclements/plotscale/internal/trans"
)

// numericColumn converts col to float64s. Integer and floating point
// slices convert directly, and time.Time slices convert to seconds since
// the Unix epoch. It returns false for any other column type.
func numericColumn(col table.Slice) ([]float64, bool) {
	switch col := col.(type) {
	case []float64:
		return col, true
	case []time.Time:
		out := make([]float64, len(col))
		for i, t := range col {
			out[i] = trans.ToSeconds(t)
		}
		return out, true
	case []string, []Category:
		return nil, false
	}
	rt := reflect.TypeOf(col)
	if rt == nil || rt.Kind() != reflect.Slice {
		return nil, false
	}
	switch rt.Elem().Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		var out []float64
		slice.Convert(&out, col)
		return out, true
	}
	return nil, false
}

// discreteColumn converts col to a Factor. It accepts string and
// Category slices, and returns false for any other column type.
func discreteColumn(col table.Slice) (Factor, bool) {
	switch col := col.(type) {
	case []Category:
		return Factor{Values: col}, true
	case []string:
		return Factor{Values: Cats(col...)}, true
	}
	return Factor{}, false
}

// rebuild returns a copy of t with the columns in repl replaced. If keep
// is non-nil, only the rows at those indexes are kept.
func rebuild(t *table.Table, repl map[string]table.Slice, keep []int) *table.Table {
	var b table.Builder
	for _, name := range t.Columns() {
		col, ok := repl[name]
		if !ok {
			col = t.Column(name)
		}
		if keep != nil {
			col = slice.Select(col, keep)
		}
		b.Add(name, col)
	}
	return b.Done()
}
