// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package trans

import (
	"fmt"
	"math"
)

// FormatNumbers formats each break with up to six significant digits.
// Non-finite breaks format as "NA".
func FormatNumbers(breaks []float64) []string {
	labels := make([]string, len(breaks))
	for i, x := range breaks {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			labels[i] = "NA"
			continue
		}
		if x == 0 {
			// Avoid "-0".
			x = 0
		}
		labels[i] = fmt.Sprintf("%.6g", x)
	}
	return labels
}
