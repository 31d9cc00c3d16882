// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scale

import (
	"fmt"
	"sync"
)

// Aes is the name of an aesthetic. A table column named after an
// aesthetic holds the values of that aesthetic.
type Aes int

const (
	AesX Aes = iota
	AesXMin
	AesXMax
	AesXEnd
	AesXIntercept
	AesY
	AesYMin
	AesYMax
	AesYEnd
	AesYIntercept
	AesColor
	AesFill
	AesSize
	AesAlpha
	AesShape
	AesLinetype

	// NumAes is the number of aesthetics.
	NumAes
)

var aesNames = [NumAes]string{
	AesX:          "x",
	AesXMin:       "xmin",
	AesXMax:       "xmax",
	AesXEnd:       "xend",
	AesXIntercept: "xintercept",
	AesY:          "y",
	AesYMin:       "ymin",
	AesYMax:       "ymax",
	AesYEnd:       "yend",
	AesYIntercept: "yintercept",
	AesColor:      "color",
	AesFill:       "fill",
	AesSize:       "size",
	AesAlpha:      "alpha",
	AesShape:      "shape",
	AesLinetype:   "linetype",
}

// Name returns a short name for aesthetic a, such as "x". This is also
// the name of the table column that holds a's values.
func (a Aes) Name() string {
	if a >= 0 && a < NumAes {
		return aesNames[a]
	}
	return fmt.Sprintf("Aes(%d)", int(a))
}

func (a Aes) String() string {
	return a.Name()
}

// IsX reports whether a is in the x position family.
func (a Aes) IsX() bool {
	return a >= AesX && a <= AesXIntercept
}

// IsY reports whether a is in the y position family.
func (a Aes) IsY() bool {
	return a >= AesY && a <= AesYIntercept
}

// IsPosition reports whether a is a position aesthetic.
func (a Aes) IsPosition() bool {
	return a.IsX() || a.IsY()
}

// XAes and YAes are the aesthetics governed by x and y position scales.
var (
	XAes = []Aes{AesX, AesXMin, AesXMax, AesXEnd, AesXIntercept}
	YAes = []Aes{AesY, AesYMin, AesYMax, AesYEnd, AesYIntercept}
)

var aesAliases = map[string]Aes{
	"colour": AesColor,
	"col":    AesColor,
}

var nameToAes = sync.OnceValue(func() map[string]Aes {
	m := make(map[string]Aes)
	for i := Aes(0); i < NumAes; i++ {
		m[i.Name()] = i
	}
	for name, a := range aesAliases {
		m[name] = a
	}
	return m
})

// AesFromName is the inverse of [Aes.Name]. It also accepts common
// aliases, such as "colour".
func AesFromName(name string) (Aes, bool) {
	aes, ok := nameToAes()[name]
	return aes, ok
}
