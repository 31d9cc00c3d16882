// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plot

import "github.com/aclements/plotscale/internal/scale"

// aesNone is a sentinel for "no aesthetic".
const aesNone = scale.Aes(-1)

// aesMap is an efficient map from Aes to T.
type aesMap[T any] struct {
	aes [scale.NumAes]T
}

func (m *aesMap[T]) Set(aes scale.Aes, val T) {
	m.aes[aes] = val
}

func (m *aesMap[T]) Get(aes scale.Aes) T {
	return m.aes[aes]
}

func (m *aesMap[T]) Copy() aesMap[T] {
	return *m
}
