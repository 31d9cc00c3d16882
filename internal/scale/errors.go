// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scale

import (
	"errors"
	"fmt"
)

// ErrConfig is matched by every scale configuration error.
var ErrConfig = errors.New("scale configuration error")

// A ConfigError reports an invalid scale configuration, such as breaks
// and labels of different lengths.
type ConfigError struct {
	Scale string // Name of the scale, if known
	Msg   string
	Err   error // Underlying error (optional)
}

func (e *ConfigError) Error() string {
	var prefix string
	if e.Scale != "" {
		prefix = "scale " + e.Scale + ": "
	}
	if e.Err != nil {
		return fmt.Sprintf("%s%s: %v", prefix, e.Msg, e.Err)
	}
	return prefix + e.Msg
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func configErrorf(scale, format string, args ...any) error {
	return &ConfigError{Scale: scale, Msg: fmt.Sprintf(format, args...)}
}
