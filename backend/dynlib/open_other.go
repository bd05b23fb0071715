// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !(darwin || linux || freebsd)

package dynlib

import (
	"fmt"
	"runtime"

	"github.com/gogpu/rhi"
)

func openSymbols(path string) (*symbols, error) {
	return nil, fmt.Errorf("%w: loading %s on %s", rhi.ErrNotSupported, path, runtime.GOOS)
}
