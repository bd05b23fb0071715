// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build darwin || linux || freebsd

package dynlib

import (
	"fmt"

	"github.com/ebitengine/purego"
)

// openSymbols loads the library at path and binds the RHI symbols.
func openSymbols(path string) (*symbols, error) {
	lib, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, fmt.Errorf("dynlib: open %s: %w", path, err)
	}
	s := &symbols{close: func() { _ = purego.Dlclose(lib) }}
	for name, fptr := range s.required() {
		if _, err := purego.Dlsym(lib, name); err != nil {
			_ = purego.Dlclose(lib)
			return nil, fmt.Errorf("dynlib: %s: missing symbol %s: %w", path, name, err)
		}
		purego.RegisterLibFunc(fptr, lib, name)
	}
	for name, fptr := range s.optional() {
		if _, err := purego.Dlsym(lib, name); err == nil {
			purego.RegisterLibFunc(fptr, lib, name)
		}
	}
	return s, nil
}
