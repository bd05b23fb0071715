// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package dynlib

import (
	"errors"
	"fmt"
	"os"
	"unsafe"

	"github.com/gogpu/rhi"
	"github.com/gogpu/rhi/backend"
	"github.com/gogpu/rhi/config"
)

// ErrInvalidModule is returned when a library exports the RHI symbols but
// reports nonsensical metadata.
var ErrInvalidModule = errors.New("dynlib: invalid module")

// Module is a render system module backed by a shared library.
type Module struct {
	path string
	sym  *symbols

	buildID      int
	rendererID   rhi.RendererID
	rendererName string
}

var _ backend.Module = (*Module)(nil)

// openLibrary binds the symbols of a library; tests replace it.
var openLibrary = openSymbols

// Open loads the shared library at path. A library that loads but reports
// invalid metadata is unloaded again.
func Open(path string) (*Module, error) {
	sym, err := openLibrary(path)
	if err != nil {
		return nil, err
	}
	m, err := newModule(path, sym)
	if err != nil {
		if sym.close != nil {
			sym.close()
		}
		return nil, err
	}
	return m, nil
}

func newModule(path string, sym *symbols) (*Module, error) {
	m := &Module{
		path:         path,
		sym:          sym,
		buildID:      int(sym.buildID()),
		rendererID:   rhi.RendererID(sym.rendererID()),
		rendererName: sym.rendererName(),
	}
	if m.rendererName == "" {
		return nil, fmt.Errorf("%w: %s has an empty renderer name", ErrInvalidModule, path)
	}
	rhi.Logger().Debug("dynlib: module loaded",
		"path", path, "renderer", m.rendererName, "id", m.rendererID, "build", m.buildID)
	return m, nil
}

// Path returns the library path.
func (m *Module) Path() string { return m.path }

// BuildID implements backend.Module.
func (m *Module) BuildID() int { return m.buildID }

// RendererID implements backend.Module.
func (m *Module) RendererID() rhi.RendererID { return m.rendererID }

// RendererName implements backend.Module.
func (m *Module) RendererName() string { return m.rendererName }

// Alloc implements backend.Module. Host devices cannot cross the C ABI and
// are ignored.
func (m *Module) Alloc(desc *backend.RenderSystemDescriptor) (backend.RenderSystem, error) {
	var d backend.RenderSystemDescriptor
	if desc != nil {
		d = *desc
	}
	if d.Device != nil {
		rhi.Logger().Warn("dynlib: host device ignored", "module", d.ModuleName)
	}

	cdesc := cRenderSystemDescriptor{
		BuildID:    uint32(m.buildID),
		MaxSamples: d.MaxSamples,
		ModuleName: cName(d.ModuleName),
	}
	if d.Debug {
		cdesc.Flags |= flagDebug
	}
	handle := m.sym.alloc(unsafe.Pointer(&cdesc))
	if handle == 0 {
		return nil, fmt.Errorf("%w: %s returned no render system", rhi.ErrAllocationFailed, m.path)
	}
	return newRenderSystem(m, handle, &d), nil
}

// Loader returns a backend.Loader that opens the library at path.
func Loader(path string) backend.Loader {
	return func() (backend.Module, error) {
		return Open(path)
	}
}

// Register adds the library at path to reg under name. The module is only
// available while the file exists.
func Register(reg *backend.Registry, name, path string, priority int) {
	reg.Register(name, priority, Loader(path), func() bool {
		_, err := os.Stat(path)
		return err == nil
	})
}

// RegisterConfig registers every native module listed in cfg.
func RegisterConfig(reg *backend.Registry, cfg *config.Config) {
	for _, m := range cfg.Modules {
		Register(reg, m.Name, m.Path, m.Priority)
	}
}
