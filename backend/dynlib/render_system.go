// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package dynlib

import (
	"fmt"
	"runtime"
	"sync"
	"unsafe"

	"github.com/gogpu/rhi"
	"github.com/gogpu/rhi/backend"
	"github.com/gogpu/rhi/layout"
	"github.com/gogpu/rhi/resource"
)

// RenderSystem forwards to a render system allocated by a native module.
// Calls into the module are serialized.
type RenderSystem struct {
	mod    *Module
	handle uintptr
	calc   *layout.Calculator

	mu       sync.Mutex
	buffers  map[*Buffer]struct{}
	textures map[*Texture]struct{}
	released bool
}

var _ backend.RenderSystem = (*RenderSystem)(nil)

func newRenderSystem(m *Module, handle uintptr, desc *backend.RenderSystemDescriptor) *RenderSystem {
	return &RenderSystem{
		mod:      m,
		handle:   handle,
		calc:     layout.NewCalculator(desc.FormatTable(), layout.WithMaxSamples(desc.SampleLimit())),
		buffers:  make(map[*Buffer]struct{}),
		textures: make(map[*Texture]struct{}),
	}
}

// RendererID implements backend.RenderSystem.
func (rs *RenderSystem) RendererID() rhi.RendererID { return rs.mod.rendererID }

// Name implements backend.RenderSystem.
func (rs *RenderSystem) Name() string { return rs.mod.rendererName }

// Release implements backend.RenderSystem.
func (rs *RenderSystem) Release() error {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	if rs.released {
		return backend.ErrReleased
	}
	for b := range rs.buffers {
		rs.mod.sym.releaseBuffer(rs.handle, b.handle)
	}
	for t := range rs.textures {
		rs.mod.sym.releaseTexture(rs.handle, t.handle)
	}
	clear(rs.buffers)
	clear(rs.textures)
	if rs.mod.sym.release != nil {
		rs.mod.sym.release(rs.handle)
	}
	rs.released = true
	return nil
}

// Buffer is a buffer owned by a native module.
type Buffer struct {
	desc   resource.BufferDescriptor
	handle uintptr
}

// Descriptor implements backend.Buffer.
func (b *Buffer) Descriptor() resource.BufferDescriptor { return b.desc }

// CreateBuffer implements backend.RenderSystem.
func (rs *RenderSystem) CreateBuffer(desc *resource.BufferDescriptor, initial []byte) (backend.Buffer, error) {
	if !rs.mod.sym.hasBuffers() {
		return nil, fmt.Errorf("%w: %s has no buffer interface", rhi.ErrNotSupported, rs.mod.path)
	}
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	if uint64(len(initial)) > desc.Size {
		return nil, fmt.Errorf("%w: %d bytes of initial data for %d-byte buffer %q",
			rhi.ErrInvalidArgument, len(initial), desc.Size, desc.Label)
	}
	cdesc := toCBufferDescriptor(desc)

	rs.mu.Lock()
	defer rs.mu.Unlock()
	if rs.released {
		return nil, backend.ErrReleased
	}
	h := rs.mod.sym.createBuffer(rs.handle, unsafe.Pointer(&cdesc), dataPointer(initial), uint64(len(initial)))
	runtime.KeepAlive(initial)
	if h == 0 {
		return nil, fmt.Errorf("%w: buffer %q", rhi.ErrAllocationFailed, desc.Label)
	}
	b := &Buffer{desc: *desc, handle: h}
	rs.buffers[b] = struct{}{}
	return b, nil
}

// buffer resolves b; rs.mu must be held.
func (rs *RenderSystem) buffer(b backend.Buffer) (*Buffer, error) {
	nb, ok := b.(*Buffer)
	if !ok || nb == nil {
		return nil, backend.ErrForeignResource
	}
	if rs.released {
		return nil, backend.ErrReleased
	}
	if _, ok := rs.buffers[nb]; !ok {
		return nil, fmt.Errorf("buffer %q: %w", nb.desc.Label, backend.ErrReleased)
	}
	return nb, nil
}

// WriteBuffer implements backend.RenderSystem.
func (rs *RenderSystem) WriteBuffer(b backend.Buffer, offset uint64, data []byte) error {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	nb, err := rs.buffer(b)
	if err != nil {
		return err
	}
	if end := offset + uint64(len(data)); end > nb.desc.Size || end < offset {
		return fmt.Errorf("%w: write of %d bytes at %d exceeds buffer size %d",
			rhi.ErrInvalidArgument, len(data), offset, nb.desc.Size)
	}
	code := rs.mod.sym.writeBuffer(rs.handle, nb.handle, offset, dataPointer(data), uint64(len(data)))
	runtime.KeepAlive(data)
	return resultError(code, "write buffer")
}

// ReleaseBuffer implements backend.RenderSystem.
func (rs *RenderSystem) ReleaseBuffer(b backend.Buffer) error {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	nb, err := rs.buffer(b)
	if err != nil {
		return err
	}
	delete(rs.buffers, nb)
	rs.mod.sym.releaseBuffer(rs.handle, nb.handle)
	return nil
}

// Texture is a texture owned by a native module.
type Texture struct {
	desc   resource.TextureDescriptor
	handle uintptr
}

// Descriptor implements backend.Texture.
func (t *Texture) Descriptor() resource.TextureDescriptor { return t.desc }

// CreateTexture implements backend.RenderSystem. Initial data must be in
// the texture's format.
func (rs *RenderSystem) CreateTexture(desc *resource.TextureDescriptor, initial *resource.ImageView) (backend.Texture, error) {
	if !rs.mod.sym.hasTextures() {
		return nil, fmt.Errorf("%w: %s has no texture interface", rhi.ErrNotSupported, rs.mod.path)
	}
	if err := desc.Validate(rs.calc.Table()); err != nil {
		return nil, err
	}
	mips, err := layout.ResolveMipLevels(desc)
	if err != nil {
		return nil, err
	}
	resolved := *desc
	resolved.MipLevels = mips
	if desc.Type.IsMultiSample() {
		resolved.Samples = rs.calc.GetClampedSamples(int(desc.Samples))
	}

	var data []byte
	if !initial.Empty() {
		if initial.Format != desc.Format {
			return nil, fmt.Errorf("%w: image format %v differs from texture format %v",
				rhi.ErrNotSupported, initial.Format, desc.Format)
		}
		data = initial.Data
	}
	cdesc := toCTextureDescriptor(&resolved)

	rs.mu.Lock()
	defer rs.mu.Unlock()
	if rs.released {
		return nil, backend.ErrReleased
	}
	h := rs.mod.sym.createTexture(rs.handle, unsafe.Pointer(&cdesc), dataPointer(data), uint64(len(data)))
	runtime.KeepAlive(data)
	if h == 0 {
		return nil, fmt.Errorf("%w: texture %q", rhi.ErrAllocationFailed, desc.Label)
	}
	t := &Texture{desc: resolved, handle: h}
	rs.textures[t] = struct{}{}
	return t, nil
}

// texture resolves t; rs.mu must be held.
func (rs *RenderSystem) texture(t backend.Texture) (*Texture, error) {
	nt, ok := t.(*Texture)
	if !ok || nt == nil {
		return nil, backend.ErrForeignResource
	}
	if rs.released {
		return nil, backend.ErrReleased
	}
	if _, ok := rs.textures[nt]; !ok {
		return nil, fmt.Errorf("texture %q: %w", nt.desc.Label, backend.ErrReleased)
	}
	return nt, nil
}

// WriteTexture implements backend.RenderSystem.
func (rs *RenderSystem) WriteTexture(t backend.Texture, region resource.TextureRegion, image *resource.ImageView) error {
	if image.Empty() {
		return fmt.Errorf("%w: empty image", rhi.ErrInvalidArgument)
	}
	rs.mu.Lock()
	defer rs.mu.Unlock()
	nt, err := rs.texture(t)
	if err != nil {
		return err
	}
	if image.Format != nt.desc.Format {
		return fmt.Errorf("%w: image format %v differs from texture format %v",
			rhi.ErrNotSupported, image.Format, nt.desc.Format)
	}
	cregion := toCTextureRegion(region)
	code := rs.mod.sym.writeTexture(rs.handle, nt.handle, unsafe.Pointer(&cregion),
		dataPointer(image.Data), uint64(len(image.Data)))
	runtime.KeepAlive(image.Data)
	return resultError(code, "write texture")
}

// ReleaseTexture implements backend.RenderSystem.
func (rs *RenderSystem) ReleaseTexture(t backend.Texture) error {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	nt, err := rs.texture(t)
	if err != nil {
		return err
	}
	delete(rs.textures, nt)
	rs.mod.sym.releaseTexture(rs.handle, nt.handle)
	return nil
}
