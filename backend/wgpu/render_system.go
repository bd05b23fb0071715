// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"fmt"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/rhi"
	"github.com/gogpu/rhi/backend"
	"github.com/gogpu/rhi/layout"
	"github.com/gogpu/rhi/mipmap"
	"github.com/gogpu/rhi/resource"
)

// copyBufferAlignment is the required alignment of buffer sizes and queue
// write offsets.
const copyBufferAlignment = 4

// RenderSystem implements backend.RenderSystem on a HAL device.
//
// Thread Safety: resource bookkeeping is protected by a mutex and the
// render system is safe for concurrent use.
type RenderSystem struct {
	dev   *device
	calc  *layout.Calculator
	mips  *mipmap.Generator
	debug bool

	mu       sync.RWMutex
	buffers  map[*Buffer]struct{}
	textures map[*Texture]struct{}
	released bool
}

var _ backend.RenderSystem = (*RenderSystem)(nil)

func newRenderSystem(dev *device, desc *backend.RenderSystemDescriptor) *RenderSystem {
	rs := &RenderSystem{
		dev:      dev,
		calc:     layout.NewCalculator(desc.FormatTable(), layout.WithMaxSamples(desc.SampleLimit())),
		mips:     mipmap.New(nil),
		buffers:  make(map[*Buffer]struct{}),
		textures: make(map[*Texture]struct{}),
	}
	if desc != nil {
		rs.debug = desc.Debug
	}
	return rs
}

// RendererID implements backend.RenderSystem.
func (rs *RenderSystem) RendererID() rhi.RendererID { return rhi.RendererWebGPU }

// Name implements backend.RenderSystem.
func (rs *RenderSystem) Name() string { return RendererName }

// DeviceName returns the adapter name, or "host" for a shared device.
func (rs *RenderSystem) DeviceName() string { return rs.dev.name }

// Release implements backend.RenderSystem. It destroys all live resources
// and, unless the device is shared, the device itself.
func (rs *RenderSystem) Release() error {
	rs.mu.Lock()
	if rs.released {
		rs.mu.Unlock()
		return backend.ErrReleased
	}
	rs.released = true
	buffers, textures := rs.buffers, rs.textures
	rs.buffers, rs.textures = nil, nil
	rs.mu.Unlock()

	for b := range buffers {
		rs.dev.device.DestroyBuffer(b.buf)
	}
	for t := range textures {
		rs.dev.device.DestroyTexture(t.tex)
	}
	rs.dev.destroy()
	rhi.Logger().Debug("wgpu: render system released",
		"buffers", len(buffers), "textures", len(textures))
	return nil
}

// Buffer is a GPU buffer.
type Buffer struct {
	desc resource.BufferDescriptor
	buf  hal.Buffer
	size uint64
}

// Descriptor implements backend.Buffer.
func (b *Buffer) Descriptor() resource.BufferDescriptor { return b.desc }

// CreateBuffer implements backend.RenderSystem. The allocation is padded
// to a multiple of four bytes.
func (rs *RenderSystem) CreateBuffer(desc *resource.BufferDescriptor, initial []byte) (backend.Buffer, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	if uint64(len(initial)) > desc.Size {
		return nil, fmt.Errorf("%w: %d bytes of initial data for %d-byte buffer %q",
			rhi.ErrInvalidArgument, len(initial), desc.Size, desc.Label)
	}

	size := alignSize(desc.Size, copyBufferAlignment)
	buf, err := rs.dev.device.CreateBuffer(&hal.BufferDescriptor{
		Label: desc.Label,
		Size:  size,
		Usage: desc.GPUUsage(),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: buffer %q: %w", rhi.ErrAllocationFailed, desc.Label, err)
	}
	b := &Buffer{desc: *desc, buf: buf, size: size}

	if len(initial) > 0 {
		rs.dev.queue.WriteBuffer(buf, 0, padData(initial, copyBufferAlignment))
	}

	rs.mu.Lock()
	defer rs.mu.Unlock()
	if rs.released {
		rs.dev.device.DestroyBuffer(buf)
		return nil, backend.ErrReleased
	}
	rs.buffers[b] = struct{}{}
	return b, nil
}

func (rs *RenderSystem) buffer(b backend.Buffer) (*Buffer, error) {
	gb, ok := b.(*Buffer)
	if !ok || gb == nil {
		return nil, backend.ErrForeignResource
	}
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	if rs.released {
		return nil, backend.ErrReleased
	}
	if _, ok := rs.buffers[gb]; !ok {
		return nil, fmt.Errorf("buffer %q: %w", gb.desc.Label, backend.ErrReleased)
	}
	return gb, nil
}

// WriteBuffer implements backend.RenderSystem. offset and len(data) must
// be multiples of four.
func (rs *RenderSystem) WriteBuffer(b backend.Buffer, offset uint64, data []byte) error {
	gb, err := rs.buffer(b)
	if err != nil {
		return err
	}
	if err := checkBufferWrite(gb.desc.Size, offset, uint64(len(data))); err != nil {
		return err
	}
	if len(data) > 0 {
		rs.dev.queue.WriteBuffer(gb.buf, offset, data)
	}
	return nil
}

// ReleaseBuffer implements backend.RenderSystem.
func (rs *RenderSystem) ReleaseBuffer(b backend.Buffer) error {
	gb, err := rs.buffer(b)
	if err != nil {
		return err
	}
	rs.mu.Lock()
	delete(rs.buffers, gb)
	rs.mu.Unlock()
	rs.dev.device.DestroyBuffer(gb.buf)
	return nil
}

// Texture is a GPU texture.
type Texture struct {
	desc   resource.TextureDescriptor
	tex    hal.Texture
	layers uint32
}

// Descriptor implements backend.Texture. MipLevels and Samples hold the
// resolved values.
func (t *Texture) Descriptor() resource.TextureDescriptor { return t.desc }

// CreateTexture implements backend.RenderSystem.
func (rs *RenderSystem) CreateTexture(desc *resource.TextureDescriptor, initial *resource.ImageView) (backend.Texture, error) {
	if err := desc.Validate(rs.calc.Table()); err != nil {
		return nil, err
	}
	halDesc, err := rs.textureDescriptor(desc)
	if err != nil {
		return nil, err
	}
	tex, err := rs.dev.device.CreateTexture(halDesc)
	if err != nil {
		return nil, fmt.Errorf("%w: texture %q: %w", rhi.ErrAllocationFailed, desc.Label, err)
	}

	t := &Texture{desc: *desc, tex: tex, layers: desc.Layers()}
	t.desc.MipLevels = halDesc.MipLevelCount
	t.desc.Samples = halDesc.SampleCount

	if !initial.Empty() {
		if err := rs.upload(t, initial); err != nil {
			rs.dev.device.DestroyTexture(tex)
			return nil, err
		}
	}

	rs.mu.Lock()
	defer rs.mu.Unlock()
	if rs.released {
		rs.dev.device.DestroyTexture(tex)
		return nil, backend.ErrReleased
	}
	rs.textures[t] = struct{}{}
	if rs.debug {
		rhi.Logger().Debug("wgpu: created texture",
			"label", desc.Label, "type", desc.Type, "format", desc.Format,
			"extent", desc.Extent, "mips", t.desc.MipLevels)
	}
	return t, nil
}

// upload writes the initial image to mip 0 of every layer and fills the
// remaining levels on the CPU when mips must be generated.
func (rs *RenderSystem) upload(t *Texture, initial *resource.ImageView) error {
	full := resource.TextureRegion{
		Subresource: resource.Subresource{NumArrayLayers: t.layers},
		Extent:      t.desc.Extent,
	}
	if err := rs.writeRegion(t, full, initial); err != nil {
		return err
	}
	if !layout.MustGenerateMipsOnCreate(&t.desc, initial) {
		return nil
	}
	if t.desc.Type == resource.Texture3D || !mipmap.Supports(t.desc.Format) {
		return fmt.Errorf("%w: mip generation for %v %v", rhi.ErrNotSupported, t.desc.Type, t.desc.Format)
	}

	base, err := rs.calc.CalcSubresourceLayout(t.desc.Format, t.desc.Extent, t.layers)
	if err != nil {
		return err
	}
	if uint64(len(initial.Data)) < base.DataSize {
		return fmt.Errorf("%w: %d bytes of initial data, want %d", rhi.ErrInvalidArgument, len(initial.Data), base.DataSize)
	}
	for layer := range t.layers {
		slice := initial.Data[uint64(layer)*base.LayerStride : uint64(layer+1)*base.LayerStride]
		chain, err := rs.mips.Generate(t.desc.Format, t.desc.Extent.Width, t.desc.Extent.Height, slice, t.desc.MipLevels)
		if err != nil {
			return err
		}
		for i, pix := range chain {
			mip := uint32(i + 1)
			region := resource.TextureRegion{
				Subresource: resource.Subresource{BaseArrayLayer: layer, NumArrayLayers: 1, MipLevel: mip},
				Extent:      layout.MipExtent(t.desc.Type, t.desc.Extent, mip),
			}
			if err := rs.writeRegion(t, region, &resource.ImageView{Format: t.desc.Format, Data: pix}); err != nil {
				return err
			}
		}
	}
	return nil
}

func (rs *RenderSystem) texture(t backend.Texture) (*Texture, error) {
	gt, ok := t.(*Texture)
	if !ok || gt == nil {
		return nil, backend.ErrForeignResource
	}
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	if rs.released {
		return nil, backend.ErrReleased
	}
	if _, ok := rs.textures[gt]; !ok {
		return nil, fmt.Errorf("texture %q: %w", gt.desc.Label, backend.ErrReleased)
	}
	return gt, nil
}

// WriteTexture implements backend.RenderSystem.
func (rs *RenderSystem) WriteTexture(t backend.Texture, region resource.TextureRegion, image *resource.ImageView) error {
	gt, err := rs.texture(t)
	if err != nil {
		return err
	}
	if image.Empty() {
		return fmt.Errorf("%w: empty image", rhi.ErrInvalidArgument)
	}
	return rs.writeRegion(gt, region, image)
}

func (rs *RenderSystem) writeRegion(t *Texture, region resource.TextureRegion, image *resource.ImageView) error {
	w, err := rs.planWrite(&t.desc, t.layers, region, image)
	if err != nil {
		return err
	}
	dst := &hal.ImageCopyTexture{
		Texture:  t.tex,
		MipLevel: w.mip,
		Origin:   hal.Origin3D{X: w.origin[0], Y: w.origin[1], Z: w.origin[2]},
		Aspect:   gputypes.TextureAspectAll,
	}
	dataLayout := &hal.ImageDataLayout{
		Offset:       0,
		BytesPerRow:  w.bytesPerRow,
		RowsPerImage: w.rowsPerImage,
	}
	size := &hal.Extent3D{
		Width:              w.size.Width,
		Height:             w.size.Height,
		DepthOrArrayLayers: w.size.DepthOrArrayLayers,
	}
	rs.dev.queue.WriteTexture(dst, image.Data, dataLayout, size)
	return nil
}

// ReleaseTexture implements backend.RenderSystem.
func (rs *RenderSystem) ReleaseTexture(t backend.Texture) error {
	gt, err := rs.texture(t)
	if err != nil {
		return err
	}
	rs.mu.Lock()
	delete(rs.textures, gt)
	rs.mu.Unlock()
	rs.dev.device.DestroyTexture(gt.tex)
	return nil
}
