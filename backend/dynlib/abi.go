// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package dynlib

import (
	"fmt"
	"unsafe"

	"github.com/gogpu/rhi"
	"github.com/gogpu/rhi/resource"
)

// Result codes returned by the write functions.
const (
	resultOK int32 = iota
	resultInvalidArgument
	resultUnsupportedFormat
	resultNotSupported
)

// flagDebug is set in cRenderSystemDescriptor.Flags for debug render
// systems.
const flagDebug uint32 = 1 << 0

// moduleNameSize is the size of RHI_RenderSystemDescriptor.module_name,
// including the terminating NUL.
const moduleNameSize = 64

// cRenderSystemDescriptor mirrors RHI_RenderSystemDescriptor. It holds no
// pointers so it can be handed to C as is.
type cRenderSystemDescriptor struct {
	BuildID    uint32
	Flags      uint32
	MaxSamples uint32
	ModuleName [moduleNameSize]byte
}

// cBufferDescriptor mirrors RHI_BufferDescriptor.
type cBufferDescriptor struct {
	Size   uint64
	Type   uint32
	Usage  uint32
	Stride uint32
	Format uint32
}

// cTextureDescriptor mirrors RHI_TextureDescriptor.
type cTextureDescriptor struct {
	Type        uint32
	Format      uint32
	Width       uint32
	Height      uint32
	Depth       uint32
	ArrayLayers uint32
	MipLevels   uint32
	Samples     uint32
	BindFlags   uint32
	MiscFlags   uint32
}

// cTextureRegion mirrors RHI_TextureRegion.
type cTextureRegion struct {
	BaseArrayLayer uint32
	NumArrayLayers uint32
	MipLevel       uint32
	X, Y, Z        int32
	Width          uint32
	Height         uint32
	Depth          uint32
}

// symbols holds the functions a module exports. Handles are opaque
// pointers owned by the module. Only the four module functions are
// required; resource functions left nil make the matching operations
// fail with rhi.ErrNotSupported.
type symbols struct {
	buildID      func() int32
	rendererID   func() int32
	rendererName func() string
	alloc        func(desc unsafe.Pointer) uintptr

	release func(rs uintptr)

	createBuffer  func(rs uintptr, desc, data unsafe.Pointer, size uint64) uintptr
	writeBuffer   func(rs, buf uintptr, offset uint64, data unsafe.Pointer, size uint64) int32
	releaseBuffer func(rs, buf uintptr)

	createTexture  func(rs uintptr, desc, data unsafe.Pointer, size uint64) uintptr
	writeTexture   func(rs, tex uintptr, region, data unsafe.Pointer, size uint64) int32
	releaseTexture func(rs, tex uintptr)

	// close unloads the library. Nil for symbols not backed by one.
	close func()
}

// required lists the symbols every module must export.
func (s *symbols) required() map[string]any {
	return map[string]any{
		"RHI_BuildID":      &s.buildID,
		"RHI_RendererID":   &s.rendererID,
		"RHI_RendererName": &s.rendererName,
		"RHI_Alloc":        &s.alloc,
	}
}

// optional lists the symbols of the resource interface.
func (s *symbols) optional() map[string]any {
	return map[string]any{
		"RHI_Release":        &s.release,
		"RHI_CreateBuffer":   &s.createBuffer,
		"RHI_WriteBuffer":    &s.writeBuffer,
		"RHI_ReleaseBuffer":  &s.releaseBuffer,
		"RHI_CreateTexture":  &s.createTexture,
		"RHI_WriteTexture":   &s.writeTexture,
		"RHI_ReleaseTexture": &s.releaseTexture,
	}
}

func (s *symbols) hasBuffers() bool {
	return s.createBuffer != nil && s.writeBuffer != nil && s.releaseBuffer != nil
}

func (s *symbols) hasTextures() bool {
	return s.createTexture != nil && s.writeTexture != nil && s.releaseTexture != nil
}

func resultError(code int32, op string) error {
	switch code {
	case resultOK:
		return nil
	case resultInvalidArgument:
		return fmt.Errorf("%w: %s", rhi.ErrInvalidArgument, op)
	case resultUnsupportedFormat:
		return fmt.Errorf("%w: %s", rhi.ErrUnsupportedFormat, op)
	case resultNotSupported:
		return fmt.Errorf("%w: %s", rhi.ErrNotSupported, op)
	default:
		return fmt.Errorf("dynlib: %s failed with code %d", op, code)
	}
}

// cName copies s into a NUL-terminated buffer, truncating long names.
func cName(s string) [moduleNameSize]byte {
	var b [moduleNameSize]byte
	copy(b[:moduleNameSize-1], s)
	return b
}

func toCBufferDescriptor(d *resource.BufferDescriptor) cBufferDescriptor {
	c := cBufferDescriptor{
		Size:  d.Size,
		Type:  uint32(d.Type()),
		Usage: uint32(d.Usage),
	}
	switch k := d.Kind.(type) {
	case resource.VertexBuffer:
		c.Stride = k.Format.FormatSize()
	case resource.IndexBuffer:
		c.Stride = k.Format.Size()
		c.Format = uint32(k.Format.DataType())
	case resource.StorageBuffer:
		c.Stride = k.Stride
		c.Format = uint32(k.Type)
	case resource.StreamOutputBuffer:
		if k.Format != nil {
			c.Stride = k.Format.FormatSize()
		}
	}
	return c
}

func toCTextureDescriptor(d *resource.TextureDescriptor) cTextureDescriptor {
	return cTextureDescriptor{
		Type:        uint32(d.Type),
		Format:      uint32(d.Format),
		Width:       d.Extent.Width,
		Height:      d.Extent.Height,
		Depth:       d.Extent.Depth,
		ArrayLayers: d.Layers(),
		MipLevels:   d.MipLevels,
		Samples:     d.Samples,
		BindFlags:   uint32(d.BindFlags),
		MiscFlags:   uint32(d.MiscFlags),
	}
}

func toCTextureRegion(r resource.TextureRegion) cTextureRegion {
	return cTextureRegion{
		BaseArrayLayer: r.Subresource.BaseArrayLayer,
		NumArrayLayers: r.Subresource.NumArrayLayers,
		MipLevel:       r.Subresource.MipLevel,
		X:              r.Offset.X,
		Y:              r.Offset.Y,
		Z:              r.Offset.Z,
		Width:          r.Extent.Width,
		Height:         r.Extent.Height,
		Depth:          r.Extent.Depth,
	}
}

// dataPointer returns a pointer to the first byte of data, or nil.
func dataPointer(data []byte) unsafe.Pointer {
	if len(data) == 0 {
		return nil
	}
	return unsafe.Pointer(&data[0])
}
