// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package layout

import "github.com/gogpu/rhi"

// Alignment holds the padding rules a backend applies to staging memory.
// Zero and one both mean no padding.
type Alignment struct {
	// RowAlignment pads each row of blocks.
	RowAlignment uint32

	// PlacementAlignment pads the total size of a subresource so the next
	// one starts on a valid offset.
	PlacementAlignment uint32

	// ConstantBufferAlignment pads constant buffer sizes and offsets.
	ConstantBufferAlignment uint32
}

// AlignmentFor returns the alignment rules of a renderer.
func AlignmentFor(id rhi.RendererID) Alignment {
	switch id {
	case rhi.RendererDirect3D12:
		return Alignment{RowAlignment: 256, PlacementAlignment: 512, ConstantBufferAlignment: 256}
	case rhi.RendererDirect3D11:
		return Alignment{RowAlignment: 1, PlacementAlignment: 1, ConstantBufferAlignment: 16}
	case rhi.RendererWebGPU:
		return Alignment{RowAlignment: 256, PlacementAlignment: 4, ConstantBufferAlignment: 256}
	case rhi.RendererOpenGL, rhi.RendererOpenGLES3:
		// GL_UNPACK_ALIGNMENT default.
		return Alignment{RowAlignment: 4, PlacementAlignment: 1, ConstantBufferAlignment: 256}
	case rhi.RendererVulkan, rhi.RendererMetal:
		return Alignment{RowAlignment: 1, PlacementAlignment: 4, ConstantBufferAlignment: 256}
	default:
		return Alignment{RowAlignment: 1, PlacementAlignment: 1, ConstantBufferAlignment: 1}
	}
}

// AlignConstantBufferSize rounds size up to the constant buffer alignment.
func (a Alignment) AlignConstantBufferSize(size uint64) uint64 {
	return alignUp(size, uint64(a.ConstantBufferAlignment))
}

// AlignConstantBufferSize rounds size up to the constant buffer alignment
// of renderer id.
func AlignConstantBufferSize(id rhi.RendererID, size uint64) uint64 {
	return AlignmentFor(id).AlignConstantBufferSize(size)
}
