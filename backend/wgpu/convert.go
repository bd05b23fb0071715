// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/rhi"
	"github.com/gogpu/rhi/layout"
	"github.com/gogpu/rhi/resource"
)

func alignSize(n, alignment uint64) uint64 {
	return (n + alignment - 1) / alignment * alignment
}

// padData returns data extended with zeros to a multiple of alignment.
func padData(data []byte, alignment uint64) []byte {
	n := alignSize(uint64(len(data)), alignment)
	if n == uint64(len(data)) {
		return data
	}
	padded := make([]byte, n)
	copy(padded, data)
	return padded
}

func checkBufferWrite(size, offset, n uint64) error {
	if offset%copyBufferAlignment != 0 || n%copyBufferAlignment != 0 {
		return fmt.Errorf("%w: write of %d bytes at %d is not %d-byte aligned",
			rhi.ErrInvalidArgument, n, offset, copyBufferAlignment)
	}
	if offset+n > size || offset+n < offset {
		return fmt.Errorf("%w: write of %d bytes at %d exceeds buffer size %d",
			rhi.ErrInvalidArgument, n, offset, size)
	}
	return nil
}

// textureDescriptor translates desc to a HAL descriptor with resolved mip
// and sample counts.
func (rs *RenderSystem) textureDescriptor(desc *resource.TextureDescriptor) (*hal.TextureDescriptor, error) {
	if desc.Type == resource.Texture1DArray {
		return nil, fmt.Errorf("%w: %v textures", rhi.ErrNotSupported, desc.Type)
	}
	tf, ok := desc.Format.TextureFormat()
	if !ok {
		return nil, fmt.Errorf("%w: %v has no WebGPU equivalent", rhi.ErrUnsupportedFormat, desc.Format)
	}
	mips, err := layout.ResolveMipLevels(desc)
	if err != nil {
		return nil, err
	}
	samples := uint32(1)
	if desc.Type.IsMultiSample() {
		samples = rs.calc.GetClampedSamples(int(desc.Samples))
	}
	depth := desc.Layers()
	if desc.Type == resource.Texture3D {
		depth = desc.Extent.Depth
	}
	return &hal.TextureDescriptor{
		Label: desc.Label,
		Size: hal.Extent3D{
			Width:              desc.Extent.Width,
			Height:             desc.Extent.Height,
			DepthOrArrayLayers: depth,
		},
		MipLevelCount: mips,
		SampleCount:   samples,
		Dimension:     desc.Type.Dimension(),
		Format:        tf,
		Usage:         desc.GPUUsage(),
	}, nil
}

// textureWrite is a queue write resolved from a texture region.
type textureWrite struct {
	mip          uint32
	origin       [3]uint32
	size         gputypes.Extent3D
	bytesPerRow  uint32
	rowsPerImage uint32
}

// within reports whether [start, start+n) fits in [0, limit) without
// overflowing uint32.
func within(start, n, limit uint32) bool {
	return n <= limit && start <= limit-n
}

func alignUp(v, a uint32) uint32 {
	return (v + a - 1) / a * a
}

// planWrite validates region against the texture and computes the HAL
// copy parameters for tightly packed image data.
func (rs *RenderSystem) planWrite(desc *resource.TextureDescriptor, layers uint32, region resource.TextureRegion, image *resource.ImageView) (textureWrite, error) {
	if desc.Type.IsMultiSample() {
		return textureWrite{}, fmt.Errorf("%w: host writes to %v textures", rhi.ErrNotSupported, desc.Type)
	}
	if image.Format != desc.Format {
		return textureWrite{}, fmt.Errorf("%w: image format %v differs from texture format %v",
			rhi.ErrNotSupported, image.Format, desc.Format)
	}
	sub := region.Subresource
	if desc.MipLevels != 0 && sub.MipLevel >= desc.MipLevels {
		return textureWrite{}, fmt.Errorf("%w: mip level %d of %d", rhi.ErrInvalidArgument, sub.MipLevel, desc.MipLevels)
	}
	if sub.NumArrayLayers == 0 || !within(sub.BaseArrayLayer, sub.NumArrayLayers, layers) {
		return textureWrite{}, fmt.Errorf("%w: %d layers at %d of %d", rhi.ErrInvalidArgument,
			sub.NumArrayLayers, sub.BaseArrayLayer, layers)
	}

	off := layout.CalcTextureOffset(desc.Type, region.Offset, sub.BaseArrayLayer)
	ext := layout.CalcTextureExtent(desc.Type, region.Extent, sub.NumArrayLayers)
	if desc.Type.IsCube() {
		off.Z = int32(sub.BaseArrayLayer)
		ext.Depth = sub.NumArrayLayers
	}
	if off.X < 0 || off.Y < 0 || off.Z < 0 {
		return textureWrite{}, fmt.Errorf("%w: negative offset %+v", rhi.ErrInvalidArgument, off)
	}
	mipExt := layout.MipExtent(desc.Type, desc.Extent, sub.MipLevel)
	if !within(uint32(off.X), ext.Width, mipExt.Width) || !within(uint32(off.Y), ext.Height, mipExt.Height) ||
		(desc.Type == resource.Texture3D && !within(uint32(off.Z), ext.Depth, mipExt.Depth)) {
		return textureWrite{}, fmt.Errorf("%w: region %+v at %+v exceeds mip extent %+v",
			rhi.ErrInvalidArgument, ext, off, mipExt)
	}

	info, _ := rs.calc.Table().Lookup(desc.Format)
	bw, bh := info.BlockWidth, info.BlockHeight
	x, y := uint32(off.X), uint32(off.Y)
	if x%bw != 0 || y%bh != 0 ||
		(ext.Width%bw != 0 && x+ext.Width != mipExt.Width) ||
		(ext.Height%bh != 0 && y+ext.Height != mipExt.Height) {
		return textureWrite{}, fmt.Errorf("%w: region %+v at %+v is not aligned to %dx%d blocks",
			rhi.ErrInvalidArgument, ext, off, bw, bh)
	}

	src, err := rs.calc.CalcSubresourceLayout(desc.Format, resource.Extent3D{Width: ext.Width, Height: ext.Height, Depth: 1}, ext.Depth)
	if err != nil {
		return textureWrite{}, err
	}
	if uint64(len(image.Data)) < src.DataSize {
		return textureWrite{}, fmt.Errorf("%w: %d bytes for a region of %d bytes",
			rhi.ErrInvalidArgument, len(image.Data), src.DataSize)
	}
	dl := src.DataLayout()
	// Copies of compressed edge blocks use the physical block-aligned size.
	size := ext.GPU()
	size.Width = alignUp(size.Width, bw)
	size.Height = alignUp(size.Height, bh)
	return textureWrite{
		mip:          sub.MipLevel,
		origin:       [3]uint32{x, y, uint32(off.Z)},
		size:         size,
		bytesPerRow:  dl.BytesPerRow,
		rowsPerImage: dl.RowsPerImage,
	}, nil
}
