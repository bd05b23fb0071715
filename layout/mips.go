// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package layout

import (
	"fmt"
	"math/bits"

	"github.com/gogpu/rhi"
	"github.com/gogpu/rhi/resource"
)

// NumMipLevels returns the length of the full mip chain of a texture of
// type t and the given level-0 extent. Multi-sampled types have one level.
// A zero extent has no levels.
func NumMipLevels(t resource.TextureType, extent resource.Extent3D) uint32 {
	if t.IsMultiSample() {
		return 1
	}
	size := extent.Width
	switch t {
	case resource.Texture1D, resource.Texture1DArray:
	case resource.Texture3D:
		size = max(size, extent.Height, extent.Depth)
	default:
		size = max(size, extent.Height)
	}
	return uint32(bits.Len32(size))
}

// MipExtent returns the extent of mip level of a texture of type t.
// Dimensions halve per level and never drop below 1; dimensions a type
// does not have stay as given.
func MipExtent(t resource.TextureType, extent resource.Extent3D, level uint32) resource.Extent3D {
	shrink := func(v uint32) uint32 {
		if level >= 32 {
			return 1
		}
		return max(v>>level, 1)
	}
	e := extent
	e.Width = shrink(extent.Width)
	switch t {
	case resource.Texture1D, resource.Texture1DArray:
	case resource.Texture3D:
		e.Height = shrink(extent.Height)
		e.Depth = shrink(extent.Depth)
	default:
		e.Height = shrink(extent.Height)
	}
	return e
}

// ResolveMipLevels returns the number of mip levels desc describes:
// MipLevels, or the full chain when MipLevels is 0. Requesting more levels
// than the full chain is ErrInvalidArgument.
func ResolveMipLevels(desc *resource.TextureDescriptor) (uint32, error) {
	full := NumMipLevels(desc.Type, desc.Extent)
	if desc.MipLevels == 0 {
		return full, nil
	}
	if desc.MipLevels > full {
		return 0, fmt.Errorf("%w: texture %q: %d mip levels requested, extent %+v allows %d",
			rhi.ErrInvalidArgument, desc.Label, desc.MipLevels, desc.Extent, full)
	}
	return desc.MipLevels, nil
}

// MustGenerateMipsOnCreate reports whether the mip chain of a texture must
// be generated from its initial image when it is created: the descriptor
// sets MiscGenerateMips, resolves to more than one mip level, and initial
// data is present.
func MustGenerateMipsOnCreate(desc *resource.TextureDescriptor, initial *resource.ImageView) bool {
	if desc.MiscFlags&resource.MiscGenerateMips == 0 || initial.Empty() {
		return false
	}
	mips := desc.MipLevels
	if mips == 0 {
		mips = NumMipLevels(desc.Type, desc.Extent)
	}
	return mips > 1
}
