// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package layout

import "github.com/gogpu/rhi/resource"

// CalcTextureOffset maps a logical offset and base layer into the 3D
// offset expected by copy operations on a texture of type t.
//
// 1D and 2D array types carry the base layer in Z. 3D textures keep the
// real Z. Cube and cube-array textures keep Z at 0 and address faces
// through the subresource range.
func CalcTextureOffset(t resource.TextureType, offset resource.Offset3D, baseArrayLayer uint32) resource.Offset3D {
	switch t {
	case resource.Texture1D:
		return resource.Offset3D{X: offset.X}
	case resource.Texture1DArray:
		return resource.Offset3D{X: offset.X, Z: int32(baseArrayLayer)}
	case resource.Texture2D, resource.Texture2DMS:
		return resource.Offset3D{X: offset.X, Y: offset.Y}
	case resource.Texture2DArray, resource.Texture2DMSArray:
		return resource.Offset3D{X: offset.X, Y: offset.Y, Z: int32(baseArrayLayer)}
	case resource.Texture3D:
		return offset
	case resource.TextureCube, resource.TextureCubeArray:
		return resource.Offset3D{X: offset.X, Y: offset.Y}
	default:
		return offset
	}
}

// CalcTextureExtent maps a logical extent and layer count into the 3D
// extent expected by copy operations on a texture of type t. Array types
// carry the layer count in Depth.
func CalcTextureExtent(t resource.TextureType, extent resource.Extent3D, numArrayLayers uint32) resource.Extent3D {
	switch t {
	case resource.Texture1D:
		return resource.Extent3D{Width: extent.Width, Height: 1, Depth: 1}
	case resource.Texture1DArray:
		return resource.Extent3D{Width: extent.Width, Height: 1, Depth: numArrayLayers}
	case resource.Texture2D, resource.Texture2DMS:
		return resource.Extent3D{Width: extent.Width, Height: extent.Height, Depth: 1}
	case resource.Texture2DArray, resource.Texture2DMSArray:
		return resource.Extent3D{Width: extent.Width, Height: extent.Height, Depth: numArrayLayers}
	case resource.Texture3D:
		return extent
	case resource.TextureCube, resource.TextureCubeArray:
		return resource.Extent3D{Width: extent.Width, Height: extent.Height, Depth: 1}
	default:
		return extent
	}
}
