// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package layout

import (
	"testing"

	"github.com/gogpu/rhi/resource"
)

func TestCalcTextureOffset(t *testing.T) {
	off := resource.Offset3D{X: 1, Y: 2, Z: 3}
	tests := []struct {
		typ  resource.TextureType
		want resource.Offset3D
	}{
		{resource.Texture1D, resource.Offset3D{X: 1}},
		{resource.Texture1DArray, resource.Offset3D{X: 1, Z: 5}},
		{resource.Texture2D, resource.Offset3D{X: 1, Y: 2}},
		{resource.Texture2DMS, resource.Offset3D{X: 1, Y: 2}},
		{resource.Texture2DArray, resource.Offset3D{X: 1, Y: 2, Z: 5}},
		{resource.Texture2DMSArray, resource.Offset3D{X: 1, Y: 2, Z: 5}},
		{resource.Texture3D, resource.Offset3D{X: 1, Y: 2, Z: 3}},
		{resource.TextureCube, resource.Offset3D{X: 1, Y: 2}},
		{resource.TextureCubeArray, resource.Offset3D{X: 1, Y: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			if got := CalcTextureOffset(tt.typ, off, 5); got != tt.want {
				t.Errorf("CalcTextureOffset() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCalcTextureExtent(t *testing.T) {
	ext := resource.Extent3D{Width: 8, Height: 4, Depth: 2}
	tests := []struct {
		typ  resource.TextureType
		want resource.Extent3D
	}{
		{resource.Texture1D, resource.Extent3D{Width: 8, Height: 1, Depth: 1}},
		{resource.Texture1DArray, resource.Extent3D{Width: 8, Height: 1, Depth: 6}},
		{resource.Texture2D, resource.Extent3D{Width: 8, Height: 4, Depth: 1}},
		{resource.Texture2DMS, resource.Extent3D{Width: 8, Height: 4, Depth: 1}},
		{resource.Texture2DArray, resource.Extent3D{Width: 8, Height: 4, Depth: 6}},
		{resource.Texture2DMSArray, resource.Extent3D{Width: 8, Height: 4, Depth: 6}},
		{resource.Texture3D, resource.Extent3D{Width: 8, Height: 4, Depth: 2}},
		{resource.TextureCube, resource.Extent3D{Width: 8, Height: 4, Depth: 1}},
		{resource.TextureCubeArray, resource.Extent3D{Width: 8, Height: 4, Depth: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			if got := CalcTextureExtent(tt.typ, ext, 6); got != tt.want {
				t.Errorf("CalcTextureExtent() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
