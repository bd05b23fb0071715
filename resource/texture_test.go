package resource

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/rhi"
	"github.com/gogpu/rhi/format"
)

func TestTextureDescriptorValidate(t *testing.T) {
	tests := []struct {
		name string
		desc TextureDescriptor
		want error
	}{
		{"2D", TextureDescriptor{Type: Texture2D, Format: format.RGBA8UNorm, Extent: Extent3D{64, 64, 1}}, nil},
		{"1D", TextureDescriptor{Type: Texture1D, Format: format.R8UNorm, Extent: Extent3D{64, 1, 1}}, nil},
		{"1D with height", TextureDescriptor{Type: Texture1D, Format: format.R8UNorm, Extent: Extent3D{64, 2, 1}}, rhi.ErrInvalidArgument},
		{"3D", TextureDescriptor{Type: Texture3D, Format: format.RGBA8UNorm, Extent: Extent3D{8, 8, 8}}, nil},
		{"2D with depth", TextureDescriptor{Type: Texture2D, Format: format.RGBA8UNorm, Extent: Extent3D{8, 8, 2}}, rhi.ErrInvalidArgument},
		{"zero extent", TextureDescriptor{Type: Texture2D, Format: format.RGBA8UNorm, Extent: Extent3D{0, 8, 1}}, rhi.ErrInvalidArgument},
		{"undefined format", TextureDescriptor{Type: Texture2D, Extent: Extent3D{8, 8, 1}}, rhi.ErrUnsupportedFormat},
		{"unknown format", TextureDescriptor{Type: Texture2D, Format: 9999, Extent: Extent3D{8, 8, 1}}, rhi.ErrUnsupportedFormat},
		{"cube", TextureDescriptor{Type: TextureCube, Format: format.RGBA8UNorm, Extent: Extent3D{16, 16, 1}}, nil},
		{"cube not square", TextureDescriptor{Type: TextureCube, Format: format.RGBA8UNorm, Extent: Extent3D{16, 8, 1}}, rhi.ErrInvalidArgument},
		{"cube array", TextureDescriptor{Type: TextureCubeArray, Format: format.RGBA8UNorm, Extent: Extent3D{16, 16, 1}, ArrayLayers: 12}, nil},
		{"cube array partial", TextureDescriptor{Type: TextureCubeArray, Format: format.RGBA8UNorm, Extent: Extent3D{16, 16, 1}, ArrayLayers: 8}, rhi.ErrInvalidArgument},
		{"2D with layers", TextureDescriptor{Type: Texture2D, Format: format.RGBA8UNorm, Extent: Extent3D{8, 8, 1}, ArrayLayers: 4}, rhi.ErrInvalidArgument},
		{"2D array", TextureDescriptor{Type: Texture2DArray, Format: format.RGBA8UNorm, Extent: Extent3D{8, 8, 1}, ArrayLayers: 4}, nil},
		{"2DMS mips", TextureDescriptor{Type: Texture2DMS, Format: format.RGBA8UNorm, Extent: Extent3D{8, 8, 1}, MipLevels: 2, Samples: 4}, rhi.ErrInvalidArgument},
		{"bad type", TextureDescriptor{Type: 99, Format: format.RGBA8UNorm, Extent: Extent3D{8, 8, 1}}, rhi.ErrInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.desc.Validate(nil)
			if tt.want == nil {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestTextureDescriptorLayers(t *testing.T) {
	tests := []struct {
		desc TextureDescriptor
		want uint32
	}{
		{TextureDescriptor{Type: Texture2D}, 1},
		{TextureDescriptor{Type: TextureCube}, 6},
		{TextureDescriptor{Type: Texture2DArray, ArrayLayers: 3}, 3},
	}
	for _, tt := range tests {
		if got := tt.desc.Layers(); got != tt.want {
			t.Errorf("%v Layers() = %d, want %d", tt.desc.Type, got, tt.want)
		}
	}
}

func TestTextureTypeDimension(t *testing.T) {
	tests := []struct {
		typ  TextureType
		want gputypes.TextureDimension
	}{
		{Texture1D, gputypes.TextureDimension1D},
		{Texture1DArray, gputypes.TextureDimension1D},
		{Texture2D, gputypes.TextureDimension2D},
		{TextureCubeArray, gputypes.TextureDimension2D},
		{Texture2DMS, gputypes.TextureDimension2D},
		{Texture3D, gputypes.TextureDimension3D},
	}
	for _, tt := range tests {
		if got := tt.typ.Dimension(); got != tt.want {
			t.Errorf("%v.Dimension() = %v, want %v", tt.typ, got, tt.want)
		}
	}
}

func TestTextureDescriptorGPUUsage(t *testing.T) {
	d := TextureDescriptor{BindFlags: BindSampled | BindColorAttachment}
	got := d.GPUUsage()
	want := gputypes.TextureUsageCopyDst | gputypes.TextureUsageTextureBinding | gputypes.TextureUsageRenderAttachment
	if got != want {
		t.Errorf("GPUUsage() = %v, want %v", got, want)
	}
}

func TestExtent3DGPU(t *testing.T) {
	got := Extent3D{4, 5, 6}.GPU()
	if got.Width != 4 || got.Height != 5 || got.DepthOrArrayLayers != 6 {
		t.Errorf("GPU() = %+v", got)
	}
}

func TestImageViewEmpty(t *testing.T) {
	var nilView *ImageView
	if !nilView.Empty() {
		t.Error("nil view should be empty")
	}
	if (&ImageView{Format: format.RGBA8UNorm}).Empty() != true {
		t.Error("view without data should be empty")
	}
	if (&ImageView{Data: []byte{1}}).Empty() {
		t.Error("view with data should not be empty")
	}
}

func TestParseTextureType(t *testing.T) {
	for tt := Texture1D; tt <= Texture2DMSArray; tt++ {
		got, ok := ParseTextureType(tt.String())
		if !ok || got != tt {
			t.Errorf("ParseTextureType(%q) = %v, %v", tt.String(), got, ok)
		}
	}
	if _, ok := ParseTextureType("4D"); ok {
		t.Error("ParseTextureType(4D) succeeded")
	}
}
