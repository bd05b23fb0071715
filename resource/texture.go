package resource

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/rhi"
	"github.com/gogpu/rhi/format"
)

// TextureType is the dimensionality of a texture.
type TextureType uint8

// Texture types.
const (
	Texture1D TextureType = iota
	Texture2D
	Texture3D
	TextureCube
	Texture1DArray
	Texture2DArray
	TextureCubeArray
	Texture2DMS
	Texture2DMSArray
)

var textureTypeNames = [...]string{
	Texture1D:        "1D",
	Texture2D:        "2D",
	Texture3D:        "3D",
	TextureCube:      "Cube",
	Texture1DArray:   "1DArray",
	Texture2DArray:   "2DArray",
	TextureCubeArray: "CubeArray",
	Texture2DMS:      "2DMS",
	Texture2DMSArray: "2DMSArray",
}

func (t TextureType) String() string {
	if t.IsValid() {
		return textureTypeNames[t]
	}
	return fmt.Sprintf("TextureType(%d)", t)
}

// ParseTextureType returns the texture type with the given name, as
// reported by String.
func ParseTextureType(name string) (TextureType, bool) {
	for t, n := range textureTypeNames {
		if n == name {
			return TextureType(t), true
		}
	}
	return 0, false
}

// IsValid reports whether t is a known texture type.
func (t TextureType) IsValid() bool {
	return int(t) < len(textureTypeNames)
}

// IsArray reports whether t has array layers addressed by the caller.
func (t TextureType) IsArray() bool {
	switch t {
	case Texture1DArray, Texture2DArray, TextureCubeArray, Texture2DMSArray:
		return true
	}
	return false
}

// IsCube reports whether t is a cube map type.
func (t TextureType) IsCube() bool {
	return t == TextureCube || t == TextureCubeArray
}

// IsMultiSample reports whether t is a multi-sampled type.
func (t TextureType) IsMultiSample() bool {
	return t == Texture2DMS || t == Texture2DMSArray
}

// Dimension returns the WebGPU texture dimension for t.
func (t TextureType) Dimension() gputypes.TextureDimension {
	switch t {
	case Texture1D, Texture1DArray:
		return gputypes.TextureDimension1D
	case Texture3D:
		return gputypes.TextureDimension3D
	default:
		return gputypes.TextureDimension2D
	}
}

// Extent3D is a size in texels.
type Extent3D struct {
	Width, Height, Depth uint32
}

// IsZero reports whether any dimension is zero.
func (e Extent3D) IsZero() bool {
	return e.Width == 0 || e.Height == 0 || e.Depth == 0
}

// GPU converts e to a WebGPU extent. Depth maps to DepthOrArrayLayers.
func (e Extent3D) GPU() gputypes.Extent3D {
	return gputypes.Extent3D{Width: e.Width, Height: e.Height, DepthOrArrayLayers: e.Depth}
}

// Offset3D is a position in texels.
type Offset3D struct {
	X, Y, Z int32
}

// BindFlags describe how a texture may be used.
type BindFlags uint32

// Bind flags.
const (
	BindSampled BindFlags = 1 << iota
	BindStorage
	BindColorAttachment
	BindDepthStencilAttachment
	BindCopySrc
	BindCopyDst
)

// MiscFlags are creation options.
type MiscFlags uint32

const (
	// MiscGenerateMips generates the mip chain from the initial image.
	MiscGenerateMips MiscFlags = 1 << iota

	// MiscFixedSamples requests fixed sample locations for multi-sampled
	// textures.
	MiscFixedSamples
)

// TextureDescriptor describes a texture to create.
type TextureDescriptor struct {
	Label  string
	Type   TextureType
	Format format.Format

	// Extent is the size of mip level 0. Depth is 1 unless Type is
	// Texture3D.
	Extent Extent3D

	// ArrayLayers is the number of layers. Cube maps count six layers per
	// cube. Non-array types have one layer, or six for TextureCube.
	ArrayLayers uint32

	// MipLevels is the number of mip levels; 0 selects the full chain.
	MipLevels uint32

	// Samples is the sample count of multi-sampled types. Others ignore it.
	Samples uint32

	BindFlags BindFlags
	MiscFlags MiscFlags
}

// Layers returns ArrayLayers with the per-type default applied.
func (d *TextureDescriptor) Layers() uint32 {
	if d.ArrayLayers != 0 {
		return d.ArrayLayers
	}
	if d.Type.IsCube() {
		return 6
	}
	return 1
}

// Validate checks the structural shape of the descriptor. table supplies
// the known formats; nil selects format.DefaultTable.
func (d *TextureDescriptor) Validate(table *format.Table) error {
	if table == nil {
		table = format.DefaultTable()
	}
	if !d.Type.IsValid() {
		return fmt.Errorf("%w: texture %q: invalid type %v", rhi.ErrInvalidArgument, d.Label, d.Type)
	}
	if _, ok := table.Lookup(d.Format); !ok || d.Format == format.Undefined {
		return fmt.Errorf("%w: texture %q: %v", rhi.ErrUnsupportedFormat, d.Label, d.Format)
	}
	if d.Extent.IsZero() {
		return fmt.Errorf("%w: texture %q: zero extent %+v", rhi.ErrInvalidArgument, d.Label, d.Extent)
	}

	layers := d.Layers()
	switch d.Type {
	case Texture1D, Texture1DArray:
		if d.Extent.Height != 1 || d.Extent.Depth != 1 {
			return fmt.Errorf("%w: texture %q: 1D extent must have height and depth 1", rhi.ErrInvalidArgument, d.Label)
		}
	case Texture3D:
	default:
		if d.Extent.Depth != 1 {
			return fmt.Errorf("%w: texture %q: %v extent must have depth 1", rhi.ErrInvalidArgument, d.Label, d.Type)
		}
	}
	if d.Type.IsCube() {
		if d.Extent.Width != d.Extent.Height {
			return fmt.Errorf("%w: texture %q: cube faces must be square", rhi.ErrInvalidArgument, d.Label)
		}
		if layers%6 != 0 || (d.Type == TextureCube && layers != 6) {
			return fmt.Errorf("%w: texture %q: %v needs six layers per cube, got %d",
				rhi.ErrInvalidArgument, d.Label, d.Type, layers)
		}
	} else if !d.Type.IsArray() && layers != 1 {
		return fmt.Errorf("%w: texture %q: %v has one layer, got %d", rhi.ErrInvalidArgument, d.Label, d.Type, layers)
	}
	if d.Type.IsMultiSample() && d.MipLevels > 1 {
		return fmt.Errorf("%w: texture %q: multi-sampled textures have one mip level", rhi.ErrInvalidArgument, d.Label)
	}
	return nil
}

// GPUUsage returns the WebGPU usage flags for the descriptor's bind flags.
// Textures are always copy destinations so initial data can be uploaded.
func (d *TextureDescriptor) GPUUsage() gputypes.TextureUsage {
	usage := gputypes.TextureUsageCopyDst
	if d.BindFlags&BindSampled != 0 {
		usage |= gputypes.TextureUsageTextureBinding
	}
	if d.BindFlags&BindStorage != 0 {
		usage |= gputypes.TextureUsageStorageBinding
	}
	if d.BindFlags&(BindColorAttachment|BindDepthStencilAttachment) != 0 {
		usage |= gputypes.TextureUsageRenderAttachment
	}
	if d.BindFlags&BindCopySrc != 0 {
		usage |= gputypes.TextureUsageCopySrc
	}
	return usage
}

// Subresource selects array layers and one mip level of a texture.
type Subresource struct {
	BaseArrayLayer uint32
	NumArrayLayers uint32
	MipLevel       uint32
}

// TextureRegion is a box inside one mip level of a range of layers.
type TextureRegion struct {
	Subresource Subresource
	Offset      Offset3D
	Extent      Extent3D
}

// ImageView is tightly packed image data in a given format. It is used for
// initial texture contents and region writes.
type ImageView struct {
	Format format.Format
	Data   []byte
}

// Empty reports whether the view carries no data.
func (v *ImageView) Empty() bool {
	return v == nil || len(v.Data) == 0
}
