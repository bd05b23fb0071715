package format

import "github.com/gogpu/gputypes"

var textureFormats = map[Format]gputypes.TextureFormat{
	R8UNorm:        gputypes.TextureFormatR8Unorm,
	R8SNorm:        gputypes.TextureFormatR8Snorm,
	R8UInt:         gputypes.TextureFormatR8Uint,
	R8SInt:         gputypes.TextureFormatR8Sint,
	RG8UNorm:       gputypes.TextureFormatRG8Unorm,
	RG8SNorm:       gputypes.TextureFormatRG8Snorm,
	RG8UInt:        gputypes.TextureFormatRG8Uint,
	RG8SInt:        gputypes.TextureFormatRG8Sint,
	RGBA8UNorm:     gputypes.TextureFormatRGBA8Unorm,
	RGBA8UNormSRGB: gputypes.TextureFormatRGBA8UnormSrgb,
	RGBA8SNorm:     gputypes.TextureFormatRGBA8Snorm,
	RGBA8UInt:      gputypes.TextureFormatRGBA8Uint,
	RGBA8SInt:      gputypes.TextureFormatRGBA8Sint,
	BGRA8UNorm:     gputypes.TextureFormatBGRA8Unorm,
	BGRA8UNormSRGB: gputypes.TextureFormatBGRA8UnormSrgb,

	R16UNorm:    gputypes.TextureFormatR16Unorm,
	R16SNorm:    gputypes.TextureFormatR16Snorm,
	R16UInt:     gputypes.TextureFormatR16Uint,
	R16SInt:     gputypes.TextureFormatR16Sint,
	R16Float:    gputypes.TextureFormatR16Float,
	RG16UNorm:   gputypes.TextureFormatRG16Unorm,
	RG16SNorm:   gputypes.TextureFormatRG16Snorm,
	RG16UInt:    gputypes.TextureFormatRG16Uint,
	RG16SInt:    gputypes.TextureFormatRG16Sint,
	RG16Float:   gputypes.TextureFormatRG16Float,
	RGBA16UNorm: gputypes.TextureFormatRGBA16Unorm,
	RGBA16SNorm: gputypes.TextureFormatRGBA16Snorm,
	RGBA16UInt:  gputypes.TextureFormatRGBA16Uint,
	RGBA16SInt:  gputypes.TextureFormatRGBA16Sint,
	RGBA16Float: gputypes.TextureFormatRGBA16Float,

	R32UInt:     gputypes.TextureFormatR32Uint,
	R32SInt:     gputypes.TextureFormatR32Sint,
	R32Float:    gputypes.TextureFormatR32Float,
	RG32UInt:    gputypes.TextureFormatRG32Uint,
	RG32SInt:    gputypes.TextureFormatRG32Sint,
	RG32Float:   gputypes.TextureFormatRG32Float,
	RGBA32UInt:  gputypes.TextureFormatRGBA32Uint,
	RGBA32SInt:  gputypes.TextureFormatRGBA32Sint,
	RGBA32Float: gputypes.TextureFormatRGBA32Float,

	RGB10A2UNorm: gputypes.TextureFormatRGB10A2Unorm,
	RG11B10Float: gputypes.TextureFormatRG11B10Ufloat,
	RGB9E5Float:  gputypes.TextureFormatRGB9E5Ufloat,

	D16UNorm:          gputypes.TextureFormatDepth16Unorm,
	D32Float:          gputypes.TextureFormatDepth32Float,
	D24UNormS8UInt:    gputypes.TextureFormatDepth24PlusStencil8,
	D32FloatS8X24UInt: gputypes.TextureFormatDepth32FloatStencil8,

	BC1UNorm:     gputypes.TextureFormatBC1RGBAUnorm,
	BC1UNormSRGB: gputypes.TextureFormatBC1RGBAUnormSrgb,
	BC2UNorm:     gputypes.TextureFormatBC2RGBAUnorm,
	BC2UNormSRGB: gputypes.TextureFormatBC2RGBAUnormSrgb,
	BC3UNorm:     gputypes.TextureFormatBC3RGBAUnorm,
	BC3UNormSRGB: gputypes.TextureFormatBC3RGBAUnormSrgb,
	BC4UNorm:     gputypes.TextureFormatBC4RUnorm,
	BC4SNorm:     gputypes.TextureFormatBC4RSnorm,
	BC5UNorm:     gputypes.TextureFormatBC5RGUnorm,
	BC5SNorm:     gputypes.TextureFormatBC5RGSnorm,
}

// TextureFormat returns the WebGPU texture format for f.
// The second result is false when WebGPU has no equivalent.
func (f Format) TextureFormat() (gputypes.TextureFormat, bool) {
	tf, ok := textureFormats[f]
	return tf, ok
}

// FromTextureFormat returns the format matching a WebGPU texture format.
func FromTextureFormat(tf gputypes.TextureFormat) (Format, bool) {
	for f, v := range textureFormats {
		if v == tf {
			return f, true
		}
	}
	return Undefined, false
}

type vertexKey struct {
	dt         DataType
	comps      uint32
	normalized bool
}

// WebGPU has no 1- or 3-component vertex formats below 32 bits and no
// normalized 32-bit or float formats.
var vertexFormats = map[vertexKey]gputypes.VertexFormat{
	{UInt8, 2, false}:  gputypes.VertexFormatUint8x2,
	{UInt8, 4, false}:  gputypes.VertexFormatUint8x4,
	{Int8, 2, false}:   gputypes.VertexFormatSint8x2,
	{Int8, 4, false}:   gputypes.VertexFormatSint8x4,
	{UInt8, 2, true}:   gputypes.VertexFormatUnorm8x2,
	{UInt8, 4, true}:   gputypes.VertexFormatUnorm8x4,
	{Int8, 2, true}:    gputypes.VertexFormatSnorm8x2,
	{Int8, 4, true}:    gputypes.VertexFormatSnorm8x4,
	{UInt16, 2, false}: gputypes.VertexFormatUint16x2,
	{UInt16, 4, false}: gputypes.VertexFormatUint16x4,
	{Int16, 2, false}:  gputypes.VertexFormatSint16x2,
	{Int16, 4, false}:  gputypes.VertexFormatSint16x4,
	{UInt16, 2, true}:  gputypes.VertexFormatUnorm16x2,
	{UInt16, 4, true}:  gputypes.VertexFormatUnorm16x4,
	{Int16, 2, true}:   gputypes.VertexFormatSnorm16x2,
	{Int16, 4, true}:   gputypes.VertexFormatSnorm16x4,

	{Float16, 2, false}: gputypes.VertexFormatFloat16x2,
	{Float16, 4, false}: gputypes.VertexFormatFloat16x4,
	{Float32, 1, false}: gputypes.VertexFormatFloat32,
	{Float32, 2, false}: gputypes.VertexFormatFloat32x2,
	{Float32, 3, false}: gputypes.VertexFormatFloat32x3,
	{Float32, 4, false}: gputypes.VertexFormatFloat32x4,
	{UInt32, 1, false}:  gputypes.VertexFormatUint32,
	{UInt32, 2, false}:  gputypes.VertexFormatUint32x2,
	{UInt32, 3, false}:  gputypes.VertexFormatUint32x3,
	{UInt32, 4, false}:  gputypes.VertexFormatUint32x4,
	{Int32, 1, false}:   gputypes.VertexFormatSint32,
	{Int32, 2, false}:   gputypes.VertexFormatSint32x2,
	{Int32, 3, false}:   gputypes.VertexFormatSint32x3,
	{Int32, 4, false}:   gputypes.VertexFormatSint32x4,
}

// VertexFormat returns the WebGPU vertex format for an attribute made of
// comps components of type dt. Normalized integer components are read as
// floats in [0, 1] or [-1, 1].
func VertexFormat(dt DataType, comps uint32, normalized bool) (gputypes.VertexFormat, bool) {
	vf, ok := vertexFormats[vertexKey{dt, comps, normalized}]
	return vf, ok
}
