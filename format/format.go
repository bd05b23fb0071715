// Package format describes pixel and vertex component formats and the
// read-only table that gives each format its byte layout.
//
// Formats are plain enumerated values. Everything the layout engine needs to
// know about a format (bytes per block, block dimensions, component count,
// depth/stencil aspects) lives in a Table. DefaultTable covers every
// format declared in this package; NewTable and Table.With build tables for
// hosts that add their own formats.
package format

import "fmt"

// Format identifies a pixel or attribute component encoding.
type Format uint32

// Formats known to DefaultTable.
const (
	Undefined Format = iota

	// 8-bit per component.
	R8UNorm
	R8SNorm
	R8UInt
	R8SInt
	RG8UNorm
	RG8SNorm
	RG8UInt
	RG8SInt
	RGBA8UNorm
	RGBA8UNormSRGB
	RGBA8SNorm
	RGBA8UInt
	RGBA8SInt
	BGRA8UNorm
	BGRA8UNormSRGB

	// 16-bit per component.
	R16UNorm
	R16SNorm
	R16UInt
	R16SInt
	R16Float
	RG16UNorm
	RG16SNorm
	RG16UInt
	RG16SInt
	RG16Float
	RGBA16UNorm
	RGBA16SNorm
	RGBA16UInt
	RGBA16SInt
	RGBA16Float

	// 32-bit per component.
	R32UInt
	R32SInt
	R32Float
	RG32UInt
	RG32SInt
	RG32Float
	RGB32UInt
	RGB32SInt
	RGB32Float
	RGBA32UInt
	RGBA32SInt
	RGBA32Float

	// 64-bit per component.
	R64Float
	RG64Float
	RGB64Float
	RGBA64Float

	// Packed.
	RGB10A2UNorm
	RG11B10Float
	RGB9E5Float

	// Depth/stencil.
	D16UNorm
	D32Float
	D24UNormS8UInt
	D32FloatS8X24UInt

	// Block compressed (4x4 blocks).
	BC1UNorm
	BC1UNormSRGB
	BC2UNorm
	BC2UNormSRGB
	BC3UNorm
	BC3UNormSRGB
	BC4UNorm
	BC4SNorm
	BC5UNorm
	BC5SNorm

	formatCount
)

// String returns the format name from DefaultTable, or "Format(n)" for
// formats the default table does not know.
func (f Format) String() string {
	if info, ok := DefaultTable().Lookup(f); ok && info.Name != "" {
		return info.Name
	}
	return fmt.Sprintf("Format(%d)", uint32(f))
}

// Parse returns the format with the given name in DefaultTable.
func Parse(name string) (Format, bool) {
	for _, f := range DefaultTable().Formats() {
		if f.String() == name {
			return f, true
		}
	}
	return Undefined, false
}
