package format

import (
	"slices"
	"sync"
)

// Flags describe the aspects and encoding of a format.
type Flags uint32

// Format flags.
const (
	FlagColor Flags = 1 << iota
	FlagDepth
	FlagStencil
	FlagCompressed
	FlagNormalized
	FlagInteger
	FlagFloat
	FlagSigned
	FlagSRGB
	FlagPacked
)

// Info is the format table entry for one format.
type Info struct {
	// Name is the display name of the format.
	Name string

	// BlockSize is the number of bytes per block. For uncompressed formats a
	// block is a single texel. Zero means the format has no backend-neutral
	// byte layout (combined depth/stencil formats whose packing is backend
	// specific).
	BlockSize uint32

	// BlockWidth and BlockHeight are the block dimensions in texels:
	// 1x1 for uncompressed formats, 4x4 for BC formats.
	BlockWidth  uint32
	BlockHeight uint32

	// Components is the number of components (1..4).
	Components uint32

	// DataType is the component type of uncompressed, unpacked formats.
	// DataTypeUndefined for compressed and packed formats.
	DataType DataType

	Flags Flags
}

// HasLayout reports whether the format has a defined byte layout.
func (i Info) HasLayout() bool {
	return i.BlockSize != 0 && i.BlockWidth != 0 && i.BlockHeight != 0
}

// IsCompressed reports whether the format is block compressed.
func (i Info) IsCompressed() bool { return i.Flags&FlagCompressed != 0 }

// IsDepthStencil reports whether the format has a depth or stencil aspect.
func (i Info) IsDepthStencil() bool { return i.Flags&(FlagDepth|FlagStencil) != 0 }

// HasDepth reports whether the format has a depth aspect.
func (i Info) HasDepth() bool { return i.Flags&FlagDepth != 0 }

// HasStencil reports whether the format has a stencil aspect.
func (i Info) HasStencil() bool { return i.Flags&FlagStencil != 0 }

// IsSRGB reports whether the format stores color in sRGB space.
func (i Info) IsSRGB() bool { return i.Flags&FlagSRGB != 0 }

// IsNormalized reports whether integer components are read as normalized floats.
func (i Info) IsNormalized() bool { return i.Flags&FlagNormalized != 0 }

// BitsPerTexel returns the average number of bits per texel.
// Compressed formats report fractional sizes rounded down (BC1: 4).
func (i Info) BitsPerTexel() uint32 {
	texels := i.BlockWidth * i.BlockHeight
	if texels == 0 {
		return 0
	}
	return i.BlockSize * 8 / texels
}

// Table is a read-only lookup from Format to Info.
//
// A Table is immutable after construction and safe for concurrent use.
type Table struct {
	infos map[Format]Info
}

// NewTable returns a table holding a copy of entries.
func NewTable(entries map[Format]Info) *Table {
	t := &Table{infos: make(map[Format]Info, len(entries))}
	for f, info := range entries {
		t.infos[f] = info
	}
	return t
}

// With returns a copy of t extended (or overridden) by the given entry.
// t itself is not modified.
func (t *Table) With(f Format, info Info) *Table {
	n := NewTable(t.infos)
	n.infos[f] = info
	return n
}

// Lookup returns the entry for f.
func (t *Table) Lookup(f Format) (Info, bool) {
	if t == nil {
		return Info{}, false
	}
	info, ok := t.infos[f]
	return info, ok
}

// Len returns the number of entries in the table.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.infos)
}

// Formats returns all formats in the table in ascending order.
func (t *Table) Formats() []Format {
	if t == nil {
		return nil
	}
	fs := make([]Format, 0, len(t.infos))
	for f := range t.infos {
		fs = append(fs, f)
	}
	slices.Sort(fs)
	return fs
}

// DefaultTable returns the shared table describing every format declared in
// this package. It is built on first use and never modified.
var DefaultTable = sync.OnceValue(func() *Table {
	return &Table{infos: defaultEntries()}
})

func color(name string, comps uint32, dt DataType, flags Flags) Info {
	return Info{
		Name:        name,
		BlockSize:   comps * dt.Size(),
		BlockWidth:  1,
		BlockHeight: 1,
		Components:  comps,
		DataType:    dt,
		Flags:       FlagColor | flags | dataTypeFlags(dt),
	}
}

func packed(name string, size, comps uint32, flags Flags) Info {
	return Info{
		Name:        name,
		BlockSize:   size,
		BlockWidth:  1,
		BlockHeight: 1,
		Components:  comps,
		Flags:       FlagColor | FlagPacked | flags,
	}
}

func compressed(name string, size, comps uint32, flags Flags) Info {
	return Info{
		Name:        name,
		BlockSize:   size,
		BlockWidth:  4,
		BlockHeight: 4,
		Components:  comps,
		Flags:       FlagColor | FlagCompressed | FlagNormalized | flags,
	}
}

func dataTypeFlags(dt DataType) Flags {
	switch {
	case dt.IsFloat():
		return FlagFloat | FlagSigned
	case dt.IsSigned():
		return FlagInteger | FlagSigned
	default:
		return FlagInteger
	}
}

func defaultEntries() map[Format]Info {
	const (
		norm = FlagNormalized
		srgb = FlagNormalized | FlagSRGB
	)
	return map[Format]Info{
		Undefined: {Name: "Undefined"},

		R8UNorm:        color("R8UNorm", 1, UInt8, norm),
		R8SNorm:        color("R8SNorm", 1, Int8, norm),
		R8UInt:         color("R8UInt", 1, UInt8, 0),
		R8SInt:         color("R8SInt", 1, Int8, 0),
		RG8UNorm:       color("RG8UNorm", 2, UInt8, norm),
		RG8SNorm:       color("RG8SNorm", 2, Int8, norm),
		RG8UInt:        color("RG8UInt", 2, UInt8, 0),
		RG8SInt:        color("RG8SInt", 2, Int8, 0),
		RGBA8UNorm:     color("RGBA8UNorm", 4, UInt8, norm),
		RGBA8UNormSRGB: color("RGBA8UNormSRGB", 4, UInt8, srgb),
		RGBA8SNorm:     color("RGBA8SNorm", 4, Int8, norm),
		RGBA8UInt:      color("RGBA8UInt", 4, UInt8, 0),
		RGBA8SInt:      color("RGBA8SInt", 4, Int8, 0),
		BGRA8UNorm:     color("BGRA8UNorm", 4, UInt8, norm),
		BGRA8UNormSRGB: color("BGRA8UNormSRGB", 4, UInt8, srgb),

		R16UNorm:    color("R16UNorm", 1, UInt16, norm),
		R16SNorm:    color("R16SNorm", 1, Int16, norm),
		R16UInt:     color("R16UInt", 1, UInt16, 0),
		R16SInt:     color("R16SInt", 1, Int16, 0),
		R16Float:    color("R16Float", 1, Float16, 0),
		RG16UNorm:   color("RG16UNorm", 2, UInt16, norm),
		RG16SNorm:   color("RG16SNorm", 2, Int16, norm),
		RG16UInt:    color("RG16UInt", 2, UInt16, 0),
		RG16SInt:    color("RG16SInt", 2, Int16, 0),
		RG16Float:   color("RG16Float", 2, Float16, 0),
		RGBA16UNorm: color("RGBA16UNorm", 4, UInt16, norm),
		RGBA16SNorm: color("RGBA16SNorm", 4, Int16, norm),
		RGBA16UInt:  color("RGBA16UInt", 4, UInt16, 0),
		RGBA16SInt:  color("RGBA16SInt", 4, Int16, 0),
		RGBA16Float: color("RGBA16Float", 4, Float16, 0),

		R32UInt:     color("R32UInt", 1, UInt32, 0),
		R32SInt:     color("R32SInt", 1, Int32, 0),
		R32Float:    color("R32Float", 1, Float32, 0),
		RG32UInt:    color("RG32UInt", 2, UInt32, 0),
		RG32SInt:    color("RG32SInt", 2, Int32, 0),
		RG32Float:   color("RG32Float", 2, Float32, 0),
		RGB32UInt:   color("RGB32UInt", 3, UInt32, 0),
		RGB32SInt:   color("RGB32SInt", 3, Int32, 0),
		RGB32Float:  color("RGB32Float", 3, Float32, 0),
		RGBA32UInt:  color("RGBA32UInt", 4, UInt32, 0),
		RGBA32SInt:  color("RGBA32SInt", 4, Int32, 0),
		RGBA32Float: color("RGBA32Float", 4, Float32, 0),

		R64Float:    color("R64Float", 1, Float64, 0),
		RG64Float:   color("RG64Float", 2, Float64, 0),
		RGB64Float:  color("RGB64Float", 3, Float64, 0),
		RGBA64Float: color("RGBA64Float", 4, Float64, 0),

		RGB10A2UNorm: packed("RGB10A2UNorm", 4, 4, norm),
		RG11B10Float: packed("RG11B10Float", 4, 3, FlagFloat),
		RGB9E5Float:  packed("RGB9E5Float", 4, 3, FlagFloat),

		D16UNorm: {
			Name: "D16UNorm", BlockSize: 2, BlockWidth: 1, BlockHeight: 1,
			Components: 1, DataType: UInt16, Flags: FlagDepth | FlagNormalized,
		},
		D32Float: {
			Name: "D32Float", BlockSize: 4, BlockWidth: 1, BlockHeight: 1,
			Components: 1, DataType: Float32, Flags: FlagDepth | FlagFloat,
		},
		// Combined depth/stencil: packing is backend specific, no byte layout.
		D24UNormS8UInt: {
			Name: "D24UNormS8UInt", Components: 2,
			Flags: FlagDepth | FlagStencil | FlagNormalized,
		},
		D32FloatS8X24UInt: {
			Name: "D32FloatS8X24UInt", Components: 2,
			Flags: FlagDepth | FlagStencil | FlagFloat,
		},

		BC1UNorm:     compressed("BC1UNorm", 8, 4, 0),
		BC1UNormSRGB: compressed("BC1UNormSRGB", 8, 4, FlagSRGB),
		BC2UNorm:     compressed("BC2UNorm", 16, 4, 0),
		BC2UNormSRGB: compressed("BC2UNormSRGB", 16, 4, FlagSRGB),
		BC3UNorm:     compressed("BC3UNorm", 16, 4, 0),
		BC3UNormSRGB: compressed("BC3UNormSRGB", 16, 4, FlagSRGB),
		BC4UNorm:     compressed("BC4UNorm", 8, 1, 0),
		BC4SNorm:     compressed("BC4SNorm", 8, 1, FlagSigned),
		BC5UNorm:     compressed("BC5UNorm", 16, 2, 0),
		BC5SNorm:     compressed("BC5SNorm", 16, 2, FlagSigned),
	}
}
