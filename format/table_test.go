package format

import (
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga/ir"
)

func TestDefaultTableCoversAllFormats(t *testing.T) {
	table := DefaultTable()
	for f := Undefined; f < formatCount; f++ {
		if _, ok := table.Lookup(f); !ok {
			t.Errorf("DefaultTable().Lookup(%d) missing", f)
		}
	}
	if table.Len() != int(formatCount) {
		t.Errorf("Len() = %d, want %d", table.Len(), formatCount)
	}
}

func TestDefaultTableShared(t *testing.T) {
	if DefaultTable() != DefaultTable() {
		t.Error("DefaultTable() should return the same instance")
	}
}

func TestInfoBlockSizes(t *testing.T) {
	tests := []struct {
		format     Format
		blockSize  uint32
		blockW     uint32
		blockH     uint32
		components uint32
	}{
		{R8UNorm, 1, 1, 1, 1},
		{RG8UNorm, 2, 1, 1, 2},
		{RGBA8UNorm, 4, 1, 1, 4},
		{BGRA8UNormSRGB, 4, 1, 1, 4},
		{R16Float, 2, 1, 1, 1},
		{RGBA16Float, 8, 1, 1, 4},
		{RGB32Float, 12, 1, 1, 3},
		{RGBA32Float, 16, 1, 1, 4},
		{RGBA64Float, 32, 1, 1, 4},
		{RGB10A2UNorm, 4, 1, 1, 4},
		{D16UNorm, 2, 1, 1, 1},
		{D32Float, 4, 1, 1, 1},
		{BC1UNorm, 8, 4, 4, 4},
		{BC3UNormSRGB, 16, 4, 4, 4},
		{BC4SNorm, 8, 4, 4, 1},
		{BC5UNorm, 16, 4, 4, 2},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			info, ok := DefaultTable().Lookup(tt.format)
			if !ok {
				t.Fatalf("Lookup(%v) not found", tt.format)
			}
			if info.BlockSize != tt.blockSize {
				t.Errorf("BlockSize = %d, want %d", info.BlockSize, tt.blockSize)
			}
			if info.BlockWidth != tt.blockW || info.BlockHeight != tt.blockH {
				t.Errorf("block = %dx%d, want %dx%d", info.BlockWidth, info.BlockHeight, tt.blockW, tt.blockH)
			}
			if info.Components != tt.components {
				t.Errorf("Components = %d, want %d", info.Components, tt.components)
			}
			if !info.HasLayout() {
				t.Error("HasLayout() = false, want true")
			}
		})
	}
}

func TestCombinedDepthStencilHasNoLayout(t *testing.T) {
	for _, f := range []Format{D24UNormS8UInt, D32FloatS8X24UInt} {
		info, ok := DefaultTable().Lookup(f)
		if !ok {
			t.Fatalf("Lookup(%v) not found", f)
		}
		if info.HasLayout() {
			t.Errorf("%v: HasLayout() = true, want false", f)
		}
		if !info.HasDepth() || !info.HasStencil() {
			t.Errorf("%v: depth=%v stencil=%v, want both", f, info.HasDepth(), info.HasStencil())
		}
	}
}

func TestInfoFlags(t *testing.T) {
	table := DefaultTable()

	info, _ := table.Lookup(BC1UNormSRGB)
	if !info.IsCompressed() || !info.IsSRGB() {
		t.Errorf("BC1UNormSRGB flags = %b, want compressed and sRGB", info.Flags)
	}
	if info.BitsPerTexel() != 4 {
		t.Errorf("BC1 BitsPerTexel() = %d, want 4", info.BitsPerTexel())
	}

	info, _ = table.Lookup(D32Float)
	if !info.IsDepthStencil() || info.HasStencil() {
		t.Errorf("D32Float flags = %b, want depth only", info.Flags)
	}

	info, _ = table.Lookup(RGBA8UNorm)
	if !info.IsNormalized() || info.IsCompressed() || info.IsDepthStencil() {
		t.Errorf("RGBA8UNorm flags = %b", info.Flags)
	}
	if info.BitsPerTexel() != 32 {
		t.Errorf("RGBA8 BitsPerTexel() = %d, want 32", info.BitsPerTexel())
	}
}

func TestTableWith(t *testing.T) {
	const custom Format = 1000
	base := NewTable(map[Format]Info{RGBA8UNorm: {Name: "RGBA8UNorm", BlockSize: 4, BlockWidth: 1, BlockHeight: 1}})

	ext := base.With(custom, Info{Name: "ASTC8x8", BlockSize: 16, BlockWidth: 8, BlockHeight: 8, Flags: FlagCompressed})

	if _, ok := base.Lookup(custom); ok {
		t.Error("With() must not modify the receiver")
	}
	info, ok := ext.Lookup(custom)
	if !ok || info.BlockWidth != 8 {
		t.Errorf("ext.Lookup(custom) = %+v, %v", info, ok)
	}
	if ext.Len() != 2 {
		t.Errorf("ext.Len() = %d, want 2", ext.Len())
	}
}

func TestNilTable(t *testing.T) {
	var table *Table
	if _, ok := table.Lookup(RGBA8UNorm); ok {
		t.Error("nil table Lookup should fail")
	}
	if table.Len() != 0 || table.Formats() != nil {
		t.Error("nil table should be empty")
	}
}

func TestFormatsSorted(t *testing.T) {
	fs := DefaultTable().Formats()
	for i := 1; i < len(fs); i++ {
		if fs[i-1] >= fs[i] {
			t.Fatalf("Formats() not sorted at %d: %v >= %v", i, fs[i-1], fs[i])
		}
	}
}

func TestFormatStringAndParse(t *testing.T) {
	if RGBA8UNorm.String() != "RGBA8UNorm" {
		t.Errorf("String() = %q", RGBA8UNorm.String())
	}
	if Format(9999).String() != "Format(9999)" {
		t.Errorf("String() = %q", Format(9999).String())
	}
	f, ok := Parse("BC3UNorm")
	if !ok || f != BC3UNorm {
		t.Errorf("Parse(BC3UNorm) = %v, %v", f, ok)
	}
	if _, ok := Parse("nope"); ok {
		t.Error("Parse(nope) should fail")
	}
}

func TestDataTypeSize(t *testing.T) {
	tests := []struct {
		dt   DataType
		want uint32
	}{
		{DataTypeUndefined, 0},
		{Int8, 1},
		{UInt8, 1},
		{Int16, 2},
		{UInt16, 2},
		{Float16, 2},
		{Int32, 4},
		{UInt32, 4},
		{Float32, 4},
		{Float64, 8},
		{DataType(200), 0},
	}
	for _, tt := range tests {
		if got := tt.dt.Size(); got != tt.want {
			t.Errorf("%v.Size() = %d, want %d", tt.dt, got, tt.want)
		}
	}
}

func TestDataTypeScalar(t *testing.T) {
	s, ok := Float32.Scalar()
	if !ok || s.Kind != ir.ScalarFloat || s.Width != 4 {
		t.Errorf("Float32.Scalar() = %+v, %v", s, ok)
	}
	s, ok = Int16.Scalar()
	if !ok || s.Kind != ir.ScalarSint || s.Width != 2 {
		t.Errorf("Int16.Scalar() = %+v, %v", s, ok)
	}
	if _, ok := DataTypeUndefined.Scalar(); ok {
		t.Error("Undefined.Scalar() should fail")
	}
}

func TestTextureFormatRoundTrip(t *testing.T) {
	mapped := []Format{
		R8UNorm, R8SNorm, R8UInt, R8SInt, RG8UNorm, RG8SNorm, RG8UInt, RG8SInt,
		RGBA8UNorm, RGBA8UNormSRGB, BGRA8UNorm, BGRA8UNormSRGB,
		R16UNorm, R16SNorm, R16Float, RG16UNorm, RG16SInt, RG16Float,
		RGBA16UNorm, RGBA16SNorm, RGBA16Float,
		R32Float, RGBA32UInt,
		RGB10A2UNorm, RG11B10Float, RGB9E5Float,
		D16UNorm, D32Float, D24UNormS8UInt, D32FloatS8X24UInt,
		BC1UNorm, BC1UNormSRGB, BC2UNorm, BC2UNormSRGB, BC3UNorm, BC3UNormSRGB,
		BC4UNorm, BC4SNorm, BC5UNorm, BC5SNorm,
	}
	for _, f := range mapped {
		tf, ok := f.TextureFormat()
		if !ok {
			t.Errorf("%v.TextureFormat() not mapped", f)
			continue
		}
		back, ok := FromTextureFormat(tf)
		if !ok || back != f {
			t.Errorf("FromTextureFormat(%v) = %v, %v; want %v", tf, back, ok, f)
		}
	}

	for _, f := range []Format{RGB32Float, R64Float, Undefined} {
		if _, ok := f.TextureFormat(); ok {
			t.Errorf("%v should have no mapping", f)
		}
	}
}

func TestTextureFormatMapsBlockCompression(t *testing.T) {
	tests := []struct {
		f    Format
		want gputypes.TextureFormat
	}{
		{BC1UNorm, gputypes.TextureFormatBC1RGBAUnorm},
		{BC3UNormSRGB, gputypes.TextureFormatBC3RGBAUnormSrgb},
		{BC5SNorm, gputypes.TextureFormatBC5RGSnorm},
		{RG11B10Float, gputypes.TextureFormatRG11B10Ufloat},
		{D32FloatS8X24UInt, gputypes.TextureFormatDepth32FloatStencil8},
	}
	for _, tt := range tests {
		if got, _ := tt.f.TextureFormat(); got != tt.want {
			t.Errorf("%v.TextureFormat() = %v, want %v", tt.f, got, tt.want)
		}
	}
}

func TestVertexFormat(t *testing.T) {
	tests := []struct {
		dt         DataType
		comps      uint32
		normalized bool
		want       gputypes.VertexFormat
		ok         bool
	}{
		{Float32, 3, false, gputypes.VertexFormatFloat32x3, true},
		{UInt8, 4, true, gputypes.VertexFormatUnorm8x4, true},
		{UInt8, 4, false, gputypes.VertexFormatUint8x4, true},
		{Int8, 2, true, gputypes.VertexFormatSnorm8x2, true},
		{Int8, 4, false, gputypes.VertexFormatSint8x4, true},
		{UInt16, 2, true, gputypes.VertexFormatUnorm16x2, true},
		{Int16, 4, true, gputypes.VertexFormatSnorm16x4, true},
		{Int16, 2, false, gputypes.VertexFormatSint16x2, true},
		{UInt16, 4, false, gputypes.VertexFormatUint16x4, true},
		{UInt32, 1, false, gputypes.VertexFormatUint32, true},

		{UInt32, 1, true, 0, false},
		{Float32, 4, true, 0, false},
		{UInt8, 3, true, 0, false},
		{Float64, 1, false, 0, false},
	}
	for _, tt := range tests {
		got, ok := VertexFormat(tt.dt, tt.comps, tt.normalized)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("VertexFormat(%v, %d, %v) = %v, %v; want %v, %v",
				tt.dt, tt.comps, tt.normalized, got, ok, tt.want, tt.ok)
		}
	}
}
