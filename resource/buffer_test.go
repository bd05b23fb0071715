package resource

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga/hlsl"
	"github.com/gogpu/rhi"
	"github.com/gogpu/rhi/format"
	"github.com/gogpu/rhi/vertex"
)

func testVertexFormat(t *testing.T) *vertex.Format {
	t.Helper()
	var f vertex.Format
	if err := f.AddAttribute("position", format.Float32, 3, false, false); err != nil {
		t.Fatal(err)
	}
	return &f
}

func TestBufferDescriptorType(t *testing.T) {
	tests := []struct {
		kind BufferKind
		want BufferType
	}{
		{VertexBuffer{}, BufferTypeVertex},
		{IndexBuffer{}, BufferTypeIndex},
		{ConstantBuffer{}, BufferTypeConstant},
		{StorageBuffer{}, BufferTypeStorage},
		{StreamOutputBuffer{}, BufferTypeStreamOutput},
	}
	for _, tt := range tests {
		d := BufferDescriptor{Size: 16, Kind: tt.kind}
		if got := d.Type(); got != tt.want {
			t.Errorf("Type() = %v, want %v", got, tt.want)
		}
	}
}

func TestBufferDescriptorValidate(t *testing.T) {
	vf := testVertexFormat(t)

	tests := []struct {
		name    string
		desc    BufferDescriptor
		wantErr bool
	}{
		{"vertex", BufferDescriptor{Size: 36, Kind: VertexBuffer{Format: vf}}, false},
		{"vertex without format", BufferDescriptor{Size: 36, Kind: VertexBuffer{}}, true},
		{"vertex with empty format", BufferDescriptor{Size: 36, Kind: VertexBuffer{Format: &vertex.Format{}}}, true},
		{"no kind", BufferDescriptor{Size: 16}, true},
		{"zero size", BufferDescriptor{Kind: ConstantBuffer{}}, true},
		{"index u16", BufferDescriptor{Size: 12, Kind: IndexBuffer{Format: IndexUInt16}}, false},
		{"index odd size", BufferDescriptor{Size: 7, Kind: IndexBuffer{Format: IndexUInt16}}, true},
		{"index zero format", BufferDescriptor{Size: 8, Kind: IndexBuffer{}}, true},
		{"constant", BufferDescriptor{Size: 64, Kind: ConstantBuffer{}}, false},
		{"structured", BufferDescriptor{Size: 64, Kind: StorageBuffer{Type: StorageBufferTypeStructured, Stride: 16}}, false},
		{"structured no stride", BufferDescriptor{Size: 64, Kind: StorageBuffer{Type: StorageBufferTypeRWStructured}}, true},
		{"structured bad size", BufferDescriptor{Size: 60, Kind: StorageBuffer{Type: StorageBufferTypeAppendStructured, Stride: 16}}, true},
		{"byte address", BufferDescriptor{Size: 64, Kind: StorageBuffer{Type: StorageBufferTypeRWByteAddress}}, false},
		{"byte address unaligned", BufferDescriptor{Size: 6, Kind: StorageBuffer{Type: StorageBufferTypeByteAddress}}, true},
		{"storage bad type", BufferDescriptor{Size: 64, Kind: StorageBuffer{Type: 42}}, true},
		{"stream output", BufferDescriptor{Size: 64, Kind: StreamOutputBuffer{}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.desc.Validate()
			if tt.wantErr {
				if !errors.Is(err, rhi.ErrInvalidArgument) {
					t.Errorf("Validate() error = %v, want ErrInvalidArgument", err)
				}
				return
			}
			if err != nil {
				t.Errorf("Validate() error = %v", err)
			}
		})
	}
}

func TestBufferDescriptorGPUUsage(t *testing.T) {
	d := BufferDescriptor{Size: 16, Kind: ConstantBuffer{}}
	got := d.GPUUsage()
	if got&gputypes.BufferUsageUniform == 0 || got&gputypes.BufferUsageCopyDst == 0 {
		t.Errorf("GPUUsage() = %v, want uniform|copy-dst", got)
	}

	d = BufferDescriptor{Size: 16, Usage: UsageDynamic, Kind: IndexBuffer{Format: IndexUInt32}}
	got = d.GPUUsage()
	if got&gputypes.BufferUsageIndex == 0 || got&gputypes.BufferUsageCopySrc == 0 {
		t.Errorf("GPUUsage() = %v, want index|copy-src", got)
	}
}

func TestNewIndexFormat(t *testing.T) {
	for _, dt := range []format.DataType{format.UInt8, format.UInt16, format.UInt32} {
		f, err := NewIndexFormat(dt)
		if err != nil {
			t.Errorf("NewIndexFormat(%v) error = %v", dt, err)
		}
		if f.Size() != dt.Size() {
			t.Errorf("NewIndexFormat(%v).Size() = %d, want %d", dt, f.Size(), dt.Size())
		}
	}
	for _, dt := range []format.DataType{format.Int16, format.Float32, format.DataTypeUndefined} {
		if _, err := NewIndexFormat(dt); !errors.Is(err, rhi.ErrInvalidArgument) {
			t.Errorf("NewIndexFormat(%v) error = %v, want ErrInvalidArgument", dt, err)
		}
	}
}

func TestIndexFormatGPU(t *testing.T) {
	if f, ok := IndexUInt16.GPU(); !ok || f != gputypes.IndexFormatUint16 {
		t.Errorf("IndexUInt16.GPU() = %v, %v", f, ok)
	}
	if _, ok := IndexUInt8.GPU(); ok {
		t.Error("IndexUInt8 should have no WebGPU format")
	}
}

func TestStorageBufferTypePredicates(t *testing.T) {
	tests := []struct {
		typ                    StorageBufferType
		rw, structured, rawBuf bool
		name                   string
	}{
		{StorageBufferTypeBuffer, false, false, false, "Buffer"},
		{StorageBufferTypeStructured, false, true, false, "StructuredBuffer"},
		{StorageBufferTypeByteAddress, false, false, true, "ByteAddressBuffer"},
		{StorageBufferTypeRWBuffer, true, false, false, "RWBuffer"},
		{StorageBufferTypeRWStructured, true, true, false, "RWStructuredBuffer"},
		{StorageBufferTypeRWByteAddress, true, false, true, "RWByteAddressBuffer"},
		{StorageBufferTypeAppendStructured, true, true, false, "AppendStructuredBuffer"},
		{StorageBufferTypeConsumeStructured, true, true, false, "ConsumeStructuredBuffer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.typ.IsReadWrite(); got != tt.rw {
				t.Errorf("IsReadWrite() = %v, want %v", got, tt.rw)
			}
			if got := tt.typ.IsStructured(); got != tt.structured {
				t.Errorf("IsStructured() = %v, want %v", got, tt.structured)
			}
			if got := tt.typ.IsByteAddress(); got != tt.rawBuf {
				t.Errorf("IsByteAddress() = %v, want %v", got, tt.rawBuf)
			}
			if got := tt.typ.String(); got != tt.name {
				t.Errorf("String() = %q, want %q", got, tt.name)
			}
		})
	}
}

func TestViewBindTargets(t *testing.T) {
	cb := ConstantBufferViewDescriptor{Name: "Matrices", Index: 2, Size: 128}
	if cb.RegisterType() != hlsl.RegisterTypeB {
		t.Errorf("constant RegisterType() = %v, want b", cb.RegisterType())
	}
	if bt := cb.BindTarget(); bt.Register != 2 || bt.Space != 0 || bt.BindingArraySize != nil {
		t.Errorf("constant BindTarget() = %+v", bt)
	}

	ro := StorageBufferViewDescriptor{Name: "Input", Index: 1, Type: StorageBufferTypeStructured}
	if ro.RegisterType() != hlsl.RegisterTypeT {
		t.Errorf("read-only RegisterType() = %v, want t", ro.RegisterType())
	}
	rw := StorageBufferViewDescriptor{Name: "Output", Index: 3, Type: StorageBufferTypeRWStructured}
	if rw.RegisterType() != hlsl.RegisterTypeU {
		t.Errorf("read/write RegisterType() = %v, want u", rw.RegisterType())
	}
	if got := rw.Binding(); got != "register(u3)" {
		t.Errorf("Binding() = %q, want register(u3)", got)
	}
}
