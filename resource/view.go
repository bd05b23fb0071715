package resource

import (
	"fmt"

	"github.com/gogpu/naga/hlsl"
)

// StorageBufferType is the shader-side kind of a storage buffer.
type StorageBufferType uint8

// Storage buffer types. OpenGL only distinguishes read-only from
// read/write storage; Direct3D uses all of them.
const (
	StorageBufferTypeBuffer StorageBufferType = iota
	StorageBufferTypeStructured
	StorageBufferTypeByteAddress
	StorageBufferTypeRWBuffer
	StorageBufferTypeRWStructured
	StorageBufferTypeRWByteAddress
	StorageBufferTypeAppendStructured
	StorageBufferTypeConsumeStructured
)

var storageBufferTypeNames = [...]string{
	StorageBufferTypeBuffer:            "Buffer",
	StorageBufferTypeStructured:        "StructuredBuffer",
	StorageBufferTypeByteAddress:       "ByteAddressBuffer",
	StorageBufferTypeRWBuffer:          "RWBuffer",
	StorageBufferTypeRWStructured:      "RWStructuredBuffer",
	StorageBufferTypeRWByteAddress:     "RWByteAddressBuffer",
	StorageBufferTypeAppendStructured:  "AppendStructuredBuffer",
	StorageBufferTypeConsumeStructured: "ConsumeStructuredBuffer",
}

func (t StorageBufferType) String() string {
	if t.IsValid() {
		return storageBufferTypeNames[t]
	}
	return fmt.Sprintf("StorageBufferType(%d)", t)
}

// IsValid reports whether t is a known storage buffer type.
func (t StorageBufferType) IsValid() bool {
	return int(t) < len(storageBufferTypeNames)
}

// IsReadWrite reports whether shaders may write to the buffer.
func (t StorageBufferType) IsReadWrite() bool {
	switch t {
	case StorageBufferTypeRWBuffer, StorageBufferTypeRWStructured, StorageBufferTypeRWByteAddress,
		StorageBufferTypeAppendStructured, StorageBufferTypeConsumeStructured:
		return true
	}
	return false
}

// IsStructured reports whether the buffer holds fixed-stride structures.
func (t StorageBufferType) IsStructured() bool {
	switch t {
	case StorageBufferTypeStructured, StorageBufferTypeRWStructured,
		StorageBufferTypeAppendStructured, StorageBufferTypeConsumeStructured:
		return true
	}
	return false
}

// IsByteAddress reports whether the buffer is addressed in raw bytes.
func (t StorageBufferType) IsByteAddress() bool {
	return t == StorageBufferTypeByteAddress || t == StorageBufferTypeRWByteAddress
}

// RegisterType returns the HLSL register class: t for read-only views,
// u for unordered access views.
func (t StorageBufferType) RegisterType() hlsl.RegisterType {
	if t.IsReadWrite() {
		return hlsl.RegisterTypeU
	}
	return hlsl.RegisterTypeT
}

// ConstantBufferViewDescriptor describes how a constant buffer is bound
// inside a shader. It is produced by shader reflection.
type ConstantBufferViewDescriptor struct {
	Name string

	// Index is the binding slot within the shader.
	Index uint32

	// Size is the buffer size in bytes.
	Size uint32
}

// RegisterType returns hlsl.RegisterTypeB.
func (d ConstantBufferViewDescriptor) RegisterType() hlsl.RegisterType {
	return hlsl.RegisterTypeB
}

// BindTarget returns the HLSL register binding in space 0.
func (d ConstantBufferViewDescriptor) BindTarget() hlsl.BindTarget {
	return hlsl.DefaultBindTarget().WithRegister(d.Index)
}

// StorageBufferViewDescriptor describes how a storage buffer is bound
// inside a shader. It is produced by shader reflection.
type StorageBufferViewDescriptor struct {
	Name  string
	Index uint32
	Type  StorageBufferType
}

// RegisterType returns the HLSL register class for the view.
func (d StorageBufferViewDescriptor) RegisterType() hlsl.RegisterType {
	return d.Type.RegisterType()
}

// BindTarget returns the HLSL register binding in space 0.
func (d StorageBufferViewDescriptor) BindTarget() hlsl.BindTarget {
	return hlsl.DefaultBindTarget().WithRegister(d.Index)
}

// Binding returns the HLSL register declaration, e.g. "register(u3)".
func (d StorageBufferViewDescriptor) Binding() string {
	return fmt.Sprintf("register(%s%d)", d.RegisterType(), d.Index)
}
