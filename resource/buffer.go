// Package resource defines backend-neutral buffer and texture descriptors.
//
// Descriptors are passive values. A backend consumes them, validates them
// with Validate, and asks the layout package for exact byte layouts.
package resource

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/rhi"
	"github.com/gogpu/rhi/format"
	"github.com/gogpu/rhi/vertex"
)

// BufferType identifies the role of a buffer.
type BufferType uint8

// Buffer types.
const (
	BufferTypeVertex BufferType = iota
	BufferTypeIndex
	BufferTypeConstant
	BufferTypeStorage
	BufferTypeStreamOutput
)

func (t BufferType) String() string {
	switch t {
	case BufferTypeVertex:
		return "Vertex"
	case BufferTypeIndex:
		return "Index"
	case BufferTypeConstant:
		return "Constant"
	case BufferTypeStorage:
		return "Storage"
	case BufferTypeStreamOutput:
		return "StreamOutput"
	default:
		return fmt.Sprintf("BufferType(%d)", t)
	}
}

// Usage is the update policy of a buffer.
type Usage uint8

const (
	// UsageStatic hints that the buffer is written rarely.
	UsageStatic Usage = iota

	// UsageDynamic hints that the buffer is written frequently.
	UsageDynamic
)

func (u Usage) String() string {
	if u == UsageDynamic {
		return "Dynamic"
	}
	return "Static"
}

// BufferKind is the type-specific part of a BufferDescriptor.
// It is implemented by VertexBuffer, IndexBuffer, ConstantBuffer,
// StorageBuffer and StreamOutputBuffer only.
type BufferKind interface {
	// BufferType returns the buffer type this payload describes.
	BufferType() BufferType

	validate(size uint64) error
}

// VertexBuffer describes a vertex buffer.
type VertexBuffer struct {
	// Format is the vertex layout stored in the buffer. Required.
	Format *vertex.Format
}

// BufferType implements BufferKind.
func (VertexBuffer) BufferType() BufferType { return BufferTypeVertex }

func (k VertexBuffer) validate(size uint64) error {
	if k.Format == nil || k.Format.FormatSize() == 0 {
		return fmt.Errorf("%w: vertex buffer without vertex format", rhi.ErrInvalidArgument)
	}
	return nil
}

// IndexBuffer describes an index buffer.
type IndexBuffer struct {
	Format IndexFormat
}

// BufferType implements BufferKind.
func (IndexBuffer) BufferType() BufferType { return BufferTypeIndex }

func (k IndexBuffer) validate(size uint64) error {
	n := uint64(k.Format.Size())
	if n == 0 {
		return fmt.Errorf("%w: index buffer without index format", rhi.ErrInvalidArgument)
	}
	if size%n != 0 {
		return fmt.Errorf("%w: index buffer size %d is not a multiple of %d",
			rhi.ErrInvalidArgument, size, n)
	}
	return nil
}

// ConstantBuffer describes a constant (uniform) buffer.
type ConstantBuffer struct{}

// BufferType implements BufferKind.
func (ConstantBuffer) BufferType() BufferType { return BufferTypeConstant }

func (ConstantBuffer) validate(uint64) error { return nil }

// StorageBuffer describes a storage buffer.
type StorageBuffer struct {
	Type StorageBufferType

	// Stride is the element size of structured buffers. Ignored otherwise.
	Stride uint32
}

// BufferType implements BufferKind.
func (StorageBuffer) BufferType() BufferType { return BufferTypeStorage }

func (k StorageBuffer) validate(size uint64) error {
	if !k.Type.IsValid() {
		return fmt.Errorf("%w: invalid storage buffer type %v", rhi.ErrInvalidArgument, k.Type)
	}
	switch {
	case k.Type.IsStructured():
		if k.Stride == 0 {
			return fmt.Errorf("%w: %v requires a stride", rhi.ErrInvalidArgument, k.Type)
		}
		if size%uint64(k.Stride) != 0 {
			return fmt.Errorf("%w: %v size %d is not a multiple of stride %d",
				rhi.ErrInvalidArgument, k.Type, size, k.Stride)
		}
	case k.Type.IsByteAddress():
		if size%4 != 0 {
			return fmt.Errorf("%w: %v size %d is not a multiple of 4",
				rhi.ErrInvalidArgument, k.Type, size)
		}
	}
	return nil
}

// StreamOutputBuffer describes a stream-output (transform feedback) buffer.
type StreamOutputBuffer struct {
	// Format is the layout of captured vertices. Optional.
	Format *vertex.Format
}

// BufferType implements BufferKind.
func (StreamOutputBuffer) BufferType() BufferType { return BufferTypeStreamOutput }

func (StreamOutputBuffer) validate(uint64) error { return nil }

// BufferDescriptor describes a buffer to create.
type BufferDescriptor struct {
	// Label is an optional debug name.
	Label string

	// Size is the buffer size in bytes.
	Size uint64

	Usage Usage

	// Kind selects the buffer type and carries its payload.
	Kind BufferKind
}

// Type returns the buffer type selected by Kind.
// A descriptor without Kind reports BufferTypeVertex.
func (d *BufferDescriptor) Type() BufferType {
	if d.Kind == nil {
		return BufferTypeVertex
	}
	return d.Kind.BufferType()
}

// Validate checks the structural shape of the descriptor.
func (d *BufferDescriptor) Validate() error {
	if d.Kind == nil {
		return fmt.Errorf("%w: buffer %q has no kind", rhi.ErrInvalidArgument, d.Label)
	}
	if d.Size == 0 {
		return fmt.Errorf("%w: buffer %q has zero size", rhi.ErrInvalidArgument, d.Label)
	}
	if err := d.Kind.validate(d.Size); err != nil {
		return fmt.Errorf("buffer %q: %w", d.Label, err)
	}
	return nil
}

// GPUUsage returns the WebGPU usage flags for a buffer of this descriptor.
// Every buffer is a copy destination so it can be written after creation.
func (d *BufferDescriptor) GPUUsage() gputypes.BufferUsage {
	usage := gputypes.BufferUsageCopyDst
	switch d.Type() {
	case BufferTypeVertex:
		usage |= gputypes.BufferUsageVertex
	case BufferTypeIndex:
		usage |= gputypes.BufferUsageIndex
	case BufferTypeConstant:
		usage |= gputypes.BufferUsageUniform
	case BufferTypeStorage, BufferTypeStreamOutput:
		usage |= gputypes.BufferUsageStorage
	}
	if d.Usage == UsageDynamic {
		usage |= gputypes.BufferUsageCopySrc
	}
	return usage
}

// IndexFormat is the element type of an index buffer.
// The zero value is invalid; use NewIndexFormat or one of the predefined
// formats.
type IndexFormat struct {
	dataType format.DataType
}

// Predefined index formats.
var (
	IndexUInt8  = IndexFormat{format.UInt8}
	IndexUInt16 = IndexFormat{format.UInt16}
	IndexUInt32 = IndexFormat{format.UInt32}
)

// NewIndexFormat returns the index format for dt. Only UInt8, UInt16 and
// UInt32 are accepted.
func NewIndexFormat(dt format.DataType) (IndexFormat, error) {
	switch dt {
	case format.UInt8, format.UInt16, format.UInt32:
		return IndexFormat{dt}, nil
	default:
		return IndexFormat{}, fmt.Errorf("%w: index format must be UInt8, UInt16 or UInt32, got %v",
			rhi.ErrInvalidArgument, dt)
	}
}

// DataType returns the index element type.
func (f IndexFormat) DataType() format.DataType { return f.dataType }

// Size returns the index size in bytes, or 0 for the zero IndexFormat.
func (f IndexFormat) Size() uint32 { return f.dataType.Size() }

func (f IndexFormat) String() string { return f.dataType.String() }

// GPU returns the WebGPU index format. WebGPU has no 8-bit indices.
func (f IndexFormat) GPU() (gputypes.IndexFormat, bool) {
	switch f.dataType {
	case format.UInt16:
		return gputypes.IndexFormatUint16, true
	case format.UInt32:
		return gputypes.IndexFormatUint32, true
	default:
		return 0, false
	}
}
