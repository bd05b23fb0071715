// Package vertex builds vertex attribute layouts.
//
// A Format is an ordered list of attributes with a running stride. Offsets
// are assigned when an attribute is added, so a half-built Format is always
// internally consistent and may be inspected at any point during
// construction.
//
// A Format has a single owner while it is being built; concurrent mutation
// must be serialized by the caller. Once construction is finished, any
// number of goroutines may read it.
package vertex

import (
	"fmt"
	"slices"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/rhi"
	"github.com/gogpu/rhi/format"
)

// Format describes how vertex attributes are stored in a vertex buffer.
//
// The zero value is an empty format ready to use.
type Format struct {
	attributes []Attribute
	formatSize uint32
}

// AddAttribute appends an attribute identified by name.
// It is equivalent to AddSemanticAttribute(name, 0, ...).
func (f *Format) AddAttribute(name string, dataType format.DataType, components int, normalized, perInstance bool) error {
	return f.AddSemanticAttribute(name, 0, dataType, components, normalized, perInstance)
}

// AddSemanticAttribute appends an attribute identified by semantic name and
// index. components must be 1, 2, 3 or 4 and dataType must be a concrete
// type; otherwise ErrInvalidArgument is returned and f is unchanged.
func (f *Format) AddSemanticAttribute(semantic string, semanticIndex uint32, dataType format.DataType, components int, normalized, perInstance bool) error {
	if components < 1 || components > 4 {
		return fmt.Errorf("%w: vertex attribute %q: components must be 1, 2, 3 or 4, got %d",
			rhi.ErrInvalidArgument, semantic, components)
	}
	if !dataType.IsValid() {
		return fmt.Errorf("%w: vertex attribute %q: invalid data type %v",
			rhi.ErrInvalidArgument, semantic, dataType)
	}

	size := uint32(components) * dataType.Size()
	f.attributes = append(f.attributes, Attribute{
		Name:          semantic,
		SemanticIndex: semanticIndex,
		DataType:      dataType,
		Components:    uint32(components),
		Normalized:    normalized,
		PerInstance:   perInstance,
		Offset:        f.formatSize,
		Size:          size,
	})
	f.formatSize += size
	return nil
}

// AppendAttributes copies every attribute of other into f. Each copied
// offset is re-based by f's size before the copy, then f's size grows by
// other's size. Used to compose per-buffer layouts into one description.
func (f *Format) AppendAttributes(other *Format) {
	if other == nil {
		return
	}
	base, size := f.formatSize, other.formatSize
	// Snapshot first: other may be f itself.
	src := slices.Clone(other.attributes)
	for _, a := range src {
		a.Offset += base
		f.attributes = append(f.attributes, a)
	}
	f.formatSize += size
}

// Attributes returns a copy of the attributes in insertion order.
func (f *Format) Attributes() []Attribute {
	return slices.Clone(f.attributes)
}

// FormatSize returns the vertex stride in bytes.
func (f *Format) FormatSize() uint32 {
	return f.formatSize
}

// Len returns the number of attributes.
func (f *Format) Len() int {
	return len(f.attributes)
}

// Find returns the attribute with the given name and semantic index.
func (f *Format) Find(name string, semanticIndex uint32) (Attribute, bool) {
	for _, a := range f.attributes {
		if a.Name == name && a.SemanticIndex == semanticIndex {
			return a, true
		}
	}
	return Attribute{}, false
}

// BufferLayout converts f into a WebGPU vertex buffer layout. Attribute i is
// bound to shader location firstLocation+i. All attributes must share the
// same step mode, and every attribute must have a WebGPU vertex format.
func (f *Format) BufferLayout(firstLocation uint32) (gputypes.VertexBufferLayout, error) {
	if len(f.attributes) == 0 {
		return gputypes.VertexBufferLayout{}, fmt.Errorf("%w: empty vertex format", rhi.ErrInvalidArgument)
	}

	perInstance := f.attributes[0].PerInstance
	attrs := make([]gputypes.VertexAttribute, 0, len(f.attributes))
	for i, a := range f.attributes {
		if a.PerInstance != perInstance {
			return gputypes.VertexBufferLayout{}, fmt.Errorf("%w: attribute %q mixes per-vertex and per-instance data",
				rhi.ErrInvalidArgument, a.Name)
		}
		vf, ok := a.VertexFormat()
		if !ok {
			return gputypes.VertexBufferLayout{}, fmt.Errorf("%w: attribute %q: %v x%d (normalized %v) has no vertex format",
				rhi.ErrUnsupportedFormat, a.Name, a.DataType, a.Components, a.Normalized)
		}
		attrs = append(attrs, gputypes.VertexAttribute{
			Format:         vf,
			Offset:         uint64(a.Offset),
			ShaderLocation: firstLocation + uint32(i),
		})
	}

	stepMode := gputypes.VertexStepModeVertex
	if perInstance {
		stepMode = gputypes.VertexStepModeInstance
	}
	return gputypes.VertexBufferLayout{
		ArrayStride: uint64(f.formatSize),
		StepMode:    stepMode,
		Attributes:  attrs,
	}, nil
}

// BufferLayouts splits f by step mode into one WebGPU layout per vertex
// buffer: per-vertex attributes first, then per-instance attributes. Offsets
// in each layout are relative to the first attribute of its group, and
// shader locations are numbered from firstLocation in attribute order.
// Typically f was composed with AppendAttributes from one per-vertex and
// one per-instance format.
func (f *Format) BufferLayouts(firstLocation uint32) ([]gputypes.VertexBufferLayout, error) {
	if len(f.attributes) == 0 {
		return nil, fmt.Errorf("%w: empty vertex format", rhi.ErrInvalidArgument)
	}

	var groups [2]Format
	var locations [2][]uint32
	var bases [2]uint32
	for i, a := range f.attributes {
		g := 0
		if a.PerInstance {
			g = 1
		}
		if len(groups[g].attributes) == 0 {
			bases[g] = a.Offset
		}
		a.Offset -= bases[g]
		groups[g].attributes = append(groups[g].attributes, a)
		if end := a.Offset + a.Size; end > groups[g].formatSize {
			groups[g].formatSize = end
		}
		locations[g] = append(locations[g], firstLocation+uint32(i))
	}

	var layouts []gputypes.VertexBufferLayout
	for g := range groups {
		if len(groups[g].attributes) == 0 {
			continue
		}
		l, err := groups[g].BufferLayout(0)
		if err != nil {
			return nil, err
		}
		for j := range l.Attributes {
			l.Attributes[j].ShaderLocation = locations[g][j]
		}
		layouts = append(layouts, l)
	}
	return layouts, nil
}
