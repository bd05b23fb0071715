package vertex

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga/ir"
	"github.com/gogpu/rhi/format"
)

// Attribute is one vertex attribute inside a Format.
//
// Offset and Size are assigned by the owning Format when the attribute is
// added and are never renumbered afterwards, except when the attribute is
// copied into another Format by AppendAttributes.
type Attribute struct {
	// Name is the attribute name (GLSL) or the semantic name (HLSL).
	Name string

	// SemanticIndex distinguishes attributes sharing a semantic name,
	// e.g. TEXCOORD0 and TEXCOORD1.
	SemanticIndex uint32

	// DataType is the type of each component.
	DataType format.DataType

	// Components is the number of components (1..4).
	Components uint32

	// Normalized converts integer components to normalized floats.
	Normalized bool

	// PerInstance marks per-instance data; otherwise per-vertex.
	PerInstance bool

	// Offset is the byte offset from the start of the vertex.
	Offset uint32

	// Size is Components * DataType.Size() in bytes.
	Size uint32
}

// Scalar returns the shader IR scalar type of one component.
func (a Attribute) Scalar() (ir.ScalarType, bool) {
	return a.DataType.Scalar()
}

// Vector returns the shader IR vector type of a multi-component attribute.
// It returns false for single-component attributes and unknown data types.
func (a Attribute) Vector() (ir.VectorType, bool) {
	s, ok := a.DataType.Scalar()
	if !ok {
		return ir.VectorType{}, false
	}
	switch a.Components {
	case 2:
		return ir.VectorType{Size: ir.Vec2, Scalar: s}, true
	case 3:
		return ir.VectorType{Size: ir.Vec3, Scalar: s}, true
	case 4:
		return ir.VectorType{Size: ir.Vec4, Scalar: s}, true
	default:
		return ir.VectorType{}, false
	}
}

// VertexFormat returns the WebGPU vertex format for the attribute.
func (a Attribute) VertexFormat() (gputypes.VertexFormat, bool) {
	return format.VertexFormat(a.DataType, a.Components, a.Normalized)
}
