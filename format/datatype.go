package format

import "github.com/gogpu/naga/ir"

// DataType is the component type of a vertex attribute, index, or
// uncompressed pixel format.
type DataType uint8

// Data types.
const (
	DataTypeUndefined DataType = iota
	Int8
	UInt8
	Int16
	UInt16
	Int32
	UInt32
	Float16
	Float32
	Float64
)

var dataTypeNames = [...]string{
	DataTypeUndefined: "Undefined",
	Int8:              "Int8",
	UInt8:             "UInt8",
	Int16:             "Int16",
	UInt16:            "UInt16",
	Int32:             "Int32",
	UInt32:            "UInt32",
	Float16:           "Float16",
	Float32:           "Float32",
	Float64:           "Float64",
}

func (t DataType) String() string {
	if int(t) < len(dataTypeNames) {
		return dataTypeNames[t]
	}
	return "DataType(?)"
}

// Size returns the size of one component in bytes, or 0 for
// DataTypeUndefined and unknown values.
func (t DataType) Size() uint32 {
	switch t {
	case Int8, UInt8:
		return 1
	case Int16, UInt16, Float16:
		return 2
	case Int32, UInt32, Float32:
		return 4
	case Float64:
		return 8
	default:
		return 0
	}
}

// IsValid reports whether t names a concrete data type.
func (t DataType) IsValid() bool {
	return t.Size() != 0
}

// IsFloat reports whether t is a floating-point type.
func (t DataType) IsFloat() bool {
	return t == Float16 || t == Float32 || t == Float64
}

// IsSigned reports whether t is a signed integer type.
func (t DataType) IsSigned() bool {
	return t == Int8 || t == Int16 || t == Int32
}

// Scalar returns the shader IR scalar type for t. Integer types keep their
// width so callers can tell an 8-bit attribute from a 32-bit one.
func (t DataType) Scalar() (ir.ScalarType, bool) {
	switch t {
	case Int8:
		return ir.ScalarType{Kind: ir.ScalarSint, Width: 1}, true
	case UInt8:
		return ir.ScalarType{Kind: ir.ScalarUint, Width: 1}, true
	case Int16:
		return ir.ScalarType{Kind: ir.ScalarSint, Width: 2}, true
	case UInt16:
		return ir.ScalarType{Kind: ir.ScalarUint, Width: 2}, true
	case Int32:
		return ir.ScalarType{Kind: ir.ScalarSint, Width: 4}, true
	case UInt32:
		return ir.ScalarType{Kind: ir.ScalarUint, Width: 4}, true
	case Float16:
		return ir.ScalarType{Kind: ir.ScalarFloat, Width: 2}, true
	case Float32:
		return ir.ScalarType{Kind: ir.ScalarFloat, Width: 4}, true
	case Float64:
		return ir.ScalarType{Kind: ir.ScalarFloat, Width: 8}, true
	default:
		return ir.ScalarType{}, false
	}
}
