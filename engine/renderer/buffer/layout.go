package buffer

import (
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/backend"
)

// DataType is the type of one vertex attribute.
type DataType int

const (
	DataTypeFloat DataType = iota
	DataTypeFloat2
	DataTypeFloat3
	DataTypeFloat4
	DataTypeInt
	DataTypeInt2
	DataTypeInt3
	DataTypeInt4
	DataTypeBool
)

type dataTypeInfo struct {
	components int32
	size       int
	attrib     backend.AttribType
}

var dataTypes = map[DataType]dataTypeInfo{
	DataTypeFloat:  {1, 4, backend.AttribTypeFloat},
	DataTypeFloat2: {2, 8, backend.AttribTypeFloat},
	DataTypeFloat3: {3, 12, backend.AttribTypeFloat},
	DataTypeFloat4: {4, 16, backend.AttribTypeFloat},
	DataTypeInt:    {1, 4, backend.AttribTypeInt},
	DataTypeInt2:   {2, 8, backend.AttribTypeInt},
	DataTypeInt3:   {3, 12, backend.AttribTypeInt},
	DataTypeInt4:   {4, 16, backend.AttribTypeInt},
	DataTypeBool:   {1, 1, backend.AttribTypeBool},
}

// Components returns the number of scalar components in the type.
func (t DataType) Components() int32 {
	return dataTypes[t].components
}

// Size returns the byte size of one attribute of this type.
func (t DataType) Size() int {
	return dataTypes[t].size
}

// Element is one named attribute inside a vertex layout.
type Element struct {
	Name       string
	Type       DataType
	Normalized bool

	// Offset is the byte offset inside a vertex, computed by NewLayout.
	Offset int
}

// Layout is the ordered attribute description of one interleaved vertex buffer.
type Layout struct {
	elements []Element
	stride   int
}

// NewLayout computes offsets and the stride for the given elements, in order.
//
// Parameters:
//   - elements: the attributes of a single vertex, in buffer order
//
// Returns:
//   - Layout: the layout with every element's Offset filled in
func NewLayout(elements ...Element) Layout {
	out := make([]Element, len(elements))
	offset := 0
	for i, e := range elements {
		e.Offset = offset
		offset += e.Type.Size()
		out[i] = e
	}
	return Layout{elements: out, stride: offset}
}

// Elements returns a copy of the layout's elements.
func (l Layout) Elements() []Element {
	out := make([]Element, len(l.elements))
	copy(out, l.elements)
	return out
}

// Stride returns the byte size of one vertex.
func (l Layout) Stride() int {
	return l.stride
}

// Len returns the number of elements.
func (l Layout) Len() int {
	return len(l.elements)
}
