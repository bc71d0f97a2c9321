package buffer

import (
	"errors"
	"sync"

	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/backend"
)

// ErrEmptyLayout is returned when a vertex buffer is attached with a layout that has no elements.
var ErrEmptyLayout = errors.New("buffer: vertex buffer layout has no elements")

// ErrReleased is returned when a released vertex array is modified.
var ErrReleased = errors.New("buffer: vertex array has been released")

// ErrNilBuffer is returned when a nil vertex or index buffer is attached.
var ErrNilBuffer = errors.New("buffer: buffer is nil")

// VertexArray binds one or more vertex buffers and an optional index buffer into a drawable unit.
// The array owns every buffer attached to it.
type VertexArray interface {
	// ID returns the GPU handle, or 0 after Release.
	ID() uint32

	// Bind binds the vertex array.
	Bind()

	// Unbind clears the vertex array binding.
	Unbind()

	// AddVertexBuffer attaches vb and describes its attributes. Attribute indices continue from the
	// last attached buffer, starting at 0 for the first.
	//
	// Parameters:
	//   - vb: the vertex buffer to attach (ownership transfers to the array)
	//   - layout: the attribute layout of vb
	//
	// Returns:
	//   - error: ErrNilBuffer for a nil vb, ErrEmptyLayout for a layout with no elements, ErrReleased after Release
	AddVertexBuffer(vb VertexBuffer, layout Layout) error

	// SetIndexBuffer attaches ib, releasing any previously attached index buffer.
	//
	// Parameters:
	//   - ib: the index buffer (ownership transfers to the array)
	//
	// Returns:
	//   - error: ErrNilBuffer for a nil ib, ErrReleased after Release
	SetIndexBuffer(ib IndexBuffer) error

	// VertexBuffers returns the attached vertex buffers in attach order.
	VertexBuffers() []VertexBuffer

	// IndexBuffer returns the attached index buffer or nil.
	IndexBuffer() IndexBuffer

	// AttributeCount returns the number of attribute indices in use.
	AttributeCount() uint32

	// Release frees the array and every attached buffer. Calls after the first are no-ops.
	Release()
}

type vertexArrayImpl struct {
	mu            *sync.Mutex
	backend       backend.Backend
	id            uint32
	vertexBuffers []VertexBuffer
	indexBuffer   IndexBuffer
	nextAttribute uint32
}

var _ VertexArray = &vertexArrayImpl{}

// NewVertexArray allocates an empty vertex array.
//
// Parameters:
//   - b: the GPU backend
//
// Returns:
//   - VertexArray: the new vertex array
func NewVertexArray(b backend.Backend) VertexArray {
	if b == nil {
		panic("buffer: NewVertexArray requires a non-nil Backend")
	}
	return &vertexArrayImpl{
		mu:      &sync.Mutex{},
		backend: b,
		id:      b.CreateVertexArray(),
	}
}

func (va *vertexArrayImpl) ID() uint32 {
	va.mu.Lock()
	defer va.mu.Unlock()
	return va.id
}

func (va *vertexArrayImpl) Bind() {
	va.mu.Lock()
	defer va.mu.Unlock()
	if va.id == 0 {
		return
	}
	va.backend.BindVertexArray(va.id)
}

func (va *vertexArrayImpl) Unbind() {
	va.backend.BindVertexArray(0)
}

func (va *vertexArrayImpl) AddVertexBuffer(vb VertexBuffer, layout Layout) error {
	va.mu.Lock()
	defer va.mu.Unlock()
	if va.id == 0 {
		return ErrReleased
	}
	if vb == nil {
		return ErrNilBuffer
	}
	if layout.Len() == 0 {
		return ErrEmptyLayout
	}

	va.backend.BindVertexArray(va.id)
	vb.Bind()
	stride := int32(layout.Stride())
	for _, e := range layout.elements {
		info := dataTypes[e.Type]
		va.backend.VertexAttribPointer(va.nextAttribute, info.components, info.attrib, e.Normalized, stride, e.Offset)
		va.backend.EnableVertexAttribArray(va.nextAttribute)
		va.nextAttribute++
	}
	va.vertexBuffers = append(va.vertexBuffers, vb)
	return nil
}

func (va *vertexArrayImpl) SetIndexBuffer(ib IndexBuffer) error {
	va.mu.Lock()
	defer va.mu.Unlock()
	if va.id == 0 {
		return ErrReleased
	}
	if ib == nil {
		return ErrNilBuffer
	}
	if va.indexBuffer != nil && va.indexBuffer != ib {
		va.indexBuffer.Release()
	}
	va.backend.BindVertexArray(va.id)
	ib.Bind()
	va.indexBuffer = ib
	return nil
}

func (va *vertexArrayImpl) VertexBuffers() []VertexBuffer {
	va.mu.Lock()
	defer va.mu.Unlock()
	out := make([]VertexBuffer, len(va.vertexBuffers))
	copy(out, va.vertexBuffers)
	return out
}

func (va *vertexArrayImpl) IndexBuffer() IndexBuffer {
	va.mu.Lock()
	defer va.mu.Unlock()
	return va.indexBuffer
}

func (va *vertexArrayImpl) AttributeCount() uint32 {
	va.mu.Lock()
	defer va.mu.Unlock()
	return va.nextAttribute
}

func (va *vertexArrayImpl) Release() {
	va.mu.Lock()
	defer va.mu.Unlock()
	if va.id == 0 {
		return
	}
	for _, vb := range va.vertexBuffers {
		vb.Release()
	}
	va.vertexBuffers = nil
	if va.indexBuffer != nil {
		va.indexBuffer.Release()
		va.indexBuffer = nil
	}
	va.backend.DeleteVertexArray(va.id)
	va.id = 0
}
