// Package buffer wraps GPU vertex and index buffers and the vertex arrays that tie them to a layout.
package buffer

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/backend"
)

// VertexBuffer is a GPU buffer holding interleaved float vertex data.
type VertexBuffer interface {
	// ID returns the GPU handle, or 0 after Release.
	ID() uint32

	// Bind binds the buffer as the current array buffer.
	Bind()

	// Unbind clears the array buffer binding.
	Unbind()

	// Update replaces the buffer contents.
	//
	// Parameters:
	//   - vertices: the new vertex data
	Update(vertices []float32)

	// Release frees the GPU buffer. Calls after the first are no-ops.
	Release()
}

// IndexBuffer is a GPU buffer holding 32-bit triangle indices.
type IndexBuffer interface {
	// ID returns the GPU handle, or 0 after Release.
	ID() uint32

	// Count returns the number of indices uploaded.
	Count() int32

	// Bind binds the buffer as the current element array buffer.
	Bind()

	// Unbind clears the element array buffer binding.
	Unbind()

	// Release frees the GPU buffer. Calls after the first are no-ops.
	Release()
}

type vertexBufferImpl struct {
	mu      *sync.Mutex
	backend backend.Backend
	id      uint32
	usage   backend.BufferUsage
}

type indexBufferImpl struct {
	mu      *sync.Mutex
	backend backend.Backend
	id      uint32
	count   int32
}

var _ VertexBuffer = &vertexBufferImpl{}
var _ IndexBuffer = &indexBufferImpl{}

// NewVertexBuffer allocates a vertex buffer and uploads vertices synchronously.
//
// Parameters:
//   - b: the GPU backend
//   - vertices: interleaved vertex data
//   - options: optional BufferBuilderOptions
//
// Returns:
//   - VertexBuffer: the uploaded buffer
func NewVertexBuffer(b backend.Backend, vertices []float32, options ...BufferBuilderOption) VertexBuffer {
	if b == nil {
		panic("buffer: NewVertexBuffer requires a non-nil Backend")
	}
	cfg := newBufferConfig(options)
	vb := &vertexBufferImpl{
		mu:      &sync.Mutex{},
		backend: b,
		usage:   cfg.usage,
	}
	vb.id = b.CreateBuffer()
	b.BufferData(backend.BufferTargetArray, vb.id, common.SliceToBytes(vertices), vb.usage)
	return vb
}

// NewIndexBuffer allocates an index buffer and uploads indices synchronously.
//
// Parameters:
//   - b: the GPU backend
//   - indices: triangle-list indices
//   - options: optional BufferBuilderOptions
//
// Returns:
//   - IndexBuffer: the uploaded buffer
func NewIndexBuffer(b backend.Backend, indices []uint32, options ...BufferBuilderOption) IndexBuffer {
	if b == nil {
		panic("buffer: NewIndexBuffer requires a non-nil Backend")
	}
	cfg := newBufferConfig(options)
	ib := &indexBufferImpl{
		mu:      &sync.Mutex{},
		backend: b,
		count:   int32(len(indices)),
	}
	ib.id = b.CreateBuffer()
	b.BufferData(backend.BufferTargetElementArray, ib.id, common.SliceToBytes(indices), cfg.usage)
	return ib
}

func (vb *vertexBufferImpl) ID() uint32 {
	vb.mu.Lock()
	defer vb.mu.Unlock()
	return vb.id
}

func (vb *vertexBufferImpl) Bind() {
	vb.mu.Lock()
	defer vb.mu.Unlock()
	if vb.id == 0 {
		return
	}
	vb.backend.BindBuffer(backend.BufferTargetArray, vb.id)
}

func (vb *vertexBufferImpl) Unbind() {
	vb.backend.BindBuffer(backend.BufferTargetArray, 0)
}

func (vb *vertexBufferImpl) Update(vertices []float32) {
	vb.mu.Lock()
	defer vb.mu.Unlock()
	if vb.id == 0 {
		return
	}
	vb.backend.BufferData(backend.BufferTargetArray, vb.id, common.SliceToBytes(vertices), vb.usage)
}

func (vb *vertexBufferImpl) Release() {
	vb.mu.Lock()
	defer vb.mu.Unlock()
	if vb.id == 0 {
		return
	}
	vb.backend.DeleteBuffer(vb.id)
	vb.id = 0
}

func (ib *indexBufferImpl) ID() uint32 {
	ib.mu.Lock()
	defer ib.mu.Unlock()
	return ib.id
}

func (ib *indexBufferImpl) Count() int32 {
	return ib.count
}

func (ib *indexBufferImpl) Bind() {
	ib.mu.Lock()
	defer ib.mu.Unlock()
	if ib.id == 0 {
		return
	}
	ib.backend.BindBuffer(backend.BufferTargetElementArray, ib.id)
}

func (ib *indexBufferImpl) Unbind() {
	ib.backend.BindBuffer(backend.BufferTargetElementArray, 0)
}

func (ib *indexBufferImpl) Release() {
	ib.mu.Lock()
	defer ib.mu.Unlock()
	if ib.id == 0 {
		return
	}
	ib.backend.DeleteBuffer(ib.id)
	ib.id = 0
}
