// Package shape builds the static geometry drawables reference: a unit quad and a unit cube, each
// uploaded into a vertex array with the engine's standard vertex layout.
package shape

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/backend"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/buffer"
)

// Kind identifies a built-in shape.
type Kind int

const (
	KindQuad Kind = iota
	KindCube
)

// String returns the shape's name.
func (k Kind) String() string {
	switch k {
	case KindQuad:
		return "quad"
	case KindCube:
		return "cube"
	default:
		return "unknown"
	}
}

// VertexLayout is the interleaved layout every shape uses: position, normal, texture coordinate.
var VertexLayout = buffer.NewLayout(
	buffer.Element{Name: "a_position", Type: buffer.DataTypeFloat3},
	buffer.Element{Name: "a_normal", Type: buffer.DataTypeFloat3},
	buffer.Element{Name: "a_texcoord", Type: buffer.DataTypeFloat2},
)

// floatsPerVertex matches VertexLayout.
const floatsPerVertex = 8

// Shape is uploaded geometry ready to draw.
type Shape interface {
	// Kind returns which built-in shape this is.
	Kind() Kind

	// VertexArray returns the shape's vertex array, or nil after Release.
	VertexArray() buffer.VertexArray

	// VertexCount returns the number of vertices uploaded.
	VertexCount() int

	// IndexCount returns the number of indices to draw.
	IndexCount() int32

	// Bind binds the shape's vertex array.
	Bind()

	// Release frees the vertex array and its buffers. Calls after the first are no-ops.
	Release()
}

type shapeImpl struct {
	mu          *sync.Mutex
	kind        Kind
	vertexArray buffer.VertexArray
	vertexCount int
	indexCount  int32
}

var _ Shape = &shapeImpl{}

// newShape uploads vertices and indices into a fresh vertex array.
func newShape(b backend.Backend, kind Kind, vertices []float32, indices []uint32) Shape {
	va := buffer.NewVertexArray(b)
	// both buffers are fresh and the layout is non-empty, so neither call can fail
	_ = va.AddVertexBuffer(buffer.NewVertexBuffer(b, vertices), VertexLayout)
	_ = va.SetIndexBuffer(buffer.NewIndexBuffer(b, indices))
	va.Unbind()
	return &shapeImpl{
		mu:          &sync.Mutex{},
		kind:        kind,
		vertexArray: va,
		vertexCount: len(vertices) / floatsPerVertex,
		indexCount:  int32(len(indices)),
	}
}

// NewQuad builds a unit quad in the XY plane, centered on the origin and facing +Z.
//
// Parameters:
//   - b: the GPU backend
//
// Returns:
//   - Shape: 4 vertices, 6 indices
func NewQuad(b backend.Backend) Shape {
	vertices := []float32{
		// position        normal     texcoord
		-0.5, -0.5, 0, 0, 0, 1, 0, 0,
		0.5, -0.5, 0, 0, 0, 1, 1, 0,
		0.5, 0.5, 0, 0, 0, 1, 1, 1,
		-0.5, 0.5, 0, 0, 0, 1, 0, 1,
	}
	indices := []uint32{0, 1, 2, 2, 3, 0}
	return newShape(b, KindQuad, vertices, indices)
}

// cubeFaces lists each face as its normal plus the four corners in counter-clockwise order seen from outside.
var cubeFaces = [6]struct {
	normal  [3]float32
	corners [4][3]float32
}{
	{[3]float32{0, 0, 1}, [4][3]float32{{-0.5, -0.5, 0.5}, {0.5, -0.5, 0.5}, {0.5, 0.5, 0.5}, {-0.5, 0.5, 0.5}}},
	{[3]float32{0, 0, -1}, [4][3]float32{{0.5, -0.5, -0.5}, {-0.5, -0.5, -0.5}, {-0.5, 0.5, -0.5}, {0.5, 0.5, -0.5}}},
	{[3]float32{1, 0, 0}, [4][3]float32{{0.5, -0.5, 0.5}, {0.5, -0.5, -0.5}, {0.5, 0.5, -0.5}, {0.5, 0.5, 0.5}}},
	{[3]float32{-1, 0, 0}, [4][3]float32{{-0.5, -0.5, -0.5}, {-0.5, -0.5, 0.5}, {-0.5, 0.5, 0.5}, {-0.5, 0.5, -0.5}}},
	{[3]float32{0, 1, 0}, [4][3]float32{{-0.5, 0.5, 0.5}, {0.5, 0.5, 0.5}, {0.5, 0.5, -0.5}, {-0.5, 0.5, -0.5}}},
	{[3]float32{0, -1, 0}, [4][3]float32{{-0.5, -0.5, -0.5}, {0.5, -0.5, -0.5}, {0.5, -0.5, 0.5}, {-0.5, -0.5, 0.5}}},
}

var quadUVs = [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

// NewCube builds a unit cube centered on the origin with per-face normals.
//
// Parameters:
//   - b: the GPU backend
//
// Returns:
//   - Shape: 24 vertices, 36 indices
func NewCube(b backend.Backend) Shape {
	vertices := make([]float32, 0, 24*floatsPerVertex)
	indices := make([]uint32, 0, 36)
	for f, face := range cubeFaces {
		for c, p := range face.corners {
			vertices = append(vertices, p[0], p[1], p[2], face.normal[0], face.normal[1], face.normal[2], quadUVs[c][0], quadUVs[c][1])
		}
		base := uint32(f * 4)
		indices = append(indices, base, base+1, base+2, base+2, base+3, base)
	}
	return newShape(b, KindCube, vertices, indices)
}

func (s *shapeImpl) Kind() Kind {
	return s.kind
}

func (s *shapeImpl) VertexArray() buffer.VertexArray {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.vertexArray
}

func (s *shapeImpl) VertexCount() int {
	return s.vertexCount
}

func (s *shapeImpl) IndexCount() int32 {
	return s.indexCount
}

func (s *shapeImpl) Bind() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.vertexArray == nil {
		return
	}
	s.vertexArray.Bind()
}

func (s *shapeImpl) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.vertexArray == nil {
		return
	}
	s.vertexArray.Release()
	s.vertexArray = nil
}
