package shape

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/backend"
)

// Library caches one instance of each built-in shape so drawables can share geometry.
type Library interface {
	// Quad returns the shared quad, building it on first use.
	Quad() Shape

	// Cube returns the shared cube, building it on first use.
	Cube() Shape

	// Shape returns the shared shape of the given kind, building it on first use.
	//
	// Returns:
	//   - Shape: the shape, or nil for an unknown kind
	Shape(kind Kind) Shape

	// Len returns the number of shapes built so far.
	Len() int

	// Clear releases every cached shape.
	Clear()
}

type libraryImpl struct {
	mu      *sync.Mutex
	backend backend.Backend
	shapes  map[Kind]Shape
}

var _ Library = &libraryImpl{}

// NewLibrary creates an empty shape library.
//
// Parameters:
//   - b: the GPU backend shapes are uploaded through
//
// Returns:
//   - Library: the new library
func NewLibrary(b backend.Backend) Library {
	if b == nil {
		panic("shape: NewLibrary requires a non-nil Backend")
	}
	return &libraryImpl{
		mu:      &sync.Mutex{},
		backend: b,
		shapes:  make(map[Kind]Shape),
	}
}

func (l *libraryImpl) Quad() Shape {
	return l.Shape(KindQuad)
}

func (l *libraryImpl) Cube() Shape {
	return l.Shape(KindCube)
}

func (l *libraryImpl) Shape(kind Kind) Shape {
	l.mu.Lock()
	defer l.mu.Unlock()
	if s, ok := l.shapes[kind]; ok {
		return s
	}
	var s Shape
	switch kind {
	case KindQuad:
		s = NewQuad(l.backend)
	case KindCube:
		s = NewCube(l.backend)
	default:
		return nil
	}
	l.shapes[kind] = s
	return s
}

func (l *libraryImpl) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.shapes)
}

func (l *libraryImpl) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, s := range l.shapes {
		s.Release()
	}
	l.shapes = make(map[Kind]Shape)
}
