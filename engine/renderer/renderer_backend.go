package renderer

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/backend"
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	PresentModeUncapped
)

// SwapInterval returns the buffer swap interval for the present mode.
func (m PresentMode) SwapInterval() int {
	if m == PresentModeUncapped {
		return 0
	}
	return 1
}

// NewBackend creates the GPU backend for the given type. A GL context must be current on the
// calling goroutine.
//
// Parameters:
//   - backendType: the backend implementation to create
//
// Returns:
//   - backend.Backend: the created backend
//   - error: an error if the backend type is unknown or initialization fails
func NewBackend(backendType backend.BackendType) (backend.Backend, error) {
	switch backendType {
	case backend.BackendTypeGL:
		return backend.NewGLBackend()
	default:
		return nil, fmt.Errorf("unsupported backend type: %d", backendType)
	}
}
