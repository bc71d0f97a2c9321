// Package framebuffer provides an off-screen render target with an RGBA8 color texture and a
// depth/stencil renderbuffer.
package framebuffer

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/backend"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/texture"
	"go.uber.org/zap"
)

// ErrInvalidSize is returned for a zero or negative framebuffer size.
var ErrInvalidSize = errors.New("framebuffer: width and height must be positive")

// StatusError reports a framebuffer that is not complete after its attachments were created.
type StatusError struct {
	Status backend.FramebufferStatus
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("framebuffer: incomplete (%s)", e.Status)
}

// Framebuffer is an off-screen render target.
type Framebuffer interface {
	// ID returns the framebuffer handle, or 0 after Release.
	ID() uint32

	// Bind redirects drawing into the framebuffer and sets the viewport to its size.
	Bind()

	// Unbind returns drawing to the default framebuffer.
	Unbind()

	// Resize destroys the framebuffer and both attachments and recreates them at the new size.
	// Every call recreates, including one at the current size.
	//
	// Parameters:
	//   - width, height: the new size in pixels
	//
	// Returns:
	//   - error: ErrInvalidSize, or *StatusError if the recreated framebuffer is incomplete
	Resize(width, height int) error

	// ColorAttachment returns the current color texture.
	ColorAttachment() texture.Texture

	// Width returns the width in pixels.
	Width() int

	// Height returns the height in pixels.
	Height() int

	// Release deletes the framebuffer and its attachments. Calls after the first are no-ops.
	Release()
}

type framebufferImpl struct {
	mu           *sync.Mutex
	backend      backend.Backend
	logger       *zap.Logger
	name         string
	id           uint32
	color        texture.Texture
	depthStencil uint32
	width        int
	height       int
}

var _ Framebuffer = &framebufferImpl{}

// NewFramebuffer creates a framebuffer of the given size and checks its completeness.
//
// Parameters:
//   - b: the GPU backend
//   - width, height: size in pixels
//   - options: optional FramebufferBuilderOptions
//
// Returns:
//   - Framebuffer: the complete framebuffer
//   - error: ErrInvalidSize, or *StatusError when incomplete (all handles are released)
func NewFramebuffer(b backend.Backend, width, height int, options ...FramebufferBuilderOption) (Framebuffer, error) {
	if b == nil {
		panic("framebuffer: NewFramebuffer requires a non-nil Backend")
	}
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidSize
	}
	fb := &framebufferImpl{
		mu:      &sync.Mutex{},
		backend: b,
		logger:  zap.NewNop(),
		name:    "framebuffer",
	}
	for _, opt := range options {
		opt(fb)
	}
	if err := fb.create(width, height); err != nil {
		return nil, err
	}
	return fb, nil
}

// create allocates the framebuffer and both attachments. Caller must hold the mutex or own fb exclusively.
func (fb *framebufferImpl) create(width, height int) error {
	color, err := texture.NewTexture(fb.backend, fb.name+"_color", width, height, nil, texture.WithTextureLogger(fb.logger))
	if err != nil {
		return err
	}
	fb.id = fb.backend.CreateFramebuffer()
	fb.color = color
	fb.depthStencil = fb.backend.CreateDepthStencilRenderbuffer(width, height)
	fb.width, fb.height = width, height

	fb.backend.AttachColorTexture(fb.id, color.ID())
	fb.backend.AttachDepthStencil(fb.id, fb.depthStencil)
	status := fb.backend.CheckFramebuffer(fb.id)
	fb.backend.BindFramebuffer(0)
	if status != backend.FramebufferComplete {
		fb.destroy()
		return &StatusError{Status: status}
	}
	fb.logger.Debug("framebuffer created", zap.String("name", fb.name), zap.Int("width", width), zap.Int("height", height))
	return nil
}

// destroy releases the framebuffer and both attachments. Caller must hold the mutex or own fb exclusively.
func (fb *framebufferImpl) destroy() {
	if fb.id == 0 {
		return
	}
	fb.backend.DeleteFramebuffer(fb.id)
	fb.backend.DeleteRenderbuffer(fb.depthStencil)
	fb.color.Release()
	fb.id, fb.depthStencil = 0, 0
}

func (fb *framebufferImpl) ID() uint32 {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.id
}

func (fb *framebufferImpl) Bind() {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	if fb.id == 0 {
		return
	}
	fb.backend.BindFramebuffer(fb.id)
	fb.backend.Viewport(0, 0, fb.width, fb.height)
}

func (fb *framebufferImpl) Unbind() {
	fb.backend.BindFramebuffer(0)
}

func (fb *framebufferImpl) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return ErrInvalidSize
	}
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.destroy()
	return fb.create(width, height)
}

func (fb *framebufferImpl) ColorAttachment() texture.Texture {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.color
}

func (fb *framebufferImpl) Width() int {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.width
}

func (fb *framebufferImpl) Height() int {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return fb.height
}

func (fb *framebufferImpl) Release() {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.destroy()
}
