// Package texture wraps RGBA8 GPU textures and keeps a named registry of them.
package texture

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/backend"
	"go.uber.org/zap"
)

// Texture is a single RGBA8 2D texture on the GPU.
type Texture interface {
	// Name returns the texture's registry name.
	Name() string

	// ID returns the GPU handle, or 0 after Release.
	ID() uint32

	// Width returns the width in pixels.
	Width() int

	// Height returns the height in pixels.
	Height() int

	// Bind binds the texture to a texture unit. A negative slot logs a warning and makes no GPU call.
	//
	// Parameters:
	//   - slot: the texture unit index
	Bind(slot int)

	// Release deletes the GPU texture. Calls after the first are no-ops.
	Release()
}

type textureImpl struct {
	mu      *sync.Mutex
	backend backend.Backend
	logger  *zap.Logger
	name    string
	id      uint32
	width   int
	height  int
}

var _ Texture = &textureImpl{}

// NewTexture uploads RGBA8 pixels to a new texture. Nil pixels allocate empty storage, which is
// how framebuffer color attachments are created.
//
// Parameters:
//   - b: the GPU backend
//   - name: the texture name
//   - width, height: size in pixels, both > 0
//   - pixels: width*height*4 bytes of RGBA data, or nil
//   - options: optional TextureBuilderOptions
//
// Returns:
//   - Texture: the uploaded texture
//   - error: error if the size is not positive or the pixel slice has the wrong length
func NewTexture(b backend.Backend, name string, width, height int, pixels []byte, options ...TextureBuilderOption) (Texture, error) {
	if b == nil {
		panic("texture: NewTexture requires a non-nil Backend")
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("texture %q: invalid size %dx%d", name, width, height)
	}
	if pixels != nil && len(pixels) != width*height*4 {
		return nil, fmt.Errorf("texture %q: expected %d bytes of RGBA data, got %d", name, width*height*4, len(pixels))
	}

	t := &textureImpl{
		mu:      &sync.Mutex{},
		backend: b,
		logger:  zap.NewNop(),
		name:    name,
		width:   width,
		height:  height,
	}
	for _, opt := range options {
		opt(t)
	}
	t.id = b.CreateTexture(width, height, pixels)
	return t, nil
}

// NewTextureFromFile decodes a PNG, JPEG, BMP or WebP file and uploads it.
//
// Parameters:
//   - b: the GPU backend
//   - name: the texture name
//   - path: image file path
//   - options: optional TextureBuilderOptions
//
// Returns:
//   - Texture: the uploaded texture
//   - error: error if the file cannot be opened or decoded
func NewTextureFromFile(b backend.Backend, name, path string, options ...TextureBuilderOption) (Texture, error) {
	src := &common.ImageSource{Path: path}
	pixels, w, h, err := src.Decode()
	if err != nil {
		return nil, fmt.Errorf("texture %q: %w", name, err)
	}
	return NewTexture(b, name, w, h, pixels, options...)
}

func (t *textureImpl) Name() string {
	return t.name
}

func (t *textureImpl) ID() uint32 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.id
}

func (t *textureImpl) Width() int {
	return t.width
}

func (t *textureImpl) Height() int {
	return t.height
}

func (t *textureImpl) Bind(slot int) {
	if slot < 0 {
		t.logger.Warn("texture bound to negative slot", zap.String("texture", t.name), zap.Int("slot", slot))
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.id == 0 {
		return
	}
	t.backend.BindTexture(uint32(slot), t.id)
}

func (t *textureImpl) Release() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.id == 0 {
		return
	}
	t.backend.DeleteTexture(t.id)
	t.id = 0
}
