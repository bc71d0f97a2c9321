package texture

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/backend"
	"go.uber.org/zap"
)

// Registry owns every texture by name. Creating a name that already exists returns the existing
// texture without touching the GPU.
type Registry interface {
	// Create decodes and uploads the image at path under name, or returns the existing texture.
	//
	// Parameters:
	//   - name: registry key
	//   - path: image file path
	//
	// Returns:
	//   - Texture: the registered texture
	//   - error: error if the image cannot be loaded; nothing is registered on error
	Create(name, path string) (Texture, error)

	// CreateFromPixels uploads raw RGBA8 pixels under name, or returns the existing texture.
	CreateFromPixels(name string, width, height int, pixels []byte) (Texture, error)

	// Texture looks up a texture.
	//
	// Returns:
	//   - Texture: the texture, or nil when name is unknown
	Texture(name string) Texture

	// Bind binds the named texture to slot.
	//
	// Returns:
	//   - bool: false when name is unknown (no GPU call is made)
	Bind(name string, slot int) bool

	// Preload decodes every image concurrently on a worker pool and then uploads them on the calling
	// goroutine in name order. Names that are already registered are skipped. Images that decode
	// successfully are registered even when others fail.
	//
	// Parameters:
	//   - ctx: stops submitting decode work once cancelled
	//   - paths: image paths keyed by texture name
	//
	// Returns:
	//   - error: the joined decode errors, or ctx.Err() when cancelled
	Preload(ctx context.Context, paths map[string]string) error

	// Names returns every registered name, sorted.
	Names() []string

	// Len returns the number of registered textures.
	Len() int

	// Clear releases every texture and empties the registry.
	Clear()
}

type registryImpl struct {
	mu            *sync.RWMutex
	backend       backend.Backend
	logger        *zap.Logger
	textures      map[string]Texture
	decodeWorkers int
	pool          worker.DynamicWorkerPool
}

var _ Registry = &registryImpl{}

// NewRegistry creates an empty texture registry.
//
// Parameters:
//   - b: the GPU backend
//   - options: optional RegistryBuilderOptions
//
// Returns:
//   - Registry: the new registry
func NewRegistry(b backend.Backend, options ...RegistryBuilderOption) Registry {
	if b == nil {
		panic("texture: NewRegistry requires a non-nil Backend")
	}
	r := &registryImpl{
		mu:            &sync.RWMutex{},
		backend:       b,
		logger:        zap.NewNop(),
		textures:      make(map[string]Texture),
		decodeWorkers: 4,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

func (r *registryImpl) Create(name, path string) (Texture, error) {
	if t := r.Texture(name); t != nil {
		return t, nil
	}
	src := &common.ImageSource{Path: path}
	pixels, w, h, err := src.Decode()
	if err != nil {
		return nil, fmt.Errorf("texture %q: %w", name, err)
	}
	return r.CreateFromPixels(name, w, h, pixels)
}

func (r *registryImpl) CreateFromPixels(name string, width, height int, pixels []byte) (Texture, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.textures[name]; ok {
		return t, nil
	}
	t, err := NewTexture(r.backend, name, width, height, pixels, WithTextureLogger(r.logger))
	if err != nil {
		return nil, err
	}
	r.textures[name] = t
	r.logger.Debug("texture created", zap.String("name", name), zap.Int("width", width), zap.Int("height", height))
	return t, nil
}

func (r *registryImpl) Texture(name string) Texture {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.textures[name]
}

func (r *registryImpl) Bind(name string, slot int) bool {
	t := r.Texture(name)
	if t == nil {
		return false
	}
	t.Bind(slot)
	return true
}

type decoded struct {
	pixels        []byte
	width, height int
	err           error
}

func (r *registryImpl) Preload(ctx context.Context, paths map[string]string) error {
	names := make([]string, 0, len(paths))
	for name := range paths {
		if r.Texture(name) == nil {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	if len(names) == 0 {
		return nil
	}

	if r.pool == nil {
		r.pool = worker.NewDynamicWorkerPool(r.decodeWorkers, 256, 1*time.Second)
	}

	results := make([]decoded, len(names))
	var wg sync.WaitGroup
	for i, name := range names {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		path := paths[name]
		r.pool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()
				src := &common.ImageSource{Path: path}
				pixels, w, h, err := src.Decode()
				results[i] = decoded{pixels: pixels, width: w, height: h, err: err}
				return nil, err
			},
		})
	}
	wg.Wait()
	if err := ctx.Err(); err != nil {
		return err
	}

	var errs []error
	for i, name := range names {
		res := results[i]
		if res.err != nil {
			errs = append(errs, fmt.Errorf("texture %q: %w", name, res.err))
			continue
		}
		if _, err := r.CreateFromPixels(name, res.width, res.height, res.pixels); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		r.logger.Warn("texture preload incomplete", zap.Int("failed", len(errs)), zap.Int("requested", len(names)))
	}
	return errors.Join(errs...)
}

func (r *registryImpl) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.textures))
	for name := range r.textures {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *registryImpl) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.textures)
}

func (r *registryImpl) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.textures {
		t.Release()
	}
	r.textures = make(map[string]Texture)
}
