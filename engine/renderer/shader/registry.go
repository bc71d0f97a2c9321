package shader

import (
	"context"
	"sort"
	"sync"

	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/backend"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Source names a vertex/fragment file pair for Registry.LoadAll.
type Source struct {
	Name         string `json:"name" yaml:"name"`
	VertexPath   string `json:"vertex" yaml:"vertex"`
	FragmentPath string `json:"fragment" yaml:"fragment"`
}

// Registry owns every shader by name. The first registration of a name wins; later creates with
// the same name return the existing shader without recompiling.
type Registry interface {
	// CreateShaderFromFiles builds and registers a shader from two source files. If name is already
	// registered the existing shader is returned and no file is read.
	//
	// Parameters:
	//   - name: registry key
	//   - vertexPath: vertex stage source path
	//   - fragmentPath: fragment stage source path
	//
	// Returns:
	//   - Shader: the registered shader
	//   - error: *SourceError, *CompileError or *LinkError; nothing is registered on error
	CreateShaderFromFiles(name, vertexPath, fragmentPath string) (Shader, error)

	// CreateShader builds and registers a shader from in-memory sources with the same
	// first-registration-wins contract as CreateShaderFromFiles.
	CreateShader(name, vertexSource, fragmentSource string) (Shader, error)

	// LoadAll reads every source pair concurrently, then compiles them in order on the calling
	// goroutine. Names that are already registered are skipped.
	//
	// Parameters:
	//   - ctx: cancels outstanding reads
	//   - sources: the shaders to load
	//
	// Returns:
	//   - error: the first read or build error
	LoadAll(ctx context.Context, sources []Source) error

	// Bind looks up a shader and makes it current.
	//
	// Returns:
	//   - Shader: the bound shader, or nil (with no GPU call) when name is unknown
	Bind(name string) Shader

	// Shader looks up a shader without binding it.
	//
	// Returns:
	//   - Shader: the shader, or nil when name is unknown
	Shader(name string) Shader

	// Names returns every registered name, sorted.
	Names() []string

	// Len returns the number of registered shaders.
	Len() int

	// Clear releases every shader and empties the registry. Must run before the GPU context is destroyed.
	Clear()
}

type registryImpl struct {
	mu           *sync.RWMutex
	backend      backend.Backend
	logger       *zap.Logger
	preProcessor PreProcessor
	shaders      map[string]Shader
}

var _ Registry = &registryImpl{}

// NewRegistry creates an empty shader registry.
//
// Parameters:
//   - b: the GPU backend shaders are built on
//   - options: optional RegistryBuilderOptions
//
// Returns:
//   - Registry: the new registry
func NewRegistry(b backend.Backend, options ...RegistryBuilderOption) Registry {
	if b == nil {
		panic("shader: NewRegistry requires a non-nil Backend")
	}
	r := &registryImpl{
		mu:           &sync.RWMutex{},
		backend:      b,
		logger:       zap.NewNop(),
		preProcessor: NewPreProcessor(),
		shaders:      make(map[string]Shader),
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

func (r *registryImpl) CreateShaderFromFiles(name, vertexPath, fragmentPath string) (Shader, error) {
	if s := r.Shader(name); s != nil {
		return s, nil
	}
	vsrc, fsrc, err := readSources(name, vertexPath, fragmentPath)
	if err != nil {
		return nil, err
	}
	return r.CreateShader(name, vsrc, fsrc)
}

func (r *registryImpl) CreateShader(name, vertexSource, fragmentSource string) (Shader, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.shaders[name]; ok {
		return s, nil
	}
	s, err := NewShader(r.backend, name, vertexSource, fragmentSource, WithPreProcessor(r.preProcessor))
	if err != nil {
		return nil, err
	}
	r.shaders[name] = s
	r.logger.Debug("shader created", zap.String("name", name), zap.Uint32("program", s.ID()))
	return s, nil
}

func (r *registryImpl) LoadAll(ctx context.Context, sources []Source) error {
	type loaded struct {
		vertex, fragment string
		skip             bool
	}
	results := make([]loaded, len(sources))

	seen := make(map[string]bool, len(sources))
	for i, src := range sources {
		if seen[src.Name] || r.Shader(src.Name) != nil {
			results[i].skip = true
		}
		seen[src.Name] = true
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		if results[i].skip {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			v, f, err := readSources(src.Name, src.VertexPath, src.FragmentPath)
			if err != nil {
				return err
			}
			results[i].vertex, results[i].fragment = v, f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, src := range sources {
		if results[i].skip {
			continue
		}
		if _, err := r.CreateShader(src.Name, results[i].vertex, results[i].fragment); err != nil {
			return err
		}
	}
	r.logger.Info("shaders loaded", zap.Int("requested", len(sources)), zap.Int("registered", r.Len()))
	return nil
}

func (r *registryImpl) Bind(name string) Shader {
	s := r.Shader(name)
	if s == nil {
		return nil
	}
	s.Bind()
	return s
}

func (r *registryImpl) Shader(name string) Shader {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.shaders[name]
}

func (r *registryImpl) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.shaders))
	for name := range r.shaders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *registryImpl) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.shaders)
}

func (r *registryImpl) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.shaders {
		s.Release()
	}
	r.shaders = make(map[string]Shader)
}
