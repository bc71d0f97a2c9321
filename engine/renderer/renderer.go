package renderer

import (
	"cmp"
	"slices"
	"sync"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/camera"
	"github.com/Carmen-Shannon/oxy-gl/engine/component"
	"github.com/Carmen-Shannon/oxy-gl/engine/entity"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/backend"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/texture"
	"go.uber.org/zap"
)

// Standard per-entity uniform names uploaded by the render system.
const (
	UniformColor               = "u_color"
	UniformMaterialAmbient     = "u_material.ambient"
	UniformMaterialDiffuse     = "u_material.diffuse"
	UniformMaterialSpecular    = "u_material.specular"
	UniformMaterialShininess   = "u_material.shininess"
	UniformMaterialDiffuseMap  = "u_material.diffuse_map"
	UniformMaterialSpecularMap = "u_material.specular_map"
	UniformMaterialHasDiffuse  = "u_material.has_diffuse_map"
	UniformMaterialHasSpecular = "u_material.has_specular_map"
)

// Texture units used for material maps.
const (
	DiffuseTextureSlot  = 0
	SpecularTextureSlot = 1
)

// Stats counts what the last Draw call did.
type Stats struct {
	// Opaque is the number of entities drawn in the opaque pass.
	Opaque int

	// Transparent is the number of entities drawn in the blended pass.
	Transparent int

	// Skipped is the number of collected entities that could not be drawn.
	Skipped int
}

// Drawn returns the total number of draw calls issued.
func (s Stats) Drawn() int {
	return s.Opaque + s.Transparent
}

// renderSystem is the implementation of the RenderSystem interface.
type renderSystem struct {
	mu *sync.Mutex

	backend  backend.Backend
	shaders  shader.Registry
	textures texture.Registry
	logger   *zap.Logger

	depthTest bool
	cullFace  bool

	stats          Stats
	missingShaders map[string]bool
	missingTexture map[string]bool
}

// RenderSystem draws entity trees. Every entity carrying both a Transformation and a Drawable is
// drawn once per frame: first the opaque ones, then the transparent ones with blending on and
// depth writes off. Within each pass entities are ordered by ascending Z-index, ties keeping
// depth-first tree order.
type RenderSystem interface {
	// Collect gathers the drawable entities under root in draw order. Disabled entities and their
	// subtrees are skipped.
	//
	// Parameters:
	//   - root: the tree to collect from
	//
	// Returns:
	//   - []entity.Entity: opaque entities sorted by Z-index
	//   - []entity.Entity: transparent entities sorted by Z-index
	Collect(root entity.Entity) (opaque, transparent []entity.Entity)

	// Draw collects the tree and draws it with the camera's view and projection. Camera uniforms
	// are uploaded once per shader per frame. A drawable whose shader is not registered is skipped
	// and its shader name is warned about once.
	//
	// Parameters:
	//   - root: the tree to draw
	//   - cam: the camera, or nil to skip camera uniforms
	Draw(root entity.Entity, cam camera.Camera)

	// Clear sets the clear color and clears the color and depth buffers of the bound framebuffer.
	//
	// Parameters:
	//   - c: the clear color
	Clear(c common.Color)

	// SetViewport sets the backend viewport to (0, 0, width, height).
	SetViewport(width, height int)

	// Stats returns the counts recorded by the last Draw.
	Stats() Stats

	// Backend returns the GPU backend.
	Backend() backend.Backend

	// Shaders returns the shader registry.
	Shaders() shader.Registry

	// Textures returns the texture registry.
	Textures() texture.Registry
}

var _ RenderSystem = &renderSystem{}

// NewRenderSystem creates a render system drawing through b with shaders and textures looked up
// by name in the given registries.
//
// Parameters:
//   - b: the GPU backend
//   - shaders: the shader registry
//   - textures: the texture registry
//   - options: variadic list of RenderSystemBuilderOption functions to configure the render system
//
// Returns:
//   - RenderSystem: the new render system
func NewRenderSystem(b backend.Backend, shaders shader.Registry, textures texture.Registry, options ...RenderSystemBuilderOption) RenderSystem {
	if b == nil {
		panic("renderer: NewRenderSystem requires a non-nil Backend")
	}
	if shaders == nil {
		shaders = shader.NewRegistry(b)
	}
	if textures == nil {
		textures = texture.NewRegistry(b)
	}
	r := &renderSystem{
		mu:             &sync.Mutex{},
		backend:        b,
		shaders:        shaders,
		textures:       textures,
		logger:         zap.NewNop(),
		depthTest:      true,
		missingShaders: make(map[string]bool),
		missingTexture: make(map[string]bool),
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

func (r *renderSystem) Collect(root entity.Entity) ([]entity.Entity, []entity.Entity) {
	if root == nil {
		return nil, nil
	}
	var collected []entity.Entity
	root.Walk(func(e entity.Entity) bool {
		if !e.Enabled() {
			return false
		}
		if e.Transformation() != nil && e.Drawable() != nil {
			collected = append(collected, e)
		}
		return true
	})

	slices.SortStableFunc(collected, func(a, b entity.Entity) int {
		return cmp.Compare(a.Drawable().ZIndex(), b.Drawable().ZIndex())
	})

	var opaque, transparent []entity.Entity
	for _, e := range collected {
		if e.Drawable().Transparent() {
			transparent = append(transparent, e)
		} else {
			opaque = append(opaque, e)
		}
	}
	return opaque, transparent
}

func (r *renderSystem) Draw(root entity.Entity, cam camera.Camera) {
	r.mu.Lock()
	defer r.mu.Unlock()

	opaque, transparent := r.Collect(root)
	frame := &frameState{camera: cam, prepared: make(map[shader.Shader]bool)}
	stats := Stats{}

	if r.depthTest {
		r.backend.Enable(backend.CapabilityDepthTest)
	} else {
		r.backend.Disable(backend.CapabilityDepthTest)
	}
	if r.cullFace {
		r.backend.Enable(backend.CapabilityCullFace)
	} else {
		r.backend.Disable(backend.CapabilityCullFace)
	}

	for _, e := range opaque {
		if r.drawEntity(frame, e) {
			stats.Opaque++
		} else {
			stats.Skipped++
		}
	}

	r.backend.Enable(backend.CapabilityBlend)
	r.backend.BlendFunc(backend.BlendFactorSrcAlpha, backend.BlendFactorOneMinusSrcAlpha)
	r.backend.DepthMask(false)
	for _, e := range transparent {
		if r.drawEntity(frame, e) {
			stats.Transparent++
		} else {
			stats.Skipped++
		}
	}
	r.backend.DepthMask(true)
	r.backend.Disable(backend.CapabilityBlend)

	r.backend.BindVertexArray(0)
	r.stats = stats
}

func (r *renderSystem) Clear(c common.Color) {
	r.backend.ClearColor(c[0], c[1], c[2], c[3])
	r.backend.Clear(backend.ClearColor | backend.ClearDepth)
}

func (r *renderSystem) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.backend.Viewport(0, 0, width, height)
}

func (r *renderSystem) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

func (r *renderSystem) Backend() backend.Backend {
	return r.backend
}

func (r *renderSystem) Shaders() shader.Registry {
	return r.shaders
}

func (r *renderSystem) Textures() texture.Registry {
	return r.textures
}

// frameState tracks which shaders already received the camera uniforms this frame.
type frameState struct {
	camera   camera.Camera
	prepared map[shader.Shader]bool
}

// drawEntity uploads an entity's uniforms and issues its draw call. Caller must hold the mutex.
func (r *renderSystem) drawEntity(frame *frameState, e entity.Entity) bool {
	d := e.Drawable()
	sh := d.Shape()
	if sh == nil || sh.VertexArray() == nil || sh.IndexCount() == 0 {
		return false
	}

	name := d.ShaderName()
	s := r.shaders.Bind(name)
	if s == nil {
		if !r.missingShaders[name] {
			r.missingShaders[name] = true
			r.logger.Warn("shader not registered, skipping drawables that use it",
				zap.String("shader", name), zap.String("entity", e.Name()))
		}
		return false
	}

	if !frame.prepared[s] {
		frame.prepared[s] = true
		if frame.camera != nil {
			frame.camera.Apply(s)
		}
	}

	e.Transformation().Apply(s)
	s.SetVec4(UniformColor, d.Color().Vec4())
	r.applyMaterial(s, d.Material())
	for _, o := range d.Overrides() {
		if err := s.Set(o.Name, o.Value); err != nil {
			r.logger.Debug("uniform override skipped", zap.String("entity", e.Name()), zap.Error(err))
		}
	}

	sh.Bind()
	r.backend.DrawElements(sh.IndexCount())
	return true
}

// applyMaterial uploads the material coefficients and binds its textures. Caller must hold the mutex.
func (r *renderSystem) applyMaterial(s shader.Shader, m component.Material) {
	s.SetVec3(UniformMaterialAmbient, m.Ambient)
	s.SetVec3(UniformMaterialDiffuse, m.Diffuse)
	s.SetVec3(UniformMaterialSpecular, m.Specular)
	s.SetFloat(UniformMaterialShininess, m.Shininess)

	hasDiffuse := r.bindMaterialTexture(m.DiffuseTexture, DiffuseTextureSlot)
	s.SetInt(UniformMaterialDiffuseMap, DiffuseTextureSlot)
	_ = s.Set(UniformMaterialHasDiffuse, hasDiffuse)

	hasSpecular := r.bindMaterialTexture(m.SpecularTexture, SpecularTextureSlot)
	s.SetInt(UniformMaterialSpecularMap, SpecularTextureSlot)
	_ = s.Set(UniformMaterialHasSpecular, hasSpecular)
}

// bindMaterialTexture binds a named texture to slot. Unknown names are warned about once.
// Caller must hold the mutex.
func (r *renderSystem) bindMaterialTexture(name string, slot int) bool {
	if name == "" {
		return false
	}
	if r.textures.Bind(name, slot) {
		return true
	}
	if !r.missingTexture[name] {
		r.missingTexture[name] = true
		r.logger.Warn("texture not registered", zap.String("texture", name))
	}
	return false
}
