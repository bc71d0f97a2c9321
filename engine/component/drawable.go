package component

import (
	"sort"
	"sync"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/shape"
	"github.com/go-gl/mathgl/mgl32"
)

// Material holds Phong lighting coefficients and the names of optional textures in the texture registry.
type Material struct {
	Ambient   mgl32.Vec3 `json:"ambient" yaml:"ambient"`
	Diffuse   mgl32.Vec3 `json:"diffuse" yaml:"diffuse"`
	Specular  mgl32.Vec3 `json:"specular" yaml:"specular"`
	Shininess float32    `json:"shininess" yaml:"shininess"`

	// DiffuseTexture is bound to slot 0 when set.
	DiffuseTexture string `json:"diffuseTexture" yaml:"diffuseTexture"`

	// SpecularTexture is bound to slot 1 when set.
	SpecularTexture string `json:"specularTexture" yaml:"specularTexture"`
}

// DefaultMaterial returns a white, mildly glossy material without textures.
func DefaultMaterial() Material {
	return Material{
		Ambient:   mgl32.Vec3{0.1, 0.1, 0.1},
		Diffuse:   mgl32.Vec3{1, 1, 1},
		Specular:  mgl32.Vec3{0.5, 0.5, 0.5},
		Shininess: 32,
	}
}

// Override is a named uniform value uploaded after the standard drawable uniforms.
type Override struct {
	Name  string
	Value any
}

// Drawable describes how the render system draws an entity: geometry, shader, color, material,
// ordering and per-entity uniform overrides. The shader is referenced by registry name.
type Drawable interface {
	Component
	Releaser

	// Shape returns the geometry.
	Shape() shape.Shape

	// SetShape replaces the geometry. An owned previous shape is released.
	SetShape(s shape.Shape)

	// ShaderName returns the shader registry name.
	ShaderName() string

	// SetShaderName sets the shader registry name.
	SetShaderName(name string)

	// Color returns the RGBA tint uploaded as u_color.
	Color() common.Color

	// SetColor sets the RGBA tint.
	SetColor(c common.Color)

	// ZIndex returns the draw ordering key; lower values draw first.
	ZIndex() int

	// SetZIndex sets the draw ordering key.
	SetZIndex(z int)

	// Transparent reports whether the drawable is drawn in the blended pass.
	Transparent() bool

	// SetTransparent moves the drawable between the opaque and blended passes.
	SetTransparent(transparent bool)

	// Material returns the material.
	Material() Material

	// SetMaterial replaces the material.
	SetMaterial(m Material)

	// SetOverride sets a uniform override. A nil value removes it.
	//
	// Parameters:
	//   - name: the uniform name
	//   - value: any value accepted by shader.Shader.Set
	SetOverride(name string, value any)

	// Overrides returns the uniform overrides sorted by name.
	Overrides() []Override
}

type drawableImpl struct {
	mu          *sync.Mutex
	shape       shape.Shape
	ownsShape   bool
	shaderName  string
	color       common.Color
	zIndex      int
	transparent bool
	material    Material
	overrides   map[string]any
}

var _ Drawable = &drawableImpl{}

// NewDrawable creates a Drawable that draws s with the named shader. The shape is shared unless
// WithOwnedShape is given.
//
// Parameters:
//   - s: the geometry
//   - shaderName: the shader registry name
//   - options: optional DrawableBuilderOptions
//
// Returns:
//   - Drawable: the new component
func NewDrawable(s shape.Shape, shaderName string, options ...DrawableBuilderOption) Drawable {
	d := &drawableImpl{
		mu:         &sync.Mutex{},
		shape:      s,
		shaderName: shaderName,
		color:      common.ColorWhite,
		material:   DefaultMaterial(),
		overrides:  make(map[string]any),
	}
	for _, opt := range options {
		opt(d)
	}
	return d
}

func (d *drawableImpl) Kind() Kind {
	return KindDrawable
}

func (d *drawableImpl) Name() string {
	return KindDrawable.String()
}

func (d *drawableImpl) Init(host Host) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.shape == nil {
		return ErrMissingShape
	}
	return nil
}

func (d *drawableImpl) Update(delta float32) {}

func (d *drawableImpl) Release() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.ownsShape && d.shape != nil {
		d.shape.Release()
	}
}

func (d *drawableImpl) Shape() shape.Shape {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.shape
}

func (d *drawableImpl) SetShape(s shape.Shape) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.ownsShape && d.shape != nil && d.shape != s {
		d.shape.Release()
	}
	d.shape = s
	d.ownsShape = false
}

func (d *drawableImpl) ShaderName() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.shaderName
}

func (d *drawableImpl) SetShaderName(name string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.shaderName = name
}

func (d *drawableImpl) Color() common.Color {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.color
}

func (d *drawableImpl) SetColor(c common.Color) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.color = c
}

func (d *drawableImpl) ZIndex() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.zIndex
}

func (d *drawableImpl) SetZIndex(z int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.zIndex = z
}

func (d *drawableImpl) Transparent() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.transparent
}

func (d *drawableImpl) SetTransparent(transparent bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.transparent = transparent
}

func (d *drawableImpl) Material() Material {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.material
}

func (d *drawableImpl) SetMaterial(m Material) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.material = m
}

func (d *drawableImpl) SetOverride(name string, value any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if value == nil {
		delete(d.overrides, name)
		return
	}
	d.overrides[name] = value
}

func (d *drawableImpl) Overrides() []Override {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Override, 0, len(d.overrides))
	for name, v := range d.overrides {
		out = append(out, Override{Name: name, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
