package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
	"github.com/go-gl/mathgl/mgl32"
)

type orthographicImpl struct {
	mu *sync.Mutex

	position mgl32.Vec3
	left     float32
	right    float32
	bottom   float32
	top      float32
	near     float32
	far      float32
	centered bool
	zoom     float32

	view       mgl32.Mat4
	projection mgl32.Mat4
}

// OrthographicCamera is a parallel projection camera. Its view translates the world by the
// negated camera position. A centered camera keeps its frustum symmetric around the origin.
type OrthographicCamera interface {
	Camera

	// Bounds returns the unzoomed frustum edges.
	Bounds() (left, right, bottom, top float32)

	// SetBounds sets the frustum edges.
	SetBounds(left, right, bottom, top float32)

	// SetSize sets a frustum of width x height; centered cameras span +/-width/2 and +/-height/2,
	// others span [0, width] x [0, height].
	//
	// Parameters:
	//   - width, height: frustum size in world units
	SetSize(width, height float32)

	// Centered reports whether the frustum is centered on the origin.
	Centered() bool

	// Zoom returns the frustum scale; values below 1 magnify.
	Zoom() float32

	// SetZoom sets the frustum scale, clamped to [0.05, 20].
	SetZoom(zoom float32)
}

var _ OrthographicCamera = &orthographicImpl{}

// NewOrthographicCamera creates an orthographic camera. Without bounds options the frustum is
// [-1, 1] on both axes with near -1 and far 1.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - OrthographicCamera: the newly created camera
func NewOrthographicCamera(options ...CameraBuilderOption) OrthographicCamera {
	cfg := newCameraConfig(options)
	c := &orthographicImpl{
		mu:       &sync.Mutex{},
		position: cfg.position,
		left:     cfg.bounds[0],
		right:    cfg.bounds[1],
		bottom:   cfg.bounds[2],
		top:      cfg.bounds[3],
		near:     cfg.orthoNear,
		far:      cfg.orthoFar,
		centered: cfg.centered,
		zoom:     1,
	}
	if !cfg.positionSet {
		c.position = mgl32.Vec3{}
	}
	if c.centered {
		c.setSize(c.right-c.left, c.top-c.bottom)
	}
	c.updateMatrices()
	return c
}

func (c *orthographicImpl) Type() CameraType {
	return CameraTypeOrthographic
}

func (c *orthographicImpl) ViewMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

func (c *orthographicImpl) ProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projection
}

func (c *orthographicImpl) ViewProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projection.Mul4(c.view)
}

func (c *orthographicImpl) Position() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *orthographicImpl) SetPosition(p mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = p
	c.updateMatrices()
}

func (c *orthographicImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *orthographicImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *orthographicImpl) SetAspect(aspect float32) {
	if aspect <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	height := c.top - c.bottom
	width := height * aspect
	mid := (c.left + c.right) / 2
	c.left, c.right = mid-width/2, mid+width/2
	c.updateMatrices()
}

func (c *orthographicImpl) Apply(s shader.Shader) {
	applyUniforms(c, s)
}

func (c *orthographicImpl) Update(s shader.Shader) {
	updateUniforms(c, s)
}

func (c *orthographicImpl) Bounds() (float32, float32, float32, float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.left, c.right, c.bottom, c.top
}

func (c *orthographicImpl) SetBounds(left, right, bottom, top float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.left, c.right, c.bottom, c.top = left, right, bottom, top
	c.updateMatrices()
}

func (c *orthographicImpl) SetSize(width, height float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setSize(width, height)
	c.updateMatrices()
}

func (c *orthographicImpl) Centered() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.centered
}

func (c *orthographicImpl) Zoom() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.zoom
}

func (c *orthographicImpl) SetZoom(zoom float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.zoom = clampZoom(zoom)
	c.updateMatrices()
}

func clampZoom(z float32) float32 {
	return max(0.05, min(z, 20))
}

// setSize rewrites the bounds for a frustum size. Caller must hold the mutex.
func (c *orthographicImpl) setSize(width, height float32) {
	if c.centered {
		c.left, c.right = -width/2, width/2
		c.bottom, c.top = -height/2, height/2
		return
	}
	c.left, c.right = 0, width
	c.bottom, c.top = 0, height
}

// updateMatrices recalculates the view and projection matrices. Caller must hold the mutex.
func (c *orthographicImpl) updateMatrices() {
	c.view = mgl32.Translate3D(-c.position[0], -c.position[1], -c.position[2])
	midX, midY := (c.left+c.right)/2, (c.bottom+c.top)/2
	halfW, halfH := (c.right-c.left)/2*c.zoom, (c.top-c.bottom)/2*c.zoom
	c.projection = mgl32.Ortho(midX-halfW, midX+halfW, midY-halfH, midY+halfH, c.near, c.far)
}
