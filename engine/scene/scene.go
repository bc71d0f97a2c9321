package scene

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/camera"
	"github.com/Carmen-Shannon/oxy-gl/engine/entity"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/framebuffer"
	"go.uber.org/zap"
)

// RootName is the name of the entity Init creates at the top of every scene tree.
const RootName = "root"

// Scene owns one entity tree together with the camera that views it, an optional render system
// and an optional off-screen target. Scenes are updated and drawn by the engine in ascending
// Z-index order.
type Scene interface {
	// Name returns the name of the scene.
	Name() string

	// SetName sets the name of the scene.
	SetName(name string)

	// Active returns whether the scene is updated and drawn.
	Active() bool

	// SetActive sets whether the scene is updated and drawn.
	SetActive(active bool)

	// ZIndex returns the scene ordering key used by the engine; lower values draw first.
	ZIndex() int

	// SetZIndex sets the scene ordering key.
	SetZIndex(z int)

	// Init creates the root entity. Calling Init on an initialized scene does nothing.
	Init()

	// Initialized reports whether the scene currently has a root entity.
	Initialized() bool

	// Root returns the root entity, or nil before Init and after CleanUp.
	Root() entity.Entity

	// AddEntity attaches e to the root entity, initializing the scene first if needed.
	//
	// Parameters:
	//   - e: the entity to attach
	//
	// Returns:
	//   - error: any error from entity.Entity.AddChild
	AddEntity(e entity.Entity) error

	// Camera returns the camera used to draw the scene.
	Camera() camera.Camera

	// SetCamera replaces the camera. Any controller set with SetCameraController is dropped.
	//
	// Parameters:
	//   - cam: the new camera
	SetCamera(cam camera.Camera)

	// CameraController returns the controller owning the scene's camera, or nil.
	CameraController() camera.CameraController

	// SetCameraController uses the controller's camera for the scene and routes viewport
	// changes through the controller.
	//
	// Parameters:
	//   - cc: the controller
	SetCameraController(cc camera.CameraController)

	// RenderSystem returns the render system used by Draw, or nil.
	RenderSystem() renderer.RenderSystem

	// SetRenderSystem sets the render system used by Draw.
	SetRenderSystem(rs renderer.RenderSystem)

	// Target returns the off-screen framebuffer the scene draws into, or nil for the default framebuffer.
	Target() framebuffer.Framebuffer

	// SetTarget sets the off-screen framebuffer the scene draws into. The scene takes ownership
	// and releases it on CleanUp.
	SetTarget(fb framebuffer.Framebuffer)

	// ClearColor returns the color the target is cleared to before drawing.
	ClearColor() common.Color

	// SetClearColor sets the color the target is cleared to before drawing.
	SetClearColor(c common.Color)

	// Clears reports whether Draw clears the target before drawing.
	Clears() bool

	// SetClears sets whether Draw clears the target before drawing. Scenes layered over another
	// scene on the same target disable it.
	SetClears(clear bool)

	// Viewport returns the scene's drawable size in pixels.
	Viewport() (width, height int)

	// SetViewport resizes the scene. The off-screen target is recreated at the new size and the
	// camera's aspect ratio is updated. Non-positive sizes are ignored.
	//
	// Parameters:
	//   - width, height: the new size in pixels
	//
	// Returns:
	//   - error: an error if the target could not be recreated
	SetViewport(width, height int) error

	// Update advances every enabled entity in the tree by delta seconds. Inactive or
	// uninitialized scenes are not updated.
	//
	// Parameters:
	//   - delta: elapsed time in seconds
	Update(delta float32)

	// Draw clears the target when Clears is set and draws the tree through the render system. It
	// does nothing when the scene is inactive, uninitialized or has no render system.
	Draw()

	// DrawLayer is Draw with the clear decided by the caller, for compositing several scenes into
	// one target.
	//
	// Parameters:
	//   - clear: whether to clear the target first
	DrawLayer(clear bool)

	// CleanUp destroys the entity tree and releases the target. The scene can be Init'ed again afterwards.
	CleanUp()
}

// scene is the implementation of the Scene interface.
type scene struct {
	mu *sync.Mutex

	name   string
	active bool
	zIndex int
	logger *zap.Logger

	root       entity.Entity
	cam        camera.Camera
	controller camera.CameraController
	renderer   renderer.RenderSystem
	target     framebuffer.Framebuffer
	clearColor common.Color
	clear      bool
	width      int
	height     int
}

var _ Scene = &scene{}

// NewScene creates an active scene with a perspective camera and an 800x600 viewport. Init is
// not called; use WithInit or call it before adding entities.
//
// Parameters:
//   - name: the name of the scene
//   - options: variadic list of SceneBuilderOption functions to configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, options ...SceneBuilderOption) Scene {
	s := &scene{
		mu:         &sync.Mutex{},
		name:       name,
		active:     true,
		logger:     zap.NewNop(),
		cam:        camera.NewPerspectiveCamera(camera.WithAspect(800.0 / 600.0)),
		clearColor: common.Color{0.1, 0.1, 0.1, 1},
		clear:      true,
		width:      800,
		height:     600,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *scene) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name
}

func (s *scene) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

func (s *scene) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) ZIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.zIndex
}

func (s *scene) SetZIndex(z int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.zIndex = z
}

func (s *scene) Init() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.init()
}

// init creates the root entity if missing. Caller must hold the mutex.
func (s *scene) init() {
	if s.root != nil {
		return
	}
	s.root = entity.New(RootName)
	s.logger.Debug("scene initialized", zap.String("scene", s.name))
}

func (s *scene) Initialized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.root != nil
}

func (s *scene) Root() entity.Entity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.root
}

func (s *scene) AddEntity(e entity.Entity) error {
	s.mu.Lock()
	s.init()
	root := s.root
	s.mu.Unlock()
	return root.AddChild(e)
}

func (s *scene) Camera() camera.Camera {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cam
}

func (s *scene) SetCamera(cam camera.Camera) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cam = cam
	s.controller = nil
	s.resizeCamera()
}

func (s *scene) CameraController() camera.CameraController {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.controller
}

func (s *scene) SetCameraController(cc camera.CameraController) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.controller = cc
	if cc != nil {
		s.cam = cc.Camera()
	}
	s.resizeCamera()
}

func (s *scene) RenderSystem() renderer.RenderSystem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.renderer
}

func (s *scene) SetRenderSystem(rs renderer.RenderSystem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.renderer = rs
}

func (s *scene) Target() framebuffer.Framebuffer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.target
}

func (s *scene) SetTarget(fb framebuffer.Framebuffer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.target != nil && s.target != fb {
		s.target.Release()
	}
	s.target = fb
}

func (s *scene) ClearColor() common.Color {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clearColor
}

func (s *scene) SetClearColor(c common.Color) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearColor = c
}

func (s *scene) Viewport() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

func (s *scene) SetViewport(width, height int) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width, s.height = width, height
	s.resizeCamera()
	if s.target != nil {
		if err := s.target.Resize(width, height); err != nil {
			s.logger.Error("failed to resize scene target", zap.String("scene", s.name), zap.Error(err))
			return err
		}
	}
	return nil
}

// resizeCamera fits the camera to the current viewport. Caller must hold the mutex.
func (s *scene) resizeCamera() {
	if s.controller != nil {
		s.controller.Resize(s.width, s.height)
		return
	}
	if s.cam != nil && s.height > 0 {
		s.cam.SetAspect(float32(s.width) / float32(s.height))
	}
}

func (s *scene) Update(delta float32) {
	s.mu.Lock()
	root, active := s.root, s.active
	s.mu.Unlock()
	if !active || root == nil {
		return
	}
	root.Update(delta)
}

func (s *scene) Clears() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clear
}

func (s *scene) SetClears(clear bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clear = clear
}

func (s *scene) Draw() {
	s.DrawLayer(s.Clears())
}

func (s *scene) DrawLayer(clear bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.active || s.root == nil || s.renderer == nil {
		return
	}

	if s.target != nil {
		s.target.Bind()
		defer s.target.Unbind()
	} else {
		s.renderer.SetViewport(s.width, s.height)
	}
	if clear {
		s.renderer.Clear(s.clearColor)
	}
	s.renderer.Draw(s.root, s.cam)
}

func (s *scene) CleanUp() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.root != nil {
		s.root.Destroy()
		s.root = nil
	}
	if s.target != nil {
		s.target.Release()
		s.target = nil
	}
	s.logger.Debug("scene cleaned up", zap.String("scene", s.name))
}
