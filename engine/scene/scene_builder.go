package scene

import (
	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/camera"
	"github.com/Carmen-Shannon/oxy-gl/engine/entity"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/framebuffer"
	"go.uber.org/zap"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithActive sets whether the scene is active for updating and rendering.
//
// Parameters:
//   - active: whether the scene is active
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithActive(active bool) SceneBuilderOption {
	return func(s *scene) {
		s.active = active
	}
}

// WithZIndex sets the scene ordering key.
//
// Parameters:
//   - z: lower values are updated and drawn first
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithZIndex(z int) SceneBuilderOption {
	return func(s *scene) {
		s.zIndex = z
	}
}

// WithLogger sets the scene's logger.
//
// Parameters:
//   - logger: the zap logger to use
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithLogger(logger *zap.Logger) SceneBuilderOption {
	return func(s *scene) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithCamera sets the camera used to draw the scene.
//
// Parameters:
//   - cam: the camera
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithCamera(cam camera.Camera) SceneBuilderOption {
	return func(s *scene) {
		s.cam = cam
		s.controller = nil
	}
}

// WithCameraController sets the controller whose camera draws the scene.
//
// Parameters:
//   - cc: the controller
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithCameraController(cc camera.CameraController) SceneBuilderOption {
	return func(s *scene) {
		s.controller = cc
		s.cam = cc.Camera()
	}
}

// WithRenderSystem sets the render system used by Draw.
//
// Parameters:
//   - rs: the render system
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithRenderSystem(rs renderer.RenderSystem) SceneBuilderOption {
	return func(s *scene) {
		s.renderer = rs
	}
}

// WithTarget makes the scene draw into an off-screen framebuffer it owns.
//
// Parameters:
//   - fb: the framebuffer
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithTarget(fb framebuffer.Framebuffer) SceneBuilderOption {
	return func(s *scene) {
		s.target = fb
	}
}

// WithClearColor sets the color the target is cleared to before drawing.
//
// Parameters:
//   - c: the clear color
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithClearColor(c common.Color) SceneBuilderOption {
	return func(s *scene) {
		s.clearColor = c
	}
}

// WithClear sets whether Draw clears the target first. Defaults to true.
//
// Parameters:
//   - clear: false to draw over whatever the target already holds
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithClear(clear bool) SceneBuilderOption {
	return func(s *scene) {
		s.clear = clear
	}
}

// WithViewport sets the initial viewport size and fits the camera to it.
//
// Parameters:
//   - width, height: the size in pixels
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithViewport(width, height int) SceneBuilderOption {
	return func(s *scene) {
		if width > 0 && height > 0 {
			s.width, s.height = width, height
			s.resizeCamera()
		}
	}
}

// WithEntities initializes the scene and attaches the entities to its root. Entities that cannot
// be attached are logged and dropped.
//
// Parameters:
//   - entities: the entities to attach
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithEntities(entities ...entity.Entity) SceneBuilderOption {
	return func(s *scene) {
		s.init()
		for _, e := range entities {
			if err := s.root.AddChild(e); err != nil {
				s.logger.Warn("dropping entity", zap.String("scene", s.name), zap.Error(err))
			}
		}
	}
}
