package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	minFov = mgl32.DegToRad(1)
	maxFov = mgl32.DegToRad(90)
)

// cameraControllerImpl is the single implementation of CameraController. Exactly one of
// perspective and orthographic is set, matching cameraType.
type cameraControllerImpl struct {
	mu *sync.Mutex

	cameraType   CameraType
	perspective  PerspectiveCamera
	orthographic OrthographicCamera

	moveSpeed     float32
	sensitivity   float32
	zoomSpeed     float32
	cameraOptions []CameraBuilderOption
}

// Compile-time interface compliance check
var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a controller and the camera it owns.
//
// Parameters:
//   - cameraType: which camera to create
//   - options: functional options to configure the controller and its camera
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(cameraType CameraType, options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu:          &sync.Mutex{},
		cameraType:  cameraType,
		moveSpeed:   1,
		sensitivity: 1,
		zoomSpeed:   1,
	}
	for _, option := range options {
		option(cc)
	}

	switch cameraType {
	case CameraTypeOrthographic:
		cc.orthographic = NewOrthographicCamera(cc.cameraOptions...)
	case CameraTypePerspective:
		cc.perspective = NewPerspectiveCamera(cc.cameraOptions...)
	default:
		panic("camera: NewCameraController requires a known CameraType")
	}
	return cc
}

func (cc *cameraControllerImpl) Type() CameraType {
	return cc.cameraType
}

func (cc *cameraControllerImpl) Camera() Camera {
	if cc.perspective != nil {
		return cc.perspective
	}
	return cc.orthographic
}

func (cc *cameraControllerImpl) MoveForward(amount float32) {
	d := amount * cc.MoveSpeed()
	if cc.perspective != nil {
		cc.perspective.SetPosition(cc.perspective.Position().Add(cc.perspective.Front().Mul(d)))
		return
	}
	cc.orthographic.SetPosition(cc.orthographic.Position().Add(mgl32.Vec3{0, 0, -d}))
}

func (cc *cameraControllerImpl) MoveRight(amount float32) {
	d := amount * cc.MoveSpeed()
	if cc.perspective != nil {
		cc.perspective.SetPosition(cc.perspective.Position().Add(cc.perspective.Right().Mul(d)))
		return
	}
	cc.orthographic.SetPosition(cc.orthographic.Position().Add(mgl32.Vec3{d, 0, 0}))
}

func (cc *cameraControllerImpl) MoveUp(amount float32) {
	d := amount * cc.MoveSpeed()
	if cc.perspective != nil {
		cc.perspective.SetPosition(cc.perspective.Position().Add(cc.perspective.Up().Mul(d)))
		return
	}
	cc.orthographic.SetPosition(cc.orthographic.Position().Add(mgl32.Vec3{0, d, 0}))
}

func (cc *cameraControllerImpl) Rotate(dyaw, dpitch float32) {
	if cc.perspective == nil {
		return
	}
	cc.mu.Lock()
	s := cc.sensitivity
	cc.mu.Unlock()
	cc.perspective.SetYawPitch(cc.perspective.Yaw()+dyaw*s, cc.perspective.Pitch()+dpitch*s)
}

func (cc *cameraControllerImpl) Zoom(delta float32) {
	cc.mu.Lock()
	d := delta * cc.zoomSpeed
	cc.mu.Unlock()
	if cc.perspective != nil {
		cc.perspective.SetFov(common.Clamp(cc.perspective.Fov()-d, minFov, maxFov))
		return
	}
	cc.orthographic.SetZoom(cc.orthographic.Zoom() - d)
}

func (cc *cameraControllerImpl) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	if cc.perspective != nil {
		cc.perspective.SetAspect(float32(width) / float32(height))
		return
	}
	if cc.orthographic.Centered() {
		cc.orthographic.SetSize(float32(width), float32(height))
		return
	}
	cc.orthographic.SetAspect(float32(width) / float32(height))
}

func (cc *cameraControllerImpl) Update(s shader.Shader) {
	cc.Camera().Update(s)
}

func (cc *cameraControllerImpl) MoveSpeed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.moveSpeed
}

func (cc *cameraControllerImpl) SetMoveSpeed(speed float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.moveSpeed = speed
}
