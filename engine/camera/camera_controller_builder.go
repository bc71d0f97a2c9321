package camera

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithMoveSpeed sets the movement multiplier.
//
// Parameters:
//   - speed: world units per unit of move input
//
// Returns:
//   - CameraControllerOption: functional option to set the move speed
func WithMoveSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.moveSpeed = speed
	}
}

// WithSensitivity sets the rotation multiplier.
//
// Parameters:
//   - sensitivity: multiplier applied to rotation deltas
//
// Returns:
//   - CameraControllerOption: functional option to set the sensitivity
func WithSensitivity(sensitivity float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.sensitivity = sensitivity
	}
}

// WithZoomSpeed sets the zoom multiplier.
//
// Parameters:
//   - speed: multiplier applied to zoom deltas
//
// Returns:
//   - CameraControllerOption: functional option to set the zoom speed
func WithZoomSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.zoomSpeed = speed
	}
}

// WithCameraOptions passes options through to the camera the controller creates.
//
// Parameters:
//   - options: camera options
//
// Returns:
//   - CameraControllerOption: functional option carrying the camera options
func WithCameraOptions(options ...CameraBuilderOption) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.cameraOptions = append(cc.cameraOptions, options...)
	}
}
