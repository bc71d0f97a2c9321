package renderer

import "go.uber.org/zap"

// RenderSystemBuilderOption is a functional option applied to a render system during construction via NewRenderSystem.
type RenderSystemBuilderOption func(*renderSystem)

// WithLogger sets the logger used for missing shader and texture warnings.
//
// Parameters:
//   - logger: the zap logger to use
//
// Returns:
//   - RenderSystemBuilderOption: a function that applies the logger option to a render system
func WithLogger(logger *zap.Logger) RenderSystemBuilderOption {
	return func(r *renderSystem) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithDepthTest toggles depth testing during the opaque and transparent passes. It is on by default.
//
// Parameters:
//   - enabled: true to depth test
//
// Returns:
//   - RenderSystemBuilderOption: a function that applies the depth test option to a render system
func WithDepthTest(enabled bool) RenderSystemBuilderOption {
	return func(r *renderSystem) {
		r.depthTest = enabled
	}
}

// WithCullFace toggles back-face culling. It is off by default so quads draw from both sides.
//
// Parameters:
//   - enabled: true to cull back faces
//
// Returns:
//   - RenderSystemBuilderOption: a function that applies the cull face option to a render system
func WithCullFace(enabled bool) RenderSystemBuilderOption {
	return func(r *renderSystem) {
		r.cullFace = enabled
	}
}
