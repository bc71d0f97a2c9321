package framebuffer

import "go.uber.org/zap"

// FramebufferBuilderOption configures a Framebuffer at construction.
type FramebufferBuilderOption func(*framebufferImpl)

// WithLogger sets the framebuffer's logger.
//
// Parameters:
//   - logger: the zap logger
//
// Returns:
//   - FramebufferBuilderOption: a function that sets the logger
func WithLogger(logger *zap.Logger) FramebufferBuilderOption {
	return func(fb *framebufferImpl) {
		if logger != nil {
			fb.logger = logger
		}
	}
}

// WithName sets the name used for the color attachment and in log output.
//
// Parameters:
//   - name: the framebuffer name
//
// Returns:
//   - FramebufferBuilderOption: a function that sets the name
func WithName(name string) FramebufferBuilderOption {
	return func(fb *framebufferImpl) {
		fb.name = name
	}
}
