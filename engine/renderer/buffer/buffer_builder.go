package buffer

import "github.com/Carmen-Shannon/oxy-gl/engine/renderer/backend"

type bufferConfig struct {
	usage backend.BufferUsage
}

// BufferBuilderOption configures a vertex or index buffer at construction.
type BufferBuilderOption func(*bufferConfig)

func newBufferConfig(options []BufferBuilderOption) *bufferConfig {
	cfg := &bufferConfig{usage: backend.BufferUsageStatic}
	for _, opt := range options {
		opt(cfg)
	}
	return cfg
}

// WithUsage sets the buffer's update frequency hint. Buffers default to static usage.
//
// Parameters:
//   - usage: the usage hint
//
// Returns:
//   - BufferBuilderOption: a function that sets the usage
func WithUsage(usage backend.BufferUsage) BufferBuilderOption {
	return func(c *bufferConfig) {
		c.usage = usage
	}
}
