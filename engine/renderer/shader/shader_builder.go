package shader

import "go.uber.org/zap"

type shaderConfig struct {
	preProcessor PreProcessor
}

// ShaderBuilderOption configures how a single shader is built.
type ShaderBuilderOption func(*shaderConfig)

func newShaderConfig(options []ShaderBuilderOption) *shaderConfig {
	cfg := &shaderConfig{}
	for _, opt := range options {
		opt(cfg)
	}
	if cfg.preProcessor == nil {
		cfg.preProcessor = NewPreProcessor()
	}
	return cfg
}

// WithPreProcessor sets the pre-processor used to expand the shader sources.
//
// Parameters:
//   - pp: the pre-processor
//
// Returns:
//   - ShaderBuilderOption: a function that sets the pre-processor
func WithPreProcessor(pp PreProcessor) ShaderBuilderOption {
	return func(c *shaderConfig) {
		c.preProcessor = pp
	}
}

// RegistryBuilderOption configures a Registry.
type RegistryBuilderOption func(*registryImpl)

// WithLogger sets the registry's logger.
//
// Parameters:
//   - logger: the zap logger
//
// Returns:
//   - RegistryBuilderOption: a function that sets the logger
func WithLogger(logger *zap.Logger) RegistryBuilderOption {
	return func(r *registryImpl) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithRegistryPreProcessor sets the pre-processor shared by every shader the registry builds.
//
// Parameters:
//   - pp: the pre-processor
//
// Returns:
//   - RegistryBuilderOption: a function that sets the pre-processor
func WithRegistryPreProcessor(pp PreProcessor) RegistryBuilderOption {
	return func(r *registryImpl) {
		if pp != nil {
			r.preProcessor = pp
		}
	}
}
