package texture

import "go.uber.org/zap"

// TextureBuilderOption configures a Texture at construction.
type TextureBuilderOption func(*textureImpl)

// WithTextureLogger sets the logger used for texture warnings.
//
// Parameters:
//   - logger: the zap logger
//
// Returns:
//   - TextureBuilderOption: a function that sets the logger
func WithTextureLogger(logger *zap.Logger) TextureBuilderOption {
	return func(t *textureImpl) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// RegistryBuilderOption configures a Registry.
type RegistryBuilderOption func(*registryImpl)

// WithLogger sets the registry's logger. Textures created by the registry share it.
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

// WithDecodeWorkers sets how many workers Preload decodes images on. Defaults to 4.
//
// Parameters:
//   - n: worker count, values below 1 are ignored
//
// Returns:
//   - RegistryBuilderOption: a function that sets the worker count
func WithDecodeWorkers(n int) RegistryBuilderOption {
	return func(r *registryImpl) {
		if n > 0 {
			r.decodeWorkers = n
		}
	}
}
