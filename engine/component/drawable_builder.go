package component

import "github.com/Carmen-Shannon/oxy-gl/common"

// DrawableBuilderOption configures a Drawable at construction.
type DrawableBuilderOption func(*drawableImpl)

// WithColor sets the RGBA tint.
//
// Parameters:
//   - c: the color
//
// Returns:
//   - DrawableBuilderOption: a function that sets the color
func WithColor(c common.Color) DrawableBuilderOption {
	return func(d *drawableImpl) {
		d.color = c
	}
}

// WithZIndex sets the draw ordering key.
//
// Parameters:
//   - z: lower values draw first
//
// Returns:
//   - DrawableBuilderOption: a function that sets the z-index
func WithZIndex(z int) DrawableBuilderOption {
	return func(d *drawableImpl) {
		d.zIndex = z
	}
}

// WithTransparent places the drawable in the blended pass.
//
// Returns:
//   - DrawableBuilderOption: a function that marks the drawable transparent
func WithTransparent() DrawableBuilderOption {
	return func(d *drawableImpl) {
		d.transparent = true
	}
}

// WithMaterial sets the material.
//
// Parameters:
//   - m: the material
//
// Returns:
//   - DrawableBuilderOption: a function that sets the material
func WithMaterial(m Material) DrawableBuilderOption {
	return func(d *drawableImpl) {
		d.material = m
	}
}

// WithOverride adds a uniform override.
//
// Parameters:
//   - name: the uniform name
//   - value: any value accepted by shader.Shader.Set
//
// Returns:
//   - DrawableBuilderOption: a function that adds the override
func WithOverride(name string, value any) DrawableBuilderOption {
	return func(d *drawableImpl) {
		d.overrides[name] = value
	}
}

// WithOwnedShape transfers ownership of the shape to the drawable, which then releases it on Release.
//
// Returns:
//   - DrawableBuilderOption: a function that marks the shape owned
func WithOwnedShape() DrawableBuilderOption {
	return func(d *drawableImpl) {
		d.ownsShape = true
	}
}
