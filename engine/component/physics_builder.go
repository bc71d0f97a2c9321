package component

import "github.com/go-gl/mathgl/mgl32"

// PhysicsBuilderOption configures a Physics component at construction.
type PhysicsBuilderOption func(*physicsImpl)

// WithVelocity sets the initial velocity.
//
// Parameters:
//   - v: the velocity
//
// Returns:
//   - PhysicsBuilderOption: a function that sets the velocity
func WithVelocity(v mgl32.Vec3) PhysicsBuilderOption {
	return func(p *physicsImpl) {
		p.velocity = v
	}
}

// WithGravity sets the constant acceleration.
//
// Parameters:
//   - g: the acceleration
//
// Returns:
//   - PhysicsBuilderOption: a function that sets gravity
func WithGravity(g mgl32.Vec3) PhysicsBuilderOption {
	return func(p *physicsImpl) {
		p.gravity = g
	}
}

// WithSubsteps sets the number of integration steps per Update.
//
// Parameters:
//   - n: step count, values below 1 become 1
//
// Returns:
//   - PhysicsBuilderOption: a function that sets the substep count
func WithSubsteps(n int) PhysicsBuilderOption {
	return func(p *physicsImpl) {
		p.substeps = max(n, 1)
	}
}
