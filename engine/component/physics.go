package component

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// DefaultGravity is the constant acceleration applied by a new Physics component.
var DefaultGravity = mgl32.Vec3{0, -9.81, 0}

// Physics integrates constant gravity into a velocity and that velocity into the host's
// Transformation position, using a fixed number of equal substeps per Update.
type Physics interface {
	Component

	// Velocity returns the current velocity.
	Velocity() mgl32.Vec3

	// SetVelocity sets the current velocity.
	SetVelocity(v mgl32.Vec3)

	// ApplyImpulse adds dv to the velocity.
	ApplyImpulse(dv mgl32.Vec3)

	// Gravity returns the constant acceleration.
	Gravity() mgl32.Vec3

	// SetGravity sets the constant acceleration.
	SetGravity(g mgl32.Vec3)

	// Substeps returns the number of integration steps per Update.
	Substeps() int

	// SetSubsteps sets the number of integration steps per Update. Values below 1 become 1.
	SetSubsteps(n int)
}

type physicsImpl struct {
	mu       *sync.Mutex
	host     Host
	velocity mgl32.Vec3
	gravity  mgl32.Vec3
	substeps int
}

var _ Physics = &physicsImpl{}

// NewPhysics creates a Physics component at rest under DefaultGravity with one substep.
//
// Parameters:
//   - options: optional PhysicsBuilderOptions
//
// Returns:
//   - Physics: the new component
func NewPhysics(options ...PhysicsBuilderOption) Physics {
	p := &physicsImpl{
		mu:       &sync.Mutex{},
		gravity:  DefaultGravity,
		substeps: 1,
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *physicsImpl) Kind() Kind {
	return KindPhysics
}

func (p *physicsImpl) Name() string {
	return KindPhysics.String()
}

func (p *physicsImpl) Init(host Host) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.host = host
	return nil
}

func (p *physicsImpl) Update(delta float32) {
	if delta <= 0 {
		return
	}
	p.mu.Lock()
	host := p.host
	p.mu.Unlock()

	t := TransformationOf(host)
	if t == nil {
		return
	}

	p.mu.Lock()
	step := delta / float32(p.substeps)
	var moved mgl32.Vec3
	for range p.substeps {
		p.velocity = p.velocity.Add(p.gravity.Mul(step))
		moved = moved.Add(p.velocity.Mul(step))
	}
	p.mu.Unlock()

	t.Translate(moved)
}

func (p *physicsImpl) Velocity() mgl32.Vec3 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.velocity
}

func (p *physicsImpl) SetVelocity(v mgl32.Vec3) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.velocity = v
}

func (p *physicsImpl) ApplyImpulse(dv mgl32.Vec3) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.velocity = p.velocity.Add(dv)
}

func (p *physicsImpl) Gravity() mgl32.Vec3 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.gravity
}

func (p *physicsImpl) SetGravity(g mgl32.Vec3) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gravity = g
}

func (p *physicsImpl) Substeps() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.substeps
}

func (p *physicsImpl) SetSubsteps(n int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.substeps = max(n, 1)
}
