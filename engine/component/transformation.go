package component

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
	"github.com/go-gl/mathgl/mgl32"
)

// Transformation places an entity in the world. Rotation angles are in radians. The model matrix
// is T(position) * Ry(yaw) * Rx(pitch) * Rz(roll) * S(scale), recomputed only after a mutation.
type Transformation interface {
	Component

	// Position returns the world position.
	Position() mgl32.Vec3

	// SetPosition sets the world position.
	SetPosition(p mgl32.Vec3)

	// Translate moves the position by delta.
	Translate(delta mgl32.Vec3)

	// Scale returns the per-axis scale.
	Scale() mgl32.Vec3

	// SetScale sets the per-axis scale.
	SetScale(s mgl32.Vec3)

	// Rotation returns yaw, pitch and roll in radians.
	Rotation() (yaw, pitch, roll float32)

	// SetRotation sets yaw, pitch and roll in radians.
	SetRotation(yaw, pitch, roll float32)

	// Rotate adds to yaw, pitch and roll.
	Rotate(dyaw, dpitch, droll float32)

	// ModelMatrix returns the model matrix, recomputing it first if it is stale.
	ModelMatrix() mgl32.Mat4

	// Dirty reports whether the model matrix is stale.
	Dirty() bool

	// Apply uploads the model matrix to the shader's u_model uniform.
	//
	// Parameters:
	//   - s: the bound shader
	Apply(s shader.Shader)
}

type transformationImpl struct {
	mu       *sync.Mutex
	position mgl32.Vec3
	scale    mgl32.Vec3
	yaw      float32
	pitch    float32
	roll     float32
	model    mgl32.Mat4
	dirty    bool
}

var _ Transformation = &transformationImpl{}

// NewTransformation creates a Transformation at the origin with unit scale and no rotation.
//
// Parameters:
//   - options: optional TransformationBuilderOptions
//
// Returns:
//   - Transformation: the new component
func NewTransformation(options ...TransformationBuilderOption) Transformation {
	t := &transformationImpl{
		mu:    &sync.Mutex{},
		scale: mgl32.Vec3{1, 1, 1},
		model: mgl32.Ident4(),
		dirty: true,
	}
	for _, opt := range options {
		opt(t)
	}
	return t
}

func (t *transformationImpl) Kind() Kind {
	return KindTransformation
}

func (t *transformationImpl) Name() string {
	return KindTransformation.String()
}

func (t *transformationImpl) Init(host Host) error {
	return nil
}

func (t *transformationImpl) Update(delta float32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.recalculate()
}

func (t *transformationImpl) Position() mgl32.Vec3 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.position
}

func (t *transformationImpl) SetPosition(p mgl32.Vec3) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.position = p
	t.dirty = true
}

func (t *transformationImpl) Translate(delta mgl32.Vec3) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.position = t.position.Add(delta)
	t.dirty = true
}

func (t *transformationImpl) Scale() mgl32.Vec3 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.scale
}

func (t *transformationImpl) SetScale(s mgl32.Vec3) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.scale = s
	t.dirty = true
}

func (t *transformationImpl) Rotation() (float32, float32, float32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.yaw, t.pitch, t.roll
}

func (t *transformationImpl) SetRotation(yaw, pitch, roll float32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.yaw, t.pitch, t.roll = yaw, pitch, roll
	t.dirty = true
}

func (t *transformationImpl) Rotate(dyaw, dpitch, droll float32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.yaw += dyaw
	t.pitch += dpitch
	t.roll += droll
	t.dirty = true
}

func (t *transformationImpl) ModelMatrix() mgl32.Mat4 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.recalculate()
	return t.model
}

func (t *transformationImpl) Dirty() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.dirty
}

func (t *transformationImpl) Apply(s shader.Shader) {
	if s == nil {
		return
	}
	s.SetMat4("u_model", t.ModelMatrix())
}

// recalculate rebuilds the model matrix if it is stale. Caller must hold the mutex.
func (t *transformationImpl) recalculate() {
	if !t.dirty {
		return
	}
	t.model = ComposeModel(t.position, t.yaw, t.pitch, t.roll, t.scale)
	t.dirty = false
}

// ComposeModel builds T(position) * Ry(yaw) * Rx(pitch) * Rz(roll) * S(scale).
//
// Parameters:
//   - position: translation
//   - yaw, pitch, roll: rotations around Y, X and Z in radians
//   - scale: per-axis scale
//
// Returns:
//   - mgl32.Mat4: the column-major model matrix
func ComposeModel(position mgl32.Vec3, yaw, pitch, roll float32, scale mgl32.Vec3) mgl32.Mat4 {
	return mgl32.Translate3D(position[0], position[1], position[2]).
		Mul4(mgl32.HomogRotate3DY(yaw)).
		Mul4(mgl32.HomogRotate3DX(pitch)).
		Mul4(mgl32.HomogRotate3DZ(roll)).
		Mul4(mgl32.Scale3D(scale[0], scale[1], scale[2]))
}
