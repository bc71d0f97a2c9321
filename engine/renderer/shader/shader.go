package shader

import (
	"fmt"
	"os"
	"sync"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/backend"
	"github.com/go-gl/mathgl/mgl32"
)

// Shader is a linked vertex + fragment program. It owns exactly one program handle and caches
// uniform locations by name.
type Shader interface {
	// Name returns the shader's registry name.
	Name() string

	// ID returns the program handle, or 0 after Release.
	ID() uint32

	// Bind makes the program current.
	Bind()

	// Unbind clears the current program.
	Unbind()

	// SetInt uploads an int uniform. Uniforms the program does not declare are skipped.
	//
	// Parameters:
	//   - name: uniform name
	//   - v: value
	SetInt(name string, v int32)

	// SetFloat uploads a float uniform.
	SetFloat(name string, v float32)

	// SetVec2 uploads a vec2 uniform.
	SetVec2(name string, v mgl32.Vec2)

	// SetVec3 uploads a vec3 uniform.
	SetVec3(name string, v mgl32.Vec3)

	// SetVec4 uploads a vec4 uniform.
	SetVec4(name string, v mgl32.Vec4)

	// SetMat4 uploads a column-major mat4 uniform.
	SetMat4(name string, m mgl32.Mat4)

	// Set uploads a uniform from a dynamically typed value. Supported types are bool, int, int32,
	// float32, float64, mgl32.Vec2/Vec3/Vec4, mgl32.Mat4, [2]/[3]/[4]float32 and common.Color.
	//
	// Parameters:
	//   - name: uniform name
	//   - value: the value to upload
	//
	// Returns:
	//   - error: ErrUnsupportedUniform for any other type
	Set(name string, value any) error

	// HasUniform reports whether the program declares an active uniform called name.
	HasUniform(name string) bool

	// Release deletes the program. Calls after the first are no-ops.
	Release()
}

type shaderImpl struct {
	mu        *sync.Mutex
	backend   backend.Backend
	name      string
	program   uint32
	locations map[string]int32
}

var _ Shader = &shaderImpl{}

// NewShader compiles both stages and links them into a program. Sources pass through a
// PreProcessor first. On any failure every intermediate handle is deleted before returning.
//
// Parameters:
//   - b: the GPU backend
//   - name: the shader name used in errors and registry lookups
//   - vertexSource: vertex stage GLSL
//   - fragmentSource: fragment stage GLSL
//   - options: optional ShaderBuilderOptions
//
// Returns:
//   - Shader: the linked shader
//   - error: *SourceError, *CompileError or *LinkError
func NewShader(b backend.Backend, name, vertexSource, fragmentSource string, options ...ShaderBuilderOption) (Shader, error) {
	if b == nil {
		panic("shader: NewShader requires a non-nil Backend")
	}
	cfg := newShaderConfig(options)

	vsrc, err := cfg.preProcessor.Process(vertexSource)
	if err != nil {
		return nil, &SourceError{Name: name, Path: "<vertex>", Err: err}
	}
	fsrc, err := cfg.preProcessor.Process(fragmentSource)
	if err != nil {
		return nil, &SourceError{Name: name, Path: "<fragment>", Err: err}
	}

	vs, log, ok := b.CompileShader(backend.ShaderStageVertex, vsrc)
	if !ok {
		return nil, &CompileError{Name: name, Stage: backend.ShaderStageVertex, Log: log}
	}
	fs, log, ok := b.CompileShader(backend.ShaderStageFragment, fsrc)
	if !ok {
		b.DeleteShader(vs)
		return nil, &CompileError{Name: name, Stage: backend.ShaderStageFragment, Log: log}
	}

	program, log, ok := b.LinkProgram(vs, fs)
	b.DeleteShader(vs)
	b.DeleteShader(fs)
	if !ok {
		return nil, &LinkError{Name: name, Log: log}
	}

	return &shaderImpl{
		mu:        &sync.Mutex{},
		backend:   b,
		name:      name,
		program:   program,
		locations: make(map[string]int32),
	}, nil
}

// NewShaderFromFiles reads both stage sources wholesale and builds a shader from them.
//
// Parameters:
//   - b: the GPU backend
//   - name: the shader name
//   - vertexPath: path to the vertex stage source
//   - fragmentPath: path to the fragment stage source
//   - options: optional ShaderBuilderOptions
//
// Returns:
//   - Shader: the linked shader
//   - error: *SourceError wrapping the os error for an unreadable file, otherwise as NewShader
func NewShaderFromFiles(b backend.Backend, name, vertexPath, fragmentPath string, options ...ShaderBuilderOption) (Shader, error) {
	vsrc, fsrc, err := readSources(name, vertexPath, fragmentPath)
	if err != nil {
		return nil, err
	}
	return NewShader(b, name, vsrc, fsrc, options...)
}

// readSources reads a vertex/fragment pair from disk.
func readSources(name, vertexPath, fragmentPath string) (string, string, error) {
	vdata, err := os.ReadFile(vertexPath)
	if err != nil {
		return "", "", &SourceError{Name: name, Path: vertexPath, Err: err}
	}
	fdata, err := os.ReadFile(fragmentPath)
	if err != nil {
		return "", "", &SourceError{Name: name, Path: fragmentPath, Err: err}
	}
	return string(vdata), string(fdata), nil
}

func (s *shaderImpl) Name() string {
	return s.name
}

func (s *shaderImpl) ID() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.program
}

func (s *shaderImpl) Bind() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.program == 0 {
		return
	}
	s.backend.UseProgram(s.program)
}

func (s *shaderImpl) Unbind() {
	s.backend.UseProgram(0)
}

func (s *shaderImpl) SetInt(name string, v int32) {
	if loc, ok := s.location(name); ok {
		s.backend.Uniform1i(loc, v)
	}
}

func (s *shaderImpl) SetFloat(name string, v float32) {
	if loc, ok := s.location(name); ok {
		s.backend.Uniform1f(loc, v)
	}
}

func (s *shaderImpl) SetVec2(name string, v mgl32.Vec2) {
	if loc, ok := s.location(name); ok {
		s.backend.Uniform2f(loc, v[0], v[1])
	}
}

func (s *shaderImpl) SetVec3(name string, v mgl32.Vec3) {
	if loc, ok := s.location(name); ok {
		s.backend.Uniform3f(loc, v[0], v[1], v[2])
	}
}

func (s *shaderImpl) SetVec4(name string, v mgl32.Vec4) {
	if loc, ok := s.location(name); ok {
		s.backend.Uniform4f(loc, v[0], v[1], v[2], v[3])
	}
}

func (s *shaderImpl) SetMat4(name string, m mgl32.Mat4) {
	if loc, ok := s.location(name); ok {
		s.backend.UniformMatrix4fv(loc, m)
	}
}

func (s *shaderImpl) Set(name string, value any) error {
	switch v := value.(type) {
	case bool:
		if v {
			s.SetInt(name, 1)
		} else {
			s.SetInt(name, 0)
		}
	case int:
		s.SetInt(name, int32(v))
	case int32:
		s.SetInt(name, v)
	case float32:
		s.SetFloat(name, v)
	case float64:
		s.SetFloat(name, float32(v))
	case mgl32.Vec2:
		s.SetVec2(name, v)
	case [2]float32:
		s.SetVec2(name, v)
	case mgl32.Vec3:
		s.SetVec3(name, v)
	case [3]float32:
		s.SetVec3(name, v)
	case mgl32.Vec4:
		s.SetVec4(name, v)
	case [4]float32:
		s.SetVec4(name, v)
	case common.Color:
		s.SetVec4(name, mgl32.Vec4(v))
	case mgl32.Mat4:
		s.SetMat4(name, v)
	default:
		return fmt.Errorf("%w: %s = %T", ErrUnsupportedUniform, name, value)
	}
	return nil
}

func (s *shaderImpl) HasUniform(name string) bool {
	_, ok := s.location(name)
	return ok
}

func (s *shaderImpl) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.program == 0 {
		return
	}
	s.backend.DeleteProgram(s.program)
	s.program = 0
	s.locations = make(map[string]int32)
}

// location resolves and caches a uniform location. Missing uniforms are cached as -1 too.
func (s *shaderImpl) location(name string) (int32, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.program == 0 {
		return -1, false
	}
	loc, ok := s.locations[name]
	if !ok {
		loc = s.backend.UniformLocation(s.program, name)
		s.locations[name] = loc
	}
	return loc, loc >= 0
}
