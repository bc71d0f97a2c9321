package backend

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

type glBackendImpl struct{}

var _ Backend = &glBackendImpl{}

// NewGLBackend loads the OpenGL 4.1 core function pointers and returns a Backend driving them.
// A GL context must already be current on the calling thread.
//
// Returns:
//   - Backend: the OpenGL backend
//   - error: error if the GL function pointers could not be loaded
func NewGLBackend() (Backend, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	return &glBackendImpl{}, nil
}

func (b *glBackendImpl) CreateBuffer() uint32 {
	var id uint32
	gl.GenBuffers(1, &id)
	return id
}

func (b *glBackendImpl) BufferData(target BufferTarget, id uint32, data []byte, usage BufferUsage) {
	t := glBufferTarget(target)
	gl.BindBuffer(t, id)
	var ptr unsafe.Pointer
	if len(data) > 0 {
		ptr = gl.Ptr(data)
	}
	gl.BufferData(t, len(data), ptr, glBufferUsage(usage))
}

func (b *glBackendImpl) BindBuffer(target BufferTarget, id uint32) {
	gl.BindBuffer(glBufferTarget(target), id)
}

func (b *glBackendImpl) DeleteBuffer(id uint32) {
	gl.DeleteBuffers(1, &id)
}

func (b *glBackendImpl) CreateVertexArray() uint32 {
	var id uint32
	gl.GenVertexArrays(1, &id)
	return id
}

func (b *glBackendImpl) BindVertexArray(id uint32) {
	gl.BindVertexArray(id)
}

func (b *glBackendImpl) DeleteVertexArray(id uint32) {
	gl.DeleteVertexArrays(1, &id)
}

func (b *glBackendImpl) VertexAttribPointer(index uint32, size int32, typ AttribType, normalized bool, stride int32, offset int) {
	switch typ {
	case AttribTypeInt:
		gl.VertexAttribIPointer(index, size, gl.INT, stride, gl.PtrOffset(offset))
	case AttribTypeBool:
		gl.VertexAttribIPointer(index, size, gl.UNSIGNED_BYTE, stride, gl.PtrOffset(offset))
	default:
		gl.VertexAttribPointerWithOffset(index, size, gl.FLOAT, normalized, stride, uintptr(offset))
	}
}

func (b *glBackendImpl) EnableVertexAttribArray(index uint32) {
	gl.EnableVertexAttribArray(index)
}

func (b *glBackendImpl) CompileShader(stage ShaderStage, source string) (uint32, string, bool) {
	shaderType := uint32(gl.VERTEX_SHADER)
	if stage == ShaderStageFragment {
		shaderType = gl.FRAGMENT_SHADER
	}

	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, strings.TrimRight(log, "\x00"), false
	}
	return shader, "", true
}

func (b *glBackendImpl) DeleteShader(id uint32) {
	gl.DeleteShader(id)
}

func (b *glBackendImpl) LinkProgram(vertex, fragment uint32) (uint32, string, bool) {
	program := gl.CreateProgram()
	gl.AttachShader(program, vertex)
	gl.AttachShader(program, fragment)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return 0, strings.TrimRight(log, "\x00"), false
	}

	gl.DetachShader(program, vertex)
	gl.DetachShader(program, fragment)
	return program, "", true
}

func (b *glBackendImpl) UseProgram(id uint32) {
	gl.UseProgram(id)
}

func (b *glBackendImpl) DeleteProgram(id uint32) {
	gl.DeleteProgram(id)
}

func (b *glBackendImpl) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (b *glBackendImpl) Uniform1i(location int32, v int32) {
	gl.Uniform1i(location, v)
}

func (b *glBackendImpl) Uniform1f(location int32, v float32) {
	gl.Uniform1f(location, v)
}

func (b *glBackendImpl) Uniform2f(location int32, x, y float32) {
	gl.Uniform2f(location, x, y)
}

func (b *glBackendImpl) Uniform3f(location int32, x, y, z float32) {
	gl.Uniform3f(location, x, y, z)
}

func (b *glBackendImpl) Uniform4f(location int32, x, y, z, w float32) {
	gl.Uniform4f(location, x, y, z, w)
}

func (b *glBackendImpl) UniformMatrix4fv(location int32, m [16]float32) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

func (b *glBackendImpl) CreateTexture(width, height int, pixels []byte) uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)

	var ptr unsafe.Pointer
	if len(pixels) > 0 {
		ptr = gl.Ptr(pixels)
	}
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, ptr)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return id
}

func (b *glBackendImpl) BindTexture(slot uint32, id uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + slot)
	gl.BindTexture(gl.TEXTURE_2D, id)
}

func (b *glBackendImpl) DeleteTexture(id uint32) {
	gl.DeleteTextures(1, &id)
}

func (b *glBackendImpl) CreateFramebuffer() uint32 {
	var id uint32
	gl.GenFramebuffers(1, &id)
	return id
}

func (b *glBackendImpl) BindFramebuffer(id uint32) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, id)
}

func (b *glBackendImpl) DeleteFramebuffer(id uint32) {
	gl.DeleteFramebuffers(1, &id)
}

func (b *glBackendImpl) CreateDepthStencilRenderbuffer(width, height int) uint32 {
	var id uint32
	gl.GenRenderbuffers(1, &id)
	gl.BindRenderbuffer(gl.RENDERBUFFER, id)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH24_STENCIL8, int32(width), int32(height))
	gl.BindRenderbuffer(gl.RENDERBUFFER, 0)
	return id
}

func (b *glBackendImpl) DeleteRenderbuffer(id uint32) {
	gl.DeleteRenderbuffers(1, &id)
}

func (b *glBackendImpl) AttachColorTexture(framebuffer, texture uint32) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, framebuffer)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, texture, 0)
}

func (b *glBackendImpl) AttachDepthStencil(framebuffer, renderbuffer uint32) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, framebuffer)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_STENCIL_ATTACHMENT, gl.RENDERBUFFER, renderbuffer)
}

func (b *glBackendImpl) CheckFramebuffer(framebuffer uint32) FramebufferStatus {
	gl.BindFramebuffer(gl.FRAMEBUFFER, framebuffer)
	switch gl.CheckFramebufferStatus(gl.FRAMEBUFFER) {
	case gl.FRAMEBUFFER_COMPLETE:
		return FramebufferComplete
	case gl.FRAMEBUFFER_INCOMPLETE_ATTACHMENT:
		return FramebufferIncompleteAttachment
	case gl.FRAMEBUFFER_INCOMPLETE_MISSING_ATTACHMENT:
		return FramebufferMissingAttachment
	case gl.FRAMEBUFFER_UNSUPPORTED:
		return FramebufferUnsupported
	default:
		return FramebufferStatusUnknown
	}
}

func (b *glBackendImpl) Enable(c Capability) {
	gl.Enable(glCapability(c))
}

func (b *glBackendImpl) Disable(c Capability) {
	gl.Disable(glCapability(c))
}

func (b *glBackendImpl) DepthMask(write bool) {
	gl.DepthMask(write)
}

func (b *glBackendImpl) BlendFunc(src, dst BlendFactor) {
	gl.BlendFunc(glBlendFactor(src), glBlendFactor(dst))
}

func (b *glBackendImpl) Viewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

func (b *glBackendImpl) ClearColor(r, g, bl, a float32) {
	gl.ClearColor(r, g, bl, a)
}

func (b *glBackendImpl) Clear(mask ClearMask) {
	var bits uint32
	if mask&ClearColor != 0 {
		bits |= gl.COLOR_BUFFER_BIT
	}
	if mask&ClearDepth != 0 {
		bits |= gl.DEPTH_BUFFER_BIT
	}
	if mask&ClearStencil != 0 {
		bits |= gl.STENCIL_BUFFER_BIT
	}
	gl.Clear(bits)
}

func (b *glBackendImpl) DrawElements(count int32) {
	gl.DrawElements(gl.TRIANGLES, count, gl.UNSIGNED_INT, gl.PtrOffset(0))
}

func glBufferTarget(t BufferTarget) uint32 {
	if t == BufferTargetElementArray {
		return gl.ELEMENT_ARRAY_BUFFER
	}
	return gl.ARRAY_BUFFER
}

func glBufferUsage(u BufferUsage) uint32 {
	if u == BufferUsageDynamic {
		return gl.DYNAMIC_DRAW
	}
	return gl.STATIC_DRAW
}

func glCapability(c Capability) uint32 {
	switch c {
	case CapabilityBlend:
		return gl.BLEND
	case CapabilityCullFace:
		return gl.CULL_FACE
	default:
		return gl.DEPTH_TEST
	}
}

func glBlendFactor(f BlendFactor) uint32 {
	switch f {
	case BlendFactorZero:
		return gl.ZERO
	case BlendFactorSrcAlpha:
		return gl.SRC_ALPHA
	case BlendFactorOneMinusSrcAlpha:
		return gl.ONE_MINUS_SRC_ALPHA
	default:
		return gl.ONE
	}
}
