// Package backend defines the GPU driver seam used by every resource wrapper and the render system.
// All GPU objects are referred to by the raw uint32 handles the driver hands out; a handle of 0 is
// never a live object.
package backend

// BackendType identifies the GPU API implementation behind a Backend.
type BackendType int

const (
	// BackendTypeGL selects the OpenGL 4.1 core backend.
	BackendTypeGL BackendType = iota
)

// BufferTarget selects the binding point for a GPU buffer.
type BufferTarget int

const (
	// BufferTargetArray binds vertex attribute data.
	BufferTargetArray BufferTarget = iota

	// BufferTargetElementArray binds index data.
	BufferTargetElementArray
)

// BufferUsage hints at how often a buffer's contents change.
type BufferUsage int

const (
	// BufferUsageStatic is for data uploaded once and drawn many times.
	BufferUsageStatic BufferUsage = iota

	// BufferUsageDynamic is for data updated repeatedly.
	BufferUsageDynamic
)

// AttribType is the scalar type of a vertex attribute component.
type AttribType int

const (
	// AttribTypeFloat is a 32-bit float component.
	AttribTypeFloat AttribType = iota

	// AttribTypeInt is a 32-bit signed integer component.
	AttribTypeInt

	// AttribTypeBool is a boolean component stored as a byte.
	AttribTypeBool
)

// ShaderStage identifies a programmable pipeline stage.
type ShaderStage int

const (
	// ShaderStageVertex is the vertex stage.
	ShaderStageVertex ShaderStage = iota

	// ShaderStageFragment is the fragment stage.
	ShaderStageFragment
)

// String returns the lower-case stage name used in diagnostics.
func (s ShaderStage) String() string {
	switch s {
	case ShaderStageVertex:
		return "vertex"
	case ShaderStageFragment:
		return "fragment"
	default:
		return "unknown"
	}
}

// Capability is a toggleable fixed-function pipeline state.
type Capability int

const (
	// CapabilityDepthTest enables depth testing.
	CapabilityDepthTest Capability = iota

	// CapabilityBlend enables color blending.
	CapabilityBlend

	// CapabilityCullFace enables back-face culling.
	CapabilityCullFace
)

// BlendFactor is a source or destination blend factor.
type BlendFactor int

const (
	BlendFactorOne BlendFactor = iota
	BlendFactorZero
	BlendFactorSrcAlpha
	BlendFactorOneMinusSrcAlpha
)

// FramebufferStatus is the completeness status reported for a framebuffer.
type FramebufferStatus int

const (
	// FramebufferComplete means the framebuffer can be rendered to.
	FramebufferComplete FramebufferStatus = iota

	// FramebufferIncompleteAttachment means an attachment is not attachment-complete.
	FramebufferIncompleteAttachment

	// FramebufferMissingAttachment means the framebuffer has no attachments.
	FramebufferMissingAttachment

	// FramebufferUnsupported means the attachment format combination is unsupported.
	FramebufferUnsupported

	// FramebufferStatusUnknown is any status the backend does not recognize.
	FramebufferStatusUnknown
)

// String returns a diagnostic name for the status.
func (s FramebufferStatus) String() string {
	switch s {
	case FramebufferComplete:
		return "complete"
	case FramebufferIncompleteAttachment:
		return "incomplete attachment"
	case FramebufferMissingAttachment:
		return "missing attachment"
	case FramebufferUnsupported:
		return "unsupported"
	default:
		return "unknown"
	}
}

// ClearMask selects which buffers Clear resets.
type ClearMask int

const (
	ClearColor ClearMask = 1 << iota
	ClearDepth
	ClearStencil
)

// Backend is the GPU driver interface. Implementations are not safe for concurrent use; every call
// must happen on the goroutine that owns the GPU context.
type Backend interface {
	// CreateBuffer allocates a buffer object.
	//
	// Returns:
	//   - uint32: the buffer handle
	CreateBuffer() uint32

	// BufferData binds the buffer to target and uploads data, replacing any previous storage.
	//
	// Parameters:
	//   - target: binding point
	//   - id: buffer handle
	//   - data: raw bytes to upload
	//   - usage: update frequency hint
	BufferData(target BufferTarget, id uint32, data []byte, usage BufferUsage)

	// BindBuffer binds a buffer (or 0 to unbind) to target.
	BindBuffer(target BufferTarget, id uint32)

	// DeleteBuffer frees a buffer object.
	DeleteBuffer(id uint32)

	// CreateVertexArray allocates a vertex array object.
	CreateVertexArray() uint32

	// BindVertexArray binds a vertex array (or 0 to unbind).
	BindVertexArray(id uint32)

	// DeleteVertexArray frees a vertex array object.
	DeleteVertexArray(id uint32)

	// VertexAttribPointer describes one attribute of the currently bound array buffer for the bound vertex array.
	//
	// Parameters:
	//   - index: attribute location
	//   - size: component count (1-4)
	//   - typ: component scalar type
	//   - normalized: whether integer data is normalized to [0, 1]
	//   - stride: byte distance between consecutive vertices
	//   - offset: byte offset of the attribute inside a vertex
	VertexAttribPointer(index uint32, size int32, typ AttribType, normalized bool, stride int32, offset int)

	// EnableVertexAttribArray enables the attribute at index for the bound vertex array.
	EnableVertexAttribArray(index uint32)

	// CompileShader creates and compiles one shader stage.
	//
	// Parameters:
	//   - stage: the pipeline stage
	//   - source: full source text
	//
	// Returns:
	//   - uint32: the stage handle (0 on failure)
	//   - string: the compiler info log when compilation fails
	//   - bool: true if compilation succeeded
	CompileShader(stage ShaderStage, source string) (uint32, string, bool)

	// DeleteShader frees a shader stage object.
	DeleteShader(id uint32)

	// LinkProgram links the given stages into a program. The stages may be deleted afterwards.
	//
	// Returns:
	//   - uint32: the program handle (0 on failure)
	//   - string: the linker info log when linking fails
	//   - bool: true if linking succeeded
	LinkProgram(vertex, fragment uint32) (uint32, string, bool)

	// UseProgram makes the program current (or 0 for none).
	UseProgram(id uint32)

	// DeleteProgram frees a program object.
	DeleteProgram(id uint32)

	// UniformLocation looks up a uniform by name.
	//
	// Returns:
	//   - int32: the location, or -1 if the program has no active uniform by that name
	UniformLocation(program uint32, name string) int32

	Uniform1i(location int32, v int32)
	Uniform1f(location int32, v float32)
	Uniform2f(location int32, x, y float32)
	Uniform3f(location int32, x, y, z float32)
	Uniform4f(location int32, x, y, z, w float32)
	UniformMatrix4fv(location int32, m [16]float32)

	// CreateTexture allocates an RGBA8 2D texture. A nil pixel slice allocates uninitialized storage.
	//
	// Parameters:
	//   - width, height: texture size in pixels
	//   - pixels: tightly packed RGBA rows or nil
	//
	// Returns:
	//   - uint32: the texture handle
	CreateTexture(width, height int, pixels []byte) uint32

	// BindTexture activates texture unit slot and binds the texture to it.
	BindTexture(slot uint32, id uint32)

	// DeleteTexture frees a texture object.
	DeleteTexture(id uint32)

	// CreateFramebuffer allocates a framebuffer object.
	CreateFramebuffer() uint32

	// BindFramebuffer binds a framebuffer for drawing (0 is the default framebuffer).
	BindFramebuffer(id uint32)

	// DeleteFramebuffer frees a framebuffer object.
	DeleteFramebuffer(id uint32)

	// CreateDepthStencilRenderbuffer allocates a 24/8 depth-stencil renderbuffer.
	CreateDepthStencilRenderbuffer(width, height int) uint32

	// DeleteRenderbuffer frees a renderbuffer object.
	DeleteRenderbuffer(id uint32)

	// AttachColorTexture attaches a texture as color attachment 0 of the framebuffer.
	AttachColorTexture(framebuffer, texture uint32)

	// AttachDepthStencil attaches a renderbuffer as the depth-stencil attachment of the framebuffer.
	AttachDepthStencil(framebuffer, renderbuffer uint32)

	// CheckFramebuffer reports the completeness of the framebuffer.
	CheckFramebuffer(framebuffer uint32) FramebufferStatus

	Enable(c Capability)
	Disable(c Capability)
	DepthMask(write bool)
	BlendFunc(src, dst BlendFactor)
	Viewport(x, y, width, height int)
	ClearColor(r, g, b, a float32)
	Clear(mask ClearMask)

	// DrawElements issues an indexed triangle-list draw using 32-bit indices from the bound vertex array.
	//
	// Parameters:
	//   - count: number of indices to draw
	DrawElements(count int32)
}
