// Package backendtest provides an in-memory backend.Backend that records every call and tracks
// handle lifetimes, so resource wrappers and the render system can be tested without a GPU.
package backendtest

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/backend"
)

// Resource identifies a kind of GPU object the Recorder hands out handles for.
type Resource int

const (
	ResourceBuffer Resource = iota
	ResourceVertexArray
	ResourceShader
	ResourceProgram
	ResourceTexture
	ResourceFramebuffer
	ResourceRenderbuffer
)

// Call is one recorded backend invocation.
type Call struct {
	// Op is the backend method name, e.g. "DrawElements".
	Op string

	// Handle is the primary object handle the call acted on, if any.
	Handle uint32

	// Uniform is the uniform name for Uniform* calls, resolved from the location.
	Uniform string

	// Value carries the call's payload: uniform values, counts, slots, capabilities.
	Value any
}

type uniformKey struct {
	program uint32
	name    string
}

// Recorder is a backend.Backend test double. Handles start at 1 and increase monotonically across
// every resource kind. The zero value is not usable; construct with New.
type Recorder struct {
	mu *sync.Mutex

	next    uint32
	live    map[Resource]map[uint32]struct{}
	created map[Resource]int
	deleted map[Resource]int
	calls   []Call

	failCompile map[backend.ShaderStage]string
	failLink    string
	fbStatus    backend.FramebufferStatus
	hidden      map[string]bool

	locations   map[uniformKey]int32
	locNames    map[int32]uniformKey
	nextLoc     int32
	uniforms    map[uniformKey]any
	program     uint32
	vertexArray uint32
	framebuffer uint32
	viewport    [4]int
	depthWrite  bool
	enabled     map[backend.Capability]bool
	textures    map[uint32]uint32
}

var _ backend.Backend = &Recorder{}

// New creates an empty Recorder with depth writes enabled and a complete framebuffer status.
func New() *Recorder {
	return &Recorder{
		mu:          &sync.Mutex{},
		live:        make(map[Resource]map[uint32]struct{}),
		created:     make(map[Resource]int),
		deleted:     make(map[Resource]int),
		failCompile: make(map[backend.ShaderStage]string),
		hidden:      make(map[string]bool),
		locations:   make(map[uniformKey]int32),
		locNames:    make(map[int32]uniformKey),
		uniforms:    make(map[uniformKey]any),
		enabled:     make(map[backend.Capability]bool),
		textures:    make(map[uint32]uint32),
		fbStatus:    backend.FramebufferComplete,
		depthWrite:  true,
	}
}

// FailCompile makes every following compile of stage fail with the given info log.
func (r *Recorder) FailCompile(stage backend.ShaderStage, log string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failCompile[stage] = log
}

// FailLink makes every following program link fail with the given info log.
func (r *Recorder) FailLink(log string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failLink = log
}

// SetFramebufferStatus sets the status CheckFramebuffer reports.
func (r *Recorder) SetFramebufferStatus(status backend.FramebufferStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fbStatus = status
}

// HideUniform makes UniformLocation return -1 for name on every program.
func (r *Recorder) HideUniform(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hidden[name] = true
}

// Calls returns a copy of the recorded call log.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}

// Ops returns the recorded operation names in call order, filtered to the given names when any are passed.
func (r *Recorder) Ops(filter ...string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	keep := make(map[string]bool, len(filter))
	for _, f := range filter {
		keep[f] = true
	}
	out := make([]string, 0, len(r.calls))
	for _, c := range r.calls {
		if len(keep) == 0 || keep[c.Op] {
			out = append(out, c.Op)
		}
	}
	return out
}

// Count returns how many times op was called.
func (r *Recorder) Count(op string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

// UniformUploads returns how many values were uploaded to the uniform name across all programs.
func (r *Recorder) UniformUploads(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.calls {
		if c.Uniform == name {
			n++
		}
	}
	return n
}

// Uniform returns the last value uploaded to name while program was current.
func (r *Recorder) Uniform(program uint32, name string) (any, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.uniforms[uniformKey{program, name}]
	return v, ok
}

// ResetCalls clears the call log but keeps handles and state.
func (r *Recorder) ResetCalls() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}

// Live returns the number of handles of kind that were created and not yet deleted.
func (r *Recorder) Live(kind Resource) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.live[kind])
}

// Created returns the number of handles of kind ever created.
func (r *Recorder) Created(kind Resource) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.created[kind]
}

// Deleted returns the number of delete calls for kind, including deletes of unknown handles.
func (r *Recorder) Deleted(kind Resource) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.deleted[kind]
}

// TotalLive returns the number of live handles across every resource kind.
func (r *Recorder) TotalLive() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, m := range r.live {
		n += len(m)
	}
	return n
}

// CurrentProgram returns the program bound by the last UseProgram.
func (r *Recorder) CurrentProgram() uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.program
}

// CurrentFramebuffer returns the framebuffer bound by the last BindFramebuffer.
func (r *Recorder) CurrentFramebuffer() uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.framebuffer
}

// CurrentViewport returns the last viewport rectangle as x, y, width, height.
func (r *Recorder) CurrentViewport() [4]int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.viewport
}

// DepthWrite reports the current depth mask.
func (r *Recorder) DepthWrite() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.depthWrite
}

// Enabled reports whether a capability is currently enabled.
func (r *Recorder) Enabled(c backend.Capability) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.enabled[c]
}

// TextureAt returns the texture bound to slot.
func (r *Recorder) TextureAt(slot uint32) uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.textures[slot]
}

// alloc hands out the next handle for kind. Caller must hold the mutex.
func (r *Recorder) alloc(kind Resource) uint32 {
	r.next++
	if r.live[kind] == nil {
		r.live[kind] = make(map[uint32]struct{})
	}
	r.live[kind][r.next] = struct{}{}
	r.created[kind]++
	return r.next
}

// free forgets a handle of kind. Caller must hold the mutex.
func (r *Recorder) free(kind Resource, id uint32) {
	r.deleted[kind]++
	delete(r.live[kind], id)
}

// record appends a call. Caller must hold the mutex.
func (r *Recorder) record(op string, handle uint32, value any) {
	r.calls = append(r.calls, Call{Op: op, Handle: handle, Value: value})
}

// recordUniform appends a uniform upload and remembers its value. Caller must hold the mutex.
func (r *Recorder) recordUniform(op string, location int32, value any) {
	key, ok := r.locNames[location]
	if !ok {
		key = uniformKey{program: r.program, name: fmt.Sprintf("<location %d>", location)}
	}
	r.calls = append(r.calls, Call{Op: op, Handle: key.program, Uniform: key.name, Value: value})
	r.uniforms[key] = value
}

func (r *Recorder) CreateBuffer() uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.alloc(ResourceBuffer)
	r.record("CreateBuffer", id, nil)
	return id
}

func (r *Recorder) BufferData(target backend.BufferTarget, id uint32, data []byte, usage backend.BufferUsage) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("BufferData", id, len(data))
}

func (r *Recorder) BindBuffer(target backend.BufferTarget, id uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("BindBuffer", id, target)
}

func (r *Recorder) DeleteBuffer(id uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.free(ResourceBuffer, id)
	r.record("DeleteBuffer", id, nil)
}

func (r *Recorder) CreateVertexArray() uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.alloc(ResourceVertexArray)
	r.record("CreateVertexArray", id, nil)
	return id
}

func (r *Recorder) BindVertexArray(id uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.vertexArray = id
	r.record("BindVertexArray", id, nil)
}

func (r *Recorder) DeleteVertexArray(id uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.free(ResourceVertexArray, id)
	r.record("DeleteVertexArray", id, nil)
}

// AttribPointer is the Value recorded for VertexAttribPointer calls.
type AttribPointer struct {
	Index      uint32
	Size       int32
	Type       backend.AttribType
	Normalized bool
	Stride     int32
	Offset     int
}

func (r *Recorder) VertexAttribPointer(index uint32, size int32, typ backend.AttribType, normalized bool, stride int32, offset int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("VertexAttribPointer", r.vertexArray, AttribPointer{
		Index: index, Size: size, Type: typ, Normalized: normalized, Stride: stride, Offset: offset,
	})
}

func (r *Recorder) EnableVertexAttribArray(index uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("EnableVertexAttribArray", r.vertexArray, index)
}

func (r *Recorder) CompileShader(stage backend.ShaderStage, source string) (uint32, string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if log, ok := r.failCompile[stage]; ok {
		// glCreateShader succeeds and the failed object is deleted by the driver wrapper
		id := r.alloc(ResourceShader)
		r.free(ResourceShader, id)
		r.record("CompileShader", 0, stage)
		return 0, log, false
	}
	id := r.alloc(ResourceShader)
	r.record("CompileShader", id, stage)
	return id, "", true
}

func (r *Recorder) DeleteShader(id uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.free(ResourceShader, id)
	r.record("DeleteShader", id, nil)
}

func (r *Recorder) LinkProgram(vertex, fragment uint32) (uint32, string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failLink != "" {
		id := r.alloc(ResourceProgram)
		r.free(ResourceProgram, id)
		r.record("LinkProgram", 0, nil)
		return 0, r.failLink, false
	}
	id := r.alloc(ResourceProgram)
	r.record("LinkProgram", id, nil)
	return id, "", true
}

func (r *Recorder) UseProgram(id uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.program = id
	r.record("UseProgram", id, nil)
}

func (r *Recorder) DeleteProgram(id uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.free(ResourceProgram, id)
	r.record("DeleteProgram", id, nil)
}

func (r *Recorder) UniformLocation(program uint32, name string) int32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("UniformLocation", program, name)
	if r.hidden[name] {
		return -1
	}
	key := uniformKey{program, name}
	if loc, ok := r.locations[key]; ok {
		return loc
	}
	loc := r.nextLoc
	r.nextLoc++
	r.locations[key] = loc
	r.locNames[loc] = key
	return loc
}

func (r *Recorder) Uniform1i(location int32, v int32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recordUniform("Uniform1i", location, v)
}

func (r *Recorder) Uniform1f(location int32, v float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recordUniform("Uniform1f", location, v)
}

func (r *Recorder) Uniform2f(location int32, x, y float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recordUniform("Uniform2f", location, [2]float32{x, y})
}

func (r *Recorder) Uniform3f(location int32, x, y, z float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recordUniform("Uniform3f", location, [3]float32{x, y, z})
}

func (r *Recorder) Uniform4f(location int32, x, y, z, w float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recordUniform("Uniform4f", location, [4]float32{x, y, z, w})
}

func (r *Recorder) UniformMatrix4fv(location int32, m [16]float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recordUniform("UniformMatrix4fv", location, m)
}

// TextureSize is the Value recorded for CreateTexture and CreateDepthStencilRenderbuffer calls.
type TextureSize struct {
	Width, Height int
	HasPixels     bool
}

func (r *Recorder) CreateTexture(width, height int, pixels []byte) uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.alloc(ResourceTexture)
	r.record("CreateTexture", id, TextureSize{Width: width, Height: height, HasPixels: pixels != nil})
	return id
}

func (r *Recorder) BindTexture(slot uint32, id uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.textures[slot] = id
	r.record("BindTexture", id, slot)
}

func (r *Recorder) DeleteTexture(id uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.free(ResourceTexture, id)
	r.record("DeleteTexture", id, nil)
}

func (r *Recorder) CreateFramebuffer() uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.alloc(ResourceFramebuffer)
	r.record("CreateFramebuffer", id, nil)
	return id
}

func (r *Recorder) BindFramebuffer(id uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.framebuffer = id
	r.record("BindFramebuffer", id, nil)
}

func (r *Recorder) DeleteFramebuffer(id uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.free(ResourceFramebuffer, id)
	r.record("DeleteFramebuffer", id, nil)
}

func (r *Recorder) CreateDepthStencilRenderbuffer(width, height int) uint32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.alloc(ResourceRenderbuffer)
	r.record("CreateDepthStencilRenderbuffer", id, TextureSize{Width: width, Height: height})
	return id
}

func (r *Recorder) DeleteRenderbuffer(id uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.free(ResourceRenderbuffer, id)
	r.record("DeleteRenderbuffer", id, nil)
}

func (r *Recorder) AttachColorTexture(framebuffer, texture uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("AttachColorTexture", framebuffer, texture)
}

func (r *Recorder) AttachDepthStencil(framebuffer, renderbuffer uint32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("AttachDepthStencil", framebuffer, renderbuffer)
}

func (r *Recorder) CheckFramebuffer(framebuffer uint32) backend.FramebufferStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("CheckFramebuffer", framebuffer, r.fbStatus)
	return r.fbStatus
}

func (r *Recorder) Enable(c backend.Capability) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enabled[c] = true
	r.record("Enable", 0, c)
}

func (r *Recorder) Disable(c backend.Capability) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enabled[c] = false
	r.record("Disable", 0, c)
}

func (r *Recorder) DepthMask(write bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.depthWrite = write
	r.record("DepthMask", 0, write)
}

func (r *Recorder) BlendFunc(src, dst backend.BlendFactor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("BlendFunc", 0, [2]backend.BlendFactor{src, dst})
}

func (r *Recorder) Viewport(x, y, width, height int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.viewport = [4]int{x, y, width, height}
	r.record("Viewport", 0, r.viewport)
}

func (r *Recorder) ClearColor(red, green, blue, alpha float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("ClearColor", 0, [4]float32{red, green, blue, alpha})
}

func (r *Recorder) Clear(mask backend.ClearMask) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("Clear", 0, mask)
}

func (r *Recorder) DrawElements(count int32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.record("DrawElements", r.vertexArray, count)
}
