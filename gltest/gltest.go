// Package gltest provides a recording gl.Context for tests that exercise GL
// call sequences without a GPU.
//
// Context implements the subset of gl.Context used by this module.  Calling
// any other method panics through the nil embedded interface, which makes
// an unexpected GL call fail the test loudly.
package gltest

import (
	"fmt"

	"golang.org/x/mobile/gl"
)

// Call is a single recorded GL call.
type Call struct {
	Name string
	Args []interface{}
}

func (c Call) String() string {
	return fmt.Sprintf("%s%v", c.Name, c.Args)
}

// Context is a fake gl.Context.  The zero value compiles and links every
// shader successfully.
type Context struct {
	gl.Context

	// CompileLog, if set, is consulted by CompileShader.  A non-empty
	// result marks compilation as failed with that info log.
	CompileLog func(ty gl.Enum, src string) string

	// LinkLog, if non-empty, fails every link with the given info log.
	LinkLog string

	// NoShaders and NoPrograms make CreateShader and CreateProgram return
	// zero handles.
	NoShaders  bool
	NoPrograms bool

	// Errors is drained by GetError, one value per call.
	Errors []gl.Enum

	// ErrorAfter queues an error each time a call with the given name is
	// made.
	ErrorAfter map[string]gl.Enum

	Calls []Call

	next     uint32
	shaders  map[uint32]*shader
	programs map[uint32]*program
	buffers  map[uint32][]byte
	textures map[uint32]bool
	bound    gl.Buffer
	current  gl.Program
	enabled  map[gl.Enum]bool
	draws    []Draw
}

// Draw is a DrawArrays call together with the program current at the time.
type Draw struct {
	Mode    gl.Enum
	First   int
	Count   int
	Program gl.Program
}

type shader struct {
	ty       gl.Enum
	src      string
	log      string
	compiled bool
}

type program struct {
	shaders []uint32
	linked  bool
	log     string
}

func (c *Context) record(name string, args ...interface{}) {
	c.Calls = append(c.Calls, Call{Name: name, Args: args})
	if e, ok := c.ErrorAfter[name]; ok {
		c.Errors = append(c.Errors, e)
	}
}

func (c *Context) handle() uint32 {
	c.next++
	return c.next
}

func (c *Context) init() {
	if c.shaders == nil {
		c.shaders = map[uint32]*shader{}
		c.programs = map[uint32]*program{}
		c.buffers = map[uint32][]byte{}
		c.textures = map[uint32]bool{}
		c.enabled = map[gl.Enum]bool{}
	}
}

func (c *Context) CreateShader(ty gl.Enum) gl.Shader {
	c.init()
	c.record("CreateShader", ty)
	if c.NoShaders {
		return gl.Shader{}
	}
	s := gl.Shader{Value: c.handle()}
	c.shaders[s.Value] = &shader{ty: ty}
	return s
}

func (c *Context) ShaderSource(s gl.Shader, src string) {
	c.record("ShaderSource", s, src)
	if sh, ok := c.shaders[s.Value]; ok {
		sh.src = src
	}
}

func (c *Context) CompileShader(s gl.Shader) {
	c.record("CompileShader", s)
	sh, ok := c.shaders[s.Value]
	if !ok {
		return
	}
	sh.log = ""
	if c.CompileLog != nil {
		sh.log = c.CompileLog(sh.ty, sh.src)
	}
	sh.compiled = sh.log == ""
}

func (c *Context) GetShaderi(s gl.Shader, pname gl.Enum) int {
	c.record("GetShaderi", s, pname)
	sh, ok := c.shaders[s.Value]
	if ok && pname == gl.COMPILE_STATUS && sh.compiled {
		return 1
	}
	return 0
}

func (c *Context) GetShaderInfoLog(s gl.Shader) string {
	c.record("GetShaderInfoLog", s)
	if sh, ok := c.shaders[s.Value]; ok {
		return sh.log
	}
	return ""
}

func (c *Context) DeleteShader(s gl.Shader) {
	c.record("DeleteShader", s)
	delete(c.shaders, s.Value)
}

func (c *Context) CreateProgram() gl.Program {
	c.init()
	c.record("CreateProgram")
	if c.NoPrograms {
		return gl.Program{}
	}
	p := gl.Program{Init: true, Value: c.handle()}
	c.programs[p.Value] = &program{}
	return p
}

func (c *Context) AttachShader(p gl.Program, s gl.Shader) {
	c.record("AttachShader", p, s)
	if prog, ok := c.programs[p.Value]; ok {
		prog.shaders = append(prog.shaders, s.Value)
	}
}

func (c *Context) LinkProgram(p gl.Program) {
	c.record("LinkProgram", p)
	prog, ok := c.programs[p.Value]
	if !ok {
		return
	}
	prog.log = c.LinkLog
	prog.linked = c.LinkLog == ""
}

func (c *Context) GetProgrami(p gl.Program, pname gl.Enum) int {
	c.record("GetProgrami", p, pname)
	prog, ok := c.programs[p.Value]
	if ok && pname == gl.LINK_STATUS && prog.linked {
		return 1
	}
	return 0
}

func (c *Context) GetProgramInfoLog(p gl.Program) string {
	c.record("GetProgramInfoLog", p)
	if prog, ok := c.programs[p.Value]; ok {
		return prog.log
	}
	return ""
}

func (c *Context) DeleteProgram(p gl.Program) {
	c.record("DeleteProgram", p)
	delete(c.programs, p.Value)
}

func (c *Context) UseProgram(p gl.Program) {
	c.record("UseProgram", p)
	c.current = p
}

// attribute locations are assigned by name in declaration order
var attribs = map[string]uint{"a_Pos": 0, "a_Col": 1}

func (c *Context) GetAttribLocation(p gl.Program, name string) gl.Attrib {
	c.record("GetAttribLocation", p, name)
	return gl.Attrib{Value: attribs[name]}
}

func (c *Context) CreateBuffer() gl.Buffer {
	c.init()
	c.record("CreateBuffer")
	b := gl.Buffer{Value: c.handle()}
	c.buffers[b.Value] = nil
	return b
}

func (c *Context) BindBuffer(target gl.Enum, b gl.Buffer) {
	c.record("BindBuffer", target, b)
	c.bound = b
}

func (c *Context) BufferData(target gl.Enum, src []byte, usage gl.Enum) {
	c.init()
	c.record("BufferData", target, len(src), usage)
	c.buffers[c.bound.Value] = append([]byte(nil), src...)
}

func (c *Context) DeleteBuffer(b gl.Buffer) {
	c.record("DeleteBuffer", b)
	delete(c.buffers, b.Value)
}

func (c *Context) EnableVertexAttribArray(a gl.Attrib) {
	c.record("EnableVertexAttribArray", a)
}

func (c *Context) DisableVertexAttribArray(a gl.Attrib) {
	c.record("DisableVertexAttribArray", a)
}

func (c *Context) VertexAttribPointer(dst gl.Attrib, size int, ty gl.Enum, normalized bool, stride, offset int) {
	c.record("VertexAttribPointer", dst, size, ty, normalized, stride, offset)
}

func (c *Context) ClearColor(red, green, blue, alpha float32) {
	c.record("ClearColor", red, green, blue, alpha)
}

func (c *Context) ClearDepthf(d float32) {
	c.record("ClearDepthf", d)
}

func (c *Context) Clear(mask gl.Enum) {
	c.record("Clear", mask)
}

func (c *Context) DrawArrays(mode gl.Enum, first, count int) {
	c.record("DrawArrays", mode, first, count)
	c.draws = append(c.draws, Draw{Mode: mode, First: first, Count: count, Program: c.current})
}

// uniform locations are assigned in order of first lookup
func (c *Context) GetUniformLocation(p gl.Program, name string) gl.Uniform {
	c.record("GetUniformLocation", p, name)
	return gl.Uniform{Value: int32(c.handle())}
}

func (c *Context) Uniform1i(dst gl.Uniform, v int) {
	c.record("Uniform1i", dst, v)
}

func (c *Context) UniformMatrix3fv(dst gl.Uniform, src []float32) {
	c.record("UniformMatrix3fv", dst, len(src))
}

func (c *Context) CreateTexture() gl.Texture {
	c.init()
	c.record("CreateTexture")
	t := gl.Texture{Value: c.handle()}
	c.textures[t.Value] = true
	return t
}

func (c *Context) DeleteTexture(t gl.Texture) {
	c.record("DeleteTexture", t)
	delete(c.textures, t.Value)
}

func (c *Context) ActiveTexture(texture gl.Enum) {
	c.record("ActiveTexture", texture)
}

func (c *Context) BindTexture(target gl.Enum, t gl.Texture) {
	c.record("BindTexture", target, t)
}

func (c *Context) TexImage2D(target gl.Enum, level int, internalFormat int, width, height int, format gl.Enum, ty gl.Enum, data []byte) {
	c.record("TexImage2D", target, level, width, height)
}

func (c *Context) TexSubImage2D(target gl.Enum, level int, x, y, width, height int, format, ty gl.Enum, data []byte) {
	c.record("TexSubImage2D", target, level, width, height)
}

func (c *Context) TexParameteri(target, pname gl.Enum, param int) {
	c.record("TexParameteri", target, pname, param)
}

func (c *Context) BlendFunc(sfactor, dfactor gl.Enum) {
	c.record("BlendFunc", sfactor, dfactor)
}

func (c *Context) Enable(cap gl.Enum) {
	c.init()
	c.record("Enable", cap)
	c.enabled[cap] = true
}

func (c *Context) Disable(cap gl.Enum) {
	c.init()
	c.record("Disable", cap)
	delete(c.enabled, cap)
}

func (c *Context) IsEnabled(cap gl.Enum) bool {
	c.record("IsEnabled", cap)
	return c.enabled[cap]
}

func (c *Context) Viewport(x, y, width, height int) {
	c.record("Viewport", x, y, width, height)
}

func (c *Context) GetError() gl.Enum {
	c.record("GetError")
	if len(c.Errors) == 0 {
		return gl.NO_ERROR
	}
	e := c.Errors[0]
	c.Errors = c.Errors[1:]
	return e
}

// Count returns the number of recorded calls named name.
func (c *Context) Count(name string) int {
	n := 0
	for _, call := range c.Calls {
		if call.Name == name {
			n++
		}
	}
	return n
}

// Find returns the recorded calls named name, in order.
func (c *Context) Find(name string) []Call {
	var calls []Call
	for _, call := range c.Calls {
		if call.Name == name {
			calls = append(calls, call)
		}
	}
	return calls
}

// Reset forgets recorded calls but keeps GL object state.
func (c *Context) Reset() {
	c.Calls = nil
	c.draws = nil
}

// LiveShaders returns the number of shaders created and not deleted.
func (c *Context) LiveShaders() int { return len(c.shaders) }

// LivePrograms returns the number of programs created and not deleted.
func (c *Context) LivePrograms() int { return len(c.programs) }

// LiveBuffers returns the number of buffers created and not deleted.
func (c *Context) LiveBuffers() int { return len(c.buffers) }

// BufferContents returns the data last uploaded to b.
func (c *Context) BufferContents(b gl.Buffer) []byte { return c.buffers[b.Value] }

// LiveTextures returns the number of textures created and not deleted.
func (c *Context) LiveTextures() int { return len(c.textures) }

// Draws returns every DrawArrays call made, in order.
func (c *Context) Draws() []Draw { return c.draws }

// Current returns the program last passed to UseProgram.
func (c *Context) Current() gl.Program { return c.current }

var _ gl.Context = (*Context)(nil)
