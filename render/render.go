// Package render owns the GL objects used to draw the triangles and issues
// the per-frame GL calls.
package render

import (
	"fmt"
	"log"

	"golang.org/x/mobile/gl"

	"github.com/bmatsuo/mobile-gl-triangles/config"
	"github.com/bmatsuo/mobile-gl-triangles/geometry"
	"github.com/bmatsuo/mobile-gl-triangles/glprog"
	"github.com/bmatsuo/mobile-gl-triangles/shaders"
)

// ClearColor is the background drawn behind the triangles, opaque white.
var ClearColor = [4]float32{1, 1, 1, 1}

// attribLayout describes how one vertex attribute reads its buffer.
type attribLayout struct {
	size       int
	ty         gl.Enum
	normalized bool
}

var (
	positionLayout = attribLayout{size: geometry.PositionComponents, ty: gl.FLOAT}
	colorLayout    = attribLayout{size: geometry.ColorComponents, ty: gl.UNSIGNED_BYTE, normalized: true}
)

// vertexBuffer pairs a GL buffer with the attribute that reads it and the
// constant data it holds.
type vertexBuffer struct {
	name   string
	buf    gl.Buffer
	attrib gl.Attrib
	layout attribLayout
	data   []byte
}

// Renderer holds the context, program and buffers for the lifetime of a
// visible surface.  It is used from a single goroutine.
type Renderer struct {
	glctx gl.Context
	opts  config.Options
	log   *log.Logger

	vertexShader   gl.Shader
	fragmentShader gl.Shader
	program        gl.Program

	position vertexBuffer
	color    vertexBuffer

	frames uint64
	err    error // first error checked since the last flush
}

// New compiles and links vs and fs, then creates and fills the position and
// color buffers.  Any failure is logged and returned; GL objects created
// before the failure are released.
func New(glctx gl.Context, vs, fs glprog.Source, opts config.Options, logger *log.Logger) (*Renderer, error) {
	if logger == nil {
		logger = log.Default()
	}
	r := &Renderer{glctx: glctx, opts: opts, log: logger}
	c := glprog.NewCompiler(glctx, logger)

	var err error
	r.vertexShader, err = c.CompileSource(vs)
	if err != nil {
		return nil, r.halt(err)
	}
	r.fragmentShader, err = c.CompileSource(fs)
	if err != nil {
		glctx.DeleteShader(r.vertexShader)
		return nil, r.halt(err)
	}
	r.program, err = c.Link(r.vertexShader, r.fragmentShader)
	if err != nil {
		glctx.DeleteShader(r.vertexShader)
		glctx.DeleteShader(r.fragmentShader)
		return nil, r.halt(err)
	}
	r.checked("LinkProgram")
	if opts.ReleaseShadersAfterLink {
		r.releaseShaders()
	}

	r.position = vertexBuffer{
		name:   shaders.PositionAttrib,
		buf:    glctx.CreateBuffer(),
		attrib: glctx.GetAttribLocation(r.program, shaders.PositionAttrib),
		layout: positionLayout,
		data:   geometry.PositionData(),
	}
	r.color = vertexBuffer{
		name:   shaders.ColorAttrib,
		buf:    glctx.CreateBuffer(),
		attrib: glctx.GetAttribLocation(r.program, shaders.ColorAttrib),
		layout: colorLayout,
		data:   geometry.Colors(),
	}
	r.upload(&r.position)
	r.upload(&r.color)

	if opts.Validate {
		if err := r.flush(); err != nil {
			r.Release()
			return nil, r.halt(err)
		}
	}
	return r, nil
}

func (r *Renderer) halt(err error) error {
	r.log.Printf("startup halted: %v", err)
	return err
}

// upload replaces the contents of b's GL buffer with b.data and points b's
// attribute at it.
func (r *Renderer) upload(b *vertexBuffer) {
	r.glctx.BindBuffer(gl.ARRAY_BUFFER, b.buf)
	r.checked("BindBuffer(" + b.name + ")")
	r.glctx.BufferData(gl.ARRAY_BUFFER, b.data, gl.STATIC_DRAW)
	r.checked("BufferData(" + b.name + ")")
	r.bind(b)
}

// bind enables b's attribute and sets a tightly packed descriptor for it.
func (r *Renderer) bind(b *vertexBuffer) {
	r.glctx.BindBuffer(gl.ARRAY_BUFFER, b.buf)
	r.checked("BindBuffer(" + b.name + ")")
	r.glctx.EnableVertexAttribArray(b.attrib)
	r.checked("EnableVertexAttribArray(" + b.name + ")")
	r.glctx.VertexAttribPointer(b.attrib, b.layout.size, b.layout.ty, b.layout.normalized, 0, 0)
	r.checked("VertexAttribPointer(" + b.name + ")")
}

// RenderFrame draws one complete frame: make the program current, clear,
// bind (or upload) the vertex buffers and one DrawArrays of all vertices as
// a triangle list.  The program is made current on every frame because other
// drawing on the same context, such as the FPS overlay, may change it.
//
// GL errors are only checked when the Validate option is set.  The error
// queue is then checked after every GL call and the first error is returned,
// naming the call that raised it.  The frame is still drawn to the end.
// Otherwise RenderFrame always returns nil.
func (r *Renderer) RenderFrame() error {
	r.frames++
	r.glctx.UseProgram(r.program)
	r.checked("UseProgram")
	r.glctx.ClearColor(ClearColor[0], ClearColor[1], ClearColor[2], ClearColor[3])
	r.checked("ClearColor")
	r.glctx.ClearDepthf(1)
	r.checked("ClearDepthf")
	r.glctx.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	r.checked("Clear")

	if r.opts.UploadEveryFrame {
		r.upload(&r.position)
		r.upload(&r.color)
	} else {
		r.bind(&r.position)
		r.bind(&r.color)
	}

	r.glctx.DrawArrays(gl.TRIANGLES, 0, geometry.VertexCount)
	r.checked("DrawArrays")
	return r.flush()
}

// Program returns the linked program drawn with.
func (r *Renderer) Program() gl.Program {
	return r.program
}

// Frames returns the number of RenderFrame calls made so far.
func (r *Renderer) Frames() uint64 {
	return r.frames
}

// Viewport sets the GL viewport to cover a surface of the given pixel size.
func (r *Renderer) Viewport(widthPx, heightPx int) {
	r.glctx.Viewport(0, 0, widthPx, heightPx)
}

// checked records the first GL error raised by op when validating.
func (r *Renderer) checked(op string) {
	if !r.opts.Validate {
		return
	}
	if err := r.check(op); err != nil && r.err == nil {
		r.err = err
	}
}

func (r *Renderer) flush() error {
	err := r.err
	r.err = nil
	return err
}

// check drains the GL error queue and reports the first error found.
func (r *Renderer) check(op string) error {
	var first gl.Enum
	for i := 0; i < maxErrors; i++ {
		e := r.glctx.GetError()
		if e == gl.NO_ERROR {
			break
		}
		if first == gl.NO_ERROR {
			first = e
		}
	}
	if first != gl.NO_ERROR {
		return &GLError{Op: op, Code: first}
	}
	return nil
}

// maxErrors bounds the error queue drain in case a driver keeps reporting.
const maxErrors = 16

// GLError is a GL error code observed in validation mode.
type GLError struct {
	Op   string
	Code gl.Enum
}

func (e *GLError) Error() string {
	return fmt.Sprintf("gl error after %s: %s (0x%04x)", e.Op, errorName(e.Code), uint32(e.Code))
}

func errorName(code gl.Enum) string {
	switch code {
	case gl.INVALID_ENUM:
		return "INVALID_ENUM"
	case gl.INVALID_VALUE:
		return "INVALID_VALUE"
	case gl.INVALID_OPERATION:
		return "INVALID_OPERATION"
	case gl.OUT_OF_MEMORY:
		return "OUT_OF_MEMORY"
	case gl.INVALID_FRAMEBUFFER_OPERATION:
		return "INVALID_FRAMEBUFFER_OPERATION"
	default:
		return "unknown"
	}
}

func (r *Renderer) releaseShaders() {
	if r.vertexShader.Value != 0 {
		r.glctx.DeleteShader(r.vertexShader)
		r.vertexShader = gl.Shader{}
	}
	if r.fragmentShader.Value != 0 {
		r.glctx.DeleteShader(r.fragmentShader)
		r.fragmentShader = gl.Shader{}
	}
}

// Release deletes the program and buffers.  Shaders retained after linking
// are deleted as well.  The Renderer must not be used afterwards.
func (r *Renderer) Release() {
	r.glctx.DeleteProgram(r.program)
	r.glctx.DeleteBuffer(r.position.buf)
	r.glctx.DeleteBuffer(r.color.buf)
	r.releaseShaders()
}
