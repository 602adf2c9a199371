package glprog

import (
	"fmt"
	"log"
	"strings"

	"golang.org/x/mobile/gl"
)

// noInfoLog stands in for an empty driver log so that a failure is never
// reported without a diagnostic.
const noInfoLog = "(driver returned no info log)"

// Compiler builds shaders and programs on a single gl.Context.
type Compiler struct {
	glctx gl.Context
	log   *log.Logger
}

// NewCompiler returns a Compiler for glctx.  If logger is nil log.Default()
// is used.
func NewCompiler(glctx gl.Context, logger *log.Logger) *Compiler {
	if logger == nil {
		logger = log.Default()
	}
	return &Compiler{glctx: glctx, log: logger}
}

// Compile creates a shader for stage and compiles src into it.  When
// compilation fails the shader is deleted before returning so that no
// handle is leaked.
func (c *Compiler) Compile(stage Stage, src string) (gl.Shader, error) {
	if !stage.Valid() {
		return gl.Shader{}, fmt.Errorf("%v: %w", stage, ErrInvalidStage)
	}
	if strings.TrimSpace(src) == "" {
		return gl.Shader{}, fmt.Errorf("%s shader: %w", stage, ErrEmptySource)
	}

	shader := c.glctx.CreateShader(stage.shaderType())
	if shader.Value == 0 {
		return gl.Shader{}, fmt.Errorf("%s shader: %w", stage, ErrAllocation)
	}

	c.glctx.ShaderSource(shader, src)
	c.glctx.CompileShader(shader)
	if c.glctx.GetShaderi(shader, gl.COMPILE_STATUS) == 0 {
		err := &Error{Kind: ErrCompile, Stage: stage, Log: infoLog(c.glctx.GetShaderInfoLog(shader))}
		c.glctx.DeleteShader(shader)
		c.log.Printf("error compiling %s shader: %s", stage, err.Log)
		return gl.Shader{}, err
	}
	return shader, nil
}

// CompileSource is like Compile but takes the stage from src.
func (c *Compiler) CompileSource(src Source) (gl.Shader, error) {
	return c.Compile(src.Stage, src.Text)
}

// Link attaches vs and fs to a new program and links it.  On success the
// program is made current with UseProgram and stays current until another
// program is used.  On failure the program is deleted.  The shaders are
// never deleted by Link.
func (c *Compiler) Link(vs, fs gl.Shader) (gl.Program, error) {
	if vs.Value == 0 || fs.Value == 0 {
		return gl.Program{}, ErrInvalidShader
	}

	program := c.glctx.CreateProgram()
	if program.Value == 0 {
		return gl.Program{}, fmt.Errorf("program: %w", ErrAllocation)
	}

	c.glctx.AttachShader(program, vs)
	c.glctx.AttachShader(program, fs)
	c.glctx.LinkProgram(program)
	if c.glctx.GetProgrami(program, gl.LINK_STATUS) == 0 {
		err := &Error{Kind: ErrLink, Log: infoLog(c.glctx.GetProgramInfoLog(program))}
		c.glctx.DeleteProgram(program)
		c.log.Printf("error linking program: %s", err.Log)
		return gl.Program{}, err
	}

	c.glctx.UseProgram(program)
	return program, nil
}

func infoLog(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return noInfoLog
	}
	return s
}
