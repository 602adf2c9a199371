package glprog

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/mobile/gl"

	"github.com/bmatsuo/mobile-gl-triangles/gltest"
)

const (
	testVertex   = "attribute vec2 a_Pos; void main() { gl_Position = vec4(a_Pos, 0, 1); }"
	testFragment = "precision mediump float; void main() { gl_FragColor = vec4(1); }"
)

func newTestCompiler(glctx gl.Context) (*Compiler, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewCompiler(glctx, log.New(&buf, "", 0)), &buf
}

func failOn(substr, msg string) func(gl.Enum, string) string {
	return func(_ gl.Enum, src string) string {
		if strings.Contains(src, substr) {
			return msg
		}
		return ""
	}
}

func TestCompileAndLink(t *testing.T) {
	glctx := &gltest.Context{}
	c, logs := newTestCompiler(glctx)

	vs, err := c.Compile(Vertex, testVertex)
	require.NoError(t, err)
	assert.NotZero(t, vs.Value)

	fs, err := c.CompileSource(Source{Stage: Fragment, Text: testFragment})
	require.NoError(t, err)
	assert.NotZero(t, fs.Value)

	created := glctx.Find("CreateShader")
	require.Len(t, created, 2)
	assert.Equal(t, gl.Enum(gl.VERTEX_SHADER), created[0].Args[0])
	assert.Equal(t, gl.Enum(gl.FRAGMENT_SHADER), created[1].Args[0])

	p, err := c.Link(vs, fs)
	require.NoError(t, err)
	assert.NotZero(t, p.Value)
	assert.Equal(t, p, glctx.Current(), "linked program must be made current")
	assert.Equal(t, 2, glctx.Count("AttachShader"))
	assert.Empty(t, logs.String())
}

func TestCompileFailureReleasesShader(t *testing.T) {
	glctx := &gltest.Context{CompileLog: failOn("BROKEN", "0:1: syntax error")}
	c, logs := newTestCompiler(glctx)

	s, err := c.Compile(Vertex, "BROKEN "+testVertex)
	require.Error(t, err)
	assert.Zero(t, s.Value)
	assert.True(t, errors.Is(err, ErrCompile))

	var gerr *Error
	require.True(t, errors.As(err, &gerr))
	assert.Equal(t, Vertex, gerr.Stage)
	assert.Equal(t, "0:1: syntax error", gerr.Log)

	assert.Equal(t, 0, glctx.LiveShaders(), "failed shader leaked")
	assert.Equal(t, 1, glctx.Count("DeleteShader"))
	assert.Contains(t, logs.String(), "error compiling vertex shader: 0:1: syntax error")
}

func TestCompileFailureEmptyDriverLog(t *testing.T) {
	glctx := &gltest.Context{CompileLog: func(gl.Enum, string) string { return " " }}
	c, logs := newTestCompiler(glctx)

	_, err := c.Compile(Fragment, testFragment)
	var gerr *Error
	require.True(t, errors.As(err, &gerr))
	assert.NotEmpty(t, gerr.Log)
	assert.NotEmpty(t, strings.TrimSpace(logs.String()))
}

func TestCompileAllocationFailure(t *testing.T) {
	glctx := &gltest.Context{NoShaders: true}
	c, logs := newTestCompiler(glctx)

	_, err := c.Compile(Vertex, testVertex)
	assert.True(t, errors.Is(err, ErrAllocation))
	assert.Equal(t, 0, glctx.Count("ShaderSource"))
	assert.Equal(t, 0, glctx.Count("CompileShader"))
	assert.Empty(t, logs.String())
}

func TestCompileInvalidInput(t *testing.T) {
	glctx := &gltest.Context{}
	c, _ := newTestCompiler(glctx)

	_, err := c.Compile(Stage(7), testVertex)
	assert.True(t, errors.Is(err, ErrInvalidStage))

	_, err = c.Compile(Fragment, "  \n")
	assert.True(t, errors.Is(err, ErrEmptySource))

	assert.Empty(t, glctx.Calls, "invalid input must not reach the context")
}

func TestLinkFailureReleasesProgram(t *testing.T) {
	glctx := &gltest.Context{LinkLog: "a_Col: varying mismatch"}
	c, logs := newTestCompiler(glctx)

	vs, err := c.Compile(Vertex, testVertex)
	require.NoError(t, err)
	fs, err := c.Compile(Fragment, testFragment)
	require.NoError(t, err)

	p, err := c.Link(vs, fs)
	require.Error(t, err)
	assert.Zero(t, p.Value)
	assert.True(t, errors.Is(err, ErrLink))
	assert.Equal(t, 0, glctx.LivePrograms(), "failed program leaked")
	assert.Equal(t, 0, glctx.Count("UseProgram"))
	assert.Contains(t, logs.String(), "error linking program: a_Col: varying mismatch")

	// Link does not own the shaders.
	assert.Equal(t, 2, glctx.LiveShaders())
}

func TestLinkInvalidShaders(t *testing.T) {
	glctx := &gltest.Context{}
	c, _ := newTestCompiler(glctx)

	_, err := c.Link(gl.Shader{}, gl.Shader{Value: 3})
	assert.Equal(t, ErrInvalidShader, err)
	assert.Equal(t, 0, glctx.Count("CreateProgram"))
}

func TestLinkAllocationFailure(t *testing.T) {
	glctx := &gltest.Context{NoPrograms: true}
	c, _ := newTestCompiler(glctx)

	vs, _ := c.Compile(Vertex, testVertex)
	fs, _ := c.Compile(Fragment, testFragment)
	_, err := c.Link(vs, fs)
	assert.True(t, errors.Is(err, ErrAllocation))
	assert.Equal(t, 0, glctx.Count("AttachShader"))
}

func TestErrorString(t *testing.T) {
	err := &Error{Kind: ErrCompile, Stage: Fragment, Log: "bad"}
	assert.Equal(t, "fragment shader: shader compilation failed: bad", err.Error())

	err = &Error{Kind: ErrLink, Log: "bad"}
	assert.Equal(t, "program link failed: bad", err.Error())

	assert.Equal(t, "Stage(0)", Stage(0).String())
}
