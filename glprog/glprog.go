/*
Package glprog compiles shader sources and links them into programs on a
gl.Context from golang.org/x/mobile/gl.  Failures are written to the
Compiler's logger and returned as errors wrapping one of the package's
sentinel values, so callers can halt startup without inspecting GL state.

	c := glprog.NewCompiler(glctx, log.Default())
	vs, err := c.Compile(glprog.Vertex, vertexSrc)
	if err != nil {
		return err
	}
	fs, err := c.Compile(glprog.Fragment, fragmentSrc)
	if err != nil {
		return err
	}
	program, err := c.Link(vs, fs)
*/
package glprog

import (
	"fmt"

	"golang.org/x/mobile/gl"
)

// Stage identifies the pipeline stage a shader runs in.
type Stage int

// Supported shader stages.
const (
	Vertex Stage = iota + 1
	Fragment
)

func (s Stage) String() string {
	switch s {
	case Vertex:
		return "vertex"
	case Fragment:
		return "fragment"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// Valid reports whether s is one of the supported stages.
func (s Stage) Valid() bool {
	return s == Vertex || s == Fragment
}

func (s Stage) shaderType() gl.Enum {
	if s == Fragment {
		return gl.FRAGMENT_SHADER
	}
	return gl.VERTEX_SHADER
}

// Source is the text of a single shader stage.  Sources are created once at
// startup and are not modified after compilation.
type Source struct {
	Stage Stage
	Text  string
}
