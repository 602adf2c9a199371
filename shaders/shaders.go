// Package shaders provides the GLSL ES sources for the triangle program.
// The defaults are compiled into the binary; an application may replace
// either stage with a file from its assets directory.
//
// The attribute names declared by the vertex stage are a contract with the
// renderer's buffer setup: changing PositionAttrib or ColorAttrib requires
// changing vertex.glsl as well.
package shaders

import (
	_ "embed"
	"fmt"
	"io"

	"golang.org/x/mobile/asset"

	"github.com/bmatsuo/mobile-gl-triangles/glprog"
)

// Attribute names shared with vertex.glsl.
const (
	PositionAttrib = "a_Pos"
	ColorAttrib    = "a_Col"
)

//go:embed vertex.glsl
var vertexSrc string

//go:embed fragment.glsl
var fragmentSrc string

// Default returns the embedded vertex and fragment sources.
func Default() (vertex, fragment glprog.Source) {
	return glprog.Source{Stage: glprog.Vertex, Text: vertexSrc},
		glprog.Source{Stage: glprog.Fragment, Text: fragmentSrc}
}

// Load returns the sources for both stages.  An empty path selects the
// embedded default for that stage, otherwise the named asset is read.
func Load(vertexPath, fragmentPath string) (vertex, fragment glprog.Source, err error) {
	vertex, fragment = Default()
	if vertexPath != "" {
		vertex, err = LoadAsset(glprog.Vertex, vertexPath)
		if err != nil {
			return vertex, fragment, err
		}
	}
	if fragmentPath != "" {
		fragment, err = LoadAsset(glprog.Fragment, fragmentPath)
		if err != nil {
			return vertex, fragment, err
		}
	}
	return vertex, fragment, nil
}

// LoadAsset reads the shader source for stage from the asset at path.
func LoadAsset(stage glprog.Stage, path string) (glprog.Source, error) {
	f, err := asset.Open(path)
	if err != nil {
		return glprog.Source{}, fmt.Errorf("%s shader asset: %w", stage, err)
	}
	defer f.Close()
	src, err := Read(stage, f)
	if err != nil {
		return glprog.Source{}, fmt.Errorf("%s shader asset %s: %w", stage, path, err)
	}
	return src, nil
}

// Read reads the complete shader text for stage from r.
func Read(stage glprog.Stage, r io.Reader) (glprog.Source, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return glprog.Source{}, err
	}
	return glprog.Source{Stage: stage, Text: string(b)}, nil
}
