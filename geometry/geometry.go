// Package geometry holds the constant vertex data drawn by the renderer:
// three triangles given as points in a unit square with a bottom-left
// origin, and one RGBA color per vertex.
package geometry

import (
	"encoding/binary"
	colour "image/color"

	"golang.org/x/mobile/exp/f32"
)

// Layout of the vertex data.
const (
	VertexCount        = 9
	PositionComponents = 2
	ColorComponents    = 4
)

// Point is a raw vertex position in the unit square, (0, 0) at the bottom
// left corner and (1, 1) at the top right.
type Point struct {
	X, Y float32
}

// Clip is a position in GL clip space, the range [-1, 1] on both axes.
// Clip values are only produced by BottomLeft, so a Point is never scaled
// twice.
type Clip struct {
	X, Y float32
}

// BottomLeft maps a unit square point to clip space.
func BottomLeft(p Point) Clip {
	return Clip{X: 2*p.X - 1, Y: 2*p.Y - 1}
}

// Positions returns the clip space position of every vertex as a flat
// slice of PositionComponents*VertexCount floats.
func Positions() []float32 {
	pos := make([]float32, 0, PositionComponents*VertexCount)
	for _, p := range rawPoints {
		c := BottomLeft(p)
		pos = append(pos, c.X, c.Y)
	}
	return pos
}

// PositionData returns Positions encoded for upload as little endian
// float32 values.
func PositionData() []byte {
	return f32.Bytes(binary.LittleEndian, Positions()...)
}

// Colors returns ColorComponents*VertexCount bytes, an RGBA quadruple per
// vertex, built by concatenating the color triples of each triangle.
func Colors() []byte {
	data := make([]byte, 0, ColorComponents*VertexCount)
	for _, triple := range colorTriples {
		for _, c := range triple {
			data = append(data, c.R, c.G, c.B, c.A)
		}
	}
	return data
}

// ColorsOf returns the vertex colors as colour.RGBA values, in draw order.
func ColorsOf() []colour.RGBA {
	cs := make([]colour.RGBA, 0, VertexCount)
	for _, triple := range colorTriples {
		cs = append(cs, triple[:]...)
	}
	return cs
}
