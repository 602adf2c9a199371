package geometry

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferSizes(t *testing.T) {
	pos := Positions()
	cols := Colors()
	assert.Len(t, pos, 18)
	assert.Len(t, cols, 36)
	assert.Equal(t, VertexCount, len(pos)/PositionComponents)
	assert.Equal(t, len(pos)/PositionComponents, len(cols)/ColorComponents)
	assert.Len(t, PositionData(), 4*len(pos))
	assert.Len(t, ColorsOf(), VertexCount)
}

func TestBottomLeft(t *testing.T) {
	assert.Equal(t, Clip{-1, -1}, BottomLeft(Point{0, 0}))
	assert.Equal(t, Clip{1, 1}, BottomLeft(Point{1, 1}))
	assert.Equal(t, Clip{0, 0}, BottomLeft(Point{0.5, 0.5}))
	assert.Equal(t, Clip{-1, 1}, BottomLeft(Point{0, 1}))
}

// Every position must be the raw point transformed exactly once.  A second
// application would move points already inside [-1, 1] toward -3.
func TestPositionsTransformedOnce(t *testing.T) {
	pos := Positions()
	for i, p := range rawPoints {
		want := BottomLeft(p)
		assert.InDelta(t, want.X, pos[2*i], 1e-6, "vertex %d x", i)
		assert.InDelta(t, want.Y, pos[2*i+1], 1e-6, "vertex %d y", i)

		twice := BottomLeft(Point(want))
		if want.X != 1 {
			assert.NotEqual(t, twice.X, pos[2*i], "vertex %d x scaled twice", i)
		}
	}
	for _, v := range pos {
		assert.True(t, v >= -1 && v <= 1, "position %v outside clip space", v)
	}
}

func TestPositionsStable(t *testing.T) {
	assert.Equal(t, Positions(), Positions())
	assert.Equal(t, Colors(), Colors())
}

func TestPositionDataLittleEndian(t *testing.T) {
	pos := Positions()
	data := PositionData()
	require.Len(t, data, 4*len(pos))
	for i, v := range pos {
		bits := binary.LittleEndian.Uint32(data[4*i:])
		assert.Equal(t, v, math.Float32frombits(bits))
	}
}

func TestColorsMatchTriples(t *testing.T) {
	cols := Colors()
	for i, c := range ColorsOf() {
		assert.Equal(t, []byte{c.R, c.G, c.B, c.A}, cols[4*i:4*i+4], "vertex %d", i)
		assert.Equal(t, uint8(255), c.A, "vertex %d is not opaque", i)
	}
}
