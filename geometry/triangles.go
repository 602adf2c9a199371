package geometry

import colour "image/color"

// rawPoints are the untransformed vertices of the three triangles.
var rawPoints = [VertexCount]Point{
	// left
	{0.05, 0.10},
	{0.30, 0.90},
	{0.55, 0.10},
	// middle, inverted
	{0.30, 0.90},
	{0.55, 0.10},
	{0.80, 0.90},
	// right
	{0.55, 0.10},
	{0.80, 0.90},
	{0.95, 0.10},
}

var colorTriples = [VertexCount / 3][3]colour.RGBA{
	{
		{R: 255, G: 0, B: 0, A: 255},
		{R: 0, G: 255, B: 0, A: 255},
		{R: 0, G: 0, B: 255, A: 255},
	},
	{
		{R: 0, G: 255, B: 255, A: 255},
		{R: 255, G: 0, B: 255, A: 255},
		{R: 255, G: 255, B: 0, A: 255},
	},
	{
		{R: 255, G: 127, B: 0, A: 255},
		{R: 127, G: 0, B: 255, A: 255},
		{R: 0, G: 127, B: 127, A: 255},
	},
}
