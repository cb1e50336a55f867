package spline

import "gonum.org/v1/gonum/spatial/r3"

// reference is a 40-point closed loop around the origin that rises and dips
// twice per lap. Spacing is deliberately uneven: points bunch up near the Z
// extremes and spread out along the X lobes.
var reference = []r3.Vec{
	{X: 4.500, Y: 0.300, Z: 0.000},
	{X: 4.104, Y: 0.781, Z: 0.301},
	{X: 3.134, Y: 0.950, Z: 0.888},
	{X: 2.049, Y: 1.155, Z: 1.773},
	{X: 1.191, Y: 1.342, Z: 2.722},
	{X: 0.650, Y: 1.317, Z: 3.500},
	{X: 0.351, Y: 1.079, Z: 4.013},
	{X: 0.192, Y: 0.757, Z: 4.297},
	{X: 0.102, Y: 0.456, Z: 4.432},
	{X: 0.044, Y: 0.209, Z: 4.486},
	{X: 0.000, Y: 0.000, Z: 4.500},
	{X: -0.044, Y: -0.209, Z: 4.486},
	{X: -0.102, Y: -0.456, Z: 4.432},
	{X: -0.192, Y: -0.757, Z: 4.297},
	{X: -0.351, Y: -1.079, Z: 4.013},
	{X: -0.650, Y: -1.317, Z: 3.500},
	{X: -1.191, Y: -1.342, Z: 2.722},
	{X: -2.049, Y: -1.155, Z: 1.773},
	{X: -3.134, Y: -0.950, Z: 0.888},
	{X: -4.104, Y: -0.781, Z: 0.301},
	{X: -4.500, Y: -0.300, Z: 0.000},
	{X: -4.104, Y: 0.636, Z: -0.301},
	{X: -3.134, Y: 1.464, Z: -0.888},
	{X: -2.049, Y: 1.640, Z: -1.773},
	{X: -1.191, Y: 1.286, Z: -2.722},
	{X: -0.650, Y: 0.824, Z: -3.500},
	{X: -0.351, Y: 0.481, Z: -4.013},
	{X: -0.192, Y: 0.272, Z: -4.297},
	{X: -0.102, Y: 0.146, Z: -4.432},
	{X: -0.044, Y: 0.064, Z: -4.486},
	{X: 0.000, Y: 0.000, Z: -4.500},
	{X: 0.044, Y: -0.064, Z: -4.486},
	{X: 0.102, Y: -0.146, Z: -4.432},
	{X: 0.192, Y: -0.272, Z: -4.297},
	{X: 0.351, Y: -0.481, Z: -4.013},
	{X: 0.650, Y: -0.824, Z: -3.500},
	{X: 1.191, Y: -1.286, Z: -2.722},
	{X: 2.049, Y: -1.640, Z: -1.773},
	{X: 3.134, Y: -1.464, Z: -0.888},
	{X: 4.104, Y: -0.636, Z: -0.301},
}

// Reference returns a copy of the built-in fly-through path.
func Reference() []r3.Vec {
	return append([]r3.Vec(nil), reference...)
}
