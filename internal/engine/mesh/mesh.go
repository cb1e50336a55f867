// Package mesh generates the procedural geometry used by the scene.
package mesh

import (
	gomath "math"

	"github.com/Faultbox/glowtrail/pkg/math"
)

// Vertex is an interleaved position + normal, laid out for a single VBO.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
}

// VertexStride is the byte size of one Vertex.
const VertexStride = 6 * 4

// Mesh is indexed triangle geometry.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// Triangles returns the triangle count.
func (m *Mesh) Triangles() int {
	return len(m.Indices) / 3
}

// Lines is a set of independent line segments, two positions per segment.
type Lines struct {
	Positions [][3]float32
}

// Segments returns the segment count.
func (l *Lines) Segments() int {
	return len(l.Positions) / 2
}

// Torus builds a ring of radius around the Z axis with a circular tube.
// radialSegments divide the tube cross-section, tubularSegments the ring.
func Torus(radius, tube float32, radialSegments, tubularSegments int) *Mesh {
	m := &Mesh{
		Vertices: make([]Vertex, 0, (radialSegments+1)*(tubularSegments+1)),
		Indices:  make([]uint32, 0, radialSegments*tubularSegments*6),
	}

	for j := 0; j <= radialSegments; j++ {
		v := float64(j) / float64(radialSegments) * 2 * gomath.Pi
		for i := 0; i <= tubularSegments; i++ {
			u := float64(i) / float64(tubularSegments) * 2 * gomath.Pi

			ring := float64(radius) + float64(tube)*gomath.Cos(v)
			pos := math.Vec3{
				X: float32(ring * gomath.Cos(u)),
				Y: float32(ring * gomath.Sin(u)),
				Z: float32(float64(tube) * gomath.Sin(v)),
			}
			center := math.Vec3{
				X: float32(float64(radius) * gomath.Cos(u)),
				Y: float32(float64(radius) * gomath.Sin(u)),
			}
			m.Vertices = append(m.Vertices, Vertex{
				Position: pos.Array(),
				Normal:   pos.Sub(center).Normalize().Array(),
			})
		}
	}

	stride := uint32(tubularSegments + 1)
	for j := uint32(1); j <= uint32(radialSegments); j++ {
		for i := uint32(1); i <= uint32(tubularSegments); i++ {
			a := stride*j + i - 1
			b := stride*(j-1) + i - 1
			c := stride*(j-1) + i
			d := stride*j + i
			m.Indices = append(m.Indices, a, b, d, b, c, d)
		}
	}
	return m
}

var (
	golden = float32((1 + gomath.Sqrt(5)) / 2)

	icoCorners = [12]math.Vec3{
		{X: -1, Y: golden}, {X: 1, Y: golden}, {X: -1, Y: -golden}, {X: 1, Y: -golden},
		{Y: -1, Z: golden}, {Y: 1, Z: golden}, {Y: -1, Z: -golden}, {Y: 1, Z: -golden},
		{X: golden, Z: -1}, {X: golden, Z: 1}, {X: -golden, Z: -1}, {X: -golden, Z: 1},
	}

	icoFaces = [20][3]int{
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	}
)

// Icosahedron builds a flat-shaded regular icosahedron inscribed in a sphere
// of the given radius. Vertices are not shared so each face keeps its own normal.
func Icosahedron(radius float32) *Mesh {
	m := &Mesh{
		Vertices: make([]Vertex, 0, len(icoFaces)*3),
		Indices:  make([]uint32, 0, len(icoFaces)*3),
	}
	for _, f := range icoFaces {
		a := icoCorners[f[0]].Normalize().Scale(radius)
		b := icoCorners[f[1]].Normalize().Scale(radius)
		c := icoCorners[f[2]].Normalize().Scale(radius)
		n := b.Sub(a).Cross(c.Sub(a)).Normalize()

		for _, p := range []math.Vec3{a, b, c} {
			m.Indices = append(m.Indices, uint32(len(m.Vertices)))
			m.Vertices = append(m.Vertices, Vertex{Position: p.Array(), Normal: n.Array()})
		}
	}
	return m
}
