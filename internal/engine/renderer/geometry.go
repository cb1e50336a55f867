package renderer

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Faultbox/glowtrail/internal/decor"
	"github.com/Faultbox/glowtrail/internal/engine/mesh"
	"github.com/Faultbox/glowtrail/pkg/math"
)

type geometryKey struct {
	kind     decor.Kind
	geometry decor.Geometry
}

// gpuGeometry is an uploaded mesh or line set.
type gpuGeometry struct {
	vao, vbo, ebo uint32
	count         int32
	mode          uint32
	indexed       bool
}

// drawable is one object instance referencing shared geometry.
type drawable struct {
	geometry *gpuGeometry
	model    math.Mat4

	color     [3]float32
	emissive  [3]float32
	roughness float32
	metalness float32
	opacity   float32
}

func (d *drawable) setTransform(position, rotation r3.Vec) {
	d.model = modelMatrix(position, rotation)
}

// modelMatrix builds translate * rotateXYZ.
func modelMatrix(position, rotation r3.Vec) math.Mat4 {
	return math.Compose(math.FromR3(position), math.FromR3(rotation))
}

func uploadGeometry(key geometryKey) *gpuGeometry {
	solid, lines := meshFor(key)
	if lines != nil {
		return uploadLines(lines)
	}
	return uploadMesh(solid)
}

func uploadMesh(m *mesh.Mesh) *gpuGeometry {
	g := &gpuGeometry{count: int32(len(m.Indices)), mode: gl.TRIANGLES, indexed: true}

	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)

	gl.GenBuffers(1, &g.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*mesh.VertexStride, unsafe.Pointer(&m.Vertices[0]), gl.STATIC_DRAW)

	gl.GenBuffers(1, &g.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, unsafe.Pointer(&m.Indices[0]), gl.STATIC_DRAW)

	// Position attribute (location = 0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, mesh.VertexStride, nil)
	gl.EnableVertexAttribArray(0)

	// Normal attribute (location = 1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, mesh.VertexStride, unsafe.Pointer(uintptr(3*4)))
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return g
}

func uploadLines(l *mesh.Lines) *gpuGeometry {
	g := &gpuGeometry{count: int32(len(l.Positions)), mode: gl.LINES}
	if g.count == 0 {
		return g
	}

	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)

	gl.GenBuffers(1, &g.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(l.Positions)*3*4, unsafe.Pointer(&l.Positions[0]), gl.STATIC_DRAW)

	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, nil)
	gl.EnableVertexAttribArray(0)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return g
}

func (g *gpuGeometry) draw() {
	if g.count == 0 {
		return
	}
	gl.BindVertexArray(g.vao)
	if g.indexed {
		gl.DrawElements(g.mode, g.count, gl.UNSIGNED_INT, nil)
	} else {
		gl.DrawArrays(g.mode, 0, g.count)
	}
	gl.BindVertexArray(0)
}

func (g *gpuGeometry) delete() {
	if g.ebo != 0 {
		gl.DeleteBuffers(1, &g.ebo)
	}
	if g.vbo != 0 {
		gl.DeleteBuffers(1, &g.vbo)
	}
	if g.vao != 0 {
		gl.DeleteVertexArrays(1, &g.vao)
	}
	*g = gpuGeometry{}
}

// pointCloud is an uploaded set of world-space points.
type pointCloud struct {
	vao, vbo uint32
	count    int32
	color    [3]float32
	size     float32
	opacity  float32
}

// flatten packs positions as x,y,z float32 triples.
func flatten(points []r3.Vec) []float32 {
	out := make([]float32, 0, len(points)*3)
	for _, p := range points {
		out = append(out, float32(p.X), float32(p.Y), float32(p.Z))
	}
	return out
}

func uploadPoints(pc decor.PointCloud) *pointCloud {
	c := &pointCloud{
		count:   int32(len(pc.Positions)),
		color:   pc.Color.Linear().Array(),
		size:    pc.Size,
		opacity: pc.Opacity,
	}
	if c.count == 0 {
		return c
	}
	data := flatten(pc.Positions)

	gl.GenVertexArrays(1, &c.vao)
	gl.BindVertexArray(c.vao)

	gl.GenBuffers(1, &c.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, c.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)

	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, nil)
	gl.EnableVertexAttribArray(0)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return c
}

func (c *pointCloud) draw() {
	if c.count == 0 {
		return
	}
	gl.BindVertexArray(c.vao)
	gl.DrawArrays(gl.POINTS, 0, c.count)
	gl.BindVertexArray(0)
}

func (c *pointCloud) delete() {
	if c.vbo != 0 {
		gl.DeleteBuffers(1, &c.vbo)
	}
	if c.vao != 0 {
		gl.DeleteVertexArrays(1, &c.vao)
	}
	*c = pointCloud{}
}
