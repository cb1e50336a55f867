package mesh

import (
	gomath "math"
	"testing"
)

func length(v [3]float32) float64 {
	return gomath.Sqrt(float64(v[0]*v[0] + v[1]*v[1] + v[2]*v[2]))
}

func TestTorusCounts(t *testing.T) {
	m := Torus(2, 0.3, 30, 200)

	if got, want := len(m.Vertices), 31*201; got != want {
		t.Errorf("vertices = %d, want %d", got, want)
	}
	if got, want := m.Triangles(), 2*30*200; got != want {
		t.Errorf("triangles = %d, want %d", got, want)
	}
	for _, idx := range m.Indices {
		if int(idx) >= len(m.Vertices) {
			t.Fatalf("index %d out of range", idx)
		}
	}
}

func TestTorusSurface(t *testing.T) {
	m := Torus(2, 0.3, 12, 24)
	for i, v := range m.Vertices {
		p := v.Position
		// Distance from the ring centerline equals the tube radius
		ringDist := gomath.Hypot(float64(p[0]), float64(p[1])) - 2
		tubeDist := gomath.Hypot(ringDist, float64(p[2]))
		if gomath.Abs(tubeDist-0.3) > 1e-5 {
			t.Fatalf("vertex %d at %v is %v from the ring, want 0.3", i, p, tubeDist)
		}
		if gomath.Abs(length(v.Normal)-1) > 1e-5 {
			t.Fatalf("vertex %d normal %v not unit length", i, v.Normal)
		}
	}
}

func TestIcosahedron(t *testing.T) {
	m := Icosahedron(0.2)

	if m.Triangles() != 20 {
		t.Errorf("triangles = %d, want 20", m.Triangles())
	}
	if len(m.Vertices) != 60 {
		t.Errorf("vertices = %d, want 60 (flat shaded)", len(m.Vertices))
	}
	for i, v := range m.Vertices {
		if r := length(v.Position); gomath.Abs(r-0.2) > 1e-6 {
			t.Errorf("vertex %d radius = %v, want 0.2", i, r)
		}
		// Face normals point away from the center
		dot := v.Normal[0]*v.Position[0] + v.Normal[1]*v.Position[1] + v.Normal[2]*v.Position[2]
		if dot <= 0 {
			t.Errorf("vertex %d normal %v points inward", i, v.Normal)
		}
	}
}

func TestEdgesIcosahedron(t *testing.T) {
	lines := Edges(Icosahedron(1), DefaultEdgeThreshold)
	if got := lines.Segments(); got != 30 {
		t.Errorf("segments = %d, want 30", got)
	}
}

func TestEdgesTorusGrid(t *testing.T) {
	// Quads are planar, so diagonals are always dropped. Every 12 degree ring
	// crease is kept. The 1.8 degree creases around the ring flatten out near
	// the top and bottom of the tube, where only 20 of the 30 rows exceed the
	// threshold.
	lines := Edges(Torus(2, 0.3, 30, 200), DefaultEdgeThreshold)
	if got, want := lines.Segments(), 30*200+20*200; got != want {
		t.Errorf("segments = %d, want %d", got, want)
	}
}

func TestEdgesThresholdFiltersCreases(t *testing.T) {
	// Icosahedron dihedral creases are ~41.8 degrees
	if got := Edges(Icosahedron(1), 60).Segments(); got != 0 {
		t.Errorf("segments above crease angle = %d, want 0", got)
	}
}

func TestEdgesBoundary(t *testing.T) {
	// A lone triangle is all boundary
	m := &Mesh{
		Vertices: []Vertex{
			{Position: [3]float32{0, 0, 0}},
			{Position: [3]float32{1, 0, 0}},
			{Position: [3]float32{0, 1, 0}},
		},
		Indices: []uint32{0, 1, 2},
	}
	if got := Edges(m, DefaultEdgeThreshold).Segments(); got != 3 {
		t.Errorf("segments = %d, want 3", got)
	}
}
