package renderer

import (
	gomath "math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Faultbox/glowtrail/internal/decor"
	"github.com/Faultbox/glowtrail/pkg/math"
)

func TestModelMatrix(t *testing.T) {
	m := modelMatrix(r3.Vec{X: 1, Y: 2, Z: 3}, r3.Vec{Y: gomath.Pi / 2})

	got := m.TransformVec3(math.Vec3{X: 1})
	want := math.Vec3{X: 1, Y: 2, Z: 2}
	if got.Sub(want).Length() > 1e-5 {
		t.Errorf("model * (1,0,0) = %v, want %v", got, want)
	}
}

func TestFlatten(t *testing.T) {
	got := flatten([]r3.Vec{{X: 1, Y: 2, Z: 3}, {X: -1, Y: 0.5, Z: 0}})
	want := []float32{1, 2, 3, -1, 0.5, 0}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("flatten()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if len(flatten(nil)) != 0 {
		t.Error("flatten(nil) should be empty")
	}
}

func TestMeshFor(t *testing.T) {
	torus := decor.BuildTorus()

	tests := []struct {
		name      string
		obj       decor.Object
		wantMesh  bool
		wantLines bool
	}{
		{"torus", torus.Solid, true, false},
		{"torus edges", torus.Edges, false, true},
		{"icosahedron", decor.Object{Kind: decor.KindIcosahedron, Geometry: decor.Geometry{Radius: 0.2}}, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, l := meshFor(geometryKey{kind: tt.obj.Kind, geometry: tt.obj.Geometry})
			if (m != nil) != tt.wantMesh {
				t.Errorf("mesh = %v, want present %v", m != nil, tt.wantMesh)
			}
			if (l != nil) != tt.wantLines {
				t.Errorf("lines = %v, want present %v", l != nil, tt.wantLines)
			}
			if l != nil && l.Segments() == 0 {
				t.Error("edge overlay has no segments")
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig(800, 600)

	if cfg.FovY != 75 || cfg.Near != 0.1 || cfg.Far != 1000 {
		t.Errorf("lens = %v/%v/%v, want 75/0.1/1000", cfg.FovY, cfg.Near, cfg.Far)
	}
	if cfg.FogColor != cfg.Background {
		t.Errorf("fog %v does not match background %v", cfg.FogColor, cfg.Background)
	}
	if cfg.FogDensity != 0.05 {
		t.Errorf("FogDensity = %v, want 0.05", cfg.FogDensity)
	}
	if cfg.Lights.Point.Position != [3]float32{10, 10, 10} || cfg.Lights.Point.Range != 50 {
		t.Errorf("point light = %+v", cfg.Lights.Point)
	}
	if cfg.Lights.Ambient.Intensity != 1.5 {
		t.Errorf("ambient intensity = %v, want 1.5", cfg.Lights.Ambient.Intensity)
	}
}
