package spline

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat"
)

func distance(a, b r3.Vec) float64 {
	return r3.Norm(r3.Sub(a, b))
}

func mustReference(t *testing.T) *Curve {
	t.Helper()
	c, err := Build(Reference())
	if err != nil {
		t.Fatalf("Build(Reference()) failed: %v", err)
	}
	return c
}

func TestBuildTooFewPoints(t *testing.T) {
	tests := []struct {
		name   string
		points []r3.Vec
	}{
		{"nil", nil},
		{"one", []r3.Vec{{X: 1}}},
		{"three", []r3.Vec{{X: 1}, {Y: 1}, {Z: 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Build(tt.points)
			if !errors.Is(err, ErrInvalidCurve) {
				t.Errorf("Build() error = %v, want ErrInvalidCurve", err)
			}
			if c != nil {
				t.Error("Build() returned a curve alongside the error")
			}
		})
	}
}

func TestBuildDuplicatePoints(t *testing.T) {
	points := []r3.Vec{{X: 0}, {X: 1}, {X: 1, Y: 1}, {X: 1}}
	if _, err := Build(points); !errors.Is(err, ErrInvalidCurve) {
		t.Errorf("Build() error = %v, want ErrInvalidCurve", err)
	}
}

func TestBuildCopiesInput(t *testing.T) {
	points := Reference()
	c, err := Build(points)
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}
	points[0] = r3.Vec{X: 100}
	if got := c.ControlPoints()[0]; got == points[0] {
		t.Error("curve shares storage with caller's slice")
	}
}

func TestPassesThroughControlPoints(t *testing.T) {
	c := mustReference(t)
	ctrl := c.ControlPoints()
	for i, want := range ctrl {
		got := c.Point(float64(i) / float64(len(ctrl)))
		if d := distance(got, want); d > 1e-9 {
			t.Errorf("Point(%d/%d) = %v, want %v (off by %g)", i, len(ctrl), got, want, d)
		}
	}
}

func TestPointAtStartIsFirstControlPoint(t *testing.T) {
	c := mustReference(t)
	want := Reference()[0]
	if d := distance(c.PointAt(0), want); d > 1e-9 {
		t.Errorf("PointAt(0) = %v, want %v", c.PointAt(0), want)
	}
}

func TestPointAtContinuous(t *testing.T) {
	c := mustReference(t)
	const eps = 1e-6
	// Largest plausible displacement for a parameter step of eps
	limit := c.Length() * eps * 2

	for i := range 2000 {
		p := float64(i) / 2000
		if d := distance(c.PointAt(p), c.PointAt(p+eps)); d > limit {
			t.Fatalf("jump of %g at p=%v (limit %g)", d, p, limit)
		}
	}
}

func TestPointAtSeam(t *testing.T) {
	c := mustReference(t)
	before := c.PointAt(1 - 1e-9)
	after := c.PointAt(0)
	if d := distance(before, after); d > 1e-6 {
		t.Errorf("seam gap %g between p=1-1e-9 and p=0", d)
	}
	if d := distance(c.PointAt(1), after); d != 0 {
		t.Errorf("PointAt(1) differs from PointAt(0) by %g", d)
	}
	if d := distance(c.PointAt(-0.25), c.PointAt(0.75)); d > 1e-12 {
		t.Errorf("PointAt(-0.25) differs from PointAt(0.75) by %g", d)
	}
}

func stepLengths(sample func(float64) r3.Vec, n int) []float64 {
	steps := make([]float64, n)
	prev := sample(0)
	for i := 1; i <= n; i++ {
		cur := sample(float64(i) / float64(n))
		steps[i-1] = distance(prev, cur)
		prev = cur
	}
	return steps
}

func TestArcLengthUniformSpeed(t *testing.T) {
	c := mustReference(t)
	steps := stepLengths(c.PointAt, 400)

	mean, std := stat.MeanStdDev(steps, nil)
	if rel := std / mean; rel > 0.02 {
		t.Errorf("relative step deviation = %.4f, want < 0.02", rel)
	}

	lo, hi := steps[0], steps[0]
	for _, s := range steps {
		lo = math.Min(lo, s)
		hi = math.Max(hi, s)
	}
	if (hi-lo)/mean > 0.1 {
		t.Errorf("speed variation %.3f exceeds 10%% (min %g, max %g)", (hi-lo)/mean, lo, hi)
	}
}

func TestRawParameterIsNotUniform(t *testing.T) {
	// The reference path is unevenly spaced, so raw sampling should be visibly
	// uneven; otherwise the arc-length test above proves nothing.
	c := mustReference(t)
	steps := stepLengths(c.Point, 400)
	mean, std := stat.MeanStdDev(steps, nil)
	if rel := std / mean; rel < 0.1 {
		t.Errorf("raw relative step deviation = %.4f, expected an uneven reference path", rel)
	}
}

func TestLengthMatchesPolyline(t *testing.T) {
	c := mustReference(t)
	pts := c.Points(8000)
	var poly float64
	for i := 1; i < len(pts); i++ {
		poly += distance(pts[i-1], pts[i])
	}
	if rel := math.Abs(poly-c.Length()) / c.Length(); rel > 1e-4 {
		t.Errorf("Length() = %g, polyline = %g (rel diff %g)", c.Length(), poly, rel)
	}
}

func TestPointsClosed(t *testing.T) {
	c := mustReference(t)
	pts := c.Points(100)
	if len(pts) != 101 {
		t.Fatalf("Points(100) returned %d samples, want 101", len(pts))
	}
	if pts[0] != pts[100] {
		t.Errorf("first and last samples differ: %v vs %v", pts[0], pts[100])
	}
}

func TestTangentAtUnit(t *testing.T) {
	c := mustReference(t)
	for _, p := range []float64{0, 0.1, 0.5, 0.99} {
		tan := c.TangentAt(p)
		if l := r3.Norm(tan); math.Abs(l-1) > 1e-9 {
			t.Errorf("|TangentAt(%v)| = %v, want 1", p, l)
		}
		// Tangent should point roughly toward a slightly later position
		ahead := r3.Sub(c.PointAt(p+0.001), c.PointAt(p))
		if r3.Dot(tan, ahead) <= 0 {
			t.Errorf("TangentAt(%v) points backwards", p)
		}
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{0.25, 0.25},
		{1, 0},
		{2.5, 0.5},
		{-0.25, 0.75},
		{-1, 0},
	}
	for _, tt := range tests {
		if got := Wrap(tt.in); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Wrap(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
