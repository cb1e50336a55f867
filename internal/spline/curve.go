// Package spline provides a closed centripetal Catmull-Rom curve with
// arc-length parametrization.
package spline

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate/quad"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// MinPoints is the smallest control point count that gives every segment
	// two distinct neighbors for tangent estimation.
	MinPoints = 4

	// SamplesPerSegment is the number of arc-length table entries per segment.
	SamplesPerSegment = 64

	// quadPoints is the Gauss-Legendre order used for each table entry.
	quadPoints = 8

	// alpha 0.5 selects the centripetal variant.
	alpha = 0.5
)

// ErrInvalidCurve is returned when control points cannot form a curve.
var ErrInvalidCurve = errors.New("invalid curve")

// segment holds cubic coefficients for one span: c0 + c1*w + c2*w^2 + c3*w^3.
type segment struct {
	c0, c1, c2, c3 r3.Vec
}

func (s *segment) at(w float64) r3.Vec {
	// Horner form
	v := r3.Add(s.c2, r3.Scale(w, s.c3))
	v = r3.Add(s.c1, r3.Scale(w, v))
	return r3.Add(s.c0, r3.Scale(w, v))
}

func (s *segment) derivative(w float64) r3.Vec {
	v := r3.Add(r3.Scale(2, s.c2), r3.Scale(3*w, s.c3))
	return r3.Add(s.c1, r3.Scale(w, v))
}

// Curve is a closed spline through an ordered set of control points.
// The last point connects back to the first, so parameters 0 and 1 coincide.
type Curve struct {
	points   []r3.Vec
	segments []segment

	// cumulative arc length at each table sample, len = segments*SamplesPerSegment + 1
	lengths []float64
}

// Build creates a closed curve through points.
func Build(points []r3.Vec) (*Curve, error) {
	if len(points) < MinPoints {
		return nil, fmt.Errorf("%w: need at least %d control points, got %d", ErrInvalidCurve, MinPoints, len(points))
	}

	seen := make(map[r3.Vec]int, len(points))
	for i, p := range points {
		if j, ok := seen[p]; ok {
			return nil, fmt.Errorf("%w: control points %d and %d coincide at %v", ErrInvalidCurve, j, i, p)
		}
		seen[p] = i
	}

	c := &Curve{
		points: append([]r3.Vec(nil), points...),
	}
	c.buildSegments()
	c.buildLengthTable()
	return c, nil
}

func (c *Curve) buildSegments() {
	n := len(c.points)
	c.segments = make([]segment, n)
	for i := range n {
		p0 := c.points[(i-1+n)%n]
		p1 := c.points[i]
		p2 := c.points[(i+1)%n]
		p3 := c.points[(i+2)%n]

		dt0 := knot(p0, p1)
		dt1 := knot(p1, p2)
		dt2 := knot(p2, p3)

		// Guard against repeated points collapsing a knot interval
		if dt1 < 1e-4 {
			dt1 = 1
		}
		if dt0 < 1e-4 {
			dt0 = dt1
		}
		if dt2 < 1e-4 {
			dt2 = dt1
		}

		// Non-uniform tangents, rescaled to the [0,1] span of p1..p2
		t1 := r3.Add(
			r3.Sub(r3.Scale(1/dt0, r3.Sub(p1, p0)), r3.Scale(1/(dt0+dt1), r3.Sub(p2, p0))),
			r3.Scale(1/dt1, r3.Sub(p2, p1)),
		)
		t2 := r3.Add(
			r3.Sub(r3.Scale(1/dt1, r3.Sub(p2, p1)), r3.Scale(1/(dt1+dt2), r3.Sub(p3, p1))),
			r3.Scale(1/dt2, r3.Sub(p3, p2)),
		)
		t1 = r3.Scale(dt1, t1)
		t2 = r3.Scale(dt1, t2)

		c.segments[i] = segment{
			c0: p1,
			c1: t1,
			c2: r3.Sub(r3.Sub(r3.Scale(3, r3.Sub(p2, p1)), r3.Scale(2, t1)), t2),
			c3: r3.Add(r3.Add(r3.Scale(2, r3.Sub(p1, p2)), t1), t2),
		}
	}
}

// knot returns the centripetal knot interval |b-a|^alpha.
func knot(a, b r3.Vec) float64 {
	return math.Pow(r3.Norm(r3.Sub(b, a)), alpha)
}

func (c *Curve) buildLengthTable() {
	n := len(c.segments)
	steps := make([]float64, n*SamplesPerSegment)
	for i := range c.segments {
		seg := &c.segments[i]
		speed := func(w float64) float64 {
			return r3.Norm(seg.derivative(w))
		}
		for j := range SamplesPerSegment {
			a := float64(j) / SamplesPerSegment
			b := float64(j+1) / SamplesPerSegment
			steps[i*SamplesPerSegment+j] = quad.Fixed(speed, a, b, quadPoints, quad.Legendre{}, 0)
		}
	}

	c.lengths = make([]float64, len(steps)+1)
	floats.CumSum(c.lengths[1:], steps)
}

// Length returns the total length of the closed loop.
func (c *Curve) Length() float64 {
	return c.lengths[len(c.lengths)-1]
}

// Segments returns the number of spline segments (equal to the control point count).
func (c *Curve) Segments() int {
	return len(c.segments)
}

// ControlPoints returns a copy of the control points.
func (c *Curve) ControlPoints() []r3.Vec {
	return append([]r3.Vec(nil), c.points...)
}

// Point returns the position at raw curve parameter t, where each segment
// spans an equal share of [0,1) regardless of its length.
func (c *Curve) Point(t float64) r3.Vec {
	i, w := c.locate(t)
	return c.segments[i].at(w)
}

// PointAt returns the position at normalized arc-length parameter p.
// p is wrapped into [0,1), so any real value is accepted.
func (c *Curve) PointAt(p float64) r3.Vec {
	return c.Point(c.arcToCurve(p))
}

// TangentAt returns the unit tangent at normalized arc-length parameter p.
func (c *Curve) TangentAt(p float64) r3.Vec {
	i, w := c.locate(c.arcToCurve(p))
	return r3.Unit(c.segments[i].derivative(w))
}

// Points samples divisions+1 positions by raw curve parameter. The last
// sample repeats the first since the curve is closed.
func (c *Curve) Points(divisions int) []r3.Vec {
	if divisions < 1 {
		divisions = 1
	}
	out := make([]r3.Vec, divisions+1)
	for i := range divisions {
		out[i] = c.Point(float64(i) / float64(divisions))
	}
	out[divisions] = out[0]
	return out
}

// locate maps raw parameter t to a segment index and local weight in [0,1).
func (c *Curve) locate(t float64) (int, float64) {
	n := len(c.segments)
	s := Wrap(t) * float64(n)
	i := int(math.Floor(s))
	if i >= n {
		i = n - 1
	}
	return i, s - float64(i)
}

// arcToCurve converts normalized arc length p into raw parameter t.
func (c *Curve) arcToCurve(p float64) float64 {
	target := Wrap(p) * c.Length()

	// First table entry whose cumulative length reaches target
	hi := sort.SearchFloat64s(c.lengths, target)
	if hi == 0 {
		return 0
	}
	if hi >= len(c.lengths) {
		hi = len(c.lengths) - 1
	}
	lo := hi - 1

	span := c.lengths[hi] - c.lengths[lo]
	frac := 0.0
	if span > 0 {
		frac = (target - c.lengths[lo]) / span
	}
	return (float64(lo) + frac) / float64(len(c.lengths)-1)
}

// Wrap maps any real value into [0,1).
func Wrap(p float64) float64 {
	w := p - math.Floor(p)
	if w >= 1 {
		return 0
	}
	return w
}
