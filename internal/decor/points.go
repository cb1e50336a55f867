package decor

import (
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Faultbox/glowtrail/internal/spline"
)

// PointCloud is a set of unlit, fixed-size points.
type PointCloud struct {
	Positions []r3.Vec
	Color     RGB
	Size      float32
	Opacity   float32
}

// BuildParticles scatters count points uniformly in a cube of edge extent
// centered on the origin.
func BuildParticles(count int, extent float64, rng *rand.Rand) PointCloud {
	if count < 0 {
		count = 0
	}
	positions := make([]r3.Vec, count)
	for i := range positions {
		positions[i] = r3.Vec{
			X: (rng.Float64() - 0.5) * extent,
			Y: (rng.Float64() - 0.5) * extent,
			Z: (rng.Float64() - 0.5) * extent,
		}
	}
	return PointCloud{
		Positions: positions,
		Color:     Hex(0xf4e5f0),
		Size:      0.1,
		Opacity:   1,
	}
}

// PathMarkers samples the curve into a dotted trail.
func PathMarkers(c *spline.Curve, divisions int) PointCloud {
	return PointCloud{
		Positions: c.Points(divisions),
		Color:     Hex(0xffee88),
		Size:      0.1,
		Opacity:   0.9,
	}
}
