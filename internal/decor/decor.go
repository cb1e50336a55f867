// Package decor builds the decorative scene content placed along the
// fly-through path: icosahedra, the torus, the particle field and path markers.
package decor

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Faultbox/glowtrail/internal/spline"
)

// Placement constants.
const (
	// MaxJitter is the upper bound (exclusive) of the random parameter offset.
	MaxJitter = 0.05
	// MaxLateral is the bound of the random X/Z offsets from the path.
	MaxLateral = 0.1

	DecorationRadius     = 0.2
	DecorationSaturation = 1.0
	DecorationLightness  = 0.6
	EmissiveFactor       = 0.3

	// TorusSpin is the yaw added to the torus every frame.
	TorusSpin = 0.003
)

// ErrInvalidPlacementCount is returned when a non-positive number of
// decorations is requested.
var ErrInvalidPlacementCount = errors.New("invalid placement count")

// Kind identifies the geometry an Object is drawn with.
type Kind int

const (
	KindIcosahedron Kind = iota
	KindTorus
	KindTorusEdges
)

func (k Kind) String() string {
	switch k {
	case KindIcosahedron:
		return "icosahedron"
	case KindTorus:
		return "torus"
	case KindTorusEdges:
		return "torus-edges"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Material describes how an object is shaded.
type Material struct {
	Color     RGB
	Emissive  RGB
	Roughness float32
	Metalness float32
	Opacity   float32

	// HSL is the color the base color was derived from, zero for hex colors.
	HSL HSL
}

// Geometry holds shape parameters. Only the fields relevant to Kind are set.
type Geometry struct {
	Radius          float64
	Tube            float64
	RadialSegments  int
	TubularSegments int
}

// Object is a decorative mesh instance.
type Object struct {
	Kind     Kind
	Geometry Geometry
	Material Material

	Position r3.Vec
	Rotation r3.Vec // Euler angles, XYZ order

	// Spin is the rotation added per frame; zero for static objects.
	Spin r3.Vec

	// BaseParam and Param are the unjittered and jittered arc-length
	// parameters an icosahedron was placed at.
	BaseParam float64
	Param     float64
}

// PlaceDecorations spreads count icosahedra around the curve. Randomness is
// drawn from rng only, in a fixed order per object, so a seeded rng gives a
// reproducible layout.
func PlaceDecorations(c *spline.Curve, count int, rng *rand.Rand) ([]Object, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPlacementCount, count)
	}

	objects := make([]Object, 0, count)
	for i := range count {
		hue := float64(i) / float64(count)
		hsl := HSL{H: hue, S: DecorationSaturation, L: DecorationLightness}
		color := hsl.RGB()

		// Draw order: jitter, x, z, then the three rotation angles.
		jitter := rng.Float64() * MaxJitter
		dx := rng.Float64()*2*MaxLateral - MaxLateral
		dz := rng.Float64()*2*MaxLateral - MaxLateral
		rot := r3.Vec{
			X: rng.Float64() * math.Pi,
			Y: rng.Float64() * math.Pi,
			Z: rng.Float64() * math.Pi,
		}

		p := math.Mod(hue+jitter, 1)
		pos := r3.Add(c.PointAt(p), r3.Vec{X: dx, Z: dz})

		objects = append(objects, Object{
			Kind:     KindIcosahedron,
			Geometry: Geometry{Radius: DecorationRadius},
			Material: Material{
				Color:     color,
				Emissive:  color.ScaleLight(EmissiveFactor),
				Roughness: 0.4,
				Metalness: 0.5,
				Opacity:   1,
				HSL:       hsl,
			},
			Position:  pos,
			Rotation:  rot,
			BaseParam: hue,
			Param:     p,
		})
	}
	return objects, nil
}

// TorusPair is the solid torus and its edge overlay.
type TorusPair struct {
	Solid Object
	Edges Object
}

// BuildTorus returns the fixed centerpiece torus. Both halves share geometry,
// orientation and spin so they stay aligned.
func BuildTorus() TorusPair {
	geo := Geometry{
		Radius:          2,
		Tube:            0.3,
		RadialSegments:  30,
		TubularSegments: 200,
	}
	rot := r3.Vec{X: 0.5, Y: 0.5}
	spin := r3.Vec{Y: TorusSpin}

	return TorusPair{
		Solid: Object{
			Kind:     KindTorus,
			Geometry: geo,
			Material: Material{
				Color:     Hex(0x0088ff),
				Emissive:  Hex(0x004499),
				Roughness: 0.3,
				Metalness: 0.8,
				Opacity:   1,
			},
			Rotation: rot,
			Spin:     spin,
		},
		Edges: Object{
			Kind:     KindTorusEdges,
			Geometry: geo,
			Material: Material{
				Color:   Hex(0xffffff),
				Opacity: 1,
			},
			Rotation: rot,
			Spin:     spin,
		},
	}
}
