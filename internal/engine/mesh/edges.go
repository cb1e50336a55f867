package mesh

import (
	gomath "math"

	"github.com/Faultbox/glowtrail/pkg/math"
)

// DefaultEdgeThreshold is the crease angle, in degrees, below which the edge
// shared by two faces is considered smooth and skipped.
const DefaultEdgeThreshold = 1.0

// weldPrecision sets how close two positions must be to count as one vertex.
const weldPrecision = 1e4

type vertexKey [3]int64

func keyOf(p [3]float32) vertexKey {
	return vertexKey{
		int64(gomath.Round(float64(p[0]) * weldPrecision)),
		int64(gomath.Round(float64(p[1]) * weldPrecision)),
		int64(gomath.Round(float64(p[2]) * weldPrecision)),
	}
}

type edgeKey [2]vertexKey

type openEdge struct {
	normal math.Vec3
	a, b   [3]float32
	order  int
}

// Edges extracts the crease and boundary edges of m: an edge is kept when the
// faces on either side meet at more than thresholdDeg, or when only one face
// uses it. Vertices at the same position are welded first, so seams in UV-split
// geometry do not show up as edges.
func Edges(m *Mesh, thresholdDeg float64) *Lines {
	cosThreshold := float32(gomath.Cos(thresholdDeg * gomath.Pi / 180))

	open := make(map[edgeKey]openEdge)
	out := &Lines{}
	next := 0

	for t := 0; t+2 < len(m.Indices); t += 3 {
		tri := [3][3]float32{
			m.Vertices[m.Indices[t]].Position,
			m.Vertices[m.Indices[t+1]].Position,
			m.Vertices[m.Indices[t+2]].Position,
		}
		keys := [3]vertexKey{keyOf(tri[0]), keyOf(tri[1]), keyOf(tri[2])}

		// Skip triangles collapsed by welding
		if keys[0] == keys[1] || keys[1] == keys[2] || keys[2] == keys[0] {
			continue
		}

		a := vecOf(tri[0])
		normal := vecOf(tri[1]).Sub(a).Cross(vecOf(tri[2]).Sub(a)).Normalize()

		for e := 0; e < 3; e++ {
			i, j := e, (e+1)%3
			k := edgeKey{keys[i], keys[j]}
			if less(keys[j], keys[i]) {
				k = edgeKey{keys[j], keys[i]}
			}

			if prev, ok := open[k]; ok {
				if prev.normal.Dot(normal) <= cosThreshold {
					out.Positions = append(out.Positions, prev.a, prev.b)
				}
				delete(open, k)
				continue
			}
			open[k] = openEdge{normal: normal, a: tri[i], b: tri[j], order: next}
			next++
		}
	}

	// Boundary edges, emitted in discovery order
	if len(open) > 0 {
		boundary := make([]openEdge, next)
		used := make([]bool, next)
		for _, e := range open {
			boundary[e.order] = e
			used[e.order] = true
		}
		for i, e := range boundary {
			if used[i] {
				out.Positions = append(out.Positions, e.a, e.b)
			}
		}
	}
	return out
}

func vecOf(p [3]float32) math.Vec3 {
	return math.Vec3{X: p[0], Y: p[1], Z: p[2]}
}

func less(a, b vertexKey) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}
