// Package lighting holds the scene lights and uploads them to shader programs.
package lighting

import "github.com/Faultbox/glowtrail/internal/engine/shader"

// AmbientLight lights every surface evenly.
type AmbientLight struct {
	Color     [3]float32 // Linear RGB
	Intensity float32
}

// PointLight represents a point light source for GPU upload.
type PointLight struct {
	Position  [3]float32 // World position
	Color     [3]float32 // Linear RGB
	Range     float32    // Distance where the contribution reaches zero, 0 for unlimited
	Intensity float32
}

// Rig is the full light setup of the scene.
type Rig struct {
	Ambient AmbientLight
	Point   PointLight
}

// Radiance returns color premultiplied by intensity.
func (a AmbientLight) Radiance() [3]float32 {
	return scale(a.Color, a.Intensity)
}

// Radiance returns color premultiplied by intensity.
func (l PointLight) Radiance() [3]float32 {
	return scale(l.Color, l.Intensity)
}

func scale(c [3]float32, s float32) [3]float32 {
	return [3]float32{c[0] * s, c[1] * s, c[2] * s}
}

// Upload sets the light uniforms on p. p must be in use.
func (r Rig) Upload(p *shader.Program) {
	p.SetVec3("uAmbient", r.Ambient.Radiance())
	p.SetVec3("uLightPos", r.Point.Position)
	p.SetVec3("uLightColor", r.Point.Radiance())
	p.SetFloat("uLightRange", max(r.Point.Range, 0))
}
