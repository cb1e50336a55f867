// Package camera provides the perspective camera and the interactive orbit
// rig layered on top of the scripted fly-through.
package camera

import (
	gomath "math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Faultbox/glowtrail/pkg/math"
)

// Perspective is a pinhole camera described by eye, target and lens settings.
type Perspective struct {
	FovY   float32 // Vertical field of view in degrees
	Aspect float32
	Near   float32
	Far    float32

	Eye    math.Vec3
	Target math.Vec3
	Up     math.Vec3
}

// NewPerspective creates a camera with the given lens, looking down -Z from +Z.
func NewPerspective(fovY, near, far float32, width, height int) *Perspective {
	p := &Perspective{
		FovY:   fovY,
		Near:   near,
		Far:    far,
		Eye:    math.Vec3{Z: 6},
		Up:     math.Vec3{Y: 1},
		Aspect: 1,
	}
	p.SetSize(width, height)
	return p
}

// SetSize updates the aspect ratio for a viewport. Non-positive sizes are ignored.
func (p *Perspective) SetSize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	p.Aspect = float32(width) / float32(height)
}

// LookAt places the camera at eye facing target.
func (p *Perspective) LookAt(eye, target r3.Vec) {
	p.Eye = math.FromR3(eye)
	p.Target = math.FromR3(target)
}

// ViewMatrix returns the world-to-view transform.
func (p *Perspective) ViewMatrix() math.Mat4 {
	return math.LookAt(p.Eye, p.Target, p.Up)
}

// ProjectionMatrix returns the view-to-clip transform.
func (p *Perspective) ProjectionMatrix() math.Mat4 {
	fov := p.FovY * float32(gomath.Pi) / 180
	return math.Perspective(fov, p.Aspect, p.Near, p.Far)
}

// ViewProjection returns projection * view.
func (p *Perspective) ViewProjection() math.Mat4 {
	return p.ProjectionMatrix().Mul(p.ViewMatrix())
}

// OrbitRig turns user drags into a damped look-around offset. The scripted
// path owns the camera pose; the rig only rotates the view direction about
// the eye and dollies the eye back along it, so the two never fight.
type OrbitRig struct {
	// Accumulated offsets
	Yaw   float64 // Around world up, radians
	Pitch float64 // Around the view's right axis, radians
	Dolly float64 // Distance pulled back behind the eye

	// Pending motion, bled off by Update
	yawDelta   float64
	pitchDelta float64
	dollyDelta float64

	// Constraints
	MinPitch float64
	MaxPitch float64
	MaxDolly float64

	// Sensitivity
	DampingFactor   float64
	DragSensitivity float64
	ZoomSensitivity float64
}

// NewOrbitRig creates a rig with damping similar to a typical orbit control.
func NewOrbitRig(damping float64) *OrbitRig {
	return &OrbitRig{
		MinPitch:        -1.2,
		MaxPitch:        1.2,
		MaxDolly:        8,
		DampingFactor:   damping,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.5,
	}
}

// HandleDrag queues rotation from a mouse drag delta in pixels.
func (o *OrbitRig) HandleDrag(deltaX, deltaY float64) {
	o.yawDelta -= deltaX * o.DragSensitivity
	o.pitchDelta -= deltaY * o.DragSensitivity
}

// HandleZoom queues dolly motion from a scroll wheel delta.
// Positive delta moves toward the path.
func (o *OrbitRig) HandleZoom(delta float64) {
	o.dollyDelta -= delta * o.ZoomSensitivity
}

// Reset drops all offsets and pending motion.
func (o *OrbitRig) Reset() {
	o.Yaw, o.Pitch, o.Dolly = 0, 0, 0
	o.yawDelta, o.pitchDelta, o.dollyDelta = 0, 0, 0
}

// Update advances damping by one step. With damping disabled (factor <= 0 or
// >= 1) pending motion is applied at once.
func (o *OrbitRig) Update() {
	f := o.DampingFactor
	if f <= 0 || f >= 1 {
		f = 1
	}

	o.Yaw += o.yawDelta * f
	o.Pitch += o.pitchDelta * f
	o.Dolly += o.dollyDelta * f

	o.yawDelta *= 1 - f
	o.pitchDelta *= 1 - f
	o.dollyDelta *= 1 - f

	o.Pitch = gomath.Max(o.MinPitch, gomath.Min(o.MaxPitch, o.Pitch))
	o.Dolly = gomath.Max(0, gomath.Min(o.MaxDolly, o.Dolly))
}

// Apply offsets a scripted pose. With zero offsets it returns the pose unchanged.
func (o *OrbitRig) Apply(eye, target r3.Vec) (r3.Vec, r3.Vec) {
	if o.Yaw == 0 && o.Pitch == 0 && o.Dolly == 0 {
		return eye, target
	}

	dir := r3.Sub(target, eye)
	up := r3.Vec{Y: 1}

	if o.Yaw != 0 {
		dir = r3.NewRotation(o.Yaw, up).Rotate(dir)
	}
	if o.Pitch != 0 {
		right := r3.Cross(dir, up)
		if r3.Norm(right) > 1e-9 {
			dir = r3.NewRotation(o.Pitch, r3.Unit(right)).Rotate(dir)
		}
	}

	newEye := eye
	if o.Dolly != 0 && r3.Norm(dir) > 0 {
		newEye = r3.Sub(eye, r3.Scale(o.Dolly, r3.Unit(dir)))
	}
	return newEye, r3.Add(newEye, dir)
}
