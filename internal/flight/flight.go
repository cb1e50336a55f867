// Package flight drives the camera along a closed curve from elapsed time.
package flight

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Faultbox/glowtrail/internal/spline"
)

// ErrInvalidParams is returned by Params.Validate.
var ErrInvalidParams = errors.New("invalid flight parameters")

// Params controls how elapsed time maps onto the loop.
type Params struct {
	LoopDurationMs float64 // Effective time for one full lap
	SpeedFactor    float64 // Multiplier applied to elapsed time
	LookAhead      float64 // Fraction of the loop the target leads the eye
}

// DefaultParams returns the reference timing: a 10 s loop at 0.2x speed,
// so one real lap takes 50 s.
func DefaultParams() Params {
	return Params{
		LoopDurationMs: 10000,
		SpeedFactor:    0.2,
		LookAhead:      0.03,
	}
}

// Validate checks that the timing parameters are usable.
func (p Params) Validate() error {
	if !(p.LoopDurationMs > 0) {
		return fmt.Errorf("%w: loop duration must be positive, got %v", ErrInvalidParams, p.LoopDurationMs)
	}
	if !(p.SpeedFactor > 0) {
		return fmt.Errorf("%w: speed factor must be positive, got %v", ErrInvalidParams, p.SpeedFactor)
	}
	return nil
}

// Period returns the real elapsed time of one lap in milliseconds.
func (p Params) Period() float64 {
	return p.LoopDurationMs / p.SpeedFactor
}

// CameraState is the camera pose for one frame.
type CameraState struct {
	Position r3.Vec
	Target   r3.Vec
	Param    float64 // loop parameter of Position
}

// LoopParam maps elapsed time to the loop parameter in [0,1).
func LoopParam(elapsedMs, loopDurationMs, speedFactor float64) float64 {
	t := math.Mod(elapsedMs*speedFactor, loopDurationMs)
	if t < 0 {
		t += loopDurationMs
	}
	return spline.Wrap(t / loopDurationMs)
}

// State returns the camera pose at elapsedMs. It keeps no state, so equal
// inputs always give equal outputs.
func State(c *spline.Curve, elapsedMs float64, p Params) CameraState {
	u := LoopParam(elapsedMs, p.LoopDurationMs, p.SpeedFactor)
	return CameraState{
		Position: c.PointAt(u),
		Target:   c.PointAt(math.Mod(u+p.LookAhead, 1)),
		Param:    u,
	}
}
