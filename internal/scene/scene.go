// Package scene keeps the placed scene objects in an ECS world and advances
// the ones that spin.
package scene

import (
	"fmt"
	"strings"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Faultbox/glowtrail/internal/decor"
)

// ReferenceFrameRate converts per-frame spin rates into per-second ones.
const ReferenceFrameRate = 60

// Transform is an object's world placement. Rotation is Euler XYZ in radians.
type Transform struct {
	Position r3.Vec
	Rotation r3.Vec
}

// Spin is the rotation added each frame at the reference frame rate.
type Spin struct {
	Rate r3.Vec
}

// Renderable links an entity to the GPU resource drawing it.
type Renderable struct {
	Handle int
	Kind   decor.Kind
}

// SpinMode selects how spin rates are scaled.
type SpinMode int

const (
	// SpinPerFrame adds the rate once per frame regardless of frame time.
	SpinPerFrame SpinMode = iota
	// SpinPerSecond scales the rate by frame time so speed is refresh-independent.
	SpinPerSecond
)

func (m SpinMode) String() string {
	switch m {
	case SpinPerFrame:
		return "per_frame"
	case SpinPerSecond:
		return "per_second"
	default:
		return fmt.Sprintf("SpinMode(%d)", int(m))
	}
}

// ParseSpinMode parses a config value. Empty selects SpinPerFrame.
func ParseSpinMode(s string) (SpinMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "per_frame", "frame":
		return SpinPerFrame, nil
	case "per_second", "second":
		return SpinPerSecond, nil
	default:
		return SpinPerFrame, fmt.Errorf("unknown spin mode %q", s)
	}
}

// World is the registry of scene objects.
type World struct {
	world *ecs.World

	spinningMap *ecs.Map3[Transform, Spin, Renderable]
	staticMap   *ecs.Map2[Transform, Renderable]

	spinFilter *ecs.Filter3[Transform, Spin, Renderable]
	allFilter  *ecs.Filter2[Transform, Renderable]

	count    int
	spinning int
}

// New creates an empty registry.
func New() *World {
	w := ecs.NewWorld()
	return &World{
		world:       w,
		spinningMap: ecs.NewMap3[Transform, Spin, Renderable](w),
		staticMap:   ecs.NewMap2[Transform, Renderable](w),
		spinFilter:  ecs.NewFilter3[Transform, Spin, Renderable](w),
		allFilter:   ecs.NewFilter2[Transform, Renderable](w),
	}
}

// Add registers obj under the given renderer handle. Objects with a zero
// spin rate are stored without a Spin component and never visited by Advance.
func (w *World) Add(handle int, obj decor.Object) ecs.Entity {
	t := Transform{Position: obj.Position, Rotation: obj.Rotation}
	r := Renderable{Handle: handle, Kind: obj.Kind}
	w.count++

	if obj.Spin == (r3.Vec{}) {
		return w.staticMap.NewEntity(&t, &r)
	}
	w.spinning++
	s := Spin{Rate: obj.Spin}
	return w.spinningMap.NewEntity(&t, &s, &r)
}

// Len returns the number of registered objects.
func (w *World) Len() int {
	return w.count
}

// Spinning returns the number of objects with a spin rate.
func (w *World) Spinning() int {
	return w.spinning
}

// Advance applies one frame of spin. dtSeconds is only used in SpinPerSecond
// mode. visit, if non-nil, receives every updated transform.
func (w *World) Advance(mode SpinMode, dtSeconds float64, visit func(handle int, t Transform)) {
	scale := 1.0
	if mode == SpinPerSecond {
		scale = dtSeconds * ReferenceFrameRate
	}

	query := w.spinFilter.Query()
	for query.Next() {
		t, s, r := query.Get()
		t.Rotation = r3.Add(t.Rotation, r3.Scale(scale, s.Rate))
		if visit != nil {
			visit(r.Handle, *t)
		}
	}
}

// Each visits every registered object.
func (w *World) Each(fn func(r Renderable, t Transform)) {
	query := w.allFilter.Query()
	for query.Next() {
		t, r := query.Get()
		fn(*r, *t)
	}
}
