// Package tour runs the fly-through: it builds the scene once, then on each
// frame moves the camera along the path and advances spinning objects.
package tour

import (
	"fmt"
	"math/rand"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Faultbox/glowtrail/internal/decor"
	"github.com/Faultbox/glowtrail/internal/engine/camera"
	"github.com/Faultbox/glowtrail/internal/flight"
	"github.com/Faultbox/glowtrail/internal/logger"
	"github.com/Faultbox/glowtrail/internal/scene"
	"github.com/Faultbox/glowtrail/internal/spline"
)

// particleSeedMix decorrelates the particle stream from the decoration stream
// so changing one count leaves the other layout untouched.
const particleSeedMix = 0x5eed

// Renderer is the drawing collaborator. Handles returned by AddObject are
// passed back to SetTransform.
type Renderer interface {
	AddObject(obj decor.Object) int
	AddPoints(pc decor.PointCloud)
	SetCamera(eye, target r3.Vec)
	SetTransform(handle int, position, rotation r3.Vec)
	Resize(width, height int)
	Render()
}

// SessionConfig describes what to build and how to animate it.
type SessionConfig struct {
	// Points are the path control points; nil selects spline.Reference.
	Points []r3.Vec

	Decorations     int
	Particles       int
	ParticleExtent  float64
	MarkerDivisions int
	Seed            int64

	Flight       flight.Params
	Spin         scene.SpinMode
	OrbitDamping float64

	Width  int
	Height int
}

// DefaultSessionConfig returns the stock scene.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		Decorations:     40,
		Particles:       1000,
		ParticleExtent:  10,
		MarkerDivisions: 100,
		Seed:            1,
		Flight:          flight.DefaultParams(),
		Spin:            scene.SpinPerFrame,
		OrbitDamping:    0.05,
	}
}

// Session is one running fly-through.
type Session struct {
	cfg      SessionConfig
	renderer Renderer

	curve       *spline.Curve
	decorations []decor.Object
	world       *scene.World
	rig         *camera.OrbitRig

	state       flight.CameraState
	lastElapsed float64
	frames      uint64

	width, height int
}

// NewSession builds the scene and registers it with r.
func NewSession(cfg SessionConfig, r Renderer) (*Session, error) {
	if err := cfg.Flight.Validate(); err != nil {
		return nil, err
	}

	points := cfg.Points
	if points == nil {
		points = spline.Reference()
	}
	curve, err := spline.Build(points)
	if err != nil {
		return nil, fmt.Errorf("building path: %w", err)
	}

	decorations, err := decor.PlaceDecorations(curve, cfg.Decorations, rand.New(rand.NewSource(cfg.Seed)))
	if err != nil {
		return nil, fmt.Errorf("placing decorations: %w", err)
	}

	s := &Session{
		cfg:         cfg,
		renderer:    r,
		curve:       curve,
		decorations: decorations,
		world:       scene.New(),
		rig:         camera.NewOrbitRig(cfg.OrbitDamping),
	}

	for _, obj := range decorations {
		s.world.Add(r.AddObject(obj), obj)
	}
	torus := decor.BuildTorus()
	s.world.Add(r.AddObject(torus.Solid), torus.Solid)
	s.world.Add(r.AddObject(torus.Edges), torus.Edges)

	particleRNG := rand.New(rand.NewSource(cfg.Seed ^ particleSeedMix))
	r.AddPoints(decor.BuildParticles(cfg.Particles, cfg.ParticleExtent, particleRNG))
	r.AddPoints(decor.PathMarkers(curve, cfg.MarkerDivisions))

	s.state = flight.State(curve, 0, cfg.Flight)
	s.Resize(cfg.Width, cfg.Height)

	logger.Info("scene built",
		zap.Int("control_points", len(points)),
		zap.Float64("path_length", curve.Length()),
		zap.Int("decorations", len(decorations)),
		zap.Int("particles", cfg.Particles),
		zap.Int("objects", s.world.Len()),
		zap.Stringer("spin", cfg.Spin),
	)
	return s, nil
}

// Frame renders one frame at elapsedMs since start.
func (s *Session) Frame(elapsedMs float64) {
	s.state = flight.State(s.curve, elapsedMs, s.cfg.Flight)

	eye, target := s.rig.Apply(s.state.Position, s.state.Target)
	s.renderer.SetCamera(eye, target)
	s.renderer.Render()

	s.rig.Update()

	dt := max(elapsedMs-s.lastElapsed, 0) / 1000
	s.lastElapsed = elapsedMs
	s.world.Advance(s.cfg.Spin, dt, func(handle int, t scene.Transform) {
		s.renderer.SetTransform(handle, t.Position, t.Rotation)
	})
	s.frames++
}

// Resize updates the output surface. Non-positive sizes are ignored.
func (s *Session) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		logger.Debug("ignoring resize", zap.Int("width", width), zap.Int("height", height))
		return
	}
	s.width, s.height = width, height
	s.renderer.Resize(width, height)
}

// Drag feeds a pointer drag, in pixels, to the orbit rig.
func (s *Session) Drag(dx, dy float64) {
	s.rig.HandleDrag(dx, dy)
}

// Zoom feeds scroll wheel steps to the orbit rig.
func (s *Session) Zoom(delta float64) {
	s.rig.HandleZoom(delta)
}

// ResetView drops any user orbit offset.
func (s *Session) ResetView() {
	s.rig.Reset()
}

// Scene returns the object registry.
func (s *Session) Scene() *scene.World {
	return s.world
}

// Camera returns the scripted camera pose of the last frame, before any
// orbit offset.
func (s *Session) Camera() flight.CameraState {
	return s.state
}

// Curve returns the camera path.
func (s *Session) Curve() *spline.Curve {
	return s.curve
}

// Decorations returns a copy of the placed decorations.
func (s *Session) Decorations() []decor.Object {
	out := make([]decor.Object, len(s.decorations))
	copy(out, s.decorations)
	return out
}

// Frames returns the number of frames rendered.
func (s *Session) Frames() uint64 {
	return s.frames
}

// Size returns the last accepted surface size.
func (s *Session) Size() (int, int) {
	return s.width, s.height
}
